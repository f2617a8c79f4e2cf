package model

// Objective wraps an Expression and signs it by optimization direction. Per
// SPEC_FULL.md §9 ("Deep class hierarchies"), it inherits Expression
// behavior by composition — an embedded *Expression — rather than by
// subclassing, keeping the hot evaluate/update path free of virtual
// dispatch.
type Objective struct {
	*Expression
	minimize bool
}

// NewObjective wraps expr as an objective signed by minimize.
func NewObjective(expr *Expression, minimize bool) *Objective {
	return &Objective{Expression: expr, minimize: minimize}
}

// IsMinimization reports the optimization direction.
func (o *Objective) IsMinimization() bool { return o.minimize }

// Sign returns +1 for minimization, -1 for maximization: the factor
// Model.evaluate applies to an objective delta so that a smaller signed
// value is always better (§4.10).
func (o *Objective) Sign() int64 {
	if o.minimize {
		return 1
	}
	return -1
}

// SignedValue returns the cached objective value adjusted by Sign, so that
// lower is always better regardless of direction.
func (o *Objective) SignedValue() int64 {
	return o.Sign() * o.Value()
}

// SignedEvaluateMove is the move-scoring counterpart of SignedValue: the
// signed objective value the model would have after move, without mutating
// any cache.
func (o *Objective) SignedEvaluateMove(move *Move) int64 {
	return o.Sign() * o.EvaluateMove(move)
}
