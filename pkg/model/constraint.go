package model

import "fmt"

// ConstraintSense is the relational operator of a linear constraint.
type ConstraintSense int

const (
	// Less means expression <= 0.
	Less ConstraintSense = iota
	// Equal means expression == 0.
	Equal
	// Greater means expression >= 0.
	Greater
)

func (s ConstraintSense) String() string {
	switch s {
	case Less:
		return "<="
	case Equal:
		return "=="
	case Greater:
		return ">="
	default:
		return fmt.Sprintf("ConstraintSense(%d)", int(s))
	}
}

// Constraint couples an Expression to a sense. Its cached constraintValue
// mirrors the expression's value; its violationValue is the non-negative
// infeasibility defined by §3:
//
//	Less:    max(e, 0)
//	Equal:   |e|
//	Greater: max(-e, 0)
type Constraint struct {
	id   int
	name string

	expr  *Expression
	sense ConstraintSense

	constraintValue int64
	violationValue  int64
	enabled         bool

	ctype       ConstraintType
	keyVariable *Variable

	// definesDependentVariable is set by DependentVariableExtractor when
	// this (now-disabled) constraint is the source of a substitution.
	definesDependentVariable bool
}

// NewConstraint creates a constraint over expr with the given sense and
// registers it on every variable expr references (Variable.relatedConstraints).
// The constraint starts enabled and TypeUnclassified.
func NewConstraint(id int, name string, expr *Expression, sense ConstraintSense) *Constraint {
	c := &Constraint{
		id:      id,
		name:    name,
		expr:    expr,
		sense:   sense,
		enabled: true,
	}
	for v := range expr.terms {
		v.addRelatedConstraint(c)
	}
	c.Update()
	return c
}

// ID returns the constraint's unique identifier.
func (c *Constraint) ID() int { return c.id }

// Name returns the constraint's declared name.
func (c *Constraint) Name() string { return c.name }

// Expression returns the constraint's owning expression.
func (c *Constraint) Expression() *Expression { return c.expr }

// Sense returns the constraint's relational operator.
func (c *Constraint) Sense() ConstraintSense { return c.sense }

// IsEnabled reports whether the constraint currently participates in
// feasibility/score computation. Once disabled by presolve or structure
// extraction, a constraint is never re-enabled within one solve (§4.3).
func (c *Constraint) IsEnabled() bool { return c.enabled }

// Disable marks the constraint disabled.
func (c *Constraint) Disable() { c.enabled = false }

// Enable marks the constraint enabled. Exposed for tests and for the rare
// compatibility path; the core itself never re-enables a disabled
// constraint.
func (c *Constraint) Enable() { c.enabled = true }

// Type returns the structural category assigned by ConstraintTypeClassifier
// (TypeUnclassified before classification has run).
func (c *Constraint) Type() ConstraintType { return c.ctype }

// SetType is called by pkg/classifier after inspecting the constraint.
func (c *Constraint) SetType(t ConstraintType) { c.ctype = t }

// KeyVariable returns the distinguished variable the classifier designated
// for substitution-friendly or GF2 constraints, or nil if none.
func (c *Constraint) KeyVariable() *Variable { return c.keyVariable }

// SetKeyVariable is called by pkg/classifier.
func (c *Constraint) SetKeyVariable(v *Variable) { c.keyVariable = v }

// DefinesDependentVariable reports whether this (necessarily disabled)
// constraint was consumed by DependentVariableExtractor as the definition of
// a substituted variable.
func (c *Constraint) DefinesDependentVariable() bool { return c.definesDependentVariable }

// MarkDefinesDependentVariable records that DependentVariableExtractor
// consumed this constraint as a substitution source, and disables it.
func (c *Constraint) MarkDefinesDependentVariable() {
	c.definesDependentVariable = true
	c.enabled = false
}

// ConstraintValue returns the cached expression value as of the last
// Update/UpdateMove.
func (c *Constraint) ConstraintValue() int64 { return c.constraintValue }

// Violation returns the cached violation as of the last Update/UpdateMove.
func (c *Constraint) Violation() int64 { return c.violationValue }

func (c *Constraint) violationOf(value int64) int64 {
	switch c.sense {
	case Less:
		if value > 0 {
			return value
		}
		return 0
	case Equal:
		if value < 0 {
			return -value
		}
		return value
	case Greater:
		if value < 0 {
			return -value
		}
		return 0
	default:
		return 0
	}
}

// Update performs a full recomputation of the constraint's value and
// violation from the live variable values.
func (c *Constraint) Update() {
	c.expr.Update()
	c.constraintValue = c.expr.Value()
	c.violationValue = c.violationOf(c.constraintValue)
}

// UpdateMove refreshes the constraint's cached value/violation using the
// expression's fast move-delta evaluator.
func (c *Constraint) UpdateMove(move *Move) {
	c.expr.UpdateMove(move)
	c.constraintValue = c.expr.Value()
	c.violationValue = c.violationOf(c.constraintValue)
}

// EvaluateMove computes the (value, violation) pair the constraint would
// have after move, without mutating any cache. This is Model.evaluate's hot
// path primitive (§4.10).
func (c *Constraint) EvaluateMove(move *Move) (value, violation int64) {
	value = c.expr.EvaluateMove(move)
	violation = c.violationOf(value)
	return value, violation
}

// IsFeasible reports whether the constraint's cached violation is exactly
// zero (constraints are integer-valued, so there is no epsilon tolerance
// here; Model-level feasibility uses the ε from §4.10 to tolerate summed
// rounding only where floats are involved, which this integer engine never
// introduces).
func (c *Constraint) IsFeasible() bool { return c.violationValue == 0 }

func (c *Constraint) String() string {
	return fmt.Sprintf("%s: %s %s 0", c.name, c.expr.String(), c.sense)
}
