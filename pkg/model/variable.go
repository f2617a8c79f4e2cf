package model

import "fmt"

// DefaultBoundMagnitude is the default inclusive bound magnitude a freshly
// created variable receives when the builder does not specify one: ±2^30,
// chosen (per SPEC_FULL.md §3) to leave headroom for signed move-delta
// arithmetic computed in int64 without overflow even for the largest
// reasonable coefficient/value products this engine is expected to see.
const DefaultBoundMagnitude int64 = 1 << 30

// VariableSense tags the structural role a Variable plays. It is a plain
// enum, never a subclass switch: §9 "Deep class hierarchies" calls for
// avoiding virtual dispatch on this hot-path field entirely.
type VariableSense int

const (
	// Integer is the default sense: a general bounded integer decision.
	Integer VariableSense = iota
	// Binary is auto-derived whenever a variable's bounds collapse to
	// {0,1}, {0,0}, or {1,1}.
	Binary
	// Selection marks a variable that has been joined to a selection
	// block (an extracted at-most/exactly-one structure).
	Selection
	// DependentBinary marks a binary variable whose value is defined by
	// substitution rather than by direct search.
	DependentBinary
	// DependentInteger marks a general integer variable whose value is
	// defined by substitution.
	DependentInteger
)

func (s VariableSense) String() string {
	switch s {
	case Integer:
		return "Integer"
	case Binary:
		return "Binary"
	case Selection:
		return "Selection"
	case DependentBinary:
		return "DependentBinary"
	case DependentInteger:
		return "DependentInteger"
	default:
		return fmt.Sprintf("VariableSense(%d)", int(s))
	}
}

// IsDependent reports whether the sense marks a substitution-defined
// variable (DependentBinary or DependentInteger).
func (s VariableSense) IsDependent() bool {
	return s == DependentBinary || s == DependentInteger
}

// Variable is an integer decision variable with inclusive bounds, fixedness,
// a structural sense, the ordered list of constraints that reference it, and
// the bookkeeping the search loop and presolve maintain on it.
//
// A Variable is owned by exactly one Model (SPEC_FULL.md §5 "Shared-resource
// policy") and is only ever mutated through Model.update, presolve, or the
// verifier — never concurrently.
type Variable struct {
	id   int
	name string

	value int64
	lower int64
	upper int64
	fixed bool

	sense VariableSense

	// relatedConstraints is the ordered list of constraints whose
	// expression has a non-zero coefficient on this variable. Order is
	// insertion order (declaration order), matching §3's "ordered list".
	relatedConstraints []*Constraint

	// objectiveSensitivity is this variable's coefficient in the
	// objective's expression, cached for fast scoring.
	objectiveSensitivity int64

	// selectionBlock is non-nil iff sense == Selection; it points back to
	// the block this variable belongs to.
	selectionBlock *Selection

	// hasLowerBoundMargin / hasUpperBoundMargin mirror value vs bounds and
	// are kept in sync by refreshMargins, called after every value or
	// bound change.
	hasLowerBoundMargin bool
	hasUpperBoundMargin bool

	// lastUpdateIteration is the outer-loop iteration number at which this
	// variable's value last changed; updateCount counts how many times it
	// has changed in total. Both are maintained by Model.update, never by
	// Variable itself.
	lastUpdateIteration int
	updateCount         int

	// isObjectiveImprovable / isFeasibilityImprovable are improvability
	// flags maintained by the outer driver (see glossary); Neighborhood's
	// improvability screen reads them but never writes them.
	isObjectiveImprovable    bool
	isFeasibilityImprovable  bool
}

// NewVariable creates a variable with the given inclusive bounds. If lower >
// upper, it returns ErrInvalidBounds (fatal from the builder, per §7).
func NewVariable(id int, name string, lower, upper int64) (*Variable, error) {
	if lower > upper {
		return nil, fmt.Errorf("variable %q: %w (%d > %d)", name, ErrInvalidBounds, lower, upper)
	}
	v := &Variable{
		id:    id,
		name:  name,
		lower: lower,
		upper: upper,
		value: clamp(0, lower, upper),
	}
	v.recomputeSense()
	v.refreshMargins()
	return v, nil
}

func clamp(v, lower, upper int64) int64 {
	if v < lower {
		return lower
	}
	if v > upper {
		return upper
	}
	return v
}

// ID returns the variable's unique identifier within its model.
func (v *Variable) ID() int { return v.id }

// Name returns the variable's declared name.
func (v *Variable) Name() string { return v.name }

// Value returns the variable's current value.
func (v *Variable) Value() int64 { return v.value }

// Lower returns the variable's current inclusive lower bound.
func (v *Variable) Lower() int64 { return v.lower }

// Upper returns the variable's current inclusive upper bound.
func (v *Variable) Upper() int64 { return v.upper }

// IsFixed reports whether the variable is fixed (its value will not change
// under any move).
func (v *Variable) IsFixed() bool { return v.fixed }

// Sense returns the variable's structural sense.
func (v *Variable) Sense() VariableSense { return v.sense }

// SelectionBlock returns the selection block this variable belongs to, or
// nil if its sense is not Selection.
func (v *Variable) SelectionBlock() *Selection { return v.selectionBlock }

// HasLowerBoundMargin reports value > lower (invariant 1 of SPEC_FULL.md §8).
func (v *Variable) HasLowerBoundMargin() bool { return v.hasLowerBoundMargin }

// HasUpperBoundMargin reports value < upper.
func (v *Variable) HasUpperBoundMargin() bool { return v.hasUpperBoundMargin }

// ObjectiveSensitivity returns this variable's coefficient in the model's
// objective expression.
func (v *Variable) ObjectiveSensitivity() int64 { return v.objectiveSensitivity }

// SetObjectiveSensitivity is called by Model when it assembles objective
// sensitivities after presolve/extraction.
func (v *Variable) SetObjectiveSensitivity(c int64) { v.objectiveSensitivity = c }

// RelatedConstraints returns the ordered list of constraints that reference
// this variable. The returned slice must not be mutated by the caller.
func (v *Variable) RelatedConstraints() []*Constraint { return v.relatedConstraints }

// addRelatedConstraint appends c to the related-constraint list if it is not
// already present. Called by Model/Constraint construction, never by user
// code.
func (v *Variable) addRelatedConstraint(c *Constraint) {
	for _, existing := range v.relatedConstraints {
		if existing == c {
			return
		}
	}
	v.relatedConstraints = append(v.relatedConstraints, c)
}

// LastUpdateIteration returns the outer-loop iteration at which this
// variable's value last changed.
func (v *Variable) LastUpdateIteration() int { return v.lastUpdateIteration }

// UpdateCount returns how many times Model.update has changed this
// variable's value.
func (v *Variable) UpdateCount() int { return v.updateCount }

// IsObjectiveImprovable reports the cached objective-improvability flag.
func (v *Variable) IsObjectiveImprovable() bool { return v.isObjectiveImprovable }

// IsFeasibilityImprovable reports the cached feasibility-improvability flag.
func (v *Variable) IsFeasibilityImprovable() bool { return v.isFeasibilityImprovable }

// SetImprovability sets both improvability flags. The outer driver (outside
// this core) is the intended caller; Neighborhood only reads these.
func (v *Variable) SetImprovability(objective, feasibility bool) {
	v.isObjectiveImprovable = objective
	v.isFeasibilityImprovable = feasibility
}

// SetValue is the write-any-value path: it unconditionally sets the
// variable's value (clamped into its declared bounds is the caller's
// responsibility; SetValue itself only refuses a fixed variable). Returns
// ErrMutatedFixedVariable if the variable is fixed.
func (v *Variable) SetValue(value int64) error {
	if v.fixed {
		return fmt.Errorf("variable %q: %w", v.name, ErrMutatedFixedVariable)
	}
	v.value = value
	v.refreshMargins()
	return nil
}

// TrySetValue is the write-if-mutable path: if the variable is fixed, it is
// a silent no-op returning false; otherwise it sets the value and returns
// true.
func (v *Variable) TrySetValue(value int64) bool {
	if v.fixed {
		return false
	}
	v.value = value
	v.refreshMargins()
	return true
}

// touch records that the outer loop changed this variable's value at the
// given iteration. Called by Model.update after a successful write.
func (v *Variable) touch(iteration int) {
	v.lastUpdateIteration = iteration
	v.updateCount++
}

// Fix pins the variable to value and marks it fixed. Returns ErrInvalidBounds
// if value falls outside [lower, upper].
func (v *Variable) Fix(value int64) error {
	if value < v.lower || value > v.upper {
		return fmt.Errorf("variable %q: %w (fix value %d outside [%d,%d])",
			v.name, ErrInvalidBounds, value, v.lower, v.upper)
	}
	v.value = value
	v.fixed = true
	v.refreshMargins()
	return nil
}

// Unfix releases a previously fixed variable. Presolve never unfixes a
// variable it fixed.
func (v *Variable) Unfix() { v.fixed = false }

// SetBounds tightens or otherwise changes the variable's bounds, clamping
// the current value into the new range and re-deriving sense. Returns
// ErrInvalidBounds if lower > upper.
func (v *Variable) SetBounds(lower, upper int64) error {
	if lower > upper {
		return fmt.Errorf("variable %q: %w (%d > %d)", v.name, ErrInvalidBounds, lower, upper)
	}
	v.lower = lower
	v.upper = upper
	if v.value < lower || v.value > upper {
		v.value = clamp(v.value, lower, upper)
	}
	v.recomputeSense()
	v.refreshMargins()
	return nil
}

// recomputeSense applies the auto-downgrade-to-Binary rule from §3: a
// variable's bounds of {0,1}, {0,0}, or {1,1} always make it Binary, unless
// it has already been upgraded to Selection or a Dependent* sense (those
// upgrades are sticky and outlive subsequent bound tightening).
func (v *Variable) recomputeSense() {
	if v.sense == Selection || v.sense.IsDependent() {
		return
	}
	if (v.lower == 0 && v.upper == 1) || (v.lower == 0 && v.upper == 0) || (v.lower == 1 && v.upper == 1) {
		v.sense = Binary
		return
	}
	v.sense = Integer
}

// UpgradeToSelection marks this variable as belonging to selection block s.
// Sticky: recomputeSense will no longer downgrade it back to Binary/Integer.
func (v *Variable) UpgradeToSelection(s *Selection) {
	v.sense = Selection
	v.selectionBlock = s
}

// UpgradeToDependent marks this variable as substitution-defined. binary
// selects DependentBinary vs DependentInteger.
func (v *Variable) UpgradeToDependent(binary bool) {
	if binary {
		v.sense = DependentBinary
	} else {
		v.sense = DependentInteger
	}
}

// refreshMargins keeps the bound-margin booleans in sync with value/lower/
// upper, per invariant 1 of SPEC_FULL.md §8.
func (v *Variable) refreshMargins() {
	v.hasLowerBoundMargin = v.value > v.lower
	v.hasUpperBoundMargin = v.value < v.upper
}

// String returns a human-readable representation, e.g. "x3=2" or
// "x3∈[0,5]".
func (v *Variable) String() string {
	if v.lower == v.upper {
		return fmt.Sprintf("%s=%d", v.name, v.value)
	}
	return fmt.Sprintf("%s=%d∈[%d,%d]", v.name, v.value, v.lower, v.upper)
}
