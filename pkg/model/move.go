package model

// MoveSense tags the structural generator that produced a Move, mirroring
// Neighborhood's generator taxonomy (§4.8).
type MoveSense int

const (
	MoveBinary MoveSense = iota
	MoveInteger
	MoveAggregation
	MovePrecedence
	MoveVariableBound
	MoveExclusive
	MoveSelection
	MoveUserDefined
)

func (s MoveSense) String() string {
	switch s {
	case MoveBinary:
		return "Binary"
	case MoveInteger:
		return "Integer"
	case MoveAggregation:
		return "Aggregation"
	case MovePrecedence:
		return "Precedence"
	case MoveVariableBound:
		return "VariableBound"
	case MoveExclusive:
		return "Exclusive"
	case MoveSelection:
		return "Selection"
	case MoveUserDefined:
		return "UserDefined"
	default:
		return "Unknown"
	}
}

// Alteration is a single (variable, target value) pair within a Move.
type Alteration struct {
	Variable *Variable
	Value    int64
}

// Move is a proposed set of alterations, tagged by the generator that built
// it, together with the related-constraint set those alterations can
// possibly affect. A Move carries non-owning references into its Model and
// must never outlive it (§9 "Ownership of Moves").
//
// For MoveSelection moves, Alterations[0] is always the currently-selected
// member being cleared (target value 0) and Alterations[1] is the member
// being set to 1 — §3's selection-block invariant.
type Move struct {
	Alterations        []Alteration
	Sense              MoveSense
	RelatedConstraints []*Constraint
}

// NewMove builds a Move with the given sense and alterations, computing its
// related-constraint set as the deduplicated union of every altered
// variable's related constraints (the general rule of §3; Selection moves
// are built directly with a narrower, explicitly-supplied set instead — see
// NewSelectionMove).
func NewMove(sense MoveSense, alterations []Alteration) *Move {
	return &Move{
		Alterations:        alterations,
		Sense:               sense,
		RelatedConstraints:  UnionRelatedConstraints(alterations),
	}
}

// NewSelectionMove builds a MoveSelection move clearing `from` and setting
// `to` to 1. Its related-constraint set is capped to the selection block's
// own related-constraint list (including disabled constraints, per §4.5),
// not the general union rule, per §3's "capped to a minimal set for
// selection moves" note.
func NewSelectionMove(block *Selection, from, to *Variable) *Move {
	return &Move{
		Alterations: []Alteration{
			{Variable: from, Value: 0},
			{Variable: to, Value: 1},
		},
		Sense:              MoveSelection,
		RelatedConstraints: block.RelatedConstraints(),
	}
}

// UnionRelatedConstraints computes the deduplicated, insertion-ordered union
// of the related-constraint lists of every variable touched by alterations.
func UnionRelatedConstraints(alterations []Alteration) []*Constraint {
	seen := make(map[*Constraint]bool)
	var result []*Constraint
	for _, a := range alterations {
		for _, c := range a.Variable.RelatedConstraints() {
			if !seen[c] {
				seen[c] = true
				result = append(result, c)
			}
		}
	}
	return result
}

// Variables returns the list of variables touched by this move's
// alterations, in alteration order.
func (m *Move) Variables() []*Variable {
	vars := make([]*Variable, len(m.Alterations))
	for i, a := range m.Alterations {
		vars[i] = a.Variable
	}
	return vars
}

// HasFixedVariable reports whether any altered variable is fixed.
func (m *Move) HasFixedVariable() bool {
	for _, a := range m.Alterations {
		if a.Variable.IsFixed() {
			return true
		}
	}
	return false
}

// ViolatesBounds reports whether any alteration would set its variable
// outside its declared bounds.
func (m *Move) ViolatesBounds() bool {
	for _, a := range m.Alterations {
		if a.Value < a.Variable.Lower() || a.Value > a.Variable.Upper() {
			return true
		}
	}
	return false
}

// HasImprovableVariable reports whether at least one altered variable has
// either improvability flag set.
func (m *Move) HasImprovableVariable() bool {
	for _, a := range m.Alterations {
		if a.Variable.IsObjectiveImprovable() || a.Variable.IsFeasibilityImprovable() {
			return true
		}
	}
	return false
}

// TouchesSelection reports whether any altered variable belongs to a
// selection block.
func (m *Move) TouchesSelection() bool {
	for _, a := range m.Alterations {
		if a.Variable.Sense() == Selection {
			return true
		}
	}
	return false
}
