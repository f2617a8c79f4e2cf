package model

import "sort"

// Selection is a set-partitioning constraint (Σ xᵢ = 1, binary xᵢ) elevated
// to a first-class structural object so the search can swap its chosen
// member atomically. Exactly one member variable has value 1 at all times
// outside of a pending move (§3 "Selection block").
type Selection struct {
	id int

	// source is the original Σxᵢ=1 constraint; it is disabled once the
	// block is accepted (§4.5).
	source *Constraint

	variables []*Variable
	selected  *Variable

	// relatedConstraints is the deduplicated union of every member
	// variable's related constraints, including disabled ones (needed so
	// the outer driver can refresh cached values after a selection swap),
	// reordered by descending member-variable degree then ascending
	// constraint-sensitivity size (§4.5).
	relatedConstraints []*Constraint
}

// NewSelection builds a selection block from its accepted set-partitioning
// constraint and member variables, disables the source constraint, upgrades
// every member's sense to Selection, and computes the heuristically
// reordered related-constraint union. The initially selected member is
// whichever member currently has value 1; if none does (a building-time
// edge case that should not arise once the verifier has run), the first
// member is used.
func NewSelection(id int, source *Constraint, variables []*Variable) *Selection {
	s := &Selection{id: id, source: source, variables: variables}

	source.Disable()
	for _, v := range variables {
		v.UpgradeToSelection(s)
	}

	s.selected = variables[0]
	for _, v := range variables {
		if v.Value() == 1 {
			s.selected = v
			break
		}
	}

	s.relatedConstraints = s.computeRelatedConstraints()
	return s
}

// computeRelatedConstraints implements §4.5's ordering rule: deduplicated
// union of member-variable related constraints (including disabled ones),
// then sorted by descending member-variable degree (how many selection
// members reference that constraint) and, as a tiebreak, ascending
// constraint-expression size (a proxy for "constraint-sensitivity size"),
// to improve cache locality when the constraint list is walked on every
// move score.
func (s *Selection) computeRelatedConstraints() []*Constraint {
	degree := make(map[*Constraint]int)
	var order []*Constraint
	for _, v := range s.variables {
		for _, c := range v.RelatedConstraints() {
			if _, seen := degree[c]; !seen {
				order = append(order, c)
			}
			degree[c]++
		}
	}
	sort.SliceStable(order, func(i, j int) bool {
		di, dj := degree[order[i]], degree[order[j]]
		if di != dj {
			return di > dj
		}
		return order[i].Expression().Size() < order[j].Expression().Size()
	})
	return order
}

// ID returns the block's identifier.
func (s *Selection) ID() int { return s.id }

// Source returns the original (now disabled) set-partitioning constraint.
func (s *Selection) Source() *Constraint { return s.source }

// Variables returns the block's member variables.
func (s *Selection) Variables() []*Variable { return s.variables }

// Selected returns the currently selected (value-1) member.
func (s *Selection) Selected() *Variable { return s.selected }

// RelatedConstraints returns the block's deduplicated, reordered
// related-constraint union.
func (s *Selection) RelatedConstraints() []*Constraint { return s.relatedConstraints }

// SetSelected installs v as the newly selected member, called by
// Model.update after committing a MoveSelection move.
func (s *Selection) SetSelected(v *Variable) { s.selected = v }

// HasMember reports whether v belongs to this block.
func (s *Selection) HasMember(v *Variable) bool {
	for _, m := range s.variables {
		if m == v {
			return true
		}
	}
	return false
}
