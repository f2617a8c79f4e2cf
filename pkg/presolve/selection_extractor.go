package presolve

import (
	"fmt"
	"sort"

	"github.com/gitrdm/printemps/pkg/classifier"
	"github.com/gitrdm/printemps/pkg/model"
)

// SelectionMode selects which greedy policy ExtractSelections uses to turn
// enabled set-partitioning constraints into Selection blocks (§4.5).
type SelectionMode int

const (
	// SelectionNone disables extraction entirely.
	SelectionNone SelectionMode = iota
	// SelectionDefined accepts candidates in declaration order.
	SelectionDefined
	// SelectionSmaller accepts candidates ordered by ascending variable count.
	SelectionSmaller
	// SelectionLarger accepts candidates ordered by descending variable count.
	SelectionLarger
	// SelectionIndependent accepts only candidates that share no variable
	// with any other candidate.
	SelectionIndependent
)

func (m SelectionMode) String() string {
	switch m {
	case SelectionNone:
		return "None"
	case SelectionDefined:
		return "Defined"
	case SelectionSmaller:
		return "Smaller"
	case SelectionLarger:
		return "Larger"
	case SelectionIndependent:
		return "Independent"
	default:
		return fmt.Sprintf("SelectionMode(%d)", int(m))
	}
}

// ParseSelectionMode is String's inverse, used by pkg/config's
// neighborhood.selection_mode decode hook.
func ParseSelectionMode(s string) (SelectionMode, bool) {
	switch s {
	case "None":
		return SelectionNone, true
	case "Defined":
		return SelectionDefined, true
	case "Smaller":
		return SelectionSmaller, true
	case "Larger":
		return SelectionLarger, true
	case "Independent":
		return SelectionIndependent, true
	default:
		return 0, false
	}
}

// candidate pairs a set-partitioning constraint with its sorted member list.
type candidate struct {
	constraint *model.Constraint
	variables  []*model.Variable
}

// ExtractSelections finds every enabled set-partitioning constraint,
// classifying constraints as needed, and accepts a greedy disjoint cover of
// them as Selection blocks according to mode, registering each accepted
// block on m. It returns the newly created blocks.
func ExtractSelections(m *model.Model, mode SelectionMode) []*model.Selection {
	if mode == SelectionNone {
		return nil
	}

	candidates := setPartitioningCandidates(m)

	switch mode {
	case SelectionSmaller:
		sort.SliceStable(candidates, func(i, j int) bool {
			return len(candidates[i].variables) < len(candidates[j].variables)
		})
	case SelectionLarger:
		sort.SliceStable(candidates, func(i, j int) bool {
			return len(candidates[i].variables) > len(candidates[j].variables)
		})
	case SelectionIndependent:
		return extractIndependentSelections(m, candidates)
	}

	return extractDisjointCover(m, candidates)
}

// setPartitioningCandidates classifies every enabled constraint and
// collects the ones recognized as set-partitioning, with their non-fixed
// member variables in declaration (ID) order for determinism.
func setPartitioningCandidates(m *model.Model) []candidate {
	var out []candidate
	for _, c := range m.Constraints() {
		if !c.IsEnabled() {
			continue
		}
		classifier.Classify(c)
		if c.Type() != model.TypeSetPartitioning {
			continue
		}
		out = append(out, candidate{constraint: c, variables: sortedVariables(c)})
	}
	return out
}

func sortedVariables(c *model.Constraint) []*model.Variable {
	terms := c.Expression().Terms()
	vars := make([]*model.Variable, 0, len(terms))
	for v := range terms {
		if !v.IsFixed() {
			vars = append(vars, v)
		}
	}
	sort.Slice(vars, func(i, j int) bool { return vars[i].ID() < vars[j].ID() })
	return vars
}

// extractDisjointCover implements the Defined/Smaller/Larger policies: walk
// candidates in the given order, accepting each whose variables are all
// still unclaimed.
func extractDisjointCover(m *model.Model, candidates []candidate) []*model.Selection {
	claimed := make(map[*model.Variable]bool)
	var accepted []*model.Selection

	for _, cand := range candidates {
		if anyClaimed(cand.variables, claimed) {
			continue
		}
		accepted = append(accepted, m.NewSelectionAndRegister(cand.constraint, cand.variables))
		for _, v := range cand.variables {
			claimed[v] = true
		}
	}
	return accepted
}

// extractIndependentSelections implements the Independent policy: accept a
// candidate only if it shares no variable with any other candidate in the
// raw set (not just previously accepted ones).
func extractIndependentSelections(m *model.Model, candidates []candidate) []*model.Selection {
	owner := make(map[*model.Variable]int)
	for i, cand := range candidates {
		for _, v := range cand.variables {
			if _, seen := owner[v]; seen {
				owner[v] = -1 // shared by 2+ candidates, mark as conflicted
			} else {
				owner[v] = i
			}
		}
	}

	var accepted []*model.Selection
	for i, cand := range candidates {
		isolated := true
		for _, v := range cand.variables {
			if owner[v] != i {
				isolated = false
				break
			}
		}
		if !isolated {
			continue
		}
		accepted = append(accepted, m.NewSelectionAndRegister(cand.constraint, cand.variables))
	}
	return accepted
}

func anyClaimed(vars []*model.Variable, claimed map[*model.Variable]bool) bool {
	for _, v := range vars {
		if claimed[v] {
			return true
		}
	}
	return false
}
