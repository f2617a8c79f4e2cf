package presolve

import (
	"sort"

	"github.com/gitrdm/printemps/pkg/model"
)

// FlippablePair is a candidate pair of binary/selection variables whose
// related constraints overlap heavily enough that flipping both together
// (rather than one at a time) is likely to stay feasible. No neighborhood
// generator in this module consumes these pairs.
type FlippablePair struct {
	First, Second          *model.Variable
	NumberOfCommonElements int
	OverlapRate            float64
}

// ExtractFlippablePairs considers every non-fixed binary or selection
// variable with at least minimumCommonElement related constraints, and
// pairs up those whose related-constraint sets (the deduplicated union
// across every constraint the variable was ever registered on, enabled or
// not — same convention as Variable.RelatedConstraints) intersect in at
// least minimumCommonElement constraints. Pairs are returned sorted by
// descending overlap rate (intersection size / union size).
func ExtractFlippablePairs(m *model.Model, minimumCommonElement int) []FlippablePair {
	candidates := flippableCandidates(m, minimumCommonElement)

	var pairs []FlippablePair
	for i := 0; i < len(candidates); i++ {
		first := constraintSet(candidates[i])
		for j := i + 1; j < len(candidates); j++ {
			second := constraintSet(candidates[j])

			common := intersectionSize(first, second)
			if common < minimumCommonElement {
				continue
			}
			union := len(first) + len(second) - common

			pairs = append(pairs, FlippablePair{
				First:                  candidates[i],
				Second:                 candidates[j],
				NumberOfCommonElements: common,
				OverlapRate:            float64(common) / float64(union),
			})
		}
	}

	sort.SliceStable(pairs, func(i, j int) bool {
		return pairs[i].OverlapRate > pairs[j].OverlapRate
	})
	return pairs
}

func flippableCandidates(m *model.Model, minimumCommonElement int) []*model.Variable {
	seen := make(map[*model.Variable]bool)
	var candidates []*model.Variable

	for _, c := range m.Constraints() {
		if !c.IsEnabled() {
			continue
		}
		for v := range c.Expression().Terms() {
			if seen[v] || v.IsFixed() {
				continue
			}
			if v.Sense() != model.Binary && v.Sense() != model.Selection {
				continue
			}
			if len(v.RelatedConstraints()) < minimumCommonElement {
				continue
			}
			seen[v] = true
			candidates = append(candidates, v)
		}
	}

	sort.Slice(candidates, func(i, j int) bool { return candidates[i].ID() < candidates[j].ID() })
	return candidates
}

func intersectionSize(a, b map[*model.Constraint]bool) int {
	small, large := a, b
	if len(large) < len(small) {
		small, large = large, small
	}
	count := 0
	for c := range small {
		if large[c] {
			count++
		}
	}
	return count
}
