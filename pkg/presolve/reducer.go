// Package presolve implements the problem-size-reduction passes that run
// before (and, for bound updates, optionally during) the search: bound
// tightening, redundant-constraint removal, variable fixing, selection and
// dependent-variable extraction, and the GF(2) special-case solver.
package presolve

import (
	"github.com/gitrdm/printemps/pkg/classifier"
	"github.com/gitrdm/printemps/pkg/model"
)

// DefaultBoundLimit is the magnitude beyond which a derived bound tightening
// is suppressed rather than applied, to keep a single propagation pass from
// ballooning an unbounded variable's bound into a runaway value.
const DefaultBoundLimit int64 = 100000

// Summary reports what one Reduce call changed.
type Summary struct {
	FixedVariables      int
	DisabledConstraints int
	BoundUpdates        int
	Iterations          int
}

// Reducer runs ProblemSizeReducer's fixed-point loop (SPEC_FULL.md §4.4) plus
// its one-shot structural reductions. It keeps separate running counters for
// bound updates made before the search starts versus during optimization
// (presolve can be re-invoked incrementally once the search has fixed more
// variables), per §4.4's closing paragraph.
type Reducer struct {
	BoundLimit int64

	BoundUpdatesBeforeSearch int
	BoundUpdatesDuringSearch int
}

// NewReducer returns a Reducer using DefaultBoundLimit.
func NewReducer() *Reducer {
	return &Reducer{BoundLimit: DefaultBoundLimit}
}

// Reduce runs every reduction to a fixed point (iterating while any pass
// still changes something), then applies the one-shot structural
// reductions once. duringSearch selects which bound-update counter
// accrues.
func (r *Reducer) Reduce(m *model.Model, duringSearch bool) (Summary, error) {
	var summary Summary

	for {
		summary.Iterations++
		changed := 0

		f, err := r.fixIndependentVariables(m)
		if err != nil {
			return summary, err
		}
		changed += f
		summary.FixedVariables += f

		d, b, err := r.propagateBounds(m, duringSearch)
		if err != nil {
			return summary, err
		}
		changed += d + b
		summary.DisabledConstraints += d
		summary.BoundUpdates += b

		f2, err := r.fixImplicit(m)
		if err != nil {
			return summary, err
		}
		changed += f2
		summary.FixedVariables += f2

		if changed == 0 {
			break
		}
	}

	summary.FixedVariables += r.removeRedundantSetVariables(m)
	summary.DisabledConstraints += r.removeRedundantSetConstraints(m)
	summary.DisabledConstraints += r.extractImplicitEqualities(m)
	summary.DisabledConstraints += r.removeDuplicateConstraints(m)

	return summary, nil
}

// fixIndependentVariables fixes every non-fixed variable with no related
// constraints to whichever of {0, lower, upper} minimizes its signed
// objective contribution (§4.4.1).
func (r *Reducer) fixIndependentVariables(m *model.Model) (int, error) {
	obj := m.Objective()
	sign := obj.Sign()
	fixed := 0

	for _, v := range m.Variables() {
		if v.IsFixed() || len(v.RelatedConstraints()) > 0 {
			continue
		}
		coeff := obj.Coefficient(v)

		candidates := []int64{v.Lower(), v.Upper()}
		if v.Lower() <= 0 && 0 <= v.Upper() {
			candidates = append(candidates, 0)
		}

		best := candidates[0]
		bestContribution := sign * coeff * best
		for _, c := range candidates[1:] {
			contribution := sign * coeff * c
			if contribution < bestContribution {
				bestContribution = contribution
				best = c
			}
		}

		if err := v.Fix(best); err != nil {
			return fixed, err
		}
		fixed++
	}
	return fixed, nil
}

// fixImplicit fixes every non-fixed variable whose bounds have collapsed to
// a single value (§4.4.3). Run after bound propagation, which is what
// produces most such collapses.
func (r *Reducer) fixImplicit(m *model.Model) (int, error) {
	fixed := 0
	for _, v := range m.Variables() {
		if v.IsFixed() || v.Lower() != v.Upper() {
			continue
		}
		if err := v.Fix(v.Lower()); err != nil {
			return fixed, err
		}
		fixed++
	}
	return fixed, nil
}

// propagateBounds implements §4.4.2: for each enabled constraint, decide
// whether it is trivially redundant or provably infeasible over its
// expression's achievable range, and otherwise tighten each non-fixed
// variable's bound by assuming the rest of the constraint's mutable
// variables sit at whichever extreme makes the derived bound tightest
// (singleton constraints fall out of this as the case where only one
// variable is non-fixed: the two tightenings pin it exactly, or cross and
// reveal infeasibility).
func (r *Reducer) propagateBounds(m *model.Model, duringSearch bool) (disabled, boundUpdates int, err error) {
	for _, c := range m.Constraints() {
		if !c.IsEnabled() {
			continue
		}
		e := c.Expression()
		lower, upper := e.Bounds()

		redundant, infeasible := rangeVerdict(c.Sense(), lower, upper)
		if infeasible {
			return disabled, boundUpdates, model.ErrInfeasibleProblem
		}
		if redundant {
			c.Disable()
			disabled++
			continue
		}

		nonFixed := 0
		for v, a := range e.Terms() {
			if v.IsFixed() || a == 0 {
				continue
			}
			nonFixed++
			restLower, restUpper := e.BoundsExcluding(v)
			changed, infeasibleVar := r.tightenVariable(v, a, restLower, restUpper, c.Sense())
			if infeasibleVar {
				return disabled, boundUpdates, model.ErrInfeasibleProblem
			}
			if changed {
				boundUpdates++
				if duringSearch {
					r.BoundUpdatesDuringSearch++
				} else {
					r.BoundUpdatesBeforeSearch++
				}
			}
		}
		if nonFixed == 1 {
			c.Disable()
			disabled++
		}
	}
	return disabled, boundUpdates, nil
}

// rangeVerdict reports whether sense holds for every value in [lower,upper]
// (redundant — the constraint can be dropped) or for none of them
// (infeasible — no assignment can ever satisfy it).
func rangeVerdict(sense model.ConstraintSense, lower, upper int64) (redundant, infeasible bool) {
	switch sense {
	case model.Less:
		return upper <= 0, lower > 0
	case model.Greater:
		return lower >= 0, upper < 0
	default: // Equal
		return lower == 0 && upper == 0, lower > 0 || upper < 0
	}
}

// tightenVariable applies the necessary-condition bound derived from
// treating every other term at the extreme that makes the constraint
// hardest to satisfy, per the a*x ⋈ -rest algebra in DESIGN.md. Returns
// infeasible if the tightening would cross the variable's bounds.
func (r *Reducer) tightenVariable(v *model.Variable, a, restLower, restUpper int64, sense model.ConstraintSense) (changed, infeasible bool) {
	lower, upper := v.Lower(), v.Upper()
	newLower, newUpper := lower, upper

	if sense == model.Less || sense == model.Equal {
		bound := -restLower
		if a > 0 {
			if c := floorDiv(bound, a); c < newUpper && withinLimit(c, r.BoundLimit) {
				newUpper = c
			}
		} else {
			if c := ceilDiv(bound, a); c > newLower && withinLimit(c, r.BoundLimit) {
				newLower = c
			}
		}
	}
	if sense == model.Greater || sense == model.Equal {
		bound := -restUpper
		if a > 0 {
			if c := ceilDiv(bound, a); c > newLower && withinLimit(c, r.BoundLimit) {
				newLower = c
			}
		} else {
			if c := floorDiv(bound, a); c < newUpper && withinLimit(c, r.BoundLimit) {
				newUpper = c
			}
		}
	}

	if newLower == lower && newUpper == upper {
		return false, false
	}
	if newLower > newUpper {
		return false, true
	}
	_ = v.SetBounds(newLower, newUpper)
	return true, false
}

func withinLimit(v, limit int64) bool {
	if v < 0 {
		v = -v
	}
	return v <= limit
}

// floorDiv and ceilDiv divide possibly-negative a by possibly-negative
// nonzero b, flooring/ceiling toward -inf/+inf respectively rather than
// truncating toward zero as Go's native / does.
func floorDiv(a, b int64) int64 {
	q := a / b
	r := a % b
	if r != 0 && (r < 0) != (b < 0) {
		q--
	}
	return q
}

func ceilDiv(a, b int64) int64 {
	q := a / b
	r := a % b
	if r != 0 && (r < 0) == (b < 0) {
		q++
	}
	return q
}

// removeRedundantSetVariables implements §4.4's redundant set-variable
// removal: on a problem consisting only of set-partitioning/packing/
// covering constraints, two variables appearing in exactly the same
// (enabled) related-constraint set are interchangeable; all but the one
// with the best objective contribution are fixed to 0.
func (r *Reducer) removeRedundantSetVariables(m *model.Model) int {
	if !isPureSetProblem(m) {
		return 0
	}
	obj := m.Objective()
	sign := obj.Sign()

	groups := make(map[uint64][]*model.Variable)
	for _, v := range m.Variables() {
		if v.IsFixed() || v.Sense() == model.Selection || v.Sense().IsDependent() {
			continue
		}
		groups[relatedConstraintIdentityHash(v)] = append(groups[relatedConstraintIdentityHash(v)], v)
	}

	fixed := 0
	for _, members := range groups {
		if len(members) < 2 {
			continue
		}
		if !sameRelatedConstraintSet(members) {
			continue
		}
		best := members[0]
		bestContribution := sign * obj.Coefficient(best)
		for _, v := range members[1:] {
			contribution := sign * obj.Coefficient(v)
			if contribution < bestContribution {
				bestContribution = contribution
				best = v
			}
		}
		for _, v := range members {
			if v == best || v.IsFixed() {
				continue
			}
			_ = v.Fix(0)
			fixed++
		}
	}
	return fixed
}

// relatedConstraintIdentityHash sums each related constraint's ID plus one, a cheap
// grouping key that is then confirmed exactly by sameRelatedConstraintSet
// (hash collisions only cost an extra comparison, never correctness).
func relatedConstraintIdentityHash(v *model.Variable) uint64 {
	var h uint64
	for _, c := range v.RelatedConstraints() {
		h += uint64(c.ID()) + 1
	}
	return h
}

func sameRelatedConstraintSet(members []*model.Variable) bool {
	first := constraintSet(members[0])
	for _, v := range members[1:] {
		other := constraintSet(v)
		if len(other) != len(first) {
			return false
		}
		for c := range first {
			if !other[c] {
				return false
			}
		}
	}
	return true
}

func constraintSet(v *model.Variable) map[*model.Constraint]bool {
	set := make(map[*model.Constraint]bool, len(v.RelatedConstraints()))
	for _, c := range v.RelatedConstraints() {
		set[c] = true
	}
	return set
}

// isPureSetProblem reports whether every enabled constraint classifies as
// SetPartitioning, SetPacking, or SetCovering.
func isPureSetProblem(m *model.Model) bool {
	any := false
	for _, c := range m.Constraints() {
		if !c.IsEnabled() {
			continue
		}
		any = true
		classifier.Classify(c)
		switch c.Type() {
		case model.TypeSetPartitioning, model.TypeSetPacking, model.TypeSetCovering:
		default:
			return false
		}
	}
	return any
}

// removeRedundantSetConstraints disables an exclusive-OR/set-partitioning
// constraint whose variable set is a strict superset of another's, fixing
// its extra variables to 0 (§4.4).
func (r *Reducer) removeRedundantSetConstraints(m *model.Model) int {
	candidates := make([]*model.Constraint, 0)
	for _, c := range m.Constraints() {
		if !c.IsEnabled() {
			continue
		}
		classifier.Classify(c)
		switch c.Type() {
		case model.TypeExclusiveOR, model.TypeExclusiveNOR, model.TypeSetPartitioning:
			candidates = append(candidates, c)
		}
	}

	disabled := 0
	for _, outer := range candidates {
		if !outer.IsEnabled() {
			continue
		}
		outerVars := nonFixedVariableSet(outer)
		for _, inner := range candidates {
			if inner == outer || !inner.IsEnabled() {
				continue
			}
			innerVars := nonFixedVariableSet(inner)
			if len(outerVars) <= len(innerVars) || !isSuperset(outerVars, innerVars) {
				continue
			}
			for v := range outerVars {
				if !innerVars[v] && !v.IsFixed() {
					_ = v.Fix(0)
				}
			}
			outer.Disable()
			disabled++
			break
		}
	}
	return disabled
}

func nonFixedVariableSet(c *model.Constraint) map[*model.Variable]bool {
	set := make(map[*model.Variable]bool)
	for v := range c.Expression().Terms() {
		if !v.IsFixed() {
			set[v] = true
		}
	}
	return set
}

func isSuperset(a, b map[*model.Variable]bool) bool {
	for v := range b {
		if !a[v] {
			return false
		}
	}
	return true
}

// extractImplicitEqualities finds pairs of enabled constraints e<=0 and
// e>=0 over equal expressions and replaces both with a single e=0
// constraint (§4.4). A pair of same-sense constraints over negated
// expressions (e<=0 with -e<=0, or e>=0 with -e>=0) is not detected.
func (r *Reducer) extractImplicitEqualities(m *model.Model) int {
	bySense := make(map[model.ConstraintSense][]*model.Constraint)
	for _, c := range m.Constraints() {
		if c.IsEnabled() && c.Sense() != model.Equal {
			bySense[c.Sense()] = append(bySense[c.Sense()], c)
		}
	}
	disabled := 0
	lessList := bySense[model.Less]
	greaterList := bySense[model.Greater]
	for _, lc := range lessList {
		if !lc.IsEnabled() {
			continue
		}
		for _, gc := range greaterList {
			if !gc.IsEnabled() {
				continue
			}
			if !lc.Expression().Equal(gc.Expression()) {
				continue
			}
			lc.Disable()
			gc.Disable()
			eq, err := m.CreateConstraint(lc.Name()+"&"+gc.Name()+"#eq", lc.Expression(), model.Equal)
			if err == nil {
				classifier.Classify(eq)
			}
			disabled += 2
			break
		}
	}
	return disabled
}

// removeDuplicateConstraints groups enabled constraints by (sense,
// expression content hash) and disables every member of a group after the
// first, since they are structurally identical (§4.4).
func (r *Reducer) removeDuplicateConstraints(m *model.Model) int {
	type groupKey struct {
		sense model.ConstraintSense
		size  int
	}
	seen := make(map[groupKey][]*model.Constraint)
	disabled := 0
	for _, c := range m.Constraints() {
		if !c.IsEnabled() {
			continue
		}
		gk := groupKey{sense: c.Sense(), size: c.Expression().Size()}
		dup := false
		for _, existing := range seen[gk] {
			if existing.Expression().Equal(c.Expression()) {
				c.Disable()
				disabled++
				dup = true
				break
			}
		}
		if !dup {
			seen[gk] = append(seen[gk], c)
		}
	}
	return disabled
}
