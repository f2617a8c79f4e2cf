package neighborhood

import (
	"sort"

	"github.com/gitrdm/printemps/pkg/model"
)

// twoVariableConstraint is an Aggregation/Precedence/VariableBound
// constraint decomposed into its two variables (ordered by ID, since
// Expression.Terms() returns an unordered map and these generators need a
// stable x/y assignment across refreshes) and their coefficients.
type twoVariableConstraint struct {
	constraint *model.Constraint
	x, y       *model.Variable
	cx, cy     int64
}

func collectTwoVariableConstraints(m *model.Model, ctype model.ConstraintType) []twoVariableConstraint {
	var out []twoVariableConstraint
	for _, c := range m.Constraints() {
		if !c.IsEnabled() || c.Type() != ctype {
			continue
		}
		expr := c.Expression()
		terms := expr.Terms()
		if len(terms) != 2 {
			continue
		}
		vars := make([]*model.Variable, 0, 2)
		for v := range terms {
			vars = append(vars, v)
		}
		sort.Slice(vars, func(i, j int) bool { return vars[i].ID() < vars[j].ID() })
		out = append(out, twoVariableConstraint{
			constraint: c,
			x:          vars[0],
			y:          vars[1],
			cx:         terms[vars[0]],
			cy:         terms[vars[1]],
		})
	}
	return out
}

func floorDivInt64(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func ceilDivInt64(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) == (b < 0)) {
		q++
	}
	return q
}

func clampInt64(v, lower, upper int64) int64 {
	if v < lower {
		return lower
	}
	if v > upper {
		return upper
	}
	return v
}
