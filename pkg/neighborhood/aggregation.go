package neighborhood

import "github.com/gitrdm/printemps/pkg/model"

// AggregationGenerator builds 4 templates per TypeAggregation constraint
// (a·x + b·y + c = 0): shifting x or y by ±1 and deriving the exact forced
// value the other variable must take to keep the equation satisfied.
type AggregationGenerator struct {
	constraints []twoVariableConstraint
}

// NewAggregationGenerator collects every enabled TypeAggregation constraint
// in m (the classifier must already have run).
func NewAggregationGenerator(m *model.Model) *AggregationGenerator {
	return &AggregationGenerator{constraints: collectTwoVariableConstraints(m, model.TypeAggregation)}
}

func (g *AggregationGenerator) Sense() model.MoveSense { return model.MoveAggregation }
func (g *AggregationGenerator) Len() int               { return 4 * len(g.constraints) }

// Build derives template i//4's constraint and (i%4)'s shift direction:
// 0 = x+1 (force y), 1 = x-1 (force y), 2 = y+1 (force x), 3 = y-1 (force x).
// Returns ok=false if the forced partner value would not be an exact
// integer this round.
func (g *AggregationGenerator) Build(i int) (*model.Move, bool) {
	tc := g.constraints[i/4]
	variant := i % 4

	var moved, forced *model.Variable
	var cMoved, cForced int64
	var delta int64
	switch variant {
	case 0, 1:
		moved, forced = tc.x, tc.y
		cMoved, cForced = tc.cx, tc.cy
		delta = 1
		if variant == 1 {
			delta = -1
		}
	case 2, 3:
		moved, forced = tc.y, tc.x
		cMoved, cForced = tc.cy, tc.cx
		delta = 1
		if variant == 3 {
			delta = -1
		}
	}

	newMoved := moved.Value() + delta
	constant := tc.constraint.Expression().Constant()
	numerator := -constant - cMoved*newMoved
	if numerator%cForced != 0 {
		return nil, false
	}
	newForced := numerator / cForced

	return model.NewMove(model.MoveAggregation, []model.Alteration{
		{Variable: moved, Value: newMoved},
		{Variable: forced, Value: newForced},
	}), true
}
