package neighborhood

import "github.com/gitrdm/printemps/pkg/model"

// VariableBoundGenerator builds 4 templates per TypeVariableBound constraint
// (a two-variable inequality a·x + b·y ⋈ 0), mirroring AggregationGenerator's
// shift-one-force-the-other shape but, since the constraint is an
// inequality rather than an equality, clamping the forced variable to the
// tightest integer value that keeps the constraint satisfied (rounding
// toward feasibility) and then to the forced variable's own bounds — rather
// than requiring an exact algebraic solution.
type VariableBoundGenerator struct {
	constraints []twoVariableConstraint
}

func NewVariableBoundGenerator(m *model.Model) *VariableBoundGenerator {
	return &VariableBoundGenerator{constraints: collectTwoVariableConstraints(m, model.TypeVariableBound)}
}

func (g *VariableBoundGenerator) Sense() model.MoveSense { return model.MoveVariableBound }
func (g *VariableBoundGenerator) Len() int               { return 4 * len(g.constraints) }

func (g *VariableBoundGenerator) Build(i int) (*model.Move, bool) {
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

	useFloor := (tc.constraint.Sense() == model.Less) == (cForced > 0)
	var newForced int64
	if useFloor {
		newForced = floorDivInt64(numerator, cForced)
	} else {
		newForced = ceilDivInt64(numerator, cForced)
	}
	newForced = clampInt64(newForced, forced.Lower(), forced.Upper())

	return model.NewMove(model.MoveVariableBound, []model.Alteration{
		{Variable: moved, Value: newMoved},
		{Variable: forced, Value: newForced},
	}), true
}
