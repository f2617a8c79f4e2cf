package neighborhood

import "github.com/gitrdm/printemps/pkg/model"

// IntegerShiftGenerator builds two templates per Integer-sense variable:
// increment and decrement by 1.
type IntegerShiftGenerator struct {
	variables []*model.Variable
}

// NewIntegerShiftGenerator collects every plain Integer-sense variable in m
// (Binary, Selection, and dependent variables have their own generators or
// are never directly altered), in variable-ID order.
func NewIntegerShiftGenerator(m *model.Model) *IntegerShiftGenerator {
	g := &IntegerShiftGenerator{}
	for _, v := range m.Variables() {
		if v.Sense() == model.Integer {
			g.variables = append(g.variables, v)
		}
	}
	return g
}

func (g *IntegerShiftGenerator) Sense() model.MoveSense { return model.MoveInteger }
func (g *IntegerShiftGenerator) Len() int               { return 2 * len(g.variables) }

func (g *IntegerShiftGenerator) Build(i int) (*model.Move, bool) {
	v := g.variables[i/2]
	delta := int64(1)
	if i%2 == 1 {
		delta = -1
	}
	return model.NewMove(model.MoveInteger, []model.Alteration{{Variable: v, Value: v.Value() + delta}}), true
}
