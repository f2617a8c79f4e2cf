package neighborhood

import "github.com/gitrdm/printemps/pkg/model"

// PrecedenceGenerator builds 2 templates per TypePrecedence constraint
// (a·x − a·y ⋈ 0): shifting both variables by the same ±1 delta, which
// leaves the constraint's value unchanged since a·(x+δ) − a·(y+δ) = a·x − a·y.
type PrecedenceGenerator struct {
	constraints []twoVariableConstraint
}

func NewPrecedenceGenerator(m *model.Model) *PrecedenceGenerator {
	return &PrecedenceGenerator{constraints: collectTwoVariableConstraints(m, model.TypePrecedence)}
}

func (g *PrecedenceGenerator) Sense() model.MoveSense { return model.MovePrecedence }
func (g *PrecedenceGenerator) Len() int               { return 2 * len(g.constraints) }

func (g *PrecedenceGenerator) Build(i int) (*model.Move, bool) {
	tc := g.constraints[i/2]
	delta := int64(1)
	if i%2 == 1 {
		delta = -1
	}
	return model.NewMove(model.MovePrecedence, []model.Alteration{
		{Variable: tc.x, Value: tc.x.Value() + delta},
		{Variable: tc.y, Value: tc.y.Value() + delta},
	}), true
}
