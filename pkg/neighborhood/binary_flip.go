package neighborhood

import "github.com/gitrdm/printemps/pkg/model"

// BinaryFlipGenerator builds one template per Binary-sense variable: flip
// its value to the opposite bit.
type BinaryFlipGenerator struct {
	variables []*model.Variable
}

// NewBinaryFlipGenerator collects every Binary-sense variable in m, in
// variable-ID order.
func NewBinaryFlipGenerator(m *model.Model) *BinaryFlipGenerator {
	g := &BinaryFlipGenerator{}
	for _, v := range m.Variables() {
		if v.Sense() == model.Binary {
			g.variables = append(g.variables, v)
		}
	}
	return g
}

func (g *BinaryFlipGenerator) Sense() model.MoveSense { return model.MoveBinary }
func (g *BinaryFlipGenerator) Len() int               { return len(g.variables) }

func (g *BinaryFlipGenerator) Build(i int) (*model.Move, bool) {
	v := g.variables[i]
	return model.NewMove(model.MoveBinary, []model.Alteration{{Variable: v, Value: 1 - v.Value()}}), true
}
