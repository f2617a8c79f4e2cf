package neighborhood

import "github.com/gitrdm/printemps/pkg/model"

// ExclusiveGenerator builds one template per (constraint, member) pair over
// every enabled TypeSetPartitioning/TypeSetPacking constraint that was not
// extracted into a Selection block (an extracted block's source constraint
// is disabled, so it is simply absent from this scan): set member to 1 and
// every other variable in the same constraint to 0.
type ExclusiveGenerator struct {
	groups [][]*model.Variable
}

func NewExclusiveGenerator(m *model.Model) *ExclusiveGenerator {
	g := &ExclusiveGenerator{}
	for _, c := range m.Constraints() {
		if !c.IsEnabled() {
			continue
		}
		if c.Type() != model.TypeSetPartitioning && c.Type() != model.TypeSetPacking {
			continue
		}
		var vars []*model.Variable
		for v := range c.Expression().Terms() {
			vars = append(vars, v)
		}
		if len(vars) < 2 {
			continue
		}
		g.groups = append(g.groups, vars)
	}
	return g
}

func (g *ExclusiveGenerator) Sense() model.MoveSense { return model.MoveExclusive }

func (g *ExclusiveGenerator) Len() int {
	n := 0
	for _, grp := range g.groups {
		n += len(grp)
	}
	return n
}

func (g *ExclusiveGenerator) Build(i int) (*model.Move, bool) {
	for _, grp := range g.groups {
		if i < len(grp) {
			toSet := grp[i]
			if toSet.Value() == 1 {
				return nil, false
			}
			alterations := make([]model.Alteration, 0, len(grp))
			alterations = append(alterations, model.Alteration{Variable: toSet, Value: 1})
			for _, other := range grp {
				if other != toSet {
					alterations = append(alterations, model.Alteration{Variable: other, Value: 0})
				}
			}
			return model.NewMove(model.MoveExclusive, alterations), true
		}
		i -= len(grp)
	}
	return nil, false
}
