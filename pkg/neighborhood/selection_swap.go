package neighborhood

import "github.com/gitrdm/printemps/pkg/model"

// SelectionSwapGenerator builds one template per (block, candidate member)
// pair over every Selection block: clear the currently selected member and
// set candidate to 1. The template for whichever member is currently
// selected is skipped (it is a no-op move).
type SelectionSwapGenerator struct {
	selections []*model.Selection
}

func NewSelectionSwapGenerator(m *model.Model) *SelectionSwapGenerator {
	return &SelectionSwapGenerator{selections: m.Selections()}
}

func (g *SelectionSwapGenerator) Sense() model.MoveSense { return model.MoveSelection }

func (g *SelectionSwapGenerator) Len() int {
	n := 0
	for _, s := range g.selections {
		n += len(s.Variables())
	}
	return n
}

func (g *SelectionSwapGenerator) Build(i int) (*model.Move, bool) {
	for _, s := range g.selections {
		members := s.Variables()
		if i < len(members) {
			candidate := members[i]
			if candidate == s.Selected() {
				return nil, false
			}
			return model.NewSelectionMove(s, s.Selected(), candidate), true
		}
		i -= len(members)
	}
	return nil, false
}
