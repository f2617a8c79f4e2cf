package neighborhood

import "github.com/gitrdm/printemps/pkg/model"

// UserDefinedGenerator wraps a caller-supplied move updater so custom move
// shapes flow through the same registration, toggling, screening, and
// shuffling path as the built-in generators.
type UserDefinedGenerator struct {
	// Update is called once per refresh and must return the current set of
	// candidate moves; UserDefinedGenerator itself builds no templates of
	// its own.
	Update func() []*model.Move

	cached []*model.Move
}

// NewUserDefinedGenerator wraps update.
func NewUserDefinedGenerator(update func() []*model.Move) *UserDefinedGenerator {
	return &UserDefinedGenerator{Update: update}
}

func (g *UserDefinedGenerator) Sense() model.MoveSense { return model.MoveUserDefined }

// Len calls Update once per refresh cycle and caches the result so Build
// doesn't re-invoke the caller's closure once per template.
func (g *UserDefinedGenerator) Len() int {
	g.cached = g.Update()
	return len(g.cached)
}

func (g *UserDefinedGenerator) Build(i int) (*model.Move, bool) {
	return g.cached[i], true
}
