// Package neighborhood builds and refreshes the structured move generators
// of §4.8: one generator per structural shape a classified constraint (or a
// selection block, or a bare variable) can take, each maintaining a pool of
// Move templates that is rebuilt once and re-evaluated against the model's
// current variable values on every outer iteration.
package neighborhood

import (
	"math/rand"

	"github.com/gitrdm/printemps/internal/parallel"
	"github.com/gitrdm/printemps/pkg/model"
)

// Generator is one structural move-template pool. Build(i) re-evaluates
// template i against the model's current state, returning ok=false if the
// template does not currently produce a well-defined move (e.g. an
// Aggregation template whose forced partner value is not an integer this
// round).
type Generator interface {
	Sense() model.MoveSense
	Len() int
	Build(i int) (*model.Move, bool)
}

// Screen controls the admissibility filter applied to every refreshed move,
// per §4.8.
type Screen struct {
	// RequireImprovable rejects a move unless at least one altered variable
	// has ObjectiveImprovable or FeasibilityImprovable set.
	RequireImprovable bool
}

// Neighborhood owns the full set of generators, their enable/disable
// toggles, the admissibility screen, and the optional shuffle/parallel
// knobs used when refreshing.
type Neighborhood struct {
	generators map[model.MoveSense]Generator
	order      []model.MoveSense
	enabled    map[model.MoveSense]bool

	model  *model.Model
	screen Screen
	rng    *rand.Rand
	par    *parallel.Config
}

// New builds a Neighborhood over m with every standard generator registered
// and enabled, mirroring §4.8's table. Binary flip, Integer shift,
// Aggregation, Precedence, Variable bound, Exclusive, and Selection swap are
// all derived directly from m's current constraints/selections; User-defined
// moves are added separately via AddUserDefined.
func New(m *model.Model) *Neighborhood {
	n := &Neighborhood{
		generators: make(map[model.MoveSense]Generator),
		enabled:    make(map[model.MoveSense]bool),
		model:      m,
	}
	n.register(NewBinaryFlipGenerator(m))
	n.register(NewIntegerShiftGenerator(m))
	n.register(NewAggregationGenerator(m))
	n.register(NewPrecedenceGenerator(m))
	n.register(NewVariableBoundGenerator(m))
	n.register(NewExclusiveGenerator(m))
	n.register(NewSelectionSwapGenerator(m))
	return n
}

// register installs g, appending its sense to the registration order the
// first time it is seen. Re-registering an already-registered sense (e.g.
// AddUserDefined replacing a prior user-defined generator) keeps its
// original position in that order.
func (n *Neighborhood) register(g Generator) {
	if _, exists := n.generators[g.Sense()]; !exists {
		n.order = append(n.order, g.Sense())
	}
	n.generators[g.Sense()] = g
	n.enabled[g.Sense()] = true
}

// AddUserDefined installs (or replaces) the caller-supplied generator.
// Per the Open Question in §9, enabling a user-defined generator does not
// implicitly disable any default generator — every toggle is independent
// unless the caller explicitly disables others too.
func (n *Neighborhood) AddUserDefined(g *UserDefinedGenerator) {
	n.register(g)
}

// SetEnabled toggles one generator by its MoveSense. Toggling an
// unregistered sense is a silent no-op.
func (n *Neighborhood) SetEnabled(sense model.MoveSense, enabled bool) {
	if _, ok := n.generators[sense]; ok {
		n.enabled[sense] = enabled
	}
}

// SetScreen replaces the admissibility screen configuration.
func (n *Neighborhood) SetScreen(s Screen) { n.screen = s }

// SetShuffle installs the PRNG used to shuffle the admitted move list after
// each refresh. A nil rng disables shuffling (templates are returned in
// generator-registration, then template-index, order).
func (n *Neighborhood) SetShuffle(rng *rand.Rand) { n.rng = rng }

// SetParallel installs the loop-level parallelism configuration used for
// template refresh and screening. A nil config runs sequentially.
func (n *Neighborhood) SetParallel(p *parallel.Config) { n.par = p }

// Refresh rebuilds every enabled generator's move list against the model's
// current state, screens each for admissibility, and returns the admitted
// moves as a single sequence (shuffled, if a PRNG was installed).
func (n *Neighborhood) Refresh() []*model.Move {
	hasFixed := n.modelHasFixedVariable()

	var out []*model.Move
	for _, sense := range n.order {
		if !n.enabled[sense] {
			continue
		}
		g := n.generators[sense]
		length := g.Len()
		built := make([]*model.Move, length)
		n.par.For(length, func(i int) {
			move, ok := g.Build(i)
			if !ok {
				return
			}
			if !n.admissible(move, hasFixed) {
				return
			}
			built[i] = move
		})
		for _, move := range built {
			if move != nil {
				out = append(out, move)
			}
		}
	}

	if n.rng != nil {
		n.rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	}
	return out
}

func (n *Neighborhood) modelHasFixedVariable() bool {
	for _, v := range n.model.Variables() {
		if v.IsFixed() {
			return true
		}
	}
	return false
}

// admissible applies §4.8's screen. Exclusive's own "to-set variable already
// 1" rule lives in ExclusiveGenerator.Build itself, since it needs the
// specific to-set alteration rather than the generic bounds/fixed/selection
// checks here.
func (n *Neighborhood) admissible(move *model.Move, hasFixed bool) bool {
	if hasFixed && move.HasFixedVariable() {
		return false
	}
	if move.Sense != model.MoveSelection && move.TouchesSelection() {
		return false
	}
	if move.Sense != model.MoveBinary && move.ViolatesBounds() {
		return false
	}
	if n.screen.RequireImprovable && !move.HasImprovableVariable() {
		return false
	}
	return true
}
