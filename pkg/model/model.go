package model

import "fmt"

// FeasibilityEpsilon documents the tolerance named in SPEC_FULL.md §4.10
// (ε = 1e-6) for judging feasibility from a summed violation. This engine's
// constraint values and violations are always exact int64 arithmetic (no
// float accumulation), so comparing TotalViolation to zero is already exact;
// the constant exists so Score.IsFeasible's definition is traceable back to
// the spec rather than looking like an arbitrary int comparison.
const FeasibilityEpsilon = 1e-6

// Score is the result of Model.Evaluate / Model.EvaluateInitial: everything
// the outer search driver needs to accept or reject a candidate move.
type Score struct {
	Objective                int64
	ObjectiveImprovement     int64
	TotalViolation           int64
	LocalPenalty             float64
	GlobalPenalty            float64
	LocalAugmentedObjective  float64
	GlobalAugmentedObjective float64
	IsObjectiveImprovable    bool
	IsConstraintImprovable   bool
	IsFeasible               bool
}

// Builder is the interface an external instance parser (PB/LP/MPS — out of
// scope per §1) replays into to construct a Model. *Model implements it
// directly.
type Builder interface {
	CreateVariable(name string, lower, upper int64) (*Variable, error)
	CreateExpression(terms map[*Variable]int64, constant int64) (*Expression, error)
	CreateConstraint(name string, expr *Expression, sense ConstraintSense) (*Constraint, error)
	Minimize(expr *Expression)
	Maximize(expr *Expression)
	ImportSolution(values map[string]int64) error
}

// Model owns every Variable, Expression, Constraint, and Selection in a
// problem instance. All engines (classifier, presolve, neighborhood)
// receive a mutable reference to the Model at setup and then operate
// through it; per §5, variable/expression/constraint containers hold
// pointers and are each capped at ProxyLimit, so the objects handed out in
// Moves and related-constraint lists never move for the Model's lifetime.
type Model struct {
	variables   []*Variable
	expressions []*Expression
	constraints []*Constraint
	selections  []*Selection

	variablesByName map[string]*Variable

	objective *Objective

	dependentDefinitions []dependentDefinition

	iteration int
}

type dependentDefinition struct {
	variable   *Variable
	expression *Expression
}

// NewModel creates an empty model with a default (zero) minimization
// objective.
func NewModel() *Model {
	m := &Model{
		variablesByName: make(map[string]*Variable),
	}
	m.objective = NewObjective(NewEmptyExpression(), true)
	return m
}

// Variables returns every variable created in declaration order.
func (m *Model) Variables() []*Variable { return m.variables }

// Expressions returns every expression created in declaration order
// (includes constraint-owning expressions, the objective's expression, and
// dependent-variable defining expressions).
func (m *Model) Expressions() []*Expression { return m.expressions }

// Constraints returns every constraint created in declaration order.
func (m *Model) Constraints() []*Constraint { return m.constraints }

// EnabledConstraints returns the subset of Constraints that are currently
// enabled.
func (m *Model) EnabledConstraints() []*Constraint {
	out := make([]*Constraint, 0, len(m.constraints))
	for _, c := range m.constraints {
		if c.IsEnabled() {
			out = append(out, c)
		}
	}
	return out
}

// Selections returns every selection block extracted so far.
func (m *Model) Selections() []*Selection { return m.selections }

// Objective returns the model's objective.
func (m *Model) Objective() *Objective { return m.objective }

// Iteration returns the number of moves committed via Update so far.
func (m *Model) Iteration() int { return m.iteration }

// VariableByName looks up a variable by its declared name.
func (m *Model) VariableByName(name string) (*Variable, bool) {
	v, ok := m.variablesByName[name]
	return v, ok
}

// CreateVariable creates and registers a new variable. Returns
// ErrProxyLimitExceeded once the model already holds ProxyLimit variables,
// or ErrInvalidBounds if lower > upper.
func (m *Model) CreateVariable(name string, lower, upper int64) (*Variable, error) {
	if len(m.variables) >= ProxyLimit {
		return nil, fmt.Errorf("%w: variable %q would be proxy #%d", ErrProxyLimitExceeded, name, len(m.variables)+1)
	}
	v, err := NewVariable(len(m.variables), name, lower, upper)
	if err != nil {
		return nil, err
	}
	m.variables = append(m.variables, v)
	m.variablesByName[name] = v
	return v, nil
}

// CreateExpression creates and registers a new expression.
func (m *Model) CreateExpression(terms map[*Variable]int64, constant int64) (*Expression, error) {
	if len(m.expressions) >= ProxyLimit {
		return nil, fmt.Errorf("%w: expression would be proxy #%d", ErrProxyLimitExceeded, len(m.expressions)+1)
	}
	e := NewExpression(terms, constant)
	m.expressions = append(m.expressions, e)
	return e, nil
}

// CreateConstraint creates and registers a new constraint over expr.
func (m *Model) CreateConstraint(name string, expr *Expression, sense ConstraintSense) (*Constraint, error) {
	if len(m.constraints) >= ProxyLimit {
		return nil, fmt.Errorf("%w: constraint %q would be proxy #%d", ErrProxyLimitExceeded, name, len(m.constraints)+1)
	}
	c := NewConstraint(len(m.constraints), name, expr, sense)
	m.constraints = append(m.constraints, c)
	return c, nil
}

// registerSelection appends a newly extracted selection block.
func (m *Model) registerSelection(s *Selection) { m.selections = append(m.selections, s) }

// NewSelectionAndRegister builds a Selection from source/variables and
// registers it on the model; used by pkg/presolve's SelectionExtractor.
func (m *Model) NewSelectionAndRegister(source *Constraint, variables []*Variable) *Selection {
	s := NewSelection(len(m.selections), source, variables)
	m.registerSelection(s)
	return s
}

// RegisterDependentDefinition records that variable's value is now defined
// by expression (produced by Expression.Solve during dependent-variable
// extraction). Model.Update keeps the variable's value in sync with the
// expression on every commit. expression must already be registered via
// CreateExpression (or directly appended) so the general expression-refresh
// pass in Update also recomputes it.
func (m *Model) RegisterDependentDefinition(variable *Variable, expression *Expression) {
	m.dependentDefinitions = append(m.dependentDefinitions, dependentDefinition{variable, expression})
}

// Minimize sets expr as the objective, signed for minimization.
func (m *Model) Minimize(expr *Expression) { m.objective = NewObjective(expr, true) }

// Maximize sets expr as the objective, signed for maximization.
func (m *Model) Maximize(expr *Expression) { m.objective = NewObjective(expr, false) }

// ImportSolution applies an initial value to each named variable. Unknown
// names are ignored (the caller's instance may define more proxies than
// this particular solution file names). Returns ErrInvalidInitialValue if a
// value falls outside its variable's bounds.
func (m *Model) ImportSolution(values map[string]int64) error {
	for name, value := range values {
		v, ok := m.variablesByName[name]
		if !ok {
			continue
		}
		if value < v.Lower() || value > v.Upper() {
			return fmt.Errorf("%w: %q = %d outside [%d,%d]", ErrInvalidInitialValue, name, value, v.Lower(), v.Upper())
		}
		if !v.TrySetValue(value) && v.Value() != value {
			return fmt.Errorf("%w: %q is fixed to %d, cannot import %d", ErrInvalidInitialValue, name, v.Value(), value)
		}
	}
	return nil
}

// Setup finalizes the model after build, classification, presolve, and
// structure extraction: it builds every expression's FixedSizeHashMap
// mirror and mutable-sensitivity partition, assembles each variable's
// objective sensitivity, and performs one full (non-incremental) update so
// every cached expression/constraint value is populated before the search
// loop starts (§2's data-flow summary).
func (m *Model) Setup() {
	for _, e := range m.expressions {
		e.SetupFixedSensitivities()
		e.SetupMutableVariableSensitivities()
	}
	m.objective.SetupFixedSensitivities()
	m.objective.SetupMutableVariableSensitivities()

	for _, v := range m.variables {
		v.SetObjectiveSensitivity(m.objective.Coefficient(v))
	}

	for _, c := range m.constraints {
		c.Update()
	}
	m.objective.Update()
}

// EvaluateInitial performs a full (non-incremental) score computation from
// the model's current cached values, used to seed the search loop's
// incumbent score. localPenalties/globalPenalties supply a per-constraint
// penalty coefficient (missing entries default to 0).
func (m *Model) EvaluateInitial(localPenalties, globalPenalties map[*Constraint]float64) Score {
	var totalViolation int64
	var localPenalty, globalPenalty float64
	for _, c := range m.constraints {
		if !c.IsEnabled() {
			continue
		}
		v := c.Violation()
		totalViolation += v
		localPenalty += float64(v) * localPenalties[c]
		globalPenalty += float64(v) * globalPenalties[c]
	}
	raw := m.objective.Value()
	signed := m.objective.Sign() * raw
	return Score{
		Objective:                raw,
		ObjectiveImprovement:     0,
		TotalViolation:           totalViolation,
		LocalPenalty:             localPenalty,
		GlobalPenalty:            globalPenalty,
		LocalAugmentedObjective:  float64(signed) + localPenalty,
		GlobalAugmentedObjective: float64(signed) + globalPenalty,
		IsObjectiveImprovable:    false,
		IsConstraintImprovable:   false,
		IsFeasible:               totalViolation == 0,
	}
}

// Evaluate is the hot path (§4.10): starting from current, score the effect
// of move by iterating only over move's related constraints and the
// objective's fast delta, never touching any cache.
func (m *Model) Evaluate(move *Move, current Score, localPenalties, globalPenalties map[*Constraint]float64) Score {
	totalViolation := current.TotalViolation
	localPenalty := current.LocalPenalty
	globalPenalty := current.GlobalPenalty
	isConstraintImprovable := false

	for _, c := range move.RelatedConstraints {
		if !c.IsEnabled() {
			continue
		}
		oldViolation := c.Violation()
		_, newViolation := c.EvaluateMove(move)
		delta := newViolation - oldViolation
		if delta != 0 {
			totalViolation += delta
			localPenalty += float64(delta) * localPenalties[c]
			globalPenalty += float64(delta) * globalPenalties[c]
		}
		if delta < 0 {
			isConstraintImprovable = true
		}
	}

	rawObjective := m.objective.EvaluateMove(move)
	signedOld := m.objective.Sign() * current.Objective
	signedNew := m.objective.Sign() * rawObjective
	objectiveImprovement := signedOld - signedNew

	return Score{
		Objective:                rawObjective,
		ObjectiveImprovement:     objectiveImprovement,
		TotalViolation:           totalViolation,
		LocalPenalty:             localPenalty,
		GlobalPenalty:            globalPenalty,
		LocalAugmentedObjective:  float64(signedNew) + localPenalty,
		GlobalAugmentedObjective: float64(signedNew) + globalPenalty,
		IsObjectiveImprovable:    objectiveImprovement > 0,
		IsConstraintImprovable:   isConstraintImprovable,
		IsFeasible:               totalViolation == 0,
	}
}

// Update commits move (§4.10): updates the objective, every enabled
// constraint in move's related set, every registered expression (so
// dependent-variable defining expressions and any other standalone
// expression stay current), writes each alteration back into its variable,
// and — for a MoveSelection move — installs the newly-valued variable as
// its block's selected member. An expression shared by several of these
// (the objective's expression is also registered) is updated only once.
func (m *Model) Update(move *Move) {
	m.iteration++

	m.objective.UpdateMove(move)
	updated := map[*Expression]bool{m.objective.Expression: true}

	for _, c := range move.RelatedConstraints {
		if !c.IsEnabled() {
			continue
		}
		if updated[c.expr] {
			c.constraintValue = c.expr.Value()
			c.violationValue = c.violationOf(c.constraintValue)
			continue
		}
		c.UpdateMove(move)
		updated[c.expr] = true
	}

	for _, e := range m.expressions {
		if !updated[e] {
			e.UpdateMove(move)
		}
	}

	for _, a := range move.Alterations {
		if !a.Variable.TrySetValue(a.Value) {
			// Screening should have rejected any move touching a fixed
			// variable; a write that reaches here regardless is a
			// programmer error upstream, not a runtime condition to
			// recover from silently.
			panic(fmt.Sprintf("model: Update attempted to write fixed variable %q", a.Variable.Name()))
		}
		a.Variable.touch(m.iteration)
	}

	for _, dd := range m.dependentDefinitions {
		dd.variable.TrySetValue(dd.expression.Value())
		dd.variable.touch(m.iteration)
	}

	if move.Sense == MoveSelection && len(move.Alterations) == 2 {
		cleared := move.Alterations[0].Variable
		set := move.Alterations[1].Variable
		if block := cleared.SelectionBlock(); block != nil {
			block.SetSelected(set)
		} else if block := set.SelectionBlock(); block != nil {
			block.SetSelected(set)
		}
	}
}
