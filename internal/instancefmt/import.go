package instancefmt

import (
	"fmt"

	"github.com/gitrdm/printemps/pkg/model"
)

// Import replays inst into b in three passes: declare every variable
// named in the objective or a constraint row (bounds defaulting to the
// pseudo-Boolean [0,1] unless overridden by a bounds row; a variable named
// only in a bounds row is not declared), build the objective expression,
// then build one constraint per row. Variables are declared in the order
// their name is first encountered (objective row first, then constraints in
// file order), matching the original's single left-to-right pass over a PB
// file.
func Import(b model.Builder, inst *Instance) error {
	order := collectVariableOrder(inst)
	bounds := make(map[string]BoundDef, len(inst.Bounds))
	for _, bd := range inst.Bounds {
		bounds[bd.Variable] = bd
	}

	vars := make(map[string]*model.Variable, len(order))
	for _, name := range order {
		lower, upper := int64(0), int64(1)
		if bd, ok := bounds[name]; ok {
			lower, upper = bd.Lower, bd.Upper
		}
		v, err := b.CreateVariable(name, lower, upper)
		if err != nil {
			return fmt.Errorf("instancefmt: variable %q: %w", name, err)
		}
		vars[name] = v
	}

	objTerms, err := buildTerms(vars, inst.Objective.Terms)
	if err != nil {
		return err
	}
	objExpr, err := b.CreateExpression(objTerms, 0)
	if err != nil {
		return fmt.Errorf("instancefmt: objective: %w", err)
	}
	if inst.Objective.Sense == Maximize {
		b.Maximize(objExpr)
	} else {
		b.Minimize(objExpr)
	}

	for i, def := range inst.Constraints {
		terms, err := buildTerms(vars, def.Terms)
		if err != nil {
			return fmt.Errorf("instancefmt: constraint %d: %w", i, err)
		}
		expr, err := b.CreateExpression(terms, -def.RHS)
		if err != nil {
			return fmt.Errorf("instancefmt: constraint %d: %w", i, err)
		}
		name := def.Name
		if name == "" {
			name = fmt.Sprintf("c%d", i+1)
		}
		if _, err := b.CreateConstraint(name, expr, def.Sense); err != nil {
			return fmt.Errorf("instancefmt: constraint %q: %w", name, err)
		}
	}

	return nil
}

func collectVariableOrder(inst *Instance) []string {
	seen := make(map[string]bool)
	var order []string
	add := func(terms []Term) {
		for _, t := range terms {
			if !seen[t.Variable] {
				seen[t.Variable] = true
				order = append(order, t.Variable)
			}
		}
	}
	add(inst.Objective.Terms)
	for _, c := range inst.Constraints {
		add(c.Terms)
	}
	return order
}

func buildTerms(vars map[string]*model.Variable, terms []Term) (map[*model.Variable]int64, error) {
	out := make(map[*model.Variable]int64, len(terms))
	for _, t := range terms {
		v, ok := vars[t.Variable]
		if !ok {
			return nil, fmt.Errorf("undeclared variable %q", t.Variable)
		}
		out[v] += t.Coefficient
	}
	return out, nil
}
