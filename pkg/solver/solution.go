package solver

import (
	"encoding/json"
	"sort"
	"strconv"

	"github.com/gitrdm/printemps/pkg/model"
)

// Solution is a named, point-in-time snapshot of a Model's current values,
// shaped for §6's incumbent.json: four name-keyed maps plus the signed
// objective and a feasibility flag. The model's expression layer carries no
// per-expression names of its own (the multi-array proxy/naming layer is an
// external collaborator per §1's Non-goals), so Expressions is always
// empty; it is kept as a field so the JSON shape matches the spec.
type Solution struct {
	Variables   map[string]int64
	Expressions map[string]int64
	Constraints map[string]int64
	Violations  map[string]int64
	Objective   int64
	IsFeasible  bool
}

// Snapshot captures m's current state into a Solution.
func Snapshot(m *model.Model) Solution {
	s := Solution{
		Variables:   make(map[string]int64, len(m.Variables())),
		Expressions: make(map[string]int64),
		Constraints: make(map[string]int64, len(m.Constraints())),
		Violations:  make(map[string]int64, len(m.Constraints())),
	}
	for _, v := range m.Variables() {
		s.Variables[v.Name()] = v.Value()
	}

	totalViolation := int64(0)
	for _, c := range m.Constraints() {
		s.Constraints[c.Name()] = c.ConstraintValue()
		s.Violations[c.Name()] = c.Violation()
		if c.IsEnabled() {
			totalViolation += c.Violation()
		}
	}

	s.Objective = m.Objective().Value()
	s.IsFeasible = totalViolation == 0
	return s
}

// solutionJSON is Solution's on-the-wire shape for incumbent.json/
// feasible.json: snake_case keys matching §6's field names.
type solutionJSON struct {
	Variables   map[string]int64 `json:"variables"`
	Expressions map[string]int64 `json:"expressions"`
	Constraints map[string]int64 `json:"constraints"`
	Violations  map[string]int64 `json:"violations"`
	Objective   int64            `json:"objective"`
	IsFeasible  bool             `json:"is_feasible"`
}

// MarshalJSON renders s as §6's incumbent.json shape.
func (s Solution) MarshalJSON() ([]byte, error) {
	return json.Marshal(solutionJSON{
		Variables:   s.Variables,
		Expressions: s.Expressions,
		Constraints: s.Constraints,
		Violations:  s.Violations,
		Objective:   s.Objective,
		IsFeasible:  s.IsFeasible,
	})
}

// ExportSolutionText renders a Solution in the "variable name = value"
// listing format of §6's incumbent.sol, sorted by name for a stable
// listing (Solution.Variables is a map and so has no iteration order of
// its own).
func ExportSolutionText(s Solution) string {
	names := make([]string, 0, len(s.Variables))
	for name := range s.Variables {
		names = append(names, name)
	}
	sort.Strings(names)

	var out string
	for _, name := range names {
		out += name + " = " + strconv.FormatInt(s.Variables[name], 10) + "\n"
	}
	return out
}
