package presolve

import (
	"sort"

	"github.com/gitrdm/printemps/pkg/classifier"
	"github.com/gitrdm/printemps/pkg/model"
)

// representativeTypes are substitution-friendly categories whose key
// variable is literally equal to every other (non-fixed) member of the
// constraint, so each member substitutes to the trivial identity expression
// "= key" rather than a solved linear combination. AllOrNothing and
// TrinomialExclusiveNOR have this shape (a group of ±1 terms tied to one
// term of magnitude ±(n-1)); every other substitution-friendly category has
// exactly one non-key member and is solved with Expression.Solve instead.
var representativeTypes = map[model.ConstraintType]bool{
	model.TypeTrinomialExclusiveNOR: true,
	model.TypeAllOrNothing:          true,
}

// DependentSummary reports what ExtractDependentVariables did.
type DependentSummary struct {
	ExtractedVariables    int
	AdditionalConstraints int
}

type dependentCandidate struct {
	constraint *model.Constraint
	key        *model.Variable
	members    []*model.Variable // non-key, non-fixed variables, ID order
}

// ExtractDependentVariables scans every enabled constraint whose classified
// type is substitution-friendly and enabled[type], builds a
// dependency-adjacency graph over the candidates, and substitutes out every
// candidate that is both acyclic (no mutual reachability with another
// candidate) and whose dependent variable(s) are claimed by exactly one
// candidate. Each substituted variable's defining expression is registered
// via model.RegisterDependentDefinition and its sense upgraded to
// DependentBinary/DependentInteger; the source constraint is disabled and
// marked as defining a dependent variable.
func ExtractDependentVariables(m *model.Model, enabled map[model.ConstraintType]bool) (DependentSummary, error) {
	candidates := collectDependentCandidates(m)
	if len(candidates) == 0 {
		return DependentSummary{}, nil
	}

	counts := countCandidateDependents(candidates)
	adjacency := buildCandidateAdjacency(candidates)
	extractable := extractableCandidateFlags(adjacency)

	var summary DependentSummary
	for i, cand := range candidates {
		if !extractable[i] {
			continue
		}
		if enabled != nil && !enabled[cand.constraint.Type()] {
			continue
		}
		if representativeTypes[cand.constraint.Type()] {
			ok, err := extractRepresentativeCandidate(m, cand, counts, &summary)
			if err != nil {
				return summary, err
			}
			if !ok {
				continue
			}
		} else {
			ok, err := extractSingleCandidate(m, cand, counts, &summary)
			if err != nil {
				return summary, err
			}
			if !ok {
				continue
			}
		}
	}
	return summary, nil
}

// collectDependentCandidates gathers every enabled, substitution-friendly
// constraint into the bookkeeping set, regardless of the caller's per-
// category enabled map: counts/adjacency/reachability must see the full
// candidate set so a still-enabled candidate that contends for a variable
// with a disabled-category candidate still has that contention reflected
// in its dependent-count and adjacency. The per-category filter is applied
// later, in ExtractDependentVariables's extraction loop.
func collectDependentCandidates(m *model.Model) []dependentCandidate {
	var out []dependentCandidate
	for _, c := range m.Constraints() {
		if !c.IsEnabled() {
			continue
		}
		classifier.Classify(c)
		if !c.Type().IsSubstitutionFriendly() {
			continue
		}
		key := c.KeyVariable()
		if key == nil {
			continue
		}
		out = append(out, dependentCandidate{
			constraint: c,
			key:        key,
			members:    nonKeyMembers(c, key),
		})
	}
	return out
}

func nonKeyMembers(c *model.Constraint, key *model.Variable) []*model.Variable {
	terms := c.Expression().Terms()
	members := make([]*model.Variable, 0, len(terms))
	for v := range terms {
		if v == key || v.IsFixed() {
			continue
		}
		members = append(members, v)
	}
	sort.Slice(members, func(i, j int) bool { return members[i].ID() < members[j].ID() })
	return members
}

// dependentsOf returns the variable(s) this candidate would substitute away:
// every non-key member for representative types, or just the key itself
// otherwise (the key is the single dependent, solved from its members).
func dependentsOf(cand dependentCandidate) []*model.Variable {
	if representativeTypes[cand.constraint.Type()] {
		return cand.members
	}
	return []*model.Variable{cand.key}
}

func countCandidateDependents(candidates []dependentCandidate) map[*model.Variable]int {
	counts := make(map[*model.Variable]int)
	for _, cand := range candidates {
		for _, v := range dependentsOf(cand) {
			counts[v]++
		}
	}
	return counts
}

// buildCandidateAdjacency builds an N×N boolean edge matrix: edge i→j iff a
// variable candidate i would substitute away also appears (with non-zero
// coefficient) in candidate j's constraint.
func buildCandidateAdjacency(candidates []dependentCandidate) [][]bool {
	n := len(candidates)
	adjacency := make([][]bool, n)
	for i := range adjacency {
		adjacency[i] = make([]bool, n)
	}

	variableToCandidates := make(map[*model.Variable][]int, n*2)
	for j, cand := range candidates {
		for v := range cand.constraint.Expression().Terms() {
			variableToCandidates[v] = append(variableToCandidates[v], j)
		}
	}

	for i, cand := range candidates {
		for _, dependent := range dependentsOf(cand) {
			for _, j := range variableToCandidates[dependent] {
				if i != j {
					adjacency[i][j] = true
				}
			}
		}
	}
	return adjacency
}

// extractableCandidateFlags computes the reachability closure of adjacency
// (Floyd–Warshall transitive closure) and marks a candidate unextractable
// if it mutually reaches any other candidate, breaking cyclic substitutions.
func extractableCandidateFlags(adjacency [][]bool) []bool {
	n := len(adjacency)
	reach := make([][]bool, n)
	for i := range reach {
		reach[i] = make([]bool, n)
		copy(reach[i], adjacency[i])
	}
	for k := 0; k < n; k++ {
		for i := 0; i < n; i++ {
			if !reach[i][k] {
				continue
			}
			for j := 0; j < n; j++ {
				if reach[k][j] {
					reach[i][j] = true
				}
			}
		}
	}

	flags := make([]bool, n)
	for i := range flags {
		flags[i] = true
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if reach[i][j] && reach[j][i] {
				flags[i] = false
				flags[j] = false
			}
		}
	}
	return flags
}

// extractSingleCandidate substitutes cand's key variable via Expression.Solve
// over its members, provided the key is claimed by exactly one candidate.
func extractSingleCandidate(m *model.Model, cand dependentCandidate, counts map[*model.Variable]int, summary *DependentSummary) (bool, error) {
	if counts[cand.key] != 1 {
		return false, nil
	}

	expr, err := cand.constraint.Expression().Solve(cand.key)
	if err != nil {
		return false, err
	}
	if err := finishExtraction(m, cand.constraint, cand.key, expr, summary); err != nil {
		return false, err
	}
	return true, nil
}

// extractRepresentativeCandidate substitutes every non-key member of cand as
// the trivial identity "= key", provided every member is claimed by exactly
// one candidate (all-or-nothing: if any member fails the count check, none
// of this candidate's members are extracted).
func extractRepresentativeCandidate(m *model.Model, cand dependentCandidate, counts map[*model.Variable]int, summary *DependentSummary) (bool, error) {
	for _, member := range cand.members {
		if counts[member] != 1 {
			return false, nil
		}
	}

	keyExpr, err := m.CreateExpression(map[*model.Variable]int64{cand.key: 1}, 0)
	if err != nil {
		return false, err
	}

	for _, member := range cand.members {
		if err := finishExtraction(m, cand.constraint, member, keyExpr, summary); err != nil {
			return false, err
		}
	}
	return true, nil
}

// finishExtraction registers expr as dependent's defining expression,
// upgrades its sense, disables the source constraint (once), and — only if
// expr's numeric range exceeds dependent's declared bounds — adds a
// compensating inequality so the substitution stays equivalent.
func finishExtraction(m *model.Model, source *model.Constraint, dependent *model.Variable, expr *model.Expression, summary *DependentSummary) error {
	m.RegisterDependentDefinition(dependent, expr)
	isBinary := dependent.Lower() == 0 && dependent.Upper() == 1
	dependent.UpgradeToDependent(isBinary)

	if !source.DefinesDependentVariable() {
		source.Disable()
		source.MarkDefinesDependentVariable()
	}

	lower, upper := expr.Bounds()
	namePrefix := source.Name() + "_" + dependent.Name()
	if dependent.Lower() != -model.DefaultBoundMagnitude && dependent.Lower() > lower {
		greaterExpr := expr.Sub(constExpression(m, dependent.Lower()))
		if _, err := m.CreateConstraint(namePrefix+"_greater", greaterExpr, model.Greater); err != nil {
			return err
		}
		summary.AdditionalConstraints++
	}
	if dependent.Upper() != model.DefaultBoundMagnitude && dependent.Upper() < upper {
		lessExpr := expr.Sub(constExpression(m, dependent.Upper()))
		if _, err := m.CreateConstraint(namePrefix+"_less", lessExpr, model.Less); err != nil {
			return err
		}
		summary.AdditionalConstraints++
	}

	summary.ExtractedVariables++
	return nil
}

// constExpression builds a zero-term expression holding only the constant k,
// used to shift expr by a bound value when building a compensating
// inequality (expr - k <= 0 or expr - k >= 0).
func constExpression(m *model.Model, k int64) *model.Expression {
	e, _ := m.CreateExpression(nil, k)
	return e
}
