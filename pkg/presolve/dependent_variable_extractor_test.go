package presolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitrdm/printemps/pkg/classifier"
	"github.com/gitrdm/printemps/pkg/model"
)

func allSubstitutionFriendlyEnabled() map[model.ConstraintType]bool {
	return map[model.ConstraintType]bool{
		model.TypeExclusiveOR:           true,
		model.TypeExclusiveNOR:          true,
		model.TypeInvertedIntegers:      true,
		model.TypeBalancedIntegers:      true,
		model.TypeConstantSumIntegers:   true,
		model.TypeConstantDifferenceIntegers: true,
		model.TypeConstantRatioIntegers: true,
		model.TypeTrinomialExclusiveNOR: true,
		model.TypeAllOrNothing:          true,
		model.TypeIntermediate:          true,
	}
}

func TestExtractDependentVariablesExclusiveOR(t *testing.T) {
	m := model.NewModel()
	x, err := m.CreateVariable("x", 0, 1)
	require.NoError(t, err)
	y, err := m.CreateVariable("y", 0, 1)
	require.NoError(t, err)

	// x + y - 1 == 0.
	expr, err := m.CreateExpression(map[*model.Variable]int64{x: 1, y: 1}, -1)
	require.NoError(t, err)
	c, err := m.CreateConstraint("or", expr, model.Equal)
	require.NoError(t, err)
	classifier.Classify(c)
	require.Equal(t, model.TypeExclusiveOR, c.Type())

	summary, err := ExtractDependentVariables(m, allSubstitutionFriendlyEnabled())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.ExtractedVariables)
	assert.Equal(t, 0, summary.AdditionalConstraints)
	assert.False(t, c.IsEnabled())
	assert.True(t, c.DefinesDependentVariable())

	// The key variable is the one actually eliminated (solved from the
	// rest of the constraint); keyVariableByName tiebreaks alphabetically,
	// so x is the key and becomes dependent: x = 1 - y.
	assert.True(t, x.Sense().IsDependent())
	assert.False(t, y.Sense().IsDependent())
}

func TestExtractDependentVariablesInvertedIntegers(t *testing.T) {
	m := model.NewModel()
	a, err := m.CreateVariable("a", -10, 10)
	require.NoError(t, err)
	b, err := m.CreateVariable("b", -10, 10)
	require.NoError(t, err)

	// a + b == 0  =>  b = -a.
	expr, err := m.CreateExpression(map[*model.Variable]int64{a: 1, b: 1}, 0)
	require.NoError(t, err)
	c, err := m.CreateConstraint("inv", expr, model.Equal)
	require.NoError(t, err)
	classifier.Classify(c)
	require.Equal(t, model.TypeInvertedIntegers, c.Type())

	summary, err := ExtractDependentVariables(m, allSubstitutionFriendlyEnabled())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.ExtractedVariables)
	assert.False(t, c.IsEnabled())
}

func TestExtractDependentVariablesAllOrNothingSubstitutesEveryMember(t *testing.T) {
	m := model.NewModel()
	x1, err := m.CreateVariable("x1", 0, 1)
	require.NoError(t, err)
	x2, err := m.CreateVariable("x2", 0, 1)
	require.NoError(t, err)
	x3, err := m.CreateVariable("x3", 0, 1)
	require.NoError(t, err)
	y, err := m.CreateVariable("y", 0, 1)
	require.NoError(t, err)

	// x1 + x2 + x3 - 3y == 0: all-or-nothing gadget, y is the representative.
	// (With only two members the cascade classifies it TrinomialExclusiveNOR.)
	expr, err := m.CreateExpression(map[*model.Variable]int64{x1: 1, x2: 1, x3: 1, y: -3}, 0)
	require.NoError(t, err)
	c, err := m.CreateConstraint("aon", expr, model.Equal)
	require.NoError(t, err)
	classifier.Classify(c)
	require.Equal(t, model.TypeAllOrNothing, c.Type())
	require.Equal(t, y, c.KeyVariable())

	summary, err := ExtractDependentVariables(m, allSubstitutionFriendlyEnabled())
	require.NoError(t, err)

	assert.Equal(t, 3, summary.ExtractedVariables)
	assert.True(t, x1.Sense().IsDependent())
	assert.True(t, x2.Sense().IsDependent())
	assert.True(t, x3.Sense().IsDependent())
	assert.False(t, y.Sense().IsDependent())
	assert.False(t, c.IsEnabled())
}

func TestExtractDependentVariablesAcceptsOneDirectionalChain(t *testing.T) {
	m := model.NewModel()
	x, err := m.CreateVariable("x", -10, 10)
	require.NoError(t, err)
	y, err := m.CreateVariable("y", -10, 10)
	require.NoError(t, err)
	z, err := m.CreateVariable("z", -10, 10)
	require.NoError(t, err)

	// x - y == 0 (BalancedIntegers, key picked by name: x is the key and
	// gets eliminated, defined as x = y) and y - z == 0 (key=y, defined
	// as y = z). Candidate 2's dependent (y) appears in candidate 1's
	// constraint, so candidate 2 reaches candidate 1; candidate 1's
	// dependent (x) appears in no other candidate, so candidate 1 does
	// not reach candidate 2. One-directional, not mutual — both extract.
	e1, err := m.CreateExpression(map[*model.Variable]int64{x: 1, y: -1}, 0)
	require.NoError(t, err)
	c1, err := m.CreateConstraint("c1", e1, model.Equal)
	require.NoError(t, err)
	classifier.Classify(c1)

	e2, err := m.CreateExpression(map[*model.Variable]int64{y: 1, z: -1}, 0)
	require.NoError(t, err)
	c2, err := m.CreateConstraint("c2", e2, model.Equal)
	require.NoError(t, err)
	classifier.Classify(c2)

	summary, err := ExtractDependentVariables(m, allSubstitutionFriendlyEnabled())
	require.NoError(t, err)
	assert.Equal(t, 2, summary.ExtractedVariables)
}

func TestExtractDependentVariablesDisabledByEnableMap(t *testing.T) {
	m := model.NewModel()
	x, err := m.CreateVariable("x", 0, 1)
	require.NoError(t, err)
	y, err := m.CreateVariable("y", 0, 1)
	require.NoError(t, err)

	expr, err := m.CreateExpression(map[*model.Variable]int64{x: 1, y: 1}, -1)
	require.NoError(t, err)
	c, err := m.CreateConstraint("or", expr, model.Equal)
	require.NoError(t, err)
	classifier.Classify(c)

	summary, err := ExtractDependentVariables(m, map[model.ConstraintType]bool{})
	require.NoError(t, err)
	assert.Equal(t, 0, summary.ExtractedVariables)
	assert.True(t, c.IsEnabled())
}

func TestExtractDependentVariablesDisabledCategoryStillBlocksContendedVariable(t *testing.T) {
	m := model.NewModel()
	b, err := m.CreateVariable("b", -10, 10)
	require.NoError(t, err)
	mm, err := m.CreateVariable("m", -10, 10)
	require.NoError(t, err)
	z, err := m.CreateVariable("z", -10, 10)
	require.NoError(t, err)

	// b - m == 0: BalancedIntegers, key picked alphabetically ("b" < "m"),
	// so b is this candidate's dependent. Its category is disabled below.
	eA, err := m.CreateExpression(map[*model.Variable]int64{b: 1, mm: -1}, 0)
	require.NoError(t, err)
	cA, err := m.CreateConstraint("a", eA, model.Equal)
	require.NoError(t, err)
	classifier.Classify(cA)
	require.Equal(t, model.TypeBalancedIntegers, cA.Type())
	require.Equal(t, b, cA.KeyVariable())

	// b + z == 0: InvertedIntegers, key again b ("b" < "z"). This category
	// stays enabled, and in isolation would extract cleanly (b = -z).
	eB, err := m.CreateExpression(map[*model.Variable]int64{b: 1, z: 1}, 0)
	require.NoError(t, err)
	cB, err := m.CreateConstraint("bb", eB, model.Equal)
	require.NoError(t, err)
	classifier.Classify(cB)
	require.Equal(t, model.TypeInvertedIntegers, cB.Type())
	require.Equal(t, b, cB.KeyVariable())

	enabled := allSubstitutionFriendlyEnabled()
	enabled[model.TypeBalancedIntegers] = false

	summary, err := ExtractDependentVariables(m, enabled)
	require.NoError(t, err)

	// b is claimed as the dependent by both candidates, including the
	// disabled-category one, so the bookkeeping phase must still see the
	// contention and refuse cB's otherwise-clean extraction — even though
	// cA itself is never actually extracted, since its category is
	// disabled.
	assert.Equal(t, 0, summary.ExtractedVariables)
	assert.True(t, cA.IsEnabled())
	assert.True(t, cB.IsEnabled())
	assert.False(t, b.Sense().IsDependent())
}

func TestExtractDependentVariablesAddsCompensatingConstraintWhenRangeExceedsBounds(t *testing.T) {
	m := model.NewModel()
	// key is picked alphabetically: "a" < "z", so a is the key and gets
	// eliminated, solved as a = -z. a's own declared bound [0,5] is
	// tighter than what -z's range ([-10,10]) would allow, so a
	// compensating pair of inequalities should be added to keep the
	// substitution equivalent.
	a, err := m.CreateVariable("a", 0, 5)
	require.NoError(t, err)
	z, err := m.CreateVariable("z", -10, 10)
	require.NoError(t, err)

	expr, err := m.CreateExpression(map[*model.Variable]int64{a: 1, z: 1}, 0)
	require.NoError(t, err)
	c, err := m.CreateConstraint("inv", expr, model.Equal)
	require.NoError(t, err)
	classifier.Classify(c)
	require.Equal(t, model.TypeInvertedIntegers, c.Type())
	require.Equal(t, a, c.KeyVariable())

	summary, err := ExtractDependentVariables(m, allSubstitutionFriendlyEnabled())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.ExtractedVariables)
	assert.Equal(t, 2, summary.AdditionalConstraints)
	assert.True(t, a.Sense().IsDependent())
}
