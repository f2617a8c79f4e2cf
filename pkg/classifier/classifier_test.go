package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitrdm/printemps/pkg/model"
)

func mustVar(t *testing.T, id int, name string, lower, upper int64) *model.Variable {
	t.Helper()
	v, err := model.NewVariable(id, name, lower, upper)
	require.NoError(t, err)
	return v
}

func TestClassifyEmpty(t *testing.T) {
	expr := model.NewExpression(nil, 0)
	c := model.NewConstraint(0, "empty", expr, model.Equal)
	Classify(c)
	assert.Equal(t, model.TypeEmpty, c.Type())
}

func TestClassifySingleton(t *testing.T) {
	x := mustVar(t, 0, "x", 0, 5)
	expr := model.NewExpression(map[*model.Variable]int64{x: 1}, -3)
	c := model.NewConstraint(0, "single", expr, model.Less)
	Classify(c)
	assert.Equal(t, model.TypeSingleton, c.Type())
}

func TestClassifyExclusiveOR(t *testing.T) {
	x := mustVar(t, 0, "x", 0, 1)
	y := mustVar(t, 1, "y", 0, 1)
	expr := model.NewExpression(map[*model.Variable]int64{x: 1, y: 1}, -1)
	c := model.NewConstraint(0, "xor", expr, model.Equal)
	Classify(c)
	assert.Equal(t, model.TypeExclusiveOR, c.Type())
}

func TestClassifyExclusiveNOR(t *testing.T) {
	x := mustVar(t, 0, "x", 0, 1)
	y := mustVar(t, 1, "y", 0, 1)
	expr := model.NewExpression(map[*model.Variable]int64{x: 1, y: -1}, 0)
	c := model.NewConstraint(0, "xnor", expr, model.Equal)
	Classify(c)
	assert.Equal(t, model.TypeExclusiveNOR, c.Type())
}

func TestClassifyAggregation(t *testing.T) {
	x := mustVar(t, 0, "x", 0, 10)
	y := mustVar(t, 1, "y", 0, 10)
	expr := model.NewExpression(map[*model.Variable]int64{x: 2, y: 3}, -4)
	c := model.NewConstraint(0, "agg", expr, model.Equal)
	Classify(c)
	assert.Equal(t, model.TypeAggregation, c.Type())
}

func TestClassifyPrecedence(t *testing.T) {
	x := mustVar(t, 0, "x", 0, 10)
	y := mustVar(t, 1, "y", 0, 10)
	expr := model.NewExpression(map[*model.Variable]int64{x: 1, y: -1}, -3)
	c := model.NewConstraint(0, "prec", expr, model.Less)
	Classify(c)
	assert.Equal(t, model.TypePrecedence, c.Type())
}

func TestClassifyVariableBound(t *testing.T) {
	x := mustVar(t, 0, "x", 0, 10)
	y := mustVar(t, 1, "y", 0, 10)
	expr := model.NewExpression(map[*model.Variable]int64{x: 3, y: -1}, -3)
	c := model.NewConstraint(0, "vb", expr, model.Less)
	Classify(c)
	assert.Equal(t, model.TypeVariableBound, c.Type())
}

func TestClassifySetPartitioning(t *testing.T) {
	x := mustVar(t, 0, "x", 0, 1)
	y := mustVar(t, 1, "y", 0, 1)
	z := mustVar(t, 2, "z", 0, 1)
	expr := model.NewExpression(map[*model.Variable]int64{x: 1, y: 1, z: 1}, -1)
	c := model.NewConstraint(0, "sp", expr, model.Equal)
	Classify(c)
	assert.Equal(t, model.TypeSetPartitioning, c.Type())
}

func TestClassifySetPacking(t *testing.T) {
	x := mustVar(t, 0, "x", 0, 1)
	y := mustVar(t, 1, "y", 0, 1)
	z := mustVar(t, 2, "z", 0, 1)
	expr := model.NewExpression(map[*model.Variable]int64{x: 1, y: 1, z: 1}, -1)
	c := model.NewConstraint(0, "packing", expr, model.Less)
	Classify(c)
	assert.Equal(t, model.TypeSetPacking, c.Type())
}

func TestClassifySetCovering(t *testing.T) {
	x := mustVar(t, 0, "x", 0, 1)
	y := mustVar(t, 1, "y", 0, 1)
	z := mustVar(t, 2, "z", 0, 1)
	expr := model.NewExpression(map[*model.Variable]int64{x: 1, y: 1, z: 1}, -1)
	c := model.NewConstraint(0, "covering", expr, model.Greater)
	Classify(c)
	assert.Equal(t, model.TypeSetCovering, c.Type())
}

func TestClassifyCardinality(t *testing.T) {
	x := mustVar(t, 0, "x", 0, 1)
	y := mustVar(t, 1, "y", 0, 1)
	z := mustVar(t, 2, "z", 0, 1)
	expr := model.NewExpression(map[*model.Variable]int64{x: 1, y: 1, z: 1}, -2)
	c := model.NewConstraint(0, "card", expr, model.Equal)
	Classify(c)
	assert.Equal(t, model.TypeCardinality, c.Type())
}

func TestClassifyInvariantKnapsack(t *testing.T) {
	x := mustVar(t, 0, "x", 0, 1)
	y := mustVar(t, 1, "y", 0, 1)
	z := mustVar(t, 2, "z", 0, 1)
	expr := model.NewExpression(map[*model.Variable]int64{x: 1, y: 1, z: 1}, -2)
	c := model.NewConstraint(0, "invk", expr, model.Less)
	Classify(c)
	assert.Equal(t, model.TypeInvariantKnapsack, c.Type())
}

func TestClassifyKnapsack(t *testing.T) {
	x := mustVar(t, 0, "x", 0, 1)
	y := mustVar(t, 1, "y", 0, 1)
	z := mustVar(t, 2, "z", 0, 1)
	expr := model.NewExpression(map[*model.Variable]int64{x: 3, y: 5, z: 2}, -6)
	c := model.NewConstraint(0, "knap", expr, model.Less)
	Classify(c)
	assert.Equal(t, model.TypeKnapsack, c.Type())
}

func TestClassifyIntegerKnapsack(t *testing.T) {
	x := mustVar(t, 0, "x", 0, 10)
	y := mustVar(t, 1, "y", 0, 10)
	z := mustVar(t, 2, "z", 0, 10)
	expr := model.NewExpression(map[*model.Variable]int64{x: 3, y: 5, z: 2}, -6)
	c := model.NewConstraint(0, "iknap", expr, model.Less)
	Classify(c)
	assert.Equal(t, model.TypeIntegerKnapsack, c.Type())
}

func TestClassifyEquationKnapsack(t *testing.T) {
	x := mustVar(t, 0, "x", 0, 1)
	y := mustVar(t, 1, "y", 0, 1)
	z := mustVar(t, 2, "z", 0, 1)
	expr := model.NewExpression(map[*model.Variable]int64{x: 3, y: -2, z: 1}, -1)
	c := model.NewConstraint(0, "eqknap", expr, model.Equal)
	Classify(c)
	assert.Equal(t, model.TypeEquationKnapsack, c.Type())
}

func TestClassifyBinPacking(t *testing.T) {
	x := mustVar(t, 0, "x", 0, 1)
	y := mustVar(t, 1, "y", 0, 1)
	z := mustVar(t, 2, "z", 0, 1)
	// coefficient -(-constant) == constant match: y's coefficient equals
	// -rawConstant (rawConstant = -5, coefficient 5).
	expr := model.NewExpression(map[*model.Variable]int64{x: 1, y: 5, z: 1}, -5)
	c := model.NewConstraint(0, "binpack", expr, model.Less)
	Classify(c)
	assert.Equal(t, model.TypeBinPacking, c.Type())
}

func TestClassifyGeneralLinearFallback(t *testing.T) {
	x := mustVar(t, 0, "x", 0, 10)
	y := mustVar(t, 1, "y", 0, 10)
	z := mustVar(t, 2, "z", 0, 10)
	expr := model.NewExpression(map[*model.Variable]int64{x: 4, y: -7, z: 2}, 3)
	c := model.NewConstraint(0, "general", expr, model.Less)
	Classify(c)
	assert.Equal(t, model.TypeGeneralLinear, c.Type())
}

func TestClassifyGF2(t *testing.T) {
	x := mustVar(t, 0, "x", 0, 1)
	y := mustVar(t, 1, "y", 0, 1)
	key := mustVar(t, 2, "k", 0, 5)
	expr := model.NewExpression(map[*model.Variable]int64{x: 1, y: 1, key: -2}, 0)
	c := model.NewConstraint(0, "gf2", expr, model.Equal)
	Classify(c)
	assert.Equal(t, model.TypeGF2, c.Type())
	assert.Same(t, key, c.KeyVariable())
}

func TestClassifyAllFixesProxyConstraints(t *testing.T) {
	m := model.NewModel()
	x, err := m.CreateVariable("x", 0, 1)
	require.NoError(t, err)
	y, err := m.CreateVariable("y", 0, 1)
	require.NoError(t, err)
	z, err := m.CreateVariable("z", 0, 1)
	require.NoError(t, err)
	expr, err := m.CreateExpression(map[*model.Variable]int64{x: 1, y: 1, z: 1}, -1)
	require.NoError(t, err)
	_, err = m.CreateConstraint("sp", expr, model.Equal)
	require.NoError(t, err)

	ClassifyAll(m)

	assert.Equal(t, model.TypeSetPartitioning, m.Constraints()[0].Type())
}
