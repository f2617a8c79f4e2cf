package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModelCreateVariableAssignsSequentialIDs(t *testing.T) {
	m := NewModel()
	x, err := m.CreateVariable("x", 0, 5)
	require.NoError(t, err)
	y, err := m.CreateVariable("y", 0, 5)
	require.NoError(t, err)

	assert.Equal(t, 0, x.ID())
	assert.Equal(t, 1, y.ID())
	got, ok := m.VariableByName("y")
	assert.True(t, ok)
	assert.Same(t, y, got)
}

func TestModelCreateVariableEnforcesProxyLimit(t *testing.T) {
	m := NewModel()
	for i := 0; i < ProxyLimit; i++ {
		_, err := m.CreateVariable("x", 0, 1)
		require.NoError(t, err)
	}
	_, err := m.CreateVariable("overflow", 0, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrProxyLimitExceeded)
}

func TestModelEvaluateMatchesFullRecomputeAfterUpdate(t *testing.T) {
	m := NewModel()
	x, err := m.CreateVariable("x", 0, 10)
	require.NoError(t, err)
	y, err := m.CreateVariable("y", 0, 10)
	require.NoError(t, err)

	expr, err := m.CreateExpression(map[*Variable]int64{x: 1, y: 1}, 0)
	require.NoError(t, err)
	_, err = m.CreateConstraint("cap", expr, Less)
	require.NoError(t, err)

	objExpr, err := m.CreateExpression(map[*Variable]int64{x: 2, y: 3}, 0)
	require.NoError(t, err)
	m.Minimize(objExpr)
	m.Setup()

	penalties := map[*Constraint]float64{}
	current := m.EvaluateInitial(penalties, penalties)

	move := NewMove(MoveInteger, []Alteration{{Variable: x, Value: 9}, {Variable: y, Value: 9}})
	fast := m.Evaluate(move, current, penalties, penalties)

	m.Update(move)
	full := m.EvaluateInitial(penalties, penalties)

	assert.Equal(t, full.Objective, fast.Objective)
	assert.Equal(t, full.TotalViolation, fast.TotalViolation)
	assert.Equal(t, full.IsFeasible, fast.IsFeasible)
}

func TestModelUpdateWritesBackAlterationsAndTouchesVariables(t *testing.T) {
	m := NewModel()
	x, err := m.CreateVariable("x", 0, 10)
	require.NoError(t, err)
	expr, err := m.CreateExpression(map[*Variable]int64{x: 1}, 0)
	require.NoError(t, err)
	m.Minimize(expr)
	m.Setup()

	move := NewMove(MoveInteger, []Alteration{{Variable: x, Value: 7}})
	m.Update(move)

	assert.Equal(t, int64(7), x.Value())
	assert.Equal(t, 1, m.Iteration())
	assert.Equal(t, 1, x.UpdateCount())
	assert.Equal(t, 1, x.LastUpdateIteration())
}

func TestModelUpdateKeepsDependentVariableInSync(t *testing.T) {
	m := NewModel()
	x, err := m.CreateVariable("x", -100, 100)
	require.NoError(t, err)
	y, err := m.CreateVariable("y", -100, 100)
	require.NoError(t, err)

	// x - y == 0 extracted so x becomes dependent on y.
	defExpr, err := m.CreateExpression(map[*Variable]int64{x: 1, y: -1}, 0)
	require.NoError(t, err)
	src, err := m.CreateConstraint("link", defExpr, Equal)
	require.NoError(t, err)
	src.MarkDefinesDependentVariable()
	x.UpgradeToDependent(false)

	solved, err := defExpr.Solve(x)
	require.NoError(t, err)
	solvedExpr, err := m.CreateExpression(solved.Terms(), solved.Constant())
	require.NoError(t, err)
	m.RegisterDependentDefinition(x, solvedExpr)

	objExpr, err := m.CreateExpression(map[*Variable]int64{y: 1}, 0)
	require.NoError(t, err)
	m.Minimize(objExpr)
	m.Setup()

	move := NewMove(MoveInteger, []Alteration{{Variable: y, Value: 12}})
	m.Update(move)

	assert.Equal(t, int64(12), y.Value())
	assert.Equal(t, int64(12), x.Value())
}

func TestModelImportSolutionRejectsOutOfBoundsValue(t *testing.T) {
	m := NewModel()
	_, err := m.CreateVariable("x", 0, 5)
	require.NoError(t, err)

	err = m.ImportSolution(map[string]int64{"x": 9})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInitialValue)
}

func TestModelImportSolutionIgnoresUnknownNames(t *testing.T) {
	m := NewModel()
	x, err := m.CreateVariable("x", 0, 5)
	require.NoError(t, err)

	err = m.ImportSolution(map[string]int64{"x": 3, "ghost": 99})
	require.NoError(t, err)
	assert.Equal(t, int64(3), x.Value())
}
