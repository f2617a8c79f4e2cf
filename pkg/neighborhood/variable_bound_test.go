package neighborhood

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitrdm/printemps/pkg/classifier"
	"github.com/gitrdm/printemps/pkg/model"
)

func TestVariableBoundGeneratorClampsToTightestFeasibleValue(t *testing.T) {
	m := model.NewModel()
	x, err := m.CreateVariable("x", 0, 10)
	require.NoError(t, err)
	y, err := m.CreateVariable("y", 0, 10)
	require.NoError(t, err)
	require.NoError(t, x.SetValue(2))
	require.NoError(t, y.SetValue(3))

	// x + 2y <= 10
	expr, err := m.CreateExpression(map[*model.Variable]int64{x: 1, y: 2}, -10)
	require.NoError(t, err)
	c, err := m.CreateConstraint("vb", expr, model.Less)
	require.NoError(t, err)
	classifier.Classify(c)
	require.Equal(t, model.TypeVariableBound, c.Type())

	g := NewVariableBoundGenerator(m)
	require.Equal(t, 4, g.Len())

	move, ok := g.Build(0)
	require.True(t, ok)
	assert.Equal(t, int64(3), move.Alterations[0].Value)
	assert.Equal(t, int64(3), move.Alterations[1].Value)

	move, ok = g.Build(2)
	require.True(t, ok)
	assert.Equal(t, int64(4), move.Alterations[0].Value)
	assert.Equal(t, int64(2), move.Alterations[1].Value)
}
