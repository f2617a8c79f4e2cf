package presolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitrdm/printemps/pkg/model"
)

func TestExtractFlippablePairsFindsOverlappingBinaries(t *testing.T) {
	m := model.NewModel()
	x, err := m.CreateVariable("x", 0, 1)
	require.NoError(t, err)
	y, err := m.CreateVariable("y", 0, 1)
	require.NoError(t, err)
	z, err := m.CreateVariable("z", 0, 1)
	require.NoError(t, err)

	// x, y share both c1 and c2; z only appears in c3.
	e1, err := m.CreateExpression(map[*model.Variable]int64{x: 1, y: 1}, -1)
	require.NoError(t, err)
	_, err = m.CreateConstraint("c1", e1, model.Less)
	require.NoError(t, err)

	e2, err := m.CreateExpression(map[*model.Variable]int64{x: 1, y: 1}, -2)
	require.NoError(t, err)
	_, err = m.CreateConstraint("c2", e2, model.Less)
	require.NoError(t, err)

	e3, err := m.CreateExpression(map[*model.Variable]int64{z: 1}, 0)
	require.NoError(t, err)
	_, err = m.CreateConstraint("c3", e3, model.Less)
	require.NoError(t, err)

	pairs := ExtractFlippablePairs(m, 1)
	require.Len(t, pairs, 1)
	assert.Equal(t, x, pairs[0].First)
	assert.Equal(t, y, pairs[0].Second)
	assert.Equal(t, 2, pairs[0].NumberOfCommonElements)
	assert.InDelta(t, 1.0, pairs[0].OverlapRate, 1e-9)
}

func TestExtractFlippablePairsRespectsMinimumCommonElement(t *testing.T) {
	m := model.NewModel()
	x, err := m.CreateVariable("x", 0, 1)
	require.NoError(t, err)
	y, err := m.CreateVariable("y", 0, 1)
	require.NoError(t, err)

	e1, err := m.CreateExpression(map[*model.Variable]int64{x: 1, y: 1}, -1)
	require.NoError(t, err)
	_, err = m.CreateConstraint("c1", e1, model.Less)
	require.NoError(t, err)

	pairs := ExtractFlippablePairs(m, 2)
	assert.Empty(t, pairs)
}

func TestExtractFlippablePairsSkipsIntegerVariables(t *testing.T) {
	m := model.NewModel()
	x, err := m.CreateVariable("x", 0, 10)
	require.NoError(t, err)
	y, err := m.CreateVariable("y", 0, 10)
	require.NoError(t, err)

	e1, err := m.CreateExpression(map[*model.Variable]int64{x: 1, y: 1}, -5)
	require.NoError(t, err)
	_, err = m.CreateConstraint("c1", e1, model.Less)
	require.NoError(t, err)

	pairs := ExtractFlippablePairs(m, 1)
	assert.Empty(t, pairs)
}
