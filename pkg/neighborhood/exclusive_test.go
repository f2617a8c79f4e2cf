package neighborhood

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitrdm/printemps/pkg/classifier"
	"github.com/gitrdm/printemps/pkg/model"
)

func TestExclusiveGeneratorSetsOneClearsRest(t *testing.T) {
	m := model.NewModel()
	a, err := m.CreateVariable("a", 0, 1)
	require.NoError(t, err)
	b, err := m.CreateVariable("b", 0, 1)
	require.NoError(t, err)
	c, err := m.CreateVariable("c", 0, 1)
	require.NoError(t, err)
	require.NoError(t, a.SetValue(1))

	expr, err := m.CreateExpression(map[*model.Variable]int64{a: 1, b: 1, c: 1}, -1)
	require.NoError(t, err)
	constraint, err := m.CreateConstraint("partition", expr, model.Equal)
	require.NoError(t, err)
	classifier.Classify(constraint)
	require.Equal(t, model.TypeSetPartitioning, constraint.Type())

	g := NewExclusiveGenerator(m)
	require.Equal(t, 3, g.Len())

	var sawRejectedAlreadySet bool
	for i := 0; i < g.Len(); i++ {
		move, ok := g.Build(i)
		if !ok {
			sawRejectedAlreadySet = true
			continue
		}
		require.Len(t, move.Alterations, 3)
		toSet := move.Alterations[0]
		assert.Equal(t, int64(1), toSet.Value)
		for _, alt := range move.Alterations[1:] {
			assert.Equal(t, int64(0), alt.Value)
		}
	}
	assert.True(t, sawRejectedAlreadySet, "the already-selected member's template should be rejected")
}
