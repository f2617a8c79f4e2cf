package neighborhood

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitrdm/printemps/pkg/model"
)

func TestIntegerShiftGeneratorBuildsIncrementAndDecrement(t *testing.T) {
	m := model.NewModel()
	x, err := m.CreateVariable("x", 0, 10)
	require.NoError(t, err)
	require.NoError(t, x.SetValue(5))

	g := NewIntegerShiftGenerator(m)
	require.Equal(t, 2, g.Len())

	inc, ok := g.Build(0)
	require.True(t, ok)
	assert.Equal(t, int64(6), inc.Alterations[0].Value)

	dec, ok := g.Build(1)
	require.True(t, ok)
	assert.Equal(t, int64(4), dec.Alterations[0].Value)
}

func TestIntegerShiftGeneratorSkipsBinaryVariables(t *testing.T) {
	m := model.NewModel()
	_, err := m.CreateVariable("b", 0, 1)
	require.NoError(t, err)

	g := NewIntegerShiftGenerator(m)
	assert.Equal(t, 0, g.Len())
}
