package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVariableRejectsInvertedBounds(t *testing.T) {
	_, err := NewVariable(0, "x", 5, 2)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidBounds))
}

func TestNewVariableAutoDerivesBinarySense(t *testing.T) {
	cases := []struct {
		lower, upper int64
		want         VariableSense
	}{
		{0, 1, Binary},
		{0, 0, Binary},
		{1, 1, Binary},
		{0, 5, Integer},
		{-3, 3, Integer},
	}
	for _, c := range cases {
		v, err := NewVariable(0, "x", c.lower, c.upper)
		require.NoError(t, err)
		assert.Equal(t, c.want, v.Sense())
	}
}

func TestVariableBoundMarginInvariant(t *testing.T) {
	v, err := NewVariable(0, "x", 0, 10)
	require.NoError(t, err)

	require.NoError(t, v.SetValue(0))
	assert.False(t, v.HasLowerBoundMargin())
	assert.True(t, v.HasUpperBoundMargin())

	require.NoError(t, v.SetValue(10))
	assert.True(t, v.HasLowerBoundMargin())
	assert.False(t, v.HasUpperBoundMargin())

	require.NoError(t, v.SetValue(5))
	assert.True(t, v.HasLowerBoundMargin())
	assert.True(t, v.HasUpperBoundMargin())
}

func TestFixPreventsFurtherMutation(t *testing.T) {
	v, err := NewVariable(0, "x", 0, 10)
	require.NoError(t, err)
	require.NoError(t, v.Fix(3))

	assert.True(t, v.IsFixed())
	assert.Equal(t, int64(3), v.Value())

	err = v.SetValue(4)
	assert.True(t, errors.Is(err, ErrMutatedFixedVariable))
	assert.Equal(t, int64(3), v.Value())

	assert.False(t, v.TrySetValue(4))
	assert.Equal(t, int64(3), v.Value())
}

func TestFixRejectsOutOfBoundsValue(t *testing.T) {
	v, err := NewVariable(0, "x", 0, 10)
	require.NoError(t, err)
	err = v.Fix(11)
	assert.True(t, errors.Is(err, ErrInvalidBounds))
	assert.False(t, v.IsFixed())
}

func TestUnfixReleasesFixedVariable(t *testing.T) {
	v, err := NewVariable(0, "x", 0, 10)
	require.NoError(t, err)
	require.NoError(t, v.Fix(3))
	v.Unfix()
	assert.False(t, v.IsFixed())
	require.NoError(t, v.SetValue(7))
	assert.Equal(t, int64(7), v.Value())
}

func TestSetBoundsClampsValueAndRecomputesSense(t *testing.T) {
	v, err := NewVariable(0, "x", 0, 10)
	require.NoError(t, err)
	require.NoError(t, v.SetValue(8))

	require.NoError(t, v.SetBounds(0, 1))
	assert.Equal(t, Binary, v.Sense())
	assert.Equal(t, int64(1), v.Value())
}

func TestUpgradeToSelectionIsStickyAgainstRecomputeSense(t *testing.T) {
	v, err := NewVariable(0, "x", 0, 1)
	require.NoError(t, err)
	s := &Selection{}
	v.UpgradeToSelection(s)
	require.NoError(t, v.SetBounds(0, 1))
	assert.Equal(t, Selection, v.Sense())
	assert.Same(t, s, v.SelectionBlock())
}

func TestUpgradeToDependentIsStickyAgainstRecomputeSense(t *testing.T) {
	v, err := NewVariable(0, "x", 0, 1)
	require.NoError(t, err)
	v.UpgradeToDependent(true)
	require.NoError(t, v.SetBounds(0, 1))
	assert.Equal(t, DependentBinary, v.Sense())
}

func TestAddRelatedConstraintDeduplicates(t *testing.T) {
	v, err := NewVariable(0, "x", 0, 1)
	require.NoError(t, err)
	y, err := NewVariable(1, "y", 0, 1)
	require.NoError(t, err)
	expr := NewExpression(map[*Variable]int64{v: 1, y: 1}, 0)
	c := NewConstraint(0, "c", expr, Equal)
	c2 := NewConstraint(1, "c2", expr, Equal)

	assert.Len(t, v.RelatedConstraints(), 2)
	v.addRelatedConstraint(c)
	assert.Len(t, v.RelatedConstraints(), 2)
	assert.Equal(t, []*Constraint{c, c2}, v.RelatedConstraints())
}
