package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSelectionDisablesSourceAndUpgradesMembers(t *testing.T) {
	x := mustVar(t, 0, "x", 0, 1)
	y := mustVar(t, 1, "y", 0, 1)
	z := mustVar(t, 2, "z", 0, 1)
	require.NoError(t, y.SetValue(1))

	source := NewConstraint(0, "src", NewExpression(map[*Variable]int64{x: 1, y: 1, z: 1}, -1), Equal)
	block := NewSelection(0, source, []*Variable{x, y, z})

	assert.False(t, source.IsEnabled())
	for _, v := range block.Variables() {
		assert.Equal(t, Selection, v.Sense())
		assert.Same(t, block, v.SelectionBlock())
	}
	assert.Same(t, y, block.Selected())
}

func TestNewSelectionFallsBackToFirstMemberWhenNoneIsSet(t *testing.T) {
	x := mustVar(t, 0, "x", 0, 1)
	y := mustVar(t, 1, "y", 0, 1)
	source := NewConstraint(0, "src", NewExpression(map[*Variable]int64{x: 1, y: 1}, -1), Equal)
	block := NewSelection(0, source, []*Variable{x, y})
	assert.Same(t, x, block.Selected())
}

func TestSelectionRelatedConstraintsOrderedByDegreeThenSize(t *testing.T) {
	x := mustVar(t, 0, "x", 0, 1)
	y := mustVar(t, 1, "y", 0, 1)
	z := mustVar(t, 2, "z", 0, 1)
	w := mustVar(t, 3, "w", 0, 5)

	source := NewConstraint(0, "src", NewExpression(map[*Variable]int64{x: 1, y: 1, z: 1}, -1), Equal)
	// shared touches all three members; lonely touches only x (plus a
	// non-member w), so shared has the higher degree.
	shared := NewConstraint(1, "shared", NewExpression(map[*Variable]int64{x: 1, y: 1, z: 1}, 0), Less)
	lonely := NewConstraint(2, "lonely", NewExpression(map[*Variable]int64{x: 1, w: 1}, 0), Less)

	block := NewSelection(0, source, []*Variable{x, y, z})
	related := block.RelatedConstraints()

	assert.Contains(t, related, source)
	assert.Contains(t, related, shared)
	assert.Contains(t, related, lonely)

	sharedIdx, lonelyIdx := -1, -1
	for i, c := range related {
		if c == shared {
			sharedIdx = i
		}
		if c == lonely {
			lonelyIdx = i
		}
	}
	assert.Less(t, sharedIdx, lonelyIdx, "higher-degree constraint should sort before lower-degree one")
}

func TestSelectionHasMember(t *testing.T) {
	x := mustVar(t, 0, "x", 0, 1)
	y := mustVar(t, 1, "y", 0, 1)
	source := NewConstraint(0, "src", NewExpression(map[*Variable]int64{x: 1, y: 1}, -1), Equal)
	block := NewSelection(0, source, []*Variable{x, y})
	assert.True(t, block.HasMember(x))

	other := mustVar(t, 2, "z", 0, 1)
	assert.False(t, block.HasMember(other))
}

func TestSelectionSetSelected(t *testing.T) {
	x := mustVar(t, 0, "x", 0, 1)
	y := mustVar(t, 1, "y", 0, 1)
	source := NewConstraint(0, "src", NewExpression(map[*Variable]int64{x: 1, y: 1}, -1), Equal)
	block := NewSelection(0, source, []*Variable{x, y})
	block.SetSelected(y)
	assert.Same(t, y, block.Selected())
}
