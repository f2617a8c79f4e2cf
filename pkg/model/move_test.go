package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoveUnionsRelatedConstraintsAcrossVariables(t *testing.T) {
	x := mustVar(t, 0, "x", 0, 5)
	y := mustVar(t, 1, "y", 0, 5)
	z := mustVar(t, 2, "z", 0, 5)

	c1 := NewConstraint(0, "c1", NewExpression(map[*Variable]int64{x: 1, y: 1}, 0), Equal)
	c2 := NewConstraint(1, "c2", NewExpression(map[*Variable]int64{y: 1, z: 1}, 0), Equal)

	move := NewMove(MoveInteger, []Alteration{{Variable: x, Value: 1}, {Variable: z, Value: 1}})
	assert.Equal(t, []*Constraint{c1, c2}, move.RelatedConstraints)
}

func TestMoveHasFixedVariable(t *testing.T) {
	x := mustVar(t, 0, "x", 0, 5)
	require.NoError(t, x.Fix(2))
	move := NewMove(MoveInteger, []Alteration{{Variable: x, Value: 3}})
	assert.True(t, move.HasFixedVariable())
}

func TestMoveViolatesBounds(t *testing.T) {
	x := mustVar(t, 0, "x", 0, 5)
	move := NewMove(MoveInteger, []Alteration{{Variable: x, Value: 9}})
	assert.True(t, move.ViolatesBounds())
}

func TestMoveHasImprovableVariable(t *testing.T) {
	x := mustVar(t, 0, "x", 0, 5)
	move := NewMove(MoveInteger, []Alteration{{Variable: x, Value: 1}})
	assert.False(t, move.HasImprovableVariable())
	x.SetImprovability(true, false)
	assert.True(t, move.HasImprovableVariable())
}

func TestNewSelectionMoveShapeAndRelatedConstraints(t *testing.T) {
	x := mustVar(t, 0, "x", 0, 1)
	y := mustVar(t, 1, "y", 0, 1)
	z := mustVar(t, 2, "z", 0, 1)
	require.NoError(t, x.SetValue(1))
	source := NewConstraint(0, "src", NewExpression(map[*Variable]int64{x: 1, y: 1, z: 1}, -1), Equal)
	block := NewSelection(0, source, []*Variable{x, y, z})

	move := NewSelectionMove(block, x, y)
	require.Len(t, move.Alterations, 2)
	assert.Equal(t, x, move.Alterations[0].Variable)
	assert.Equal(t, int64(0), move.Alterations[0].Value)
	assert.Equal(t, y, move.Alterations[1].Variable)
	assert.Equal(t, int64(1), move.Alterations[1].Value)
	assert.Equal(t, MoveSelection, move.Sense)
	assert.Equal(t, block.RelatedConstraints(), move.RelatedConstraints)
}

func TestMoveTouchesSelection(t *testing.T) {
	x := mustVar(t, 0, "x", 0, 1)
	y := mustVar(t, 1, "y", 0, 1)
	source := NewConstraint(0, "src", NewExpression(map[*Variable]int64{x: 1, y: 1}, -1), Equal)
	block := NewSelection(0, source, []*Variable{x, y})
	move := NewSelectionMove(block, x, y)
	assert.True(t, move.TouchesSelection())
}
