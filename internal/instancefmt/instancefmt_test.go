package instancefmt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitrdm/printemps/pkg/model"
)

const sampleInstance = `
* a tiny knapsack-shaped instance
min: -2 x1 -3 x2 -1 x3 ;
c1: +2 x1 +3 x2 +1 x3 <= 4 ;
bounds: x1 0 1 x2 0 1 x3 0 1 ;
`

func TestParseInstanceParsesObjectiveAndConstraint(t *testing.T) {
	inst, err := ParseInstance(strings.NewReader(sampleInstance))
	require.NoError(t, err)

	assert.Equal(t, Minimize, inst.Objective.Sense)
	require.Len(t, inst.Objective.Terms, 3)
	assert.Equal(t, Term{Coefficient: -2, Variable: "x1"}, inst.Objective.Terms[0])

	require.Len(t, inst.Constraints, 1)
	c := inst.Constraints[0]
	assert.Equal(t, "c1", c.Name)
	assert.Equal(t, model.Less, c.Sense)
	assert.Equal(t, int64(4), c.RHS)

	require.Len(t, inst.Bounds, 3)
	assert.Equal(t, BoundDef{Variable: "x1", Lower: 0, Upper: 1}, inst.Bounds[0])
}

func TestParseInstanceRejectsMissingObjective(t *testing.T) {
	_, err := ParseInstance(strings.NewReader("c1: +1 x1 <= 1 ;\n"))
	assert.Error(t, err)
}

func TestImportBuildsModelMatchingInstance(t *testing.T) {
	inst, err := ParseInstance(strings.NewReader(sampleInstance))
	require.NoError(t, err)

	m := model.NewModel()
	require.NoError(t, Import(m, inst))

	x1, ok := m.VariableByName("x1")
	require.True(t, ok)
	assert.Equal(t, int64(0), x1.Lower())
	assert.Equal(t, int64(1), x1.Upper())

	require.Len(t, m.Constraints(), 1)
	assert.Equal(t, "c1", m.Constraints()[0].Name())
	assert.True(t, m.Objective().IsMinimization())
}

func TestImportRejectsUndeclaredVariable(t *testing.T) {
	inst := &Instance{
		Objective:   Objective{Sense: Minimize, Terms: []Term{{Coefficient: 1, Variable: "x1"}}},
		Constraints: []ConstraintDef{{Terms: []Term{{Coefficient: 1, Variable: "ghost"}}, Sense: model.Less, RHS: 1}},
	}
	m := model.NewModel()
	err := Import(m, inst)
	assert.Error(t, err)
}

func TestParseSolutionValuesReadsNameEqualsValueLines(t *testing.T) {
	values, err := ParseSolutionValues(strings.NewReader("* comment\nx1 = 1\nx2 = 0\n"))
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"x1": 1, "x2": 0}, values)
}

func TestParseSolutionValuesRejectsMalformedLine(t *testing.T) {
	_, err := ParseSolutionValues(strings.NewReader("not-an-assignment\n"))
	assert.Error(t, err)
}
