package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitrdm/printemps/pkg/model"
	"github.com/gitrdm/printemps/pkg/presolve"
)

func TestDefaultMatchesSpecDefaults(t *testing.T) {
	opts := Default()
	assert.True(t, opts.Preprocess.IsEnabledPresolve)
	assert.Equal(t, presolve.SelectionDefined, opts.Neighborhood.SelectionMode)
	assert.Equal(t, VerboseOff, opts.Output.Verbose)
	assert.True(t, opts.Neighborhood.IsEnabledBinaryMove)
}

func TestDependentExtractionEnabledBuildsFullMap(t *testing.T) {
	enabled := Default().Preprocess.DependentExtractionEnabled()
	assert.True(t, enabled[model.TypeExclusiveOR])
	assert.True(t, enabled[model.TypeAllOrNothing])
	assert.True(t, enabled[model.TypeIntermediate])
}

func TestLoadYAMLOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "options.yaml")
	content := `
general:
  iteration_max: 500
  time_max: 30
output:
  verbose: Full
neighborhood:
  selection_mode: Smaller
  is_enabled_binary_move: false
preprocess:
  is_enabled_extract_dependent_exclusive_or: false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	opts, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 500, opts.General.IterationMax)
	assert.Equal(t, 30.0, opts.General.TimeMax)
	assert.Equal(t, VerboseFull, opts.Output.Verbose)
	assert.Equal(t, presolve.SelectionSmaller, opts.Neighborhood.SelectionMode)
	assert.False(t, opts.Neighborhood.IsEnabledBinaryMove)
	assert.False(t, opts.Preprocess.IsEnabledExtractDependentExclusiveOR)
	// Anything the file didn't mention keeps its default.
	assert.True(t, opts.Neighborhood.IsEnabledIntegerMove)
}

func TestLoadJSONOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "options.json")
	content := `{"output": {"verbose": "Warning"}, "general": {"iteration_max": 10}}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	opts, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, VerboseWarning, opts.Output.Verbose)
	assert.Equal(t, 10, opts.General.IterationMax)
}

func TestLoadRejectsInvalidVerboseLevel(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "options.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output:\n  verbose: Loud\n"), 0o644))

	_, err := Load(path)
	require.ErrorIs(t, err, ErrInvalidVerboseLevel)
}

func TestLoadRejectsInvalidSelectionMode(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "options.yaml")
	require.NoError(t, os.WriteFile(path, []byte("neighborhood:\n  selection_mode: Huge\n"), 0o644))

	_, err := Load(path)
	require.ErrorIs(t, err, ErrInvalidSelectionMode)
}

func TestLoadRejectsUnsupportedExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "options.toml")
	require.NoError(t, os.WriteFile(path, []byte("x = 1"), 0o644))

	_, err := Load(path)
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}
