// Package config decodes the hierarchical runtime options blob (§6) into a
// typed Options struct, the way operator-framework's pkg/lib/codec decodes
// Kubernetes manifests: a generic map is read from file, then
// github.com/mitchellh/mapstructure walks it into the target struct with a
// couple of decode hooks for the string-enum fields.
package config

import (
	"fmt"

	"github.com/gitrdm/printemps/pkg/model"
	"github.com/gitrdm/printemps/pkg/presolve"
)

// Options is the root of the runtime configuration blob, one field per
// top-level group named in §6.
type Options struct {
	General      General
	Preprocess   Preprocess
	Neighborhood Neighborhood
	Penalty      Penalty
	TabuSearch   TabuSearch   `mapstructure:"tabu_search"`
	LocalSearch  LocalSearch  `mapstructure:"local_search"`
	LagrangeDual LagrangeDual `mapstructure:"lagrange_dual"`
	Output       Output
}

// General holds the outer loop's stopping conditions.
type General struct {
	IterationMax int     `mapstructure:"iteration_max"`
	TimeMax      float64 `mapstructure:"time_max"`
}

// Preprocess controls ProblemSizeReducer/SelectionExtractor/
// DependentVariableExtractor/GF2Solver/Verifier.
type Preprocess struct {
	IsEnabledPresolve bool `mapstructure:"is_enabled_presolve"`

	// The following are the "one per category named in §4.6" toggles;
	// DependentExtractionEnabled folds them into the
	// map[model.ConstraintType]bool presolve.ExtractDependentVariables
	// expects.
	IsEnabledExtractDependentExclusiveOR           bool `mapstructure:"is_enabled_extract_dependent_exclusive_or"`
	IsEnabledExtractDependentExclusiveNOR          bool `mapstructure:"is_enabled_extract_dependent_exclusive_nor"`
	IsEnabledExtractDependentInvertedIntegers      bool `mapstructure:"is_enabled_extract_dependent_inverted_integers"`
	IsEnabledExtractDependentBalancedIntegers      bool `mapstructure:"is_enabled_extract_dependent_balanced_integers"`
	IsEnabledExtractDependentConstantSumIntegers   bool `mapstructure:"is_enabled_extract_dependent_constant_sum_integers"`
	IsEnabledExtractDependentConstantDifferenceIntegers bool `mapstructure:"is_enabled_extract_dependent_constant_difference_integers"`
	IsEnabledExtractDependentConstantRatioIntegers bool `mapstructure:"is_enabled_extract_dependent_constant_ratio_integers"`
	IsEnabledExtractDependentTrinomialExclusiveNOR bool `mapstructure:"is_enabled_extract_dependent_trinomial_exclusive_nor"`
	IsEnabledExtractDependentAllOrNothing          bool `mapstructure:"is_enabled_extract_dependent_all_or_nothing"`
	IsEnabledExtractDependentIntermediate          bool `mapstructure:"is_enabled_extract_dependent_intermediate"`
}

// DependentExtractionEnabled builds the map presolve.ExtractDependentVariables
// takes as its enabled-categories argument.
func (p Preprocess) DependentExtractionEnabled() map[model.ConstraintType]bool {
	return map[model.ConstraintType]bool{
		model.TypeExclusiveOR:               p.IsEnabledExtractDependentExclusiveOR,
		model.TypeExclusiveNOR:              p.IsEnabledExtractDependentExclusiveNOR,
		model.TypeInvertedIntegers:          p.IsEnabledExtractDependentInvertedIntegers,
		model.TypeBalancedIntegers:          p.IsEnabledExtractDependentBalancedIntegers,
		model.TypeConstantSumIntegers:       p.IsEnabledExtractDependentConstantSumIntegers,
		model.TypeConstantDifferenceIntegers: p.IsEnabledExtractDependentConstantDifferenceIntegers,
		model.TypeConstantRatioIntegers:     p.IsEnabledExtractDependentConstantRatioIntegers,
		model.TypeTrinomialExclusiveNOR:     p.IsEnabledExtractDependentTrinomialExclusiveNOR,
		model.TypeAllOrNothing:              p.IsEnabledExtractDependentAllOrNothing,
		model.TypeIntermediate:              p.IsEnabledExtractDependentIntermediate,
	}
}

// Neighborhood controls SelectionExtractor's mode (selection extraction is
// consumed by the neighborhood engine's Selection-swap generator, hence
// living in this group rather than Preprocess — §6) and each move
// generator's on/off toggle.
type Neighborhood struct {
	SelectionMode                     presolve.SelectionMode `mapstructure:"selection_mode"`
	IsEnabledBinaryMove               bool                   `mapstructure:"is_enabled_binary_move"`
	IsEnabledIntegerMove               bool                  `mapstructure:"is_enabled_integer_move"`
	IsEnabledAggregationMove           bool                  `mapstructure:"is_enabled_aggregation_move"`
	IsEnabledPrecedenceMove            bool                  `mapstructure:"is_enabled_precedence_move"`
	IsEnabledVariableBoundMove         bool                  `mapstructure:"is_enabled_variable_bound_move"`
	IsEnabledExclusiveMove             bool                  `mapstructure:"is_enabled_exclusive_move"`
	IsEnabledSelectionMove             bool                  `mapstructure:"is_enabled_selection_move"`
	ImprovabilityScreeningMode         bool                  `mapstructure:"improvability_screening_mode"`
}

// Penalty, TabuSearch, LocalSearch, and LagrangeDual configure the outer
// search drivers, which stay external collaborators per §1's Non-goals;
// these groups exist so config.Load accepts and round-trips a full options
// file without error, and so pkg/solver's outer-loop glue has real fields
// to read iteration/penalty knobs from.
type Penalty struct {
	InitialCoefficient float64 `mapstructure:"initial_coefficient"`
	UpdateRatio        float64 `mapstructure:"update_ratio"`
}

type TabuSearch struct {
	TenureRatio     float64 `mapstructure:"tenure_ratio"`
	IterationMax    int     `mapstructure:"iteration_max"`
}

type LocalSearch struct {
	IterationMax int `mapstructure:"iteration_max"`
}

type LagrangeDual struct {
	IterationMax int     `mapstructure:"iteration_max"`
	StepSizeMax  float64 `mapstructure:"step_size_max"`
}

// Output controls the verbose console logger (pkg/solver/verbose.go).
type Output struct {
	Verbose VerboseLevel `mapstructure:"verbose"`
}

// VerboseLevel is the leveled-logging threshold of §6's
// `output.verbose ∈ {Off, Warning, Outer, Inner, Full}`.
type VerboseLevel int

const (
	VerboseOff VerboseLevel = iota
	VerboseWarning
	VerboseOuter
	VerboseInner
	VerboseFull
)

func (v VerboseLevel) String() string {
	switch v {
	case VerboseOff:
		return "Off"
	case VerboseWarning:
		return "Warning"
	case VerboseOuter:
		return "Outer"
	case VerboseInner:
		return "Inner"
	case VerboseFull:
		return "Full"
	default:
		return fmt.Sprintf("VerboseLevel(%d)", int(v))
	}
}

// Default returns the zero-config defaults named in SPEC_FULL.md §4.11:
// presolve on, every neighborhood generator on, selection mode Defined,
// verbose Off.
func Default() Options {
	return Options{
		General: General{IterationMax: 10000, TimeMax: 120},
		Preprocess: Preprocess{
			IsEnabledPresolve:                                   true,
			IsEnabledExtractDependentExclusiveOR:                true,
			IsEnabledExtractDependentExclusiveNOR:               true,
			IsEnabledExtractDependentInvertedIntegers:           true,
			IsEnabledExtractDependentBalancedIntegers:           true,
			IsEnabledExtractDependentConstantSumIntegers:        true,
			IsEnabledExtractDependentConstantDifferenceIntegers: true,
			IsEnabledExtractDependentConstantRatioIntegers:      true,
			IsEnabledExtractDependentTrinomialExclusiveNOR:      true,
			IsEnabledExtractDependentAllOrNothing:               true,
			IsEnabledExtractDependentIntermediate:               true,
		},
		Neighborhood: Neighborhood{
			SelectionMode:              presolve.SelectionDefined,
			IsEnabledBinaryMove:        true,
			IsEnabledIntegerMove:       true,
			IsEnabledAggregationMove:   true,
			IsEnabledPrecedenceMove:    true,
			IsEnabledVariableBoundMove: true,
			IsEnabledExclusiveMove:     true,
			IsEnabledSelectionMove:     true,
			ImprovabilityScreeningMode: true,
		},
		Penalty:      Penalty{InitialCoefficient: 1, UpdateRatio: 1.1},
		TabuSearch:   TabuSearch{TenureRatio: 0.1, IterationMax: 1000},
		LocalSearch:  LocalSearch{IterationMax: 1000},
		LagrangeDual: LagrangeDual{IterationMax: 100, StepSizeMax: 1},
		Output:       Output{Verbose: VerboseOff},
	}
}
