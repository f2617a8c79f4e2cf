package solver

import (
	"github.com/gitrdm/printemps/pkg/config"
	"github.com/gitrdm/printemps/pkg/model"
	"github.com/gitrdm/printemps/pkg/neighborhood"
	"github.com/gitrdm/printemps/pkg/presolve"
)

// PreprocessSummary reports what Preprocess changed, gathered from each
// pass it ran.
type PreprocessSummary struct {
	Reduce       presolve.Summary
	Selections   int
	Dependent    presolve.DependentSummary
	GF2          presolve.GF2Summary
	Corrections  []presolve.Correction
}

// Preprocess runs the fixed setup sequence of cppmh's Model::setup (verify
// problem, presolve to a fixed point, extract structure, correct initial
// values, then populate caches), reading opts for which passes are
// enabled, and returns the built Neighborhood engine ready for Refresh.
func Preprocess(m *model.Model, opts config.Options, log *Logger) (*neighborhood.Neighborhood, PreprocessSummary, error) {
	var summary PreprocessSummary

	if err := presolve.VerifyProblem(m); err != nil {
		return nil, summary, err
	}

	if opts.Preprocess.IsEnabledPresolve {
		r := presolve.NewReducer()
		rs, err := r.Reduce(m, false)
		if err != nil {
			return nil, summary, err
		}
		summary.Reduce = rs
		if rs.FixedVariables > 0 || rs.DisabledConstraints > 0 {
			log.Warning("presolve fixed %d variables and disabled %d constraints over %d iterations",
				rs.FixedVariables, rs.DisabledConstraints, rs.Iterations)
		}
	}

	selections := presolve.ExtractSelections(m, opts.Neighborhood.SelectionMode)
	summary.Selections = len(selections)

	ds, err := presolve.ExtractDependentVariables(m, opts.Preprocess.DependentExtractionEnabled())
	if err != nil {
		return nil, summary, err
	}
	summary.Dependent = ds

	gs, err := presolve.SolveGF2(m)
	if err != nil {
		return nil, summary, err
	}
	summary.GF2 = gs

	n := buildNeighborhood(m, opts)

	corrections, err := presolve.VerifyAndCorrectSelectionVariablesInitialValues(m, true)
	if err != nil {
		return nil, summary, err
	}
	summary.Corrections = append(summary.Corrections, corrections...)

	corrections, err = presolve.VerifyAndCorrectBinaryVariablesInitialValues(m, true)
	if err != nil {
		return nil, summary, err
	}
	summary.Corrections = append(summary.Corrections, corrections...)

	corrections, err = presolve.VerifyAndCorrectIntegerVariablesInitialValues(m, true)
	if err != nil {
		return nil, summary, err
	}
	summary.Corrections = append(summary.Corrections, corrections...)

	for _, c := range summary.Corrections {
		log.Warning("%s", c.String())
	}

	m.Setup()

	return n, summary, nil
}

// buildNeighborhood constructs the move-generation engine per
// opts.Neighborhood's toggles.
func buildNeighborhood(m *model.Model, opts config.Options) *neighborhood.Neighborhood {
	n := neighborhood.New(m)
	n.SetEnabled(model.MoveBinary, opts.Neighborhood.IsEnabledBinaryMove)
	n.SetEnabled(model.MoveInteger, opts.Neighborhood.IsEnabledIntegerMove)
	n.SetEnabled(model.MoveAggregation, opts.Neighborhood.IsEnabledAggregationMove)
	n.SetEnabled(model.MovePrecedence, opts.Neighborhood.IsEnabledPrecedenceMove)
	n.SetEnabled(model.MoveVariableBound, opts.Neighborhood.IsEnabledVariableBoundMove)
	n.SetEnabled(model.MoveExclusive, opts.Neighborhood.IsEnabledExclusiveMove)
	n.SetEnabled(model.MoveSelection, opts.Neighborhood.IsEnabledSelectionMove)
	n.SetScreen(neighborhood.Screen{RequireImprovable: opts.Neighborhood.ImprovabilityScreeningMode})
	return n
}
