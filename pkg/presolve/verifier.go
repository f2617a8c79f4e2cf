package presolve

import (
	"fmt"

	"github.com/gitrdm/printemps/pkg/model"
)

// Correction records one initial-value repair made by a verify-and-correct
// pass, so the caller can log it (the original prints each one as it
// happens; here the caller decides how and whether to surface them).
type Correction struct {
	Variable string
	OldValue int64
	NewValue int64
}

func (c Correction) String() string {
	return fmt.Sprintf("initial value %s = %d was corrected to %d", c.Variable, c.OldValue, c.NewValue)
}

// VerifyProblem checks the minimal well-formedness every solve needs before
// presolve or search can run: at least one variable, and at least one
// constraint or a defined objective. These are the two ways an empty or
// malformed model slips through the builder.
func VerifyProblem(m *model.Model) error {
	if len(m.Variables()) == 0 {
		return fmt.Errorf("%w: no variables are defined", model.ErrInvalidInitialValue)
	}
	if len(m.Constraints()) == 0 && m.Objective().Size() == 0 {
		return fmt.Errorf("%w: neither objective nor constraint functions are defined", model.ErrInvalidInitialValue)
	}
	return nil
}

// VerifyAndCorrectBinaryVariablesInitialValues walks every Binary-sense
// variable and, for any whose current value is neither 0 nor 1, either
// clamps it to the nearer bound (when correction is enabled) or reports
// ErrInvalidInitialValue. A fixed variable outside {0,1} is always an error:
// correction never overrides a fix.
func VerifyAndCorrectBinaryVariablesInitialValues(m *model.Model, correct bool) ([]Correction, error) {
	var corrections []Correction
	for _, v := range m.Variables() {
		if v.Sense() != model.Binary {
			continue
		}
		if v.Value() == 0 || v.Value() == 1 {
			continue
		}
		if v.IsFixed() {
			return nil, fmt.Errorf("%w: %q is fixed to an invalid binary value %d",
				model.ErrInvalidInitialValue, v.Name(), v.Value())
		}
		if !correct {
			return nil, fmt.Errorf("%w: %q's initial value %d violates its binary bounds",
				model.ErrInvalidInitialValue, v.Name(), v.Value())
		}
		corrections = append(corrections, clampToBounds(v))
	}
	return corrections, nil
}

// VerifyAndCorrectIntegerVariablesInitialValues is the bound-clamping
// counterpart of VerifyAndCorrectBinaryVariablesInitialValues for every
// non-binary, non-selection, non-dependent variable.
func VerifyAndCorrectIntegerVariablesInitialValues(m *model.Model, correct bool) ([]Correction, error) {
	var corrections []Correction
	for _, v := range m.Variables() {
		if v.Sense() != model.Integer {
			continue
		}
		if v.Value() >= v.Lower() && v.Value() <= v.Upper() {
			continue
		}
		if v.IsFixed() {
			return nil, fmt.Errorf("%w: %q is fixed to a value outside its bounds",
				model.ErrInvalidInitialValue, v.Name())
		}
		if !correct {
			return nil, fmt.Errorf("%w: %q's initial value %d violates its bounds [%d,%d]",
				model.ErrInvalidInitialValue, v.Name(), v.Value(), v.Lower(), v.Upper())
		}
		corrections = append(corrections, clampToBounds(v))
	}
	return corrections, nil
}

func clampToBounds(v *model.Variable) Correction {
	old := v.Value()
	newValue := v.Lower()
	if old > v.Upper() {
		newValue = v.Upper()
	}
	v.TrySetValue(newValue)
	return Correction{Variable: v.Name(), OldValue: old, NewValue: newValue}
}

// VerifyAndCorrectSelectionVariablesInitialValues enforces each selection
// block's at-most-one/exactly-one invariant on the variables' *initial*
// values, before the search loop starts relying on the selected pointer
// (§4.5). For every block it:
//
//  1. rejects (always, correction or not) a fixed member whose value is
//     outside {0,1}, and a block with more than one fixed member at 1;
//  2. when correction is enabled, zeros any member whose value is outside
//     {0,1};
//  3. if exactly one fixed member is at 1, forces every other member to 0
//     and adopts the fixed one as selected (rejecting, when correction is
//     disabled, a second non-fixed member also at 1);
//  4. if more than one member is at 1 (and none is fixed), keeps whichever
//     minimizes total violation of the block's related constraints and
//     zeros the rest — mirroring the "best effort" repair the reducer uses
//     elsewhere rather than an arbitrary pick;
//  5. if no member is at 1, sets whichever non-fixed member minimizes
//     violation to 1;
//  6. otherwise (exactly one member already at 1, non-fixed) just adopts it
//     as selected.
//
// Violation bookkeeping accumulates per related constraint as corrections
// are applied within a block, so a later tie-break in the same block sees
// the effect of an earlier one (matching the original's running
// related_constraint_ptr_values accumulator).
func VerifyAndCorrectSelectionVariablesInitialValues(m *model.Model, correct bool) ([]Correction, error) {
	var corrections []Correction
	for _, selection := range m.Selections() {
		runningValue := make(map[*model.Constraint]int64)

		var fixedSelected, selected, fixedInvalid, invalid []*model.Variable
		for _, v := range selection.Variables() {
			if v.Value() == 1 {
				selected = append(selected, v)
				if v.IsFixed() {
					fixedSelected = append(fixedSelected, v)
				}
			}
			if v.Value() != 0 && v.Value() != 1 {
				invalid = append(invalid, v)
				if v.IsFixed() {
					fixedInvalid = append(fixedInvalid, v)
				}
			}
		}

		if len(fixedInvalid) > 0 {
			return nil, fmt.Errorf("%w: selection has a fixed variable outside {0,1}", model.ErrInvalidInitialValue)
		}
		if len(fixedSelected) > 1 {
			return nil, fmt.Errorf("%w: selection has more than one fixed selected variable", model.ErrInvalidInitialValue)
		}

		if len(invalid) > 0 {
			if !correct {
				return nil, fmt.Errorf("%w: selection has a variable outside {0,1}", model.ErrInvalidInitialValue)
			}
			for _, v := range invalid {
				old := v.Value()
				v.TrySetValue(0)
				corrections = append(corrections, Correction{Variable: v.Name(), OldValue: old, NewValue: 0})
			}
		}

		switch {
		case len(fixedSelected) == 1:
			if !correct && len(selected) >= 2 {
				return nil, fmt.Errorf("%w: selection has more than one selected variable", model.ErrInvalidInitialValue)
			}
			adopt(selection, fixedSelected[0], selected, runningValue, &corrections)

		case len(selected) > 1:
			if !correct {
				return nil, fmt.Errorf("%w: selection has more than one selected variable", model.ErrInvalidInitialValue)
			}
			best := leastViolating(selected, runningValue)
			adopt(selection, best, selected, runningValue, &corrections)

		case len(selected) == 0:
			if !correct {
				return nil, fmt.Errorf("%w: selection has no selected variable", model.ErrInvalidInitialValue)
			}
			var candidates []*model.Variable
			for _, v := range selection.Variables() {
				if !v.IsFixed() {
					candidates = append(candidates, v)
				}
			}
			best := leastViolating(candidates, runningValue)
			if best == nil {
				return nil, fmt.Errorf("%w: selection has no variable that can be set", model.ErrInvalidInitialValue)
			}
			old := best.Value()
			best.TrySetValue(1)
			corrections = append(corrections, Correction{Variable: best.Name(), OldValue: old, NewValue: 1})
			selection.SetSelected(best)
			accumulate(best, runningValue)

		default:
			selection.SetSelected(selected[0])
		}
	}
	return corrections, nil
}

// adopt forces every member of selected other than keep to 0, sets keep to
// 1, and installs keep as the block's selected member.
func adopt(selection *model.Selection, keep *model.Variable, selected []*model.Variable,
	runningValue map[*model.Constraint]int64, corrections *[]Correction) {
	for _, v := range selected {
		if v != keep {
			v.TrySetValue(0)
			*corrections = append(*corrections, Correction{Variable: v.Name(), OldValue: 1, NewValue: 0})
		}
	}
	keep.TrySetValue(1)
	selection.SetSelected(keep)
	accumulate(keep, runningValue)
}

// accumulate adds v's contribution (coefficient * 1, since v has just been
// set to 1) to every related constraint's running value.
func accumulate(v *model.Variable, runningValue map[*model.Constraint]int64) {
	for _, c := range v.RelatedConstraints() {
		runningValue[c] += c.Expression().Coefficient(v)
	}
}

// leastViolating picks whichever candidate would leave its related
// constraints closest to feasible if set to 1, given every other
// candidate's contribution already folded into runningValue. Returns nil
// for an empty candidate list.
func leastViolating(candidates []*model.Variable, runningValue map[*model.Constraint]int64) *model.Variable {
	var best *model.Variable
	bestViolation := int64(-1)
	for _, v := range candidates {
		violation := int64(0)
		for _, c := range v.RelatedConstraints() {
			value := runningValue[c] + c.Expression().Coefficient(v) + c.Expression().Constant()
			switch c.Sense() {
			case model.Less:
				violation += maxInt64(value, 0)
			case model.Equal:
				violation += absInt64(value)
			case model.Greater:
				violation += maxInt64(-value, 0)
			}
		}
		if best == nil || violation < bestViolation {
			best = v
			bestViolation = violation
		}
	}
	return best
}

func maxInt64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

func absInt64(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
