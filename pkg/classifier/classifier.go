package classifier

import "github.com/gitrdm/printemps/pkg/model"

// ClassifyAll runs Classify over every enabled constraint in m. Intended to
// be called once presolve (pkg/presolve.ProblemSizeReducer) has converged,
// per SPEC_FULL.md §4.3.
func ClassifyAll(m *model.Model) {
	for _, c := range m.Constraints() {
		if c.IsEnabled() {
			Classify(c)
		}
	}
}

// Classify inspects c and assigns its structural category (and, where the
// pattern designates one, a key variable) via the fixed-order cascade of
// §4.3: first match wins, GeneralLinear is the catch-all.
func Classify(c *model.Constraint) {
	s := buildStructure(c.Expression())
	sense := c.Sense()

	for _, check := range cascade {
		if ctype, key, ok := check(s, sense); ok {
			c.SetType(ctype)
			c.SetKeyVariable(key)
			return
		}
	}
	// Unreachable: checkGeneralLinear always matches.
	c.SetType(model.TypeGeneralLinear)
	c.SetKeyVariable(nil)
}

type checkFunc func(s *structure, sense model.ConstraintSense) (model.ConstraintType, *model.Variable, bool)

// cascade is tried in this exact order; the first predicate to match wins.
// Grounded on original_source/printemps/model_component/
// constraint_type_classifier.h's classification_order.
var cascade = []checkFunc{
	checkEmpty,
	checkSingleton,
	checkExclusiveOR,
	checkExclusiveNOR,
	checkInvertedIntegers,
	checkBalancedIntegers,
	checkConstantSumIntegers,
	checkConstantDifferenceIntegers,
	checkConstantRatioIntegers,
	checkIntermediateTwoTerm,
	checkAggregation,
	checkPrecedence,
	checkVariableBound,
	checkTrinomialExclusiveNOR,
	checkAllOrNothing,
	checkSetPartitioning,
	checkSetPacking,
	checkSetCovering,
	checkCardinality,
	checkInvariantKnapsack,
	checkMultipleCovering,
	checkSoftSelection,
	checkBinaryFlow,
	checkIntegerFlow,
	checkMinMax,
	checkMaxMin,
	checkIntermediateMultiTerm,
	checkEquationKnapsack,
	checkBinPacking,
	checkKnapsack,
	checkIntegerKnapsack,
	checkGF2,
	checkGeneralLinear,
}

// keyVariableByName returns whichever of a, b sorts first by name, matching
// the original's determine_key_variable_ptr (an arbitrary but deterministic
// tiebreak when a pattern is symmetric in both its variables).
func keyVariableByName(a, b *model.Variable) *model.Variable {
	if a.Name() < b.Name() {
		return a
	}
	return b
}

func checkEmpty(s *structure, _ model.ConstraintSense) (model.ConstraintType, *model.Variable, bool) {
	if s.numVariables > 0 {
		return 0, nil, false
	}
	return model.TypeEmpty, nil, true
}

func checkSingleton(s *structure, _ model.ConstraintSense) (model.ConstraintType, *model.Variable, bool) {
	if s.numVariables != 1 {
		return 0, nil, false
	}
	return model.TypeSingleton, nil, true
}

func checkExclusiveOR(s *structure, sense model.ConstraintSense) (model.ConstraintType, *model.Variable, bool) {
	if s.numVariables != 2 || sense != model.Equal {
		return 0, nil, false
	}
	a, b := s.variables[0], s.variables[1]
	ca, cb := s.coefficients[0], s.coefficients[1]
	if !isBinaryLike(a) || !isBinaryLike(b) {
		return 0, nil, false
	}
	if (ca == 1 && cb == 1 && s.constant == -1) || (ca == -1 && cb == -1 && s.constant == 1) {
		return model.TypeExclusiveOR, keyVariableByName(a, b), true
	}
	return 0, nil, false
}

func checkExclusiveNOR(s *structure, sense model.ConstraintSense) (model.ConstraintType, *model.Variable, bool) {
	if s.numVariables != 2 || sense != model.Equal {
		return 0, nil, false
	}
	a, b := s.variables[0], s.variables[1]
	ca, cb := s.coefficients[0], s.coefficients[1]
	if !isBinaryLike(a) || !isBinaryLike(b) {
		return 0, nil, false
	}
	if (ca == 1 && cb == -1 && s.constant == 0) || (ca == -1 && cb == 1 && s.constant == 0) {
		return model.TypeExclusiveNOR, keyVariableByName(a, b), true
	}
	return 0, nil, false
}

func checkInvertedIntegers(s *structure, sense model.ConstraintSense) (model.ConstraintType, *model.Variable, bool) {
	if s.numVariables != 2 || sense != model.Equal {
		return 0, nil, false
	}
	a, b := s.variables[0], s.variables[1]
	ca, cb := s.coefficients[0], s.coefficients[1]
	if !isPlainInteger(a) || !isPlainInteger(b) {
		return 0, nil, false
	}
	if ((ca == 1 && cb == 1) || (ca == -1 && cb == -1)) && s.constant == 0 {
		return model.TypeInvertedIntegers, keyVariableByName(a, b), true
	}
	return 0, nil, false
}

func checkBalancedIntegers(s *structure, sense model.ConstraintSense) (model.ConstraintType, *model.Variable, bool) {
	if s.numVariables != 2 || sense != model.Equal {
		return 0, nil, false
	}
	a, b := s.variables[0], s.variables[1]
	ca, cb := s.coefficients[0], s.coefficients[1]
	if !isPlainInteger(a) || !isPlainInteger(b) {
		return 0, nil, false
	}
	if ((ca == 1 && cb == -1) || (ca == -1 && cb == 1)) && s.constant == 0 {
		return model.TypeBalancedIntegers, keyVariableByName(a, b), true
	}
	return 0, nil, false
}

func checkConstantSumIntegers(s *structure, sense model.ConstraintSense) (model.ConstraintType, *model.Variable, bool) {
	if s.numVariables != 2 || sense != model.Equal {
		return 0, nil, false
	}
	a, b := s.variables[0], s.variables[1]
	ca, cb := s.coefficients[0], s.coefficients[1]
	if !isPlainInteger(a) || !isPlainInteger(b) {
		return 0, nil, false
	}
	if ((ca == 1 && cb == 1) || (ca == -1 && cb == -1)) && s.constant != 0 {
		return model.TypeConstantSumIntegers, keyVariableByName(a, b), true
	}
	return 0, nil, false
}

func checkConstantDifferenceIntegers(s *structure, sense model.ConstraintSense) (model.ConstraintType, *model.Variable, bool) {
	if s.numVariables != 2 || sense != model.Equal {
		return 0, nil, false
	}
	a, b := s.variables[0], s.variables[1]
	ca, cb := s.coefficients[0], s.coefficients[1]
	if !isPlainInteger(a) || !isPlainInteger(b) {
		return 0, nil, false
	}
	if ((ca == 1 && cb == -1) || (ca == -1 && cb == 1)) && s.constant != 0 {
		return model.TypeConstantDifferenceIntegers, keyVariableByName(a, b), true
	}
	return 0, nil, false
}

func checkConstantRatioIntegers(s *structure, sense model.ConstraintSense) (model.ConstraintType, *model.Variable, bool) {
	if s.numVariables != 2 || sense != model.Equal {
		return 0, nil, false
	}
	a, b := s.variables[0], s.variables[1]
	ca, cb := s.coefficients[0], s.coefficients[1]
	if !isPlainInteger(a) || !isPlainInteger(b) {
		return 0, nil, false
	}
	if s.constant != 0 {
		return 0, nil, false
	}
	if absInt64(ca) == 1 && absInt64(cb) != 1 {
		return model.TypeConstantRatioIntegers, a, true
	}
	if absInt64(ca) != 1 && absInt64(cb) == 1 {
		return model.TypeConstantRatioIntegers, b, true
	}
	return 0, nil, false
}

func checkIntermediateTwoTerm(s *structure, sense model.ConstraintSense) (model.ConstraintType, *model.Variable, bool) {
	if s.numVariables != 2 || sense != model.Equal {
		return 0, nil, false
	}
	a, b := s.variables[0], s.variables[1]
	ca, cb := s.coefficients[0], s.coefficients[1]
	if !isPlainInteger(a) || !isPlainInteger(b) {
		return 0, nil, false
	}
	if absInt64(ca) == 1 && absInt64(cb) != 1 {
		return model.TypeIntermediate, a, true
	}
	if absInt64(ca) != 1 && absInt64(cb) == 1 {
		return model.TypeIntermediate, b, true
	}
	return 0, nil, false
}

func checkAggregation(s *structure, sense model.ConstraintSense) (model.ConstraintType, *model.Variable, bool) {
	if s.numVariables != 2 || sense != model.Equal {
		return 0, nil, false
	}
	return model.TypeAggregation, nil, true
}

func checkPrecedence(s *structure, sense model.ConstraintSense) (model.ConstraintType, *model.Variable, bool) {
	if s.numVariables != 2 || sense == model.Equal {
		return 0, nil, false
	}
	a, b := s.variables[0], s.variables[1]
	ca, cb := s.coefficients[0], s.coefficients[1]
	if a.Sense() == b.Sense() && ca == -cb {
		return model.TypePrecedence, nil, true
	}
	return 0, nil, false
}

func checkVariableBound(s *structure, sense model.ConstraintSense) (model.ConstraintType, *model.Variable, bool) {
	if s.numVariables != 2 || sense == model.Equal {
		return 0, nil, false
	}
	return model.TypeVariableBound, nil, true
}

func checkTrinomialExclusiveNOR(s *structure, sense model.ConstraintSense) (model.ConstraintType, *model.Variable, bool) {
	if s.numVariables != 3 || sense != model.Equal || s.constant != 0 {
		return 0, nil, false
	}
	if !s.hasOnlyBinaryOrSelectionVariable {
		return 0, nil, false
	}
	if len(s.plusOne) == s.numVariables-1 && len(s.minusNMinusOneInteger) == 1 {
		return model.TypeTrinomialExclusiveNOR, s.minusNMinusOneInteger[0], true
	}
	if len(s.minusOne) == s.numVariables-1 && len(s.plusNMinusOneInteger) == 1 {
		return model.TypeTrinomialExclusiveNOR, s.plusNMinusOneInteger[0], true
	}
	return 0, nil, false
}

func checkAllOrNothing(s *structure, sense model.ConstraintSense) (model.ConstraintType, *model.Variable, bool) {
	if sense != model.Equal || s.constant != 0 {
		return 0, nil, false
	}
	if !s.hasOnlyBinaryOrSelectionVariable {
		return 0, nil, false
	}
	if len(s.plusOne) == s.numVariables-1 && len(s.minusNMinusOneInteger) == 1 {
		return model.TypeAllOrNothing, s.minusNMinusOneInteger[0], true
	}
	if len(s.minusOne) == s.numVariables-1 && len(s.plusNMinusOneInteger) == 1 {
		return model.TypeAllOrNothing, s.plusNMinusOneInteger[0], true
	}
	return 0, nil, false
}

func checkSetPartitioning(s *structure, sense model.ConstraintSense) (model.ConstraintType, *model.Variable, bool) {
	if !s.hasOnlyBinaryCoefficient || !s.hasOnlyBinaryOrSelectionVariable {
		return 0, nil, false
	}
	if s.constant == -1 && sense == model.Equal {
		return model.TypeSetPartitioning, nil, true
	}
	return 0, nil, false
}

func checkSetPacking(s *structure, sense model.ConstraintSense) (model.ConstraintType, *model.Variable, bool) {
	if !s.hasOnlyBinaryCoefficient || !s.hasOnlyBinaryOrSelectionVariable {
		return 0, nil, false
	}
	if s.constant == -1 && sense == model.Less {
		return model.TypeSetPacking, nil, true
	}
	return 0, nil, false
}

func checkSetCovering(s *structure, sense model.ConstraintSense) (model.ConstraintType, *model.Variable, bool) {
	if !s.hasOnlyBinaryCoefficient || !s.hasOnlyBinaryOrSelectionVariable {
		return 0, nil, false
	}
	if s.constant == -1 && sense == model.Greater {
		return model.TypeSetCovering, nil, true
	}
	return 0, nil, false
}

func checkCardinality(s *structure, sense model.ConstraintSense) (model.ConstraintType, *model.Variable, bool) {
	if !s.hasOnlyBinaryCoefficient || !s.hasOnlyBinaryOrSelectionVariable {
		return 0, nil, false
	}
	if s.constant <= -2 && sense == model.Equal {
		return model.TypeCardinality, nil, true
	}
	return 0, nil, false
}

func checkInvariantKnapsack(s *structure, sense model.ConstraintSense) (model.ConstraintType, *model.Variable, bool) {
	if !s.hasOnlyBinaryCoefficient || !s.hasOnlyBinaryOrSelectionVariable {
		return 0, nil, false
	}
	if s.constant <= -2 && sense == model.Less {
		return model.TypeInvariantKnapsack, nil, true
	}
	return 0, nil, false
}

func checkMultipleCovering(s *structure, sense model.ConstraintSense) (model.ConstraintType, *model.Variable, bool) {
	if !s.hasOnlyBinaryCoefficient || !s.hasOnlyBinaryOrSelectionVariable {
		return 0, nil, false
	}
	if s.constant <= -2 && sense == model.Greater {
		return model.TypeMultipleCovering, nil, true
	}
	return 0, nil, false
}

func checkSoftSelection(s *structure, sense model.ConstraintSense) (model.ConstraintType, *model.Variable, bool) {
	if sense != model.Equal || s.constant != 0 {
		return 0, nil, false
	}
	if !s.hasOnlyPlusOrMinusOneCoefficient || !s.hasOnlyBinaryOrSelectionVariable {
		return 0, nil, false
	}
	if len(s.plusOne) == 1 && len(s.minusOne) > 0 {
		return model.TypeSoftSelection, s.plusOne[0], true
	}
	if len(s.plusOne) > 0 && len(s.minusOne) == 1 {
		return model.TypeSoftSelection, s.minusOne[0], true
	}
	return 0, nil, false
}

func checkBinaryFlow(s *structure, sense model.ConstraintSense) (model.ConstraintType, *model.Variable, bool) {
	if sense != model.Equal {
		return 0, nil, false
	}
	if !s.hasOnlyPlusOrMinusOneCoefficient || !s.hasOnlyBinaryOrSelectionVariable {
		return 0, nil, false
	}
	return model.TypeBinaryFlow, nil, true
}

func checkIntegerFlow(s *structure, sense model.ConstraintSense) (model.ConstraintType, *model.Variable, bool) {
	if sense != model.Equal {
		return 0, nil, false
	}
	if !s.hasOnlyPlusOrMinusOneCoefficient || !s.hasOnlyIntegerVariables {
		return 0, nil, false
	}
	if len(s.plusOne) > 1 && len(s.minusOne) > 1 {
		return model.TypeIntegerFlow, nil, true
	}
	return 0, nil, false
}

func checkMinMax(s *structure, sense model.ConstraintSense) (model.ConstraintType, *model.Variable, bool) {
	if sense == model.Equal {
		return 0, nil, false
	}
	if sense == model.Less && len(s.minusOneInteger) == 1 && len(s.plusOneInteger) == 0 {
		return model.TypeMinMax, s.minusOneInteger[0], true
	}
	if sense == model.Greater && len(s.plusOneInteger) == 1 && len(s.minusOneInteger) == 0 {
		return model.TypeMinMax, s.plusOneInteger[0], true
	}
	return 0, nil, false
}

func checkMaxMin(s *structure, sense model.ConstraintSense) (model.ConstraintType, *model.Variable, bool) {
	if sense == model.Equal {
		return 0, nil, false
	}
	if sense == model.Greater && len(s.minusOneInteger) == 1 && len(s.plusOneInteger) == 0 {
		return model.TypeMaxMin, s.minusOneInteger[0], true
	}
	if sense == model.Less && len(s.plusOneInteger) == 1 && len(s.minusOneInteger) == 0 {
		return model.TypeMaxMin, s.plusOneInteger[0], true
	}
	return 0, nil, false
}

func checkIntermediateMultiTerm(s *structure, sense model.ConstraintSense) (model.ConstraintType, *model.Variable, bool) {
	if sense != model.Equal {
		return 0, nil, false
	}
	if len(s.minusOneInteger) == 1 && len(s.plusOneInteger) != 1 {
		return model.TypeIntermediate, s.minusOneInteger[0], true
	}
	if len(s.plusOneInteger) == 1 && len(s.minusOneInteger) != 1 {
		return model.TypeIntermediate, s.plusOneInteger[0], true
	}
	return 0, nil, false
}

func checkEquationKnapsack(s *structure, sense model.ConstraintSense) (model.ConstraintType, *model.Variable, bool) {
	if !s.hasOnlyBinaryOrSelectionVariable || sense != model.Equal {
		return 0, nil, false
	}
	if len(s.positive) == 0 || len(s.negative) == 0 {
		return model.TypeEquationKnapsack, nil, true
	}
	return 0, nil, false
}

func checkBinPacking(s *structure, sense model.ConstraintSense) (model.ConstraintType, *model.Variable, bool) {
	if !s.hasOnlyBinaryOrSelectionVariable || !s.hasBinPackingVariable {
		return 0, nil, false
	}
	if (len(s.negative) == 0 && sense == model.Less) || (len(s.positive) == 0 && sense == model.Greater) {
		return model.TypeBinPacking, nil, true
	}
	return 0, nil, false
}

func checkKnapsack(s *structure, sense model.ConstraintSense) (model.ConstraintType, *model.Variable, bool) {
	if !s.hasOnlyBinaryOrSelectionVariable {
		return 0, nil, false
	}
	if (len(s.negative) == 0 && sense == model.Less) || (len(s.positive) == 0 && sense == model.Greater) {
		return model.TypeKnapsack, nil, true
	}
	return 0, nil, false
}

func checkIntegerKnapsack(s *structure, sense model.ConstraintSense) (model.ConstraintType, *model.Variable, bool) {
	if s.hasOnlyBinaryOrSelectionVariable {
		return 0, nil, false
	}
	if (len(s.negative) == 0 && sense == model.Less) || (len(s.positive) == 0 && sense == model.Greater) {
		return model.TypeIntegerKnapsack, nil, true
	}
	return 0, nil, false
}

// floorDiv2 and ceilDiv2 implement floor/ceil division by 2 for possibly
// negative operands (Go's / truncates toward zero).
func floorDiv2(a int64) int64 {
	q := a / 2
	if a%2 != 0 && a < 0 {
		q--
	}
	return q
}

func ceilDiv2(a int64) int64 {
	q := a / 2
	if a%2 != 0 && a > 0 {
		q++
	}
	return q
}

func checkGF2(s *structure, sense model.ConstraintSense) (model.ConstraintType, *model.Variable, bool) {
	if sense != model.Equal {
		return 0, nil, false
	}
	if s.constant != 0 && absInt64(s.constant) != 1 {
		return 0, nil, false
	}

	var keyVariable *model.Variable
	var keyCoeff int64
	coefficientTwoCount := 0

	for i, v := range s.variables {
		c := s.coefficients[i]
		switch {
		case (isPlainInteger(v) || v.Sense() == model.Binary) && absInt64(c) == 2:
			keyVariable = v
			keyCoeff = c
			coefficientTwoCount++
		case v.Sense() != model.Binary || absInt64(c) != 1:
			return 0, nil, false
		}
	}
	if coefficientTwoCount != 1 {
		return 0, nil, false
	}

	restLower, restUpper := restBoundsExcluding(s, keyVariable)
	if keyCoeff > 0 {
		restLower, restUpper = -restUpper, -restLower
	}

	if keyVariable.Lower() != -model.DefaultBoundMagnitude && keyVariable.Lower() > ceilDiv2(restLower) {
		return 0, nil, false
	}
	if keyVariable.Upper() != model.DefaultBoundMagnitude && keyVariable.Upper() < floorDiv2(restUpper) {
		return 0, nil, false
	}

	return model.TypeGF2, keyVariable, true
}

// restBoundsExcluding is checkGF2's own bound computation rather than
// Expression.BoundsExcluding: the GF2 check must also re-fold in any fixed
// variables' contribution (structure already drops fixed terms and folds
// them into s.constant), so it works from the structure's non-fixed term
// list directly instead of the live Expression.
func restBoundsExcluding(s *structure, excluded *model.Variable) (lower, upper int64) {
	lower, upper = s.constant, s.constant
	for i, v := range s.variables {
		if v == excluded {
			continue
		}
		c := s.coefficients[i]
		if c > 0 {
			lower += c * v.Lower()
			upper += c * v.Upper()
		} else {
			lower += c * v.Upper()
			upper += c * v.Lower()
		}
	}
	return lower, upper
}

func checkGeneralLinear(_ *structure, _ model.ConstraintSense) (model.ConstraintType, *model.Variable, bool) {
	return model.TypeGeneralLinear, nil, true
}
