// Package classifier implements ConstraintTypeClassifier (SPEC_FULL.md
// §4.3): a fixed-order cascade of structural predicates that tags every
// enabled constraint with one of model.ConstraintType's categories after
// presolve has converged.
package classifier

import (
	"sort"

	"github.com/gitrdm/printemps/pkg/model"
)

// structure is the per-constraint structural digest the predicate cascade
// reads from, grounded on original_source/printemps/model_component/
// expression.h's ExpressionStructure::structure(). Fixed variables are
// folded out: they never count toward numVariables or any of the
// categorized lists, and their coefficient*value contribution is folded
// into constant (without mutating the live Expression).
type structure struct {
	numVariables int
	constant     int64 // folded: declared constant + Σ fixed coeff*value
	rawConstant  int64 // the expression's own declared constant, unfolded

	hasOnlyBinaryCoefficient         bool
	hasOnlyBinaryOrSelectionVariable bool
	hasOnlyIntegerVariables          bool
	hasOnlyPlusOrMinusOneCoefficient bool
	hasBinPackingVariable            bool

	variables    []*model.Variable
	coefficients []int64

	plusOne               []*model.Variable
	minusOne              []*model.Variable
	plusOneInteger        []*model.Variable
	minusOneInteger       []*model.Variable
	plusNMinusOneInteger  []*model.Variable
	minusNMinusOneInteger []*model.Variable
	positive              []*model.Variable
	negative              []*model.Variable
}

func isBinaryLike(v *model.Variable) bool {
	return v.Sense() == model.Binary || v.Sense() == model.Selection
}

func isPlainInteger(v *model.Variable) bool {
	return v.Sense() == model.Integer
}

func absInt64(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}

// buildStructure computes the structural digest of expr, counting only its
// non-fixed terms, in declaration (variable-ID) order for determinism.
func buildStructure(expr *model.Expression) *structure {
	terms := expr.Terms()
	ids := make([]*model.Variable, 0, len(terms))
	for v := range terms {
		ids = append(ids, v)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].ID() < ids[j].ID() })

	s := &structure{
		constant:                         expr.Constant(),
		rawConstant:                      expr.Constant(),
		hasOnlyBinaryCoefficient:         true,
		hasOnlyBinaryOrSelectionVariable: true,
		hasOnlyIntegerVariables:          true,
		hasOnlyPlusOrMinusOneCoefficient: true,
	}

	for _, v := range ids {
		if v.IsFixed() {
			s.constant += terms[v] * v.Value()
			continue
		}
		s.numVariables++
	}

	for _, v := range ids {
		if v.IsFixed() {
			continue
		}
		c := terms[v]

		if c != 1 {
			s.hasOnlyBinaryCoefficient = false
		}
		if !isBinaryLike(v) {
			s.hasOnlyBinaryOrSelectionVariable = false
		}
		if !isPlainInteger(v) {
			s.hasOnlyIntegerVariables = false
		}
		if absInt64(c) != 1 {
			s.hasOnlyPlusOrMinusOneCoefficient = false
		}
		if c == -s.rawConstant {
			s.hasBinPackingVariable = true
		}

		if c == 1 {
			s.plusOne = append(s.plusOne, v)
			if isPlainInteger(v) {
				s.plusOneInteger = append(s.plusOneInteger, v)
			}
		} else if c == -1 {
			s.minusOne = append(s.minusOne, v)
			if isPlainInteger(v) {
				s.minusOneInteger = append(s.minusOneInteger, v)
			}
		}

		if c == int64(s.numVariables-1) {
			s.plusNMinusOneInteger = append(s.plusNMinusOneInteger, v)
		} else if c == -int64(s.numVariables-1) {
			s.minusNMinusOneInteger = append(s.minusNMinusOneInteger, v)
		}

		if c > 0 {
			s.positive = append(s.positive, v)
		} else if c < 0 {
			s.negative = append(s.negative, v)
		}

		s.variables = append(s.variables, v)
		s.coefficients = append(s.coefficients, c)
	}

	return s
}
