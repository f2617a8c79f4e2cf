package model

import "fmt"

// ConstraintType is the structural category a ConstraintTypeClassifier
// assigns to an enabled constraint. It lives in this package (rather than in
// pkg/classifier) because Constraint carries one as a cached field; the
// classification algorithm itself lives in pkg/classifier, which imports
// this package — never the reverse.
type ConstraintType int

const (
	// TypeUnclassified is the zero value: no classifier has inspected this
	// constraint yet.
	TypeUnclassified ConstraintType = iota
	TypeEmpty
	TypeSingleton
	TypeExclusiveOR
	TypeExclusiveNOR
	TypeInvertedIntegers
	TypeBalancedIntegers
	TypeConstantSumIntegers
	TypeConstantDifferenceIntegers
	TypeConstantRatioIntegers
	TypeIntermediate
	TypeAggregation
	TypePrecedence
	TypeVariableBound
	TypeTrinomialExclusiveNOR
	TypeAllOrNothing
	TypeSetPartitioning
	TypeSetPacking
	TypeSetCovering
	TypeCardinality
	TypeInvariantKnapsack
	TypeMultipleCovering
	TypeSoftSelection
	TypeBinaryFlow
	TypeIntegerFlow
	TypeMinMax
	TypeMaxMin
	TypeEquationKnapsack
	TypeBinPacking
	TypeKnapsack
	TypeIntegerKnapsack
	TypeGF2
	TypeGeneralLinear
)

var constraintTypeNames = [...]string{
	"Unclassified",
	"Empty",
	"Singleton",
	"ExclusiveOR",
	"ExclusiveNOR",
	"InvertedIntegers",
	"BalancedIntegers",
	"ConstantSumIntegers",
	"ConstantDifferenceIntegers",
	"ConstantRatioIntegers",
	"Intermediate",
	"Aggregation",
	"Precedence",
	"VariableBound",
	"TrinomialExclusiveNOR",
	"AllOrNothing",
	"SetPartitioning",
	"SetPacking",
	"SetCovering",
	"Cardinality",
	"InvariantKnapsack",
	"MultipleCovering",
	"SoftSelection",
	"BinaryFlow",
	"IntegerFlow",
	"MinMax",
	"MaxMin",
	"EquationKnapsack",
	"BinPacking",
	"Knapsack",
	"IntegerKnapsack",
	"GF2",
	"GeneralLinear",
}

func (t ConstraintType) String() string {
	if int(t) < 0 || int(t) >= len(constraintTypeNames) {
		return fmt.Sprintf("ConstraintType(%d)", int(t))
	}
	return constraintTypeNames[t]
}

// substitutionFriendly is the set of categories §4.6 designates as
// candidates for dependent-variable extraction, each individually
// toggleable by pkg/config.Options.Preprocess.
var substitutionFriendly = map[ConstraintType]bool{
	TypeExclusiveOR:           true,
	TypeExclusiveNOR:          true,
	TypeInvertedIntegers:      true,
	TypeBalancedIntegers:      true,
	TypeConstantSumIntegers:   true,
	TypeConstantDifferenceIntegers: true,
	TypeConstantRatioIntegers: true,
	TypeTrinomialExclusiveNOR: true,
	TypeAllOrNothing:          true,
	TypeIntermediate:          true,
}

// IsSubstitutionFriendly reports whether t is one of the categories §4.6
// considers for dependent-variable extraction.
func (t ConstraintType) IsSubstitutionFriendly() bool { return substitutionFriendly[t] }
