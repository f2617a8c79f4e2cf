package presolve

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/gitrdm/printemps/pkg/model"
)

// GF2Summary reports what SolveGF2 did.
type GF2Summary struct {
	// Solved is true iff every GF(2) equation was fixed to a unique
	// solution.
	Solved bool
	// FixedVariables counts every variable (binary and key/slack) fixed
	// as a result.
	FixedVariables int
}

// SolveGF2 runs only when the enabled, classified constraints include at
// least one TypeGF2 equation and the set of equations forms a square,
// full-rank system over the binary variables they reference (§4.7): it
// collects every enabled TypeGF2 constraint, requires exactly N distinct
// non-key binary variables and N distinct key (slack) variables across the
// N equations, builds the N×N parity matrix (each binary coefficient mod 2)
// and the RHS vector (each constant's parity), solves it by Gaussian
// elimination over GF(2), and on success fixes every binary variable to its
// solved 0/1 value and back-solves each equation's key variable from the
// now-fixed binary values. Returns a zero GF2Summary (not an error) if the
// system doesn't qualify — this is a presolve opportunity, not a
// requirement.
func SolveGF2(m *model.Model) (GF2Summary, error) {
	var equations []*model.Constraint
	for _, c := range m.Constraints() {
		if c.IsEnabled() && c.Type() == model.TypeGF2 {
			equations = append(equations, c)
		}
	}
	n := len(equations)
	if n == 0 {
		return GF2Summary{}, nil
	}

	binaryIndex := make(map[*model.Variable]int, n)
	var binaryOrder []*model.Variable
	keySet := make(map[*model.Variable]bool, n)

	for _, c := range equations {
		key := c.KeyVariable()
		keySet[key] = true
		for v := range c.Expression().Terms() {
			if v == key {
				continue
			}
			if _, seen := binaryIndex[v]; !seen {
				binaryIndex[v] = len(binaryOrder)
				binaryOrder = append(binaryOrder, v)
			}
		}
	}

	if len(binaryOrder) != n || len(keySet) != n {
		return GF2Summary{}, nil
	}

	rows := make([]*bitset.BitSet, n)
	rhs := make([]bool, n)
	for i, c := range equations {
		row := bitset.New(uint(n))
		key := c.KeyVariable()
		for v, coeff := range c.Expression().Terms() {
			if v == key {
				continue
			}
			if coeff%2 != 0 {
				row.Set(uint(binaryIndex[v]))
			}
		}
		rows[i] = row
		rhs[i] = absInt64GF2(c.Expression().Constant())%2 != 0
	}

	solution, ok := gf2Eliminate(rows, rhs, n)
	if !ok {
		return GF2Summary{}, nil
	}

	for v, idx := range binaryIndex {
		value := int64(0)
		if solution[idx] {
			value = 1
		}
		if err := v.Fix(value); err != nil {
			return GF2Summary{}, err
		}
	}

	for _, c := range equations {
		key := c.KeyVariable()
		keyCoeff := c.Expression().Coefficient(key)
		value := c.Expression().Constant()
		for v, coeff := range c.Expression().Terms() {
			if v != key {
				value += coeff * v.Value()
			}
		}
		keyValue, remainder := divmod(-value, keyCoeff)
		if remainder != 0 {
			return GF2Summary{}, nil
		}
		if err := key.Fix(keyValue); err != nil {
			return GF2Summary{}, err
		}
	}

	return GF2Summary{Solved: true, FixedVariables: len(binaryOrder) + len(keySet)}, nil
}

func absInt64GF2(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}

func divmod(a, b int64) (quotient, remainder int64) {
	return a / b, a % b
}

// gf2Eliminate solves rows·x = rhs over GF(2) by Gauss-Jordan elimination
// with XOR row combination. Returns ok=false if the system is rank-deficient
// (some column never gets a pivot), matching §4.7's "aborts if rank < N".
// Mutates rows and rhs in place.
func gf2Eliminate(rows []*bitset.BitSet, rhs []bool, n int) ([]bool, bool) {
	pivotRowForCol := make([]int, n)
	used := make([]bool, n)

	for col := 0; col < n; col++ {
		pivot := -1
		for row := 0; row < n; row++ {
			if !used[row] && rows[row].Test(uint(col)) {
				pivot = row
				break
			}
		}
		if pivot == -1 {
			return nil, false
		}
		used[pivot] = true
		pivotRowForCol[col] = pivot

		for row := 0; row < n; row++ {
			if row != pivot && rows[row].Test(uint(col)) {
				rows[row].InPlaceSymmetricDifference(rows[pivot])
				rhs[row] = rhs[row] != rhs[pivot]
			}
		}
	}

	solution := make([]bool, n)
	for col := 0; col < n; col++ {
		solution[col] = rhs[pivotRowForCol[col]]
	}
	return solution, true
}
