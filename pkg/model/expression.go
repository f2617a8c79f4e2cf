package model

import (
	"errors"
	"fmt"
	"sort"

	"github.com/mitchellh/hashstructure/v2"
)

// ErrNonIntegerSubstitution is returned by Expression.Solve when eliminating
// the requested variable would require a non-integer coefficient on some
// remaining term or on the constant — i.e. the equation does not actually
// define an integer-preserving substitution for that variable. The
// dependent-variable extractor only calls Solve on constraints its
// classifier has already judged substitution-friendly, so in practice this
// only fires if that judgement was wrong.
var ErrNonIntegerSubstitution = errors.New("model: substitution would not preserve integer coefficients")

// Expression is a sparse linear form Σ aᵢxᵢ + c over int64 coefficients and
// an int64 constant. Coefficients are integers throughout (not floats):
// SPEC_FULL.md §3 resolves the original's "purge coefficients with |a| <
// 1e-10" rule, a float-precision artifact, to its integer limit — purge
// exact-zero coefficients after arithmetic — since invariant 3 of §8
// requires the fast and full evaluators to agree exactly in integer
// arithmetic, which only holds if every coefficient along the way is exact.
type Expression struct {
	terms    map[*Variable]int64
	constant int64

	cachedValue int64

	// mutablePositive / mutableNegative partition the non-fixed entries of
	// terms by coefficient sign, populated by SetupMutableVariableSensitivities.
	mutablePositive map[*Variable]int64
	mutableNegative map[*Variable]int64

	// mirror is the FixedSizeHashMap built by SetupFixedSensitivities,
	// used by EvaluateMove's hot path.
	mirror *FixedSizeHashMap

	hash    uint64
	hashSet bool
}

// NewExpression creates an expression from a sparse term map and a constant.
// The supplied map is copied; zero-coefficient entries are dropped.
func NewExpression(terms map[*Variable]int64, constant int64) *Expression {
	e := &Expression{
		terms:    make(map[*Variable]int64, len(terms)),
		constant: constant,
	}
	for v, c := range terms {
		if c != 0 {
			e.terms[v] = c
		}
	}
	e.cachedValue = e.Evaluate()
	return e
}

// NewEmptyExpression returns the zero expression (no terms, constant 0).
func NewEmptyExpression() *Expression {
	return NewExpression(nil, 0)
}

// Constant returns the expression's constant term.
func (e *Expression) Constant() int64 { return e.constant }

// Terms returns a defensive copy of the sparse coefficient map.
func (e *Expression) Terms() map[*Variable]int64 {
	cp := make(map[*Variable]int64, len(e.terms))
	for v, c := range e.terms {
		cp[v] = c
	}
	return cp
}

// Coefficient returns the coefficient of v in this expression (0 if absent).
func (e *Expression) Coefficient(v *Variable) int64 { return e.terms[v] }

// Size returns the number of non-zero terms.
func (e *Expression) Size() int { return len(e.terms) }

// Value returns the cached value as of the last Update/UpdateMove call (or
// construction time).
func (e *Expression) Value() int64 { return e.cachedValue }

// Evaluate performs a full recomputation of Σ aᵢxᵢ + c from the variables'
// current values. It does not touch the cache.
func (e *Expression) Evaluate() int64 {
	total := e.constant
	for v, c := range e.terms {
		total += c * v.Value()
	}
	return total
}

// EvaluateMove computes the expression's value after applying move's
// alterations, without touching any variable: cachedValue + Σ aᵢ ·
// (target(xᵢ) − current(xᵢ)) over the move's alterations that appear in
// this expression. Requires SetupFixedSensitivities to have been called;
// panics otherwise (a programmer error, not a runtime condition), matching
// the "requires setup" contract of SPEC_FULL.md §4.1.
func (e *Expression) EvaluateMove(move *Move) int64 {
	if e.mirror == nil {
		panic("model: Expression.EvaluateMove called before SetupFixedSensitivities")
	}
	delta := int64(0)
	for _, a := range move.Alterations {
		coeff := e.mirror.At(a.Variable)
		if coeff != 0 {
			delta += coeff * (a.Value - a.Variable.Value())
		}
	}
	return e.cachedValue + delta
}

// Update refreshes the cached value via a full recomputation.
func (e *Expression) Update() {
	e.cachedValue = e.Evaluate()
}

// UpdateMove refreshes the cached value using the fast move-delta formula
// (equivalent to EvaluateMove, but also writes the cache).
func (e *Expression) UpdateMove(move *Move) {
	e.cachedValue = e.EvaluateMove(move)
}

// SetupFixedSensitivities (re)builds the FixedSizeHashMap mirror of terms.
// Must be called once after the expression's term set is final (i.e. after
// presolve/substitution), and again if the term set changes afterward.
func (e *Expression) SetupFixedSensitivities() {
	e.mirror = NewFixedSizeHashMap(e.terms)
}

// SetupMutableVariableSensitivities partitions the non-fixed entries of
// terms into mutablePositive/mutableNegative by coefficient sign. Used by
// presolve's bound-propagation step, which needs to reason about the
// one-sided contribution of non-fixed variables only.
func (e *Expression) SetupMutableVariableSensitivities() {
	e.mutablePositive = make(map[*Variable]int64)
	e.mutableNegative = make(map[*Variable]int64)
	for v, c := range e.terms {
		if v.IsFixed() {
			continue
		}
		if c > 0 {
			e.mutablePositive[v] = c
		} else if c < 0 {
			e.mutableNegative[v] = c
		}
	}
}

// MutablePositiveSensitivities returns the non-fixed terms with positive
// coefficient, populated by SetupMutableVariableSensitivities.
func (e *Expression) MutablePositiveSensitivities() map[*Variable]int64 { return e.mutablePositive }

// MutableNegativeSensitivities returns the non-fixed terms with negative
// coefficient, populated by SetupMutableVariableSensitivities.
func (e *Expression) MutableNegativeSensitivities() map[*Variable]int64 { return e.mutableNegative }

// Bounds returns the expression's achievable [lower, upper] interval given
// each term's current variable bounds: for a positive coefficient the
// minimum/maximum contributions come from the variable's lower/upper bound
// respectively, and vice versa for a negative coefficient. Used by
// ProblemSizeReducer's redundant-constraint and bound-tightening passes.
func (e *Expression) Bounds() (lower, upper int64) {
	lower, upper = e.constant, e.constant
	for v, c := range e.terms {
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

// BoundsExcluding is like Bounds but treats excluded as if it contributed
// zero, used by presolve when deriving a one-sided bound for `excluded`
// itself from the other mutable variables' extremes (§4.4 "Multi-variable"
// case).
func (e *Expression) BoundsExcluding(excluded *Variable) (lower, upper int64) {
	lower, upper = e.constant, e.constant
	for v, c := range e.terms {
		if v == excluded {
			continue
		}
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

// Add returns a new expression representing e + other, merging sparse maps
// by summing colliding coefficients and dropping any that cancel to zero.
func (e *Expression) Add(other *Expression) *Expression {
	merged := e.Terms()
	for v, c := range other.terms {
		merged[v] += c
	}
	return NewExpression(merged, e.constant+other.constant)
}

// Sub returns a new expression representing e - other.
func (e *Expression) Sub(other *Expression) *Expression {
	merged := e.Terms()
	for v, c := range other.terms {
		merged[v] -= c
	}
	return NewExpression(merged, e.constant-other.constant)
}

// MulScalar returns a new expression representing e * k: scales both
// coefficients and the constant.
func (e *Expression) MulScalar(k int64) *Expression {
	merged := make(map[*Variable]int64, len(e.terms))
	for v, c := range e.terms {
		merged[v] = c * k
	}
	return NewExpression(merged, e.constant*k)
}

// DivScalar returns a new expression representing e / k. Returns
// ErrNonIntegerSubstitution if any coefficient or the constant does not
// divide evenly by k.
func (e *Expression) DivScalar(k int64) (*Expression, error) {
	if k == 0 {
		return nil, fmt.Errorf("model: division by zero coefficient")
	}
	merged := make(map[*Variable]int64, len(e.terms))
	for v, c := range e.terms {
		if c%k != 0 {
			return nil, ErrNonIntegerSubstitution
		}
		merged[v] = c / k
	}
	if e.constant%k != 0 {
		return nil, ErrNonIntegerSubstitution
	}
	return NewExpression(merged, e.constant/k), nil
}

// AddTerm adds coeff to v's coefficient in-place, dropping the entry if the
// result is exactly zero. Used by builders assembling an expression
// incrementally (expr += a*x idiom, per SPEC_FULL.md §9's builder-operator
// note).
func (e *Expression) AddTerm(v *Variable, coeff int64) {
	next := e.terms[v] + coeff
	if next == 0 {
		delete(e.terms, v)
	} else {
		e.terms[v] = next
	}
}

// Solve returns a new expression representing the substitution of key from
// this expression treated as "this == 0": −(Σ_{i≠key} aᵢxᵢ + c) / a_key.
// Returns ErrNonIntegerSubstitution if a_key does not divide every other
// coefficient and the constant evenly, and a plain (unwrapped) error if key
// does not appear in the expression at all.
func (e *Expression) Solve(key *Variable) (*Expression, error) {
	coeff, ok := e.terms[key]
	if !ok || coeff == 0 {
		return nil, fmt.Errorf("model: Solve: %s does not appear in expression", key.Name())
	}
	rest := make(map[*Variable]int64, len(e.terms)-1)
	for v, c := range e.terms {
		if v == key {
			continue
		}
		rest[v] = c
	}
	negated := NewExpression(rest, e.constant)
	negated = negated.MulScalar(-1)
	return negated.DivScalar(coeff)
}

// contentHash computes a stable structural hash over the (variable identity,
// coefficient) pairs sorted by variable ID, plus the constant, using
// mitchellh/hashstructure for a low-collision digest. A hand-rolled
// sum-of-pointer-identities hash (as the original's comment literally
// describes) collides far too often to be a useful equality short-circuit;
// SPEC_FULL.md §4.12 records this choice.
func (e *Expression) contentHash() uint64 {
	if e.hashSet {
		return e.hash
	}
	type entry struct {
		ID          int
		Coefficient int64
	}
	entries := make([]entry, 0, len(e.terms))
	for v, c := range e.terms {
		entries = append(entries, entry{ID: v.ID(), Coefficient: c})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })

	h, err := hashstructure.Hash(struct {
		Entries  []entry
		Constant int64
	}{entries, e.constant}, hashstructure.FormatV2, nil)
	if err != nil {
		// hashstructure only fails on unsupported types; entry/int64 are
		// always supported, so this is unreachable in practice.
		h = uint64(len(entries))
	}
	e.hash = h
	e.hashSet = true
	return h
}

// Equal reports structural equality modulo coefficient order: same size,
// same content hash (short-circuit), then a term-by-term comparison.
func (e *Expression) Equal(other *Expression) bool {
	if e == other {
		return true
	}
	if other == nil {
		return false
	}
	if e.constant != other.constant || len(e.terms) != len(other.terms) {
		return false
	}
	if e.contentHash() != other.contentHash() {
		return false
	}
	for v, c := range e.terms {
		oc, ok := other.terms[v]
		if !ok || oc != c {
			return false
		}
	}
	return true
}

// String returns a human-readable rendering, e.g. "2x1 - 3x2 + 5".
func (e *Expression) String() string {
	if len(e.terms) == 0 {
		return fmt.Sprintf("%d", e.constant)
	}
	ids := make([]*Variable, 0, len(e.terms))
	for v := range e.terms {
		ids = append(ids, v)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].ID() < ids[j].ID() })

	s := ""
	for i, v := range ids {
		c := e.terms[v]
		sign := "+"
		abs := c
		if c < 0 {
			sign = "-"
			abs = -c
		}
		if i == 0 && sign == "+" {
			s += fmt.Sprintf("%dx%s", abs, v.Name())
		} else {
			s += fmt.Sprintf(" %s %dx%s", sign, abs, v.Name())
		}
	}
	if e.constant != 0 {
		if e.constant > 0 {
			s += fmt.Sprintf(" + %d", e.constant)
		} else {
			s += fmt.Sprintf(" - %d", -e.constant)
		}
	}
	return s
}
