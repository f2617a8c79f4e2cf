package model

import "errors"

// Error kinds returned by the core model, per the taxonomy of invalid states
// a builder, the presolver, or the search loop can encounter. These are
// sentinel errors rather than exception types: callers compare with
// errors.Is, and every wrapping point uses fmt.Errorf's %w so context (which
// variable, which constraint) survives without losing the sentinel.
var (
	// ErrInvalidBounds is returned when a bound-tightening step or a direct
	// builder call would produce lower > upper for a variable.
	ErrInvalidBounds = errors.New("model: invalid bounds (lower > upper)")

	// ErrInvalidInitialValue is returned when an initial value violates a
	// variable's bounds, its integrality, or (for a selection member) the
	// block's at-most-one invariant, and initial-value correction is
	// disabled.
	ErrInvalidInitialValue = errors.New("model: invalid initial value")

	// ErrProxyLimitExceeded is returned at build time once a proxy
	// container (variables, expressions, or constraints) would exceed the
	// legacy cap of 100 proxies of that kind.
	ErrProxyLimitExceeded = errors.New("model: proxy limit exceeded")

	// ErrMutatedFixedVariable is returned by the write-any-value path
	// (SetValue) when the target variable is fixed. The write-if-mutable
	// path (TrySetValue) never returns this error; it simply declines the
	// write.
	ErrMutatedFixedVariable = errors.New("model: attempt to mutate a fixed variable")

	// ErrInfeasibleProblem is returned when presolve proves the problem has
	// no feasible integer assignment (e.g. a tightened bound crosses, or
	// implicit fixing produces conflicting values for the same variable).
	ErrInfeasibleProblem = errors.New("model: problem proven infeasible")
)

// ProxyLimit is the legacy per-kind cap on proxies (variables, expressions,
// constraints) carried over from the original implementation's pre-reserved
// vectors; see SPEC_FULL.md §9 "Cyclic object graphs". An arena/index model
// does not strictly need this cap to avoid pointer invalidation, but the cap
// is preserved as an explicit, checked limit rather than silently dropped.
const ProxyLimit = 100
