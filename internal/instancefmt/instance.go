// Package instancefmt reads the text instance and solution file formats
// named in §6's External Interfaces: a PB-lite pseudo-Boolean format for
// problem instances (grounded on the pseudo-Boolean competition format the
// original's pb_solver.h reads via read_pb/import_pb) and a plain
// "name = value" listing for initial-solution files
// (pb_solver_argparser.h's initial_solution_file_name). Neither format nor
// the outer CLI that drives this package is in scope for the core engine
// itself (§1's Non-goals exclude PB/LP/MPS parsing from the core), but the
// driver built in cmd/printemps-solve needs some concrete instance format to
// read, and this is the one the original standalone solver reads.
package instancefmt

import "github.com/gitrdm/printemps/pkg/model"

// Sense is an instance's declared optimization direction.
type Sense int

const (
	Minimize Sense = iota
	Maximize
)

// Term is one coefficient*variable product in an objective or constraint
// row, keyed by the variable's name since the Instance is parsed before any
// model.Variable exists.
type Term struct {
	Coefficient int64
	Variable    string
}

// Objective is the instance's single linear objective row.
type Objective struct {
	Sense Sense
	Terms []Term
}

// ConstraintDef is one linear row: sum(Terms) <sense> RHS, where <sense>
// determines how it is shifted into the expr-relative-to-zero form
// model.CreateConstraint expects.
type ConstraintDef struct {
	Name  string
	Terms []Term
	Sense model.ConstraintSense
	RHS   int64
}

// BoundDef overrides a variable's default [0,1] bound.
type BoundDef struct {
	Variable     string
	Lower, Upper int64
}

// Instance is the fully parsed contents of a PB-lite file, still
// name-keyed: Import replays it into a model.Builder to produce the actual
// Variables/Expressions/Constraints.
type Instance struct {
	Objective   Objective
	Constraints []ConstraintDef
	Bounds      []BoundDef
}
