package solver

import (
	"encoding/json"
	"time"
)

// Status mirrors the outer driver's bookkeeping surface named in §6's
// status.json: per-constraint penalty coefficients and update counts,
// plus the scalar run counters the driver accumulates as it iterates.
type Status struct {
	PenaltyCoefficients map[string]float64
	UpdateCounts        map[string]int

	IsFoundFeasibleSolution        bool
	ElapsedTime                    time.Duration
	NumberOfLagrangeDualIterations int
	NumberOfLocalSearchIterations  int
	NumberOfTabuSearchIterations   int
	NumberOfTabuSearchLoops        int
}

// NewStatus returns a zeroed Status with its maps allocated.
func NewStatus() *Status {
	return &Status{
		PenaltyCoefficients: make(map[string]float64),
		UpdateCounts:        make(map[string]int),
	}
}

// statusJSON is Status's on-the-wire shape for status.json: snake_case keys
// matching §6's field names, with ElapsedTime rendered as fractional
// seconds rather than Go's default nanosecond integer.
type statusJSON struct {
	PenaltyCoefficients map[string]float64 `json:"penalty_coefficients"`
	UpdateCounts        map[string]int     `json:"update_counts"`

	IsFoundFeasibleSolution        bool    `json:"is_found_feasible_solution"`
	ElapsedTimeSeconds             float64 `json:"elapsed_time_seconds"`
	NumberOfLagrangeDualIterations int     `json:"number_of_lagrange_dual_iterations"`
	NumberOfLocalSearchIterations  int     `json:"number_of_local_search_iterations"`
	NumberOfTabuSearchIterations   int     `json:"number_of_tabu_search_iterations"`
	NumberOfTabuSearchLoops        int     `json:"number_of_tabu_search_loops"`
}

// MarshalJSON renders s as §6's status.json shape.
func (s *Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(statusJSON{
		PenaltyCoefficients:             s.PenaltyCoefficients,
		UpdateCounts:                    s.UpdateCounts,
		IsFoundFeasibleSolution:         s.IsFoundFeasibleSolution,
		ElapsedTimeSeconds:              s.ElapsedTime.Seconds(),
		NumberOfLagrangeDualIterations:  s.NumberOfLagrangeDualIterations,
		NumberOfLocalSearchIterations:   s.NumberOfLocalSearchIterations,
		NumberOfTabuSearchIterations:    s.NumberOfTabuSearchIterations,
		NumberOfTabuSearchLoops:         s.NumberOfTabuSearchLoops,
	})
}
