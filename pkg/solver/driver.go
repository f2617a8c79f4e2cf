package solver

import (
	"time"

	"github.com/gitrdm/printemps/pkg/config"
	"github.com/gitrdm/printemps/pkg/model"
	"github.com/gitrdm/printemps/pkg/neighborhood"
)

// Result is what Run returns: the best solution it saw (preferring a
// feasible one whenever it found any) plus the run's Status.
type Result struct {
	Incumbent Solution
	Status    *Status
}

// Run drives the outer search loop of §5: seed the incumbent score from the
// model's current state, then repeatedly refresh the neighborhood, evaluate
// every admitted move against the incumbent score, commit the
// steepest-descent move (by global augmented objective), and escalate
// per-constraint penalty coefficients whenever no move improves on the
// current state. This is the minimal outer-loop glue SPEC_FULL.md's driver
// section calls for so the core can be exercised end to end — not a
// reproduction of the original tabu-search/local-search/Lagrangian-dual
// metaheuristics, which §1 names as out of scope.
//
// Run does not set the variables' improvability flags: with
// opts.Neighborhood.ImprovabilityScreeningMode on, only moves over variables
// whose flags were set before the call are admitted.
func Run(m *model.Model, n *neighborhood.Neighborhood, opts config.Options, interrupt *Interrupt, log *Logger) Result {
	start := time.Now()
	status := NewStatus()
	updateCounts := make(map[*model.Constraint]int)

	localPenalties := make(map[*model.Constraint]float64, len(m.Constraints()))
	globalPenalties := make(map[*model.Constraint]float64, len(m.Constraints()))
	for _, c := range m.Constraints() {
		localPenalties[c] = opts.Penalty.InitialCoefficient
		globalPenalties[c] = opts.Penalty.InitialCoefficient
	}

	current := m.EvaluateInitial(localPenalties, globalPenalties)
	best := Snapshot(m)
	bestFeasible := current.IsFeasible
	bestSignedObjective := m.Objective().SignedValue()
	bestViolation := current.TotalViolation
	if current.IsFeasible {
		status.IsFoundFeasibleSolution = true
	}

	iterationMax := opts.General.IterationMax
	timeMax := time.Duration(opts.General.TimeMax * float64(time.Second))

	for iter := 0; iterationMax <= 0 || iter < iterationMax; iter++ {
		if interrupt != nil && interrupt.Triggered() {
			log.Outer("interrupted at iteration %d", iter)
			break
		}
		if timeMax > 0 && time.Since(start) >= timeMax {
			log.Outer("time limit reached at iteration %d", iter)
			break
		}

		moves := n.Refresh()
		if len(moves) == 0 {
			log.Outer("iteration %d: no admissible moves, stopping", iter)
			break
		}

		bestMove, bestScore, found := selectDescendingMove(m, moves, current, localPenalties, globalPenalties)
		status.NumberOfLocalSearchIterations++
		status.NumberOfTabuSearchLoops++

		if !found {
			escalatePenalties(m, localPenalties, globalPenalties, opts.Penalty.UpdateRatio)
			continue
		}

		m.Update(bestMove)
		current = bestScore
		status.NumberOfTabuSearchIterations++
		for _, c := range bestMove.RelatedConstraints {
			updateCounts[c]++
		}

		log.Inner("iteration %d: committed %s move, objective=%d violation=%d",
			iter, bestMove.Sense, current.Objective, current.TotalViolation)

		if current.IsFeasible {
			status.IsFoundFeasibleSolution = true
		}

		signed := m.Objective().SignedValue()
		if improvesIncumbent(current.IsFeasible, current.TotalViolation, signed, bestFeasible, bestViolation, bestSignedObjective) {
			best = Snapshot(m)
			bestFeasible = current.IsFeasible
			bestViolation = current.TotalViolation
			bestSignedObjective = signed
		}
	}

	for _, c := range m.Constraints() {
		status.PenaltyCoefficients[c.Name()] = globalPenalties[c]
		status.UpdateCounts[c.Name()] = updateCounts[c]
	}
	status.ElapsedTime = time.Since(start)

	return Result{Incumbent: best, Status: status}
}

// selectDescendingMove scores every candidate move and returns the one with
// the smallest global augmented objective, provided it strictly improves on
// current's. Ties favor the first move encountered (insertion/shuffle
// order), matching the "first admitted, then best-scoring" precedence
// §4.8 implies for a deterministic replay.
func selectDescendingMove(m *model.Model, moves []*model.Move, current model.Score,
	localPenalties, globalPenalties map[*model.Constraint]float64) (*model.Move, model.Score, bool) {

	var bestMove *model.Move
	var bestScore model.Score
	found := false

	for _, move := range moves {
		score := m.Evaluate(move, current, localPenalties, globalPenalties)
		if !found || score.GlobalAugmentedObjective < bestScore.GlobalAugmentedObjective {
			bestMove = move
			bestScore = score
			found = true
		}
	}

	if found && bestScore.GlobalAugmentedObjective >= current.GlobalAugmentedObjective {
		return nil, model.Score{}, false
	}
	return bestMove, bestScore, found
}

// escalatePenalties multiplies every currently-violated constraint's local
// and global penalty coefficient by ratio, the textbook penalty-method
// escalation step (§6's penalty.update_ratio) used when steepest descent
// finds no improving move: raising the cost of infeasibility reopens the
// neighborhood to moves that reduce violation.
func escalatePenalties(m *model.Model, localPenalties, globalPenalties map[*model.Constraint]float64, ratio float64) {
	for _, c := range m.Constraints() {
		if !c.IsEnabled() || c.Violation() == 0 {
			continue
		}
		localPenalties[c] *= ratio
		globalPenalties[c] *= ratio
	}
}

// improvesIncumbent reports whether a candidate state is a better incumbent
// than the best seen so far: feasible beats infeasible outright; within the
// same feasibility class, smaller violation wins while infeasible, smaller
// signed objective wins while feasible.
func improvesIncumbent(candidateFeasible bool, candidateViolation, candidateSigned int64,
	bestFeasible bool, bestViolation, bestSigned int64) bool {

	if candidateFeasible != bestFeasible {
		return candidateFeasible
	}
	if !candidateFeasible {
		return candidateViolation < bestViolation
	}
	return candidateSigned < bestSigned
}
