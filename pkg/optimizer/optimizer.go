// Package optimizer implements the optional genetic improvement pass. It
// never runs as part of a correctness guarantee: every mutation it tries
// is checked for feasibility before being accepted, and rejected
// mutations are put back exactly as found via the World's
// withdraw/reinsert primitives — a copy-on-write rollback. Grounded on
// the accept/reject hill-climb shape of a seating-generator's ga.go
// (tournamentSelection + elitist retention of the best individual),
// adapted from a population of independent chromosomes to a single
// mutable World because allocations carry hard cross-entity invariants a
// population-of-copies representation would make expensive to enforce.
package optimizer

import (
	"math/rand"

	"github.com/nav-in27/timetable-generator/pkg/binder"
	"github.com/nav-in27/timetable-generator/pkg/model"
	"github.com/nav-in27/timetable-generator/pkg/report"
	"github.com/nav-in27/timetable-generator/pkg/state"
)

// Config bounds the search: a fixed small generation count and how many
// candidate mutations are tried per generation before giving up on
// improving that generation.
type Config struct {
	Generations             uint64
	CandidatesPerGeneration uint64
}

// DefaultConfig is a fixed small generation count, deliberately modest
// since every candidate mutation re-derives fitness from scratch.
var DefaultConfig = Config{Generations: 30, CandidatesPerGeneration: 12}

// Run mutates world in place, trying only two mutation kinds — swapping
// two same-class non-elective, non-fixed, non-continuation
// theory/tutorial allocations' (day, period), or moving an entire lab
// block to another valid {3,5}-start slot — and keeps only mutations
// that do not worsen fitness (elitist selection across a single running
// best). It matches scheduler.OptimizeFunc's signature so engine can
// wire it in without scheduler importing this package.
func Run(world *state.World, idx model.Index, rng *rand.Rand, bindings binder.Table) report.OptimizerSummary {
	return RunWithConfig(world, idx, rng, bindings, DefaultConfig)
}

func RunWithConfig(world *state.World, idx model.Index, rng *rand.Rand, bindings binder.Table, cfg Config) report.OptimizerSummary {
	summary := report.OptimizerSummary{Ran: true}

	currentFitness := fitness(world, idx)
	summary.StartingFitness = currentFitness

	for generation := uint64(0); generation < cfg.Generations; generation++ {
		for candidate := uint64(0); candidate < cfg.CandidatesPerGeneration; candidate++ {
			accepted, newFitness := tryOneMutation(world, idx, rng, bindings, currentFitness)
			if accepted {
				currentFitness = newFitness
				summary.AcceptedMutations++
			} else {
				summary.RejectedMutations++
			}
		}
	}

	summary.Generations = cfg.Generations
	summary.FinalFitness = currentFitness
	return summary
}

// tryOneMutation picks one of the two allowed mutation kinds at random,
// applies it provisionally, scores the result, and either keeps it (if
// fitness does not regress) or puts the world back exactly as it was.
func tryOneMutation(world *state.World, idx model.Index, rng *rand.Rand, bindings binder.Table, currentFitness float64) (bool, float64) {
	if rng.Intn(2) == 0 {
		return trySwapMutation(world, idx, rng, currentFitness)
	}
	return tryMoveLabMutation(world, idx, rng, currentFitness)
}
