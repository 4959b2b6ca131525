// Package scheduler is the phased orchestrator: it runs validation,
// elective theory, elective lab, fixed-slot installation, regular lab,
// regular theory/tutorial, final validation and commit, in that fixed
// order. Later phases observe earlier commitments only through the
// shared World.
package scheduler

import (
	"math/rand"
	"time"

	"github.com/nav-in27/timetable-generator/pkg/binder"
	"github.com/nav-in27/timetable-generator/pkg/elective"
	"github.com/nav-in27/timetable-generator/pkg/model"
	"github.com/nav-in27/timetable-generator/pkg/report"
	"github.com/nav-in27/timetable-generator/pkg/requirement"
	"github.com/nav-in27/timetable-generator/pkg/state"
)

// run carries the shared, mutable context every phase operates against.
// It is never exposed outside the package: callers only see Result.
type run struct {
	snapshot model.Snapshot
	idx      model.Index
	world    *state.World
	rng      *rand.Rand
	builder  *report.Builder

	units    []requirement.Unit
	bindings binder.Table
	plans    []elective.Plan
}

// Result is everything a phased run produced: the committed allocations
// plus the accumulated report.
type Result struct {
	Allocations []model.Allocation
	Report      report.Report
}

// OptimizeFunc runs the optional genetic pass between Phase 6 and Phase
// 7. It mutates world in place and returns a short report fragment
// describing what it did; scheduler never imports the optimizer package
// directly, so engine is the only caller that wires one in.
type OptimizeFunc func(world *state.World, idx model.Index, rng *rand.Rand, bindings binder.Table) report.OptimizerSummary

// Run executes Phases 0 through 8 over snapshot, seeded deterministically
// by seed. restrictToClasses, when non-nil, limits the regular (non-
// elective) phases to the named classes. optimize, when non-nil, runs
// between Phase 6 and Phase 7; pass nil to skip it entirely — the
// optimizer is optional.
func Run(snapshot model.Snapshot, seed int64, restrictToClasses map[uint64]bool, optimize OptimizeFunc) Result {
	start := time.Now()
	r := &run{
		snapshot: snapshot,
		idx:      model.NewIndex(snapshot),
		world:    state.New(),
		rng:      rand.New(rand.NewSource(seed)),
		builder:  report.NewBuilder(start),
	}

	if !r.phase0Validate() {
		r.builder.Fail()
		return Result{Allocations: nil, Report: r.builder.Finish(time.Now())}
	}

	r.phase1Bind()
	r.phase2ElectiveTheory()
	r.phase3ElectiveLab()
	r.phase4FixedSlots()
	r.phase5RegularLabs(restrictToClasses)
	r.phase6TheoryTutorialFill(restrictToClasses)
	if optimize != nil {
		summary := optimize(r.world, r.idx, r.rng, r.bindings)
		r.builder.AddOptimizerSummary(summary)
	}
	r.phase7FinalValidate()
	allocations := r.phase8Emit()

	return Result{Allocations: allocations, Report: r.builder.Finish(time.Now())}
}

// shuffledDayPeriods returns every (day, period) pair not excluded by
// skipPeriod, in a seeded pseudo-random order — the randomized-order
// search space Phase 6 draws from.
func (r *run) shuffledDayPeriods(skipPeriod func(period uint64) bool) [][2]uint64 {
	pairs := make([][2]uint64, 0, model.Days*model.Periods)
	for day := uint64(0); day < model.Days; day++ {
		for period := uint64(0); period < model.Periods; period++ {
			if skipPeriod != nil && skipPeriod(period) {
				continue
			}
			pairs = append(pairs, [2]uint64{day, period})
		}
	}
	r.rng.Shuffle(len(pairs), func(i, j int) { pairs[i], pairs[j] = pairs[j], pairs[i] })
	return pairs
}

// shuffledLabStarts returns every (day, start) pair with start restricted
// to model.LabStarts, in a seeded pseudo-random order.
func (r *run) shuffledLabStarts() [][2]uint64 {
	pairs := make([][2]uint64, 0, model.Days*uint64(len(model.LabStarts)))
	for day := uint64(0); day < model.Days; day++ {
		for _, start := range model.LabStarts {
			pairs = append(pairs, [2]uint64{day, start})
		}
	}
	r.rng.Shuffle(len(pairs), func(i, j int) { pairs[i], pairs[j] = pairs[j], pairs[i] })
	return pairs
}
