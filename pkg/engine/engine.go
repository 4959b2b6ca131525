// Package engine exposes the single entry point callers use to generate
// a timetable: given a snapshot and a seed, run every phase of the
// scheduler plus the optional optimizer, and return the committed
// allocations alongside a full report.
package engine

import (
	"context"
	"math/rand"

	"github.com/nav-in27/timetable-generator/pkg/binder"
	"github.com/nav-in27/timetable-generator/pkg/model"
	"github.com/nav-in27/timetable-generator/pkg/optimizer"
	"github.com/nav-in27/timetable-generator/pkg/report"
	"github.com/nav-in27/timetable-generator/pkg/scheduler"
	"github.com/nav-in27/timetable-generator/pkg/state"
)

// Options controls a single Generate call.
type Options struct {
	// RestrictToClasses, when non-empty, limits the regular (non-elective)
	// phases to the named classes — used for incremental re-generation
	// after a single class's requirements change.
	RestrictToClasses map[uint64]bool

	// RunOptimizer enables the optional genetic pass between Phase 6 and
	// Phase 7.
	RunOptimizer bool

	// OptimizerConfig overrides the optimizer's generation count and
	// candidates-per-generation; the zero value falls back to
	// optimizer.DefaultConfig.
	OptimizerConfig optimizer.Config
}

// Result is what Generate returns: the committed allocations in
// canonical order plus the run's full report.
type Result struct {
	Allocations []model.Allocation
	Report      report.Report
}

// Generate runs the full phased pipeline over snapshot, seeded
// deterministically by seed: identical (snapshot, seed, opts) always
// yields identical output. ctx is honored only as a pre-flight
// cancellation check — a run itself is CPU-bound and does not block on
// I/O once started.
func Generate(ctx context.Context, snapshot model.Snapshot, seed int64, opts Options) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	var optimize scheduler.OptimizeFunc
	if opts.RunOptimizer {
		cfg := opts.OptimizerConfig
		if cfg.Generations == 0 {
			cfg = optimizer.DefaultConfig
		}
		optimize = func(world *state.World, idx model.Index, rng *rand.Rand, bindings binder.Table) report.OptimizerSummary {
			return optimizer.RunWithConfig(world, idx, rng, bindings, cfg)
		}
	}

	restrict := opts.RestrictToClasses
	if len(restrict) == 0 {
		restrict = nil
	}

	result := scheduler.Run(snapshot, seed, restrict, optimize)
	return Result{Allocations: result.Allocations, Report: result.Report}, nil
}
