// Package report assembles per-phase counts, failures and coverage gaps
// into the single report the engine returns alongside the allocation
// list.
package report

import (
	"time"

	"github.com/nav-in27/timetable-generator/pkg/model"
)

// PhaseResult records what one scheduler phase did.
type PhaseResult struct {
	PhaseName string
	Added     uint64
	Failures  []string
}

// CoverageGap is a required teaching unit the engine could not place.
type CoverageGap struct {
	ClassID      uint64
	SubjectID    uint64
	Component    model.Component
	MissingUnits uint64
}

// BasketGap records a basket whose theory hours or lab blocks could not
// all be scheduled.
type BasketGap struct {
	BasketID      uint64
	MissingTheory uint64
	MissingLab    uint64
	Reasons       []string
}

// FixedSlotConflict records an input FixedSlot the engine could not honor:
// its (class, day, period) was already taken, its teacher was already
// committed at that slot, or no fitting room was free.
type FixedSlotConflict struct {
	Slot   model.FixedSlot
	Reason string
}

// OptimizerSummary records what the optional genetic pass did, if it ran
// at all.
type OptimizerSummary struct {
	Ran               bool
	Generations       uint64
	AcceptedMutations uint64
	RejectedMutations uint64
	StartingFitness   float64
	FinalFitness      float64
}

// Report is the engine's complete account of a single run.
type Report struct {
	Success             bool
	PhaseResults        []PhaseResult
	CoverageGaps        []CoverageGap
	BasketGaps          []BasketGap
	FixedSlotConflicts  []FixedSlotConflict
	InvariantViolations []string
	Elapsed             time.Duration
	Optimizer           OptimizerSummary

	// Additive, read-only reporting fields that never feed back into
	// placement decisions.
	FreePeriods map[uint64]uint64 // class id -> count of periods left empty
	TeacherLoad map[uint64]uint64 // teacher id -> total assigned hours
}

// Builder accumulates a Report across phases.
type Builder struct {
	report Report
	start  time.Time
}

func NewBuilder(start time.Time) *Builder {
	return &Builder{
		report: Report{
			Success:      true,
			PhaseResults: make([]PhaseResult, 0, 9),
		},
		start: start,
	}
}

// AddPhase records one phase's outcome.
func (b *Builder) AddPhase(name string, added uint64, failures []string) {
	b.report.PhaseResults = append(b.report.PhaseResults, PhaseResult{
		PhaseName: name, Added: added, Failures: failures,
	})
}

func (b *Builder) AddCoverageGap(gap CoverageGap) {
	b.report.CoverageGaps = append(b.report.CoverageGaps, gap)
}

func (b *Builder) AddBasketGap(gap BasketGap) {
	b.report.BasketGaps = append(b.report.BasketGaps, gap)
}

func (b *Builder) AddFixedSlotConflict(conflict FixedSlotConflict) {
	b.report.FixedSlotConflicts = append(b.report.FixedSlotConflicts, conflict)
}

func (b *Builder) AddInvariantViolation(message string) {
	b.report.InvariantViolations = append(b.report.InvariantViolations, message)
}

// AddOptimizerSummary records the outcome of the optional optimizer pass.
func (b *Builder) AddOptimizerSummary(summary OptimizerSummary) {
	b.report.Optimizer = summary
}

// SetFreePeriods and SetTeacherLoad populate the additive, read-only
// reporting fields, computed once in Phase 8 from the final allocation
// list.
func (b *Builder) SetFreePeriods(freePeriods map[uint64]uint64) {
	b.report.FreePeriods = freePeriods
}

func (b *Builder) SetTeacherLoad(teacherLoad map[uint64]uint64) {
	b.report.TeacherLoad = teacherLoad
}

// Fail marks the run as an overall hard-validation failure (Phase 0
// only).
func (b *Builder) Fail() {
	b.report.Success = false
}

// Finish stamps elapsed time and returns the accumulated report.
func (b *Builder) Finish(now time.Time) Report {
	b.report.Elapsed = now.Sub(b.start)
	return b.report
}
