package scheduler

import (
	"fmt"

	"github.com/nav-in27/timetable-generator/pkg/binder"
	"github.com/nav-in27/timetable-generator/pkg/model"
	"github.com/nav-in27/timetable-generator/pkg/report"
)

// phase6TheoryTutorialFill places every non-elective Theory/Tutorial unit
// in a randomized (day, period) order, skipping periods already held by
// a lab block or locked by an elective/fixed slot: if class, teacher and
// a lecture-kind room are all free, and the class doesn't already have
// this subject that day, commits; otherwise the unit is reported as a
// coverage gap and left free.
func (r *run) phase6TheoryTutorialFill(restrictToClasses map[uint64]bool) {
	added := uint64(0)
	failures := make([]string, 0)

	units := r.theoryTutorialUnits(restrictToClasses)
	r.rng.Shuffle(len(units), func(i, j int) { units[i], units[j] = units[j], units[i] })

	// A fixed slot installed in Phase 4 counts as one placed unit of its
	// (class, subject, component), so that unit is not placed again.
	fixedCovered := make(map[binder.Key]uint64)
	for _, alloc := range r.world.Allocations {
		if !alloc.IsElective && r.world.IsLocked(alloc.ClassID, alloc.Day, alloc.Period) {
			fixedCovered[binder.Key{ClassID: alloc.ClassID, SubjectID: alloc.SubjectID, Component: alloc.Component}]++
		}
	}

	for _, unit := range units {
		if fixedCovered[binderKey(unit)] > 0 {
			fixedCovered[binderKey(unit)]--
			continue
		}
		teacherID, bound := r.bindings[binderKey(unit)]
		if !bound {
			r.builder.AddCoverageGap(report.CoverageGap{
				ClassID: unit.ClassID, SubjectID: unit.SubjectID, Component: unit.Component, MissingUnits: 1,
			})
			failures = append(failures, fmt.Sprintf(
				"class %d subject %d %v: unbound, no qualified teacher", unit.ClassID, unit.SubjectID, unit.Component))
			continue
		}

		placed := false
		for _, dayPeriod := range r.shuffledDayPeriods(nil) {
			day, period := dayPeriod[0], dayPeriod[1]
			if !r.fillSlotFeasible(unit.ClassID, unit.SubjectID, teacherID, day, period) {
				continue
			}

			room := r.pickRoom(unit.ClassID, model.Lecture, day, period)
			if room == nil {
				continue
			}

			r.world.AddAllocation(model.Allocation{
				ClassID: unit.ClassID, Day: day, Period: period, SubjectID: unit.SubjectID,
				TeacherID: teacherID, RoomID: room.ID, Component: unit.Component,
			})
			added++
			placed = true
			break
		}

		if !placed {
			r.builder.AddCoverageGap(report.CoverageGap{
				ClassID: unit.ClassID, SubjectID: unit.SubjectID, Component: unit.Component, MissingUnits: 1,
			})
			failures = append(failures, fmt.Sprintf(
				"class %d subject %d %v: no feasible slot", unit.ClassID, unit.SubjectID, unit.Component))
		}
	}

	r.builder.AddPhase("theory-tutorial-fill", added, failures)
}

func (r *run) fillSlotFeasible(classID, subjectID, teacherID, day, period uint64) bool {
	if r.world.IsInLabBlock(classID, day, period) {
		return false
	}
	if r.world.IsLocked(classID, day, period) {
		return false
	}
	if !r.idx.Teachers[teacherID].AvailableOn(day) {
		return false
	}
	if r.world.HasSubjectOnDay(classID, day, subjectID) {
		return false
	}
	if !r.world.IsClassFree(classID, day, period) {
		return false
	}
	if !r.world.IsTeacherFree(teacherID, day, period) {
		return false
	}
	return true
}
