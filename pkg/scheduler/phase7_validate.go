package scheduler

import (
	"fmt"
	"sort"

	"github.com/nav-in27/timetable-generator/pkg/model"
)

// phase7FinalValidate re-derives every global invariant directly from
// the committed allocation list and reports any violation found, without
// discarding or repairing the timetable — an internal invariant
// violation here means a bug upstream, not a rejected input.
func (r *run) phase7FinalValidate() {
	seenClassSlot := make(map[classPeriod]model.Allocation)
	seenTeacherSlot := make(map[classPeriod]model.Allocation)
	seenRoomSlot := make(map[classPeriod]model.Allocation)
	seenClassDaySubject := make(map[classDaySubjectKey][]model.Allocation)

	for _, alloc := range r.world.Allocations {
		if !r.idx.Teachers[alloc.TeacherID].AvailableOn(alloc.Day) {
			r.builder.AddInvariantViolation(fmt.Sprintf(
				"teacher %d placed on day %d period %d outside its available days",
				alloc.TeacherID, alloc.Day, alloc.Period))
		}

		classKey := classPeriod{alloc.ClassID, alloc.Day, alloc.Period}
		if prior, ok := seenClassSlot[classKey]; ok {
			r.builder.AddInvariantViolation(fmt.Sprintf(
				"class %d double-booked at day %d period %d: subjects %d and %d",
				alloc.ClassID, alloc.Day, alloc.Period, prior.SubjectID, alloc.SubjectID))
		}
		seenClassSlot[classKey] = alloc

		teacherKey := classPeriod{alloc.TeacherID, alloc.Day, alloc.Period}
		if prior, ok := seenTeacherSlot[teacherKey]; ok {
			r.builder.AddInvariantViolation(fmt.Sprintf(
				"teacher %d double-booked at day %d period %d: classes %d and %d",
				alloc.TeacherID, alloc.Day, alloc.Period, prior.ClassID, alloc.ClassID))
		}
		seenTeacherSlot[teacherKey] = alloc

		roomKey := classPeriod{alloc.RoomID, alloc.Day, alloc.Period}
		if prior, ok := seenRoomSlot[roomKey]; ok {
			r.builder.AddInvariantViolation(fmt.Sprintf(
				"room %d double-booked at day %d period %d: classes %d and %d",
				alloc.RoomID, alloc.Day, alloc.Period, prior.ClassID, alloc.ClassID))
		}
		seenRoomSlot[roomKey] = alloc

		subjectKey := classDaySubjectKey{alloc.ClassID, alloc.Day, alloc.SubjectID}
		seenClassDaySubject[subjectKey] = append(seenClassDaySubject[subjectKey], alloc)
	}

	for key, allocs := range seenClassDaySubject {
		labPairs := 0
		nonLab := 0
		for _, alloc := range allocs {
			if alloc.Component == model.Lab {
				labPairs++
			} else {
				nonLab++
			}
		}
		// A lab block contributes exactly two allocations (start +
		// continuation) to the same (class, day, subject) key; anything
		// else sharing that key is a genuine duplicate.
		if nonLab > 1 || (nonLab >= 1 && labPairs > 0) || labPairs > 2 {
			r.builder.AddInvariantViolation(fmt.Sprintf(
				"class %d subject %d placed more than once on day %d", key.ClassID, key.SubjectID, key.Day))
		}
	}

	r.validateLabAtomicity()
	r.validateElectiveSynchronization()
}

type classPeriod struct {
	ID     uint64
	Day    uint64
	Period uint64
}

type classDaySubjectKey struct {
	ClassID   uint64
	Day       uint64
	SubjectID uint64
}

// validateLabAtomicity checks that every lab continuation allocation has a
// matching start allocation for the same class, day, subject, teacher and
// room at the immediately preceding period.
func (r *run) validateLabAtomicity() {
	for _, alloc := range r.world.Allocations {
		if !alloc.IsLabContinuation {
			continue
		}
		start, ok := r.world.AllocationAt(alloc.ClassID, alloc.Day, alloc.Period-1)
		if !ok || start.Component != model.Lab || start.IsLabContinuation {
			r.builder.AddInvariantViolation(fmt.Sprintf(
				"lab continuation for class %d subject %d at day %d period %d has no matching start",
				alloc.ClassID, alloc.SubjectID, alloc.Day, alloc.Period))
			continue
		}
		if start.SubjectID != alloc.SubjectID || start.TeacherID != alloc.TeacherID || start.RoomID != alloc.RoomID {
			r.builder.AddInvariantViolation(fmt.Sprintf(
				"lab block for class %d at day %d period %d: start/continuation mismatch",
				alloc.ClassID, alloc.Day, alloc.Period-1))
		}
	}
}

// validateElectiveSynchronization checks that at every (day, period) where
// a basket has elective allocations, every participant of its plan has
// one. It walks the plans built in Phases 2/3 rather
// than reverse-engineering baskets from allocations, since a plan already
// names its exact participant set.
func (r *run) validateElectiveSynchronization() {
	for _, plan := range r.plans {
		slots := make(map[[2]uint64][]uint64) // (day, period) -> classes placed there
		for _, class := range plan.Participants {
			for _, alloc := range r.world.Allocations {
				if alloc.ClassID != class || !alloc.IsElective || alloc.BasketID == nil || *alloc.BasketID != plan.BasketID {
					continue
				}
				if alloc.IsLabContinuation {
					continue
				}
				slots[[2]uint64{alloc.Day, alloc.Period}] = append(slots[[2]uint64{alloc.Day, alloc.Period}], class)
			}
		}
		if len(slots) == 0 {
			continue
		}
		placedClasses := make(map[uint64]bool)
		for _, classes := range slots {
			for _, class := range classes {
				placedClasses[class] = true
			}
		}
		keys := make([][2]uint64, 0, len(slots))
		for key := range slots {
			keys = append(keys, key)
		}
		sort.Slice(keys, func(i, j int) bool {
			if keys[i][0] != keys[j][0] {
				return keys[i][0] < keys[j][0]
			}
			return keys[i][1] < keys[j][1]
		})
		for _, key := range keys {
			if len(slots[key]) != len(plan.Participants) {
				r.builder.AddInvariantViolation(fmt.Sprintf(
					"basket %d: %d of %d participants placed at day %d period %d",
					plan.BasketID, len(slots[key]), len(plan.Participants), key[0], key[1]))
			}
		}
	}
}
