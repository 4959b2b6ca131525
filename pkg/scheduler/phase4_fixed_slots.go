package scheduler

import (
	"fmt"

	"github.com/nav-in27/timetable-generator/pkg/model"
	"github.com/nav-in27/timetable-generator/pkg/report"
)

// phase4FixedSlots commits every input FixedSlot that is still free and
// non-conflicting verbatim. A fixed slot colliding with an
// already-committed elective is reported as an unsatisfied lock — lock
// semantics never override electives.
func (r *run) phase4FixedSlots() {
	added := uint64(0)
	failures := make([]string, 0)

	for _, fixedSlot := range r.snapshot.FixedSlots {
		if !r.world.IsClassFree(fixedSlot.ClassID, fixedSlot.Day, fixedSlot.Period) {
			reason := fmt.Sprintf(
				"fixed slot (class=%d, day=%d, period=%d) conflicts with already-committed elective",
				fixedSlot.ClassID, fixedSlot.Day, fixedSlot.Period)
			failures = append(failures, reason)
			r.builder.AddFixedSlotConflict(report.FixedSlotConflict{Slot: fixedSlot, Reason: reason})
			continue
		}
		if !r.world.IsTeacherFree(fixedSlot.TeacherID, fixedSlot.Day, fixedSlot.Period) {
			reason := fmt.Sprintf(
				"fixed slot (class=%d, day=%d, period=%d): teacher %d already committed",
				fixedSlot.ClassID, fixedSlot.Day, fixedSlot.Period, fixedSlot.TeacherID)
			failures = append(failures, reason)
			r.builder.AddFixedSlotConflict(report.FixedSlotConflict{Slot: fixedSlot, Reason: reason})
			continue
		}

		room := r.pickFixedSlotRoom(fixedSlot)
		if room == nil {
			reason := fmt.Sprintf(
				"fixed slot (class=%d, day=%d, period=%d): no available room", fixedSlot.ClassID, fixedSlot.Day, fixedSlot.Period)
			failures = append(failures, reason)
			r.builder.AddFixedSlotConflict(report.FixedSlotConflict{Slot: fixedSlot, Reason: reason})
			continue
		}

		r.world.AddAllocation(model.Allocation{
			ClassID: fixedSlot.ClassID, Day: fixedSlot.Day, Period: fixedSlot.Period,
			SubjectID: fixedSlot.SubjectID, TeacherID: fixedSlot.TeacherID, RoomID: room.ID,
			Component: fixedSlot.Component,
		})
		r.world.MarkLocked(fixedSlot.ClassID, fixedSlot.Day, fixedSlot.Period)
		added++
	}

	r.builder.AddPhase("fixed-slots", added, failures)
}

// pickFixedSlotRoom finds the first free room of a kind matching the
// fixed slot's component with sufficient capacity for the class.
func (r *run) pickFixedSlotRoom(fixedSlot model.FixedSlot) *model.Room {
	class, ok := r.idx.Classes[fixedSlot.ClassID]
	if !ok {
		return nil
	}
	kind := model.Lecture
	if fixedSlot.Component == model.Lab {
		kind = model.LabRoom
	}
	for _, room := range r.idx.RoomsOfKind(kind) {
		if room.Capacity < class.StudentCount {
			continue
		}
		if r.world.IsRoomFree(room.ID, fixedSlot.Day, fixedSlot.Period) {
			picked := room
			return &picked
		}
	}
	return nil
}
