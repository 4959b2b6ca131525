package scheduler

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/nav-in27/timetable-generator/pkg/model"
	"github.com/nav-in27/timetable-generator/pkg/report"
	"github.com/nav-in27/timetable-generator/pkg/roomassign"
)

// phase5RegularLabs places every non-elective lab block in a randomized
// lab-block order over (day, start) with start in model.LabStarts: if
// class, teacher and a lab-kind room of sufficient capacity are all free
// at both start and start+1, and the class hasn't had that subject that
// day, commits both allocations and registers the lab block.
func (r *run) phase5RegularLabs(restrictToClasses map[uint64]bool) {
	added := uint64(0)
	failures := make([]string, 0)

	labUnits := r.labUnits(restrictToClasses)
	r.rng.Shuffle(len(labUnits), func(i, j int) { labUnits[i], labUnits[j] = labUnits[j], labUnits[i] })

	for _, unit := range labUnits {
		teacherID, bound := r.bindings[binderKey(unit)]
		if !bound {
			failures = append(failures, fmt.Sprintf(
				"class %d subject %d: lab unbound, no qualified teacher", unit.ClassID, unit.SubjectID))
			continue
		}

		placed := false
		for _, dayStart := range r.shuffledLabStarts() {
			day, start := dayStart[0], dayStart[1]
			if !r.labSlotFeasible(unit.ClassID, unit.SubjectID, teacherID, day, start) {
				continue
			}

			room := r.pickRoom(unit.ClassID, model.LabRoom, day, start, start+1)
			if room == nil {
				continue
			}

			r.commitLabBlock(unit.ClassID, unit.SubjectID, teacherID, room.ID, day, start)
			added += 2
			placed = true
			break
		}

		if !placed {
			r.builder.AddCoverageGap(report.CoverageGap{
				ClassID: unit.ClassID, SubjectID: unit.SubjectID, Component: model.Lab, MissingUnits: 1,
			})
			failures = append(failures, fmt.Sprintf(
				"class %d subject %d: no feasible lab slot", unit.ClassID, unit.SubjectID))
		}
	}

	r.builder.AddPhase("regular-labs", added, failures)
}

func (r *run) labSlotFeasible(classID, subjectID, teacherID, day, start uint64) bool {
	if !lo.Contains(model.LabStarts, start) {
		return false
	}
	if !r.idx.Teachers[teacherID].AvailableOn(day) {
		return false
	}
	if r.world.HasSubjectOnDay(classID, day, subjectID) {
		return false
	}
	if !r.world.IsClassFree(classID, day, start) || !r.world.IsClassFree(classID, day, start+1) {
		return false
	}
	if !r.world.IsTeacherFree(teacherID, day, start) || !r.world.IsTeacherFree(teacherID, day, start+1) {
		return false
	}
	return true
}

// pickRoom resolves a capacity-sufficient room of kind that is free at
// every period given (a single period for theory/tutorial, both start and
// start+1 for a lab block — a room can otherwise be free at start while
// already holding a Phase-4 fixed slot at start+1, and double-booking it
// there would violate room uniqueness).
func (r *run) pickRoom(classID uint64, kind model.RoomKind, day uint64, periods ...uint64) *model.Room {
	class, ok := r.idx.Classes[classID]
	if !ok {
		return nil
	}
	candidates := make([]model.Room, 0)
	for _, room := range r.idx.RoomsOfKind(kind) {
		if room.Capacity < class.StudentCount {
			continue
		}
		free := true
		for _, period := range periods {
			if !r.world.IsRoomFree(room.ID, day, period) {
				free = false
				break
			}
		}
		if !free {
			continue
		}
		candidates = append(candidates, room)
	}
	if len(candidates) == 0 {
		return nil
	}

	assignment, err := roomassign.Assign([]roomassign.Demand{{Key: classID, Candidate: candidates}})
	if err != nil {
		return nil
	}
	roomID, ok := assignment[classID]
	if !ok {
		return nil
	}
	for _, room := range candidates {
		if room.ID == roomID {
			picked := room
			return &picked
		}
	}
	return nil
}

func (r *run) commitLabBlock(classID, subjectID, teacherID, roomID, day, start uint64) {
	r.world.AddAllocation(model.Allocation{
		ClassID: classID, Day: day, Period: start, SubjectID: subjectID,
		TeacherID: teacherID, RoomID: roomID, Component: model.Lab,
	})
	r.world.AddAllocation(model.Allocation{
		ClassID: classID, Day: day, Period: start + 1, SubjectID: subjectID,
		TeacherID: teacherID, RoomID: roomID, Component: model.Lab, IsLabContinuation: true,
	})
	r.world.RegisterLabBlock(model.LabBlock{
		ClassID: classID, Day: day, Start: start, End: start + 1,
		SubjectID: subjectID, TeacherID: teacherID, RoomID: roomID,
	})
}
