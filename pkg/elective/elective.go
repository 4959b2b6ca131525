// Package elective builds, for every basket with participants, an atomic
// scheduling plan mapping each participating class to the basket subject
// it takes and each chosen subject to its bound teacher.
//
// Plans come in two shapes — one theory unit vs. one lab block — modeled
// as a tagged union rather than a shared base type, branching on Kind in
// CanAllocateAt/Commit.
package elective

import (
	"fmt"
	"sort"

	"github.com/samber/lo"

	"github.com/nav-in27/timetable-generator/pkg/binder"
	"github.com/nav-in27/timetable-generator/pkg/model"
	"github.com/nav-in27/timetable-generator/pkg/roomassign"
	"github.com/nav-in27/timetable-generator/pkg/state"
)

type Kind int

const (
	TheoryUnit Kind = iota
	LabBlock
)

// Plan is an uncommitted intent to allocate one theory unit or one lab
// block of a basket at a (day, start-period); it commits atomically.
type Plan struct {
	Kind           Kind
	BasketID       uint64
	Participants   []uint64          // participating class ids, sorted
	ClassSubject   map[uint64]uint64 // class id -> subject id it takes
	SubjectTeacher map[uint64]uint64 // subject id -> bound teacher id
}

// Build constructs the (at most two) plans for every basket with
// non-empty participants: one for the basket's theory hours (if any) and
// one for its lab blocks (if any). class_subject_map falls back to any
// basket subject the class already lists when the input names no
// explicit mapping; ties are broken deterministically (lowest subject id)
// — see DESIGN.md for this Open Question resolution.
func Build(snapshot model.Snapshot, bindings binder.Table) ([]Plan, error) {
	idx := model.NewIndex(snapshot)
	plans := make([]Plan, 0, len(snapshot.Baskets)*2)

	for _, basket := range snapshot.Baskets {
		if len(basket.Participants) == 0 {
			continue
		}

		classSubject, err := resolveClassSubject(basket, idx)
		if err != nil {
			return nil, err
		}

		subjectTeacher := make(map[uint64]uint64)
		for class, subject := range classSubject {
			key := binder.Key{ClassID: class, SubjectID: subject, Component: model.Theory}
			if teacher, ok := bindings[key]; ok {
				subjectTeacher[subject] = teacher
			}
			if basket.LabHours > 0 {
				labKey := binder.Key{ClassID: class, SubjectID: subject, Component: model.Lab}
				if teacher, ok := bindings[labKey]; ok {
					subjectTeacher[subject] = teacher
				}
			}
		}

		participants := lo.Keys(basket.Participants)
		sort.Slice(participants, func(i, j int) bool { return participants[i] < participants[j] })

		if basket.TheoryHours > 0 {
			plans = append(plans, Plan{
				Kind:           TheoryUnit,
				BasketID:       basket.ID,
				Participants:   participants,
				ClassSubject:   classSubject,
				SubjectTeacher: subjectTeacher,
			})
		}
		if basket.LabHours > 0 {
			plans = append(plans, Plan{
				Kind:           LabBlock,
				BasketID:       basket.ID,
				Participants:   participants,
				ClassSubject:   classSubject,
				SubjectTeacher: subjectTeacher,
			})
		}
	}

	return plans, nil
}

// resolveClassSubject picks, for each participating class, the one
// subject of the basket it takes. If the class already lists one or more
// basket subjects among its own subjects, the lowest-id one of those is
// used; otherwise the lowest-id basket subject is used.
func resolveClassSubject(basket model.ElectiveBasket, idx model.Index) (map[uint64]uint64, error) {
	basketSubjects := lo.Keys(basket.Subjects)
	sort.Slice(basketSubjects, func(i, j int) bool { return basketSubjects[i] < basketSubjects[j] })
	if len(basketSubjects) == 0 {
		return nil, fmt.Errorf("elective basket %d has no subjects", basket.ID)
	}

	classSubject := make(map[uint64]uint64, len(basket.Participants))
	for classID := range basket.Participants {
		class, ok := idx.Classes[classID]
		if !ok {
			return nil, fmt.Errorf("elective basket %d references unknown class %d", basket.ID, classID)
		}

		named := lo.Filter(basketSubjects, func(subjectID uint64, _ int) bool {
			return class.Subjects[subjectID]
		})
		if len(named) > 0 {
			classSubject[classID] = named[0]
		} else {
			classSubject[classID] = basketSubjects[0]
		}
	}
	return classSubject, nil
}

// CanAllocateAt reports whether the plan is allocatable at (day, start):
// the slot isn't reserved by another basket, every participant and bound
// teacher is free and available that day (and free at start+1 for labs),
// labs only start in model.LabStarts, and no participant already has its
// chosen subject on that day.
func (p Plan) CanAllocateAt(world *state.World, idx model.Index, day, start uint64) bool {
	if world.IsReservedByOtherBasket(day, start, p.BasketID) {
		return false
	}
	if p.Kind == LabBlock {
		if !lo.Contains(model.LabStarts, start) {
			return false
		}
		if world.IsReservedByOtherBasket(day, start+1, p.BasketID) {
			return false
		}
	}

	for _, class := range p.Participants {
		subject := p.ClassSubject[class]
		if world.HasSubjectOnDay(class, day, subject) {
			return false
		}
		if !world.IsClassFree(class, day, start) {
			return false
		}
		if p.Kind == LabBlock && !world.IsClassFree(class, day, start+1) {
			return false
		}

		teacher, ok := p.SubjectTeacher[subject]
		if !ok {
			return false
		}
		if !idx.Teachers[teacher].AvailableOn(day) {
			return false
		}
		if !world.IsTeacherFree(teacher, day, start) {
			return false
		}
		if p.Kind == LabBlock && !world.IsTeacherFree(teacher, day, start+1) {
			return false
		}
	}

	return true
}

// Commit allocates the plan at (day, start): one allocation per
// participating class (plus a continuation for labs), resolving a
// capacity-sufficient room per class via roomassign. If any class cannot
// be given a fitting room the commit is abandoned and no index is
// mutated — this is all-or-nothing.
func Commit(p Plan, world *state.World, idx model.Index, day, start uint64) ([]model.Allocation, error) {
	roomKind := model.Lecture
	if p.Kind == LabBlock {
		roomKind = model.LabRoom
	}
	availableRooms := idx.RoomsOfKind(roomKind)

	demands := make([]roomassign.Demand, 0, len(p.Participants))
	for _, class := range p.Participants {
		classRecord := idx.Classes[class]
		candidates := lo.Filter(availableRooms, func(r model.Room, _ int) bool {
			return r.Capacity >= classRecord.StudentCount
		})
		demands = append(demands, roomassign.Demand{Key: class, Candidate: candidates})
	}

	assignment, err := roomassign.Assign(demands)
	if err != nil {
		return nil, fmt.Errorf("elective basket %d: %w", p.BasketID, err)
	}

	basketID := p.BasketID
	allocations := make([]model.Allocation, 0, len(p.Participants)*2)
	for _, class := range p.Participants {
		subject := p.ClassSubject[class]
		teacher := p.SubjectTeacher[subject]
		room := assignment[class]
		component := model.Theory
		if p.Kind == LabBlock {
			component = model.Lab
		}

		alloc := model.Allocation{
			ClassID: class, Day: day, Period: start,
			SubjectID: subject, TeacherID: teacher, RoomID: room,
			Component: component, IsElective: true, BasketID: &basketID,
		}
		allocations = append(allocations, alloc)

		if p.Kind == LabBlock {
			continuation := alloc
			continuation.Period = start + 1
			continuation.IsLabContinuation = true
			allocations = append(allocations, continuation)
		}
	}

	for _, alloc := range allocations {
		world.AddAllocation(alloc)
		world.MarkLocked(alloc.ClassID, alloc.Day, alloc.Period)
	}
	world.ReserveElective(basketID, day, start)
	if p.Kind == LabBlock {
		world.ReserveElective(basketID, day, start+1)
		for _, class := range p.Participants {
			subject := p.ClassSubject[class]
			teacher := p.SubjectTeacher[subject]
			world.RegisterLabBlock(model.LabBlock{
				ClassID: class, Day: day, Start: start, End: start + 1,
				SubjectID: subject, TeacherID: teacher, RoomID: assignment[class],
			})
		}
	}

	return allocations, nil
}
