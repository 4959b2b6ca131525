// Package state implements the engine's single source of truth for a run:
// an append-only record of committed allocations with O(1) busy-slot
// indices per teacher, class, room and basket, plus a lab-block registry
// and a per-(class, day) subject set.
package state

import "github.com/nav-in27/timetable-generator/pkg/model"

type slot struct {
	Day    uint64
	Period uint64
}

type classDaySubject struct {
	ClassID   uint64
	Day       uint64
	SubjectID uint64
}

type classDayStart struct {
	ClassID uint64
	Day     uint64
	Start   uint64
}

type classDayPeriod struct {
	ClassID uint64
	Day     uint64
	Period  uint64
}

type daySlot struct {
	Day    uint64
	Period uint64
}

// World is the engine's exclusively-owned mutable scheduling state for the
// duration of a single run. Every busy-slot index is a refcount rather
// than a plain boolean: the optimizer's mutation loop must be able to
// provisionally withdraw two allocations, test the resulting free/busy
// picture, and either commit or put them straight back, and a refcount
// makes "withdraw both, then ask" exact even when both touch the same
// teacher/room/slot.
type World struct {
	Allocations []model.Allocation

	classBusy   map[uint64]map[slot]int
	teacherBusy map[uint64]map[slot]int
	roomBusy    map[uint64]map[slot]int
	basketSlot  map[uint64]map[slot]bool // basket -> (day, period) it occupies

	classDaySubjectCount map[classDaySubject]int
	labBlocks            map[classDayStart]model.LabBlock
	reservations         map[daySlot]uint64 // (day, period) -> basket id reserving it
	locked               map[classDayPeriod]bool

	allocationIndex map[classDayPeriod]int // (class, day, period) -> index into Allocations
}

// New returns an empty World ready to receive commits.
func New() *World {
	return &World{
		Allocations:          make([]model.Allocation, 0),
		classBusy:            make(map[uint64]map[slot]int),
		teacherBusy:          make(map[uint64]map[slot]int),
		roomBusy:             make(map[uint64]map[slot]int),
		basketSlot:           make(map[uint64]map[slot]bool),
		classDaySubjectCount: make(map[classDaySubject]int),
		labBlocks:            make(map[classDayStart]model.LabBlock),
		reservations:         make(map[daySlot]uint64),
		locked:               make(map[classDayPeriod]bool),
		allocationIndex:      make(map[classDayPeriod]int),
	}
}

func (w *World) IsClassFree(class, day, period uint64) bool {
	return w.classBusy[class][slot{day, period}] == 0
}

func (w *World) IsTeacherFree(teacher, day, period uint64) bool {
	return w.teacherBusy[teacher][slot{day, period}] == 0
}

func (w *World) IsRoomFree(room, day, period uint64) bool {
	return w.roomBusy[room][slot{day, period}] == 0
}

func (w *World) HasSubjectOnDay(class, day, subject uint64) bool {
	return w.classDaySubjectCount[classDaySubject{class, day, subject}] > 0
}

// IsInLabBlock reports whether period is the start or continuation period
// of a registered lab block for class on day.
func (w *World) IsInLabBlock(class, day, period uint64) bool {
	if _, ok := w.labBlocks[classDayStart{class, day, period}]; ok {
		return true
	}
	if period == 0 {
		return false
	}
	_, ok := w.labBlocks[classDayStart{class, day, period - 1}]
	return ok
}

// IsLocked reports whether (class, day, period) is reserved for an
// elective or occupied by a fixed slot — used by Phase 6 to skip slots
// that belong to obligations outside the regular theory/tutorial fill,
// and by the optimizer to never touch them.
func (w *World) IsLocked(class, day, period uint64) bool {
	return w.locked[classDayPeriod{class, day, period}]
}

// MarkLocked records that (class, day, period) is owned by a mechanism
// other than the regular theory/tutorial fill (elective or fixed slot).
func (w *World) MarkLocked(class, day, period uint64) {
	w.locked[classDayPeriod{class, day, period}] = true
}

// AddAllocation appends a single committed allocation and updates every
// index. Unchecked: callers guarantee feasibility before calling.
func (w *World) AddAllocation(alloc model.Allocation) {
	index := len(w.Allocations)
	w.Allocations = append(w.Allocations, alloc)
	w.addIndices(alloc)
	w.allocationIndex[classDayPeriod{alloc.ClassID, alloc.Day, alloc.Period}] = index
}

func (w *World) addIndices(alloc model.Allocation) {
	w.bump(w.classBusy, alloc.ClassID, alloc.Day, alloc.Period, 1)
	w.bump(w.teacherBusy, alloc.TeacherID, alloc.Day, alloc.Period, 1)
	w.bump(w.roomBusy, alloc.RoomID, alloc.Day, alloc.Period, 1)
	w.classDaySubjectCount[classDaySubject{alloc.ClassID, alloc.Day, alloc.SubjectID}]++
}

func (w *World) removeIndices(alloc model.Allocation) {
	w.bump(w.classBusy, alloc.ClassID, alloc.Day, alloc.Period, -1)
	w.bump(w.teacherBusy, alloc.TeacherID, alloc.Day, alloc.Period, -1)
	w.bump(w.roomBusy, alloc.RoomID, alloc.Day, alloc.Period, -1)
	key := classDaySubject{alloc.ClassID, alloc.Day, alloc.SubjectID}
	w.classDaySubjectCount[key]--
	if w.classDaySubjectCount[key] <= 0 {
		delete(w.classDaySubjectCount, key)
	}
}

func (w *World) bump(index map[uint64]map[slot]int, id, day, period uint64, delta int) {
	if index[id] == nil {
		index[id] = make(map[slot]int)
	}
	key := slot{day, period}
	index[id][key] += delta
	if index[id][key] <= 0 {
		delete(index[id], key)
	}
}

// RegisterLabBlock records the atomic (start, start+1) pair for a lab
// session so IsInLabBlock and subject-per-day bookkeeping see it as one
// occurrence.
func (w *World) RegisterLabBlock(block model.LabBlock) {
	w.labBlocks[classDayStart{block.ClassID, block.Day, block.Start}] = block
}

// LabBlockAt returns the registered lab block starting at (class, day,
// start), if any.
func (w *World) LabBlockAt(class, day, start uint64) (model.LabBlock, bool) {
	block, ok := w.labBlocks[classDayStart{class, day, start}]
	return block, ok
}

// ReserveElective marks (day, period) as owned by basket so that no other
// basket's plan may collide with it.
func (w *World) ReserveElective(basket, day, period uint64) {
	if w.basketSlot[basket] == nil {
		w.basketSlot[basket] = make(map[slot]bool)
	}
	w.basketSlot[basket][slot{day, period}] = true
	w.reservations[daySlot{day, period}] = basket
}

func (w *World) IsReservedByOtherBasket(day, period, basket uint64) bool {
	owner, ok := w.reservations[daySlot{day, period}]
	return ok && owner != basket
}

// AllocationIndexAt returns the position in Allocations of the committed
// entry at (class, day, period), if any.
func (w *World) AllocationIndexAt(class, day, period uint64) (int, bool) {
	index, ok := w.allocationIndex[classDayPeriod{class, day, period}]
	return index, ok
}

// AllocationAt is a convenience wrapper around AllocationIndexAt that
// returns the allocation itself.
func (w *World) AllocationAt(class, day, period uint64) (model.Allocation, bool) {
	index, ok := w.allocationIndex[classDayPeriod{class, day, period}]
	if !ok {
		return model.Allocation{}, false
	}
	return w.Allocations[index], true
}

// Withdraw provisionally removes one or two allocations from every index
// (but not from the Allocations slice itself) so a mutation can ask
// "would the destination be free if these weren't here" without a false
// self-conflict. Reinsert puts them back unchanged if the mutation is
// rejected; CommitMove finalizes the slice-level move if it is accepted.
// This is copy-on-write at the granularity of individual allocations:
// only the touched entries are saved, never a full World clone.
type Withdrawal struct {
	indices []int
	before  []model.Allocation
}

func (w *World) Withdraw(indices ...int) Withdrawal {
	withdrawal := Withdrawal{indices: indices, before: make([]model.Allocation, len(indices))}
	for i, index := range indices {
		alloc := w.Allocations[index]
		withdrawal.before[i] = alloc
		w.removeIndices(alloc)
		delete(w.allocationIndex, classDayPeriod{alloc.ClassID, alloc.Day, alloc.Period})
	}
	return withdrawal
}

// Reinsert puts every withdrawn allocation back exactly as it was.
func (w *World) Reinsert(withdrawal Withdrawal) {
	for i, index := range withdrawal.indices {
		alloc := withdrawal.before[i]
		w.Allocations[index] = alloc
		w.addIndices(alloc)
		w.allocationIndex[classDayPeriod{alloc.ClassID, alloc.Day, alloc.Period}] = index
	}
}

// CommitMove finalizes a withdrawal by writing newDay/newPeriod for each
// withdrawn allocation (same order as Withdraw's indices) and re-adding
// the indices at the new slots.
func (w *World) CommitMove(withdrawal Withdrawal, moves ...[2]uint64) {
	for i, index := range withdrawal.indices {
		moved := withdrawal.before[i]
		moved.Day, moved.Period = moves[i][0], moves[i][1]
		w.Allocations[index] = moved
		w.addIndices(moved)
		w.allocationIndex[classDayPeriod{moved.ClassID, moved.Day, moved.Period}] = index
	}
}

// RelocateLabBlockRegistry updates the lab-block registry entry after a
// CommitMove has moved a block's two allocations.
func (w *World) RelocateLabBlockRegistry(old model.LabBlock, newDay, newStart uint64) {
	delete(w.labBlocks, classDayStart{old.ClassID, old.Day, old.Start})
	moved := old
	moved.Day, moved.Start, moved.End = newDay, newStart, newStart+1
	w.labBlocks[classDayStart{moved.ClassID, moved.Day, moved.Start}] = moved
}
