package optimizer

import (
	"math/rand"

	"github.com/nav-in27/timetable-generator/pkg/model"
	"github.com/nav-in27/timetable-generator/pkg/state"
)

// eligibleTheoryTutorial returns the indices into world.Allocations of
// non-elective, non-locked, non-continuation Theory/Tutorial allocations,
// grouped by class — exactly the set the swap mutation is permitted to
// touch.
func eligibleTheoryTutorial(world *state.World) map[uint64][]int {
	byClass := make(map[uint64][]int)
	for index, alloc := range world.Allocations {
		if alloc.Component != model.Theory && alloc.Component != model.Tutorial {
			continue
		}
		if alloc.IsElective || alloc.IsLabContinuation {
			continue
		}
		if world.IsLocked(alloc.ClassID, alloc.Day, alloc.Period) {
			continue
		}
		byClass[alloc.ClassID] = append(byClass[alloc.ClassID], index)
	}
	return byClass
}

// trySwapMutation swaps the (day, period) of two non-elective, non-fixed,
// non-continuation theory/tutorial allocations belonging to the same
// class. It is rejected, and the world left exactly as found, unless the
// swapped placement is feasible and does not worsen fitness.
func trySwapMutation(world *state.World, idx model.Index, rng *rand.Rand, currentFitness float64) (bool, float64) {
	byClass := eligibleTheoryTutorial(world)
	candidates := make([]uint64, 0, len(byClass))
	for classID, indices := range byClass {
		if len(indices) >= 2 {
			candidates = append(candidates, classID)
		}
	}
	if len(candidates) == 0 {
		return false, currentFitness
	}
	classID := candidates[rng.Intn(len(candidates))]
	indices := byClass[classID]
	i := rng.Intn(len(indices))
	j := rng.Intn(len(indices))
	for j == i {
		j = rng.Intn(len(indices))
	}
	indexA, indexB := indices[i], indices[j]

	allocA, allocB := world.Allocations[indexA], world.Allocations[indexB]
	withdrawal := world.Withdraw(indexA, indexB)

	targetDayA, targetPeriodA := allocB.Day, allocB.Period
	targetDayB, targetPeriodB := allocA.Day, allocA.Period

	if !swapTargetFeasible(world, allocA, targetDayA, targetPeriodA) ||
		!swapTargetFeasible(world, allocB, targetDayB, targetPeriodB) {
		world.Reinsert(withdrawal)
		return false, currentFitness
	}

	world.CommitMove(withdrawal, [2]uint64{targetDayA, targetPeriodA}, [2]uint64{targetDayB, targetPeriodB})

	newFitness := fitness(world, idx)
	if newFitness > currentFitness {
		world.CommitMove(world.Withdraw(indexA, indexB), [2]uint64{allocA.Day, allocA.Period}, [2]uint64{allocB.Day, allocB.Period})
		return false, currentFitness
	}

	return true, newFitness
}

func swapTargetFeasible(world *state.World, alloc model.Allocation, day, period uint64) bool {
	if world.IsLocked(alloc.ClassID, day, period) {
		return false
	}
	if world.IsInLabBlock(alloc.ClassID, day, period) {
		return false
	}
	if world.HasSubjectOnDay(alloc.ClassID, day, alloc.SubjectID) {
		return false
	}
	if !world.IsClassFree(alloc.ClassID, day, period) {
		return false
	}
	if !world.IsTeacherFree(alloc.TeacherID, day, period) {
		return false
	}
	if !world.IsRoomFree(alloc.RoomID, day, period) {
		return false
	}
	return true
}

// eligibleLabBlocks returns the (class, day, start) key of every
// non-elective, non-locked registered lab block.
func eligibleLabBlocks(world *state.World, idx model.Index) [][3]uint64 {
	keys := make([][3]uint64, 0)
	for _, alloc := range world.Allocations {
		if alloc.Component != model.Lab || alloc.IsLabContinuation || alloc.IsElective {
			continue
		}
		if world.IsLocked(alloc.ClassID, alloc.Day, alloc.Period) {
			continue
		}
		if _, ok := world.LabBlockAt(alloc.ClassID, alloc.Day, alloc.Period); !ok {
			continue
		}
		keys = append(keys, [3]uint64{alloc.ClassID, alloc.Day, alloc.Period})
	}
	return keys
}

// tryMoveLabMutation relocates one eligible lab block's (day, start) pair
// to another valid {3, 5}-start slot, rejected (and the world put back)
// unless the destination is feasible and does not worsen fitness.
func tryMoveLabMutation(world *state.World, idx model.Index, rng *rand.Rand, currentFitness float64) (bool, float64) {
	blocks := eligibleLabBlocks(world, idx)
	if len(blocks) == 0 {
		return false, currentFitness
	}
	key := blocks[rng.Intn(len(blocks))]
	classID, day, start := key[0], key[1], key[2]

	block, ok := world.LabBlockAt(classID, day, start)
	if !ok {
		return false, currentFitness
	}
	startIndex, ok := world.AllocationIndexAt(classID, day, start)
	if !ok {
		return false, currentFitness
	}
	continuationIndex, ok := world.AllocationIndexAt(classID, day, start+1)
	if !ok {
		return false, currentFitness
	}

	newDay := uint64(rng.Intn(int(model.Days)))
	newStart := model.LabStarts[rng.Intn(len(model.LabStarts))]
	if newDay == day && newStart == start {
		return false, currentFitness
	}

	withdrawal := world.Withdraw(startIndex, continuationIndex)

	if !labTargetFeasible(world, block, newDay, newStart) {
		world.Reinsert(withdrawal)
		return false, currentFitness
	}

	world.CommitMove(withdrawal, [2]uint64{newDay, newStart}, [2]uint64{newDay, newStart + 1})
	world.RelocateLabBlockRegistry(block, newDay, newStart)

	newFitness := fitness(world, idx)
	if newFitness > currentFitness {
		undo := world.Withdraw(startIndex, continuationIndex)
		world.CommitMove(undo, [2]uint64{day, start}, [2]uint64{day, start + 1})
		moved := block
		moved.Day, moved.Start, moved.End = newDay, newStart, newStart+1
		world.RelocateLabBlockRegistry(moved, day, start)
		return false, currentFitness
	}

	return true, newFitness
}

func labTargetFeasible(world *state.World, block model.LabBlock, day, start uint64) bool {
	if world.IsLocked(block.ClassID, day, start) || world.IsLocked(block.ClassID, day, start+1) {
		return false
	}
	if world.IsInLabBlock(block.ClassID, day, start) || world.IsInLabBlock(block.ClassID, day, start+1) {
		return false
	}
	if world.HasSubjectOnDay(block.ClassID, day, block.SubjectID) {
		return false
	}
	if !world.IsClassFree(block.ClassID, day, start) || !world.IsClassFree(block.ClassID, day, start+1) {
		return false
	}
	if !world.IsTeacherFree(block.TeacherID, day, start) || !world.IsTeacherFree(block.TeacherID, day, start+1) {
		return false
	}
	if !world.IsRoomFree(block.RoomID, day, start) || !world.IsRoomFree(block.RoomID, day, start+1) {
		return false
	}
	return true
}
