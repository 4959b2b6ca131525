package optimizer

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nav-in27/timetable-generator/pkg/binder"
	"github.com/nav-in27/timetable-generator/pkg/model"
	"github.com/nav-in27/timetable-generator/pkg/state"
)

func buildWorldWithCrowdedMondayMorning() (*state.World, model.Index) {
	snapshot := model.Snapshot{
		Teachers: []model.Teacher{{ID: 1}},
		Subjects: []model.Subject{
			{ID: 10, TheoryHours: 1},
			{ID: 11, TheoryHours: 1},
			{ID: 12, TheoryHours: 1},
		},
		Classes: []model.Class{{ID: 100, Subjects: map[uint64]bool{10: true, 11: true, 12: true}}},
		Rooms:   []model.Room{{ID: 1000}},
	}
	idx := model.NewIndex(snapshot)
	world := state.New()
	// Three consecutive periods on Monday for the same teacher — a
	// deliberately bad starting point for teacherConsecutivePenalty.
	world.AddAllocation(model.Allocation{ClassID: 100, Day: 0, Period: 0, SubjectID: 10, TeacherID: 1, RoomID: 1000, Component: model.Theory})
	world.AddAllocation(model.Allocation{ClassID: 100, Day: 0, Period: 1, SubjectID: 11, TeacherID: 1, RoomID: 1000, Component: model.Theory})
	world.AddAllocation(model.Allocation{ClassID: 100, Day: 0, Period: 2, SubjectID: 12, TeacherID: 1, RoomID: 1000, Component: model.Theory})
	return world, idx
}

func TestRunWithConfigNeverWorsensFitness(t *testing.T) {
	// Arrange
	world, idx := buildWorldWithCrowdedMondayMorning()
	startFitness := fitness(world, idx)
	rng := rand.New(rand.NewSource(7))

	// Act
	summary := RunWithConfig(world, idx, rng, binder.Table{}, Config{Generations: 10, CandidatesPerGeneration: 8})

	// Assert
	require.True(t, summary.Ran)
	assert.LessOrEqual(t, summary.FinalFitness, startFitness)
	assert.Equal(t, summary.FinalFitness, fitness(world, idx))
}

func TestRunWithConfigPreservesAllocationCount(t *testing.T) {
	// Arrange
	world, idx := buildWorldWithCrowdedMondayMorning()
	before := len(world.Allocations)
	rng := rand.New(rand.NewSource(3))

	// Act
	RunWithConfig(world, idx, rng, binder.Table{}, Config{Generations: 15, CandidatesPerGeneration: 10})

	// Assert: mutations only relocate allocations, never add or remove any
	assert.Equal(t, before, len(world.Allocations))
	subjects := make(map[uint64]bool)
	for _, alloc := range world.Allocations {
		subjects[alloc.SubjectID] = true
	}
	assert.Len(t, subjects, 3)
}

func TestTrySwapMutationRejectsWhenNoEligiblePair(t *testing.T) {
	// Arrange: a single allocation, so no pair exists to swap.
	world := state.New()
	world.AddAllocation(model.Allocation{ClassID: 100, Day: 0, Period: 0, SubjectID: 10, TeacherID: 1, RoomID: 1000, Component: model.Theory})
	idx := model.Index{}
	rng := rand.New(rand.NewSource(1))

	// Act
	accepted, _ := trySwapMutation(world, idx, rng, fitness(world, idx))

	// Assert
	assert.False(t, accepted)
	assert.Len(t, world.Allocations, 1)
}

func TestTryMoveLabMutationRejectsWhenNoLabBlocks(t *testing.T) {
	// Arrange: only theory allocations, no registered lab block.
	world := state.New()
	world.AddAllocation(model.Allocation{ClassID: 100, Day: 0, Period: 0, SubjectID: 10, TeacherID: 1, RoomID: 1000, Component: model.Theory})
	idx := model.Index{}
	rng := rand.New(rand.NewSource(1))

	// Act
	accepted, _ := tryMoveLabMutation(world, idx, rng, fitness(world, idx))

	// Assert
	assert.False(t, accepted)
}
