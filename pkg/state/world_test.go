package state

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nav-in27/timetable-generator/pkg/model"
)

func TestAddAllocationMarksBusyAndSubjectPerDay(t *testing.T) {
	// Arrange
	world := New()
	alloc := model.Allocation{ClassID: 1, Day: 0, Period: 2, SubjectID: 10, TeacherID: 20, RoomID: 30, Component: model.Theory}

	// Act
	world.AddAllocation(alloc)

	// Assert
	assert.False(t, world.IsClassFree(1, 0, 2))
	assert.False(t, world.IsTeacherFree(20, 0, 2))
	assert.False(t, world.IsRoomFree(30, 0, 2))
	assert.True(t, world.HasSubjectOnDay(1, 0, 10))
	assert.True(t, world.IsClassFree(1, 0, 3))
}

func TestLabBlockRegistryTracksBothPeriods(t *testing.T) {
	// Arrange
	world := New()
	block := model.LabBlock{ClassID: 1, Day: 0, Start: 3, End: 4, SubjectID: 10, TeacherID: 20, RoomID: 30}

	// Act
	world.RegisterLabBlock(block)

	// Assert
	assert.True(t, world.IsInLabBlock(1, 0, 3))
	assert.True(t, world.IsInLabBlock(1, 0, 4))
	assert.False(t, world.IsInLabBlock(1, 0, 5))
	found, ok := world.LabBlockAt(1, 0, 3)
	assert.True(t, ok)
	assert.Equal(t, block, found)
}

func TestReserveElectiveBlocksOtherBaskets(t *testing.T) {
	// Arrange
	world := New()

	// Act
	world.ReserveElective(500, 0, 2)

	// Assert
	assert.True(t, world.IsReservedByOtherBasket(0, 2, 501))
	assert.False(t, world.IsReservedByOtherBasket(0, 2, 500))
	assert.False(t, world.IsReservedByOtherBasket(0, 3, 500))
}

func TestWithdrawAndReinsertRestoresExactState(t *testing.T) {
	// Arrange
	world := New()
	allocA := model.Allocation{ClassID: 1, Day: 0, Period: 1, SubjectID: 10, TeacherID: 20, RoomID: 30, Component: model.Theory}
	allocB := model.Allocation{ClassID: 1, Day: 1, Period: 2, SubjectID: 11, TeacherID: 21, RoomID: 31, Component: model.Tutorial}
	world.AddAllocation(allocA)
	world.AddAllocation(allocB)

	// Act
	withdrawal := world.Withdraw(0, 1)

	// Assert: both slots are free while withdrawn
	assert.True(t, world.IsClassFree(1, 0, 1))
	assert.True(t, world.IsClassFree(1, 1, 2))
	assert.False(t, world.HasSubjectOnDay(1, 0, 10))

	// Act
	world.Reinsert(withdrawal)

	// Assert: state is back exactly as it was
	assert.False(t, world.IsClassFree(1, 0, 1))
	assert.False(t, world.IsClassFree(1, 1, 2))
	assert.True(t, world.HasSubjectOnDay(1, 0, 10))
	assert.Equal(t, allocA, world.Allocations[0])
	assert.Equal(t, allocB, world.Allocations[1])
}

func TestCommitMoveRelocatesBothIndices(t *testing.T) {
	// Arrange
	world := New()
	allocA := model.Allocation{ClassID: 1, Day: 0, Period: 1, SubjectID: 10, TeacherID: 20, RoomID: 30, Component: model.Theory}
	allocB := model.Allocation{ClassID: 1, Day: 1, Period: 2, SubjectID: 11, TeacherID: 21, RoomID: 31, Component: model.Tutorial}
	world.AddAllocation(allocA)
	world.AddAllocation(allocB)

	// Act: swap the two allocations' (day, period)
	withdrawal := world.Withdraw(0, 1)
	world.CommitMove(withdrawal, [2]uint64{1, 2}, [2]uint64{0, 1})

	// Assert
	assert.False(t, world.IsClassFree(1, 1, 2))
	assert.False(t, world.IsClassFree(1, 0, 1))
	assert.True(t, world.HasSubjectOnDay(1, 1, 10))
	assert.True(t, world.HasSubjectOnDay(1, 0, 11))
	moved, ok := world.AllocationAt(1, 1, 2)
	assert.True(t, ok)
	assert.Equal(t, uint64(10), moved.SubjectID)
}

func TestRefcountedBusyMapsDoNotFalsePositiveAfterPartialWithdraw(t *testing.T) {
	// Arrange: two allocations share the same teacher and room at
	// different slots.
	world := New()
	allocA := model.Allocation{ClassID: 1, Day: 0, Period: 1, SubjectID: 10, TeacherID: 99, RoomID: 5, Component: model.Theory}
	allocB := model.Allocation{ClassID: 2, Day: 0, Period: 2, SubjectID: 11, TeacherID: 99, RoomID: 5, Component: model.Theory}
	world.AddAllocation(allocA)
	world.AddAllocation(allocB)

	// Act: withdraw allocA only, then ask whether teacher/room are free
	// at allocA's old slot (they should be) while allocB's slot is
	// untouched (it should still be busy).
	withdrawal := world.Withdraw(0)

	// Assert
	assert.True(t, world.IsTeacherFree(99, 0, 1))
	assert.True(t, world.IsRoomFree(5, 0, 1))
	assert.False(t, world.IsTeacherFree(99, 0, 2))
	assert.False(t, world.IsRoomFree(5, 0, 2))

	world.Reinsert(withdrawal)
	assert.False(t, world.IsTeacherFree(99, 0, 1))
}
