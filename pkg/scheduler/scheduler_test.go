package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nav-in27/timetable-generator/pkg/model"
)

func TestRunPlacesAllUnitsForASingleTheoryClass(t *testing.T) {
	// Arrange
	snapshot := model.Snapshot{
		Teachers: []model.Teacher{{ID: 1, QualifiedSubjects: map[uint64]bool{10: true}}},
		Subjects: []model.Subject{{ID: 10, Code: "CS101", TheoryHours: 4}},
		Classes:  []model.Class{{ID: 100, StudentCount: 30, Subjects: map[uint64]bool{10: true}}},
		Rooms:    []model.Room{{ID: 1000, Kind: model.Lecture, Capacity: 60, Available: true}},
	}

	// Act
	result := Run(snapshot, 1, nil, nil)

	// Assert
	require.True(t, result.Report.Success)
	assert.Len(t, result.Allocations, 4)
	for _, alloc := range result.Allocations {
		assert.Equal(t, uint64(100), alloc.ClassID)
		assert.Equal(t, uint64(10), alloc.SubjectID)
		assert.Equal(t, uint64(1), alloc.TeacherID)
	}
}

func TestRunKeepsLabBlocksAtomic(t *testing.T) {
	// Arrange
	snapshot := model.Snapshot{
		Teachers: []model.Teacher{{ID: 1, QualifiedSubjects: map[uint64]bool{10: true}}},
		Subjects: []model.Subject{{ID: 10, Code: "CS101L", LabHours: 2}},
		Classes:  []model.Class{{ID: 100, StudentCount: 30, Subjects: map[uint64]bool{10: true}}},
		Rooms:    []model.Room{{ID: 2000, Kind: model.LabRoom, Capacity: 60, Available: true}},
	}

	// Act
	result := Run(snapshot, 1, nil, nil)

	// Assert
	require.True(t, result.Report.Success)
	require.Len(t, result.Allocations, 2)
	start, continuation := result.Allocations[0], result.Allocations[1]
	assert.Equal(t, start.Day, continuation.Day)
	assert.Equal(t, start.Period+1, continuation.Period)
	assert.True(t, continuation.IsLabContinuation)
	assert.False(t, start.IsLabContinuation)
	assert.Equal(t, start.TeacherID, continuation.TeacherID)
	assert.Equal(t, start.RoomID, continuation.RoomID)
	assert.Contains(t, model.LabStarts, start.Period)
}

func TestRunSynchronizesElectiveParticipantsOnTheSameSlot(t *testing.T) {
	// Arrange
	snapshot := model.Snapshot{
		Teachers: []model.Teacher{{ID: 1, QualifiedSubjects: map[uint64]bool{50: true}}},
		Subjects: []model.Subject{{ID: 50, IsElective: true, TheoryHours: 2}},
		Classes: []model.Class{
			{ID: 100, StudentCount: 30},
			{ID: 101, StudentCount: 30},
		},
		Rooms: []model.Room{{ID: 1000, Kind: model.Lecture, Capacity: 90, Available: true}},
		Baskets: []model.ElectiveBasket{
			{
				ID:           5,
				TheoryHours:  2,
				Participants: map[uint64]bool{100: true, 101: true},
				Subjects:     map[uint64]bool{50: true},
			},
		},
	}

	// Act
	result := Run(snapshot, 1, nil, nil)

	// Assert
	require.True(t, result.Report.Success)
	slotsPerClass := make(map[uint64][][2]uint64)
	for _, alloc := range result.Allocations {
		slotsPerClass[alloc.ClassID] = append(slotsPerClass[alloc.ClassID], [2]uint64{alloc.Day, alloc.Period})
	}
	assert.ElementsMatch(t, slotsPerClass[100], slotsPerClass[101])
}

func TestRunHonorsFixedSlots(t *testing.T) {
	// Arrange
	snapshot := model.Snapshot{
		Teachers: []model.Teacher{{ID: 1, QualifiedSubjects: map[uint64]bool{10: true}}},
		Subjects: []model.Subject{{ID: 10, TheoryHours: 1}},
		Classes:  []model.Class{{ID: 100, StudentCount: 30, Subjects: map[uint64]bool{10: true}}},
		Rooms:    []model.Room{{ID: 1000, Kind: model.Lecture, Capacity: 60, Available: true}},
		FixedSlots: []model.FixedSlot{
			{ClassID: 100, Day: 2, Period: 4, SubjectID: 10, TeacherID: 1, Component: model.Theory},
		},
	}

	// Act
	result := Run(snapshot, 1, nil, nil)

	// Assert
	require.True(t, result.Report.Success)
	require.Len(t, result.Allocations, 1)
	assert.Equal(t, uint64(2), result.Allocations[0].Day)
	assert.Equal(t, uint64(4), result.Allocations[0].Period)
}

func TestRunNeverDoubleBooksATeacherAcrossClasses(t *testing.T) {
	// Arrange: one teacher qualified for two different subjects, each
	// needed by a different class, so the scheduler must not place them
	// in the same (day, period).
	snapshot := model.Snapshot{
		Teachers: []model.Teacher{{ID: 1, QualifiedSubjects: map[uint64]bool{10: true, 11: true}}},
		Subjects: []model.Subject{
			{ID: 10, TheoryHours: 3},
			{ID: 11, TheoryHours: 3},
		},
		Classes: []model.Class{
			{ID: 100, StudentCount: 30, Subjects: map[uint64]bool{10: true}},
			{ID: 101, StudentCount: 30, Subjects: map[uint64]bool{11: true}},
		},
		Rooms: []model.Room{{ID: 1000, Kind: model.Lecture, Capacity: 60, Available: true}},
	}

	// Act
	result := Run(snapshot, 1, nil, nil)

	// Assert
	require.True(t, result.Report.Success)
	seen := make(map[[2]uint64]bool)
	for _, alloc := range result.Allocations {
		key := [2]uint64{alloc.Day, alloc.Period}
		assert.False(t, seen[key], "teacher double-booked at day %d period %d", alloc.Day, alloc.Period)
		seen[key] = true
	}
}

func TestRunReportsCoverageGapWhenNoQualifiedTeacherExists(t *testing.T) {
	// Arrange
	snapshot := model.Snapshot{
		Subjects: []model.Subject{{ID: 10, TheoryHours: 1}},
		Classes:  []model.Class{{ID: 100, StudentCount: 30, Subjects: map[uint64]bool{10: true}}},
		Rooms:    []model.Room{{ID: 1000, Kind: model.Lecture, Capacity: 60, Available: true}},
	}

	// Act
	result := Run(snapshot, 1, nil, nil)

	// Assert: phase-level soft failure, not a hard rejection
	assert.True(t, result.Report.Success)
	assert.Empty(t, result.Allocations)
	assert.Len(t, result.Report.CoverageGaps, 1)
}

func TestRunRejectsInfeasibleWeeklyHoursAtPhaseZero(t *testing.T) {
	// Arrange: more weekly hours than periods exist in the week.
	snapshot := model.Snapshot{
		Teachers: []model.Teacher{{ID: 1, QualifiedSubjects: map[uint64]bool{10: true}}},
		Subjects: []model.Subject{{ID: 10, TheoryHours: model.Days*model.Periods + 1}},
		Classes:  []model.Class{{ID: 100, StudentCount: 30, Subjects: map[uint64]bool{10: true}}},
		Rooms:    []model.Room{{ID: 1000, Kind: model.Lecture, Capacity: 60, Available: true}},
	}

	// Act
	result := Run(snapshot, 1, nil, nil)

	// Assert
	assert.False(t, result.Report.Success)
	assert.Empty(t, result.Allocations)
}

func TestRunIsDeterministicForTheSameSeed(t *testing.T) {
	// Arrange
	snapshot := model.Snapshot{
		Teachers: []model.Teacher{{ID: 1, QualifiedSubjects: map[uint64]bool{10: true}}},
		Subjects: []model.Subject{{ID: 10, TheoryHours: 5}},
		Classes:  []model.Class{{ID: 100, StudentCount: 30, Subjects: map[uint64]bool{10: true}}},
		Rooms:    []model.Room{{ID: 1000, Kind: model.Lecture, Capacity: 60, Available: true}},
	}

	// Act
	first := Run(snapshot, 42, nil, nil)
	second := Run(snapshot, 42, nil, nil)

	// Assert
	assert.Equal(t, first.Allocations, second.Allocations)
}

func TestRunRestrictsRegularPhasesToNamedClasses(t *testing.T) {
	// Arrange
	snapshot := model.Snapshot{
		Teachers: []model.Teacher{{ID: 1, QualifiedSubjects: map[uint64]bool{10: true}}},
		Subjects: []model.Subject{{ID: 10, TheoryHours: 2}},
		Classes: []model.Class{
			{ID: 100, StudentCount: 30, Subjects: map[uint64]bool{10: true}},
			{ID: 101, StudentCount: 30, Subjects: map[uint64]bool{10: true}},
		},
		Rooms: []model.Room{{ID: 1000, Kind: model.Lecture, Capacity: 60, Available: true}},
	}

	// Act
	result := Run(snapshot, 1, map[uint64]bool{100: true}, nil)

	// Assert
	require.True(t, result.Report.Success)
	for _, alloc := range result.Allocations {
		assert.Equal(t, uint64(100), alloc.ClassID)
	}
}
