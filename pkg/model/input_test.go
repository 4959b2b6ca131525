package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeRawSnapshotConvertsSlicesToSets(t *testing.T) {
	// Arrange
	basketID := uint64(5)
	raw := RawSnapshot{
		Teachers: []RawTeacher{
			{ID: 1, Name: "A", AvailableDays: []uint64{0, 1, 2}, QualifiedSubjects: []uint64{10}},
		},
		Subjects: []RawSubject{
			{ID: 10, Code: "CS101", TheoryHours: 3, LabHours: 2},
			{ID: 11, Code: "CS102", IsElective: true, BasketID: &basketID},
		},
		Classes: []RawClass{
			{ID: 100, Section: "A", Subjects: []uint64{10}},
		},
		Rooms: []RawRoom{
			{ID: 1000, Kind: Lecture, Capacity: 60, Available: true},
		},
		Baskets: []RawElectiveBasket{
			{ID: 5, Participants: []uint64{100}, Subjects: []uint64{11}},
		},
	}

	// Act
	snapshot, err := NormalizeRawSnapshot(raw)

	// Assert
	require.NoError(t, err)
	assert.True(t, snapshot.Teachers[0].AvailableDays[0])
	assert.True(t, snapshot.Teachers[0].QualifiedSubjects[10])
	assert.True(t, snapshot.Classes[0].Subjects[10])
	assert.True(t, snapshot.Baskets[0].Participants[100])
	assert.True(t, snapshot.Baskets[0].Subjects[11])
}

func TestNormalizeRawSnapshotRejectsOddLabHours(t *testing.T) {
	// Arrange
	raw := RawSnapshot{
		Subjects: []RawSubject{{ID: 10, Code: "CS101", LabHours: 3}},
	}

	// Act
	_, err := NormalizeRawSnapshot(raw)

	// Assert
	assert.Error(t, err)
}

func TestDecodeRawSnapshotFromMap(t *testing.T) {
	// Arrange
	raw := map[string]any{
		"teachers": []any{
			map[string]any{"id": 1, "name": "A"},
		},
		"subjects": []any{
			map[string]any{"id": 10, "code": "CS101", "theory_hours": 3},
		},
	}

	// Act
	snapshot, err := DecodeRawSnapshot(raw)

	// Assert
	require.NoError(t, err)
	assert.Len(t, snapshot.Teachers, 1)
	assert.Equal(t, "A", snapshot.Teachers[0].Name)
	assert.Equal(t, uint64(3), snapshot.Subjects[0].TheoryHours)
}
