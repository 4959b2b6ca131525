package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewIndexLooksUpById(t *testing.T) {
	// Arrange
	snapshot := Snapshot{
		Teachers: []Teacher{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}},
		Subjects: []Subject{{ID: 10, Code: "CS101"}},
		Classes:  []Class{{ID: 100, Section: "A"}},
		Rooms:    []Room{{ID: 1000, Kind: Lecture, Capacity: 60, Available: true}},
		Baskets:  []ElectiveBasket{{ID: 9000, Name: "Open Elective"}},
	}

	// Act
	idx := NewIndex(snapshot)

	// Assert
	assert.Equal(t, "B", idx.Teachers[2].Name)
	assert.Equal(t, "CS101", idx.Subjects[10].Code)
	assert.Equal(t, "A", idx.Classes[100].Section)
	assert.Equal(t, "Open Elective", idx.Baskets[9000].Name)
}

func TestRoomsOfKindFiltersAvailabilityAndSortsById(t *testing.T) {
	// Arrange
	snapshot := Snapshot{
		Rooms: []Room{
			{ID: 3, Kind: Lecture, Available: true},
			{ID: 1, Kind: Lecture, Available: true},
			{ID: 2, Kind: LabRoom, Available: true},
			{ID: 4, Kind: Lecture, Available: false},
		},
	}
	idx := NewIndex(snapshot)

	// Act
	rooms := idx.RoomsOfKind(Lecture)

	// Assert
	assert.Len(t, rooms, 2)
	assert.Equal(t, uint64(1), rooms[0].ID)
	assert.Equal(t, uint64(3), rooms[1].ID)
}
