package roomassign

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nav-in27/timetable-generator/pkg/model"
)

func TestAssignGivesEachDemandADistinctRoom(t *testing.T) {
	// Arrange
	roomA := model.Room{ID: 1, Capacity: 60}
	roomB := model.Room{ID: 2, Capacity: 60}
	demands := []Demand{
		{Key: 100, Candidate: []model.Room{roomA, roomB}},
		{Key: 200, Candidate: []model.Room{roomA, roomB}},
	}

	// Act
	assignment, err := Assign(demands)

	// Assert
	require.NoError(t, err)
	assert.Len(t, assignment, 2)
	assert.NotEqual(t, assignment[100], assignment[200])
}

func TestAssignFailsWhenFewerRoomsThanDemands(t *testing.T) {
	// Arrange
	room := model.Room{ID: 1, Capacity: 60}
	demands := []Demand{
		{Key: 100, Candidate: []model.Room{room}},
		{Key: 200, Candidate: []model.Room{room}},
	}

	// Act
	_, err := Assign(demands)

	// Assert
	assert.ErrorIs(t, err, ErrUnassignable)
}

func TestAssignRespectsPerDemandCandidateLists(t *testing.T) {
	// Arrange: demand 200 can only use roomB
	roomA := model.Room{ID: 1, Capacity: 60}
	roomB := model.Room{ID: 2, Capacity: 60}
	demands := []Demand{
		{Key: 100, Candidate: []model.Room{roomA, roomB}},
		{Key: 200, Candidate: []model.Room{roomB}},
	}

	// Act
	assignment, err := Assign(demands)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, uint64(2), assignment[200])
	assert.Equal(t, uint64(1), assignment[100])
}

func TestAssignEmptyDemandsReturnsEmptyMap(t *testing.T) {
	// Act
	assignment, err := Assign(nil)

	// Assert
	require.NoError(t, err)
	assert.Empty(t, assignment)
}
