package requirement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nav-in27/timetable-generator/pkg/model"
)

func TestBuildExpandsSubjectsIntoUnits(t *testing.T) {
	// Arrange
	snapshot := model.Snapshot{
		Classes: []model.Class{
			{ID: 1, Subjects: map[uint64]bool{10: true, 11: true}},
		},
		Subjects: []model.Subject{
			{ID: 10, TheoryHours: 3, LabHours: 2, TutorialHours: 1},
			{ID: 11, IsElective: true, TheoryHours: 2},
		},
	}

	// Act
	units, err := Build(snapshot)

	// Assert
	require.NoError(t, err)
	assert.Len(t, units, 5) // 3 theory + 1 lab-block + 1 tutorial; elective subject skipped

	theoryCount, labCount, tutorialCount := 0, 0, 0
	for _, unit := range units {
		switch unit.Component {
		case model.Theory:
			theoryCount++
		case model.Lab:
			labCount++
		case model.Tutorial:
			tutorialCount++
		}
	}
	assert.Equal(t, 3, theoryCount)
	assert.Equal(t, 1, labCount)
	assert.Equal(t, 1, tutorialCount)
}

func TestBuildRejectsOddLabHours(t *testing.T) {
	// Arrange
	snapshot := model.Snapshot{
		Classes:  []model.Class{{ID: 1, Subjects: map[uint64]bool{10: true}}},
		Subjects: []model.Subject{{ID: 10, LabHours: 3}},
	}

	// Act
	_, err := Build(snapshot)

	// Assert
	assert.Error(t, err)
}

func TestPlaceablePeriods(t *testing.T) {
	// Act & Assert
	assert.Equal(t, model.Days*model.Periods, PlaceablePeriods())
}

func TestWeeklyHoursSumsNonElectiveSubjects(t *testing.T) {
	// Arrange
	snapshot := model.Snapshot{
		Subjects: []model.Subject{
			{ID: 10, TheoryHours: 3, LabHours: 2, TutorialHours: 1},
			{ID: 11, IsElective: true, TheoryHours: 5},
		},
	}
	idx := model.NewIndex(snapshot)
	class := model.Class{ID: 1, Subjects: map[uint64]bool{10: true, 11: true}}

	// Act
	hours := WeeklyHours(class, idx)

	// Assert
	assert.Equal(t, uint64(6), hours)
}
