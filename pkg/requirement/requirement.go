// Package requirement derives, per (class, subject, component) with
// positive weekly hours, the number of atomic placement units needed:
// each theory/tutorial hour is one unit, each two lab hours are one
// 2-period block. Electives are produced once per basket, not per class,
// and are consumed by the elective plan builder instead.
package requirement

import (
	"fmt"
	"sort"

	"github.com/samber/lo"

	"github.com/nav-in27/timetable-generator/pkg/model"
)

// Unit is a single indivisible placement obligation: one period for
// Theory/Tutorial, one 2-period block for Lab.
type Unit struct {
	ClassID   uint64
	SubjectID uint64
	Component model.Component
}

// Build returns one Unit per placement obligation for every class/subject
// pair that isn't elective. Electives (subjects with a BasketID) are
// skipped entirely — the elective plan builder derives their
// requirements from the basket, not the class.
func Build(snapshot model.Snapshot) ([]Unit, error) {
	idx := model.NewIndex(snapshot)
	units := make([]Unit, 0)

	for _, class := range snapshot.Classes {
		subjectIDs := lo.Keys(class.Subjects)
		sort.Slice(subjectIDs, func(i, j int) bool { return subjectIDs[i] < subjectIDs[j] })
		for _, subjectID := range subjectIDs {
			subject, ok := idx.Subjects[subjectID]
			if !ok || subject.IsElective {
				continue
			}

			if subject.LabHours%2 != 0 {
				return nil, fmt.Errorf("subject %d has odd lab_hours %d for class %d", subject.ID, subject.LabHours, class.ID)
			}

			for i := uint64(0); i < subject.TheoryHours; i++ {
				units = append(units, Unit{ClassID: class.ID, SubjectID: subject.ID, Component: model.Theory})
			}
			for i := uint64(0); i < subject.TutorialHours; i++ {
				units = append(units, Unit{ClassID: class.ID, SubjectID: subject.ID, Component: model.Tutorial})
			}
			for i := uint64(0); i < subject.LabHours/2; i++ {
				units = append(units, Unit{ClassID: class.ID, SubjectID: subject.ID, Component: model.Lab})
			}
		}
	}

	return units, nil
}

// PlaceablePeriods returns the number of periods a class could possibly
// be scheduled in across the week — used by Phase 0 validation to reject
// subjects whose weekly hours exceed what a class's timetable can hold.
func PlaceablePeriods() uint64 {
	return model.Days * model.Periods
}

// WeeklyHours sums a class's non-elective weekly theory+lab+tutorial
// hours, for Phase 0's feasibility check.
func WeeklyHours(class model.Class, idx model.Index) uint64 {
	total := uint64(0)
	for subjectID := range class.Subjects {
		subject, ok := idx.Subjects[subjectID]
		if !ok || subject.IsElective {
			continue
		}
		total += subject.TheoryHours + subject.LabHours + subject.TutorialHours
	}
	return total
}
