package scheduler

import (
	"fmt"

	"github.com/nav-in27/timetable-generator/pkg/requirement"
)

// phase0Validate rejects infeasible-in-the-small input before any work is
// done: weekly hours exceeding placeable periods, odd lab hours, or a
// basket whose aggregated demand on its participants is infeasible a
// priori.
func (r *run) phase0Validate() bool {
	failures := make([]string, 0)
	placeable := requirement.PlaceablePeriods()

	for _, class := range r.snapshot.Classes {
		hours := requirement.WeeklyHours(class, r.idx)
		if hours > placeable {
			failures = append(failures, fmt.Sprintf(
				"class %d: weekly hours %d exceed placeable periods %d", class.ID, hours, placeable))
		}
	}

	for _, subject := range r.snapshot.Subjects {
		if subject.LabHours%2 != 0 {
			failures = append(failures, fmt.Sprintf(
				"subject %d: lab_hours %d must be even", subject.ID, subject.LabHours))
		}
	}

	for _, basket := range r.snapshot.Baskets {
		if len(basket.Participants) == 0 {
			continue
		}
		demand := basket.TheoryHours + basket.LabHours/2 + basket.TutorialHours
		available := requirement.PlaceablePeriods()
		if demand > available {
			failures = append(failures, fmt.Sprintf(
				"basket %d: aggregated demand %d exceeds available periods %d", basket.ID, demand, available))
		}
	}

	r.builder.AddPhase("validation", 0, failures)
	return len(failures) == 0
}
