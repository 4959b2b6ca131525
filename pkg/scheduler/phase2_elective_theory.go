package scheduler

import (
	"fmt"

	"github.com/nav-in27/timetable-generator/pkg/elective"
	"github.com/nav-in27/timetable-generator/pkg/report"
)

// phase2ElectiveTheory builds the elective plans and, for each basket's
// theory hours, attempts to allocate one unit per randomized (day,
// period) pair, committing the first allocatable slot and repeating for
// the remaining hours at distinct periods. Unplaced hours are recorded
// as a soft failure; the basket's remaining hours keep trying.
func (r *run) phase2ElectiveTheory() {
	plans, err := elective.Build(r.snapshot, r.bindings)
	if err != nil {
		r.builder.AddPhase("elective-theory", 0, []string{err.Error()})
		return
	}
	r.plans = plans

	added := uint64(0)
	failures := make([]string, 0)

	for _, plan := range plans {
		if plan.Kind != elective.TheoryUnit {
			continue
		}
		basket := plan.BasketID
		remaining := r.basketTheoryHours(basket)

		missing := uint64(0)
		reasons := make([]string, 0)
		usedPeriods := make(map[[2]uint64]bool) // (day, period) -> already used by this basket's theory units
		for unit := uint64(0); unit < remaining; unit++ {
			placed := false
			for _, dayPeriod := range r.shuffledDayPeriods(nil) {
				day, period := dayPeriod[0], dayPeriod[1]
				if usedPeriods[[2]uint64{day, period}] {
					continue
				}
				if !plan.CanAllocateAt(r.world, r.idx, day, period) {
					continue
				}
				allocs, err := elective.Commit(plan, r.world, r.idx, day, period)
				if err != nil {
					failures = append(failures, fmt.Sprintf("basket %d theory: %v", basket, err))
					continue
				}
				added += uint64(len(allocs))
				usedPeriods[[2]uint64{day, period}] = true
				placed = true
				break
			}
			if !placed {
				reason := fmt.Sprintf(
					"basket %d: no common slot for remaining theory hour %d/%d", basket, unit+1, remaining)
				failures = append(failures, reason)
				reasons = append(reasons, reason)
				missing++
			}
		}

		if missing > 0 {
			r.builder.AddBasketGap(report.BasketGap{BasketID: basket, MissingTheory: missing, Reasons: reasons})
		}
	}

	r.builder.AddPhase("elective-theory", added, failures)
}

func (r *run) basketTheoryHours(basketID uint64) uint64 {
	basket, ok := r.idx.Baskets[basketID]
	if !ok {
		return 0
	}
	return basket.TheoryHours
}
