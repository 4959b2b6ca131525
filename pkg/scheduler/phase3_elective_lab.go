package scheduler

import (
	"fmt"

	"github.com/nav-in27/timetable-generator/pkg/elective"
	"github.com/nav-in27/timetable-generator/pkg/report"
)

// phase3ElectiveLab mirrors phase2ElectiveTheory but over lab blocks: the
// candidate (day, start) pairs are restricted to model.LabStarts.
func (r *run) phase3ElectiveLab() {
	added := uint64(0)
	failures := make([]string, 0)

	for _, plan := range r.plans {
		if plan.Kind != elective.LabBlock {
			continue
		}
		basket := plan.BasketID
		remaining := r.basketLabBlocks(basket)

		missing := uint64(0)
		reasons := make([]string, 0)
		usedStarts := make(map[[2]uint64]bool)
		for block := uint64(0); block < remaining; block++ {
			placed := false
			for _, dayStart := range r.shuffledLabStarts() {
				day, start := dayStart[0], dayStart[1]
				if usedStarts[[2]uint64{day, start}] {
					continue
				}
				if !plan.CanAllocateAt(r.world, r.idx, day, start) {
					continue
				}
				allocs, err := elective.Commit(plan, r.world, r.idx, day, start)
				if err != nil {
					failures = append(failures, fmt.Sprintf("basket %d lab: %v", basket, err))
					continue
				}
				added += uint64(len(allocs))
				usedStarts[[2]uint64{day, start}] = true
				placed = true
				break
			}
			if !placed {
				reason := fmt.Sprintf(
					"basket %d: no common slot for remaining lab block %d/%d", basket, block+1, remaining)
				failures = append(failures, reason)
				reasons = append(reasons, reason)
				missing++
			}
		}

		if missing > 0 {
			r.builder.AddBasketGap(report.BasketGap{BasketID: basket, MissingLab: missing, Reasons: reasons})
		}
	}

	r.builder.AddPhase("elective-lab", added, failures)
}

func (r *run) basketLabBlocks(basketID uint64) uint64 {
	basket, ok := r.idx.Baskets[basketID]
	if !ok {
		return 0
	}
	return basket.LabHours / 2
}
