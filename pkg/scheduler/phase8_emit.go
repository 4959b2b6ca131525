package scheduler

import (
	"sort"

	"github.com/nav-in27/timetable-generator/pkg/model"
)

// phase8Emit returns the committed allocations in a canonical order (by
// class, then day, then period) so that two runs seeded identically
// produce byte-identical output, and computes the additive per-class
// free-period and per-teacher load counts from the final allocation
// list.
func (r *run) phase8Emit() []model.Allocation {
	allocations := make([]model.Allocation, len(r.world.Allocations))
	copy(allocations, r.world.Allocations)

	sort.Slice(allocations, func(i, j int) bool {
		a, b := allocations[i], allocations[j]
		if a.ClassID != b.ClassID {
			return a.ClassID < b.ClassID
		}
		if a.Day != b.Day {
			return a.Day < b.Day
		}
		return a.Period < b.Period
	})

	r.builder.SetFreePeriods(r.computeFreePeriods(allocations))
	r.builder.SetTeacherLoad(r.computeTeacherLoad(allocations))

	return allocations
}

func (r *run) computeFreePeriods(allocations []model.Allocation) map[uint64]uint64 {
	total := model.Days * model.Periods
	occupied := make(map[uint64]uint64)
	for _, alloc := range allocations {
		occupied[alloc.ClassID]++
	}
	freePeriods := make(map[uint64]uint64, len(r.snapshot.Classes))
	for _, class := range r.snapshot.Classes {
		freePeriods[class.ID] = total - occupied[class.ID]
	}
	return freePeriods
}

func (r *run) computeTeacherLoad(allocations []model.Allocation) map[uint64]uint64 {
	load := make(map[uint64]uint64, len(r.snapshot.Teachers))
	for _, alloc := range allocations {
		load[alloc.TeacherID]++
	}
	return load
}
