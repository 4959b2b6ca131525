package optimizer

import (
	"math"

	"github.com/nav-in27/timetable-generator/pkg/model"
	"github.com/nav-in27/timetable-generator/pkg/state"
)

// fitness scores a World's current allocations — lower is better. It
// penalizes four soft qualities: a teacher with three or more consecutive
// taught periods in one day, an uneven spread of a teacher's load across
// the week, a class carrying its last period of the day, and a class's
// day being fragmented by free periods between taught ones rather than
// the taught periods running together.
func fitness(world *state.World, idx model.Index) float64 {
	score := 0.0
	score += teacherConsecutivePenalty(world, idx)
	score += teacherLoadVariancePenalty(world, idx)
	score += lastPeriodPenalty(world, idx)
	score += fragmentationPenalty(world, idx)
	return score
}

func teacherConsecutivePenalty(world *state.World, idx model.Index) float64 {
	penalty := 0.0
	for teacherID := range idx.Teachers {
		for day := uint64(0); day < model.Days; day++ {
			run := 0
			for period := uint64(0); period < model.Periods; period++ {
				if teacherBusyAt(world, idx, teacherID, day, period) {
					run++
					if run >= 3 {
						penalty++
					}
				} else {
					run = 0
				}
			}
		}
	}
	return penalty
}

func teacherBusyAt(world *state.World, idx model.Index, teacherID, day, period uint64) bool {
	return !world.IsTeacherFree(teacherID, day, period)
}

func teacherLoadVariancePenalty(world *state.World, idx model.Index) float64 {
	penalty := 0.0
	for teacherID := range idx.Teachers {
		loads := make([]float64, model.Days)
		for day := uint64(0); day < model.Days; day++ {
			for period := uint64(0); period < model.Periods; period++ {
				if teacherBusyAt(world, idx, teacherID, day, period) {
					loads[day]++
				}
			}
		}
		penalty += variance(loads)
	}
	return penalty
}

func variance(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	sumSquares := 0.0
	for _, v := range values {
		diff := v - mean
		sumSquares += diff * diff
	}
	return sumSquares / float64(len(values))
}

func lastPeriodPenalty(world *state.World, idx model.Index) float64 {
	penalty := 0.0
	lastPeriod := model.Periods - 1
	for classID := range idx.Classes {
		for day := uint64(0); day < model.Days; day++ {
			if !world.IsClassFree(classID, day, lastPeriod) {
				penalty++
			}
		}
	}
	return penalty
}

func fragmentationPenalty(world *state.World, idx model.Index) float64 {
	penalty := 0.0
	for classID := range idx.Classes {
		for day := uint64(0); day < model.Days; day++ {
			seenTaught := false
			gapsAfterTaught := 0
			for period := uint64(0); period < model.Periods; period++ {
				busy := !world.IsClassFree(classID, day, period)
				if busy {
					seenTaught = true
					if gapsAfterTaught > 0 {
						penalty += float64(gapsAfterTaught)
						gapsAfterTaught = 0
					}
				} else if seenTaught {
					gapsAfterTaught++
				}
			}
		}
	}
	return math.Max(penalty, 0)
}
