package scheduler

import (
	"github.com/samber/lo"

	"github.com/nav-in27/timetable-generator/pkg/binder"
	"github.com/nav-in27/timetable-generator/pkg/model"
	"github.com/nav-in27/timetable-generator/pkg/requirement"
)

func binderKey(unit requirement.Unit) binder.Key {
	return binder.Key{ClassID: unit.ClassID, SubjectID: unit.SubjectID, Component: unit.Component}
}

// labUnits returns every Lab unit, optionally restricted to a set of
// classes.
func (r *run) labUnits(restrictToClasses map[uint64]bool) []requirement.Unit {
	return lo.Filter(r.units, func(u requirement.Unit, _ int) bool {
		return u.Component == model.Lab && classAllowed(u.ClassID, restrictToClasses)
	})
}

// theoryTutorialUnits returns every Theory or Tutorial unit, optionally
// restricted to a set of classes.
func (r *run) theoryTutorialUnits(restrictToClasses map[uint64]bool) []requirement.Unit {
	return lo.Filter(r.units, func(u requirement.Unit, _ int) bool {
		return (u.Component == model.Theory || u.Component == model.Tutorial) && classAllowed(u.ClassID, restrictToClasses)
	})
}

func classAllowed(classID uint64, restrictToClasses map[uint64]bool) bool {
	if restrictToClasses == nil {
		return true
	}
	return restrictToClasses[classID]
}
