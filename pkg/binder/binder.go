// Package binder resolves the single teacher responsible for each
// (class, subject, component) from the input fixed-assignment table, with
// a qualified-candidate fallback that picks the lowest projected load.
// The resulting binding table is fixed for the whole run.
package binder

import (
	"github.com/samber/lo"

	"github.com/nav-in27/timetable-generator/pkg/model"
	"github.com/nav-in27/timetable-generator/pkg/requirement"
)

// Key identifies a (class, subject, component) teaching obligation.
type Key struct {
	ClassID   uint64
	SubjectID uint64
	Component model.Component
}

// Table maps every bound obligation to its teacher. A Key absent from the
// table means it was left unbound — the scheduler leaves it free.
type Table map[Key]uint64

// Unbound lists requirements that resolved to no qualified teacher.
type Unbound []Key

// Bind resolves a teacher for every unit in units, following the fixed
// assignment table first and falling back to the least-loaded qualified
// teacher, tiebreaking by higher Effectiveness then lower id.
func Bind(snapshot model.Snapshot, units []requirement.Unit) (Table, Unbound) {
	table := make(Table)
	unbound := make(Unbound, 0)
	projectedLoad := make(map[uint64]uint64) // teacher id -> hours already bound this run

	fixed := lo.SliceToMap(snapshot.FixedAssignments, func(fa model.FixedAssignment) (Key, uint64) {
		return Key{fa.ClassID, fa.SubjectID, fa.Component}, fa.TeacherID
	})

	for _, unit := range units {
		key := Key{unit.ClassID, unit.SubjectID, unit.Component}
		if _, already := table[key]; already {
			continue
		}

		if teacherID, ok := fixed[key]; ok {
			table[key] = teacherID
			projectedLoad[teacherID] += unitHours(unit.Component)
			continue
		}

		teacherID, found := chooseQualified(snapshot.Teachers, unit.SubjectID, projectedLoad)
		if !found {
			unbound = append(unbound, key)
			continue
		}
		table[key] = teacherID
		projectedLoad[teacherID] += unitHours(unit.Component)
	}

	return table, unbound
}

// chooseQualified picks, among teachers qualified for subjectID, the one
// with the least projected load, tiebreak by higher Effectiveness, then
// deterministic (lowest) id.
func chooseQualified(teachers []model.Teacher, subjectID uint64, projectedLoad map[uint64]uint64) (uint64, bool) {
	candidates := lo.Filter(teachers, func(t model.Teacher, _ int) bool {
		return t.QualifiedSubjects[subjectID]
	})
	if len(candidates) == 0 {
		return 0, false
	}

	best := candidates[0]
	for _, candidate := range candidates[1:] {
		if better(candidate, best, projectedLoad) {
			best = candidate
		}
	}
	return best.ID, true
}

func better(a, b model.Teacher, projectedLoad map[uint64]uint64) bool {
	loadA, loadB := projectedLoad[a.ID], projectedLoad[b.ID]
	if loadA != loadB {
		return loadA < loadB
	}
	if a.Effectiveness != b.Effectiveness {
		return a.Effectiveness > b.Effectiveness
	}
	return a.ID < b.ID
}

func unitHours(component model.Component) uint64 {
	if component == model.Lab {
		return 2
	}
	return 1
}
