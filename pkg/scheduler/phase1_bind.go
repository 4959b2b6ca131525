package scheduler

import (
	"fmt"

	"github.com/nav-in27/timetable-generator/pkg/binder"
	"github.com/nav-in27/timetable-generator/pkg/requirement"
)

// phase1Bind resolves the teacher binding table and reports every
// requirement that could not be bound.
func (r *run) phase1Bind() {
	units, err := requirement.Build(r.snapshot)
	if err != nil {
		r.builder.AddPhase("teacher-binding", 0, []string{err.Error()})
		return
	}
	r.units = units

	bindings, unbound := binder.Bind(r.snapshot, units)
	r.bindings = bindings

	failures := make([]string, 0, len(unbound))
	for _, key := range unbound {
		failures = append(failures, fmt.Sprintf(
			"no qualified teacher for (class=%d, subject=%d, component=%v)", key.ClassID, key.SubjectID, key.Component))
	}
	r.builder.AddPhase("teacher-binding", uint64(len(bindings)), failures)
}
