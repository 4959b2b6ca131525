// Package roomassign resolves which candidate room each of several
// simultaneous placement demands gets, via a largest bipartite matching
// between demands and capacity-sufficient rooms of the right kind. Room
// binding is deliberately postponed out of the main placement search and
// resolved afterwards with this bipartite-matching technique, reusing
// github.com/onsi/gomega/matchers/support/goraph/bipartitegraph as a
// plain library rather than as a test assertion framework.
package roomassign

import (
	"errors"
	"sort"

	"github.com/onsi/gomega/matchers/support/goraph/bipartitegraph"
	"github.com/samber/lo"

	"github.com/nav-in27/timetable-generator/pkg/model"
)

// ErrUnassignable is returned when fewer rooms can be matched than there
// are demands — some demand cannot be given a fitting, free room.
var ErrUnassignable = errors.New("roomassign: not every demand can be assigned a room")

// Demand is one caller-identified need for a room: a key the caller uses
// to look its assignment back up, and the candidate rooms it may be given
// (already filtered by kind, capacity and availability by the caller).
type Demand struct {
	Key       uint64
	Candidate []model.Room
}

// Assign computes a largest matching between demands and their candidate
// rooms such that no room is given to more than one demand, and each
// demand only receives a room from its own candidate list. Returns
// ErrUnassignable (with no partial assignment) if not every demand could
// be matched to a distinct room.
func Assign(demands []Demand) (map[uint64]uint64, error) {
	if len(demands) == 0 {
		return map[uint64]uint64{}, nil
	}

	roomSet := make(map[uint64]model.Room)
	for _, demand := range demands {
		for _, room := range demand.Candidate {
			roomSet[room.ID] = room
		}
	}
	rooms := lo.Values(roomSet)
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].ID < rooms[j].ID })

	fits := make(map[[2]uint64]bool)
	for _, demand := range demands {
		for _, room := range demand.Candidate {
			fits[[2]uint64{demand.Key, room.ID}] = true
		}
	}

	demandsAny := lo.Map(demands, func(d Demand, _ int) any { return d.Key })
	roomsAny := lo.Map(rooms, func(r model.Room, _ int) any { return r.ID })

	neighbors := func(demandAny, roomAny any) (bool, error) {
		return fits[[2]uint64{demandAny.(uint64), roomAny.(uint64)}], nil
	}

	graph, err := bipartitegraph.NewBipartiteGraph(demandsAny, roomsAny, neighbors)
	if err != nil {
		return nil, err
	}

	matching := graph.LargestMatching()
	if len(matching) < len(demands) {
		return nil, ErrUnassignable
	}

	assignment := make(map[uint64]uint64, len(demands))
	for _, edge := range matching {
		demandIndex, roomIndex := edge.Node1, edge.Node2-len(demands)
		assignment[demands[demandIndex].Key] = rooms[roomIndex].ID
	}
	return assignment, nil
}
