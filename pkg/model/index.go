package model

import (
	"sort"

	"github.com/samber/lo"
)

// Index precomputes id -> record lookup maps over a Snapshot's flat
// vectors: back-references in a strict ownership model are computed once
// into lookup maps at the start of a run rather than stored as
// back-pointers.
type Index struct {
	Teachers map[uint64]Teacher
	Subjects map[uint64]Subject
	Classes  map[uint64]Class
	Rooms    map[uint64]Room
	Baskets  map[uint64]ElectiveBasket
}

func NewIndex(snapshot Snapshot) Index {
	return Index{
		Teachers: lo.SliceToMap(snapshot.Teachers, func(t Teacher) (uint64, Teacher) { return t.ID, t }),
		Subjects: lo.SliceToMap(snapshot.Subjects, func(s Subject) (uint64, Subject) { return s.ID, s }),
		Classes:  lo.SliceToMap(snapshot.Classes, func(c Class) (uint64, Class) { return c.ID, c }),
		Rooms:    lo.SliceToMap(snapshot.Rooms, func(r Room) (uint64, Room) { return r.ID, r }),
		Baskets:  lo.SliceToMap(snapshot.Baskets, func(b ElectiveBasket) (uint64, ElectiveBasket) { return b.ID, b }),
	}
}

// RoomsOfKind returns the available rooms of the given kind, sorted by id
// for deterministic iteration.
func (idx Index) RoomsOfKind(kind RoomKind) []Room {
	rooms := lo.Filter(lo.Values(idx.Rooms), func(r Room, _ int) bool {
		return r.Kind == kind && r.Available
	})
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].ID < rooms[j].ID })
	return rooms
}
