package model

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
)

// RawTeacher, RawSubject, ... mirror the wire/storage shapes the caller
// hands the engine: loosely-typed records (JSON documents or driver rows)
// that still need normalizing into the map-indexed Snapshot fields above.
type RawTeacher struct {
	ID                uint64   `mapstructure:"id"`
	Name              string   `mapstructure:"name"`
	MaxHoursPerWeek   uint64   `mapstructure:"max_hours_per_week"`
	AvailableDays     []uint64 `mapstructure:"available_days"`
	QualifiedSubjects []uint64 `mapstructure:"qualified_subjects"`
	Effectiveness     float64  `mapstructure:"effectiveness"`
}

type RawSubject struct {
	ID            uint64  `mapstructure:"id"`
	Code          string  `mapstructure:"code"`
	TheoryHours   uint64  `mapstructure:"theory_hours"`
	LabHours      uint64  `mapstructure:"lab_hours"`
	TutorialHours uint64  `mapstructure:"tutorial_hours"`
	IsElective    bool    `mapstructure:"is_elective"`
	BasketID      *uint64 `mapstructure:"basket_id"`
}

type RawClass struct {
	ID           uint64   `mapstructure:"id"`
	Semester     uint64   `mapstructure:"semester"`
	Section      string   `mapstructure:"section"`
	StudentCount uint64   `mapstructure:"student_count"`
	Subjects     []uint64 `mapstructure:"subjects"`
}

type RawRoom struct {
	ID        uint64   `mapstructure:"id"`
	Name      string   `mapstructure:"name"`
	Capacity  uint64   `mapstructure:"capacity"`
	Kind      RoomKind `mapstructure:"kind"`
	Available bool     `mapstructure:"available"`
}

type RawElectiveBasket struct {
	ID            uint64   `mapstructure:"id"`
	Name          string   `mapstructure:"name"`
	Semester      uint64   `mapstructure:"semester"`
	TheoryHours   uint64   `mapstructure:"theory_hours"`
	LabHours      uint64   `mapstructure:"lab_hours"`
	TutorialHours uint64   `mapstructure:"tutorial_hours"`
	Participants  []uint64 `mapstructure:"participants"`
	Subjects      []uint64 `mapstructure:"subjects"`
}

type RawSnapshot struct {
	Teachers         []RawTeacher        `mapstructure:"teachers"`
	Subjects         []RawSubject        `mapstructure:"subjects"`
	Classes          []RawClass          `mapstructure:"classes"`
	Rooms            []RawRoom           `mapstructure:"rooms"`
	Baskets          []RawElectiveBasket `mapstructure:"baskets"`
	FixedSlots       []FixedSlot         `mapstructure:"fixed_slots"`
	FixedAssignments []FixedAssignment   `mapstructure:"fixed_assignments"`
}

// SnapshotFromJSON reads a snapshot file from disk and normalizes it:
// decode into a map[string]any first, then mapstructure.Decode into the
// Raw* shape, then normalize.
func SnapshotFromJSON(file string) (Snapshot, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return Snapshot{}, fmt.Errorf("cannot read snapshot file: %w", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(bytes, &raw); err != nil {
		return Snapshot{}, fmt.Errorf("cannot parse snapshot json: %w", err)
	}

	var rawSnapshot RawSnapshot
	if err := mapstructure.Decode(raw, &rawSnapshot); err != nil {
		return Snapshot{}, fmt.Errorf("cannot decode snapshot: %w", err)
	}

	return NormalizeRawSnapshot(rawSnapshot)
}

// DecodeRawSnapshot mapstructure-decodes an already-unmarshalled
// map[string]any (e.g. rows assembled by a storage driver) into a
// Snapshot, for callers that don't hand the engine a JSON file directly.
func DecodeRawSnapshot(raw map[string]any) (Snapshot, error) {
	var rawSnapshot RawSnapshot
	if err := mapstructure.Decode(raw, &rawSnapshot); err != nil {
		return Snapshot{}, fmt.Errorf("cannot decode snapshot: %w", err)
	}
	return NormalizeRawSnapshot(rawSnapshot)
}

// NormalizeRawSnapshot turns the slice-shaped raw records into the
// map-indexed Snapshot the engine operates on.
func NormalizeRawSnapshot(raw RawSnapshot) (Snapshot, error) {
	teachers := make([]Teacher, 0, len(raw.Teachers))
	for _, rt := range raw.Teachers {
		teachers = append(teachers, Teacher{
			ID:                rt.ID,
			Name:              rt.Name,
			MaxHoursPerWeek:   rt.MaxHoursPerWeek,
			AvailableDays:     toSet(rt.AvailableDays),
			QualifiedSubjects: toSet(rt.QualifiedSubjects),
			Effectiveness:     rt.Effectiveness,
		})
	}

	subjects := make([]Subject, 0, len(raw.Subjects))
	for _, rs := range raw.Subjects {
		if rs.LabHours%2 != 0 {
			return Snapshot{}, fmt.Errorf("subject %d has odd lab_hours %d, must be even", rs.ID, rs.LabHours)
		}
		subjects = append(subjects, Subject{
			ID:            rs.ID,
			Code:          rs.Code,
			TheoryHours:   rs.TheoryHours,
			LabHours:      rs.LabHours,
			TutorialHours: rs.TutorialHours,
			IsElective:    rs.IsElective,
			BasketID:      rs.BasketID,
		})
	}

	classes := make([]Class, 0, len(raw.Classes))
	for _, rc := range raw.Classes {
		classes = append(classes, Class{
			ID:           rc.ID,
			Semester:     rc.Semester,
			Section:      rc.Section,
			StudentCount: rc.StudentCount,
			Subjects:     toSet(rc.Subjects),
		})
	}

	rooms := make([]Room, 0, len(raw.Rooms))
	for _, rr := range raw.Rooms {
		rooms = append(rooms, Room{
			ID:        rr.ID,
			Name:      rr.Name,
			Capacity:  rr.Capacity,
			Kind:      rr.Kind,
			Available: rr.Available,
		})
	}

	baskets := make([]ElectiveBasket, 0, len(raw.Baskets))
	for _, rb := range raw.Baskets {
		baskets = append(baskets, ElectiveBasket{
			ID:            rb.ID,
			Name:          rb.Name,
			Semester:      rb.Semester,
			TheoryHours:   rb.TheoryHours,
			LabHours:      rb.LabHours,
			TutorialHours: rb.TutorialHours,
			Participants:  toSet(rb.Participants),
			Subjects:      toSet(rb.Subjects),
		})
	}

	return Snapshot{
		Teachers:         teachers,
		Subjects:         subjects,
		Classes:          classes,
		Rooms:            rooms,
		Baskets:          baskets,
		FixedSlots:       raw.FixedSlots,
		FixedAssignments: raw.FixedAssignments,
	}, nil
}

func toSet(ids []uint64) map[uint64]bool {
	set := make(map[uint64]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
