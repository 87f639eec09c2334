// Package preference maintains a candidate's ordered list of college+course
// choices and submits it to the allotment simulator. Position encodes stated
// priority: position 0 is the first choice, and the preference number shown
// to the candidate is position + 1.
package preference

import (
	"github.com/google/uuid"

	"github.com/admitplan/kcetgo/internal/model"
)

// Set is the ordered, deduplicated preference list. It is single-owner
// mutable state: mutations must be serialized by the caller.
type Set struct {
	entries []model.PreferenceEntry
}

func NewSet() *Set {
	return &Set{}
}

// Add appends a new entry for (college, course) with a freshly generated id.
// New entries always go to the end: lowest priority by default. Adding a
// (college, course) pair that is already present is a silent no-op; Add
// reports whether the entry was inserted.
func (s *Set) Add(college model.College, course model.Course) bool {
	for _, e := range s.entries {
		if e.CollegeCode == college.CollegeID && e.CourseCode == course.CourseCode {
			return false
		}
	}
	s.entries = append(s.entries, model.PreferenceEntry{
		ID:          uuid.NewString(),
		CollegeCode: college.CollegeID,
		CollegeName: college.CollegeName,
		CourseCode:  course.CourseCode,
		CourseName:  course.CourseName,
	})
	return true
}

// Remove deletes the entry with the given id. No-op if absent; ids of
// surviving entries are never renumbered or reused.
func (s *Set) Remove(id string) {
	for i, e := range s.entries {
		if e.ID == id {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return
		}
	}
}

// Reorder moves the entry fromID to the position currently held by toID,
// shifting the entries in between by one. Membership and cardinality are
// unchanged. No-op when either id is missing or when fromID == toID.
func (s *Set) Reorder(fromID, toID string) {
	from := s.index(fromID)
	to := s.index(toID)
	if from < 0 || to < 0 || from == to {
		return
	}
	moved := s.entries[from]
	s.entries = append(s.entries[:from], s.entries[from+1:]...)

	rest := append([]model.PreferenceEntry(nil), s.entries[to:]...)
	s.entries = append(s.entries[:to], moved)
	s.entries = append(s.entries, rest...)
}

func (s *Set) index(id string) int {
	for i, e := range s.entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// Entries returns a copy of the list in priority order.
func (s *Set) Entries() []model.PreferenceEntry {
	return append([]model.PreferenceEntry(nil), s.entries...)
}

// Len returns the number of entries.
func (s *Set) Len() int {
	return len(s.entries)
}

// Position returns the 0-based position of the entry with the given id, or -1.
func (s *Set) Position(id string) int {
	return s.index(id)
}

// Reset empties the list (full-form reset).
func (s *Set) Reset() {
	s.entries = nil
}
