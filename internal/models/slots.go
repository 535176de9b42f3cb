// internal/models/slots.go
package models

import "strings"

// Slot names recognized by the dining dialog.
const (
	SlotLocation       = "Location"
	SlotCuisine        = "Cuisine"
	SlotNumberOfPeople = "NumberOfPeople"
	SlotDiningTime     = "DiningTime"
	SlotContactAddress = "ContactAddress"
)

// SlotOrder is the fixed priority order used for both validation and
// completeness checks. Changing it changes which slot gets elicited first.
var SlotOrder = []string{
	SlotLocation,
	SlotCuisine,
	SlotNumberOfPeople,
	SlotDiningTime,
	SlotContactAddress,
}

// SlotSet maps slot names to raw user-provided values. A slot counts as
// filled only when its value is non-empty after trimming. SlotSet is treated
// as a value: mutations go through With, which copies.
type SlotSet map[string]string

// Get returns the trimmed value for a slot, or "" when absent.
func (s SlotSet) Get(name string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(s[name])
}

// Filled reports whether the slot holds a non-blank value.
func (s SlotSet) Filled(name string) bool {
	return s.Get(name) != ""
}

// With returns a copy of the set with one slot replaced.
func (s SlotSet) With(name, value string) SlotSet {
	out := s.Clone()
	out[name] = value
	return out
}

// Clone returns an independent copy; a nil receiver clones to an empty set.
func (s SlotSet) Clone() SlotSet {
	out := make(SlotSet, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// FirstUnfilled returns the first slot in priority order that is not yet
// filled, or "" when the set is complete.
func (s SlotSet) FirstUnfilled() string {
	for _, name := range SlotOrder {
		if !s.Filled(name) {
			return name
		}
	}
	return ""
}

// Complete reports whether all five slots are filled.
func (s SlotSet) Complete() bool {
	return s.FirstUnfilled() == ""
}
