package domain

import "github.com/m04kA/SBS-SchedulingService/pkg/types"

// SlotStatus represents the availability of a candidate slot
type SlotStatus string

const (
	SlotAvailable SlotStatus = "available" // selectable
	SlotOccupied  SlotStatus = "occupied"  // conflicts with another client's appointment
	SlotOwn       SlotStatus = "own"       // conflicts with the viewer's own appointment
	SlotPast      SlotStatus = "past"      // start time already passed today
	SlotLunch     SlotStatus = "lunch"     // falls inside the lunch window
)

// Slot is a candidate bookable start time. Derived, never persisted;
// recomputed on every query as a pure function of its inputs.
type Slot struct {
	StartTime       types.TimeString
	StartMinutes    int // minutes from midnight
	DurationMinutes int // requested service duration
	Status          SlotStatus
}

// IsSelectable returns true if the slot can be booked
func (s *Slot) IsSelectable() bool {
	return s.Status == SlotAvailable
}

// IsOfferable returns true if the slot should appear in the offered list.
// Past and lunch slots are hidden entirely; occupied/own are shown disabled.
func (s *Slot) IsOfferable() bool {
	return s.Status != SlotPast && s.Status != SlotLunch
}
