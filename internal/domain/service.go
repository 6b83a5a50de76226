package domain

import "time"

// Service represents immutable reference data for a bookable service.
// An appointment's blocking duration is always the duration of its own
// service, never a shared constant.
type Service struct {
	ID              int64
	Name            string
	DurationMinutes int
	Price           float64
	Active          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
