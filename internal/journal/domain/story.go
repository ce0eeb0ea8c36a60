package domain

import "time"

// TravelStory is a single dated journal entry. OwnerID is set at creation
// and never reassigned; every read and mutation is scoped by it.
type TravelStory struct {
	ID              string
	OwnerID         string
	Title           string
	Story           string
	VisitedLocation []string // caller-supplied order, preserved
	ImageURL        string
	VisitedDate     time.Time // logical date of the visit, not record creation
	IsFavourite     bool
	CreatedAt       time.Time
}
