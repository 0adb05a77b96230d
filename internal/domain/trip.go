// Package domain contains the core data types for the trip planner.
// This package has no dependencies on other internal packages and is imported
// by every other internal package (itinerary, repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Trip is the top-level aggregate: a named date range with destinations,
// budget line items and an embedded itinerary. Activities and the budget are
// held by value inside the record; the store never keeps them in a separate
// collection.
type Trip struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	StartDate    time.Time  `json:"start_date"`
	EndDate      time.Time  `json:"end_date"`
	Destinations []string   `json:"destinations"`
	Notes        string     `json:"notes,omitempty"`
	Budget       Budget     `json:"budget"`
	Activities   []Activity `json:"activities"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// MaxTripDays is the longest date range a trip may cover, both ends included.
const MaxTripDays = 366
