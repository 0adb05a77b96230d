package domain

import "github.com/google/uuid"

// Period is the part of the day an activity is scheduled in.
type Period string

const (
	PeriodMorning   Period = "morning"
	PeriodAfternoon Period = "afternoon"
	PeriodNight     Period = "night"
)

// Periods lists every period in display order.
var Periods = []Period{PeriodMorning, PeriodAfternoon, PeriodNight}

// Valid reports whether p is one of the three known periods.
func (p Period) Valid() bool {
	switch p {
	case PeriodMorning, PeriodAfternoon, PeriodNight:
		return true
	}
	return false
}

// Activity is a single itinerary entry.
// Date is a calendar day in "2006-01-02" form. Order ranks the activity
// within its (Date, Period) slot; lower values come first.
type Activity struct {
	ID          uuid.UUID `json:"id"`
	Description string    `json:"description"`
	Date        string    `json:"date"`
	Period      Period    `json:"period"`
	Order       int       `json:"order"`
}

// SameSlot reports whether a and b are scheduled in the same (date, period).
func (a Activity) SameSlot(b Activity) bool {
	return a.Date == b.Date && a.Period == b.Period
}
