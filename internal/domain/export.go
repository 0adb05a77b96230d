package domain

// ExportRow is a single row in the itinerary export.
// It is a flat, denormalized view: one row per activity, with trip fields
// repeated on every row. Rows are ordered by date, then period, then order.
type ExportRow struct {
	// Trip fields, repeated for every activity on the trip.
	TripID        string
	TripName      string
	TripStartDate string // "2006-01-02" formatted date
	TripEndDate   string

	// Activity fields.
	ActivityID  string
	Date        string
	Period      Period
	Order       int
	Description string

	// InRange is false for activities left behind when the trip's date range
	// shrank after they were created.
	InRange bool
}
