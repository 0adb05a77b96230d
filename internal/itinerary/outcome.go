package itinerary

// Reason explains why an operation left the activity list unchanged.
// The zero value means the operation was accepted.
type Reason string

const (
	ReasonNone             Reason = ""
	ReasonEmptyDescription Reason = "empty_description"
	ReasonMissingDate      Reason = "missing_date"
	ReasonDateOutOfRange   Reason = "date_out_of_range"
	ReasonInvalidPeriod    Reason = "invalid_period"
	ReasonUnknownActivity  Reason = "unknown_activity"
	ReasonCrossDay         Reason = "cross_day"
	ReasonSameSlot         Reason = "same_slot"
	ReasonDifferentSlot    Reason = "different_slot"
	ReasonNoDrag           Reason = "no_drag"
	ReasonDragInProgress   Reason = "drag_in_progress"
)

// Outcome is the result of a Manager operation. Rejected inputs are reported
// here rather than as errors; errors are reserved for a failed push.
type Outcome struct {
	Changed bool   `json:"changed"`
	Reason  Reason `json:"reason,omitempty"`
}

// Rejected reports whether the operation was refused.
func (o Outcome) Rejected() bool {
	return o.Reason != ReasonNone
}

func changed() Outcome {
	return Outcome{Changed: true}
}

func rejected(r Reason) Outcome {
	return Outcome{Reason: r}
}
