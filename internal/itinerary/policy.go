package itinerary

import "fmt"

// Policy selects how a drag gesture reassigns an activity.
type Policy string

const (
	// PolicyMove moves the dragged activity to another period of the same
	// day on drop, appending it to the end of the destination slot. Drops on
	// another day or on the slot it already occupies are ignored.
	PolicyMove Policy = "move"

	// PolicyReorder reorders the dragged activity inside its own slot while
	// the drag passes over its neighbours. The slot is renumbered 0..n-1 on
	// every drag-over and the result is pushed once, on drop.
	PolicyReorder Policy = "reorder"
)

// ParsePolicy validates a configured policy name. An empty name selects PolicyMove.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case "", PolicyMove:
		return PolicyMove, nil
	case PolicyReorder:
		return PolicyReorder, nil
	}
	return "", fmt.Errorf("itinerary.ParsePolicy: unknown drag policy %q (want %q or %q)", s, PolicyMove, PolicyReorder)
}
