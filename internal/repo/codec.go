package repo

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/pkordes/trip-planner/internal/domain"
)

// nonNil returns s, or an empty slice when s is nil, so NOT NULL columns
// never receive NULL and JSON output is [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// cloneTrip deep-copies the slices of t so callers never share backing
// arrays with the store.
func cloneTrip(t domain.Trip) domain.Trip {
	t.Destinations = nonNil(slices.Clone(t.Destinations))
	t.Activities = nonNil(slices.Clone(t.Activities))
	t.Budget = t.Budget.Clone()
	return t
}

// encodeJSON marshals v for a TEXT column.
func encodeJSON(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode json: %w", err)
	}
	return string(b), nil
}

// decodeJSON unmarshals a TEXT column written by encodeJSON.
func decodeJSON(s string, v any) error {
	if s == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(s), v); err != nil {
		return fmt.Errorf("decode json: %w", err)
	}
	return nil
}
