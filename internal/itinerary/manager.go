package itinerary

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/internal/domain"
)

// Updater receives the full replacement activity list after every committed
// mutation. It is the only way a Manager talks to storage.
type Updater interface {
	UpdateActivities(ctx context.Context, tripID uuid.UUID, activities []domain.Activity) error
}

// UpdaterFunc adapts a plain function to the Updater interface.
type UpdaterFunc func(ctx context.Context, tripID uuid.UUID, activities []domain.Activity) error

// UpdateActivities calls f.
func (f UpdaterFunc) UpdateActivities(ctx context.Context, tripID uuid.UUID, activities []domain.Activity) error {
	return f(ctx, tripID, activities)
}

// Option configures a Manager.
type Option func(*Manager)

// WithPolicy sets the drag policy. The default is PolicyMove.
func WithPolicy(p Policy) Option {
	return func(m *Manager) { m.policy = p }
}

// WithIDGenerator replaces uuid.New as the source of new activity IDs.
func WithIDGenerator(fn func() uuid.UUID) Option {
	return func(m *Manager) { m.newID = fn }
}

// Manager owns the working copy of one trip's activities.
// It is not safe for concurrent use; callers drive it from a single
// goroutine, one event at a time.
type Manager struct {
	tripID     uuid.UUID
	dates      []string
	inRange    map[string]struct{}
	activities []domain.Activity
	updater    Updater
	policy     Policy
	newID      func() uuid.UUID
	drag       *dragSession
}

// NewManager seeds a Manager from a trip snapshot. The activity list is
// copied, so later changes to trip do not leak into the Manager and vice
// versa. A nil updater turns pushes into no-ops.
func NewManager(trip domain.Trip, updater Updater, opts ...Option) *Manager {
	dates := DateRange(trip.StartDate, trip.EndDate)
	inRange := make(map[string]struct{}, len(dates))
	for _, d := range dates {
		inRange[d] = struct{}{}
	}

	m := &Manager{
		tripID:     trip.ID,
		dates:      dates,
		inRange:    inRange,
		activities: slices.Clone(trip.Activities),
		updater:    updater,
		policy:     PolicyMove,
		newID:      uuid.New,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// TripID returns the ID of the trip this Manager was seeded from.
func (m *Manager) TripID() uuid.UUID { return m.tripID }

// Policy returns the drag policy in effect.
func (m *Manager) Policy() Policy { return m.policy }

// Dates returns the trip's calendar range.
func (m *Manager) Dates() []string { return slices.Clone(m.dates) }

// Activities returns a copy of the current working list.
func (m *Manager) Activities() []domain.Activity { return slices.Clone(m.activities) }

// Slots returns every day in range with its three period columns.
func (m *Manager) Slots() []Slot { return ListSlots(m.dates, m.activities) }

// InRange reports whether date is one of the trip's calendar days.
func (m *Manager) InRange(date string) bool {
	_, ok := m.inRange[date]
	return ok
}

// Create appends a new activity to the end of the (date, period) slot and
// pushes the list. The description is stored trimmed.
//
// Blank descriptions, a missing or out-of-range date and an unknown period
// leave the list unchanged and are reported through the Outcome.
func (m *Manager) Create(ctx context.Context, date string, period domain.Period, description string) (domain.Activity, Outcome, error) {
	if m.drag != nil {
		return domain.Activity{}, rejected(ReasonDragInProgress), nil
	}
	description = strings.TrimSpace(description)
	switch {
	case description == "":
		return domain.Activity{}, rejected(ReasonEmptyDescription), nil
	case date == "":
		return domain.Activity{}, rejected(ReasonMissingDate), nil
	case !m.InRange(date):
		return domain.Activity{}, rejected(ReasonDateOutOfRange), nil
	case !period.Valid():
		return domain.Activity{}, rejected(ReasonInvalidPeriod), nil
	}

	a := domain.Activity{
		ID:          m.uniqueID(),
		Description: description,
		Date:        date,
		Period:      period,
		Order:       m.nextOrder(date, period),
	}
	m.activities = append(m.activities, a)

	if err := m.push(ctx); err != nil {
		return a, changed(), err
	}
	return a, changed(), nil
}

// Delete removes the activity with the given id and pushes the list.
// Remaining orders in the slot are not compacted. An unknown id is a no-op.
func (m *Manager) Delete(ctx context.Context, id uuid.UUID) (Outcome, error) {
	if m.drag != nil {
		return rejected(ReasonDragInProgress), nil
	}
	i := m.indexOf(id)
	if i < 0 {
		return rejected(ReasonUnknownActivity), nil
	}
	m.activities = slices.Delete(m.activities, i, i+1)

	return changed(), m.push(ctx)
}

// Reassignment describes a complete drag gesture: which activity was
// dragged, the (date, period) it was dropped on and, optionally, the
// activity it was dropped over.
//
// Empty Date or Period fall back to DropTargetID's slot when a target is
// given, otherwise to the dragged activity's own slot. Under PolicyReorder
// the resolved slot must be the dragged activity's own.
type Reassignment struct {
	ActivityID   uuid.UUID
	Date         string
	Period       domain.Period
	DropTargetID uuid.UUID
}

// Reassign runs a whole drag gesture (begin, optional drag-over, drop) under
// the Manager's policy and commits at most one push. A rejected gesture
// leaves the list exactly as it was before.
func (m *Manager) Reassign(ctx context.Context, r Reassignment) (Outcome, error) {
	if o := m.BeginDrag(r.ActivityID); o.Rejected() {
		return o, nil
	}

	date, period := r.Date, r.Period
	if r.DropTargetID != uuid.Nil {
		ti := m.indexOf(r.DropTargetID)
		if ti < 0 {
			m.CancelDrag()
			return rejected(ReasonUnknownActivity), nil
		}
		target := m.activities[ti]
		if date == "" {
			date = target.Date
		}
		if period == "" {
			period = target.Period
		}
		if o := m.DragOver(r.DropTargetID); o.Rejected() {
			m.CancelDrag()
			return o, nil
		}
	}

	dragged := m.activities[m.indexOf(r.ActivityID)]
	if date == "" {
		date = dragged.Date
	}
	if period == "" {
		period = dragged.Period
	}
	if m.policy == PolicyReorder {
		if o := sameSlotOnly(dragged, date, period); o.Rejected() {
			m.CancelDrag()
			return o, nil
		}
	}
	return m.Drop(ctx, date, period)
}

// sameSlotOnly rejects a reorder gesture aimed at any slot other than a's.
func sameSlotOnly(a domain.Activity, date string, period domain.Period) Outcome {
	switch {
	case !period.Valid():
		return rejected(ReasonInvalidPeriod)
	case a.Date != date || a.Period != period:
		return rejected(ReasonDifferentSlot)
	}
	return Outcome{}
}

func (m *Manager) push(ctx context.Context) error {
	if m.updater == nil {
		return nil
	}
	if err := m.updater.UpdateActivities(ctx, m.tripID, slices.Clone(m.activities)); err != nil {
		return fmt.Errorf("itinerary.Manager: push trip %s: %w", m.tripID, err)
	}
	return nil
}

func (m *Manager) indexOf(id uuid.UUID) int {
	return slices.IndexFunc(m.activities, func(a domain.Activity) bool { return a.ID == id })
}

// nextOrder returns 1 + the highest order in the slot, or 0 for an empty slot.
func (m *Manager) nextOrder(date string, period domain.Period) int {
	highest := -1
	for _, a := range m.activities {
		if a.Date == date && a.Period == period {
			highest = max(highest, a.Order)
		}
	}
	return highest + 1
}

func (m *Manager) uniqueID() uuid.UUID {
	for {
		id := m.newID()
		if id != uuid.Nil && m.indexOf(id) < 0 {
			return id
		}
	}
}
