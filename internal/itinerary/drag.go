package itinerary

import (
	"context"
	"slices"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/internal/domain"
)

// dragSession remembers what a drag started from so it can be undone.
type dragSession struct {
	activityID uuid.UUID
	snapshot   []domain.Activity
}

// Dragging returns the ID of the activity being dragged, if any.
func (m *Manager) Dragging() (uuid.UUID, bool) {
	if m.drag == nil {
		return uuid.Nil, false
	}
	return m.drag.activityID, true
}

// BeginDrag starts a drag of the activity with the given id.
// Only one drag can be in progress at a time.
func (m *Manager) BeginDrag(id uuid.UUID) Outcome {
	if m.drag != nil {
		return rejected(ReasonDragInProgress)
	}
	if m.indexOf(id) < 0 {
		return rejected(ReasonUnknownActivity)
	}
	m.drag = &dragSession{activityID: id, snapshot: slices.Clone(m.activities)}
	return Outcome{}
}

// DragOver is called each time the dragged activity passes over another
// activity. Under PolicyReorder it moves the dragged activity into the
// target's position when both share a slot and renumbers that slot; the
// change is visible through Activities and Slots immediately but is not
// pushed until Drop. Under PolicyMove it does nothing.
func (m *Manager) DragOver(targetID uuid.UUID) Outcome {
	if m.drag == nil {
		return rejected(ReasonNoDrag)
	}
	if m.policy != PolicyReorder || targetID == m.drag.activityID {
		return Outcome{}
	}

	from, to := m.indexOf(m.drag.activityID), m.indexOf(targetID)
	if to < 0 {
		return rejected(ReasonUnknownActivity)
	}
	if !m.activities[from].SameSlot(m.activities[to]) {
		return rejected(ReasonDifferentSlot)
	}

	m.reorderWithin(m.drag.activityID, targetID)
	return changed()
}

// Drop ends the drag on the (date, period) column it was released over and
// pushes the list once if anything changed.
//
// Under PolicyMove the activity moves to period when date is its own date
// and period is a different, valid period; it is appended after the last
// activity already there. Under PolicyReorder the live reordering made by
// DragOver is committed and date/period are not consulted.
func (m *Manager) Drop(ctx context.Context, date string, period domain.Period) (Outcome, error) {
	if m.drag == nil {
		return rejected(ReasonNoDrag), nil
	}
	session := m.drag
	m.drag = nil

	switch m.policy {
	case PolicyReorder:
		if slices.Equal(session.snapshot, m.activities) {
			return Outcome{}, nil
		}
		return changed(), m.push(ctx)
	default:
		o := m.moveAcross(session.activityID, date, period)
		if !o.Changed {
			return o, nil
		}
		return o, m.push(ctx)
	}
}

// CancelDrag abandons the drag in progress and restores the list as it was
// when BeginDrag was called. Nothing is pushed.
func (m *Manager) CancelDrag() Outcome {
	if m.drag == nil {
		return rejected(ReasonNoDrag)
	}
	m.activities = m.drag.snapshot
	m.drag = nil
	return Outcome{}
}

func (m *Manager) moveAcross(id uuid.UUID, date string, period domain.Period) Outcome {
	i := m.indexOf(id)
	if i < 0 {
		return rejected(ReasonUnknownActivity)
	}
	a := m.activities[i]
	switch {
	case !period.Valid():
		return rejected(ReasonInvalidPeriod)
	case a.Date != date:
		return rejected(ReasonCrossDay)
	case a.Period == period:
		return rejected(ReasonSameSlot)
	}

	a.Order = m.nextOrder(date, period)
	a.Period = period
	m.activities[i] = a
	return changed()
}

// reorderWithin takes the dragged activity out of its slot's display order
// and inserts it at the target's position, then writes the slot back into
// the array positions it already occupied with orders 0..n-1.
func (m *Manager) reorderWithin(draggedID, targetID uuid.UUID) {
	dragged := m.activities[m.indexOf(draggedID)]

	var positions []int
	for i, a := range m.activities {
		if a.SameSlot(dragged) {
			positions = append(positions, i)
		}
	}

	members := make([]domain.Activity, len(positions))
	for i, pos := range positions {
		members[i] = m.activities[pos]
	}
	sortByOrder(members)

	from := slices.IndexFunc(members, func(a domain.Activity) bool { return a.ID == draggedID })
	to := slices.IndexFunc(members, func(a domain.Activity) bool { return a.ID == targetID })

	moved := members[from]
	members = slices.Delete(members, from, from+1)
	members = slices.Insert(members, to, moved)

	for i, pos := range positions {
		a := members[i]
		a.Order = i
		m.activities[pos] = a
	}
}
