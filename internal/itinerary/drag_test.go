package itinerary_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/itinerary"
)

// ---- PolicyMove --------------------------------------------------------------

func TestMove_CrossPeriodSameDayAppends(t *testing.T) {
	x := activity("2024-03-01", domain.PeriodMorning, 0, "x")
	n0 := activity("2024-03-01", domain.PeriodNight, 0, "n0")
	n3 := activity("2024-03-01", domain.PeriodNight, 3, "n3")
	m, up := newManager(t, itinerary.PolicyMove, x, n0, n3)

	o, err := m.Reassign(context.Background(), itinerary.Reassignment{
		ActivityID: x.ID,
		Date:       "2024-03-01",
		Period:     domain.PeriodNight,
	})

	require.NoError(t, err)
	assert.True(t, o.Changed)
	got := find(t, m.Activities(), x.ID)
	assert.Equal(t, domain.PeriodNight, got.Period)
	assert.Equal(t, 4, got.Order)
	assert.Equal(t, "2024-03-01", got.Date)
	require.Len(t, up.pushes, 1)
	assert.Equal(t, got, find(t, up.last(), x.ID))
}

func TestMove_CrossDayRejected(t *testing.T) {
	x := activity("2024-03-01", domain.PeriodMorning, 0, "x")
	m, up := newManager(t, itinerary.PolicyMove, x)

	o, err := m.Reassign(context.Background(), itinerary.Reassignment{
		ActivityID: x.ID,
		Date:       "2024-03-02",
		Period:     domain.PeriodAfternoon,
	})

	require.NoError(t, err)
	assert.False(t, o.Changed)
	assert.Equal(t, itinerary.ReasonCrossDay, o.Reason)
	assert.Equal(t, x, find(t, m.Activities(), x.ID))
	assert.Empty(t, up.pushes)
	_, dragging := m.Dragging()
	assert.False(t, dragging)
}

func TestMove_SameSlotIsNoOp(t *testing.T) {
	x := activity("2024-03-01", domain.PeriodMorning, 0, "x")
	m, up := newManager(t, itinerary.PolicyMove, x)

	o, err := m.Reassign(context.Background(), itinerary.Reassignment{ActivityID: x.ID})

	require.NoError(t, err)
	assert.Equal(t, itinerary.ReasonSameSlot, o.Reason)
	assert.Empty(t, up.pushes)
}

func TestMove_DropOnActivityUsesItsSlot(t *testing.T) {
	x := activity("2024-03-02", domain.PeriodMorning, 0, "x")
	y := activity("2024-03-02", domain.PeriodAfternoon, 0, "y")
	m, up := newManager(t, itinerary.PolicyMove, x, y)

	o, err := m.Reassign(context.Background(), itinerary.Reassignment{ActivityID: x.ID, DropTargetID: y.ID})

	require.NoError(t, err)
	assert.True(t, o.Changed)
	got := find(t, m.Activities(), x.ID)
	assert.Equal(t, domain.PeriodAfternoon, got.Period)
	assert.Equal(t, 1, got.Order)
	assert.Len(t, up.pushes, 1)
}

func TestMove_InvalidPeriodRejected(t *testing.T) {
	x := activity("2024-03-01", domain.PeriodMorning, 0, "x")
	m, _ := newManager(t, itinerary.PolicyMove, x)

	o, err := m.Reassign(context.Background(), itinerary.Reassignment{ActivityID: x.ID, Period: "brunch"})

	require.NoError(t, err)
	assert.Equal(t, itinerary.ReasonInvalidPeriod, o.Reason)
}

func TestMove_DragOverDoesNothing(t *testing.T) {
	x := activity("2024-03-01", domain.PeriodMorning, 0, "x")
	y := activity("2024-03-01", domain.PeriodMorning, 1, "y")
	m, _ := newManager(t, itinerary.PolicyMove, x, y)

	require.False(t, m.BeginDrag(x.ID).Rejected())
	o := m.DragOver(y.ID)

	assert.False(t, o.Changed)
	assert.Equal(t, []int{0, 1}, orders(m.Activities()))
}

// ---- PolicyReorder -----------------------------------------------------------

func TestReorder_DragOverMovesLiveWithoutPushing(t *testing.T) {
	a := activity("2024-03-01", domain.PeriodMorning, 0, "a")
	b := activity("2024-03-01", domain.PeriodMorning, 1, "b")
	c := activity("2024-03-01", domain.PeriodMorning, 2, "c")
	m, up := newManager(t, itinerary.PolicyReorder, a, b, c)

	require.False(t, m.BeginDrag(c.ID).Rejected())
	o := m.DragOver(a.ID)

	assert.True(t, o.Changed)
	assert.Equal(t, []string{"c", "a", "b"}, descriptions(m.Slots()[0].Morning))
	assert.Equal(t, []int{0, 1, 2}, orders(m.Slots()[0].Morning))
	assert.Empty(t, up.pushes, "drag-over must not push")

	o, err := m.Drop(context.Background(), "", "")

	require.NoError(t, err)
	assert.True(t, o.Changed)
	require.Len(t, up.pushes, 1)
	assert.Equal(t, 0, find(t, up.last(), c.ID).Order)
	assert.Equal(t, 2, find(t, up.last(), b.ID).Order)
}

func TestReorder_DraggingDownPlacesAfterTarget(t *testing.T) {
	a := activity("2024-03-01", domain.PeriodNight, 0, "a")
	b := activity("2024-03-01", domain.PeriodNight, 1, "b")
	c := activity("2024-03-01", domain.PeriodNight, 2, "c")
	m, _ := newManager(t, itinerary.PolicyReorder, a, b, c)

	m.BeginDrag(a.ID)
	m.DragOver(b.ID)
	assert.Equal(t, []string{"b", "a", "c"}, descriptions(m.Slots()[0].Night))

	m.DragOver(c.ID)
	assert.Equal(t, []string{"b", "c", "a"}, descriptions(m.Slots()[0].Night))
}

func TestReorder_CompactsGapsInSlot(t *testing.T) {
	a := activity("2024-03-02", domain.PeriodAfternoon, 0, "a")
	b := activity("2024-03-02", domain.PeriodAfternoon, 5, "b")
	c := activity("2024-03-02", domain.PeriodAfternoon, 9, "c")
	other := activity("2024-03-02", domain.PeriodMorning, 7, "other")
	m, _ := newManager(t, itinerary.PolicyReorder, c, other, a, b)

	m.BeginDrag(b.ID)
	m.DragOver(a.ID)

	slot := m.Slots()[1].Afternoon
	assert.Equal(t, []string{"b", "a", "c"}, descriptions(slot))
	assert.Equal(t, []int{0, 1, 2}, orders(slot))
	assert.Equal(t, 7, find(t, m.Activities(), other.ID).Order, "other slots untouched")
}

func TestReorder_AcrossSlotsRejected(t *testing.T) {
	a := activity("2024-03-01", domain.PeriodMorning, 0, "a")
	b := activity("2024-03-01", domain.PeriodNight, 0, "b")
	m, up := newManager(t, itinerary.PolicyReorder, a, b)

	o, err := m.Reassign(context.Background(), itinerary.Reassignment{ActivityID: a.ID, DropTargetID: b.ID})

	require.NoError(t, err)
	assert.Equal(t, itinerary.ReasonDifferentSlot, o.Reason)
	assert.Equal(t, a, find(t, m.Activities(), a.ID))
	assert.Empty(t, up.pushes)
}

func TestReorder_ReassignToOtherSlotRejected(t *testing.T) {
	a := activity("2024-03-01", domain.PeriodMorning, 0, "a")
	b := activity("2024-03-01", domain.PeriodMorning, 1, "b")
	tests := []struct {
		name string
		in   itinerary.Reassignment
		want itinerary.Reason
	}{
		{"other period", itinerary.Reassignment{ActivityID: a.ID, Period: domain.PeriodNight}, itinerary.ReasonDifferentSlot},
		{"other date", itinerary.Reassignment{ActivityID: a.ID, Date: "2024-03-02"}, itinerary.ReasonDifferentSlot},
		{"other period with target", itinerary.Reassignment{ActivityID: b.ID, DropTargetID: a.ID, Period: domain.PeriodAfternoon}, itinerary.ReasonDifferentSlot},
		{"invalid period", itinerary.Reassignment{ActivityID: a.ID, Period: "brunch"}, itinerary.ReasonInvalidPeriod},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, up := newManager(t, itinerary.PolicyReorder, a, b)
			before := m.Activities()

			o, err := m.Reassign(context.Background(), tt.in)

			require.NoError(t, err)
			assert.False(t, o.Changed)
			assert.Equal(t, tt.want, o.Reason)
			assert.Equal(t, before, m.Activities())
			assert.Empty(t, up.pushes)
			_, dragging := m.Dragging()
			assert.False(t, dragging)
		})
	}
}

func TestReorder_ReassignCommitsOnce(t *testing.T) {
	a := activity("2024-03-03", domain.PeriodMorning, 0, "a")
	b := activity("2024-03-03", domain.PeriodMorning, 1, "b")
	m, up := newManager(t, itinerary.PolicyReorder, a, b)

	o, err := m.Reassign(context.Background(), itinerary.Reassignment{ActivityID: b.ID, DropTargetID: a.ID})

	require.NoError(t, err)
	assert.True(t, o.Changed)
	assert.Len(t, up.pushes, 1)
	assert.Equal(t, []string{"b", "a"}, descriptions(m.Slots()[2].Morning))
}

func TestReorder_DropWithoutMovementDoesNotPush(t *testing.T) {
	a := activity("2024-03-01", domain.PeriodMorning, 0, "a")
	m, up := newManager(t, itinerary.PolicyReorder, a)

	m.BeginDrag(a.ID)
	m.DragOver(a.ID)
	o, err := m.Drop(context.Background(), "2024-03-01", domain.PeriodNight)

	require.NoError(t, err)
	assert.False(t, o.Changed)
	assert.Empty(t, up.pushes)
	assert.Equal(t, a, m.Activities()[0])
}

// ---- drag session (both policies) ------------------------------------------

func TestCancelDrag_RestoresPreDragList(t *testing.T) {
	for _, policy := range []itinerary.Policy{itinerary.PolicyMove, itinerary.PolicyReorder} {
		t.Run(string(policy), func(t *testing.T) {
			a := activity("2024-03-01", domain.PeriodMorning, 0, "a")
			b := activity("2024-03-01", domain.PeriodMorning, 1, "b")
			c := activity("2024-03-01", domain.PeriodMorning, 2, "c")
			m, up := newManager(t, policy, a, b, c)
			before := m.Activities()

			require.False(t, m.BeginDrag(c.ID).Rejected())
			m.DragOver(a.ID)
			o := m.CancelDrag()

			assert.False(t, o.Rejected())
			assert.Equal(t, before, m.Activities())
			assert.Empty(t, up.pushes)
			_, dragging := m.Dragging()
			assert.False(t, dragging)
		})
	}
}

func TestDragSession_Guards(t *testing.T) {
	a := activity("2024-03-01", domain.PeriodMorning, 0, "a")
	m, _ := newManager(t, itinerary.PolicyReorder, a)
	ctx := context.Background()

	assert.Equal(t, itinerary.ReasonNoDrag, m.DragOver(a.ID).Reason)
	assert.Equal(t, itinerary.ReasonNoDrag, m.CancelDrag().Reason)
	o, err := m.Drop(ctx, "2024-03-01", domain.PeriodNight)
	require.NoError(t, err)
	assert.Equal(t, itinerary.ReasonNoDrag, o.Reason)

	assert.Equal(t, itinerary.ReasonUnknownActivity, m.BeginDrag(uuid.New()).Reason)

	require.False(t, m.BeginDrag(a.ID).Rejected())
	id, dragging := m.Dragging()
	assert.True(t, dragging)
	assert.Equal(t, a.ID, id)
	assert.Equal(t, itinerary.ReasonDragInProgress, m.BeginDrag(a.ID).Reason)
	assert.Equal(t, itinerary.ReasonUnknownActivity, m.DragOver(uuid.New()).Reason)

	_, o, err = m.Create(ctx, "2024-03-01", domain.PeriodNight, "blocked")
	require.NoError(t, err)
	assert.Equal(t, itinerary.ReasonDragInProgress, o.Reason)

	o, err = m.Delete(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, itinerary.ReasonDragInProgress, o.Reason)
}

func TestReassign_UnknownActivityOrTarget(t *testing.T) {
	a := activity("2024-03-01", domain.PeriodMorning, 0, "a")
	m, _ := newManager(t, itinerary.PolicyMove, a)
	ctx := context.Background()

	o, err := m.Reassign(ctx, itinerary.Reassignment{ActivityID: uuid.New(), Period: domain.PeriodNight})
	require.NoError(t, err)
	assert.Equal(t, itinerary.ReasonUnknownActivity, o.Reason)

	o, err = m.Reassign(ctx, itinerary.Reassignment{ActivityID: a.ID, DropTargetID: uuid.New()})
	require.NoError(t, err)
	assert.Equal(t, itinerary.ReasonUnknownActivity, o.Reason)
	_, dragging := m.Dragging()
	assert.False(t, dragging)
}
