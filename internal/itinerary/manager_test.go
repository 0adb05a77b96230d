package itinerary_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/itinerary"
)

// recordingUpdater keeps every list pushed to it and can be told to fail.
type recordingUpdater struct {
	pushes [][]domain.Activity
	err    error
}

func (r *recordingUpdater) UpdateActivities(_ context.Context, _ uuid.UUID, acts []domain.Activity) error {
	r.pushes = append(r.pushes, acts)
	return r.err
}

func (r *recordingUpdater) last() []domain.Activity {
	if len(r.pushes) == 0 {
		return nil
	}
	return r.pushes[len(r.pushes)-1]
}

var _ itinerary.Updater = (*recordingUpdater)(nil)

// tripFixture spans 2024-03-01 .. 2024-03-03.
func tripFixture(acts ...domain.Activity) domain.Trip {
	return domain.Trip{
		ID:         uuid.New(),
		Name:       "Lisbon",
		StartDate:  time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC),
		Activities: acts,
	}
}

func newManager(t *testing.T, policy itinerary.Policy, acts ...domain.Activity) (*itinerary.Manager, *recordingUpdater) {
	t.Helper()
	up := &recordingUpdater{}
	return itinerary.NewManager(tripFixture(acts...), up, itinerary.WithPolicy(policy)), up
}

func find(t *testing.T, list []domain.Activity, id uuid.UUID) domain.Activity {
	t.Helper()
	for _, a := range list {
		if a.ID == id {
			return a
		}
	}
	t.Fatalf("activity %s not in list", id)
	return domain.Activity{}
}

func orders(list []domain.Activity) []int {
	out := make([]int, len(list))
	for i, a := range list {
		out[i] = a.Order
	}
	return out
}

// ---- construction ----------------------------------------------------------

func TestNewManager_CopiesActivities(t *testing.T) {
	trip := tripFixture(activity("2024-03-01", domain.PeriodMorning, 0, "coffee"))
	m := itinerary.NewManager(trip, nil)

	trip.Activities[0].Description = "mutated"

	assert.Equal(t, "coffee", m.Activities()[0].Description)
	assert.Equal(t, []string{"2024-03-01", "2024-03-02", "2024-03-03"}, m.Dates())
	assert.Equal(t, itinerary.PolicyMove, m.Policy())
}

func TestManager_SlotsCoverWholeRange(t *testing.T) {
	m, _ := newManager(t, itinerary.PolicyMove)

	slots := m.Slots()

	require.Len(t, slots, 3)
	for _, s := range slots {
		assert.Empty(t, s.Morning)
		assert.Empty(t, s.Afternoon)
		assert.Empty(t, s.Night)
	}
}

// ---- Create ----------------------------------------------------------------

func TestCreate_AssignsSequentialOrders(t *testing.T) {
	m, up := newManager(t, itinerary.PolicyMove)
	ctx := context.Background()

	var got []int
	for _, desc := range []string{"b", "a", "c"} {
		a, o, err := m.Create(ctx, "2024-03-01", domain.PeriodMorning, desc)
		require.NoError(t, err)
		require.True(t, o.Changed)
		got = append(got, a.Order)
	}

	assert.Equal(t, []int{0, 1, 2}, got)
	assert.Len(t, up.pushes, 3)
	assert.Len(t, up.last(), 3)
}

func TestCreate_OrderFollowsHighestInSlot(t *testing.T) {
	m, _ := newManager(t, itinerary.PolicyMove,
		activity("2024-03-01", domain.PeriodNight, 0, "dinner"),
		activity("2024-03-01", domain.PeriodNight, 4, "bar"),
		activity("2024-03-02", domain.PeriodNight, 9, "other day"),
	)

	a, _, err := m.Create(context.Background(), "2024-03-01", domain.PeriodNight, "club")

	require.NoError(t, err)
	assert.Equal(t, 5, a.Order)
}

func TestCreate_TrimsDescriptionAndAssignsID(t *testing.T) {
	m, _ := newManager(t, itinerary.PolicyMove)

	a, _, err := m.Create(context.Background(), "2024-03-02", domain.PeriodAfternoon, "  tram 28  ")

	require.NoError(t, err)
	assert.Equal(t, "tram 28", a.Description)
	assert.NotEqual(t, uuid.Nil, a.ID)
	assert.Equal(t, "2024-03-02", a.Date)
	assert.Equal(t, domain.PeriodAfternoon, a.Period)
}

func TestCreate_EmptyDescriptionIsIdempotentNoOp(t *testing.T) {
	m, up := newManager(t, itinerary.PolicyMove, activity("2024-03-01", domain.PeriodMorning, 0, "x"))

	for _, desc := range []string{"", "   ", "\t\n", ""} {
		_, o, err := m.Create(context.Background(), "2024-03-01", domain.PeriodMorning, desc)
		require.NoError(t, err)
		assert.False(t, o.Changed)
		assert.Equal(t, itinerary.ReasonEmptyDescription, o.Reason)
	}

	assert.Len(t, m.Activities(), 1)
	assert.Empty(t, up.pushes)
}

func TestCreate_RejectsBadTarget(t *testing.T) {
	tests := []struct {
		name   string
		date   string
		period domain.Period
		want   itinerary.Reason
	}{
		{"missing date", "", domain.PeriodMorning, itinerary.ReasonMissingDate},
		{"before range", "2024-02-29", domain.PeriodMorning, itinerary.ReasonDateOutOfRange},
		{"after range", "2024-03-04", domain.PeriodMorning, itinerary.ReasonDateOutOfRange},
		{"unknown period", "2024-03-01", domain.Period("evening"), itinerary.ReasonInvalidPeriod},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, up := newManager(t, itinerary.PolicyMove)

			_, o, err := m.Create(context.Background(), tt.date, tt.period, "walk")

			require.NoError(t, err)
			assert.True(t, o.Rejected())
			assert.Equal(t, tt.want, o.Reason)
			assert.Empty(t, m.Activities())
			assert.Empty(t, up.pushes)
		})
	}
}

func TestCreate_SkipsCollidingIDs(t *testing.T) {
	existing := activity("2024-03-01", domain.PeriodMorning, 0, "x")
	fresh := uuid.New()
	ids := []uuid.UUID{existing.ID, uuid.Nil, fresh}
	next := func() uuid.UUID {
		id := ids[0]
		ids = ids[1:]
		return id
	}
	m := itinerary.NewManager(tripFixture(existing), nil, itinerary.WithIDGenerator(next))

	a, _, err := m.Create(context.Background(), "2024-03-01", domain.PeriodMorning, "y")

	require.NoError(t, err)
	assert.Equal(t, fresh, a.ID)
}

func TestCreate_PushFailureKeepsOptimisticState(t *testing.T) {
	m, up := newManager(t, itinerary.PolicyMove)
	up.err = errors.New("network down")

	a, o, err := m.Create(context.Background(), "2024-03-01", domain.PeriodMorning, "walk")

	require.Error(t, err)
	assert.ErrorIs(t, err, up.err)
	assert.True(t, o.Changed)
	require.Len(t, m.Activities(), 1)
	assert.Equal(t, a.ID, m.Activities()[0].ID)
}

// ---- Delete ----------------------------------------------------------------

func TestDelete_LeavesOrderGaps(t *testing.T) {
	a0 := activity("2024-03-01", domain.PeriodMorning, 0, "a")
	a1 := activity("2024-03-01", domain.PeriodMorning, 1, "b")
	a2 := activity("2024-03-01", domain.PeriodMorning, 2, "c")
	m, up := newManager(t, itinerary.PolicyMove, a0, a1, a2)

	o, err := m.Delete(context.Background(), a1.ID)

	require.NoError(t, err)
	assert.True(t, o.Changed)
	assert.Equal(t, []int{0, 2}, orders(m.Activities()))
	assert.Equal(t, []int{0, 2}, orders(up.last()))
	assert.Equal(t, []string{"a", "c"}, descriptions(m.Slots()[0].Morning))
}

func TestDelete_UnknownIDIsNoOp(t *testing.T) {
	m, up := newManager(t, itinerary.PolicyMove, activity("2024-03-01", domain.PeriodMorning, 0, "a"))

	o, err := m.Delete(context.Background(), uuid.New())

	require.NoError(t, err)
	assert.False(t, o.Changed)
	assert.Equal(t, itinerary.ReasonUnknownActivity, o.Reason)
	assert.Len(t, m.Activities(), 1)
	assert.Empty(t, up.pushes)
}
