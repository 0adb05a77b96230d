package repo

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/internal/domain"
)

// memoryTripRepo keeps trips in a process-local map. It has the same
// semantics as the SQL backends and is used for local development and tests.
type memoryTripRepo struct {
	mu    sync.RWMutex
	trips map[uuid.UUID]domain.Trip
	now   func() time.Time
}

// NewMemoryTripRepo returns an empty in-memory TripRepo.
func NewMemoryTripRepo() TripRepo {
	return &memoryTripRepo{
		trips: make(map[uuid.UUID]domain.Trip),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (r *memoryTripRepo) Create(_ context.Context, trip domain.Trip) (domain.Trip, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	trip = cloneTrip(trip)
	trip.ID = uuid.New()
	trip.CreatedAt = r.now()
	trip.UpdatedAt = trip.CreatedAt
	r.trips[trip.ID] = trip
	return cloneTrip(trip), nil
}

func (r *memoryTripRepo) GetByID(_ context.Context, id uuid.UUID) (domain.Trip, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.trips[id]
	if !ok {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", domain.ErrNotFound)
	}
	return cloneTrip(t), nil
}

func (r *memoryTripRepo) List(_ context.Context) ([]domain.Trip, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sorted(), nil
}

func (r *memoryTripRepo) ListPaged(_ context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := r.sorted()
	total := int64(len(all))
	lo := min(p.Offset(), len(all))
	hi := min(lo+p.Limit, len(all))
	return all[lo:hi], total, nil
}

func (r *memoryTripRepo) Update(_ context.Context, trip domain.Trip) (domain.Trip, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.trips[trip.ID]
	if !ok {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: %w", domain.ErrNotFound)
	}
	stored.Name = trip.Name
	stored.StartDate = trip.StartDate
	stored.EndDate = trip.EndDate
	stored.Destinations = nonNil(slices.Clone(trip.Destinations))
	stored.Notes = trip.Notes
	stored.Budget = trip.Budget.Clone()
	stored.UpdatedAt = r.now()
	r.trips[trip.ID] = stored
	return cloneTrip(stored), nil
}

func (r *memoryTripRepo) UpdateActivities(_ context.Context, id uuid.UUID, activities []domain.Activity) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.trips[id]
	if !ok {
		return fmt.Errorf("repo.TripRepo.UpdateActivities: %w", domain.ErrNotFound)
	}
	stored.Activities = nonNil(slices.Clone(activities))
	stored.UpdatedAt = r.now()
	r.trips[id] = stored
	return nil
}

func (r *memoryTripRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.trips[id]; !ok {
		return fmt.Errorf("repo.TripRepo.Delete: %w", domain.ErrNotFound)
	}
	delete(r.trips, id)
	return nil
}

// sorted returns copies of all trips, newest start date first. Callers hold mu.
func (r *memoryTripRepo) sorted() []domain.Trip {
	out := make([]domain.Trip, 0, len(r.trips))
	for _, t := range r.trips {
		out = append(out, cloneTrip(t))
	}
	slices.SortFunc(out, func(a, b domain.Trip) int {
		if c := b.StartDate.Compare(a.StartDate); c != 0 {
			return c
		}
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID.String(), b.ID.String())
	})
	return out
}
