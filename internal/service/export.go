package service

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/itinerary"
	"github.com/pkordes/trip-planner/internal/repo"
)

// ExportService assembles a flat export of a trip's itinerary.
type ExportService struct {
	trips repo.TripRepo
}

// NewExportService constructs an ExportService backed by the provided repo.
func NewExportService(trips repo.TripRepo) *ExportService {
	return &ExportService{trips: trips}
}

// Export returns one ExportRow per activity on the trip, ordered by date,
// then period (morning, afternoon, night), then order. Activities whose date
// falls outside the trip's current range are included with InRange false.
// A trip with no activities yields an empty, non-nil slice.
func (s *ExportService) Export(ctx context.Context, tripID uuid.UUID) ([]domain.ExportRow, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}

	inRange := make(map[string]bool)
	for _, d := range itinerary.DateRange(trip.StartDate, trip.EndDate) {
		inRange[d] = true
	}

	acts := slices.Clone(trip.Activities)
	slices.SortStableFunc(acts, func(a, b domain.Activity) int {
		return cmp.Or(
			cmp.Compare(a.Date, b.Date),
			cmp.Compare(periodRank(a.Period), periodRank(b.Period)),
			cmp.Compare(a.Order, b.Order),
		)
	})

	rows := make([]domain.ExportRow, 0, len(acts))
	for _, a := range acts {
		rows = append(rows, domain.ExportRow{
			TripID:        trip.ID.String(),
			TripName:      trip.Name,
			TripStartDate: itinerary.FormatDate(trip.StartDate),
			TripEndDate:   itinerary.FormatDate(trip.EndDate),
			ActivityID:    a.ID.String(),
			Date:          a.Date,
			Period:        a.Period,
			Order:         a.Order,
			Description:   a.Description,
			InRange:       inRange[a.Date],
		})
	}
	return rows, nil
}

// periodRank sorts unknown periods after the known ones.
func periodRank(p domain.Period) int {
	if i := slices.Index(domain.Periods, p); i >= 0 {
		return i
	}
	return len(domain.Periods)
}
