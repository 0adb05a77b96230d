package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/itinerary"
	"github.com/pkordes/trip-planner/internal/repo"
)

const tracerName = "github.com/pkordes/trip-planner/internal/service"

// ItineraryService applies itinerary operations to stored trips.
// Each call loads the trip, seeds a fresh itinerary.Manager with it, applies
// one operation and lets the Manager push the resulting list back through
// the repo. Concurrent calls on the same trip are last-write-wins.
type ItineraryService struct {
	trips  repo.TripRepo
	policy itinerary.Policy
	logger *slog.Logger
	tracer trace.Tracer
}

// NewItineraryService constructs an ItineraryService. The tracer comes from
// the global OpenTelemetry provider, which is a no-op unless telemetry.Setup
// installed an exporter.
func NewItineraryService(trips repo.TripRepo, policy itinerary.Policy, logger *slog.Logger) *ItineraryService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ItineraryService{
		trips:  trips,
		policy: policy,
		logger: logger,
		tracer: otel.Tracer(tracerName),
	}
}

// Policy returns the drag policy applied to every reassignment.
func (s *ItineraryService) Policy() itinerary.Policy { return s.policy }

// View is the read model of one trip's itinerary.
type View struct {
	TripID uuid.UUID        `json:"trip_id"`
	Policy itinerary.Policy `json:"policy"`
	Dates  []string         `json:"dates"`
	Slots  []itinerary.Slot `json:"slots"`
}

// View returns the per-day slot table for a trip.
// Returns domain.ErrNotFound if the trip does not exist.
func (s *ItineraryService) View(ctx context.Context, tripID uuid.UUID) (View, error) {
	ctx, span := s.start(ctx, "ItineraryService.View", tripID)
	defer span.End()

	m, err := s.manager(ctx, tripID)
	if err != nil {
		return View{}, fail(span, fmt.Errorf("service.ItineraryService.View: %w", err))
	}
	return View{TripID: tripID, Policy: m.Policy(), Dates: m.Dates(), Slots: m.Slots()}, nil
}

// CreateActivity adds an activity to the end of a slot.
// A rejected Outcome (empty description, bad date or period) is not an error.
func (s *ItineraryService) CreateActivity(ctx context.Context, tripID uuid.UUID, date string, period domain.Period, description string) (domain.Activity, itinerary.Outcome, error) {
	ctx, span := s.start(ctx, "ItineraryService.CreateActivity", tripID)
	defer span.End()

	m, err := s.manager(ctx, tripID)
	if err != nil {
		return domain.Activity{}, itinerary.Outcome{}, fail(span, fmt.Errorf("service.ItineraryService.CreateActivity: %w", err))
	}

	a, o, err := m.Create(ctx, date, period, description)
	s.record(ctx, span, "create activity", tripID, o)
	if err != nil {
		return a, o, fail(span, fmt.Errorf("service.ItineraryService.CreateActivity: %w", err))
	}
	if o.Changed {
		span.SetAttributes(attribute.String("activity.id", a.ID.String()))
	}
	return a, o, nil
}

// DeleteActivity removes an activity. Deleting an unknown id is a no-op.
func (s *ItineraryService) DeleteActivity(ctx context.Context, tripID, activityID uuid.UUID) (itinerary.Outcome, error) {
	ctx, span := s.start(ctx, "ItineraryService.DeleteActivity", tripID)
	defer span.End()
	span.SetAttributes(attribute.String("activity.id", activityID.String()))

	m, err := s.manager(ctx, tripID)
	if err != nil {
		return itinerary.Outcome{}, fail(span, fmt.Errorf("service.ItineraryService.DeleteActivity: %w", err))
	}

	o, err := m.Delete(ctx, activityID)
	s.record(ctx, span, "delete activity", tripID, o)
	if err != nil {
		return o, fail(span, fmt.Errorf("service.ItineraryService.DeleteActivity: %w", err))
	}
	return o, nil
}

// ReassignActivity runs one complete drag gesture under the service's policy
// and returns the outcome together with the resulting activity list.
func (s *ItineraryService) ReassignActivity(ctx context.Context, tripID uuid.UUID, r itinerary.Reassignment) (itinerary.Outcome, []domain.Activity, error) {
	ctx, span := s.start(ctx, "ItineraryService.ReassignActivity", tripID)
	defer span.End()
	span.SetAttributes(
		attribute.String("activity.id", r.ActivityID.String()),
		attribute.String("itinerary.policy", string(s.policy)),
	)

	m, err := s.manager(ctx, tripID)
	if err != nil {
		return itinerary.Outcome{}, nil, fail(span, fmt.Errorf("service.ItineraryService.ReassignActivity: %w", err))
	}

	o, err := m.Reassign(ctx, r)
	s.record(ctx, span, "reassign activity", tripID, o)
	if err != nil {
		return o, m.Activities(), fail(span, fmt.Errorf("service.ItineraryService.ReassignActivity: %w", err))
	}
	return o, m.Activities(), nil
}

// manager loads the trip and seeds a Manager that pushes through the repo.
func (s *ItineraryService) manager(ctx context.Context, tripID uuid.UUID) (*itinerary.Manager, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return nil, err
	}
	return itinerary.NewManager(trip, s.trips, itinerary.WithPolicy(s.policy)), nil
}

func (s *ItineraryService) start(ctx context.Context, name string, tripID uuid.UUID) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, name, trace.WithAttributes(attribute.String("trip.id", tripID.String())))
}

func (s *ItineraryService) record(ctx context.Context, span trace.Span, op string, tripID uuid.UUID, o itinerary.Outcome) {
	span.SetAttributes(
		attribute.Bool("itinerary.changed", o.Changed),
		attribute.String("itinerary.reason", string(o.Reason)),
	)
	if o.Rejected() {
		s.logger.DebugContext(ctx, "itinerary operation rejected",
			"op", op,
			"trip_id", tripID,
			"reason", o.Reason,
		)
	}
}

func fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
