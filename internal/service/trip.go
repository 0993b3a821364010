// Package service contains the business logic for the TravelBuddy API.
// Services validate inputs, enforce business rules, and orchestrate repo
// and generator calls. No queries and no prompts live here — services
// depend on interfaces, not implementations.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/travelbuddy/backend/internal/domain"
	"github.com/travelbuddy/backend/internal/itinerary"
	"github.com/travelbuddy/backend/internal/repo"
)

// defaultGenerationTimeout bounds a single model call. The generative call
// is the dominant latency source of every mutating operation; without a
// bound a hung backend would block the owning request indefinitely.
const defaultGenerationTimeout = 60 * time.Second

// PlanGenerator defines the itinerary production operations the service
// depends on. Satisfied by *itinerary.Generator.
type PlanGenerator interface {
	Generate(ctx context.Context, req itinerary.Request) (map[string]any, error)
	Regenerate(ctx context.Context, prev domain.Trip, feedback string) (map[string]any, error)
}

// TripService orchestrates the trip lifecycle: plan, read, update,
// regenerate, cancel. Every operation is scoped by the owner's email.
//
// Mutations write twice: the trips collection first, then the denormalized
// copy embedded in the user record. The two writes are not atomic — a
// failure between them leaves the representations diverged. The service
// logs the divergence and returns success for the primary write; it never
// rolls back.
type TripService struct {
	trips      repo.TripRepo
	userTrips  repo.UserTripsRepo
	generator  PlanGenerator
	log        *slog.Logger
	genTimeout time.Duration
}

// NewTripService constructs a TripService. A non-positive genTimeout falls
// back to the 60s default.
func NewTripService(trips repo.TripRepo, userTrips repo.UserTripsRepo, g PlanGenerator, log *slog.Logger, genTimeout time.Duration) *TripService {
	if genTimeout <= 0 {
		genTimeout = defaultGenerationTimeout
	}
	if log == nil {
		log = slog.Default()
	}
	return &TripService{
		trips:      trips,
		userTrips:  userTrips,
		generator:  g,
		log:        log,
		genTimeout: genTimeout,
	}
}

// PlanTrip creates a trip for ownerEmail: it rejects a duplicate
// destination, generates and repairs an itinerary, derives the trip ID and
// per-traveler cost, then performs the two-write persistence sequence.
func (s *TripService) PlanTrip(ctx context.Context, ownerEmail string, req domain.PlanTripRequest) (domain.Trip, error) {
	if err := validatePlan(req); err != nil {
		return domain.Trip{}, err
	}

	// Duplicate pre-check. The read and the later insert are separate round
	// trips; the unique (destination, owner_email) index backstops the race.
	_, err := s.trips.GetByDestination(ctx, req.Destination, ownerEmail)
	switch {
	case err == nil:
		return domain.Trip{}, fmt.Errorf("service.TripService.PlanTrip: %w: a trip to %s is already planned", domain.ErrConflict, req.Destination)
	case !errors.Is(err, domain.ErrNotFound):
		return domain.Trip{}, fmt.Errorf("service.TripService.PlanTrip: %w", err)
	}

	genReq := itinerary.Request{
		Destination:       req.Destination,
		Duration:          req.Duration,
		NumberOfTravelers: req.NumberOfTravelers,
		Budget:            req.Budget,
	}
	days, err := s.generate(ctx, genReq)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.PlanTrip: %w", err)
	}

	now := time.Now().UTC()
	planned := req.PlannedDateTime
	if planned.IsZero() {
		planned = now
	}
	trip := domain.Trip{
		TripID:             domain.NewTripID(req.Destination, now),
		OwnerEmail:         ownerEmail,
		Destination:        req.Destination,
		Duration:           req.Duration,
		NumberOfTravelers:  req.NumberOfTravelers,
		OverallCost:        req.Budget,
		CostPerTraveler:    req.Budget / float64(req.NumberOfTravelers),
		PlannedDateTime:    planned,
		GeneratedItinerary: days,
	}

	if err := s.trips.Insert(ctx, trip); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.PlanTrip: %w", err)
	}
	if err := s.userTrips.Push(ctx, ownerEmail, trip.Planned()); err != nil {
		s.logDivergence(ctx, "PlanTrip", trip.TripID, ownerEmail, err)
	}
	return trip, nil
}

// TripsSummary returns the list-view projection of the owner's trips.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) TripsSummary(ctx context.Context, ownerEmail string) ([]domain.TripSummary, error) {
	trips, err := s.trips.ListByOwner(ctx, ownerEmail)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.TripsSummary: %w", err)
	}
	summaries := make([]domain.TripSummary, 0, len(trips))
	for _, t := range trips {
		summaries = append(summaries, domain.TripSummary{
			TripID:      t.TripID,
			Destination: t.Destination,
			Duration:    t.Duration,
			OverallCost: t.OverallCost,
		})
	}
	return summaries, nil
}

// GetTrip returns the trip matching both tripID and ownerEmail.
func (s *TripService) GetTrip(ctx context.Context, tripID, ownerEmail string) (domain.Trip, error) {
	trip, err := s.trips.GetByID(ctx, tripID, ownerEmail)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetTrip: %w", err)
	}
	return trip, nil
}

// UpdateTrip applies a partial update, recomputes the per-traveler cost,
// and regenerates the itinerary from scratch with the resolved parameters —
// an update never patches the old plan.
func (s *TripService) UpdateTrip(ctx context.Context, tripID, ownerEmail string, update domain.TripUpdate) (domain.Trip, error) {
	trip, err := s.trips.GetByID(ctx, tripID, ownerEmail)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.UpdateTrip: %w", err)
	}

	if update.Duration != nil {
		trip.Duration = *update.Duration
	}
	if update.Budget != nil {
		trip.OverallCost = *update.Budget
	}
	if update.NumberOfTravelers != nil {
		trip.NumberOfTravelers = *update.NumberOfTravelers
	}
	if update.PlannedDateTime != nil {
		trip.PlannedDateTime = *update.PlannedDateTime
	}

	if trip.Duration <= 0 {
		return domain.Trip{}, fmt.Errorf("%w: duration must be positive", domain.ErrValidation)
	}
	// Checked before the division ever happens.
	if trip.NumberOfTravelers <= 0 {
		return domain.Trip{}, fmt.Errorf("%w: number_of_travelers must be positive", domain.ErrValidation)
	}
	trip.CostPerTraveler = trip.OverallCost / float64(trip.NumberOfTravelers)

	days, err := s.generate(ctx, itinerary.Request{
		Destination:       trip.Destination,
		Duration:          trip.Duration,
		NumberOfTravelers: trip.NumberOfTravelers,
		Budget:            trip.OverallCost,
	})
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.UpdateTrip: %w", err)
	}
	trip.GeneratedItinerary = days

	if err := s.trips.Update(ctx, trip); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.UpdateTrip: %w", err)
	}
	if err := s.userTrips.Set(ctx, ownerEmail, tripID, trip.Planned()); err != nil {
		s.logDivergence(ctx, "UpdateTrip", tripID, ownerEmail, err)
	}
	return trip, nil
}

// CancelTrip hard-deletes the trip from both representations and returns
// the pre-deletion record for confirmation UIs.
func (s *TripService) CancelTrip(ctx context.Context, tripID, ownerEmail string) (domain.Trip, error) {
	trip, err := s.trips.GetByID(ctx, tripID, ownerEmail)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.CancelTrip: %w", err)
	}
	if err := s.trips.Delete(ctx, tripID, ownerEmail); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.CancelTrip: %w", err)
	}
	if err := s.userTrips.Pull(ctx, ownerEmail, tripID); err != nil {
		s.logDivergence(ctx, "CancelTrip", tripID, ownerEmail, err)
	}
	return trip, nil
}

// RegenerateItinerary produces a revised plan from the stored trip and the
// user's feedback, persists it into both representations, and returns the
// new itinerary. All other trip fields are untouched.
func (s *TripService) RegenerateItinerary(ctx context.Context, tripID, ownerEmail, feedback string) ([]domain.ItineraryDay, error) {
	trip, err := s.trips.GetByID(ctx, tripID, ownerEmail)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.RegenerateItinerary: %w", err)
	}

	gctx, cancel := context.WithTimeout(ctx, s.genTimeout)
	defer cancel()
	data, err := s.generator.Regenerate(gctx, trip, feedback)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.RegenerateItinerary: %w", err)
	}
	days := itinerary.Repair(data, itinerary.Request{
		Destination:       trip.Destination,
		Duration:          trip.Duration,
		NumberOfTravelers: trip.NumberOfTravelers,
		Budget:            trip.OverallCost,
	})
	trip.GeneratedItinerary = days

	if err := s.trips.Update(ctx, trip); err != nil {
		return nil, fmt.Errorf("service.TripService.RegenerateItinerary: %w", err)
	}
	if err := s.userTrips.Set(ctx, ownerEmail, tripID, trip.Planned()); err != nil {
		s.logDivergence(ctx, "RegenerateItinerary", tripID, ownerEmail, err)
	}
	return days, nil
}

// Itinerary returns the stored itinerary of the trip matching both keys.
// Always returns a non-nil slice.
func (s *TripService) Itinerary(ctx context.Context, tripID, ownerEmail string) ([]domain.ItineraryDay, error) {
	trip, err := s.trips.GetByID(ctx, tripID, ownerEmail)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.Itinerary: %w", err)
	}
	if trip.GeneratedItinerary == nil {
		return []domain.ItineraryDay{}, nil
	}
	return trip.GeneratedItinerary, nil
}

// generate runs a fresh model call bounded by the generation timeout and
// repairs its output into a valid day list.
func (s *TripService) generate(ctx context.Context, req itinerary.Request) ([]domain.ItineraryDay, error) {
	gctx, cancel := context.WithTimeout(ctx, s.genTimeout)
	defer cancel()

	data, err := s.generator.Generate(gctx, req)
	if err != nil {
		return nil, err
	}
	return itinerary.Repair(data, req), nil
}

// logDivergence records a failed secondary write. The trip write already
// succeeded, so the operation still reports success to the caller; the user
// record's planned_trips list is stale until repaired out of band.
func (s *TripService) logDivergence(ctx context.Context, op, tripID, ownerEmail string, err error) {
	s.log.WarnContext(ctx, "user planned_trips out of sync with trips collection",
		"op", op,
		"trip_id", tripID,
		"owner_email", ownerEmail,
		"error", err,
	)
}

// validatePlan enforces the PlanTrip input rules.
// NumberOfTravelers must be positive before the cost division is attempted.
func validatePlan(req domain.PlanTripRequest) error {
	if strings.TrimSpace(req.Destination) == "" {
		return fmt.Errorf("%w: destination is required", domain.ErrValidation)
	}
	if req.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive", domain.ErrValidation)
	}
	if req.NumberOfTravelers <= 0 {
		return fmt.Errorf("%w: number_of_travelers must be positive", domain.ErrValidation)
	}
	return nil
}
