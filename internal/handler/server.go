// Package handler implements the HTTP handlers for the TravelBuddy API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, trip.go, export.go) but all share the same Server struct
// so they can access its dependencies.
//
// The owner's email always comes from the identity middleware — handlers
// never read it from a request body or query string.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/travelbuddy/backend/internal/domain"
)

// TripServicer defines the business operations the trip handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type TripServicer interface {
	PlanTrip(ctx context.Context, ownerEmail string, req domain.PlanTripRequest) (domain.Trip, error)
	TripsSummary(ctx context.Context, ownerEmail string) ([]domain.TripSummary, error)
	GetTrip(ctx context.Context, tripID, ownerEmail string) (domain.Trip, error)
	UpdateTrip(ctx context.Context, tripID, ownerEmail string, update domain.TripUpdate) (domain.Trip, error)
	CancelTrip(ctx context.Context, tripID, ownerEmail string) (domain.Trip, error)
	RegenerateItinerary(ctx context.Context, tripID, ownerEmail, feedback string) ([]domain.ItineraryDay, error)
	Itinerary(ctx context.Context, tripID, ownerEmail string) ([]domain.ItineraryDay, error)
	ExportRows(ctx context.Context, ownerEmail string) ([]domain.ExportRow, error)
}

// Server holds the handler dependencies for all API endpoints.
type Server struct {
	trips TripServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(trips TripServicer) *Server {
	return &Server{trips: trips}
}

// Routes returns the chi router for the API surface. The identity middleware
// guards the /trips subtree; /healthz stays open for load balancers.
func (s *Server) Routes(identity func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)

	r.Route("/trips", func(r chi.Router) {
		r.Use(identity)
		r.Post("/", s.PlanTrip)
		r.Get("/", s.ListTrips)
		r.Get("/export", s.GetExport)
		r.Route("/{tripID}", func(r chi.Router) {
			r.Get("/", s.GetTrip)
			r.Put("/", s.UpdateTrip)
			r.Delete("/", s.CancelTrip)
			r.Get("/itinerary", s.GetItinerary)
			r.Post("/itinerary", s.RegenerateItinerary)
		})
	})

	return r
}
