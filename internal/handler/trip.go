package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/travelbuddy/backend/internal/domain"
	"github.com/travelbuddy/backend/internal/middleware"
)

// feedbackRequest is the body of POST /trips/{tripID}/itinerary.
type feedbackRequest struct {
	Feedback string `json:"feedback"`
}

// PlanTrip handles POST /trips.
func (s *Server) PlanTrip(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.EmailFromContext(r.Context())
	if !ok {
		http.Error(w, "missing identity", http.StatusUnauthorized)
		return
	}

	var req domain.PlanTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeRequestError(w, "invalid request body")
		return
	}

	trip, err := s.trips.PlanTrip(r.Context(), email, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, trip)
}

// ListTrips handles GET /trips. It returns the owner's trip summaries.
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.EmailFromContext(r.Context())
	if !ok {
		http.Error(w, "missing identity", http.StatusUnauthorized)
		return
	}

	summaries, err := s.trips.TripsSummary(r.Context(), email)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summaries)
}

// GetTrip handles GET /trips/{tripID}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.EmailFromContext(r.Context())
	if !ok {
		http.Error(w, "missing identity", http.StatusUnauthorized)
		return
	}

	trip, err := s.trips.GetTrip(r.Context(), chi.URLParam(r, "tripID"), email)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

// UpdateTrip handles PUT /trips/{tripID}. Omitted body fields retain the
// trip's current values; any update regenerates the itinerary.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.EmailFromContext(r.Context())
	if !ok {
		http.Error(w, "missing identity", http.StatusUnauthorized)
		return
	}

	var update domain.TripUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeRequestError(w, "invalid request body")
		return
	}

	trip, err := s.trips.UpdateTrip(r.Context(), chi.URLParam(r, "tripID"), email, update)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

// CancelTrip handles DELETE /trips/{tripID}. The deleted record is returned
// so confirmation UIs can show what was removed.
func (s *Server) CancelTrip(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.EmailFromContext(r.Context())
	if !ok {
		http.Error(w, "missing identity", http.StatusUnauthorized)
		return
	}

	trip, err := s.trips.CancelTrip(r.Context(), chi.URLParam(r, "tripID"), email)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

// GetItinerary handles GET /trips/{tripID}/itinerary.
func (s *Server) GetItinerary(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.EmailFromContext(r.Context())
	if !ok {
		http.Error(w, "missing identity", http.StatusUnauthorized)
		return
	}

	days, err := s.trips.Itinerary(r.Context(), chi.URLParam(r, "tripID"), email)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, days)
}

// RegenerateItinerary handles POST /trips/{tripID}/itinerary. The body
// carries the user's free-text feedback on the previous plan.
func (s *Server) RegenerateItinerary(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.EmailFromContext(r.Context())
	if !ok {
		http.Error(w, "missing identity", http.StatusUnauthorized)
		return
	}

	var req feedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeRequestError(w, "invalid request body")
		return
	}

	days, err := s.trips.RegenerateItinerary(r.Context(), chi.URLParam(r, "tripID"), email, req.Feedback)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, days)
}
