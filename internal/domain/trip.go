// Package domain contains the core data types for the TravelBuddy API.
// It is imported by every other internal package (repo, service, handler)
// and carries no dependency heavier than the uuid entropy helper.
package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ItineraryDay is one entry of a generated day-by-day plan.
// Day is 1-based and sequential within a trip; the repair step renumbers
// entries positionally, so stored plans never have gaps or duplicates.
type ItineraryDay struct {
	Day        int      `bson:"day" json:"day"`
	Activities []string `bson:"activities" json:"activities"`
}

// Trip is a planned vacation owned by one user for one destination.
// TripID and OwnerEmail are immutable after creation. Every lookup and
// mutation is scoped by both — a trip ID alone never authorizes access.
type Trip struct {
	TripID             string         `bson:"trip_id" json:"trip_id"`
	OwnerEmail         string         `bson:"owner_email" json:"owner_email"`
	Destination        string         `bson:"destination" json:"destination"`
	Duration           float64        `bson:"duration" json:"duration"`
	NumberOfTravelers  int            `bson:"number_of_travelers" json:"number_of_travelers"`
	OverallCost        float64        `bson:"overall_cost" json:"overall_cost"`
	CostPerTraveler    float64        `bson:"cost_per_traveler" json:"cost_per_traveler"`
	PlannedDateTime    time.Time      `bson:"planned_date_time" json:"planned_date_time"`
	GeneratedItinerary []ItineraryDay `bson:"generated_itinerary,omitempty" json:"generated_itinerary,omitempty"`
}

// PlannedTrip is the denormalized copy of a Trip embedded in the owning
// user record — every Trip field except the owner email, which is implied
// by the record it lives in. The trips collection is the source of truth;
// this projection is a secondary index kept in sync by the service layer.
type PlannedTrip struct {
	TripID             string         `bson:"trip_id" json:"trip_id"`
	Destination        string         `bson:"destination" json:"destination"`
	Duration           float64        `bson:"duration" json:"duration"`
	NumberOfTravelers  int            `bson:"number_of_travelers" json:"number_of_travelers"`
	OverallCost        float64        `bson:"overall_cost" json:"overall_cost"`
	CostPerTraveler    float64        `bson:"cost_per_traveler" json:"cost_per_traveler"`
	PlannedDateTime    time.Time      `bson:"planned_date_time" json:"planned_date_time"`
	GeneratedItinerary []ItineraryDay `bson:"generated_itinerary,omitempty" json:"generated_itinerary,omitempty"`
}

// Planned returns the embedded projection of t.
func (t Trip) Planned() PlannedTrip {
	return PlannedTrip{
		TripID:             t.TripID,
		Destination:        t.Destination,
		Duration:           t.Duration,
		NumberOfTravelers:  t.NumberOfTravelers,
		OverallCost:        t.OverallCost,
		CostPerTraveler:    t.CostPerTraveler,
		PlannedDateTime:    t.PlannedDateTime,
		GeneratedItinerary: t.GeneratedItinerary,
	}
}

// TripSummary is the list-view projection of a Trip.
type TripSummary struct {
	TripID      string  `json:"trip_id"`
	Destination string  `json:"destination"`
	Duration    float64 `json:"duration"`
	OverallCost float64 `json:"overall_cost"`
}

// PlanTripRequest carries the caller-supplied fields for planning a trip.
// A zero PlannedDateTime defaults to the creation time.
type PlanTripRequest struct {
	Destination       string    `json:"destination"`
	Budget            float64   `json:"budget"`
	Duration          float64   `json:"duration"`
	NumberOfTravelers int       `json:"number_of_travelers"`
	PlannedDateTime   time.Time `json:"planned_date_time,omitempty"`
}

// TripUpdate carries a partial update. Nil fields retain the trip's current
// value; set fields replace it and trigger a fresh itinerary generation.
type TripUpdate struct {
	Duration          *float64   `json:"duration,omitempty"`
	Budget            *float64   `json:"budget,omitempty"`
	NumberOfTravelers *int       `json:"number_of_travelers,omitempty"`
	PlannedDateTime   *time.Time `json:"planned_date_time,omitempty"`
}

// NewTripID derives a trip identifier of the form <DEST3>-<YYMMDD>-<RAND6>,
// e.g. "PAR-251124-A1B2C3". The prefix is the first three letters of the
// destination uppercased (shorter destinations use what they have), the date
// is the creation date, and the suffix comes from a fresh UUID's hex digits.
func NewTripID(destination string, now time.Time) string {
	prefix := strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' {
			return r
		}
		return -1
	}, strings.ToUpper(destination))
	if len(prefix) > 3 {
		prefix = prefix[:3]
	}
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:6]
	return fmt.Sprintf("%s-%s-%s", prefix, now.Format("060102"), suffix)
}
