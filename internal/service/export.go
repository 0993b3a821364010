package service

import (
	"context"
	"fmt"

	"github.com/travelbuddy/backend/internal/domain"
)

// ExportRows assembles a flat export of the owner's trips: one row per
// itinerary day, trip fields repeated on each. Trips without a generated
// itinerary contribute one row with zero values for the day fields.
func (s *TripService) ExportRows(ctx context.Context, ownerEmail string) ([]domain.ExportRow, error) {
	trips, err := s.trips.ListByOwner(ctx, ownerEmail)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.ExportRows: %w", err)
	}

	rows := make([]domain.ExportRow, 0, len(trips))
	for _, t := range trips {
		base := domain.ExportRow{
			TripID:            t.TripID,
			Destination:       t.Destination,
			Duration:          t.Duration,
			NumberOfTravelers: t.NumberOfTravelers,
			OverallCost:       t.OverallCost,
			CostPerTraveler:   t.CostPerTraveler,
			PlannedDate:       t.PlannedDateTime.UTC().Format("2006-01-02"),
		}
		if len(t.GeneratedItinerary) == 0 {
			rows = append(rows, base)
			continue
		}
		for _, d := range t.GeneratedItinerary {
			row := base
			row.Day = d.Day
			row.Activities = d.Activities
			rows = append(rows, row)
		}
	}
	return rows, nil
}
