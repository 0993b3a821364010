package domain

// ExportRow is a single row in the full-data export of a user's trips.
// It is a flat, denormalized view: one row per itinerary day, with trip
// fields repeated for every day of that trip. Trips without a generated
// itinerary yield one row with zero values for the day fields.
//
// Activities is the ordered activity list for the day. Callers that need a
// joined string (e.g. CSV) should join with "|".
type ExportRow struct {
	// Trip fields — repeated for every day of the trip.
	TripID            string
	Destination       string
	Duration          float64
	NumberOfTravelers int
	OverallCost       float64
	CostPerTraveler   float64
	PlannedDate       string // "2006-01-02" formatted date

	// Day fields — zero values when the trip has no itinerary.
	Day        int
	Activities []string
}
