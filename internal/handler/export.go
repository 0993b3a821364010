// Package handler — export.go implements GET /trips/export.
// Returns the owner's trips as a flat table, one row per itinerary day.
// Supports content negotiation via ?format=csv (CSV) or default (JSON).
package handler

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"
	"strings"

	"github.com/travelbuddy/backend/internal/domain"
	"github.com/travelbuddy/backend/internal/middleware"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"trip_id", "destination", "duration", "number_of_travelers",
	"overall_cost", "cost_per_traveler", "planned_date",
	"day", "activities",
}

// exportRow is the JSON shape of one export row.
type exportRow struct {
	TripID            string   `json:"trip_id"`
	Destination       string   `json:"destination"`
	Duration          float64  `json:"duration"`
	NumberOfTravelers int      `json:"number_of_travelers"`
	OverallCost       float64  `json:"overall_cost"`
	CostPerTraveler   float64  `json:"cost_per_traveler"`
	PlannedDate       string   `json:"planned_date"`
	Day               int      `json:"day,omitempty"`
	Activities        []string `json:"activities,omitempty"`
}

// GetExport handles GET /trips/export.
// Use ?format=csv to receive CSV; default is JSON.
func (s *Server) GetExport(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.EmailFromContext(r.Context())
	if !ok {
		http.Error(w, "missing identity", http.StatusUnauthorized)
		return
	}

	rows, err := s.trips.ExportRows(r.Context(), email)
	if err != nil {
		writeError(w, err)
		return
	}

	if r.URL.Query().Get("format") == "csv" {
		writeCSV(w, rows)
		return
	}

	out := make([]exportRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, exportRow(row))
	}
	writeJSON(w, http.StatusOK, out)
}

// writeCSV encodes the rows as CSV. Activities within a row are
// pipe-separated ("|") to keep each day on a single CSV line.
func writeCSV(w http.ResponseWriter, rows []domain.ExportRow) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	//nolint:errcheck — bytes.Buffer writes never fail.
	cw.Write(csvHeaders)
	for _, r := range rows {
		day := ""
		if r.Day > 0 {
			day = strconv.Itoa(r.Day)
		}
		//nolint:errcheck
		cw.Write([]string{
			r.TripID,
			r.Destination,
			strconv.FormatFloat(r.Duration, 'f', -1, 64),
			strconv.Itoa(r.NumberOfTravelers),
			strconv.FormatFloat(r.OverallCost, 'f', 2, 64),
			strconv.FormatFloat(r.CostPerTraveler, 'f', 2, 64),
			r.PlannedDate,
			day,
			strings.Join(r.Activities, "|"),
		})
	}
	cw.Flush()

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="trips.csv"`)
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck
	w.Write(buf.Bytes())
}
