package itinerary

import (
	"encoding/json"
	"fmt"

	"github.com/travelbuddy/backend/internal/domain"
)

// Repair coerces a parsed model reply into a structurally valid itinerary.
// It never fails: any JSON shape at the itinerary position yields a list
// where every entry has a positional 1-based day number and an activities
// list. The input map is not modified.
//
// Rules, in order:
//  1. Missing top-level fields fall back to the values the plan was
//     requested with; a missing itinerary becomes an empty list.
//  2. An itinerary that is not a list is wrapped into a single day whose
//     one activity is the string form of the value.
//  3. A list entry that is not an object becomes {day: i, activities:
//     [string form]}; an object entry gets day/activities filled in when
//     missing.
//  4. Day numbers from the model are discarded in favor of list position,
//     which keeps days sequential with no gaps or duplicates.
func Repair(data map[string]any, req Request) []domain.ItineraryDay {
	repaired := make(map[string]any, len(data)+5)
	for k, v := range data {
		repaired[k] = v
	}
	fallbacks := map[string]any{
		"destination":         req.Destination,
		"duration":            req.Duration,
		"number_of_travelers": req.NumberOfTravelers,
		"budget":              req.Budget,
	}
	for k, v := range fallbacks {
		if _, ok := repaired[k]; !ok {
			repaired[k] = v
		}
	}
	if _, ok := repaired["itinerary"]; !ok {
		repaired["itinerary"] = []any{}
	}

	entries, isList := repaired["itinerary"].([]any)
	if !isList {
		return []domain.ItineraryDay{{Day: 1, Activities: []string{stringify(repaired["itinerary"])}}}
	}

	days := make([]domain.ItineraryDay, 0, len(entries))
	for i, entry := range entries {
		pos := i + 1
		m, isMap := entry.(map[string]any)
		if !isMap {
			days = append(days, domain.ItineraryDay{Day: pos, Activities: []string{stringify(entry)}})
			continue
		}
		days = append(days, domain.ItineraryDay{Day: pos, Activities: repairActivities(m["activities"])})
	}
	return days
}

// repairActivities coerces the activities field of a day entry into a
// non-nil string slice. Missing or null becomes empty; a non-list value is
// wrapped; non-string list elements are stringified.
func repairActivities(v any) []string {
	if v == nil {
		return []string{}
	}
	list, ok := v.([]any)
	if !ok {
		return []string{stringify(v)}
	}
	out := make([]string, 0, len(list))
	for _, a := range list {
		out = append(out, stringify(a))
	}
	return out
}

// stringify renders a JSON value as the string the model most plausibly
// meant: strings pass through, everything else is re-encoded as JSON.
func stringify(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}
