// Package itinerary produces and repairs day-by-day trip plans.
// The Generator turns trip parameters into a prompt, sends it to a text
// backend in a single round trip, and parses the reply; Repair then coerces
// the parsed object into a structurally valid plan. Retries, if any, belong
// to the caller.
package itinerary

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/travelbuddy/backend/internal/domain"
)

// Request carries the parameters a plan is generated from.
// Repair falls back to these values when the model drops a top-level field.
type Request struct {
	Destination       string
	Duration          float64
	NumberOfTravelers int
	Budget            float64
}

// Backend is the single-shot text-completion dependency.
// Implemented by OpenAIBackend in production and by stubs in tests.
type Backend interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Generator builds prompts and parses model replies.
type Generator struct {
	backend Backend
}

// NewGenerator constructs a Generator backed by the provided Backend.
func NewGenerator(b Backend) *Generator {
	return &Generator{backend: b}
}

const generateTemplate = `You are a professional travel planner.
Create a detailed day-by-day travel itinerary for a trip to %s lasting %g days,
for %d people, with a total budget of $%g.
Include morning, afternoon and evening activities each day.
Do not include hotel or restaurant recommendations.
Only list activities to do along with their cost per traveler.

Output the result as valid JSON with exactly this shape and nothing else:
{
  "destination": "%s",
  "duration": %g,
  "number_of_travelers": %d,
  "budget": %g,
  "itinerary": [
    {"day": 1, "activities": ["...", "..."]}
  ]
}`

const regenerateTemplate = `You are a professional travel planner. The user previously asked you to
generate a day-by-day itinerary, but they did not like it. Modify or
regenerate the itinerary based on their feedback.

-------------------------
PREVIOUS ITINERARY
%s
-------------------------
USER FEEDBACK
%s
-------------------------
TRIP DETAILS
Destination: %s
Duration: %g days
Number of travelers: %d
Total budget: $%g
-------------------------
INSTRUCTIONS
- Address the user's feedback.
- You MUST respect the trip details (destination, duration, travelers, budget).
- Do NOT include hotels or restaurants.
- For each day, include morning, afternoon, and evening activities.
- Each activity MUST include a cost per traveler.
- Make the new itinerary meaningfully different from the previous one.

Output the result as valid JSON with exactly this shape and nothing else:
{
  "destination": "%s",
  "duration": %g,
  "number_of_travelers": %d,
  "budget": %g,
  "itinerary": [
    {"day": 1, "activities": ["...", "..."]}
  ]
}

Only produce JSON. No explanations, no commentary.`

// Generate asks the model for a fresh plan and returns the parsed top-level
// object. The reply may be wrapped in ``` fences; they are stripped before
// parsing. Unparseable text is fatal to the call and surfaces as
// domain.ErrGeneration — structurally wrong but parseable JSON is Repair's
// job, not an error here.
func (g *Generator) Generate(ctx context.Context, req Request) (map[string]any, error) {
	prompt := fmt.Sprintf(generateTemplate,
		req.Destination, req.Duration, req.NumberOfTravelers, req.Budget,
		req.Destination, req.Duration, req.NumberOfTravelers, req.Budget)
	return g.complete(ctx, prompt)
}

// Regenerate asks the model to revise a previously generated plan given
// free-text feedback, constrained to the trip's existing parameters.
func (g *Generator) Regenerate(ctx context.Context, prev domain.Trip, feedback string) (map[string]any, error) {
	previous, err := json.Marshal(prev.GeneratedItinerary)
	if err != nil {
		return nil, fmt.Errorf("itinerary.Generator.Regenerate: %w", err)
	}
	prompt := fmt.Sprintf(regenerateTemplate,
		previous, feedback,
		prev.Destination, prev.Duration, prev.NumberOfTravelers, prev.OverallCost,
		prev.Destination, prev.Duration, prev.NumberOfTravelers, prev.OverallCost)
	return g.complete(ctx, prompt)
}

func (g *Generator) complete(ctx context.Context, prompt string) (map[string]any, error) {
	raw, err := g.backend.Complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: backend: %v", domain.ErrGeneration, err)
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(stripFences(raw)), &data); err != nil {
		return nil, fmt.Errorf("%w: parse reply: %v", domain.ErrGeneration, err)
	}
	return data, nil
}

// stripFences removes markdown code-fence markers the model sometimes wraps
// its JSON reply in.
func stripFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}
