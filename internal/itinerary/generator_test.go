package itinerary_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travelbuddy/backend/internal/domain"
	"github.com/travelbuddy/backend/internal/itinerary"
)

// stubBackend is a test double for itinerary.Backend. It records the prompt
// it was called with and replies with a canned string or error.
type stubBackend struct {
	reply  string
	err    error
	prompt string
}

func (b *stubBackend) Complete(_ context.Context, prompt string) (string, error) {
	b.prompt = prompt
	return b.reply, b.err
}

var _ itinerary.Backend = (*stubBackend)(nil)

func genRequest() itinerary.Request {
	return itinerary.Request{
		Destination:       "Paris",
		Duration:          3,
		NumberOfTravelers: 2,
		Budget:            1500,
	}
}

func TestGenerator_Generate_ParsesReply(t *testing.T) {
	b := &stubBackend{reply: `{"destination":"Paris","itinerary":[{"day":1,"activities":["Louvre"]}]}`}
	g := itinerary.NewGenerator(b)

	data, err := g.Generate(context.Background(), genRequest())

	require.NoError(t, err)
	assert.Equal(t, "Paris", data["destination"])
	assert.Len(t, data["itinerary"], 1)
}

func TestGenerator_Generate_StripsCodeFences(t *testing.T) {
	b := &stubBackend{reply: "```json\n{\"itinerary\":[]}\n```"}
	g := itinerary.NewGenerator(b)

	data, err := g.Generate(context.Background(), genRequest())

	require.NoError(t, err)
	assert.Contains(t, data, "itinerary")
}

func TestGenerator_Generate_PromptCarriesParameters(t *testing.T) {
	b := &stubBackend{reply: `{}`}
	g := itinerary.NewGenerator(b)

	_, err := g.Generate(context.Background(), genRequest())

	require.NoError(t, err)
	assert.Contains(t, b.prompt, "Paris")
	assert.Contains(t, b.prompt, "3 days")
	assert.Contains(t, b.prompt, "2 people")
	assert.Contains(t, b.prompt, "$1500")
	// Plans must stay activity-only.
	assert.Contains(t, b.prompt, "Do not include hotel or restaurant recommendations")
}

func TestGenerator_Generate_UnparseableReply(t *testing.T) {
	b := &stubBackend{reply: "Sorry, I can't produce JSON today."}
	g := itinerary.NewGenerator(b)

	_, err := g.Generate(context.Background(), genRequest())

	assert.ErrorIs(t, err, domain.ErrGeneration)
}

func TestGenerator_Generate_BackendError(t *testing.T) {
	b := &stubBackend{err: errors.New("rate limited")}
	g := itinerary.NewGenerator(b)

	_, err := g.Generate(context.Background(), genRequest())

	assert.ErrorIs(t, err, domain.ErrGeneration)
}

func TestGenerator_Regenerate_PromptCarriesFeedbackAndPreviousPlan(t *testing.T) {
	b := &stubBackend{reply: `{"itinerary":[]}`}
	g := itinerary.NewGenerator(b)

	prev := domain.Trip{
		Destination:       "Tokyo",
		Duration:          4,
		NumberOfTravelers: 3,
		OverallCost:       3000,
		GeneratedItinerary: []domain.ItineraryDay{
			{Day: 1, Activities: []string{"Shibuya crossing"}},
		},
	}

	_, err := g.Regenerate(context.Background(), prev, "less walking, more museums")

	require.NoError(t, err)
	assert.Contains(t, b.prompt, "less walking, more museums")
	assert.Contains(t, b.prompt, "Shibuya crossing")
	assert.Contains(t, b.prompt, "Tokyo")
	assert.Contains(t, b.prompt, "$3000")
}
