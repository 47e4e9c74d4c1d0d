package providers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wildpass/flightsearch/internal/models"
)

// TestMockSearch_generatesRequestedRoutes verifies generated legs follow
// the requested routes and carry complete canonical fields.
func TestMockSearch_generatesRequestedRoutes(t *testing.T) {
	source := NewMockSource(42, "F9", staticBlackout{})

	legs, err := source.Search(context.Background(), models.SearchRequest{
		Origins:       []string{"DEN"},
		Destinations:  []string{"LAS", "PHX"},
		TripType:      models.TripTypeOneWay,
		DepartureDate: "2026-03-15",
	})

	require.NoError(t, err)
	require.NotEmpty(t, legs)

	routes := make(map[string]bool)
	for _, leg := range legs {
		routes[leg.Origin+"-"+leg.Destination] = true

		require.Equal(t, "mock", leg.Source)
		require.Equal(t, "DEN", leg.Origin)
		require.Equal(t, "2026-03-15", leg.DepartureDate)
		require.NotEmpty(t, leg.ID)
		require.NotEmpty(t, leg.DepartureTime)
		require.NotEmpty(t, leg.ArrivalTime)
		require.GreaterOrEqual(t, leg.DurationMinutes, 120)
		require.NotNil(t, leg.Price)
		require.NotNil(t, leg.SeatsRemaining)
		require.Equal(t, "Frontier Airlines", leg.Airline)
		require.Regexp(t, `^F9\d{4}$`, leg.FlightNumber)
	}
	require.True(t, routes["DEN-LAS"])
	require.True(t, routes["DEN-PHX"])
}

// TestMockSearch_deterministicWithSeed verifies that two sources seeded
// identically generate identical pools apart from the random leg IDs.
func TestMockSearch_deterministicWithSeed(t *testing.T) {
	req := models.SearchRequest{
		Origins:       []string{"DEN"},
		Destinations:  []string{"LAS"},
		TripType:      models.TripTypeOneWay,
		DepartureDate: "2026-03-15",
	}

	a, err := NewMockSource(7, "F9", staticBlackout{}).Search(context.Background(), req)
	require.NoError(t, err)
	b, err := NewMockSource(7, "F9", staticBlackout{}).Search(context.Background(), req)
	require.NoError(t, err)

	require.Equal(t, len(a), len(b))
	for i := range a {
		require.Equal(t, a[i].DepartureTime, b[i].DepartureTime)
		require.Equal(t, a[i].DurationMinutes, b[i].DurationMinutes)
		require.Equal(t, *a[i].Price, *b[i].Price)
	}
}

// TestMockSearch_blackoutAnnotation verifies the generator carries the
// evaluator's annotation onto every leg.
func TestMockSearch_blackoutAnnotation(t *testing.T) {
	source := NewMockSource(1, "F9", staticBlackout{affected: true})

	legs, err := source.Search(context.Background(), models.SearchRequest{
		Origins:       []string{"DEN"},
		Destinations:  []string{"LAS"},
		TripType:      models.TripTypeOneWay,
		DepartureDate: "2026-11-26",
	})

	require.NoError(t, err)
	require.NotEmpty(t, legs)
	for _, leg := range legs {
		require.True(t, leg.Blackout.Affected)
	}
}

// TestMockSearch_cancelledContext verifies the generator respects
// cancellation.
func TestMockSearch_cancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewMockSource(1, "F9", staticBlackout{}).Search(ctx, models.SearchRequest{
		Origins:       []string{"DEN"},
		Destinations:  []string{"LAS"},
		TripType:      models.TripTypeOneWay,
		DepartureDate: "2026-03-15",
	})

	require.ErrorIs(t, err, context.Canceled)
}
