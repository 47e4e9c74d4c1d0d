package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wildpass/flightsearch/internal/models"
)

// Epoch seconds for 2026-03-15 06:30 and 07:45 read as wall-clock UTC.
const kiwiPayload = `{
  "data": [
    {
      "price": 48,
      "availability": {"seats": 3},
      "fare": {"category": "M"},
      "return": 0,
      "route": [
        {
          "flyFrom": "DEN",
          "flyTo": "LAS",
          "airline": "F9",
          "flight_no": 1234,
          "dTime": 1773556200,
          "dTimeUTC": 1773581400,
          "aTime": 1773560700,
          "aTimeUTC": 1773585900,
          "equipment": "A320",
          "return": 0
        }
      ]
    }
  ]
}`

// TestKiwiSearch_normalizesLegs verifies Tequila epoch times, seat
// counts, and fare categories map onto the canonical leg.
func TestKiwiSearch_normalizesLegs(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v2/search", r.URL.Path)
		require.Equal(t, "test-key", r.Header.Get("apikey"))
		require.Equal(t, "DEN", r.URL.Query().Get("fly_from"))
		require.Equal(t, "15/03/2026", r.URL.Query().Get("date_from"), "Tequila speaks DD/MM/YYYY")
		require.Equal(t, "oneway", r.URL.Query().Get("flight_type"))
		require.Equal(t, "F9", r.URL.Query().Get("select_airlines"))
		w.Write([]byte(kiwiPayload))
	}))
	defer server.Close()

	source := NewKiwiSource("test-key", "F9", staticBlackout{}, testLogger())
	source.baseURL = server.URL

	legs, err := source.Search(context.Background(), models.SearchRequest{
		Origins:       []string{"DEN"},
		Destinations:  []string{"LAS"},
		TripType:      models.TripTypeOneWay,
		DepartureDate: "2026-03-15",
	})

	require.NoError(t, err)
	require.Len(t, legs, 1)

	leg := legs[0]
	require.Equal(t, "kiwi", leg.Source)
	require.Equal(t, "DEN", leg.Origin)
	require.Equal(t, "LAS", leg.Destination)
	require.Equal(t, 75, leg.DurationMinutes, "duration from UTC epoch difference")
	require.Zero(t, leg.Stops)
	require.Equal(t, "Frontier Airlines", leg.Airline)
	require.Equal(t, "F91234", leg.FlightNumber)
	require.NotNil(t, leg.SeatsRemaining)
	require.Equal(t, 3, *leg.SeatsRemaining)
	require.NotNil(t, leg.Price)
	require.Equal(t, "$48.00", leg.PriceFormatted)
	require.True(t, leg.GoWildEligible, "low fare and last seats both qualify")
	require.False(t, leg.IsRoundTrip)
}

// TestKiwiSearch_invalidDate verifies a malformed departure date fails
// the route rather than hitting the upstream.
func TestKiwiSearch_invalidDate(t *testing.T) {
	source := NewKiwiSource("test-key", "F9", staticBlackout{}, testLogger())

	legs, err := source.Search(context.Background(), models.SearchRequest{
		Origins:       []string{"DEN"},
		Destinations:  []string{"LAS"},
		TripType:      models.TripTypeOneWay,
		DepartureDate: "March 15",
	})

	// Route-level failures are logged and skipped.
	require.NoError(t, err)
	require.Empty(t, legs)
}
