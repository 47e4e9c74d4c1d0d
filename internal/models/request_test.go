package models_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wildpass/flightsearch/internal/models"
)

// TestSearchRequestValidate verifies required fields and the round-trip
// default.
func TestSearchRequestValidate(t *testing.T) {
	req := models.SearchRequest{
		Origins:       []string{"DEN"},
		Destinations:  []string{"LAS"},
		DepartureDate: "2026-03-15",
	}
	require.NoError(t, req.Validate())
	require.Equal(t, models.TripTypeRoundTrip, req.TripType, "trip type defaults to round-trip")

	missing := models.SearchRequest{Destinations: []string{"LAS"}, DepartureDate: "2026-03-15"}
	require.ErrorIs(t, missing.Validate(), models.ErrMissingOrigins)

	missing = models.SearchRequest{Origins: []string{"DEN"}, DepartureDate: "2026-03-15"}
	require.ErrorIs(t, missing.Validate(), models.ErrMissingDestinations)

	missing = models.SearchRequest{Origins: []string{"DEN"}, Destinations: []string{"LAS"}}
	require.ErrorIs(t, missing.Validate(), models.ErrMissingDepartureDate)
}

// TestTripPlanRequestValidate verifies required fields and unit defaults.
func TestTripPlanRequestValidate(t *testing.T) {
	req := models.TripPlanRequest{
		Origins:       []string{"DEN"},
		Destinations:  []string{"LAS"},
		DepartureDate: "2026-03-15",
		TripLength:    5,
	}
	require.NoError(t, req.Validate())
	require.Equal(t, models.UnitDays, req.TripLengthUnit)
	require.Equal(t, models.UnitDays, req.MaxTripDurationUnit)

	missing := models.TripPlanRequest{
		Origins:       []string{"DEN"},
		Destinations:  []string{"LAS"},
		DepartureDate: "2026-03-15",
	}
	require.ErrorIs(t, missing.Validate(), models.ErrMissingTripLength)

	hours := models.TripPlanRequest{
		Origins:        []string{"DEN"},
		Destinations:   []string{"LAS"},
		DepartureDate:  "2026-03-15",
		TripLength:     36,
		TripLengthUnit: models.UnitHours,
	}
	require.NoError(t, hours.Validate())
	require.Equal(t, models.UnitHours, hours.TripLengthUnit, "explicit unit is preserved")
}
