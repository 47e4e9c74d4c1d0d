package tripplanner_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wildpass/flightsearch/internal/models"
	"github.com/wildpass/flightsearch/internal/tripplanner"
)

func leg(id, depDate, depTime, arrDate, arrTime string, durationMins, stops int, price float64) models.FlightLeg {
	return models.FlightLeg{
		ID:              id,
		Source:          "test",
		Origin:          "DEN",
		Destination:     "LAS",
		DepartureDate:   depDate,
		DepartureTime:   depTime,
		ArrivalDate:     arrDate,
		ArrivalTime:     arrTime,
		DurationMinutes: durationMins,
		Stops:           stops,
		Price:           &price,
	}
}

// TestFindOptimalTrips_closestDurationFirst verifies that candidates are
// ordered by how closely elapsed time from outbound departure to return
// arrival matches the target trip length.
func TestFindOptimalTrips_closestDurationFirst(t *testing.T) {
	outbound := []models.FlightLeg{
		leg("out", "2026-03-10", "8:00 AM", "2026-03-10", "10:00 AM", 120, 0, 59),
	}
	returns := []models.FlightLeg{
		leg("ret-240", "2026-03-10", "10:00 AM", "2026-03-10", "12:00 PM", 120, 0, 49),
		leg("ret-300", "2026-03-10", "11:00 AM", "2026-03-10", "1:00 PM", 120, 0, 49),
	}

	trips := tripplanner.FindOptimalTrips(outbound, returns, tripplanner.Constraints{
		TripLength:     5,
		TripLengthUnit: models.UnitHours,
	})

	require.Len(t, trips, 2)
	require.Equal(t, "ret-300", trips[0].Return.ID)
	require.Equal(t, 300, trips[0].TotalDurationMinutes)
	require.Equal(t, 0, trips[0].DurationDeltaMinutes)
	require.Equal(t, "ret-240", trips[1].Return.ID)
	require.Equal(t, 60, trips[1].DurationDeltaMinutes)
}

// TestFindOptimalTrips_maxDurationFilter verifies that candidates over the
// optional duration cap are dropped before scoring.
func TestFindOptimalTrips_maxDurationFilter(t *testing.T) {
	outbound := []models.FlightLeg{
		leg("out", "2026-03-10", "8:00 AM", "2026-03-10", "10:00 AM", 120, 0, 59),
	}
	returns := []models.FlightLeg{
		leg("ret-240", "2026-03-10", "10:00 AM", "2026-03-10", "12:00 PM", 120, 0, 49),
		leg("ret-300", "2026-03-10", "11:00 AM", "2026-03-10", "1:00 PM", 120, 0, 49),
	}

	maxHours := 4.0
	trips := tripplanner.FindOptimalTrips(outbound, returns, tripplanner.Constraints{
		TripLength:      5,
		TripLengthUnit:  models.UnitHours,
		MaxDuration:     &maxHours,
		MaxDurationUnit: models.UnitHours,
	})

	require.Len(t, trips, 1)
	require.Equal(t, "ret-240", trips[0].Return.ID)
}

// TestFindOptimalTrips_priceTieBreak verifies that equal-delta candidates
// are ordered by combined price.
func TestFindOptimalTrips_priceTieBreak(t *testing.T) {
	outbound := []models.FlightLeg{
		leg("out-80", "2026-03-10", "8:00 AM", "2026-03-10", "10:00 AM", 120, 0, 80),
		leg("out-50", "2026-03-10", "8:00 AM", "2026-03-10", "10:00 AM", 120, 0, 50),
	}
	returns := []models.FlightLeg{
		leg("ret", "2026-03-10", "11:00 AM", "2026-03-10", "1:00 PM", 120, 0, 30),
	}

	trips := tripplanner.FindOptimalTrips(outbound, returns, tripplanner.Constraints{
		TripLength:     5,
		TripLengthUnit: models.UnitHours,
	})

	require.Len(t, trips, 2)
	require.Equal(t, "out-50", trips[0].Outbound.ID)
	require.InDelta(t, 80.0, trips[0].TotalPrice, 0.001)
	require.Equal(t, "out-80", trips[1].Outbound.ID)
}

// TestFindOptimalTrips_nonstopPreference verifies that the nonstop term
// outranks price only when the preference is set.
func TestFindOptimalTrips_nonstopPreference(t *testing.T) {
	outbound := []models.FlightLeg{
		leg("out-stop", "2026-03-10", "8:00 AM", "2026-03-10", "10:00 AM", 120, 1, 40),
		leg("out-nonstop", "2026-03-10", "8:00 AM", "2026-03-10", "10:00 AM", 120, 0, 90),
	}
	returns := []models.FlightLeg{
		leg("ret", "2026-03-10", "11:00 AM", "2026-03-10", "1:00 PM", 120, 0, 30),
	}

	constraints := tripplanner.Constraints{
		TripLength:     5,
		TripLengthUnit: models.UnitHours,
	}

	trips := tripplanner.FindOptimalTrips(outbound, returns, constraints)
	require.Equal(t, "out-stop", trips[0].Outbound.ID, "cheaper candidate wins without the preference")

	constraints.NonstopPreferred = true
	trips = tripplanner.FindOptimalTrips(outbound, returns, constraints)
	require.Equal(t, "out-nonstop", trips[0].Outbound.ID)
	require.True(t, trips[0].Nonstop)
}

// TestFindOptimalTrips_emptyOutbound verifies that no outbound legs means
// no candidates, regardless of the return pool.
func TestFindOptimalTrips_emptyOutbound(t *testing.T) {
	returns := []models.FlightLeg{
		leg("ret", "2026-03-10", "11:00 AM", "2026-03-10", "1:00 PM", 120, 0, 30),
	}

	trips := tripplanner.FindOptimalTrips(nil, returns, tripplanner.Constraints{
		TripLength:     5,
		TripLengthUnit: models.UnitHours,
	})

	require.Empty(t, trips)
}

// TestFindOptimalTrips_oneWay verifies the degenerate case: an empty
// return pool yields one-way candidates scored on the outbound leg alone.
func TestFindOptimalTrips_oneWay(t *testing.T) {
	outbound := []models.FlightLeg{
		leg("out-a", "2026-03-10", "8:00 AM", "2026-03-10", "10:00 AM", 120, 0, 59),
		leg("out-b", "2026-03-10", "9:00 AM", "2026-03-10", "2:00 PM", 300, 1, 39),
	}

	trips := tripplanner.FindOptimalTrips(outbound, nil, tripplanner.Constraints{
		TripLength:     2,
		TripLengthUnit: models.UnitHours,
	})

	require.Len(t, trips, 2)
	require.Nil(t, trips[0].Return)
	require.Equal(t, "out-a", trips[0].Outbound.ID)
	require.Equal(t, 120, trips[0].TotalDurationMinutes)
	require.Equal(t, 0, trips[0].DurationDeltaMinutes)
	require.Equal(t, "out-b", trips[1].Outbound.ID)
	require.Equal(t, 180, trips[1].DurationDeltaMinutes)
}

// TestFindOptimalTrips_unparseableInstantsFallBackToLegSums verifies that
// a pair whose endpoints cannot be recombined into instants still scores,
// using the sum of the legs' own durations.
func TestFindOptimalTrips_unparseableInstantsFallBackToLegSums(t *testing.T) {
	outbound := []models.FlightLeg{
		leg("out", "", "morning", "", "noon", 150, 0, 59),
	}
	returns := []models.FlightLeg{
		leg("ret", "", "evening", "", "night", 150, 0, 49),
	}

	trips := tripplanner.FindOptimalTrips(outbound, returns, tripplanner.Constraints{
		TripLength:     5,
		TripLengthUnit: models.UnitHours,
	})

	require.Len(t, trips, 1)
	require.Equal(t, 300, trips[0].TotalDurationMinutes)
	require.Equal(t, 0, trips[0].DurationDeltaMinutes)
}

// TestConstraints_unitConversion verifies day and hour unit handling,
// including fractional day trip lengths.
func TestConstraints_unitConversion(t *testing.T) {
	c := tripplanner.Constraints{TripLength: 5, TripLengthUnit: models.UnitDays}
	require.Equal(t, 5*24*60, c.TargetMinutes())

	c = tripplanner.Constraints{TripLength: 1.5, TripLengthUnit: models.UnitDays}
	require.Equal(t, 2160, c.TargetMinutes())

	c = tripplanner.Constraints{TripLength: 36, TripLengthUnit: models.UnitHours}
	require.Equal(t, 2160, c.TargetMinutes())

	maxDur := 3.0
	c = tripplanner.Constraints{MaxDuration: &maxDur, MaxDurationUnit: models.UnitDays}
	mins, ok := c.MaxMinutes()
	require.True(t, ok)
	require.Equal(t, 3*24*60, mins)

	c = tripplanner.Constraints{}
	_, ok = c.MaxMinutes()
	require.False(t, ok)
}
