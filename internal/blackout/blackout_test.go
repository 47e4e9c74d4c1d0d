package blackout_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wildpass/flightsearch/internal/blackout"
	"github.com/wildpass/flightsearch/internal/models"
)

func testCalendar() blackout.Calendar {
	return blackout.Calendar{Periods: map[string][]models.BlackoutPeriod{
		"2026": {
			{Start: "2026-11-24", End: "2026-11-30", Description: "Thanksgiving Period"},
			{Start: "2026-12-18", End: "2026-12-31", Description: "Winter Holiday Period"},
		},
		"2027": {
			{Start: "2027-01-01", End: "2027-01-03", Description: "New Year Period"},
		},
	}}
}

// TestEvaluate_inclusiveBoundaries verifies that both endpoints of a
// period count as blacked out while adjacent dates do not.
func TestEvaluate_inclusiveBoundaries(t *testing.T) {
	cal := testCalendar()

	require.True(t, cal.Evaluate("2026-11-24", nil).Affected)
	require.True(t, cal.Evaluate("2026-11-30", nil).Affected)
	require.False(t, cal.Evaluate("2026-11-23", nil).Affected)
	require.False(t, cal.Evaluate("2026-12-01", nil).Affected)
}

// TestEvaluate_eitherDateTriggers verifies that a clean departure with a
// blacked-out return still marks the trip affected, and vice versa.
func TestEvaluate_eitherDateTriggers(t *testing.T) {
	cal := testCalendar()

	ret := "2026-11-26"
	ann := cal.Evaluate("2026-11-10", &ret)
	require.True(t, ann.Affected)
	require.Len(t, ann.Periods, 1)
	require.Equal(t, "Thanksgiving Period", ann.Periods[0].Description)

	ret = "2026-11-10"
	ann = cal.Evaluate("2026-11-26", &ret)
	require.True(t, ann.Affected)
	require.Len(t, ann.Periods, 1)
}

// TestEvaluate_bothDatesSamePeriod verifies that a trip entirely inside
// one period reports that period once.
func TestEvaluate_bothDatesSamePeriod(t *testing.T) {
	cal := testCalendar()

	ret := "2026-11-29"
	ann := cal.Evaluate("2026-11-25", &ret)
	require.True(t, ann.Affected)
	require.Len(t, ann.Periods, 1)
}

// TestEvaluate_crossYearTrip verifies that departure and return matching
// periods in different calendar years both appear.
func TestEvaluate_crossYearTrip(t *testing.T) {
	cal := testCalendar()

	ret := "2027-01-02"
	ann := cal.Evaluate("2026-12-28", &ret)
	require.True(t, ann.Affected)
	require.Len(t, ann.Periods, 2)
}

// TestEvaluate_cleanTrip verifies the zero value on unaffected dates.
func TestEvaluate_cleanTrip(t *testing.T) {
	cal := testCalendar()

	ret := "2026-06-15"
	ann := cal.Evaluate("2026-06-10", &ret)
	require.False(t, ann.Affected)
	require.Empty(t, ann.Periods)
}

// TestEvaluate_idempotent verifies evaluation has no side effects on the
// calendar: repeated calls return identical annotations.
func TestEvaluate_idempotent(t *testing.T) {
	cal := testCalendar()

	first := cal.Evaluate("2026-11-26", nil)
	second := cal.Evaluate("2026-11-26", nil)
	require.Equal(t, first, second)
}

// TestFallbackCalendar verifies the built-in periods are usable before
// any refresh.
func TestFallbackCalendar(t *testing.T) {
	cal := blackout.FallbackCalendar()
	require.NotEmpty(t, cal.Periods)
	require.True(t, cal.Evaluate("2026-11-26", nil).Affected)
}
