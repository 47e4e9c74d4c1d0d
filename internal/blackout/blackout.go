// Package blackout implements the GoWild blackout-date policy: a calendar
// of date ranges during which loyalty redemption is disallowed, and a pure
// evaluation function used by every normalizer and by the planner façade.
package blackout

import (
	"github.com/wildpass/flightsearch/internal/models"
)

// Calendar holds blackout periods keyed by year ("2026" -> periods).
// The calendar itself is refreshed by the Updater and passed in here;
// evaluation has no side effects.
type Calendar struct {
	Periods map[string][]models.BlackoutPeriod
}

// Evaluate checks a departure date (and optional return date, both
// "YYYY-MM-DD") against the calendar. The result is affected when either
// date falls inside any period's inclusive [start, end] range, and reports
// every period that matched. Order of the two dates does not change the
// affected flag.
func (c Calendar) Evaluate(departureDate string, returnDate *string) models.BlackoutAnnotation {
	var ann models.BlackoutAnnotation
	seen := make(map[string]bool)

	check := func(date string) {
		if date == "" {
			return
		}
		for _, periods := range c.Periods {
			for _, p := range periods {
				if date >= p.Start && date <= p.End {
					ann.Affected = true
					key := p.Start + "/" + p.End
					if !seen[key] {
						seen[key] = true
						ann.Periods = append(ann.Periods, p)
					}
				}
			}
		}
	}

	check(departureDate)
	if returnDate != nil {
		check(*returnDate)
	}
	return ann
}

// fallbackPeriods ship with the binary so the policy works before the
// first successful refresh. Major US holiday travel windows.
var fallbackPeriods = map[string][]models.BlackoutPeriod{
	"2026": {
		{Start: "2026-01-01", End: "2026-01-02", Description: "New Year Period"},
		{Start: "2026-02-13", End: "2026-02-16", Description: "Presidents Day Weekend"},
		{Start: "2026-03-13", End: "2026-03-22", Description: "Spring Break"},
		{Start: "2026-04-03", End: "2026-04-06", Description: "Easter Period"},
		{Start: "2026-05-22", End: "2026-05-25", Description: "Memorial Day Weekend"},
		{Start: "2026-07-02", End: "2026-07-06", Description: "Independence Day Period"},
		{Start: "2026-09-04", End: "2026-09-07", Description: "Labor Day Weekend"},
		{Start: "2026-11-24", End: "2026-11-30", Description: "Thanksgiving Period"},
		{Start: "2026-12-18", End: "2026-12-31", Description: "Winter Holiday Period"},
	},
	"2027": {
		{Start: "2027-01-01", End: "2027-01-03", Description: "New Year Period"},
		{Start: "2027-02-12", End: "2027-02-15", Description: "Presidents Day Weekend"},
		{Start: "2027-03-12", End: "2027-03-21", Description: "Spring Break"},
		{Start: "2027-05-28", End: "2027-05-31", Description: "Memorial Day Weekend"},
		{Start: "2027-07-02", End: "2027-07-05", Description: "Independence Day Period"},
		{Start: "2027-11-23", End: "2027-11-29", Description: "Thanksgiving Period"},
		{Start: "2027-12-17", End: "2027-12-31", Description: "Winter Holiday Period"},
	},
}

// FallbackCalendar returns the built-in periods, used until a refresh
// succeeds or when the cache file is unreadable.
func FallbackCalendar() Calendar {
	return Calendar{Periods: fallbackPeriods}
}
