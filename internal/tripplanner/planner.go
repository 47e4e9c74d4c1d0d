// Package tripplanner is the trip-planning core: the combination engine
// pairs outbound and return legs into scored round-trip candidates, and
// the window controller widens the calendar search until something
// matches.
package tripplanner

import (
	"math"
	"sort"

	"github.com/wildpass/flightsearch/internal/models"
	"github.com/wildpass/flightsearch/internal/timeparse"
)

// Constraints are the caller-supplied trip parameters. Validated at the
// API boundary; the engine itself tolerates degenerate values (zero or
// negative targets simply make every candidate's delta its own duration).
type Constraints struct {
	TripLength       float64
	TripLengthUnit   string
	NonstopPreferred bool
	MaxDuration      *float64
	MaxDurationUnit  string
}

// TargetMinutes converts the requested trip length to minutes.
func (c Constraints) TargetMinutes() int {
	return unitMinutes(c.TripLength, c.TripLengthUnit)
}

// MaxMinutes converts the optional duration cap to minutes.
func (c Constraints) MaxMinutes() (int, bool) {
	if c.MaxDuration == nil {
		return 0, false
	}
	return unitMinutes(*c.MaxDuration, c.MaxDurationUnit), true
}

func unitMinutes(value float64, unit string) int {
	hours := value
	if unit != models.UnitHours {
		hours = value * 24
	}
	return int(math.Round(hours * 60))
}

// FindOptimalTrips builds every outbound x return combination, drops the
// ones over the duration cap, and orders the rest by how closely their
// total trip duration matches the target.
//
// Sort key, ascending: (|duration - target|, nonstop-preference violation,
// combined price). The nonstop term only participates when
// NonstopPreferred is set. Duplicate pool entries produce duplicate
// candidates; pool hygiene belongs to the producer.
//
// An empty outbound pool yields an empty result. An empty return pool
// degenerates to one-way candidates whose duration is the outbound leg's
// own duration.
func FindOptimalTrips(outbound, returns []models.FlightLeg, c Constraints) []models.TripCandidate {
	target := c.TargetMinutes()
	maxMins, hasMax := c.MaxMinutes()

	var candidates []models.TripCandidate

	consider := func(out models.FlightLeg, ret *models.FlightLeg) {
		cand := buildCandidate(out, ret)
		if hasMax && cand.TotalDurationMinutes > maxMins {
			return
		}
		cand.DurationDeltaMinutes = absInt(cand.TotalDurationMinutes - target)
		candidates = append(candidates, cand)
	}

	if len(returns) == 0 {
		for _, out := range outbound {
			consider(out, nil)
		}
	} else {
		for _, out := range outbound {
			for i := range returns {
				consider(out, &returns[i])
			}
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.DurationDeltaMinutes != b.DurationDeltaMinutes {
			return a.DurationDeltaMinutes < b.DurationDeltaMinutes
		}
		if c.NonstopPreferred && a.Nonstop != b.Nonstop {
			return a.Nonstop
		}
		return a.TotalPrice < b.TotalPrice
	})

	return candidates
}

// buildCandidate derives the trip-level fields. Total duration for a
// round trip is the elapsed wall time from outbound departure to return
// arrival; when either instant is unparseable it falls back to the sum of
// the legs' own durations rather than rejecting the pair.
func buildCandidate(out models.FlightLeg, ret *models.FlightLeg) models.TripCandidate {
	cand := models.TripCandidate{
		Outbound: out,
		Return:   ret,
		Nonstop:  out.Stops == 0 && (ret == nil || ret.Stops == 0),
	}

	if out.Price != nil {
		cand.TotalPrice += *out.Price
	}
	if ret != nil && ret.Price != nil {
		cand.TotalPrice += *ret.Price
	}

	if ret == nil {
		cand.TotalDurationMinutes = legMinutes(out)
		return cand
	}

	dep, depOK := timeparse.Instant(out.DepartureDate, out.DepartureTime)
	arr, arrOK := timeparse.Instant(ret.ArrivalDate, ret.ArrivalTime)
	if depOK && arrOK && !arr.Before(dep) {
		cand.TotalDurationMinutes = int(arr.Sub(dep).Minutes())
	} else {
		cand.TotalDurationMinutes = legMinutes(out) + legMinutes(*ret)
	}
	return cand
}

func legMinutes(leg models.FlightLeg) int {
	if leg.DurationMinutes >= 0 {
		return leg.DurationMinutes
	}
	if derived, ok := timeparse.MinutesBetween(leg.DepartureDate, leg.DepartureTime, leg.ArrivalDate, leg.ArrivalTime); ok {
		return derived
	}
	return 0
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
