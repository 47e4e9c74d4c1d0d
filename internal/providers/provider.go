// Package providers contains the flight-source adapters. Every upstream
// API (and the mock generator) sits behind the FlightSource interface and
// emits normalized FlightLeg records; which sources run is decided by
// configuration at startup.
package providers

import (
	"context"

	"github.com/wildpass/flightsearch/internal/models"
)

// DestinationAny in a request's destination list expands to the popular
// route set instead of a literal airport.
const DestinationAny = "ANY"

type FlightSource interface {
	Name() string
	Search(ctx context.Context, req models.SearchRequest) ([]models.FlightLeg, error)
}

// BlackoutEvaluator annotates legs with blackout info at normalization
// time. Satisfied by blackout.Updater.
type BlackoutEvaluator interface {
	Evaluate(departureDate string, returnDate *string) models.BlackoutAnnotation
}

type SourceError struct {
	Source string
	Err    error
}

func (e *SourceError) Error() string {
	return e.Source + ": " + e.Err.Error()
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

func NewSourceError(source string, err error) *SourceError {
	return &SourceError{
		Source: source,
		Err:    err,
	}
}

// popularDestinations seed the route set for "ANY" destination searches.
var popularDestinations = []string{
	"MCO", "LAS", "MIA", "PHX", "ATL", "LAX", "DFW", "ORD", "DEN",
	"SEA", "SFO", "FLL", "TPA", "SAN", "AUS", "CLE", "BNA", "SLC",
}

// expandDestinations resolves the ANY wildcard against the popular set,
// excluding the requested origins, capped at limit.
func expandDestinations(destinations, origins []string, limit int) []string {
	if len(destinations) != 1 || destinations[0] != DestinationAny {
		return destinations
	}
	isOrigin := make(map[string]bool, len(origins))
	for _, o := range origins {
		isOrigin[o] = true
	}
	out := make([]string, 0, limit)
	for _, d := range popularDestinations {
		if isOrigin[d] {
			continue
		}
		out = append(out, d)
		if len(out) == limit {
			break
		}
	}
	return out
}
