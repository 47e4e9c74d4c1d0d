package providers

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/wildpass/flightsearch/internal/models"
	"github.com/wildpass/flightsearch/internal/timeparse"
	"github.com/wildpass/flightsearch/pkg/currency"
)

// MockSource generates plausible legs when no upstream API is configured
// (dev mode). Routes follow the request; times, fares and seat counts are
// randomized. A fixed seed gives reproducible pools in tests.
type MockSource struct {
	targetAirline string
	blackout      BlackoutEvaluator

	mu  sync.Mutex
	rng *rand.Rand
}

func NewMockSource(seed int64, targetAirline string, blackout BlackoutEvaluator) *MockSource {
	return &MockSource{
		targetAirline: targetAirline,
		blackout:      blackout,
		rng:           rand.New(rand.NewSource(seed)),
	}
}

func (s *MockSource) Name() string {
	return "mock"
}

func (s *MockSource) Search(ctx context.Context, req models.SearchRequest) ([]models.FlightLeg, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	destinations := expandDestinations(req.Destinations, req.Origins, 5)
	blackoutInfo := s.blackout.Evaluate(req.DepartureDate, req.ReturnDate)

	var legs []models.FlightLeg
	for _, origin := range req.Origins {
		for _, destination := range destinations {
			if origin == destination {
				continue
			}
			n := 1 + s.rng.Intn(2)
			for i := 0; i < n; i++ {
				legs = append(legs, s.generateLeg(origin, destination, req.DepartureDate, blackoutInfo))
			}
		}
	}
	return legs, nil
}

func (s *MockSource) generateLeg(origin, destination, departureDate string, blackoutInfo models.BlackoutAnnotation) models.FlightLeg {
	depHour := 6 + s.rng.Intn(15)
	depMinute := []int{0, 15, 30, 45}[s.rng.Intn(4)]
	durationMins := 120 + s.rng.Intn(240)

	dep := time.Date(2000, 1, 1, depHour, depMinute, 0, 0, time.UTC)
	arr := dep.Add(time.Duration(durationMins) * time.Minute)

	arrivalDate := departureDate
	if d, err := time.Parse(timeparse.DateLayout, departureDate); err == nil && arr.Day() != dep.Day() {
		arrivalDate = d.AddDate(0, 0, 1).Format(timeparse.DateLayout)
	}

	price := float64(29+s.rng.Intn(170)) + float64(s.rng.Intn(100))/100
	seats := 1 + s.rng.Intn(15)
	stops := []int{0, 0, 0, 1}[s.rng.Intn(4)]
	economy := "Economy"

	return models.FlightLeg{
		ID:              uuid.NewString(),
		Source:          s.Name(),
		Origin:          origin,
		Destination:     destination,
		DepartureDate:   departureDate,
		DepartureTime:   dep.Format(timeparse.DisplayLayout),
		ArrivalDate:     arrivalDate,
		ArrivalTime:     arr.Format(timeparse.DisplayLayout),
		DurationMinutes: durationMins,
		Duration:        timeparse.FormatMinutes(durationMins),
		Stops:           stops,
		Price:           &price,
		PriceFormatted:  currency.FormatUSD(price),
		Currency:        "USD",
		Airline:         "Frontier Airlines",
		FlightNumber:    fmt.Sprintf("%s%d", s.targetAirline, 1000+s.rng.Intn(9000)),
		Aircraft:        mockAircraft(s.rng),
		TravelClass:     &economy,
		IsRoundTrip:     false,
		SeatsRemaining:  &seats,
		GoWildEligible:  gowildEligible(s.targetAirline, s.targetAirline, &economy, &price, &seats),
		Blackout:        blackoutInfo,
	}
}

func mockAircraft(rng *rand.Rand) *string {
	a := []string{"A320", "A321", "A319"}[rng.Intn(3)]
	return &a
}
