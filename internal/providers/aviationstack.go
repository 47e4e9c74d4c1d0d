package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/wildpass/flightsearch/internal/airlines"
	"github.com/wildpass/flightsearch/internal/models"
	"github.com/wildpass/flightsearch/internal/timeparse"
)

// AviationStack fallback source. The free tier only returns current-day
// schedule data and carries no fares, so this source mostly matters when
// the fare APIs are down: legs come back with a nil price.

type aviationStackResponse struct {
	Error *aviationStackError  `json:"error"`
	Data  []aviationStackEntry `json:"data"`
}

type aviationStackError struct {
	Message string `json:"message"`
}

type aviationStackEntry struct {
	FlightDate string               `json:"flight_date"`
	Departure  aviationStackPoint   `json:"departure"`
	Arrival    aviationStackPoint   `json:"arrival"`
	Airline    aviationStackAirline `json:"airline"`
	Flight     aviationStackFlight  `json:"flight"`
	Aircraft   *aviationStackCraft  `json:"aircraft"`
}

type aviationStackPoint struct {
	IATA      string `json:"iata"`
	Scheduled string `json:"scheduled"`
}

type aviationStackAirline struct {
	Name string `json:"name"`
	IATA string `json:"iata"`
}

type aviationStackFlight struct {
	IATA string `json:"iata"`
}

type aviationStackCraft struct {
	IATA string `json:"iata"`
}

type AviationStackSource struct {
	apiKey        string
	baseURL       string
	targetAirline string
	client        *http.Client
	blackout      BlackoutEvaluator
	log           *logrus.Logger
}

func NewAviationStackSource(apiKey, targetAirline string, blackout BlackoutEvaluator, log *logrus.Logger) *AviationStackSource {
	return &AviationStackSource{
		apiKey:        apiKey,
		baseURL:       "http://api.aviationstack.com/v1",
		targetAirline: targetAirline,
		client:        &http.Client{Timeout: 30 * time.Second},
		blackout:      blackout,
		log:           log,
	}
}

func (s *AviationStackSource) Name() string {
	return "aviationstack"
}

func (s *AviationStackSource) Search(ctx context.Context, req models.SearchRequest) ([]models.FlightLeg, error) {
	destinations := expandDestinations(req.Destinations, req.Origins, 12)

	var all []models.FlightLeg
	for _, origin := range req.Origins {
		for _, destination := range destinations {
			if origin == destination {
				continue
			}
			legs, err := s.searchRoute(ctx, origin, destination, req.DepartureDate)
			if err != nil {
				s.log.WithError(err).WithFields(logrus.Fields{
					"origin":      origin,
					"destination": destination,
				}).Warn("aviationstack route search failed")
				continue
			}
			all = append(all, legs...)
		}
	}
	return all, nil
}

func (s *AviationStackSource) searchRoute(ctx context.Context, origin, destination, targetDate string) ([]models.FlightLeg, error) {
	params := url.Values{}
	params.Set("access_key", s.apiKey)
	params.Set("dep_iata", origin)
	params.Set("arr_iata", destination)
	if s.targetAirline != "" {
		params.Set("airline_iata", s.targetAirline)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/flights?"+params.Encode(), nil)
	if err != nil {
		return nil, NewSourceError(s.Name(), err)
	}

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, NewSourceError(s.Name(), err)
	}
	defer resp.Body.Close()

	var ar aviationStackResponse
	if err := json.NewDecoder(resp.Body).Decode(&ar); err != nil {
		return nil, NewSourceError(s.Name(), err)
	}
	if ar.Error != nil {
		return nil, NewSourceError(s.Name(), fmt.Errorf("%s", ar.Error.Message))
	}

	legs := make([]models.FlightLeg, 0, len(ar.Data))
	for _, entry := range ar.Data {
		leg := s.normalize(entry, origin, destination, targetDate)
		// Free tier ignores date filters upstream, so filter here.
		if targetDate != "" && leg.DepartureDate != targetDate {
			continue
		}
		legs = append(legs, leg)
	}
	return legs, nil
}

func (s *AviationStackSource) normalize(entry aviationStackEntry, origin, destination, anchorDate string) models.FlightLeg {
	depDate, depTime := timeparse.SplitLocal(entry.Departure.Scheduled, anchorDate)
	arrDate, arrTime := timeparse.SplitLocal(entry.Arrival.Scheduled, anchorDate)

	mins := models.DurationUnknown
	if derived, ok := timeparse.MinutesBetween(depDate, depTime, arrDate, arrTime); ok {
		mins = derived
	}

	carrier := entry.Airline.IATA
	airlineName := entry.Airline.Name
	if airlineName == "" {
		airlineName = airlines.Name(carrier)
	}

	var aircraft *string
	if entry.Aircraft != nil && entry.Aircraft.IATA != "" {
		a := entry.Aircraft.IATA
		aircraft = &a
	}

	legOrigin := entry.Departure.IATA
	if legOrigin == "" {
		legOrigin = origin
	}
	legDestination := entry.Arrival.IATA
	if legDestination == "" {
		legDestination = destination
	}

	return models.FlightLeg{
		ID:              uuid.NewString(),
		Source:          s.Name(),
		Origin:          legOrigin,
		Destination:     legDestination,
		DepartureDate:   depDate,
		DepartureTime:   depTime,
		ArrivalDate:     arrDate,
		ArrivalTime:     arrTime,
		DurationMinutes: mins,
		Duration:        timeparse.FormatMinutes(mins),
		Stops:           0, // schedule feed reports individual segments
		Price:           nil,
		Currency:        "USD",
		Airline:         airlineName,
		FlightNumber:    airlines.NormalizeFlightNumber(entry.Flight.IATA),
		Aircraft:        aircraft,
		TravelClass:     nil,
		IsRoundTrip:     false,
		SeatsRemaining:  nil,
		GoWildEligible:  gowildEligible(carrier, s.targetAirline, nil, nil, nil),
		Blackout:        s.blackout.Evaluate(depDate, nil),
	}
}
