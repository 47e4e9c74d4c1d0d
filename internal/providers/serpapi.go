package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/wildpass/flightsearch/internal/airlines"
	"github.com/wildpass/flightsearch/internal/models"
	"github.com/wildpass/flightsearch/internal/timeparse"
	"github.com/wildpass/flightsearch/pkg/currency"
)

// SerpAPI Google Flights source. Google Flights covers low-cost carriers
// the GDS-backed APIs miss, which is the whole point for F9.

type serpResponse struct {
	Error        string       `json:"error"`
	BestFlights  []serpResult `json:"best_flights"`
	OtherFlights []serpResult `json:"other_flights"`
}

type serpResult struct {
	Flights       []serpSegment `json:"flights"`
	Layovers      []serpLayover `json:"layovers"`
	TotalDuration int           `json:"total_duration"`
	Price         *float64      `json:"price"`
	Type          string        `json:"type"`
}

type serpSegment struct {
	DepartureAirport serpAirport `json:"departure_airport"`
	ArrivalAirport   serpAirport `json:"arrival_airport"`
	Airline          string      `json:"airline"`
	FlightNumber     string      `json:"flight_number"`
	Airplane         string      `json:"airplane"`
	TravelClass      string      `json:"travel_class"`
	Duration         int         `json:"duration"`
}

type serpAirport struct {
	ID   string `json:"id"`
	Time string `json:"time"` // "2026-03-15 06:30"
}

type serpLayover struct {
	ID       string `json:"id"`
	Duration int    `json:"duration"`
}

type SerpAPISource struct {
	apiKey        string
	baseURL       string
	targetAirline string
	client        *http.Client
	blackout      BlackoutEvaluator
	log           *logrus.Logger
}

func NewSerpAPISource(apiKey, targetAirline string, blackout BlackoutEvaluator, log *logrus.Logger) *SerpAPISource {
	return &SerpAPISource{
		apiKey:        apiKey,
		baseURL:       "https://serpapi.com/search.json",
		targetAirline: targetAirline,
		client:        &http.Client{Timeout: 30 * time.Second},
		blackout:      blackout,
		log:           log,
	}
}

func (s *SerpAPISource) Name() string {
	return "serpapi"
}

func (s *SerpAPISource) Search(ctx context.Context, req models.SearchRequest) ([]models.FlightLeg, error) {
	destinations := expandDestinations(req.Destinations, req.Origins, 12)

	var all []models.FlightLeg
	for _, origin := range req.Origins {
		for _, destination := range destinations {
			if origin == destination {
				continue
			}
			legs, err := s.searchRoute(ctx, origin, destination, req.DepartureDate, req.ReturnDate)
			if err != nil {
				s.log.WithError(err).WithFields(logrus.Fields{
					"origin":      origin,
					"destination": destination,
				}).Warn("serpapi route search failed")
				continue
			}
			all = append(all, legs...)
		}
	}
	return all, nil
}

func (s *SerpAPISource) searchRoute(ctx context.Context, origin, destination, departureDate string, returnDate *string) ([]models.FlightLeg, error) {
	params := url.Values{}
	params.Set("engine", "google_flights")
	params.Set("departure_id", origin)
	params.Set("arrival_id", destination)
	params.Set("outbound_date", departureDate)
	params.Set("currency", "USD")
	params.Set("hl", "en")
	params.Set("adults", "1")
	params.Set("api_key", s.apiKey)
	if s.targetAirline != "" {
		params.Set("include_airlines", s.targetAirline)
	}
	if returnDate != nil && *returnDate != "" {
		params.Set("type", "1") // round trip
		params.Set("return_date", *returnDate)
	} else {
		params.Set("type", "2") // one way
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, NewSourceError(s.Name(), err)
	}

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, NewSourceError(s.Name(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, NewSourceError(s.Name(), fmt.Errorf("status %d", resp.StatusCode))
	}

	var sr serpResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, NewSourceError(s.Name(), err)
	}
	if sr.Error != "" {
		return nil, NewSourceError(s.Name(), fmt.Errorf("%s", sr.Error))
	}

	results := append(sr.BestFlights, sr.OtherFlights...)
	legs := make([]models.FlightLeg, 0, len(results))
	for _, r := range results {
		if leg, ok := s.normalize(r, origin, destination, departureDate, returnDate); ok {
			legs = append(legs, leg)
		}
	}
	return legs, nil
}

func (s *SerpAPISource) normalize(r serpResult, origin, destination, anchorDate string, returnDate *string) (models.FlightLeg, bool) {
	if len(r.Flights) == 0 {
		return models.FlightLeg{}, false
	}
	first := r.Flights[0]
	last := r.Flights[len(r.Flights)-1]

	depDate, depTime := timeparse.SplitLocal(first.DepartureAirport.Time, anchorDate)
	arrDate, arrTime := timeparse.SplitLocal(last.ArrivalAirport.Time, anchorDate)

	mins := r.TotalDuration
	if mins <= 0 {
		if derived, ok := timeparse.MinutesBetween(depDate, depTime, arrDate, arrTime); ok {
			mins = derived
		} else {
			mins = models.DurationUnknown
		}
	}

	var aircraft *string
	if first.Airplane != "" {
		a := first.Airplane
		aircraft = &a
	}
	var travelClass *string
	if first.TravelClass != "" {
		tc := first.TravelClass
		travelClass = &tc
	}

	legOrigin := first.DepartureAirport.ID
	if legOrigin == "" {
		legOrigin = origin
	}
	legDestination := last.ArrivalAirport.ID
	if legDestination == "" {
		legDestination = destination
	}

	carrier := s.carrierCode(first.Airline, first.FlightNumber)

	var priceFormatted string
	if r.Price != nil {
		priceFormatted = currency.FormatUSD(*r.Price)
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
		Stops:           maxInt(0, len(r.Flights)-1),
		Price:           r.Price,
		PriceFormatted:  priceFormatted,
		Currency:        "USD",
		Airline:         first.Airline,
		FlightNumber:    first.FlightNumber,
		Aircraft:        aircraft,
		TravelClass:     travelClass,
		IsRoundTrip:     returnDate != nil && *returnDate != "",
		SeatsRemaining:  nil, // Google Flights doesn't expose seat counts
		GoWildEligible:  gowildEligible(carrier, s.targetAirline, travelClass, r.Price, nil),
		Blackout:        s.blackout.Evaluate(depDate, returnDate),
	}, true
}

// carrierCode recovers an IATA carrier code from Google Flights output,
// which gives an airline display name and an IATA-prefixed flight number
// ("F9 1234") but no bare code field.
func (s *SerpAPISource) carrierCode(airlineName, flightNumber string) string {
	if fields := strings.Fields(flightNumber); len(fields) > 0 {
		if _, ok := airlines.Names[fields[0]]; ok {
			return fields[0]
		}
	}
	for code, name := range airlines.Names {
		if strings.EqualFold(name, airlineName) {
			return code
		}
	}
	return airlineName
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
