package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/wildpass/flightsearch/internal/airlines"
	"github.com/wildpass/flightsearch/internal/models"
	"github.com/wildpass/flightsearch/internal/timeparse"
	"github.com/wildpass/flightsearch/pkg/currency"
)

// Kiwi Tequila source. Tequila aggregates LCC inventory directly, so it
// returns Frontier fares with seat counts, which SerpAPI cannot provide.

type kiwiResponse struct {
	Data []kiwiFlight `json:"data"`
}

type kiwiFlight struct {
	Price        *float64      `json:"price"`
	Route        []kiwiSegment `json:"route"`
	Availability kiwiSeats     `json:"availability"`
	Fare         kiwiFare      `json:"fare"`
	ReturnCount  int           `json:"return"`
	DeepLink     string        `json:"deep_link"`
}

type kiwiSeats struct {
	Seats *int `json:"seats"`
}

type kiwiFare struct {
	Category string `json:"category"`
}

type kiwiSegment struct {
	FlyFrom   string `json:"flyFrom"`
	FlyTo     string `json:"flyTo"`
	Airline   string `json:"airline"`
	FlightNo  int    `json:"flight_no"`
	DTime     int64  `json:"dTime"` // local, epoch seconds
	DTimeUTC  int64  `json:"dTimeUTC"`
	ATime     int64  `json:"aTime"`
	ATimeUTC  int64  `json:"aTimeUTC"`
	Equipment string `json:"equipment"`
	Return    int    `json:"return"` // 0 = outbound, 1 = return direction
}

type KiwiSource struct {
	apiKey        string
	baseURL       string
	targetAirline string
	client        *http.Client
	blackout      BlackoutEvaluator
	log           *logrus.Logger
}

func NewKiwiSource(apiKey, targetAirline string, blackout BlackoutEvaluator, log *logrus.Logger) *KiwiSource {
	return &KiwiSource{
		apiKey:        apiKey,
		baseURL:       "https://api.tequila.kiwi.com",
		targetAirline: targetAirline,
		client:        &http.Client{Timeout: 30 * time.Second},
		blackout:      blackout,
		log:           log,
	}
}

func (s *KiwiSource) Name() string {
	return "kiwi"
}

func (s *KiwiSource) Search(ctx context.Context, req models.SearchRequest) ([]models.FlightLeg, error) {
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
				}).Warn("kiwi route search failed")
				continue
			}
			all = append(all, legs...)
		}
	}
	return all, nil
}

func (s *KiwiSource) searchRoute(ctx context.Context, origin, destination, departureDate string, returnDate *string) ([]models.FlightLeg, error) {
	dep, err := formatTequilaDate(departureDate)
	if err != nil {
		return nil, NewSourceError(s.Name(), err)
	}

	params := url.Values{}
	params.Set("fly_from", origin)
	params.Set("fly_to", destination)
	params.Set("date_from", dep)
	params.Set("date_to", dep)
	params.Set("adults", "1")
	params.Set("curr", "USD")
	params.Set("locale", "en")
	params.Set("limit", "50")
	params.Set("sort", "price")
	params.Set("vehicle_type", "aircraft")
	if s.targetAirline != "" {
		params.Set("select_airlines", s.targetAirline)
		params.Set("select_airlines_exclude", "false")
	}
	if returnDate != nil && *returnDate != "" {
		ret, err := formatTequilaDate(*returnDate)
		if err != nil {
			return nil, NewSourceError(s.Name(), err)
		}
		params.Set("return_from", ret)
		params.Set("return_to", ret)
		params.Set("flight_type", "round")
	} else {
		params.Set("flight_type", "oneway")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/v2/search?"+params.Encode(), nil)
	if err != nil {
		return nil, NewSourceError(s.Name(), err)
	}
	httpReq.Header.Set("apikey", s.apiKey)

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, NewSourceError(s.Name(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, NewSourceError(s.Name(), fmt.Errorf("status %d", resp.StatusCode))
	}

	var kr kiwiResponse
	if err := json.NewDecoder(resp.Body).Decode(&kr); err != nil {
		return nil, NewSourceError(s.Name(), err)
	}

	legs := make([]models.FlightLeg, 0, len(kr.Data))
	for _, f := range kr.Data {
		if leg, ok := s.normalize(f, origin, destination, departureDate); ok {
			legs = append(legs, leg)
		}
	}
	return legs, nil
}

func (s *KiwiSource) normalize(f kiwiFlight, origin, destination, anchorDate string) (models.FlightLeg, bool) {
	outbound := make([]kiwiSegment, 0, len(f.Route))
	returning := make([]kiwiSegment, 0, len(f.Route))
	for _, seg := range f.Route {
		if seg.Return == 0 {
			outbound = append(outbound, seg)
		} else {
			returning = append(returning, seg)
		}
	}
	if len(outbound) == 0 {
		return models.FlightLeg{}, false
	}

	first := outbound[0]
	last := outbound[len(outbound)-1]

	depDate, depTime := splitEpochLocal(first.DTime, anchorDate)
	arrDate, arrTime := splitEpochLocal(last.ATime, anchorDate)

	mins := models.DurationUnknown
	if last.ATimeUTC > 0 && first.DTimeUTC > 0 && last.ATimeUTC >= first.DTimeUTC {
		mins = int((last.ATimeUTC - first.DTimeUTC) / 60)
	}

	var retDate *string
	isRoundTrip := f.ReturnCount > 0 && len(returning) > 0
	if isRoundTrip {
		d, _ := splitEpochLocal(returning[0].DTime, anchorDate)
		retDate = &d
	}

	var fareClass *string
	if f.Fare.Category != "" {
		fc := f.Fare.Category
		fareClass = &fc
	}
	var aircraft *string
	if first.Equipment != "" {
		eq := first.Equipment
		aircraft = &eq
	}

	var priceFormatted string
	if f.Price != nil {
		priceFormatted = currency.FormatUSD(*f.Price)
	}

	legOrigin := first.FlyFrom
	if legOrigin == "" {
		legOrigin = origin
	}
	legDestination := last.FlyTo
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
		Stops:           maxInt(0, len(outbound)-1),
		Price:           f.Price,
		PriceFormatted:  priceFormatted,
		Currency:        "USD",
		Airline:         airlines.Name(first.Airline),
		FlightNumber:    first.Airline + strconv.Itoa(first.FlightNo),
		Aircraft:        aircraft,
		TravelClass:     fareClass,
		IsRoundTrip:     isRoundTrip,
		SeatsRemaining:  f.Availability.Seats,
		GoWildEligible:  gowildEligible(first.Airline, s.targetAirline, fareClass, f.Price, f.Availability.Seats),
		Blackout:        s.blackout.Evaluate(depDate, retDate),
	}, true
}

// splitEpochLocal converts Tequila's epoch-encoded local times. The epoch
// value already encodes the airport's wall clock, so it is read as UTC.
func splitEpochLocal(epoch int64, anchorDate string) (date, display string) {
	if epoch <= 0 {
		return anchorDate, ""
	}
	t := time.Unix(epoch, 0).UTC()
	return t.Format(timeparse.DateLayout), t.Format(timeparse.DisplayLayout)
}

// formatTequilaDate converts YYYY-MM-DD to the DD/MM/YYYY form Tequila
// expects.
func formatTequilaDate(date string) (string, error) {
	t, err := time.Parse(timeparse.DateLayout, date)
	if err != nil {
		return "", err
	}
	return t.Format("02/01/2006"), nil
}
