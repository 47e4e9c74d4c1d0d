// Package realtime serves live flight status from AeroDataBox (via
// RapidAPI). When the API key is missing or the upstream errors, every
// endpoint degrades to generated mock data so the UI keeps working.
package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/wildpass/flightsearch/internal/airlines"
)

const rapidAPIHost = "aerodatabox.p.rapidapi.com"

type TimeDetail struct {
	ISO  string `json:"iso"`
	Time string `json:"time"`
	Date string `json:"date,omitempty"`
	Full string `json:"full"`
}

type StatusDisplay struct {
	Emoji string `json:"emoji"`
	Text  string `json:"text"`
	Color string `json:"color"`
}

type AirlineRef struct {
	Name string `json:"name"`
	IATA string `json:"iata"`
}

type Endpoint struct {
	Airport      string      `json:"airport"`
	AirportCode  string      `json:"airport_code"`
	Terminal     string      `json:"terminal,omitempty"`
	Gate         string      `json:"gate,omitempty"`
	Baggage      string      `json:"baggage,omitempty"`
	Scheduled    *TimeDetail `json:"scheduled"`
	Estimated    *TimeDetail `json:"estimated,omitempty"`
	Actual       *TimeDetail `json:"actual"`
	DelayMinutes int         `json:"delay_minutes,omitempty"`
	DelayDisplay string      `json:"delay_display,omitempty"`
}

type FlightStatus struct {
	FlightNumber  string        `json:"flight_number"`
	CallSign      string        `json:"flight_icao,omitempty"`
	Airline       AirlineRef    `json:"airline"`
	Status        string        `json:"status"`
	StatusDisplay StatusDisplay `json:"status_display"`
	Departure     Endpoint      `json:"departure"`
	Arrival       Endpoint      `json:"arrival"`
	FlightDate    string        `json:"flight_date"`
}

// BoardEntry is one row on a departures/arrivals board.
type BoardEntry struct {
	FlightNumber    string        `json:"flight_number"`
	Origin          string        `json:"origin"`
	OriginCity      string        `json:"origin_city"`
	Destination     string        `json:"destination"`
	DestinationCity string        `json:"destination_city"`
	Status          string        `json:"status"`
	StatusDisplay   StatusDisplay `json:"status_display"`
	ScheduledTime   string        `json:"scheduled_time"`
	Scheduled       *TimeDetail   `json:"scheduled"`
	Actual          *TimeDetail   `json:"actual"`
	Delay           string        `json:"delay"`
	Terminal        string        `json:"terminal,omitempty"`
	Gate            string        `json:"gate,omitempty"`
	Aircraft        string        `json:"aircraft"`
}

type Board struct {
	Airport     string       `json:"airport"`
	Airline     string       `json:"airline"`
	Type        string       `json:"type"`
	Count       int          `json:"count"`
	Flights     []BoardEntry `json:"flights"`
	LastUpdated string       `json:"last_updated"`
	MockData    bool         `json:"mock_data,omitempty"`
}

type RouteStatus struct {
	Route       string       `json:"route"`
	Airline     string       `json:"airline"`
	Count       int          `json:"count"`
	Flights     []BoardEntry `json:"flights"`
	LastUpdated string       `json:"last_updated"`
	MockData    bool         `json:"mock_data,omitempty"`
}

// AeroDataBox wire shapes.

type adbBoardResponse struct {
	Departures []adbFlight `json:"departures"`
	Arrivals   []adbFlight `json:"arrivals"`
}

type adbFlight struct {
	Number    string       `json:"number"`
	CallSign  string       `json:"callSign"`
	Status    string       `json:"status"`
	Departure adbMovement  `json:"departure"`
	Arrival   adbMovement  `json:"arrival"`
	Airline   adbAirline   `json:"airline"`
	Aircraft  *adbAircraft `json:"aircraft"`
}

type adbMovement struct {
	Airport            adbAirport      `json:"airport"`
	ScheduledTimeLocal string          `json:"scheduledTimeLocal"`
	EstimatedTimeLocal string          `json:"estimatedTimeLocal"`
	ActualTimeLocal    string          `json:"actualTimeLocal"`
	Terminal           string          `json:"terminal"`
	Gate               string          `json:"gate"`
	BaggageBelt        string          `json:"baggageBelt"`
	Delay              json.RawMessage `json:"delay"` // minutes int or "PT15M"
}

type adbAirport struct {
	IATA string `json:"iata"`
	Name string `json:"name"`
}

type adbAirline struct {
	Name string `json:"name"`
	IATA string `json:"iata"`
}

type adbAircraft struct {
	Model string `json:"model"`
}

// Service is the AeroDataBox client plus mock fallback.
type Service struct {
	apiKey  string
	baseURL string
	client  *http.Client
	log     *logrus.Logger
	mock    *mockGenerator
}

func NewService(apiKey string, log *logrus.Logger) *Service {
	return &Service{
		apiKey:  apiKey,
		baseURL: "https://" + rapidAPIHost,
		client:  &http.Client{Timeout: 15 * time.Second},
		log:     log,
		mock:    newMockGenerator(time.Now().UnixNano()),
	}
}

func (s *Service) IsConfigured() bool {
	return s.apiKey != ""
}

// FlightStatus looks up a single flight for today. ICAO-prefixed numbers
// ("AAL3075") are rewritten to IATA form first.
func (s *Service) FlightStatus(ctx context.Context, flightNumber string) (FlightStatus, error) {
	num := strings.ToUpper(strings.NewReplacer("-", "", " ", "").Replace(flightNumber))
	num = airlines.NormalizeFlightNumber(num)

	if !s.IsConfigured() {
		s.log.Debug("aerodatabox not configured, serving mock flight status")
		return s.mock.singleFlight(num), nil
	}

	today := time.Now().Format("2006-01-02")
	endpoint := fmt.Sprintf("%s/flights/number/%s/%s", s.baseURL, url.PathEscape(num), today)

	var flights []adbFlight
	status, err := s.get(ctx, endpoint, nil, &flights)
	if err != nil || (status != http.StatusOK && status != http.StatusNotFound) {
		s.log.WithError(err).Warn("aerodatabox lookup failed, serving mock flight status")
		return s.mock.singleFlight(num), nil
	}
	if status == http.StatusNotFound || len(flights) == 0 {
		return FlightStatus{}, fmt.Errorf("no flight found for %s", flightNumber)
	}

	return s.formatFlight(flights[0], num), nil
}

// RouteFlights lists today's flights between two airports, using the
// origin's departure board filtered by destination.
func (s *Service) RouteFlights(ctx context.Context, origin, destination, airlineCode string) RouteStatus {
	route := origin + " -> " + destination

	if !s.IsConfigured() {
		return s.mock.routeFlights(origin, destination, airlineCode)
	}

	board, err := s.fetchBoard(ctx, origin, "Departure")
	if err != nil {
		s.log.WithError(err).Warn("aerodatabox route lookup failed, serving mock data")
		return s.mock.routeFlights(origin, destination, airlineCode)
	}

	var entries []BoardEntry
	for _, f := range board.Departures {
		if f.Arrival.Airport.IATA != destination {
			continue
		}
		if airlineCode != "" && f.Airline.IATA != airlineCode {
			continue
		}
		entries = append(entries, s.formatBoardEntry(f, true))
	}

	return RouteStatus{
		Route:       route,
		Airline:     airlineCode,
		Count:       len(entries),
		Flights:     entries,
		LastUpdated: time.Now().Format(time.RFC3339),
	}
}

// Departures returns today's departure board for an airport.
func (s *Service) Departures(ctx context.Context, airportCode, airlineCode string) Board {
	return s.board(ctx, airportCode, airlineCode, "departures")
}

// Arrivals returns today's arrival board for an airport.
func (s *Service) Arrivals(ctx context.Context, airportCode, airlineCode string) Board {
	return s.board(ctx, airportCode, airlineCode, "arrivals")
}

func (s *Service) board(ctx context.Context, airportCode, airlineCode, boardType string) Board {
	if !s.IsConfigured() {
		return s.mock.board(airportCode, airlineCode, boardType)
	}

	direction := "Departure"
	if boardType == "arrivals" {
		direction = "Arrival"
	}

	resp, err := s.fetchBoard(ctx, airportCode, direction)
	if err != nil {
		s.log.WithError(err).Warn("aerodatabox board lookup failed, serving mock data")
		return s.mock.board(airportCode, airlineCode, boardType)
	}

	flights := resp.Departures
	departureBoard := true
	if boardType == "arrivals" {
		flights = resp.Arrivals
		departureBoard = false
	}

	var entries []BoardEntry
	for _, f := range flights {
		if airlineCode != "" && f.Airline.IATA != airlineCode {
			continue
		}
		entries = append(entries, s.formatBoardEntry(f, departureBoard))
	}

	return Board{
		Airport:     airportCode,
		Airline:     airlineCode,
		Type:        boardType,
		Count:       len(entries),
		Flights:     entries,
		LastUpdated: time.Now().Format(time.RFC3339),
	}
}

func (s *Service) fetchBoard(ctx context.Context, airportCode, direction string) (*adbBoardResponse, error) {
	now := time.Now()
	fromLocal := now.Format("2006-01-02") + "T00:00"
	toLocal := now.Format("2006-01-02") + "T23:59"

	endpoint := fmt.Sprintf("%s/flights/airports/iata/%s/%s/%s",
		s.baseURL, url.PathEscape(airportCode), fromLocal, toLocal)
	params := url.Values{}
	params.Set("direction", direction)
	params.Set("withCancelled", "true")
	params.Set("withCodeshared", "false")

	var board adbBoardResponse
	status, err := s.get(ctx, endpoint, params, &board)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("aerodatabox returned status %d", status)
	}
	return &board, nil
}

func (s *Service) get(ctx context.Context, endpoint string, params url.Values, out any) (int, error) {
	u := endpoint
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("X-RapidAPI-Key", s.apiKey)
	req.Header.Set("X-RapidAPI-Host", rapidAPIHost)

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, err
		}
	}
	return resp.StatusCode, nil
}

func (s *Service) formatFlight(f adbFlight, fallbackNumber string) FlightStatus {
	number := strings.ReplaceAll(f.Number, " ", "")
	if number == "" {
		number = fallbackNumber
	}
	status := mapStatus(f.Status)

	airline := AirlineRef{Name: f.Airline.Name, IATA: f.Airline.IATA}
	if airline.IATA == "" {
		airline.IATA = "F9"
	}
	if airline.Name == "" {
		airline.Name = airlines.Name(airline.IATA)
	}

	depDelay := parseDelayMinutes(f.Departure.Delay)

	dep := Endpoint{
		Airport:      airportLabel(f.Departure.Airport),
		AirportCode:  f.Departure.Airport.IATA,
		Terminal:     f.Departure.Terminal,
		Gate:         f.Departure.Gate,
		Scheduled:    parseLocalTime(f.Departure.ScheduledTimeLocal),
		Estimated:    parseLocalTime(f.Departure.EstimatedTimeLocal),
		Actual:       parseLocalTime(f.Departure.ActualTimeLocal),
		DelayMinutes: depDelay,
	}
	if depDelay > 0 {
		dep.DelayDisplay = fmt.Sprintf("+%d min", depDelay)
	}

	arr := Endpoint{
		Airport:     airportLabel(f.Arrival.Airport),
		AirportCode: f.Arrival.Airport.IATA,
		Terminal:    f.Arrival.Terminal,
		Gate:        f.Arrival.Gate,
		Baggage:     f.Arrival.BaggageBelt,
		Scheduled:   parseLocalTime(f.Arrival.ScheduledTimeLocal),
		Estimated:   parseLocalTime(f.Arrival.EstimatedTimeLocal),
		Actual:      parseLocalTime(f.Arrival.ActualTimeLocal),
	}

	return FlightStatus{
		FlightNumber:  number,
		CallSign:      f.CallSign,
		Airline:       airline,
		Status:        status,
		StatusDisplay: statusDisplay(status),
		Departure:     dep,
		Arrival:       arr,
		FlightDate:    time.Now().Format("2006-01-02"),
	}
}

func (s *Service) formatBoardEntry(f adbFlight, departureBoard bool) BoardEntry {
	status := mapStatus(f.Status)
	number := strings.ReplaceAll(f.Number, " ", "")

	movement := f.Departure
	if !departureBoard {
		movement = f.Arrival
	}
	scheduled := parseLocalTime(movement.ScheduledTimeLocal)
	actual := parseLocalTime(movement.ActualTimeLocal)

	scheduledTime := ""
	if scheduled != nil {
		scheduledTime = scheduled.Time
	}

	delay := "On time"
	if mins := parseDelayMinutes(f.Departure.Delay); mins > 0 {
		delay = fmt.Sprintf("+%d min", mins)
	}

	aircraft := "N/A"
	if f.Aircraft != nil && f.Aircraft.Model != "" {
		aircraft = f.Aircraft.Model
	}

	return BoardEntry{
		FlightNumber:    number,
		Origin:          f.Departure.Airport.IATA,
		OriginCity:      airportLabel(f.Departure.Airport),
		Destination:     f.Arrival.Airport.IATA,
		DestinationCity: airportLabel(f.Arrival.Airport),
		Status:          status,
		StatusDisplay:   statusDisplay(status),
		ScheduledTime:   scheduledTime,
		Scheduled:       scheduled,
		Actual:          actual,
		Delay:           delay,
		Terminal:        movement.Terminal,
		Gate:            movement.Gate,
		Aircraft:        aircraft,
	}
}

func airportLabel(a adbAirport) string {
	if a.Name != "" {
		return a.Name
	}
	return a.IATA
}

// parseLocalTime handles AeroDataBox local stamps: "2026-02-23 14:30+01:00"
// or "2026-02-23T14:30:00". Unparseable input is passed through raw.
func parseLocalTime(s string) *TimeDetail {
	if s == "" {
		return nil
	}
	clean := strings.Replace(s, " ", "T", 1)
	for _, layout := range []string{
		"2006-01-02T15:04:05-07:00",
		"2006-01-02T15:04-07:00",
		"2006-01-02T15:04:05Z",
		"2006-01-02T15:04:05",
		"2006-01-02T15:04",
	} {
		if t, err := time.Parse(layout, clean); err == nil {
			return &TimeDetail{
				ISO:  s,
				Time: t.Format("3:04 PM"),
				Date: t.Format("2006-01-02"),
				Full: t.Format("Jan 2, 3:04 PM"),
			}
		}
	}
	return &TimeDetail{ISO: s, Time: s, Full: s}
}

// parseDelayMinutes reads AeroDataBox's delay field, which is either an
// integer minute count or an ISO 8601 duration like "PT15M".
func parseDelayMinutes(raw json.RawMessage) int {
	if len(raw) == 0 {
		return 0
	}
	var mins int
	if err := json.Unmarshal(raw, &mins); err == nil {
		return mins
	}
	var iso string
	if err := json.Unmarshal(raw, &iso); err != nil {
		return 0
	}
	return parseISODurationMinutes(iso)
}

func parseISODurationMinutes(s string) int {
	s = strings.ToUpper(strings.TrimPrefix(strings.ToUpper(s), "PT"))
	mins := 0
	if i := strings.Index(s, "H"); i >= 0 {
		if h, err := strconv.Atoi(s[:i]); err == nil {
			mins += h * 60
		}
		s = s[i+1:]
	}
	if i := strings.Index(s, "M"); i >= 0 {
		if m, err := strconv.Atoi(s[:i]); err == nil {
			mins += m
		}
	}
	return mins
}

func mapStatus(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "scheduled", "expected":
		return "scheduled"
	case "departed", "en route", "airborne", "approaching":
		return "active"
	case "arrived", "landed":
		return "landed"
	case "cancelled", "canceled":
		return "cancelled"
	case "diverted":
		return "diverted"
	case "delayed":
		return "delayed"
	default:
		return "unknown"
	}
}

func statusDisplay(status string) StatusDisplay {
	switch status {
	case "scheduled":
		return StatusDisplay{Emoji: "🕐", Text: "Scheduled", Color: "gray"}
	case "active":
		return StatusDisplay{Emoji: "✈️", Text: "In Flight", Color: "blue"}
	case "landed":
		return StatusDisplay{Emoji: "✅", Text: "Landed", Color: "green"}
	case "cancelled":
		return StatusDisplay{Emoji: "❌", Text: "Cancelled", Color: "red"}
	case "incident":
		return StatusDisplay{Emoji: "⚠️", Text: "Incident", Color: "orange"}
	case "diverted":
		return StatusDisplay{Emoji: "↪️", Text: "Diverted", Color: "orange"}
	case "delayed":
		return StatusDisplay{Emoji: "⏰", Text: "Delayed", Color: "yellow"}
	default:
		return StatusDisplay{Emoji: "❓", Text: "Unknown", Color: "gray"}
	}
}
