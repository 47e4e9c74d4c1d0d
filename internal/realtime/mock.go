package realtime

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"
)

// Mock data for when AeroDataBox is unconfigured or unreachable.

var mockDestinations = map[string][][2]string{
	"DEN": {
		{"LAS", "Las Vegas"}, {"PHX", "Phoenix"}, {"LAX", "Los Angeles"},
		{"SFO", "San Francisco"}, {"SEA", "Seattle"}, {"ORD", "Chicago"},
		{"ATL", "Atlanta"}, {"MCO", "Orlando"}, {"MIA", "Miami"}, {"DFW", "Dallas"},
	},
	"LAS": {
		{"DEN", "Denver"}, {"LAX", "Los Angeles"}, {"SFO", "San Francisco"},
		{"PHX", "Phoenix"}, {"SEA", "Seattle"}, {"ORD", "Chicago"},
	},
	"PHX": {
		{"DEN", "Denver"}, {"LAS", "Las Vegas"}, {"LAX", "Los Angeles"},
		{"SFO", "San Francisco"}, {"ORD", "Chicago"}, {"ATL", "Atlanta"},
	},
}

var defaultMockDestinations = [][2]string{
	{"DEN", "Denver"}, {"LAS", "Las Vegas"}, {"PHX", "Phoenix"},
	{"LAX", "Los Angeles"}, {"ORD", "Chicago"}, {"ATL", "Atlanta"},
}

var mockAirportNames = map[string]string{
	"DEN": "Denver International Airport",
	"LAS": "Harry Reid International Airport",
	"PHX": "Phoenix Sky Harbor International Airport",
	"LAX": "Los Angeles International Airport",
	"SFO": "San Francisco International Airport",
	"SEA": "Seattle-Tacoma International Airport",
	"ORD": "O'Hare International Airport",
	"ATL": "Hartsfield-Jackson Atlanta International Airport",
	"MCO": "Orlando International Airport",
	"MIA": "Miami International Airport",
	"DFW": "Dallas/Fort Worth International Airport",
}

type mockGenerator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func newMockGenerator(seed int64) *mockGenerator {
	return &mockGenerator{rng: rand.New(rand.NewSource(seed))}
}

func (g *mockGenerator) singleFlight(flightNumber string) FlightStatus {
	g.mu.Lock()
	defer g.mu.Unlock()

	origins := [][2]string{{"DEN", "Denver"}, {"LAS", "Las Vegas"}, {"PHX", "Phoenix"}}
	dests := [][2]string{{"LAX", "Los Angeles"}, {"ORD", "Chicago"}, {"ATL", "Atlanta"}}

	origin := origins[g.rng.Intn(len(origins))]
	dest := dests[g.rng.Intn(len(dests))]
	status := []string{"scheduled", "active", "landed"}[g.rng.Intn(3)]

	now := time.Now()
	depTime := now.Add(-time.Duration(g.rng.Intn(3)) * time.Hour)
	arrTime := depTime.Add(time.Duration(2+g.rng.Intn(4)) * time.Hour)

	dep := Endpoint{
		Airport:     mockAirportName(origin[0], origin[1]),
		AirportCode: origin[0],
		Terminal:    "A",
		Gate:        "A23",
		Scheduled:   mockTimeDetail(depTime),
	}
	if status != "scheduled" {
		dep.Actual = mockTimeDetail(depTime)
	}

	arr := Endpoint{
		Airport:     mockAirportName(dest[0], dest[1]),
		AirportCode: dest[0],
		Terminal:    "B",
		Gate:        "B15",
		Scheduled:   mockTimeDetail(arrTime),
	}
	if status == "landed" {
		arr.Actual = mockTimeDetail(arrTime)
	}

	return FlightStatus{
		FlightNumber:  flightNumber,
		Airline:       AirlineRef{Name: "Frontier Airlines", IATA: "F9"},
		Status:        status,
		StatusDisplay: statusDisplay(status),
		Departure:     dep,
		Arrival:       arr,
		FlightDate:    now.Format("2006-01-02"),
	}
}

func (g *mockGenerator) board(airportCode, airlineCode, boardType string) Board {
	entries := g.boardEntries(airportCode, boardType, 8)
	return Board{
		Airport:     airportCode,
		Airline:     airlineCode,
		Type:        boardType,
		Count:       len(entries),
		Flights:     entries,
		LastUpdated: time.Now().Format(time.RFC3339),
		MockData:    true,
	}
}

func (g *mockGenerator) routeFlights(origin, destination, airlineCode string) RouteStatus {
	entries := g.boardEntries(origin, "departures", 1+g.rngIntn(3))
	for i := range entries {
		entries[i].Destination = destination
		entries[i].DestinationCity = mockAirportName(destination, destination)
	}
	return RouteStatus{
		Route:       origin + " -> " + destination,
		Airline:     airlineCode,
		Count:       len(entries),
		Flights:     entries,
		LastUpdated: time.Now().Format(time.RFC3339),
		MockData:    true,
	}
}

func (g *mockGenerator) boardEntries(airportCode, boardType string, count int) []BoardEntry {
	g.mu.Lock()
	defer g.mu.Unlock()

	destinations := mockDestinations[airportCode]
	if len(destinations) == 0 {
		destinations = defaultMockDestinations
	}

	statuses := []string{"scheduled", "scheduled", "scheduled", "active", "landed", "delayed"}
	base := time.Now()

	var entries []BoardEntry
	for i := 0; i < count && i < len(destinations)*2; i++ {
		dest := destinations[i%len(destinations)]
		if dest[0] == airportCode {
			continue
		}
		status := statuses[g.rng.Intn(len(statuses))]
		scheduled := base.Add(time.Duration(g.rng.Intn(240)-60) * time.Minute)

		delayMins := 0
		if status == "delayed" {
			delayMins = []int{15, 30, 45}[g.rng.Intn(3)]
		}
		delay := "On time"
		if delayMins > 0 {
			delay = fmt.Sprintf("+%d min", delayMins)
		}

		entry := BoardEntry{
			FlightNumber:    fmt.Sprintf("F9%d", 100+g.rng.Intn(2900)),
			Origin:          airportCode,
			OriginCity:      mockAirportName(airportCode, airportCode),
			Destination:     dest[0],
			DestinationCity: dest[1],
			Status:          status,
			StatusDisplay:   statusDisplay(status),
			ScheduledTime:   scheduled.Format("3:04 PM"),
			Scheduled:       mockTimeDetail(scheduled),
			Delay:           delay,
			Terminal:        []string{"A", "B", "C"}[g.rng.Intn(3)],
			Gate:            fmt.Sprintf("%s%d", []string{"A", "B", "C"}[g.rng.Intn(3)], 1+g.rng.Intn(50)),
			Aircraft:        []string{"A320", "A321", "A319"}[g.rng.Intn(3)],
		}
		if boardType == "arrivals" {
			entry.Origin, entry.Destination = entry.Destination, entry.Origin
			entry.OriginCity, entry.DestinationCity = entry.DestinationCity, entry.OriginCity
		}
		if status == "active" || status == "landed" || status == "delayed" {
			entry.Actual = mockTimeDetail(scheduled.Add(time.Duration(delayMins) * time.Minute))
		}
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].ScheduledTime < entries[j].ScheduledTime
	})
	return entries
}

func (g *mockGenerator) rngIntn(n int) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rng.Intn(n)
}

func mockAirportName(code, fallback string) string {
	if name, ok := mockAirportNames[code]; ok {
		return name
	}
	return fallback
}

func mockTimeDetail(t time.Time) *TimeDetail {
	return &TimeDetail{
		ISO:  t.Format(time.RFC3339),
		Time: t.Format("3:04 PM"),
		Date: t.Format("2006-01-02"),
		Full: t.Format("Jan 2, 3:04 PM"),
	}
}
