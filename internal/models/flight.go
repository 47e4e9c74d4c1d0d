package models

// DurationUnknown marks a leg whose duration could not be determined from
// the upstream payload. Distinguishes "unknown" from a zero-minute flight.
const DurationUnknown = -1

// FlightLeg is the canonical flight record every source adapter emits.
// Constructed once by a normalizer (or the mock generator), immutable
// afterwards. Optional upstream fields map to nil, never "" or 0.
type FlightLeg struct {
	ID              string             `json:"id"`
	Source          string             `json:"source"`
	Origin          string             `json:"origin"`
	Destination     string             `json:"destination"`
	DepartureDate   string             `json:"departure_date"`
	DepartureTime   string             `json:"departure_time"`
	ArrivalDate     string             `json:"arrival_date"`
	ArrivalTime     string             `json:"arrival_time"`
	DurationMinutes int                `json:"duration_minutes"`
	Duration        string             `json:"duration"`
	Stops           int                `json:"stops"`
	Price           *float64           `json:"price"`
	PriceFormatted  string             `json:"price_formatted,omitempty"`
	Currency        string             `json:"currency"`
	Airline         string             `json:"airline"`
	FlightNumber    string             `json:"flight_number"`
	Aircraft        *string            `json:"aircraft"`
	TravelClass     *string            `json:"travel_class"`
	IsRoundTrip     bool               `json:"is_round_trip"`
	SeatsRemaining  *int               `json:"seats_remaining"`
	GoWildEligible  bool               `json:"gowild_eligible"`
	Blackout        BlackoutAnnotation `json:"blackout_dates"`
}

// BlackoutPeriod is one calendar range during which loyalty redemption is
// disallowed or flagged.
type BlackoutPeriod struct {
	Start       string `json:"start"`
	End         string `json:"end"`
	Description string `json:"description"`
}

// BlackoutAnnotation is the result of checking a departure (and optional
// return) date against the blackout calendar.
type BlackoutAnnotation struct {
	Affected bool             `json:"affected"`
	Periods  []BlackoutPeriod `json:"periods,omitempty"`
}

// TripCandidate pairs an outbound leg with an optional return leg to form
// one bookable itinerary. Return is nil for one-way trips.
type TripCandidate struct {
	Outbound             FlightLeg  `json:"outbound"`
	Return               *FlightLeg `json:"return,omitempty"`
	TotalDurationMinutes int        `json:"total_duration_minutes"`
	DurationDeltaMinutes int        `json:"duration_delta_minutes"`
	Nonstop              bool       `json:"nonstop"`
	TotalPrice           float64    `json:"total_price"`
}
