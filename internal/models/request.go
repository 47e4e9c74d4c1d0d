package models

const (
	TripTypeRoundTrip = "round-trip"
	TripTypeOneWay    = "one-way"

	UnitDays  = "days"
	UnitHours = "hours"
)

// SearchRequest is a plain route search: which legs exist between the
// requested airports on the requested dates.
type SearchRequest struct {
	Origins       []string `json:"origins"`
	Destinations  []string `json:"destinations"`
	TripType      string   `json:"tripType"`
	DepartureDate string   `json:"departureDate"`
	ReturnDate    *string  `json:"returnDate,omitempty"`
}

func (r *SearchRequest) Validate() error {
	if len(r.Origins) == 0 {
		return ErrMissingOrigins
	}
	if len(r.Destinations) == 0 {
		return ErrMissingDestinations
	}
	if r.DepartureDate == "" {
		return ErrMissingDepartureDate
	}
	if r.TripType == "" {
		r.TripType = TripTypeRoundTrip
	}
	return nil
}

// TripPlanRequest asks the planner for itineraries whose total trip
// duration best matches TripLength. Validated once at entry; the planner
// itself tolerates degenerate numeric values.
type TripPlanRequest struct {
	Origins             []string `json:"origins"`
	Destinations        []string `json:"destinations"`
	DepartureDate       string   `json:"departureDate"`
	TripLength          float64  `json:"tripLength"`
	TripLengthUnit      string   `json:"tripLengthUnit"`
	NonstopPreferred    bool     `json:"nonstopPreferred"`
	MaxTripDuration     *float64 `json:"maxTripDuration,omitempty"`
	MaxTripDurationUnit string   `json:"maxTripDurationUnit,omitempty"`
}

func (r *TripPlanRequest) Validate() error {
	if len(r.Origins) == 0 {
		return ErrMissingOrigins
	}
	if len(r.Destinations) == 0 {
		return ErrMissingDestinations
	}
	if r.DepartureDate == "" {
		return ErrMissingDepartureDate
	}
	if r.TripLength == 0 {
		return ErrMissingTripLength
	}
	if r.TripLengthUnit == "" {
		r.TripLengthUnit = UnitDays
	}
	if r.MaxTripDurationUnit == "" {
		r.MaxTripDurationUnit = UnitDays
	}
	return nil
}

type ValidationError string

func (e ValidationError) Error() string {
	return string(e)
}

const (
	ErrMissingOrigins       ValidationError = "origins is required"
	ErrMissingDestinations  ValidationError = "destinations is required"
	ErrMissingDepartureDate ValidationError = "departureDate is required"
	ErrMissingTripLength    ValidationError = "tripLength is required"
)
