package models

type SearchMetadata struct {
	TotalResults     int      `json:"total_results"`
	SourcesQueried   int      `json:"sources_queried"`
	SourcesSucceeded int      `json:"sources_succeeded"`
	SourcesFailed    int      `json:"sources_failed"`
	FailedSources    []string `json:"failed_sources,omitempty"`
	SearchTimeMs     int64    `json:"search_time_ms"`
	CacheHit         bool     `json:"cache_hit"`
}

type SearchResponse struct {
	SearchParams SearchRequest  `json:"search_params"`
	Metadata     SearchMetadata `json:"metadata"`
	Flights      []FlightLeg    `json:"flights"`
	Count        int            `json:"count"`
}

// TripPlanResponse carries at most the top 20 candidates; TotalOptions is
// the full count before truncation. DaysSearched counts departure dates
// examined (1-indexed), or the full bound when the window was exhausted.
type TripPlanResponse struct {
	Flights           []TripCandidate `json:"flights"`
	TotalOptions      int             `json:"total_options"`
	TargetDuration    string          `json:"target_duration"`
	DaysSearched      int             `json:"days_searched"`
	EarliestDeparture *string         `json:"earliest_departure"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code"`
}
