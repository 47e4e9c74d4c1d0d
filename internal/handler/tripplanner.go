package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/wildpass/flightsearch/internal/aggregator"
	"github.com/wildpass/flightsearch/internal/models"
	"github.com/wildpass/flightsearch/internal/tripplanner"
)

// maxTripOptions caps the number of candidates returned to the client.
const maxTripOptions = 20

type TripPlannerHandler struct {
	controller *tripplanner.Controller
	log        *logrus.Logger
}

func NewTripPlannerHandler(agg *aggregator.Aggregator, log *logrus.Logger) *TripPlannerHandler {
	return &TripPlannerHandler{
		controller: tripplanner.NewController(aggregatorFetcher{agg: agg}, log),
		log:        log,
	}
}

func (h *TripPlannerHandler) Plan(c echo.Context) error {
	var req models.TripPlanRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Failed to parse request body: " + err.Error(),
			Code:    http.StatusBadRequest,
		})
	}

	if err := req.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
			Code:    http.StatusBadRequest,
		})
	}

	result, err := h.controller.Plan(c.Request().Context(), req)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "trip_plan_error",
			Message: err.Error(),
			Code:    http.StatusBadRequest,
		})
	}

	trips := result.Trips
	total := len(trips)
	if total > maxTripOptions {
		trips = trips[:maxTripOptions]
	}

	resp := models.TripPlanResponse{
		Flights:        trips,
		TotalOptions:   total,
		TargetDuration: fmt.Sprintf("%g %s", req.TripLength, req.TripLengthUnit),
		DaysSearched:   result.DaysSearched,
	}
	if result.EarliestDeparture != "" {
		resp.EarliestDeparture = &result.EarliestDeparture
	}

	return c.JSON(http.StatusOK, resp)
}

// aggregatorFetcher adapts the aggregator to the planner's leg-pool
// interface.
type aggregatorFetcher struct {
	agg *aggregator.Aggregator
}

func (f aggregatorFetcher) Search(ctx context.Context, req models.SearchRequest) ([]models.FlightLeg, error) {
	result, err := f.agg.Search(ctx, req)
	if err != nil {
		return nil, err
	}
	return result.Flights, nil
}
