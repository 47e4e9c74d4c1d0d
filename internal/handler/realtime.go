package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/wildpass/flightsearch/internal/models"
	"github.com/wildpass/flightsearch/internal/realtime"
)

type RealtimeHandler struct {
	service *realtime.Service
}

func NewRealtimeHandler(service *realtime.Service) *RealtimeHandler {
	return &RealtimeHandler{service: service}
}

func (h *RealtimeHandler) FlightStatus(c echo.Context) error {
	number := strings.TrimSpace(c.Param("number"))
	if number == "" {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "validation_error",
			Message: "flight number is required",
			Code:    http.StatusBadRequest,
		})
	}

	status, err := h.service.FlightStatus(c.Request().Context(), number)
	if err != nil {
		return c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "not_found",
			Message: err.Error(),
			Code:    http.StatusNotFound,
		})
	}
	return c.JSON(http.StatusOK, status)
}

func (h *RealtimeHandler) RouteFlights(c echo.Context) error {
	origin := strings.ToUpper(strings.TrimSpace(c.QueryParam("origin")))
	destination := strings.ToUpper(strings.TrimSpace(c.QueryParam("destination")))
	if origin == "" || destination == "" {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "validation_error",
			Message: "origin and destination query parameters are required",
			Code:    http.StatusBadRequest,
		})
	}
	airline := strings.ToUpper(strings.TrimSpace(c.QueryParam("airline")))
	if airline == "" {
		airline = "F9"
	}

	return c.JSON(http.StatusOK, h.service.RouteFlights(c.Request().Context(), origin, destination, airline))
}

func (h *RealtimeHandler) Departures(c echo.Context) error {
	return h.board(c, h.service.Departures)
}

func (h *RealtimeHandler) Arrivals(c echo.Context) error {
	return h.board(c, h.service.Arrivals)
}

func (h *RealtimeHandler) board(c echo.Context, fetch func(ctx context.Context, airport, airline string) realtime.Board) error {
	airport := strings.ToUpper(strings.TrimSpace(c.Param("airport")))
	if len(airport) != 3 {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "validation_error",
			Message: "airport must be a 3-letter IATA code",
			Code:    http.StatusBadRequest,
		})
	}
	airline := strings.ToUpper(strings.TrimSpace(c.QueryParam("airline")))
	if airline == "" {
		airline = "F9"
	}
	return c.JSON(http.StatusOK, fetch(c.Request().Context(), airport, airline))
}
