package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/wildpass/flightsearch/internal/blackout"
	"github.com/wildpass/flightsearch/internal/models"
)

type BlackoutHandler struct {
	updater *blackout.Updater
}

func NewBlackoutHandler(updater *blackout.Updater) *BlackoutHandler {
	return &BlackoutHandler{updater: updater}
}

func (h *BlackoutHandler) Current(c echo.Context) error {
	return c.JSON(http.StatusOK, h.updater.Current())
}

func (h *BlackoutHandler) Refresh(c echo.Context) error {
	data, err := h.updater.Refresh()
	if err != nil {
		return c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error:   "refresh_failed",
			Message: err.Error(),
			Code:    http.StatusBadGateway,
		})
	}
	return c.JSON(http.StatusOK, data)
}
