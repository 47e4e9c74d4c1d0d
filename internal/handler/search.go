package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/wildpass/flightsearch/internal/aggregator"
	"github.com/wildpass/flightsearch/internal/cache"
	"github.com/wildpass/flightsearch/internal/models"
)

type SearchHandler struct {
	aggregator *aggregator.Aggregator
	cache      cache.Cache
	log        *logrus.Logger
}

func NewSearchHandler(agg *aggregator.Aggregator, c cache.Cache, log *logrus.Logger) *SearchHandler {
	return &SearchHandler{
		aggregator: agg,
		cache:      c,
		log:        log,
	}
}

func (h *SearchHandler) Search(c echo.Context) error {
	startTime := time.Now()
	ctx := c.Request().Context()

	var req models.SearchRequest
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

	if cached, found := h.cache.Get(ctx, req); found {
		return c.JSON(http.StatusOK, models.SearchResponse{
			SearchParams: req,
			Metadata: models.SearchMetadata{
				TotalResults: len(cached),
				SearchTimeMs: time.Since(startTime).Milliseconds(),
				CacheHit:     true,
			},
			Flights: cached,
			Count:   len(cached),
		})
	}

	result, err := h.aggregator.Search(ctx, req)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "search_error",
			Message: "Failed to search flights: " + err.Error(),
			Code:    http.StatusInternalServerError,
		})
	}

	if err := h.cache.Set(ctx, req, result.Flights); err != nil {
		h.log.WithError(err).Warn("failed to cache search results")
	}

	return c.JSON(http.StatusOK, models.SearchResponse{
		SearchParams: req,
		Metadata: models.SearchMetadata{
			TotalResults:     len(result.Flights),
			SourcesQueried:   result.SourcesQueried,
			SourcesSucceeded: result.SourcesSucceeded,
			SourcesFailed:    result.SourcesFailed,
			FailedSources:    result.FailedSources,
			SearchTimeMs:     time.Since(startTime).Milliseconds(),
		},
		Flights: result.Flights,
		Count:   len(result.Flights),
	})
}

func (h *SearchHandler) ClearCache(c echo.Context) error {
	if err := h.cache.Clear(c.Request().Context()); err != nil {
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "cache_error",
			Message: err.Error(),
			Code:    http.StatusInternalServerError,
		})
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "Cache cleared successfully",
	})
}

func (h *SearchHandler) CacheStats(c echo.Context) error {
	return c.JSON(http.StatusOK, h.cache.Stats(c.Request().Context()))
}

func HealthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}
