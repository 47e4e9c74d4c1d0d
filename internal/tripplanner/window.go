package tripplanner

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/wildpass/flightsearch/internal/models"
	"github.com/wildpass/flightsearch/internal/timeparse"
)

// MaxSearchDays bounds the expanding departure-date window.
const MaxSearchDays = 30

// returnOffsets are the candidate return dates around the target return
// instant, in days.
var returnOffsets = []int{-2, -1, 0, 1, 2}

// LegFetcher supplies one-way leg pools for a route and date. Satisfied
// by the aggregator through a thin adapter in the handler layer.
type LegFetcher interface {
	Search(ctx context.Context, req models.SearchRequest) ([]models.FlightLeg, error)
}

// Controller walks the expanding search window: day by day it fetches
// fresh outbound and return pools, accumulates them, and re-runs the
// combination engine until it finds candidates or exhausts the bound.
type Controller struct {
	fetcher LegFetcher
	maxDays int
	log     *logrus.Logger
}

// WindowResult reports what one full window search produced. DaysSearched
// counts the departure dates examined (1-indexed): offset+1 when results
// were found, the full bound when the window was exhausted. Exhaustion is
// not an error.
type WindowResult struct {
	Trips             []models.TripCandidate
	DaysSearched      int
	EarliestDeparture string
}

func NewController(fetcher LegFetcher, log *logrus.Logger) *Controller {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Controller{
		fetcher: fetcher,
		maxDays: MaxSearchDays,
		log:     log,
	}
}

// Plan runs the window search for one trip-plan request. Leg pools are
// never discarded between offsets, so results found on day N draw on
// everything gathered across days 0..N. Individual fetch failures shrink
// the pool instead of failing the search.
func (c *Controller) Plan(ctx context.Context, req models.TripPlanRequest) (WindowResult, error) {
	anchor, err := time.Parse(timeparse.DateLayout, req.DepartureDate)
	if err != nil {
		return WindowResult{}, fmt.Errorf("invalid departureDate %q: %w", req.DepartureDate, err)
	}

	constraints := Constraints{
		TripLength:       req.TripLength,
		TripLengthUnit:   req.TripLengthUnit,
		NonstopPreferred: req.NonstopPreferred,
		MaxDuration:      req.MaxTripDuration,
		MaxDurationUnit:  req.MaxTripDurationUnit,
	}

	tripHours := req.TripLength
	if req.TripLengthUnit != models.UnitHours {
		tripHours = req.TripLength * 24
	}

	var outboundPool, returnPool []models.FlightLeg

	for day := 0; day < c.maxDays; day++ {
		if err := ctx.Err(); err != nil {
			return WindowResult{}, err
		}

		departDate := anchor.AddDate(0, 0, day)
		departStr := departDate.Format(timeparse.DateLayout)
		targetReturn := departDate.Add(time.Duration(tripHours * float64(time.Hour)))

		c.log.WithFields(logrus.Fields{
			"departure_date": departStr,
			"day":            day + 1,
			"max_days":       c.maxDays,
		}).Debug("searching departure date")

		outboundPool = append(outboundPool, c.fetch(ctx, req.Origins, req.Destinations, departStr)...)

		for _, offset := range returnOffsets {
			returnStr := targetReturn.AddDate(0, 0, offset).Format(timeparse.DateLayout)
			returnPool = append(returnPool, c.fetch(ctx, req.Destinations, req.Origins, returnStr)...)
		}

		trips := FindOptimalTrips(outboundPool, returnPool, constraints)
		if len(trips) > 0 {
			c.log.WithFields(logrus.Fields{
				"trips": len(trips),
				"day":   day + 1,
			}).Info("trip planner found matching trips")
			return WindowResult{
				Trips:             trips,
				DaysSearched:      day + 1,
				EarliestDeparture: departStr,
			}, nil
		}
	}

	return WindowResult{DaysSearched: c.maxDays}, nil
}

func (c *Controller) fetch(ctx context.Context, origins, destinations []string, date string) []models.FlightLeg {
	legs, err := c.fetcher.Search(ctx, models.SearchRequest{
		Origins:       origins,
		Destinations:  destinations,
		TripType:      models.TripTypeOneWay,
		DepartureDate: date,
	})
	if err != nil {
		c.log.WithError(err).WithField("date", date).Warn("leg fetch failed, continuing with smaller pool")
		return nil
	}
	return legs
}
