// Package aggregator fans one search out across every configured flight
// source, with per-source retry and rate limiting, and merges the
// normalized legs into a single pool.
package aggregator

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/wildpass/flightsearch/internal/models"
	"github.com/wildpass/flightsearch/internal/providers"
	"github.com/wildpass/flightsearch/internal/ratelimit"
)

type Config struct {
	Timeout     time.Duration
	MaxRetries  int
	RetryDelays []time.Duration
	RateLimiter *ratelimit.SourceLimiter
	Logger      *logrus.Logger
}

type Aggregator struct {
	sources []providers.FlightSource
	config  Config
	log     *logrus.Logger
}

type Result struct {
	Flights          []models.FlightLeg
	SourcesQueried   int
	SourcesSucceeded int
	SourcesFailed    int
	FailedSources    []string
}

func New(sources []providers.FlightSource, config Config) *Aggregator {
	log := config.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Aggregator{
		sources: sources,
		config:  config,
		log:     log,
	}
}

func (a *Aggregator) Search(ctx context.Context, req models.SearchRequest) (*Result, error) {
	searchCtx, cancel := context.WithTimeout(ctx, a.config.Timeout)
	defer cancel()

	result := &Result{
		Flights:        make([]models.FlightLeg, 0),
		SourcesQueried: len(a.sources),
	}

	type sourceResult struct {
		source  string
		flights []models.FlightLeg
		err     error
	}

	resultCh := make(chan sourceResult, len(a.sources))
	var wg sync.WaitGroup

	for _, s := range a.sources {
		wg.Add(1)
		go func(source providers.FlightSource) {
			defer wg.Done()

			if a.config.RateLimiter != nil {
				if err := a.config.RateLimiter.Wait(searchCtx, source.Name()); err != nil {
					resultCh <- sourceResult{
						source: source.Name(),
						err:    err,
					}
					return
				}
			}

			flights, err := a.searchWithRetry(searchCtx, source, req)
			resultCh <- sourceResult{
				source:  source.Name(),
				flights: flights,
				err:     err,
			}
		}(s)
	}

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	for sr := range resultCh {
		if sr.err != nil {
			a.log.WithError(sr.err).WithField("source", sr.source).Warn("flight source failed")
			result.SourcesFailed++
			result.FailedSources = append(result.FailedSources, sr.source)
		} else {
			result.SourcesSucceeded++
			result.Flights = append(result.Flights, sr.flights...)
		}
	}

	return result, nil
}

func (a *Aggregator) searchWithRetry(ctx context.Context, source providers.FlightSource, req models.SearchRequest) ([]models.FlightLeg, error) {
	var lastErr error

	for attempt := 0; attempt <= a.config.MaxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if attempt > 0 {
			delayIdx := attempt - 1
			if delayIdx >= len(a.config.RetryDelays) {
				delayIdx = len(a.config.RetryDelays) - 1
			}
			delay := a.config.RetryDelays[delayIdx]

			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		flights, err := source.Search(ctx, req)
		if err == nil {
			return flights, nil
		}

		lastErr = err
		a.log.WithError(err).WithFields(logrus.Fields{
			"source":  source.Name(),
			"attempt": attempt + 1,
		}).Warn("source search attempt failed")
	}

	return nil, lastErr
}
