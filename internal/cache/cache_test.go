package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/wildpass/flightsearch/internal/cache"
	"github.com/wildpass/flightsearch/internal/models"
)

func sampleFlights() []models.FlightLeg {
	price := 59.0
	return []models.FlightLeg{{
		ID:            "leg-1",
		Source:        "test",
		Origin:        "DEN",
		Destination:   "LAS",
		DepartureDate: "2026-03-15",
		Price:         &price,
	}}
}

// TestMemoryCache_setGet verifies the basic round trip.
func TestMemoryCache_setGet(t *testing.T) {
	c := cache.NewMemoryCache(time.Minute)
	defer c.Close()
	ctx := context.Background()

	req := models.SearchRequest{
		Origins:       []string{"DEN"},
		Destinations:  []string{"LAS"},
		TripType:      models.TripTypeOneWay,
		DepartureDate: "2026-03-15",
	}

	_, found := c.Get(ctx, req)
	require.False(t, found)

	require.NoError(t, c.Set(ctx, req, sampleFlights()))

	flights, found := c.Get(ctx, req)
	require.True(t, found)
	require.Len(t, flights, 1)
	require.Equal(t, "leg-1", flights[0].ID)
}

// TestMemoryCache_keyOrderInsensitive verifies that airport list order
// does not change the cache key: equivalent requests share an entry.
func TestMemoryCache_keyOrderInsensitive(t *testing.T) {
	c := cache.NewMemoryCache(time.Minute)
	defer c.Close()
	ctx := context.Background()

	a := models.SearchRequest{
		Origins:       []string{"DEN", "COS"},
		Destinations:  []string{"LAS", "PHX"},
		TripType:      models.TripTypeOneWay,
		DepartureDate: "2026-03-15",
	}
	b := models.SearchRequest{
		Origins:       []string{"COS", "DEN"},
		Destinations:  []string{"PHX", "LAS"},
		TripType:      models.TripTypeOneWay,
		DepartureDate: "2026-03-15",
	}

	require.NoError(t, c.Set(ctx, a, sampleFlights()))

	flights, found := c.Get(ctx, b)
	require.True(t, found)
	require.Len(t, flights, 1)
}

// TestMemoryCache_distinctRequests verifies that changing any tuple field
// produces a different key.
func TestMemoryCache_distinctRequests(t *testing.T) {
	c := cache.NewMemoryCache(time.Minute)
	defer c.Close()
	ctx := context.Background()

	base := models.SearchRequest{
		Origins:       []string{"DEN"},
		Destinations:  []string{"LAS"},
		TripType:      models.TripTypeOneWay,
		DepartureDate: "2026-03-15",
	}
	require.NoError(t, c.Set(ctx, base, sampleFlights()))

	otherDate := base
	otherDate.DepartureDate = "2026-03-16"
	_, found := c.Get(ctx, otherDate)
	require.False(t, found)

	ret := "2026-03-20"
	withReturn := base
	withReturn.TripType = models.TripTypeRoundTrip
	withReturn.ReturnDate = &ret
	_, found = c.Get(ctx, withReturn)
	require.False(t, found)
}

// TestMemoryCache_expiry verifies that entries expire on read after the
// TTL and that stats distinguish valid from expired entries.
func TestMemoryCache_expiry(t *testing.T) {
	c := cache.NewMemoryCache(30 * time.Millisecond)
	defer c.Close()
	ctx := context.Background()

	req := models.SearchRequest{
		Origins:       []string{"DEN"},
		Destinations:  []string{"LAS"},
		TripType:      models.TripTypeOneWay,
		DepartureDate: "2026-03-15",
	}
	require.NoError(t, c.Set(ctx, req, sampleFlights()))

	_, found := c.Get(ctx, req)
	require.True(t, found)

	time.Sleep(50 * time.Millisecond)

	_, found = c.Get(ctx, req)
	require.False(t, found)

	stats := c.Stats(ctx)
	require.Equal(t, 1, stats.TotalEntries)
	require.Equal(t, 0, stats.ValidEntries)
	require.Equal(t, 1, stats.ExpiredEntries)
}

// TestMemoryCache_clear verifies Clear drops every entry.
func TestMemoryCache_clear(t *testing.T) {
	c := cache.NewMemoryCache(time.Minute)
	defer c.Close()
	ctx := context.Background()

	req := models.SearchRequest{
		Origins:       []string{"DEN"},
		Destinations:  []string{"LAS"},
		TripType:      models.TripTypeOneWay,
		DepartureDate: "2026-03-15",
	}
	require.NoError(t, c.Set(ctx, req, sampleFlights()))
	require.NoError(t, c.Clear(ctx))

	_, found := c.Get(ctx, req)
	require.False(t, found)
	require.Zero(t, c.Stats(ctx).TotalEntries)
}
