// Package cache caches search results behind an explicit interface that
// is injected into the HTTP layer. Keys are derived from the canonical
// search tuple so equivalent requests hit the same entry regardless of
// the order origins and destinations were listed in.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/wildpass/flightsearch/internal/models"
)

const keyPrefix = "flight:"

type Stats struct {
	TotalEntries   int `json:"total_entries"`
	ValidEntries   int `json:"valid_entries"`
	ExpiredEntries int `json:"expired_entries"`
}

type Cache interface {
	Get(ctx context.Context, req models.SearchRequest) ([]models.FlightLeg, bool)
	Set(ctx context.Context, req models.SearchRequest, flights []models.FlightLeg) error
	Clear(ctx context.Context) error
	Stats(ctx context.Context) Stats
	Close() error
}

// generateKey hashes the canonical tuple (sorted origins, sorted
// destinations, departure date, return date, trip type).
func generateKey(req models.SearchRequest) string {
	origins := append([]string(nil), req.Origins...)
	destinations := append([]string(nil), req.Destinations...)
	sort.Strings(origins)
	sort.Strings(destinations)

	returnDate := ""
	if req.ReturnDate != nil {
		returnDate = *req.ReturnDate
	}

	canonical := strings.Join([]string{
		strings.Join(origins, ","),
		strings.Join(destinations, ","),
		req.DepartureDate,
		returnDate,
		req.TripType,
	}, "|")

	hash := sha256.Sum256([]byte(canonical))
	return keyPrefix + hex.EncodeToString(hash[:])
}

// RedisCache is the shared deployment cache.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
}

func DefaultRedisConfig() RedisConfig {
	return RedisConfig{
		Host: "localhost",
		Port: "6379",
		TTL:  time.Hour,
	}
}

func NewRedisCache(cfg RedisConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Host + ":" + cfg.Port,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisCache{
		client: client,
		ttl:    cfg.TTL,
	}, nil
}

func (c *RedisCache) Get(ctx context.Context, req models.SearchRequest) ([]models.FlightLeg, bool) {
	data, err := c.client.Get(ctx, generateKey(req)).Bytes()
	if err != nil {
		return nil, false
	}

	var flights []models.FlightLeg
	if err := json.Unmarshal(data, &flights); err != nil {
		return nil, false
	}

	return flights, true
}

func (c *RedisCache) Set(ctx context.Context, req models.SearchRequest, flights []models.FlightLeg) error {
	data, err := json.Marshal(flights)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, generateKey(req), data, c.ttl).Err()
}

func (c *RedisCache) Clear(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, keyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

func (c *RedisCache) Stats(ctx context.Context) Stats {
	var stats Stats
	iter := c.client.Scan(ctx, 0, keyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		stats.TotalEntries++
	}
	// Redis evicts on expiry, so everything still present is valid.
	stats.ValidEntries = stats.TotalEntries
	return stats
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

// MemoryCache is the single-process fallback when Redis is not
// configured. Entries keep their insertion time and are checked for
// expiry on read.
type MemoryCache struct {
	ttl time.Duration

	mu      sync.RWMutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	flights    []models.FlightLeg
	insertedAt time.Time
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		ttl:     ttl,
		entries: make(map[string]memoryEntry),
	}
}

func (c *MemoryCache) Get(ctx context.Context, req models.SearchRequest) ([]models.FlightLeg, bool) {
	c.mu.RLock()
	entry, ok := c.entries[generateKey(req)]
	c.mu.RUnlock()

	if !ok || time.Since(entry.insertedAt) >= c.ttl {
		return nil, false
	}
	return entry.flights, true
}

func (c *MemoryCache) Set(ctx context.Context, req models.SearchRequest, flights []models.FlightLeg) error {
	c.mu.Lock()
	c.entries[generateKey(req)] = memoryEntry{
		flights:    flights,
		insertedAt: time.Now(),
	}
	c.mu.Unlock()
	return nil
}

func (c *MemoryCache) Clear(ctx context.Context) error {
	c.mu.Lock()
	c.entries = make(map[string]memoryEntry)
	c.mu.Unlock()
	return nil
}

func (c *MemoryCache) Stats(ctx context.Context) Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	stats := Stats{TotalEntries: len(c.entries)}
	for _, entry := range c.entries {
		if time.Since(entry.insertedAt) < c.ttl {
			stats.ValidEntries++
		}
	}
	stats.ExpiredEntries = stats.TotalEntries - stats.ValidEntries
	return stats
}

func (c *MemoryCache) Close() error {
	return nil
}
