package main

import (
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"github.com/wildpass/flightsearch/internal/aggregator"
	"github.com/wildpass/flightsearch/internal/blackout"
	"github.com/wildpass/flightsearch/internal/cache"
	"github.com/wildpass/flightsearch/internal/handler"
	"github.com/wildpass/flightsearch/internal/providers"
	"github.com/wildpass/flightsearch/internal/ratelimit"
	"github.com/wildpass/flightsearch/internal/realtime"
)

type Config struct {
	Port          string
	TargetAirline string
	DevMode       bool

	SerpAPIKey        string
	KiwiAPIKey        string
	AviationStackKey  string
	AeroDataBoxKey    string
	BlackoutCacheFile string

	CacheEnabled  bool
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisTTL      time.Duration

	SearchTimeout time.Duration
}

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if level, err := logrus.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		log.SetLevel(level)
	}

	cfg := loadConfig()

	updater := blackout.NewUpdater(cfg.BlackoutCacheFile, log)
	updater.Load()
	go updater.UpdateIfNeeded()

	sources := initializeSources(cfg, updater, log)
	log.WithField("sources", len(sources)).Info("flight sources initialized")

	rateLimiter := ratelimit.NewSourceLimiterWithDefaults()
	rateLimiter.SetSourceLimit("serpapi", 5, 10)
	rateLimiter.SetSourceLimit("kiwi", 10, 20)
	rateLimiter.SetSourceLimit("aviationstack", 1, 5)

	agg := aggregator.New(sources, aggregator.Config{
		Timeout:    cfg.SearchTimeout,
		MaxRetries: 3,
		RetryDelays: []time.Duration{
			500 * time.Millisecond,
			1 * time.Second,
			2 * time.Second,
		},
		RateLimiter: rateLimiter,
		Logger:      log,
	})

	var flightCache cache.Cache
	if cfg.CacheEnabled {
		redisCache, err := cache.NewRedisCache(cache.RedisConfig{
			Host:     cfg.RedisHost,
			Port:     cfg.RedisPort,
			Password: cfg.RedisPassword,
			TTL:      cfg.RedisTTL,
		})
		if err != nil {
			log.WithError(err).Warn("redis unavailable, falling back to in-memory cache")
			flightCache = cache.NewMemoryCache(cfg.RedisTTL)
		} else {
			flightCache = redisCache
			log.WithFields(logrus.Fields{
				"host": cfg.RedisHost + ":" + cfg.RedisPort,
				"ttl":  cfg.RedisTTL,
			}).Info("redis cache enabled")
		}
	} else {
		flightCache = cache.NewMemoryCache(cfg.RedisTTL)
		log.Info("using in-memory cache")
	}
	defer flightCache.Close()

	realtimeService := realtime.NewService(cfg.AeroDataBoxKey, log)

	searchHandler := handler.NewSearchHandler(agg, flightCache, log)
	tripHandler := handler.NewTripPlannerHandler(agg, log)
	blackoutHandler := handler.NewBlackoutHandler(updater)
	realtimeHandler := handler.NewRealtimeHandler(realtimeService)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestID())

	api := e.Group("/api")
	api.POST("/search", searchHandler.Search)
	api.POST("/trip-planner", tripHandler.Plan)
	api.GET("/destinations", handler.DestinationsHandler)
	api.GET("/blackout-dates", blackoutHandler.Current)
	api.POST("/blackout-dates/refresh", blackoutHandler.Refresh)
	api.GET("/realtime/flight/:number", realtimeHandler.FlightStatus)
	api.GET("/realtime/route", realtimeHandler.RouteFlights)
	api.GET("/realtime/departures/:airport", realtimeHandler.Departures)
	api.GET("/realtime/arrivals/:airport", realtimeHandler.Arrivals)
	api.POST("/cache/clear", searchHandler.ClearCache)
	api.GET("/cache/stats", searchHandler.CacheStats)
	e.GET("/health", handler.HealthHandler)

	log.WithField("port", cfg.Port).Info("starting flight search server")
	if err := e.Start(":" + cfg.Port); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}

func loadConfig() Config {
	cfg := Config{
		Port:              getEnv("PORT", "8080"),
		TargetAirline:     getEnv("TARGET_AIRLINE", "F9"),
		SerpAPIKey:        getEnv("SERPAPI_KEY", ""),
		KiwiAPIKey:        getEnv("KIWI_API_KEY", ""),
		AviationStackKey:  getEnv("AVIATIONSTACK_API_KEY", ""),
		AeroDataBoxKey:    getEnv("AERODATABOX_API_KEY", ""),
		BlackoutCacheFile: getEnv("BLACKOUT_CACHE_FILE", "blackout_dates.json"),
		CacheEnabled:      getEnvBool("CACHE_ENABLED", false),
		RedisHost:         getEnv("REDIS_HOST", "localhost"),
		RedisPort:         getEnv("REDIS_PORT", "6379"),
		RedisPassword:     getEnv("REDIS_PASSWORD", ""),
		RedisTTL:          getEnvDuration("REDIS_TTL", time.Hour),
		SearchTimeout:     getEnvDuration("SEARCH_TIMEOUT", 30*time.Second),
	}

	// With no upstream keys configured the server runs entirely on mock
	// data unless DEV_MODE is set explicitly.
	noKeys := cfg.SerpAPIKey == "" && cfg.KiwiAPIKey == "" && cfg.AviationStackKey == ""
	cfg.DevMode = getEnvBool("DEV_MODE", noKeys)

	return cfg
}

func initializeSources(cfg Config, updater *blackout.Updater, log *logrus.Logger) []providers.FlightSource {
	var sources []providers.FlightSource

	if cfg.DevMode {
		log.Info("dev mode: serving generated mock flights")
		return []providers.FlightSource{
			providers.NewMockSource(time.Now().UnixNano(), cfg.TargetAirline, updater),
		}
	}

	if cfg.SerpAPIKey != "" {
		sources = append(sources, providers.NewSerpAPISource(cfg.SerpAPIKey, cfg.TargetAirline, updater, log))
	}
	if cfg.KiwiAPIKey != "" {
		sources = append(sources, providers.NewKiwiSource(cfg.KiwiAPIKey, cfg.TargetAirline, updater, log))
	}
	if cfg.AviationStackKey != "" {
		sources = append(sources, providers.NewAviationStackSource(cfg.AviationStackKey, cfg.TargetAirline, updater, log))
	}

	if len(sources) == 0 {
		log.Warn("no upstream API keys configured, serving generated mock flights")
		sources = append(sources, providers.NewMockSource(time.Now().UnixNano(), cfg.TargetAirline, updater))
	}
	return sources
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return duration
}
