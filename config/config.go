package config

import (
	"log"
	"os"
	"time"
)

const (
	defaultSearchURL = "https://places.googleapis.com/v1/places:searchText"
	defaultCacheTTL  = 12 * time.Hour
	defaultTimeout   = 15 * time.Second
)

// Config holds runtime settings read from the environment. The places API key
// is deliberately not loaded here: the upstream client reads it per request,
// so a missing key surfaces as an authorization failure from the API instead
// of a startup error.
type Config struct {
	Port           string
	SearchURL      string
	CacheTTL       time.Duration
	RequestTimeout time.Duration
	LanguageCode   string
	RegionCode     string
}

func Load() *Config {
	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		SearchURL:      getEnv("PLACES_SEARCH_URL", defaultSearchURL),
		CacheTTL:       defaultCacheTTL,
		RequestTimeout: defaultTimeout,
		LanguageCode:   getEnv("PLACES_LANGUAGE_CODE", "en"),
		RegionCode:     getEnv("PLACES_REGION_CODE", "US"),
	}

	if raw := os.Getenv("PLACES_CACHE_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			log.Printf("Invalid PLACES_CACHE_TTL %q, using default %s", raw, defaultCacheTTL)
		} else {
			cfg.CacheTTL = ttl
		}
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
