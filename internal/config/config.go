// Package config reads service settings from the environment. A .env file in
// the working directory is loaded first when present.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Geocode cache backends.
const (
	CacheNone     = "none"
	CacheSQLite   = "sqlite"
	CachePostgres = "postgres"
	CacheRedis    = "redis"
)

type Config struct {
	Port      string
	LogLevel  string
	LogFormat string
	Verbose   bool

	NominatimURL       string
	NominatimUserAgent string
	GeocodeTimeout     time.Duration
	GeocodeMaxAttempts int

	GeocodeCache    string
	GeocodeCacheTTL time.Duration
	DBPath          string
	DatabaseURL     string
	RedisAddr       string

	PLFTablePath     string
	PTFFTablePath    string
	CountryTablePath string
}

// LoadDotEnv loads .env into the process environment. It reports whether a file was found.
func LoadDotEnv(files ...string) bool {
	return godotenv.Load(files...) == nil
}

// Get returns the environment value for key, or fallback when unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// Load builds a Config from the environment and validates it.
func Load() (*Config, error) {
	var errs []error

	cfg := &Config{
		Port:               Get("PORT", "8080"),
		LogLevel:           Get("LOG_LEVEL", "info"),
		LogFormat:          Get("LOG_FORMAT", "json"),
		Verbose:            getBool("VERBOSE", false, &errs),
		NominatimURL:       strings.TrimRight(Get("NOMINATIM_URL", "https://nominatim.openstreetmap.org"), "/"),
		NominatimUserAgent: Get("NOMINATIM_USER_AGENT", "AirTravelCarbon"),
		GeocodeTimeout:     getDuration("GEOCODE_TIMEOUT", 10*time.Second, &errs),
		GeocodeMaxAttempts: getInt("GEOCODE_MAX_ATTEMPTS", 1, &errs),
		GeocodeCache:       strings.ToLower(Get("GEOCODE_CACHE", CacheNone)),
		GeocodeCacheTTL:    getDuration("GEOCODE_CACHE_TTL", 720*time.Hour, &errs),
		DBPath:             Get("DB_PATH", "data/geocode.db"),
		DatabaseURL:        Get("DATABASE_URL", ""),
		RedisAddr:          Get("REDIS_ADDR", "localhost:6379"),
		PLFTablePath:       Get("PLF_TABLE_PATH", ""),
		PTFFTablePath:      Get("PTFF_TABLE_PATH", ""),
		CountryTablePath:   Get("COUNTRY_TABLE_PATH", ""),
	}

	if cfg.GeocodeMaxAttempts < 1 {
		errs = append(errs, fmt.Errorf("GEOCODE_MAX_ATTEMPTS must be at least 1, got %d", cfg.GeocodeMaxAttempts))
	}
	if cfg.GeocodeTimeout <= 0 {
		errs = append(errs, fmt.Errorf("GEOCODE_TIMEOUT must be positive, got %s", cfg.GeocodeTimeout))
	}

	switch cfg.GeocodeCache {
	case CacheNone, CacheSQLite, CacheRedis:
	case CachePostgres:
		if cfg.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required when GEOCODE_CACHE=postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("GEOCODE_CACHE must be one of none, sqlite, postgres, redis; got %q", cfg.GeocodeCache))
	}

	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func getInt(key string, fallback int, errs *[]error) int {
	raw := Get(key, "")
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return v
}

func getBool(key string, fallback bool, errs *[]error) bool {
	raw := Get(key, "")
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration, errs *[]error) time.Duration {
	raw := Get(key, "")
	if raw == "" {
		return fallback
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return v
}
