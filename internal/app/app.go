// Package app builds the journey calculator and its adapters from configuration.
// It is shared by the CLI and the HTTP server.
package app

import (
	"context"
	"errors"
	"flight-carbon-service/internal/adapters/cache"
	"flight-carbon-service/internal/adapters/continent"
	"flight-carbon-service/internal/adapters/geocode"
	"flight-carbon-service/internal/carbon"
	"flight-carbon-service/internal/config"
	"flight-carbon-service/internal/platform/db"
	"flight-carbon-service/internal/platform/metrics"
	"flight-carbon-service/internal/ports"
	"flight-carbon-service/internal/services"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

type App struct {
	Journeys *services.JourneyCalculator
	Metrics  *metrics.Metrics

	closers []func() error
}

// New wires the adapters selected by cfg. A nil reg disables metrics.
// Close releases any cache connections.
func New(ctx context.Context, cfg *config.Config, reg prometheus.Registerer) (*App, error) {
	a := &App{}
	if reg != nil {
		a.Metrics = metrics.New(reg)
	}

	table, err := carbon.LoadLoadFactorTable(cfg.PLFTablePath, cfg.PTFFTablePath)
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}

	resolver, err := continent.LoadTable(cfg.CountryTablePath)
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}

	geocodeCache, err := a.openCache(ctx, cfg)
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("app: %w", err)
	}

	geocoder, err := geocode.NewNominatimGeocoder(geocode.NominatimConfig{
		BaseURL:     cfg.NominatimURL,
		UserAgent:   cfg.NominatimUserAgent,
		Timeout:     cfg.GeocodeTimeout,
		MaxAttempts: cfg.GeocodeMaxAttempts,
	}, geocodeCache, a.Metrics)
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("app: %w", err)
	}

	a.Journeys = services.NewJourneyCalculator(geocoder, resolver, carbon.NewCalculator(table), a.Metrics)
	return a, nil
}

func (a *App) openCache(ctx context.Context, cfg *config.Config) (ports.GeocodeCache, error) {
	logger := zerolog.Ctx(ctx)

	switch cfg.GeocodeCache {
	case config.CacheSQLite:
		if dir := filepath.Dir(cfg.DBPath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("open geocode cache: %w", err)
			}
		}
		conn, err := db.OpenSQLite(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("open geocode cache: %w", err)
		}
		a.closers = append(a.closers, conn.Close)
		if err := cache.InitSchema(ctx, conn, cache.DialectSQLite); err != nil {
			return nil, fmt.Errorf("open geocode cache: %w", err)
		}
		logger.Info().Str("cache", cfg.GeocodeCache).Str("path", cfg.DBPath).Msg("geocode cache ready")
		return cache.NewSqliteGeocodeCache(conn), nil

	case config.CachePostgres:
		conn, err := db.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("open geocode cache: %w", err)
		}
		a.closers = append(a.closers, conn.Close)
		if err := cache.InitSchema(ctx, conn, cache.DialectPostgres); err != nil {
			return nil, fmt.Errorf("open geocode cache: %w", err)
		}
		logger.Info().Str("cache", cfg.GeocodeCache).Msg("geocode cache ready")
		return cache.NewSQLGeocodeCache(conn), nil

	case config.CacheRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		a.closers = append(a.closers, client.Close)
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("open geocode cache: ping redis %s: %w", cfg.RedisAddr, err)
		}
		logger.Info().Str("cache", cfg.GeocodeCache).Str("addr", cfg.RedisAddr).Msg("geocode cache ready")
		return cache.NewRedisGeocodeCache(client, cfg.GeocodeCacheTTL), nil

	default:
		return nil, nil
	}
}

func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
