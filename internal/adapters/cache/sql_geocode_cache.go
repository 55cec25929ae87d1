package cache

import (
	"context"
	"database/sql"
	"errors"
	"flight-carbon-service/internal/platform/obs"
	"flight-carbon-service/internal/ports"
	"fmt"
	"strings"
)

// SQLGeocodeCache is a Postgres-backed cache mapping normalized city names to
// geocode results.
type SQLGeocodeCache struct {
	DB *sql.DB
}

func NewSQLGeocodeCache(db *sql.DB) *SQLGeocodeCache {
	return &SQLGeocodeCache{DB: db}
}

// Fetch cached results for the given names.
func (s *SQLGeocodeCache) GetMany(
	ctx context.Context,
	names []string,
) (_ map[string]ports.GeocodeResult, err error) {
	defer obs.Time(ctx, "geocode.cache.postgres.GetMany")(&err)

	if s.DB == nil {
		return nil, errors.New("geocode cache: db is nil")
	}

	uniq := uniqueKeys(names)
	if len(uniq) == 0 {
		return map[string]ports.GeocodeResult{}, nil
	}

	q := `
	SELECT name, lat, lon, country, country_code
    FROM geocode_cache
    WHERE name = ANY($1::text[]);
	`

	rows, err := s.DB.QueryContext(ctx, q, uniq)
	if err != nil {
		return nil, fmt.Errorf("get geocode cache: query geocode_cache table: %w", err)
	}
	defer rows.Close()

	out := make(map[string]ports.GeocodeResult, len(uniq))
	for rows.Next() {
		var name string
		var r ports.GeocodeResult
		if err := rows.Scan(&name, &r.Coordinates.Lat, &r.Coordinates.Lon, &r.Country, &r.CountryCode); err != nil {
			return nil, fmt.Errorf("get geocode cache: scan rows: %w", err)
		}
		out[name] = r
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get geocode cache: row iteration: %w", err)
	}

	return out, nil
}

// Store name -> result mappings, replacing existing rows.
func (s *SQLGeocodeCache) PutMany(ctx context.Context, results map[string]ports.GeocodeResult) (err error) {
	defer obs.Time(ctx, "geocode.cache.postgres.PutMany")(&err)

	if s.DB == nil {
		return errors.New("geocode cache: db is nil")
	}

	if len(results) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("insert geocode cache: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO geocode_cache (name, lat, lon, country, country_code, updated_at)
    VALUES ($1, $2, $3, $4, $5, now())
	ON CONFLICT (name) DO UPDATE
	SET lat = EXCLUDED.lat,
		lon = EXCLUDED.lon,
		country = EXCLUDED.country,
		country_code = EXCLUDED.country_code,
		updated_at = EXCLUDED.updated_at;
	`)
	if err != nil {
		return fmt.Errorf("insert geocode cache: db prepare: %w", err)
	}
	defer stmt.Close()

	for name, r := range results {
		if err := validEntry(name, r); err != nil {
			return err
		}

		if _, err := stmt.ExecContext(ctx, name, r.Coordinates.Lat, r.Coordinates.Lon, r.Country, r.CountryCode); err != nil {
			return fmt.Errorf("insert geocode cache name=%q: %w", name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("insert geocode cache commit: %w", err)
	}

	return nil
}

func validEntry(name string, r ports.GeocodeResult) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("insert geocode cache: empty name key")
	}
	if err := r.Coordinates.Validate(); err != nil {
		return fmt.Errorf("insert geocode cache name=%q: %w", name, err)
	}
	if r.Country == "" {
		return fmt.Errorf("insert geocode cache name=%q: empty country", name)
	}
	return nil
}
