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

// SQLite backed cache mapping normalized city names to geocode results.
type SqliteGeocodeCache struct {
	DB *sql.DB
}

func NewSqliteGeocodeCache(db *sql.DB) *SqliteGeocodeCache {
	return &SqliteGeocodeCache{DB: db}
}

// Fetch cached results for the given names.
func (s *SqliteGeocodeCache) GetMany(
	ctx context.Context,
	names []string,
) (_ map[string]ports.GeocodeResult, err error) {
	defer obs.Time(ctx, "geocode.cache.sqlite.GetMany")(&err)

	if s.DB == nil {
		return nil, errors.New("geocode cache: db is nil")
	}

	uniq := uniqueKeys(names)
	if len(uniq) == 0 {
		return map[string]ports.GeocodeResult{}, nil
	}

	ph := make([]string, len(uniq))
	args := make([]any, len(uniq))
	for i, n := range uniq {
		ph[i] = "?"
		args[i] = n
	}

	// SQLite cannot bind a slice to IN (...); only placeholders are interpolated.
	q := fmt.Sprintf(`
	SELECT name, lat, lon, country, country_code
    FROM geocode_cache
    WHERE name IN (%s);
	`, strings.Join(ph, ","))

	rows, err := s.DB.QueryContext(ctx, q, args...)
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
func (s *SqliteGeocodeCache) PutMany(ctx context.Context, results map[string]ports.GeocodeResult) (err error) {
	defer obs.Time(ctx, "geocode.cache.sqlite.PutMany")(&err)

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
	INSERT OR REPLACE INTO geocode_cache (
        name,
        lat,
        lon,
        country,
        country_code,
        updated_at
    )
    VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP);
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
