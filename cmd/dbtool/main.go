// Command dbtool creates the geocode cache schema.
//
//	dbtool -dialect postgres   # uses DATABASE_URL
//	dbtool -dialect sqlite     # uses DB_PATH
package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"flight-carbon-service/internal/adapters/cache"
	"flight-carbon-service/internal/config"
	"flight-carbon-service/internal/platform/db"
	"fmt"
	"os"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	if !config.LoadDotEnv() {
		logger.Info().Msg("no .env file found (using environment variables)")
	}

	dialect := flag.String("dialect", config.Get("DB_DIALECT", "postgres"), "postgres or sqlite")
	flag.Parse()

	d := cache.Dialect(strings.ToLower(strings.TrimSpace(*dialect)))
	conn, err := open(d)
	if err != nil {
		logger.Fatal().Err(err).Msg("open database")
	}
	defer conn.Close()

	logger.Info().Str("dialect", string(d)).Msg("initializing geocode cache schema")
	if err := cache.InitSchema(context.Background(), conn, d); err != nil {
		logger.Fatal().Err(err).Msg("schema initialization failed")
	}
	logger.Info().Msg("schema ready")
}

func open(dialect cache.Dialect) (*sql.DB, error) {
	switch dialect {
	case cache.DialectPostgres:
		databaseURL := config.Get("DATABASE_URL", "")
		if databaseURL == "" {
			return nil, errors.New("DATABASE_URL is required")
		}
		return db.Open(databaseURL)
	case cache.DialectSQLite:
		return db.OpenSQLite(config.Get("DB_PATH", "data/geocode.db"))
	default:
		return nil, fmt.Errorf("unknown dialect %q", dialect)
	}
}
