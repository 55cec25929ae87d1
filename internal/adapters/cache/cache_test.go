package cache

import (
	"context"
	"database/sql"
	"flight-carbon-service/internal/domain"
	"flight-carbon-service/internal/ports"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

var (
	london = ports.GeocodeResult{
		Coordinates: domain.Coordinates{Lat: 51.5072, Lon: -0.1276},
		Country:     "United Kingdom",
		CountryCode: "GB",
	}
	paris = ports.GeocodeResult{
		Coordinates: domain.Coordinates{Lat: 48.8566, Lon: 2.3522},
		Country:     "France",
		CountryCode: "FR",
	}
)

func openSQLite(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "geocode.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, InitSchema(context.Background(), db, DialectSQLite))
	return db
}

func TestSqliteGeocodeCache_RoundTrip(t *testing.T) {
	ctx := context.Background()
	c := NewSqliteGeocodeCache(openSQLite(t))

	got, err := c.GetMany(ctx, []string{"london"})
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, c.PutMany(ctx, map[string]ports.GeocodeResult{"london": london, "paris": paris}))

	got, err = c.GetMany(ctx, []string{"london", "paris", "london", " ", "tokyo"})
	require.NoError(t, err)
	assert.Equal(t, map[string]ports.GeocodeResult{"london": london, "paris": paris}, got)
}

func TestSqliteGeocodeCache_Replace(t *testing.T) {
	ctx := context.Background()
	c := NewSqliteGeocodeCache(openSQLite(t))

	require.NoError(t, c.PutMany(ctx, map[string]ports.GeocodeResult{"paris": london}))
	require.NoError(t, c.PutMany(ctx, map[string]ports.GeocodeResult{"paris": paris}))

	got, err := c.GetMany(ctx, []string{"paris"})
	require.NoError(t, err)
	assert.Equal(t, paris, got["paris"])
}

func TestSqliteGeocodeCache_RejectsInvalidEntries(t *testing.T) {
	ctx := context.Background()
	c := NewSqliteGeocodeCache(openSQLite(t))

	err := c.PutMany(ctx, map[string]ports.GeocodeResult{" ": london})
	assert.Error(t, err)

	bad := london
	bad.Coordinates.Lat = 120
	err = c.PutMany(ctx, map[string]ports.GeocodeResult{"london": bad})
	assert.ErrorIs(t, err, domain.ErrInvalidCoordinates)

	got, err := c.GetMany(ctx, []string{"london"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSqliteGeocodeCache_NilDB(t *testing.T) {
	c := NewSqliteGeocodeCache(nil)
	_, err := c.GetMany(context.Background(), []string{"london"})
	assert.Error(t, err)
}

func TestInitSchema_UnknownDialect(t *testing.T) {
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "x.db"))
	require.NoError(t, err)
	defer db.Close()

	assert.Error(t, InitSchema(context.Background(), db, Dialect("oracle")))
	assert.Error(t, InitSchema(context.Background(), nil, DialectSQLite))
}

func newRedisCache(t *testing.T, ttl time.Duration) (*RedisGeocodeCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisGeocodeCache(client, ttl), mr
}

func TestRedisGeocodeCache_RoundTrip(t *testing.T) {
	ctx := context.Background()
	c, mr := newRedisCache(t, time.Hour)

	require.NoError(t, c.PutMany(ctx, map[string]ports.GeocodeResult{"london": london, "paris": paris}))
	assert.True(t, mr.Exists("geocode:london"))

	got, err := c.GetMany(ctx, []string{"london", "paris", "tokyo"})
	require.NoError(t, err)
	assert.Equal(t, map[string]ports.GeocodeResult{"london": london, "paris": paris}, got)
}

func TestRedisGeocodeCache_Expiry(t *testing.T) {
	ctx := context.Background()
	c, mr := newRedisCache(t, time.Minute)

	require.NoError(t, c.PutMany(ctx, map[string]ports.GeocodeResult{"london": london}))
	mr.FastForward(2 * time.Minute)

	got, err := c.GetMany(ctx, []string{"london"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRedisGeocodeCache_CorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, mr := newRedisCache(t, 0)

	require.NoError(t, mr.Set("geocode:london", "not json"))

	_, err := c.GetMany(ctx, []string{"london"})
	assert.Error(t, err)
}

func TestRedisGeocodeCache_Unavailable(t *testing.T) {
	ctx := context.Background()
	c, mr := newRedisCache(t, 0)
	mr.Close()

	_, err := c.GetMany(ctx, []string{"london"})
	assert.Error(t, err)
	assert.Error(t, c.PutMany(ctx, map[string]ports.GeocodeResult{"london": london}))
}
