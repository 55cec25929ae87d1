package cache

import (
	"context"
	"errors"
	"flight-carbon-service/internal/domain"
	"flight-carbon-service/internal/platform/obs"
	"flight-carbon-service/internal/ports"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "geocode:"

type redisEntry struct {
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	Country     string  `json:"country"`
	CountryCode string  `json:"country_code,omitempty"`
}

// RedisGeocodeCache stores geocode results as JSON strings that expire after TTL.
// A zero TTL keeps entries forever.
type RedisGeocodeCache struct {
	Client redis.UniversalClient
	TTL    time.Duration
}

func NewRedisGeocodeCache(client redis.UniversalClient, ttl time.Duration) *RedisGeocodeCache {
	return &RedisGeocodeCache{Client: client, TTL: ttl}
}

func (c *RedisGeocodeCache) GetMany(
	ctx context.Context,
	names []string,
) (_ map[string]ports.GeocodeResult, err error) {
	defer obs.Time(ctx, "geocode.cache.redis.GetMany")(&err)

	if c.Client == nil {
		return nil, errors.New("geocode cache: redis client is nil")
	}

	uniq := uniqueKeys(names)
	if len(uniq) == 0 {
		return map[string]ports.GeocodeResult{}, nil
	}

	keys := make([]string, len(uniq))
	for i, n := range uniq {
		keys[i] = redisKeyPrefix + n
	}

	vals, err := c.Client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("get geocode cache: mget: %w", err)
	}

	out := make(map[string]ports.GeocodeResult, len(uniq))
	for i, v := range vals {
		raw, ok := v.(string)
		if !ok {
			continue
		}

		var e redisEntry
		if err := json.Unmarshal([]byte(raw), &e); err != nil {
			return nil, fmt.Errorf("get geocode cache: decode %q: %w", uniq[i], err)
		}
		out[uniq[i]] = ports.GeocodeResult{
			Coordinates: domain.Coordinates{Lat: e.Lat, Lon: e.Lon},
			Country:     e.Country,
			CountryCode: e.CountryCode,
		}
	}

	return out, nil
}

func (c *RedisGeocodeCache) PutMany(ctx context.Context, results map[string]ports.GeocodeResult) (err error) {
	defer obs.Time(ctx, "geocode.cache.redis.PutMany")(&err)

	if c.Client == nil {
		return errors.New("geocode cache: redis client is nil")
	}

	if len(results) == 0 {
		return nil
	}

	pipe := c.Client.TxPipeline()
	for name, r := range results {
		if err := validEntry(name, r); err != nil {
			return err
		}

		b, err := json.Marshal(redisEntry{
			Lat:         r.Coordinates.Lat,
			Lon:         r.Coordinates.Lon,
			Country:     r.Country,
			CountryCode: r.CountryCode,
		})
		if err != nil {
			return fmt.Errorf("insert geocode cache name=%q: encode: %w", name, err)
		}
		pipe.Set(ctx, redisKeyPrefix+name, b, c.TTL)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("insert geocode cache: exec pipeline: %w", err)
	}
	return nil
}
