package geocode

import (
	"context"
	"errors"
	"flight-carbon-service/internal/domain"
	"flight-carbon-service/internal/platform/metrics"
	"flight-carbon-service/internal/platform/obs"
	"flight-carbon-service/internal/ports"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	DefaultBaseURL   = "https://nominatim.openstreetmap.org"
	DefaultUserAgent = "AirTravelCarbon"
)

type NominatimConfig struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
	// Total attempts per request. Values below 1 mean a single attempt.
	MaxAttempts int
	Language    string
}

// NominatimGeocoder implements ports.BatchGeocoder against the OpenStreetMap
// Nominatim search API.
//
// It coordinates:
//   - City name normalization
//   - Optional persistent geocode caching
//   - External API calls with optional retry/backoff
//
// The geocoder is safe for concurrent use.
type NominatimGeocoder struct {
	session     *http.Client
	baseURL     string
	userAgent   string
	language    string
	maxAttempts int
	backoff     time.Duration
	cache       ports.GeocodeCache
	metrics     *metrics.Metrics
}

func NewNominatimGeocoder(
	cfg NominatimConfig,
	cache ports.GeocodeCache,
	m *metrics.Metrics,
) (*NominatimGeocoder, error) {
	if strings.TrimSpace(cfg.UserAgent) == "" {
		return nil, errors.New("nominatim user agent is empty")
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	attempts := cfg.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	lang := cfg.Language
	if lang == "" {
		lang = "en"
	}

	return &NominatimGeocoder{
		session:     &http.Client{Timeout: timeout},
		baseURL:     baseURL,
		userAgent:   cfg.UserAgent,
		language:    lang,
		maxAttempts: attempts,
		backoff:     200 * time.Millisecond,
		cache:       cache,
		metrics:     m,
	}, nil
}

// normalize collapses whitespace and lowercases, giving stable cache keys.
func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// Delegate to the batched path to reuse caching.
func (n *NominatimGeocoder) Geocode(ctx context.Context, city string) (ports.GeocodeResult, error) {
	results, err := n.GeocodeMany(ctx, []string{city})
	if err != nil {
		return ports.GeocodeResult{}, err
	}

	r, ok := results[city]
	if !ok {
		return ports.GeocodeResult{}, fmt.Errorf("geocode %q: %w", city, domain.ErrCityNotFound)
	}
	return r, nil
}

// GeocodeMany resolves each distinct name once, consulting the cache first.
// A failure is a *domain.StageError naming the city as it was given.
func (n *NominatimGeocoder) GeocodeMany(
	ctx context.Context,
	cities []string,
) (_ map[string]ports.GeocodeResult, err error) {
	defer obs.Time(ctx, "nominatim.GeocodeMany")(&err)

	if len(cities) == 0 {
		return map[string]ports.GeocodeResult{}, nil
	}

	keys := make(map[string]string, len(cities))
	uniq := make([]string, 0, len(cities))
	// First name as given per key, reported when the key fails.
	given := make(map[string]string, len(cities))
	for _, c := range cities {
		k := normalize(c)
		if k == "" {
			n.metrics.ObserveGeocode("not_found", 1)
			return nil, &domain.StageError{
				Stage: domain.StageGeocode,
				Input: c,
				Err:   fmt.Errorf("empty name: %w", domain.ErrCityNotFound),
			}
		}
		keys[c] = k

		if _, ok := given[k]; ok {
			continue
		}
		given[k] = c
		uniq = append(uniq, k)
	}

	hits := make(map[string]ports.GeocodeResult)
	if n.cache != nil {
		cached, err := n.cache.GetMany(ctx, uniq)
		if err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Msg("geocode cache read failed")
		} else {
			hits = cached
		}
	}
	n.metrics.ObserveGeocode("cache_hit", len(hits))

	misses := make([]string, 0, len(uniq))
	for _, k := range uniq {
		if _, ok := hits[k]; !ok {
			misses = append(misses, k)
		}
	}

	fresh := make(map[string]ports.GeocodeResult, len(misses))
	for _, k := range misses {
		r, err := n.search(ctx, k)
		if err != nil {
			if errors.Is(err, domain.ErrCityNotFound) {
				n.metrics.ObserveGeocode("not_found", 1)
			} else {
				n.metrics.ObserveGeocode("error", 1)
			}
			return nil, &domain.StageError{Stage: domain.StageGeocode, Input: given[k], Err: err}
		}
		n.metrics.ObserveGeocode("fetched", 1)
		fresh[k] = r
	}

	if n.cache != nil && len(fresh) > 0 {
		if err := n.cache.PutMany(ctx, fresh); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Msg("geocode cache write failed")
		}
	}

	out := make(map[string]ports.GeocodeResult, len(cities))
	for name, k := range keys {
		if r, ok := hits[k]; ok {
			out[name] = r
			continue
		}
		out[name] = fresh[k]
	}

	return out, nil
}
