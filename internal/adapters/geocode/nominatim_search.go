package geocode

import (
	"context"
	"flight-carbon-service/internal/domain"
	"flight-carbon-service/internal/platform/obs"
	"flight-carbon-service/internal/ports"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

type searchResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
	Address     struct {
		Country     string `json:"country"`
		CountryCode string `json:"country_code"`
	} `json:"address"`
}

func (n *NominatimGeocoder) searchRequest(ctx context.Context, city string) (*http.Request, error) {
	req, err := n.newRequest(ctx, http.MethodGet, n.baseURL+"/search")
	if err != nil {
		return nil, err
	}

	q := req.URL.Query()
	q.Set("q", city)
	q.Set("format", "jsonv2")
	q.Set("limit", "1")
	q.Set("addressdetails", "1")
	q.Set("accept-language", n.language)
	req.URL.RawQuery = q.Encode()

	return req, nil
}

// search resolves one normalized city name via /search, taking the top match.
func (n *NominatimGeocoder) search(ctx context.Context, city string) (_ ports.GeocodeResult, err error) {
	defer obs.Time(ctx, "nominatim.search")(&err)

	start := time.Now()
	resp, err := n.doWithRetry(ctx, func() (*http.Request, error) {
		return n.searchRequest(ctx, city)
	})
	n.metrics.ObserveGeocodeLatency(time.Since(start))
	if err != nil {
		return ports.GeocodeResult{}, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	var decoded []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return ports.GeocodeResult{}, fmt.Errorf("decode search response: %w", err)
	}

	if len(decoded) == 0 {
		return ports.GeocodeResult{}, domain.ErrCityNotFound
	}

	return toResult(decoded[0])
}

func toResult(r searchResult) (ports.GeocodeResult, error) {
	lat, err := strconv.ParseFloat(strings.TrimSpace(r.Lat), 64)
	if err != nil {
		return ports.GeocodeResult{}, fmt.Errorf("parse lat %q: %w", r.Lat, domain.ErrInvalidCoordinates)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(r.Lon), 64)
	if err != nil {
		return ports.GeocodeResult{}, fmt.Errorf("parse lon %q: %w", r.Lon, domain.ErrInvalidCoordinates)
	}

	coords := domain.Coordinates{Lat: lat, Lon: lon}
	if err := coords.Validate(); err != nil {
		return ports.GeocodeResult{}, err
	}

	country := strings.TrimSpace(r.Address.Country)
	if country == "" {
		// Last display_name component is the country.
		parts := strings.Split(r.DisplayName, ",")
		country = strings.TrimSpace(parts[len(parts)-1])
	}

	return ports.GeocodeResult{
		Coordinates: coords,
		Country:     country,
		CountryCode: strings.ToUpper(strings.TrimSpace(r.Address.CountryCode)),
	}, nil
}
