package geolocation

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/vivasaude/consultaprecos/internal/domain/providers"
)

const (
	openWeatherGeocodeURL = "https://api.openweathermap.org/geo/1.0/direct"
	openWeatherFindURL    = "https://api.openweathermap.org/data/2.5/find"
	defaultNearbyCacheTTL = 60 * 60 * 24 * 30
	defaultNearbyCount    = 10
	defaultHTTPTimeout    = 8 * time.Second
)

// OpenWeatherProvider implements the GeolocationProvider using the
// OpenWeather geocoding and "find" APIs: the origin city is geocoded to
// coordinates, then the find endpoint returns the cities around that point.
type OpenWeatherProvider struct {
	apiKey     string
	country    string
	httpClient *http.Client
	cache      providers.CacheProvider
	geocodeURL string
	findURL    string
}

// NewOpenWeatherProvider creates a new OpenWeather geolocation provider.
func NewOpenWeatherProvider(apiKey, country string, cache providers.CacheProvider) providers.GeolocationProvider {
	return NewOpenWeatherProviderWithOptions(apiKey, country, cache, "", "", nil)
}

// NewOpenWeatherProviderWithOptions allows overriding the endpoint URLs and
// HTTP client (used for tests).
func NewOpenWeatherProviderWithOptions(apiKey, country string, cache providers.CacheProvider, geocodeURL, findURL string, httpClient *http.Client) providers.GeolocationProvider {
	if strings.TrimSpace(geocodeURL) == "" {
		geocodeURL = openWeatherGeocodeURL
	}
	if strings.TrimSpace(findURL) == "" {
		findURL = openWeatherFindURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &OpenWeatherProvider{
		apiKey:     apiKey,
		country:    country,
		httpClient: httpClient,
		cache:      cache,
		geocodeURL: geocodeURL,
		findURL:    findURL,
	}
}

// NearbyCityNames returns the names of cities around the given city. The
// response may include the origin city itself and repeat names with
// different casing; callers are expected to normalize.
func (p *OpenWeatherProvider) NearbyCityNames(ctx context.Context, city, state string) ([]string, error) {
	trimmed := strings.TrimSpace(city)
	if trimmed == "" {
		return nil, fmt.Errorf("city is required")
	}

	cacheKey := "geo:nearby:" + hashKey(strings.ToLower(fmt.Sprintf("%s,%s,%s", trimmed, state, p.country)))
	if p.cache != nil {
		if cached, err := p.cache.Get(ctx, cacheKey); err == nil && len(cached) > 0 {
			var names []string
			if err := json.Unmarshal(cached, &names); err == nil {
				return names, nil
			}
		}
	}

	lat, lon, err := p.geocode(ctx, trimmed, state)
	if err != nil {
		return nil, err
	}

	names, err := p.findNearby(ctx, lat, lon)
	if err != nil {
		return nil, err
	}

	if p.cache != nil {
		if payload, err := json.Marshal(names); err == nil {
			_ = p.cache.Set(ctx, cacheKey, payload, defaultNearbyCacheTTL)
		}
	}

	return names, nil
}

func (p *OpenWeatherProvider) geocode(ctx context.Context, city, state string) (float64, float64, error) {
	query := city
	if strings.TrimSpace(state) != "" {
		query += "," + state
	}
	if strings.TrimSpace(p.country) != "" {
		query += "," + p.country
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("limit", "1")

	var results []openWeatherGeocodeResult
	if err := p.doRequest(ctx, p.geocodeURL, params, &results); err != nil {
		return 0, 0, err
	}
	if len(results) == 0 {
		return 0, 0, fmt.Errorf("no results for city %q", city)
	}
	return results[0].Lat, results[0].Lon, nil
}

func (p *OpenWeatherProvider) findNearby(ctx context.Context, lat, lon float64) ([]string, error) {
	params := url.Values{}
	params.Set("lat", fmt.Sprintf("%f", lat))
	params.Set("lon", fmt.Sprintf("%f", lon))
	params.Set("cnt", fmt.Sprintf("%d", defaultNearbyCount))

	var payload openWeatherFindResponse
	if err := p.doRequest(ctx, p.findURL, params, &payload); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(payload.List))
	for _, entry := range payload.List {
		if entry.Name != "" {
			names = append(names, entry.Name)
		}
	}
	return names, nil
}

func (p *OpenWeatherProvider) doRequest(ctx context.Context, baseURL string, params url.Values, out interface{}) error {
	if p.apiKey == "" {
		return fmt.Errorf("openweather api key is required")
	}

	params.Set("appid", p.apiKey)
	reqURL := fmt.Sprintf("%s?%s", baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build geolocation request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("geolocation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("geolocation request returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode geolocation response: %w", err)
	}
	return nil
}

func hashKey(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}

type openWeatherGeocodeResult struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

type openWeatherFindResponse struct {
	List []openWeatherFindEntry `json:"list"`
}

type openWeatherFindEntry struct {
	Name string `json:"name"`
}
