package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
	"tripweaver/internal/models/response_models"
	"tripweaver/pkg/utils"
)

const nominatimBaseURL = "https://nominatim.openstreetmap.org"

// Nominatim's usage policy caps anonymous clients at one request per second,
// so every call goes through a shared limiter.
type GeoServiceInterface interface {
	ResolveCity(ctx context.Context, name string) (*response_models.GeoPoint, error)
	SearchCities(ctx context.Context, query string, limit int) ([]response_models.CityCandidate, error)
	ReverseCountry(ctx context.Context, lat, lng float64) (string, error)
}

type geoService struct {
	http      *http.Client
	limiter   *rate.Limiter
	baseURL   string
	userAgent string
}

func NewGeoService() GeoServiceInterface {
	return &geoService{
		http:      &http.Client{Timeout: 10 * time.Second},
		limiter:   rate.NewLimiter(rate.Every(time.Second), 1),
		baseURL:   nominatimBaseURL,
		userAgent: "tripweaver/1.0",
	}
}

// NewGeoServiceWithBase is used by tests to point at a stub server.
func NewGeoServiceWithBase(baseURL string, client *http.Client) GeoServiceInterface {
	return &geoService{
		http:      client,
		limiter:   rate.NewLimiter(rate.Inf, 1),
		baseURL:   baseURL,
		userAgent: "tripweaver/1.0",
	}
}

type nominatimPlace struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
	Address     struct {
		City        string `json:"city"`
		Town        string `json:"town"`
		Village     string `json:"village"`
		State       string `json:"state"`
		Country     string `json:"country"`
		CountryCode string `json:"country_code"`
	} `json:"address"`
}

func (g *geoService) ResolveCity(ctx context.Context, name string) (*response_models.GeoPoint, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, utils.ErrInvalidInput
	}

	q := url.Values{}
	q.Set("q", name)
	q.Set("format", "json")
	q.Set("limit", "1")
	q.Set("addressdetails", "1")

	places, err := g.query(ctx, "/search", q)
	if err != nil {
		return nil, err
	}
	if len(places) == 0 {
		return nil, utils.ErrCityNotFound
	}

	p := places[0]
	lat, errLat := strconv.ParseFloat(p.Lat, 64)
	lng, errLng := strconv.ParseFloat(p.Lon, 64)
	if errLat != nil || errLng != nil {
		return nil, utils.ErrCityNotFound
	}

	return &response_models.GeoPoint{
		Lat:         lat,
		Lng:         lng,
		CountryCode: strings.ToLower(p.Address.CountryCode),
		Formatted:   p.DisplayName,
	}, nil
}

func (g *geoService) SearchCities(ctx context.Context, query string, limit int) ([]response_models.CityCandidate, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []response_models.CityCandidate{}, nil
	}
	if limit <= 0 || limit > 10 {
		limit = 5
	}

	q := url.Values{}
	q.Set("q", query)
	q.Set("format", "json")
	q.Set("limit", strconv.Itoa(limit))
	q.Set("addressdetails", "1")
	q.Set("featuretype", "city")

	places, err := g.query(ctx, "/search", q)
	if err != nil {
		return nil, err
	}

	candidates := make([]response_models.CityCandidate, 0, len(places))
	for _, p := range places {
		lat, errLat := strconv.ParseFloat(p.Lat, 64)
		lng, errLng := strconv.ParseFloat(p.Lon, 64)
		if errLat != nil || errLng != nil {
			continue
		}

		name := p.Address.City
		if name == "" {
			name = p.Address.Town
		}
		if name == "" {
			name = p.Address.Village
		}
		if name == "" {
			name = firstSegment(p.DisplayName)
		}

		candidates = append(candidates, response_models.CityCandidate{
			Name:        name,
			State:       p.Address.State,
			Country:     p.Address.Country,
			CountryCode: strings.ToLower(p.Address.CountryCode),
			Lat:         lat,
			Lng:         lng,
			DisplayName: p.DisplayName,
		})
	}

	return candidates, nil
}

func (g *geoService) ReverseCountry(ctx context.Context, lat, lng float64) (string, error) {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(lat, 'f', 6, 64))
	q.Set("lon", strconv.FormatFloat(lng, 'f', 6, 64))
	q.Set("format", "json")
	q.Set("zoom", "5")
	q.Set("addressdetails", "1")

	if err := g.limiter.Wait(ctx); err != nil {
		return "", err
	}

	u := g.baseURL + "/reverse?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", g.userAgent)

	resp, err := g.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("nominatim http error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return "", fmt.Errorf("nominatim bad status: %s", resp.Status)
	}

	var place nominatimPlace
	if err := json.NewDecoder(resp.Body).Decode(&place); err != nil {
		return "", fmt.Errorf("nominatim decode: %w", err)
	}

	code := strings.ToLower(place.Address.CountryCode)
	if code == "" {
		return "", fmt.Errorf("nominatim reverse returned no country")
	}
	return code, nil
}

func (g *geoService) query(ctx context.Context, path string, q url.Values) ([]nominatimPlace, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	u := g.baseURL + path + "?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", g.userAgent)

	resp, err := g.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("nominatim http error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("nominatim bad status: %s", resp.Status)
	}

	var places []nominatimPlace
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return nil, fmt.Errorf("nominatim decode: %w", err)
	}
	return places, nil
}

func firstSegment(displayName string) string {
	if idx := strings.Index(displayName, ","); idx > 0 {
		return strings.TrimSpace(displayName[:idx])
	}
	return displayName
}
