package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"os"
	"sync"
	"time"

	"tripweaver/internal/models/response_models"
	"tripweaver/pkg/utils"
)

const orsBaseURL = "https://api.openrouteservice.org/v2/directions"

// ORSClientInterface is the OpenRouteService directions call. The route
// service layers caching and haversine fallback on top of it.
type ORSClientInterface interface {
	Directions(ctx context.Context, originLat, originLng, destLat, destLng float64, profile string) (distanceKm float64, durationMinutes int, err error)
}

type orsClient struct {
	http    *http.Client
	apiKey  string
	baseURL string
}

func NewORSClient() ORSClientInterface {
	return &orsClient{
		http:    &http.Client{Timeout: 10 * time.Second},
		apiKey:  os.Getenv("OPENROUTESERVICE_API_KEY"),
		baseURL: orsBaseURL,
	}
}

func NewORSClientWithBase(baseURL, apiKey string, client *http.Client) ORSClientInterface {
	return &orsClient{
		http:    client,
		apiKey:  apiKey,
		baseURL: baseURL,
	}
}

var errNoORSKey = fmt.Errorf("openrouteservice api key not configured")

func (c *orsClient) Directions(ctx context.Context, originLat, originLng, destLat, destLng float64, profile string) (float64, int, error) {
	if c.apiKey == "" {
		return 0, 0, errNoORSKey
	}

	u := fmt.Sprintf("%s/%s?start=%f,%f&end=%f,%f", c.baseURL, profile, originLng, originLat, destLng, destLat)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, 0, err
	}
	req.Header.Set("Accept", "application/json, application/geo+json")
	req.Header.Set("Authorization", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, 0, fmt.Errorf("openrouteservice http error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return 0, 0, fmt.Errorf("openrouteservice bad status: %s", resp.Status)
	}

	var payload struct {
		Features []struct {
			Properties struct {
				Segments []struct {
					Distance float64 `json:"distance"`
					Duration float64 `json:"duration"`
				} `json:"segments"`
			} `json:"properties"`
		} `json:"features"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, 0, fmt.Errorf("openrouteservice decode: %w", err)
	}

	if len(payload.Features) == 0 || len(payload.Features[0].Properties.Segments) == 0 {
		return 0, 0, fmt.Errorf("openrouteservice returned no route")
	}

	seg := payload.Features[0].Properties.Segments[0]
	return utils.Round2(seg.Distance / 1000), int(seg.Duration / 60), nil
}

// --------- route cache keyed by rounded coordinate pair ---------

type routeKey struct {
	OriginLat float64
	OriginLng float64
	DestLat   float64
	DestLng   float64
	Profile   string
}

type routeCacheEntry struct {
	Route     response_models.RouteEstimate
	ExpiresAt time.Time
}

type routeCache struct {
	mu    sync.RWMutex
	store map[routeKey]routeCacheEntry
}

func newRouteCache() *routeCache {
	return &routeCache{store: make(map[routeKey]routeCacheEntry)}
}

func (c *routeCache) Get(k routeKey) (response_models.RouteEstimate, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	it, ok := c.store[k]
	if !ok || time.Now().After(it.ExpiresAt) {
		return response_models.RouteEstimate{}, false
	}
	return it.Route, true
}

func (c *routeCache) Set(k routeKey, v response_models.RouteEstimate, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store[k] = routeCacheEntry{Route: v, ExpiresAt: time.Now().Add(ttl)}
}

// --------- route service ---------

type RouteServiceInterface interface {
	GetRoute(ctx context.Context, originLat, originLng, destLat, destLng float64, profile string) response_models.RouteEstimate
	GroundTransportOptions(ctx context.Context, originLat, originLng, destLat, destLng float64) response_models.GroundTransport
}

type routeService struct {
	ors   ORSClientInterface
	cache *routeCache
	ttl   time.Duration
}

func NewRouteService(ors ORSClientInterface) RouteServiceInterface {
	return &routeService{
		ors:   ors,
		cache: newRouteCache(),
		ttl:   time.Hour,
	}
}

// fallbackSpeedKmh is the assumed average speed when routing is unavailable.
func fallbackSpeedKmh(profile string) float64 {
	switch {
	case profile == "driving-car":
		return 60
	case profile == "foot-walking":
		return 5
	case profile == "driving-hgv":
		return 50
	default:
		return 15
	}
}

func (s *routeService) GetRoute(ctx context.Context, originLat, originLng, destLat, destLng float64, profile string) response_models.RouteEstimate {
	// ~100m of precision keeps nearby lookups on the same cache entry.
	key := routeKey{
		OriginLat: round3(originLat),
		OriginLng: round3(originLng),
		DestLat:   round3(destLat),
		DestLng:   round3(destLng),
		Profile:   profile,
	}

	if cached, ok := s.cache.Get(key); ok {
		return cached
	}

	distKm, durationMin, err := s.ors.Directions(ctx, originLat, originLng, destLat, destLng, profile)
	if err != nil {
		fallbackKm := utils.HaversineKm(originLat, originLng, destLat, destLng)
		return response_models.RouteEstimate{
			DistanceKm:      utils.Round2(fallbackKm),
			DurationMinutes: int(fallbackKm / fallbackSpeedKmh(profile) * 60),
			Available:       false,
			Note:            "Route details unavailable, showing straight-line estimate",
		}
	}

	route := response_models.RouteEstimate{
		DistanceKm:      distKm,
		DurationMinutes: durationMin,
		Available:       true,
	}
	s.cache.Set(key, route, s.ttl)
	return route
}

func (s *routeService) GroundTransportOptions(ctx context.Context, originLat, originLng, destLat, destLng float64) response_models.GroundTransport {
	taxi := s.GetRoute(ctx, originLat, originLng, destLat, destLng, "driving-car")

	bus := s.GetRoute(ctx, originLat, originLng, destLat, destLng, "driving-hgv")
	if bus.DistanceKm > 0 && taxi.DistanceKm > 0 && bus.DurationMinutes == taxi.DurationMinutes {
		// The HGV profile is only an approximation of bus routes; a bus run
		// typically takes noticeably longer than a car on the same road.
		bus.DurationMinutes = int(float64(taxi.DurationMinutes) * 1.3)
	}

	shared := taxi
	if shared.DurationMinutes > 0 {
		shared.DurationMinutes = int(float64(shared.DurationMinutes) * 1.15)
	}

	return response_models.GroundTransport{
		Taxi: response_models.TransportOption{
			Mode:            "taxi",
			Description:     "Private taxi or car",
			DistanceKm:      taxi.DistanceKm,
			DurationMinutes: taxi.DurationMinutes,
			Available:       taxi.Available,
			Note:            taxi.Note,
		},
		Bus: response_models.TransportOption{
			Mode:            "bus",
			Description:     "Bus service",
			DistanceKm:      bus.DistanceKm,
			DurationMinutes: bus.DurationMinutes,
			Available:       bus.Available,
			Note:            bus.Note,
		},
		SharedTaxi: response_models.TransportOption{
			Mode:            "shared_taxi",
			Description:     "Shared taxi/cab",
			DistanceKm:      shared.DistanceKm,
			DurationMinutes: shared.DurationMinutes,
			Available:       shared.Available,
			Note:            shared.Note,
		},
	}
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
