package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"tripweaver/internal/models/response_models"
)

const googlePlacesBaseURL = "https://maps.googleapis.com/maps/api/place"

// placesEnricher pulls ratings, review counts, price level, phone and website
// from the Google Places API. Without an API key it is a no-op, and every
// failure leaves the hotel as found on OpenStreetMap.
type placesEnricher struct {
	http    *http.Client
	apiKey  string
	baseURL string
}

func NewPlacesEnricher() HotelEnricherInterface {
	return &placesEnricher{
		http:    &http.Client{Timeout: 10 * time.Second},
		apiKey:  os.Getenv("GOOGLE_PLACES_API_KEY"),
		baseURL: googlePlacesBaseURL,
	}
}

func NewPlacesEnricherWithBase(baseURL, apiKey string, client *http.Client) HotelEnricherInterface {
	return &placesEnricher{
		http:    client,
		apiKey:  apiKey,
		baseURL: baseURL,
	}
}

type placeResult struct {
	PlaceID          string   `json:"place_id"`
	Name             string   `json:"name"`
	Rating           *float64 `json:"rating"`
	UserRatingsTotal int      `json:"user_ratings_total"`
	PriceLevel       *int     `json:"price_level"`
}

func (p *placesEnricher) EnrichHotel(ctx context.Context, hotel *response_models.Hotel) {
	if p.apiKey == "" {
		return
	}

	q := url.Values{}
	q.Set("location", fmt.Sprintf("%f,%f", hotel.Lat, hotel.Lng))
	q.Set("radius", "100")
	q.Set("type", "lodging")
	q.Set("keyword", hotel.Name)
	q.Set("key", p.apiKey)

	results, err := p.nearbySearch(ctx, q)
	if err != nil || len(results) == 0 {
		return
	}

	best := matchByName(hotel.Name, results)
	if best == nil {
		best = &results[0]
	}

	hotel.Rating = best.Rating
	hotel.RatingCount = best.UserRatingsTotal
	hotel.PriceLevel = best.PriceLevel

	if best.PlaceID != "" {
		p.applyDetails(ctx, hotel, best.PlaceID)
	}
}

func (p *placesEnricher) nearbySearch(ctx context.Context, q url.Values) ([]placeResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/nearbysearch/json?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := p.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("places bad status: %s", resp.Status)
	}

	var payload struct {
		Results []placeResult `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}
	return payload.Results, nil
}

func (p *placesEnricher) applyDetails(ctx context.Context, hotel *response_models.Hotel, placeID string) {
	q := url.Values{}
	q.Set("place_id", placeID)
	q.Set("fields", "formatted_phone_number,website,rating,user_ratings_total")
	q.Set("key", p.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/details/json?"+q.Encode(), nil)
	if err != nil {
		return
	}

	resp, err := p.http.Do(req)
	if err != nil {
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return
	}

	var payload struct {
		Result struct {
			FormattedPhoneNumber string   `json:"formatted_phone_number"`
			Website              string   `json:"website"`
			Rating               *float64 `json:"rating"`
			UserRatingsTotal     int      `json:"user_ratings_total"`
		} `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return
	}

	if payload.Result.FormattedPhoneNumber != "" {
		hotel.Phone = payload.Result.FormattedPhoneNumber
	}
	if payload.Result.Website != "" {
		hotel.URL = payload.Result.Website
	}
	if payload.Result.Rating != nil {
		hotel.Rating = payload.Result.Rating
	}
	if payload.Result.UserRatingsTotal > 0 {
		hotel.RatingCount = payload.Result.UserRatingsTotal
	}
}

// matchByName picks the result whose name overlaps the hotel name, either by
// containment or by sharing a word longer than three characters.
func matchByName(hotelName string, results []placeResult) *placeResult {
	target := strings.ToLower(hotelName)
	for i := range results {
		candidate := strings.ToLower(results[i].Name)
		if strings.Contains(candidate, target) || strings.Contains(target, candidate) {
			return &results[i]
		}
		for _, word := range strings.Fields(target) {
			if len(word) > 3 && strings.Contains(candidate, word) {
				return &results[i]
			}
		}
	}
	return nil
}
