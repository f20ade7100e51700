package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"tripweaver/internal/models/response_models"
)

const openTripMapBaseURL = "https://api.opentripmap.com/0.1/en"

type AttractionServiceInterface interface {
	FindAttractions(ctx context.Context, lat, lng float64, limit int) ([]response_models.Attraction, error)
}

type attractionService struct {
	http    *http.Client
	apiKey  string
	baseURL string
}

func NewAttractionService() AttractionServiceInterface {
	return &attractionService{
		http:    &http.Client{Timeout: 15 * time.Second},
		apiKey:  os.Getenv("OPENTRIPMAP_API_KEY"),
		baseURL: openTripMapBaseURL,
	}
}

func NewAttractionServiceWithBase(baseURL, apiKey string, client *http.Client) AttractionServiceInterface {
	return &attractionService{
		http:    client,
		apiKey:  apiKey,
		baseURL: baseURL,
	}
}

type otmFeature struct {
	Properties struct {
		Name string `json:"name"`
		XID  string `json:"xid"`
	} `json:"properties"`
	Geometry struct {
		Coordinates []float64 `json:"coordinates"`
	} `json:"geometry"`
}

type otmDetail struct {
	URL       string `json:"url"`
	OTM       string `json:"otm"`
	Wikipedia string `json:"wikipedia"`
	Opening   string `json:"opening_hours"`
	Extracts  *struct {
		Text string `json:"text"`
	} `json:"wikipedia_extracts"`
	Info *struct {
		Descr        string `json:"descr"`
		OpeningHours string `json:"opening_hours"`
	} `json:"info"`
}

func (s *attractionService) FindAttractions(ctx context.Context, lat, lng float64, limit int) ([]response_models.Attraction, error) {
	if limit <= 0 {
		limit = 15
	}

	q := url.Values{}
	q.Set("radius", "12000")
	q.Set("lon", strconv.FormatFloat(lng, 'f', 6, 64))
	q.Set("lat", strconv.FormatFloat(lat, 'f', 6, 64))
	q.Set("rate", "2")
	q.Set("limit", strconv.Itoa(limit))
	q.Set("apikey", s.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/places/radius?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("opentripmap http error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("opentripmap bad status: %s", resp.Status)
	}

	var payload struct {
		Features []otmFeature `json:"features"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("opentripmap decode: %w", err)
	}

	results := make([]response_models.Attraction, 0, len(payload.Features))
	for _, f := range payload.Features {
		if f.Properties.Name == "" || len(f.Geometry.Coordinates) < 2 {
			continue
		}

		attraction := response_models.Attraction{
			Name:    f.Properties.Name,
			Lat:     f.Geometry.Coordinates[1],
			Lng:     f.Geometry.Coordinates[0],
			PlaceID: f.Properties.XID,
		}

		if f.Properties.XID != "" {
			// Detail lookups are best effort; a failing one never drops the place.
			s.enrich(ctx, &attraction, f.Properties.XID)
		}

		results = append(results, attraction)
	}

	return results, nil
}

func (s *attractionService) enrich(ctx context.Context, attraction *response_models.Attraction, xid string) {
	q := url.Values{}
	q.Set("apikey", s.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/places/xid/"+url.PathEscape(xid)+"?"+q.Encode(), nil)
	if err != nil {
		return
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return
	}

	var detail otmDetail
	if err := json.NewDecoder(resp.Body).Decode(&detail); err != nil {
		return
	}

	if detail.Extracts != nil && detail.Extracts.Text != "" {
		attraction.Description = detail.Extracts.Text
	} else if detail.Info != nil {
		attraction.Description = detail.Info.Descr
	}

	attraction.OpeningHours = detail.Opening
	if attraction.OpeningHours == "" && detail.Info != nil {
		attraction.OpeningHours = detail.Info.OpeningHours
	}

	if detail.Extracts != nil {
		attraction.BestTimeToVisit = guessBestMonths(detail.Extracts.Text)
	}

	switch {
	case detail.URL != "":
		attraction.URL = detail.URL
	case detail.OTM != "":
		attraction.URL = detail.OTM
	case detail.Wikipedia != "":
		attraction.URL = detail.Wikipedia
	}
}

var monthAbbrevs = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// guessBestMonths scans free text for month names and reports the span of
// those mentioned, as a rough visiting-season hint.
func guessBestMonths(text string) string {
	if text == "" {
		return ""
	}

	var found []string
	for _, m := range monthAbbrevs {
		if strings.Contains(text, m) {
			found = append(found, m)
		}
	}

	switch len(found) {
	case 0:
		return ""
	case 1:
		return found[0]
	default:
		return found[0] + "-" + found[len(found)-1]
	}
}
