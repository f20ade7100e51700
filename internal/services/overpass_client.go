package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const overpassEndpoint = "https://overpass-api.de/api/interpreter"

// OverpassElement is a node or way returned by the Overpass API. Ways carry
// their coordinates under "center" when the query asks for them.
type OverpassElement struct {
	Type   string            `json:"type"`
	ID     int64             `json:"id"`
	Lat    float64           `json:"lat"`
	Lon    float64           `json:"lon"`
	Center *OverpassCenter   `json:"center,omitempty"`
	Tags   map[string]string `json:"tags"`
}

type OverpassCenter struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Position returns the usable coordinate of the element regardless of type.
func (e OverpassElement) Position() (float64, float64, bool) {
	if e.Lat != 0 || e.Lon != 0 {
		return e.Lat, e.Lon, true
	}
	if e.Center != nil {
		return e.Center.Lat, e.Center.Lon, true
	}
	return 0, 0, false
}

func (e OverpassElement) Name() string {
	return strings.TrimSpace(e.Tags["name"])
}

type OverpassClientInterface interface {
	QueryElements(ctx context.Context, query string) ([]OverpassElement, error)
}

type overpassClient struct {
	http     *http.Client
	endpoint string
}

func NewOverpassClient() OverpassClientInterface {
	return &overpassClient{
		http:     &http.Client{Timeout: 20 * time.Second},
		endpoint: overpassEndpoint,
	}
}

func NewOverpassClientWithEndpoint(endpoint string, client *http.Client) OverpassClientInterface {
	return &overpassClient{
		http:     client,
		endpoint: endpoint,
	}
}

func (c *overpassClient) QueryElements(ctx context.Context, query string) ([]OverpassElement, error) {
	form := url.Values{}
	form.Set("data", query)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("overpass http error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("overpass bad status: %s", resp.Status)
	}

	var payload struct {
		Elements []OverpassElement `json:"elements"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("overpass decode: %w", err)
	}
	return payload.Elements, nil
}
