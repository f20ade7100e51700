package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"tripweaver/internal/models/response_models"
	"tripweaver/pkg/utils"
)

// Comparable commercial airports near a point. Three passes with widening
// radii: tagged airports carrying an IATA code first, then any airport, then
// bare aerodromes as a last resort. Military fields and private strips are
// filtered out, and the survivors are ranked by a quality score so a big
// commercial hub wins over a closer airfield.
type AirportServiceInterface interface {
	FindNearestAirport(ctx context.Context, lat, lng float64) (*response_models.Airport, error)
}

type airportService struct {
	overpass OverpassClientInterface
}

func NewAirportService(overpass OverpassClientInterface) AirportServiceInterface {
	return &airportService{overpass: overpass}
}

var knownMajorAirports = []string{
	"kempegowda", "kial", "bengaluru", "bangalore", "blr",
	"bagdogra", "ixb",
	"indira gandhi", "delhi", "diag", "palam",
	"chhatrapati shivaji", "mumbai", "csia",
	"netaji subhash chandra bose", "kolkata", "ccu",
	"rajiv gandhi", "hyderabad", "rgia",
	"chennai", "maa",
	"pune", "pnq",
	"singapore changi", "sin", "kuala lumpur", "klia", "kul",
	"changi", "dubai", "dxb", "doha", "doh", "istanbul", "ist",
}

var knownRegionalAirports = []string{
	"suvarnabhumi", "bkk", "bangkok international",
	"don mueang", "dmk", "don muang",
	"phuket", "hkt", "phuket international",
	"chiang mai", "cnx", "chiang mai international",
	"hat yai", "hdy", "krabi", "kbv", "samui", "usm",
	"utapao", "utp", "pattaya", "chiang rai", "cei",
	"krabi international", "ko samui", "trang", "tsg",
}

var airportDenyKeywords = []string{
	"military", "air force", "naval", "army", "airforce", "airbase", "air base",
	"khok kathiam", "khok", "kathiam", "takhli", "udorn",
	"korat", "wing", "squadron", "raf ", "rtaf", "afb", "air force base",
	"air force station", "naval air", "army air", "defense",
	"royal thai air force", "rtafb", "usaf", "us air force",
}

var airportSuspiciousPatterns = []string{"base", "camp", "station", "facility"}

func buildAirportQuery(selector string, radius int, lat, lng float64) string {
	return fmt.Sprintf(`[out:json][timeout:25];
(
  node%[1]s(around:%[2]d,%[3]f,%[4]f);
  way%[1]s(around:%[2]d,%[3]f,%[4]f);
  relation%[1]s(around:%[2]d,%[3]f,%[4]f);
);
out center 20;`, selector, radius, lat, lng)
}

func (s *airportService) FindNearestAirport(ctx context.Context, lat, lng float64) (*response_models.Airport, error) {
	passes := []struct {
		selector string
		radii    []int
	}{
		{`["aeroway"="airport"]["iata"~"."]`, []int{80000, 100000, 150000}},
		{`["aeroway"="airport"]`, []int{80000, 100000}},
		{`["aeroway"="aerodrome"]`, []int{80000, 50000, 30000}},
	}

	var elements []OverpassElement
	for _, pass := range passes {
		for _, r := range pass.radii {
			found, err := s.overpass.QueryElements(ctx, buildAirportQuery(pass.selector, r, lat, lng))
			if err != nil {
				continue
			}
			if len(found) > 0 {
				elements = found
				break
			}
		}
		if len(elements) > 0 {
			break
		}
	}

	if len(elements) == 0 {
		return nil, nil
	}

	type candidate struct {
		score   float64
		dist    float64
		airport response_models.Airport
	}

	candidates := make([]candidate, 0, len(elements))
	for _, el := range elements {
		la, lo, ok := el.Position()
		if !ok {
			continue
		}

		displayName := el.Tags["name:en"]
		if displayName == "" {
			displayName = el.Tags["int_name"]
		}
		if displayName == "" {
			displayName = el.Tags["name"]
		}
		if displayName == "" {
			displayName = "Airport"
		}
		name := strings.ToLower(displayName)

		iata := strings.ToUpper(strings.Trim(el.Tags["iata"], `"'`))

		if containsAny(name, airportDenyKeywords) {
			continue
		}
		if containsAny(name, airportSuspiciousPatterns) {
			if !strings.Contains(name, "international") && iata == "" && !strings.Contains(name, "airport") {
				continue
			}
		}

		dist := utils.HaversineKm(lat, lng, la, lo)

		score := 0.0
		if iata != "" {
			score += 200
		}
		if strings.Contains(name, "international") {
			score += 150
		}
		if containsAny(name, knownMajorAirports) || containsAny(name, knownRegionalAirports) {
			score += 100
		}
		if containsAny(name, knownRegionalAirports) {
			score += 125
		}
		if el.Tags["ref"] != "" {
			score += 50
		}
		if containsAny(name, []string{"base", "camp", "facility", "wing"}) {
			if !strings.Contains(name, "international") && iata == "" {
				score -= 100
			}
		}
		score -= dist / 15

		candidates = append(candidates, candidate{
			score: score,
			dist:  dist,
			airport: response_models.Airport{
				Name:    displayName,
				IATA:    iata,
				Lat:     la,
				Lng:     lo,
				PlaceID: fmt.Sprintf("osm-%s-%d", el.Type, el.ID),
			},
		})
	}

	if len(candidates) == 0 {
		return nil, nil
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].dist < candidates[j].dist
	})

	best := candidates[0].airport
	return &best, nil
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
