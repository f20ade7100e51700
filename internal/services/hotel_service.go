package services

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"tripweaver/internal/models/response_models"
	"tripweaver/pkg/utils"
)

// CountryResolverInterface answers which country a coordinate falls in.
// GeoServiceInterface satisfies it; tests swap in a fake.
type CountryResolverInterface interface {
	ReverseCountry(ctx context.Context, lat, lng float64) (string, error)
}

// HotelEnricherInterface attaches ratings and contact details from a places
// provider. Enrichment is best effort and may leave the hotel untouched.
type HotelEnricherInterface interface {
	EnrichHotel(ctx context.Context, hotel *response_models.Hotel)
}

type HotelSearchResult struct {
	Hotels    []response_models.Hotel
	Count     int
	CityLinks map[string]string
	Note      string
}

type HotelServiceInterface interface {
	FindHotels(ctx context.Context, lat, lng float64, city string, limit int, destinationCountryCode string) (*HotelSearchResult, error)
}

type hotelService struct {
	overpass OverpassClientInterface
	country  CountryResolverInterface
	enricher HotelEnricherInterface
}

func NewHotelService(overpass OverpassClientInterface, country CountryResolverInterface, enricher HotelEnricherInterface) HotelServiceInterface {
	return &hotelService{
		overpass: overpass,
		country:  country,
		enricher: enricher,
	}
}

var hotelRadiusSteps = []int{5000, 10000, 15000, 25000}

const hotelCoverageNote = "Hotel list is limited due to OpenStreetMap coverage. Use booking links to explore more hotels."

func buildHotelQuery(radius int, lat, lng float64) string {
	return fmt.Sprintf(`[out:json][timeout:25];
(
  node["tourism"~"hotel|hostel|guest_house|apartment|resort"](around:%[1]d,%[2]f,%[3]f);
  way["tourism"~"hotel|hostel|guest_house|apartment|resort"](around:%[1]d,%[2]f,%[3]f);
);
out center;`, radius, lat, lng)
}

func (s *hotelService) FindHotels(ctx context.Context, lat, lng float64, city string, limit int, destinationCountryCode string) (*HotelSearchResult, error) {
	if limit <= 0 {
		limit = 15
	}

	seen := make(map[string]bool)
	hotels := make([]response_models.Hotel, 0, limit)

	// With a country code we enforce a hard radius. India gets a little more
	// slack because its city centres sit far from many listed properties.
	maxDistanceKm := 30.0
	if destinationCountryCode == "in" {
		maxDistanceKm = 35.0
	}

	for _, radius := range hotelRadiusSteps {
		elements, err := s.overpass.QueryElements(ctx, buildHotelQuery(radius, lat, lng))
		if err != nil {
			continue
		}

		for _, el := range elements {
			name := el.Name()
			if name == "" || seen[name] {
				continue
			}

			la, lo, ok := el.Position()
			if !ok {
				continue
			}

			if destinationCountryCode != "" {
				if utils.HaversineKm(lat, lng, la, lo) > maxDistanceKm {
					continue
				}
				if destinationCountryCode != "in" {
					hotelCountry, err := s.country.ReverseCountry(ctx, la, lo)
					if err != nil || (hotelCountry != "" && hotelCountry != destinationCountryCode) {
						// Cannot confirm the country, or wrong country. Either
						// way the hotel does not make the list.
						continue
					}
				}
			}

			hotel := response_models.Hotel{
				Name:         name,
				Address:      firstNonEmpty(el.Tags["addr:full"], el.Tags["addr:street"], el.Tags["addr:city"]),
				Lat:          la,
				Lng:          lo,
				PlaceID:      fmt.Sprintf("osm-%s-%d", el.Type, el.ID),
				Phone:        firstNonEmpty(el.Tags["phone"], el.Tags["contact:phone"]),
				URL:          firstNonEmpty(el.Tags["website"], el.Tags["contact:website"]),
				BookingLinks: generateBookingLinks(name, city, la, lo),
			}

			if raw := el.Tags["stars"]; raw != "" {
				if stars, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
					hotel.Stars = &stars
				}
			}

			if s.enricher != nil {
				s.enricher.EnrichHotel(ctx, &hotel)
			}

			seen[name] = true
			hotels = append(hotels, hotel)

			if len(hotels) >= limit {
				break
			}
		}

		if len(hotels) >= limit {
			break
		}
	}

	sort.SliceStable(hotels, func(i, j int) bool {
		ri, rj := ratingOrZero(hotels[i].Rating), ratingOrZero(hotels[j].Rating)
		if ri != rj {
			return ri > rj
		}
		return hotels[i].RatingCount > hotels[j].RatingCount
	})

	cityClean := cleanCityName(city)
	return &HotelSearchResult{
		Hotels:    hotels,
		Count:     len(hotels),
		CityLinks: map[string]string{"booking_city": bookingCityLink(cityClean)},
		Note:      hotelCoverageNote,
	}, nil
}

func generateBookingLinks(hotelName, city string, lat, lng float64) *response_models.BookingLinks {
	cityClean := cleanCityName(city)
	c := url.QueryEscape(cityClean)
	hc := url.QueryEscape(hotelName + " " + cityClean)

	return &response_models.BookingLinks{
		Hotel: fmt.Sprintf("https://www.booking.com/search.html?ss=%s&ssne=%s&ssne_untouched=%s&latitude=%f&longitude=%f", hc, c, c, lat, lng),
		City:  bookingCityLink(cityClean),
	}
}

func bookingCityLink(cityClean string) string {
	return "https://www.booking.com/search.html?ss=" + url.QueryEscape(cityClean)
}

// cleanCityName drops a trailing country suffix, "Delhi, IN" becomes "Delhi".
func cleanCityName(city string) string {
	if idx := strings.Index(city, ","); idx >= 0 {
		city = city[:idx]
	}
	return strings.TrimSpace(city)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func ratingOrZero(r *float64) float64 {
	if r == nil {
		return 0
	}
	return *r
}
