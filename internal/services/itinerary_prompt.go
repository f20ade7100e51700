package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"tripweaver/internal/models/response_models"
)

const itinerarySchema = `{
  "type": "object",
  "properties": {
    "summary": {"type": "string"},
    "flights": {
      "type": "object",
      "properties": {
        "originAirport": {"type": ["string", "null"]},
        "destinationAirport": {"type": ["string", "null"]},
        "estimatedRoundTripPerPerson": {"type": ["number", "null"]},
        "currency": {"type": "string"}
      },
      "required": ["currency"]
    },
    "hotels": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "name": {"type": "string"},
          "address": {"type": ["string", "null"]},
          "rating": {"type": ["number", "null"]},
          "user_ratings_total": {"type": ["number", "null"]},
          "price_level": {"type": ["number", "null"]},
          "lat": {"type": "number"},
          "lng": {"type": "number"},
          "place_id": {"type": "string"}
        },
        "required": ["name", "lat", "lng", "place_id"]
      }
    },
    "dailyPlan": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "day": {"type": "number"},
          "items": {"type": "array", "items": {"type": "string"}}
        },
        "required": ["day", "items"]
      }
    },
    "estimatedTotals": {"type": "object"}
  },
  "required": ["summary", "flights", "hotels", "dailyPlan", "estimatedTotals"]
}`

// exampleDailyPlan shows the model the expected level of detail per item.
const exampleDailyPlan = `{
  "summary": "Experience the royal heritage of Jaipur over 5 days with immersive cultural tours, authentic Rajasthani cuisine, and visits to magnificent palaces and forts.",
  "dailyPlan": [
    {
      "day": 1,
      "items": [
        "Morning (9:00 AM - 12:00 PM): Arrive at Jaipur Airport (JAI) and transfer to hotel for check-in near MI Road area. After settling in, take a short walk to explore the nearby markets and get acquainted with the local area.",
        "Afternoon (1:00 PM - 5:00 PM): Visit the magnificent City Palace complex, home to the royal family of Jaipur. Explore the palace museum showcasing royal costumes, weapons, and artifacts. Then proceed to Jantar Mantar, an astronomical observatory with fascinating ancient instruments. Allow 2-3 hours for both sites with a lunch break in between.",
        "Evening (6:00 PM - 9:00 PM): Head to Hawa Mahal (Palace of Winds) to catch the beautiful golden hour lighting on this iconic five-story facade. Afterward, enjoy authentic Rajasthani snacks at the famous LMB restaurant, known for its traditional kachori and sweets. Take an evening stroll around Johari Bazaar."
      ]
    },
    {
      "day": 2,
      "items": [
        "Morning (8:00 AM - 12:30 PM): Take an early morning trip to Amer Fort (11 km from city center, 30 min drive). This hilltop fort offers stunning architecture and panoramic views. Explore the Sheesh Mahal, Diwan-i-Aam, and Sukh Niwas. Spend 3-4 hours here to fully appreciate its grandeur.",
        "Afternoon (1:00 PM - 4:00 PM): Visit Panna Meena ka Kund, an ancient stepwell near Amer Fort, perfect for photography. Then head to Anokhi Museum of Hand Printing to learn about traditional block printing techniques.",
        "Evening (5:00 PM - 9:00 PM): Return to Jaipur city. Experience an authentic Rajasthani dinner at Chokhi Dhani, a cultural village resort with traditional folk performances, puppet shows, and unlimited Rajasthani thali. Book in advance for the best experience."
      ]
    }
  ]
}`

func buildItineraryPrompt(input GenerationInput) string {
	req := input.Request

	attractions := input.Attractions
	if len(attractions) > 8 {
		attractions = attractions[:8]
	}
	hotels := input.Hotels
	if len(hotels) > 6 {
		hotels = hotels[:6]
	}

	attractionsJSON, _ := json.Marshal(attractions)
	hotelsJSON, _ := json.Marshal(hotels)
	flightsJSON, _ := json.Marshal(input.FlightEstimate)
	hotelEstJSON, _ := json.Marshal(input.HotelEstimate)
	otherJSON, _ := json.Marshal(input.OtherCosts)

	trainJSON := []byte("{}")
	if input.TrainEstimate != nil {
		trainJSON, _ = json.Marshal(input.TrainEstimate)
	}

	budget := "unknown"
	if req.BudgetAmount != nil {
		budget = fmt.Sprintf("%.2f", *req.BudgetAmount)
	}

	var b strings.Builder

	b.WriteString("You are an expert travel planner specializing in creating detailed, immersive itineraries. ")
	b.WriteString("Produce a comprehensive, elaborative day-by-day itinerary as valid JSON only, with no surrounding text. ")
	b.WriteString("Your responses should be DETAILED and INFORMATIVE, not brief or one-line descriptions.\n\n")

	b.WriteString("JSON schema:\n")
	b.WriteString(itinerarySchema)
	b.WriteString("\n\nExample style (for structure and level of detail, follow this elaborative format):\n")
	b.WriteString(exampleDailyPlan)

	b.WriteString("\n\nConstraints and data:\n")
	fmt.Fprintf(&b, "- Origin city: %s (%+v)\n", req.OriginCity, input.OriginGeo)
	fmt.Fprintf(&b, "- Destination city: %s (%+v)\n", req.DestinationCity, input.DestinationGeo)
	fmt.Fprintf(&b, "- Days: %d, People: %d\n", req.NumDays, req.NumPeople)
	fmt.Fprintf(&b, "- Budget: %s %s\n", budget, req.BudgetCurrency)
	fmt.Fprintf(&b, "- Candidate attractions (top): %s\n", attractionsJSON)
	b.WriteString("- Each attraction may include 'description', 'openingHours', and 'bestTimeToVisit'. Use them to sequence the day logically and avoid closed times.\n")
	fmt.Fprintf(&b, "- Candidate hotels (top): %s\n", hotelsJSON)
	b.WriteString("- Each hotel may include 'booking_links', 'phone', 'stars', 'rating', 'user_ratings_total', and 'url'. Use these fields when suggesting hotels.\n")
	fmt.Fprintf(&b, "- Estimates: flights=%s, hotel=%s, other=%s\n", flightsJSON, hotelEstJSON, otherJSON)
	fmt.Fprintf(&b, "- Train estimate (if available): %s\n", trainJSON)

	b.WriteString(routeNote(input))

	b.WriteString("\nCRITICAL RULES FOR ELABORATIVE RESPONSES:\n")
	b.WriteString("- Output valid JSON only, no commentary.\n")
	fmt.Fprintf(&b, "- MANDATORY: The 'dailyPlan' array MUST contain EXACTLY %d day entries (day 1, day 2, ..., day %d). You MUST NOT skip any days. Each day from 1 to %d must be present with detailed activities.\n", req.NumDays, req.NumDays, req.NumDays)
	fmt.Fprintf(&b, "- CRITICAL: Generate itinerary for ALL %d days requested. Do NOT stop at 2-3 days. Spread activities across all days evenly.\n", req.NumDays)
	b.WriteString("- Summary: Provide a DETAILED, engaging paragraph (4-6 sentences) describing the trip experience, cultural significance, key highlights, and chosen travel mode.\n")
	b.WriteString("- Daily Plan Items: Each item MUST be ELABORATIVE (2-4 sentences minimum), NOT one-liners. Include what the activity is, why it matters, approximate timings, travel details, and practical tips.\n")
	b.WriteString("- Each day should have 4-8 detailed items covering Morning, Afternoon, and Evening. Balance sightseeing, relaxation, and meals.\n")
	b.WriteString("- IMPORTANT: If your daily plan includes visits to multiple cities, suggest hotels that match the city where travelers will be staying each night. Only suggest hotels from cities that actually appear in your daily plan items.\n")
	fmt.Fprintf(&b, "- CRITICAL HOTEL RULE: When suggesting hotels, match them to the cities mentioned in your daily plan AND ensure they are in the destination country (%s). Do NOT suggest hotels from other countries. Verify the hotel is actually in the destination country before suggesting it.\n", req.DestinationCity)
	b.WriteString("- Include travel time estimates and transportation modes between attractions when relevant (e.g., '30 min drive', 'walking distance', '10 km from city center').\n")
	b.WriteString("- Mention practical tips: opening hours, entry fees, best time to visit, what to wear, photography restrictions, crowd information.\n")
	if req.IncludeFoodRecos {
		b.WriteString("- Include at least one authentic local food recommendation per day. For each, explain what the dish is, where to find authentic versions, and what makes it special.\n")
	}
	if req.IncludeCommuteTimes {
		b.WriteString("- Include approximate commute times or transport mode between major stops, with realistic time estimates and approximate costs.\n")
	}
	b.WriteString("- Keep within budget if provided; adjust hotel standard and activity count accordingly, and explain the rationale.\n")
	b.WriteString("- If a train estimate is provided (for short intra-India trips), prefer train over flights and mention the recommended class with reasoning.\n")
	b.WriteString("- Use the estimates provided for 'estimatedTotals' and compute a grand total. Do not include train unless you explicitly choose train as the main transport; if you choose train, include an approximate train total instead of flights in totals.\n")
	b.WriteString("- For each hotel in 'hotels', include any provided 'url' and 'stars' fields; do not invent ratings.\n")
	b.WriteString("- Write in an engaging, informative, travel-guide style. AVOID one-liners.\n")

	return b.String()
}

// routeNote tells the model when the destination sits far from its airport so
// the plan opens with the transfer on day one.
func routeNote(input GenerationInput) string {
	gt := input.GroundTransport
	airport := input.DestinationAirport
	if gt == nil || airport == nil {
		return ""
	}

	airportName := airport.Name
	if airportName == "" {
		airportName = "the nearest airport"
	}
	if airport.IATA != "" {
		airportName = fmt.Sprintf("%s (%s)", airportName, airport.IATA)
	}

	var options []string
	appendOption := func(label string, opt response_models.TransportOption) {
		if opt.Available || opt.DistanceKm > 0 {
			options = append(options, fmt.Sprintf("%s (~%d min, %.1f km)", label, opt.DurationMinutes, opt.DistanceKm))
		}
	}
	appendOption("taxi", gt.Taxi)
	appendOption("bus", gt.Bus)
	appendOption("shared taxi", gt.SharedTaxi)

	transport := "ground transport"
	if len(options) > 0 {
		transport = strings.Join(options, ", ")
	}

	return fmt.Sprintf(
		"\n- IMPORTANT ROUTE INFO: The destination city is %.1fkm away from %s. "+
			"After landing at %s, travelers can take %s to reach %s. "+
			"Primary option (taxi/car) takes approximately %d minutes. "+
			"Include this in your summary and Day 1 itinerary. Mention: 'Fly to %s, then take %s to %s'.\n",
		gt.Taxi.DistanceKm, airportName,
		airportName, transport, input.Request.DestinationCity,
		gt.Taxi.DurationMinutes,
		airportName, transport, input.Request.DestinationCity,
	)
}
