package services

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"tripweaver/internal/models/response_models"
)

type ExportServiceInterface interface {
	ItineraryPDF(stored *response_models.StoredItinerary) ([]byte, error)
}

type exportService struct{}

func NewExportService() ExportServiceInterface {
	return &exportService{}
}

func (e *exportService) ItineraryPDF(stored *response_models.StoredItinerary) ([]byte, error) {
	doc := stored.Document

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	// Header bar
	pdf.SetFillColor(18, 42, 66)
	pdf.Rect(0, 0, 210, 28, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetXY(20, 8)
	pdf.CellFormat(100, 10, "TripWeaver", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(216, 178, 82)
	pdf.SetXY(20, 18)
	pdf.CellFormat(170, 6, "Trip Itinerary", "", 1, "L", false, 0, "")

	pdf.SetY(35)
	pdf.SetTextColor(0, 0, 0)

	sectionHeader := func(title string) {
		pdf.SetFillColor(18, 42, 66)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(170, 8, "  "+title, "", 1, "L", true, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(2)
	}

	row := func(label, value string) {
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(55, 7, label, "", 0, "L", false, 0, "")
		pdf.SetTextColor(20, 20, 20)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(115, 7, value, "", 1, "L", false, 0, "")
	}

	sectionHeader("Overview")
	row("Itinerary", stored.ID)
	row("Generated", time.Unix(stored.CreatedAt, 0).UTC().Format("02 Jan 2006, 15:04 UTC"))
	pdf.Ln(2)
	if doc.Summary != "" {
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(40, 40, 40)
		pdf.MultiCell(170, 5, doc.Summary, "", "L", false)
		pdf.Ln(4)
	}

	if doc.Flights.OriginAirport != "" || doc.Flights.DestinationAirport != "" {
		sectionHeader("Flights")
		row("From", doc.Flights.OriginAirport)
		row("To", doc.Flights.DestinationAirport)
		if doc.Flights.RoundTripPerPerson != nil {
			row("Round trip (per person)", fmt.Sprintf("%.0f %s", *doc.Flights.RoundTripPerPerson, doc.Flights.Currency))
		}
		pdf.Ln(4)
	}

	if doc.Train != nil && doc.Train.Available {
		sectionHeader("Train")
		row("Distance", fmt.Sprintf("%.1f km", doc.Train.DistanceKm))
		if cls, ok := doc.Train.Classes["3A"]; ok {
			row("3-tier AC (per person)", fmt.Sprintf("%.0f %s, ~%.1f h", cls.FarePerPerson, cls.Currency, cls.DurationHours))
		}
		pdf.Ln(4)
	}

	if len(doc.Hotels.Hotels) > 0 {
		sectionHeader("Hotels")
		for _, h := range doc.Hotels.Hotels {
			value := h.Name
			if h.Rating != nil {
				value = fmt.Sprintf("%s (%.1f / 5.0)", h.Name, *h.Rating)
			}
			label := h.City
			if label == "" {
				label = "Hotel"
			}
			row(label, value)
		}
		pdf.Ln(4)
	}

	sectionHeader("Day by Day")
	for _, day := range doc.DailyPlan {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetTextColor(18, 42, 66)
		pdf.CellFormat(170, 7, fmt.Sprintf("Day %d", day.Day), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(40, 40, 40)
		for _, item := range day.Items {
			pdf.MultiCell(170, 4.5, "- "+item, "", "L", false)
			pdf.Ln(1)
		}
		pdf.Ln(2)
	}

	sectionHeader("Cost Estimate")
	totals := doc.EstimatedTotals
	row("Flights", fmt.Sprintf("%.0f %s", totals.Flights, totals.Currency))
	if totals.Train > 0 {
		row("Train", fmt.Sprintf("%.0f %s", totals.Train, totals.Currency))
	}
	row("Hotels", fmt.Sprintf("%.0f %s", totals.Hotels, totals.Currency))
	row("Activities", fmt.Sprintf("%.0f %s", totals.Activities, totals.Currency))
	row("Food, transport, misc", fmt.Sprintf("%.0f %s", totals.FoodTransportMisc, totals.Currency))

	pdf.SetFillColor(216, 178, 82)
	pdf.SetTextColor(18, 42, 66)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(55, 9, "TOTAL ESTIMATE", "", 0, "L", true, 0, "")
	pdf.CellFormat(115, 9, fmt.Sprintf("%.0f %s", totals.GrandTotal, totals.Currency), "", 1, "L", true, 0, "")
	pdf.SetTextColor(0, 0, 0)

	// Footer
	pdf.SetY(-22)
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.3)
	pdf.Line(20, pdf.GetY(), 190, pdf.GetY())
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(150, 150, 150)
	pdf.CellFormat(0, 8,
		"Estimates only. Not a booking confirmation. Prices subject to change.",
		"", 0, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("PDF output failed: %w", err)
	}
	return buf.Bytes(), nil
}
