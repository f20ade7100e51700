package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"tripweaver/internal/services"
	"tripweaver/pkg/utils"
)

type ItineraryController struct {
	planService   services.PlanServiceInterface
	exportService services.ExportServiceInterface
}

func NewItineraryController(planService services.PlanServiceInterface, exportService services.ExportServiceInterface) *ItineraryController {
	return &ItineraryController{
		planService:   planService,
		exportService: exportService,
	}
}

// ListMyTrips godoc
// @Summary List the current user's itineraries
// @Tags Itineraries
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Maximum number of itineraries"
// @Success 200 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Router /me/trips [get]
func (ic *ItineraryController) ListMyTrips(c *gin.Context) {
	userID := c.GetString("user_id")
	ownerID, err := uuid.Parse(userID)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	trips, err := ic.planService.ListTrips(c.Request.Context(), ownerID, limit)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"items": trips}, "Itineraries retrieved successfully")
}

// ExportPDF godoc
// @Summary Export an itinerary as PDF
// @Tags Itineraries
// @Produce application/pdf
// @Param id path string true "Itinerary ID"
// @Success 200 {file} binary
// @Failure 404 {object} utils.APIResponse
// @Router /api/itineraries/{id}/pdf [get]
func (ic *ItineraryController) ExportPDF(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid itinerary id")
		return
	}

	stored, err := ic.planService.GetItinerary(c.Request.Context(), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	pdfBytes, err := ic.exportService.ItineraryPDF(stored)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, "Failed to render PDF")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="itinerary-%s.pdf"`, id))
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
