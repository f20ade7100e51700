package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"tripweaver/internal/models/request_models"
	"tripweaver/internal/services"
	"tripweaver/pkg/utils"
)

type PlanController struct {
	planService services.PlanServiceInterface
}

func NewPlanController(planService services.PlanServiceInterface) *PlanController {
	return &PlanController{
		planService: planService,
	}
}

// PlanTrip godoc
// @Summary Plan a trip
// @Description Build a complete trip plan: flights, hotels, daily itinerary and cost estimates
// @Tags Planning
// @Accept json
// @Produce json
// @Param request body request_models.PlanTripRequest true "Trip planning payload"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /api/plan-trip [post]
func (p *PlanController) PlanTrip(c *gin.Context) {
	var req request_models.PlanTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	ownerID := optionalUserID(c)

	itinerary, err := p.planService.PlanTrip(c.Request.Context(), req, ownerID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, itinerary, "Trip planned successfully")
}

// optionalUserID reads the user set by the optional auth middleware, if any.
func optionalUserID(c *gin.Context) *uuid.UUID {
	raw, ok := c.Get("user_id")
	if !ok {
		return nil
	}
	s, ok := raw.(string)
	if !ok {
		return nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil
	}
	return &id
}
