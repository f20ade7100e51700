package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"tripweaver/internal/services"
	"tripweaver/pkg/utils"
)

type CityController struct {
	geoService services.GeoServiceInterface
}

func NewCityController(geoService services.GeoServiceInterface) *CityController {
	return &CityController{
		geoService: geoService,
	}
}

// SearchCities godoc
// @Summary Search for cities
// @Description Autocomplete-style city search by free-text query
// @Tags Cities
// @Produce json
// @Param q query string true "Search query"
// @Param limit query int false "Maximum number of results"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /api/cities [get]
func (ct *CityController) SearchCities(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		utils.RespondError(c, http.StatusBadRequest, "Query parameter 'q' is required")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))

	cities, err := ct.geoService.SearchCities(c.Request.Context(), query, limit)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, cities, "Cities retrieved successfully")
}
