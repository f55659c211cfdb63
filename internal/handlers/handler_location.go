package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	portssvc "github.com/partbin/stockledger/internal/core/ports/services"
	"github.com/partbin/stockledger/internal/dto"
	"github.com/partbin/stockledger/internal/middleware"
)

type locationHandler struct {
	locationService portssvc.LocationSvcFacade
}

func newLocationHandler(ls portssvc.LocationSvcFacade) *locationHandler {
	return &locationHandler{locationService: ls}
}

func registerLocationRoutes(rg *gin.RouterGroup, locationService portssvc.LocationSvcFacade) {
	h := newLocationHandler(locationService)

	locations := rg.Group("/locations")
	{
		locations.POST("", h.createLocation)
		locations.GET("", h.listLocations)
		locations.GET("/:locationID", h.getLocation)
		locations.DELETE("/:locationID", h.deactivateLocation)
	}
}

func (h *locationHandler) createLocation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateLocation", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := actorFrom(c)
	if !ok {
		return
	}

	location, err := h.locationService.CreateLocation(c.Request.Context(), req, actorID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	logger.Info("Location created", slog.String("location_id", location.LocationID), slog.String("code", location.Code))
	c.JSON(http.StatusCreated, dto.ToLocationResponse(location))
}

func (h *locationHandler) getLocation(c *gin.Context) {
	location, err := h.locationService.GetLocationByID(c.Request.Context(), c.Param("locationID"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToLocationResponse(location))
}

func (h *locationHandler) listLocations(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	locations, err := h.locationService.ListLocations(c.Request.Context(), limit, offset)
	if err != nil {
		respondWithError(c, err)
		return
	}

	responses := make([]dto.LocationResponse, len(locations))
	for i := range locations {
		responses[i] = dto.ToLocationResponse(&locations[i])
	}
	c.JSON(http.StatusOK, gin.H{"locations": responses})
}

func (h *locationHandler) deactivateLocation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	locationID := c.Param("locationID")

	actorID, ok := actorFrom(c)
	if !ok {
		return
	}

	if err := h.locationService.DeactivateLocation(c.Request.Context(), locationID, actorID); err != nil {
		respondWithError(c, err)
		return
	}

	logger.Info("Location deactivated", slog.String("location_id", locationID))
	c.Status(http.StatusNoContent)
}
