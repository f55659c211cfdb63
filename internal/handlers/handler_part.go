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

type partHandler struct {
	partService portssvc.PartSvcFacade
}

func newPartHandler(ps portssvc.PartSvcFacade) *partHandler {
	return &partHandler{partService: ps}
}

func registerPartRoutes(rg *gin.RouterGroup, partService portssvc.PartSvcFacade) {
	h := newPartHandler(partService)

	parts := rg.Group("/parts")
	{
		parts.POST("", h.createPart)
		parts.GET("", h.listParts)
		parts.GET("/:partID", h.getPart)
		parts.DELETE("/:partID", h.deactivatePart)
	}
}

func (h *partHandler) createPart(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreatePartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreatePart", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := actorFrom(c)
	if !ok {
		return
	}

	part, err := h.partService.CreatePart(c.Request.Context(), req, actorID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	logger.Info("Part created", slog.String("part_id", part.PartID), slog.String("sku", part.SKU))
	c.JSON(http.StatusCreated, dto.ToPartResponse(part))
}

func (h *partHandler) getPart(c *gin.Context) {
	part, err := h.partService.GetPartByID(c.Request.Context(), c.Param("partID"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPartResponse(part))
}

func (h *partHandler) listParts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	parts, err := h.partService.ListParts(c.Request.Context(), limit, offset)
	if err != nil {
		respondWithError(c, err)
		return
	}

	responses := make([]dto.PartResponse, len(parts))
	for i := range parts {
		responses[i] = dto.ToPartResponse(&parts[i])
	}
	c.JSON(http.StatusOK, gin.H{"parts": responses})
}

func (h *partHandler) deactivatePart(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	partID := c.Param("partID")

	actorID, ok := actorFrom(c)
	if !ok {
		return
	}

	if err := h.partService.DeactivatePart(c.Request.Context(), partID, actorID); err != nil {
		respondWithError(c, err)
		return
	}

	logger.Info("Part deactivated", slog.String("part_id", partID))
	c.Status(http.StatusNoContent)
}
