package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/partbin/stockledger/internal/core/ports/services"
	"github.com/partbin/stockledger/internal/dto"
	"github.com/partbin/stockledger/internal/middleware"
)

type adjustmentHandler struct {
	adjustmentService portssvc.AdjustmentSvcFacade
}

func newAdjustmentHandler(as portssvc.AdjustmentSvcFacade) *adjustmentHandler {
	return &adjustmentHandler{adjustmentService: as}
}

func registerAdjustmentRoutes(rg *gin.RouterGroup, writeLimiter gin.HandlerFunc, adjustmentService portssvc.AdjustmentSvcFacade) {
	h := newAdjustmentHandler(adjustmentService)

	rg.POST("/adjustments", writeLimiter, h.createAdjustment)
}

func (h *adjustmentHandler) createAdjustment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateAdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateAdjustment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := actorFrom(c)
	if !ok {
		return
	}

	record, err := h.adjustmentService.Adjust(c.Request.Context(), req, actorID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	logger.Info("Adjustment recorded",
		slog.String("entry_id", record.EntryID),
		slog.String("quantity_change", record.QuantityChange.String()))
	c.JSON(http.StatusCreated, dto.ToAdjustmentResponse(record))
}
