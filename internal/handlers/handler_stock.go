package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/partbin/stockledger/internal/core/domain"
	portssvc "github.com/partbin/stockledger/internal/core/ports/services"
	"github.com/partbin/stockledger/internal/dto"
	"github.com/partbin/stockledger/internal/middleware"
)

// stockHandler serves current-stock reads and the cache maintenance
// endpoints.
type stockHandler struct {
	stockService portssvc.StockSvcFacade
}

func newStockHandler(ss portssvc.StockSvcFacade) *stockHandler {
	return &stockHandler{stockService: ss}
}

// RegisterStockRoutes registers current-stock reads and cache maintenance.
func RegisterStockRoutes(rg *gin.RouterGroup, writeLimiter gin.HandlerFunc, stockService portssvc.StockSvcFacade) {
	h := newStockHandler(stockService)

	stock := rg.Group("/stock")
	{
		stock.POST("/batch", h.getStockBatch)
		stock.POST("/refresh", writeLimiter, h.rebuildAll)
		stock.GET("/:locationID/:partID", h.getStock)
		stock.POST("/:locationID/:partID/refresh", writeLimiter, h.refresh)
	}
}

func (h *stockHandler) getStock(c *gin.Context) {
	locationID := c.Param("locationID")
	partID := c.Param("partID")

	level, fromCache, err := h.stockService.GetStock(c.Request.Context(), locationID, partID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	source := "ledger"
	if fromCache {
		source = "cache"
	}
	c.JSON(http.StatusOK, dto.ToStockResponse(level, source))
}

func (h *stockHandler) getStockBatch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.BatchStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for GetStockBatch", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	keys := make([]domain.StockKey, len(req.Keys))
	for i, k := range req.Keys {
		keys[i] = domain.StockKey{LocationID: k.LocationID, PartID: k.PartID}
	}

	levels, fromCache, err := h.stockService.GetStockBatch(c.Request.Context(), keys)
	if err != nil {
		respondWithError(c, err)
		return
	}

	resp := dto.BatchStockResponse{Levels: make([]dto.StockResponse, len(levels))}
	for i := range levels {
		source := "ledger"
		if fromCache[i] {
			source = "cache"
		}
		resp.Levels[i] = dto.ToStockResponse(&levels[i], source)
	}
	c.JSON(http.StatusOK, resp)
}

func (h *stockHandler) refresh(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	locationID := c.Param("locationID")
	partID := c.Param("partID")

	level, err := h.stockService.Refresh(c.Request.Context(), locationID, partID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	logger.Info("Stock cache refreshed", slog.String("location_id", locationID), slog.String("part_id", partID))
	c.JSON(http.StatusOK, dto.ToStockResponse(level, "ledger"))
}

func (h *stockHandler) rebuildAll(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	count, err := h.stockService.RebuildAll(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	logger.Info("Stock cache rebuilt", slog.Int("keys_rebuilt", count))
	c.JSON(http.StatusOK, dto.RebuildResponse{KeysRebuilt: count})
}
