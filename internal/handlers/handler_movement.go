package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/partbin/stockledger/internal/core/ports/services"
	"github.com/partbin/stockledger/internal/dto"
	"github.com/partbin/stockledger/internal/middleware"
)

// movementHandler handles the single-entry write commands and the audit
// reads over committed ledger history.
type movementHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newMovementHandler(ls portssvc.LedgerSvcFacade) *movementHandler {
	return &movementHandler{ledgerService: ls}
}

// registerMovementRoutes registers the receipt/consumption write routes and
// the ledger audit routes.
func registerMovementRoutes(rg *gin.RouterGroup, writeLimiter gin.HandlerFunc, ledgerService portssvc.LedgerSvcFacade) {
	h := newMovementHandler(ledgerService)

	rg.POST("/receipts", writeLimiter, h.createReceipt)
	rg.POST("/consumptions", writeLimiter, h.createConsumption)

	ledger := rg.Group("/ledger")
	{
		ledger.GET("/entries/:entryID", h.getEntry)
		ledger.GET("/:locationID/:partID", h.listEntries)
	}
}

func (h *movementHandler) createReceipt(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateReceipt", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := actorFrom(c)
	if !ok {
		return
	}

	entry, err := h.ledgerService.RecordReceipt(c.Request.Context(), req, actorID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	logger.Info("Receipt recorded", slog.String("entry_id", entry.EntryID))
	c.JSON(http.StatusCreated, dto.ToLedgerEntryResponse(entry))
}

func (h *movementHandler) createConsumption(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateConsumptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateConsumption", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := actorFrom(c)
	if !ok {
		return
	}

	entry, err := h.ledgerService.RecordConsumption(c.Request.Context(), req, actorID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	logger.Info("Consumption recorded", slog.String("entry_id", entry.EntryID))
	c.JSON(http.StatusCreated, dto.ToLedgerEntryResponse(entry))
}

func (h *movementHandler) getEntry(c *gin.Context) {
	entryID := c.Param("entryID")

	entry, err := h.ledgerService.GetEntry(c.Request.Context(), entryID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToLedgerEntryResponse(entry))
}

func (h *movementHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	locationID := c.Param("locationID")
	partID := c.Param("partID")

	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListEntries", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	page, err := h.ledgerService.ListEntries(c.Request.Context(), locationID, partID, params)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}
