package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/partbin/stockledger/internal/apperrors"
	"github.com/partbin/stockledger/internal/middleware"
)

// respondWithError maps service errors onto HTTP statuses. Insufficient
// stock and other state conflicts are 409: the request was well-formed but
// the ledger's current state forbids it. A failed transfer commit is 502
// because the store, not the caller, is at fault and a retry is safe.
func respondWithError(c *gin.Context, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	switch {
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Request failed validation", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrInsufficientStock),
		errors.Is(err, apperrors.ErrDuplicate),
		errors.Is(err, apperrors.ErrConflict):
		logger.Warn("Request conflicts with ledger state", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNegativeStock):
		// Committed history folded to a negative quantity. The caller did
		// nothing wrong; an operator must reconcile via an adjustment.
		logger.Error("Ledger integrity fault", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
			"fault": "negative derived stock; reconcile via an adjustment",
		})
	case errors.Is(err, apperrors.ErrCacheStale):
		// The ledger write committed; retrying would apply it twice.
		logger.Error("Write committed but cache update failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
			"fault": "ledger write committed; stock cache is stale for the touched key — do not retry, refresh the key",
		})
	case errors.Is(err, apperrors.ErrTransfer):
		logger.Error("Transfer could not be committed", slog.String("error", err.Error()))
		c.JSON(http.StatusBadGateway, gin.H{"error": "transfer could not be committed, no partial effect remains; safe to retry"})
	default:
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Code >= 400 && appErr.Code < 500 {
			logger.Warn("Request failed", slog.String("error", err.Error()))
			c.JSON(appErr.Code, gin.H{"error": appErr.Message})
			return
		}
		logger.Error("Internal error", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// actorFrom pulls the acting identity out of the request context. The actor
// middleware guarantees one is present on every route under /api/v1.
func actorFrom(c *gin.Context) (string, bool) {
	actorID, ok := middleware.GetActorFromCtx(c.Request.Context())
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Actor ID not found in context")
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing " + middleware.ActorHeader + " header"})
	}
	return actorID, ok
}
