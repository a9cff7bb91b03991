package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/purchase_fx_app/internal/apperrors"
)

// statusClientClosedRequest is the de facto status for a request the client abandoned.
const statusClientClosedRequest = 499

// writeServiceError maps a service error onto a status code and JSON body.
// fallback is the message sent for unexpected errors, which are not exposed.
func writeServiceError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, context.Canceled):
		logger.Info("Request canceled by client", slog.String("error", err.Error()))
		c.JSON(statusClientClosedRequest, gin.H{"error": "request canceled", "code": "request_canceled"})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "validation_error"})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "code": "not_found"})
	case errors.Is(err, apperrors.ErrDuplicate):
		logger.Warn("Duplicate resource", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "code": "conflict"})
	case errors.Is(err, apperrors.ErrRateUnavailable):
		logger.Warn("Exchange rate unavailable", slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "code": "rate_unavailable"})
	case errors.Is(err, apperrors.ErrUpstreamUnavailable), errors.Is(err, context.DeadlineExceeded):
		logger.Error("Exchange rate service unavailable", slog.String("error", err.Error()))
		c.Header("Retry-After", "30")
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "The exchange rate service is temporarily unavailable. Please try again later.",
			"code":  "upstream_unavailable",
		})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback, "code": "internal_error"})
	}
}
