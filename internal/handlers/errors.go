package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/pharmacy_moneybox/internal/apperrors"
	"github.com/SscSPs/pharmacy_moneybox/internal/middleware"
	"github.com/gin-gonic/gin"
)

// respondWithError writes err as {"error": msg} with the status its sentinel maps to.
// Unexpected failures are logged and answered with fallback so internals do not leak.
func respondWithError(c *gin.Context, err error, fallback string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status := apperrors.StatusCode(err)
	_ = c.Error(err)

	if status == http.StatusInternalServerError {
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(status, gin.H{"error": fallback})
		return
	}

	msg := err.Error()
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		msg = appErr.Message
	}
	logger.Warn(fallback, slog.String("error", err.Error()), slog.Int("status", status))
	c.JSON(status, gin.H{"error": msg})
}

// bindError answers a request whose body or query could not be bound.
func bindError(c *gin.Context, err error, operation string) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind request for "+operation, slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
}

// callerFromContext returns the authenticated user and pharmacy, answering 401 when absent.
func callerFromContext(c *gin.Context) (userID, pharmacyID string, ok bool) {
	userID, userOK := middleware.GetUserIDFromContext(c)
	pharmacyID, pharmacyOK := middleware.GetPharmacyIDFromContext(c)
	if !userOK || !pharmacyOK {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Caller not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", "", false
	}
	return userID, pharmacyID, true
}
