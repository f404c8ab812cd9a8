package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/bills_app/internal/apperrors"
	"github.com/SscSPs/bills_app/internal/core/forms"
	"github.com/SscSPs/bills_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// respondError maps a service error to its HTTP status. form, when not nil,
// is attached to validation and state errors so clients can re-render it.
func respondError(c *gin.Context, logger *slog.Logger, err error, action string, form *dto.FormResponse) {
	var validationErr *forms.ValidationError
	switch {
	case errors.As(err, &validationErr):
		logger.Warn("Validation error", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, dto.ValidationErrorResponse{
			Error:   "Validation failed",
			Fields:  validationErr.Fields,
			Message: validationErr.Message,
			Form:    form,
		})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, dto.ValidationErrorResponse{Error: err.Error(), Form: form})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("action", action), slog.String("error", err.Error()))
		if form != nil {
			c.JSON(http.StatusNotFound, dto.ValidationErrorResponse{Error: "Not found", Form: form})
			return
		}
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Not found"})
	case errors.Is(err, apperrors.ErrInvalidState):
		logger.Warn("Operation not allowed in current state", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, dto.ValidationErrorResponse{Error: err.Error(), Form: form})
	case errors.Is(err, apperrors.ErrUnauthorized):
		logger.Warn("Unauthorized", slog.String("action", action))
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Invalid username or password"})
	default:
		logger.Error("Request failed", slog.String("action", action), slog.String("error", err.Error()))
		if form != nil {
			c.JSON(http.StatusInternalServerError, dto.ValidationErrorResponse{Error: "Failed to " + action, Form: form})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to " + action})
	}
}

func respondBindError(c *gin.Context, logger *slog.Logger, err error, what string) {
	logger.Warn("Failed to bind "+what, slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid " + what + ": " + err.Error()})
}
