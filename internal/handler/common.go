package handler

import (
	"errors"
	"net/http"

	apperrors "graduation-tickets/pkg/app_errors"
	"graduation-tickets/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func BindJson(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindJSON(obj); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
			"code":  apperrors.Code(apperrors.ErrInvalidInput),
		})
		return err
	}
	return nil
}

func BindQuery(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindQuery(obj); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
			"code":  apperrors.Code(apperrors.ErrInvalidInput),
		})
		return err
	}
	return nil
}

func BindUri(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindUri(obj); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
			"code":  apperrors.Code(apperrors.ErrInvalidInput),
		})
		return err
	}
	return nil
}

// handleError 依錯誤類型決定狀態碼，回應 {"error", "code"}
func handleError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	code := apperrors.Code(err)

	switch {
	case errors.Is(err, apperrors.ErrQuotaExceededByType):
		log.Warn("Ticket type quota exceeded")
		c.JSON(http.StatusConflict, gin.H{"error": "Ticket type quota exceeded", "code": code})
	case errors.Is(err, apperrors.ErrQuotaExceededGlobal):
		log.Warn("Issuer quota exceeded")
		c.JSON(http.StatusConflict, gin.H{"error": "Issuer ticket quota exceeded", "code": code})
	case errors.Is(err, apperrors.ErrMissingGuestName):
		log.Warn("Missing guest name")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Guest name is required for this ticket type", "code": code})
	case errors.Is(err, apperrors.ErrInvalidTicketType):
		log.Warn("Invalid ticket type")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ticket type", "code": code})
	case errors.Is(err, apperrors.ErrInvalidInput):
		log.Warn("Invalid input")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "code": code})
	case errors.Is(err, apperrors.ErrTicketNotFound):
		log.Warn("Ticket not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "Ticket not found", "code": code})
	case errors.Is(err, apperrors.ErrIssuerNotFound):
		log.Warn("Issuer not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "Issuer not found", "code": code})
	case errors.Is(err, apperrors.ErrIssuerAlreadyExists):
		log.Warn("Issuer already exists")
		c.JSON(http.StatusConflict, gin.H{"error": "Issuer already exists", "code": code})
	case errors.Is(err, apperrors.ErrStoreUnavailable), errors.Is(err, apperrors.ErrLockNotAcquired):
		log.Error("Ticket store unavailable")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Ticket store unavailable, please retry", "code": code})
	case errors.Is(err, apperrors.ErrCodeCollisionExhausted):
		log.Error("Ticket code collisions exhausted")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate a unique ticket code", "code": code})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error", "code": code})
	}
}
