package handlers

import (
	"errors"
	"net/http"

	"github.com/EmmanuelOnyekachi21/SmartRent-Backend/domain"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError maps domain errors onto HTTP responses
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	var errs domain.ValidationErrors
	var ve *domain.ValidationError
	var conflict *domain.ConflictError

	switch {
	case errors.As(err, &errs):
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": errs.Fields()})
	case errors.As(err, &ve):
		field := ve.Field
		if field == "" {
			field = "non_field_errors"
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": gin.H{field: []string{ve.Message}}})
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, gin.H{"error": conflict.Error(), "fields": gin.H{conflict.Field: []string{conflict.Error()}}})
	case errors.Is(err, domain.ErrAccountConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrAccountNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found."})
	case errors.Is(err, domain.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
	case errors.Is(err, domain.ErrAccountInactive):
		c.JSON(http.StatusForbidden, gin.H{"error": "Account is inactive"})
	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to perform this action."})
	case errors.Is(err, domain.ErrPhotoStoreDisabled):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		logger.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
