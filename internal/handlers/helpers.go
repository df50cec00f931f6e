package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"nusaauth/internal/services"
)

// respondServiceError — единый маппинг исходов сервиса на HTTP-статусы.
func respondServiceError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, services.ErrDuplicateEmail):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email already in use"})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
	case errors.Is(err, services.ErrInvalidCurrentPassword):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Current password is incorrect"})
	case errors.Is(err, services.ErrInvalidOrExpiredOtp):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired OTP"})
	case errors.Is(err, services.ErrInvalidOrExpiredToken):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired token"})
	case errors.Is(err, services.ErrTooSoon):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Please wait before resending"})
	case errors.Is(err, services.ErrDeliveryFailure):
		c.JSON(http.StatusBadGateway, gin.H{"error": "Delivery failed"})
	default:
		log.Printf("[http][%s] store failure: %v", op, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
	}
}

func accountIDFromCtx(c *gin.Context) (string, bool) {
	v, ok := c.Get("account_id")
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}
