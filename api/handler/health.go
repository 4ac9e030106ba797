package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/opensight/sift/models"
)

// Health returns a handler for GET /api/health.
func Health() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, models.HealthResponse{Status: "Backend is running!"})
	}
}
