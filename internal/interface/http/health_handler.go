package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/mood-diary/pkg/response"
)

// Health GET /health
func Health(c *gin.Context) {
	response.JSON(c, http.StatusOK, gin.H{"status": "ok"})
}
