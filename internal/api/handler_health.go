package api

import (
	"time"

	"github.com/gin-gonic/gin"
)

// GetHealth handles the GET /api/health request.
func (h *Handler) GetHealth(c *gin.Context) {
	respondOK(c, gin.H{
		"message": "facility reservation api",
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}
