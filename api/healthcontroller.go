package api

import (
	"net/http"
	"time"

	"newsagent/config"

	"github.com/gin-gonic/gin"
)

const timeLayout = time.RFC3339

// RegisterHealthRoutes registers health check endpoints.
func RegisterHealthRoutes(r *gin.Engine, deps Dependencies) {
	both(r, http.MethodGet, "/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":       "ok",
			"time":         deps.now().Format(timeLayout),
			"service":      config.AgentName,
			"capabilities": []string{"engineering-news", "summarization"},
		})
	})
}
