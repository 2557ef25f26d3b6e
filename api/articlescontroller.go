package api

import (
	"log"
	"net/http"
	"strconv"

	"newsagent/types"

	"github.com/gin-gonic/gin"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// RegisterArticleRoutes registers the read-only listing of persisted articles.
func RegisterArticleRoutes(r *gin.Engine, deps Dependencies) {
	both(r, http.MethodGet, "/articles", func(c *gin.Context) {
		handleListArticles(c, deps)
	})
}

func handleListArticles(c *gin.Context, deps Dependencies) {
	if deps.Lister == nil {
		c.JSON(http.StatusServiceUnavailable, errorEnvelope(deps.now(), nil, "article storage is not configured"))
		return
	}

	limit := defaultListLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, errorEnvelope(deps.now(), nil, "limit must be a positive integer"))
			return
		}
		limit = min(n, maxListLimit)
	}

	articles, err := deps.Lister.Recent(c.Request.Context(), limit)
	if err != nil {
		log.Printf("❌ Failed to list articles: %v", err)
		c.JSON(http.StatusInternalServerError, errorEnvelope(deps.now(), nil, internalErrorMessage(err)))
		return
	}
	if articles == nil {
		articles = []*types.Article{}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"count":    len(articles),
		"articles": articles,
	})
}
