package api

import (
	"context"
	"log"
	"net/http"
	"time"

	"newsagent/agent"
	"newsagent/storage"

	"github.com/gin-gonic/gin"
)

// Responder answers one user message.
type Responder interface {
	Respond(ctx context.Context, text string) (agent.Reply, error)
}

// Dependencies are the collaborators the routes need. Lister may be nil.
type Dependencies struct {
	Agent  Responder
	Lister storage.Lister

	// Now defaults to time.Now.
	Now func() time.Time

	// RequestLog enables gin's per-request logger.
	RequestLog bool
}

func (d Dependencies) now() time.Time {
	if d.Now != nil {
		return d.Now().UTC()
	}
	return time.Now().UTC()
}

// NewRouter constructs a Gin engine with registered routes.
func NewRouter(deps Dependencies) *gin.Engine {
	r := gin.New()
	r.RedirectTrailingSlash = false
	r.HandleMethodNotAllowed = true

	if deps.RequestLog {
		r.Use(gin.Logger())
	}
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Printf("❌ Webhook error (panic): %v", recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError,
			errorEnvelope(deps.now(), nil, internalErrorMessage(recovered)))
	}))

	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, errorEnvelope(deps.now(), nil, "method not allowed"))
	})
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, errorEnvelope(deps.now(), nil, "not found"))
	})

	// Register resource routers
	RegisterWebhookRoutes(r, deps)
	RegisterHealthRoutes(r, deps)
	RegisterArticleRoutes(r, deps)
	return r
}

// both registers h for path with and without the trailing slash.
func both(r *gin.Engine, method, path string, h gin.HandlerFunc) {
	r.Handle(method, path, h)
	r.Handle(method, path+"/", h)
}
