package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"runtime/debug"

	"newsagent/agent"
	"newsagent/classifier"
	"newsagent/config"

	"github.com/gin-gonic/gin"
)

// RegisterWebhookRoutes registers the chat-platform webhook.
func RegisterWebhookRoutes(r *gin.Engine, deps Dependencies) {
	h := &webhookHandler{deps: deps}
	both(r, http.MethodPost, "/webhook", h.handleMessage)
	both(r, http.MethodGet, "/webhook", h.handleCapabilities)
}

type webhookHandler struct {
	deps Dependencies
}

// handleMessage accepts any JSON payload, finds the user's text and replies
// with an A2A envelope.
func (h *webhookHandler) handleMessage(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, errorEnvelope(h.deps.now(), nil, "invalid json"))
		return
	}

	decoded, err := decodePayload(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorEnvelope(h.deps.now(), nil, "invalid json"))
		return
	}
	payload, _ := decoded.(map[string]any)

	text, rule := ExtractText(payload)
	id := ExtractID(payload)

	reply, err := h.deps.Agent.Respond(c.Request.Context(), text)
	if err != nil {
		log.Printf("❌ Webhook error: %v\n%s", err, debug.Stack())
		c.JSON(http.StatusInternalServerError, errorEnvelope(h.deps.now(), id, internalErrorMessage(err)))
		return
	}

	c.JSON(http.StatusOK, renderReply(h.deps, id, rule, reply))
}

// decodePayload parses exactly one JSON value. Numbers stay json.Number so
// large ids keep every digit.
func decodePayload(raw []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("unexpected data after JSON value")
	}
	return v, nil
}

func renderReply(deps Dependencies, id *string, rule string, reply agent.Reply) Envelope {
	now := deps.now()
	switch reply.Kind {
	case agent.KindHelp:
		return successEnvelope(now, id, TypeHelp, reply.Text, nil)
	case agent.KindUnavailable:
		return successEnvelope(now, id, TypeMessage, reply.Text, gin.H{
			"topic":         reply.Topic.Name,
			"query":         reply.Topic.Query,
			"text_source":   rule,
			"fetch_status":  string(reply.FetchStatus),
			"article_count": 0,
		})
	default:
		return successEnvelope(now, id, TypeMessage, reply.Text, gin.H{
			"topic":              reply.Topic.Name,
			"query":              reply.Topic.Query,
			"text_source":        rule,
			"fetch_status":       string(reply.FetchStatus),
			"article_count":      len(reply.Articles),
			"fallback_summaries": reply.Fallbacks,
			"persisted":          reply.Persisted,
		})
	}
}

// handleCapabilities describes the agent without processing a message.
func (h *webhookHandler) handleCapabilities(c *gin.Context) {
	topics := make([]gin.H, 0)
	for _, rule := range classifier.Rules() {
		topics = append(topics, gin.H{
			"name":     rule.Topic.Name,
			"keywords": rule.Keywords,
			"query":    rule.Topic.Query,
		})
	}
	topics = append(topics, gin.H{
		"name":     classifier.Default.Name,
		"keywords": []string{},
		"query":    classifier.Default.Query,
	})

	c.JSON(http.StatusOK, gin.H{
		"status":      "ok",
		"agent":       config.AgentName,
		"version":     config.AgentVersion,
		"description": "Fetches recent engineering news for a topic and summarizes each article.",
		"endpoints": gin.H{
			"message": "POST /webhook/",
			"health":  "GET /health/",
			"recent":  "GET /articles/",
		},
		"topics": topics,
		"accepted_fields": gin.H{
			"text": ruleNames(TextRules),
			"id":   ruleNames(IDRules),
		},
		"timestamp": h.deps.now().Format(timeLayout),
	})
}

func ruleNames(rules []FieldRule) []string {
	names := make([]string, len(rules))
	for i, r := range rules {
		names[i] = r.Name
	}
	return names
}
