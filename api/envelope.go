package api

import (
	"fmt"
	"time"

	"newsagent/config"

	"github.com/gin-gonic/gin"
)

// Envelope is the A2A-style reply body. It replaces the older
// {reply_to, actions:[...]} shape, which is no longer produced.
type Envelope struct {
	Status         string  `json:"status"`
	Type           string  `json:"type"`
	Message        string  `json:"message"`
	ConversationID *string `json:"conversation_id"`
	Timestamp      string  `json:"timestamp"`
	Metadata       gin.H   `json:"metadata"`
}

const (
	StatusSuccess = "success"
	StatusError   = "error"

	TypeMessage = "message"
	TypeHelp    = "help"
	TypeError   = "error"
)

func baseMetadata() gin.H {
	return gin.H{
		"agent":   config.AgentName,
		"version": config.AgentVersion,
	}
}

func successEnvelope(now time.Time, id *string, typ, message string, metadata gin.H) Envelope {
	md := baseMetadata()
	for k, v := range metadata {
		md[k] = v
	}
	return Envelope{
		Status:         StatusSuccess,
		Type:           typ,
		Message:        message,
		ConversationID: id,
		Timestamp:      now.Format(time.RFC3339),
		Metadata:       md,
	}
}

func errorEnvelope(now time.Time, id *string, message string) Envelope {
	return Envelope{
		Status:         StatusError,
		Type:           TypeError,
		Message:        message,
		ConversationID: id,
		Timestamp:      now.Format(time.RFC3339),
		Metadata:       baseMetadata(),
	}
}

func internalErrorMessage(cause any) string {
	return fmt.Sprintf("⚠️ An error occurred while processing your request: %v", cause)
}
