package config

import "time"

// Upstream API Constants
const (
	// DefaultNewsAPIURL is the NewsAPI search endpoint (free tier)
	DefaultNewsAPIURL = "https://newsapi.org/v2/everything"

	// DefaultSummarizerURL is the Hugging Face Inference endpoint for facebook/bart-large-cnn
	DefaultSummarizerURL = "https://api-inference.huggingface.co/models/facebook/bart-large-cnn"

	// NewsFetchTimeout bounds a single news search request
	NewsFetchTimeout = 10 * time.Second

	// SummarizeTimeout bounds a single summarization request
	SummarizeTimeout = 30 * time.Second
)

// Agent Constants
const (
	// AgentName is reported in reply metadata, the capability document and health checks
	AgentName = "engineering-news-agent"

	// AgentVersion is the reply envelope contract version
	AgentVersion = "2.0.0"

	// DefaultFetchLimit is the number of articles requested per webhook call
	DefaultFetchLimit = 3

	// FallbackSummaryLength is the character count kept by the truncation fallback
	FallbackSummaryLength = 300

	// TruncationMarker is appended to truncated summaries
	TruncationMarker = "..."
)

// Storage Constants
const (
	// DefaultDBPath is the SQLite file holding persisted articles
	DefaultDBPath = "./articles.db"

	// DisabledDBPath turns the SQLite store off when used as DB_PATH
	DisabledDBPath = "-"

	// DefaultRedisRecentMax caps the Redis recent-articles list
	DefaultRedisRecentMax = 100

	// DefaultKafkaTopic receives one message per persisted article
	DefaultKafkaTopic = "agent-articles"

	// StoreTimeout bounds best-effort writes to a single sink
	StoreTimeout = 5 * time.Second
)

// Server Constants
const (
	// DefaultPort is used when PORT is unset
	DefaultPort = "8000"

	// ShutdownTimeout is the grace period for in-flight requests on SIGTERM
	ShutdownTimeout = 10 * time.Second
)
