package summarizer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"newsagent/config"
	"newsagent/types"
)

// Client summarizes text with the Hugging Face Inference API
// (facebook/bart-large-cnn by default). It is total: every call yields a
// usable Summary, falling back to Truncate when the upstream is missing or fails.
type Client struct {
	apiKey     string
	url        string
	httpClient *http.Client
}

// New builds a Client from the startup config. An empty SummarizerAPIKey
// selects the truncation-only mode.
func New(cfg config.Config) *Client {
	url := cfg.SummarizerURL
	if url == "" {
		url = config.DefaultSummarizerURL
	}
	return &Client{
		apiKey: cfg.SummarizerAPIKey,
		url:    url,
		httpClient: &http.Client{
			Timeout: config.SummarizeTimeout,
		},
	}
}

type inferenceRequest struct {
	Inputs string `json:"inputs"`
}

// Summarize returns an upstream summary of text, or the truncation fallback.
func (c *Client) Summarize(ctx context.Context, text string) types.Summary {
	if c.apiKey == "" {
		return fallback(text, "no credential")
	}
	if strings.TrimSpace(text) == "" {
		return fallback(text, "empty input")
	}

	data, err := c.infer(ctx, text)
	if err != nil {
		log.Printf("❌ Error calling summarization API: %v", err)
		return fallback(text, err.Error())
	}

	summary, upstreamErr := interpret(data)
	if upstreamErr != "" {
		log.Printf("⚠️  Summarization API error: %s", upstreamErr)
		return fallback(text, upstreamErr)
	}
	return types.Summary{Text: summary, Source: types.SourceUpstream}
}

func (c *Client) infer(ctx context.Context, text string) (any, error) {
	body, err := json.Marshal(inferenceRequest{Inputs: text})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("summarization API returned %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var data any
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return data, nil
}

// interpret applies the response precedence of the inference API:
//  1. non-empty array: first element, preferring summary_text then generated_text
//  2. object with "error": reported back so the caller falls back
//  3. anything else: its JSON text
func interpret(data any) (summary string, upstreamErr string) {
	switch v := data.(type) {
	case []any:
		if len(v) > 0 {
			return fromElement(v[0]), ""
		}
	case map[string]any:
		if e, ok := v["error"]; ok {
			return "", stringify(e)
		}
	}
	return stringify(data), ""
}

func fromElement(first any) string {
	m, ok := first.(map[string]any)
	if !ok {
		return stringify(first)
	}
	for _, field := range []string{"summary_text", "generated_text"} {
		if v, ok := m[field]; ok && truthy(v) {
			return stringify(v)
		}
	}
	return stringify(m)
}

// truthy reports whether a decoded field counts as present: null, false,
// zero, "" and empty collections do not.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		return t != ""
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	}
	return true
}

func stringify(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}

func fallback(text, reason string) types.Summary {
	return types.Summary{
		Text:   Truncate(text, config.FallbackSummaryLength),
		Source: types.SourceFallback,
		Reason: reason,
	}
}

// Truncate keeps the first n characters of text and appends the marker when
// anything was cut. Shorter input is returned unchanged.
func Truncate(text string, n int) string {
	r := []rune(text)
	if len(r) <= n {
		return text
	}
	return string(r[:n]) + config.TruncationMarker
}
