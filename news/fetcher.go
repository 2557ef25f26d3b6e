package news

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"newsagent/config"
	"newsagent/types"
)

// Fetcher searches the NewsAPI /v2/everything endpoint.
type Fetcher struct {
	apiKey       string
	baseURL      string
	defaultLimit int
	httpClient   *http.Client
}

// NewFetcher builds a Fetcher from the startup config. An empty NewsAPIKey is
// allowed: Fetch then reports FetchUnavailable without calling out.
func NewFetcher(cfg config.Config) *Fetcher {
	limit := cfg.FetchLimit
	if limit <= 0 {
		limit = config.DefaultFetchLimit
	}
	baseURL := cfg.NewsAPIURL
	if baseURL == "" {
		baseURL = config.DefaultNewsAPIURL
	}
	return &Fetcher{
		apiKey:       cfg.NewsAPIKey,
		baseURL:      baseURL,
		defaultLimit: limit,
		httpClient: &http.Client{
			Timeout: config.NewsFetchTimeout,
		},
	}
}

// everythingResponse is the subset of the NewsAPI payload we read.
type everythingResponse struct {
	Status   string       `json:"status"`
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Articles []rawArticle `json:"articles"`
}

type rawArticle struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Content     *string `json:"content"`
	URL         *string `json:"url"`
	PublishedAt *string `json:"publishedAt"`
}

// Fetch issues one search for query. It never returns an error; failures are
// reported through FetchResult.Status so callers can tell "none found" apart
// from "could not ask".
func (f *Fetcher) Fetch(ctx context.Context, query string, limit int) types.FetchResult {
	if f.apiKey == "" {
		log.Println("NEWS_API_KEY not set; skipping news fetch")
		return types.FetchResult{Status: types.FetchUnavailable}
	}
	if limit <= 0 {
		limit = f.defaultLimit
	}

	articles, err := f.search(ctx, query, limit)
	if err != nil {
		log.Printf("❌ Error fetching news: %v", err)
		return types.FetchResult{Status: types.FetchFailed, Err: err}
	}

	log.Printf("📰 Fetched %d article(s) for query %q", len(articles), query)
	return types.FetchResult{Status: types.FetchOK, Articles: articles}
}

func (f *Fetcher) search(ctx context.Context, query string, limit int) ([]*types.Article, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("language", "en")
	params.Set("sortBy", "publishedAt")
	params.Set("pageSize", strconv.Itoa(limit))
	params.Set("apiKey", f.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("news API returned %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var payload everythingResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if payload.Status == "error" {
		return nil, errors.New("news API error " + payload.Code + ": " + payload.Message)
	}

	articles := make([]*types.Article, 0, len(payload.Articles))
	for _, raw := range payload.Articles {
		articles = append(articles, normalize(raw))
	}
	return articles, nil
}

// normalize maps a raw result to an Article. Missing fields become empty;
// the URL is passed through unchecked.
func normalize(raw rawArticle) *types.Article {
	description := deref(raw.Description)
	if description == "" {
		description = deref(raw.Content)
	}

	a := &types.Article{
		Title:       deref(raw.Title),
		Description: description,
		URL:         deref(raw.URL),
	}
	if ts := deref(raw.PublishedAt); ts != "" {
		if t, err := time.Parse(time.RFC3339, ts); err == nil {
			t = t.UTC()
			a.PublishedAt = &t
		}
	}
	return a
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
