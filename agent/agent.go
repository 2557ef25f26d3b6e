package agent

import (
	"context"
	"fmt"
	"log"
	"strings"

	"newsagent/classifier"
	"newsagent/config"
	"newsagent/types"
)

// NewsFetcher searches for articles matching a query.
type NewsFetcher interface {
	Fetch(ctx context.Context, query string, limit int) types.FetchResult
}

// Summarizer condenses article text. It must always return usable text.
type Summarizer interface {
	Summarize(ctx context.Context, text string) types.Summary
}

// ArticleStore persists produced articles. Errors are logged and discarded.
type ArticleStore interface {
	Save(ctx context.Context, a *types.Article) error
}

// Kind identifies which canned or composed reply the agent produced.
type Kind string

const (
	KindHelp        Kind = "help"
	KindUnavailable Kind = "unavailable"
	KindNews        Kind = "news"
)

const (
	HelpText = "👋 Hi — I'm the *Engineering News Agent*.\n\n" +
		"Try commands like:\n" +
		"- `engineering news`\n" +
		"- `civil engineering news`\n" +
		"- `mechanical engineering discoveries`\n" +
		"- `AI in software engineering`\n\n" +
		"I’ll fetch recent engineering articles and summarize them for you."

	UnavailableText = "Sorry — I couldn’t fetch news right now. Try again later."

	newsHeader = "📰 Here are the latest engineering items I found:\n\n"

	untitled = "No title"
)

// Reply is the agent's answer to one message.
type Reply struct {
	Kind        Kind
	Text        string
	Topic       classifier.Topic
	FetchStatus types.FetchStatus
	Articles    []*types.Article

	// Fallbacks counts articles whose summary is the local truncation.
	Fallbacks int

	// Persisted counts articles every store accepted.
	Persisted int
}

// Agent runs classify → fetch → summarize → persist for one message.
// It keeps no per-request state and is safe for concurrent use when its
// collaborators are.
type Agent struct {
	fetcher    NewsFetcher
	summarizer Summarizer
	store      ArticleStore
	limit      int
}

// New wires an Agent. store may be nil, in which case nothing is persisted.
func New(cfg config.Config, fetcher NewsFetcher, summarizer Summarizer, store ArticleStore) *Agent {
	limit := cfg.FetchLimit
	if limit <= 0 {
		limit = config.DefaultFetchLimit
	}
	return &Agent{
		fetcher:    fetcher,
		summarizer: summarizer,
		store:      store,
		limit:      limit,
	}
}

// Respond answers text. Degraded upstreams never produce an error; only a
// cancelled context does.
func (a *Agent) Respond(ctx context.Context, text string) (Reply, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Reply{Kind: KindHelp, Text: HelpText}, nil
	}

	topic := classifier.Classify(text)
	log.Printf("🔎 Classified message as %q", topic.Name)

	result := a.fetcher.Fetch(ctx, topic.Query, a.limit)
	if err := ctx.Err(); err != nil {
		return Reply{}, fmt.Errorf("request cancelled during fetch: %w", err)
	}
	if !result.OK() {
		log.Printf("⚠️  No articles (status=%s)", result.Status)
		return Reply{Kind: KindUnavailable, Text: UnavailableText, Topic: topic, FetchStatus: result.Status}, nil
	}

	// The upstream may ignore pageSize.
	found := result.Articles[:min(len(result.Articles), a.limit)]

	reply := Reply{
		Kind:        KindNews,
		Topic:       topic,
		FetchStatus: result.Status,
		Articles:    make([]*types.Article, 0, len(found)),
	}
	bullets := make([]string, 0, len(found))

	for i, art := range found {
		if err := ctx.Err(); err != nil {
			return Reply{}, fmt.Errorf("request cancelled at article %d: %w", i+1, err)
		}

		title := art.Title
		if title == "" {
			title = untitled
		}
		input := art.Description
		if input == "" {
			input = title
		}

		summary := a.summarizer.Summarize(ctx, input)
		if summary.Fallback() {
			reply.Fallbacks++
		}

		produced := &types.Article{
			Title:       title,
			URL:         art.URL,
			Description: art.Description,
			Summary:     summary.Text,
			PublishedAt: art.PublishedAt,
		}
		bullets = append(bullets, fmt.Sprintf("• %s\n%s\n%s", title, summary.Text, art.URL))
		reply.Articles = append(reply.Articles, produced)

		if a.persist(ctx, i+1, produced) {
			reply.Persisted++
		}
	}

	reply.Text = newsHeader + strings.Join(bullets, "\n\n")
	log.Printf("✅ Composed reply with %d article(s), %d fallback summary(ies), %d persisted",
		len(reply.Articles), reply.Fallbacks, reply.Persisted)
	return reply, nil
}

// persist saves one article and swallows any failure, including a panic
// inside a store, so the remaining articles are still processed.
func (a *Agent) persist(ctx context.Context, n int, art *types.Article) (ok bool) {
	if a.store == nil {
		return false
	}
	defer func() {
		if r := recover(); r != nil {
			log.Printf("  [%d] ❌ Store panicked for %q: %v", n, art.DisplayTitle(), r)
			ok = false
		}
	}()
	if err := a.store.Save(ctx, art); err != nil {
		log.Printf("  [%d] ❌ Failed to persist %q: %v", n, art.DisplayTitle(), err)
		return false
	}
	return true
}
