package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"newsagent/config"
	"newsagent/types"
)

type fakeFetcher struct {
	result  types.FetchResult
	queries []string
	limits  []int
}

func (f *fakeFetcher) Fetch(ctx context.Context, query string, limit int) types.FetchResult {
	f.queries = append(f.queries, query)
	f.limits = append(f.limits, limit)
	return f.result
}

type fakeSummarizer struct {
	inputs   []string
	fallback bool
}

func (f *fakeSummarizer) Summarize(ctx context.Context, text string) types.Summary {
	f.inputs = append(f.inputs, text)
	if f.fallback {
		return types.Summary{Text: text, Source: types.SourceFallback, Reason: "no credential"}
	}
	return types.Summary{Text: "summary of " + text, Source: types.SourceUpstream}
}

type fakeStore struct {
	saved  []*types.Article
	failOn map[int]bool
	panics map[int]bool
	calls  int
}

func (f *fakeStore) Save(ctx context.Context, a *types.Article) error {
	f.calls++
	if f.panics[f.calls] {
		panic("store exploded")
	}
	if f.failOn[f.calls] {
		return errors.New("database is locked")
	}
	f.saved = append(f.saved, a)
	return nil
}

func articles(n int) []*types.Article {
	out := make([]*types.Article, n)
	for i := range out {
		out[i] = &types.Article{
			Title:       fmt.Sprintf("Title %d", i+1),
			Description: fmt.Sprintf("Description %d", i+1),
			URL:         fmt.Sprintf("https://ex.com/%d", i+1),
		}
	}
	return out
}

func newAgent(f *fakeFetcher, s *fakeSummarizer, st ArticleStore) *Agent {
	return New(config.Config{FetchLimit: 3}, f, s, st)
}

func TestRespondWithoutTextReturnsHelp(t *testing.T) {
	f, s, st := &fakeFetcher{}, &fakeSummarizer{}, &fakeStore{}
	a := newAgent(f, s, st)

	for _, text := range []string{"", "   ", "\n\t"} {
		reply, err := a.Respond(context.Background(), text)
		if err != nil {
			t.Fatalf("Respond(%q) error: %v", text, err)
		}
		if reply.Kind != KindHelp || reply.Text != HelpText {
			t.Fatalf("Respond(%q) = %+v; want help", text, reply)
		}
	}
	if len(f.queries) != 0 || len(s.inputs) != 0 || st.calls != 0 {
		t.Fatalf("help path must make no downstream calls")
	}
}

func TestRespondCivilEndToEnd(t *testing.T) {
	f := &fakeFetcher{result: types.FetchResult{Status: types.FetchOK, Articles: articles(3)}}
	s, st := &fakeSummarizer{}, &fakeStore{}
	a := newAgent(f, s, st)

	reply, err := a.Respond(context.Background(), "civil engineering updates")
	if err != nil {
		t.Fatalf("Respond error: %v", err)
	}

	if len(f.queries) != 1 || f.queries[0] != "civil engineering OR structural engineering OR bridge OR concrete" {
		t.Fatalf("unexpected fetch queries %v", f.queries)
	}
	if f.limits[0] != 3 {
		t.Fatalf("fetch limit = %d; want 3", f.limits[0])
	}
	if reply.Kind != KindNews || reply.Topic.Name != "civil" {
		t.Fatalf("unexpected reply kind/topic %+v", reply)
	}

	want := "📰 Here are the latest engineering items I found:\n\n" +
		"• Title 1\nsummary of Description 1\nhttps://ex.com/1\n\n" +
		"• Title 2\nsummary of Description 2\nhttps://ex.com/2\n\n" +
		"• Title 3\nsummary of Description 3\nhttps://ex.com/3"
	if reply.Text != want {
		t.Fatalf("reply text =\n%s\nwant\n%s", reply.Text, want)
	}
	if len(st.saved) != 3 || reply.Persisted != 3 {
		t.Fatalf("expected 3 persisted articles, got %d (reply %d)", len(st.saved), reply.Persisted)
	}
	if st.saved[0].Summary != "summary of Description 1" || st.saved[0].URL != "https://ex.com/1" {
		t.Fatalf("unexpected persisted article %+v", st.saved[0])
	}
}

func TestRespondEmptyFetchNeverSummarizes(t *testing.T) {
	cases := []struct {
		name   string
		result types.FetchResult
	}{
		{"zero articles", types.FetchResult{Status: types.FetchOK}},
		{"unavailable", types.FetchResult{Status: types.FetchUnavailable}},
		{"failed", types.FetchResult{Status: types.FetchFailed, Err: errors.New("503")}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f := &fakeFetcher{result: c.result}
			s, st := &fakeSummarizer{}, &fakeStore{}
			reply, err := newAgent(f, s, st).Respond(context.Background(), "engineering news")
			if err != nil {
				t.Fatalf("Respond error: %v", err)
			}
			if reply.Kind != KindUnavailable || reply.Text != UnavailableText {
				t.Fatalf("unexpected reply %+v", reply)
			}
			if reply.FetchStatus != c.result.Status {
				t.Fatalf("FetchStatus = %q; want %q", reply.FetchStatus, c.result.Status)
			}
			if len(s.inputs) != 0 || st.calls != 0 {
				t.Fatalf("summarizer/store must not be called")
			}
		})
	}
}

func TestRespondPersistenceFailureDoesNotStopBatch(t *testing.T) {
	f := &fakeFetcher{result: types.FetchResult{Status: types.FetchOK, Articles: articles(3)}}
	s := &fakeSummarizer{}
	st := &fakeStore{failOn: map[int]bool{1: true}, panics: map[int]bool{2: true}}

	reply, err := newAgent(f, s, st).Respond(context.Background(), "mechanical")
	if err != nil {
		t.Fatalf("Respond error: %v", err)
	}
	if len(s.inputs) != 3 {
		t.Fatalf("all 3 articles should be summarized, got %d", len(s.inputs))
	}
	if len(reply.Articles) != 3 || strings.Count(reply.Text, "• ") != 3 {
		t.Fatalf("all 3 articles should be in the reply: %q", reply.Text)
	}
	if reply.Persisted != 1 || st.calls != 3 {
		t.Fatalf("Persisted = %d, calls = %d; want 1 and 3", reply.Persisted, st.calls)
	}
}

func TestRespondCapsArticlesAtFetchLimit(t *testing.T) {
	f := &fakeFetcher{result: types.FetchResult{Status: types.FetchOK, Articles: articles(7)}}
	s, st := &fakeSummarizer{}, &fakeStore{}

	reply, err := newAgent(f, s, st).Respond(context.Background(), "civil")
	if err != nil {
		t.Fatalf("Respond error: %v", err)
	}
	if len(s.inputs) != 3 || st.calls != 3 {
		t.Fatalf("summarized %d, persisted %d; want 3 each", len(s.inputs), st.calls)
	}
	if len(reply.Articles) != 3 || strings.Count(reply.Text, "• ") != 3 {
		t.Fatalf("reply should hold 3 articles: %q", reply.Text)
	}
	if strings.Contains(reply.Text, "Title 4") {
		t.Fatalf("articles past the limit leaked into the reply: %q", reply.Text)
	}
}

func TestRespondTitleFallbacks(t *testing.T) {
	f := &fakeFetcher{result: types.FetchResult{Status: types.FetchOK, Articles: []*types.Article{
		{Title: "Only a title", URL: "https://ex.com/t"},
		{Title: "", Description: "", URL: ""},
	}}}
	s := &fakeSummarizer{fallback: true}

	reply, err := newAgent(f, s, nil).Respond(context.Background(), "aerospace")
	if err != nil {
		t.Fatalf("Respond error: %v", err)
	}
	if s.inputs[0] != "Only a title" {
		t.Errorf("empty description should summarize the title, got %q", s.inputs[0])
	}
	if s.inputs[1] != "No title" {
		t.Errorf("missing title should become %q, got %q", "No title", s.inputs[1])
	}
	if !strings.HasSuffix(reply.Text, "• No title\nNo title\n") {
		t.Errorf("unexpected bullet for untitled article: %q", reply.Text)
	}
	if reply.Fallbacks != 2 {
		t.Errorf("Fallbacks = %d; want 2", reply.Fallbacks)
	}
	if reply.Persisted != 0 {
		t.Errorf("nil store should persist nothing")
	}
}

func TestRespondCancelledContext(t *testing.T) {
	f := &fakeFetcher{result: types.FetchResult{Status: types.FetchOK, Articles: articles(2)}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newAgent(f, &fakeSummarizer{}, &fakeStore{}).Respond(ctx, "software")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestNewDefaultsLimit(t *testing.T) {
	f := &fakeFetcher{result: types.FetchResult{Status: types.FetchOK}}
	New(config.Config{}, f, &fakeSummarizer{}, nil).Respond(context.Background(), "news")
	if f.limits[0] != config.DefaultFetchLimit {
		t.Fatalf("limit = %d; want default %d", f.limits[0], config.DefaultFetchLimit)
	}
}
