package types

// FetchStatus tells the caller why a FetchResult holds the articles it does.
type FetchStatus string

const (
	// FetchOK means the upstream answered; Articles may still be empty.
	FetchOK FetchStatus = "ok"
	// FetchUnavailable means no call was made (no credential configured).
	FetchUnavailable FetchStatus = "unavailable"
	// FetchFailed means the call was made and failed; Err holds the cause.
	FetchFailed FetchStatus = "failed"
)

// FetchResult is the outcome of one news search.
type FetchResult struct {
	Status   FetchStatus
	Articles []*Article
	Err      error
}

// OK reports whether the upstream returned at least one article.
func (r FetchResult) OK() bool {
	return r.Status == FetchOK && len(r.Articles) > 0
}

// SummarySource records where a summary's text came from.
type SummarySource string

const (
	SourceUpstream SummarySource = "upstream"
	SourceFallback SummarySource = "fallback"
)

// Summary is the outcome of one summarize call. Text is always usable.
type Summary struct {
	Text   string
	Source SummarySource

	// Reason explains a fallback ("no credential", the upstream error, ...).
	Reason string
}

// Fallback reports whether Text is the local truncation rather than an upstream summary.
func (s Summary) Fallback() bool {
	return s.Source == SourceFallback
}
