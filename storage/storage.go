// Package storage persists agent output. Every sink is append-only: there
// are no update or delete paths. Writes are best effort; callers log and
// discard Save errors.
package storage

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"newsagent/config"
	"newsagent/types"
)

// Store records articles produced by the agent.
type Store interface {
	Save(ctx context.Context, a *types.Article) error
	Close() error
}

// Lister reads back the most recent articles, newest first.
type Lister interface {
	Recent(ctx context.Context, limit int) ([]*types.Article, error)
}

type sink struct {
	name  string
	store Store
}

// Multi fans a Save out to every configured sink in registration order.
// Register the SQLite store first so later sinks see its ID and CreatedAt.
type Multi struct {
	sinks   []sink
	timeout time.Duration
}

// NewMulti returns an empty fan-out store.
func NewMulti() *Multi {
	return &Multi{timeout: config.StoreTimeout}
}

// Add registers s under name. Nil stores are ignored.
func (m *Multi) Add(name string, s Store) {
	if s == nil {
		return
	}
	m.sinks = append(m.sinks, sink{name: name, store: s})
	log.Printf("Storage sink enabled: %s", name)
}

// Len reports the number of registered sinks.
func (m *Multi) Len() int { return len(m.sinks) }

// Save attempts every sink, even after a failure, and joins the errors.
func (m *Multi) Save(ctx context.Context, a *types.Article) error {
	if a == nil {
		return nil
	}
	if len(m.sinks) == 0 {
		return nil
	}
	var errs []error
	for _, s := range m.sinks {
		sctx, cancel := context.WithTimeout(ctx, m.timeout)
		err := s.store.Save(sctx, a)
		cancel()
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", s.name, err))
		}
	}
	return errors.Join(errs...)
}

// Close closes every sink and joins the errors.
func (m *Multi) Close() error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", s.name, err))
		}
	}
	return errors.Join(errs...)
}

// stamp returns the creation time to record for a, assigning one when the
// article has not been through a store that sets it.
func stamp(a *types.Article) time.Time {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	return a.CreatedAt
}

// record is the JSON document written by the archive, list and log sinks.
type record struct {
	ID          int64      `json:"id,omitempty"`
	Title       string     `json:"title"`
	URL         string     `json:"url"`
	Description string     `json:"description,omitempty"`
	Summary     string     `json:"summary"`
	PublishedAt *time.Time `json:"published_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

func newRecord(a *types.Article) record {
	return record{
		ID:          a.ID,
		Title:       a.Title,
		URL:         a.URL,
		Description: a.Description,
		Summary:     a.Summary,
		PublishedAt: a.PublishedAt,
		CreatedAt:   stamp(a),
	}
}

func (r record) article() *types.Article {
	return &types.Article{
		ID:          r.ID,
		Title:       r.Title,
		URL:         r.URL,
		Description: r.Description,
		Summary:     r.Summary,
		PublishedAt: r.PublishedAt,
		CreatedAt:   r.CreatedAt,
	}
}
