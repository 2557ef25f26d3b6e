package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"newsagent/types"

	_ "modernc.org/sqlite"
)

const sqliteTimeLayout = "2006-01-02T15:04:05.000Z"

const createArticlesSQL = `
CREATE TABLE IF NOT EXISTS articles (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	url TEXT NOT NULL DEFAULT '',
	summary TEXT NOT NULL DEFAULT '',
	published_at TEXT,
	created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
);

CREATE INDEX IF NOT EXISTS idx_articles_created_at ON articles (created_at);
`

// SQLite is the durable article record store.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens the database at dbPath and creates the articles table if needed.
func NewSQLite(dbPath string) (*SQLite, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: open database: %w", err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: set WAL mode: %w", err)
	}

	if _, err := db.Exec(createArticlesSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: create tables: %w", err)
	}

	return &SQLite{db: db}, nil
}

// Close closes the underlying database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// Save inserts a new row. The database assigns id and created_at, which are
// copied back onto a.
func (s *SQLite) Save(ctx context.Context, a *types.Article) error {
	var published sql.NullString
	if a.PublishedAt != nil {
		published = sql.NullString{String: a.PublishedAt.UTC().Format(time.RFC3339), Valid: true}
	}

	var (
		id        int64
		createdAt string
	)
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO articles (title, url, summary, published_at) VALUES (?, ?, ?, ?)
		 RETURNING id, created_at`,
		a.Title, a.URL, a.Summary, published,
	).Scan(&id, &createdAt)
	if err != nil {
		return fmt.Errorf("storage: save article %q: %w", a.DisplayTitle(), err)
	}

	a.ID = id
	if t, err := time.Parse(sqliteTimeLayout, createdAt); err == nil {
		a.CreatedAt = t
	}
	return nil
}

// Recent returns up to limit articles, newest first.
func (s *SQLite) Recent(ctx context.Context, limit int) ([]*types.Article, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, url, summary, published_at, created_at
		 FROM articles ORDER BY id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: query recent articles: %w", err)
	}
	defer rows.Close()

	var articles []*types.Article
	for rows.Next() {
		var (
			a         types.Article
			published sql.NullString
			createdAt string
		)
		if err := rows.Scan(&a.ID, &a.Title, &a.URL, &a.Summary, &published, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: scan article: %w", err)
		}
		if published.Valid {
			if t, err := time.Parse(time.RFC3339, published.String); err == nil {
				a.PublishedAt = &t
			}
		}
		if t, err := time.Parse(sqliteTimeLayout, createdAt); err == nil {
			a.CreatedAt = t
		}
		articles = append(articles, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: iterate articles: %w", err)
	}
	return articles, nil
}
