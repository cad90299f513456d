// Package storage keeps a small client-local cache: the last successful
// article fetch and the user's settings, so a restart starts from
// stale-but-available data instead of an empty screen.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	_ "modernc.org/sqlite"

	"LinguaNews/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS articles (
	position   INTEGER PRIMARY KEY,
	id         TEXT NOT NULL,
	title      TEXT NOT NULL DEFAULT '',
	content    TEXT NOT NULL DEFAULT '',
	content_a1 TEXT NOT NULL DEFAULT '',
	content_a2 TEXT NOT NULL DEFAULT '',
	content_b1 TEXT NOT NULL DEFAULT '',
	content_b2 TEXT NOT NULL DEFAULT '',
	content_c1 TEXT NOT NULL DEFAULT '',
	content_c2 TEXT NOT NULL DEFAULT '',
	date       TEXT NOT NULL DEFAULT '',
	fetched_at TEXT NOT NULL DEFAULT '',
	url        TEXT NOT NULL DEFAULT '',
	company    TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS settings (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TEXT NOT NULL DEFAULT (datetime('now'))
);`

const settingsKey = "user_settings"

// Cache is the SQLite-backed snapshot store.
type Cache struct {
	db *sql.DB
}

// Open creates or opens the cache database and applies the schema.
func Open(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate cache: %w", err)
	}
	return &Cache{db: db}, nil
}

// Close releases the underlying database handle.
func (c *Cache) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

// ReplaceArticles swaps the cached collection wholesale, mirroring the
// store's replace-on-sync invariant. Position preserves server order.
func (c *Cache) ReplaceArticles(ctx context.Context, items []domain.Article) error {
	if c == nil {
		return nil
	}

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM articles`); err != nil {
		return fmt.Errorf("clear articles: %w", err)
	}

	insert := sq.Insert("articles").Columns(
		"position", "id", "title", "content",
		"content_a1", "content_a2", "content_b1",
		"content_b2", "content_c1", "content_c2",
		"date", "fetched_at", "url", "company",
	)
	for i, a := range items {
		insert = insert.Values(
			i, a.ID, a.Title, a.Content,
			a.ContentA1, a.ContentA2, a.ContentB1,
			a.ContentB2, a.ContentC1, a.ContentC2,
			a.Date, a.FetchedAt, a.URL, a.Company,
		)
	}

	if len(items) > 0 {
		query, args, err := insert.ToSql()
		if err != nil {
			return fmt.Errorf("build insert: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert articles: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace: %w", err)
	}
	return nil
}

// Articles loads the cached collection in its original server order.
func (c *Cache) Articles(ctx context.Context) ([]domain.Article, error) {
	if c == nil {
		return nil, nil
	}

	query, args, err := sq.Select(
		"id", "title", "content",
		"content_a1", "content_a2", "content_b1",
		"content_b2", "content_c1", "content_c2",
		"date", "fetched_at", "url", "company",
	).From("articles").OrderBy("position").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query articles: %w", err)
	}
	defer rows.Close()

	var out []domain.Article
	for rows.Next() {
		var a domain.Article
		if err := rows.Scan(
			&a.ID, &a.Title, &a.Content,
			&a.ContentA1, &a.ContentA2, &a.ContentB1,
			&a.ContentB2, &a.ContentC1, &a.ContentC2,
			&a.Date, &a.FetchedAt, &a.URL, &a.Company,
		); err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate articles: %w", err)
	}
	return out, nil
}

type settingsRecord struct {
	Level                string          `json:"level"`
	NotificationsEnabled bool            `json:"notificationsEnabled"`
	NewsSources          map[string]bool `json:"newsSources"`
}

// SaveSettings upserts the settings snapshot as one key-value row.
func (c *Cache) SaveSettings(ctx context.Context, settings domain.Settings) error {
	if c == nil {
		return nil
	}

	record := settingsRecord{
		Level:                string(settings.Level),
		NotificationsEnabled: settings.NotificationsEnabled,
		NewsSources:          make(map[string]bool, len(settings.NewsSources)),
	}
	for src, enabled := range settings.NewsSources {
		record.NewsSources[string(src)] = enabled
	}

	value, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	_, err = c.db.ExecContext(ctx, `
		INSERT INTO settings(key, value, updated_at)
		VALUES(?, ?, datetime('now'))
		ON CONFLICT(key) DO UPDATE SET
			value=excluded.value,
			updated_at=datetime('now')
	`, settingsKey, string(value))
	if err != nil {
		return fmt.Errorf("upsert settings: %w", err)
	}
	return nil
}

// LoadSettings returns the persisted snapshot merged over defaults; the
// second result reports whether a snapshot existed at all.
func (c *Cache) LoadSettings(ctx context.Context) (domain.Settings, bool, error) {
	settings := domain.DefaultSettings()
	if c == nil {
		return settings, false, nil
	}

	query, args, err := sq.Select("value").From("settings").
		Where(sq.Eq{"key": settingsKey}).ToSql()
	if err != nil {
		return settings, false, fmt.Errorf("build select: %w", err)
	}

	var value string
	err = c.db.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return settings, false, nil
	}
	if err != nil {
		return settings, false, fmt.Errorf("load settings: %w", err)
	}

	var record settingsRecord
	if err := json.Unmarshal([]byte(value), &record); err != nil {
		return settings, false, fmt.Errorf("decode settings: %w", err)
	}

	if level, err := domain.ParseLevel(record.Level); err == nil {
		settings.Level = level
	}
	settings.NotificationsEnabled = record.NotificationsEnabled
	for src, enabled := range record.NewsSources {
		settings.NewsSources[domain.Source(src)] = enabled
	}

	return settings, true, nil
}
