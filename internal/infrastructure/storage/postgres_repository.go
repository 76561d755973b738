package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"

	"GardenBot/internal/domain"
	"GardenBot/internal/ports"
)

const insertBatch = 500

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// schema is applied by EnsureSchema; post_counter holds a single row with id 1.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS published_links (
		url          TEXT PRIMARY KEY,
		published_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS post_counter (
		id          SMALLINT PRIMARY KEY CHECK (id = 1),
		posts_count INTEGER NOT NULL DEFAULT 0
	)`,
}

// PostgresRepository persists the post log into Postgres.
type PostgresRepository struct {
	db  *sql.DB
	now func() time.Time
}

var _ ports.PostStore = (*PostgresRepository)(nil)

// OpenPostgres opens a lib/pq connection pool for dsn.
func OpenPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// NewPostgresRepository wires a sql.DB implementation.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db, now: time.Now}
}

// EnsureSchema creates the tables when they are missing.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}

// Load returns every published url and the post counter.
func (r *PostgresRepository) Load(ctx context.Context) (domain.PostLog, error) {
	log := domain.NewPostLog()
	if r.db == nil {
		return log, nil
	}

	query, args, err := psql.Select("url").From("published_links").ToSql()
	if err != nil {
		return log, fmt.Errorf("build links query: %w", err)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return log, fmt.Errorf("query links: %w", err)
	}

	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			_ = rows.Close()
			return log, fmt.Errorf("scan url: %w", err)
		}
		log.PublishedLinks[url] = true
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		_ = rows.Close()
		return log, fmt.Errorf("rows iteration: %w", rowsErr)
	}
	if closeErr := rows.Close(); closeErr != nil {
		return log, fmt.Errorf("close rows: %w", closeErr)
	}

	query, args, err = psql.Select("posts_count").From("post_counter").Where(sq.Eq{"id": 1}).ToSql()
	if err != nil {
		return log, fmt.Errorf("build counter query: %w", err)
	}
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&log.PostsCount)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		log.PostsCount = 0
	case err != nil:
		return log, fmt.Errorf("query counter: %w", err)
	}

	return log, nil
}

// Save upserts every url and the counter in one transaction. Rows are never
// deleted, so saving the same log twice leaves the tables unchanged.
func (r *PostgresRepository) Save(ctx context.Context, log domain.PostLog) error {
	if r.db == nil {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	urls := make([]string, 0, len(log.PublishedLinks))
	for url, ok := range log.PublishedLinks {
		if ok {
			urls = append(urls, url)
		}
	}
	sort.Strings(urls)

	now := r.now().UTC()
	for start := 0; start < len(urls); start += insertBatch {
		end := min(start+insertBatch, len(urls))
		insert := psql.Insert("published_links").Columns("url", "published_at")
		for _, url := range urls[start:end] {
			insert = insert.Values(url, now)
		}
		query, args, err := insert.Suffix("ON CONFLICT (url) DO NOTHING").ToSql()
		if err != nil {
			return fmt.Errorf("build links insert: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert links: %w", err)
		}
	}

	query, args, err := psql.Insert("post_counter").
		Columns("id", "posts_count").
		Values(1, log.PostsCount).
		Suffix("ON CONFLICT (id) DO UPDATE SET posts_count = EXCLUDED.posts_count").
		ToSql()
	if err != nil {
		return fmt.Errorf("build counter upsert: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert counter: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
