package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/foxsportsgoon/goonbot/internal/domain/rawdata"
)

// PageArchiveRepository stores scraped pages in Postgres, one row per
// (source, kind, key) with the latest fetch winning.
type PageArchiveRepository struct {
	db *sqlx.DB
}

func NewPageArchiveRepository(db *sqlx.DB) *PageArchiveRepository {
	return &PageArchiveRepository{db: db}
}

const upsertPageQuery = `
INSERT INTO scrape_pages (source, kind, page_key, body, body_hash, fetched_at)
VALUES (:source, :kind, :page_key, :body, :body_hash, :fetched_at)
ON CONFLICT (source, kind, page_key)
DO UPDATE SET
    body = EXCLUDED.body,
    body_hash = EXCLUDED.body_hash,
    fetched_at = EXCLUDED.fetched_at`

const latestPageQuery = `
SELECT source, kind, page_key, body, body_hash, fetched_at
FROM scrape_pages
WHERE kind = $1 AND page_key = $2
ORDER BY fetched_at DESC
LIMIT 1`

func (r *PageArchiveRepository) Upsert(ctx context.Context, payload rawdata.Payload) error {
	model := pageModel{
		Source:    payload.Source,
		Kind:      payload.Kind,
		PageKey:   payload.Key,
		Body:      payload.Body,
		BodyHash:  payload.BodyHash,
		FetchedAt: payload.FetchedAt,
	}

	if _, err := r.db.NamedExecContext(ctx, upsertPageQuery, model); err != nil {
		return fmt.Errorf("upsert scrape page kind=%s key=%s: %w", payload.Kind, payload.Key, err)
	}

	return nil
}

func (r *PageArchiveRepository) Latest(ctx context.Context, kind, key string) (rawdata.Payload, bool, error) {
	var model pageModel
	err := r.db.GetContext(ctx, &model, latestPageQuery, kind, key)
	if errors.Is(err, sql.ErrNoRows) {
		return rawdata.Payload{}, false, nil
	}
	if err != nil {
		return rawdata.Payload{}, false, fmt.Errorf("select scrape page kind=%s key=%s: %w", kind, key, err)
	}

	return rawdata.Payload{
		Source:    model.Source,
		Kind:      model.Kind,
		Key:       model.PageKey,
		Body:      model.Body,
		BodyHash:  model.BodyHash,
		FetchedAt: model.FetchedAt,
	}, true, nil
}

type pageModel struct {
	Source    string    `db:"source"`
	Kind      string    `db:"kind"`
	PageKey   string    `db:"page_key"`
	Body      string    `db:"body"`
	BodyHash  string    `db:"body_hash"`
	FetchedAt time.Time `db:"fetched_at"`
}
