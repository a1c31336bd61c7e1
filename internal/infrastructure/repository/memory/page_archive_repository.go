package memory

import (
	"context"
	"sync"

	"github.com/foxsportsgoon/goonbot/internal/domain/rawdata"
)

// PageArchiveRepository keeps scraped pages in memory. It backs the bot when
// no database is configured; the archive then only lives as long as the
// process.
type PageArchiveRepository struct {
	mu    sync.RWMutex
	pages map[pageKey]rawdata.Payload
}

type pageKey struct {
	kind string
	key  string
}

func NewPageArchiveRepository() *PageArchiveRepository {
	return &PageArchiveRepository{pages: make(map[pageKey]rawdata.Payload)}
}

func (r *PageArchiveRepository) Upsert(_ context.Context, payload rawdata.Payload) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.pages[pageKey{kind: payload.Kind, key: payload.Key}] = payload

	return nil
}

func (r *PageArchiveRepository) Latest(_ context.Context, kind, key string) (rawdata.Payload, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	payload, ok := r.pages[pageKey{kind: kind, key: key}]

	return payload, ok, nil
}
