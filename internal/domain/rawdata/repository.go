package rawdata

import "context"

// Repository stores scraped pages. Archiving is best-effort: callers log a
// failed upsert and carry on with the request.
type Repository interface {
	Upsert(ctx context.Context, payload Payload) error
	Latest(ctx context.Context, kind, key string) (Payload, bool, error)
}
