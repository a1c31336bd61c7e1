package rawdata

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Page kinds stored in the scrape archive.
const (
	KindMatchPage     = "match_page"
	KindStandingsPage = "standings_page"
	KindStatsPage     = "stats_page"
)

// Payload is one scraped HTML document kept for replay and debugging. Key
// identifies the page within its kind (game id, league key, stat category).
type Payload struct {
	Source    string
	Kind      string
	Key       string
	Body      string
	BodyHash  string
	FetchedAt time.Time
}

// NewPayload builds a Payload with the body hash filled in.
func NewPayload(source, kind, key, body string, fetchedAt time.Time) Payload {
	sum := sha256.Sum256([]byte(body))
	return Payload{
		Source:    source,
		Kind:      kind,
		Key:       key,
		Body:      body,
		BodyHash:  hex.EncodeToString(sum[:]),
		FetchedAt: fetchedAt,
	}
}
