package usecase

import (
	"context"
	"fmt"

	"github.com/foxsportsgoon/goonbot/internal/domain/fixture"
	"github.com/foxsportsgoon/goonbot/internal/domain/match"
	"github.com/foxsportsgoon/goonbot/internal/domain/standings"
)

// MatchReport is everything one match page yields: the header record, the
// graded lineups and the filtered event log.
type MatchReport struct {
	Record       match.Record
	Performances []match.Performance
	Events       []match.Event
}

// StatLeader is one row of a stat category leaderboard.
type StatLeader struct {
	Player    string
	Position  string
	Team      string
	ValueText string
	Value     int
}

// Line renders the leaderboard row the way chat messages list it.
func (l StatLeader) Line() string {
	return fmt.Sprintf("%s, %s, %s - %s", l.Player, l.Position, l.Team, l.ValueText)
}

// League identifies one scraped league.
type League struct {
	Name  string // display name, e.g. "Goondesliga"
	Key   string // normalized key used in commands and archive rows
	Label string // recap header, e.g. "The Goondesliga 🏆"
	URL   string // standings page URL, fixtures and results live there too
	Lnr   int    // league number on the stats page
}

// Leagues holds the two divisions the bot covers. Marquee is the division
// whose top fixture gets the main TV channel.
type Leagues struct {
	Marquee   League
	Secondary League
	// StatsID is the site-wide league id shared by both divisions on the
	// stats page.
	StatsID int
}

// All returns both divisions, marquee first.
func (l Leagues) All() []League {
	return []League{l.Marquee, l.Secondary}
}

// ByKey finds a division by its command key.
func (l Leagues) ByKey(key string) (League, bool) {
	for _, league := range l.All() {
		if league.Key == key {
			return league, true
		}
	}
	return League{}, false
}

// LeagueBrowser is one logged-in scraping session against the league site.
type LeagueBrowser interface {
	MatchPage(ctx context.Context, gameID string) (MatchReport, error)
	Standings(ctx context.Context, leagueURL, leagueKey string) ([]standings.Entry, error)
	UpcomingFixtures(ctx context.Context, leagueURL, leagueKey, leagueName string) ([]fixture.Fixture, error)
	RecentResults(ctx context.Context, leagueURL, leagueKey, leagueName string) ([]fixture.Fixture, error)
	StatLeaders(ctx context.Context, leagueID, lnr int, category string, topN int) ([]StatLeader, error)
}

// SessionOpener performs the site login and hands back a browsing session.
type SessionOpener interface {
	Open(ctx context.Context) (LeagueBrowser, error)
}

// OpenerFunc adapts a login function to SessionOpener.
type OpenerFunc func(ctx context.Context) (LeagueBrowser, error)

func (f OpenerFunc) Open(ctx context.Context) (LeagueBrowser, error) { return f(ctx) }

// SummaryGenerator turns a prompt into chat text. Implementations are best
// effort and substitute a placeholder instead of failing.
type SummaryGenerator interface {
	Summarize(ctx context.Context, prompt string) string
}

// MessageSender posts one message to the group chat.
type MessageSender interface {
	Send(ctx context.Context, text string) error
}
