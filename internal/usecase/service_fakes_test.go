package usecase

import (
	"context"
	"errors"

	"github.com/foxsportsgoon/goonbot/internal/domain/fixture"
	"github.com/foxsportsgoon/goonbot/internal/domain/standings"
)

// Shared test doubles for the command services.

var testLeagues = Leagues{
	Marquee:   League{Name: "Goondesliga", Key: "goondesliga", Label: "The Goondesliga 🏆", URL: "https://x11.test/goon", Lnr: 1},
	Secondary: League{Name: "Spoondesliga", Key: "spoondesliga", Label: "The Spoondesliga 🥄", URL: "https://x11.test/spoon", Lnr: 2},
	StatsID:   460905,
}

type fakeBrowser struct {
	reports   map[string]MatchReport
	standings map[string][]standings.Entry
	upcoming  map[string][]fixture.Fixture
	results   map[string][]fixture.Fixture
	leaders   map[string][]StatLeader

	matchErr error
}

func (b *fakeBrowser) MatchPage(_ context.Context, gameID string) (MatchReport, error) {
	if b.matchErr != nil {
		return MatchReport{}, b.matchErr
	}
	report, ok := b.reports[gameID]
	if !ok {
		return MatchReport{}, errors.New("unknown game id " + gameID)
	}
	return report, nil
}

func (b *fakeBrowser) Standings(_ context.Context, _, leagueKey string) ([]standings.Entry, error) {
	return b.standings[leagueKey], nil
}

func (b *fakeBrowser) UpcomingFixtures(_ context.Context, _, leagueKey, _ string) ([]fixture.Fixture, error) {
	return b.upcoming[leagueKey], nil
}

func (b *fakeBrowser) RecentResults(_ context.Context, _, leagueKey, _ string) ([]fixture.Fixture, error) {
	return b.results[leagueKey], nil
}

func (b *fakeBrowser) StatLeaders(_ context.Context, _, _ int, category string, topN int) ([]StatLeader, error) {
	leaders := b.leaders[category]
	if topN > 0 && len(leaders) > topN {
		leaders = leaders[:topN]
	}
	return leaders, nil
}

func openerFor(browser LeagueBrowser) SessionOpener {
	return OpenerFunc(func(context.Context) (LeagueBrowser, error) { return browser, nil })
}

func failingOpener(err error) SessionOpener {
	return OpenerFunc(func(context.Context) (LeagueBrowser, error) { return nil, err })
}

type fakeSender struct {
	sent []string
	err  error
}

func (s *fakeSender) Send(_ context.Context, text string) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, text)
	return nil
}

func (s *fakeSender) last() string {
	if len(s.sent) == 0 {
		return ""
	}
	return s.sent[len(s.sent)-1]
}

type fakeGenerator struct {
	prompts []string
	output  string
}

func (g *fakeGenerator) Summarize(_ context.Context, prompt string) string {
	g.prompts = append(g.prompts, prompt)
	return g.output
}
