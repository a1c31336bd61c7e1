package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/foxsportsgoon/goonbot/internal/domain/fixture"
	"github.com/foxsportsgoon/goonbot/internal/domain/match"
	"github.com/foxsportsgoon/goonbot/internal/domain/standings"
)

func intPtr(v int) *int { return &v }

func TestLeagueRecap_AssemblesRoundup(t *testing.T) {
	browser := &fakeBrowser{
		results: map[string][]fixture.Fixture{
			"goondesliga": {
				{HomeTeam: "Tigers FC", AwayTeam: "Minnows", GameID: "1", League: "Goondesliga"},
				{HomeTeam: "Real Spoondrid", AwayTeam: "Rovers", GameID: "2", League: "Goondesliga"},
			},
		},
		reports: map[string]MatchReport{
			"1": {
				Record: match.Record{HomeTeam: "Tigers FC", AwayTeam: "Minnows", HomeScore: "3", AwayScore: "1"},
				Performances: []match.Performance{
					{Team: "Tigers FC", Position: "FW", Name: "John Smith", Grade: intPtr(9)},
				},
			},
			"2": {
				Record: match.Record{HomeTeam: "Real Spoondrid", AwayTeam: "Rovers", HomeScore: "0", AwayScore: "0"},
			},
		},
		standings: map[string][]standings.Entry{
			"goondesliga": {
				{Place: 1, Team: "Tigers FC", Points: 28},
				{Place: 2, Team: "Real Spoondrid", Points: 26},
			},
		},
	}
	sender := &fakeSender{}
	svc := NewRecapService(openerFor(browser), sender, testLeagues, nil)

	require.NoError(t, svc.LeagueRecap(context.Background(), "goondesliga"))

	require.Len(t, sender.sent, 2)
	require.Equal(t, "Alright y'all! Taycan A. giving you an update on the Goondesliga...", sender.sent[0])

	roundup := sender.sent[1]
	require.True(t, strings.HasPrefix(roundup, "The Goondesliga 🏆"))
	require.Contains(t, roundup, "⚽ Match Results:\nTigers FC 3-1 Minnows\nReal Spoondrid 0-0 Rovers")
	require.Contains(t, roundup, "📊 Top Performers:\n- John Smith (FW, 9 📊, Tigers FC)")
	require.Contains(t, roundup, "📈 Standings Update:\n🏆 Tigers FC lead the league with 28 points.")
}

func TestLeagueRecap_UnknownLeague(t *testing.T) {
	svc := NewRecapService(openerFor(&fakeBrowser{}), &fakeSender{}, testLeagues, nil)
	err := svc.LeagueRecap(context.Background(), "bundesliga")
	require.ErrorIs(t, err, ErrUnknownLeague)
}

func TestLeagueRecap_LoginFailure(t *testing.T) {
	sender := &fakeSender{}
	svc := NewRecapService(failingOpener(errors.New("boom")), sender, testLeagues, nil)

	require.NoError(t, svc.LeagueRecap(context.Background(), "goondesliga"))
	require.Equal(t, "⚠️ Failed to log in to Xpert Eleven to fetch match data.", sender.last())
}

func TestLeagueRecap_NoRecentMatches(t *testing.T) {
	sender := &fakeSender{}
	svc := NewRecapService(openerFor(&fakeBrowser{}), sender, testLeagues, nil)

	require.NoError(t, svc.LeagueRecap(context.Background(), "spoondesliga"))
	require.Equal(t, "Sorry, I couldn't find any recent matches in that league.", sender.last())
}

func TestLeagueRecap_TopPerformersCappedAtThree(t *testing.T) {
	results := make([]fixture.Fixture, 0, 4)
	reports := make(map[string]MatchReport, 4)
	names := []string{"A One", "B Two", "C Three", "D Four"}
	ids := []string{"1", "2", "3", "4"}
	for i, id := range ids {
		results = append(results, fixture.Fixture{HomeTeam: "H", AwayTeam: "A", GameID: id, League: "Goondesliga"})
		reports[id] = MatchReport{
			Record: match.Record{HomeTeam: "H", AwayTeam: "A", HomeScore: "1", AwayScore: "0"},
			Performances: []match.Performance{
				{Team: "H", Position: "FW", Name: names[i], Grade: intPtr(7)},
			},
		}
	}

	browser := &fakeBrowser{results: map[string][]fixture.Fixture{"goondesliga": results}, reports: reports}
	sender := &fakeSender{}
	svc := NewRecapService(openerFor(browser), sender, testLeagues, nil)

	require.NoError(t, svc.LeagueRecap(context.Background(), "goondesliga"))

	roundup := sender.last()
	require.Contains(t, roundup, "C Three")
	require.NotContains(t, roundup, "D Four")
}
