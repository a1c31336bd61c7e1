package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/foxsportsgoon/goonbot/internal/domain/fixture"
	"github.com/foxsportsgoon/goonbot/internal/domain/standings"
)

func TestTVSchedule_RendersChannelLineup(t *testing.T) {
	browser := &fakeBrowser{
		standings: map[string][]standings.Entry{
			"goondesliga":  {{Team: "Tigers FC", Points: 28}, {Team: "Minnows", Points: 4}},
			"spoondesliga": {{Team: "Spoon City", Points: 30}, {Team: "Ladle United", Points: 29}},
		},
		upcoming: map[string][]fixture.Fixture{
			"goondesliga":  {{HomeTeam: "Tigers FC", AwayTeam: "Minnows", GameID: "10", League: "Goondesliga"}},
			"spoondesliga": {{HomeTeam: "Spoon City", AwayTeam: "Ladle United", GameID: "20", League: "Spoondesliga"}},
		},
	}
	sender := &fakeSender{}
	svc := NewScheduleService(openerFor(browser), sender, testLeagues, nil)

	require.NoError(t, svc.TVSchedule(context.Background(), true))

	require.Equal(t, "Ay y'all! Here's what's coming up on FoxSportsGoon...", sender.sent[0])

	// The spoon fixture has the higher combined stake, but the marquee slot
	// always goes to the top Goondesliga fixture.
	want := "📺 FoxSportsGoon TV Kzhedule ⚽\n\n" +
		"🌟FSG Marquee Matchup🌟\nTigers FC vs Minnows\n\n" +
		"FSG2\nSpoon City vs Ladle United\n"
	require.Equal(t, want, sender.last())
}

func TestTVSchedule_NoFixtures(t *testing.T) {
	sender := &fakeSender{}
	svc := NewScheduleService(openerFor(&fakeBrowser{}), sender, testLeagues, nil)

	require.NoError(t, svc.TVSchedule(context.Background(), false))
	require.Equal(t, "⚠️ No upcoming matches found.", sender.last())
}

func TestTVSchedule_LoginApologiesDifferByTrigger(t *testing.T) {
	sender := &fakeSender{}
	svc := NewScheduleService(failingOpener(errors.New("down")), sender, testLeagues, nil)

	require.NoError(t, svc.TVSchedule(context.Background(), false))
	require.Equal(t, "⚠️ Couldn't log in to X11", sender.last())

	require.NoError(t, svc.TVSchedule(context.Background(), true))
	require.Equal(t, "⚠️ I couldn't log in to Xpert Eleven.", sender.last())
}
