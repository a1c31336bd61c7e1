package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/foxsportsgoon/goonbot/internal/domain/fixture"
	"github.com/foxsportsgoon/goonbot/internal/platform/logging"
)

// The broadcast lineup, best fixture first. Channel 0 is reserved for the
// marquee matchup.
var tvChannels = []string{"FSG", "FSG2", "FSG3", "FSG+", "FSG Radio 📻", "FSG Kids 🧸"}

// ScheduleService assembles the fake TV schedule from both leagues' upcoming
// fixtures, weighted by current standings points.
type ScheduleService struct {
	opener  SessionOpener
	sender  MessageSender
	leagues Leagues
	logger  *logging.Logger
}

func NewScheduleService(opener SessionOpener, sender MessageSender, leagues Leagues, logger *logging.Logger) *ScheduleService {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &ScheduleService{opener: opener, sender: sender, leagues: leagues, logger: logger}
}

// TVSchedule posts the channel lineup for the next round. announce controls
// the chat intro: the webhook command announces itself, the manual trigger
// endpoint does not.
func (s *ScheduleService) TVSchedule(ctx context.Context, announce bool) error {
	ctx, span := startUsecaseSpan(ctx, "ScheduleService.TVSchedule")
	defer span.End()

	if announce {
		if err := s.sender.Send(ctx, "Ay y'all! Here's what's coming up on FoxSportsGoon..."); err != nil {
			return err
		}
	}

	browser, err := s.opener.Open(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "tv schedule login failed", "error", err)
		apology := "⚠️ Couldn't log in to X11"
		if announce {
			apology = "⚠️ I couldn't log in to Xpert Eleven."
		}
		return s.sender.Send(ctx, apology)
	}

	points := make(map[string]int)
	var fixtures []fixture.Fixture
	for _, league := range s.leagues.All() {
		entries, err := browser.Standings(ctx, league.URL, league.Key)
		if err != nil {
			s.logger.WarnContext(ctx, "tv schedule standings fetch failed", "league", league.Key, "error", err)
		}
		for _, entry := range entries {
			points[entry.Team] = entry.Points
		}

		upcoming, err := browser.UpcomingFixtures(ctx, league.URL, league.Key, league.Name)
		if err != nil {
			s.logger.WarnContext(ctx, "tv schedule fixtures fetch failed", "league", league.Key, "error", err)
		}
		fixtures = append(fixtures, upcoming...)
	}

	schedule, err := fixture.BuildSchedule(fixtures, fixture.NewPointsByTeam(points), s.leagues.Marquee.Name, tvChannels)
	if errors.Is(err, fixture.ErrNoFixtures) {
		return s.sender.Send(ctx, "⚠️ No upcoming matches found.")
	}
	if err != nil {
		return err
	}

	return s.sender.Send(ctx, renderSchedule(schedule))
}

func renderSchedule(schedule fixture.Schedule) string {
	lines := []string{"📺 FoxSportsGoon TV Kzhedule ⚽\n"}
	if schedule.Marquee != nil {
		lines = append(lines, "🌟FSG Marquee Matchup🌟", schedule.Marquee.Fixture.Matchup(), "")
	}
	for _, slot := range schedule.Slots {
		lines = append(lines, slot.Channel, slot.Fixture.Matchup(), "")
	}
	return strings.Join(lines, "\n")
}
