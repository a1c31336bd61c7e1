package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/foxsportsgoon/goonbot/internal/domain/match"
	"github.com/foxsportsgoon/goonbot/internal/domain/standings"
	"github.com/foxsportsgoon/goonbot/internal/platform/logging"
)

// softMessageCap bounds the assembled multi-part messages before the chat
// sink applies its own hard limit.
const softMessageCap = 1500

func truncateSoft(text string) string {
	if len(text) > softMessageCap {
		return text[:softMessageCap]
	}
	return text
}

const maxTopPerformers = 3

// RecapService posts a league round-up: recent scorelines, top performers
// and a standings narrative.
type RecapService struct {
	opener  SessionOpener
	sender  MessageSender
	leagues Leagues
	logger  *logging.Logger
}

func NewRecapService(opener SessionOpener, sender MessageSender, leagues Leagues, logger *logging.Logger) *RecapService {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &RecapService{opener: opener, sender: sender, leagues: leagues, logger: logger}
}

// LeagueRecap assembles and posts the round-up for one league. Scrape and
// login failures are reported into the chat, not returned: the only errors
// that come back are unknown league keys and a broken chat sink.
func (s *RecapService) LeagueRecap(ctx context.Context, leagueKey string) error {
	ctx, span := startUsecaseSpan(ctx, "RecapService.LeagueRecap")
	defer span.End()

	league, ok := s.leagues.ByKey(leagueKey)
	if !ok {
		return fmt.Errorf("%w: league=%s", ErrUnknownLeague, leagueKey)
	}

	if err := s.sender.Send(ctx, fmt.Sprintf("Alright y'all! Taycan A. giving you an update on the %s...", league.Name)); err != nil {
		return fmt.Errorf("send recap intro: %w", err)
	}

	browser, err := s.opener.Open(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "recap login failed", "league", league.Key, "error", err)
		return s.sender.Send(ctx, "⚠️ Failed to log in to Xpert Eleven to fetch match data.")
	}

	results, err := browser.RecentResults(ctx, league.URL, league.Key, league.Name)
	if err != nil {
		s.logger.ErrorContext(ctx, "recap results fetch failed", "league", league.Key, "error", err)
	}
	if len(results) == 0 {
		return s.sender.Send(ctx, "Sorry, I couldn't find any recent matches in that league.")
	}

	var scoreLines []string
	var topPerformers []string
	for _, result := range results {
		report, err := browser.MatchPage(ctx, result.GameID)
		if err != nil {
			s.logger.WarnContext(ctx, "recap match page failed", "game_id", result.GameID, "error", err)
			continue
		}

		scoreLines = append(scoreLines, report.Record.ScoreLine())
		if top, ok := match.TopRated(report.Performances); ok {
			topPerformers = append(topPerformers,
				fmt.Sprintf("%s (%s, %d 📊, %s)", top.Name, top.Position, *top.Grade, top.Team))
		}
	}
	if len(topPerformers) > maxTopPerformers {
		topPerformers = topPerformers[:maxTopPerformers]
	}

	entries, err := browser.Standings(ctx, league.URL, league.Key)
	if err != nil {
		s.logger.WarnContext(ctx, "recap standings fetch failed", "league", league.Key, "error", err)
	}
	standingsSummary := standings.Summary(entries, league.Label)

	var b strings.Builder
	b.WriteString(league.Label)
	b.WriteString("\n\n⚽ Match Results:\n")
	b.WriteString(strings.Join(scoreLines, "\n"))
	b.WriteString("\n\n📊 Top Performers:\n")
	for _, p := range topPerformers {
		b.WriteString("- " + p + "\n")
	}
	b.WriteString("\n📈 Standings Update:\n")
	b.WriteString(standingsSummary)

	return s.sender.Send(ctx, truncateSoft(b.String()))
}
