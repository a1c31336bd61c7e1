package usecase

import (
	"context"

	"github.com/foxsportsgoon/goonbot/internal/domain/annotation"
	"github.com/foxsportsgoon/goonbot/internal/domain/fixture"
	"github.com/foxsportsgoon/goonbot/internal/domain/team"
	"github.com/foxsportsgoon/goonbot/internal/platform/logging"
)

// HighlightService posts a generated recap of one team's latest match.
type HighlightService struct {
	opener    SessionOpener
	generator SummaryGenerator
	sender    MessageSender
	aliases   *team.AliasMap
	leagues   Leagues
	logger    *logging.Logger
}

func NewHighlightService(opener SessionOpener, generator SummaryGenerator, sender MessageSender, aliases *team.AliasMap, leagues Leagues, logger *logging.Logger) *HighlightService {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &HighlightService{
		opener:    opener,
		generator: generator,
		sender:    sender,
		aliases:   aliases,
		leagues:   leagues,
		logger:    logger,
	}
}

// TeamRecap resolves a team mention out of the free text, finds that team's
// most recent match and posts a generated highlight summary. Text that
// mentions no known team is silently ignored: the chat is full of messages
// that are not for the bot.
func (s *HighlightService) TeamRecap(ctx context.Context, text string) error {
	ctx, span := startUsecaseSpan(ctx, "HighlightService.TeamRecap")
	defer span.End()

	teamName, ok := s.aliases.Resolve(text)
	if !ok {
		return nil
	}

	browser, err := s.opener.Open(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "highlight login failed", "team", teamName, "error", err)
		return s.sender.Send(ctx, "⚠️ Failed to log in to Xpert Eleven to fetch match data.")
	}

	for _, league := range s.leagues.All() {
		results, err := browser.RecentResults(ctx, league.URL, league.Key, league.Name)
		if err != nil {
			s.logger.WarnContext(ctx, "highlight results fetch failed", "league", league.Key, "error", err)
			continue
		}

		latest, found := fixture.FindForTeam(results, teamName)
		if !found {
			continue
		}

		report, err := browser.MatchPage(ctx, latest.GameID)
		if err != nil {
			s.logger.ErrorContext(ctx, "highlight match page failed", "game_id", latest.GameID, "error", err)
			return s.sender.Send(ctx, "[Failed to retrieve match page.]")
		}

		summary := s.generator.Summarize(ctx, RecapPrompt(report))
		annotated := annotation.Annotate(summary, report.Performances)
		return s.sender.Send(ctx, annotated)
	}

	s.logger.InfoContext(ctx, "no recent match found for team", "team", teamName)
	return nil
}
