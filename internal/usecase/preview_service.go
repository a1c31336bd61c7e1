package usecase

import (
	"context"
	"fmt"

	"github.com/foxsportsgoon/goonbot/internal/domain/fixture"
	"github.com/foxsportsgoon/goonbot/internal/domain/match"
	"github.com/foxsportsgoon/goonbot/internal/domain/standings"
	"github.com/foxsportsgoon/goonbot/internal/domain/team"
	"github.com/foxsportsgoon/goonbot/internal/platform/logging"
	"github.com/foxsportsgoon/goonbot/internal/platform/textnorm"
)

// PreviewService posts a generated preview of a team's next fixture, built
// from both sides' standings rows and most recent match form.
type PreviewService struct {
	opener    SessionOpener
	generator SummaryGenerator
	sender    MessageSender
	aliases   *team.AliasMap
	leagues   Leagues
	logger    *logging.Logger
}

func NewPreviewService(opener SessionOpener, generator SummaryGenerator, sender MessageSender, aliases *team.AliasMap, leagues Leagues, logger *logging.Logger) *PreviewService {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &PreviewService{
		opener:    opener,
		generator: generator,
		sender:    sender,
		aliases:   aliases,
		leagues:   leagues,
		logger:    logger,
	}
}

// MatchPreview resolves a team mention, finds its upcoming fixture and posts
// a generated preview. A team without an upcoming fixture gets the bye
// message instead.
func (s *PreviewService) MatchPreview(ctx context.Context, text string) error {
	ctx, span := startUsecaseSpan(ctx, "PreviewService.MatchPreview")
	defer span.End()

	if err := s.sender.Send(ctx, "Preview? We talkin' 'bout previews? Jk y'all, let's get it..."); err != nil {
		return err
	}

	teamName, ok := s.aliases.Resolve(text)
	if !ok {
		return s.sender.Send(ctx, "Ay yo, who?? I ain't never heard of that team.")
	}

	browser, err := s.opener.Open(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "preview login failed", "team", teamName, "error", err)
		return s.sender.Send(ctx, "⚠️ Failed to log in to Xpert Eleven to fetch match data.")
	}

	var allStandings []standings.Entry
	var allUpcoming []fixture.Fixture
	for _, league := range s.leagues.All() {
		entries, err := browser.Standings(ctx, league.URL, league.Key)
		if err != nil {
			s.logger.WarnContext(ctx, "preview standings fetch failed", "league", league.Key, "error", err)
		}
		allStandings = append(allStandings, entries...)

		upcoming, err := browser.UpcomingFixtures(ctx, league.URL, league.Key, league.Name)
		if err != nil {
			s.logger.WarnContext(ctx, "preview fixtures fetch failed", "league", league.Key, "error", err)
		}
		allUpcoming = append(allUpcoming, upcoming...)
	}

	upcoming, found := fixture.FindForTeam(allUpcoming, teamName)
	if !found {
		return s.sender.Send(ctx, fmt.Sprintf("Hold on now...stay off the taaaaaar! %s has a bye.", teamName))
	}

	homeForm := s.teamForm(ctx, browser, upcoming.HomeTeam, allStandings)
	awayForm := s.teamForm(ctx, browser, upcoming.AwayTeam, allStandings)
	if homeForm.LastMatch == nil && awayForm.LastMatch == nil {
		return s.sender.Send(ctx, "Sorry, couldn't find any recent match info for either team.")
	}

	preview := s.generator.Summarize(ctx, PreviewPrompt(homeForm, awayForm))
	return s.sender.Send(ctx, truncateSoft(preview))
}

// teamForm gathers one side's preview context: its standings row and, when it
// played recently, the latest match with that team's performances only.
func (s *PreviewService) teamForm(ctx context.Context, browser LeagueBrowser, teamName string, allStandings []standings.Entry) TeamForm {
	form := TeamForm{Standing: s.findStanding(teamName, allStandings)}

	for _, league := range s.leagues.All() {
		results, err := browser.RecentResults(ctx, league.URL, league.Key, league.Name)
		if err != nil {
			s.logger.WarnContext(ctx, "preview results fetch failed", "league", league.Key, "error", err)
			continue
		}

		latest, found := fixture.FindForTeam(results, teamName)
		if !found {
			continue
		}

		report, err := browser.MatchPage(ctx, latest.GameID)
		if err != nil {
			s.logger.WarnContext(ctx, "preview match page failed", "game_id", latest.GameID, "error", err)
			break
		}
		report.Performances = match.FilterByTeam(report.Performances, form.Standing.Team)
		form.LastMatch = &report
		break
	}

	return form
}

// findStanding locates a team's standings row, resolving casual names through
// the alias map first. A team missing from every table still gets a usable
// zero row carrying its name.
func (s *PreviewService) findStanding(teamName string, entries []standings.Entry) standings.Entry {
	official, ok := s.aliases.Resolve(teamName)
	if !ok {
		official = teamName
	}

	normalized := textnorm.Normalize(official)
	for _, entry := range entries {
		if textnorm.Normalize(entry.Team) == normalized {
			return entry
		}
	}
	return standings.Entry{Team: official}
}
