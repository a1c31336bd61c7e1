package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/foxsportsgoon/goonbot/internal/platform/logging"
)

// statCategory pairs a stats-page category with its chat title.
type statCategory struct {
	Key   string
	Title string
}

var statCategories = []statCategory{
	{Key: "goals", Title: "Golden Boot 👟"},
	{Key: "assists", Title: "Assists 🎩🪄"},
	{Key: "points", Title: "Points 💎"},
	{Key: "x11", Title: "MVP 🏅"},
}

func categoryTitle(key string) string {
	for _, c := range statCategories {
		if c.Key == key {
			return c.Title
		}
	}
	return key
}

// LeaderboardService posts stat leaderboards: top five for one category, or
// the single leader of every category when none is named.
type LeaderboardService struct {
	opener  SessionOpener
	sender  MessageSender
	leagues Leagues
	logger  *logging.Logger
}

func NewLeaderboardService(opener SessionOpener, sender MessageSender, leagues Leagues, logger *logging.Logger) *LeaderboardService {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &LeaderboardService{opener: opener, sender: sender, leagues: leagues, logger: logger}
}

// Leaders posts the leaderboard for one league. An empty category means the
// cross-category summary. Unknown league keys fall back to the marquee
// league.
func (s *LeaderboardService) Leaders(ctx context.Context, leagueKey, category string) error {
	ctx, span := startUsecaseSpan(ctx, "LeaderboardService.Leaders")
	defer span.End()

	league, ok := s.leagues.ByKey(leagueKey)
	if !ok {
		league = s.leagues.Marquee
	}

	if err := s.sender.Send(ctx, "Yo these dudes ain't my 🐐 Dougie Maradonut but..."); err != nil {
		return err
	}

	browser, err := s.opener.Open(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "leaderboard login failed", "league", league.Key, "error", err)
		return s.sender.Send(ctx, "⚠️ I couldn't log in to Xpert Eleven.")
	}

	if category != "" {
		return s.singleCategory(ctx, browser, league, category)
	}
	return s.allCategories(ctx, browser, league)
}

func (s *LeaderboardService) singleCategory(ctx context.Context, browser LeagueBrowser, league League, category string) error {
	title := categoryTitle(category)

	leaders, err := browser.StatLeaders(ctx, s.leagues.StatsID, league.Lnr, category, 5)
	if err != nil {
		s.logger.ErrorContext(ctx, "leaderboard fetch failed", "category", category, "error", err)
	}
	if len(leaders) == 0 {
		return s.sender.Send(ctx, fmt.Sprintf("Couldn't fetch %s leaderboard right now yo", title))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s Leaders (%s):\n\n", title, league.Name)
	for i, leader := range leaders {
		fmt.Fprintf(&b, "%d. %s\n", i+1, leader.Line())
	}
	return s.sender.Send(ctx, strings.TrimSpace(b.String()))
}

func (s *LeaderboardService) allCategories(ctx context.Context, browser LeagueBrowser, league League) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s Leaders:\n\n", league.Name)

	for _, c := range statCategories {
		leaders, err := browser.StatLeaders(ctx, s.leagues.StatsID, league.Lnr, c.Key, 1)
		if err != nil {
			s.logger.WarnContext(ctx, "leaderboard fetch failed", "category", c.Key, "error", err)
			continue
		}
		if len(leaders) == 0 {
			continue
		}
		fmt.Fprintf(&b, "%s\n%s\n\n", c.Title, leaders[0].Line())
	}

	return s.sender.Send(ctx, strings.TrimSpace(b.String()))
}
