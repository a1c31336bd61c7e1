package fixture

import (
	"github.com/foxsportsgoon/goonbot/internal/platform/textnorm"
)

// Fixture is one upcoming or recently played game, identified by the source
// site's opaque game id. League carries the display name of the league the
// fixture was scraped from.
type Fixture struct {
	HomeTeam string
	AwayTeam string
	GameID   string
	League   string
}

// Matchup renders the fixture the way schedules and previews show it.
func (f Fixture) Matchup() string {
	return f.HomeTeam + " vs " + f.AwayTeam
}

// Involves reports whether the given team plays in this fixture. Comparison
// goes through the shared normalizer, never raw strings.
func (f Fixture) Involves(teamName string) bool {
	normalized := textnorm.Normalize(teamName)
	return textnorm.Normalize(f.HomeTeam) == normalized ||
		textnorm.Normalize(f.AwayTeam) == normalized
}

// FindForTeam returns the first fixture involving the team, in input order.
func FindForTeam(fixtures []Fixture, teamName string) (Fixture, bool) {
	for _, f := range fixtures {
		if f.Involves(teamName) {
			return f, true
		}
	}
	return Fixture{}, false
}
