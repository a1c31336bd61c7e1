package httpapi

import "strings"

// The names the crowd uses to summon the bot. Matching is substring-based on
// the lowercased message, so the short forms cover the long ones too.
var botAliases = []string{
	"@taycan a. schitt",
	"@taycan a schitt",
	"@taycan",
	"@taycan a",
	"@taycan a.",
}

type CommandKind int

const (
	CommandNone CommandKind = iota
	CommandLeagueRecap
	CommandTeamRecap
	CommandTVSchedule
	CommandPreview
	CommandLeaders
)

// Command is one parsed chat instruction.
type Command struct {
	Kind CommandKind
	// LeagueKey is set for league-scoped commands.
	LeagueKey string
	// Category is the stat category for CommandLeaders; empty means the
	// cross-category summary.
	Category string
}

const (
	leagueKeyGoon  = "goondesliga"
	leagueKeySpoon = "spoondesliga"
)

func mentionsBot(lower string) bool {
	for _, alias := range botAliases {
		if strings.Contains(lower, alias) {
			return true
		}
	}
	return false
}

func containsAny(lower string, keywords ...string) bool {
	for _, keyword := range keywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

// ParseCommand classifies a chat message. The checks run in priority order
// and the first hit wins, so "recap goondesliga" is a league recap even
// though "recap" alone would be a team recap.
func ParseCommand(text string) Command {
	lower := strings.ToLower(text)
	if !mentionsBot(lower) {
		return Command{Kind: CommandNone}
	}

	if containsAny(lower, "recap", "update") && containsAny(lower, leagueKeyGoon, leagueKeySpoon) {
		key := leagueKeySpoon
		if strings.Contains(lower, leagueKeyGoon) {
			key = leagueKeyGoon
		}
		return Command{Kind: CommandLeagueRecap, LeagueKey: key}
	}

	if containsAny(lower, "highlight", "recap") {
		return Command{Kind: CommandTeamRecap}
	}

	if containsAny(lower, "fsg", "tv") && containsAny(lower, "tv", "on", "kzhedule", "schedule", "guide", "games") {
		return Command{Kind: CommandTVSchedule}
	}

	if strings.Contains(lower, "preview") {
		return Command{Kind: CommandPreview}
	}

	if containsAny(lower, "golden boot", "goals", "top scorers", "assists", "points", "x11", "mvp", "league leaders") {
		key := leagueKeyGoon
		if strings.Contains(lower, "spoon") {
			key = leagueKeySpoon
		}
		return Command{Kind: CommandLeaders, LeagueKey: key, Category: statCategoryFor(lower)}
	}

	return Command{Kind: CommandNone}
}

func statCategoryFor(lower string) string {
	switch {
	case containsAny(lower, "golden boot", "goals", "top scorers"):
		return "goals"
	case strings.Contains(lower, "assists"):
		return "assists"
	case strings.Contains(lower, "points"):
		return "points"
	case containsAny(lower, "x11", "mvp"):
		return "x11"
	default:
		return ""
	}
}
