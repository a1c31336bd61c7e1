package match

import (
	"fmt"
	"sort"
	"strconv"
)

// Unavailable marks a field whose source location was absent or malformed.
// Extraction never fails a whole match because of one bad field; it degrades
// that field to this sentinel and keeps going.
const Unavailable = "N/A"

// MOTMDrawn is the derived man-of-the-match value for a drawn game.
const MOTMDrawn = "Match drawn, no MoTM winner"

// Record is one scraped match page. Scores stay as the raw cell text so a
// page without a final score round-trips as Unavailable instead of a fake 0.
// Records are constructed once per page and not mutated afterwards.
type Record struct {
	HomeTeam  string
	AwayTeam  string
	HomeScore string
	AwayScore string
	Round     string
	League    string
	Venue     string
	Referee   string
	MOTMHome  string
	MOTMAway  string
}

// MOTMWinner derives the man of the match of the side that won: home MOTM on
// a home win, away MOTM on an away win, MOTMDrawn on a draw and Unavailable
// when either score is not a plain integer.
func (r Record) MOTMWinner() string {
	home, err := strconv.Atoi(r.HomeScore)
	if err != nil {
		return Unavailable
	}
	away, err := strconv.Atoi(r.AwayScore)
	if err != nil {
		return Unavailable
	}

	switch {
	case home > away:
		return r.MOTMHome
	case away > home:
		return r.MOTMAway
	default:
		return MOTMDrawn
	}
}

// ScoreLine renders the result the way the recap lists it.
func (r Record) ScoreLine() string {
	return fmt.Sprintf("%s %s-%s %s", r.HomeTeam, r.HomeScore, r.AwayScore, r.AwayTeam)
}

// Performance is one fielded player's line from the match page lineup. Grade
// is nil when the tooltip carried no rating.
type Performance struct {
	Team     string
	Position string
	Name     string
	Grade    *int
	Scored   bool
	Assisted bool
	Booked   bool
	Injured  bool
}

// Rated reports whether the player received a grade.
func (p Performance) Rated() bool { return p.Grade != nil }

// FilterByTeam keeps only performances belonging to the given canonical team
// name.
func FilterByTeam(performances []Performance, teamName string) []Performance {
	out := make([]Performance, 0, len(performances))
	for _, p := range performances {
		if p.Team == teamName {
			out = append(out, p)
		}
	}
	return out
}

// TopRated returns the highest-graded performance; ok is false when no player
// was rated. Ties keep the earlier lineup row, matching page order.
func TopRated(performances []Performance) (Performance, bool) {
	rated := make([]Performance, 0, len(performances))
	for _, p := range performances {
		if p.Rated() {
			rated = append(rated, p)
		}
	}
	if len(rated) == 0 {
		return Performance{}, false
	}
	sort.SliceStable(rated, func(i, j int) bool {
		return *rated[i].Grade > *rated[j].Grade
	})
	return rated[0], true
}
