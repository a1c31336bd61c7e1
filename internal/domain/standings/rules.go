package standings

import (
	"fmt"
	"sort"
	"strings"

	"github.com/foxsportsgoon/goonbot/internal/platform/textnorm"
)

const (
	relegationWatchLabel = "📉 Relegation watch"
	rockBottomWatchLabel = "🪨 Rock Bottom Watch"

	// huntMargin is how many points a team may trail the leader (or the
	// sixth-placed side, for the bottom band) and still be grouped with it.
	huntMargin = 4

	// bottomWatchMinEntries is the table size below which no bottom band is
	// computed at all.
	bottomWatchMinEntries = 6
)

// Rank returns the entries in deterministic league order: points descending,
// then goal difference descending, then team name ascending. The alphabetical
// fallback makes the order total even when teams tie on both numbers.
func Rank(entries []Entry) []Entry {
	ranked := make([]Entry, len(entries))
	copy(ranked, entries)
	sort.Slice(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.GoalDifference != b.GoalDifference {
			return a.GoalDifference > b.GoalDifference
		}
		return a.Team < b.Team
	})
	return ranked
}

// Bands is the classification of a ranked table into the headline groups the
// recap talks about.
type Bands struct {
	Leader           Entry
	HuntPack         []Entry
	BottomWatch      []Entry
	BottomWatchLabel string
}

// Classify splits a ranked table into leader, hunt pack and bottom watch.
// The hunt pack is every non-leader within huntMargin points of the leader.
// The bottom watch only exists for tables of six or more entries: baseline is
// the sixth-placed team's points, and every team from sixth place down within
// huntMargin of that baseline is included. The label is a presentation
// detail keyed on league identity. ok is false for an empty table.
func Classify(ranked []Entry, leagueName string) (Bands, bool) {
	if len(ranked) == 0 {
		return Bands{}, false
	}

	bands := Bands{
		Leader:           ranked[0],
		BottomWatchLabel: bottomWatchLabel(leagueName),
	}

	for _, entry := range ranked[1:] {
		if bands.Leader.Points-entry.Points <= huntMargin {
			bands.HuntPack = append(bands.HuntPack, entry)
		}
	}

	if len(ranked) >= bottomWatchMinEntries {
		baseline := ranked[bottomWatchMinEntries-1].Points
		for _, entry := range ranked[bottomWatchMinEntries-1:] {
			if entry.Points <= baseline+huntMargin {
				bands.BottomWatch = append(bands.BottomWatch, entry)
			}
		}
	}

	return bands, true
}

func bottomWatchLabel(leagueName string) string {
	if strings.Contains(textnorm.Normalize(leagueName), "goondesliga") {
		return relegationWatchLabel
	}
	return rockBottomWatchLabel
}

// Summary renders the standings block used by the league recap.
func Summary(entries []Entry, leagueName string) string {
	ranked := Rank(entries)
	bands, ok := Classify(ranked, leagueName)
	if !ok {
		return "Standings data is missing."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🏆 %s lead the league with %d points.\n\n", bands.Leader.Team, bands.Leader.Points)

	if len(bands.HuntPack) > 0 {
		b.WriteString("⚔️ In the Hunt: " + joinWithPoints(bands.HuntPack) + "\n")
	}
	if len(bands.BottomWatch) > 0 {
		b.WriteString("\n" + bands.BottomWatchLabel + ": " + joinWithPoints(bands.BottomWatch))
	}

	return strings.TrimSpace(b.String())
}

func joinWithPoints(entries []Entry) string {
	parts := make([]string, 0, len(entries))
	for _, entry := range entries {
		parts = append(parts, fmt.Sprintf("%s (%d pts)", entry.Team, entry.Points))
	}
	return strings.Join(parts, ", ")
}
