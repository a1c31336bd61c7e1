package fixture

import (
	"errors"
	"sort"

	"github.com/foxsportsgoon/goonbot/internal/platform/textnorm"
)

// ErrNoFixtures is returned when scheduling is asked to fill channels from an
// empty fixture list. Callers render it as the "no upcoming matches" message
// rather than an empty schedule.
var ErrNoFixtures = errors.New("no upcoming fixtures")

// Slot is one fixture assigned to one output channel.
type Slot struct {
	Channel string
	Fixture Fixture
	Stake   int
}

// Schedule is the channel assignment for one round of upcoming fixtures.
// Marquee, when present, is pinned to the first channel regardless of its
// stake rank.
type Schedule struct {
	Marquee *Slot
	Slots   []Slot
}

// PointsByTeam maps normalized team names to current standings points, used
// to weigh how much a fixture matters.
type PointsByTeam map[string]int

// NewPointsByTeam indexes standings points under normalized team names.
// Merging several leagues into one map is fine; later entries win.
func NewPointsByTeam(points map[string]int) PointsByTeam {
	indexed := make(PointsByTeam, len(points))
	for teamName, pts := range points {
		indexed[textnorm.Normalize(teamName)] = pts
	}
	return indexed
}

// Stake is the combined standings points of both participants. A team that
// cannot be resolved in the standings contributes zero, never an error.
func (p PointsByTeam) Stake(f Fixture) int {
	return p[textnorm.Normalize(f.HomeTeam)] + p[textnorm.Normalize(f.AwayTeam)]
}

// BuildSchedule ranks fixtures by descending stake and assigns them to the
// channel list. The top-ranked fixture from the marquee league (when one
// exists) takes the first channel; everything else fills the remaining
// channels in rank order, skipping the marquee fixture when it comes around
// again. Fixtures beyond the channel list are dropped.
func BuildSchedule(fixtures []Fixture, points PointsByTeam, marqueeLeague string, channels []string) (Schedule, error) {
	if len(fixtures) == 0 {
		return Schedule{}, ErrNoFixtures
	}

	ranked := make([]Fixture, len(fixtures))
	copy(ranked, fixtures)
	sort.SliceStable(ranked, func(i, j int) bool {
		return points.Stake(ranked[i]) > points.Stake(ranked[j])
	})

	schedule := Schedule{}
	usedGameIDs := make(map[string]struct{}, 1)

	if marqueeLeague != "" {
		for _, f := range ranked {
			if f.League == marqueeLeague {
				schedule.Marquee = &Slot{Channel: firstChannel(channels), Fixture: f, Stake: points.Stake(f)}
				usedGameIDs[f.GameID] = struct{}{}
				break
			}
		}
	}

	next := 1
	for _, f := range ranked {
		if _, used := usedGameIDs[f.GameID]; used {
			continue
		}
		if next >= len(channels) {
			break
		}
		schedule.Slots = append(schedule.Slots, Slot{Channel: channels[next], Fixture: f, Stake: points.Stake(f)})
		usedGameIDs[f.GameID] = struct{}{}
		next++
	}

	return schedule, nil
}

func firstChannel(channels []string) string {
	if len(channels) == 0 {
		return ""
	}
	return channels[0]
}
