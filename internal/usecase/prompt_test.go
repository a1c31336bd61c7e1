package usecase

import (
	"strings"
	"testing"

	"github.com/foxsportsgoon/goonbot/internal/domain/match"
)

func TestRecapPrompt_RefereeSection(t *testing.T) {
	report := MatchReport{
		Record: match.Record{HomeTeam: "Tigers FC", AwayTeam: "Minnows", HomeScore: "2", AwayScore: "1", Referee: "R. Whistler"},
		Events: []match.Event{
			{Minute: "12", Description: "Goal by John Smith"},
			{Minute: "40", Description: "Yellow card for Sam Glove"},
		},
	}

	prompt := RecapPrompt(report)
	if !strings.Contains(prompt, "Referee: R. Whistler") {
		t.Fatalf("prompt missing referee line:\n%s", prompt)
	}
	if !strings.Contains(prompt, "Referee-related events:\n40' - Yellow card for Sam Glove") {
		t.Fatalf("prompt missing referee event:\n%s", prompt)
	}
	if !strings.Contains(prompt, "No player ratings available.") {
		t.Fatalf("prompt missing ratings fallback:\n%s", prompt)
	}
}

func TestRecapPrompt_NoRefereeEvents(t *testing.T) {
	report := MatchReport{
		Record: match.Record{HomeTeam: "A", AwayTeam: "B", HomeScore: "0", AwayScore: "0"},
		Events: []match.Event{{Minute: "12", Description: "Goal by John Smith"}},
	}

	prompt := RecapPrompt(report)
	if !strings.Contains(prompt, "No significant referee interventions.") {
		t.Fatalf("prompt missing fallback:\n%s", prompt)
	}
}
