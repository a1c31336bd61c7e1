package usecase

import (
	"fmt"
	"strings"

	"github.com/foxsportsgoon/goonbot/internal/domain/match"
	"github.com/foxsportsgoon/goonbot/internal/domain/standings"
)

// Keywords whose presence in an event line marks it as referee-related. These
// get their own prompt section so the analyst can grumble about officiating.
var refereeKeywords = []string{"yellow card", "red card", "penalty", "disallowed goal"}

func refereeEvents(events []match.Event) []match.Event {
	var out []match.Event
	for _, event := range events {
		lower := strings.ToLower(event.Description)
		for _, keyword := range refereeKeywords {
			if strings.Contains(lower, keyword) {
				out = append(out, event)
				break
			}
		}
	}
	return out
}

func eventLines(events []match.Event) string {
	lines := make([]string, 0, len(events))
	for _, event := range events {
		lines = append(lines, event.Line())
	}
	return strings.Join(lines, "\n")
}

func ratingLines(performances []match.Performance) string {
	var lines []string
	for _, p := range performances {
		if p.Rated() {
			lines = append(lines, fmt.Sprintf("%s (%s, %d 📊)", p.Name, p.Position, *p.Grade))
		}
	}
	if len(lines) == 0 {
		return "No player ratings available."
	}
	return strings.Join(lines, "\n")
}

// RecapPrompt builds the post-match commentary prompt. The persona and
// formatting instructions are part of the bot's voice: change them and the
// whole channel notices.
func RecapPrompt(report MatchReport) string {
	refEvents := refereeEvents(report.Events)
	refText := "No significant referee interventions."
	if len(refEvents) > 0 {
		refText = eventLines(refEvents)
	}

	var b strings.Builder
	b.WriteString("You are Taycan A. Schitt, a studio TV analyst for soccer channel FoxSportsGoon. You give exciting post-match recaps focusing on key match events.\n\n")
	b.WriteString("Talk in a slight african american accent.\n")
	b.WriteString("Describe goals in detail.\n")
	b.WriteString("Include who was the man of the match for the winning team.\n")
	b.WriteString("Keep it short and exciting, as if you were presenting highlights on TV. Remember to speak about the events in the past-tense and highlight shifts in momentum and drama.")
	b.WriteString("Refer to the timing of moments using phrases like 'in the 36th minute', 'just before halftime', 'early in the second half', etc.\n")
	b.WriteString("Only annotate players the first time they are mentioned using this format: Name (Position, Grade 📊).\n")
	b.WriteString("Don't repeat the annotations. Don't mention 'Grade:' or use rating scales like 8/10.\n\n")

	record := report.Record
	fmt.Fprintf(&b, "Match: %s vs %s\n", record.HomeTeam, record.AwayTeam)
	fmt.Fprintf(&b, "Score: %s - %s\n\n", record.HomeScore, record.AwayScore)
	fmt.Fprintf(&b, "Match Events:\n%s\n\n", eventLines(report.Events))
	fmt.Fprintf(&b, "Referee: %s\n", record.Referee)
	fmt.Fprintf(&b, "Referee-related events:\n%s\n\n", refText)
	fmt.Fprintf(&b, "Player Grades (use this info to annotate players the FIRST time they are mentioned only):\n%s\n\n", ratingLines(report.Performances))

	return b.String()
}

// TeamForm is one side's context for a preview prompt: its standings row and,
// when it did not have a bye, its latest match with that team's performances.
type TeamForm struct {
	Standing  standings.Entry
	LastMatch *MatchReport
}

// PreviewPrompt builds the pre-match analysis prompt for an upcoming fixture.
func PreviewPrompt(home, away TeamForm) string {
	var b strings.Builder
	b.WriteString("You are Taycan A. Schitt, a studio TV analyst for FoxSportsGoon. You provide exciting, insightful **match previews** for upcoming soccer games.\n\n")
	b.WriteString("Talk in a slight African American accent.\n")
	b.WriteString("ALWAYS keep your previews between 990-1000 characters. NEVER go above 1000.\n")
	b.WriteString("Use the current league standings (place, wins, draws, losses, goals for, goals against, goal difference, and points) as context for your analysis.\n")
	b.WriteString("Include recent form based on the last match result and key player performances.\n")
	b.WriteString("Make predictions and build excitement for the upcoming game.\n")
	b.WriteString("Use full player names and their performance rating in the format (position, grade 📊) the first time they are mentioned when relevant.\n")
	b.WriteString("Keep it engaging as a TV preview.\n\n")
	b.WriteString("If a team has no recent match, they had a bye round, just use standings in your analysis for them.\n\n")

	writeTeamSection(&b, 1, home)
	b.WriteString("\n")
	writeTeamSection(&b, 2, away)

	b.WriteString("\nGenerate a lively and insightful match preview considering the above.\n")
	return strings.TrimSpace(b.String())
}

func writeTeamSection(b *strings.Builder, index int, form TeamForm) {
	s := form.Standing
	fmt.Fprintf(b, "Team %d: %s\n", index, s.Team)
	fmt.Fprintf(b, "Place: %d, W-D-L: %d-%d-%d, GF-GA-Diff: %d-%d-%d, Points: %d\n",
		s.Place, s.Wins, s.Draws, s.Losses, s.GoalsFor, s.GoalsAgainst, s.GoalDifference, s.Points)

	if form.LastMatch == nil {
		return
	}
	record := form.LastMatch.Record
	fmt.Fprintf(b, "Last match result: %s %s-%s %s\n",
		record.HomeTeam, record.HomeScore, record.AwayScore, record.AwayTeam)
	b.WriteString("Key players and ratings:\n")
	for _, p := range form.LastMatch.Performances {
		if p.Rated() {
			fmt.Fprintf(b, "- %s (%s, %d 📊)\n", p.Name, p.Position, *p.Grade)
		}
	}
}
