package match

import (
	"regexp"
	"strings"
	"unicode"
)

// Event is one row of the match event log, in page order. Minute is kept as
// text because the source sometimes shows "?" instead of a number.
type Event struct {
	Minute      string
	Description string
	Score       string
}

// Line renders the event the way prompts and recaps show it.
func (e Event) Line() string {
	line := e.Minute + "' - " + e.Description
	if e.Score != "" {
		line += " (Score: " + e.Score + ")"
	}
	return line
}

var impactKeywords = []string{"goal", "assist", "injured", "red card", "sent off"}

// Impactful reports whether the description mentions a high-impact outcome.
func Impactful(description string) bool {
	lower := strings.ToLower(description)
	for _, keyword := range impactKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

func isSubstitution(description string) bool {
	lower := strings.ToLower(description)
	return strings.Contains(lower, "subbed in") || strings.Contains(lower, "substituted")
}

var subbedInNameRegex = regexp.MustCompile(`([A-Z][a-z]+(?:\s+[A-Z][a-z]+)?)`)

// subbedInName pulls a player name out of a substitution description. This is
// a coarse first-capitalized-words heuristic, kept because downstream output
// depends on its exact behavior.
func subbedInName(description string) (string, bool) {
	m := subbedInNameRegex.FindStringSubmatch(description)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

// EventFilter accumulates event rows in page order and applies the
// substitution-reinsertion rule: substitution rows are withheld while the
// rest pass through, and each impactful row contributes its capitalized
// tokens to an impact-player set. On Finalize, a withheld substitution is
// appended only if the subbed-in player's extracted name is in that set.
// The link is token-based, not a strict causal one.
type EventFilter struct {
	events          []Event
	impactPlayers   map[string]struct{}
	heldSubstitutes []Event
}

func NewEventFilter() *EventFilter {
	return &EventFilter{impactPlayers: make(map[string]struct{})}
}

// Add records one event row.
func (f *EventFilter) Add(event Event) {
	if isSubstitution(event.Description) {
		f.heldSubstitutes = append(f.heldSubstitutes, event)
		return
	}

	if Impactful(event.Description) {
		for _, token := range strings.Fields(event.Description) {
			runes := []rune(token)
			if len(runes) > 0 && unicode.IsUpper(runes[0]) {
				f.impactPlayers[token] = struct{}{}
			}
		}
	}
	f.events = append(f.events, event)
}

// Finalize returns the kept events followed by any reinserted substitutions.
func (f *EventFilter) Finalize() []Event {
	out := f.events
	for _, sub := range f.heldSubstitutes {
		name, ok := subbedInName(sub.Description)
		if !ok {
			continue
		}
		if _, hit := f.impactPlayers[name]; hit {
			out = append(out, sub)
		}
	}
	return out
}
