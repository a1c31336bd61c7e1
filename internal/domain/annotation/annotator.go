package annotation

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/foxsportsgoon/goonbot/internal/domain/match"
)

// Grade tokens the generator sometimes hallucinates next to a player's name.
// They are stripped before annotating so a player never carries two ratings.
var (
	parenGradeRegex = regexp.MustCompile(`\s*\(Grade:\s*\d+\)`)
	wordGradeRegex  = regexp.MustCompile(`(?i)\s+grade\s+\d{1,2}\b`)
	bareGradeRegex  = regexp.MustCompile(`\s*\(\d{1,2}\)`)
)

// StripGradeTokens removes pre-existing grade markers from generated prose.
func StripGradeTokens(text string) string {
	text = parenGradeRegex.ReplaceAllString(text, "")
	text = wordGradeRegex.ReplaceAllString(text, "")
	text = bareGradeRegex.ReplaceAllString(text, "")
	return text
}

// Annotate rewrites the first mention of each rated player in the text as
// "Name (Position, Grade)". Performances are processed by descending name
// length so a full name is claimed before a shorter name that happens to be
// its substring; players without a grade are skipped entirely. Each player is
// annotated at most once per call, every other mention stays untouched. The
// already-annotated set resets per call: repeat calls over raw text annotate
// from scratch.
func Annotate(text string, performances []match.Performance) string {
	text = StripGradeTokens(text)

	ordered := make([]match.Performance, 0, len(performances))
	for _, p := range performances {
		if p.Rated() && strings.TrimSpace(p.Name) != "" {
			ordered = append(ordered, p)
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return len(ordered[i].Name) > len(ordered[j].Name)
	})

	annotated := make(map[string]struct{}, len(ordered))
	var claimed []span
	for _, p := range ordered {
		key := strings.ToLower(p.Name)
		if _, done := annotated[key]; done {
			continue
		}

		pattern, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(p.Name) + `\b`)
		if err != nil {
			continue
		}

		for _, loc := range pattern.FindAllStringIndex(text, -1) {
			if overlapsAny(claimed, loc[0], loc[1]) {
				continue
			}

			mention := text[loc[0]:loc[1]]
			replacement := fmt.Sprintf("%s (%s, %d)", mention, p.Position, *p.Grade)
			text = text[:loc[0]] + replacement + text[loc[1]:]

			grown := len(replacement) - (loc[1] - loc[0])
			for i := range claimed {
				if claimed[i].start >= loc[1] {
					claimed[i].start += grown
					claimed[i].end += grown
				}
			}
			claimed = append(claimed, span{start: loc[0], end: loc[0] + len(replacement)})
			annotated[key] = struct{}{}
			break
		}
	}

	return text
}

type span struct {
	start int
	end   int
}

func overlapsAny(claimed []span, start, end int) bool {
	for _, s := range claimed {
		if start < s.end && end > s.start {
			return true
		}
	}
	return false
}
