package annotation

import (
	"strings"
	"testing"

	"github.com/foxsportsgoon/goonbot/internal/domain/match"
)

func intPtr(v int) *int { return &v }

func TestStripGradeTokens(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "parenthesised grade",
			in:   "Smith (Grade: 8) scored twice.",
			want: "Smith scored twice.",
		},
		{
			name: "word grade",
			in:   "Smith grade 8 was everywhere tonight.",
			want: "Smith was everywhere tonight.",
		},
		{
			name: "bare trailing digits",
			in:   "Smith (8) buried the winner.",
			want: "Smith buried the winner.",
		},
		{
			name: "untouched text",
			in:   "Smith scored in the 36th minute.",
			want: "Smith scored in the 36th minute.",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := StripGradeTokens(tc.in); got != tc.want {
				t.Fatalf("StripGradeTokens(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestAnnotate_FirstMentionOnly(t *testing.T) {
	performances := []match.Performance{
		{Name: "Smith", Position: "FW", Grade: intPtr(8)},
	}

	got := Annotate("Smith scored. Smith celebrated.", performances)
	want := "Smith (FW, 8) scored. Smith celebrated."
	if got != want {
		t.Fatalf("Annotate = %q, want %q", got, want)
	}
}

func TestAnnotate_LongerNamesClaimedFirst(t *testing.T) {
	performances := []match.Performance{
		{Name: "Smith", Position: "MF", Grade: intPtr(6)},
		{Name: "John Smith", Position: "FW", Grade: intPtr(9)},
	}

	got := Annotate("John Smith struck early and Smith never slowed down.", performances)
	want := "John Smith (FW, 9) struck early and Smith (MF, 6) never slowed down."
	if got != want {
		t.Fatalf("Annotate = %q, want %q", got, want)
	}
}

func TestAnnotate_SkipsUnratedPlayers(t *testing.T) {
	performances := []match.Performance{
		{Name: "Smith", Position: "FW", Grade: intPtr(8)},
		{Name: "Jones", Position: "DF"},
	}

	got := Annotate("Smith and Jones combined well.", performances)
	if !strings.Contains(got, "Smith (FW, 8)") {
		t.Fatalf("rated player not annotated: %q", got)
	}
	if strings.Contains(got, "Jones (") {
		t.Fatalf("unrated player annotated: %q", got)
	}
}

func TestAnnotate_CaseInsensitiveWholeWord(t *testing.T) {
	performances := []match.Performance{
		{Name: "Ito", Position: "GK", Grade: intPtr(7)},
	}

	got := Annotate("The editor found ITO in goal but not in Blackitos.", performances)
	want := "The editor found ITO (GK, 7) in goal but not in Blackitos."
	if got != want {
		t.Fatalf("Annotate = %q, want %q", got, want)
	}
}

func TestAnnotate_StripsHallucinatedGradesBeforeAnnotating(t *testing.T) {
	performances := []match.Performance{
		{Name: "Smith", Position: "FW", Grade: intPtr(8)},
	}

	got := Annotate("Smith (Grade: 9) scored.", performances)
	want := "Smith (FW, 8) scored."
	if got != want {
		t.Fatalf("Annotate = %q, want %q", got, want)
	}
}

func TestAnnotate_ExactlyOneAnnotationPerPlayer(t *testing.T) {
	performances := []match.Performance{
		{Name: "Smith", Position: "FW", Grade: intPtr(8)},
		{Name: "Jones", Position: "MF", Grade: intPtr(7)},
	}

	text := "Smith passed to Jones. Jones returned it and Smith scored. Smith bowed."
	got := Annotate(text, performances)

	if n := strings.Count(got, "(FW, 8)"); n != 1 {
		t.Fatalf("Smith annotated %d times: %q", n, got)
	}
	if n := strings.Count(got, "(MF, 7)"); n != 1 {
		t.Fatalf("Jones annotated %d times: %q", n, got)
	}
}
