package match

import "testing"

func intPtr(v int) *int { return &v }

func TestRecord_MOTMWinner(t *testing.T) {
	tests := []struct {
		name   string
		record Record
		want   string
	}{
		{
			name:   "home win",
			record: Record{HomeScore: "3", AwayScore: "1", MOTMHome: "Anders Home", MOTMAway: "Bert Away"},
			want:   "Anders Home",
		},
		{
			name:   "away win",
			record: Record{HomeScore: "0", AwayScore: "2", MOTMHome: "Anders Home", MOTMAway: "Bert Away"},
			want:   "Bert Away",
		},
		{
			name:   "draw",
			record: Record{HomeScore: "2", AwayScore: "2", MOTMHome: "Anders Home", MOTMAway: "Bert Away"},
			want:   MOTMDrawn,
		},
		{
			name:   "missing score",
			record: Record{HomeScore: Unavailable, AwayScore: "2", MOTMHome: "Anders Home"},
			want:   Unavailable,
		},
		{
			name:   "non numeric score",
			record: Record{HomeScore: "3", AwayScore: "abandoned"},
			want:   Unavailable,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.record.MOTMWinner(); got != tc.want {
				t.Fatalf("MOTMWinner() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestRecord_ScoreLine(t *testing.T) {
	r := Record{HomeTeam: "Tigers FC", AwayTeam: "Real Spoondrid", HomeScore: "2", AwayScore: "1"}
	want := "Tigers FC 2-1 Real Spoondrid"
	if got := r.ScoreLine(); got != want {
		t.Fatalf("ScoreLine() = %q, want %q", got, want)
	}
}

func TestFilterByTeam(t *testing.T) {
	performances := []Performance{
		{Team: "Tigers FC", Name: "A"},
		{Team: "Real Spoondrid", Name: "B"},
		{Team: "Tigers FC", Name: "C"},
	}

	got := FilterByTeam(performances, "Tigers FC")
	if len(got) != 2 || got[0].Name != "A" || got[1].Name != "C" {
		t.Fatalf("unexpected filter result: %+v", got)
	}
}

func TestTopRated(t *testing.T) {
	performances := []Performance{
		{Name: "Unrated"},
		{Name: "Mid", Grade: intPtr(6)},
		{Name: "Star", Grade: intPtr(9)},
		{Name: "AlsoNine", Grade: intPtr(9)},
	}

	top, ok := TopRated(performances)
	if !ok {
		t.Fatal("TopRated found nothing")
	}
	if top.Name != "Star" {
		t.Fatalf("TopRated = %q, want Star (earlier lineup row wins the tie)", top.Name)
	}

	if _, ok := TopRated([]Performance{{Name: "Unrated"}}); ok {
		t.Fatal("TopRated matched a lineup with no rated players")
	}
}
