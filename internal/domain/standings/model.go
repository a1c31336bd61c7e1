package standings

// Entry is one fully-parsed league table row. Place is the rank the source
// site displayed, not recomputed here. An Entry only exists when every
// integer column parsed; rows with partial data are dropped at extraction.
type Entry struct {
	Place          int
	Team           string
	Played         int
	Wins           int
	Draws          int
	Losses         int
	GoalsFor       int
	GoalsAgainst   int
	GoalDifference int
	Points         int
}
