package xperteleven

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	crerr "github.com/cockroachdb/errors"

	"github.com/foxsportsgoon/goonbot/internal/domain/fixture"
	"github.com/foxsportsgoon/goonbot/internal/domain/match"
	"github.com/foxsportsgoon/goonbot/internal/domain/rawdata"
	"github.com/foxsportsgoon/goonbot/internal/domain/standings"
	"github.com/foxsportsgoon/goonbot/internal/usecase"
)

var (
	gameIDRegex     = regexp.MustCompile(`GameID=(\d+)`)
	gradeTitleRegex = regexp.MustCompile(`Grade:\s*(\d+)`)
	eventGradeRegex = regexp.MustCompile(`\(Grade:\s*\d+\)`)
	leadingIntRegex = regexp.MustCompile(`^(\d+)`)
)

// MatchPage fetches and extracts a single match page. Extraction never fails
// on missing fields: each absent field degrades to match.Unavailable and the
// rest of the page is still used.
func (s *Session) MatchPage(ctx context.Context, gameID string) (usecase.MatchReport, error) {
	body, err := s.fetchPage(ctx, rawdata.KindMatchPage, gameID, matchPageURL(s.baseURL, gameID))
	if err != nil {
		return usecase.MatchReport{}, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return usecase.MatchReport{}, crerr.Wrapf(err, "parse match page game_id=%s", gameID)
	}

	return ExtractMatch(doc), nil
}

// ExtractMatch runs the three independent extraction passes over a match
// document: header record, lineups and the event log.
func ExtractMatch(doc *goquery.Document) usecase.MatchReport {
	record := extractRecord(doc)
	return usecase.MatchReport{
		Record:       record,
		Performances: extractLineups(doc, record.HomeTeam, record.AwayTeam),
		Events:       extractEvents(doc),
	}
}

// textOrUnavailable is the single field-extraction primitive: the trimmed
// text of the first matching element, or the Unavailable sentinel when the
// element is missing or empty. Per-field degradation is what keeps one
// broken span from poisoning the rest of the record.
func textOrUnavailable(doc *goquery.Document, selector string) string {
	sel := doc.Find(selector).First()
	if sel.Length() == 0 {
		return match.Unavailable
	}
	text := strings.TrimSpace(sel.Text())
	if text == "" {
		return match.Unavailable
	}
	return text
}

func extractRecord(doc *goquery.Document) match.Record {
	return match.Record{
		HomeTeam:  textOrUnavailable(doc, "a#ctl00_cphMain_hplHomeTeam"),
		AwayTeam:  textOrUnavailable(doc, "a#ctl00_cphMain_hplAwayTeam"),
		HomeScore: textOrUnavailable(doc, "span#ctl00_cphMain_lblHomeScore"),
		AwayScore: textOrUnavailable(doc, "span#ctl00_cphMain_lblAwayScore"),
		Round:     textOrUnavailable(doc, "span#ctl00_cphMain_lblOmgang"),
		League:    textOrUnavailable(doc, "a#ctl00_cphMain_hplDivision"),
		Venue:     textOrUnavailable(doc, "span#ctl00_cphMain_lblArena"),
		Referee:   textOrUnavailable(doc, "span#ctl00_cphMain_lblReferee"),
		MOTMHome:  textOrUnavailable(doc, "#ctl00_cphMain_hplBestHome"),
		MOTMAway:  textOrUnavailable(doc, "#ctl00_cphMain_hplBestAway"),
	}
}

func extractLineups(doc *goquery.Document, homeTeam, awayTeam string) []match.Performance {
	var performances []match.Performance
	performances = append(performances, extractSideLineup(doc, "Home", homeTeam)...)
	performances = append(performances, extractSideLineup(doc, "Away", awayTeam)...)
	return performances
}

func extractSideLineup(doc *goquery.Document, side, teamName string) []match.Performance {
	rows := doc.Find(fmt.Sprintf(
		"#ctl00_cphMain_dg%sLineUp tr.ItemStyle, #ctl00_cphMain_dg%sLineUp tr.AlternatingItemStyle",
		side, side,
	))

	var performances []match.Performance
	rows.Each(func(_ int, row *goquery.Selection) {
		posTag := row.Find(fmt.Sprintf(`span[id*="lbl%spos"]`, side)).First()
		nameTag := row.Find(fmt.Sprintf(`a[id*="hpl%sPlayerName"]`, side)).First()
		if posTag.Length() == 0 || nameTag.Length() == 0 {
			return
		}

		title, _ := nameTag.Attr("title")
		performances = append(performances, match.Performance{
			Team:     teamName,
			Position: strings.TrimSpace(posTag.Text()),
			Name:     strings.TrimSpace(nameTag.Text()),
			Grade:    parseGradeTitle(title),
			Scored:   strings.Contains(title, "Goal:"),
			Assisted: strings.Contains(title, "Assist:"),
			Booked:   strings.Contains(title, "Booked"),
			Injured:  strings.Contains(title, "Injured"),
		})
	})
	return performances
}

// parseGradeTitle reads the "Grade: N" line from the tooltip mini-format on
// a player's name. nil means the player was not rated.
func parseGradeTitle(title string) *int {
	m := gradeTitleRegex.FindStringSubmatch(title)
	if m == nil {
		return nil
	}
	grade, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}
	return &grade
}

func extractEvents(doc *goquery.Document) []match.Event {
	filter := match.NewEventFilter()

	doc.Find("tr.ItemStyle2").Each(func(_ int, row *goquery.Selection) {
		minute := strings.TrimSpace(row.Find(`span[id*="lblEventTime"]`).First().Text())
		if minute == "" {
			minute = "?"
		}

		desc := strings.TrimSpace(row.Find(`span[id*="lblEventDesc"]`).First().Text())
		desc = strings.TrimSpace(eventGradeRegex.ReplaceAllString(desc, ""))

		score := ""
		cells := row.Find("td")
		if cells.Length() > 2 {
			score = strings.TrimSpace(cells.Eq(2).Text())
		}

		filter.Add(match.Event{Minute: minute, Description: desc, Score: score})
	})

	return filter.Finalize()
}

// Standings fetches a league page and extracts its standings table. A row
// failing any integer parse is dropped whole: entries are all-or-nothing.
func (s *Session) Standings(ctx context.Context, leagueURL, leagueKey string) ([]standings.Entry, error) {
	body, err := s.fetchPage(ctx, rawdata.KindStandingsPage, leagueKey, leagueURL)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, crerr.Wrapf(err, "parse standings page league=%s", leagueKey)
	}

	return ExtractStandings(doc), nil
}

// ExtractStandings reads the standings table from a league page document.
func ExtractStandings(doc *goquery.Document) []standings.Entry {
	table := doc.Find("table#ctl00_cphMain_dgStandings").First()
	if table.Length() == 0 {
		return nil
	}

	var entries []standings.Entry
	table.Find("tr").Each(func(i int, row *goquery.Selection) {
		if i == 0 {
			return // header row
		}
		entry, ok := parseStandingsRow(row)
		if ok {
			entries = append(entries, entry)
		}
	})
	return entries
}

func parseStandingsRow(row *goquery.Selection) (standings.Entry, bool) {
	cells := row.Find("td")
	if cells.Length() < 12 {
		return standings.Entry{}, false
	}

	cellText := func(i int) string { return strings.TrimSpace(cells.Eq(i).Text()) }

	place, err := strconv.Atoi(strings.TrimSuffix(cellText(0), "."))
	if err != nil {
		return standings.Entry{}, false
	}

	teamCell := cells.Eq(2)
	teamName := strings.TrimSpace(teamCell.Find("a").First().Text())
	if teamName == "" {
		teamName = cellText(2)
	}

	played, err := strconv.Atoi(cellText(5))
	if err != nil {
		return standings.Entry{}, false
	}
	wins, err := strconv.Atoi(cellText(6))
	if err != nil {
		return standings.Entry{}, false
	}
	draws, err := strconv.Atoi(cellText(7))
	if err != nil {
		return standings.Entry{}, false
	}
	losses, err := strconv.Atoi(cellText(8))
	if err != nil {
		return standings.Entry{}, false
	}

	goalsFor, goalsAgainst, ok := parseGoalsCell(cellText(9))
	if !ok {
		return standings.Entry{}, false
	}

	diff, err := strconv.Atoi(strings.ReplaceAll(cellText(10), "+", ""))
	if err != nil {
		return standings.Entry{}, false
	}

	points, err := strconv.Atoi(cellText(11))
	if err != nil {
		return standings.Entry{}, false
	}

	return standings.Entry{
		Place:          place,
		Team:           teamName,
		Played:         played,
		Wins:           wins,
		Draws:          draws,
		Losses:         losses,
		GoalsFor:       goalsFor,
		GoalsAgainst:   goalsAgainst,
		GoalDifference: diff,
		Points:         points,
	}, true
}

// parseGoalsCell splits the "9 - 5" style goals cell.
func parseGoalsCell(text string) (int, int, bool) {
	parts := strings.SplitN(text, "-", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	goalsFor, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, false
	}
	goalsAgainst, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, false
	}
	return goalsFor, goalsAgainst, true
}

// UpcomingFixtures extracts the upcoming-games table from a league page.
// Rows are identified by the GameID in their onclick handler.
func (s *Session) UpcomingFixtures(ctx context.Context, leagueURL, leagueKey, leagueName string) ([]fixture.Fixture, error) {
	body, err := s.fetchPage(ctx, rawdata.KindStandingsPage, leagueKey, leagueURL)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, crerr.Wrapf(err, "parse fixtures page league=%s", leagueKey)
	}

	return ExtractUpcomingFixtures(doc, leagueName), nil
}

// ExtractUpcomingFixtures reads the upcoming-games rows from a league page
// document.
func ExtractUpcomingFixtures(doc *goquery.Document, leagueName string) []fixture.Fixture {
	var fixtures []fixture.Fixture
	doc.Find("#ctl00_cphMain_dgUpcoming tr").Each(func(_ int, row *goquery.Selection) {
		onclick, _ := row.Attr("onclick")
		m := gameIDRegex.FindStringSubmatch(onclick)
		if m == nil {
			return
		}

		cells := row.Find("td")
		if cells.Length() < 4 {
			return
		}

		fixtures = append(fixtures, fixture.Fixture{
			HomeTeam: strings.TrimSpace(cells.Eq(1).Text()),
			AwayTeam: strings.TrimSpace(cells.Eq(3).Text()),
			GameID:   m[1],
			League:   leagueName,
		})
	})
	return fixtures
}

// RecentResults extracts the played-games links from a league page, most
// recent first as the site lists them.
func (s *Session) RecentResults(ctx context.Context, leagueURL, leagueKey, leagueName string) ([]fixture.Fixture, error) {
	body, err := s.fetchPage(ctx, rawdata.KindStandingsPage, leagueKey, leagueURL)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, crerr.Wrapf(err, "parse results page league=%s", leagueKey)
	}

	return ExtractRecentResults(doc, leagueName), nil
}

// ExtractRecentResults reads played-game rows, identified by their
// gameDetails link.
func ExtractRecentResults(doc *goquery.Document, leagueName string) []fixture.Fixture {
	var fixtures []fixture.Fixture
	doc.Find(`a[href*="gameDetails.aspx?GameID="]`).Each(func(_ int, link *goquery.Selection) {
		href, _ := link.Attr("href")
		m := gameIDRegex.FindStringSubmatch(href)
		if m == nil {
			return
		}

		row := link.Closest("tr")
		if row.Length() == 0 {
			return
		}
		cells := row.Find("td")
		if cells.Length() < 3 {
			return
		}

		fixtures = append(fixtures, fixture.Fixture{
			HomeTeam: strings.TrimSpace(cells.Eq(1).Text()),
			AwayTeam: strings.TrimSpace(cells.Eq(3).Text()),
			GameID:   m[1],
			League:   leagueName,
		})
	})
	return fixtures
}

// Stat category selector codes used by the stats page.
var statCategorySel = map[string]string{
	"goals":   "S",
	"assists": "A",
	"points":  "P",
	"x11":     "X",
}

// StatLeaders fetches one stat category leaderboard and returns the top rows
// sorted by descending value.
func (s *Session) StatLeaders(ctx context.Context, leagueID, lnr int, category string, topN int) ([]usecase.StatLeader, error) {
	sel, ok := statCategorySel[category]
	if !ok {
		return nil, crerr.Newf("unknown stat category %q", category)
	}

	statsURL := fmt.Sprintf("%s/stats.aspx?Lid=%d&Sel=%s&Lnr=%d&Period=S&dh=2", s.baseURL, leagueID, sel, lnr)
	key := fmt.Sprintf("%d-%d-%s", leagueID, lnr, category)
	body, err := s.fetchPage(ctx, rawdata.KindStatsPage, key, statsURL)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, crerr.Wrapf(err, "parse stats page category=%s", category)
	}

	leaders := ExtractStatLeaders(doc)
	if topN > 0 && len(leaders) > topN {
		leaders = leaders[:topN]
	}
	return leaders, nil
}

// ExtractStatLeaders reads the stats table rows and sorts them by the
// leading integer of the value column, descending.
func ExtractStatLeaders(doc *goquery.Document) []usecase.StatLeader {
	table := doc.Find("table#ctl00_cphMain_dgStats").First()
	if table.Length() == 0 {
		return nil
	}

	var leaders []usecase.StatLeader
	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 5 {
			return
		}

		valueText := strings.TrimSpace(cells.Eq(4).Text())
		m := leadingIntRegex.FindStringSubmatch(valueText)
		if m == nil {
			return
		}
		value, err := strconv.Atoi(m[1])
		if err != nil {
			return
		}

		leaders = append(leaders, usecase.StatLeader{
			Player:    strings.TrimSpace(cells.Eq(1).Text()),
			Position:  strings.TrimSpace(cells.Eq(2).Text()),
			Team:      strings.TrimSpace(cells.Eq(3).Text()),
			ValueText: valueText,
			Value:     value,
		})
	})

	sort.SliceStable(leaders, func(i, j int) bool {
		return leaders[i].Value > leaders[j].Value
	})
	return leaders
}
