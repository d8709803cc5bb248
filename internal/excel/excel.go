package excel

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/derekprior/league/internal/league"
	"github.com/derekprior/league/internal/playoffs"
	"github.com/derekprior/league/internal/standings"
)

const (
	MasterSheet    = "Master Schedule"
	StandingsSheet = "Standings"
	PlayoffsSheet  = "Playoffs"

	dateLayout = "01/02/2006"
	timeLayout = "15:04"
)

var masterHeaders = []string{"Game", "Date", "Day", "Time", "Venue", "Round", "Leg", "Home", "Away", "Home Score", "Away Score", "Status"}

// Generate creates a workbook with the master schedule and per-team sheets.
func Generate(teams []string, games []league.Game) (*excelize.File, error) {
	if err := CheckTeamNames(teams); err != nil {
		return nil, err
	}
	f := excelize.NewFile()

	// Set default font for the workbook
	f.SetDefaultFont("Arial")
	if err := f.SetSheetName("Sheet1", MasterSheet); err != nil {
		return nil, err
	}

	if err := writeMasterSheet(f, games); err != nil {
		return nil, fmt.Errorf("writing master sheet: %w", err)
	}

	if err := writeTeamSheets(f, teams, games); err != nil {
		return nil, fmt.Errorf("writing team sheets: %w", err)
	}

	return f, nil
}

type styles struct {
	header int
	cell   int
	center int
}

func newStyles(f *excelize.File) styles {
	header, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 16, Family: "Arial"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#4472C4"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	cell, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 16, Family: "Arial"},
	})
	center, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Size: 16, Family: "Arial"},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	return styles{header: header, cell: cell, center: center}
}

func writeHeaders(f *excelize.File, sheet string, st styles, headers []string) {
	for i, h := range headers {
		f.SetCellValue(sheet, cellRef(i+1, 1), h)
	}
	if st.header != 0 {
		f.SetCellStyle(sheet, cellRef(1, 1), cellRef(len(headers), 1), st.header)
	}
}

func styleRow(f *excelize.File, sheet string, row, cols, style int) {
	if style != 0 {
		f.SetCellStyle(sheet, cellRef(1, row), cellRef(cols, row), style)
	}
}

// replaceSheet drops sheet if present and creates it empty.
func replaceSheet(f *excelize.File, sheet string) error {
	if idx, err := f.GetSheetIndex(sheet); err == nil && idx >= 0 {
		if err := f.DeleteSheet(sheet); err != nil {
			return err
		}
	}
	_, err := f.NewSheet(sheet)
	return err
}

func writeMasterSheet(f *excelize.File, games []league.Game) error {
	sheet := MasterSheet
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	st := newStyles(f)
	writeHeaders(f, sheet, st, masterHeaders)

	sorted := make([]league.Game, len(games))
	copy(sorted, games)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].DateTime.Before(sorted[j].DateTime)
	})

	for i, g := range sorted {
		row := i + 2
		values := []any{
			g.Label,
			g.DateTime.Format(dateLayout),
			g.DateTime.Format("Mon"),
			g.DateTime.Format(timeLayout),
			deref(g.Venue),
			g.Round,
			string(g.Leg),
			g.Home,
			g.Away,
			scoreValue(g.HomeScore),
			scoreValue(g.AwayScore),
			string(g.Status),
		}
		for col, v := range values {
			f.SetCellValue(sheet, cellRef(col+1, row), v)
		}
		styleRow(f, sheet, row, len(masterHeaders), st.center)
	}

	widths := map[string]float64{"A": 12, "B": 18, "C": 8, "D": 10, "E": 28, "F": 10, "G": 10, "H": 22, "I": 22, "J": 16, "K": 16, "L": 14}
	for col, w := range widths {
		f.SetColWidth(sheet, col, col, w)
	}

	// Finished rows get a light green fill.
	if len(sorted) > 0 {
		green, _ := f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#C6EFCE"}},
			Font: &excelize.Font{Size: 16, Family: "Arial"},
		})
		cellRange := fmt.Sprintf("A2:L%d", len(sorted)+1)
		f.SetConditionalFormat(sheet, cellRange, []excelize.ConditionalFormatOptions{
			{
				Type:     "formula",
				Criteria: fmt.Sprintf(`$L2="%s"`, league.StatusFinished),
				Format:   &green,
			},
		})
	}

	return nil
}

func writeTeamSheets(f *excelize.File, teams []string, games []league.Game) error {
	st := newStyles(f)
	for _, team := range teams {
		sheet := TeamSheetName(team)
		if err := replaceSheet(f, sheet); err != nil {
			return fmt.Errorf("sheet %q: %w", sheet, err)
		}

		headers := []string{"Date", "Day", "Time", "Venue", "Opponent", "Home/Away", "Game", "Result"}
		writeHeaders(f, sheet, st, headers)

		// Collect and sort this team's games
		type teamGame struct {
			at       time.Time
			venue    string
			opponent string
			homeAway string
			label    string
			result   string
		}
		var list []teamGame
		for _, g := range games {
			var tg teamGame
			switch team {
			case g.Home:
				tg = teamGame{opponent: g.Away, homeAway: "Home", result: resultFor(g, true)}
			case g.Away:
				tg = teamGame{opponent: g.Home, homeAway: "Away", result: resultFor(g, false)}
			default:
				continue
			}
			tg.at, tg.venue, tg.label = g.DateTime, deref(g.Venue), g.Label
			list = append(list, tg)
		}
		sort.Slice(list, func(i, j int) bool {
			return list[i].at.Before(list[j].at)
		})

		for i, g := range list {
			row := i + 2
			f.SetCellValue(sheet, cellRef(1, row), g.at.Format(dateLayout))
			f.SetCellValue(sheet, cellRef(2, row), g.at.Format("Mon"))
			f.SetCellValue(sheet, cellRef(3, row), g.at.Format(timeLayout))
			f.SetCellValue(sheet, cellRef(4, row), g.venue)
			f.SetCellValue(sheet, cellRef(5, row), g.opponent)
			f.SetCellValue(sheet, cellRef(6, row), g.homeAway)
			f.SetCellValue(sheet, cellRef(7, row), g.label)
			f.SetCellValue(sheet, cellRef(8, row), g.result)
			styleRow(f, sheet, row, len(headers), st.cell)
		}

		// Set column widths (sized for Arial 16)
		widths := map[string]float64{"A": 18, "B": 8, "C": 10, "D": 28, "E": 22, "F": 14, "G": 12, "H": 14}
		for col, w := range widths {
			f.SetColWidth(sheet, col, col, w)
		}
	}

	return nil
}

// resultFor renders "W 80-70" from one side's perspective, or "" when the
// game has no final score.
func resultFor(g league.Game, home bool) string {
	r, ok := g.Result()
	if !ok {
		if g.Status == league.StatusCancelled {
			return "Cancelled"
		}
		return ""
	}
	us, them := r.HomeScore, r.AwayScore
	won := r.HomeScore > r.AwayScore
	if !home {
		us, them = them, us
		won = !won
	}
	if won {
		return fmt.Sprintf("W %d-%d", us, them)
	}
	return fmt.Sprintf("L %d-%d", us, them)
}

// TeamSheetName makes a team name safe for use as a sheet name.
func TeamSheetName(team string) string {
	name := strings.Map(func(r rune) rune {
		if strings.ContainsRune(`:\/?*[]`, r) {
			return '-'
		}
		return r
	}, team)
	if r := []rune(name); len(r) > 31 {
		name = string(r[:31])
	}
	return name
}

// CheckTeamNames rejects teams whose sheet would overwrite one of the
// workbook's own sheets or another team's. Sheet names ignore case.
func CheckTeamNames(teams []string) error {
	owner := map[string]string{
		strings.ToLower(MasterSheet):    MasterSheet,
		strings.ToLower(StandingsSheet): StandingsSheet,
		strings.ToLower(PlayoffsSheet):  PlayoffsSheet,
	}
	for _, team := range teams {
		key := strings.ToLower(TeamSheetName(team))
		if other, ok := owner[key]; ok {
			return league.Invalidf("team %q would share the %q sheet with %q", team, TeamSheetName(team), other)
		}
		owner[key] = team
	}
	return nil
}

// UpdateTeamSheets rebuilds every team sheet from the master schedule,
// picking up results entered since the workbook was generated.
func UpdateTeamSheets(path string, teams []string) error {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	if err := CheckTeamNames(teams); err != nil {
		return err
	}
	games, err := readGames(f)
	if err != nil {
		return err
	}
	if err := writeTeamSheets(f, teams, games); err != nil {
		return fmt.Errorf("writing team sheets: %w", err)
	}
	return f.Save()
}

// HasSheet reports whether the workbook at path contains sheet.
func HasSheet(path, sheet string) (bool, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return false, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()
	idx, err := f.GetSheetIndex(sheet)
	if err != nil {
		return false, err
	}
	return idx >= 0, nil
}

// ReadGames parses the master schedule of the workbook at path.
func ReadGames(path string) ([]league.Game, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()
	return readGames(f)
}

func readGames(f *excelize.File) ([]league.Game, error) {
	rows, err := f.GetRows(MasterSheet)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", MasterSheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s is empty", MasterSheet)
	}

	col := make(map[string]int)
	for i, h := range rows[0] {
		col[strings.TrimSpace(h)] = i
	}
	for _, h := range []string{"Game", "Date", "Time", "Home", "Away"} {
		if _, ok := col[h]; !ok {
			return nil, fmt.Errorf("%s: missing %q column", MasterSheet, h)
		}
	}
	cell := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var games []league.Game
	for i, row := range rows[1:] {
		rowNum := i + 2
		if cell(row, "Home") == "" && cell(row, "Away") == "" {
			continue
		}

		at, err := time.Parse(dateLayout+" "+timeLayout, cell(row, "Date")+" "+cell(row, "Time"))
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid date/time: %w", rowNum, err)
		}
		g := league.Game{
			Matchup: league.Matchup{
				Home: cell(row, "Home"),
				Away: cell(row, "Away"),
				Leg:  league.Leg(cell(row, "Leg")),
			},
			Label:    cell(row, "Game"),
			DateTime: at,
		}
		if v := cell(row, "Venue"); v != "" {
			g.Venue = &v
		}
		if v := cell(row, "Round"); v != "" {
			if g.Round, err = strconv.Atoi(v); err != nil {
				return nil, fmt.Errorf("row %d: invalid round %q", rowNum, v)
			}
		}
		if g.Status, err = league.ParseStatus(strings.ToLower(cell(row, "Status"))); err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum, err)
		}
		if g.HomeScore, err = parseScore(cell(row, "Home Score")); err != nil {
			return nil, fmt.Errorf("row %d: home score: %w", rowNum, err)
		}
		if g.AwayScore, err = parseScore(cell(row, "Away Score")); err != nil {
			return nil, fmt.Errorf("row %d: away score: %w", rowNum, err)
		}
		games = append(games, g)
	}
	return games, nil
}

func parseScore(s string) (*int, error) {
	if s == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return nil, fmt.Errorf("invalid score %q", s)
	}
	return &n, nil
}

// WriteStandings replaces the standings sheet of the workbook at path.
func WriteStandings(path string, rows []standings.Row) error {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	if err := writeStandingsSheet(f, rows); err != nil {
		return fmt.Errorf("writing standings: %w", err)
	}
	return f.Save()
}

func writeStandingsSheet(f *excelize.File, rows []standings.Row) error {
	sheet := StandingsSheet
	if err := replaceSheet(f, sheet); err != nil {
		return err
	}
	st := newStyles(f)
	headers := []string{"Rank", "Team", "GP", "W", "L", "PF", "PA", "Diff", "Win %", "Pts"}
	writeHeaders(f, sheet, st, headers)

	pct := "0.000"
	pctStyle, _ := f.NewStyle(&excelize.Style{
		Font:         &excelize.Font{Size: 16, Family: "Arial"},
		Alignment:    &excelize.Alignment{Horizontal: "center"},
		CustomNumFmt: &pct,
	})

	for i, r := range rows {
		row := i + 2
		values := []any{i + 1, r.Team, r.GamesPlayed, r.Wins, r.Losses, r.PointsFor, r.PointsAgainst, r.PointDifferential, r.WinPercentage, r.RankingPoints}
		for col, v := range values {
			f.SetCellValue(sheet, cellRef(col+1, row), v)
		}
		styleRow(f, sheet, row, len(headers), st.center)
		if pctStyle != 0 {
			f.SetCellStyle(sheet, cellRef(9, row), cellRef(9, row), pctStyle)
		}
	}

	f.SetColWidth(sheet, "A", "A", 8)
	f.SetColWidth(sheet, "B", "B", 24)
	f.SetColWidth(sheet, "C", "J", 10)
	return nil
}

// WritePlayoffs replaces the playoffs sheet of the workbook at path.
func WritePlayoffs(path string, series []playoffs.Series, games []playoffs.Game) error {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	if err := writePlayoffsSheet(f, series, games); err != nil {
		return fmt.Errorf("writing playoffs: %w", err)
	}
	return f.Save()
}

func writePlayoffsSheet(f *excelize.File, series []playoffs.Series, games []playoffs.Game) error {
	sheet := PlayoffsSheet
	if err := replaceSheet(f, sheet); err != nil {
		return err
	}
	st := newStyles(f)
	headers := []string{"Series", "Higher Seed", "Lower Seed", "Game", "Date", "Day", "Time", "Venue", "Home", "Away", "Status"}
	writeHeaders(f, sheet, st, headers)

	bySeries := make(map[int]playoffs.Series)
	for _, s := range series {
		bySeries[s.Number] = s
	}

	for i, g := range games {
		row := i + 2
		s := bySeries[g.Series]
		values := []any{
			g.Series,
			s.HigherSeed,
			s.LowerSeed,
			g.GameNumber,
			g.DateTime.Format(dateLayout),
			g.DateTime.Format("Mon"),
			g.DateTime.Format(timeLayout),
			deref(g.Venue),
			g.Home,
			g.Away,
			string(g.Status),
		}
		for col, v := range values {
			f.SetCellValue(sheet, cellRef(col+1, row), v)
		}
		styleRow(f, sheet, row, len(headers), st.center)
	}

	widths := map[string]float64{"A": 10, "B": 22, "C": 22, "D": 8, "E": 18, "F": 8, "G": 10, "H": 28, "I": 22, "J": 22, "K": 14}
	for col, w := range widths {
		f.SetColWidth(sheet, col, col, w)
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func scoreValue(n *int) any {
	if n == nil {
		return ""
	}
	return *n
}

func cellRef(col, row int) string {
	return fmt.Sprintf("%s%d", colLetter(col), row)
}

func colLetter(col int) string {
	result := ""
	for col > 0 {
		col--
		result = string(rune('A'+col%26)) + result
		col /= 26
	}
	return result
}
