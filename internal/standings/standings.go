// Package standings ranks teams from finished results.
package standings

import (
	"sort"

	"github.com/derekprior/league/internal/league"
)

// Points awarded per result. A loss still earns a point.
const (
	PointsPerWin  = 2
	PointsPerLoss = 1
)

// Row is one team's line in the table.
type Row struct {
	Team              string
	GamesPlayed       int
	Wins              int
	Losses            int
	PointsFor         int
	PointsAgainst     int
	PointDifferential int
	WinPercentage     float64
	RankingPoints     int
}

type tally struct {
	team                     string
	played, wins, losses     int
	pointsFor, pointsAgainst int
}

func (t *tally) row() Row {
	r := Row{
		Team:              t.team,
		GamesPlayed:       t.played,
		Wins:              t.wins,
		Losses:            t.losses,
		PointsFor:         t.pointsFor,
		PointsAgainst:     t.pointsAgainst,
		PointDifferential: t.pointsFor - t.pointsAgainst,
		RankingPoints:     t.wins*PointsPerWin + t.losses*PointsPerLoss,
	}
	if t.played > 0 {
		r.WinPercentage = float64(t.wins) / float64(t.played)
	}
	return r
}

// Calculate builds the table from finished games. Teams passed in teams get
// a row even without games; any other team gets one when first seen. Rows
// are ordered by ranking points, then point differential, then the order
// the team was first listed.
//
// The home side wins only with a strictly higher score, so a tied score
// counts as an away win.
func Calculate(games []league.FinishedGame, teams ...string) []Row {
	var order []*tally
	index := make(map[string]*tally)
	get := func(team string) *tally {
		t, ok := index[team]
		if !ok {
			t = &tally{team: team}
			index[team] = t
			order = append(order, t)
		}
		return t
	}
	for _, team := range teams {
		get(team)
	}

	for _, g := range games {
		home, away := get(g.Home), get(g.Away)
		home.played++
		away.played++
		home.pointsFor += g.HomeScore
		home.pointsAgainst += g.AwayScore
		away.pointsFor += g.AwayScore
		away.pointsAgainst += g.HomeScore

		if g.HomeScore > g.AwayScore {
			home.wins++
			away.losses++
		} else {
			away.wins++
			home.losses++
		}
	}

	rows := make([]Row, len(order))
	for i, t := range order {
		rows[i] = t.row()
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].RankingPoints != rows[j].RankingPoints {
			return rows[i].RankingPoints > rows[j].RankingPoints
		}
		return rows[i].PointDifferential > rows[j].PointDifferential
	})
	return rows
}

// Teams returns the team names of rows in order.
func Teams(rows []Row) []string {
	teams := make([]string, len(rows))
	for i, r := range rows {
		teams[i] = r.Team
	}
	return teams
}
