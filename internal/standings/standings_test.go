package standings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/derekprior/league/internal/league"
)

func TestCalculate_SplitSeriesBrokenByDifferential(t *testing.T) {
	games := []league.FinishedGame{
		{Home: "T1", Away: "T2", HomeScore: 80, AwayScore: 70},
		{Home: "T2", Away: "T1", HomeScore: 75, AwayScore: 74},
	}

	rows := Calculate(games)
	require.Len(t, rows, 2)

	t1, t2 := rows[0], rows[1]
	assert.Equal(t, "T1", t1.Team)
	assert.Equal(t, "T2", t2.Team)

	for _, r := range rows {
		assert.Equal(t, 2, r.GamesPlayed, r.Team)
		assert.Equal(t, 1, r.Wins, r.Team)
		assert.Equal(t, 1, r.Losses, r.Team)
		assert.Equal(t, 3, r.RankingPoints, r.Team)
		assert.InDelta(t, 0.5, r.WinPercentage, 1e-9, r.Team)
	}

	assert.Equal(t, 154, t1.PointsFor)
	assert.Equal(t, 145, t1.PointsAgainst)
	assert.Equal(t, 9, t1.PointDifferential)
	assert.Equal(t, -9, t2.PointDifferential)
}

func TestCalculate_RankingPointsFirst(t *testing.T) {
	games := []league.FinishedGame{
		// C wins twice by a point; A wins once by a lot.
		{Home: "C", Away: "B", HomeScore: 61, AwayScore: 60},
		{Home: "B", Away: "C", HomeScore: 59, AwayScore: 60},
		{Home: "A", Away: "B", HomeScore: 100, AwayScore: 50},
	}

	rows := Calculate(games, "A", "B", "C")
	require.Len(t, rows, 3)
	// B's three losses earn more than A's single win.
	assert.Equal(t, []string{"C", "B", "A"}, Teams(rows))
	assert.Equal(t, 4, rows[0].RankingPoints)
	assert.Equal(t, 3, rows[1].RankingPoints)
	assert.Equal(t, 2, rows[2].RankingPoints)
	assert.Equal(t, 50, rows[2].PointDifferential)
}

func TestCalculate_OrderingInvariant(t *testing.T) {
	games := []league.FinishedGame{
		{Home: "A", Away: "B", HomeScore: 70, AwayScore: 60},
		{Home: "C", Away: "D", HomeScore: 90, AwayScore: 60},
		{Home: "E", Away: "A", HomeScore: 66, AwayScore: 65},
		{Home: "B", Away: "D", HomeScore: 80, AwayScore: 79},
		{Home: "D", Away: "E", HomeScore: 88, AwayScore: 50},
		{Home: "C", Away: "B", HomeScore: 40, AwayScore: 41},
	}
	rows := Calculate(games)

	for i := 1; i < len(rows); i++ {
		a, b := rows[i-1], rows[i]
		ok := a.RankingPoints > b.RankingPoints ||
			(a.RankingPoints == b.RankingPoints && a.PointDifferential >= b.PointDifferential)
		assert.Truef(t, ok, "%s (%d pts, %+d) ranked above %s (%d pts, %+d)",
			a.Team, a.RankingPoints, a.PointDifferential, b.Team, b.RankingPoints, b.PointDifferential)
	}
}

func TestCalculate_Idempotent(t *testing.T) {
	games := []league.FinishedGame{
		{Home: "A", Away: "B", HomeScore: 70, AwayScore: 60},
		{Home: "B", Away: "C", HomeScore: 70, AwayScore: 60},
		{Home: "C", Away: "A", HomeScore: 70, AwayScore: 60},
	}
	assert.Equal(t, Calculate(games), Calculate(games))
}

func TestCalculate_TiedScoreCountsAsAwayWin(t *testing.T) {
	rows := Calculate([]league.FinishedGame{{Home: "H", Away: "V", HomeScore: 70, AwayScore: 70}})
	require.Len(t, rows, 2)

	assert.Equal(t, "V", rows[0].Team)
	assert.Equal(t, 1, rows[0].Wins)
	assert.Equal(t, "H", rows[1].Team)
	assert.Equal(t, 1, rows[1].Losses)
}

func TestCalculate_SeededTeamsWithoutGames(t *testing.T) {
	rows := Calculate(nil, "Bulls", "Nets")
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Bulls", "Nets"}, Teams(rows))
	assert.Zero(t, rows[0].GamesPlayed)
	assert.Zero(t, rows[0].WinPercentage)
}

func TestCalculate_TeamOutsideRosterStillCounted(t *testing.T) {
	rows := Calculate([]league.FinishedGame{{Home: "Bulls", Away: "Gone", HomeScore: 50, AwayScore: 60}}, "Bulls")
	require.Len(t, rows, 2)
	assert.Equal(t, "Gone", rows[0].Team)
}
