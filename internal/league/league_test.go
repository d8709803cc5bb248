package league

import (
	"errors"
	"testing"
)

func TestLabelNumber(t *testing.T) {
	tests := []struct {
		label string
		want  int
		ok    bool
	}{
		{"Game 1", 1, true},
		{"Game 12", 12, true},
		{Label(40), 40, true},
		{"Game 12abc", 0, false},
		{"Game -3", 0, false},
		{"Game", 0, false},
		{"game 3", 0, false},
		{"Final", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got, ok := LabelNumber(tt.label)
			if got != tt.want || ok != tt.ok {
				t.Errorf("LabelNumber(%q) = %d, %v; want %d, %v", tt.label, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestParseStatus(t *testing.T) {
	for in, want := range map[string]Status{
		"":          StatusScheduled,
		"scheduled": StatusScheduled,
		"finished":  StatusFinished,
		"cancelled": StatusCancelled,
	} {
		got, err := ParseStatus(in)
		if err != nil || got != want {
			t.Errorf("ParseStatus(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseStatus("postponed"); err == nil {
		t.Error("expected error for unknown status")
	}
}

func TestGameResult(t *testing.T) {
	home, away := 80, 70
	g := Game{Matchup: Matchup{Home: "Bulls", Away: "Nets"}, Status: StatusFinished, HomeScore: &home}
	if _, ok := g.Result(); ok {
		t.Error("finished game without an away score should have no result")
	}
	g.AwayScore = &away
	r, ok := g.Result()
	if !ok || r != (FinishedGame{Home: "Bulls", Away: "Nets", HomeScore: 80, AwayScore: 70}) {
		t.Errorf("Result() = %+v, %v", r, ok)
	}
	g.Status = StatusScheduled
	if got := Results([]Game{g}); len(got) != 0 {
		t.Errorf("Results() = %v, want none for a scheduled game", got)
	}
}

func TestInvalidf(t *testing.T) {
	err := Invalidf("team %q listed twice", "Bulls")
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("error %v does not wrap ErrInvalidConfig", err)
	}
	if want := `invalid configuration: team "Bulls" listed twice`; err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
