package standings

import (
	"math"
	"testing"
)

func TestRankByWinPercentageThenWins(t *testing.T) {
	teams := []string{"X", "Y", "Z"}
	records := map[string]Record{
		"X": {Wins: 5, Losses: 1, WinPercentage: Percentage(5, 1)},
		"Y": {Wins: 4, Losses: 0, WinPercentage: Percentage(4, 0)},
	}

	got := Rank(teams, records)

	// Y at 1.000 (4-0) outranks X at .833 (5-1); Z has no record and sinks
	// to the bottom at 0-0.
	want := []string{"Y", "X", "Z"}
	for i, team := range want {
		if got[i].Team != team {
			t.Fatalf("rank %d: got %s, want %s (%+v)", i+1, got[i].Team, team, got)
		}
		if got[i].Rank != i+1 {
			t.Errorf("rank field for %s = %d, want %d", team, got[i].Rank, i+1)
		}
	}
	if math.Abs(got[1].WinPercentage-0.8333333) > 0.0001 {
		t.Errorf("X win percentage = %f, want ~0.833", got[1].WinPercentage)
	}
	if got[2].Wins != 0 || got[2].Losses != 0 || got[2].WinPercentage != 0 {
		t.Errorf("Z should default to 0-0/0.0, got %+v", got[2])
	}
}

func TestRankTieBreakOnWins(t *testing.T) {
	teams := []string{"A", "B"}
	records := map[string]Record{
		"A": {Wins: 3, Losses: 3, WinPercentage: Percentage(3, 3)},
		"B": {Wins: 4, Losses: 4, WinPercentage: Percentage(4, 4)},
	}

	got := Rank(teams, records)
	if got[0].Team != "B" {
		t.Fatalf("equal percentage should break on raw wins: %+v", got)
	}
}

func TestRankStableForIdenticalRecords(t *testing.T) {
	teams := []string{"First", "Second", "Third"}
	got := Rank(teams, nil)
	for i, team := range teams {
		if got[i].Team != team {
			t.Fatalf("stateless rank should preserve roster order, got %+v", got)
		}
	}
}

func TestPercentage(t *testing.T) {
	if p := Percentage(0, 0); p != 0 {
		t.Errorf("0-0 percentage = %f, want 0", p)
	}
	if p := Percentage(8, 0); p != 1.0 {
		t.Errorf("8-0 percentage = %f, want 1.0", p)
	}
	if p := Percentage(3, 5); math.Abs(p-0.375) > 1e-9 {
		t.Errorf("3-5 percentage = %f, want 0.375", p)
	}
}

func TestRankDivisionsCoversEveryDivision(t *testing.T) {
	records := map[string]Record{
		"Dunmore": {Wins: 8, Losses: 0, WinPercentage: 1.0},
	}
	got := RankDivisions(FootballDivisions, records)
	if len(got) != len(FootballDivisions) {
		t.Fatalf("got %d divisions, want %d", len(got), len(FootballDivisions))
	}
	if got["DIV1"][0].Team != "Dunmore" {
		t.Fatalf("Dunmore at 8-0 should lead DIV1, got %+v", got["DIV1"][0])
	}
}
