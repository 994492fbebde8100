package service

import (
	"context"
	"testing"

	"github.com/CoalValleyTech/span-sportshub/internal/schedule"
	"github.com/CoalValleyTech/span-sportshub/internal/store"
)

func finalGame(school, opponent string, home, away int) *store.GlobalScheduleRecord {
	return &store.GlobalScheduleRecord{
		SchoolName: school,
		Sport:      "football",
		Entry: schedule.Entry{
			Opponent: opponent,
			Status:   schedule.StatusFinal,
			Score: &schedule.Score{
				Home: map[string]int{"final": home},
				Away: map[string]int{"final": away},
			},
		},
	}
}

func TestFootballStandingsDerivation(t *testing.T) {
	global := newFakeGlobalStore()
	ctx := context.Background()

	// Dunmore beats Mid Valley and Old Forge; Mid Valley beats Old Forge.
	for _, rec := range []*store.GlobalScheduleRecord{
		finalGame("Dunmore", "Mid Valley", 28, 7),
		finalGame("Dunmore", "Old Forge", 21, 14),
		finalGame("Mid Valley", "Old Forge", 10, 3),
	} {
		if _, err := global.Insert(ctx, rec); err != nil {
			t.Fatalf("Insert: %v", err)
		}
	}
	// Live game and a tie must not count.
	live := finalGame("Carbondale", "Lakeland", 7, 0)
	live.Status = schedule.StatusLive
	global.Insert(ctx, live)
	global.Insert(ctx, finalGame("Riverside", "Holy Cross", 14, 14))
	// Different sport is ignored entirely.
	soccer := finalGame("Lakeland", "Dunmore", 2, 1)
	soccer.Sport = "soccer"
	global.Insert(ctx, soccer)

	svc := &StandingsService{global: global}
	table, err := svc.FootballStandings(ctx)
	if err != nil {
		t.Fatalf("FootballStandings: %v", err)
	}

	div1 := table["DIV1"]
	if len(div1) != 7 {
		t.Fatalf("DIV1 rows = %d, want full roster of 7", len(div1))
	}
	if div1[0].Team != "Dunmore" || div1[0].Wins != 2 || div1[0].Losses != 0 {
		t.Errorf("DIV1 leader = %+v, want Dunmore 2-0", div1[0])
	}
	if div1[1].Team != "Mid Valley" || div1[1].Wins != 1 || div1[1].Losses != 1 {
		t.Errorf("DIV1 second = %+v, want Mid Valley 1-1", div1[1])
	}

	for _, row := range div1 {
		switch row.Team {
		case "Old Forge":
			if row.Wins != 0 || row.Losses != 2 {
				t.Errorf("Old Forge = %+v, want 0-2", row)
			}
		case "Carbondale", "Lakeland", "Riverside", "Holy Cross":
			if row.Wins != 0 || row.Losses != 0 {
				t.Errorf("%s = %+v, want untouched 0-0", row.Team, row)
			}
		}
	}
}
