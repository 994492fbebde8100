package service

import (
	"context"
	"fmt"

	"github.com/CoalValleyTech/span-sportshub/internal/schedule"
	"github.com/CoalValleyTech/span-sportshub/internal/standings"
	"github.com/CoalValleyTech/span-sportshub/internal/store"
	"github.com/CoalValleyTech/span-sportshub/internal/store/repository"
)

// StandingsService derives division standings from final scores in the flat
// schedule collection.
type StandingsService struct {
	global GlobalScheduleStore
}

// NewStandingsService creates a new standings service.
func NewStandingsService(db *store.Database) *StandingsService {
	return &StandingsService{
		global: repository.NewScheduleRepository(db),
	}
}

// FootballStandings ranks the static football divisions by the win/loss
// records derived from final scores. Games without a final score and ties
// contribute nothing; teams with no finals rank last at 0-0.
func (s *StandingsService) FootballStandings(ctx context.Context) (map[string][]standings.Standing, error) {
	records, err := s.deriveRecords(ctx, "football")
	if err != nil {
		return nil, err
	}
	return standings.RankDivisions(standings.FootballDivisions, records), nil
}

// deriveRecords tallies wins and losses per team name from FINAL records.
// The home side is the record's school name and the away side its opponent,
// matched by exact name against the division rosters later.
func (s *StandingsService) deriveRecords(ctx context.Context, sport string) (map[string]standings.Record, error) {
	games, err := s.global.Query(ctx, repository.GlobalFilter{Sport: sport})
	if err != nil {
		return nil, fmt.Errorf("fetching %s results: %w", sport, err)
	}

	type tally struct{ wins, losses int }
	tallies := make(map[string]*tally)
	bump := func(team string) *tally {
		t, ok := tallies[team]
		if !ok {
			t = &tally{}
			tallies[team] = t
		}
		return t
	}

	for _, game := range games {
		if game.Status != schedule.StatusFinal || game.Score == nil {
			continue
		}
		home, hok := game.Score.Home["final"]
		away, aok := game.Score.Away["final"]
		if !hok || !aok || home == away {
			continue
		}
		if home > away {
			bump(game.SchoolName).wins++
			bump(game.Opponent).losses++
		} else {
			bump(game.SchoolName).losses++
			bump(game.Opponent).wins++
		}
	}

	records := make(map[string]standings.Record, len(tallies))
	for team, t := range tallies {
		records[team] = standings.Record{
			Wins:          t.wins,
			Losses:        t.losses,
			WinPercentage: standings.Percentage(t.wins, t.losses),
		}
	}
	return records, nil
}
