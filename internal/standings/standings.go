// Package standings ranks teams inside their static division rosters by win
// percentage. It is a derived, read-only view: no mutation, no persistence.
package standings

import "sort"

// Record is the sparse win/loss input for one team.
type Record struct {
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	WinPercentage float64 `json:"winPercentage"`
}

// Standing is one ranked row.
type Standing struct {
	Rank          int     `json:"rank"`
	Team          string  `json:"team"`
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	WinPercentage float64 `json:"winPercentage"`
}

// Lackawanna league football divisions. The rosters are static; stats arrive
// separately and are merged at rank time.
var FootballDivisions = map[string][]string{
	"DIV1": {"Mid Valley", "Carbondale", "Lakeland", "Holy Cross", "Riverside", "Dunmore", "Old Forge"},
	"DIV2": {"West Scranton", "Scranton", "Scranton Prep", "Abington", "Valley View", "Honesdale", "Wallenpaupack", "Western Wayne"},
	"DIV3": {"Susquehanna", "Delaware Valley", "North Pocono", "Lackawanna Trail"},
}

// Rank orders the given teams by win percentage descending, tie-broken by raw
// win count descending, stable otherwise. Teams with no record default to
// 0-0 (0.0) and therefore sort last.
func Rank(teams []string, records map[string]Record) []Standing {
	rows := make([]Standing, 0, len(teams))
	for _, team := range teams {
		rec := records[team]
		rows = append(rows, Standing{
			Team:          team,
			Wins:          rec.Wins,
			Losses:        rec.Losses,
			WinPercentage: rec.WinPercentage,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].WinPercentage != rows[j].WinPercentage {
			return rows[i].WinPercentage > rows[j].WinPercentage
		}
		return rows[i].Wins > rows[j].Wins
	})

	for i := range rows {
		rows[i].Rank = i + 1
	}
	return rows
}

// RankDivisions ranks every division roster against the same records map.
func RankDivisions(divisions map[string][]string, records map[string]Record) map[string][]Standing {
	out := make(map[string][]Standing, len(divisions))
	for division, teams := range divisions {
		out[division] = Rank(teams, records)
	}
	return out
}

// Percentage computes wins/(wins+losses), 0.0 for a team with no games.
func Percentage(wins, losses int) float64 {
	total := wins + losses
	if total == 0 {
		return 0
	}
	return float64(wins) / float64(total)
}
