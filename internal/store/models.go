package store

import (
	"encoding/json"
	"time"

	"github.com/CoalValleyTech/span-sportshub/internal/schedule"
)

// School is the document-shaped school record. Schedules and rosters live
// embedded on the record, keyed by sport (and season for rosters), the same
// way the site reads them on a school detail page.
type School struct {
	ID        string                       `json:"id"`
	Name      string                       `json:"name"`
	Location  string                       `json:"location"`
	LogoURL   string                       `json:"logoUrl,omitempty"`
	Sports    []string                     `json:"sports,omitempty"`
	Schedules map[string][]schedule.Entry  `json:"schedules,omitempty"`
	Rosters   map[string]map[string]Roster `json:"rosters,omitempty"`
	CreatedAt time.Time                    `json:"createdAt"`
	UpdatedAt time.Time                    `json:"updatedAt"`
}

// Player is one roster row.
type Player struct {
	Number   string             `json:"number"`
	Name     string             `json:"name"`
	Position string             `json:"position"`
	Grade    string             `json:"grade"`
	Stats    map[string]float64 `json:"stats,omitempty"`
}

// Roster is a per-sport, per-season player list embedded on a school.
type Roster struct {
	Sport   string   `json:"sport"`
	Season  string   `json:"season"`
	Players []Player `json:"players"`
}

// GlobalScheduleRecord is the denormalized copy of a schedule entry in the
// flat cross-school collection. SchoolID is a pointer so an unknown school
// omits the field entirely from the JSON form rather than emitting null;
// "has schoolId" filters depend on the field being absent.
type GlobalScheduleRecord struct {
	ID         string  `json:"id"`
	SchoolID   *string `json:"schoolId,omitempty"`
	SchoolName string  `json:"schoolName"`
	Sport      string  `json:"sport"`
	schedule.Entry
	CreatedAt time.Time `json:"createdAt"`
}

// Article is a standalone CRUD entity. Images are embedded as a data blob on
// the record itself, not a storage reference.
type Article struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Excerpt   string    `json:"excerpt"`
	Content   string    `json:"content,omitempty"`
	Date      string    `json:"date"`
	Category  string    `json:"category"`
	ImageData string    `json:"imageData,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// StatLine is one flat stat record as posted to /api/stats: a fixed identity
// header plus whatever numeric stat fields the sport uses.
type StatLine struct {
	ID         string
	PlayerName string
	TeamName   string
	SchoolName string
	Sport      string
	Division   string
	Season     string
	Values     map[string]float64
	CreatedAt  time.Time
}

// statLineHeader are the non-numeric identity fields of the wire form.
var statLineHeader = map[string]bool{
	"id":         true,
	"playerName": true,
	"teamName":   true,
	"schoolName": true,
	"sport":      true,
	"division":   true,
	"season":     true,
	"createdAt":  true,
}

// MarshalJSON flattens the stat values back into the top-level object so the
// wire form matches what was posted.
func (s StatLine) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(s.Values)+8)
	for k, v := range s.Values {
		out[k] = v
	}
	out["id"] = s.ID
	out["playerName"] = s.PlayerName
	out["teamName"] = s.TeamName
	out["schoolName"] = s.SchoolName
	out["sport"] = s.Sport
	out["division"] = s.Division
	out["season"] = s.Season
	if !s.CreatedAt.IsZero() {
		out["createdAt"] = s.CreatedAt
	}
	return json.Marshal(out)
}

// UnmarshalJSON accepts the flat wire form: known string fields fill the
// header, any other numeric field lands in Values, nulls and non-numerics
// are dropped.
func (s *StatLine) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	s.Values = make(map[string]float64)
	for key, val := range raw {
		if statLineHeader[key] {
			continue
		}
		var n float64
		if err := json.Unmarshal(val, &n); err == nil {
			s.Values[key] = n
		}
	}

	str := func(key string) string {
		var v string
		if raw[key] != nil {
			json.Unmarshal(raw[key], &v)
		}
		return v
	}
	s.ID = str("id")
	s.PlayerName = str("playerName")
	s.TeamName = str("teamName")
	s.SchoolName = str("schoolName")
	s.Sport = str("sport")
	s.Division = str("division")
	s.Season = str("season")
	if raw["createdAt"] != nil {
		json.Unmarshal(raw["createdAt"], &s.CreatedAt)
	}
	return nil
}

// User is an admin account for email/password sign-in.
type User struct {
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}
