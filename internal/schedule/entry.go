package schedule

import "sort"

// Score holds per-side period scores. Keys are period labels ("1", "2",
// "OT", ...) plus the "final" key.
type Score struct {
	Home map[string]int `json:"home,omitempty"`
	Away map[string]int `json:"away,omitempty"`
}

// Entry is one game as embedded in a school's per-sport schedule list.
// Embedded entries have no surrogate key: the full field value IS the
// identity used for removal and update.
type Entry struct {
	Location string `json:"location"`
	Time     string `json:"time"`
	Opponent string `json:"opponent"`
	Status   string `json:"status,omitempty"`
	Score    *Score `json:"score,omitempty"`
	URL      string `json:"url,omitempty"`
}

// Statuses used on entries and global records.
const (
	StatusLive     = "LIVE"
	StatusUpcoming = "UPCOMING"
	StatusFinal    = "FINAL"
)

// Equal reports deep value equality between two entries. Every field must
// match exactly, including the full score maps. This mirrors the store's
// set-remove primitive: an entry that drifted by a single field no longer
// identifies the stored element.
func (e Entry) Equal(other Entry) bool {
	if e.Location != other.Location || e.Time != other.Time || e.Opponent != other.Opponent {
		return false
	}
	if e.Status != other.Status || e.URL != other.URL {
		return false
	}
	return scoreEqual(e.Score, other.Score)
}

func scoreEqual(a, b *Score) bool {
	if a == nil || b == nil {
		return a == b
	}
	return sideEqual(a.Home, b.Home) && sideEqual(a.Away, b.Away)
}

func sideEqual(a, b map[string]int) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		bv, ok := b[k]
		if !ok || bv != v {
			return false
		}
	}
	return true
}

// RemoveExact removes the first element deeply equal to target and reports
// whether a match was found. No match is a no-op, not an error.
func RemoveExact(list []Entry, target Entry) ([]Entry, bool) {
	for i, e := range list {
		if e.Equal(target) {
			out := make([]Entry, 0, len(list)-1)
			out = append(out, list[:i]...)
			out = append(out, list[i+1:]...)
			return out, true
		}
	}
	return list, false
}

// Union appends entries, skipping any that are already present by exact
// value. Matches the store's arrayUnion semantics.
func Union(list []Entry, entries ...Entry) []Entry {
	out := list
	for _, candidate := range entries {
		dup := false
		for _, existing := range out {
			if existing.Equal(candidate) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, candidate)
		}
	}
	return out
}

// SortByTime orders entries ascending by the raw time string. Times are
// expected in a sortable ISO-like form; no date parsing or normalization
// happens here.
func SortByTime(list []Entry) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Time < list[j].Time
	})
}

// CloneScore returns a deep copy so callers can mutate score maps without
// aliasing stored entries.
func CloneScore(s *Score) *Score {
	if s == nil {
		return nil
	}
	out := &Score{}
	if s.Home != nil {
		out.Home = make(map[string]int, len(s.Home))
		for k, v := range s.Home {
			out.Home[k] = v
		}
	}
	if s.Away != nil {
		out.Away = make(map[string]int, len(s.Away))
		for k, v := range s.Away {
			out.Away[k] = v
		}
	}
	return out
}
