package schedule

import "testing"

func baseEntry() Entry {
	return Entry{
		Location: "Memorial Stadium, Peckville, PA",
		Time:     "2025-09-05T19:00",
		Opponent: "Valley View",
	}
}

func TestEqualExactMatch(t *testing.T) {
	a := baseEntry()
	b := baseEntry()
	if !a.Equal(b) {
		t.Fatalf("identical entries reported unequal")
	}

	a.Status = StatusFinal
	a.Score = &Score{Home: map[string]int{"1": 7, "2": 14, "final": 21}}
	b.Status = StatusFinal
	b.Score = &Score{Home: map[string]int{"1": 7, "2": 14, "final": 21}}
	if !a.Equal(b) {
		t.Fatalf("entries with identical scores reported unequal")
	}
}

func TestEqualFieldDrift(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Entry)
	}{
		{"location", func(e *Entry) { e.Location = "elsewhere" }},
		{"time", func(e *Entry) { e.Time = "2025-09-06T19:00" }},
		{"opponent", func(e *Entry) { e.Opponent = "Dunmore" }},
		{"status added", func(e *Entry) { e.Status = StatusLive }},
		{"url added", func(e *Entry) { e.URL = "https://example.com/stream" }},
		{"score added", func(e *Entry) { e.Score = &Score{Home: map[string]int{"final": 3}} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := baseEntry()
			b := baseEntry()
			tt.mutate(&b)
			if a.Equal(b) {
				t.Errorf("entries differing by %s reported equal", tt.name)
			}
		})
	}
}

func TestEqualScoreDrift(t *testing.T) {
	a := baseEntry()
	b := baseEntry()
	a.Score = &Score{Home: map[string]int{"final": 21}, Away: map[string]int{"final": 14}}
	b.Score = &Score{Home: map[string]int{"final": 21}, Away: map[string]int{"final": 17}}
	if a.Equal(b) {
		t.Fatalf("entries with different away scores reported equal")
	}

	b.Score = &Score{Home: map[string]int{"final": 21, "1": 7}, Away: map[string]int{"final": 14}}
	if a.Equal(b) {
		t.Fatalf("entries with extra period key reported equal")
	}
}

func TestRemoveExactRemovesExactlyOne(t *testing.T) {
	first := baseEntry()
	second := baseEntry()
	second.Opponent = "Dunmore"
	third := baseEntry()
	third.Time = "2025-09-12T19:00"

	list := []Entry{first, second, third}
	out, found := RemoveExact(list, second)
	if !found {
		t.Fatalf("expected match")
	}
	if len(out) != 2 {
		t.Fatalf("got %d entries, want 2", len(out))
	}
	if !out[0].Equal(first) || !out[1].Equal(third) {
		t.Fatalf("surviving entries were disturbed: %+v", out)
	}
}

func TestRemoveExactMismatchIsNoOp(t *testing.T) {
	stored := baseEntry()
	stored.Status = StatusFinal

	reference := baseEntry() // missing the status that was added after insertion

	list := []Entry{stored}
	out, found := RemoveExact(list, reference)
	if found {
		t.Fatalf("mismatched entry should not match")
	}
	if len(out) != 1 || !out[0].Equal(stored) {
		t.Fatalf("list should be unchanged, got %+v", out)
	}
}

func TestUnionDedupsExactMatches(t *testing.T) {
	a := baseEntry()
	b := baseEntry()
	b.Opponent = "Dunmore"

	list := Union(nil, a)
	list = Union(list, a, b)
	if len(list) != 2 {
		t.Fatalf("got %d entries, want 2", len(list))
	}

	// A near-duplicate differing by one field is appended, not collapsed.
	c := baseEntry()
	c.Status = StatusUpcoming
	list = Union(list, c)
	if len(list) != 3 {
		t.Fatalf("near-duplicate should be appended, got %d entries", len(list))
	}
}

func TestSortByTimeIsPlainStringOrder(t *testing.T) {
	list := []Entry{
		{Time: "2025-10-03T19:00", Opponent: "c"},
		{Time: "2025-09-05T19:00", Opponent: "a"},
		{Time: "2025-09-05T19:00", Opponent: "b"}, // equal key, order preserved
		{Time: "2025-09-12T14:00", Opponent: "d"},
	}
	SortByTime(list)

	want := []string{"a", "b", "d", "c"}
	for i, opp := range want {
		if list[i].Opponent != opp {
			t.Fatalf("position %d: got %s, want %s (%+v)", i, list[i].Opponent, opp, list)
		}
	}
}

func TestCloneScoreIsIndependent(t *testing.T) {
	orig := &Score{Home: map[string]int{"final": 21}, Away: map[string]int{"final": 14}}
	clone := CloneScore(orig)
	clone.Home["final"] = 99
	if orig.Home["final"] != 21 {
		t.Fatalf("clone aliases original map")
	}
	if CloneScore(nil) != nil {
		t.Fatalf("nil clone should stay nil")
	}
}
