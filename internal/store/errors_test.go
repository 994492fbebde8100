package store

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"no rows", sql.ErrNoRows, ErrNotFound},
		{"wrapped no rows", fmt.Errorf("querying school: %w", sql.ErrNoRows), ErrNotFound},
		{"insufficient privilege", &pq.Error{Code: "42501"}, ErrPermission},
		{"invalid authorization", &pq.Error{Code: "28000"}, ErrPermission},
		{"too many connections", &pq.Error{Code: "53300"}, ErrUnavailable},
		{"admin shutdown", &pq.Error{Code: "57P01"}, ErrUnavailable},
		{"connection failure", &pq.Error{Code: "08006"}, ErrNetwork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.err)
			if !errors.Is(got, tt.want) {
				t.Errorf("Classify(%v) = %v, want category %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestClassifyPassesThroughGenericErrors(t *testing.T) {
	generic := errors.New("something else")
	if got := Classify(generic); got != generic {
		t.Errorf("generic errors should pass through, got %v", got)
	}
	if Classify(nil) != nil {
		t.Errorf("nil should stay nil")
	}
}

func TestClassifyUniqueViolationIsGeneric(t *testing.T) {
	err := &pq.Error{Code: "23505"}
	got := Classify(err)
	for _, cat := range []error{ErrPermission, ErrUnavailable, ErrNetwork, ErrNotFound} {
		if errors.Is(got, cat) {
			t.Errorf("unique violation should not classify as %v", cat)
		}
	}
}
