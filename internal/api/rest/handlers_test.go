package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"github.com/CoalValleyTech/span-sportshub/internal/service"
	"github.com/CoalValleyTech/span-sportshub/internal/store"
)

type fakeAuth struct {
	sessions map[string]string
	admins   map[string]bool
}

func (f *fakeAuth) SignIn(_ context.Context, email, password string) (string, error) {
	if password != "hunter2" {
		return "", fmt.Errorf("checking credentials: %w", errInvalidLogin)
	}
	token := "token-" + email
	f.sessions[token] = email
	return token, nil
}

var errInvalidLogin = errors.New("invalid email or password")

func (f *fakeAuth) SignOut(_ context.Context, token string) error {
	delete(f.sessions, token)
	return nil
}

func (f *fakeAuth) Verify(_ context.Context, token string) (string, error) {
	email, ok := f.sessions[token]
	if !ok {
		return "", errors.New("no active session")
	}
	return email, nil
}

func (f *fakeAuth) IsAdmin(email string) bool { return f.admins[email] }

type fakeStatBoard struct {
	lines []*store.StatLine
}

func (f *fakeStatBoard) SubmitStatLine(_ context.Context, line *store.StatLine) (string, error) {
	if line.PlayerName == "" {
		return "", fmt.Errorf("%w: playerName is required", service.ErrInvalidInput)
	}
	line.ID = fmt.Sprintf("stat-%d", len(f.lines)+1)
	f.lines = append(f.lines, line)
	return line.ID, nil
}

func (f *fakeStatBoard) ListStats(context.Context) ([]*store.StatLine, error) {
	return f.lines, nil
}

func (f *fakeStatBoard) ListStatsBySport(_ context.Context, sport string) ([]*store.StatLine, error) {
	var out []*store.StatLine
	for _, line := range f.lines {
		if line.Sport == sport {
			out = append(out, line)
		}
	}
	return out, nil
}

func (f *fakeStatBoard) Leaderboard(_ context.Context, sport, division, stat string) ([]*store.StatLine, error) {
	var out []*store.StatLine
	for _, line := range f.lines {
		if line.Sport != sport || line.Division != division {
			continue
		}
		if _, ok := line.Values[stat]; ok {
			out = append(out, line)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Values[stat] > out[j].Values[stat] })
	return out, nil
}

func (f *fakeStatBoard) DeleteStatLine(_ context.Context, id string) error {
	for i, line := range f.lines {
		if line.ID == id {
			f.lines = append(f.lines[:i], f.lines[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("stat line %s: %w", id, store.ErrNotFound)
}

func newTestServer(t *testing.T) (*Server, *fakeAuth, *fakeStatBoard) {
	t.Helper()
	authSvc := &fakeAuth{
		sessions: map[string]string{"admin-token": "editor@example.com"},
		admins:   map[string]bool{"editor@example.com": true},
	}
	stats := &fakeStatBoard{}
	srv := NewServer("0", nil, Services{Auth: authSvc, Stats: stats}, "")
	return srv, authSvc, stats
}

func do(srv *Server, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	srv.server.Handler.ServeHTTP(rr, req)
	return rr
}

func TestSubmitStatRequiresAdminSession(t *testing.T) {
	srv, authSvc, _ := newTestServer(t)
	body := `{"playerName":"J. Rivera","sport":"football","passYds":212}`

	tests := []struct {
		name   string
		token  string
		status int
	}{
		{"no token", "", http.StatusUnauthorized},
		{"bad token", "garbage", http.StatusUnauthorized},
		{"non-admin session", "viewer-token", http.StatusForbidden},
		{"admin session", "admin-token", http.StatusOK},
	}
	authSvc.sessions["viewer-token"] = "reader@example.com"

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(srv, "POST", "/api/stats", tt.token, body)
			if rr.Code != tt.status {
				t.Errorf("status = %d, want %d (body %s)", rr.Code, tt.status, rr.Body.String())
			}
		})
	}
}

func TestSubmitStatValidationReturns400WithMessage(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rr := do(srv, "POST", "/api/stats", "admin-token", `{"sport":"football","passYds":10}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}

	var resp map[string]interface{}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding error body: %v", err)
	}
	if resp["message"] == "" || resp["message"] == nil {
		t.Errorf("error body missing message: %v", resp)
	}
}

func TestStatsRoundTripAndLeaderboardOrder(t *testing.T) {
	srv, _, _ := newTestServer(t)

	post := func(body string) {
		t.Helper()
		rr := do(srv, "POST", "/api/stats", "admin-token", body)
		if rr.Code != http.StatusOK {
			t.Fatalf("POST /api/stats = %d: %s", rr.Code, rr.Body.String())
		}
	}
	post(`{"playerName":"A","sport":"football","division":"DIV1","passYds":150}`)
	post(`{"playerName":"B","sport":"football","division":"DIV1","passYds":301}`)
	post(`{"playerName":"C","sport":"football","division":"DIV1","rushYds":88}`)
	post(`{"playerName":"D","sport":"football","division":"DIV2","passYds":999}`)
	post(`{"playerName":"E","sport":"soccer","division":"DIV1","goals":3}`)

	rr := do(srv, "GET", "/api/stats/sport/football", "", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("GET by sport = %d", rr.Code)
	}
	var bySport []map[string]interface{}
	if err := json.Unmarshal(rr.Body.Bytes(), &bySport); err != nil {
		t.Fatalf("decoding sport list: %v", err)
	}
	if len(bySport) != 4 {
		t.Errorf("football lines = %d, want 4", len(bySport))
	}

	rr = do(srv, "GET", "/api/stats/leaderboard/sport/football/division/DIV1/stat/passYds", "", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("GET leaderboard = %d", rr.Code)
	}
	var board []map[string]interface{}
	if err := json.Unmarshal(rr.Body.Bytes(), &board); err != nil {
		t.Fatalf("decoding leaderboard: %v", err)
	}
	if len(board) != 2 {
		t.Fatalf("leaderboard rows = %d, want 2 (no-stat and off-division lines excluded)", len(board))
	}
	if board[0]["playerName"] != "B" || board[1]["playerName"] != "A" {
		t.Errorf("leaderboard order = %v then %v, want B then A", board[0]["playerName"], board[1]["playerName"])
	}
	// Flat wire form: the stat value sits at the top level of each row.
	if board[0]["passYds"] != 301.0 {
		t.Errorf("top row passYds = %v, want 301", board[0]["passYds"])
	}
}

func TestGetStatsEmptyListIsNotNull(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rr := do(srv, "GET", "/api/stats", "", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if got := strings.TrimSpace(rr.Body.String()); got != "[]" {
		t.Errorf("empty stats body = %q, want []", got)
	}
}

func TestDeleteStatMapsNotFoundTo404(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rr := do(srv, "DELETE", "/api/stats/nope", "admin-token", "")
	if rr.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rr.Code)
	}
}

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", fmt.Errorf("x: %w", store.ErrNotFound), http.StatusNotFound},
		{"permission", fmt.Errorf("x: %w", store.ErrPermission), http.StatusForbidden},
		{"unavailable", fmt.Errorf("x: %w", store.ErrUnavailable), http.StatusServiceUnavailable},
		{"network", fmt.Errorf("x: %w", store.ErrNetwork), http.StatusBadGateway},
		{"invalid input", fmt.Errorf("x: %w", service.ErrInvalidInput), http.StatusBadRequest},
		{"generic", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := statusFromError(tt.err); got != tt.want {
				t.Errorf("statusFromError = %d, want %d", got, tt.want)
			}
		})
	}
}
