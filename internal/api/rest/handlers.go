package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/CoalValleyTech/span-sportshub/internal/auth"
	"github.com/CoalValleyTech/span-sportshub/internal/schedule"
	"github.com/CoalValleyTech/span-sportshub/internal/service"
	"github.com/CoalValleyTech/span-sportshub/internal/standings"
	"github.com/CoalValleyTech/span-sportshub/internal/store"
)

const maxUploadBytes = 10 << 20

// Authenticator verifies sessions and the admin allow list.
type Authenticator interface {
	SignIn(ctx context.Context, email, password string) (string, error)
	SignOut(ctx context.Context, token string) error
	Verify(ctx context.Context, token string) (string, error)
	IsAdmin(email string) bool
}

// ScheduleCoordinator is the dual-write schedule service.
type ScheduleCoordinator interface {
	AddSchedule(ctx context.Context, schoolID, schoolName, sport string, entries []schedule.Entry) ([]string, error)
	AddGame(ctx context.Context, schoolID *string, schoolName, sport string, entry schedule.Entry) (string, error)
	GetSchedules(ctx context.Context, sport string) ([]*store.GlobalScheduleRecord, error)
	GetRecord(ctx context.Context, id string) (*store.GlobalScheduleRecord, error)
	SaveScore(ctx context.Context, recordID string, score *schedule.Score) error
	SubmitFinal(ctx context.Context, recordID string, score *schedule.Score) error
	DeleteGame(ctx context.Context, recordID string) error
	RemoveSchedule(ctx context.Context, schoolID, sport string, entry schedule.Entry) error
	DeleteAllGames(ctx context.Context) ([]string, error)
}

// SchoolDirectory is the school CRUD service.
type SchoolDirectory interface {
	CreateSchool(ctx context.Context, school *store.School, logo []byte, logoName string) (string, error)
	GetSchool(ctx context.Context, id string) (*store.School, error)
	ListSchools(ctx context.Context) ([]*store.School, error)
	ListSchoolsPaginated(ctx context.Context, limit int) ([]*store.School, error)
	UpdateSchool(ctx context.Context, id string, name, location *string, logo []byte, logoName string) error
	DeleteSchool(ctx context.Context, id string) error
	AddSport(ctx context.Context, id, sport string) error
	SetRoster(ctx context.Context, id string, roster store.Roster) error
	DeletePlayer(ctx context.Context, id, sport, season string, index int) error
}

// ArticleManager is the article CRUD service.
type ArticleManager interface {
	CreateArticle(ctx context.Context, article *store.Article) (string, error)
	GetArticle(ctx context.Context, id string) (*store.Article, error)
	ListArticles(ctx context.Context) ([]*store.Article, error)
	UpdateArticle(ctx context.Context, article *store.Article) error
	DeleteArticle(ctx context.Context, id string) error
}

// StatBoard is the stat line service.
type StatBoard interface {
	SubmitStatLine(ctx context.Context, line *store.StatLine) (string, error)
	ListStats(ctx context.Context) ([]*store.StatLine, error)
	ListStatsBySport(ctx context.Context, sport string) ([]*store.StatLine, error)
	Leaderboard(ctx context.Context, sport, division, stat string) ([]*store.StatLine, error)
	DeleteStatLine(ctx context.Context, id string) error
}

// StandingsProvider derives division tables from final scores.
type StandingsProvider interface {
	FootballStandings(ctx context.Context) (map[string][]standings.Standing, error)
}

// Handler contains dependencies for HTTP handlers.
type Handler struct {
	db        *store.Database
	auth      Authenticator
	schedules ScheduleCoordinator
	schools   SchoolDirectory
	articles  ArticleManager
	stats     StatBoard
	standings StandingsProvider
}

// Services bundles the service layer for the HTTP surface.
type Services struct {
	Auth      Authenticator
	Schedules ScheduleCoordinator
	Schools   SchoolDirectory
	Articles  ArticleManager
	Stats     StatBoard
	Standings StandingsProvider
}

// NewHandler creates a new handler.
func NewHandler(db *store.Database, svcs Services) *Handler {
	return &Handler{
		db:        db,
		auth:      svcs.Auth,
		schedules: svcs.Schedules,
		schools:   svcs.Schools,
		articles:  svcs.Articles,
		stats:     svcs.Stats,
		standings: svcs.Standings,
	}
}

// HealthCheck handles health check requests.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	code := http.StatusOK
	if h.db != nil {
		if err := h.db.HealthCheck(); err != nil {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}
	}
	respondJSON(w, code, map[string]string{
		"status":  status,
		"service": "span-sportshub",
	})
}

// --- auth ---

// Login verifies credentials and opens a session.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	token, err := h.auth.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			respondError(w, http.StatusUnauthorized, "Invalid email or password", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "Sign-in failed", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"token": token})
}

// Logout revokes the caller's session.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.auth.SignOut(r.Context(), bearerToken(r)); err != nil {
		respondError(w, http.StatusInternalServerError, "Sign-out failed", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Signed out"})
}

// --- schools ---

// CreateSchool accepts either JSON or a multipart form with an optional
// logo file.
func (h *Handler) CreateSchool(w http.ResponseWriter, r *http.Request) {
	school := &store.School{}
	var logo []byte
	var logoName string

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid multipart form", err)
			return
		}
		school.Name = r.FormValue("name")
		school.Location = r.FormValue("location")

		var err error
		logo, logoName, err = readUpload(r, "logo")
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid logo upload", err)
			return
		}
	} else if err := json.NewDecoder(r.Body).Decode(school); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if school.Name == "" {
		respondError(w, http.StatusBadRequest, "School name is required", nil)
		return
	}

	id, err := h.schools.CreateSchool(r.Context(), school, logo, logoName)
	if err != nil {
		respondServiceError(w, "Failed to create school", err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// ListSchools returns all schools, honoring an optional limit.
func (h *Handler) ListSchools(w http.ResponseWriter, r *http.Request) {
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit <= 0 {
			respondError(w, http.StatusBadRequest, "Invalid limit", err)
			return
		}
		schools, err := h.schools.ListSchoolsPaginated(r.Context(), limit)
		if err != nil {
			respondServiceError(w, "Failed to fetch schools", err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]interface{}{"schools": schools})
		return
	}

	schools, err := h.schools.ListSchools(r.Context())
	if err != nil {
		respondServiceError(w, "Failed to fetch schools", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"schools": schools})
}

// GetSchool returns one school with embedded schedules and rosters.
func (h *Handler) GetSchool(w http.ResponseWriter, r *http.Request) {
	school, err := h.schools.GetSchool(r.Context(), mux.Vars(r)["schoolID"])
	if err != nil {
		respondServiceError(w, "Failed to fetch school", err)
		return
	}
	respondJSON(w, http.StatusOK, school)
}

// UpdateSchool patches name/location and optionally swaps the logo.
func (h *Handler) UpdateSchool(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["schoolID"]
	var name, location *string
	var logo []byte
	var logoName string

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid multipart form", err)
			return
		}
		if v := r.FormValue("name"); v != "" {
			name = &v
		}
		if v := r.FormValue("location"); v != "" {
			location = &v
		}
		var err error
		logo, logoName, err = readUpload(r, "logo")
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid logo upload", err)
			return
		}
	} else {
		var req struct {
			Name     *string `json:"name"`
			Location *string `json:"location"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid request body", err)
			return
		}
		name, location = req.Name, req.Location
	}

	if err := h.schools.UpdateSchool(r.Context(), id, name, location, logo, logoName); err != nil {
		respondServiceError(w, "Failed to update school", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "School updated"})
}

// DeleteSchool removes a school and its logo.
func (h *Handler) DeleteSchool(w http.ResponseWriter, r *http.Request) {
	if err := h.schools.DeleteSchool(r.Context(), mux.Vars(r)["schoolID"]); err != nil {
		respondServiceError(w, "Failed to delete school", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "School deleted"})
}

// AddSport adds a sport to a school's offered list.
func (h *Handler) AddSport(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Sport string `json:"sport"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Sport == "" {
		respondError(w, http.StatusBadRequest, "sport is required", err)
		return
	}

	if err := h.schools.AddSport(r.Context(), mux.Vars(r)["schoolID"], req.Sport); err != nil {
		respondServiceError(w, "Failed to add sport", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Sport added"})
}

// SetRoster adds or replaces a sport/season roster.
func (h *Handler) SetRoster(w http.ResponseWriter, r *http.Request) {
	var roster store.Roster
	if err := json.NewDecoder(r.Body).Decode(&roster); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if roster.Sport == "" || roster.Season == "" {
		respondError(w, http.StatusBadRequest, "sport and season are required", nil)
		return
	}

	if err := h.schools.SetRoster(r.Context(), mux.Vars(r)["schoolID"], roster); err != nil {
		respondServiceError(w, "Failed to save roster", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Roster saved"})
}

// DeletePlayer removes one player from a roster by index.
func (h *Handler) DeletePlayer(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	index, err := strconv.Atoi(vars["index"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid player index", err)
		return
	}

	err = h.schools.DeletePlayer(r.Context(), vars["schoolID"], vars["sport"], vars["season"], index)
	if err != nil {
		respondServiceError(w, "Failed to delete player", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Player deleted"})
}

// --- schedules and games ---

// AddSchedule appends entries to a school's schedule and mirrors them into
// the flat collection and matching opponents.
func (h *Handler) AddSchedule(w http.ResponseWriter, r *http.Request) {
	schoolID := mux.Vars(r)["schoolID"]
	var req struct {
		Sport   string           `json:"sport"`
		Entries []schedule.Entry `json:"entries"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Sport == "" || len(req.Entries) == 0 {
		respondError(w, http.StatusBadRequest, "sport and entries are required", nil)
		return
	}

	school, err := h.schools.GetSchool(r.Context(), schoolID)
	if err != nil {
		respondServiceError(w, "Failed to fetch school", err)
		return
	}

	ids, err := h.schedules.AddSchedule(r.Context(), school.ID, school.Name, req.Sport, req.Entries)
	if err != nil {
		respondServiceError(w, "Failed to add schedule", err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]interface{}{"ids": ids})
}

// RemoveSchedule deletes one entry from a school's embedded list.
func (h *Handler) RemoveSchedule(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Sport string         `json:"sport"`
		Entry schedule.Entry `json:"entry"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Sport == "" {
		respondError(w, http.StatusBadRequest, "sport and entry are required", err)
		return
	}

	err := h.schedules.RemoveSchedule(r.Context(), mux.Vars(r)["schoolID"], req.Sport, req.Entry)
	if err != nil {
		respondServiceError(w, "Failed to remove schedule entry", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Schedule entry removed"})
}

// GetSchedules returns flat records, optionally filtered by sport.
func (h *Handler) GetSchedules(w http.ResponseWriter, r *http.Request) {
	records, err := h.schedules.GetSchedules(r.Context(), r.URL.Query().Get("sport"))
	if err != nil {
		respondServiceError(w, "Failed to fetch schedules", err)
		return
	}
	if records == nil {
		records = []*store.GlobalScheduleRecord{}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"schedules": records})
}

// AddGame inserts a live or upcoming game into the flat collection only.
func (h *Handler) AddGame(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SchoolID   *string        `json:"schoolId"`
		SchoolName string         `json:"schoolName"`
		Sport      string         `json:"sport"`
		Entry      schedule.Entry `json:"entry"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.SchoolName == "" || req.Sport == "" {
		respondError(w, http.StatusBadRequest, "schoolName and sport are required", nil)
		return
	}

	id, err := h.schedules.AddGame(r.Context(), req.SchoolID, req.SchoolName, req.Sport, req.Entry)
	if err != nil {
		respondServiceError(w, "Failed to add game", err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// GetGame returns one flat record.
func (h *Handler) GetGame(w http.ResponseWriter, r *http.Request) {
	rec, err := h.schedules.GetRecord(r.Context(), mux.Vars(r)["recordID"])
	if err != nil {
		respondServiceError(w, "Failed to fetch game", err)
		return
	}
	respondJSON(w, http.StatusOK, rec)
}

// SaveScore updates the live score on a flat record.
func (h *Handler) SaveScore(w http.ResponseWriter, r *http.Request) {
	score, ok := decodeScore(w, r)
	if !ok {
		return
	}

	if err := h.schedules.SaveScore(r.Context(), mux.Vars(r)["recordID"], score); err != nil {
		respondServiceError(w, "Failed to save score", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Score saved"})
}

// SubmitFinal finalizes a game and pushes the score into both school pages.
func (h *Handler) SubmitFinal(w http.ResponseWriter, r *http.Request) {
	score, ok := decodeScore(w, r)
	if !ok {
		return
	}

	if err := h.schedules.SubmitFinal(r.Context(), mux.Vars(r)["recordID"], score); err != nil {
		respondServiceError(w, "Failed to submit final score", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Final score submitted"})
}

// DeleteGame removes one flat record.
func (h *Handler) DeleteGame(w http.ResponseWriter, r *http.Request) {
	if err := h.schedules.DeleteGame(r.Context(), mux.Vars(r)["recordID"]); err != nil {
		respondServiceError(w, "Failed to delete game", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Game deleted"})
}

// DeleteAllGames wipes the flat collection and reports any ids that failed.
func (h *Handler) DeleteAllGames(w http.ResponseWriter, r *http.Request) {
	failed, err := h.schedules.DeleteAllGames(r.Context())
	if err != nil {
		respondServiceError(w, "Failed to delete games", err)
		return
	}
	if failed == nil {
		failed = []string{}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message":   "Games deleted",
		"failedIds": failed,
	})
}

// --- standings ---

// GetFootballStandings returns the ranked division tables.
func (h *Handler) GetFootballStandings(w http.ResponseWriter, r *http.Request) {
	table, err := h.standings.FootballStandings(r.Context())
	if err != nil {
		respondServiceError(w, "Failed to compute standings", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"divisions": table})
}

// --- articles ---

// CreateArticle stores a news article.
func (h *Handler) CreateArticle(w http.ResponseWriter, r *http.Request) {
	article := &store.Article{}
	if err := json.NewDecoder(r.Body).Decode(article); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	id, err := h.articles.CreateArticle(r.Context(), article)
	if err != nil {
		respondServiceError(w, "Failed to create article", err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// ListArticles returns all articles, newest first.
func (h *Handler) ListArticles(w http.ResponseWriter, r *http.Request) {
	articles, err := h.articles.ListArticles(r.Context())
	if err != nil {
		respondServiceError(w, "Failed to fetch articles", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"articles": articles})
}

// GetArticle returns one article.
func (h *Handler) GetArticle(w http.ResponseWriter, r *http.Request) {
	article, err := h.articles.GetArticle(r.Context(), mux.Vars(r)["articleID"])
	if err != nil {
		respondServiceError(w, "Failed to fetch article", err)
		return
	}
	respondJSON(w, http.StatusOK, article)
}

// UpdateArticle replaces an article's content.
func (h *Handler) UpdateArticle(w http.ResponseWriter, r *http.Request) {
	article := &store.Article{}
	if err := json.NewDecoder(r.Body).Decode(article); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	article.ID = mux.Vars(r)["articleID"]

	if err := h.articles.UpdateArticle(r.Context(), article); err != nil {
		respondServiceError(w, "Failed to update article", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Article updated"})
}

// DeleteArticle removes an article.
func (h *Handler) DeleteArticle(w http.ResponseWriter, r *http.Request) {
	if err := h.articles.DeleteArticle(r.Context(), mux.Vars(r)["articleID"]); err != nil {
		respondServiceError(w, "Failed to delete article", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Article deleted"})
}

// --- stats ---

// SubmitStat accepts one flat stat line.
func (h *Handler) SubmitStat(w http.ResponseWriter, r *http.Request) {
	line := &store.StatLine{}
	if err := json.NewDecoder(r.Body).Decode(line); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	id, err := h.stats.SubmitStatLine(r.Context(), line)
	if err != nil {
		respondServiceError(w, "Failed to save stat line", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"id": id, "message": "Stat line saved"})
}

// GetStats returns all stat lines.
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	lines, err := h.stats.ListStats(r.Context())
	if err != nil {
		respondServiceError(w, "Failed to fetch stats", err)
		return
	}
	if lines == nil {
		lines = []*store.StatLine{}
	}
	respondJSON(w, http.StatusOK, lines)
}

// GetStatsBySport returns stat lines for one sport.
func (h *Handler) GetStatsBySport(w http.ResponseWriter, r *http.Request) {
	lines, err := h.stats.ListStatsBySport(r.Context(), mux.Vars(r)["sport"])
	if err != nil {
		respondServiceError(w, "Failed to fetch stats", err)
		return
	}
	if lines == nil {
		lines = []*store.StatLine{}
	}
	respondJSON(w, http.StatusOK, lines)
}

// GetLeaderboard returns stat lines for a sport and division sorted by the
// named stat descending.
func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	lines, err := h.stats.Leaderboard(r.Context(), vars["sport"], vars["division"], vars["stat"])
	if err != nil {
		respondServiceError(w, "Failed to fetch leaderboard", err)
		return
	}
	if lines == nil {
		lines = []*store.StatLine{}
	}
	respondJSON(w, http.StatusOK, lines)
}

// DeleteStat removes one stat line.
func (h *Handler) DeleteStat(w http.ResponseWriter, r *http.Request) {
	if err := h.stats.DeleteStatLine(r.Context(), mux.Vars(r)["statID"]); err != nil {
		respondServiceError(w, "Failed to delete stat line", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Stat line deleted"})
}

// --- helpers ---

func decodeScore(w http.ResponseWriter, r *http.Request) (*schedule.Score, bool) {
	var req struct {
		Score *schedule.Score `json:"score"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", err)
		return nil, false
	}
	if req.Score == nil || len(req.Score.Home) == 0 || len(req.Score.Away) == 0 {
		respondError(w, http.StatusBadRequest, "score with home and away sides is required", nil)
		return nil, false
	}
	return req.Score, true
}

func readUpload(r *http.Request, field string) ([]byte, string, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, "", nil
		}
		return nil, "", err
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		return nil, "", err
	}
	return data, header.Filename, nil
}

// statusFromError maps the store error categories onto HTTP statuses.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, store.ErrPermission):
		return http.StatusForbidden
	case errors.Is(err, store.ErrUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, store.ErrNetwork):
		return http.StatusBadGateway
	case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrNoSession):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// respondServiceError maps a service error to a status via its category and
// surfaces the human-readable message.
func respondServiceError(w http.ResponseWriter, message string, err error) {
	respondError(w, statusFromError(err), message, err)
}

// respondJSON writes a JSON response.
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes an error response with a human-readable message.
func respondError(w http.ResponseWriter, status int, message string, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := map[string]interface{}{
		"message": message,
		"status":  status,
	}
	if err != nil {
		response["details"] = err.Error()
	}

	json.NewEncoder(w).Encode(response)
}
