package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/CoalValleyTech/span-sportshub/internal/store"
)

// Server is the public REST API.
type Server struct {
	port    string
	server  *http.Server
	handler *Handler
}

// NewServer wires the routes. mediaDir, when set, is served under /media/
// for school logos.
func NewServer(port string, db *store.Database, svcs Services, mediaDir string) *Server {
	handler := NewHandler(db, svcs)

	router := mux.NewRouter()

	// Apply middleware
	router.Use(RecoveryMiddleware)
	router.Use(LoggingMiddleware)
	router.Use(CORSMiddleware)

	// Health check
	router.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	if mediaDir != "" {
		router.PathPrefix("/media/").Handler(
			http.StripPrefix("/media/", http.FileServer(http.Dir(mediaDir))))
	}

	api := router.PathPrefix("/api").Subrouter()

	// Auth
	api.HandleFunc("/auth/login", handler.Login).Methods("POST")
	api.HandleFunc("/auth/logout", handler.Logout).Methods("POST")

	// Schools
	api.HandleFunc("/schools", handler.ListSchools).Methods("GET")
	api.HandleFunc("/schools", handler.adminOnly(handler.CreateSchool)).Methods("POST")
	api.HandleFunc("/schools/{schoolID}", handler.GetSchool).Methods("GET")
	api.HandleFunc("/schools/{schoolID}", handler.adminOnly(handler.UpdateSchool)).Methods("PUT")
	api.HandleFunc("/schools/{schoolID}", handler.adminOnly(handler.DeleteSchool)).Methods("DELETE")
	api.HandleFunc("/schools/{schoolID}/sports", handler.adminOnly(handler.AddSport)).Methods("POST")
	api.HandleFunc("/schools/{schoolID}/rosters", handler.adminOnly(handler.SetRoster)).Methods("PUT")
	api.HandleFunc("/schools/{schoolID}/rosters/{sport}/{season}/players/{index}",
		handler.adminOnly(handler.DeletePlayer)).Methods("DELETE")
	api.HandleFunc("/schools/{schoolID}/schedules", handler.adminOnly(handler.AddSchedule)).Methods("POST")
	api.HandleFunc("/schools/{schoolID}/schedules", handler.adminOnly(handler.RemoveSchedule)).Methods("DELETE")

	// Flat schedule collection and live games
	api.HandleFunc("/schedules", handler.GetSchedules).Methods("GET")
	api.HandleFunc("/games", handler.adminOnly(handler.AddGame)).Methods("POST")
	api.HandleFunc("/games", handler.adminOnly(handler.DeleteAllGames)).Methods("DELETE")
	api.HandleFunc("/games/{recordID}", handler.GetGame).Methods("GET")
	api.HandleFunc("/games/{recordID}", handler.adminOnly(handler.DeleteGame)).Methods("DELETE")
	api.HandleFunc("/games/{recordID}/score", handler.adminOnly(handler.SaveScore)).Methods("PUT")
	api.HandleFunc("/games/{recordID}/final", handler.adminOnly(handler.SubmitFinal)).Methods("POST")

	// Standings
	api.HandleFunc("/standings/football", handler.GetFootballStandings).Methods("GET")

	// Articles
	api.HandleFunc("/articles", handler.ListArticles).Methods("GET")
	api.HandleFunc("/articles", handler.adminOnly(handler.CreateArticle)).Methods("POST")
	api.HandleFunc("/articles/{articleID}", handler.GetArticle).Methods("GET")
	api.HandleFunc("/articles/{articleID}", handler.adminOnly(handler.UpdateArticle)).Methods("PUT")
	api.HandleFunc("/articles/{articleID}", handler.adminOnly(handler.DeleteArticle)).Methods("DELETE")

	// Stats
	api.HandleFunc("/stats", handler.GetStats).Methods("GET")
	api.HandleFunc("/stats", handler.adminOnly(handler.SubmitStat)).Methods("POST")
	api.HandleFunc("/stats/sport/{sport}", handler.GetStatsBySport).Methods("GET")
	api.HandleFunc("/stats/leaderboard/sport/{sport}/division/{division}/stat/{stat}",
		handler.GetLeaderboard).Methods("GET")
	api.HandleFunc("/stats/{statID}", handler.adminOnly(handler.DeleteStat)).Methods("DELETE")

	return &Server{
		port:    port,
		handler: handler,
		server: &http.Server{
			Addr:    fmt.Sprintf(":%s", port),
			Handler: router,
		},
	}
}

// Start starts the REST API server
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
