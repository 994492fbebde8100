package websocket

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/CoalValleyTech/span-sportshub/internal/publisher"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins in development (TODO: restrict in production)
	},
}

// Server pushes live score events to connected scoreboard pages. Events
// arrive over Redis pub/sub from the schedule service and fan out to every
// connected client.
type Server struct {
	port   string
	server *http.Server
	hub    *Hub
	pub    *publisher.RedisPublisher
}

// NewServer creates a new WebSocket server.
func NewServer(pub *publisher.RedisPublisher) *Server {
	return &Server{
		hub: NewHub(),
		pub: pub,
	}
}

// Start runs the hub, the Redis relay, and the HTTP listener. Blocks until
// the listener stops.
func (s *Server) Start(port string) error {
	s.port = port

	go s.hub.Run()
	if s.pub != nil {
		go s.relayScoreEvents()
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws/scores", s.handleScores)
	mux.HandleFunc("/ws/health", s.handleHealth)

	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%s", port),
		Handler: mux,
	}

	log.Info().Str("port", port).Msg("WebSocket server listening")
	return s.server.ListenAndServe()
}

// relayScoreEvents forwards every score event from Redis to the hub. The
// subscription channel closes when the publisher is closed, which ends the
// relay.
func (s *Server) relayScoreEvents() {
	sub := s.pub.Subscribe(context.Background())
	defer sub.Close()

	for msg := range sub.Channel() {
		s.hub.Broadcast([]byte(msg.Payload))
	}
}

// handleScores upgrades the connection and registers the client with the hub.
func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to upgrade connection")
		return
	}

	client := &Client{
		hub:  s.hub,
		conn: conn,
		send: make(chan []byte, 256),
	}

	client.hub.register <- client

	go client.writePump()
	go client.readPump()
}

// handleHealth returns WebSocket server health status.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"status": "healthy", "clients": %d}`, s.hub.ClientCount())
}

// BroadcastScoreUpdate sends a score event to all connected clients directly,
// bypassing Redis. Used when no publisher is configured.
func (s *Server) BroadcastScoreUpdate(data []byte) {
	s.hub.Broadcast(data)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
