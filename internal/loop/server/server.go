// Package server hosts concurrent game sessions. Every connected player runs
// an independent game; the server only tracks who is connected, keeps the
// shared leaderboard and coordinates shutdown.
package server

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/graze/internal/loop"
	"github.com/tomz197/graze/internal/loop/config"
	"github.com/tomz197/graze/internal/scoreboard"
)

// Server tracks connected clients and the leaderboard they share.
type Server struct {
	mu           sync.RWMutex
	clients      map[int]*ClientHandle
	nextClientID int

	board  *scoreboard.Board
	logger *log.Logger

	shutdown     chan struct{}
	shutdownOnce sync.Once
}

// ClientHandle represents a client's registration with the server. It
// records the client's finished games on the leaderboard.
type ClientHandle struct {
	ID       int
	Username string // Display name for this client

	server  *Server
	tunings chan config.Tuning
	mu      sync.Mutex
	games   int
	best    int
}

// Compile-time check that ClientHandle can listen to a session.
var _ loop.ScoreListener = (*ClientHandle)(nil)

// NewServer creates a server recording into board. A nil logger discards.
func NewServer(board *scoreboard.Board, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Server{
		clients:      make(map[int]*ClientHandle),
		nextClientID: 1,
		board:        board,
		logger:       logger,
		shutdown:     make(chan struct{}),
	}
}

// RegisterClient registers a new client with the given username and returns its handle.
func (s *Server) RegisterClient(username string) *ClientHandle {
	s.mu.Lock()
	defer s.mu.Unlock()

	handle := &ClientHandle{
		ID:       s.nextClientID,
		Username: username,
		server:   s,
		tunings:  make(chan config.Tuning, 1),
	}
	s.nextClientID++
	s.clients[handle.ID] = handle
	s.logger.Info("client registered", "id", handle.ID, "user", username, "clients", len(s.clients))
	return handle
}

// UnregisterClient removes a client from the server.
func (s *Server) UnregisterClient(clientID int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if handle, ok := s.clients[clientID]; ok {
		delete(s.clients, clientID)
		s.logger.Info("client left", "id", clientID, "user", handle.Username,
			"games", handle.Games(), "best", handle.Best(), "clients", len(s.clients))
	}
}

// Clients returns the number of connected clients.
func (s *Server) Clients() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// PublishTuning hands t to every connected client. A client that has not
// picked up the previous tuning only sees the latest one.
func (s *Server) PublishTuning(t config.Tuning) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, h := range s.clients {
		select {
		case h.tunings <- t:
		default:
			select {
			case <-h.tunings:
			default:
			}
			select {
			case h.tunings <- t:
			default:
			}
		}
	}
	s.logger.Info("tuning published", "clients", len(s.clients), "bpm", t.Beat.BPM)
}

// Leaders returns the leaderboard, best first.
func (s *Server) Leaders() []scoreboard.Entry {
	return s.board.Top(0)
}

// Done is closed when Shutdown starts. Sessions watch it to say goodbye.
func (s *Server) Done() <-chan struct{} {
	return s.shutdown
}

// Shutdown notifies every connected client and waits for them to
// disconnect, up to timeout or until ctx is cancelled.
func (s *Server) Shutdown(ctx context.Context, timeout time.Duration) {
	s.shutdownOnce.Do(func() { close(s.shutdown) })
	s.logger.Info("notifying clients of shutdown", "clients", s.Clients())

	// Wait for all clients to disconnect, or timeout
	deadline := time.After(timeout)
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for s.Clients() > 0 {
		select {
		case <-ctx.Done():
			return
		case <-deadline:
			s.logger.Warn("shutdown timed out", "clients", s.Clients())
			return
		case <-ticker.C:
		}
	}
}

// ScoreChanged implements loop.ScoreListener.
func (h *ClientHandle) ScoreChanged(int) {}

// GameOver implements loop.ScoreListener by recording the final score.
func (h *ClientHandle) GameOver(final int) {
	h.mu.Lock()
	h.games++
	if final > h.best {
		h.best = final
	}
	h.mu.Unlock()

	rank := h.server.board.Record(h.Username, final)
	h.server.logger.Info("game over", "user", h.Username, "score", final, "rank", rank)
}

// Tunings delivers tunings published while the client is connected.
func (h *ClientHandle) Tunings() <-chan config.Tuning {
	return h.tunings
}

// Games returns how many games the client finished.
func (h *ClientHandle) Games() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.games
}

// Best returns the client's best final score.
func (h *ClientHandle) Best() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.best
}
