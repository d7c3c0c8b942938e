package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"

	"github.com/tomz197/graze/internal/config"
	"github.com/tomz197/graze/internal/draw"
	"github.com/tomz197/graze/internal/loop"
	tuningcfg "github.com/tomz197/graze/internal/loop/config"
	"github.com/tomz197/graze/internal/loop/server"
	"github.com/tomz197/graze/internal/scoreboard"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"

	shutdownGrace   = 3 * time.Second
	shutdownTimeout = 15 * time.Second
)

// game holds what every SSH session shares.
type game struct {
	srv         *server.Server
	logger      *log.Logger
	idleTimeout time.Duration

	mu     sync.RWMutex
	tuning tuningcfg.Tuning
}

func (g *game) currentTuning() tuningcfg.Tuning {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.tuning
}

func (g *game) setTuning(t tuningcfg.Tuning) {
	g.mu.Lock()
	g.tuning = t
	g.mu.Unlock()
	g.srv.PublishTuning(t)
}

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger, err := config.NewLogger(os.Stderr, config.GetEnv("GRAZE_LOG_LEVEL", ""), "graze")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	idleTimeout, err := config.GetEnvDuration("SSH_IDLE_TIMEOUT", 5*time.Minute)
	if err != nil {
		logger.Fatal("invalid idle timeout", "err", err)
	}
	logger.Info("SSH config", "host", host, "port", port, "hostKeyPath", hostKeyPath, "idleTimeout", idleTimeout)

	g := &game{
		srv:         server.NewServer(scoreboard.New(tuningcfg.LeaderboardSize), logger),
		logger:      logger,
		idleTimeout: idleTimeout,
		tuning:      tuningcfg.Default(),
	}

	if path := config.GetEnv("GRAZE_TUNING", ""); path != "" {
		t, err := tuningcfg.Load(path)
		if err != nil {
			logger.Fatal("failed to load tuning", "err", err)
		}
		g.tuning = t

		w, err := tuningcfg.Watch(path)
		if err != nil {
			logger.Fatal("failed to watch tuning", "err", err)
		}
		defer w.Close()
		go func() {
			for {
				select {
				case t, ok := <-w.Tunings:
					if !ok {
						return
					}
					g.setTuning(t)
				case err, ok := <-w.Errors:
					if !ok {
						return
					}
					logger.Warn("tuning reload failed", "err", err)
				}
			}
		}()
	}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			g.middleware,
			activeterm.Middleware(),
			logging.StructuredMiddlewareWithLogger(logger, log.InfoLevel),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}

	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("Starting SSH server", "addr", net.JoinHostPort(host, port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout+5*time.Second)
	defer cancel()

	// Tell connected players and give them a moment before closing connections.
	g.srv.Shutdown(ctx, shutdownTimeout)

	if err := s.Shutdown(ctx); err != nil {
		logger.Fatal("shutdown error", "err", err)
	}
}

// middleware runs one game per SSH session.
func (g *game) middleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		logger := g.logger.With("user", sess.User(), "remote", sess.RemoteAddr().String())
		logger.Info("New game session", "terminal", pty.Term, "size", fmt.Sprintf("%dx%d", pty.Window.Width, pty.Window.Height))

		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		handle := g.srv.RegisterClient(sess.User())
		defer g.srv.UnregisterClient(handle.ID)

		t := draw.NewTerminal(sess, sess, sizeTracker.getSize)
		if err := t.Open(); err != nil {
			logger.Error("terminal setup failed", "err", err)
			return
		}

		err := loop.Run(sess.Context(), t, loop.Options{
			Tuning:        g.currentTuning(),
			Tunings:       handle.Tunings(),
			Rand:          rand.New(rand.NewSource(time.Now().UnixNano() + int64(handle.ID))),
			Listener:      handle,
			Leaders:       g.srv.Leaders,
			Logger:        logger,
			IdleTimeout:   g.idleTimeout,
			Shutdown:      g.srv.Done(),
			ShutdownGrace: shutdownGrace,
		})
		_ = t.Close()
		if err != nil {
			logger.Error("game error", "err", err)
		}

		logger.Info("Session ended", "games", handle.Games(), "best", handle.Best())
		next(sess)
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
