package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/tomz197/graze/internal/config"
	"github.com/tomz197/graze/internal/draw"
	"github.com/tomz197/graze/internal/loop"
	tuningcfg "github.com/tomz197/graze/internal/loop/config"
	"github.com/tomz197/graze/internal/loop/server"
	"github.com/tomz197/graze/internal/scoreboard"
	"github.com/tomz197/graze/internal/tcellui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}

	logger, closeLog, err := newLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	tuning := tuningcfg.Default()
	var tunings <-chan tuningcfg.Tuning
	if path := config.GetEnv("GRAZE_TUNING", ""); path != "" {
		if tuning, err = tuningcfg.Load(path); err != nil {
			return err
		}
		w, err := tuningcfg.Watch(path)
		if err != nil {
			return err
		}
		defer w.Close()
		go func() {
			for err := range w.Errors {
				logger.Warn("tuning reload failed", "err", err)
			}
		}()
		tunings = w.Tunings
	}

	seed, err := config.GetEnvInt("GRAZE_SEED", 0)
	if err != nil {
		return err
	}
	if seed == 0 {
		seed = int(time.Now().UnixNano())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// A local game still keeps a leaderboard for the session.
	srv := server.NewServer(scoreboard.New(tuningcfg.LeaderboardSize), logger)
	handle := srv.RegisterClient(config.GetEnv("USER", "player"))
	defer srv.UnregisterClient(handle.ID)

	fe, closeFrontend, err := openFrontend(config.GetEnv("GRAZE_FRONTEND", "ansi"))
	if err != nil {
		return err
	}
	defer closeFrontend()

	logger.Info("game started", "seed", seed, "bpm", tuning.Beat.BPM)
	return loop.Run(ctx, fe, loop.Options{
		Tuning:   tuning,
		Tunings:  tunings,
		Rand:     rand.New(rand.NewSource(int64(seed))),
		Listener: handle,
		Leaders:  srv.Leaders,
		Logger:   logger,
	})
}

// newLogger logs to GRAZE_LOG_FILE, or nowhere when it is unset, since
// stdout belongs to the game.
func newLogger() (*log.Logger, func(), error) {
	var w io.Writer = io.Discard
	closeFn := func() {}
	if path := config.GetEnv("GRAZE_LOG_FILE", ""); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w = f
		closeFn = func() { _ = f.Close() }
	}

	logger, err := config.NewLogger(w, config.GetEnv("GRAZE_LOG_LEVEL", ""), "graze")
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	return logger, closeFn, nil
}

// openFrontend sets up the named terminal frontend and returns a function
// restoring the terminal.
func openFrontend(name string) (loop.Frontend, func(), error) {
	switch name {
	case "tcell":
		s, err := tcellui.NewTerminal()
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil

	case "ansi":
		fd := int(os.Stdin.Fd())
		oldState, err := term.MakeRaw(fd)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to enable raw mode: %w", err)
		}
		t := draw.NewTerminal(os.Stdin, os.Stdout, nil)
		if err := t.Open(); err != nil {
			_ = term.Restore(fd, oldState)
			return nil, nil, err
		}
		return t, func() {
			_ = t.Close()
			_ = term.Restore(fd, oldState)
		}, nil
	}
	return nil, nil, errors.New("unknown GRAZE_FRONTEND " + name + ", want ansi or tcell")
}
