package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomz197/gemrush/internal/config"
	"github.com/tomz197/gemrush/internal/game"
	"github.com/tomz197/gemrush/internal/logging"
	"golang.org/x/term"
)

func main() {
	cfg, err := config.Load(config.GetEnv("GEMRUSH_CONFIG", config.DefaultConfigPath))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// The terminal belongs to the game, so logs only go to a file when one is set.
	logger, logCloser, err := logging.New(logging.Config{Level: cfg.Log.Level, File: cfg.Log.File}, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log: %v\n", err)
		os.Exit(1)
	}
	defer logCloser.Close()

	board, boardCloser, err := game.OpenLeaderboard(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open leaderboard: %v\n", err)
		os.Exit(1)
	}
	defer boardCloser.Close()

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	// Raw mode swallows ^C as a key; SIGTERM still ends the game cleanly.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	reader := bufio.NewReader(os.Stdin)
	opts := game.Options{
		Config: cfg,
		Board:  board,
		Logger: logger,
	}
	if err := game.Run(ctx, reader, os.Stdout, opts); err != nil {
		_ = term.Restore(fd, oldState)
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}
