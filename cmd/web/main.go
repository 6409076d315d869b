package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomz197/gemrush/internal/config"
	"github.com/tomz197/gemrush/internal/game"
	"github.com/tomz197/gemrush/internal/logging"
	"github.com/tomz197/gemrush/internal/web"
)

const (
	defaultHost = "0.0.0.0"
	defaultPort = "8080"
)

func main() {
	host := config.GetEnv("WEB_HOST", defaultHost)
	port := config.GetEnv("WEB_PORT", defaultPort)
	sshHost := config.GetEnv("SSH_DISPLAY_HOST", "your-server.com")
	sshPort := config.GetEnv("SSH_PORT", "2222")

	cfg, err := config.Load(config.GetEnv("GEMRUSH_CONFIG", config.DefaultConfigPath))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, logCloser, err := logging.New(logging.Config{Level: cfg.Log.Level, File: cfg.Log.File, Prefix: "web"}, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log: %v\n", err)
		os.Exit(1)
	}
	defer logCloser.Close()

	board, boardCloser, err := game.OpenLeaderboard(cfg, logger)
	if err != nil {
		logger.Fatal("failed to open leaderboard", "err", err)
	}
	defer boardCloser.Close()

	srv := web.NewServer(board,
		web.WithLogger(logger),
		web.WithSSHAddr(fmt.Sprintf("%s -p %s", sshHost, sshPort)),
	)
	httpServer := &http.Server{
		Addr:              net.JoinHostPort(host, port),
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("Starting web server", "url", "http://"+httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "err", err)
	}
}
