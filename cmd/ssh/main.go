package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"github.com/tomz197/gemrush/internal/config"
	"github.com/tomz197/gemrush/internal/draw"
	"github.com/tomz197/gemrush/internal/game"
	"github.com/tomz197/gemrush/internal/leaderboard"
	glog "github.com/tomz197/gemrush/internal/logging"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
	defaultIdleSeconds = 120
)

// server runs one independent game per SSH connection over a shared leaderboard.
type server struct {
	cfg         *config.Game
	board       *leaderboard.Leaderboard
	logger      *log.Logger
	idleTimeout time.Duration

	ctx      context.Context // Cancelled on shutdown; sessions show a notice and exit
	sessions sync.WaitGroup
}

func main() {
	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	idleSeconds := config.GetEnvInt("SSH_IDLE_SECONDS", defaultIdleSeconds)

	cfg, err := config.Load(config.GetEnv("GEMRUSH_CONFIG", config.DefaultConfigPath))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, logCloser, err := glog.New(glog.Config{Level: cfg.Log.Level, File: cfg.Log.File, Prefix: "ssh"}, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log: %v\n", err)
		os.Exit(1)
	}
	defer logCloser.Close()

	workingDir, workErr := os.Getwd()
	if workErr != nil {
		logger.Warn("failed to get working directory", "err", workErr)
	}
	logger.Info("SSH config", "host", host, "port", port, "hostKeyPath", hostKeyPath, "workingDir", workingDir)

	board, boardCloser, err := game.OpenLeaderboard(cfg, logger)
	if err != nil {
		logger.Fatal("failed to open leaderboard", "err", err)
	}
	defer boardCloser.Close()

	ctx, cancelSessions := context.WithCancel(context.Background())
	defer cancelSessions()

	gs := &server{
		cfg:         cfg,
		board:       board,
		logger:      logger,
		idleTimeout: time.Duration(idleSeconds) * time.Second,
		ctx:         ctx,
	}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			gs.gameMiddleware,
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

	// Tell connected players and give them time to read the notice
	cancelSessions()
	if !gs.waitSessions(time.Duration(game.ShutdownNoticeSeconds*float64(time.Second)) + 2*time.Second) {
		logger.Warn("sessions still running, closing anyway")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "err", err)
	}
}

// gameMiddleware handles SSH sessions and runs a game for each.
func (gs *server) gameMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		gs.sessions.Add(1)
		defer gs.sessions.Done()

		logger := gs.logger.With("user", sess.User(), "remote", sess.RemoteAddr().String())
		logger.Info("New game session", "terminal", pty.Term, "width", pty.Window.Width, "height", pty.Window.Height)

		// Create a terminal size tracker that updates on window changes
		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)

		// Listen for window size changes in a goroutine
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		renderer := lipgloss.NewRenderer(sess)
		renderer.SetColorProfile(draw.ColorProfile(pty.Term, sess.Environ()))

		opts := game.Options{
			Config:       gs.cfg,
			Board:        gs.board,
			Logger:       logger,
			Renderer:     renderer,
			TermSizeFunc: sizeTracker.getSize,
			IdleTimeout:  gs.idleTimeout,
		}
		if err := game.Run(gs.ctx, bufio.NewReader(sess), sess, opts); err != nil {
			logger.Error("Game error", "err", err)
		}

		logger.Info("Session ended")
		next(sess)
	}
}

// waitSessions waits for running games to end, up to timeout.
func (gs *server) waitSessions(timeout time.Duration) bool {
	finished := make(chan struct{})
	go func() {
		gs.sessions.Wait()
		close(finished)
	}()
	select {
	case <-finished:
		return true
	case <-time.After(timeout):
		return false
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
