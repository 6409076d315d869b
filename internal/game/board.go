package game

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/tomz197/gemrush/internal/config"
	"github.com/tomz197/gemrush/internal/leaderboard"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// OpenLeaderboard opens the configured store and loads the board from it.
// The closer releases the store (the SQLite handle) once no session uses it.
func OpenLeaderboard(cfg *config.Game, logger *log.Logger) (*leaderboard.Leaderboard, io.Closer, error) {
	lc := cfg.Leaderboard

	var (
		store  leaderboard.Store
		closer io.Closer = nopCloser{}
	)
	switch lc.Backend {
	case config.BackendSQLite:
		db, err := leaderboard.OpenSQLite(lc.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("game: open leaderboard: %w", err)
		}
		store, closer = db, db
	case config.BackendJSON, "":
		store = leaderboard.NewFileStore(lc.Path)
	default:
		return nil, nil, fmt.Errorf("%w: unknown leaderboard backend %q", config.ErrInvalidConfig, lc.Backend)
	}

	board := leaderboard.New(store,
		leaderboard.WithMaxEntries(lc.MaxEntries),
		leaderboard.WithLogger(logger),
	)
	logger.Info("leaderboard ready", "backend", lc.Backend, "path", lc.Path, "entries", board.Len())
	return board, closer, nil
}
