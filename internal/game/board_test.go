package game

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tomz197/gemrush/internal/config"
)

func TestOpenLeaderboard(t *testing.T) {
	for _, backend := range []string{config.BackendJSON, config.BackendSQLite} {
		t.Run(backend, func(t *testing.T) {
			cfg := config.Default()
			cfg.Leaderboard.Backend = backend
			cfg.Leaderboard.Path = filepath.Join(t.TempDir(), "board."+backend)
			cfg.Leaderboard.MaxEntries = 2

			board, closer, err := OpenLeaderboard(cfg, log.New(io.Discard))
			require.NoError(t, err)
			board.AddEntry(10, 30, 3)
			board.AddEntry(20, 30, 3)
			board.AddEntry(30, 30, 3)
			require.NoError(t, closer.Close())

			reopened, closer, err := OpenLeaderboard(cfg, log.New(io.Discard))
			require.NoError(t, err)
			defer closer.Close()
			assert.Equal(t, 2, reopened.Len())
			assert.Equal(t, 30, reopened.HighScore())
		})
	}
}

func TestOpenLeaderboard_UnknownBackend(t *testing.T) {
	cfg := config.Default()
	cfg.Leaderboard.Backend = "redis"

	_, _, err := OpenLeaderboard(cfg, log.New(io.Discard))

	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}
