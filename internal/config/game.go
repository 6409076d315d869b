package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned by Validate and Load for unusable settings.
var ErrInvalidConfig = errors.New("config: invalid")

// Storage backends for the leaderboard.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Defaults describe the standard three-level game.
const (
	DefaultConfigPath        = "gemrush.yaml"
	DefaultWarningThreshold  = 20.0
	DefaultCriticalThreshold = 10.0
	DefaultFallbackSeconds   = 30.0
	DefaultLevelCount        = 3
	DefaultGemsBase          = 10
	DefaultGemsPerLevel      = 5
	DefaultLeaderboardPath   = "leaderboard.json"
	DefaultHighScorePath     = "high_score.txt"
	DefaultLogLevel          = "info"
)

// DefaultLevelSeconds is the time allotted to each level in order.
var DefaultLevelSeconds = []float64{60, 50, 40}

// Timer holds the countdown thresholds in seconds.
// Keeping Critical below Warning is left to whoever writes the file.
type Timer struct {
	Warning  float64 `yaml:"warning"`
	Critical float64 `yaml:"critical"`
}

// Levels describes level durations and gem targets.
type Levels struct {
	Seconds         []float64 `yaml:"seconds"`          // Per-level durations
	FallbackSeconds float64   `yaml:"fallback_seconds"` // Used past the end of Seconds
	Count           int       `yaml:"count"`            // Levels to clear for victory
	GemsBase        int       `yaml:"gems_base"`
	GemsPerLevel    int       `yaml:"gems_per_level"`
}

// Leaderboard configures persistence of the score board.
type Leaderboard struct {
	Backend       string `yaml:"backend"` // json or sqlite
	Path          string `yaml:"path"`
	MaxEntries    int    `yaml:"max_entries"`
	HighScorePath string `yaml:"high_score_path"`
}

// Log configures the logger.
type Log struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Game is the full game configuration as read from gemrush.yaml.
type Game struct {
	Timer       Timer       `yaml:"timer"`
	Levels      Levels      `yaml:"levels"`
	Leaderboard Leaderboard `yaml:"leaderboard"`
	Log         Log         `yaml:"log"`
}

// Default returns the built-in configuration.
func Default() *Game {
	return &Game{
		Timer: Timer{
			Warning:  DefaultWarningThreshold,
			Critical: DefaultCriticalThreshold,
		},
		Levels: Levels{
			Seconds:         append([]float64(nil), DefaultLevelSeconds...),
			FallbackSeconds: DefaultFallbackSeconds,
			Count:           DefaultLevelCount,
			GemsBase:        DefaultGemsBase,
			GemsPerLevel:    DefaultGemsPerLevel,
		},
		Leaderboard: Leaderboard{
			Backend:       BackendJSON,
			Path:          DefaultLeaderboardPath,
			MaxEntries:    10,
			HighScorePath: DefaultHighScorePath,
		},
		Log: Log{
			Level: DefaultLogLevel,
		},
	}
}

// Load reads the YAML file at path over the defaults.
// A missing file is not an error; the defaults are returned.
func Load(path string) (*Game, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	// Fields absent from the file keep their default values.
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the game cannot run with.
func (g *Game) Validate() error {
	for i, s := range g.Levels.Seconds {
		if s <= 0 {
			return fmt.Errorf("%w: levels.seconds[%d] must be positive, got %v", ErrInvalidConfig, i, s)
		}
	}
	if g.Levels.FallbackSeconds <= 0 {
		return fmt.Errorf("%w: levels.fallback_seconds must be positive", ErrInvalidConfig)
	}
	if g.Levels.Count < 1 {
		return fmt.Errorf("%w: levels.count must be at least 1", ErrInvalidConfig)
	}
	if g.Levels.GemsBase < 1 || g.Levels.GemsPerLevel < 0 {
		return fmt.Errorf("%w: gem targets must be positive", ErrInvalidConfig)
	}
	if g.Leaderboard.MaxEntries < 1 {
		return fmt.Errorf("%w: leaderboard.max_entries must be at least 1", ErrInvalidConfig)
	}
	switch g.Leaderboard.Backend {
	case BackendJSON, BackendSQLite:
	default:
		return fmt.Errorf("%w: unknown leaderboard backend %q", ErrInvalidConfig, g.Leaderboard.Backend)
	}
	return nil
}

// LevelSeconds returns the duration of a 1-based level.
func (g *Game) LevelSeconds(level int) float64 {
	if level >= 1 && level <= len(g.Levels.Seconds) {
		return g.Levels.Seconds[level-1]
	}
	return g.Levels.FallbackSeconds
}

// GemsRequired returns how many gems clear a 1-based level.
func (g *Game) GemsRequired(level int) int {
	return g.Levels.GemsBase + (max(level, 1)-1)*g.Levels.GemsPerLevel
}
