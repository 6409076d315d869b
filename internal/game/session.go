// Package game runs a GemRush session: levels, scoring, the countdown and the
// frame loop that drives them.
package game

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/tomz197/gemrush/internal/config"
	"github.com/tomz197/gemrush/internal/draw"
	"github.com/tomz197/gemrush/internal/leaderboard"
	"github.com/tomz197/gemrush/internal/object"
	"github.com/tomz197/gemrush/internal/physics"
	"github.com/tomz197/gemrush/internal/timer"
)

// Phase is the current screen of a session.
type Phase int

const (
	PhaseStart    Phase = iota // Title screen
	PhasePlaying               // Active gameplay
	PhasePaused                // Gameplay frozen
	PhaseGameOver              // Timer ran out
	PhaseVictory               // Final level cleared
)

func (p Phase) String() string {
	switch p {
	case PhaseStart:
		return "start"
	case PhasePlaying:
		return "playing"
	case PhasePaused:
		return "paused"
	case PhaseGameOver:
		return "game over"
	case PhaseVictory:
		return "victory"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Ended reports whether the game is over, won or lost.
func (p Phase) Ended() bool {
	return p == PhaseGameOver || p == PhaseVictory
}

// Session is one player's game: it owns the countdown and the arena objects and
// records finished games on the shared leaderboard.
type Session struct {
	Phase           Phase
	Score           int
	Level           int
	GemsCollected   int
	GemsRequired    int
	Elapsed         float64 // Seconds of active play this game
	HighScore       int
	NewHighScore    bool // This game beat the previous high score
	LastRank        int  // Rank of the last victory, or leaderboard.NotRanked
	WouldRank       bool // A lost game scored well enough for the leaderboard
	ShowLeaderboard bool

	Timer     *timer.Countdown
	Player    *object.Player
	Gems      []*object.Gem
	Particles []object.Object

	alert     string
	alertTime float64

	cfg     *config.Game
	board   *leaderboard.Leaderboard
	logger  *log.Logger
	rng     *rand.Rand
	arena   object.Arena
	grid    *physics.Grid // Gem positions of the current layout
	toSpawn []object.Object
}

// Options configures a session and the loop that drives it. Every field is
// optional.
type Options struct {
	Config *config.Game
	Board  *leaderboard.Leaderboard
	Logger *log.Logger
	Rand   *rand.Rand

	Renderer     *lipgloss.Renderer // Colour profile of the client terminal
	TermSizeFunc draw.TermSizeFunc
	IdleTimeout  time.Duration // Disconnect after this long without input; 0 disables
}

// NewSession creates a session on the title screen with level 1 laid out.
func NewSession(opts Options) (*Session, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	s := &Session{
		Phase:    PhaseStart,
		LastRank: leaderboard.NotRanked,
		cfg:      cfg,
		board:    opts.Board,
		logger:   logger,
		rng:      rng,
		arena:    object.Arena{Width: ArenaWidth, Height: ArenaHeight},
		grid:     physics.NewGrid(ArenaWidth, ArenaHeight, gemSpacing),
	}

	t, err := timer.New(cfg.LevelSeconds(1), cfg.Timer.Warning, cfg.Timer.Critical, timerAlerts{s})
	if err != nil {
		return nil, fmt.Errorf("game: create timer: %w", err)
	}
	s.Timer = t
	s.loadHighScore()
	s.resetGame()
	return s, nil
}

// Arena returns the playfield dimensions.
func (s *Session) Arena() object.Arena {
	return s.arena
}

// Alert returns the banner currently flashed by a timer threshold, if any.
func (s *Session) Alert() string {
	if s.alertTime <= 0 {
		return ""
	}
	return s.alert
}

// Spawn queues an object to be added after the current update cycle.
// Implements object.Spawner.
func (s *Session) Spawn(obj object.Object) {
	s.toSpawn = append(s.toSpawn, obj)
}

// Update advances the session by dt seconds with this frame's input.
func (s *Session) Update(dt float64, in object.Input) {
	if dt < 0 {
		dt = 0
	}

	switch s.Phase {
	case PhaseStart:
		if in.Start() {
			s.Phase = PhasePlaying
			s.logger.Debug("game started")
		}
	case PhasePlaying:
		if in.Pause {
			s.Pause()
			return
		}
		s.updatePlaying(dt, in)
	case PhasePaused:
		if in.Pause || in.Start() {
			s.Resume()
		}
	case PhaseGameOver, PhaseVictory:
		if in.Leaderboard {
			s.ShowLeaderboard = !s.ShowLeaderboard
		}
		if in.Restart {
			s.Restart()
			return
		}
		s.updateParticles(dt, in)
	}
}

func (s *Session) updatePlaying(dt float64, in object.Input) {
	s.Elapsed += dt
	s.alertTime -= dt

	s.Timer.Tick(dt)
	if s.Phase != PhasePlaying {
		// Timed out this frame
		return
	}

	ctx := s.updateContext(dt, in)
	if _, err := s.Player.Update(ctx); err != nil {
		s.logger.Error("player update failed", "err", err)
	}

	kept := s.Gems[:0]
	for _, g := range s.Gems {
		if !g.Collected && s.Player.Touches(g) {
			s.Collect(g)
		}
		remove, _ := g.Update(ctx)
		if !remove {
			kept = append(kept, g)
		}
	}
	s.Gems = kept

	s.updateParticles(dt, in)

	if s.GemsCollected >= s.GemsRequired {
		s.completeLevel()
	}
}

func (s *Session) updateContext(dt float64, in object.Input) object.UpdateContext {
	return object.UpdateContext{
		Delta:   time.Duration(dt * float64(time.Second)),
		Input:   in,
		Arena:   s.arena,
		Spawner: s,
	}
}

// updateParticles advances effects and removes expired ones.
func (s *Session) updateParticles(dt float64, in object.Input) {
	ctx := s.updateContext(dt, in)
	kept := s.Particles[:0]
	for _, p := range s.Particles {
		remove, _ := p.Update(ctx)
		if remove {
			object.ReleaseObject(p)
			continue
		}
		kept = append(kept, p)
	}
	s.Particles = append(kept, s.toSpawn...)
	s.toSpawn = s.toSpawn[:0]
}

// Collect awards a gem: score, progress towards the level target and bonus time.
func (s *Session) Collect(g *object.Gem) {
	if g.Collected {
		return
	}
	g.Collected = true
	s.Score += g.Kind.Value()
	s.GemsCollected++
	s.Timer.AddTime(g.Kind.TimeBonus())
	object.SpawnBurst(g.X, g.Y, CollectBurstParticles, g.Kind.Color(), s)

	s.logger.Debug("gem collected",
		"kind", g.Kind, "score", s.Score, "gems", s.GemsCollected, "required", s.GemsRequired)
}

// completeLevel advances to the next level or ends the game with a victory.
func (s *Session) completeLevel() {
	if s.Level < s.cfg.Levels.Count {
		s.startLevel(s.Level + 1)
		s.logger.Info("level complete", "level", s.Level-1, "score", s.Score)
		return
	}
	s.win()
}

// startLevel lays out a level and restarts the countdown with its duration.
func (s *Session) startLevel(level int) {
	s.Level = level
	s.GemsCollected = 0
	s.GemsRequired = s.cfg.GemsRequired(level)
	s.alertTime = 0

	if err := s.Timer.ResetTo(s.cfg.LevelSeconds(level)); err != nil {
		// Validated config makes this unreachable; keep the previous duration.
		s.logger.Error("invalid level duration", "level", level, "err", err)
		s.Timer.Reset()
	}

	s.Player.MoveTo(s.arena.Width/2, s.arena.Height/2)
	s.placeGems(s.GemsRequired)
}

// placeGems scatters n random gems, keeping them off the player's start cell
// and apart from each other. If the arena is too crowded to honour the spacing
// the remaining gems are placed anywhere.
func (s *Session) placeGems(n int) {
	s.Gems = s.Gems[:0]
	s.grid.Clear()

	for attempts := 0; len(s.Gems) < n; attempts++ {
		x := gemMargin + s.rng.Float64()*(s.arena.Width-2*gemMargin)
		y := gemMargin + s.rng.Float64()*(s.arena.Height-2*gemMargin)
		g := object.NewGem(object.RandomGemKind(s.rng), x, y)
		if s.Player.Touches(g) {
			continue
		}
		if attempts < n*maxPlacementTries && s.crowded(x, y) {
			continue
		}
		s.grid.Insert(x, y, len(s.Gems))
		s.Gems = append(s.Gems, g)
	}
}

// crowded reports whether a gem already lies within gemSpacing of (x, y).
func (s *Session) crowded(x, y float64) bool {
	found := false
	s.grid.QueryAround(x, y, func(i int) bool {
		g := s.Gems[i]
		found = physics.DistanceSquared(x, y, g.X, g.Y) < gemSpacing*gemSpacing
		return found
	})
	return found
}

func (s *Session) win() {
	s.Phase = PhaseVictory
	s.Timer.Pause()
	if s.board != nil {
		s.LastRank = s.board.AddEntry(s.Score, s.Elapsed, s.Level)
	}
	s.logger.Info("victory", "score", s.Score, "time", s.Elapsed, "rank", s.LastRank)
	s.recordHighScore()
}

func (s *Session) lose() {
	s.Phase = PhaseGameOver
	s.WouldRank = s.board != nil && s.Score > 0 && s.board.Qualifies(s.Score, s.Elapsed)
	s.logger.Info("time up", "score", s.Score, "level", s.Level, "time", s.Elapsed, "wouldRank", s.WouldRank)
	s.recordHighScore()
}

// Pause freezes gameplay and the countdown.
func (s *Session) Pause() {
	if s.Phase != PhasePlaying {
		return
	}
	s.Phase = PhasePaused
	s.Timer.Pause()
}

// Resume continues a paused game.
func (s *Session) Resume() {
	if s.Phase != PhasePaused {
		return
	}
	s.Phase = PhasePlaying
	s.Timer.Resume()
}

// Restart begins a new game straight away.
func (s *Session) Restart() {
	s.resetGame()
	s.Phase = PhasePlaying
	s.logger.Debug("game restarted")
}

func (s *Session) resetGame() {
	s.Score = 0
	s.Elapsed = 0
	s.NewHighScore = false
	s.WouldRank = false
	s.ShowLeaderboard = false
	s.LastRank = leaderboard.NotRanked
	for _, p := range s.Particles {
		object.ReleaseObject(p)
	}
	s.Particles = s.Particles[:0]
	s.toSpawn = s.toSpawn[:0]
	if s.Player == nil {
		s.Player = object.NewPlayer(s.arena.Width/2, s.arena.Height/2)
	}
	s.startLevel(1)
}

func (s *Session) loadHighScore() {
	if s.board != nil {
		s.HighScore = s.board.HighScore()
	}
	path := s.cfg.Leaderboard.HighScorePath
	if path == "" {
		return
	}
	saved, err := leaderboard.LoadHighScore(path)
	if err != nil {
		s.logger.Warn("high score unreadable, ignoring", "path", path, "err", err)
		return
	}
	s.HighScore = max(s.HighScore, saved)
}

func (s *Session) recordHighScore() {
	if s.Score <= s.HighScore {
		return
	}
	s.HighScore = s.Score
	s.NewHighScore = true
	path := s.cfg.Leaderboard.HighScorePath
	if path == "" {
		return
	}
	if err := leaderboard.SaveHighScore(path, s.HighScore); err != nil {
		s.logger.Warn("high score not saved", "path", path, "err", err)
	}
}

// timerAlerts turns countdown notifications into session changes.
type timerAlerts struct {
	s *Session
}

func (a timerAlerts) OnWarning() {
	a.s.alert, a.s.alertTime = "HURRY UP!", AlertSeconds
	a.s.logger.Debug("timer warning", "remaining", a.s.Timer.Remaining())
}

func (a timerAlerts) OnCritical() {
	a.s.alert, a.s.alertTime = "TIME IS ALMOST UP!", AlertSeconds
	a.s.logger.Debug("timer critical", "remaining", a.s.Timer.Remaining())
}

func (a timerAlerts) OnTimeout() {
	a.s.lose()
}
