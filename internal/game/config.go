package game

import "time"

// Game tuning constants. Level durations, thresholds and gem targets come from
// config.Game; these are the fixed presentation and pacing parameters.

// Frame pacing
const (
	TargetFPS       = 60
	TargetFrameTime = time.Second / TargetFPS
	MaxFrameDelta   = 250 * time.Millisecond // Longer stalls are not charged to the player
)

// Arena in logical units (columns × half-rows)
const (
	ArenaWidth  = 60
	ArenaHeight = 40
	gemMargin   = 3.0 // Keep gems off the walls
	gemSpacing  = 3.0 // Minimum distance between gems in a layout

	maxPlacementTries = 50 // Per gem, before spacing is given up
)

// Effects
const (
	CollectBurstParticles = 30
	AlertSeconds          = 1.5 // How long the HURRY/CRITICAL banner stays up
)

// Display
const (
	hudRows         = 3 // Rows above the arena
	footerRows      = 2 // Rows below the arena
	timerBarWidth   = 30
	leaderboardRows = 10
)

// Connection lifecycle
const (
	ShutdownNoticeSeconds = 3.0 // Seconds the shutdown message stays up before the loop exits
	idleWarnFraction      = 0.75
)
