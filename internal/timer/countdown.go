// Package timer provides the per-level countdown with threshold notifications.
package timer

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidDuration is returned when a countdown is given a non-positive duration.
var ErrInvalidDuration = errors.New("timer: duration must be positive")

// State is the lifecycle phase of a Countdown.
type State int

const (
	StateRunning State = iota
	StatePaused
	StateExpired
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateExpired:
		return "expired"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Zone classifies the remaining time against the thresholds (for colouring).
type Zone int

const (
	ZoneNormal Zone = iota
	ZoneWarning
	ZoneCritical
)

// Countdown tracks the remaining time of a level.
// It has no internal clock: the owner advances it with Tick once per frame.
// Not safe for concurrent use.
type Countdown struct {
	baseline  float64 // Duration supplied at construction
	total     float64 // Duration of the most recent reset (percentage denominator)
	remaining float64

	warningThreshold  float64
	criticalThreshold float64

	active        bool
	paused        bool
	warningFired  bool
	criticalFired bool

	pulse    float64 // Phase for the pulsing display, radians
	notifier Notifier
}

// New creates a running countdown of duration seconds.
// Thresholds are used as given; keeping critical below warning is up to the caller.
func New(duration, warning, critical float64, n Notifier) (*Countdown, error) {
	if !validDuration(duration) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDuration, duration)
	}
	if n == nil {
		n = nopNotifier{}
	}
	return &Countdown{
		baseline:          duration,
		total:             duration,
		remaining:         duration,
		warningThreshold:  warning,
		criticalThreshold: critical,
		active:            true,
		notifier:          n,
	}, nil
}

func validDuration(d float64) bool {
	return d > 0 && !math.IsNaN(d) && !math.IsInf(d, 0)
}

// Tick advances the countdown by dt seconds.
// Negative or NaN deltas are ignored; a paused or expired countdown does not move.
// Notifications run synchronously and must not call Tick.
func (c *Countdown) Tick(dt float64) {
	if !c.active || c.paused {
		return
	}
	if dt < 0 || math.IsNaN(dt) {
		return
	}

	c.remaining -= dt
	if !math.IsInf(dt, 1) {
		c.pulse = math.Mod(c.pulse+dt*5, 2*math.Pi)
	}

	if !c.warningFired && c.remaining <= c.warningThreshold {
		c.warningFired = true
		c.notifier.OnWarning()
	}
	if !c.criticalFired && c.remaining <= c.criticalThreshold {
		c.criticalFired = true
		c.notifier.OnCritical()
	}
	if c.remaining <= 0 {
		c.remaining = 0
		c.active = false
		c.notifier.OnTimeout()
	}
}

// AddTime adjusts the remaining time by seconds (negative for a penalty).
// Thresholds that are now above the remaining time are re-armed.
// It never fires notifications and never changes the state.
func (c *Countdown) AddTime(seconds float64) {
	if math.IsNaN(seconds) {
		return
	}
	c.remaining += seconds
	if c.remaining > c.warningThreshold {
		c.warningFired = false
	}
	if c.remaining > c.criticalThreshold {
		c.criticalFired = false
	}
}

// Reset restarts the countdown from its construction duration.
func (c *Countdown) Reset() {
	c.restart(c.baseline)
}

// ResetTo restarts the countdown with a new duration, which also becomes the
// denominator for PercentRemaining. An invalid duration leaves the countdown untouched.
func (c *Countdown) ResetTo(duration float64) error {
	if !validDuration(duration) {
		return fmt.Errorf("%w: %v", ErrInvalidDuration, duration)
	}
	c.restart(duration)
	return nil
}

func (c *Countdown) restart(duration float64) {
	c.total = duration
	c.remaining = duration
	c.active = true
	c.paused = false
	c.warningFired = false
	c.criticalFired = false
	c.pulse = 0
}

// Pause stops a running countdown. No effect once expired.
func (c *Countdown) Pause() {
	if c.active {
		c.paused = true
	}
}

// Resume continues a paused countdown.
func (c *Countdown) Resume() {
	c.paused = false
}

// State reports the current lifecycle phase.
func (c *Countdown) State() State {
	switch {
	case !c.active:
		return StateExpired
	case c.paused:
		return StatePaused
	default:
		return StateRunning
	}
}

func (c *Countdown) Remaining() float64 { return c.remaining }
func (c *Countdown) Total() float64     { return c.total }
func (c *Countdown) IsActive() bool     { return c.active }
func (c *Countdown) IsPaused() bool     { return c.paused }
func (c *Countdown) WarningFired() bool { return c.warningFired }
func (c *Countdown) CriticalFired() bool {
	return c.criticalFired
}

// PercentRemaining returns the fill ratio of the timer bar in [0, 1].
func (c *Countdown) PercentRemaining() float64 {
	return math.Max(0, math.Min(1, c.remaining/c.total))
}

// FormattedTime renders the whole seconds left as MM:SS.
// Minutes are not wrapped into hours.
func (c *Countdown) FormattedTime() string {
	return FormatSeconds(c.remaining)
}

// FormatSeconds renders floor(max(0, s)) as MM:SS, capped at math.MaxInt32
// seconds. NaN renders as 00:00.
func FormatSeconds(s float64) string {
	if math.IsNaN(s) {
		s = 0
	}
	whole := int(math.Floor(math.Min(math.Max(0, s), math.MaxInt32)))
	return fmt.Sprintf("%02d:%02d", whole/60, whole%60)
}

// Zone reports which threshold band the remaining time is in.
func (c *Countdown) Zone() Zone {
	switch {
	case c.remaining <= c.criticalThreshold:
		return ZoneCritical
	case c.remaining <= c.warningThreshold:
		return ZoneWarning
	default:
		return ZoneNormal
	}
}

// PulseScale returns a display scale factor that pulses faster and stronger
// as the countdown nears zero. 1.0 in the normal zone.
func (c *Countdown) PulseScale() float64 {
	switch c.Zone() {
	case ZoneCritical:
		return 1.0 + 0.2*math.Abs(math.Sin(c.pulse*2))
	case ZoneWarning:
		return 1.0 + 0.1*math.Abs(math.Sin(c.pulse))
	default:
		return 1.0
	}
}
