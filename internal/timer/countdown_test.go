package timer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder counts notifications and remembers their order.
type recorder struct {
	events []string
}

func (r *recorder) OnWarning()  { r.events = append(r.events, "warning") }
func (r *recorder) OnCritical() { r.events = append(r.events, "critical") }
func (r *recorder) OnTimeout()  { r.events = append(r.events, "timeout") }

func (r *recorder) count(name string) int {
	n := 0
	for _, e := range r.events {
		if e == name {
			n++
		}
	}
	return n
}

func newTestCountdown(t *testing.T, duration float64) (*Countdown, *recorder) {
	t.Helper()
	rec := &recorder{}
	c, err := New(duration, 20, 10, rec)
	require.NoError(t, err)
	return c, rec
}

func TestNew_StartsRunning(t *testing.T) {
	c, rec := newTestCountdown(t, 60)

	assert.Equal(t, StateRunning, c.State())
	assert.Equal(t, 60.0, c.Remaining())
	assert.Equal(t, 60.0, c.Total())
	assert.True(t, c.IsActive())
	assert.Empty(t, rec.events)
}

func TestNew_RejectsInvalidDuration(t *testing.T) {
	for _, d := range []float64{0, -5, math.NaN(), math.Inf(1)} {
		c, err := New(d, 20, 10, nil)
		require.ErrorIs(t, err, ErrInvalidDuration)
		require.Nil(t, c)
	}
}

func TestTick_FiresThresholdsInOrder(t *testing.T) {
	c, rec := newTestCountdown(t, 30)

	c.Tick(5) // 25
	assert.Empty(t, rec.events)

	c.Tick(5) // 20: at-or-below counts as a crossing
	assert.Equal(t, []string{"warning"}, rec.events)

	c.Tick(10) // 10
	assert.Equal(t, []string{"warning", "critical"}, rec.events)

	c.Tick(10) // 0
	assert.Equal(t, []string{"warning", "critical", "timeout"}, rec.events)
	assert.Equal(t, StateExpired, c.State())
	assert.Equal(t, 0.0, c.Remaining())
}

func TestTick_SingleLargeStepFiresAllInOrder(t *testing.T) {
	c, rec := newTestCountdown(t, 30)

	c.Tick(45)

	assert.Equal(t, []string{"warning", "critical", "timeout"}, rec.events)
	assert.Equal(t, 0.0, c.Remaining())
}

func TestTick_WarningFiresOncePerDescent(t *testing.T) {
	c, rec := newTestCountdown(t, 30)

	for i := 0; i < 100; i++ {
		c.Tick(0.1) // down to 20
	}
	for i := 0; i < 50; i++ {
		c.Tick(0.1) // down to 15
	}
	assert.Equal(t, 1, rec.count("warning"))

	// Bonus time lifts it back above the warning threshold and re-arms it.
	c.AddTime(10) // 25
	assert.False(t, c.WarningFired())
	assert.Equal(t, 1, rec.count("warning"), "AddTime must not notify")

	c.Tick(6) // 19
	assert.Equal(t, 2, rec.count("warning"))
}

func TestAddTime_BelowThresholdDoesNotRearm(t *testing.T) {
	c, rec := newTestCountdown(t, 30)
	c.Tick(12) // 18, warning fired

	c.AddTime(1) // 19, still below warning
	assert.True(t, c.WarningFired())

	c.Tick(1)
	assert.Equal(t, 1, rec.count("warning"))
}

func TestAddTime_ReArmsCriticalOnly(t *testing.T) {
	c, rec := newTestCountdown(t, 30)
	c.Tick(22) // 8: warning and critical fired

	c.AddTime(5) // 13: above critical, below warning
	assert.True(t, c.WarningFired())
	assert.False(t, c.CriticalFired())

	c.Tick(4) // 9
	assert.Equal(t, 1, rec.count("warning"))
	assert.Equal(t, 2, rec.count("critical"))
}

func TestAddTime_PenaltyDoesNotExpire(t *testing.T) {
	c, rec := newTestCountdown(t, 30)

	c.AddTime(-40)

	assert.Equal(t, StateRunning, c.State())
	assert.Empty(t, rec.events)

	c.Tick(0)
	assert.Equal(t, []string{"warning", "critical", "timeout"}, rec.events)
	assert.Equal(t, 0.0, c.Remaining())
}

func TestTick_ExpiryIsIdempotent(t *testing.T) {
	c, rec := newTestCountdown(t, 5)
	c.Tick(6)

	for i := 0; i < 10; i++ {
		c.Tick(1)
	}

	assert.Equal(t, 1, rec.count("timeout"))
	assert.Equal(t, 0.0, c.Remaining())
	assert.Equal(t, StateExpired, c.State())
}

func TestTick_IgnoresNegativeAndNaN(t *testing.T) {
	c, rec := newTestCountdown(t, 30)

	c.Tick(-5)
	c.Tick(math.NaN())

	assert.Equal(t, 30.0, c.Remaining())
	assert.Empty(t, rec.events)
}

func TestTick_InfiniteStepExpiresWithFinitePulse(t *testing.T) {
	c, rec := newTestCountdown(t, 30)

	c.Tick(math.Inf(1))

	assert.Equal(t, StateExpired, c.State())
	assert.Equal(t, 0.0, c.Remaining())
	assert.Equal(t, []string{"warning", "critical", "timeout"}, rec.events)
	assert.False(t, math.IsNaN(c.PulseScale()))
	assert.InDelta(t, 1.0, c.PulseScale(), 0.2)
}

func TestPause_FreezesRemaining(t *testing.T) {
	c, rec := newTestCountdown(t, 30)
	c.Pause()
	assert.Equal(t, StatePaused, c.State())

	c.Tick(25)
	assert.Equal(t, 30.0, c.Remaining())
	assert.Empty(t, rec.events)

	c.Resume()
	assert.Equal(t, StateRunning, c.State())
	c.Tick(15)
	assert.Equal(t, 15.0, c.Remaining())
	assert.Equal(t, []string{"warning"}, rec.events)
}

func TestPause_NoEffectWhenExpired(t *testing.T) {
	c, _ := newTestCountdown(t, 1)
	c.Tick(2)

	c.Pause()
	assert.Equal(t, StateExpired, c.State())
}

func TestReset_RestoresInvariants(t *testing.T) {
	c, rec := newTestCountdown(t, 30)
	c.Pause()
	c.Tick(1)
	c.Resume()
	c.Tick(31)
	require.Equal(t, StateExpired, c.State())

	require.NoError(t, c.ResetTo(45))

	assert.Equal(t, StateRunning, c.State())
	assert.Equal(t, 45.0, c.Remaining())
	assert.Equal(t, 45.0, c.Total())
	assert.True(t, c.IsActive())
	assert.False(t, c.IsPaused())
	assert.False(t, c.WarningFired())
	assert.False(t, c.CriticalFired())

	c.Tick(30)
	assert.Equal(t, 2, rec.count("warning"))
}

func TestReset_UsesConstructionBaseline(t *testing.T) {
	c, _ := newTestCountdown(t, 60)
	require.NoError(t, c.ResetTo(40))

	c.Reset()

	assert.Equal(t, 60.0, c.Remaining())
	assert.Equal(t, 60.0, c.Total())
}

func TestResetTo_InvalidLeavesStateUntouched(t *testing.T) {
	c, _ := newTestCountdown(t, 30)
	c.Tick(12)

	err := c.ResetTo(0)

	require.ErrorIs(t, err, ErrInvalidDuration)
	assert.Equal(t, 18.0, c.Remaining())
	assert.True(t, c.WarningFired())
}

func TestPercentRemaining(t *testing.T) {
	c, _ := newTestCountdown(t, 60)
	require.NoError(t, c.ResetTo(40))

	c.Tick(10)
	assert.InDelta(t, 0.75, c.PercentRemaining(), 1e-9)

	c.AddTime(100)
	assert.Equal(t, 1.0, c.PercentRemaining())

	c.AddTime(-500)
	assert.Equal(t, 0.0, c.PercentRemaining())
}

func TestFormattedTime(t *testing.T) {
	tests := []struct {
		remaining float64
		want      string
	}{
		{60, "01:00"},
		{59.99, "00:59"},
		{125.5, "02:05"},
		{0.4, "00:00"},
		{-3, "00:00"},
		{6000, "100:00"},
		{1e300, "35791394:07"},
		{math.Inf(1), "35791394:07"},
		{math.NaN(), "00:00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatSeconds(tt.remaining), "remaining=%v", tt.remaining)
	}

	c, _ := newTestCountdown(t, 90)
	assert.Equal(t, "01:30", c.FormattedTime())
	c.AddTime(1e300)
	assert.Equal(t, "35791394:07", c.FormattedTime())
}

func TestZoneAndPulse(t *testing.T) {
	c, _ := newTestCountdown(t, 30)
	assert.Equal(t, ZoneNormal, c.Zone())
	assert.Equal(t, 1.0, c.PulseScale())

	c.Tick(10.3)
	assert.Equal(t, ZoneWarning, c.Zone())
	assert.GreaterOrEqual(t, c.PulseScale(), 1.0)
	assert.LessOrEqual(t, c.PulseScale(), 1.1)

	c.Tick(10)
	assert.Equal(t, ZoneCritical, c.Zone())
	assert.LessOrEqual(t, c.PulseScale(), 1.2)
}

func TestFuncs_NilFieldsAreSkipped(t *testing.T) {
	timeouts := 0
	c, err := New(1, 0.5, 0.25, Funcs{Timeout: func() { timeouts++ }})
	require.NoError(t, err)

	c.Tick(2)

	assert.Equal(t, 1, timeouts)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "running", StateRunning.String())
	assert.Equal(t, "paused", StatePaused.String())
	assert.Equal(t, "expired", StateExpired.String())
	assert.Equal(t, "State(9)", State(9).String())
}
