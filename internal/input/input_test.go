package input

import (
	"bufio"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArrowsAndLetters(t *testing.T) {
	var st keyState
	now := time.Now()

	in := parse(&st, []byte("\x1b[A\x1b[Dd"), now)

	assert.True(t, in.Up)
	assert.True(t, in.Left)
	assert.True(t, in.Right)
	assert.False(t, in.Down)
	assert.False(t, in.Escape, "an arrow sequence is not an escape press")
}

func TestParseMovementIsHeldBriefly(t *testing.T) {
	var st keyState
	now := time.Now()

	parse(&st, []byte("s"), now)

	assert.True(t, parse(&st, nil, now.Add(keyHoldDuration/2)).Down)
	assert.False(t, parse(&st, nil, now.Add(keyHoldDuration)).Down)
}

func TestParseTogglesAreEdgeTriggered(t *testing.T) {
	var st keyState
	now := time.Now()

	in := parse(&st, []byte("prl q"), now)
	assert.True(t, in.Pause)
	assert.True(t, in.Restart)
	assert.True(t, in.Leaderboard)
	assert.True(t, in.Space)
	assert.True(t, in.Start())
	assert.True(t, in.Quit)

	next := parse(&st, nil, now.Add(time.Millisecond))
	assert.False(t, next.Pause)
	assert.False(t, next.Restart)
	assert.False(t, next.Leaderboard)
	assert.False(t, next.Quit)
}

func TestParseLoneEscape(t *testing.T) {
	var st keyState

	in := parse(&st, []byte{'\x1b'}, time.Now())

	assert.True(t, in.Escape)
}

func TestStream_ClosesWithReader(t *testing.T) {
	s := StartStream(bufio.NewReader(strings.NewReader("\r")))

	require.Eventually(t, func() bool {
		ReadInput(s)
		return s.Closed()
	}, time.Second, 5*time.Millisecond)
}

func TestReset_ForgetsHeldKeys(t *testing.T) {
	s := &Stream{ch: make(chan byte, 4)}
	s.ch <- 'a'

	require.True(t, ReadInput(s).Left)
	Reset(s)

	assert.False(t, ReadInput(s).Left)
}
