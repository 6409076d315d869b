package game

import (
	"bufio"
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/gemrush/internal/draw"
	"github.com/tomz197/gemrush/internal/input"
	"github.com/tomz197/gemrush/internal/object"
)

// Frame size in terminal cells: HUD, bordered arena, footer.
const (
	frameCols = ArenaWidth + 2
	frameRows = hudRows + ArenaHeight/2 + 2 + footerRows
)

// client drives one session on one terminal.
type client struct {
	session *Session
	styles  *object.Styles
	logger  *log.Logger

	out      io.Writer
	cw       *draw.ChunkWriter // Accumulates one frame for chunked output
	stream   *input.Stream
	termSize draw.TermSizeFunc
	box      string // Pre-rendered arena border

	idleTimeout time.Duration
	lastInput   time.Time
	idle        time.Duration

	running      bool
	termW, termH int
	offCol       int
	offRow       int
	tooSmall     bool
	shuttingDown bool
	shutdownLeft float64
}

// Run plays GemRush on a raw terminal until the player quits, the input ends
// or ctx is cancelled. Cancelling ctx shows a shutdown notice for
// ShutdownNoticeSeconds before returning.
func Run(ctx context.Context, r *bufio.Reader, w io.Writer, opts Options) error {
	s, err := NewSession(opts)
	if err != nil {
		return err
	}
	return newClient(s, r, w, opts).run(ctx)
}

func newClient(s *Session, r *bufio.Reader, w io.Writer, opts Options) *client {
	termSize := opts.TermSizeFunc
	if termSize == nil {
		termSize = draw.DefaultTermSizeFunc
	}
	styles := object.NewStyles(opts.Renderer)
	return &client{
		session:     s,
		styles:      styles,
		logger:      s.logger,
		out:         w,
		cw:          draw.NewChunkWriter(w, 0, 0),
		stream:      input.StartStream(r),
		termSize:    termSize,
		box:         arenaBox(styles, s.Arena()),
		idleTimeout: opts.IdleTimeout,
		lastInput:   time.Now(),
		running:     true,
	}
}

func (c *client) run(ctx context.Context) error {
	draw.HideCursor(c.out)
	defer draw.ShowCursor(c.out)
	draw.ClearScreen(c.out)

	lastTime := time.Now()

	for c.running {
		frameStart := time.Now()
		delta := min(frameStart.Sub(lastTime), MaxFrameDelta)
		lastTime = frameStart

		// Input
		in := c.processInput(frameStart)

		// Lifecycle
		c.checkShutdown(ctx, delta)
		c.updateScreen()

		// Update
		if !c.shuttingDown {
			before := c.session.Phase
			c.session.Update(delta.Seconds(), in)
			if c.session.Phase != before {
				input.Reset(c.stream)
			}
		}

		// Draw
		if err := c.drawFrame(); err != nil {
			return err
		}

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < TargetFrameTime {
			time.Sleep(TargetFrameTime - elapsed)
		}
	}

	draw.ClearScreen(c.out)
	return nil
}

// processInput reads this frame's keys and handles quit, hang-up and idling.
func (c *client) processInput(now time.Time) input.Input {
	in := input.ReadInput(c.stream)

	if c.stream.Closed() {
		c.logger.Debug("input closed")
		c.running = false
	}
	if in.Quit {
		c.running = false
	}

	if len(in.Pressed) > 0 {
		c.lastInput = now
	}
	c.idle = now.Sub(c.lastInput)
	if c.idleTimeout > 0 && c.idle > c.idleTimeout {
		c.logger.Info("disconnecting idle player", "idle", c.idle.Round(time.Second))
		c.running = false
	}
	return in
}

// idleWarning reports whether the player should be told they are about to be dropped.
func (c *client) idleWarning() bool {
	return c.idleTimeout > 0 && c.idle > time.Duration(float64(c.idleTimeout)*idleWarnFraction)
}

// checkShutdown starts the shutdown notice once ctx is done and ends the loop
// when the notice has been shown long enough.
func (c *client) checkShutdown(ctx context.Context, delta time.Duration) {
	if c.shuttingDown {
		c.shutdownLeft -= delta.Seconds()
		if c.shutdownLeft <= 0 {
			c.running = false
		}
		return
	}
	select {
	case <-ctx.Done():
		c.shuttingDown = true
		c.shutdownLeft = ShutdownNoticeSeconds
		c.session.Pause()
	default:
	}
}

// updateScreen tracks the terminal size and re-centres the frame on change.
func (c *client) updateScreen() {
	w, h, err := c.termSize()
	if err != nil || (w == c.termW && h == c.termH) {
		return
	}
	c.termW, c.termH = w, h
	c.tooSmall = w < frameCols || h < frameRows
	c.offCol = max((w-frameCols)/2, 0)
	c.offRow = max((h-frameRows)/2, 0)

	// Clear leftovers from the previous layout
	draw.ClearScreen(c.out)
}
