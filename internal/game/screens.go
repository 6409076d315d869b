package game

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/tomz197/gemrush/internal/draw"
	"github.com/tomz197/gemrush/internal/leaderboard"
	"github.com/tomz197/gemrush/internal/object"
	"github.com/tomz197/gemrush/internal/timer"
)

// arenaBox renders the arena border with a blank interior. Drawing it every
// frame also erases the previous frame's sprites.
func arenaBox(st *object.Styles, a object.Arena) string {
	return st.Renderer.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#969696")).
		Width(a.Cols()).
		Height(a.Rows()).
		Render("")
}

// drawFrame composes the whole frame and flushes it.
func (c *client) drawFrame() error {
	cw := c.cw
	if c.tooSmall {
		cw.SetOffset(0, 0)
		cw.Clear()
		msg := fmt.Sprintf("Terminal too small\nneed %dx%d, have %dx%d", frameCols, frameRows, c.termW, c.termH)
		object.Text{Row: c.termH / 2, Width: c.termW, Value: msg}.Draw(cw)
		return cw.Flush()
	}

	s := c.session
	cw.SetOffset(c.offCol, c.offRow)
	c.drawHUD()
	cw.WriteLines(1, hudRows+1, c.box)
	c.drawFooter()

	// Arena contents are positioned relative to the top-left interior cell.
	cw.SetOffset(c.offCol+1, c.offRow+hudRows+1)
	ctx := object.DrawContext{Writer: cw, Styles: c.styles, Arena: s.Arena()}
	for _, g := range s.Gems {
		if err := g.Draw(ctx); err != nil {
			return err
		}
	}
	for _, p := range s.Particles {
		if err := p.Draw(ctx); err != nil {
			return err
		}
	}
	if s.Phase == PhasePlaying || s.Phase == PhasePaused {
		if err := s.Player.Draw(ctx); err != nil {
			return err
		}
	}
	c.drawOverlay()

	return cw.Flush()
}

// drawHUD writes the score line, the progress and timer line and the alert line.
func (c *client) drawHUD() {
	s, st := c.session, c.styles

	left := st.Title.Render("GEMRUSH") + "  " + st.Text.Render(fmt.Sprintf("Level %d/%d", s.Level, s.cfg.Levels.Count))
	right := st.Score.Render(fmt.Sprintf("Score %d", s.Score)) + "  " + st.Dim.Render(fmt.Sprintf("Best %d", s.HighScore))
	c.cw.WriteAt(1, 1, spread(left, right, frameCols))

	gems := st.Text.Render(fmt.Sprintf("Gems %d/%d", s.GemsCollected, s.GemsRequired))
	c.cw.WriteAt(1, 2, spread(gems, c.timerBar(), frameCols))

	alert := ""
	if msg := s.Alert(); msg != "" && s.Phase == PhasePlaying {
		alert = st.Alert.Render(msg)
	}
	c.cw.WriteAt(1, 3, center(alert, frameCols))
}

// timerBar renders the countdown bar coloured by zone followed by MM:SS.
func (c *client) timerBar() string {
	t, st := c.session.Timer, c.styles

	style := st.Normal
	switch t.Zone() {
	case timer.ZoneWarning:
		style = st.Warning
	case timer.ZoneCritical:
		style = st.Critical
		if t.PulseScale() > 1.1 {
			style = style.Bold(true)
		}
	}
	return style.Render(draw.Bar(timerBarWidth, t.PercentRemaining())) + " " + style.Render(t.FormattedTime())
}

// drawFooter writes the key hints and, when idle, the disconnect warning.
func (c *client) drawFooter() {
	row := hudRows + c.session.Arena().Rows() + 3

	var hints string
	switch c.session.Phase {
	case PhaseStart:
		hints = "SPACE start  ·  Q quit"
	case PhasePlaying:
		hints = "WASD/arrows move  ·  P pause  ·  Q quit"
	case PhasePaused:
		hints = "P resume  ·  Q quit"
	case PhaseGameOver, PhaseVictory:
		hints = "R play again  ·  L leaderboard  ·  Q quit"
	}
	c.cw.WriteAt(1, row, center(c.styles.Dim.Render(hints), frameCols))

	warn := ""
	if c.idleWarning() {
		left := math.Ceil((c.idleTimeout - c.idle).Seconds())
		warn = c.styles.Warning.Render(fmt.Sprintf("No input: disconnecting in %.0fs", left))
	}
	c.cw.WriteAt(1, row+1, center(warn, frameCols))
}

// drawOverlay draws the panel for the current phase over the arena.
func (c *client) drawOverlay() {
	s, st := c.session, c.styles

	var body string
	switch {
	case c.shuttingDown:
		body = lipgloss.JoinVertical(lipgloss.Center,
			st.Alert.Render("SERVER SHUTTING DOWN"),
			"",
			st.Text.Render(fmt.Sprintf("Disconnecting in %.0fs", math.Ceil(math.Max(c.shutdownLeft, 0)))),
		)
	case s.Phase == PhaseStart:
		body = c.startPanel()
	case s.Phase == PhasePaused:
		body = lipgloss.JoinVertical(lipgloss.Center,
			st.Title.Render("PAUSED"),
			"",
			st.Dim.Render("Press P to resume"),
		)
	case s.Phase.Ended() && s.ShowLeaderboard:
		body = c.leaderboardPanel()
	case s.Phase == PhaseGameOver:
		body = c.gameOverPanel()
	case s.Phase == PhaseVictory:
		body = c.victoryPanel()
	default:
		return
	}

	c.drawPanel(body)
}

// drawPanel draws a bordered block centred in the arena.
func (c *client) drawPanel(body string) {
	panel := c.styles.Renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#FFD700")).
		Padding(0, 2).
		Render(body)

	a := c.session.Arena()
	row := max((a.Rows()-lipgloss.Height(panel))/2+1, 1)
	object.Text{Row: row, Width: a.Cols(), Value: panel}.Draw(c.cw)
}

func (c *client) startPanel() string {
	st := c.styles
	lines := []string{
		st.Title.Render("G E M R U S H"),
		"",
		st.Text.Render("Collect every gem before time runs out"),
		"",
	}
	for _, k := range object.GemKinds {
		glyph := c.styles.Gem(k).Render(string(k.Glyph()))
		lines = append(lines, fmt.Sprintf("%s %s %s", glyph,
			st.Text.Render(fmt.Sprintf("%-9s", k.String())),
			st.Dim.Render(fmt.Sprintf("%2d pts  +%.0fs", k.Value(), k.TimeBonus()))))
	}
	lines = append(lines, "", st.Score.Render("Press SPACE to start"))
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}

func (c *client) gameOverPanel() string {
	s, st := c.session, c.styles
	return lipgloss.JoinVertical(lipgloss.Center,
		st.Critical.Bold(true).Render("TIME'S UP"),
		"",
		st.Score.Render(fmt.Sprintf("Score %d", s.Score)),
		st.Text.Render(fmt.Sprintf("Reached level %d with %d/%d gems", s.Level, s.GemsCollected, s.GemsRequired)),
		c.highScoreLine(),
		c.wouldRankLine(),
	)
}

func (c *client) victoryPanel() string {
	s, st := c.session, c.styles

	rank := st.Dim.Render("Not fast enough for the leaderboard")
	if s.LastRank != leaderboard.NotRanked {
		rank = st.Title.Render(fmt.Sprintf("Leaderboard rank #%d", s.LastRank))
	}
	return lipgloss.JoinVertical(lipgloss.Center,
		st.Title.Render("VICTORY!"),
		"",
		st.Score.Render(fmt.Sprintf("Score %d", s.Score)),
		st.Text.Render("Time "+timer.FormatSeconds(s.Elapsed)),
		rank,
		c.highScoreLine(),
	)
}

func (c *client) highScoreLine() string {
	if c.session.NewHighScore {
		return c.styles.Score.Render("New high score!")
	}
	return ""
}

func (c *client) wouldRankLine() string {
	if c.session.WouldRank {
		return c.styles.Dim.Render("Good enough for the leaderboard. Clear every level to get on it.")
	}
	return ""
}

func (c *client) leaderboardPanel() string {
	board := c.session.board
	if board == nil {
		return c.styles.Dim.Render("Leaderboard unavailable")
	}
	return leaderboard.Render(board.TopEntries(leaderboardRows), c.session.LastRank, c.styles.Renderer)
}

// spread lays out left and right aligned text across width columns.
func spread(left, right string, width int) string {
	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + right
}

// center pads s on both sides to width columns, so it overwrites the whole row.
func center(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	l := (width - w) / 2
	return strings.Repeat(" ", l) + s + strings.Repeat(" ", width-w-l)
}
