package object

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/tomz197/gemrush/internal/draw"
)

// Text is a block of (possibly multi-line, styled) text centred on a row.
// Row is a 1-based terminal row relative to the writer's origin; Width is the
// span it is centred within.
type Text struct {
	Row   int
	Width int
	Value string
}

// Draw writes the text block centred horizontally.
func (t Text) Draw(w *draw.ChunkWriter) {
	if t.Value == "" {
		return
	}
	col := draw.CenterCol(t.Width, lipgloss.Width(t.Value))
	row := max(t.Row, 1)
	for i, line := range strings.Split(t.Value, "\n") {
		w.WriteAt(col, row+i, line)
	}
}

// Height returns the number of lines in the block.
func (t Text) Height() int {
	return lipgloss.Height(t.Value)
}
