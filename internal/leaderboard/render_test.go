package leaderboard

import (
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestRows(t *testing.T) {
	rows := Rows(sampleEntries())

	assert.Equal(t, []string{"1", "100", "00:40", "3", "2024-05-17 14:03"}, rows[0])
	assert.Equal(t, []string{"3", "80", "01:00", "2", "2024-05-18 09:12"}, rows[2])
}

func TestRender(t *testing.T) {
	r := lipgloss.NewRenderer(io.Discard)

	out := Render(sampleEntries(), 2, r)

	assert.Contains(t, out, "LEADERBOARD")
	for _, h := range headers {
		assert.Contains(t, out, h)
	}
	assert.Contains(t, out, "2024-05-18 09:12")
	assert.Contains(t, out, "01:00")
}

func TestRender_Empty(t *testing.T) {
	out := Render(nil, NotRanked, lipgloss.NewRenderer(io.Discard))

	assert.Contains(t, out, "No entries yet")
	assert.False(t, strings.Contains(out, "Rank"))
}
