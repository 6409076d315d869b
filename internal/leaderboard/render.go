package leaderboard

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/tomz197/gemrush/internal/timer"
)

var headers = []string{"Rank", "Score", "Time", "Level", "Date"}

// Headers returns the column titles matching Rows.
func Headers() []string {
	return append([]string(nil), headers...)
}

// Rows formats entries as table cells in rank order.
func Rows(entries []Entry) [][]string {
	rows := make([][]string, 0, len(entries))
	for i, e := range entries {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			strconv.Itoa(e.Score),
			timer.FormatSeconds(e.TimeTaken),
			strconv.Itoa(e.LevelReached),
			e.Date,
		})
	}
	return rows
}

// Render draws the board as a bordered table. The row with rank highlight
// (1-based) is emphasised; pass NotRanked for none. A nil renderer uses the default.
func Render(entries []Entry, highlight int, r *lipgloss.Renderer) string {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}

	title := r.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFD700")).Render("LEADERBOARD")
	if len(entries) == 0 {
		empty := r.NewStyle().Faint(true).Render("No entries yet")
		return lipgloss.JoinVertical(lipgloss.Center, title, "", empty)
	}

	headerStyle := r.NewStyle().Bold(true).Foreground(lipgloss.Color("#C8C8C8")).Padding(0, 1)
	cellStyle := r.NewStyle().Padding(0, 1)
	oddStyle := cellStyle.Foreground(lipgloss.Color("#E0E0FF"))
	scoreStyle := cellStyle.Foreground(lipgloss.Color("#FFFF00"))
	highlightStyle := cellStyle.Bold(true).Reverse(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(r.NewStyle().Foreground(lipgloss.Color("#969696"))).
		Headers(headers...).
		Rows(Rows(entries)...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case row+1 == highlight:
				return highlightStyle
			case col == 1:
				return scoreStyle
			case row%2 == 1:
				return oddStyle
			default:
				return cellStyle
			}
		})

	return lipgloss.JoinVertical(lipgloss.Center, title, t.Render())
}
