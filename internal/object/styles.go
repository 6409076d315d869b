package object

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles objects and screens render with.
// Each terminal (local or SSH session) gets its own, bound to its renderer.
type Styles struct {
	Renderer *lipgloss.Renderer

	Player   lipgloss.Style
	Border   lipgloss.Style
	Title    lipgloss.Style
	Text     lipgloss.Style
	Dim      lipgloss.Style
	Score    lipgloss.Style
	Alert    lipgloss.Style
	Normal   lipgloss.Style // Timer bar, plenty of time
	Warning  lipgloss.Style // Timer bar, warning zone
	Critical lipgloss.Style // Timer bar, critical zone

	gems   [gemKindCount]lipgloss.Style
	tinted map[string]lipgloss.Style
}

// NewStyles builds the palette for a renderer. A nil renderer uses the default.
func NewStyles(r *lipgloss.Renderer) *Styles {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	s := &Styles{
		Renderer: r,
		Player:   r.NewStyle().Foreground(lipgloss.Color("#3264FF")).Bold(true),
		Border:   r.NewStyle().Foreground(lipgloss.Color("#969696")),
		Title:    r.NewStyle().Foreground(lipgloss.Color("#FFD700")).Bold(true),
		Text:     r.NewStyle().Foreground(lipgloss.Color("#FFFFFF")),
		Dim:      r.NewStyle().Foreground(lipgloss.Color("#C8C8C8")).Faint(true),
		Score:    r.NewStyle().Foreground(lipgloss.Color("#FFFF00")).Bold(true),
		Alert:    r.NewStyle().Foreground(lipgloss.Color("#FF3232")).Bold(true).Blink(true),
		Normal:   r.NewStyle().Foreground(lipgloss.Color("#32C832")),
		Warning:  r.NewStyle().Foreground(lipgloss.Color("#FFC800")),
		Critical: r.NewStyle().Foreground(lipgloss.Color("#FF3232")),
		tinted:   make(map[string]lipgloss.Style),
	}
	for _, k := range GemKinds {
		s.gems[k] = r.NewStyle().Foreground(lipgloss.Color(k.Color())).Bold(true)
	}
	return s
}

// Gem returns the style for a gem kind.
func (s *Styles) Gem(k GemKind) lipgloss.Style {
	if k < 0 || k >= gemKindCount {
		k = Topaz
	}
	return s.gems[k]
}

// Tint returns a foreground style for a hex colour, cached per colour.
func (s *Styles) Tint(color string) lipgloss.Style {
	if st, ok := s.tinted[color]; ok {
		return st
	}
	st := s.Renderer.NewStyle().Foreground(lipgloss.Color(color))
	s.tinted[color] = st
	return st
}
