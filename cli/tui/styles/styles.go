// Package styles holds the light and dark palettes of the terminal UI.
package styles

import "github.com/charmbracelet/lipgloss"

// Palette is the set of colors a theme provides.
type Palette struct {
	Primary   lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Border    lipgloss.Color
	Surface   lipgloss.Color
	Highlight lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color
}

var (
	LightPalette = Palette{
		Primary:   lipgloss.Color("#1D4ED8"),
		Text:      lipgloss.Color("#111827"),
		Muted:     lipgloss.Color("#6B7280"),
		Border:    lipgloss.Color("#D1D5DB"),
		Surface:   lipgloss.Color("#E5E7EB"),
		Highlight: lipgloss.Color("#1E3A8A"),
		Success:   lipgloss.Color("#15803D"),
		Warning:   lipgloss.Color("#B45309"),
		Error:     lipgloss.Color("#B91C1C"),
	}
	DarkPalette = Palette{
		Primary:   lipgloss.Color("#60A5FA"),
		Text:      lipgloss.Color("#F3F4F6"),
		Muted:     lipgloss.Color("#9CA3AF"),
		Border:    lipgloss.Color("#374151"),
		Surface:   lipgloss.Color("#1F2937"),
		Highlight: lipgloss.Color("#BFDBFE"),
		Success:   lipgloss.Color("#4ADE80"),
		Warning:   lipgloss.Color("#FBBF24"),
		Error:     lipgloss.Color("#F87171"),
	}
)

// Theme is a palette turned into ready-to-use styles.
type Theme struct {
	Dark       bool
	Palette    Palette
	Title      lipgloss.Style
	Header     lipgloss.Style
	Cell       lipgloss.Style
	Selected   lipgloss.Style
	Cursor     lipgloss.Style
	Muted      lipgloss.Style
	Info       lipgloss.Style
	Warning    lipgloss.Style
	Error      lipgloss.Style
	Success    lipgloss.Style
	Page       lipgloss.Style
	PageActive lipgloss.Style
	Disabled   lipgloss.Style
	Box        lipgloss.Style
}

// For returns the theme for the dark-mode flag.
func For(dark bool) Theme {
	p := LightPalette
	if dark {
		p = DarkPalette
	}
	return Theme{
		Dark:    dark,
		Palette: p,
		Title:   lipgloss.NewStyle().Bold(true).Foreground(p.Primary),
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Primary).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(p.Border),
		Cell:       lipgloss.NewStyle().Foreground(p.Text),
		Selected:   lipgloss.NewStyle().Foreground(p.Highlight).Bold(true),
		Cursor:     lipgloss.NewStyle().Background(p.Surface).Foreground(p.Highlight),
		Muted:      lipgloss.NewStyle().Foreground(p.Muted),
		Info:       lipgloss.NewStyle().Foreground(p.Primary),
		Warning:    lipgloss.NewStyle().Foreground(p.Warning),
		Error:      lipgloss.NewStyle().Foreground(p.Error).Bold(true),
		Success:    lipgloss.NewStyle().Foreground(p.Success),
		Page:       lipgloss.NewStyle().Foreground(p.Text).Padding(0, 1),
		PageActive: lipgloss.NewStyle().Foreground(p.Surface).Background(p.Primary).Bold(true).Padding(0, 1),
		Disabled:   lipgloss.NewStyle().Foreground(p.Border).Padding(0, 1),
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Border).
			Padding(1, 2),
	}
}
