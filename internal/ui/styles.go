// Package ui holds the terminal presentation shared by the todo commands:
// colour themes, appearance detection and task renderers.
package ui

import "github.com/charmbracelet/lipgloss"

// Palette is the set of colours a theme draws with.
type Palette struct {
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Success   lipgloss.Color
	Error     lipgloss.Color
	Warning   lipgloss.Color
	Text      lipgloss.Color
	Info      lipgloss.Color
	Highlight lipgloss.Color
}

var (
	DarkPalette = Palette{
		Primary:   lipgloss.Color("205"), // Pink
		Secondary: lipgloss.Color("241"), // Gray
		Success:   lipgloss.Color("42"),  // Green
		Error:     lipgloss.Color("160"), // Red
		Warning:   lipgloss.Color("214"), // Orange/Yellow
		Text:      lipgloss.Color("252"), // White/Gray
		Info:      lipgloss.Color("75"),  // Blue
		Highlight: lipgloss.Color("237"),
	}

	LightPalette = Palette{
		Primary:   lipgloss.Color("162"),
		Secondary: lipgloss.Color("245"),
		Success:   lipgloss.Color("28"),
		Error:     lipgloss.Color("124"),
		Warning:   lipgloss.Color("130"),
		Text:      lipgloss.Color("235"),
		Info:      lipgloss.Color("25"),
		Highlight: lipgloss.Color("254"),
	}
)

// Theme is the full style set for one appearance.
type Theme struct {
	Dark    bool
	Palette Palette

	Title        lipgloss.Style
	Subtle       lipgloss.Style
	Primary      lipgloss.Style
	Success      lipgloss.Style
	Error        lipgloss.Style
	Warning      lipgloss.Style
	Text         lipgloss.Style
	Header       lipgloss.Style
	SectionTitle lipgloss.Style
	Selected     lipgloss.Style
	InputBox     lipgloss.Style
	FocusedBox   lipgloss.Style
	DialogBox    lipgloss.Style
}

// NewTheme builds the style set for the dark or light appearance.
func NewTheme(dark bool) Theme {
	p := LightPalette
	if dark {
		p = DarkPalette
	}
	return Theme{
		Dark:    dark,
		Palette: p,

		Title:   lipgloss.NewStyle().Foreground(p.Text).Bold(true),
		Subtle:  lipgloss.NewStyle().Foreground(p.Secondary),
		Primary: lipgloss.NewStyle().Foreground(p.Primary),
		Success: lipgloss.NewStyle().Foreground(p.Success),
		Error:   lipgloss.NewStyle().Foreground(p.Error),
		Warning: lipgloss.NewStyle().Foreground(p.Warning),
		Text:    lipgloss.NewStyle().Foreground(p.Text),

		Header: lipgloss.NewStyle().
			Foreground(p.Primary).
			Bold(true).
			Padding(0, 1),

		SectionTitle: lipgloss.NewStyle().
			Foreground(p.Primary).
			Bold(true).
			Underline(true),

		Selected: lipgloss.NewStyle().
			Background(p.Highlight).
			Bold(true),

		InputBox: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(p.Secondary).
			Padding(0, 1),

		FocusedBox: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(p.Primary).
			Padding(0, 1),

		DialogBox: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(p.Warning).
			Padding(1, 2),
	}
}

// Icon returns a styled icon string
func Icon(icon string, style lipgloss.Style) string {
	return style.Render(icon)
}
