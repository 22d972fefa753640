package components

import "github.com/charmbracelet/lipgloss"

// Theme defines the color palette
type Theme struct {
	// Primary colors
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color

	// Status colors
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color

	// UI colors
	Background lipgloss.Color
	Surface    lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
}

// DefaultTheme returns the Fluent-inspired palette of the landing page
func DefaultTheme() Theme {
	return Theme{
		Primary:   lipgloss.Color("#3B82F6"), // Blue
		Secondary: lipgloss.Color("#8B5CF6"), // Violet
		Accent:    lipgloss.Color("#06B6D4"), // Cyan

		Success: lipgloss.Color("#22C55E"),
		Warning: lipgloss.Color("#F59E0B"),
		Error:   lipgloss.Color("#EF4444"),

		Background: lipgloss.Color("#0B1120"),
		Surface:    lipgloss.Color("#1E293B"),
		Foreground: lipgloss.Color("#F8FAFC"),
		Muted:      lipgloss.Color("#94A3B8"),
		Border:     lipgloss.Color("#334155"),
	}
}

// BaseStyles provides common style builders
type BaseStyles struct {
	Theme Theme
}

// NewBaseStyles creates style builders with theme
func NewBaseStyles() *BaseStyles {
	return &BaseStyles{
		Theme: DefaultTheme(),
	}
}

// Title creates a title style
func (s *BaseStyles) Title() lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(s.Theme.Primary)
}

// Subtitle creates a subtitle style
func (s *BaseStyles) Subtitle() lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(s.Theme.Secondary)
}

// Text is the default body style
func (s *BaseStyles) Text() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(s.Theme.Foreground)
}

// Muted creates a muted text style
func (s *BaseStyles) Muted() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(s.Theme.Muted)
}

// Success creates a success message style
func (s *BaseStyles) Success() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(s.Theme.Success).
		Bold(true)
}

// Warning creates a warning message style
func (s *BaseStyles) Warning() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(s.Theme.Warning).
		Bold(true)
}

// Error creates an error message style
func (s *BaseStyles) Error() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(s.Theme.Error).
		Bold(true)
}

// Box creates a bordered box style
func (s *BaseStyles) Box(width int, borderColor lipgloss.Color) lipgloss.Style {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 1)

	if width > 0 {
		style = style.Width(width)
	}

	return style
}

// StatusIndicator returns a styled status indicator
func (s *BaseStyles) StatusIndicator(status string, level string) string {
	var color lipgloss.Color
	switch level {
	case "ok", "success":
		color = s.Theme.Success
	case "warning":
		color = s.Theme.Warning
	case "fail", "error":
		color = s.Theme.Error
	default:
		color = s.Theme.Muted
	}

	return lipgloss.NewStyle().
		Foreground(color).
		Bold(true).
		Render("● " + status)
}

// Badge renders a small pill
func (s *BaseStyles) Badge(text string, color lipgloss.Color) string {
	return lipgloss.NewStyle().
		Foreground(s.Theme.Background).
		Background(color).
		Bold(true).
		Padding(0, 1).
		Render(text)
}

// Hint renders a hint/tip text
func (s *BaseStyles) Hint(text string) string {
	return lipgloss.NewStyle().
		Foreground(s.Theme.Muted).
		Italic(true).
		Render(text)
}

// KeyBinding renders a keyboard shortcut
func (s *BaseStyles) KeyBinding(key, description string) string {
	keyStyle := lipgloss.NewStyle().
		Foreground(s.Theme.Primary).
		Bold(true).
		Render(key)

	descStyle := lipgloss.NewStyle().
		Foreground(s.Theme.Muted).
		Render(description)

	return keyStyle + " " + descStyle
}
