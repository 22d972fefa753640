package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

// Card renders a titled, bordered block of wrapped text
type Card struct {
	Icon    string
	Title   string
	Body    string
	Lines   []string
	Width   int
	Focused bool
}

// Render creates the card view
func (c *Card) Render() string {
	styles := NewBaseStyles()

	borderColor := styles.Theme.Border
	if c.Focused {
		borderColor = styles.Theme.Primary
	}

	// border (2) + horizontal padding (2)
	inner := c.Width - 4
	if inner < 10 {
		inner = 10
	}

	var parts []string
	if c.Title != "" {
		title := c.Title
		if c.Icon != "" {
			title = c.Icon + "  " + title
		}
		parts = append(parts, styles.Title().Render(TruncateString(title, inner)))
	}
	if c.Body != "" {
		parts = append(parts, styles.Muted().Render(wordwrap.String(c.Body, inner)))
	}
	parts = append(parts, c.Lines...)

	return styles.Box(c.Width-2, borderColor).Render(strings.Join(parts, "\n"))
}

// Grid renders items in rows of equal-width columns
type Grid struct {
	Items   []string
	Columns int
	Spacing int
}

// Render creates a grid view
func (g *Grid) Render() string {
	if len(g.Items) == 0 || g.Columns <= 0 {
		return ""
	}

	gap := strings.Repeat(" ", g.Spacing)
	var rows []string
	for i := 0; i < len(g.Items); i += g.Columns {
		var cells []string
		for j := 0; j < g.Columns && i+j < len(g.Items); j++ {
			if j > 0 && gap != "" {
				cells = append(cells, gap)
			}
			cells = append(cells, g.Items[i+j])
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// StatusLine renders a one-line action result
func StatusLine(note string, isError bool, width int) string {
	if note == "" {
		return ""
	}

	styles := NewBaseStyles()
	style := styles.Success()
	icon := "✓"
	if isError {
		style = styles.Error()
		icon = "✗"
	}
	return style.Render(TruncateString(icon+" "+note, width))
}
