package components

import (
	"github.com/charmbracelet/lipgloss"
)

// Layout manages terminal space and prevents overflow
type Layout struct {
	Width  int
	Height int

	// Reserved space (tabs, footer, hints)
	TabsHeight   int
	FooterHeight int
	HintHeight   int

	// Calculated available content space
	ContentWidth  int
	ContentHeight int
}

// NewLayout creates a layout manager that calculates usable space
func NewLayout(width, height int) *Layout {
	l := &Layout{
		Width:        width,
		Height:       height,
		TabsHeight:   4, // tabs with border
		FooterHeight: 3, // footer with border
	}

	l.ContentWidth = width - 4
	if l.ContentWidth < 40 {
		l.ContentWidth = 40
	}

	l.ContentHeight = height - l.TabsHeight - l.FooterHeight - 2
	if l.ContentHeight < 10 {
		l.ContentHeight = 10
	}

	return l
}

// WithHint recalculates layout when the focus hint is shown
func (l *Layout) WithHint() *Layout {
	newLayout := *l
	newLayout.HintHeight = 3
	newLayout.ContentHeight = l.Height - l.TabsHeight - l.FooterHeight - l.HintHeight - 2
	if newLayout.ContentHeight < 10 {
		newLayout.ContentHeight = 10
	}
	return &newLayout
}

// Columns picks how many cards fit side by side, mirroring the page's
// one/two/three column breakpoints.
func Columns(width int) int {
	switch {
	case width >= 120:
		return 3
	case width >= 80:
		return 2
	default:
		return 1
	}
}

// ColumnWidth splits width into columns with spacing between them
func ColumnWidth(width, columns, spacing int) int {
	if columns <= 0 {
		return width
	}
	w := (width - spacing*(columns-1)) / columns
	if w < 20 {
		w = 20
	}
	return w
}

// Viewport truncates content to fit available height
func Viewport(content string, maxHeight int) string {
	if maxHeight <= 0 {
		return ""
	}
	return lipgloss.NewStyle().MaxHeight(maxHeight).Render(content)
}

// TruncateString truncates text with ellipsis to fit width
func TruncateString(text string, width int) string {
	if width <= 0 {
		return ""
	}

	runes := []rune(text)
	if len(runes) <= width {
		return text
	}

	if width <= 3 {
		return string(runes[:width])
	}

	return string(runes[:width-3]) + "..."
}
