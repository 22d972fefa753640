package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "QuickLook", TruncateString("QuickLook", 20))
	assert.Equal(t, "Quick...", TruncateString("QuickLook-Setup", 8))
	assert.Equal(t, "Qu", TruncateString("QuickLook", 2))
	assert.Equal(t, "", TruncateString("QuickLook", 0))
}

func TestNewLayoutMinimums(t *testing.T) {
	l := NewLayout(20, 5)
	assert.Equal(t, 40, l.ContentWidth)
	assert.Equal(t, 10, l.ContentHeight)

	l = NewLayout(120, 40)
	assert.Equal(t, 116, l.ContentWidth)
	assert.Equal(t, 31, l.ContentHeight)
	assert.Equal(t, 28, l.WithHint().ContentHeight)
}

func TestColumns(t *testing.T) {
	assert.Equal(t, 1, Columns(60))
	assert.Equal(t, 2, Columns(100))
	assert.Equal(t, 3, Columns(160))
	assert.Equal(t, 38, ColumnWidth(118, 3, 2))
	assert.Equal(t, 20, ColumnWidth(30, 3, 2))
}

func TestCardWrapsBodyToWidth(t *testing.T) {
	c := &Card{
		Icon:  "⚡",
		Title: "Lightning Fast",
		Body:  "Optimized for performance with minimal resource usage. Preview files in milliseconds.",
		Width: 30,
	}
	out := c.Render()

	assert.Contains(t, out, "Lightning Fast")
	for _, line := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, lipgloss.Width(line), 30)
	}
}

func TestGridRows(t *testing.T) {
	g := &Grid{Items: []string{"a", "b", "c", "d", "e"}, Columns: 2, Spacing: 1}
	lines := strings.Split(g.Render(), "\n")
	assert.Len(t, lines, 3)
	assert.Equal(t, "a b", lines[0])
	assert.Equal(t, "e", strings.TrimSpace(lines[2]))

	assert.Empty(t, (&Grid{Columns: 2}).Render())
}

func TestStatusLine(t *testing.T) {
	assert.Empty(t, StatusLine("", false, 40))
	assert.Contains(t, StatusLine("Copied", false, 40), "✓ Copied")
	assert.Contains(t, StatusLine("Failed", true, 40), "✗ Failed")
}
