package links

import (
	"testing"

	"github.com/caioricciuti/quicklook-landing/internal/content"
	"github.com/caioricciuti/quicklook-landing/internal/ui/events"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNavigationStaysInBounds(t *testing.T) {
	m := New()
	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, m.selectedItem)

	for i := 0; i < 20; i++ {
		m.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	assert.Equal(t, len(content.ExternalLinks())-1, m.selectedItem)
}

func TestQuickSelect(t *testing.T) {
	m := New()
	_, cmd := m.Update(runes("3"))
	assert.NotNil(t, cmd)
	assert.Equal(t, 2, m.selectedItem)

	_, cmd = m.Update(runes("9"))
	assert.Nil(t, cmd, "out of range number is ignored")
	assert.Equal(t, 2, m.selectedItem)
}

func TestOpenAndCopyReturnCommands(t *testing.T) {
	m := New()
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.NotNil(t, cmd)
	_, cmd = m.Update(runes("c"))
	assert.NotNil(t, cmd)
}

func TestViewListsExternalLinks(t *testing.T) {
	m := New()
	assert.Equal(t, "Loading...", m.View())

	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	view := m.View()
	for _, l := range content.ExternalLinks() {
		assert.Contains(t, view, l.Name)
	}
	assert.Contains(t, view, "▶ [1] Plugins")
	assert.Contains(t, view, "RESOURCES")
	assert.NotContains(t, view, "Installation", "in-page anchors are not listed")
}

func TestStatusClearedOnBlur(t *testing.T) {
	m := New()
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m.Update(events.Status{Note: "Opening GitHub in your browser…"})
	assert.Contains(t, m.View(), "Opening GitHub")

	m.Update(events.Blur{})
	assert.NotContains(t, m.View(), "Opening GitHub")
}
