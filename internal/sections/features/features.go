// Package features renders the feature grid of the landing page.
package features

import (
	"strings"

	"github.com/caioricciuti/quicklook-landing/internal/content"
	"github.com/caioricciuti/quicklook-landing/internal/ui/components"
	"github.com/caioricciuti/quicklook-landing/internal/ui/events"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

const cardSpacing = 2

// Model is the features section
type Model struct {
	width       int
	height      int
	focused     bool
	status      string
	statusError bool
	body        viewport.Model
}

func New() *Model {
	return &Model{body: viewport.New(80, 20)}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (interface{}, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.body.Width = m.width - 8
		// tabs, footer, hint and the heading lines
		m.body.Height = m.height - 18
		if m.body.Height < 6 {
			m.body.Height = 6
		}
		m.body.SetContent(m.renderGrid())

	case events.Focus:
		m.focused = true
		m.status = ""
	case events.Blur:
		m.focused = false
		m.status = ""

	case events.Status:
		m.status = msg.Note
		m.statusError = msg.Error

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			m.body.LineUp(1)
		case "down", "j":
			m.body.LineDown(1)
		case "pgup":
			m.body.HalfViewUp()
		case "pgdown", " ":
			m.body.HalfViewDown()
		case "p":
			return m, events.OpenURL("plugin list", content.PluginsURL)
		}
	}

	return m, nil
}

func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	styles := components.NewBaseStyles()

	lines := []string{
		styles.Title().Render(content.FeaturesTitle),
		styles.Muted().Width(m.width - 8).Render(content.FeaturesLead),
		"",
		m.body.View(),
		"",
		styles.Hint(content.PluginsPrompt+" ") + styles.KeyBinding("p", "browse plugins"),
	}
	if m.focused {
		lines = append(lines, styles.KeyBinding("↑/↓", "scroll")+"  •  "+styles.KeyBinding("p", "plugins"))
	}
	if m.status != "" {
		lines = append(lines, "", components.StatusLine(m.status, m.statusError, m.width-8))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderGrid() string {
	inner := m.width - 8
	cols := components.Columns(inner)
	cardWidth := components.ColumnWidth(inner, cols, cardSpacing)

	items := make([]string, 0, len(content.Features))
	for _, f := range content.Features {
		card := &components.Card{
			Icon:  f.Icon,
			Title: f.Title,
			Body:  f.Description,
			Width: cardWidth,
		}
		items = append(items, card.Render())
	}

	grid := &components.Grid{Items: items, Columns: cols, Spacing: cardSpacing}
	return grid.Render()
}

func (m *Model) Title() string {
	return "Features"
}

// HasOpenModal returns true if the module has an open modal/dialog
func (m *Model) HasOpenModal() bool {
	return false
}
