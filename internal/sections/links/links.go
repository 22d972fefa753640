// Package links renders the footer link groups as a selectable list.
package links

import (
	"strconv"
	"strings"

	"github.com/caioricciuti/quicklook-landing/internal/content"
	"github.com/caioricciuti/quicklook-landing/internal/ui/components"
	"github.com/caioricciuti/quicklook-landing/internal/ui/events"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type Model struct {
	width        int
	height       int
	status       string
	statusError  bool
	links        []content.Link
	selectedItem int
}

func New() *Model {
	return &Model{links: content.ExternalLinks()}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (interface{}, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case events.Focus:
		m.status = ""
	case events.Blur:
		m.status = ""

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.selectedItem > 0 {
				m.selectedItem--
			}
		case "down", "j":
			if m.selectedItem < len(m.links)-1 {
				m.selectedItem++
			}
		case "c":
			if link, ok := m.selected(); ok {
				return m, events.CopyURL(link.Href)
			}
		case "enter", " ":
			if link, ok := m.selected(); ok {
				return m, events.OpenURL(link.Name, link.Href)
			}
		default:
			// 1-9 jump straight to a link
			if n, err := strconv.Atoi(msg.String()); err == nil && n >= 1 && n <= len(m.links) {
				m.selectedItem = n - 1
				link := m.links[m.selectedItem]
				return m, events.OpenURL(link.Name, link.Href)
			}
		}

	case events.Status:
		m.status = msg.Note
		m.statusError = msg.Error
	}

	return m, nil
}

func (m *Model) selected() (content.Link, bool) {
	if m.selectedItem < 0 || m.selectedItem >= len(m.links) {
		return content.Link{}, false
	}
	return m.links[m.selectedItem], true
}

func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	styles := components.NewBaseStyles()

	optionStyle := lipgloss.NewStyle().
		Foreground(styles.Theme.Primary).
		Bold(true)

	urlStyle := styles.Muted()

	groupStyle := styles.Subtitle().MarginTop(1)

	lines := []string{
		styles.Title().Render("🔗 " + content.ProductName + " Links"),
		styles.Muted().Render(content.Summary),
	}

	// Numbering follows ExternalLinks order, which walks the groups in turn
	index := 0
	for _, group := range content.FooterLinks {
		var external []content.Link
		for _, l := range group.Links {
			if l.External {
				external = append(external, l)
			}
		}
		if len(external) == 0 {
			continue
		}

		lines = append(lines, groupStyle.Render(strings.ToUpper(group.Name)))
		for _, l := range external {
			prefix := "  "
			style := styles.Text()
			if index == m.selectedItem {
				prefix = "▶ "
				style = optionStyle
			}
			label := style.Render(prefix + "[" + strconv.Itoa(index+1) + "] " + l.Name)
			lines = append(lines, label+"  "+urlStyle.Render(components.TruncateString(l.Href, m.width-30)))
			index++
		}
	}

	lines = append(lines, "", styles.Muted().Render("↑/↓ Navigate • Enter Open • C Copy • 1-"+strconv.Itoa(len(m.links))+" Quick • Esc Back"))

	if m.status != "" {
		lines = append(lines, "", components.StatusLine(m.status, m.statusError, m.width-8))
	}

	finalContent := lipgloss.JoinVertical(lipgloss.Left, lines...)

	maxHeight := m.height - 4
	if maxHeight < 10 {
		maxHeight = 10
	}

	return lipgloss.NewStyle().MaxHeight(maxHeight).Render(finalContent)
}

func (m *Model) Title() string {
	return "Links"
}

// HasOpenModal returns true if the module has an open modal/dialog
func (m *Model) HasOpenModal() bool {
	return false
}
