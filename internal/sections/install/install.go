// Package install renders the installation steps, the system requirements
// and a compatibility report for the machine running the page.
package install

import (
	"fmt"
	"strings"

	"github.com/caioricciuti/quicklook-landing/internal/compat"
	"github.com/caioricciuti/quicklook-landing/internal/content"
	"github.com/caioricciuti/quicklook-landing/internal/ui/components"
	"github.com/caioricciuti/quicklook-landing/internal/ui/events"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// reportMsg delivers a finished compatibility check
type reportMsg struct {
	report compat.Report
}

// Model is the installation section
type Model struct {
	probe func() compat.HostInfo

	width     int
	height    int
	report    *compat.Report
	checking  bool
	status    string
	statusErr bool
}

// New creates the section; probe gathers host facts and is normally compat.Probe.
func New(probe func() compat.HostInfo) *Model {
	if probe == nil {
		probe = compat.Probe
	}
	return &Model{probe: probe}
}

func (m *Model) Init() tea.Cmd {
	if m.report != nil || m.checking {
		return nil
	}
	return m.check()
}

func (m *Model) check() tea.Cmd {
	m.checking = true
	probe := m.probe
	return func() tea.Msg {
		return reportMsg{report: compat.Evaluate(probe())}
	}
}

func (m *Model) Update(msg tea.Msg) (interface{}, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case reportMsg:
		r := msg.report
		m.report = &r
		m.checking = false

	case events.Focus, events.Blur:
		m.status = ""

	case events.Status:
		m.status = msg.Note
		m.statusErr = msg.Error

	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			if !m.checking {
				return m, m.check()
			}
		case "w":
			return m, events.OpenURL("documentation", content.DocsURL)
		}
	}

	return m, nil
}

func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	styles := components.NewBaseStyles()
	inner := m.width - 8

	lines := []string{
		styles.Title().Render(content.InstallTitle),
		styles.Muted().Width(inner).Render(content.InstallLead),
		"",
	}

	cols := components.Columns(inner)
	if cols > 2 {
		cols = 2
	}
	cardWidth := components.ColumnWidth(inner, cols, 2)

	steps := make([]string, 0, len(content.Steps))
	for i, s := range content.Steps {
		card := &components.Card{
			Icon:  s.Icon,
			Title: fmt.Sprintf("%d. %s", i+1, s.Title),
			Body:  s.Description,
			Width: cardWidth,
		}
		steps = append(steps, card.Render())
	}
	grid := &components.Grid{Items: steps, Columns: cols, Spacing: 2}
	lines = append(lines, grid.Render(), "")

	lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderRequirements(styles, cardWidth),
		"  ",
		m.renderReport(styles, cardWidth),
	))

	lines = append(lines, "", styles.KeyBinding("r", "re-check")+"  •  "+styles.KeyBinding("w", "wiki"))
	if m.status != "" {
		lines = append(lines, components.StatusLine(m.status, m.statusErr, inner))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderRequirements(styles *components.BaseStyles, width int) string {
	items := make([]string, 0, len(content.Requirements))
	for _, r := range content.Requirements {
		items = append(items, styles.Text().Render("• "+r))
	}
	card := &components.Card{Title: "System Requirements", Lines: items, Width: width}
	return card.Render()
}

func (m *Model) renderReport(styles *components.BaseStyles, width int) string {
	card := &components.Card{Title: "This Machine", Width: width}

	switch {
	case m.report == nil:
		card.Lines = []string{styles.Muted().Render("Checking...")}
	default:
		for _, c := range m.report.Checks {
			card.Lines = append(card.Lines, styles.StatusIndicator(c.Name, string(c.Status)))
			card.Lines = append(card.Lines, styles.Muted().Render("  "+c.Detail))
		}
		verdict := styles.Success().Render("Ready for QuickLook")
		if !m.report.Compatible {
			verdict = styles.Warning().Render("QuickLook cannot be installed here")
		}
		card.Lines = append(card.Lines, "", verdict)
		card.Focused = m.report.Compatible
	}

	return card.Render()
}

func (m *Model) Title() string {
	return "Install"
}

// HasOpenModal returns true if the module has an open modal/dialog
func (m *Model) HasOpenModal() bool {
	return false
}
