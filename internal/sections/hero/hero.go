// Package hero renders the top of the landing page: the pitch and the
// download call-to-action fed by the latest upstream release.
package hero

import (
	"strings"

	"github.com/caioricciuti/quicklook-landing/internal/content"
	"github.com/caioricciuti/quicklook-landing/internal/release"
	"github.com/caioricciuti/quicklook-landing/internal/ui/components"
	"github.com/caioricciuti/quicklook-landing/internal/ui/events"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

type keyMap struct {
	Download key.Binding
	Copy     key.Binding
	Releases key.Binding
	Repo     key.Binding
	Up       key.Binding
	Down     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Download: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "download")),
		Copy:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy link")),
		Releases: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "all releases")),
		Repo:     key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "GitHub")),
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll notes")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll notes")),
	}
}

// Model is the hero section
type Model struct {
	state       release.ViewState
	releasesURL string
	notesStyle  string

	keys    keyMap
	spinner spinner.Model
	notes   viewport.Model

	width       int
	height      int
	status      string
	statusError bool
}

// New creates the hero section in the loading state
func New(releasesURL, notesStyle string) *Model {
	s := spinner.New()
	s.Spinner = spinner.Points
	s.Style = lipgloss.NewStyle().Foreground(components.DefaultTheme().Primary)

	if notesStyle == "" {
		notesStyle = "dark"
	}

	return &Model{
		state:       release.ViewState{IsLoading: true},
		releasesURL: releasesURL,
		notesStyle:  notesStyle,
		keys:        defaultKeyMap(),
		spinner:     s,
		notes:       viewport.New(60, 8),
	}
}

func (m *Model) Init() tea.Cmd {
	if m.state.IsLoading {
		return m.spinner.Tick
	}
	return nil
}

func (m *Model) Update(msg tea.Msg) (interface{}, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeNotes()

	case spinner.TickMsg:
		if !m.state.IsLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case events.ReleaseResolved:
		m.state = msg.State
		m.renderNotes()

	case events.Focus, events.Blur:
		m.status = ""

	case events.Status:
		m.status = msg.Note
		m.statusError = msg.Error

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Download):
			if m.state.HasInstaller() {
				return m, events.OpenURL("installer", m.state.Installer.DownloadURL)
			}
			return m, events.OpenURL("releases page", m.releasesURL)
		case key.Matches(msg, m.keys.Copy):
			if m.state.HasInstaller() {
				return m, events.CopyURL(m.state.Installer.DownloadURL)
			}
			return m, events.CopyURL(m.releasesURL)
		case key.Matches(msg, m.keys.Releases):
			return m, events.OpenURL("releases page", m.releasesURL)
		case key.Matches(msg, m.keys.Repo):
			return m, events.OpenURL("GitHub", content.RepoURL)
		case key.Matches(msg, m.keys.Up):
			m.notes.LineUp(1)
		case key.Matches(msg, m.keys.Down):
			m.notes.LineDown(1)
		}
	}

	return m, nil
}

func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	styles := components.NewBaseStyles()
	width := m.contentWidth()

	var b strings.Builder
	b.WriteString(styles.Badge("★ "+content.Tagline, styles.Theme.Primary))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(styles.Theme.Foreground).Render(content.Headline))
	b.WriteString("\n")
	b.WriteString(styles.Muted().Width(width).Render(content.Lead))
	b.WriteString("\n\n")
	b.WriteString(m.renderCallToAction(styles, width))

	if m.state.Succeeded() && m.state.Release.Notes != "" {
		b.WriteString("\n\n")
		b.WriteString(styles.Subtitle().Render("Release notes"))
		b.WriteString("\n")
		b.WriteString(styles.Box(width, styles.Theme.Border).Render(m.notes.View()))
	}

	b.WriteString("\n\n")
	b.WriteString(m.renderKeys(styles))

	if m.status != "" {
		b.WriteString("\n\n")
		b.WriteString(components.StatusLine(m.status, m.statusError, width))
	}

	return b.String()
}

func (m *Model) renderCallToAction(styles *components.BaseStyles, width int) string {
	switch {
	case m.state.IsLoading:
		return m.spinner.View() + " " + styles.Muted().Render("Loading...")

	case m.state.Failed():
		lines := []string{
			styles.Warning().Render("Latest release unavailable"),
			styles.Muted().Render(components.TruncateString(m.state.Err, width)),
			styles.Hint("Downloads are still available at " + m.releasesURL),
		}
		return strings.Join(lines, "\n")

	case !m.state.HasInstaller():
		rel := m.state.Release
		lines := []string{
			styles.Title().Render("v"+rel.Version) + styles.Muted().Render("  released "+release.FormatRelativeTime(rel.PublishedAt)),
			styles.Hint("No Windows installer in this release. Browse all assets at " + m.releasesURL),
		}
		return strings.Join(lines, "\n")
	}

	rel := m.state.Release
	inst := m.state.Installer

	button := lipgloss.NewStyle().
		Bold(true).
		Foreground(styles.Theme.Foreground).
		Background(styles.Theme.Primary).
		Padding(0, 2).
		Render("⬇ Download v" + m.state.Version)
	if rel.IsPrerelease() {
		button = lipgloss.JoinHorizontal(lipgloss.Center, button, " ", styles.Badge("pre-release", styles.Theme.Warning))
	}

	dot := lipgloss.NewStyle().Foreground(styles.Theme.Success).Render("●")
	info := []string{
		dot + " Latest release: " + release.FormatRelativeTime(rel.PublishedAt),
		release.FormatByteSize(inst.SizeBytes),
		release.FormatCount(inst.DownloadCount) + " downloads",
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		button,
		"",
		styles.Muted().Render(strings.Join(info, "   ")),
		styles.Muted().Render(components.TruncateString(inst.Name, width)),
	)
}

func (m *Model) renderKeys(styles *components.BaseStyles) string {
	bindings := []key.Binding{m.keys.Download, m.keys.Copy, m.keys.Releases, m.keys.Repo}
	if m.state.Succeeded() && m.state.Release.Notes != "" {
		bindings = append(bindings, m.keys.Down)
	}

	var parts []string
	for _, kb := range bindings {
		h := kb.Help()
		parts = append(parts, styles.KeyBinding(h.Key, h.Desc))
	}
	return strings.Join(parts, "  •  ")
}

func (m *Model) contentWidth() int {
	w := m.width - 8
	if w > 100 {
		w = 100
	}
	if w < 30 {
		w = 30
	}
	return w
}

func (m *Model) resizeNotes() {
	m.notes.Width = m.contentWidth() - 4
	h := m.height / 3
	if h < 5 {
		h = 5
	}
	m.notes.Height = h
	m.renderNotes()
}

func (m *Model) renderNotes() {
	if !m.state.Succeeded() || m.state.Release.Notes == "" {
		m.notes.SetContent("")
		return
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(m.notesStyle),
		glamour.WithWordWrap(m.notes.Width),
	)
	if err != nil {
		m.notes.SetContent(m.state.Release.Notes)
		return
	}
	out, err := renderer.Render(m.state.Release.Notes)
	if err != nil {
		m.notes.SetContent(m.state.Release.Notes)
		return
	}
	m.notes.SetContent(strings.TrimSpace(out))
	m.notes.GotoTop()
}

func (m *Model) Title() string {
	return "Download"
}

// HasOpenModal returns true if the module has an open modal/dialog
func (m *Model) HasOpenModal() bool {
	return false
}

// State returns the release view state the section last received
func (m *Model) State() release.ViewState {
	return m.state
}
