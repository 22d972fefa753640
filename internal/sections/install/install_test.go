package install

import (
	"testing"

	"github.com/caioricciuti/quicklook-landing/internal/compat"
	"github.com/caioricciuti/quicklook-landing/internal/content"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func windowsHost() compat.HostInfo {
	return compat.HostInfo{
		OS:              "windows",
		PlatformVersion: "10.0.22631 Build 22631",
		Arch:            "amd64",
		DiskPath:        `C:\`,
		DiskFree:        100 << 30,
		MemoryTotal:     8 << 30,
	}
}

func TestInitRunsCheckOnce(t *testing.T) {
	calls := 0
	m := New(func() compat.HostInfo {
		calls++
		return windowsHost()
	})

	cmd := m.Init()
	require.NotNil(t, cmd)
	assert.Nil(t, m.Init(), "check already in flight")

	m.Update(cmd())
	assert.Equal(t, 1, calls)
	require.NotNil(t, m.report)
	assert.True(t, m.report.Compatible)
	assert.Nil(t, m.Init(), "report already present")
}

func TestViewShowsStepsAndReport(t *testing.T) {
	m := New(windowsHost)
	m.Update(tea.WindowSizeMsg{Width: 140, Height: 60})

	view := m.View()
	assert.Contains(t, view, content.InstallTitle)
	assert.Contains(t, view, "Checking...")

	m.Update(m.Init()())
	view = m.View()
	for _, s := range content.Steps {
		assert.Contains(t, view, s.Title)
	}
	assert.Contains(t, view, "System Requirements")
	assert.Contains(t, view, "Ready for QuickLook")
}

func TestViewIncompatibleHost(t *testing.T) {
	m := New(func() compat.HostInfo {
		return compat.HostInfo{OS: "linux", Arch: "amd64", DiskFree: 1 << 30}
	})
	m.Update(tea.WindowSizeMsg{Width: 140, Height: 60})
	m.Update(m.Init()())

	assert.Contains(t, m.View(), "cannot be installed here")
}

func TestRecheckKey(t *testing.T) {
	m := New(windowsHost)
	m.Update(m.Init()())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	require.NotNil(t, cmd)
	assert.True(t, m.checking)

	_, again := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	assert.Nil(t, again, "no second check while one is running")
}
