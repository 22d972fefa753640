package events

import (
	"fmt"

	"github.com/caioricciuti/quicklook-landing/internal/launcher"
	tea "github.com/charmbracelet/bubbletea"
)

// OpenURL opens url in the browser and reports the outcome as a Status
func OpenURL(label, url string) tea.Cmd {
	return func() tea.Msg {
		if err := launcher.OpenURL(url); err != nil {
			return Status{Note: fmt.Sprintf("Unable to open %s: %v (%s)", label, err, url), Error: true}
		}
		return Status{Note: fmt.Sprintf("Opening %s in your browser…", label)}
	}
}

// CopyURL copies url to the clipboard and reports the outcome as a Status
func CopyURL(url string) tea.Cmd {
	return func() tea.Msg {
		if err := launcher.Copy(url); err != nil {
			return Status{Note: fmt.Sprintf("Copy failed: %v (%s)", err, url), Error: true}
		}
		return Status{Note: "Copied to clipboard: " + url}
	}
}
