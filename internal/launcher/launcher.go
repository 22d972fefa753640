// Package launcher hands URLs to the desktop: the default browser or the
// system clipboard.
package launcher

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/atotto/clipboard"
)

// Swapped in tests so no real browser or clipboard is touched
var (
	startCommand = func(name string, args ...string) error {
		_, err := startDetached(exec.Command(name, args...))
		return err
	}
	writeClipboard = clipboard.WriteAll
)

// startDetached starts cmd and reaps it in the background. The returned
// channel yields the exit result once the process is gone.
func startDetached(cmd *exec.Cmd) (<-chan error, error) {
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	exited := make(chan error, 1)
	go func() {
		exited <- cmd.Wait()
	}()
	return exited, nil
}

// OpenURL opens url in the default browser without waiting for it
func OpenURL(url string) error {
	name, args := browserCommand(runtime.GOOS, url)
	if name == "" {
		return fmt.Errorf("opening a browser is not supported on %s", runtime.GOOS)
	}
	if err := startCommand(name, args...); err != nil {
		return fmt.Errorf("failed to open %s: %w", url, err)
	}
	return nil
}

// Copy puts text on the system clipboard
func Copy(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("clipboard is not available on this system")
	}
	if err := writeClipboard(text); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	return nil
}

func browserCommand(goos, url string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{url}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", url}
	case "linux", "freebsd", "openbsd", "netbsd":
		return "xdg-open", []string{url}
	default:
		return "", nil
	}
}
