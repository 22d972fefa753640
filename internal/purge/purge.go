// Package purge removes what the landing page leaves on disk: the config
// directory with its log, the fallback directory and downloaded installers.
package purge

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caioricciuti/quicklook-landing/internal/console"
	"github.com/caioricciuti/quicklook-landing/internal/logger"
	"github.com/caioricciuti/quicklook-landing/internal/release"
)

const appDirName = ".quicklook-landing"

// ownedFiles are removed one by one from a directory not named appDirName
var ownedFiles = []string{"config.yaml", "debug.log"}

// installerPattern matches installers saved by the download command
const installerPattern = "QuickLook*"

// Target is one path scheduled for removal
type Target struct {
	Path  string
	Label string
	Bytes int64
	IsDir bool
}

// Options selects what to remove
type Options struct {
	ConfigDir   string
	DownloadDir string
	// FallbackDir is checked relative to the working directory when empty
	FallbackDir string
}

// Plan lists existing targets. Missing paths are skipped.
func Plan(opts Options) ([]Target, error) {
	var targets []Target

	fallback := opts.FallbackDir
	if fallback == "" {
		fallback = appDirName
	}

	seen := make(map[string]bool)
	for _, dir := range []struct{ path, label string }{
		{opts.ConfigDir, "configuration directory"},
		{fallback, "fallback configuration directory"},
	} {
		if dir.path == "" {
			continue
		}
		abs, err := filepath.Abs(dir.path)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s: %w", dir.path, err)
		}
		if seen[abs] {
			continue
		}
		info, err := os.Stat(abs)
		if err != nil || !info.IsDir() {
			continue
		}
		seen[abs] = true

		if filepath.Base(abs) == appDirName {
			targets = append(targets, Target{Path: abs, Label: dir.label, Bytes: dirSize(abs), IsDir: true})
			continue
		}
		// a directory not named after this tool may hold anything else; only our files go
		for _, name := range ownedFiles {
			path := filepath.Join(abs, name)
			if fi, err := os.Stat(path); err == nil && !fi.IsDir() {
				targets = append(targets, Target{Path: path, Label: name, Bytes: fi.Size()})
			}
		}
	}

	if opts.DownloadDir != "" {
		matches, err := filepath.Glob(filepath.Join(opts.DownloadDir, installerPattern))
		if err != nil {
			return nil, fmt.Errorf("failed to list downloads: %w", err)
		}
		for _, path := range matches {
			info, err := os.Stat(path)
			if err != nil || info.IsDir() || !isInstallerFile(path) {
				continue
			}
			targets = append(targets, Target{Path: path, Label: "downloaded installer", Bytes: info.Size()})
		}
	}

	return targets, nil
}

func isInstallerFile(path string) bool {
	name := strings.ToLower(path)
	return strings.HasSuffix(name, ".msi") || strings.HasSuffix(name, ".exe")
}

func dirSize(dir string) int64 {
	var total int64
	_ = filepath.Walk(dir, func(_ string, info os.FileInfo, err error) error {
		if err == nil && !info.IsDir() {
			total += info.Size()
		}
		return nil
	})
	return total
}

// Run prints the plan, asks once and removes every target. The number of
// removed targets is returned.
func Run(opts Options, p *console.Printer, confirmer console.Confirmer) (int, error) {
	p.Banner("QuickLook Landing Purge")

	targets, err := Plan(opts)
	if err != nil {
		return 0, err
	}
	if len(targets) == 0 {
		p.Info("Nothing to remove")
		return 0, nil
	}

	var total int64
	for _, t := range targets {
		p.Info("%s: %s (%s)", t.Label, t.Path, release.FormatByteSize(t.Bytes))
		total += t.Bytes
	}
	p.Info("Total size: %s", release.FormatByteSize(total))
	p.Println()

	ok, err := confirmer.Confirm(fmt.Sprintf("Remove %d item(s)", len(targets)))
	if err != nil {
		return 0, fmt.Errorf("failed to read response: %w", err)
	}
	if !ok {
		p.Info("Purge cancelled. No changes were made.")
		return 0, nil
	}

	removed := 0
	for _, t := range targets {
		if err := os.RemoveAll(t.Path); err != nil {
			p.Error("Failed to remove %s: %v", t.Path, err)
			logger.Warn("purge: failed to remove %s: %v", t.Path, err)
			continue
		}
		removed++
		p.Success("Removed %s", t.Path)
	}

	if removed < len(targets) {
		return removed, fmt.Errorf("%d of %d item(s) could not be removed", len(targets)-removed, len(targets))
	}
	p.Completion("QuickLook landing data removed ✓")
	return removed, nil
}
