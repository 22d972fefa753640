package purge

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/caioricciuti/quicklook-landing/internal/console"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type answer struct {
	yes bool
	err error
}

func (a answer) Confirm(string) (bool, error) {
	return a.yes, a.err
}

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))
}

func setup(t *testing.T) Options {
	t.Helper()
	root := t.TempDir()
	opts := Options{
		ConfigDir:   filepath.Join(root, "home", ".quicklook-landing"),
		DownloadDir: filepath.Join(root, "Downloads"),
		FallbackDir: filepath.Join(root, "work", ".quicklook-landing"),
	}
	writeFile(t, filepath.Join(opts.ConfigDir, "config.yaml"), "log_level: info\n")
	writeFile(t, filepath.Join(opts.ConfigDir, "debug.log"), "line\n")
	writeFile(t, filepath.Join(opts.DownloadDir, "QuickLook-3.7.3.msi"), "msi")
	writeFile(t, filepath.Join(opts.DownloadDir, "QuickLook-3.7.3.msi.sha256"), "sum")
	writeFile(t, filepath.Join(opts.DownloadDir, "holiday.jpg"), "jpg")
	return opts
}

func TestPlanListsExistingTargets(t *testing.T) {
	opts := setup(t)

	targets, err := Plan(opts)
	require.NoError(t, err)
	require.Len(t, targets, 2, "missing fallback dir and non-installers are skipped")

	assert.Equal(t, opts.ConfigDir, targets[0].Path)
	assert.True(t, targets[0].IsDir)
	assert.Equal(t, int64(len("log_level: info\n")+len("line\n")), targets[0].Bytes)

	assert.Equal(t, filepath.Join(opts.DownloadDir, "QuickLook-3.7.3.msi"), targets[1].Path)
	assert.Equal(t, int64(3), targets[1].Bytes)
}

func TestPlanDeduplicatesSameDirectory(t *testing.T) {
	opts := setup(t)
	opts.FallbackDir = opts.ConfigDir

	targets, err := Plan(opts)
	require.NoError(t, err)
	assert.Len(t, targets, 2)
}

func TestPlanForeignDirectoryOnlyOwnedFiles(t *testing.T) {
	home := t.TempDir()
	writeFile(t, filepath.Join(home, "config.yaml"), "log_level: info\n")
	writeFile(t, filepath.Join(home, "debug.log"), "line\n")
	writeFile(t, filepath.Join(home, "Documents", "thesis.txt"), "keep me")

	targets, err := Plan(Options{ConfigDir: home, FallbackDir: filepath.Join(home, "missing")})
	require.NoError(t, err)
	require.Len(t, targets, 2)
	for _, target := range targets {
		assert.False(t, target.IsDir)
		assert.NotEqual(t, home, target.Path)
	}

	n, err := Run(Options{ConfigDir: home, FallbackDir: filepath.Join(home, "missing")},
		&console.Printer{Out: &bytes.Buffer{}, Plain: true}, answer{yes: true})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.NoFileExists(t, filepath.Join(home, "config.yaml"))
	assert.NoFileExists(t, filepath.Join(home, "debug.log"))
	assert.FileExists(t, filepath.Join(home, "Documents", "thesis.txt"))
	assert.DirExists(t, home)
}

func TestRunRemovesAfterConfirm(t *testing.T) {
	opts := setup(t)
	var buf bytes.Buffer

	n, err := Run(opts, &console.Printer{Out: &buf, Plain: true}, answer{yes: true})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	assert.NoDirExists(t, opts.ConfigDir)
	assert.NoFileExists(t, filepath.Join(opts.DownloadDir, "QuickLook-3.7.3.msi"))
	assert.FileExists(t, filepath.Join(opts.DownloadDir, "holiday.jpg"))
	assert.Contains(t, buf.String(), "Total size:")
	assert.Contains(t, buf.String(), "QuickLook landing data removed")
}

func TestRunCancelled(t *testing.T) {
	opts := setup(t)
	var buf bytes.Buffer

	n, err := Run(opts, &console.Printer{Out: &buf, Plain: true}, answer{yes: false})
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.DirExists(t, opts.ConfigDir)
	assert.Contains(t, buf.String(), "Purge cancelled")
}

func TestRunPromptError(t *testing.T) {
	opts := setup(t)
	_, err := Run(opts, &console.Printer{Out: &bytes.Buffer{}, Plain: true}, answer{err: errors.New("^C")})
	assert.Error(t, err)
	assert.DirExists(t, opts.ConfigDir)
}

func TestRunNothingToRemove(t *testing.T) {
	root := t.TempDir()
	var buf bytes.Buffer
	n, err := Run(Options{
		ConfigDir:   filepath.Join(root, "missing"),
		DownloadDir: root,
		FallbackDir: filepath.Join(root, "also-missing"),
	}, &console.Printer{Out: &buf, Plain: true}, answer{err: errors.New("should not be asked")})
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Contains(t, buf.String(), "Nothing to remove")
}
