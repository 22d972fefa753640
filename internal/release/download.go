package release

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// DownloadResult describes a finished installer download
type DownloadResult struct {
	Path     string
	Bytes    int64
	Verified bool // checksum asset was present and matched
}

// DownloadInstaller saves the installer into dir and, when the release ships
// a companion .sha256 asset, verifies the file against it. The download goes
// to a temporary file that replaces the destination only once it is complete
// and verified; a file already at the destination survives any failure.
func DownloadInstaller(ctx context.Context, client *http.Client, rel *Release, installer *Asset, dir string) (*DownloadResult, error) {
	if installer == nil {
		return nil, fmt.Errorf("release %s has no installer asset", rel.TagName)
	}
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create download directory: %w", err)
	}

	name := filepath.Base(installer.Name)
	destPath := filepath.Join(dir, name)

	var expected string
	if checksumAsset := rel.ChecksumFor(installer); checksumAsset != nil {
		sum, err := fetchChecksum(ctx, client, checksumAsset.DownloadURL)
		if err != nil {
			return nil, fmt.Errorf("failed to download checksum: %w", err)
		}
		expected = sum
	}

	tmp, err := os.CreateTemp(dir, "."+name+".*.part")
	if err != nil {
		return nil, fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // no-op once renamed

	n, actual, err := downloadFile(ctx, client, installer.DownloadURL, tmp)
	if closeErr := tmp.Close(); err == nil && closeErr != nil {
		err = closeErr
	}
	if err != nil {
		return nil, fmt.Errorf("failed to download installer: %w", err)
	}

	if expected != "" && actual != expected {
		return nil, fmt.Errorf(`checksum verification failed for %s

Expected: %s
Actual:   %s

The downloaded file may be corrupted or tampered with and was discarded.`, installer.Name, expected, actual)
	}

	if err := os.Chmod(tmpPath, 0644); err != nil {
		return nil, fmt.Errorf("failed to set permissions on %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		return nil, fmt.Errorf("failed to move installer into place: %w", err)
	}

	return &DownloadResult{Path: destPath, Bytes: n, Verified: expected != ""}, nil
}

// downloadFile streams url into out and returns the byte count and SHA-256
func downloadFile(ctx context.Context, client *http.Client, url string, out io.Writer) (int64, string, error) {
	resp, err := get(ctx, client, url)
	if err != nil {
		return 0, "", err
	}
	defer resp.Body.Close()

	h := sha256.New()
	n, err := io.Copy(io.MultiWriter(out, h), resp.Body)
	if err != nil {
		return n, "", err
	}
	return n, hex.EncodeToString(h.Sum(nil)), nil
}

// fetchChecksum reads a checksum file ("abc123  filename" or just "abc123")
func fetchChecksum(ctx context.Context, client *http.Client, url string) (string, error) {
	resp, err := get(ctx, client, url)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return "", err
	}
	return parseChecksum(string(data))
}

func parseChecksum(content string) (string, error) {
	parts := strings.Fields(content)
	if len(parts) == 0 {
		return "", fmt.Errorf("invalid checksum file: empty")
	}
	sum := strings.ToLower(parts[0])
	if len(sum) != sha256.Size*2 {
		return "", fmt.Errorf("invalid checksum file: %q is not a SHA-256 digest", parts[0])
	}
	if _, err := hex.DecodeString(sum); err != nil {
		return "", fmt.Errorf("invalid checksum file: %w", err)
	}
	return sum, nil
}

func get(ctx context.Context, client *http.Client, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", DefaultUserAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, &HTTPStatusError{StatusCode: resp.StatusCode}
	}
	return resp, nil
}
