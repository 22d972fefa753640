package release

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const latestPayload = `{
  "tag_name": "v1.2.3",
  "published_at": "2025-06-01T10:00:00Z",
  "body": "## Changes\n- faster previews",
  "assets": [
    {
      "name": "App-Setup.exe",
      "browser_download_url": "https://example.com/App-Setup.exe",
      "size": 1572864,
      "download_count": 42,
      "content_type": "application/x-msdownload"
    },
    {
      "name": "App-Setup.msi",
      "browser_download_url": "https://example.com/App-Setup.msi",
      "size": 2048,
      "download_count": 7,
      "content_type": "application/x-msi"
    }
  ]
}`

func newTestServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/owner/repo/releases/latest" {
			t.Errorf("unexpected path: %s", r.URL.Path)
			http.NotFound(w, r)
			return
		}
		assert.Equal(t, "application/vnd.github.v3+json", r.Header.Get("Accept"))
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestNewClientDefaults(t *testing.T) {
	c := NewClient("owner", "repo")
	assert.Equal(t, "https://api.github.com/repos/owner/repo/releases/latest", c.LatestReleaseURL())
	assert.Equal(t, "https://github.com/owner/repo/releases", c.ReleasesPageURL())
	require.NotNil(t, c.httpClient)
	assert.Equal(t, DefaultTimeout, c.httpClient.Timeout)
}

func TestNewClientWithOptions(t *testing.T) {
	custom := &http.Client{}
	c := NewClient("owner", "repo",
		WithAPIBase("http://ghe.local/api/v3/"),
		WithHTTPClient(custom),
		WithTimeout(3*time.Second),
		WithUserAgent("tester"),
	)
	assert.Same(t, custom, c.httpClient)
	assert.Equal(t, 3*time.Second, custom.Timeout)
	assert.Equal(t, "tester", c.userAgent)
	assert.Equal(t, "http://ghe.local/api/v3/repos/owner/repo/releases/latest", c.LatestReleaseURL())
}

func TestFetchLatestRelease(t *testing.T) {
	server := newTestServer(t, http.StatusOK, latestPayload)
	c := NewClient("owner", "repo", WithAPIBase(server.URL))

	rel, err := c.FetchLatestRelease(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "1.2.3", rel.Version)
	assert.Equal(t, "v1.2.3", rel.TagName)
	assert.Equal(t, time.Date(2025, time.June, 1, 10, 0, 0, 0, time.UTC), rel.PublishedAt.UTC())
	assert.Equal(t, "## Changes\n- faster previews", rel.Notes)
	require.Len(t, rel.Assets, 2)
	assert.Equal(t, Asset{
		Name:          "App-Setup.exe",
		DownloadURL:   "https://example.com/App-Setup.exe",
		SizeBytes:     1572864,
		DownloadCount: 42,
		ContentType:   "application/x-msdownload",
	}, rel.Assets[0])
	assert.Equal(t, "App-Setup.msi", rel.Assets[1].Name)
}

func TestFetchLatestReleaseTagWithoutPrefix(t *testing.T) {
	server := newTestServer(t, http.StatusOK, `{"tag_name":"3.7.3","published_at":"2025-01-01T00:00:00Z","body":null,"assets":[]}`)
	c := NewClient("owner", "repo", WithAPIBase(server.URL))

	rel, err := c.FetchLatestRelease(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "3.7.3", rel.Version)
	assert.Equal(t, "3.7.3", rel.TagName)
	assert.Empty(t, rel.Notes)
	assert.Empty(t, rel.Assets)
}

func TestFetchLatestReleaseHTTPStatus(t *testing.T) {
	for _, status := range []int{http.StatusNotFound, http.StatusForbidden, http.StatusInternalServerError} {
		server := newTestServer(t, status, `{"message":"nope"}`)
		c := NewClient("owner", "repo", WithAPIBase(server.URL))

		rel, err := c.FetchLatestRelease(context.Background())
		assert.Nil(t, rel)

		var statusErr *HTTPStatusError
		require.True(t, errors.As(err, &statusErr), "status %d: got %v", status, err)
		assert.Equal(t, status, statusErr.StatusCode)
		assert.Equal(t, "http_status", Kind(err))
	}
}

func TestFetchLatestReleaseMalformed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: `<html>rate limited</html>`},
		{name: "array", body: `[]`},
		{name: "missing tag", body: `{"published_at":"2025-01-01T00:00:00Z","assets":[]}`},
		{name: "empty tag", body: `{"tag_name":"","published_at":"2025-01-01T00:00:00Z","assets":[]}`},
		{name: "missing published_at", body: `{"tag_name":"v1","assets":[]}`},
		{name: "bad published_at", body: `{"tag_name":"v1","published_at":"yesterday","assets":[]}`},
		{name: "missing assets", body: `{"tag_name":"v1","published_at":"2025-01-01T00:00:00Z"}`},
		{name: "assets wrong type", body: `{"tag_name":"v1","published_at":"2025-01-01T00:00:00Z","assets":{}}`},
		{name: "asset without name", body: `{"tag_name":"v1","published_at":"2025-01-01T00:00:00Z","assets":[{"browser_download_url":"x"}]}`},
		{name: "asset without url", body: `{"tag_name":"v1","published_at":"2025-01-01T00:00:00Z","assets":[{"name":"a.msi"}]}`},
		{name: "negative size", body: `{"tag_name":"v1","published_at":"2025-01-01T00:00:00Z","assets":[{"name":"a.msi","browser_download_url":"x","size":-1}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newTestServer(t, http.StatusOK, tt.body)
			c := NewClient("owner", "repo", WithAPIBase(server.URL))

			rel, err := c.FetchLatestRelease(context.Background())
			assert.Nil(t, rel)
			var malformed *MalformedResponseError
			require.True(t, errors.As(err, &malformed), "got %v", err)
			assert.Equal(t, "malformed", Kind(err))
		})
	}
}

func TestFetchLatestReleaseNetworkError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	c := NewClient("owner", "repo", WithAPIBase(url))
	_, err := c.FetchLatestRelease(context.Background())

	var netErr *NetworkError
	require.True(t, errors.As(err, &netErr), "got %v", err)
	assert.Equal(t, "network", Kind(err))
}

func TestFetchLatestReleaseCancelledContext(t *testing.T) {
	server := newTestServer(t, http.StatusOK, latestPayload)
	c := NewClient("owner", "repo", WithAPIBase(server.URL))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.FetchLatestRelease(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, "network", Kind(err))
}

type recordingObserver struct {
	mu    sync.Mutex
	kinds []string
}

func (r *recordingObserver) ObserveFetch(kind string, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.kinds = append(r.kinds, kind)
}

func TestFetchLatestReleaseNotifiesObserver(t *testing.T) {
	obs := &recordingObserver{}

	ok := newTestServer(t, http.StatusOK, latestPayload)
	_, err := NewClient("owner", "repo", WithAPIBase(ok.URL), WithObserver(obs)).FetchLatestRelease(context.Background())
	require.NoError(t, err)

	missing := newTestServer(t, http.StatusNotFound, `{}`)
	_, err = NewClient("owner", "repo", WithAPIBase(missing.URL), WithObserver(obs)).FetchLatestRelease(context.Background())
	require.Error(t, err)

	assert.Equal(t, []string{"ok", "http_status"}, obs.kinds)
}

func TestKind(t *testing.T) {
	assert.Equal(t, "ok", Kind(nil))
	assert.Equal(t, "unknown", Kind(errors.New("boom")))
	assert.Equal(t, "network", Kind(&NetworkError{Err: errors.New("dial")}))
}

func TestReleaseIsPrerelease(t *testing.T) {
	tests := []struct {
		tag  string
		want bool
	}{
		{"v4.0.0", false},
		{"4.0.0-beta.1", true},
		{"v4.0.0-rc1", true},
		{"nightly", false},
	}
	for _, tt := range tests {
		r := &Release{TagName: tt.tag}
		assert.Equal(t, tt.want, r.IsPrerelease(), tt.tag)
	}
}

func TestReleaseChecksumFor(t *testing.T) {
	r := &Release{Assets: []Asset{
		{Name: "QuickLook.msi"},
		{Name: "QuickLook.msi.SHA256"},
		{Name: "QuickLook.zip"},
	}}

	sum := r.ChecksumFor(r.FindAsset("QuickLook.msi"))
	require.NotNil(t, sum)
	assert.Equal(t, "QuickLook.msi.SHA256", sum.Name)
	assert.Nil(t, r.ChecksumFor(r.FindAsset("QuickLook.zip")))
	assert.Nil(t, r.ChecksumFor(nil))
	assert.Nil(t, r.FindAsset("missing"))
}
