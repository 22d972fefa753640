package release

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultAPIBase   = "https://api.github.com"
	DefaultOwner     = "QL-Win"
	DefaultRepo      = "QuickLook"
	DefaultTimeout   = 30 * time.Second
	DefaultUserAgent = "quicklook-landing"

	acceptHeader = "application/vnd.github.v3+json"

	// release payloads are a few KB; anything this large is not a release
	maxBodyBytes = 8 << 20
)

// Fetcher resolves the latest upstream release
type Fetcher interface {
	FetchLatestRelease(ctx context.Context) (*Release, error)
}

// Observer is told about every fetch attempt. Used for metrics.
type Observer interface {
	ObserveFetch(kind string, elapsed time.Duration)
}

// Client talks to the GitHub releases API for one fixed repository
type Client struct {
	apiBase    string
	owner      string
	repo       string
	userAgent  string
	httpClient *http.Client
	observer   Observer
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithAPIBase points the client at another API root (GitHub Enterprise, tests).
func WithAPIBase(base string) ClientOption {
	return func(c *Client) {
		c.apiBase = strings.TrimRight(base, "/")
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithObserver registers a fetch observer.
func WithObserver(o Observer) ClientOption {
	return func(c *Client) {
		c.observer = o
	}
}

// NewClient creates a release client for owner/repo.
func NewClient(owner, repo string, opts ...ClientOption) *Client {
	c := &Client{
		apiBase:   DefaultAPIBase,
		owner:     owner,
		repo:      repo,
		userAgent: DefaultUserAgent,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// LatestReleaseURL returns the endpoint queried by FetchLatestRelease
func (c *Client) LatestReleaseURL() string {
	return fmt.Sprintf("%s/repos/%s/%s/releases/latest", c.apiBase, c.owner, c.repo)
}

// ReleasesPageURL returns the human-facing releases page of the repository
func (c *Client) ReleasesPageURL() string {
	return fmt.Sprintf("https://github.com/%s/%s/releases", c.owner, c.repo)
}

// FetchLatestRelease queries the API for the latest release and normalizes it.
// It makes exactly one request and never retries.
func (c *Client) FetchLatestRelease(ctx context.Context) (rel *Release, err error) {
	start := time.Now()
	defer func() {
		if c.observer != nil {
			c.observer.ObserveFetch(Kind(err), time.Since(start))
		}
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.LatestReleaseURL(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		return nil, &HTTPStatusError{StatusCode: resp.StatusCode}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &NetworkError{Err: err}
	}

	return parseRelease(data)
}

type releasePayload struct {
	TagName     *string         `json:"tag_name"`
	PublishedAt *time.Time      `json:"published_at"`
	Body        *string         `json:"body"`
	Assets      *[]assetPayload `json:"assets"`
}

type assetPayload struct {
	Name               *string `json:"name"`
	BrowserDownloadURL *string `json:"browser_download_url"`
	Size               *int64  `json:"size"`
	DownloadCount      *int64  `json:"download_count"`
	ContentType        string  `json:"content_type"`
}

func parseRelease(data []byte) (*Release, error) {
	var p releasePayload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, &MalformedResponseError{Reason: "failed to parse release data", Err: err}
	}

	if p.TagName == nil || strings.TrimSpace(*p.TagName) == "" {
		return nil, &MalformedResponseError{Reason: "missing tag_name"}
	}
	if p.PublishedAt == nil {
		return nil, &MalformedResponseError{Reason: "missing published_at"}
	}
	if p.Assets == nil {
		return nil, &MalformedResponseError{Reason: "missing assets"}
	}

	tag := strings.TrimSpace(*p.TagName)
	rel := &Release{
		Version:     strings.TrimPrefix(tag, "v"),
		TagName:     tag,
		PublishedAt: *p.PublishedAt,
		Assets:      make([]Asset, 0, len(*p.Assets)),
	}
	// body is null for releases published without notes
	if p.Body != nil {
		rel.Notes = *p.Body
	}

	for i, a := range *p.Assets {
		if a.Name == nil || *a.Name == "" {
			return nil, &MalformedResponseError{Reason: fmt.Sprintf("asset %d: missing name", i)}
		}
		if a.BrowserDownloadURL == nil || *a.BrowserDownloadURL == "" {
			return nil, &MalformedResponseError{Reason: fmt.Sprintf("asset %q: missing browser_download_url", *a.Name)}
		}
		var size, count int64
		if a.Size != nil {
			size = *a.Size
		}
		if a.DownloadCount != nil {
			count = *a.DownloadCount
		}
		if size < 0 || count < 0 {
			return nil, &MalformedResponseError{Reason: fmt.Sprintf("asset %q: negative size or download_count", *a.Name)}
		}
		rel.Assets = append(rel.Assets, Asset{
			Name:          *a.Name,
			DownloadURL:   *a.BrowserDownloadURL,
			SizeBytes:     size,
			DownloadCount: count,
			ContentType:   a.ContentType,
		})
	}

	return rel, nil
}
