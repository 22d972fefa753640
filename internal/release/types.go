package release

import (
	"strings"
	"time"

	"golang.org/x/mod/semver"
)

// Asset is one downloadable artifact attached to a release
type Asset struct {
	Name          string `json:"name"`
	DownloadURL   string `json:"download_url"`
	SizeBytes     int64  `json:"size_bytes"`
	DownloadCount int64  `json:"download_count"`
	ContentType   string `json:"content_type"`
}

// Release is the normalized snapshot of one upstream release
type Release struct {
	Version     string    `json:"version"`
	TagName     string    `json:"tag_name"`
	PublishedAt time.Time `json:"published_at"`
	Notes       string    `json:"notes"`
	Assets      []Asset   `json:"assets"`
}

// FindAsset finds an asset by name in the release
func (r *Release) FindAsset(name string) *Asset {
	for i := range r.Assets {
		if r.Assets[i].Name == name {
			return &r.Assets[i]
		}
	}
	return nil
}

// ChecksumFor returns the companion "<name>.sha256" asset, if the release ships one
func (r *Release) ChecksumFor(a *Asset) *Asset {
	if a == nil {
		return nil
	}
	want := strings.ToLower(a.Name + ".sha256")
	for i := range r.Assets {
		if strings.ToLower(r.Assets[i].Name) == want {
			return &r.Assets[i]
		}
	}
	return nil
}

// IsPrerelease reports whether the tag carries a semver prerelease suffix
// (v4.0.0-beta.1). Tags that are not semver are treated as stable.
func (r *Release) IsPrerelease() bool {
	tag := r.TagName
	if !strings.HasPrefix(tag, "v") {
		tag = "v" + tag
	}
	if !semver.IsValid(tag) {
		return false
	}
	return semver.Prerelease(tag) != ""
}

// ViewState is the read-only snapshot handed to views.
//
// Exactly one of three shapes holds: loading (IsLoading, no Release, no Err),
// success (Release set, Err empty) or failure (Release nil, Err set).
type ViewState struct {
	Version   string   `json:"version,omitempty"`
	Release   *Release `json:"release,omitempty"`
	Installer *Asset   `json:"installer,omitempty"`
	IsLoading bool     `json:"is_loading"`
	Err       string   `json:"error,omitempty"`
}

// Succeeded reports whether the state holds a resolved release
func (s ViewState) Succeeded() bool {
	return !s.IsLoading && s.Release != nil && s.Err == ""
}

// Failed reports whether the state holds a fetch failure
func (s ViewState) Failed() bool {
	return !s.IsLoading && s.Err != ""
}

// HasInstaller reports whether a download call-to-action can be shown
func (s ViewState) HasInstaller() bool {
	return s.Succeeded() && s.Installer != nil
}

func loadingState() ViewState {
	return ViewState{IsLoading: true}
}
