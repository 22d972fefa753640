package release

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gatedFetcher blocks until release is called, then returns rel/err
type gatedFetcher struct {
	calls   atomic.Int32
	gate    chan struct{}
	rel     *Release
	err     error
	sawDone chan struct{}
}

func newGatedFetcher(rel *Release, err error) *gatedFetcher {
	return &gatedFetcher{
		gate:    make(chan struct{}),
		rel:     rel,
		err:     err,
		sawDone: make(chan struct{}),
	}
}

func (g *gatedFetcher) FetchLatestRelease(ctx context.Context) (*Release, error) {
	g.calls.Add(1)
	<-g.gate
	select {
	case <-ctx.Done():
		close(g.sawDone)
	default:
	}
	return g.rel, g.err
}

func (g *gatedFetcher) release() { close(g.gate) }

func waitDone(t *testing.T, p *Provider) {
	t.Helper()
	select {
	case <-p.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("provider never settled")
	}
}

func TestProviderStartsLoading(t *testing.T) {
	f := newGatedFetcher(&Release{Version: "1"}, nil)
	p := NewProvider(f)

	assert.Equal(t, ViewState{IsLoading: true}, p.Snapshot())

	p.Start(context.Background())
	assert.Equal(t, ViewState{IsLoading: true}, p.Snapshot())

	f.release()
	waitDone(t, p)
}

func TestProviderSuccess(t *testing.T) {
	server := newTestServer(t, http.StatusOK, latestPayload)
	p := NewProvider(NewClient("owner", "repo", WithAPIBase(server.URL)))

	p.Start(context.Background())
	waitDone(t, p)

	state := p.Snapshot()
	assert.False(t, state.IsLoading)
	assert.Empty(t, state.Err)
	assert.Equal(t, "1.2.3", state.Version)
	require.NotNil(t, state.Release)
	require.NotNil(t, state.Installer)
	assert.Equal(t, "App-Setup.msi", state.Installer.Name)
	assert.True(t, state.Succeeded())
	assert.True(t, state.HasInstaller())
	assert.False(t, state.Failed())
}

func TestProviderNotFound(t *testing.T) {
	server := newTestServer(t, http.StatusNotFound, `{"message":"Not Found"}`)
	p := NewProvider(NewClient("owner", "repo", WithAPIBase(server.URL)))

	p.Start(context.Background())
	waitDone(t, p)

	state := p.Snapshot()
	assert.False(t, state.IsLoading)
	assert.Empty(t, state.Version)
	assert.Nil(t, state.Release)
	assert.Nil(t, state.Installer)
	assert.NotEmpty(t, state.Err)
	assert.True(t, state.Failed())
	assert.False(t, state.HasInstaller())
}

func TestProviderSuccessWithoutInstaller(t *testing.T) {
	f := newGatedFetcher(&Release{Version: "2.0", TagName: "v2.0", Assets: names("src.zip")}, nil)
	p := NewProvider(f)
	p.Start(context.Background())
	f.release()
	waitDone(t, p)

	state := p.Snapshot()
	assert.True(t, state.Succeeded())
	assert.Nil(t, state.Installer)
	assert.Equal(t, "2.0", state.Version)
	assert.Empty(t, state.Err)
}

func TestProviderNilReleaseIsFailure(t *testing.T) {
	f := newGatedFetcher(nil, nil)
	p := NewProvider(f)
	p.Start(context.Background())
	f.release()
	waitDone(t, p)

	assert.True(t, p.Snapshot().Failed())
}

func TestProviderFetchesOnce(t *testing.T) {
	f := newGatedFetcher(&Release{Version: "1"}, nil)
	p := NewProvider(f)

	p.Start(context.Background())
	p.Start(context.Background())
	f.release()
	waitDone(t, p)
	p.Start(context.Background())

	assert.Equal(t, int32(1), f.calls.Load())
}

func TestProviderOnChange(t *testing.T) {
	f := newGatedFetcher(nil, errors.New("boom"))
	var got []ViewState
	p := NewProvider(f, WithOnChange(func(s ViewState) { got = append(got, s) }))

	p.Start(context.Background())
	f.release()
	waitDone(t, p)

	require.Len(t, got, 1)
	assert.Equal(t, ViewState{Err: "boom"}, got[0])
}

func TestProviderStopDiscardsLateResult(t *testing.T) {
	f := newGatedFetcher(&Release{Version: "9.9.9", Assets: names("a.msi")}, nil)
	changed := make(chan ViewState, 1)
	p := NewProvider(f, WithOnChange(func(s ViewState) { changed <- s }))

	p.Start(context.Background())
	before := p.Snapshot()
	p.Stop()
	waitDone(t, p)

	f.release()
	select {
	case <-f.sawDone:
	case <-time.After(2 * time.Second):
		t.Fatal("fetch context was not cancelled")
	}

	// let the goroutine run apply()
	assert.Never(t, func() bool { return len(changed) > 0 }, 100*time.Millisecond, 10*time.Millisecond)
	assert.Equal(t, before, p.Snapshot())
	assert.True(t, p.Snapshot().IsLoading)
}

func TestProviderStopBeforeStart(t *testing.T) {
	f := newGatedFetcher(&Release{Version: "1"}, nil)
	p := NewProvider(f)

	p.Stop()
	waitDone(t, p)
	p.Start(context.Background())

	assert.Equal(t, int32(0), f.calls.Load())
	assert.True(t, p.Snapshot().IsLoading)
}

func TestProviderStopAfterSettleKeepsState(t *testing.T) {
	f := newGatedFetcher(&Release{Version: "1.0", Assets: names("a.exe")}, nil)
	p := NewProvider(f)
	p.Start(context.Background())
	f.release()
	waitDone(t, p)

	settled := p.Snapshot()
	p.Stop()
	assert.Equal(t, settled, p.Snapshot())
}
