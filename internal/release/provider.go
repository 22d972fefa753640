package release

import (
	"context"
	"sync"

	"github.com/caioricciuti/quicklook-landing/internal/logger"
)

// Provider owns the release view state for one page surface.
//
// Start triggers a single fetch; the state moves from loading to success or
// failure exactly once. After Stop, a late result is dropped and the state
// stays as it was at teardown.
type Provider struct {
	fetcher  Fetcher
	onChange func(ViewState)

	mu      sync.RWMutex
	state   ViewState
	started bool
	active  bool
	cancel  context.CancelFunc

	done     chan struct{}
	doneOnce sync.Once
}

// ProviderOption configures a Provider.
type ProviderOption func(*Provider)

// WithOnChange registers a callback invoked after the state settles.
// It is never invoked once the provider is stopped.
func WithOnChange(fn func(ViewState)) ProviderOption {
	return func(p *Provider) {
		p.onChange = fn
	}
}

// NewProvider creates a provider in the loading state.
func NewProvider(fetcher Fetcher, opts ...ProviderOption) *Provider {
	p := &Provider{
		fetcher: fetcher,
		state:   loadingState(),
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Start launches the one fetch for this provider. Calls after the first are no-ops.
func (p *Provider) Start(ctx context.Context) {
	p.mu.Lock()
	if p.started {
		p.mu.Unlock()
		return
	}
	p.started = true
	p.active = true
	ctx, p.cancel = context.WithCancel(ctx)
	p.mu.Unlock()

	logger.Debug("Fetching latest release")
	go p.load(ctx)
}

// Stop detaches the provider. The in-flight request is cancelled and any
// result that still arrives is discarded.
func (p *Provider) Stop() {
	p.mu.Lock()
	if !p.started {
		// stopped before it ever ran; keep later Start calls inert
		p.started = true
		p.mu.Unlock()
		p.closeDone()
		return
	}
	if !p.active {
		p.mu.Unlock()
		return
	}
	p.active = false
	cancel := p.cancel
	p.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	p.closeDone()
}

// Snapshot returns a copy of the current state
func (p *Provider) Snapshot() ViewState {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.state
}

// Done is closed once the state settles or the provider is stopped
func (p *Provider) Done() <-chan struct{} {
	return p.done
}

func (p *Provider) load(ctx context.Context) {
	rel, err := p.fetcher.FetchLatestRelease(ctx)
	p.apply(rel, err)
}

func (p *Provider) apply(rel *Release, err error) {
	p.mu.Lock()
	if !p.active {
		p.mu.Unlock()
		logger.Debug("Discarding release result after teardown")
		return
	}
	p.active = false

	if err != nil {
		logger.Warn("Release fetch failed (%s): %v", Kind(err), err)
		p.state = ViewState{Err: err.Error()}
	} else if rel == nil {
		logger.Warn("Release fetch returned no release")
		p.state = ViewState{Err: "Failed to fetch release information"}
	} else {
		installer := SelectPrimaryInstaller(rel.Assets)
		if installer == nil {
			logger.Info("Release %s has no .msi or .exe asset", rel.TagName)
		} else {
			logger.Info("Resolved release %s, installer %s", rel.TagName, installer.Name)
		}
		p.state = ViewState{
			Version:   rel.Version,
			Release:   rel,
			Installer: installer,
		}
	}
	state := p.state
	cancel := p.cancel
	p.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if p.onChange != nil {
		p.onChange(state)
	}
	p.closeDone()
}

func (p *Provider) closeDone() {
	p.doneOnce.Do(func() { close(p.done) })
}
