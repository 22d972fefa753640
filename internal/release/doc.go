// Package release resolves the latest published QuickLook release for the
// landing page.
//
// This package handles:
//   - Querying the GitHub releases API for the latest release (Client)
//   - Picking the primary installer among its assets (SelectPrimaryInstaller)
//   - Formatting sizes and dates for display (FormatByteSize, FormatRelativeTime)
//   - Holding the loading/success/failure view state for a page (Provider)
//
// It knows nothing about how the page is drawn. Both the terminal page and
// the HTTP page read ViewState snapshots from a Provider they own:
//
//	client := release.NewClient(release.DefaultOwner, release.DefaultRepo)
//	p := release.NewProvider(client)
//	p.Start(ctx)
//	defer p.Stop()
//	<-p.Done()
//	state := p.Snapshot()
package release
