package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/caioricciuti/quicklook-landing/internal/console"
	"github.com/caioricciuti/quicklook-landing/internal/logger"
	"github.com/caioricciuti/quicklook-landing/internal/release"
	"github.com/spf13/cobra"
)

// notesPreviewLines caps the release notes printed by the release command
const notesPreviewLines = 5

// confirmer is swapped by tests
var confirmer console.Confirmer = console.PromptConfirmer{}

func newReleaseCmd(opts *globalOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "release",
		Short: "Print the latest QuickLook release",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.setup()
			if err != nil {
				return err
			}

			client := newClient(cfg)
			provider := release.NewProvider(client)
			provider.Start(cmd.Context())
			defer provider.Stop()

			select {
			case <-provider.Done():
			case <-cmd.Context().Done():
				return cmd.Context().Err()
			}
			state := provider.Snapshot()

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(state); err != nil {
					return err
				}
				if state.Failed() {
					return fmt.Errorf("latest release unavailable: %s", state.Err)
				}
				return nil
			}

			return printRelease(printer(cmd), state, client.ReleasesPageURL())
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the release view state as JSON")
	return cmd
}

func printRelease(p *console.Printer, state release.ViewState, releasesURL string) error {
	if state.Failed() {
		p.Error("Latest release unavailable: %s", state.Err)
		p.Info("Browse all releases at %s", releasesURL)
		return fmt.Errorf("latest release unavailable: %s", state.Err)
	}

	rel := state.Release
	p.Success("QuickLook v%s", state.Version)
	p.Field("Tag", rel.TagName)
	p.Field("Released", release.FormatRelativeTime(rel.PublishedAt))
	if rel.IsPrerelease() {
		p.Field("Channel", "pre-release")
	}

	if state.Installer == nil {
		p.Warning("No Windows installer in this release")
		p.Info("Browse all assets at %s", releasesURL)
		return nil
	}

	inst := state.Installer
	p.Field("Installer", inst.Name)
	p.Field("Size", release.FormatByteSize(inst.SizeBytes))
	p.Field("Downloads", release.FormatCount(inst.DownloadCount))
	p.Field("URL", inst.DownloadURL)
	if rel.ChecksumFor(inst) != nil {
		p.Field("Checksum", "SHA-256 published")
	}

	if notes := strings.TrimSpace(rel.Notes); notes != "" {
		p.Println()
		p.Println("Release notes:")
		lines := strings.Split(notes, "\n")
		for i, line := range lines {
			if i >= notesPreviewLines {
				p.Println("  ...")
				break
			}
			p.Println("  " + strings.TrimRight(line, "\r"))
		}
	}
	return nil
}

func newDownloadCmd(opts *globalOptions) *cobra.Command {
	var (
		yes bool
		dir string
	)

	cmd := &cobra.Command{
		Use:   "download",
		Short: "Download the latest QuickLook installer",
		Long: `Download the primary installer of the latest release.

When the release ships a companion .sha256 asset the file is verified
against it and removed again on mismatch.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.setup()
			if err != nil {
				return err
			}
			if dir == "" {
				dir = cfg.Download.Dir
			}

			p := printer(cmd)
			p.Banner("QuickLook Download")

			client := newClient(cfg)
			p.Info("Checking the latest release...")
			rel, err := client.FetchLatestRelease(cmd.Context())
			if err != nil {
				logger.Error("download: fetch failed: %v", err)
				return fmt.Errorf("failed to fetch the latest release: %w", err)
			}

			installer := release.SelectPrimaryInstaller(rel.Assets)
			if installer == nil {
				p.Warning("Release %s has no Windows installer", rel.TagName)
				return fmt.Errorf("no installer in release %s, see %s", rel.TagName, client.ReleasesPageURL())
			}

			p.Info("Latest version: v%s (%s)", rel.Version, release.FormatRelativeTime(rel.PublishedAt))
			p.Info("Installer: %s, %s", installer.Name, release.FormatByteSize(installer.SizeBytes))
			p.Info("Destination: %s", dir)
			if rel.ChecksumFor(installer) == nil {
				p.Warning("No checksum published; the file will not be verified")
			}
			p.Println()

			var c console.Confirmer = confirmer
			if yes {
				c = console.AlwaysYes{}
			}
			ok, err := c.Confirm("Continue with download")
			if err != nil {
				return fmt.Errorf("failed to read response: %w", err)
			}
			if !ok {
				p.Info("Download cancelled. No changes were made.")
				return nil
			}

			p.Info("Downloading %s...", installer.Name)
			// no overall timeout; large installers are bounded by the command context
			result, err := release.DownloadInstaller(cmd.Context(), &http.Client{}, rel, installer, dir)
			if err != nil {
				logger.Error("download: %v", err)
				return err
			}

			p.Success("Saved %s (%s)", result.Path, release.FormatByteSize(result.Bytes))
			if result.Verified {
				p.Success("Checksum verified")
			}
			p.Completion(fmt.Sprintf("QuickLook v%s downloaded ✓", rel.Version))
			p.Println("Run the installer on Windows 10 1903+ or Windows 11, then press Space on any file.")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "download without confirmation")
	cmd.Flags().StringVar(&dir, "dir", "", "destination directory (default download.dir from config)")
	return cmd
}
