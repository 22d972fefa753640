package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/caioricciuti/quicklook-landing/internal/app"
	"github.com/caioricciuti/quicklook-landing/internal/config"
	"github.com/caioricciuti/quicklook-landing/internal/console"
	"github.com/caioricciuti/quicklook-landing/internal/logger"
	"github.com/caioricciuti/quicklook-landing/internal/release"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// version is injected at build time via -ldflags
var version = "dev"

// globalOptions holds the persistent flags shared by every command
type globalOptions struct {
	debug     bool
	configDir string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		log.Fatal(err)
	}
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "quicklook-landing",
		Short: "QuickLook landing page for the terminal and the browser",
		Long: `QuickLook landing page.

Without a command the interactive terminal page starts: the latest release
with its download link, features, installation steps and project links.`,
		Example: `  quicklook-landing
  quicklook-landing release
  quicklook-landing download --dir ~/Downloads
  quicklook-landing serve --addr 127.0.0.1:8080`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runTUI(opts),
	}

	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging mirrored to stderr")
	rootCmd.PersistentFlags().StringVar(&opts.configDir, "config-dir", "", "configuration directory (default ~/.quicklook-landing)")

	rootCmd.AddCommand(
		newVersionCmd(),
		newReleaseCmd(opts),
		newDownloadCmd(opts),
		newServeCmd(opts),
		newLogsCmd(opts),
		newPurgeCmd(opts),
	)
	return rootCmd
}

// setup initializes logging and loads the configuration
func (o *globalOptions) setup() (*config.Config, error) {
	if err := logger.Initialize(o.debug); err != nil {
		return nil, err
	}

	dir := o.configDir
	if dir == "" {
		dir = config.DefaultDir()
	}
	cfg, err := config.LoadFrom(dir)
	if err != nil {
		logger.Error("Failed to load configuration: %v", err)
		return nil, err
	}
	if !o.debug {
		logger.GetLogger().SetLevel(logger.ParseLevel(cfg.LogLevel))
	}
	logger.Debug("Configuration loaded from %s", cfg.Dir())
	return cfg, nil
}

func newClient(cfg *config.Config, opts ...release.ClientOption) *release.Client {
	base := []release.ClientOption{
		release.WithAPIBase(cfg.GitHub.APIBase),
		release.WithTimeout(cfg.GitHub.Timeout()),
		release.WithUserAgent(cfg.GitHub.UserAgent),
	}
	return release.NewClient(cfg.GitHub.Owner, cfg.GitHub.Repo, append(base, opts...)...)
}

// printer writes to the command's output, in color only on a terminal
func printer(cmd *cobra.Command) *console.Printer {
	out := cmd.OutOrStdout()
	plain := true
	if f, ok := out.(*os.File); ok {
		plain = !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd())
	}
	return &console.Printer{Out: out, Plain: plain}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "QuickLook landing v%s\n", version)
		},
	}
}

func runTUI(opts *globalOptions) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := opts.setup()
		if err != nil {
			return err
		}
		defer logger.GetLogger().Close()

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Log file: %s\n", logger.GetLogPath())
		if opts.debug {
			fmt.Fprintln(out, "Follow logs in another terminal with:")
			fmt.Fprintln(out, "  quicklook-landing logs --follow")
		}

		logger.Info("Starting QuickLook landing v%s", version)

		client := newClient(cfg)
		provider := release.NewProvider(client)
		provider.Start(cmd.Context())
		defer provider.Stop()

		programOpts := []tea.ProgramOption{tea.WithContext(cmd.Context())}
		if cfg.UI.AltScreen {
			programOpts = append(programOpts, tea.WithAltScreen())
		}
		if cfg.UI.MouseEnabled {
			programOpts = append(programOpts, tea.WithMouseCellMotion())
		}

		application := app.New(cfg, version, provider, client.ReleasesPageURL())
		if _, err := tea.NewProgram(application, programOpts...).Run(); err != nil {
			if errors.Is(err, tea.ErrProgramKilled) {
				logger.Info("Terminal page stopped by signal")
				return nil
			}
			logger.Error("Error running program: %v", err)
			return err
		}
		return nil
	}
}
