package main

import (
	"fmt"

	"github.com/caioricciuti/quicklook-landing/internal/logger"
	"github.com/hpcloud/tail"
	"github.com/spf13/cobra"
)

func newLogsCmd(opts *globalOptions) *cobra.Command {
	var follow bool

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show the log file location, or follow it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := logger.Initialize(opts.debug); err != nil {
				return err
			}
			path := logger.GetLogPath()
			out := cmd.OutOrStdout()

			if !follow {
				fmt.Fprintf(out, "Log file location: %s\n", path)
				return nil
			}

			t, err := tail.TailFile(path, tail.Config{
				Follow:    true,
				ReOpen:    true,
				MustExist: false,
				Logger:    tail.DiscardingLogger,
			})
			if err != nil {
				return fmt.Errorf("failed to follow %s: %w", path, err)
			}
			defer t.Cleanup()

			fmt.Fprintf(out, "Following %s (Ctrl+C to stop)\n", path)
			for {
				select {
				case line, ok := <-t.Lines:
					if !ok {
						return t.Err()
					}
					if line.Err != nil {
						return line.Err
					}
					fmt.Fprintln(out, line.Text)
				case <-cmd.Context().Done():
					return t.Stop()
				}
			}
		},
	}

	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "stream new log lines")
	return cmd
}
