package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"ahoy/internal/client"
	"ahoy/internal/config"
)

func newLogsCmd() *cobra.Command {
	var (
		lines  int
		follow bool
	)

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Print the daemon log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(config.ConfigPath())
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if follow {
				var stop func()
				ctx, stop = signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
				defer stop()
			}
			return client.TailLogs(ctx, cmd.OutOrStdout(), cfg.LogFilePath(), lines, follow)
		},
	}

	cmd.Flags().IntVarP(&lines, "lines", "n", 20, "number of trailing lines to print")
	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "keep streaming new log lines")
	return cmd
}
