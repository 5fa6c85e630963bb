package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ahoy/internal/client"
	"ahoy/internal/config"
	"ahoy/internal/hooks"
	"ahoy/internal/service"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Report daemon liveness and hook installation state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(config.ConfigPath())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			sock := cfg.SocketPath()
			state := client.Probe(sock)
			fmt.Fprintf(out, "Daemon: %s\n", state)
			fmt.Fprintf(out, "Socket: %s\n", sock)
			if _, err := os.Stat(cfg.LogFilePath()); err == nil {
				fmt.Fprintf(out, "Log:    %s\n", cfg.LogFilePath())
			}
			if service.Installed() {
				fmt.Fprintln(out, "Service: installed")
			} else {
				fmt.Fprintln(out, "Service: not installed")
			}

			fmt.Fprintln(out, "\nAgent hooks:")
			for _, st := range hooks.Statuses() {
				switch {
				case !st.Supported:
					fmt.Fprintf(out, "  %-8s not yet supported\n", st.Agent)
				case st.Installed:
					fmt.Fprintf(out, "  %-8s installed\n", st.Agent)
				default:
					fmt.Fprintf(out, "  %-8s not installed\n", st.Agent)
				}
			}

			switch state {
			case client.StateStale:
				fmt.Fprintf(out, "\nThe socket file looks stale. Remove %s or restart the daemon.\n", sock)
			case client.StateNotRunning:
				fmt.Fprintln(out, "\nStart the daemon with `ahoy daemon` or `ahoy service start`.")
			}
			return nil
		},
	}
}
