package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"ahoy/internal/hooks"
)

func newInstallCmd() *cobra.Command {
	var showStatus bool

	cmd := &cobra.Command{
		Use:   "install [agent]",
		Short: "Install the notification hook for a coding agent",
		Long:  "Install the ahoy hook for an agent (claude, codex, gemini) or all detected agents.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if showStatus {
				for _, st := range hooks.Statuses() {
					switch {
					case !st.Supported:
						fmt.Fprintf(out, "%-8s not yet supported\n", st.Agent)
					case st.Installed:
						fmt.Fprintf(out, "%-8s installed\n", st.Agent)
					default:
						fmt.Fprintf(out, "%-8s not installed\n", st.Agent)
					}
				}
				return nil
			}

			agent := hooks.AgentAll
			if len(args) > 0 {
				agent = hooks.Agent(args[0])
			}
			msgs, err := hooks.Install(agent)
			for _, m := range msgs {
				fmt.Fprintln(out, m)
			}
			return err
		},
	}

	cmd.Flags().BoolVar(&showStatus, "status", false, "show hook installation state per agent")
	return cmd
}

func newUninstallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "uninstall [agent]",
		Short: "Remove the notification hook from a coding agent",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			agent := hooks.AgentAll
			if len(args) > 0 {
				agent = hooks.Agent(args[0])
			}
			msgs, err := hooks.Uninstall(agent)
			for _, m := range msgs {
				fmt.Fprintln(cmd.OutOrStdout(), m)
			}
			return err
		},
	}
}
