// Package cli wires the ahoy command tree.
package cli

import "github.com/spf13/cobra"

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ahoy",
		Short: "Desktop notifications for long-running tools and coding agents",
		Long: "Ahoy relays notifications from command-line tools and coding agents\n" +
			"to native desktop alerts through a local daemon.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newSendCmd())
	cmd.AddCommand(newDaemonCmd())
	cmd.AddCommand(newStatusCmd())
	cmd.AddCommand(newLogsCmd())
	cmd.AddCommand(newHistoryCmd())
	cmd.AddCommand(newInstallCmd())
	cmd.AddCommand(newUninstallCmd())
	cmd.AddCommand(newServiceCmd())
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	return newRootCmd().Execute()
}
