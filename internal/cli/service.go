package cli

import (
	"github.com/spf13/cobra"

	"ahoy/internal/service"
)

func newServiceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "service",
		Short: "Manage the background daemon service",
		Long:  "Install, control, and inspect the OS service that keeps the daemon running.",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "install",
		Short: "Install and start the daemon service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return service.New(cmd.OutOrStdout()).Install(cmd.Context())
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "uninstall",
		Short: "Stop and remove the daemon service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return service.New(cmd.OutOrStdout()).Uninstall(cmd.Context())
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "start",
		Short: "Start the daemon service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return service.New(cmd.OutOrStdout()).Start(cmd.Context())
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "stop",
		Short: "Stop the daemon service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return service.New(cmd.OutOrStdout()).Stop(cmd.Context())
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "restart",
		Short: "Restart the daemon service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return service.Restart(cmd.Context(), service.New(cmd.OutOrStdout()))
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show daemon service state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return service.New(cmd.OutOrStdout()).Status(cmd.Context())
		},
	})

	return cmd
}
