package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"ahoy/internal/config"
	"ahoy/internal/history"
	"ahoy/pkg/logx"
)

func newHistoryCmd() *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recently displayed notifications",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(config.ConfigPath())
			if err != nil {
				return err
			}
			store, err := history.Open(history.Config{
				Driver:     cfg.History.Driver,
				Path:       cfg.HistoryFilePath(),
				MaxEntries: cfg.History.MaxEntries,
			}, logx.NewConsole(cfg.Logging.Level))
			if err != nil {
				return err
			}
			if store == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "History is disabled (history.driver: none)")
				return nil
			}
			defer store.Close()

			entries, err := store.Recent(cmd.Context(), count)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No notifications recorded yet")
				return nil
			}
			for _, e := range entries {
				mark := "ok"
				if !e.OK {
					mark = "failed: " + e.Error
				}
				fmt.Fprintf(out, "%s  [%s] %s  (%s)\n", e.At.Format("2006-01-02 15:04:05"), e.Title, e.Body, mark)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 20, "number of entries to show")
	return cmd
}
