package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"ahoy/internal/client"
	"ahoy/internal/config"
	"ahoy/internal/notify"
)

func newSendCmd() *cobra.Command {
	var (
		title      string
		jsonBlob   string
		fromClaude bool
		icon       string
		activate   string
		direct     bool
	)

	cmd := &cobra.Command{
		Use:   "send [message]",
		Short: "Send a notification to the daemon",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(config.ConfigPath())
			if err != nil {
				return err
			}
			if title == "" {
				title = cfg.Notify.DefaultTitle
			}

			var n notify.Notification
			switch {
			case fromClaude:
				n, err = client.BuildFromHook(cmd.InOrStdin(), title)
				if err != nil {
					return err
				}
			case jsonBlob != "":
				n, err = notify.Decode([]byte(jsonBlob))
				if err != nil {
					return fmt.Errorf("invalid --json payload: %w", err)
				}
			default:
				body := strings.Join(args, " ")
				if strings.TrimSpace(body) == "" {
					return fmt.Errorf("nothing to send: give a message, --json, or --from-claude")
				}
				n = notify.New(title, body)
			}

			if icon != "" {
				n.Icon = icon
			}
			// An explicit activation target wins over anything the payload carried.
			if activate != "" {
				n.Activate = activate
			}

			if direct {
				return client.SendDirect(n, notify.Options{
					TerminalNotifier: cfg.Notify.TerminalNotifier,
					Sound:            cfg.Notify.Sound,
				})
			}
			return client.SendToDaemon(cfg.SocketPath(), n)
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "notification title")
	cmd.Flags().StringVar(&jsonBlob, "json", "", "send a raw JSON notification record")
	cmd.Flags().BoolVar(&fromClaude, "from-claude", false, "derive the notification from a Claude Code hook payload on stdin")
	cmd.Flags().StringVar(&icon, "icon", "", "icon identifier")
	cmd.Flags().StringVar(&activate, "activate", "", "bundle identifier to activate on click (macOS)")
	cmd.Flags().BoolVar(&direct, "direct", false, "display in-process instead of via the daemon")
	return cmd
}
