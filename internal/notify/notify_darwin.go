//go:build darwin

package notify

import (
	"fmt"
	"os/exec"
)

// darwinNotifier renders alerts through terminal-notifier when the helper
// is available (it can forward the activation target so clicking the
// alert foregrounds an app), and falls back to the osascript
// display-notification scripting call otherwise. The backend is picked
// once at construction, not per Show.
type darwinNotifier struct {
	helper string // terminal-notifier path, empty means osascript
	sound  bool
}

func newPlatform(opts Options) Notifier {
	helper := opts.TerminalNotifier
	if helper == "" {
		if p, err := exec.LookPath("terminal-notifier"); err == nil {
			helper = p
		}
	}
	return &darwinNotifier{helper: helper, sound: opts.Sound}
}

func (d *darwinNotifier) Show(n Notification) error {
	if d.helper != "" {
		return d.showHelper(n)
	}
	return d.showScript(n)
}

func (d *darwinNotifier) showHelper(n Notification) error {
	args := []string{"-title", n.Title, "-message", n.Body}
	if n.Activate != "" {
		args = append(args, "-activate", n.Activate)
	}
	if d.sound {
		args = append(args, "-sound", "default")
	}
	return runCommand("terminal-notifier", d.helper, args...)
}

func (d *darwinNotifier) showScript(n Notification) error {
	script := fmt.Sprintf("display notification %q with title %q", n.Body, n.Title)
	if d.sound {
		script += ` sound name "default"`
	}
	return runCommand("osascript", "osascript", "-e", script)
}
