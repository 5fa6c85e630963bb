// Package service registers the daemon with the OS service manager so
// it auto-starts on login: launchd on macOS, a systemd user unit on
// Linux. Other platforms get explicit unsupported errors.
package service

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"ahoy/internal/config"
)

// Manager drives one platform's service manager. The concrete type is
// selected at build time in the platform files.
type Manager interface {
	Install(ctx context.Context) error
	Uninstall(ctx context.Context) error
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	Status(ctx context.Context) error
}

// New returns the service manager for this platform. Progress lines are
// written to out.
func New(out io.Writer) Manager {
	return newManager(out)
}

// Restart is best-effort stop then start; a not-running service is not
// an error.
func Restart(ctx context.Context, m Manager) error {
	_ = m.Stop(ctx)
	return m.Start(ctx)
}

// daemonBinPath resolves the binary the service should run: the current
// executable when known, the installed copy under ~/.ahoy/bin otherwise.
func daemonBinPath() string {
	if exe, err := os.Executable(); err == nil {
		return exe
	}
	return filepath.Join(config.BinDir(), "ahoy")
}

// renderTemplate substitutes the {{...}} placeholders used by both the
// launchd and systemd templates.
func renderTemplate(tmpl string) string {
	userHome, _ := os.UserHomeDir()
	return strings.NewReplacer(
		"{{AHOY_BIN}}", daemonBinPath(),
		"{{AHOY_HOME}}", config.HomeDir(),
		"{{USER_HOME}}", userHome,
	).Replace(tmpl)
}
