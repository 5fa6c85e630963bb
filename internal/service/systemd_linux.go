//go:build linux

package service

import (
	"context"
	_ "embed"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

//go:embed templates/ahoy.service
var unitTemplate string

const unitName = "ahoy.service"

// systemdManager drives a per-user unit via `systemctl --user`, so no
// root is needed and the daemon runs inside the login session (which it
// needs to reach the session D-Bus for notifications).
type systemdManager struct {
	out io.Writer
}

func newManager(out io.Writer) Manager { return &systemdManager{out: out} }

// Installed reports whether the user unit is in place.
func Installed() bool {
	_, err := os.Stat(unitPath())
	return err == nil
}

func unitPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "systemd", "user", unitName)
}

func systemctl(ctx context.Context, args ...string) (string, error) {
	out, err := exec.CommandContext(ctx, "systemctl", append([]string{"--user"}, args...)...).CombinedOutput()
	return strings.TrimSpace(string(out)), err
}

func (m *systemdManager) Install(ctx context.Context) error {
	path := unitPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(renderTemplate(unitTemplate)), 0o644); err != nil {
		return err
	}
	fmt.Fprintf(m.out, "Installed systemd user unit: %s\n", path)

	if out, err := systemctl(ctx, "daemon-reload"); err != nil {
		return fmt.Errorf("daemon-reload: %s", out)
	}
	if out, err := systemctl(ctx, "enable", "--now", unitName); err != nil {
		return fmt.Errorf("enable service: %s", out)
	}
	fmt.Fprintln(m.out, "Service installed and started; the daemon will auto-start on login.")
	return nil
}

func (m *systemdManager) Uninstall(ctx context.Context) error {
	_, _ = systemctl(ctx, "disable", "--now", unitName)

	path := unitPath()
	if _, err := os.Stat(path); err != nil {
		fmt.Fprintln(m.out, "Service not installed (unit not found)")
		return nil
	}
	if err := os.Remove(path); err != nil {
		return err
	}
	_, _ = systemctl(ctx, "daemon-reload")
	fmt.Fprintf(m.out, "Removed systemd user unit: %s\n", path)
	return nil
}

func (m *systemdManager) Start(ctx context.Context) error {
	if _, err := os.Stat(unitPath()); err != nil {
		return fmt.Errorf("service not installed; run `ahoy service install` first")
	}
	if out, err := systemctl(ctx, "start", unitName); err != nil {
		return fmt.Errorf("start service: %s", out)
	}
	fmt.Fprintln(m.out, "Service started")
	return nil
}

func (m *systemdManager) Stop(ctx context.Context) error {
	out, err := systemctl(ctx, "stop", unitName)
	if err != nil {
		if strings.Contains(out, "not loaded") {
			fmt.Fprintln(m.out, "Service was not running")
			return nil
		}
		fmt.Fprintf(m.out, "Stop result: %s\n", out)
		return nil
	}
	fmt.Fprintln(m.out, "Service stopped")
	return nil
}

func (m *systemdManager) Status(ctx context.Context) error {
	path := unitPath()
	fmt.Fprintf(m.out, "Service: %s\nUnit: %s\n\n", unitName, path)

	if _, err := os.Stat(path); err != nil {
		fmt.Fprintln(m.out, "Status: NOT INSTALLED")
		fmt.Fprintln(m.out, "Run `ahoy service install` to install the service.")
		return nil
	}

	out, _ := systemctl(ctx, "is-active", unitName)
	if out == "active" {
		fmt.Fprintln(m.out, "Status: RUNNING")
	} else {
		fmt.Fprintf(m.out, "Status: STOPPED (%s)\n", out)
		fmt.Fprintln(m.out, "Run `ahoy service start` to start the service.")
	}
	return nil
}
