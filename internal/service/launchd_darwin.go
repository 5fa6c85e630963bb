//go:build darwin

package service

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

//go:embed templates/ahoy.plist
var plistTemplate string

const launchdLabel = "ahoy.daemon"

type launchdManager struct {
	out io.Writer
}

func newManager(out io.Writer) Manager { return &launchdManager{out: out} }

// Installed reports whether the user agent plist is in place.
func Installed() bool {
	_, err := os.Stat(plistPath())
	return err == nil
}

func plistPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, "Library", "LaunchAgents", launchdLabel+".plist")
}

func (m *launchdManager) Install(ctx context.Context) error {
	path := plistPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	// Reinstall over a running service cleanly.
	_ = m.Stop(ctx)

	if err := os.WriteFile(path, []byte(renderTemplate(plistTemplate)), 0o644); err != nil {
		return err
	}
	fmt.Fprintf(m.out, "Installed launchd service: %s\n", path)

	if err := m.Start(ctx); err != nil {
		return err
	}
	fmt.Fprintln(m.out, "Service installed and started; the daemon will auto-start on login.")
	return nil
}

func (m *launchdManager) Uninstall(ctx context.Context) error {
	path := plistPath()
	_ = m.Stop(ctx)

	if _, err := os.Stat(path); err != nil {
		fmt.Fprintln(m.out, "Service not installed (plist not found)")
		return nil
	}
	if err := os.Remove(path); err != nil {
		return err
	}
	fmt.Fprintf(m.out, "Removed launchd service: %s\n", path)
	return nil
}

func (m *launchdManager) Start(ctx context.Context) error {
	path := plistPath()
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("service not installed; run `ahoy service install` first")
	}

	out, err := exec.CommandContext(ctx, "launchctl", "load", "-w", path).CombinedOutput()
	if err != nil {
		stderr := string(out)
		// launchctl reports an already-loaded agent as a failure.
		if strings.Contains(stderr, "already loaded") || strings.Contains(stderr, "Load failed: 37") {
			fmt.Fprintln(m.out, "Service is already running")
			return nil
		}
		return fmt.Errorf("start service: %s", strings.TrimSpace(stderr))
	}
	fmt.Fprintln(m.out, "Service started")
	return nil
}

func (m *launchdManager) Stop(ctx context.Context) error {
	path := plistPath()
	if _, err := os.Stat(path); err != nil {
		fmt.Fprintln(m.out, "Service not installed")
		return nil
	}

	out, err := exec.CommandContext(ctx, "launchctl", "unload", path).CombinedOutput()
	if err != nil {
		if strings.Contains(string(out), "Could not find specified service") {
			fmt.Fprintln(m.out, "Service was not running")
			return nil
		}
		fmt.Fprintf(m.out, "Stop result: %s\n", strings.TrimSpace(string(out)))
		return nil
	}
	fmt.Fprintln(m.out, "Service stopped")
	return nil
}

func (m *launchdManager) Status(ctx context.Context) error {
	path := plistPath()
	fmt.Fprintf(m.out, "Service: %s\nPlist: %s\n\n", launchdLabel, path)

	if _, err := os.Stat(path); err != nil {
		fmt.Fprintln(m.out, "Status: NOT INSTALLED")
		fmt.Fprintln(m.out, "Run `ahoy service install` to install the service.")
		return nil
	}

	out, err := exec.CommandContext(ctx, "launchctl", "list", launchdLabel).Output()
	if err != nil {
		fmt.Fprintln(m.out, "Status: STOPPED (installed but not running)")
		fmt.Fprintln(m.out, "Run `ahoy service start` to start the service.")
		return nil
	}

	fmt.Fprintln(m.out, "Status: RUNNING")
	for _, line := range bytes.Split(bytes.TrimSpace(out), []byte("\n")) {
		if len(bytes.TrimSpace(line)) > 0 {
			fmt.Fprintf(m.out, "%s\n", line)
		}
	}
	return nil
}
