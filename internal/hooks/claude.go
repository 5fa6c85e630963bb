// Package hooks installs the ahoy Stop hook into coding-agent settings
// files so finished agent tasks trigger a notification.
//
// Everything here is single-shot JSON file manipulation; the only
// contract with the core is that the installed command runs `ahoy send`.
package hooks

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"ahoy/internal/config"
)

// hookMarker identifies our hook inside a settings file. Install is
// idempotent and uninstall matches on it, so the exact command text can
// evolve between versions.
const hookMarker = "ahoy"

// ClaudeSettingsPath returns the Claude Code settings file location.
// Variable so tests can redirect it.
var ClaudeSettingsPath = func() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".claude", "settings.json")
	}
	return filepath.Join(home, ".claude", "settings.json")
}

func ahoyBinPath() string {
	if exe, err := os.Executable(); err == nil {
		return exe
	}
	return filepath.Join(config.BinDir(), "ahoy")
}

func claudeHookEntry() map[string]any {
	return map[string]any{
		"matcher": "",
		"hooks": []any{
			map[string]any{
				"type":    "command",
				"command": fmt.Sprintf("%s send --from-claude -t 'Claude Code'", ahoyBinPath()),
				"timeout": 5000,
			},
		},
	}
}

// InstallClaude appends the ahoy Stop hook to the Claude settings file,
// creating the file (and its directory) when missing. Unknown settings
// keys are preserved byte-for-byte at the JSON value level.
func InstallClaude() (installed bool, err error) {
	path := ClaudeSettingsPath()

	settings := map[string]any{}
	if b, err := os.ReadFile(path); err == nil {
		if err := json.Unmarshal(b, &settings); err != nil {
			return false, fmt.Errorf("parse %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("read %s: %w", path, err)
	} else if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, err
	}

	hooks, ok := settings["hooks"].(map[string]any)
	if !ok {
		if _, exists := settings["hooks"]; exists {
			return false, fmt.Errorf("%s: hooks is not a JSON object", path)
		}
		hooks = map[string]any{}
		settings["hooks"] = hooks
	}

	stop, ok := hooks["Stop"].([]any)
	if !ok {
		if _, exists := hooks["Stop"]; exists {
			return false, fmt.Errorf("%s: hooks.Stop is not a JSON array", path)
		}
		stop = []any{}
	}

	if hasMarkedHook(stop) {
		return false, nil
	}

	hooks["Stop"] = append(stop, claudeHookEntry())
	return true, writeSettings(path, settings)
}

// UninstallClaude removes every marked Stop hook. Returns whether
// anything was removed; a missing settings file is not an error.
func UninstallClaude() (removed bool, err error) {
	path := ClaudeSettingsPath()

	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}

	settings := map[string]any{}
	if err := json.Unmarshal(b, &settings); err != nil {
		return false, fmt.Errorf("parse %s: %w", path, err)
	}

	hooks, ok := settings["hooks"].(map[string]any)
	if !ok {
		return false, nil
	}
	stop, ok := hooks["Stop"].([]any)
	if !ok {
		return false, nil
	}

	kept := make([]any, 0, len(stop))
	for _, entry := range stop {
		if entryHasMarker(entry) {
			continue
		}
		kept = append(kept, entry)
	}
	if len(kept) == len(stop) {
		return false, nil
	}

	hooks["Stop"] = kept
	return true, writeSettings(path, settings)
}

// ClaudeInstalled reports whether the marked hook is present. Any read
// or parse problem counts as "not installed".
func ClaudeInstalled() bool {
	b, err := os.ReadFile(ClaudeSettingsPath())
	if err != nil {
		return false
	}
	settings := map[string]any{}
	if err := json.Unmarshal(b, &settings); err != nil {
		return false
	}
	hooks, ok := settings["hooks"].(map[string]any)
	if !ok {
		return false
	}
	stop, ok := hooks["Stop"].([]any)
	if !ok {
		return false
	}
	return hasMarkedHook(stop)
}

func hasMarkedHook(stop []any) bool {
	for _, entry := range stop {
		if entryHasMarker(entry) {
			return true
		}
	}
	return false
}

// entryHasMarker walks one Stop entry's nested hooks array looking for
// a command mentioning the marker.
func entryHasMarker(entry any) bool {
	m, ok := entry.(map[string]any)
	if !ok {
		return false
	}
	inner, ok := m["hooks"].([]any)
	if !ok {
		return false
	}
	for _, h := range inner {
		hm, ok := h.(map[string]any)
		if !ok {
			continue
		}
		if cmd, ok := hm["command"].(string); ok && strings.Contains(cmd, hookMarker) {
			return true
		}
	}
	return false
}

func writeSettings(path string, settings map[string]any) error {
	b, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(b, '\n'), 0o644)
}
