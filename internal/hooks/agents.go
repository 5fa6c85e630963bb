package hooks

import (
	"fmt"
	"os"
	"path/filepath"
)

// Agent identifies a supported coding agent.
type Agent string

const (
	AgentClaude Agent = "claude"
	AgentCodex  Agent = "codex"
	AgentGemini Agent = "gemini"
	AgentAll    Agent = "all"
)

// AgentStatus describes one agent's hook state for `ahoy install --status`.
type AgentStatus struct {
	Agent     Agent
	Supported bool
	Installed bool
}

// Statuses reports hook state for every known agent.
func Statuses() []AgentStatus {
	return []AgentStatus{
		{Agent: AgentClaude, Supported: true, Installed: ClaudeInstalled()},
		{Agent: AgentCodex, Supported: false},
		{Agent: AgentGemini, Supported: false},
	}
}

// claudeDetected reports whether Claude Code appears to be set up for
// this user, used by the "all" install to skip absent agents.
func claudeDetected() bool {
	home, err := os.UserHomeDir()
	if err != nil {
		return false
	}
	_, statErr := os.Stat(filepath.Join(home, ".claude"))
	return statErr == nil
}

// Install installs the hook for one agent ("all" walks detected ones).
// The returned messages are user-facing progress lines.
func Install(agent Agent) ([]string, error) {
	switch agent {
	case AgentClaude:
		return installClaudeWithMessages()
	case AgentCodex:
		return []string{"Codex hook installation not yet implemented"}, nil
	case AgentGemini:
		return []string{"Gemini hook installation not yet implemented"}, nil
	case AgentAll:
		msgs := []string{"Installing hooks for all detected agents..."}
		if claudeDetected() {
			more, err := installClaudeWithMessages()
			msgs = append(msgs, more...)
			if err != nil {
				return msgs, err
			}
		}
		return msgs, nil
	default:
		return nil, fmt.Errorf("unknown agent: %s (supported: claude, codex, gemini, all)", agent)
	}
}

func installClaudeWithMessages() ([]string, error) {
	installed, err := InstallClaude()
	if err != nil {
		return nil, err
	}
	if !installed {
		return []string{"Ahoy hook is already installed for Claude Code"}, nil
	}
	return []string{
		"Installed ahoy hook for Claude Code",
		"Settings file: " + ClaudeSettingsPath(),
		"Claude Code will now notify you when tasks finish!",
	}, nil
}

// Uninstall removes the hook for one agent ("all" walks every agent).
func Uninstall(agent Agent) ([]string, error) {
	switch agent {
	case AgentClaude:
		return uninstallClaudeWithMessages()
	case AgentCodex:
		return []string{"Codex hook uninstall not yet implemented"}, nil
	case AgentGemini:
		return []string{"Gemini hook uninstall not yet implemented"}, nil
	case AgentAll:
		msgs := []string{"Uninstalling hooks from all agents..."}
		more, err := uninstallClaudeWithMessages()
		msgs = append(msgs, more...)
		return msgs, err
	default:
		return nil, fmt.Errorf("unknown agent: %s (supported: claude, codex, gemini, all)", agent)
	}
}

func uninstallClaudeWithMessages() ([]string, error) {
	removed, err := UninstallClaude()
	if err != nil {
		return nil, err
	}
	if !removed {
		return []string{"Ahoy hook was not installed for Claude Code"}, nil
	}
	return []string{"Removed ahoy hook from Claude Code"}, nil
}
