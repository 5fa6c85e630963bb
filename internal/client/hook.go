package client

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"ahoy/internal/notify"
)

// Claude Code invokes hooks with a JSON payload on stdin. Only the
// fields we derive a notification from are declared here.
type claudeHookPayload struct {
	TranscriptPath string          `json:"transcript_path"`
	CWD            string          `json:"cwd"`
	SessionID      string          `json:"session_id"`
	ToolName       string          `json:"tool_name"`
	ToolInput      json.RawMessage `json:"tool_input"`
	HookEventName  string          `json:"hook_event_name"`
}

type transcriptLine struct {
	Type    string `json:"type"`
	Message *struct {
		Content json.RawMessage `json:"content"`
	} `json:"message"`
}

const (
	maxToolDescLen = 60
	maxPromptLen   = 100
)

// BuildFromHook derives a Notification from a Claude Code hook payload
// read from r (normally stdin).
//
// Tool events become permission prompts ("[project] Bash: npm install");
// stop events carry the session's last user prompt, pulled from the
// transcript. Empty input falls back to a plain "Task finished".
func BuildFromHook(r io.Reader, title string) (notify.Notification, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return notify.Notification{}, err
	}
	if len(data) == 0 {
		return notify.New(title, "Task finished"), nil
	}

	var hook claudeHookPayload
	if err := json.Unmarshal(data, &hook); err != nil {
		return notify.Notification{}, fmt.Errorf("parse claude hook data: %w", err)
	}

	project := "project"
	if hook.CWD != "" {
		parts := strings.Split(hook.CWD, "/")
		project = parts[len(parts)-1]
	}

	if hook.ToolName != "" {
		desc := toolDescription(hook.ToolInput)
		var body string
		if desc == "" {
			body = fmt.Sprintf("[%s] Needs permission: %s", project, hook.ToolName)
		} else {
			body = fmt.Sprintf("[%s] %s: %s", project, hook.ToolName, desc)
		}
		return notify.New(title, body), nil
	}

	prompt := "Task finished"
	if hook.TranscriptPath != "" {
		if p, err := lastUserPrompt(hook.TranscriptPath); err == nil {
			prompt = p
		}
	}
	prompt = truncate(prompt, maxPromptLen)

	return notify.New(title, fmt.Sprintf("[%s] %s", project, prompt)), nil
}

// toolDescription pulls the most useful string out of a tool_input
// payload: command for Bash, file_path for Read/Write/Edit, pattern for
// search tools.
func toolDescription(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var input map[string]any
	if err := json.Unmarshal(raw, &input); err != nil {
		return ""
	}
	for _, key := range []string{"command", "file_path", "pattern"} {
		if s, ok := input[key].(string); ok && s != "" {
			return truncate(s, maxToolDescLen)
		}
	}
	return ""
}

// lastUserPrompt scans a transcript (JSON Lines) for the newest
// non-empty user message. Malformed lines are skipped.
func lastUserPrompt(transcriptPath string) (string, error) {
	f, err := os.Open(transcriptPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var last string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}

		var entry transcriptLine
		if err := json.Unmarshal(line, &entry); err != nil {
			continue
		}
		if entry.Type != "user" || entry.Message == nil {
			continue
		}
		text := contentText(entry.Message.Content)
		// Multi-line prompts collapse to their first line.
		if i := strings.IndexByte(text, '\n'); i >= 0 {
			text = text[:i]
		}
		text = strings.TrimSpace(text)
		if text != "" {
			last = text
		}
	}
	if err := sc.Err(); err != nil {
		return "", err
	}
	if last == "" {
		return "", fmt.Errorf("no user message found in transcript")
	}
	return last, nil
}

// contentText flattens transcript content, which is either a plain
// string or an array of {"text": ...} blocks.
func contentText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var blocks []struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(raw, &blocks); err == nil {
		parts := make([]string, 0, len(blocks))
		for _, b := range blocks {
			if b.Text != "" {
				parts = append(parts, b.Text)
			}
		}
		return strings.Join(parts, " ")
	}
	return ""
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
