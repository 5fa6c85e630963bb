package client

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTranscript(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "transcript.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644))
	return path
}

func TestBuildFromHookEmptyInput(t *testing.T) {
	n, err := BuildFromHook(strings.NewReader(""), "Test")
	require.NoError(t, err)
	assert.Equal(t, "Test", n.Title)
	assert.Equal(t, "Task finished", n.Body)
}

func TestBuildFromHookInvalidJSON(t *testing.T) {
	_, err := BuildFromHook(strings.NewReader("not valid json"), "Test")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse")
}

func TestBuildFromHookToolEvents(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		in   string
		body string
	}{
		{
			name: "bash command",
			in:   `{"cwd":"/Users/test/myproject","tool_name":"Bash","tool_input":{"command":"npm install"}}`,
			body: "[myproject] Bash: npm install",
		},
		{
			name: "file path",
			in:   `{"cwd":"/Users/test/myproject","tool_name":"Read","tool_input":{"file_path":"/path/to/file.go"}}`,
			body: "[myproject] Read: /path/to/file.go",
		},
		{
			name: "pattern",
			in:   `{"cwd":"/Users/test/myproject","tool_name":"Grep","tool_input":{"pattern":"TODO"}}`,
			body: "[myproject] Grep: TODO",
		},
		{
			name: "no tool input",
			in:   `{"cwd":"/Users/test/myproject","tool_name":"Bash"}`,
			body: "[myproject] Needs permission: Bash",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := BuildFromHook(strings.NewReader(tt.in), "Claude Code")
			require.NoError(t, err)
			assert.Equal(t, "Claude Code", n.Title)
			assert.Equal(t, tt.body, n.Body)
		})
	}
}

func TestBuildFromHookToolDescTruncation(t *testing.T) {
	long := strings.Repeat("a", 61)
	in := fmt.Sprintf(`{"cwd":"/x/p","tool_name":"Bash","tool_input":{"command":"%s"}}`, long)

	n, err := BuildFromHook(strings.NewReader(in), "Test")
	require.NoError(t, err)

	desc := strings.SplitN(n.Body, ": ", 2)[1]
	assert.Len(t, desc, 60)
	assert.True(t, strings.HasSuffix(desc, "..."))

	// Exactly 60 chars must survive untouched.
	exact := strings.Repeat("a", 60)
	in = fmt.Sprintf(`{"cwd":"/x/p","tool_name":"Bash","tool_input":{"command":"%s"}}`, exact)
	n, err = BuildFromHook(strings.NewReader(in), "Test")
	require.NoError(t, err)
	assert.NotContains(t, n.Body, "...")
}

func TestBuildFromHookProjectName(t *testing.T) {
	n, err := BuildFromHook(strings.NewReader(`{"cwd":"/home/user/projects/awesome-app"}`), "Test")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(n.Body, "[awesome-app]"))

	n, err = BuildFromHook(strings.NewReader(`{}`), "Test")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(n.Body, "[project]"))
}

func TestBuildFromHookStopEventWithTranscript(t *testing.T) {
	transcript := writeTranscript(t,
		`{"type":"user","message":{"content":"Deploy to production"}}`)
	in := fmt.Sprintf(`{"cwd":"/Users/test/myproject","transcript_path":%q}`, transcript)

	n, err := BuildFromHook(strings.NewReader(in), "Claude Code")
	require.NoError(t, err)
	assert.Equal(t, "[myproject] Deploy to production", n.Body)
}

func TestBuildFromHookStopEventNoTranscript(t *testing.T) {
	n, err := BuildFromHook(strings.NewReader(`{"cwd":"/Users/test/myproject"}`), "Test")
	require.NoError(t, err)
	assert.Equal(t, "[myproject] Task finished", n.Body)
}

func TestBuildFromHookPromptTruncation(t *testing.T) {
	transcript := writeTranscript(t,
		fmt.Sprintf(`{"type":"user","message":{"content":"%s"}}`, strings.Repeat("a", 101)))
	in := fmt.Sprintf(`{"cwd":"/x/p","transcript_path":%q}`, transcript)

	n, err := BuildFromHook(strings.NewReader(in), "Test")
	require.NoError(t, err)

	prompt := strings.SplitN(n.Body, "] ", 2)[1]
	assert.Len(t, prompt, 100)
	assert.True(t, strings.HasSuffix(prompt, "..."))
}

func TestLastUserPrompt(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		lines   []string
		want    string
		wantErr bool
	}{
		{
			name:  "simple string",
			lines: []string{`{"type":"user","message":{"content":"Fix the bug"}}`},
			want:  "Fix the bug",
		},
		{
			name: "returns last user message",
			lines: []string{
				`{"type":"user","message":{"content":"First message"}}`,
				`{"type":"assistant","message":{"content":"Response"}}`,
				`{"type":"user","message":{"content":"Second message"}}`,
			},
			want: "Second message",
		},
		{
			name:  "array content joined",
			lines: []string{`{"type":"user","message":{"content":[{"text":"First part"},{"text":"Second part"}]}}`},
			want:  "First part Second part",
		},
		{
			name:  "multiline takes first line",
			lines: []string{`{"type":"user","message":{"content":"First line\nSecond line"}}`},
			want:  "First line",
		},
		{
			name: "invalid json lines skipped",
			lines: []string{
				"invalid json line",
				`{"type":"user","message":{"content":"Valid message"}}`,
				"another invalid line",
			},
			want: "Valid message",
		},
		{
			name: "whitespace only skipped",
			lines: []string{
				`{"type":"user","message":{"content":"   "}}`,
				`{"type":"user","message":{"content":"Real message"}}`,
			},
			want: "Real message",
		},
		{
			name:    "no user messages",
			lines:   []string{`{"type":"assistant","message":{"content":"Only assistant"}}`},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTranscript(t, tt.lines...)
			got, err := lastUserPrompt(path)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "no user message found")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLastUserPromptMissingFile(t *testing.T) {
	_, err := lastUserPrompt("/nonexistent/transcript.jsonl")
	require.Error(t, err)
}
