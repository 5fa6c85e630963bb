package client

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLastLines(t *testing.T) {
	t.Parallel()
	in := "one\ntwo\nthree\nfour\n"

	got, err := lastLines(strings.NewReader(in), 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"three", "four"}, got)

	got, err = lastLines(strings.NewReader(in), 10)
	require.NoError(t, err)
	assert.Len(t, got, 4)

	got, err = lastLines(strings.NewReader(""), 5)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestTailLogsMissingFile(t *testing.T) {
	var buf strings.Builder
	err := TailLogs(context.Background(), &buf, filepath.Join(t.TempDir(), "nope.log"), 10, false)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No log file found")
}

func TestTailLogsPrintsLastN(t *testing.T) {
	path := filepath.Join(t.TempDir(), "daemon.log")
	require.NoError(t, os.WriteFile(path, []byte("a\nb\nc\n"), 0o644))

	var buf strings.Builder
	require.NoError(t, TailLogs(context.Background(), &buf, path, 2, false))
	assert.Equal(t, "b\nc\n", buf.String())
}

// syncWriter lets the follow goroutine and the test share a buffer.
type syncWriter struct {
	mu  sync.Mutex
	buf strings.Builder
}

func (w *syncWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.Write(p)
}

func (w *syncWriter) String() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.String()
}

func TestTailLogsFollowStreamsAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "daemon.log")
	require.NoError(t, os.WriteFile(path, []byte("old line\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w := &syncWriter{}
	done := make(chan error, 1)
	go func() { done <- TailLogs(ctx, w, path, 10, true) }()

	// Give the watcher a moment to attach before appending.
	require.Eventually(t, func() bool {
		return strings.Contains(w.String(), "old line")
	}, 2*time.Second, 10*time.Millisecond)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	_, err = f.WriteString("new line\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	require.Eventually(t, func() bool {
		return strings.Contains(w.String(), "new line")
	}, 3*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("follow did not stop on cancel")
	}
}
