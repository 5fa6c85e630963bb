package client

import (
	"bufio"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ahoy/internal/notify"
)

func tempSocketPath(t *testing.T) string {
	t.Helper()
	dir, err := os.MkdirTemp("", "ahoy")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })
	return filepath.Join(dir, "ahoy.sock")
}

func TestSendToDaemonUnreachable(t *testing.T) {
	path := tempSocketPath(t)

	start := time.Now()
	err := SendToDaemon(path, notify.New("Ahoy", "hello"))
	elapsed := time.Since(start)

	require.Error(t, err)
	var ce *ConnectError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, path, ce.Path)
	assert.Contains(t, err.Error(), path)
	assert.Contains(t, err.Error(), "is the daemon running?")
	// Fail fast: no retry loop.
	assert.Less(t, elapsed, 2*time.Second)
}

func TestSendToDaemonWritesOneRecord(t *testing.T) {
	path := tempSocketPath(t)
	ln, err := net.Listen("unix", path)
	require.NoError(t, err)
	defer ln.Close()

	got := make(chan string, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		sc := bufio.NewScanner(conn)
		if sc.Scan() {
			got <- sc.Text()
		}
	}()

	require.NoError(t, SendToDaemon(path, notify.New("Ahoy", "Build finished")))

	select {
	case line := <-got:
		n, err := notify.Decode([]byte(line))
		require.NoError(t, err)
		assert.Equal(t, "Ahoy", n.Title)
		assert.Equal(t, "Build finished", n.Body)
	case <-time.After(3 * time.Second):
		t.Fatal("daemon side never received the record")
	}
}

func TestProbeStates(t *testing.T) {
	path := tempSocketPath(t)

	assert.Equal(t, StateNotRunning, Probe(path))

	// Stale socket file: exists but nothing listens.
	require.NoError(t, os.WriteFile(path, nil, 0o600))
	assert.Equal(t, StateStale, Probe(path))
	require.NoError(t, os.Remove(path))

	ln, err := net.Listen("unix", path)
	require.NoError(t, err)
	defer ln.Close()
	assert.Equal(t, StateRunning, Probe(path))
}
