package client

import (
	"net"
	"os"
	"time"
)

// DaemonState classifies what a probe of the socket found.
type DaemonState int

const (
	// StateNotRunning means no socket file exists.
	StateNotRunning DaemonState = iota
	// StateRunning means a connection to the socket succeeded.
	StateRunning
	// StateStale means a socket file exists but nothing answers on it,
	// typically left behind by an uncleanly terminated daemon.
	StateStale
)

func (s DaemonState) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateStale:
		return "not running (socket exists but unresponsive)"
	default:
		return "not running (socket not found)"
	}
}

// Probe checks daemon liveness by dialing the socket. It distinguishes
// a live daemon from a stale socket file.
func Probe(socketPath string) DaemonState {
	if _, err := os.Stat(socketPath); err != nil {
		return StateNotRunning
	}

	conn, err := net.DialTimeout("unix", socketPath, time.Second)
	if err != nil {
		return StateStale
	}
	conn.Close()
	return StateRunning
}
