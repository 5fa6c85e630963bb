// Package client implements the short-lived command side: sending one
// notification, probing the daemon, and tailing its log.
package client

import (
	"fmt"
	"net"

	"ahoy/internal/notify"
)

// ConnectError means the daemon socket could not be reached. The path is
// included so the failure is actionable for the operator.
type ConnectError struct {
	Path string
	Err  error
}

func (e *ConnectError) Error() string {
	return fmt.Sprintf("daemon unreachable at %s: %v (is the daemon running? try `ahoy daemon` or `ahoy service start`)", e.Path, e.Err)
}

func (e *ConnectError) Unwrap() error { return e.Err }

// SendToDaemon relays one notification over the well-known socket.
//
// Fire and forget: a single connect attempt with no retry, one record
// written, connection released. The daemon never acknowledges, so a nil
// return means "handed off", not "displayed".
func SendToDaemon(socketPath string, n notify.Notification) error {
	rec, err := notify.Encode(n)
	if err != nil {
		return err
	}

	conn, err := net.Dial("unix", socketPath)
	if err != nil {
		return &ConnectError{Path: socketPath, Err: err}
	}
	defer conn.Close()

	if _, err := conn.Write(rec); err != nil {
		return fmt.Errorf("write notification: %w", err)
	}
	return nil
}

// SendDirect bypasses the daemon and displays in-process, returning the
// notifier's result synchronously.
func SendDirect(n notify.Notification, opts notify.Options) error {
	return notify.NewPlatform(opts).Show(n)
}
