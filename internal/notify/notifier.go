package notify

import "fmt"

// Notifier renders a Notification as a native OS alert.
//
// Show is synchronous: it runs the underlying OS call or subprocess to
// completion and is expected to finish well under a second. Callers
// decide whether a failure is fatal; the daemon logs and moves on.
type Notifier interface {
	Show(n Notification) error
}

// NotifierError wraps a failed or unsupported display attempt, carrying
// whatever diagnostic text the underlying call produced.
type NotifierError struct {
	Backend string
	Detail  string
	Err     error
}

func (e *NotifierError) Error() string {
	msg := "show notification"
	if e.Backend != "" {
		msg += " via " + e.Backend
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *NotifierError) Unwrap() error { return e.Err }

// Options tunes the platform notifier. Zero value is usable.
type Options struct {
	// TerminalNotifier overrides the helper executable path on macOS.
	TerminalNotifier string
	// Sound requests an audible alert where the backend supports one.
	Sound bool
}

// NewPlatform returns the notifier variant compiled for this OS.
// The concrete implementation lives in the build-tagged platform files.
func NewPlatform(opts Options) Notifier {
	return newPlatform(opts)
}
