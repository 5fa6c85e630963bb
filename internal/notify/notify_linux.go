//go:build linux

package notify

import "github.com/gen2brain/beeep"

// linuxNotifier renders alerts over the desktop notification D-Bus API
// (org.freedesktop.Notifications) via beeep. Activation targets have no
// portable equivalent on this path and are not forwarded.
type linuxNotifier struct{}

func newPlatform(_ Options) Notifier { return linuxNotifier{} }

func (linuxNotifier) Show(n Notification) error {
	if err := beeep.Notify(n.Title, n.Body, n.Icon); err != nil {
		return &NotifierError{Backend: "dbus", Err: err}
	}
	return nil
}
