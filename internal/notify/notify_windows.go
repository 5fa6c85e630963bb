//go:build windows

package notify

import "github.com/gen2brain/beeep"

// windowsNotifier renders alerts through the toast notification API via
// beeep.
type windowsNotifier struct{}

func newPlatform(_ Options) Notifier { return windowsNotifier{} }

func (windowsNotifier) Show(n Notification) error {
	if err := beeep.Notify(n.Title, n.Body, n.Icon); err != nil {
		return &NotifierError{Backend: "toast", Err: err}
	}
	return nil
}
