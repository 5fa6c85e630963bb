//go:build !darwin && !linux && !windows

package notify

// unsupportedNotifier fails every Show with an explicit error and makes
// no OS calls. Compiled for platforms without a notification backend.
type unsupportedNotifier struct{}

func newPlatform(_ Options) Notifier { return unsupportedNotifier{} }

func (unsupportedNotifier) Show(_ Notification) error {
	return &NotifierError{Detail: "not implemented on this platform"}
}
