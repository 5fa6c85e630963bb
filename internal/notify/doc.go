// Package notify defines the Notification value, its newline-delimited
// JSON wire codec, and the platform notifier that renders a Notification
// as a native desktop alert.
//
// Exactly one notifier variant is compiled per target OS (build tags);
// platforms without a backend get an explicit unsupported error instead
// of a silent no-op.
package notify
