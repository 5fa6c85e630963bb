package notify

// Notification describes one alert to display. It is a plain value:
// constructed once by the sender, never mutated after being handed to
// the codec or a notifier, and carries no identity beyond its content.
type Notification struct {
	// Title is the alert headline. Never empty on the wire.
	Title string `json:"title"`

	// Body is the alert text. Always serialized, may be empty.
	Body string `json:"body"`

	// Icon selects a visual icon (e.g. "claude", "codex", "gemini").
	// Empty means the platform default.
	Icon string `json:"icon,omitempty"`

	// Activate names what to foreground when the user clicks the alert
	// (a bundle identifier on macOS). Empty means no activation target.
	Activate string `json:"activate,omitempty"`

	// Metadata is an open-ended extension mapping. The daemon ignores
	// it but preserves it through encode/decode round trips.
	Metadata map[string]any `json:"metadata,omitempty"`
}

// New returns a Notification with the given title and body.
func New(title, body string) Notification {
	return Notification{Title: title, Body: body, Metadata: map[string]any{}}
}

// WithIcon returns a copy with the icon set.
func (n Notification) WithIcon(icon string) Notification {
	n.Icon = icon
	return n
}

// WithActivate returns a copy with the activation target set.
func (n Notification) WithActivate(target string) Notification {
	n.Activate = target
	return n
}
