package notify

import (
	"encoding/json"
	"fmt"
)

// DecodeError reports a wire record that could not be turned into a
// Notification. The daemon logs these and keeps reading; it never closes
// a connection over one bad record.
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decode notification: %s: %v", e.Reason, e.Err)
	}
	return "decode notification: " + e.Reason
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Encode serializes n as one newline-terminated JSON record.
//
// Optional fields (icon, activate, metadata) are omitted entirely when
// empty. Newlines inside string values are escaped by the JSON encoder,
// so the returned record contains exactly one '\n': the terminator.
func Encode(n Notification) ([]byte, error) {
	b, err := json.Marshal(n)
	if err != nil {
		return nil, fmt.Errorf("encode notification: %w", err)
	}
	return append(b, '\n'), nil
}

// Decode parses one wire record (with or without its trailing newline).
//
// Any subset of the optional fields may be absent; absent metadata
// decodes to an empty map. A record fails with *DecodeError when it is
// not valid JSON, when title/body hold a non-string value, or when the
// title is missing or empty.
func Decode(line []byte) (Notification, error) {
	var n Notification
	if err := json.Unmarshal(line, &n); err != nil {
		return Notification{}, &DecodeError{Reason: "malformed record", Err: err}
	}
	if n.Title == "" {
		return Notification{}, &DecodeError{Reason: "missing title"}
	}
	if n.Metadata == nil {
		n.Metadata = map[string]any{}
	}
	return n, nil
}
