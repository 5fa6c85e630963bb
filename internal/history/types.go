package history

import (
	"errors"
	"time"
)

var ErrDisabled = errors.New("history disabled")

// Config configures the history store.
//
// If Driver is empty or "none", history is disabled.
type Config struct {
	Driver     string
	Path       string
	MaxEntries int
}

// Entry records one dispatch outcome. Keep it compact and schema-stable.
type Entry struct {
	At       time.Time `json:"at"`
	Title    string    `json:"title"`
	Body     string    `json:"body"`
	Icon     string    `json:"icon,omitempty"`
	Activate string    `json:"activate,omitempty"`
	OK       bool      `json:"ok"`
	Error    string    `json:"error,omitempty"`
}
