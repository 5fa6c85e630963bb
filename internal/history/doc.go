// Package history persists a bounded record of displayed notifications.
//
// It currently supports:
//   - "file": dependency-free JSON Lines backend (default)
//   - "sqlite": SQLite database file (optional build tag)
//
// This is a display log, not a delivery queue: entries are written after
// a notification was handed to the platform notifier, and losing them
// never affects dispatch.
package history
