package history

import (
	"context"
	"errors"
	"strings"

	logx "ahoy/pkg/logx"
)

// Store is the minimal history API used by the daemon and CLI.
type Store interface {
	Append(ctx context.Context, e Entry) error
	// Recent returns up to n entries, newest first.
	Recent(ctx context.Context, n int) ([]Entry, error)
	Close() error
}

// Open initializes the configured store.
// It returns (nil, nil) if history is disabled.
func Open(cfg Config, log logx.Logger) (Store, error) {
	driver := strings.ToLower(strings.TrimSpace(cfg.Driver))
	if driver == "" || driver == "none" {
		return nil, nil
	}
	if log.IsZero() {
		log = logx.Nop()
	}
	if cfg.MaxEntries <= 0 {
		cfg.MaxEntries = 500
	}

	switch driver {
	case "file":
		return openFile(cfg, log)
	case "sqlite", "sqlite3":
		return openSQLite(cfg, log)
	default:
		return nil, errors.New("unknown history driver: " + driver)
	}
}
