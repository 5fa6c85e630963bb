//go:build sqlite
// +build sqlite

package history

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	logx "ahoy/pkg/logx"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS history (
	id       INTEGER PRIMARY KEY AUTOINCREMENT,
	at       INTEGER NOT NULL,
	title    TEXT NOT NULL,
	body     TEXT NOT NULL,
	icon     TEXT NOT NULL DEFAULT '',
	activate TEXT NOT NULL DEFAULT '',
	ok       INTEGER NOT NULL,
	error    TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_history_at ON history(at);
`

type sqliteStore struct {
	db  *sql.DB
	log logx.Logger
	max int

	opCount atomic.Uint64
}

func openSQLite(cfg Config, log logx.Logger) (Store, error) {
	path := strings.TrimSpace(cfg.Path)
	if path == "" {
		return nil, errors.New("history.path is required for sqlite driver")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	return &sqliteStore{db: db, log: log, max: cfg.MaxEntries}, nil
}

func (s *sqliteStore) Append(ctx context.Context, e Entry) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO history (at, title, body, icon, activate, ok, error)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.At.UnixMilli(), e.Title, e.Body, e.Icon, e.Activate, boolToInt(e.OK), e.Error)
	if err != nil {
		return err
	}

	// Prune every 64 writes to keep Append cheap.
	if s.opCount.Add(1)%64 == 0 {
		if _, err := s.db.ExecContext(ctx,
			`DELETE FROM history WHERE id NOT IN
			 (SELECT id FROM history ORDER BY id DESC LIMIT ?)`, s.max); err != nil {
			s.log.Warn("history prune failed", logx.Err(err))
		}
	}
	return nil
}

func (s *sqliteStore) Recent(ctx context.Context, n int) ([]Entry, error) {
	if n <= 0 || n > s.max {
		n = s.max
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT at, title, body, icon, activate, ok, error
		 FROM history ORDER BY id DESC LIMIT ?`, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var at int64
		var ok int
		if err := rows.Scan(&at, &e.Title, &e.Body, &e.Icon, &e.Activate, &ok, &e.Error); err != nil {
			return nil, err
		}
		e.At = time.UnixMilli(at)
		e.OK = ok != 0
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *sqliteStore) Close() error { return s.db.Close() }

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
