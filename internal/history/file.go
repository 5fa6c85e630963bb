package history

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"

	logx "ahoy/pkg/logx"
)

// fileStore is an append-only JSON Lines backend.
//
// The full tail (up to MaxEntries) is kept in memory for Recent();
// the file itself is compacted once it holds twice the cap.
type fileStore struct {
	log logx.Logger

	mu      sync.Mutex
	path    string
	file    *os.File
	max     int
	entries []Entry // oldest first
	written int     // lines in the file since last compaction
}

func openFile(cfg Config, log logx.Logger) (Store, error) {
	path := strings.TrimSpace(cfg.Path)
	if path == "" {
		return nil, errors.New("history.path is required for file driver")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	entries, lines, err := loadTail(path, cfg.MaxEntries)
	if err != nil {
		return nil, err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, err
	}

	return &fileStore{
		log:     log,
		path:    path,
		file:    f,
		max:     cfg.MaxEntries,
		entries: entries,
		written: lines,
	}, nil
}

// loadTail reads the file, keeping the last max well-formed entries.
// Malformed lines are skipped; this log heals itself on compaction.
func loadTail(path string, max int) ([]Entry, int, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, 0, nil
		}
		return nil, 0, err
	}
	defer f.Close()

	var entries []Entry
	lines := 0
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		lines++
		var e Entry
		if err := json.Unmarshal(sc.Bytes(), &e); err != nil {
			continue
		}
		entries = append(entries, e)
		if len(entries) > max {
			entries = entries[1:]
		}
	}
	if err := sc.Err(); err != nil {
		return nil, 0, err
	}
	return entries, lines, nil
}

func (s *fileStore) Append(ctx context.Context, e Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b, err := json.Marshal(e)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file == nil {
		return errors.New("history store closed")
	}
	if _, err := s.file.Write(append(b, '\n')); err != nil {
		return err
	}
	s.written++

	s.entries = append(s.entries, e)
	if len(s.entries) > s.max {
		s.entries = s.entries[1:]
	}

	if s.written > 2*s.max {
		if err := s.compactLocked(); err != nil {
			s.log.Warn("history compaction failed", logx.Err(err))
		}
	}
	return nil
}

// compactLocked rewrites the file from the in-memory tail.
func (s *fileStore) compactLocked() error {
	tmp := s.path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	for _, e := range s.entries {
		b, err := json.Marshal(e)
		if err != nil {
			continue
		}
		w.Write(b)
		w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return err
	}

	s.file.Close()
	nf, err := os.OpenFile(s.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		s.file = nil
		return err
	}
	s.file = nf
	s.written = len(s.entries)
	return nil
}

func (s *fileStore) Recent(ctx context.Context, n int) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if n <= 0 || n > len(s.entries) {
		n = len(s.entries)
	}
	out := make([]Entry, 0, n)
	for i := len(s.entries) - 1; i >= len(s.entries)-n; i-- {
		out = append(out, s.entries[i])
	}
	return out, nil
}

func (s *fileStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}
