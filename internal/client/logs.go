package client

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fsnotify/fsnotify"
)

// TailLogs prints the last n lines of the daemon log to w. With follow,
// it keeps streaming appended bytes until ctx is canceled, reseeking to
// the start when the file is truncated (e.g. rotated by hand).
func TailLogs(ctx context.Context, w io.Writer, path string, n int, follow bool) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintf(w, "No log file found at %s\n", path)
			return nil
		}
		return err
	}
	defer f.Close()

	lines, err := lastLines(f, n)
	if err != nil {
		return err
	}
	for _, line := range lines {
		fmt.Fprintln(w, line)
	}
	if !follow {
		return nil
	}

	offset, err := f.Seek(0, io.SeekEnd)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	if err := watcher.Add(path); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) {
				continue
			}
			offset, err = copyNew(w, f, offset)
			if err != nil {
				return err
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return err
		}
	}
}

// copyNew streams bytes from offset to EOF, handling truncation.
func copyNew(w io.Writer, f *os.File, offset int64) (int64, error) {
	fi, err := f.Stat()
	if err != nil {
		return offset, err
	}
	if fi.Size() < offset {
		offset = 0
	}
	if _, err := f.Seek(offset, io.SeekStart); err != nil {
		return offset, err
	}
	n, err := io.Copy(w, f)
	return offset + n, err
}

// lastLines scans the whole file keeping a bounded window. Daemon logs
// stay small; no need for reverse block reads.
func lastLines(r io.Reader, n int) ([]string, error) {
	if n <= 0 {
		return nil, nil
	}
	var window []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		window = append(window, sc.Text())
		if len(window) > n {
			window = window[1:]
		}
	}
	return window, sc.Err()
}
