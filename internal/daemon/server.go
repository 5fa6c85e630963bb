package daemon

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	"ahoy/internal/eventbus"
	"ahoy/internal/notify"
	"ahoy/internal/runtime/supervisor"
	logx "ahoy/pkg/logx"
)

// BindError means the daemon could not claim its socket. Fatal to
// startup; the path is included so the operator can act on it.
type BindError struct {
	Path string
	Err  error
}

func (e *BindError) Error() string {
	return fmt.Sprintf("bind %s: %v", e.Path, e.Err)
}

func (e *BindError) Unwrap() error { return e.Err }

// Server owns the well-known unix socket: it accepts connections forever
// and serves each one with its own supervised handler goroutine.
//
// Handlers share no mutable state. Within one connection notifications
// are dispatched in arrival order; across connections ordering is
// unspecified.
type Server struct {
	path     string
	notifier notify.Notifier
	bus      eventbus.Bus
	log      logx.Logger
}

func NewServer(path string, notifier notify.Notifier, bus eventbus.Bus, log logx.Logger) *Server {
	if log.IsZero() {
		log = logx.Nop()
	}
	return &Server{path: path, notifier: notifier, bus: bus, log: log}
}

// Listen claims the socket. A leftover socket file from an uncleanly
// terminated run is removed unconditionally: the daemon assumes it is
// the sole instance and a stale artifact is never usable.
func (s *Server) Listen() (net.Listener, error) {
	if _, err := os.Stat(s.path); err == nil {
		if err := os.Remove(s.path); err != nil {
			return nil, &BindError{Path: s.path, Err: err}
		}
		s.log.Info("removed stale socket", logx.String("path", s.path))
	}

	ln, err := net.Listen("unix", s.path)
	if err != nil {
		return nil, &BindError{Path: s.path, Err: err}
	}
	return ln, nil
}

// Serve accepts connections until ctx is canceled. Accept errors are
// logged and absorbed; a single failed accept never stops the daemon.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	sup := supervisor.New(ctx, supervisor.WithLogger(s.log))

	// Closing the listener is the only way to interrupt Accept.
	sup.Go("closer", func(ctx context.Context) error {
		<-ctx.Done()
		return ln.Close()
	})

	s.log.Info("listening", logx.String("path", s.path))

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				break
			}
			s.log.Error("accept failed", logx.Err(err))
			continue
		}
		sup.Go("conn", func(ctx context.Context) error {
			s.handle(ctx, conn)
			return nil
		})
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sup.Stop(stopCtx); err != nil && !errors.Is(err, net.ErrClosed) {
		s.log.Warn("shutdown incomplete", logx.Err(err))
	}
	return nil
}

// handle owns one connection from accept to close. It reads newline-
// terminated records oldest first; a malformed record or a display
// failure is logged and skipped, never fatal to the connection.
func (s *Server) handle(ctx context.Context, conn net.Conn) {
	defer conn.Close()

	// Unblock the read when the daemon shuts down mid-connection.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.SetReadDeadline(time.Now())
		case <-done:
		}
	}()

	sc := bufio.NewScanner(conn)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for sc.Scan() {
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}

		n, err := notify.Decode(line)
		if err != nil {
			s.log.Error("dropping malformed record", logx.Err(err))
			continue
		}

		s.log.Info("notification received",
			logx.String("title", n.Title),
			logx.String("body", n.Body))

		if err := s.notifier.Show(n); err != nil {
			s.log.Error("display failed", logx.Err(err))
			s.publish(eventbus.TypeDisplayFailed, n, err)
			continue
		}
		s.publish(eventbus.TypeDisplayed, n, nil)
	}

	if err := sc.Err(); err != nil && ctx.Err() == nil {
		s.log.Warn("connection read failed", logx.Err(err))
	}
}

// DisplayOutcome is the event payload published after each dispatch.
type DisplayOutcome struct {
	Notification notify.Notification
	Err          error
}

func (s *Server) publish(typ string, n notify.Notification, err error) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(eventbus.Event{Type: typ, Data: DisplayOutcome{Notification: n, Err: err}})
}
