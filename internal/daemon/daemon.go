// Package daemon implements the long-running notification daemon: it
// binds the well-known unix socket, relays decoded notifications to the
// platform notifier, and records dispatch outcomes.
package daemon

import (
	"context"
	"time"

	sd "github.com/coreos/go-systemd/v22/daemon"

	"ahoy/internal/config"
	"ahoy/internal/eventbus"
	"ahoy/internal/history"
	"ahoy/internal/notify"
	logx "ahoy/pkg/logx"
)

// Run starts the daemon in the foreground and blocks until ctx is
// canceled. The only fatal runtime error is failing to bind the socket.
func Run(ctx context.Context, cfg *config.Config) error {
	if err := config.EnsureHome(); err != nil {
		return err
	}

	logSvc, log := logx.New(logx.Config{
		Level:   cfg.Logging.Level,
		Console: cfg.Logging.Console == nil || *cfg.Logging.Console,
		File: logx.FileConfig{
			Enabled: cfg.Logging.File == nil || *cfg.Logging.File,
			Path:    cfg.LogFilePath(),
		},
	})
	defer logSvc.Close()
	log = log.With(logx.String("comp", "daemon"))

	bus := eventbus.New()

	store, err := history.Open(history.Config{
		Driver:     cfg.History.Driver,
		Path:       cfg.HistoryFilePath(),
		MaxEntries: cfg.History.MaxEntries,
	}, log.With(logx.String("comp", "history")))
	if err != nil {
		// History is an observer; a broken store must not keep
		// notifications from being displayed.
		log.Warn("history disabled", logx.Err(err))
	}
	recorderDone := make(chan struct{})
	if store != nil {
		defer store.Close()
		go recordOutcomes(ctx, bus, store, log, recorderDone)
	} else {
		close(recorderDone)
	}

	notifier := notify.NewPlatform(notify.Options{
		TerminalNotifier: cfg.Notify.TerminalNotifier,
		Sound:            cfg.Notify.Sound,
	})

	srv := NewServer(cfg.SocketPath(), notifier, bus, log)
	ln, err := srv.Listen()
	if err != nil {
		return err
	}

	// Tell systemd we're up; a no-op everywhere else.
	_, _ = sd.SdNotify(false, sd.SdNotifyReady)
	defer func() { _, _ = sd.SdNotify(false, sd.SdNotifyStopping) }()

	log.Info("daemon started", logx.String("socket", cfg.SocketPath()))
	err = srv.Serve(ctx, ln)

	// Let the recorder drain briefly before the store closes.
	select {
	case <-recorderDone:
	case <-time.After(2 * time.Second):
	}
	return err
}

// recordOutcomes drains display events into the history store until ctx
// is canceled, then flushes whatever is still buffered.
func recordOutcomes(ctx context.Context, bus eventbus.Bus, store history.Store, log logx.Logger, done chan<- struct{}) {
	defer close(done)

	ch, unsub := bus.Subscribe(64)
	defer unsub()

	record := func(ev eventbus.Event) {
		out, ok := ev.Data.(DisplayOutcome)
		if !ok {
			return
		}
		e := history.Entry{
			At:       ev.Time,
			Title:    out.Notification.Title,
			Body:     out.Notification.Body,
			Icon:     out.Notification.Icon,
			Activate: out.Notification.Activate,
			OK:       out.Err == nil,
		}
		if out.Err != nil {
			e.Error = out.Err.Error()
		}
		if err := store.Append(context.Background(), e); err != nil {
			log.Warn("history append failed", logx.Err(err))
		}
	}

	for {
		select {
		case ev := <-ch:
			record(ev)
		case <-ctx.Done():
			for {
				select {
				case ev := <-ch:
					record(ev)
				default:
					return
				}
			}
		}
	}
}
