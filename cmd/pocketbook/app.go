package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"pocketbook/internal/amqp"
	"pocketbook/internal/backend"
	"pocketbook/internal/cli"
	"pocketbook/internal/config"
	"pocketbook/internal/log"
	"pocketbook/internal/services"
	"pocketbook/internal/trace"
	"pocketbook/internal/worker"
)

// nowFunc is replaced in tests.
var nowFunc = time.Now

// app is everything one invocation needs: the loaded book and the machinery
// that writes it back.
type app struct {
	cfg      *config.Config
	logger   *log.Logger
	backend  *backend.BackendResult
	worker   *worker.PersistWorker
	events   *amqp.Client
	problems *problemRecorder
	book     *services.Book
}

// problemRecorder keeps the failure events of this invocation so they can be
// shown once the command is done.
type problemRecorder struct {
	mu     sync.Mutex
	events []worker.Event
}

func (r *problemRecorder) Notify(_ context.Context, ev worker.Event) {
	if ev.Type == worker.EventPersisted {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *problemRecorder) Events() []worker.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]worker.Event(nil), r.events...)
}

func loadConfig() (*config.Config, *log.Logger, error) {
	cli.LoadEnvFile()
	cfg, err := cli.LoadAndValidateConfig()
	if err != nil {
		return nil, nil, err
	}
	logger, err := cli.SetupLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

func openApp(ctx context.Context) (*app, error) {
	cfg, logger, err := loadConfig()
	if err != nil {
		return nil, err
	}
	logger = logger.With(log.FieldRunID, trace.RunID(ctx)).WithComponent(log.ComponentCLI)

	bcfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return nil, err
	}
	res, err := backend.NewFactory(logger).CreateBackend(ctx, bcfg)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	a := &app{cfg: cfg, logger: logger, backend: res, problems: &problemRecorder{}}
	notifiers := worker.Notifiers{a.problems}
	if cfg.AMQPEnabled() {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, logger)
		if err != nil {
			logger.WarnContext(ctx, "AMQP unavailable, persist events will not be published", log.FieldError, err)
		} else {
			a.events = client
			notifiers = append(notifiers, client)
		}
	}

	a.worker = worker.NewPersistWorker(res.Store, worker.Options{
		QueueSize: cfg.PersistQueueSize,
		Notifier:  notifiers,
		Logger:    logger,
	})
	a.book = services.NewBook(res.Store, a.worker, services.Options{
		PersistCategories: cfg.PersistCategories,
		Notifier:          notifiers,
		Logger:            logger,
	})

	if err := a.book.LoadAll(ctx); err != nil {
		a.close()
		return nil, fmt.Errorf("load book: %w", err)
	}
	return a, nil
}

// finish waits for pending writes, releases resources and reports any
// persistence problems to w.
func (a *app) finish(w io.Writer) error {
	err := a.close()
	for _, ev := range a.problems.Events() {
		switch ev.Type {
		case worker.EventPersistFailed:
			fmt.Fprintln(w, cli.FormatWarning(fmt.Sprintf("%s was not saved: %v", ev.Key, ev.Err)))
		case worker.EventLoadCorrupt:
			fmt.Fprintln(w, cli.FormatWarning(fmt.Sprintf("%s could not be read and was set aside as %s%s", ev.Key, ev.Key, services.CorruptSuffix)))
		}
	}
	return err
}

func (a *app) close() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.FlushTimeout)
	defer cancel()

	var errs []error
	if a.worker != nil {
		if err := a.worker.Flush(ctx); err != nil {
			errs = append(errs, fmt.Errorf("flush writes: %w", err))
		}
		errs = append(errs, a.worker.Close())
	}
	if a.events != nil {
		errs = append(errs, a.events.Close())
	}
	errs = append(errs, a.backend.Cleanup())
	return errors.Join(errs...)
}

// withApp opens the book, runs fn and always finishes the app. Problems are
// reported on the command's stderr.
func withApp(cmd *cobra.Command, fn func(*app) error) (err error) {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, a.finish(cmd.ErrOrStderr()))
	}()
	return fn(a)
}
