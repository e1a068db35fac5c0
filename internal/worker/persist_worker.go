// Package worker applies collection writes to the store in the background.
package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"pocketbook/internal/log"
	"pocketbook/internal/repository"
)

// ErrClosed is returned by Submit and Flush after Close.
var ErrClosed = errors.New("persist worker closed")

// Job is one encoded snapshot of a collection.
type Job struct {
	Key     string
	Payload string
	Records int
}

// Persister accepts snapshots for writing. Submit must not wait for the write.
type Persister interface {
	Submit(ctx context.Context, job Job) error
}

type Options struct {
	QueueSize    int
	WriteTimeout time.Duration
	Notifier     Notifier
	Logger       *log.Logger
}

type request struct {
	job     Job
	barrier chan struct{}
}

// PersistWorker writes submitted snapshots one at a time, in submission
// order, so the stored value of a key always ends as the last snapshot
// submitted for it.
type PersistWorker struct {
	store        repository.Writer
	notifier     Notifier
	logger       *log.Logger
	structured   *log.StructuredLogger
	writeTimeout time.Duration

	mu       sync.RWMutex
	closed   bool
	requests chan request
	done     chan struct{}
}

func NewPersistWorker(store repository.Writer, opts Options) *PersistWorker {
	if opts.QueueSize < 1 {
		opts.QueueSize = 1
	}
	if opts.WriteTimeout <= 0 {
		opts.WriteTimeout = 30 * time.Second
	}
	if opts.Notifier == nil {
		opts.Notifier = Notifiers(nil)
	}
	if opts.Logger == nil {
		opts.Logger = log.Discard()
	}
	logger := opts.Logger.WithComponent(log.ComponentWorker)

	w := &PersistWorker{
		store:        store,
		notifier:     opts.Notifier,
		logger:       logger,
		structured:   log.NewStructuredLogger(logger),
		writeTimeout: opts.WriteTimeout,
		requests:     make(chan request, opts.QueueSize),
		done:         make(chan struct{}),
	}
	go w.run()
	return w
}

// Submit queues job. It blocks only while the queue is full.
func (w *PersistWorker) Submit(ctx context.Context, job Job) error {
	return w.enqueue(ctx, request{job: job})
}

// Flush waits until every job submitted before the call has been written.
func (w *PersistWorker) Flush(ctx context.Context) error {
	barrier := make(chan struct{})
	if err := w.enqueue(ctx, request{barrier: barrier}); err != nil {
		return err
	}
	select {
	case <-barrier:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("flush: %w", ctx.Err())
	}
}

// Close writes what is queued and stops the worker. It is safe to call more
// than once.
func (w *PersistWorker) Close() error {
	w.mu.Lock()
	if !w.closed {
		w.closed = true
		close(w.requests)
	}
	w.mu.Unlock()
	<-w.done
	return nil
}

func (w *PersistWorker) enqueue(ctx context.Context, req request) error {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.closed {
		return ErrClosed
	}
	select {
	case w.requests <- req:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (w *PersistWorker) run() {
	defer close(w.done)
	for req := range w.requests {
		if req.barrier != nil {
			close(req.barrier)
			continue
		}
		w.write(req.job)
	}
}

func (w *PersistWorker) write(job Job) {
	ctx, cancel := context.WithTimeout(context.Background(), w.writeTimeout)
	defer cancel()

	start := time.Now()
	err := repository.Write(ctx, w.store, job.Key, job.Payload)
	ev := Event{Key: job.Key, Records: job.Records, Timestamp: time.Now()}
	if err != nil {
		w.structured.LogPersistFailure(ctx, job.Key, job.Records, err)
		ev.Type = EventPersistFailed
		ev.Err = err
	} else {
		w.structured.LogPersisted(ctx, job.Key, job.Records, len(job.Payload), time.Since(start).Milliseconds())
		ev.Type = EventPersisted
	}
	w.notifier.Notify(ctx, ev)
}
