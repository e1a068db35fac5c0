// Package form holds the draft a user is filling in and turns it into a
// repository insert or update once it validates.
package form

import (
	"context"
	"time"

	"pocketbook/internal/core"
	"pocketbook/internal/log"
	"pocketbook/internal/repository"
	"pocketbook/internal/worker"
)

// Session is the single form of one collection. It serves both create and
// update: BeginEdit switches it to Editing and Commit switches it back.
//
// A Session is not safe for concurrent use.
type Session[T any] struct {
	schema     core.Schema[T]
	repo       *repository.Repository[T]
	persister  worker.Persister
	notifier   worker.Notifier
	logger     *log.Logger
	structured *log.StructuredLogger

	draft T
	mode  Mode
}

// New creates a session in Creating mode with a default draft. With a nil
// persister commits stay in memory.
func New[T any](schema core.Schema[T], repo *repository.Repository[T], persister worker.Persister, logger *log.Logger) *Session[T] {
	if logger == nil {
		logger = log.Discard()
	}
	base := logger.WithComponent(log.ComponentForm)
	return &Session[T]{
		schema:     schema,
		repo:       repo,
		persister:  persister,
		notifier:   worker.Notifiers(nil),
		logger:     base.With(log.FieldKind, string(schema.Kind)),
		structured: log.NewStructuredLogger(base),
		draft:      schema.Defaults(),
		mode:       Creating{},
	}
}

// WithNotifier sets where snapshots that never reach the persister are
// reported as persist_failed events.
func (s *Session[T]) WithNotifier(n worker.Notifier) *Session[T] {
	if n == nil {
		n = worker.Notifiers(nil)
	}
	s.notifier = n
	return s
}

func (s *Session[T]) Draft() T {
	return s.draft
}

func (s *Session[T]) Mode() Mode {
	return s.mode
}

func (s *Session[T]) Repository() *repository.Repository[T] {
	return s.repo
}

// Missing returns the required fields the draft still lacks.
func (s *Session[T]) Missing() []string {
	return s.schema.Validate(s.draft)
}

// SetField assigns value to the named draft field. Unknown names are ignored.
func (s *Session[T]) SetField(name, value string) {
	draft, ok := s.schema.SetField(s.draft, name, value)
	if !ok {
		s.logger.Debug("Ignoring unknown field", log.FieldField, name)
		return
	}
	s.draft = draft
}

// Update replaces the draft with fn applied to it.
func (s *Session[T]) Update(fn func(T) T) {
	s.draft = fn(s.draft)
}

// TogglePriority sets the category draft's priority to p, or clears it when
// it is already p.
func TogglePriority(s *Session[core.Category], p core.Priority) {
	s.Update(func(c core.Category) core.Category {
		return c.TogglePriority(p)
	})
}

// BeginEdit loads the record at index into the draft and switches to Editing.
func (s *Session[T]) BeginEdit(index int) error {
	rec, err := s.repo.At(index)
	if err != nil {
		return err
	}
	s.draft = rec
	s.mode = Editing{Index: index}
	s.logger.Debug("Edit started", log.FieldIndex, index)
	return nil
}

// CancelEdit drops the draft and returns to Creating. The repository is not
// touched.
func (s *Session[T]) CancelEdit() {
	s.reset()
}

// Commit validates the draft and stores it: in place when Editing, appended
// when Creating. It returns the record's index. A draft with missing fields
// yields a *core.ValidationError and changes nothing.
//
// The new collection is handed to the persister; a failed write is logged and
// reported through the persister's notifier, never returned here.
func (s *Session[T]) Commit(ctx context.Context) (int, error) {
	missing := s.schema.Validate(s.draft)
	if err := core.NewValidationError(s.schema.Kind, missing); err != nil {
		s.structured.LogRejected(ctx, string(s.schema.Kind), missing)
		return -1, err
	}

	rec := s.draft
	if s.schema.Prepare != nil {
		rec = s.schema.Prepare(rec)
	}

	var (
		index int
		op    string
	)
	switch m := s.mode.(type) {
	case Editing:
		if err := s.repo.UpdateAt(m.Index, rec); err != nil {
			return -1, err
		}
		index, op = m.Index, log.OpUpdate
	default:
		index, op = s.repo.Add(rec), log.OpCreate
	}

	s.reset()
	s.structured.LogCommit(ctx, string(s.schema.Kind), s.repo.Key(), index, op)
	s.persist(ctx)
	return index, nil
}

// RemoveAt deletes the record at index. Any pending edit target is cleared,
// since indices at and after index now name different records; the draft is
// kept, so a later Commit creates.
func (s *Session[T]) RemoveAt(ctx context.Context, index int) error {
	if err := s.repo.RemoveAt(index); err != nil {
		return err
	}
	if e, ok := s.mode.(Editing); ok {
		s.logger.DebugContext(ctx, "Edit target cleared by delete", log.FieldIndex, e.Index)
		s.mode = Creating{}
	}
	s.structured.LogCommit(ctx, string(s.schema.Kind), s.repo.Key(), index, log.OpDelete)
	s.persist(ctx)
	return nil
}

// Replace stores rec at index without going through the draft and persists
// the collection. Used for row-level edits such as a goal's contribution.
func (s *Session[T]) Replace(ctx context.Context, index int, rec T) error {
	if err := s.repo.UpdateAt(index, rec); err != nil {
		return err
	}
	s.persist(ctx)
	return nil
}

// Persist hands the current collection to the persister.
func (s *Session[T]) Persist(ctx context.Context) {
	s.persist(ctx)
}

func (s *Session[T]) reset() {
	s.draft = s.schema.Defaults()
	s.mode = Creating{}
}

func (s *Session[T]) persist(ctx context.Context) {
	if s.persister == nil {
		return
	}
	payload, err := s.repo.Encode()
	if err != nil {
		s.structured.LogError(ctx, "Failed to encode collection", err, log.ComponentForm, log.OpPersist,
			log.NewFields().WithRecord(string(s.schema.Kind), s.repo.Key(), -1))
		s.failed(ctx, err)
		return
	}
	job := worker.Job{Key: s.repo.Key(), Payload: payload, Records: s.repo.Len()}
	if err := s.persister.Submit(ctx, job); err != nil {
		s.structured.LogError(ctx, "Failed to queue collection write", err, log.ComponentForm, log.OpPersist,
			log.NewFields().WithRecord(string(s.schema.Kind), s.repo.Key(), -1))
		s.failed(ctx, err)
	}
}

func (s *Session[T]) failed(ctx context.Context, err error) {
	s.notifier.Notify(ctx, worker.Event{
		Type:      worker.EventPersistFailed,
		Key:       s.repo.Key(),
		Records:   s.repo.Len(),
		Err:       err,
		Timestamp: time.Now(),
	})
}
