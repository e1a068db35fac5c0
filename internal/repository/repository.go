// Package repository keeps one entity kind's records as an ordered
// collection and moves that collection to and from a key/value store.
//
// Append, ReplaceAt and DeleteAt are pure: they never modify the slice they
// are given. Repository is a thin owner of one such slice plus its store key.
package repository

import (
	"context"
	"errors"
	"fmt"

	"pocketbook/internal/storage"
)

// Reader is the read half of storage.Store.
type Reader interface {
	Get(ctx context.Context, key string) (string, error)
}

// Writer is the write half of storage.Store.
type Writer interface {
	Set(ctx context.Context, key, value string) error
}

// Append returns a new slice with r at the end and the index it was given.
func Append[T any](records []T, r T) ([]T, int) {
	out := make([]T, len(records), len(records)+1)
	copy(out, records)
	out = append(out, r)
	return out, len(out) - 1
}

// ReplaceAt returns a new slice with position i replaced by r.
func ReplaceAt[T any](records []T, i int, r T) ([]T, error) {
	if err := checkIndex(i, len(records)); err != nil {
		return records, err
	}
	out := make([]T, len(records))
	copy(out, records)
	out[i] = r
	return out, nil
}

// DeleteAt returns a new slice without position i. Later records move down
// by one and keep their relative order.
func DeleteAt[T any](records []T, i int) ([]T, error) {
	if err := checkIndex(i, len(records)); err != nil {
		return records, err
	}
	out := make([]T, 0, len(records)-1)
	out = append(out, records[:i]...)
	out = append(out, records[i+1:]...)
	return out, nil
}

// Repository is the ordered collection of one entity kind, stored under key.
type Repository[T any] struct {
	key     string
	records []T
}

func New[T any](key string, records ...T) *Repository[T] {
	return &Repository[T]{key: key, records: append([]T{}, records...)}
}

// Key is the store key the collection is persisted under.
func (r *Repository[T]) Key() string {
	return r.key
}

// List returns a copy of the records in order.
func (r *Repository[T]) List() []T {
	return append([]T{}, r.records...)
}

func (r *Repository[T]) Len() int {
	return len(r.records)
}

// At returns the record at i.
func (r *Repository[T]) At(i int) (T, error) {
	if err := checkIndex(i, len(r.records)); err != nil {
		var zero T
		return zero, err
	}
	return r.records[i], nil
}

// Add appends rec and returns its index.
func (r *Repository[T]) Add(rec T) int {
	var i int
	r.records, i = Append(r.records, rec)
	return i
}

func (r *Repository[T]) UpdateAt(i int, rec T) error {
	records, err := ReplaceAt(r.records, i, rec)
	if err != nil {
		return err
	}
	r.records = records
	return nil
}

func (r *Repository[T]) RemoveAt(i int) error {
	records, err := DeleteAt(r.records, i)
	if err != nil {
		return err
	}
	r.records = records
	return nil
}

// Reset drops every record. Nothing is persisted.
func (r *Repository[T]) Reset() {
	r.records = []T{}
}

// Encode serializes the current collection.
func (r *Repository[T]) Encode() (string, error) {
	return Encode(r.records)
}

// Persist writes the whole collection under Key. A failed write leaves the
// in-memory records as they are.
func (r *Repository[T]) Persist(ctx context.Context, w Writer) error {
	payload, err := r.Encode()
	if err != nil {
		return &PersistenceError{Key: r.key, Err: err}
	}
	return Write(ctx, w, r.key, payload)
}

// Load replaces the in-memory records with the stored collection. An absent
// key loads as empty. On error the in-memory records are not touched.
func (r *Repository[T]) Load(ctx context.Context, rd Reader) error {
	payload, err := rd.Get(ctx, r.key)
	if errors.Is(err, storage.ErrNotFound) {
		r.records = []T{}
		return nil
	}
	if err != nil {
		return fmt.Errorf("load %s: %w", r.key, err)
	}
	records, err := Decode[T](payload)
	if err != nil {
		return &CorruptDataError{Key: r.key, Raw: payload, Err: err}
	}
	r.records = records
	return nil
}

// Write stores an already encoded payload, wrapping failures in
// PersistenceError.
func Write(ctx context.Context, w Writer, key, payload string) error {
	if err := w.Set(ctx, key, payload); err != nil {
		return &PersistenceError{Key: key, Err: err}
	}
	return nil
}
