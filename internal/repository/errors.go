package repository

import (
	"errors"
	"fmt"
)

var (
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrPersistence     = errors.New("persistence failed")
	ErrCorruptData     = errors.New("corrupt data")
)

// IndexError reports an edit or delete aimed at a position that does not
// exist. Under correct session use it signals a logic fault.
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%v: %d (len %d)", ErrIndexOutOfRange, e.Index, e.Len)
}

func (e *IndexError) Unwrap() error {
	return ErrIndexOutOfRange
}

// PersistenceError wraps a failed write of a collection.
type PersistenceError struct {
	Key string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%v for %s: %v", ErrPersistence, e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() []error {
	return []error{ErrPersistence, e.Err}
}

// CorruptDataError is returned by Load when the stored value cannot be
// decoded. Raw holds the stored value so callers can keep a copy.
type CorruptDataError struct {
	Key string
	Raw string
	Err error
}

func (e *CorruptDataError) Error() string {
	return fmt.Sprintf("%v in %s: %v", ErrCorruptData, e.Key, e.Err)
}

func (e *CorruptDataError) Unwrap() []error {
	return []error{ErrCorruptData, e.Err}
}

func checkIndex(i, n int) error {
	if i < 0 || i >= n {
		return &IndexError{Index: i, Len: n}
	}
	return nil
}
