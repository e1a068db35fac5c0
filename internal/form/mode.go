package form

import "fmt"

// Mode is either Creating or Editing.
type Mode interface {
	isMode()
	fmt.Stringer
}

// Creating means a commit appends a new record.
type Creating struct{}

// Editing means a commit replaces the record at Index.
type Editing struct {
	Index int
}

func (Creating) isMode() {}
func (Editing) isMode()  {}

func (Creating) String() string  { return "creating" }
func (e Editing) String() string { return fmt.Sprintf("editing[%d]", e.Index) }
