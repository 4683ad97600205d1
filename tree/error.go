package tree

import (
	"errors"
	"fmt"
)

// ErrMalformedTree is matched by every MalformedTreeError.
var ErrMalformedTree = errors.New("malformed dependency tree")

// MalformedTreeError is returned by Build when the heads of a sentence do not
// form a single rooted tree.
type MalformedTreeError struct {
	Reason string

	// Index is the position of the offending token, -1 if none.
	Index int

	// Head is the head of the offending token, -1 if none.
	Head int
}

func (e *MalformedTreeError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%s: %s", ErrMalformedTree, e.Reason)
	}
	return fmt.Sprintf("%s: %s (token %d, head %d)", ErrMalformedTree, e.Reason, e.Index, e.Head)
}

func (e *MalformedTreeError) Is(target error) bool {
	return target == ErrMalformedTree
}
