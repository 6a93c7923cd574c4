package sequence

import (
	"errors"
	"fmt"
)

// ErrSourceDir reports a missing or non-directory source path. This is a
// configuration problem, not a filesystem failure during collection.
var ErrSourceDir = errors.New("source directory does not exist")

// OpError wraps a filesystem failure during purge, copy, or link so the
// failing operation and path survive up to the dispatch layer.
type OpError struct {
	Op   string // "remove", "copy", "symlink", "mkdir", "read"
	Path string
	Err  error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}
