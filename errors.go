package sharon

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoOutputDir is returned by New when no output directory is set.
	ErrNoOutputDir = errors.New("sharon: no output directory configured")

	// ErrNotFileOrDir is returned by Run when an input path is neither a
	// regular file nor a directory.
	ErrNotFileOrDir = errors.New("sharon: not a file or directory")
)

// FileError is the failure of a single file.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// RunError aggregates the per-file failures of a run.
type RunError struct {
	Files []*FileError
}

func (e *RunError) Error() string {
	if len(e.Files) == 1 {
		return "sharon: 1 file failed: " + e.Files[0].Error()
	}
	msgs := make([]string, len(e.Files))
	for i, f := range e.Files {
		msgs[i] = f.Error()
	}
	return fmt.Sprintf("sharon: %d files failed:\n%s", len(e.Files), strings.Join(msgs, "\n"))
}

// Unwrap exposes each file failure to errors.Is and errors.As.
func (e *RunError) Unwrap() []error {
	errs := make([]error, len(e.Files))
	for i, f := range e.Files {
		errs[i] = f
	}
	return errs
}
