// Package bpeerr classifies the error taxonomy of the training/inference
// pipeline so the CLI can map failures to exit codes without string
// matching. Config and Invariant errors propagate to the caller. I/O
// errors inside the corpus reader and malformed rows in the artifact
// readers are logged and handled locally; an I/O failure the CLI cannot
// continue past is returned as KindIO.
package bpeerr

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies why an operation failed.
type Kind int

const (
	// KindConfig covers missing directories, non-positive dimensions, and
	// negative merge counts. Surfaced immediately, before any artifact is written.
	KindConfig Kind = iota
	// KindIO covers a file that failed to open or a read that broke mid-file.
	// The corpus reader logs and skips these; the CLI returns the ones it
	// cannot continue past, and main exits with code 2 for them.
	KindIO
	// KindInvariant covers a violated data-structure invariant inside the
	// BPE learner (stale index pointing at a word with no matching split).
	// Always a programming error; always fatal.
	KindInvariant
	// KindOOM covers allocation failure during training. Partial artifacts
	// must not be persisted.
	KindOOM
)

func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindIO:
		return "io"
	case KindInvariant:
		return "invariant"
	case KindOOM:
		return "oom"
	default:
		return "unknown"
	}
}

// Error wraps an underlying cause with a Kind so the CLI can decide on an
// exit code without inspecting message text.
type Error struct {
	Kind Kind
	Op   string
	err  error
}

func (e *Error) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("%s: %v", e.Kind, e.err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Op, e.err)
}

func (e *Error) Unwrap() error { return e.err }

// Wrap attaches a Kind and an operation label to err, preserving the stack
// trace pkg/errors would otherwise only record at the first wrap site.
func Wrap(kind Kind, op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, err: errors.WithStack(err)}
}

// Config is a convenience constructor for a fresh configuration error.
func Config(op, format string, args ...any) error {
	return Wrap(KindConfig, op, fmt.Errorf(format, args...))
}

// Invariant is a convenience constructor for an invariant violation; these
// are always a bug in the BPE learner, never caller input.
func Invariant(op, format string, args ...any) error {
	return Wrap(KindInvariant, op, fmt.Errorf(format, args...))
}

// KindOf extracts the Kind from err if it (or something it wraps) is an
// *Error, defaulting to KindIO for anything unclassified.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindIO
}
