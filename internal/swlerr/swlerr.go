// Package swlerr defines the closed error taxonomy shared across every
// core component. It mirrors the stable, string-identified error codes
// of the original dwl-derived implementation so log lines and IPC
// responses stay meaningful across process boundaries.
package swlerr

import "fmt"

// Code is one of the closed set of failure kinds the core can report.
type Code int

const (
	OK Code = iota
	NoMem
	Backend
	Config
	Wayland
	InvalidArg
	NotFound
	AlreadyExists
	IO
	XWayland
)

// String returns the stable, human-readable form of a code. It never
// changes across releases — IPC clients and log scrapers depend on it.
func (c Code) String() string {
	switch c {
	case OK:
		return "success"
	case NoMem:
		return "out of memory"
	case Backend:
		return "backend error"
	case Config:
		return "configuration error"
	case Wayland:
		return "wayland error"
	case InvalidArg:
		return "invalid argument"
	case NotFound:
		return "not found"
	case AlreadyExists:
		return "already exists"
	case IO:
		return "I/O error"
	case XWayland:
		return "XWayland error"
	default:
		return "unknown error"
	}
}

// Error wraps a Code with optional extra context while keeping the
// taxonomy closed: callers compare against the sentinels below with
// errors.Is, never against the message text.
type Error struct {
	Code    Code
	Context string
}

func (e *Error) Error() string {
	if e.Context == "" {
		return e.Code.String()
	}
	return fmt.Sprintf("%s: %s", e.Code.String(), e.Context)
}

// Is reports whether target is an *Error with the same Code, so
// errors.Is(err, swlerr.ErrNotFound) works regardless of context.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// New builds an *Error for code with the given context message.
func New(code Code, context string) *Error {
	return &Error{Code: code, Context: context}
}

// Wrap builds an *Error for code, folding in an underlying error's text
// as context.
func Wrap(code Code, err error) *Error {
	if err == nil {
		return &Error{Code: code}
	}
	return &Error{Code: code, Context: err.Error()}
}

// Sentinel values for errors.Is comparisons against a bare code, with
// no context attached.
var (
	ErrNoMem         = &Error{Code: NoMem}
	ErrBackend       = &Error{Code: Backend}
	ErrConfig        = &Error{Code: Config}
	ErrWayland       = &Error{Code: Wayland}
	ErrInvalidArg    = &Error{Code: InvalidArg}
	ErrNotFound      = &Error{Code: NotFound}
	ErrAlreadyExists = &Error{Code: AlreadyExists}
	ErrIO            = &Error{Code: IO}
	ErrXWayland      = &Error{Code: XWayland}
)
