package imgii

import (
	"errors"
	"fmt"
)

// ErrorKind classifies an Error so callers can decide whether to abort the
// whole run or isolate the failing unit (a frame in animation mode, a file
// in batch mode).
type ErrorKind int

const (
	// KindFont indicates unusable font data. Fatal for the whole run.
	KindFont ErrorKind = iota
	// KindPattern indicates the color-escape pattern failed to compile.
	KindPattern
	// KindValueParse indicates a color channel that is not an 8-bit value.
	KindValueParse
	// KindWidthMismatch indicates a grid row with a deviating cell count.
	KindWidthMismatch
	// KindEmptyInput indicates an empty grid or empty ASCII text.
	KindEmptyInput
	// KindDecode indicates an undecodable input image or container.
	KindDecode
	// KindEncode indicates a container encode failure. Fatal, since a
	// partially written container is not recoverable.
	KindEncode
	// KindRender indicates a failure while converting pixels to ASCII or
	// ASCII to glyph images.
	KindRender
	// KindIO indicates a plain file I/O failure.
	KindIO
)

// String returns a short human-readable name for the kind.
func (k ErrorKind) String() string {
	switch k {
	case KindFont:
		return "font"
	case KindPattern:
		return "pattern"
	case KindValueParse:
		return "value parse"
	case KindWidthMismatch:
		return "width mismatch"
	case KindEmptyInput:
		return "empty input"
	case KindDecode:
		return "decode"
	case KindEncode:
		return "encode"
	case KindRender:
		return "render"
	case KindIO:
		return "io"
	}
	return "unknown"
}

// Error is the single error type returned by this package. It carries a
// kind for dispatch and an optional underlying cause for provenance.
type Error struct {
	Kind ErrorKind
	Msg  string
	Err  error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is (or wraps) an Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// newError creates an Error without an underlying cause.
func newError(kind ErrorKind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// wrapError creates an Error wrapping an underlying cause.
func wrapError(kind ErrorKind, err error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: err}
}
