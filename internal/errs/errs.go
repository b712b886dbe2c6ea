// Package errs defines the failure kinds reported by envgen.
//
// Every component returns an *Error (possibly wrapped) instead of exiting.
// The command boundary in main maps any error to exit code 1 after logging
// a single diagnostic line.
package errs

import (
	"errors"
	"fmt"
)

// Kind classifies a failure.
type Kind int

const (
	// Unknown is used for errors that did not originate in envgen.
	Unknown Kind = iota
	// MissingInputFile means neither the JSON source nor the legacy file exists.
	MissingInputFile
	// UnreadableFile means a source, defaults or existing output file could not be read.
	UnreadableFile
	// MalformedJSON means a JSON document (source or defaults) could not be decoded.
	MalformedJSON
	// InvalidArgument means the command line combination is not usable.
	InvalidArgument
	// WriteFailure means an output file, JSON source or link could not be written.
	WriteFailure
)

var kindNames = map[Kind]string{
	Unknown:          "error",
	MissingInputFile: "missing input file",
	UnreadableFile:   "unreadable file",
	MalformedJSON:    "malformed JSON",
	InvalidArgument:  "invalid argument",
	WriteFailure:     "write failure",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Error is a failure with a kind and the file it concerns, if any.
type Error struct {
	Kind Kind
	Path string
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = e.Kind.String()
	}
	if e.Path != "" {
		msg = fmt.Sprintf("%s '%s'", msg, e.Path)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// New returns an *Error of the given kind.
func New(kind Kind, path, msg string, err error) *Error {
	return &Error{Kind: kind, Path: path, Msg: msg, Err: err}
}

// Newf returns an *Error of the given kind with a formatted message and no path.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of the first *Error in err's chain, or Unknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unknown
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
