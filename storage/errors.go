package storage

import (
	"errors"
	"fmt"
)

var (
	// ErrIO marks failures to open, read, write or close a store file
	ErrIO = errors.New("io error")

	// ErrDecode marks store files whose contents do not match the expected layout
	ErrDecode = errors.New("decode error")
)

// Error describes a failed store operation on one file.
//
// Kind is ErrIO or ErrDecode; errors.Is matches both Kind and the
// underlying cause.
type Error struct {
	Op   string // "save" or "load"
	Path string
	Kind error
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %v: %v", e.Op, e.Path, e.Kind, e.Err)
}

func (e *Error) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

func ioError(op, path string, err error) error {
	return &Error{Op: op, Path: path, Kind: ErrIO, Err: err}
}

func decodeError(path string, err error) error {
	return &Error{Op: "load", Path: path, Kind: ErrDecode, Err: err}
}
