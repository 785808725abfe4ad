package query

import (
	"errors"
	"fmt"
)

var (
	// ErrParse matches every *ParseError
	ErrParse = errors.New("parse error")

	// ErrUnsupported matches every *UnsupportedError
	ErrUnsupported = errors.New("unsupported construct")
)

// ParseError reports SQL text the grammar rejected. A batch with a
// ParseError is not translated at all.
type ParseError struct {
	SQL string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%v: %v", ErrParse, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool { return target == ErrParse }

// UnsupportedError reports valid SQL that uses a feature outside the
// supported SELECT subset.
type UnsupportedError struct {
	Construct string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("%v: %s", ErrUnsupported, e.Construct)
}

func (e *UnsupportedError) Is(target error) bool { return target == ErrUnsupported }

func unsupported(format string, args ...interface{}) error {
	return &UnsupportedError{Construct: fmt.Sprintf(format, args...)}
}
