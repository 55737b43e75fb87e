package codec

import (
	"errors"
	"fmt"
)

var (
	// ErrShortHeader means the stream ended before a complete header was read.
	ErrShortHeader = errors.New("codec: short header")

	// ErrMalformed means the header and payload do not describe a valid field.
	ErrMalformed = errors.New("codec: malformed payload")
)

// FormatError describes why a stream could not be decoded. It unwraps to
// ErrShortHeader or ErrMalformed.
type FormatError struct {
	Err    error
	Detail string
}

// Error implements the error interface for FormatError.
func (e *FormatError) Error() string {
	return fmt.Sprintf("%v: %s", e.Err, e.Detail)
}

// Unwrap returns the sentinel error.
func (e *FormatError) Unwrap() error {
	return e.Err
}

func malformed(format string, args ...any) error {
	return &FormatError{Err: ErrMalformed, Detail: fmt.Sprintf(format, args...)}
}
