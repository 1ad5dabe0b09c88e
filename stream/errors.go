package stream

import (
	"errors"
	"fmt"
)

var (
	ErrTypeMismatch       = errors.New("type mismatch")
	ErrIllegalWriterState = errors.New("illegal writer state")
	ErrIllegalReaderState = errors.New("illegal reader state")
	ErrStreamInUse        = errors.New("document stream already iterated")
	ErrDecoding           = errors.New("decoding error")
	ErrEncoding           = errors.New("encoding error")
)

// TypeMismatchError is returned by a getter which cannot produce the
// requested type from the current event.
type TypeMismatchError struct {
	Op  string
	Got EventType
	Msg string
}

func (e *TypeMismatchError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("%s: %s on %s event", e.Op, e.Msg, e.Got)
	}
	return fmt.Sprintf("%s: not applicable to %s event", e.Op, e.Got)
}

func (e *TypeMismatchError) Is(target error) bool { return target == ErrTypeMismatch }

// StateError reports a violation of container discipline. Writer marks
// errors from a Builder; otherwise the error comes from a Reader.
type StateError struct {
	Writer   bool
	Op       string
	Expected Context
	Actual   Context
	Msg      string
}

func (e *StateError) Error() string {
	kind := "reader"
	if e.Writer {
		kind = "writer"
	}
	if e.Msg != "" {
		return fmt.Sprintf("illegal %s state: %s: %s", kind, e.Op, e.Msg)
	}
	return fmt.Sprintf("illegal %s state: %s: expected %s context, got %s", kind, e.Op, e.Expected, e.Actual)
}

func (e *StateError) Is(target error) bool {
	if e.Writer {
		return target == ErrIllegalWriterState
	}
	return target == ErrIllegalReaderState
}

// DecodingError reports malformed or truncated input.
type DecodingError struct {
	Offset int64
	Token  string
	Msg    string
	Err    error
}

func (e *DecodingError) Error() string {
	msg := e.Msg
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	} else if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Token != "" {
		return fmt.Sprintf("decoding error at offset %d near %s: %s", e.Offset, e.Token, msg)
	}
	return fmt.Sprintf("decoding error at offset %d: %s", e.Offset, msg)
}

func (e *DecodingError) Unwrap() error        { return e.Err }
func (e *DecodingError) Is(target error) bool { return target == ErrDecoding }

// EncodingError wraps a failure of the underlying sink or an unencodable
// value.
type EncodingError struct {
	Err error
}

func (e *EncodingError) Error() string        { return "encoding error: " + e.Err.Error() }
func (e *EncodingError) Unwrap() error        { return e.Err }
func (e *EncodingError) Is(target error) bool { return target == ErrEncoding }
