package codec

import (
	"fmt"

	"github.com/pkg/errors"
)

// EncoderError reports a construction-time or encode-time failure: a
// value that does not match any declared union alternative, a record
// missing a declared field, a value of the wrong type or arity.
type EncoderError struct {
	msg   string
	cause error
}

func (e *EncoderError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("encoder: %s: %v", e.msg, e.cause)
	}
	return "encoder: " + e.msg
}

// Unwrap exposes the wrapped cause, if any, to errors.Is/As.
func (e *EncoderError) Unwrap() error { return e.cause }

// NewEncoderError builds an EncoderError with a message only.
func NewEncoderError(msg string) error {
	return &EncoderError{msg: msg}
}

// WrapEncoderError builds an EncoderError carrying cause's stack via
// github.com/pkg/errors, preserving where a failure originated as it
// propagates up through the registry -> codec -> multipart call chain.
func WrapEncoderError(cause error, msg string) error {
	return &EncoderError{msg: msg, cause: errors.Wrap(cause, msg)}
}

// DecoderError reports invalid wire data: an out-of-range enum ordinal
// or union tag, an invalid boolean byte, malformed UTF-8, a premature
// Get() on an incomplete decoder.
type DecoderError struct {
	msg   string
	cause error
}

func (e *DecoderError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("decoder: %s: %v", e.msg, e.cause)
	}
	return "decoder: " + e.msg
}

// Unwrap exposes the wrapped cause, if any, to errors.Is/As.
func (e *DecoderError) Unwrap() error { return e.cause }

// NewDecoderError builds a DecoderError with a message only.
func NewDecoderError(msg string) error {
	return &DecoderError{msg: msg}
}

// NewDecoderErrorf builds a DecoderError from a format string, the way
// an invalid enum ordinal or union tag needs to name the offending
// value in its message.
func NewDecoderErrorf(format string, args ...any) error {
	return &DecoderError{msg: fmt.Sprintf(format, args...)}
}

// WrapDecoderError builds a DecoderError carrying cause's stack.
func WrapDecoderError(cause error, msg string) error {
	return &DecoderError{msg: msg, cause: errors.Wrap(cause, msg)}
}

// ArgumentError reports an invalid construction-time argument that has
// nothing to do with wire data or a declared union/record shape — a
// non-positive raw decoder size. Kept distinct from
// EncoderError/DecoderError since it is neither an encoding nor a
// decoding failure, just a bad call-site argument.
type ArgumentError struct {
	msg string
}

func (e *ArgumentError) Error() string { return "argument: " + e.msg }

// NewArgumentError builds an ArgumentError.
func NewArgumentError(msg string) error {
	return &ArgumentError{msg: msg}
}
