package errors

import (
	"fmt"
	"strings"
)

// ErrorCode defines known error types in the system.
type ErrorCode int

const (
	// Core error codes.
	Unknown ErrorCode = iota
	InvalidInput
	ValidationFailed
	Timeout
	Canceled

	// Evaluation errors. These are absorbed at the safe-invoker boundary
	// and recorded as score sentinels; they never cross a dispatcher.
	ObjectivePanicked
	ObjectiveFailed
	MalformedScore
	NotOptimizable

	// Dispatcher errors. The one class permitted to reach the caller,
	// since it indicates broken evaluation infrastructure rather than a
	// broken individual.
	PoolExhausted
)

// Error is a structured error carrying a code and optional context fields.
type Error struct {
	code    ErrorCode
	message string
	cause   error
	fields  Fields
}

// Fields carries structured data about the error.
type Fields map[string]interface{}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.message)

	if e.cause != nil {
		b.WriteString(": ")
		b.WriteString(e.cause.Error())
	}

	if len(e.fields) > 0 {
		b.WriteString(" [")
		for k, v := range e.fields {
			fmt.Fprintf(&b, "%s=%v ", k, v)
		}
		b.WriteString("]")
	}

	return strings.TrimSpace(b.String())
}

func (e *Error) Unwrap() error {
	return e.cause
}

func (e *Error) Code() ErrorCode {
	return e.code
}

// New creates a new error with a code and message.
func New(code ErrorCode, message string) error {
	return &Error{
		code:    code,
		message: message,
	}
}

// Wrap wraps an existing error with additional context.
func Wrap(err error, code ErrorCode, message string) error {
	if err == nil {
		return nil
	}
	return &Error{
		code:    code,
		message: message,
		cause:   err,
	}
}

// WithFields adds structured context to an error.
func WithFields(err error, fields Fields) error {
	if err == nil {
		return nil
	}

	if e, ok := err.(*Error); ok {
		merged := make(Fields, len(e.fields)+len(fields))
		for k, v := range e.fields {
			merged[k] = v
		}
		for k, v := range fields {
			merged[k] = v
		}

		return &Error{
			code:    e.code,
			message: e.message,
			cause:   e.cause,
			fields:  merged,
		}
	}

	return &Error{
		code:    Unknown,
		message: err.Error(),
		cause:   err,
		fields:  fields,
	}
}

// Is implements error matching on codes for errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.code == t.code
}

// As implements error type casting for errors.As.
func (e *Error) As(target interface{}) bool {
	errorPtr, ok := target.(**Error)
	if !ok {
		return false
	}
	*errorPtr = e
	return true
}

// Fields returns a copy of the error's structured context.
func (e *Error) Fields() Fields {
	fields := make(Fields, len(e.fields))
	for k, v := range e.fields {
		fields[k] = v
	}
	return fields
}
