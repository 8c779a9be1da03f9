// Package domain defines the shared types and errors for the lake pipeline.
package domain

import "fmt"

// NotFoundError indicates a missing bucket, object, or table.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// ValidationError indicates invalid input, such as an unsupported encoding.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// ConnectivityError indicates an unreachable or not-yet-ready service.
type ConnectivityError struct {
	Message string
	Err     error
}

func (e *ConnectivityError) Error() string { return e.Message }
func (e *ConnectivityError) Unwrap() error { return e.Err }

// QueryError indicates a failed SQL statement (malformed SQL, missing table).
type QueryError struct {
	Message string
	Err     error
}

func (e *QueryError) Error() string { return e.Message }
func (e *QueryError) Unwrap() error { return e.Err }

// ErrNotFound creates a NotFoundError with a formatted message.
func ErrNotFound(format string, args ...interface{}) *NotFoundError {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

// ErrValidation creates a ValidationError with a formatted message.
func ErrValidation(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ErrConnectivity creates a ConnectivityError wrapping err.
func ErrConnectivity(err error, format string, args ...interface{}) *ConnectivityError {
	return &ConnectivityError{Message: fmt.Sprintf(format, args...), Err: err}
}

// ErrQuery creates a QueryError wrapping err.
func ErrQuery(err error, format string, args ...interface{}) *QueryError {
	return &QueryError{Message: fmt.Sprintf(format, args...), Err: err}
}
