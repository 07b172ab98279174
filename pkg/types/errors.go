// Package types defines error types
package types

import (
	"errors"
	"fmt"
)

// Predefined errors
var (
	// ErrConfiguration indicates a task or pool was built with a missing or invalid field
	ErrConfiguration = errors.New("invalid configuration")

	// ErrDuplicateKey indicates a key was submitted twice to the same pool
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrUnknownKey indicates a query for a key that was never submitted
	ErrUnknownKey = errors.New("key not found")

	// ErrPoolClosed indicates the pool no longer accepts submissions
	ErrPoolClosed = errors.New("pool is closed")

	// ErrInvalidInput indicates invalid input
	ErrInvalidInput = errors.New("invalid input")

	// ErrTimeout indicates operation timeout
	ErrTimeout = errors.New("operation timeout")

	// ErrTaskExited indicates the work function ended its goroutine without returning
	ErrTaskExited = errors.New("work exited via runtime.Goexit")
)

// ConfigError reports a missing or invalid construction field
type ConfigError struct {
	// Component is the thing being built, e.g. "task" or "pool"
	Component string

	// Field is the offending field name
	Field string

	// Reason describes what is wrong with the field
	Reason string
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s config: field %s %s", e.Component, e.Field, e.Reason)
}

// Is matches ErrConfiguration
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfiguration
}

// NewConfigError creates a configuration error for a required field that is missing
func NewConfigError(component, field string) *ConfigError {
	return &ConfigError{Component: component, Field: field, Reason: "is required"}
}

// KeyError reports a pool operation rejected because of its key
type KeyError struct {
	// Operation is the pool method that failed
	Operation string

	// Key is the offending key
	Key interface{}

	// Cause is ErrDuplicateKey or ErrUnknownKey
	Cause error
}

// Error implements the error interface
func (e *KeyError) Error() string {
	return fmt.Sprintf("%s %v: %v", e.Operation, e.Key, e.Cause)
}

// Unwrap returns the underlying error
func (e *KeyError) Unwrap() error {
	return e.Cause
}

// NewDuplicateKeyError creates a duplicate key error
func NewDuplicateKeyError(operation string, key interface{}) *KeyError {
	return &KeyError{Operation: operation, Key: key, Cause: ErrDuplicateKey}
}

// NewUnknownKeyError creates an unknown key error
func NewUnknownKeyError(operation string, key interface{}) *KeyError {
	return &KeyError{Operation: operation, Key: key, Cause: ErrUnknownKey}
}

// TaskError wraps the failure of a task's work function. It is stored in
// the Failed state and never returned on the submitter's goroutine.
type TaskError struct {
	// Key identifies the failed task
	Key interface{}

	// Cause is the error returned by the work function, or the recovered panic
	Cause error

	// Stack holds the goroutine stack when the failure was a panic
	Stack string
}

// Error implements the error interface
func (e *TaskError) Error() string {
	return fmt.Sprintf("task %v failed: %v", e.Key, e.Cause)
}

// Unwrap returns the underlying error
func (e *TaskError) Unwrap() error {
	return e.Cause
}

// Panicked reports whether the failure came from a recovered panic
func (e *TaskError) Panicked() bool {
	return e.Stack != ""
}

// ErrorHandler defines an error handling function
type ErrorHandler func(error) error
