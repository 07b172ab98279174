// Package types defines the task state machine and shared value types
package types

import (
	"fmt"
)

// StateKind tags the variant held by a State
type StateKind int

const (
	// StateNotStarted the task is registered but its goroutine has not reported yet
	StateNotStarted StateKind = iota
	// StateRunning the work function is executing
	StateRunning
	// StateSucceeded the work function returned a value
	StateSucceeded
	// StateFailed the work function returned an error or panicked
	StateFailed
)

// String returns the string representation of StateKind
func (k StateKind) String() string {
	switch k {
	case StateNotStarted:
		return "NotStarted"
	case StateRunning:
		return "Running"
	case StateSucceeded:
		return "Succeeded"
	case StateFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// IsTerminal reports whether no further transition may follow this kind
func (k StateKind) IsTerminal() bool {
	return k == StateSucceeded || k == StateFailed
}

// State is the lifecycle state of one task. The value is only meaningful
// for StateSucceeded and the error only for StateFailed.
type State[V any] struct {
	kind  StateKind
	value V
	err   error
}

// NotStarted returns the initial state
func NotStarted[V any]() State[V] {
	return State[V]{kind: StateNotStarted}
}

// Running returns the running state
func Running[V any]() State[V] {
	return State[V]{kind: StateRunning}
}

// Succeeded returns a terminal state carrying the work's return value
func Succeeded[V any](value V) State[V] {
	return State[V]{kind: StateSucceeded, value: value}
}

// Failed returns a terminal state carrying the captured error
func Failed[V any](err error) State[V] {
	return State[V]{kind: StateFailed, err: err}
}

// Kind returns the variant tag
func (s State[V]) Kind() StateKind {
	return s.kind
}

// Value returns the result value; ok is false unless the state is StateSucceeded
func (s State[V]) Value() (value V, ok bool) {
	if s.kind != StateSucceeded {
		return value, false
	}
	return s.value, true
}

// Err returns the captured error of a failed state, nil otherwise
func (s State[V]) Err() error {
	if s.kind != StateFailed {
		return nil
	}
	return s.err
}

// IsTerminal reports whether the state is StateSucceeded or StateFailed
func (s State[V]) IsTerminal() bool {
	return s.kind.IsTerminal()
}

// CanTransitionTo reports whether next is a legal successor of s.
// Legal moves are NotStarted -> Running and Running -> Succeeded|Failed.
func (s State[V]) CanTransitionTo(next State[V]) bool {
	switch s.kind {
	case StateNotStarted:
		return next.kind == StateRunning
	case StateRunning:
		return next.kind.IsTerminal()
	default:
		return false
	}
}

// String returns a human readable form of the state
func (s State[V]) String() string {
	switch s.kind {
	case StateSucceeded:
		return fmt.Sprintf("Succeeded(%v)", s.value)
	case StateFailed:
		return fmt.Sprintf("Failed(%v)", s.err)
	default:
		return s.kind.String()
	}
}
