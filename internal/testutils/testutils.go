// Package testutils provides simplified testing utilities and helper functions
package testutils

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jzx17/easythread/pkg/types"
)

// LogRecorder collects lines written to a log sink
type LogRecorder struct {
	lines []string
	mu    sync.Mutex
}

// NewLogRecorder creates an empty recorder
func NewLogRecorder() *LogRecorder {
	return &LogRecorder{}
}

// Sink returns a log sink appending to the recorder
func (r *LogRecorder) Sink() types.LogSink {
	return func(line string) {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.lines = append(r.lines, line)
	}
}

// Lines returns a copy of the recorded lines
func (r *LogRecorder) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.lines))
	copy(out, r.lines)
	return out
}

// Contains reports whether any recorded line contains substr
func (r *LogRecorder) Contains(substr string) bool {
	for _, line := range r.Lines() {
		if strings.Contains(line, substr) {
			return true
		}
	}
	return false
}

// StateRecorder collects the states passed to a result sink
type StateRecorder[V any] struct {
	states []types.State[V]
	mu     sync.Mutex
}

// NewStateRecorder creates an empty recorder
func NewStateRecorder[V any]() *StateRecorder[V] {
	return &StateRecorder[V]{}
}

// Sink returns a result sink appending to the recorder
func (r *StateRecorder[V]) Sink() types.ResultSink[V] {
	return func(state types.State[V]) {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.states = append(r.states, state)
	}
}

// States returns a copy of the recorded states
func (r *StateRecorder[V]) States() []types.State[V] {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]types.State[V], len(r.states))
	copy(out, r.states)
	return out
}

// AssertEventually waits for condition to be true
func AssertEventually(t *testing.T, condition func() bool, msgAndArgs ...interface{}) bool {
	return assert.Eventually(t, condition, 2*time.Second, 5*time.Millisecond, msgAndArgs...)
}
