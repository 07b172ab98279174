// Package worker provides the keyed task pool implementation
package worker

import (
	"fmt"
	"runtime"
	"time"

	"github.com/jzx17/easythread/pkg/types"
)

// TaskConfig defines the fields a Task is built from
type TaskConfig[K comparable, V any] struct {
	// Key identifies the task inside its pool
	Key K

	// Func is the work to execute (required)
	Func Func[V]

	// Args are passed to Func
	Args Args

	// Level gates diagnostic messages; the zero value only lets errors through
	Level types.Level

	// ResultSink receives the Running transition and the terminal state (required)
	ResultSink types.ResultSink[V]

	// LogSink receives formatted diagnostic lines (optional, defaults to stdout)
	LogSink types.LogSink

	// Clock for time operations (optional, defaults to real clock)
	Clock types.Clock
}

// Task runs one work function on its own goroutine and reports its state
// transitions through a result sink. A Task has no setters; every field is
// fixed by NewTask.
type Task[K comparable, V any] struct {
	key    K
	fn     Func[V]
	args   Args
	level  types.Level
	sink   types.ResultSink[V]
	logger types.LogSink
	clock  types.Clock
}

// NewTask creates a new task
func NewTask[K comparable, V any](config *TaskConfig[K, V]) (*Task[K, V], error) {
	if config == nil {
		return nil, types.NewConfigError("task", "config")
	}
	if config.Func == nil {
		return nil, types.NewConfigError("task", "Func")
	}
	if config.ResultSink == nil {
		return nil, types.NewConfigError("task", "ResultSink")
	}
	if !config.Level.Valid() {
		return nil, &types.ConfigError{Component: "task", Field: "Level", Reason: fmt.Sprintf("out of range: %d", config.Level)}
	}

	logger := config.LogSink
	if logger == nil {
		logger = types.StdoutSink
	}
	clock := config.Clock
	if clock == nil {
		clock = types.NewRealClock()
	}

	return &Task[K, V]{
		key:    config.Key,
		fn:     config.Func,
		args:   NewArgs(config.Args.positional, config.Args.keyword),
		level:  config.Level,
		sink:   config.ResultSink,
		logger: logger,
		clock:  clock,
	}, nil
}

// Key returns the task key
func (t *Task[K, V]) Key() K {
	return t.key
}

// Level returns the diagnostic level
func (t *Task[K, V]) Level() types.Level {
	return t.level
}

// Args returns the task arguments
func (t *Task[K, V]) Args() Args {
	return t.args
}

// Start runs the task on a new goroutine. The returned channel is closed
// once Run has returned.
func (t *Task[K, V]) Start() <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		t.Run()
	}()
	return done
}

// Run executes the task on the calling goroutine. The result sink is
// invoked exactly twice: once with Running, once with the terminal state.
// The terminal report is deferred so it also fires when the work function
// ends the goroutine with runtime.Goexit.
func (t *Task[K, V]) Run() {
	t.sink(types.Running[V]())
	t.log(types.LevelInfo, "starting")

	start := t.clock.Now()
	var (
		value    V
		taskErr  *types.TaskError
		returned bool
	)
	defer func() {
		if !returned {
			taskErr = &types.TaskError{Key: t.key, Cause: types.ErrTaskExited, Stack: stack()}
		}
		elapsed := t.clock.Since(start)

		if taskErr != nil {
			t.log(types.LevelError, fmt.Sprintf("error during runtime: <%v>", taskErr.Cause))
			t.sink(types.Failed[V](taskErr))
		} else {
			t.sink(types.Succeeded(value))
		}

		t.log(types.LevelInfo, fmt.Sprintf("exiting after %v", elapsed.Round(time.Microsecond)))
	}()

	value, taskErr = t.execute()
	returned = true
}

// execute calls the work function with panic recovery
func (t *Task[K, V]) execute() (value V, taskErr *types.TaskError) {
	defer func() {
		if r := recover(); r != nil {
			var cause error
			switch v := r.(type) {
			case error:
				cause = v
			default:
				cause = fmt.Errorf("panic: %v", v)
			}
			taskErr = &types.TaskError{Key: t.key, Cause: cause, Stack: stack()}
		}
	}()

	value, err := t.fn(t.args)
	if err != nil {
		var zero V
		return zero, &types.TaskError{Key: t.key, Cause: err}
	}
	return value, nil
}

func stack() string {
	var buf [4096]byte
	n := runtime.Stack(buf[:], false)
	return string(buf[:n])
}

// log writes msg to the log sink when the task level allows it
func (t *Task[K, V]) log(level types.Level, msg string) {
	if !t.level.Enabled(level) {
		return
	}
	t.logger(fmt.Sprintf("[%s] [task %v] %s", level, t.key, msg))
}
