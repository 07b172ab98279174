package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jzx17/easythread/pkg/types"
)

// PoolConfig defines configuration for a task pool
type PoolConfig struct {
	// Daemon tasks are not waited for by Shutdown
	Daemon bool

	// Level is the default diagnostic level of every task
	Level types.Level

	// LogSink receives formatted diagnostic lines (optional, defaults to stdout)
	LogSink types.LogSink

	// Clock for time operations (optional, defaults to real clock)
	Clock types.Clock

	// ErrorHandler observes every task failure (optional). A non-nil return is
	// logged at WARNING.
	ErrorHandler types.ErrorHandler
}

// DefaultPoolConfig returns default configuration
func DefaultPoolConfig() *PoolConfig {
	return &PoolConfig{
		Daemon:  false,
		Level:   types.LevelInfo,
		LogSink: types.StdoutSink,
		Clock:   types.NewRealClock(),
	}
}

// entry is one registry slot
type entry[V any] struct {
	state       types.State[V]
	done        chan struct{}
	submittedAt time.Time
	startedAt   time.Time
	finishedAt  time.Time
}

// TaskInfo is a snapshot of one registry entry
type TaskInfo[K comparable, V any] struct {
	Key         K
	State       types.State[V]
	SubmittedAt time.Time
	StartedAt   time.Time
	FinishedAt  time.Time
}

// Duration returns how long the task ran, or zero if it has not finished
func (ti TaskInfo[K, V]) Duration() time.Duration {
	if !ti.State.IsTerminal() {
		return 0
	}
	return ti.FinishedAt.Sub(ti.StartedAt)
}

// PoolStats counts registry entries per state
type PoolStats struct {
	Total      int
	NotStarted int
	Running    int
	Succeeded  int
	Failed     int
}

// Pool launches one goroutine per submitted task and records each task's
// state under its key. Keys are never removed.
type Pool[K comparable, V any] struct {
	config  PoolConfig
	entries map[K]*entry[V]
	closed  bool

	// next auto-generated sequence key, see Add
	seq int

	// non-daemon tasks
	group errgroup.Group

	mu sync.Mutex
}

// NewPool creates a new task pool
func NewPool[K comparable, V any](config *PoolConfig) (*Pool[K, V], error) {
	if config == nil {
		config = DefaultPoolConfig()
	}

	if !config.Level.Valid() {
		return nil, &types.ConfigError{Component: "pool", Field: "Level", Reason: fmt.Sprintf("out of range: %d", config.Level)}
	}

	cfg := *config
	if cfg.LogSink == nil {
		cfg.LogSink = types.StdoutSink
	}
	if cfg.Clock == nil {
		cfg.Clock = types.NewRealClock()
	}

	return &Pool[K, V]{
		config:  cfg,
		entries: make(map[K]*entry[V]),
	}, nil
}

// Daemon reports whether tasks of this pool are daemon tasks
func (p *Pool[K, V]) Daemon() bool {
	return p.config.Daemon
}

// Level returns the default diagnostic level
func (p *Pool[K, V]) Level() types.Level {
	return p.config.Level
}

// Submit starts fn under key with positional arguments
func (p *Pool[K, V]) Submit(key K, fn Func[V], args ...interface{}) error {
	return p.SubmitArgs(key, fn, NewArgs(args, nil))
}

// SubmitArgs starts fn under key with a full argument set. It returns
// without waiting for the task and fails if key is already registered.
func (p *Pool[K, V]) SubmitArgs(key K, fn Func[V], args Args) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.submitLocked(key, fn, args)
}

// MustSubmit is the chainable form of Submit. It panics if Submit fails.
func (p *Pool[K, V]) MustSubmit(key K, fn Func[V], args ...interface{}) *Pool[K, V] {
	if err := p.Submit(key, fn, args...); err != nil {
		panic(err)
	}
	return p
}

// submitNext registers fn under the first key from next that is not taken
func (p *Pool[K, V]) submitNext(next func() K, fn Func[V], args Args) (K, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	key := next()
	for {
		if _, exists := p.entries[key]; !exists {
			break
		}
		key = next()
	}
	if err := p.submitLocked(key, fn, args); err != nil {
		var zero K
		return zero, err
	}
	return key, nil
}

func (p *Pool[K, V]) submitLocked(key K, fn Func[V], args Args) error {
	if p.closed {
		return types.ErrPoolClosed
	}
	if _, exists := p.entries[key]; exists {
		return types.NewDuplicateKeyError("submit", key)
	}

	task, err := NewTask(&TaskConfig[K, V]{
		Key:        key,
		Func:       fn,
		Args:       args,
		Level:      p.config.Level,
		ResultSink: p.resultSink(key),
		LogSink:    p.config.LogSink,
		Clock:      p.config.Clock,
	})
	if err != nil {
		return err
	}

	p.entries[key] = &entry[V]{
		state:       types.NotStarted[V](),
		done:        make(chan struct{}),
		submittedAt: p.config.Clock.Now(),
	}

	// the task blocks on p.mu before its first report, so NotStarted is
	// always visible first
	if p.config.Daemon {
		task.Start()
	} else {
		p.group.Go(func() error {
			task.Run()
			return nil
		})
	}
	return nil
}

// resultSink builds the callback through which the task under key reports
func (p *Pool[K, V]) resultSink(key K) types.ResultSink[V] {
	return func(state types.State[V]) {
		p.record(key, state)
	}
}

// record applies a reported transition to the registry
func (p *Pool[K, V]) record(key K, state types.State[V]) {
	p.mu.Lock()
	e, ok := p.entries[key]
	if !ok || !e.state.CanTransitionTo(state) {
		var current interface{} = "missing"
		if ok {
			current = e.state
		}
		p.mu.Unlock()
		p.log(types.LevelWarning, fmt.Sprintf("[task %v] rejected transition %v -> %v", key, current, state))
		return
	}

	now := p.config.Clock.Now()
	e.state = state
	if state.Kind() == types.StateRunning {
		e.startedAt = now
	}
	if state.IsTerminal() {
		e.finishedAt = now
		close(e.done)
	}
	p.mu.Unlock()

	if err := state.Err(); err != nil && p.config.ErrorHandler != nil {
		if herr := p.config.ErrorHandler(err); herr != nil {
			p.log(types.LevelWarning, fmt.Sprintf("[task %v] error handler: %v", key, herr))
		}
	}
}

// lookup returns a copy of the entry under key
func (p *Pool[K, V]) lookup(op string, key K) (entry[V], error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	e, ok := p.entries[key]
	if !ok {
		return entry[V]{}, types.NewUnknownKeyError(op, key)
	}
	return *e, nil
}

func (p *Pool[K, V]) kind(op string, key K) (types.StateKind, error) {
	e, err := p.lookup(op, key)
	if err != nil {
		return types.StateNotStarted, err
	}
	return e.state.Kind(), nil
}

// HasStarted reports whether the task under key has left NotStarted
func (p *Pool[K, V]) HasStarted(key K) (bool, error) {
	k, err := p.kind("has started", key)
	return err == nil && k != types.StateNotStarted, err
}

// IsRunning reports whether the task under key is executing
func (p *Pool[K, V]) IsRunning(key K) (bool, error) {
	k, err := p.kind("is running", key)
	return err == nil && k == types.StateRunning, err
}

// HasFinished reports whether the task under key has succeeded or failed
func (p *Pool[K, V]) HasFinished(key K) (bool, error) {
	k, err := p.kind("has finished", key)
	return err == nil && k.IsTerminal(), err
}

// HasSucceeded reports whether the task under key has succeeded
func (p *Pool[K, V]) HasSucceeded(key K) (bool, error) {
	k, err := p.kind("has succeeded", key)
	return err == nil && k == types.StateSucceeded, err
}

// HasFailed reports whether the task under key has failed
func (p *Pool[K, V]) HasFailed(key K) (bool, error) {
	k, err := p.kind("has failed", key)
	return err == nil && k == types.StateFailed, err
}

// GetResult returns the current state of the task under key. The state
// may still be NotStarted or Running; use WaitFor to block until it is terminal.
func (p *Pool[K, V]) GetResult(key K) (types.State[V], error) {
	e, err := p.lookup("get result", key)
	return e.state, err
}

// WaitFor blocks until the task under key is terminal or timeout elapses.
// On timeout it returns the current state and types.ErrTimeout. A timeout
// <= 0 checks once without blocking.
func (p *Pool[K, V]) WaitFor(key K, timeout time.Duration) (types.State[V], error) {
	e, err := p.lookup("wait for", key)
	if err != nil {
		return e.state, err
	}

	select {
	case <-e.done:
		return p.GetResult(key)
	default:
	}
	if timeout <= 0 {
		return e.state, types.ErrTimeout
	}

	timer := p.config.Clock.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-e.done:
		return p.GetResult(key)
	case <-timer.C():
		state, _ := p.GetResult(key)
		return state, types.ErrTimeout
	}
}

// Wait blocks until the task under key is terminal or ctx is done
func (p *Pool[K, V]) Wait(ctx context.Context, key K) (types.State[V], error) {
	e, err := p.lookup("wait", key)
	if err != nil {
		return e.state, err
	}

	select {
	case <-e.done:
		return p.GetResult(key)
	case <-ctx.Done():
		state, _ := p.GetResult(key)
		return state, ctx.Err()
	}
}

// Info returns a snapshot of the registry entry under key
func (p *Pool[K, V]) Info(key K) (TaskInfo[K, V], error) {
	e, err := p.lookup("info", key)
	if err != nil {
		return TaskInfo[K, V]{}, err
	}
	return TaskInfo[K, V]{
		Key:         key,
		State:       e.state,
		SubmittedAt: e.submittedAt,
		StartedAt:   e.startedAt,
		FinishedAt:  e.finishedAt,
	}, nil
}

// Len returns the number of submitted keys
func (p *Pool[K, V]) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.entries)
}

// Keys returns every submitted key in no particular order
func (p *Pool[K, V]) Keys() []K {
	p.mu.Lock()
	defer p.mu.Unlock()

	keys := make([]K, 0, len(p.entries))
	for k := range p.entries {
		keys = append(keys, k)
	}
	return keys
}

// Snapshot returns the current state of every submitted key
func (p *Pool[K, V]) Snapshot() map[K]types.State[V] {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make(map[K]types.State[V], len(p.entries))
	for k, e := range p.entries {
		out[k] = e.state
	}
	return out
}

// Stats counts entries per state
func (p *Pool[K, V]) Stats() PoolStats {
	p.mu.Lock()
	defer p.mu.Unlock()

	stats := PoolStats{Total: len(p.entries)}
	for _, e := range p.entries {
		switch e.state.Kind() {
		case types.StateNotStarted:
			stats.NotStarted++
		case types.StateRunning:
			stats.Running++
		case types.StateSucceeded:
			stats.Succeeded++
		case types.StateFailed:
			stats.Failed++
		}
	}
	return stats
}

// Shutdown stops accepting submissions and waits for every non-daemon task
// to finish, or for ctx to be done. Daemon tasks are never waited for.
// Running tasks are not interrupted in either case.
func (p *Pool[K, V]) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		_ = p.group.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// log writes a pool level diagnostic line
func (p *Pool[K, V]) log(level types.Level, msg string) {
	if !p.config.Level.Enabled(level) {
		return
	}
	p.config.LogSink(fmt.Sprintf("[%s] %s", level, msg))
}
