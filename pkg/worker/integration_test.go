package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jzx17/easythread/pkg/types"
)

// TestPool_HighLoad high load integration test
func TestPool_HighLoad(t *testing.T) {
	pool := newQuietPool[int, int](t)

	numTasks := 5000
	start := time.Now()

	for i := 0; i < numTasks; i++ {
		err := pool.Submit(i, func(args Args) (int, error) {
			n, err := args.Int(0)
			return n * 2, err
		}, i)
		require.NoError(t, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	require.NoError(t, pool.Shutdown(ctx))

	duration := time.Since(start)
	t.Logf("Processed %d tasks in %v", numTasks, duration)

	snapshot := pool.Snapshot()
	require.Len(t, snapshot, numTasks)
	for i := 0; i < numTasks; i++ {
		v, ok := snapshot[i].Value()
		require.True(t, ok, "task %d: %v", i, snapshot[i])
		assert.Equal(t, i*2, v)
	}
}

// TestPool_MixedOutcomes every third task fails, every fifth panics
func TestPool_MixedOutcomes(t *testing.T) {
	var handled int64
	config := DefaultPoolConfig()
	config.LogSink = types.DiscardSink
	config.ErrorHandler = func(err error) error {
		atomic.AddInt64(&handled, 1)
		return nil
	}
	pool, err := NewPool[string, int](config)
	require.NoError(t, err)

	numGoroutines := 10
	tasksPerGoroutine := 30
	var wg sync.WaitGroup

	for g := 0; g < numGoroutines; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < tasksPerGoroutine; i++ {
				key := fmt.Sprintf("g%d-t%d", g, i)
				idx := i
				err := pool.Submit(key, Call(func() (int, error) {
					switch {
					case idx%5 == 0:
						panic("every fifth")
					case idx%3 == 0:
						return 0, errors.New("every third")
					}
					return idx, nil
				}))
				assert.NoError(t, err)
			}
		}(g)
	}
	wg.Wait()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	require.NoError(t, pool.Shutdown(ctx))

	expectedFailed := 0
	for i := 0; i < tasksPerGoroutine; i++ {
		if i%5 == 0 || i%3 == 0 {
			expectedFailed++
		}
	}
	expectedFailed *= numGoroutines
	total := numGoroutines * tasksPerGoroutine

	stats := pool.Stats()
	assert.Equal(t, total, stats.Total)
	assert.Equal(t, expectedFailed, stats.Failed)
	assert.Equal(t, total-expectedFailed, stats.Succeeded)
	assert.Equal(t, int64(expectedFailed), atomic.LoadInt64(&handled))
}
