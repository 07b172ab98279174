/*
Package worker provides a keyed task pool: every submitted unit of work runs on
its own goroutine, and its lifecycle state is recorded under a caller-chosen key.

# Overview

This package implements:
- Task: an immutable unit of work that reports its own state transitions
- Pool: a registry of task states that builds one result sink per key
- Blocking waits that are signalled, never polled
- Auto-generated integer and UUID keys

# Core Components

## Task

A Task wraps a work function, its arguments and a result sink. Run invokes
the sink with Running, calls the function and then invokes the sink with
Succeeded(value) or Failed(err). Returned errors and panics are both captured
as *types.TaskError and never leave the task goroutine.

## Pool

The Pool owns the registry. Submit registers the key as NotStarted, builds a
result sink bound to that key, and starts the task. Queries read the registry
under the same lock the sinks write through, so a Running transition is always
observed before the terminal one.

# State Machine

	NotStarted -> Running -> Succeeded(value)
	                      \-> Failed(err)

Terminal states never change. Keys are never removed from a pool.

# Usage Examples

Basic usage:

	pool, err := worker.NewPool[string, int](nil)
	if err != nil {
		log.Fatal(err)
	}

	square := func(args worker.Args) (int, error) {
		n, err := args.Int(0)
		return n * n, err
	}

	if err := pool.Submit("square-7", square, 7); err != nil {
		log.Fatal(err)
	}

	state, err := pool.WaitFor("square-7", time.Second)
	if errors.Is(err, types.ErrTimeout) {
		log.Println("still running:", state)
	}

	value, _ := state.Value()
	fmt.Println(value) // 49

Chained submission with generated keys:

	pool.MustSubmit("a", fnA).MustSubmit("b", fnB)

	id, err := worker.Add(intPool, fn)

# Limitations

Running tasks cannot be cancelled. The daemon flag only decides whether
Shutdown waits for a task; Go does not keep a process alive for goroutines.
*/
package worker
