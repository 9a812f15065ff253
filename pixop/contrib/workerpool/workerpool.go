// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

// Package workerpool provides a persistent, reusable worker pool for
// region-parallel pixel processing. A Pool is created once by the
// application context and shared by every transform, so no goroutines are
// spawned per call.
//
// Usage:
//
//	pool := workerpool.New(runtime.GOMAXPROCS(0))
//	defer pool.Close()
//
//	err := pool.Run(ctx, len(tiles), func(i int) error {
//	    return processTile(tiles[i])
//	})
package workerpool

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool is a persistent worker pool that can be reused across many parallel
// operations. Workers are spawned once at creation and reused.
type Pool struct {
	numWorkers int
	workC      chan workItem
	closeOnce  sync.Once
	closed     atomic.Bool
}

// workItem represents a single parallel operation to execute.
type workItem struct {
	fn      func()
	barrier *sync.WaitGroup
}

// New creates a new worker pool with the specified number of workers.
// Workers are spawned immediately and persist until Close is called.
// If numWorkers <= 0, uses GOMAXPROCS.
func New(numWorkers int) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{
		numWorkers: numWorkers,
		// Buffer enough for all workers to have pending work
		workC: make(chan workItem, numWorkers*2),
	}

	for range numWorkers {
		go p.worker()
	}

	return p
}

func (p *Pool) worker() {
	for item := range p.workC {
		item.fn()
		item.barrier.Done()
	}
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// Close shuts down the worker pool. All pending work will complete.
// Calling Close multiple times is safe.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		p.closed.Store(true)
		close(p.workC)
	})
}

// ParallelFor executes fn for each index in [0, n) using the worker pool.
// Each worker processes a contiguous range of indices.
// Blocks until all work completes.
//
// fn receives (start, end) indices where work should process [start, end).
func (p *Pool) ParallelFor(n int, fn func(start, end int)) {
	if n <= 0 {
		return
	}

	workers := min(p.numWorkers, n)
	if workers == 1 || p.closed.Load() {
		fn(0, n)
		return
	}

	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup
	wg.Add(workers)

	for i := range workers {
		start := i * chunkSize
		end := min(start+chunkSize, n)
		if start >= n {
			wg.Done()
			continue
		}

		p.workC <- workItem{
			fn: func() {
				fn(start, end)
			},
			barrier: &wg,
		}
	}

	wg.Wait()
}

// Run executes fn for each index in [0, n) using atomic work stealing, so
// uneven regions balance across workers. Blocks until all started calls
// return.
//
// Once ctx is done or any call returns an error, no further index is
// handed out; calls already running are allowed to finish. Run returns the
// first error, or ctx.Err() if the context ended before all indices ran.
func (p *Pool) Run(ctx context.Context, n int, fn func(i int) error) error {
	if n <= 0 {
		return nil
	}

	var (
		nextIdx  atomic.Int64
		errOnce  sync.Once
		firstErr error
		failed   atomic.Bool
	)
	setErr := func(err error) {
		errOnce.Do(func() {
			firstErr = err
			failed.Store(true)
		})
	}

	loop := func() {
		for {
			if failed.Load() {
				return
			}
			idx := int(nextIdx.Add(1)) - 1
			if idx >= n {
				return
			}
			if err := ctx.Err(); err != nil {
				setErr(err)
				return
			}
			if err := fn(idx); err != nil {
				setErr(err)
				return
			}
		}
	}

	workers := min(p.numWorkers, n)
	if workers == 1 || p.closed.Load() {
		// Fallback to sequential if pool is closed
		loop()
		return firstErr
	}

	var wg sync.WaitGroup
	wg.Add(workers)
	for range workers {
		p.workC <- workItem{fn: loop, barrier: &wg}
	}
	wg.Wait()

	return firstErr
}
