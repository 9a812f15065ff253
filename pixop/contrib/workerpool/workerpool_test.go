// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package workerpool

import (
	"context"
	"errors"
	"runtime"
	"sync/atomic"
	"testing"
)

func TestNew(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	if pool.NumWorkers() != 4 {
		t.Errorf("NumWorkers() = %d, want 4", pool.NumWorkers())
	}
}

func TestNewDefault(t *testing.T) {
	pool := New(0)
	defer pool.Close()

	if pool.NumWorkers() != runtime.GOMAXPROCS(0) {
		t.Errorf("NumWorkers() = %d, want %d", pool.NumWorkers(), runtime.GOMAXPROCS(0))
	}
}

func TestParallelFor(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	n := 100
	results := make([]int, n)

	pool.ParallelFor(n, func(start, end int) {
		for i := start; i < end; i++ {
			results[i] = i * 2
		}
	})

	for i := 0; i < n; i++ {
		if results[i] != i*2 {
			t.Errorf("results[%d] = %d, want %d", i, results[i], i*2)
		}
	}
}

func TestParallelForZeroN(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	var called bool
	pool.ParallelFor(0, func(start, end int) {
		called = true
	})

	if called {
		t.Error("ParallelFor with n=0 should not call fn")
	}
}

func TestRun(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	n := 100
	results := make([]int, n)

	err := pool.Run(context.Background(), n, func(i int) error {
		results[i] = i * 2
		return nil
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	for i := 0; i < n; i++ {
		if results[i] != i*2 {
			t.Errorf("results[%d] = %d, want %d", i, results[i], i*2)
		}
	}
}

func TestRunError(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	boom := errors.New("boom")
	var calls atomic.Int32

	err := pool.Run(context.Background(), 1000, func(i int) error {
		calls.Add(1)
		if i == 10 {
			return boom
		}
		return nil
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Run error = %v, want %v", err, boom)
	}
	// Workers stop picking up indices after the failure; at most one
	// in-flight call per worker can follow it.
	if c := calls.Load(); c >= 1000 {
		t.Errorf("calls = %d, want fewer than 1000", c)
	}
}

func TestRunCanceled(t *testing.T) {
	pool := New(2)
	defer pool.Close()

	ctx, cancel := context.WithCancel(context.Background())
	var calls atomic.Int32

	err := pool.Run(ctx, 1000, func(i int) error {
		if calls.Add(1) == 5 {
			cancel()
		}
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run error = %v, want context.Canceled", err)
	}
	if c := calls.Load(); c > 5+int32(pool.NumWorkers()) {
		t.Errorf("calls = %d after cancel, want at most %d", c, 5+pool.NumWorkers())
	}
}

func TestRunZeroN(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	var called bool
	err := pool.Run(context.Background(), 0, func(int) error {
		called = true
		return nil
	})
	if err != nil || called {
		t.Errorf("Run with n=0: err=%v called=%v", err, called)
	}
}

func TestCloseMultipleTimes(t *testing.T) {
	pool := New(4)
	pool.Close()
	pool.Close() // Should not panic
}

func TestClosedPoolFallback(t *testing.T) {
	pool := New(4)
	pool.Close()

	n := 100
	results := make([]int, n)

	// Should still work (sequential fallback)
	pool.ParallelFor(n, func(start, end int) {
		for i := start; i < end; i++ {
			results[i] = i * 2
		}
	})
	err := pool.Run(context.Background(), n, func(i int) error {
		results[i]++
		return nil
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	for i := 0; i < n; i++ {
		if results[i] != i*2+1 {
			t.Errorf("results[%d] = %d, want %d", i, results[i], i*2+1)
		}
	}
}

func BenchmarkParallelFor(b *testing.B) {
	pool := New(0) // Use GOMAXPROCS
	defer pool.Close()

	n := 1000

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		pool.ParallelFor(n, func(start, end int) {
			for j := start; j < end; j++ {
				_ = j * j
			}
		})
	}
}

func BenchmarkRun(b *testing.B) {
	pool := New(0)
	defer pool.Close()

	n := 1000
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = pool.Run(ctx, n, func(i int) error {
			_ = i * i
			return nil
		})
	}
}
