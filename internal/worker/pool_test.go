package worker

import (
	"context"
	"sync/atomic"
	"testing"
)

func TestNewPool(t *testing.T) {
	if p := NewPool(5); p.Workers() != 5 {
		t.Errorf("expected 5 workers, got %d", p.Workers())
	}
	if p := NewPool(0); p.Workers() != 1 {
		t.Errorf("expected default 1 worker for 0 input, got %d", p.Workers())
	}
	if p := NewPool(-1); p.Workers() != 1 {
		t.Errorf("expected default 1 worker for negative input, got %d", p.Workers())
	}
}

func TestPool_RunsAllTasks(t *testing.T) {
	pool := NewPool(3)

	var executed int32
	count := 20
	tasks := make([]Task, count)
	for i := 0; i < count; i++ {
		tasks[i] = func(ctx context.Context) {
			atomic.AddInt32(&executed, 1)
		}
	}

	pool.Run(context.Background(), tasks)

	if got := atomic.LoadInt32(&executed); got != int32(count) {
		t.Errorf("expected %d executed tasks, got %d", count, got)
	}
}

func TestPool_DeterministicSlots(t *testing.T) {
	pool := NewPool(4)

	// Each task writes only its own slot; results must be identical no
	// matter how the scheduler interleaves them.
	count := 50
	results := make([]int, count)
	tasks := make([]Task, count)
	for i := 0; i < count; i++ {
		idx := i
		tasks[idx] = func(ctx context.Context) {
			results[idx] = idx * idx
		}
	}

	pool.Run(context.Background(), tasks)

	for i, got := range results {
		if got != i*i {
			t.Errorf("slot %d = %d, want %d", i, got, i*i)
		}
	}
}

func TestPool_BoundedParallelism(t *testing.T) {
	workers := 2
	pool := NewPool(workers)

	var active, peak int32
	barrier := make(chan struct{})
	tasks := make([]Task, 8)
	for i := range tasks {
		tasks[i] = func(ctx context.Context) {
			n := atomic.AddInt32(&active, 1)
			for {
				p := atomic.LoadInt32(&peak)
				if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
					break
				}
			}
			<-barrier
			atomic.AddInt32(&active, -1)
		}
	}

	go func() {
		for i := 0; i < len(tasks); i++ {
			barrier <- struct{}{}
		}
	}()

	pool.Run(context.Background(), tasks)

	if got := atomic.LoadInt32(&peak); got > int32(workers) {
		t.Errorf("observed %d concurrent tasks, limit is %d", got, workers)
	}
}

func TestPool_EmptyBatch(t *testing.T) {
	pool := NewPool(2)
	pool.Run(context.Background(), nil) // must not hang or panic
}
