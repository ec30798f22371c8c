package worker

import (
	"context"
	"sync"
)

// Task is one unit of evaluation work. A task owns its output slot, so a
// batch's results are deterministic regardless of scheduling order.
type Task func(ctx context.Context)

// Pool executes batches of independent tasks with bounded parallelism.
// The engine submits one batch per topological level: every task in a
// batch depends only on values produced by earlier batches, which keeps
// parallel evaluation race-free without any shared accumulator.
type Pool struct {
	workers int
}

// NewPool creates a pool with the specified parallelism
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	return &Pool{workers: workers}
}

// Workers returns the configured parallelism
func (p *Pool) Workers() int {
	return p.workers
}

// Run executes all tasks and blocks until every task has returned.
// Cancellation is delegated to the tasks themselves: each receives ctx and
// is expected to record a cancellation error in its own slot rather than
// leave it empty.
func (p *Pool) Run(ctx context.Context, tasks []Task) {
	if len(tasks) == 0 {
		return
	}

	n := p.workers
	if n > len(tasks) {
		n = len(tasks)
	}

	queue := make(chan Task)
	var wg sync.WaitGroup

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range queue {
				task(ctx)
			}
		}()
	}

	for _, task := range tasks {
		queue <- task
	}
	close(queue)

	wg.Wait()
}
