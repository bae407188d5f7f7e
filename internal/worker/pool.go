// Package worker provides a small fixed-size worker pool for fanning a
// batch of independent jobs across goroutines.
package worker

import (
	"context"
	"sync"
)

// Job is a unit of work. Jobs must not share mutable state unless they
// synchronize it themselves.
type Job func(ctx context.Context)

// Pool executes batches of jobs with a bounded number of workers.
type Pool struct {
	workers int
}

// NewPool creates a pool with the given worker count (minimum 1).
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	return &Pool{workers: workers}
}

// Run executes all jobs and blocks until they finish or ctx is cancelled.
// Jobs not yet started when ctx is cancelled are dropped.
func (p *Pool) Run(ctx context.Context, jobs []Job) {
	queue := make(chan Job)

	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range queue {
				job(ctx)
			}
		}()
	}

	for _, job := range jobs {
		select {
		case <-ctx.Done():
			close(queue)
			wg.Wait()
			return
		case queue <- job:
		}
	}
	close(queue)
	wg.Wait()
}
