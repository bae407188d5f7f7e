package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestPool_RunsAllJobs(t *testing.T) {
	var ran int64
	jobs := make([]Job, 100)
	for i := range jobs {
		jobs[i] = func(context.Context) {
			atomic.AddInt64(&ran, 1)
		}
	}

	NewPool(4).Run(context.Background(), jobs)
	if ran != 100 {
		t.Errorf("Expected 100 jobs run, got %d", ran)
	}
}

func TestPool_ResultsByIndex(t *testing.T) {
	results := make([]int, 50)
	jobs := make([]Job, 50)
	for i := range jobs {
		i := i
		jobs[i] = func(context.Context) {
			results[i] = i * 2
		}
	}

	NewPool(8).Run(context.Background(), jobs)
	for i, got := range results {
		if got != i*2 {
			t.Fatalf("Result %d: expected %d, got %d", i, i*2, got)
		}
	}
}

func TestPool_MinimumOneWorker(t *testing.T) {
	var ran int64
	jobs := []Job{func(context.Context) { atomic.AddInt64(&ran, 1) }}

	NewPool(0).Run(context.Background(), jobs)
	if ran != 1 {
		t.Errorf("A zero-worker pool should still run jobs, got %d", ran)
	}
}

func TestPool_CancelStopsDispatch(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	var ran int64
	jobs := make([]Job, 1000)
	for i := range jobs {
		jobs[i] = func(context.Context) {
			atomic.AddInt64(&ran, 1)
			time.Sleep(time.Millisecond)
		}
	}

	go func() {
		time.Sleep(5 * time.Millisecond)
		cancel()
	}()

	NewPool(2).Run(ctx, jobs)
	if atomic.LoadInt64(&ran) == 1000 {
		t.Error("Cancellation should drop jobs that were not yet dispatched")
	}
}
