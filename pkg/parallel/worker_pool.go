// Package parallel provides the bounded goroutine pool used to classify
// candidates concurrently.
package parallel

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrPoolClosed is returned by Submit after Close.
var ErrPoolClosed = errors.New("parallel: worker pool closed")

// MaxWorkers caps the pool size.
const MaxWorkers = 1024

// WorkerPool manages a fixed set of worker goroutines.
type WorkerPool struct {
	workers   int
	taskQueue chan func()
	wg        sync.WaitGroup
	once      sync.Once
	mu        sync.RWMutex // guards closed against a concurrent Close during send
	closed    bool

	panicMu sync.Mutex
	panics  []any
}

// NewWorkerPool starts a pool with the given number of workers. Counts below
// one become one.
func NewWorkerPool(workers int) (*WorkerPool, error) {
	if workers <= 0 {
		workers = 1
	}
	if workers > MaxWorkers {
		return nil, fmt.Errorf("parallel: %d workers exceeds maximum %d", workers, MaxWorkers)
	}

	pool := &WorkerPool{
		workers:   workers,
		taskQueue: make(chan func(), workers*2),
	}
	for i := 0; i < pool.workers; i++ {
		pool.wg.Add(1)
		go pool.worker()
	}
	return pool, nil
}

// Workers returns the pool size.
func (wp *WorkerPool) Workers() int { return wp.workers }

func (wp *WorkerPool) worker() {
	defer wp.wg.Done()

	for task := range wp.taskQueue {
		func() {
			defer func() {
				if r := recover(); r != nil {
					wp.panicMu.Lock()
					wp.panics = append(wp.panics, r)
					wp.panicMu.Unlock()
				}
			}()
			task()
		}()
	}
}

// Submit queues a task, blocking while the queue is full. It returns
// ctx.Err() if the context ends first and ErrPoolClosed after Close.
func (wp *WorkerPool) Submit(ctx context.Context, task func()) error {
	wp.mu.RLock()
	defer wp.mu.RUnlock()

	if wp.closed {
		return ErrPoolClosed
	}

	select {
	case wp.taskQueue <- task:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops accepting tasks and waits for queued ones to finish. It is
// safe to call more than once.
func (wp *WorkerPool) Close() {
	wp.once.Do(func() {
		wp.mu.Lock()
		wp.closed = true
		close(wp.taskQueue)
		wp.mu.Unlock()
	})
	wp.wg.Wait()
}

// Panics returns the values recovered from panicking tasks.
func (wp *WorkerPool) Panics() []any {
	wp.panicMu.Lock()
	defer wp.panicMu.Unlock()
	out := make([]any, len(wp.panics))
	copy(out, wp.panics)
	return out
}
