package notify

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Runner executes detached side-effect tasks (emails, geo lookups) off the
// request path. Failures are logged inside the pool, never surfaced to the
// caller who enqueued the task.
type Runner interface {
	Go(name string, task Task)
	Close()
}

type Task func(ctx context.Context) error

const taskTimeout = time.Second * 10

type WorkerPool struct {
	pool chan job
}

type job struct {
	name string
	task Task
}

func NewWorkerPool(size, queue int) *WorkerPool {
	wp := &WorkerPool{pool: make(chan job, queue)}

	for i := 0; i < size; i++ {
		go wp.worker()
	}
	return wp
}

func (wp *WorkerPool) worker() {
	for j := range wp.pool {
		ctx, cancel := context.WithTimeout(context.Background(), taskTimeout)
		if err := j.task(ctx); err != nil {
			zap.L().Error("detached task failed", zap.String("task", j.name), zap.Error(err))
		}
		cancel()
	}
}

// Go enqueues without blocking; when the queue is full the task is dropped
// and logged. Detached effects are best effort.
func (wp *WorkerPool) Go(name string, task Task) {
	select {
	case wp.pool <- job{name: name, task: task}:
	default:
		zap.L().Warn("detached task queue full, dropping task", zap.String("task", name))
	}
}

func (wp *WorkerPool) Close() {
	close(wp.pool)
}
