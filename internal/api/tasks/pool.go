package tasks

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

type Task = func()

var ErrPoolClosed = errors.New("task pool is shut down")

// Pool runs fire-and-forget tasks (review emails) on a fixed number of
// workers fed from a bounded queue.
type Pool struct {
	log        *slog.Logger
	tasks      chan Task
	maxWorkers int
	wg         sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

func New(log *slog.Logger, maxWorkers int, maxTasksQueueSize int) *Pool {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	return &Pool{
		log:        log,
		maxWorkers: maxWorkers,
		tasks:      make(chan Task, maxTasksQueueSize),
	}
}

func (p *Pool) Run() {
	p.wg.Add(p.maxWorkers)
	for i := 0; i < p.maxWorkers; i++ {
		go func() {
			defer p.wg.Done()
			log := p.log.With("worker", i)
			for task := range p.tasks {
				p.exec(log, task)
			}
		}()
	}
}

// exec runs one task; a panicking task does not take its worker down.
func (p *Pool) exec(log *slog.Logger, task Task) {
	defer func() {
		if err := recover(); err != nil {
			log.Error("task panicked", "err", err)
		}
	}()
	task()
	log.Debug("task done")
}

// Add queues a task, blocking while the queue is full. Tasks added after
// Shutdown are dropped and logged.
func (p *Pool) Add(task Task) {
	if err := p.TryAdd(task); err != nil {
		p.log.Warn("dropping task", "errMsg", err.Error())
	}
}

func (p *Pool) TryAdd(task Task) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrPoolClosed
	}
	p.tasks <- task
	return nil
}

// Shutdown stops accepting tasks and waits for queued ones to finish or for
// ctx to expire.
func (p *Pool) Shutdown(ctx context.Context) error {
	const op = "tasks.Pool.Shutdown"
	log := p.log.With("op", op)
	log.Info("shutting down background tasks", "queued", len(p.tasks))
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.tasks)
	}
	p.mu.Unlock()
	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()
	select {
	case <-ctx.Done():
		log.Warn("graceful shutdown timed out.. forcing exit", "timeout", ctx.Err())
		return ctx.Err()
	case <-done:
		log.Info("background tasks successfully stopped")
		return nil
	}
}
