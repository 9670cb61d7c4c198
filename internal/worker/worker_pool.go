package worker

import (
	"sync"

	"github.com/rs/zerolog"
)

type Task func()

// Pool is a bounded worker pool. It is owned by its caller and scoped
// to that caller's lifetime: one aggregation run constructs its own
// pool sized by the configured concurrency limit, and the notification
// worker holds a long-lived one. There is no process-wide pool.
type Pool struct {
	tasks      chan Task
	wg         sync.WaitGroup
	maxWorkers int
	logger     zerolog.Logger
}

func NewPool(maxWorkers, queueSize int, logger zerolog.Logger) *Pool {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	if queueSize < maxWorkers {
		queueSize = maxWorkers
	}

	return &Pool{
		tasks:      make(chan Task, queueSize),
		maxWorkers: maxWorkers,
		logger:     logger,
	}
}

func (p *Pool) Start() {
	p.logger.Debug().Int("max_workers", p.maxWorkers).Msg("Starting worker pool")

	for i := 0; i < p.maxWorkers; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
}

// Submit enqueues a task. It blocks when the queue is full.
func (p *Pool) Submit(task Task) {
	p.tasks <- task
}

// Stop closes the queue and waits for in-flight tasks to finish.
func (p *Pool) Stop() {
	close(p.tasks)
	p.wg.Wait()

	p.logger.Debug().Msg("Worker pool stopped")
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()

	for task := range p.tasks {
		func() {
			defer func() {
				if r := recover(); r != nil {
					p.logger.Error().
						Int("worker_id", id).
						Interface("panic", r).
						Msg("Worker recovered from panic")
				}
			}()

			task()
		}()
	}
}
