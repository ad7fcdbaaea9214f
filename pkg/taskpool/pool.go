// Package taskpool runs deferred units of work on a fixed set of worker
// goroutines pulling from one shared FIFO queue.
package taskpool

import (
	"io"
	"log/slog"
	"runtime"
	"sync"
)

// Task is an opaque unit of work. It has no return value; side effects
// are reported through whatever completion notification the task itself
// publishes. A submitted task runs exactly once on exactly one worker,
// unless shutdown removes it from the queue before any worker picks it
// up.
type Task func()

// Pool is a fixed-size worker pool. Producers on any goroutine,
// including the workers themselves, may submit tasks. Tasks are
// dequeued in FIFO order, but workers race for the queue head, so
// completion order across workers is unconstrained.
type Pool struct {
	log     *slog.Logger
	workers int

	mu       sync.Mutex
	cond     *sync.Cond
	queue    []Task
	shutdown bool

	wg sync.WaitGroup
}

// DefaultWorkers returns the default pool size: the logical core count
// minus two, reserving cores for the owning process, but at least one.
func DefaultWorkers() int {
	n := runtime.NumCPU() - 2
	if n < 1 {
		n = 1
	}
	return n
}

// New starts a pool with the given number of workers. A non-positive
// count uses DefaultWorkers. A nil logger discards worker diagnostics.
func New(workers int, log *slog.Logger) *Pool {
	if workers <= 0 {
		workers = DefaultWorkers()
	}
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	p := &Pool{log: log, workers: workers}
	p.cond = sync.NewCond(&p.mu)

	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.worker()
	}
	return p
}

// Workers returns the pool size.
func (p *Pool) Workers() int {
	return p.workers
}

// Submit appends the task to the queue and wakes one idle worker.
// Submitting after Shutdown is a no-op.
func (p *Pool) Submit(t Task) {
	if t == nil {
		return
	}
	p.mu.Lock()
	if p.shutdown {
		p.mu.Unlock()
		return
	}
	p.queue = append(p.queue, t)
	p.mu.Unlock()
	p.cond.Signal()
}

// Shutdown stops the workers and joins them. Tasks still queued are
// dropped, not run: shutdown stops further progress rather than
// draining. Callers needing every task to finish must track their own
// outstanding count and shut down only once it reaches zero. Shutdown
// is idempotent.
func (p *Pool) Shutdown() {
	p.mu.Lock()
	if p.shutdown {
		p.mu.Unlock()
		return
	}
	p.shutdown = true
	p.mu.Unlock()

	p.cond.Broadcast()
	p.wg.Wait()
}

// worker blocks until woken, then drains one task at a time. The
// shutdown flag terminates the worker even when the queue is non-empty.
func (p *Pool) worker() {
	defer p.wg.Done()

	for {
		p.mu.Lock()
		for len(p.queue) == 0 && !p.shutdown {
			p.cond.Wait()
		}
		if p.shutdown {
			p.mu.Unlock()
			return
		}
		t := p.queue[0]
		p.queue = p.queue[1:]
		p.mu.Unlock()

		p.run(t)
	}
}

// run executes a task, containing panics so one failing task cannot
// take down its worker.
func (p *Pool) run(t Task) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Error("task panicked", "panic", r)
		}
	}()
	t()
}
