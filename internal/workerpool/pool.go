package workerpool

import (
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"

	"github.com/okutsev/httpool/internal/metrics"
)

// Pool is a fixed-size worker pool. Workers are spawned eagerly at
// construction and live until Close. Jobs flow through a single unbounded
// FIFO queue shared by all workers, so Submit never blocks on capacity.
type Pool struct {
	queue     *queue
	workers   int
	wg        sync.WaitGroup
	closed    atomic.Bool
	closeOnce sync.Once
}

// New builds a pool of exactly workers workers. The size is fixed for the
// pool's lifetime; a size below one is rejected.
func New(workers int) (*Pool, error) {
	if workers < 1 {
		return nil, errors.Errorf("workerpool: size must be positive, got %d", workers)
	}
	p := &Pool{queue: newQueue(), workers: workers}
	metrics.PoolWorkers.Set(float64(workers))
	for id := 0; id < workers; id++ {
		p.wg.Add(1)
		go p.worker(id)
	}
	return p, nil
}

// Submit enqueues job for execution by some worker. Jobs are dequeued in
// FIFO order, but nothing is guaranteed about which worker runs a given job
// or how its completion interleaves with jobs running on other workers.
// Fire-and-forget: once accepted a job cannot be withdrawn.
func (p *Pool) Submit(job Job) error {
	if job == nil {
		return errors.New("workerpool: nil job")
	}
	if p.closed.Load() {
		return ErrPoolClosed
	}
	if !p.queue.push(message{job: job}) {
		return ErrPoolClosed
	}
	metrics.JobsSubmittedTotal.Inc()
	metrics.PoolQueueDepth.Set(float64(p.queue.len()))
	return nil
}

// Close shuts the pool down and blocks until every worker has exited. One
// terminate sentinel is enqueued per worker, behind everything already in
// the queue, so jobs submitted before Close all run to completion first.
// Jobs racing with Close may be refused or left undrained, never run twice.
// Calling Close again is a no-op.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		p.closed.Store(true)
		for i := 0; i < p.workers; i++ {
			p.queue.push(message{terminate: true})
		}
		p.wg.Wait()
		p.queue.close()
		metrics.PoolWorkers.Set(0)
		metrics.PoolQueueDepth.Set(0)
		slog.Info("worker pool closed", "workers", p.workers)
	})
}

// WorkerCount reports the fixed pool size.
func (p *Pool) WorkerCount() int { return p.workers }

// QueueDepth reports how many messages are currently waiting.
func (p *Pool) QueueDepth() int { return p.queue.len() }

func (p *Pool) worker(id int) {
	defer p.wg.Done()
	for {
		msg, ok := p.queue.pop()
		if !ok {
			// Sender side is gone: same effect as an explicit terminate.
			slog.Debug("worker exiting, queue closed", "worker", id)
			return
		}
		if msg.terminate {
			slog.Debug("worker terminating", "worker", id)
			return
		}
		p.runJob(id, msg.job)
		metrics.JobsCompletedTotal.Inc()
		metrics.PoolQueueDepth.Set(float64(p.queue.len()))
	}
}

// runJob confines a panicking job to the worker that ran it. The worker
// survives and goes back to the queue; the panic is logged with its stack.
func (p *Pool) runJob(id int, job Job) {
	defer func() {
		if r := recover(); r != nil {
			metrics.JobPanicsTotal.Inc()
			slog.Error("job panic recovered",
				"worker", id,
				"panic", r,
				"stack", string(debug.Stack()),
			)
		}
	}()
	job()
}
