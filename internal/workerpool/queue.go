package workerpool

import "sync"

// queue is the unbounded FIFO carrying messages from Submit to the workers.
// Receivers sleep on the condition variable while the queue is empty, and
// exactly one receiver gets each message.
type queue struct {
	mu     sync.Mutex
	cond   *sync.Cond
	items  []message
	closed bool
}

func newQueue() *queue {
	q := &queue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// push appends m and wakes one blocked receiver. Reports false once the
// queue has been closed.
func (q *queue) push(m message) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return false
	}
	q.items = append(q.items, m)
	q.cond.Signal()
	return true
}

// pop blocks until a message is available or the queue is closed and
// drained. The second result is false only in the closed-and-drained case,
// which workers treat the same as an explicit terminate.
func (q *queue) pop() (message, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.items) == 0 && !q.closed {
		q.cond.Wait()
	}
	if len(q.items) == 0 {
		return message{}, false
	}
	m := q.items[0]
	q.items = q.items[1:]
	return m, true
}

// close marks the queue closed and wakes every blocked receiver. Messages
// already queued can still be popped; new pushes are refused.
func (q *queue) close() {
	q.mu.Lock()
	q.closed = true
	q.cond.Broadcast()
	q.mu.Unlock()
}

func (q *queue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
