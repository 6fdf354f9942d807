package application

import (
	"sync"

	"github.com/gorchard/farmhand/internal/domain"
)

type queuedOp struct {
	name string
	run  func() error
	done chan error
}

// opQueue serializes lifecycle operations: strict FIFO, unbounded, drained
// by a single goroutine so two overlapping operations can never interleave.
type opQueue struct {
	mu     sync.Mutex
	wake   *sync.Cond
	ops    []queuedOp
	closed bool
}

func newOpQueue() *opQueue {
	q := &opQueue{}
	q.wake = sync.NewCond(&q.mu)
	go q.drain()
	return q
}

// Submit enqueues an operation and blocks until it has run to completion.
func (q *opQueue) Submit(name string, run func() error) error {
	op := queuedOp{name: name, run: run, done: make(chan error, 1)}

	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return domain.ErrSupervisorClosed
	}
	q.ops = append(q.ops, op)
	q.wake.Signal()
	q.mu.Unlock()

	return <-op.done
}

func (q *opQueue) Close() {
	q.mu.Lock()
	q.closed = true
	q.wake.Signal()
	q.mu.Unlock()
}

func (q *opQueue) drain() {
	for {
		q.mu.Lock()
		for len(q.ops) == 0 && !q.closed {
			q.wake.Wait()
		}
		if len(q.ops) == 0 && q.closed {
			q.mu.Unlock()
			return
		}
		op := q.ops[0]
		q.ops = q.ops[1:]
		q.mu.Unlock()

		op.done <- op.run()
	}
}
