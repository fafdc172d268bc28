package source

import (
	"context"
	"sync"

	"lingobot/internal/core"
)

// Queue is the unbounded FIFO between the webhook bridge and the dispatch
// loop. Enqueue is safe for concurrent producers; Next is single-consumer.
// After Close the consumer still drains every queued event before the queue
// reports end-of-stream.
type Queue struct {
	mu     sync.Mutex
	items  []core.InboundEvent
	closed bool
	signal chan struct{}
}

// NewQueue builds an empty open queue.
func NewQueue() *Queue {
	return &Queue{signal: make(chan struct{}, 1)}
}

// Enqueue appends an event in arrival order. Events arriving after Close are
// dropped.
func (q *Queue) Enqueue(ev core.InboundEvent) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.items = append(q.items, ev)
	q.mu.Unlock()
	q.wake()
}

// Close stops intake. Already-queued events remain consumable.
func (q *Queue) Close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
	q.wake()
}

// Next blocks until an event is available, the queue is closed and drained,
// or ctx is cancelled with nothing left to drain.
func (q *Queue) Next(ctx context.Context) (core.InboundEvent, error) {
	for {
		q.mu.Lock()
		if len(q.items) > 0 {
			ev := q.items[0]
			q.items = q.items[1:]
			q.mu.Unlock()
			return ev, nil
		}
		closed := q.closed
		q.mu.Unlock()

		if closed {
			return core.InboundEvent{}, core.ErrSourceClosed
		}

		select {
		case <-q.signal:
		case <-ctx.Done():
			return core.InboundEvent{}, core.ErrSourceClosed
		}
	}
}

// Len reports the number of queued events.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

func (q *Queue) wake() {
	select {
	case q.signal <- struct{}{}:
	default:
	}
}
