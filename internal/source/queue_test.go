package source

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"lingobot/internal/core"
)

func TestQueueFIFO(t *testing.T) {
	q := NewQueue()
	for i := 1; i <= 3; i++ {
		q.Enqueue(core.InboundEvent{MessageID: i})
	}

	ctx := context.Background()
	for i := 1; i <= 3; i++ {
		ev, err := q.Next(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ev.MessageID != i {
			t.Fatalf("got message %d, want %d", ev.MessageID, i)
		}
	}
}

func TestQueueDrainsAfterClose(t *testing.T) {
	q := NewQueue()
	q.Enqueue(core.InboundEvent{MessageID: 1})
	q.Enqueue(core.InboundEvent{MessageID: 2})
	q.Close()

	ctx := context.Background()
	for i := 1; i <= 2; i++ {
		ev, err := q.Next(ctx)
		if err != nil {
			t.Fatalf("expected queued event %d after close, got error %v", i, err)
		}
		if ev.MessageID != i {
			t.Fatalf("got message %d, want %d", ev.MessageID, i)
		}
	}

	if _, err := q.Next(ctx); !errors.Is(err, core.ErrSourceClosed) {
		t.Fatalf("expected ErrSourceClosed after drain, got %v", err)
	}
}

func TestQueueDropsEnqueueAfterClose(t *testing.T) {
	q := NewQueue()
	q.Close()
	q.Enqueue(core.InboundEvent{MessageID: 1})

	if q.Len() != 0 {
		t.Fatalf("expected empty queue, got %d items", q.Len())
	}
}

func TestQueueNextBlocksUntilEnqueue(t *testing.T) {
	q := NewQueue()

	go func() {
		time.Sleep(10 * time.Millisecond)
		q.Enqueue(core.InboundEvent{MessageID: 7})
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	ev, err := q.Next(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ev.MessageID != 7 {
		t.Fatalf("got message %d, want 7", ev.MessageID)
	}
}

func TestQueueNextReturnsOnContextCancel(t *testing.T) {
	q := NewQueue()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := q.Next(ctx); !errors.Is(err, core.ErrSourceClosed) {
		t.Fatalf("expected ErrSourceClosed on cancelled context, got %v", err)
	}
}

func TestQueueConcurrentProducers(t *testing.T) {
	q := NewQueue()

	const producers = 8
	const perProducer = 50

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				q.Enqueue(core.InboundEvent{MessageID: 1})
			}
		}()
	}
	wg.Wait()
	q.Close()

	ctx := context.Background()
	count := 0
	for {
		_, err := q.Next(ctx)
		if errors.Is(err, core.ErrSourceClosed) {
			break
		}
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		count++
	}

	if count != producers*perProducer {
		t.Fatalf("delivered %d events, want %d", count, producers*perProducer)
	}
}
