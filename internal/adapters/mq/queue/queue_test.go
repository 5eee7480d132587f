package queue

import (
	"context"
	"fmt"
	"testing"
	"time"
)

type job struct {
	AthleteID string
	Season    int
}

func TestInMemoryQueue_BasicOperations(t *testing.T) {
	q := NewInMemoryQueue[job](WithCapacity(2))
	ctx := context.Background()

	if l := q.Len(ctx); l != 0 {
		t.Errorf("expected length 0, got %d", l)
	}
	if c := q.Capacity(); c != 2 {
		t.Errorf("expected capacity 2, got %d", c)
	}

	if !q.Enqueue(ctx, job{AthleteID: "a1", Season: 1}) {
		t.Error("expected enqueue to succeed")
	}
	if l := q.Len(ctx); l != 1 {
		t.Errorf("expected length 1, got %d", l)
	}

	got := <-q.Dequeue(ctx)
	if got.AthleteID != "a1" || got.Season != 1 {
		t.Errorf("expected a1/1, got %+v", got)
	}
	if l := q.Len(ctx); l != 0 {
		t.Errorf("expected length 0, got %d", l)
	}
}

func TestInMemoryQueue_Capacity(t *testing.T) {
	q := NewInMemoryQueue[job](WithCapacity(2))
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if !q.Enqueue(ctx, job{AthleteID: fmt.Sprintf("a%d", i)}) {
			t.Fatalf("expected enqueue %d to succeed", i)
		}
	}
	if q.Enqueue(ctx, job{AthleteID: "overflow"}) {
		t.Error("expected enqueue to fail when full")
	}
}

func TestInMemoryQueue_DefaultCapacity(t *testing.T) {
	q := NewInMemoryQueue[job](WithCapacity(0))
	if c := q.Capacity(); c != defaultQueueCapacity {
		t.Errorf("expected default capacity %d, got %d", defaultQueueCapacity, c)
	}
}

func TestInMemoryQueue_Close(t *testing.T) {
	q := NewInMemoryQueue[job](WithCapacity(4))
	ctx := context.Background()

	_ = q.Enqueue(ctx, job{AthleteID: "before"})
	if err := q.Close(); err != nil {
		t.Fatalf("unexpected close error: %v", err)
	}
	if err := q.Close(); err != nil {
		t.Fatalf("expected second close to be a no-op, got %v", err)
	}
	if !q.IsClosed() {
		t.Error("expected queue to report closed")
	}
	if q.Enqueue(ctx, job{AthleteID: "after"}) {
		t.Error("expected enqueue after close to fail")
	}

	// Jobs queued before Close still drain, then the channel closes.
	ch := q.Dequeue(ctx)
	if got := <-ch; got.AthleteID != "before" {
		t.Errorf("expected drained job, got %+v", got)
	}
	select {
	case _, ok := <-ch:
		if ok {
			t.Error("expected dequeue channel to be closed")
		}
	case <-time.After(time.Second):
		t.Error("timed out waiting for dequeue channel to close")
	}
}

func TestInMemoryQueue_ContextCancellation(t *testing.T) {
	q := NewInMemoryQueue[job](WithCapacity(4))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if q.Enqueue(ctx, job{AthleteID: "late"}) {
		t.Error("expected enqueue with cancelled context to fail")
	}

	ch := q.Dequeue(ctx)
	select {
	case _, ok := <-ch:
		if ok {
			t.Error("expected no job on a cancelled dequeue")
		}
	case <-time.After(time.Second):
		t.Error("timed out waiting for cancelled dequeue to close")
	}
}
