package organ

import (
	"runtime"
	"testing"
)

func TestEventQueuePreservesOrder(t *testing.T) {
	q := NewEventQueue(16)
	for i := 0; i < 10; i++ {
		if !q.Push(noteOn(i, 0.5)) {
			t.Fatalf("push %d failed on non-full queue", i)
		}
	}
	for i := 0; i < 10; i++ {
		ev, ok := q.Pop()
		if !ok {
			t.Fatalf("pop %d failed on non-empty queue", i)
		}
		if int(ev.Key) != i {
			t.Fatalf("order violated: expected key %d, got %d", i, ev.Key)
		}
	}
	if _, ok := q.Pop(); ok {
		t.Fatalf("expected empty queue after draining")
	}
}

func TestEventQueueDropsNewestWhenFull(t *testing.T) {
	q := NewEventQueue(128)
	pushed := 0
	for i := 0; i < 300; i++ {
		if q.Push(noteOn(i%128, 0.5)) {
			pushed++
		}
	}
	if pushed != 128 {
		t.Fatalf("expected exactly capacity pushes to succeed, got %d", pushed)
	}
	if q.Len() != 128 {
		t.Fatalf("expected queue length 128, got %d", q.Len())
	}
	// The retained events are the oldest 128, in order.
	for i := 0; i < 128; i++ {
		ev, ok := q.Pop()
		if !ok || int(ev.Key) != i {
			t.Fatalf("expected oldest events retained: at %d got key %d ok=%v", i, ev.Key, ok)
		}
	}
}

func TestEventQueueRoundsCapacityUp(t *testing.T) {
	q := NewEventQueue(100)
	for i := 0; i < 128; i++ {
		if !q.Push(noteOn(0, 0.5)) {
			t.Fatalf("expected power-of-two ring to hold %d events, full at %d", 128, i)
		}
	}
	if q.Push(noteOn(0, 0.5)) {
		t.Fatalf("expected push beyond rounded capacity to fail")
	}
}

func TestEventQueueCrossGoroutineHandOff(t *testing.T) {
	const n = 10000
	q := NewEventQueue(128)
	done := make(chan struct{})

	go func() {
		defer close(done)
		for i := 0; i < n; i++ {
			ev := noteOn(i%128, 0.5)
			for !q.Push(ev) {
				runtime.Gosched()
			}
		}
	}()

	received := 0
	for received < n {
		ev, ok := q.Pop()
		if !ok {
			runtime.Gosched()
			continue
		}
		if int(ev.Key) != received%128 {
			t.Fatalf("hand-off order violated at %d: got key %d", received, ev.Key)
		}
		received++
	}
	<-done
}
