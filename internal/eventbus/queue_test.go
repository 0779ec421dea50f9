package eventbus

import (
	"sync"
	"testing"
	"time"
)

func TestQueueFIFO(t *testing.T) {
	q := New[int]()
	for i := range 5 {
		q.Send(i)
	}
	if q.Len() != 5 {
		t.Fatalf("Len = %d, want 5", q.Len())
	}
	for want := range 5 {
		got, ok := q.TryRecv()
		if !ok || got != want {
			t.Fatalf("TryRecv = %d, %v; want %d", got, ok, want)
		}
	}
	if _, ok := q.TryRecv(); ok {
		t.Fatal("expected empty queue")
	}
}

func TestQueueDrain(t *testing.T) {
	q := New[string]()
	if items := q.Drain(); len(items) != 0 {
		t.Fatalf("expected no items, got %v", items)
	}
	q.Send("a")
	q.Send("b")
	items := q.Drain()
	if len(items) != 2 || items[0] != "a" || items[1] != "b" {
		t.Fatalf("unexpected drain %v", items)
	}
	if q.Len() != 0 {
		t.Fatalf("Len after drain = %d", q.Len())
	}
}

func TestQueueReadySignalsAfterSend(t *testing.T) {
	q := New[int]()
	select {
	case <-q.Ready():
		t.Fatal("ready before any send")
	default:
	}

	q.Send(1)
	q.Send(2)
	select {
	case <-q.Ready():
	case <-time.After(time.Second):
		t.Fatal("expected ready signal")
	}
	select {
	case <-q.Ready():
		t.Fatal("signals should coalesce")
	default:
	}
}

func TestQueuePreservesPerProducerOrder(t *testing.T) {
	type item struct{ producer, seq int }
	q := New[item]()

	const producers, perProducer = 8, 200
	var wg sync.WaitGroup
	for p := range producers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for s := range perProducer {
				q.Send(item{producer: p, seq: s})
			}
		}()
	}
	wg.Wait()

	items := q.Drain()
	if len(items) != producers*perProducer {
		t.Fatalf("got %d items, want %d", len(items), producers*perProducer)
	}
	next := make(map[int]int)
	for _, it := range items {
		if it.seq != next[it.producer] {
			t.Fatalf("producer %d: got seq %d, want %d", it.producer, it.seq, next[it.producer])
		}
		next[it.producer]++
	}
}

func TestNilQueueIsInert(t *testing.T) {
	var q *Queue[int]
	q.Send(1)
	if _, ok := q.TryRecv(); ok {
		t.Fatal("nil queue returned an item")
	}
	if q.Drain() != nil || q.Len() != 0 {
		t.Fatal("nil queue should be empty")
	}
}
