package keyer

import "testing"

func TestElementQueue_FIFO(t *testing.T) {
	var q elementQueue

	q.push(Dit)
	q.push(Dah)
	q.push(Dit)

	if q.len() != 3 {
		t.Fatalf("len() = %d, want 3", q.len())
	}

	want := []Element{Dit, Dah, Dit}
	for i, w := range want {
		e, ok := q.pop()
		if !ok {
			t.Fatalf("pop %d: ok = false", i)
		}
		if e != w {
			t.Errorf("pop %d = %v, want %v", i, e, w)
		}
	}

	if _, ok := q.pop(); ok {
		t.Error("pop on empty queue ok = true, want false")
	}
}

func TestElementQueue_WrapAround(t *testing.T) {
	var q elementQueue

	// Advance head past the midpoint, then fill across the wrap boundary.
	for i := 0; i < 5; i++ {
		q.push(Dit)
	}
	for i := 0; i < 5; i++ {
		q.pop()
	}
	for i := 0; i < QueueCapacity; i++ {
		e := Dit
		if i%2 == 1 {
			e = Dah
		}
		if !q.push(e) {
			t.Fatalf("push %d failed on non-full queue", i)
		}
	}

	for i := 0; i < QueueCapacity; i++ {
		want := Dit
		if i%2 == 1 {
			want = Dah
		}
		e, ok := q.pop()
		if !ok || e != want {
			t.Errorf("pop %d = (%v, %v), want (%v, true)", i, e, ok, want)
		}
	}
}

func TestElementQueue_OverflowDropsAndCounts(t *testing.T) {
	var q elementQueue

	for i := 0; i < QueueCapacity; i++ {
		if !q.push(Dah) {
			t.Fatalf("push %d failed below capacity", i)
		}
	}
	if q.push(Dit) {
		t.Error("push on full queue = true, want false")
	}
	if q.push(Dit) {
		t.Error("push on full queue = true, want false")
	}

	if q.dropped != 2 {
		t.Errorf("dropped = %d, want 2", q.dropped)
	}
	if q.len() != QueueCapacity {
		t.Errorf("len() = %d, want %d", q.len(), QueueCapacity)
	}

	// The retained contents are intact.
	e, ok := q.pop()
	if !ok || e != Dah {
		t.Errorf("pop = (%v, %v), want (DAH, true)", e, ok)
	}
}

func TestElementQueue_Clear(t *testing.T) {
	var q elementQueue
	q.push(Dit)
	q.push(Dah)

	q.clear()

	if q.len() != 0 {
		t.Errorf("len() = %d after clear, want 0", q.len())
	}
	if _, ok := q.pop(); ok {
		t.Error("pop after clear ok = true, want false")
	}
}
