// internal/keyer/queue.go
package keyer

// QueueCapacity bounds the pending-element FIFO. Between consecutive gaps a
// real paddle sequence can queue at most one memory element and one Mode B
// bonus, so the bound is generous; hitting it indicates a timing anomaly,
// not normal operation.
const QueueCapacity = 8

// elementQueue is a fixed-capacity FIFO of elements awaiting transmission.
// A push onto a full queue drops the element and counts the drop, since the
// real-time tick path must never block or allocate.
type elementQueue struct {
	buf     [QueueCapacity]Element
	head    int
	n       int
	dropped uint64
}

func (q *elementQueue) push(e Element) bool {
	if q.n == QueueCapacity {
		q.dropped++
		return false
	}
	q.buf[(q.head+q.n)%QueueCapacity] = e
	q.n++
	return true
}

func (q *elementQueue) pop() (Element, bool) {
	if q.n == 0 {
		return Dit, false
	}
	e := q.buf[q.head]
	q.head = (q.head + 1) % QueueCapacity
	q.n--
	return e, true
}

func (q *elementQueue) len() int {
	return q.n
}

func (q *elementQueue) clear() {
	q.head = 0
	q.n = 0
}
