package ksync

// Queue is a bounded FIFO queue built on two Conds sharing one Mutex.
// Push blocks while the queue is full, Pop while it is empty.
type Queue[T any] struct {
	mu  Mutex
	snd Cond
	rcv Cond

	buf    []T
	head   int
	n      int
	closed bool
}

// NewQueue returns an empty Queue holding up to size elements.
func NewQueue[T any](size int) *Queue[T] {
	if size <= 0 {
		panic("ksync: queue size must be positive")
	}
	return &Queue[T]{buf: make([]T, size)}
}

// Push appends x to the queue, blocking while the queue is full.
// It returns ErrClosed if the queue is or becomes closed.
func (q *Queue[T]) Push(x T) error {
	q.mu.Acquire()
	for !q.closed && q.n == len(q.buf) {
		q.snd.Wait(&q.mu)
	}
	if q.closed {
		q.mu.Release()
		return ErrClosed
	}
	q.buf[(q.head+q.n)%len(q.buf)] = x
	q.n++
	q.mu.Release()

	q.rcv.WakeOne()
	return nil
}

// Pop removes and returns the oldest element, blocking while the queue is
// empty. After Close, Pop keeps draining buffered elements and returns
// ErrClosed once none remain.
func (q *Queue[T]) Pop() (T, error) {
	q.mu.Acquire()
	for !q.closed && q.n == 0 {
		q.rcv.Wait(&q.mu)
	}
	if q.n > 0 {
		var zero T
		x := q.buf[q.head]
		q.buf[q.head] = zero
		q.head = (q.head + 1) % len(q.buf)
		q.n--
		q.mu.Release()

		q.snd.WakeOne()
		return x, nil
	}
	q.mu.Release()

	var zero T
	return zero, ErrClosed
}

// Close marks the queue closed and releases every blocked Push and Pop.
// Close is idempotent.
func (q *Queue[T]) Close() {
	q.mu.Acquire()
	if q.closed {
		q.mu.Release()
		return
	}
	q.closed = true
	q.mu.Release()

	q.snd.WakeAll()
	q.rcv.WakeAll()
}
