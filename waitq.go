package ksync

import "sync"

// waitRecord describes a single wait. It lives for exactly the duration of
// that Wait or WaitTimeout call: taken from the pool on entry, linked into
// the owning Cond's queue, and recycled after the wake has been consumed.
//
// The wake channel is the park/unpark primitive: the waiting goroutine
// blocks receiving from it, and whichever side won the removal race (waker
// or timer callback) performs the single send. status and morphed are
// written before that send and read after the receive, so they need no
// extra synchronization.
type waitRecord struct {
	prev, next *waitRecord

	wake chan struct{}

	status  Status
	morphed bool
	queued  bool
}

var recordPool sync.Pool

func acquireRecord() *waitRecord {
	if r, ok := recordPool.Get().(*waitRecord); ok {
		return r
	}
	return &waitRecord{
		wake: make(chan struct{}, 1),
	}
}

func releaseRecord(r *waitRecord) {
	c := r.wake
	*r = waitRecord{wake: c}
	recordPool.Put(r)
}

// waitQueue is an intrusive FIFO of wait records, oldest first.
// All operations are O(1) and require the owning Cond's internal mutex.
type waitQueue struct {
	oldest *waitRecord
	newest *waitRecord
}

func (q *waitQueue) empty() bool {
	return q.oldest == nil
}

func (q *waitQueue) pushBack(r *waitRecord) {
	r.prev = q.newest
	r.next = nil
	if q.newest != nil {
		q.newest.next = r
	} else {
		q.oldest = r
	}
	q.newest = r
	r.queued = true
}

func (q *waitQueue) popFront() *waitRecord {
	r := q.oldest
	if r != nil {
		q.unlink(r)
	}
	return r
}

// remove unlinks r if it is still queued and reports whether this caller
// was the one to remove it. The loser of a wake/timeout race gets false
// and must not touch r afterwards.
func (q *waitQueue) remove(r *waitRecord) bool {
	if !r.queued {
		return false
	}
	q.unlink(r)
	return true
}

func (q *waitQueue) unlink(r *waitRecord) {
	if r.prev != nil {
		r.prev.next = r.next
	} else {
		q.oldest = r.next
	}
	if r.next != nil {
		r.next.prev = r.prev
	} else {
		q.newest = r.prev
	}
	r.prev = nil
	r.next = nil
	r.queued = false
}
