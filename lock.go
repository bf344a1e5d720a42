package ksync

import "sync"

// Lock is the external mutual exclusion collaborator of Cond: the lock that
// protects whatever condition the waiters sleep on.
type Lock interface {
	Acquire()
	Release()
}

// TryLock is a Lock that can additionally be acquired without blocking.
//
// TryAcquire is the capability gate for wait morphing: a waker uses it to
// take the lock on behalf of the waiter it releases. Locks without it fall
// back to plain release-then-reacquire, which is always correct.
type TryLock interface {
	Lock

	// TryAcquire acquires the lock if it is currently unheld and reports
	// whether it did.
	TryAcquire() bool
}

// Mutex is the stock Lock implementation. The zero value is an unlocked
// mutex. It implements TryLock and therefore supports wait morphing.
//
// A Mutex must not be copied after first use.
type Mutex struct {
	mu sync.Mutex
}

func (m *Mutex) Acquire() { m.mu.Lock() }

func (m *Mutex) Release() { m.mu.Unlock() }

func (m *Mutex) TryAcquire() bool { return m.mu.TryLock() }

// AsLock adapts an arbitrary sync.Locker to the Lock interface.
//
// The result deliberately does not implement TryLock: a foreign Locker
// gives no way to take the lock on a waiter's behalf, so conds using it
// run with morphing disabled.
func AsLock(l sync.Locker) Lock {
	return lockerLock{l}
}

type lockerLock struct {
	l sync.Locker
}

func (a lockerLock) Acquire() { a.l.Lock() }

func (a lockerLock) Release() { a.l.Unlock() }
