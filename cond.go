package ksync

import (
	"strconv"
	"sync"
	"sync/atomic"
	"time"
)

// Status is the terminal outcome of a timed wait.
type Status int

const (
	// Woken means the wait ended in response to WakeOne or WakeAll.
	Woken Status = iota
	// TimedOut means the wait ended because its own timeout fired.
	TimedOut
)

func (s Status) String() string {
	switch s {
	case Woken:
		return "Woken"
	case TimedOut:
		return "TimedOut"
	}
	return "Status(" + strconv.Itoa(int(s)) + ")"
}

// Cond is a condition variable for use with an external Lock.
//
// Unlike sync.Cond it guarantees the absence of spurious wakeups: Wait
// returns only after a WakeOne or WakeAll aimed at it, and WaitTimeout only
// after such a wake or its own timeout. This lets a waker decide exactly
// which waiter to release and what state that waiter should observe, instead
// of waking everyone to race over re-checking a predicate.
//
// Waiters are released in FIFO order. All concurrent waits on one Cond must
// use the same Lock; waiting with a different Lock while waiters are still
// queued is a usage error and panics.
//
// When the Lock also implements TryLock, a waker hands lock ownership
// directly to the waiter it releases whenever the lock is free at that
// moment ("wait morphing"), sparing the waiter a contended reacquisition.
//
// The zero value is an empty condition variable ready for use.
// A Cond must not be copied after first use.
type Cond struct {
	// NewTimer overrides the timer used by WaitTimeout.
	// Nil means time.AfterFunc.
	NewTimer TimerFactory

	mu      sync.Mutex
	q       waitQueue
	waiters int32 // atomic; mirrors queue length for the lock-free empty check
	lock    Lock  // external lock remembered from the latest wait
}

// Wait suspends execution of the calling goroutine until a WakeOne or
// WakeAll releases it.
//
// The caller must hold l on entry. On return the caller holds l again,
// either reacquired normally or handed over by the waker: there is no
// observable unlocked window after Wait returns.
func (c *Cond) Wait(l Lock) {
	c.wait(l, 0)
}

// WaitTimeout is Wait with a deadline: it additionally returns after d has
// elapsed without a wake, reporting TimedOut. Like Wait, it must be called
// with l held and returns with l held, whatever the outcome.
//
// A timeout is an ordinary result, not an error. d must be positive.
func (c *Cond) WaitTimeout(l Lock, d time.Duration) Status {
	if d <= 0 {
		panic("ksync: WaitTimeout with non-positive timeout")
	}
	return c.wait(l, d)
}

func (c *Cond) wait(l Lock, d time.Duration) Status {
	r := acquireRecord()

	c.mu.Lock()
	if !c.q.empty() && c.lock != l {
		c.mu.Unlock()
		panic("ksync: Wait called with a different Lock while waiters are queued")
	}
	c.lock = l
	c.q.pushBack(r)
	atomic.AddInt32(&c.waiters, 1)

	// Release the external lock only now that the record is queued. The
	// caller held it continuously from before the condition changed until
	// this point, so no third party can update the condition and call
	// WakeOne in the window where we would miss it: any waker that can run
	// already sees us in the queue.
	l.Release()

	var tmr Timer
	if d > 0 {
		newTimer := c.NewTimer
		if newTimer == nil {
			newTimer = afterFunc
		}
		tmr = newTimer(d, func() { c.timeout(r) })
	}
	c.mu.Unlock()

	<-r.wake

	status := r.status
	morphed := r.morphed

	if tmr == nil || tmr.Stop() || status == TimedOut {
		// Either the timer never fired, or it fired and won the race: its
		// callback is finished with the record. Safe to recycle.
		releaseRecord(r)
	}
	// Otherwise the timer fired but lost the race to a waker and its
	// callback may still be inspecting the record; leave it to the GC.

	if !morphed {
		l.Acquire()
	}
	return status
}

// timeout is the timer side of the wake/timeout race. Whichever of an
// explicit waker and this callback still finds the record queued removes it
// and delivers the wake; the other side finds it gone and does nothing.
func (c *Cond) timeout(r *waitRecord) {
	c.mu.Lock()
	if !c.q.remove(r) {
		c.mu.Unlock()
		return
	}
	atomic.AddInt32(&c.waiters, -1)
	c.mu.Unlock()

	r.status = TimedOut
	r.wake <- struct{}{}
}

// WakeOne releases the longest waiting of the goroutines blocked on c, if
// there is one. It does not block and is a no-op on an empty Cond.
func (c *Cond) WakeOne() {
	if atomic.LoadInt32(&c.waiters) == 0 {
		return
	}
	c.mu.Lock()
	r := c.q.popFront()
	if r == nil {
		c.mu.Unlock()
		return
	}
	atomic.AddInt32(&c.waiters, -1)
	r.morphed = c.morph()
	c.mu.Unlock()

	r.status = Woken
	r.wake <- struct{}{}
}

// WakeAll releases every goroutine blocked on c, oldest first. It does not
// block and is a no-op on an empty Cond. Resume order among the released
// waiters is up to the runtime scheduler.
func (c *Cond) WakeAll() {
	if atomic.LoadInt32(&c.waiters) == 0 {
		return
	}
	c.mu.Lock()
	// Only one waiter can be handed lock ownership; the rest contend for
	// the lock normally.
	first := true
	for r := c.q.popFront(); r != nil; r = c.q.popFront() {
		atomic.AddInt32(&c.waiters, -1)
		if first {
			r.morphed = c.morph()
			first = false
		}
		r.status = Woken
		r.wake <- struct{}{}
	}
	c.mu.Unlock()
}

// WaitUntil waits until pred, evaluated with l held, reports true.
// It must be called with l held and returns with l held.
func (c *Cond) WaitUntil(l Lock, pred func() bool) {
	for !pred() {
		c.Wait(l)
	}
}

// morph attempts the wait morphing handoff: acquire the remembered lock on
// behalf of the waiter about to be woken, so that the removal from the
// queue and the ownership transfer appear as one indivisible step. Must be
// called with c.mu held.
func (c *Cond) morph() bool {
	tl, ok := c.lock.(TryLock)
	return ok && tl.TryAcquire()
}
