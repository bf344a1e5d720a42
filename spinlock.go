package ksync

import (
	"runtime"
	"sync/atomic"
)

// SpinLock is a test-and-set spinlock implementing TryLock. The zero value
// is an unlocked SpinLock.
//
// It yields the processor between probes, so holders that block are merely
// slow, not fatal. Prefer Mutex unless critical sections are tiny.
type SpinLock struct {
	held int32
}

func (s *SpinLock) Acquire() {
	for !atomic.CompareAndSwapInt32(&s.held, 0, 1) {
		runtime.Gosched()
	}
}

func (s *SpinLock) TryAcquire() bool {
	return atomic.CompareAndSwapInt32(&s.held, 0, 1)
}

// Release unlocks s.
// It panics if s is not locked on entry to Release.
func (s *SpinLock) Release() {
	if !atomic.CompareAndSwapInt32(&s.held, 1, 0) {
		panic("ksync: Release of unheld SpinLock")
	}
}
