package ksync

import "time"

// Timer is the handle to a pending timeout registered by a TimerFactory.
type Timer interface {
	// Stop cancels the timer and reports whether cancellation preempted
	// the callback. If Stop returns true the callback must never run;
	// false means it has fired or is firing concurrently.
	Stop() bool
}

// TimerFactory starts a one-shot timer that calls f after d. Cond uses it
// to register WaitTimeout deadlines; f is always safe to call from a
// separate goroutine.
type TimerFactory func(d time.Duration, f func()) Timer

func afterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
