/*
Package ksync provides a condition variable with precise wakeup semantics,
together with lock and semaphore primitives built around it.

Unlike sync.Cond, a Cond in this package guarantees the absence of spurious
wakeups: Wait returns only in response to WakeOne or WakeAll, and WaitTimeout
only in response to a wake or its own timeout. A waker can therefore transfer
state to the exact waiter it releases (see Semaphore) instead of waking a
crowd to race over re-checking a predicate.
*/
package ksync

import "errors"

// Errors returned by package structs.
var (
	ErrClosed = errors.New("ksync: closed")
)
