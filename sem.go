package ksync

// Semaphore is a counting semaphore built on Cond.
//
// It exists to exploit Cond's no-spurious-wakeup guarantee: Post transfers
// units to the oldest waiters before waking them, so a woken Wait returns
// immediately with its grant instead of racing other waiters to re-check
// the counter. Grants are strictly FIFO: a large request at the head of the
// line is never overtaken by a smaller one behind it.
//
// The zero value is a Semaphore with no units.
type Semaphore struct {
	mu   Mutex
	cond Cond

	count int

	// pending holds the unit counts requested by blocked waiters, oldest
	// first. Its order matches the cond's wait queue: both are appended to
	// under mu within a single Wait call.
	pending []int
}

// NewSemaphore returns a Semaphore holding units.
func NewSemaphore(units int) *Semaphore {
	return &Semaphore{count: units}
}

// Wait acquires n units, blocking until they are available.
func (s *Semaphore) Wait(n int) {
	if n <= 0 {
		panic("ksync: semaphore unit count must be positive")
	}
	s.mu.Acquire()
	if len(s.pending) == 0 && s.count >= n {
		s.count -= n
		s.mu.Release()
		return
	}
	s.pending = append(s.pending, n)

	// A single wait suffices: wakeups are never spurious, and the posting
	// side already moved our units out of the counter before waking us, so
	// there is nothing left to re-check.
	s.cond.Wait(&s.mu)
	s.mu.Release()
}

// TryWait acquires n units only if they are immediately available and no
// earlier waiter is blocked, and reports whether it did.
func (s *Semaphore) TryWait(n int) bool {
	if n <= 0 {
		panic("ksync: semaphore unit count must be positive")
	}
	s.mu.Acquire()
	ok := len(s.pending) == 0 && s.count >= n
	if ok {
		s.count -= n
	}
	s.mu.Release()
	return ok
}

// Post releases n units and wakes every waiter whose request they complete,
// in FIFO order. The units of each wakee are consumed here, on the posting
// side, before the wake is delivered.
func (s *Semaphore) Post(n int) {
	if n <= 0 {
		panic("ksync: semaphore unit count must be positive")
	}
	s.mu.Acquire()
	s.count += n
	wake := 0
	for len(s.pending) > 0 && s.pending[0] <= s.count {
		s.count -= s.pending[0]
		s.pending = s.pending[1:]
		wake++
	}
	s.mu.Release()

	for ; wake > 0; wake-- {
		s.cond.WakeOne()
	}
}
