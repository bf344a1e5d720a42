package ksync

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestMutexTryAcquire(t *testing.T) {
	var m Mutex
	require.True(t, m.TryAcquire())
	require.False(t, m.TryAcquire())
	m.Release()
	require.True(t, m.TryAcquire())
	m.Release()
}

func TestSpinLockMutualExclusion(t *testing.T) {
	var (
		s SpinLock
		n int
	)
	const (
		workers = 8
		rounds  = 1000
	)
	var g errgroup.Group
	for i := 0; i < workers; i++ {
		g.Go(func() error {
			for j := 0; j < rounds; j++ {
				s.Acquire()
				n++
				s.Release()
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
	require.Equal(t, workers*rounds, n)
}

func TestSpinLockTryAcquire(t *testing.T) {
	var s SpinLock
	require.True(t, s.TryAcquire())
	require.False(t, s.TryAcquire())
	s.Release()
	require.True(t, s.TryAcquire())
	s.Release()
}

func TestSpinLockReleaseUnheld(t *testing.T) {
	var s SpinLock
	require.Panics(t, func() { s.Release() })
}

func TestAsLock(t *testing.T) {
	var mu sync.Mutex
	l := AsLock(&mu)

	l.Acquire()
	require.False(t, mu.TryLock(), "adapter must drive the underlying locker")
	l.Release()
	require.True(t, mu.TryLock())
	mu.Unlock()

	_, ok := l.(TryLock)
	require.False(t, ok)
}
