package ksync

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestQueueOrder(t *testing.T) {
	q := NewQueue[int](4)
	for i := 1; i <= 4; i++ {
		require.NoError(t, q.Push(i))
	}
	for i := 1; i <= 4; i++ {
		x, err := q.Pop()
		require.NoError(t, err)
		require.Equal(t, i, x)
	}
}

func TestQueueBlocking(t *testing.T) {
	q := NewQueue[int](1)
	require.NoError(t, q.Push(1))

	pushed := make(chan error, 1)
	go func() {
		pushed <- q.Push(2)
	}()
	select {
	case <-pushed:
		t.Fatalf("Push into a full queue returned early")
	case <-time.After(20 * time.Millisecond):
	}

	x, err := q.Pop()
	require.NoError(t, err)
	require.Equal(t, 1, x)
	select {
	case err := <-pushed:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatalf("blocked Push not released after 1s")
	}

	x, err = q.Pop()
	require.NoError(t, err)
	require.Equal(t, 2, x)

	popped := make(chan int, 1)
	go func() {
		x, err := q.Pop()
		require.NoError(t, err)
		popped <- x
	}()
	select {
	case <-popped:
		t.Fatalf("Pop from an empty queue returned early")
	case <-time.After(20 * time.Millisecond):
	}
	require.NoError(t, q.Push(3))
	select {
	case x := <-popped:
		require.Equal(t, 3, x)
	case <-time.After(time.Second):
		t.Fatalf("blocked Pop not released after 1s")
	}
}

func TestQueueClose(t *testing.T) {
	q := NewQueue[int](2)
	require.NoError(t, q.Push(1))
	require.NoError(t, q.Push(2))

	// A producer blocked on the full queue is released with ErrClosed.
	pushed := make(chan error, 1)
	go func() {
		pushed <- q.Push(3)
	}()
	closed := make(chan struct{})
	consumers := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() {
			// Consume only after Close: buffered elements still drain.
			<-closed
			_, err := q.Pop()
			consumers <- err
		}()
	}

	q.Close()
	close(closed)
	select {
	case err := <-pushed:
		require.ErrorIs(t, err, ErrClosed)
	case <-time.After(time.Second):
		t.Fatalf("blocked Push not released after 1s")
	}
	for i := 0; i < 2; i++ {
		select {
		case err := <-consumers:
			require.NoError(t, err)
		case <-time.After(time.Second):
			t.Fatalf("consumer not released after 1s")
		}
	}

	_, err := q.Pop()
	require.ErrorIs(t, err, ErrClosed)
	require.ErrorIs(t, q.Push(4), ErrClosed)

	// Close is idempotent.
	q.Close()
}

func TestQueueConcurrent(t *testing.T) {
	q := NewQueue[int](8)

	const (
		producers = 4
		perP      = 250
	)
	var g errgroup.Group
	for i := 0; i < producers; i++ {
		g.Go(func() error {
			for j := 1; j <= perP; j++ {
				if err := q.Push(j); err != nil {
					return err
				}
			}
			return nil
		})
	}

	var (
		sum  int64
		recv errgroup.Group
	)
	sums := make(chan int64, producers)
	for i := 0; i < producers; i++ {
		recv.Go(func() error {
			var s int64
			for {
				x, err := q.Pop()
				if err != nil {
					sums <- s
					return nil
				}
				s += int64(x)
			}
		})
	}

	require.NoError(t, g.Wait())
	q.Close()
	require.NoError(t, recv.Wait())
	close(sums)
	for s := range sums {
		sum += s
	}
	require.EqualValues(t, producers*perP*(perP+1)/2, sum)
}

func TestQueueSizeValidation(t *testing.T) {
	require.Panics(t, func() { NewQueue[int](0) })
}
