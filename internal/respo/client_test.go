// Copyright 2018-present the CoreDHCP Authors. All rights reserved
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree.

package respo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// Two clients requesting pool_attributes=["attr1"] concurrently: A acquires
// first and holds the pool, and B's outcome depends on what timeout it
// supplies:
//
//	(a) no timeout    -> InUse immediately
//	(b) short timeout -> TimeOut before A releases
//	(c) long timeout  -> Ok once A releases
func TestConcurrentContentionTimeoutPaths(t *testing.T) {
	req := ResourceRequest{}.WithPoolAttributes([]string{"attr1"})

	t.Run("no timeout returns InUse immediately", func(t *testing.T) {
		inv := buildSampleInventory()
		factory := NewClientFactory(inv)
		a := factory.Create("a")
		b := factory.Create("b")

		leaseA, err := a.Request(context.Background(), req)
		require.NoError(t, err)
		defer leaseA.Close()

		_, err = b.Request(context.Background(), req)
		require.ErrorIs(t, err, ErrInUse)
	})

	t.Run("short timeout times out before release", func(t *testing.T) {
		inv := buildSampleInventory()
		factory := NewClientFactory(inv)
		a := factory.Create("a")
		b := factory.Create("b")

		leaseA, err := a.Request(context.Background(), req)
		require.NoError(t, err)
		go func() {
			time.Sleep(300 * time.Millisecond)
			leaseA.Close()
		}()

		start := time.Now()
		_, err = b.Request(context.Background(), req.WithTimeout(100*time.Millisecond))
		elapsed := time.Since(start)
		require.ErrorIs(t, err, ErrTimeout)
		require.GreaterOrEqual(t, elapsed, 100*time.Millisecond)
	})

	t.Run("long timeout succeeds after release", func(t *testing.T) {
		inv := buildSampleInventory()
		factory := NewClientFactory(inv)
		a := factory.Create("a")
		b := factory.Create("b")

		leaseA, err := a.Request(context.Background(), req)
		require.NoError(t, err)

		released := time.Now()
		go func() {
			time.Sleep(200 * time.Millisecond)
			released = time.Now()
			leaseA.Close()
		}()

		lease, err := b.Request(context.Background(), req.WithTimeout(2*time.Second))
		require.NoError(t, err)
		defer lease.Close()
		// The waiter wakes promptly after release, not only at the
		// deadline.
		require.WithinDuration(t, released, time.Now(), 500*time.Millisecond)
	})
}

// A waiter whose notification handle was captured before a release
// always observes the wake-up; verified here via many concurrent waiters.
func TestBroadcastWakesAllWaiters(t *testing.T) {
	inv := buildSampleInventory()
	factory := NewClientFactory(inv)
	owner := factory.Create("owner")
	lease, err := owner.Request(context.Background(), ResourceRequest{}.WithByName("pool1"))
	require.NoError(t, err)

	const waiters = 5
	results := make(chan error, waiters)
	for i := 0; i < waiters; i++ {
		go func() {
			c := factory.Create("waiter")
			req := ResourceRequest{}.WithByName("pool1").WithTimeout(2 * time.Second)
			l, err := c.Request(context.Background(), req)
			if err == nil {
				l.Close()
			}
			results <- err
		}()
	}

	time.Sleep(100 * time.Millisecond) // let waiters register their capture
	lease.Close()

	successes := 0
	for i := 0; i < waiters; i++ {
		err := <-results
		if err == nil {
			successes++
		}
	}
	// Broadcast wakes all waiters; exactly one wins the re-scan under the
	// inventory lock per round, but with everyone retrying promptly and the
	// deadline generous, all should eventually succeed serially.
	require.Equal(t, waiters, successes)
}

// Cancelling the context aborts an in-flight wait cleanly without mutating
// pool state.
func TestRequestContextCancellation(t *testing.T) {
	inv := buildSampleInventory()
	factory := NewClientFactory(inv)
	a := factory.Create("a")
	b := factory.Create("b")

	lease, err := a.Request(context.Background(), ResourceRequest{}.WithByName("pool1"))
	require.NoError(t, err)
	defer lease.Close()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	req := ResourceRequest{}.WithByName("pool1").WithTimeout(5 * time.Second)
	_, err = b.Request(ctx, req)
	require.ErrorIs(t, err, context.Canceled)
}
