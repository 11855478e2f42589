// Copyright 2018-present the CoreDHCP Authors. All rights reserved
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree.

package respo

import (
	"context"
	"time"
)

// Client is a per-caller session bundling an identity, a reference to the
// shared Inventory, and a handle to the shared wait coordinator. It
// implements the retry/timeout loop for blocked requests. Outlives the
// leases it produces.
type Client struct {
	Name      string
	inventory *Inventory
	coord     *coordinator
}

// Request attempts to acquire a lease matching req, retrying across
// coordinator wake-ups until either a lease is obtained, a terminal
// non-retryable error occurs, or (if req.Timeout is set) the deadline
// elapses. With no timeout, an InUse result is returned immediately
// instead of waiting.
//
// Cancelling ctx aborts any in-flight wait cleanly; no pool state changes.
func (c *Client) Request(ctx context.Context, req ResourceRequest) (*PoolLease, error) {
	var deadline <-chan time.Time
	if req.Timeout != nil {
		timer := time.NewTimer(*req.Timeout)
		defer timer.Stop()
		deadline = timer.C
	}

	for {
		// Capture the notification handle BEFORE calling TryAcquire so a
		// release racing between the attempt and the wait is never missed.
		woken := c.coord.snapshot()

		lease, err := c.inventory.TryAcquire(&req, c, c.coord)
		if err == nil {
			return lease, nil
		}

		switch err {
		case ErrInUse:
			if req.Timeout == nil {
				return nil, ErrInUse
			}
			select {
			case <-woken:
				continue // retry
			case <-deadline:
				return nil, ErrTimeout
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		default:
			return nil, err
		}
	}
}
