// Copyright 2018-present the CoreDHCP Authors. All rights reserved
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree.

package respo

import (
	"sync"
	"time"

	"github.com/thouters/respod/internal/logger"
)

var log = logger.Get("respo")

// DefaultLeaseTime is used until a per-pool or per-request lease time is
// configurable; ported verbatim from original_source/src/inventory.rs's
// DEFAULT_LEASE_TIME constant (its own TODO to read this from config is
// carried forward, unresolved, rather than silently invented here).
const DefaultLeaseTime = 1234 * time.Second

// Inventory is the mutable catalogue of pools, protected by a single coarse
// lock rather than per-pool locks: matching walks every pool on each
// attempt anyway, so a finer-grained scheme buys nothing. Its composition
// (the pools and their resource lists) is immutable after NewInventory;
// only each Pool's holder may change, and only from here.
type Inventory struct {
	mu    sync.Mutex
	pools []*Pool
}

// NewInventory builds an Inventory from a fixed list of pools. The slice is
// copied by reference to pointers so that TryAcquire can mutate holder
// in place; callers must not retain pointers into pools after this call.
func NewInventory(pools []*Pool) *Inventory {
	cp := make([]*Pool, len(pools))
	copy(cp, pools)
	return &Inventory{pools: cp}
}

// TryAcquire scans pools in declared order and returns the first one that
// passes poolMatches, yields a successful pairing if resource_attributes
// was requested, and is currently unheld. It never suspends and is the
// only mutator of Pool.holder.
//
// Failure ordering: InUse dominates Impossible — if any candidate pool
// passed poolMatches but was held (or failed its holder check on the
// pairing path, see DESIGN.md for the pairing/holder design decision),
// the caller is told to wait rather than that it's hopeless.
func (inv *Inventory) TryAcquire(req *ResourceRequest, client *Client, coord *coordinator) (*PoolLease, error) {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	ultimateFailure := ErrImpossible

	for _, pool := range inv.pools {
		if !poolMatches(pool, req) {
			continue // Skipped
		}

		var pairing []PairingEntry
		if len(req.ResourceAttributes) > 0 {
			solved, ok := solvePairing(pool, req.ResourceAttributes)
			if !ok {
				continue // Skipped: no pairing possible in this pool
			}
			pairing = solved
		}

		if pool.holder != nil {
			log.WithField("pool", pool.Name).Debug("item is in use")
			ultimateFailure = ErrInUse // Candidate-Held
			continue
		}

		// Candidate-Free or Candidate-Paired: claim it.
		log.WithField("pool", pool.Name).WithField("client", client.Name).Debug("claiming item")
		pool.holder = client
		return &PoolLease{
			LeaseTime: DefaultLeaseTime,
			Pool:      duplicatePool(pool),
			Pairing:   pairing,
			coord:     coord,
			source:    pool,
			inv:       inv,
			client:    client,
		}, nil
	}

	return nil, ultimateFailure
}

// release clears the holder of the pool backing lease, under the
// Inventory's lock. Called exactly once, from PoolLease.Close.
func (inv *Inventory) release(pool *Pool, client *Client) {
	inv.mu.Lock()
	if pool.holder == client {
		pool.holder = nil
	}
	inv.mu.Unlock()
}
