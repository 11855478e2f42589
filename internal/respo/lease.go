// Copyright 2018-present the CoreDHCP Authors. All rights reserved
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree.

package respo

import (
	"sync"
	"time"
)

// PoolLease is the token handed back on a successful TryAcquire. It is a
// scoped resource: Go has no destructors, so release is an explicit Close,
// which callers should always defer immediately after a successful Request.
// Close is idempotent and safe to call more than once.
type PoolLease struct {
	LeaseTime time.Duration
	Pool      Pool // snapshot at acquisition time; never mutated afterward
	Pairing   []PairingEntry

	coord  *coordinator
	source *Pool // the live Pool this lease holds, for releasing holder
	inv    *Inventory
	client *Client
	once   sync.Once
}

// Close releases the lease: clears the backing Pool's holder and broadcasts
// to every waiter that captured a coordinator handle before this call. The
// broadcast mirrors PoolLease's Drop impl in original_source/src/lib.rs,
// which only notifies waiters; clearing holder explicitly is the Go
// replacement for the weak holder reference used there.
func (l *PoolLease) Close() {
	l.once.Do(func() {
		l.inv.release(l.source, l.client)
		log.WithField("pool", l.Pool.Name).Debug("notifying waiters")
		l.coord.broadcast()
	})
}
