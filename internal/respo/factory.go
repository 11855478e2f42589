// Copyright 2018-present the CoreDHCP Authors. All rights reserved
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree.

package respo

// ClientFactory constructs Client sessions that all share one Inventory and
// one wait coordinator. Every Client created by the same factory
// participates in the same notification domain, which is essential for
// exclusivity to hold across clients: constructing a fresh factory per
// client silos the notification domain, so a releasing client would never
// wake a waiter on a different factory.
type ClientFactory struct {
	inventory *Inventory
	coord     *coordinator
}

// NewClientFactory builds a factory bound to inv, with a fresh wait
// coordinator shared by every Client it subsequently creates.
func NewClientFactory(inv *Inventory) *ClientFactory {
	return &ClientFactory{
		inventory: inv,
		coord:     newCoordinator(),
	}
}

// Create returns a new named Client sharing this factory's Inventory and
// wait coordinator.
func (f *ClientFactory) Create(name string) *Client {
	return &Client{
		Name:      name,
		inventory: f.inventory,
		coord:     f.coord,
	}
}
