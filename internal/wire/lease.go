// Copyright 2018-present the CoreDHCP Authors. All rights reserved
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree.

// Package wire is the JSON contract shared by the HTTP server
// (internal/httpapi) and the remote client (internal/client) for a
// successful lease response. Keeping it in one place means both sides
// decode/encode the exact same shape.
package wire

import "github.com/thouters/respod/internal/respo"

// ResourceResponse is the wire shape of a respo.Resource.
type ResourceResponse struct {
	Attributes []string          `json:"attributes"`
	Properties map[string]string `json:"properties"`
}

// PairingEntryResponse is the wire shape of one respo.PairingEntry.
type PairingEntryResponse struct {
	Requested []string         `json:"requested"`
	Resource  ResourceResponse `json:"resource"`
}

// PoolResponse is the wire shape of a respo.Pool snapshot.
type PoolResponse struct {
	Name       string             `json:"name"`
	Attributes []string           `json:"attributes"`
	Location   string             `json:"location"`
	Resources  []ResourceResponse `json:"resources"`
}

// LeaseResponse is the wire shape of a successful respo.PoolLease.
type LeaseResponse struct {
	LeaseTime float64                `json:"leasetime"`
	Pool      PoolResponse           `json:"pool"`
	Pairing   []PairingEntryResponse `json:"pairing,omitempty"`
}

// NewLeaseResponse converts a live PoolLease into its wire representation.
func NewLeaseResponse(l *respo.PoolLease) LeaseResponse {
	resources := make([]ResourceResponse, len(l.Pool.Resources))
	for i, r := range l.Pool.Resources {
		resources[i] = ResourceResponse{Attributes: r.Attributes, Properties: r.Properties}
	}

	var pairing []PairingEntryResponse
	if len(l.Pairing) > 0 {
		pairing = make([]PairingEntryResponse, len(l.Pairing))
		for i, p := range l.Pairing {
			pairing[i] = PairingEntryResponse{
				Requested: p.Requested,
				Resource:  ResourceResponse{Attributes: p.Resource.Attributes, Properties: p.Resource.Properties},
			}
		}
	}

	return LeaseResponse{
		LeaseTime: l.LeaseTime.Seconds(),
		Pool: PoolResponse{
			Name:       l.Pool.Name,
			Attributes: l.Pool.Attributes,
			Location:   l.Pool.Location,
			Resources:  resources,
		},
		Pairing: pairing,
	}
}
