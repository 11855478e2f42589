// Copyright 2018-present the CoreDHCP Authors. All rights reserved
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree.

// Package respo implements the resource-pool matching-and-leasing engine:
// an inventory of named pools of attribute-tagged resources, a declarative
// request/match algorithm, and exclusive per-pool leases with a
// wait/notify protocol for blocked requesters.
package respo

import "time"

// Resource is a single item inside a Pool, tagged with attributes used for
// pairing and an opaque property bag.
type Resource struct {
	Attributes []string          `yaml:"attributes" json:"attributes"`
	Properties map[string]string `yaml:"properties" json:"properties"`
}

// Pool is a named bundle of resources treated as one unit for locking. Only
// holder is ever mutated after the Inventory is constructed; it must only be
// touched while the owning Inventory's lock is held.
type Pool struct {
	Name       string     `yaml:"name" json:"name"`
	Attributes []string   `yaml:"attributes" json:"attributes"`
	Location   string     `yaml:"location" json:"location"`
	Resources  []Resource `yaml:"resources" json:"resources"`

	holder *Client
}

// PairingEntry is one element of a Pairing: a requested attribute set paired
// with the Resource that satisfies it.
type PairingEntry struct {
	Requested []string `json:"requested"`
	Resource  Resource `json:"resource"`
}

// ResourceRequest is the value object a Client submits to ask for a pool.
// Zero values of its optional fields mean "unconstrained".
type ResourceRequest struct {
	Location           string
	PoolAttributes     []string
	ResourceAttributes [][]string
	Timeout            *time.Duration
	ByName             string

	hasLocation       bool
	hasPoolAttributes bool
	hasByName         bool
}

// WithLocation constrains the request to pools at the given location.
func (r ResourceRequest) WithLocation(loc string) ResourceRequest {
	r.Location = loc
	r.hasLocation = true
	return r
}

// WithPoolAttributes constrains the request to pools whose attributes are a
// superset of attrs.
func (r ResourceRequest) WithPoolAttributes(attrs []string) ResourceRequest {
	r.PoolAttributes = attrs
	r.hasPoolAttributes = true
	return r
}

// WithByName constrains the request to the pool with the exact given name.
func (r ResourceRequest) WithByName(name string) ResourceRequest {
	r.ByName = name
	r.hasByName = true
	return r
}

// WithResourceAttributes appends one required attribute set to the request's
// resource pairing specification. May be called multiple times; each call
// appends, mirroring the repeatable resource_attributes query key accepted
// over HTTP.
func (r ResourceRequest) WithResourceAttributes(attrs []string) ResourceRequest {
	r.ResourceAttributes = append(append([][]string{}, r.ResourceAttributes...), attrs)
	return r
}

// WithTimeout sets the request's wait deadline, relative to submission time.
func (r ResourceRequest) WithTimeout(d time.Duration) ResourceRequest {
	r.Timeout = &d
	return r
}

func dup(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}

func duplicateResource(r Resource) Resource {
	props := make(map[string]string, len(r.Properties))
	for k, v := range r.Properties {
		props[k] = v
	}
	return Resource{Attributes: dup(r.Attributes), Properties: props}
}

// duplicatePool returns a deep copy of p, excluding holder (runtime-only).
// The copy reflects acquisition-time state and is never mutated afterward.
func duplicatePool(p *Pool) Pool {
	resources := make([]Resource, len(p.Resources))
	for i := range p.Resources {
		resources[i] = duplicateResource(p.Resources[i])
	}
	return Pool{
		Name:       p.Name,
		Attributes: dup(p.Attributes),
		Location:   p.Location,
		Resources:  resources,
	}
}
