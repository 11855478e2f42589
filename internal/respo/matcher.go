// Copyright 2018-present the CoreDHCP Authors. All rights reserved
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree.

package respo

// subset reports whether every element of a appears in b. Case-sensitive;
// duplicate entries on either side do not change the outcome.
func subset(a, b []string) bool {
	for _, want := range a {
		found := false
		for _, have := range b {
			if want == have {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// poolMatches is the conjunction of a request's filters: by_name, then
// location, then pool_attributes. All three are optional; an unset filter
// always passes.
func poolMatches(p *Pool, r *ResourceRequest) bool {
	if r.hasByName && r.ByName != p.Name {
		return false
	}
	if r.hasLocation && r.Location != p.Location {
		return false
	}
	if r.hasPoolAttributes && !subset(r.PoolAttributes, p.Attributes) {
		return false
	}
	return true
}

// solvePairing greedily assigns one resource to each requested attribute
// set, first-fit in order of specs: for each spec, the first not-yet-used
// resource satisfying the subset check is taken. Not guaranteed optimal —
// an earlier spec can claim a resource a later spec needed more — and a
// spec with no available resource fails the whole pairing.
func solvePairing(p *Pool, specs [][]string) ([]PairingEntry, bool) {
	used := make([]bool, len(p.Resources))
	pairing := make([]PairingEntry, 0, len(specs))

	for _, spec := range specs {
		matched := -1
		for i, res := range p.Resources {
			if used[i] {
				continue
			}
			if subset(spec, res.Attributes) {
				matched = i
				break
			}
		}
		if matched == -1 {
			return nil, false
		}
		used[matched] = true
		pairing = append(pairing, PairingEntry{
			Requested: dup(spec),
			Resource:  duplicateResource(p.Resources[matched]),
		})
	}
	return pairing, true
}
