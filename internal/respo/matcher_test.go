// Copyright 2018-present the CoreDHCP Authors. All rights reserved
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree.

package respo

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSubset(t *testing.T) {
	require.True(t, subset(nil, []string{"a"}))
	require.True(t, subset([]string{"a"}, []string{"a", "b"}))
	require.False(t, subset([]string{"a", "c"}, []string{"a", "b"}))
	require.True(t, subset([]string{"a", "a"}, []string{"a"}))
}

func samplePool() *Pool {
	return &Pool{
		Name:       "pool1",
		Attributes: []string{"attr1", "attr2"},
		Location:   "location1",
		Resources: []Resource{
			{Attributes: []string{"RA1", "RA2"}},
			{Attributes: []string{"RB1", "RB2"}},
		},
	}
}

func TestPoolMatches(t *testing.T) {
	p := samplePool()

	ok := ResourceRequest{}.WithPoolAttributes([]string{"attr1"})
	require.True(t, poolMatches(p, &ok))

	nokAttrs := ResourceRequest{}.WithPoolAttributes([]string{"attr3"})
	require.False(t, poolMatches(p, &nokAttrs))

	nokLoc := ResourceRequest{}.WithLocation("abroad").WithPoolAttributes([]string{"attr1"})
	require.False(t, poolMatches(p, &nokLoc))

	byName := ResourceRequest{}.WithByName("pool1")
	require.True(t, poolMatches(p, &byName))

	wrongName := ResourceRequest{}.WithByName("pool_not_there")
	require.False(t, poolMatches(p, &wrongName))
}

func TestSolvePairing(t *testing.T) {
	p := samplePool()

	pairing, ok := solvePairing(p, [][]string{{"RA1"}})
	require.True(t, ok)
	require.Len(t, pairing, 1)
	require.Equal(t, []string{"RA1", "RA2"}, pairing[0].Resource.Attributes)

	_, ok = solvePairing(p, [][]string{{"doesnotexist"}})
	require.False(t, ok)

	// Two specs that both could match RA1/RA2 must not double-assign the
	// same resource (first-fit, first spec wins it).
	pairing, ok = solvePairing(p, [][]string{{"RA1"}, {"RA1"}})
	require.False(t, ok)

	pairing, ok = solvePairing(p, [][]string{{"RA1"}, {"RB1"}})
	require.True(t, ok)
	require.Len(t, pairing, 2)
}
