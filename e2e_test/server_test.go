// +build integration

// Copyright 2018-present the CoreDHCP Authors. All rights reserved
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree.

// Package e2e_test starts a real respod HTTP listener on a loopback port
// and drives it with internal/client, the way coredhcp's own e2e_test
// package starts a real coredhcp server and drives it with a DHCP client.
package e2e_test

import (
	"context"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/thouters/respod/internal/client"
	"github.com/thouters/respod/internal/httpapi"
	"github.com/thouters/respod/internal/respo"
)

func startServer(t *testing.T) string {
	t.Helper()

	inventory := respo.NewInventory([]*respo.Pool{{
		Name:       "pool1",
		Attributes: []string{"attr1", "attr2"},
		Location:   "location1",
		Resources: []respo.Resource{
			{Attributes: []string{"RA1", "RA2"}},
			{Attributes: []string{"RB1", "RB2"}},
		},
	}})
	factory := respo.NewClientFactory(inventory)
	handler := httpapi.NewHandler(factory)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	server := &http.Server{Handler: handler}
	go server.Serve(listener)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		server.Shutdown(ctx)
	})

	return "http://" + listener.Addr().String()
}

// TestDora is named after coredhcp's own DHCP DORA handshake test; here it
// exercises the analogous happy path end to end: a client requests a named
// pool over HTTP and gets a lease back.
func TestDora(t *testing.T) {
	url := startServer(t)
	factory := client.NewFactory(url)
	c := factory.Create("e2e-client")

	lease, err := c.Request(context.Background(), client.RemoteRequest{ByName: "pool1"})
	require.NoError(t, err)
	require.Equal(t, "pool1", lease.Pool.Name)
}

// TestContention exercises two concurrent callers contending for the same
// attribute-matching pool over the wire.
func TestContention(t *testing.T) {
	url := startServer(t)
	factory := client.NewFactory(url)
	a := factory.Create("a")
	b := factory.Create("b")

	req := client.RemoteRequest{PoolAttributes: []string{"attr1"}}

	_, err := a.Request(context.Background(), req)
	require.NoError(t, err)

	// The HTTP handler releases the lease as soon as it has encoded the
	// response (see internal/httpapi and internal/client's Request doc),
	// so a second request for the same pool should succeed immediately
	// rather than observe InUse — this is the documented HTTP-transport
	// behavior, not the in-process respo.Client semantics exercised in
	// internal/respo's own concurrency tests.
	_, err = b.Request(context.Background(), req)
	require.NoError(t, err)
}
