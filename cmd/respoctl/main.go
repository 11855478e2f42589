// Copyright 2018-present the CoreDHCP Authors. All rights reserved
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree.

// Command respoctl is the resource-pool client tool: it locks a named pool,
// either momentarily (for maintenance) or for the duration of a spawned
// shell command. Mirrors original_source/src/client/bin/main.rs.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/thouters/respod/internal/client"
	"github.com/thouters/respod/internal/logger"
)

var log = logger.Get("respoctl")

func main() {
	var (
		serverURL string
		poolName  string
	)

	root := &cobra.Command{
		Use:           "respoctl",
		Short:         "Resource pool client tool",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&serverURL, "url", "u", os.Getenv("RP_SERVER"), "respod server URL (defaults to $RP_SERVER)")
	root.PersistentFlags().StringVarP(&poolName, "name", "n", "", "pool name to lock")

	lockCmd := &cobra.Command{
		Use:   "lock",
		Short: "Lock a pool for maintenance",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLock(serverURL, poolName)
		},
	}

	whileCmd := &cobra.Command{
		Use:   "while -- <cmd> [args...]",
		Short: "Lock a pool while the given shell command runs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWhile(serverURL, poolName, args)
		},
	}

	root.AddCommand(lockCmd, whileCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runLock(serverURL, poolName string) error {
	if serverURL == "" {
		return errors.New("respoctl: no server specified")
	}
	factory := client.NewFactory(serverURL)
	c := factory.Create("test_client")

	lease, err := c.Request(context.Background(), client.RemoteRequest{ByName: poolName})
	if err != nil {
		return fmt.Errorf("respoctl: lock failed: %w", err)
	}
	log.WithField("pool", lease.Pool.Name).Info("locked")
	return nil
}

func runWhile(serverURL, poolName string, shellCommand []string) error {
	if serverURL == "" {
		return errors.New("respoctl: no server specified")
	}
	if poolName == "" {
		return errors.New("respoctl: no pool name specified")
	}

	factory := client.NewFactory(serverURL)
	c := factory.Create(client.DefaultClientName())

	lease, err := c.Request(context.Background(), client.RemoteRequest{ByName: poolName})
	if err != nil {
		log.WithError(err).Error("an error occurred")
		return err
	}
	log.WithField("pool", lease.Pool.Name).Info("locked, running command")

	cmd := exec.Command(shellCommand[0], shellCommand[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("respoctl: child command failed: %w", err)
	}
	return nil
}
