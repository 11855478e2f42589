// Copyright 2018-present the CoreDHCP Authors. All rights reserved
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree.

// Command respod is the resource-pool leasing server: it loads an
// inventory document, builds the Inventory and ClientFactory, and serves
// a single-URL HTTP endpoint for resource requests. Mirrors
// original_source/src/server/bin/main.rs.
package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/thouters/respod/internal/config"
	"github.com/thouters/respod/internal/httpapi"
	"github.com/thouters/respod/internal/logger"
	"github.com/thouters/respod/internal/respo"
)

// serverShutdownGrace bounds how long respod waits for in-flight requests
// to finish once a shutdown signal arrives.
const serverShutdownGrace = 5 * time.Second

var log = logger.Get("respod")

func defaultConfigPath() string {
	wd, err := os.Getwd()
	if err != nil {
		return "respod.yaml"
	}
	return filepath.Join(wd, "respod.yaml")
}

func main() {
	var (
		configPath string
		logPath    string
		listenAddr string
	)

	root := &cobra.Command{
		Use:   "respod",
		Short: "Resource pool leasing server",
	}

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Serve the resource pool leasing HTTP endpoint",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(configPath, logPath, listenAddr)
		},
	}
	serve.Flags().StringVarP(&configPath, "config-path", "c", defaultConfigPath(), "inventory configuration file")
	serve.Flags().StringVarP(&logPath, "log", "l", "", "logfile path")
	serve.Flags().StringVar(&listenAddr, "listen", "127.0.0.1:3000", "HTTP listen address")

	root.AddCommand(serve)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runServe(configPath, logPath, listenAddr string) error {
	if logPath != "" {
		if err := logger.AddFileSink(logPath); err != nil {
			return fmt.Errorf("respod: opening log file: %w", err)
		}
	}

	if _, err := os.Stat(configPath); err != nil {
		return fmt.Errorf("respod: config file does not exist: %w", err)
	}
	f, err := os.Open(configPath)
	if err != nil {
		return fmt.Errorf("respod: opening config file: %w", err)
	}
	defer f.Close()

	doc, err := config.Load(f)
	if err != nil {
		return err
	}

	inventory := doc.ToInventory()
	factory := respo.NewClientFactory(inventory)
	handler := httpapi.NewHandler(factory)

	listener, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return fmt.Errorf("respod: binding %s: %w", listenAddr, err)
	}

	server := &http.Server{Handler: handler}
	log.WithField("addr", listenAddr).WithField("config", configPath).Info("serving")

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Serve(listener)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), serverShutdownGrace)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return logShutdownErr(err)
		}
		return nil
	}
}

func logShutdownErr(err error) error {
	log.WithError(err).Error("error during shutdown")
	return err
}
