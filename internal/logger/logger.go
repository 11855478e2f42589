// Copyright 2018-present the CoreDHCP Authors. All rights reserved
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree.

// Package logger is a thin per-component logger registry modeled on
// coredhcp's own logger package, as used from
// plugins/leasestorage/transient/leases.go:
//
//	var log = logger.GetLogger("plugins/leasestorage/transient")
//
// Every component in respod (internal/respo, internal/httpapi,
// internal/config, cmd/respod, cmd/respoctl) calls Get with its own name
// and logs through the returned *logrus.Entry, which carries the component
// name as a structured field and, via the prefixed formatter, as a
// bracketed line prefix.
package logger

import (
	"os"

	"github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
)

var root = logrus.New()

func init() {
	root.SetFormatter(&prefixed.TextFormatter{
		ForceFormatting: true,
		FullTimestamp:   true,
	})
	root.SetOutput(os.Stderr)
}

// Get returns a logger for the named component. component is attached as
// the structured "prefix" field, which the prefixed formatter renders as the
// line prefix and which a structured sink (JSON, etc.) would still carry as
// an ordinary field.
func Get(component string) *logrus.Entry {
	return root.WithField("prefix", component)
}

// SetLevel adjusts the verbosity of every component logger.
func SetLevel(level logrus.Level) {
	root.SetLevel(level)
}

// AddFileSink attaches a secondary sink that duplicates every log line to
// path, regardless of level. Mirrors the --log <path> flag accepted by
// original_source/src/server/bin/main.rs (Cli.log).
func AddFileSink(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	root.AddHook(newFileHook(f))
	return nil
}
