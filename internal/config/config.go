// Copyright 2018-present the CoreDHCP Authors. All rights reserved
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree.

// Package config loads the initial Inventory from a structured YAML
// document, using spf13/viper the same way coredhcp's own go.mod (a
// direct, non-indirect dependency on viper) builds its configuration
// story.
package config

import (
	"fmt"
	"io"

	"github.com/spf13/viper"

	"github.com/thouters/respod/internal/logger"
	"github.com/thouters/respod/internal/respo"
)

var log = logger.Get("config")

// ResourceDocument is the on-disk shape of one Resource entry.
type ResourceDocument struct {
	Attributes []string          `mapstructure:"attributes"`
	Properties map[string]string `mapstructure:"properties"`
}

// PoolDocument is the on-disk shape of one Pool entry. No holder field
// appears here; holders are runtime-only state, never persisted.
type PoolDocument struct {
	Name       string             `mapstructure:"name"`
	Attributes []string           `mapstructure:"attributes"`
	Location   string             `mapstructure:"location"`
	Resources  []ResourceDocument `mapstructure:"resources"`
}

// Document is the top-level on-disk inventory document.
type Document struct {
	Pools []PoolDocument `mapstructure:"pools"`
}

// Load parses r as a YAML inventory document.
func Load(r io.Reader) (*Document, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("config: reading inventory document: %w", err)
	}

	var doc Document
	if err := v.Unmarshal(&doc); err != nil {
		return nil, fmt.Errorf("config: decoding inventory document: %w", err)
	}
	log.WithField("pools", len(doc.Pools)).Info("loaded inventory document")
	return &doc, nil
}

// ToInventory converts a parsed Document into a ready-to-use
// respo.Inventory. The resulting pools and resources are immutable after
// this call; only lease state changes from here on.
func (d *Document) ToInventory() *respo.Inventory {
	pools := make([]*respo.Pool, len(d.Pools))
	for i, pd := range d.Pools {
		resources := make([]respo.Resource, len(pd.Resources))
		for j, rd := range pd.Resources {
			resources[j] = respo.Resource{
				Attributes: rd.Attributes,
				Properties: rd.Properties,
			}
		}
		pools[i] = &respo.Pool{
			Name:       pd.Name,
			Attributes: pd.Attributes,
			Location:   pd.Location,
			Resources:  resources,
		}
	}
	return respo.NewInventory(pools)
}
