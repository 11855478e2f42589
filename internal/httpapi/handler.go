// Copyright 2018-present the CoreDHCP Authors. All rights reserved
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree.

// Package httpapi is the external HTTP boundary: a single URL (any path)
// whose query string encodes a ResourceRequest. It is intentionally the
// thinnest possible wrapper around internal/respo, carrying no logic beyond
// query decoding and JSON encoding.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cast"

	"github.com/thouters/respod/internal/logger"
	"github.com/thouters/respod/internal/respo"
	"github.com/thouters/respod/internal/wire"
)

var log = logger.Get("httpapi")

// Handler serves the single-URL resource request endpoint.
type Handler struct {
	factory *respo.ClientFactory
}

// NewHandler builds a Handler creating one respo.Client per request from
// factory.
func NewHandler(factory *respo.ClientFactory) *Handler {
	return &Handler{factory: factory}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	if len(query) == 0 {
		http.Error(w, "No value specified", http.StatusBadRequest)
		return
	}

	req, clientName, err := parseRequest(query)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	client := h.factory.Create(clientName)
	log.WithField("client", clientName).WithField("request", req).Debug("handling resource request")

	lease, err := client.Request(r.Context(), req)
	if err != nil {
		writeLeaseError(w, err)
		return
	}
	defer lease.Close()

	resp := wire.NewLeaseResponse(lease)
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(resp); err != nil {
		log.WithError(err).Error("encoding lease response")
	}
}

// recognizedKeys are the only accepted query keys; anything else is a 400.
var recognizedKeys = map[string]bool{
	"client_name":         true,
	"location":            true,
	"by_name":             true,
	"pool_attributes":     true,
	"resource_attributes": true,
	"timeout":             true,
}

func parseRequest(query map[string][]string) (respo.ResourceRequest, string, error) {
	req := respo.ResourceRequest{}
	clientName := "no-name"

	for key, values := range query {
		if !recognizedKeys[key] {
			return req, "", errors.New("key not recognised: " + key)
		}
		for _, value := range values {
			switch key {
			case "client_name":
				clientName = value
			case "location":
				req = req.WithLocation(value)
			case "by_name":
				req = req.WithByName(value)
			case "pool_attributes":
				req = req.WithPoolAttributes(splitCSV(value))
			case "resource_attributes":
				req = req.WithResourceAttributes(splitCSV(value))
			case "timeout":
				seconds, err := cast.ToIntE(value)
				if err != nil {
					return req, "", err
				}
				req = req.WithTimeout(time.Duration(seconds) * time.Second)
			}
		}
	}
	return req, clientName, nil
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// writeLeaseError reports a lease-layer failure. Preserves the source
// behavior of a plain HTTP 200 with a descriptive text body rather than a
// dedicated status code for InUse/Impossible (see DESIGN.md for why this
// is kept as-is); a cancelled or expired request context does get its own
// 408, since that's a transport-layer condition, not a lease-layer one.
func writeLeaseError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		http.Error(w, "request cancelled: "+err.Error(), http.StatusRequestTimeout)
	default:
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("got an error: " + err.Error()))
	}
}
