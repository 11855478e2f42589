// Copyright 2018-present the CoreDHCP Authors. All rights reserved
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree.

package respo

import "errors"

// Terminal outcomes of a lease request. ErrImpossible and ErrTimeout are
// surfaced to the caller unchanged; ErrInUse is absorbed by the client
// retry loop whenever a timeout was supplied, and only escapes to the
// caller when the request had none.
var (
	// ErrImpossible means no pool could ever satisfy the request given the
	// current inventory composition. Not retryable by waiting.
	ErrImpossible = errors.New("respo: no pool can satisfy this request")

	// ErrInUse means at least one pool matches the filters but is currently
	// held. Retryable; only returned to a caller that specified no timeout.
	ErrInUse = errors.New("respo: matching pool is in use")

	// ErrTimeout means the deadline elapsed while waiting for an in-use
	// pool to free up.
	ErrTimeout = errors.New("respo: timed out waiting for a pool")
)
