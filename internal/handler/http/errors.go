// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

var (
	// ErrInvalidJSON is reported when a request body cannot be decoded.
	ErrInvalidJSON = errors.New("invalid JSON was passed")

	// ErrInvalidQueryParam is reported for a query parameter with a value
	// the endpoint does not accept.
	ErrInvalidQueryParam = errors.New("invalid query parameter")

	// ErrUnknownAddressType is reported for an address type other than
	// unified, sapling or transparent.
	ErrUnknownAddressType = errors.New("unknown address type")
)
