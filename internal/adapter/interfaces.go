// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter connects the engine gateway to a wallet engine running out
// of process.
//
// The engine is reached through a small HTTP bridge that forwards every
// command string to the engine's single entry point and answers with the
// engine's raw result. [EngineBridge] carries both that entry point and the
// wallet lifecycle calls; results are passed through untouched so that the
// gateway alone decides what counts as an engine error.
//
// Transport failures are mapped from HTTP status codes by mapHTTPError so that
// callers can use [errors.Is] (e.g. [ErrServiceUnavailable] for 503).
package adapter

import "github.com/MKhiriev/go-lite-wallet/internal/engine"

// EngineBridge is the out-of-process engine: its command entry point plus the
// calls that open and close a wallet.
type EngineBridge interface {
	engine.Executor
	engine.Lifecycle
}
