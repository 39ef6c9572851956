// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package engine provides a typed facade over the wallet engine's single
// string command entry point.
//
// The engine accepts a command name and an argument and answers with a string
// that is either JSON, a bare "OK" acknowledgement or text beginning with
// "Error". [Gateway] turns that into typed results and [*EngineError] values.
// It never retries, caches or interprets domain state.
package engine
