// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the wallet runtime.
//
// It opens (or creates, or restores) the engine's wallet, waits for the
// initial sync, and then runs the local API next to the sync coordinator
// until the process is asked to stop.
package client
