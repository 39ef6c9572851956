// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// AddressBookEntry is a user-assigned label for a counterparty address.
type AddressBookEntry struct {
	Label   string `json:"label"`
	Address string `json:"address"`
}
