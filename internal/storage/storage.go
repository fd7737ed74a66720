// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package storage provides the key/value stores that stand in for the
// browser's local and session storage.
//
// Three implementations share the Store contract: Keyring keeps values in the
// OS credential store, Bolt keeps them in a bbolt file (one bucket per scope),
// and Memory keeps them in process memory. All of them are safe for
// concurrent use; concurrent writers follow last-writer-wins.
package storage

import "errors"

// ErrNotFound is returned by Get when the key holds no value.
var ErrNotFound = errors.New("storage: key not found")

// Store is a string key/value store.
type Store interface {
	// Get returns the value for key, or ErrNotFound.
	Get(key string) (string, error)
	// Set stores value under key, replacing any previous value.
	Set(key, value string) error
	// Remove deletes key. Removing a missing key is not an error.
	Remove(key string) error
}

// Scope names used for bucket and prefix separation.
const (
	ScopeLocal   = "local"
	ScopeSession = "session"
)

// Backend names accepted by configuration.
const (
	BackendKeyring = "keyring"
	BackendBolt    = "bolt"
	BackendMemory  = "memory"
)
