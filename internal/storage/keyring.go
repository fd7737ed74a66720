// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package storage

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"sync"

	"github.com/99designs/keyring"
)

// ServiceName identifies our keychain/credential store namespace.
const ServiceName = "vitrine"

// KeyringConfig selects how the OS credential store is opened.
type KeyringConfig struct {
	// Scope prefixes every key so local and session values never collide.
	Scope string
	// FileDir is used by the encrypted-file backend on systems without a
	// native credential store.
	FileDir string
	// FilePassphrase unlocks the encrypted-file backend.
	FilePassphrase string
}

// Keyring is a Store backed by the OS credential store.
type Keyring struct {
	mu     sync.RWMutex
	ring   keyring.Keyring
	prefix string
}

var _ Store = (*Keyring)(nil)

// NewKeyring wraps an already opened keyring.
func NewKeyring(ring keyring.Keyring, scope string) *Keyring {
	prefix := ""
	if scope != "" {
		prefix = scope + ":"
	}
	return &Keyring{ring: ring, prefix: prefix}
}

// OpenKeyring opens the native credential store for the current platform.
func OpenKeyring(cfg KeyringConfig) (*Keyring, error) {
	ring, err := openRing(cfg)
	if err != nil {
		return nil, err
	}
	return NewKeyring(ring, cfg.Scope), nil
}

// openRing prefers the platform's native backend and only falls back to the
// encrypted file backend outside macOS and Windows.
func openRing(cfg KeyringConfig) (keyring.Keyring, error) {
	var allowedBackends []keyring.BackendType
	switch runtime.GOOS {
	case "darwin":
		allowedBackends = []keyring.BackendType{keyring.KeychainBackend, keyring.PassBackend}
	case "windows":
		allowedBackends = []keyring.BackendType{keyring.WinCredBackend}
	default:
		allowedBackends = []keyring.BackendType{
			keyring.SecretServiceBackend,
			keyring.KWalletBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		}
	}

	kcfg := keyring.Config{
		ServiceName:      ServiceName,
		AllowedBackends:  allowedBackends,
		PassPrefix:       ServiceName,
		FileDir:          cfg.FileDir,
		FilePasswordFunc: keyring.FixedStringPrompt(cfg.FilePassphrase),
	}
	if runtime.GOOS == "windows" {
		kcfg.WinCredPrefix = ServiceName
	}

	ring, err := keyring.Open(kcfg)
	if err != nil {
		if runtime.GOOS == "darwin" {
			return nil, fmt.Errorf("macOS Keychain unavailable, install 'pass' or use the bolt storage backend: %w", err)
		}
		return nil, fmt.Errorf("open keyring: %w", err)
	}
	return ring, nil
}

// Get implements Store.
func (k *Keyring) Get(key string) (string, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()

	it, err := k.ring.Get(k.prefix + key)
	if err != nil {
		if isMissing(err) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("keyring get %q: %w", key, err)
	}
	if len(it.Data) == 0 {
		return "", ErrNotFound
	}
	return string(it.Data), nil
}

// Set implements Store.
func (k *Keyring) Set(key, value string) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	err := k.ring.Set(keyring.Item{
		Key:   k.prefix + key,
		Data:  []byte(value),
		Label: ServiceName + " " + key,
	})
	if err != nil {
		return fmt.Errorf("keyring set %q: %w", key, err)
	}
	return nil
}

// Remove implements Store.
func (k *Keyring) Remove(key string) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if err := k.ring.Remove(k.prefix + key); err != nil && !isMissing(err) {
		return fmt.Errorf("keyring remove %q: %w", key, err)
	}
	return nil
}

func isMissing(err error) bool {
	return errors.Is(err, keyring.ErrKeyNotFound) || errors.Is(err, os.ErrNotExist)
}
