// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"vitrine/cli/internal/auth"
	"vitrine/cli/internal/backend"
	"vitrine/cli/internal/config"
	clierrors "vitrine/cli/internal/errors"
	"vitrine/cli/internal/logging"
	"vitrine/cli/internal/page"
	"vitrine/cli/internal/storage"
	"vitrine/cli/internal/xdg"
)

// app holds what every command shares: effective config, logger and the
// lazily opened stores.
type app struct {
	cfg config.Config
	log *zap.SugaredLogger

	local   storage.Store
	session storage.Store
	closers []func() error
}

var current *app

// loadApp resolves configuration (file, .env, env, then flags) and the logger.
func loadApp(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return clierrors.Wrap(clierrors.ConfigInvalid, "load configuration", err)
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if cmd.Flags().Changed("api-url") {
		cfg.APIURL = apiURL
	}
	if cmd.Flags().Changed("storage") {
		cfg.Storage.Backend = storageKind
	}
	if err := cfg.Validate(); err != nil {
		return clierrors.Wrap(clierrors.ConfigInvalid, "check configuration", err)
	}

	log, err := logging.New(cfg.LogLevel)
	if err != nil {
		return clierrors.Wrap(clierrors.ConfigInvalid, "create logger", err)
	}
	current = &app{cfg: cfg, log: log}
	return nil
}

func closeApp() {
	if current == nil {
		return
	}
	for i := len(current.closers) - 1; i >= 0; i-- {
		if err := current.closers[i](); err != nil {
			current.log.Warnw("close storage", "error", err)
		}
	}
	current.closers = nil
	_ = current.log.Sync()
}

// stores opens local and session storage for the configured backend.
func (a *app) stores() (storage.Store, storage.Store, error) {
	if a.local != nil {
		return a.local, a.session, nil
	}

	switch a.cfg.Storage.Backend {
	case storage.BackendMemory:
		a.local, a.session = storage.NewMemory(), storage.NewMemory()

	case storage.BackendKeyring:
		dir := a.cfg.Storage.Path
		if dir == "" {
			var err error
			if dir, err = xdg.StateDir(); err != nil {
				return nil, nil, clierrors.Wrap(clierrors.StorageUnavailable, "resolve keyring dir", err)
			}
		}
		local, err := storage.OpenKeyring(storage.KeyringConfig{Scope: storage.ScopeLocal, FileDir: dir})
		if err != nil {
			return nil, nil, clierrors.Wrap(clierrors.StorageUnavailable, "open keyring", err)
		}
		session, err := storage.OpenKeyring(storage.KeyringConfig{Scope: storage.ScopeSession, FileDir: dir})
		if err != nil {
			return nil, nil, clierrors.Wrap(clierrors.StorageUnavailable, "open keyring", err)
		}
		a.local, a.session = local, session

	default:
		path, err := a.cfg.StoragePath()
		if err != nil {
			return nil, nil, clierrors.Wrap(clierrors.StorageUnavailable, "resolve storage path", err)
		}
		db, err := storage.OpenBoltDB(path)
		if err != nil {
			return nil, nil, clierrors.Wrap(clierrors.StorageUnavailable, "open "+path, err)
		}
		a.closers = append(a.closers, db.Close)
		local, err := storage.NewBolt(db, storage.ScopeLocal)
		if err != nil {
			return nil, nil, clierrors.Wrap(clierrors.StorageUnavailable, "open local bucket", err)
		}
		session, err := storage.NewBolt(db, storage.ScopeSession)
		if err != nil {
			return nil, nil, clierrors.Wrap(clierrors.StorageUnavailable, "open session bucket", err)
		}
		a.local, a.session = local, session
	}

	a.log.Debugw("storage opened", "backend", a.cfg.Storage.Backend)
	return a.local, a.session, nil
}

// api returns the store API client. Its cookies are kept in local storage
// so the session set by login is sent by a later logout.
func (a *app) api() (*backend.HTTP, error) {
	local, _, err := a.stores()
	if err != nil {
		return nil, err
	}
	jar, err := backend.NewStoreJar(local, a.cfg.APIURL, a.log)
	if err != nil {
		return nil, clierrors.Wrap(clierrors.StorageUnavailable, "open api cookies", err)
	}
	be, err := backend.New(a.cfg.APIURL,
		backend.WithUserAgent("vitrine/"+Version),
		backend.WithCookieJar(jar),
	)
	if err != nil {
		return nil, clierrors.Wrap(clierrors.ConfigInvalid, "create api client", err)
	}
	return be, nil
}

// controller builds the session controller for p. Logout notifies the API.
func (a *app) controller(p *page.Page) (*auth.Controller, error) {
	local, session, err := a.stores()
	if err != nil {
		return nil, err
	}
	be, err := a.api()
	if err != nil {
		return nil, err
	}
	ctrl, err := auth.NewController(auth.Options{
		Local:         local,
		Session:       session,
		Document:      p.Document(),
		Navigator:     p,
		Notifier:      be,
		LoginPage:     a.cfg.LoginPage,
		LogoutTimeout: a.cfg.LogoutTimeout.Std(),
		Logger:        a.log,
	})
	if err != nil {
		return nil, fmt.Errorf("build session controller: %w", err)
	}
	p.OnNavigate(func(from, to string) {
		a.log.Debugw("navigate", "from", from, "to", to)
	})
	return ctrl, nil
}
