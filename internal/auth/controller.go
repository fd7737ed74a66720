// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package auth is the storefront session display controller.
//
// A Controller belongs to one page. It reads the cached identity from local
// storage, toggles the navbar between its guest and logged-in menus, gates
// pages that need a session and performs logout. Every collaborator is
// injected through Options, so the same controller drives a real page in the
// CLI and an in-memory page in tests.
package auth

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"vitrine/cli/internal/dom"
	"vitrine/cli/internal/storage"
)

// Storage keys.
const (
	// KeyUsuario holds the JSON record of the logged-in user in local storage.
	KeyUsuario = "usuario"
	// KeyRedirectAfterLogin holds, in session storage, the URL to return to after login.
	KeyRedirectAfterLogin = "redirectAfterLogin"
)

// Navbar element ids and the logout control lookups.
const (
	IDGuestMenu    = "menu-visitante"
	IDUserMenu     = "menu-usuario"
	IDLoginLink    = "nav-login"
	IDUserInfo     = "nav-user"
	IDUserName     = "user-name"
	IDLogoutButton = "btn-logout"

	SelectorLogoutButton = ".btn-logout"
)

// HiddenClass is toggled alongside the inline display style.
const HiddenClass = "hidden"

const (
	DefaultLoginPage     = "login.html"
	DefaultLogoutTimeout = 5 * time.Second
)

// Navigator is the page location the controller reads and moves.
type Navigator interface {
	Location() string
	Assign(target string)
}

// Notifier tells the server that the session ended.
type Notifier interface {
	Logout(ctx context.Context) error
}

// State is the per-page lifecycle: Loading, then Ready, then Rendered.
type State int

const (
	StateLoading State = iota
	StateReady
	StateRendered
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateRendered:
		return "rendered"
	default:
		return "unknown"
	}
}

// Options configures a Controller.
type Options struct {
	// Local persists the cached identity across sessions.
	Local storage.Store
	// Session holds per-session values such as the redirect target.
	Session storage.Store
	// Document is the page the navbar lives on. It may be nil for
	// controllers that only gate or log out.
	Document *dom.Document
	// Navigator is required.
	Navigator Navigator
	// Notifier is optional; without it logout is purely local.
	Notifier Notifier
	// LoginPage is where gate misses and logouts navigate to.
	LoginPage string
	// LogoutTimeout bounds the server notification.
	LogoutTimeout time.Duration
	Logger        *zap.SugaredLogger
}

// Controller exposes the session operations of a page.
type Controller struct {
	local     storage.Store
	session   storage.Store
	doc       *dom.Document
	nav       Navigator
	notifier  Notifier
	loginPage string
	timeout   time.Duration
	log       *zap.SugaredLogger

	mu       sync.Mutex
	state    State
	bound    *dom.Element
	listener *dom.Listener
}

// NewController validates opts and fills defaults.
func NewController(opts Options) (*Controller, error) {
	if opts.Local == nil {
		return nil, errMissing("local storage")
	}
	if opts.Session == nil {
		return nil, errMissing("session storage")
	}
	if opts.Navigator == nil {
		return nil, errMissing("navigator")
	}
	if opts.LoginPage == "" {
		opts.LoginPage = DefaultLoginPage
	}
	if opts.LogoutTimeout <= 0 {
		opts.LogoutTimeout = DefaultLogoutTimeout
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop().Sugar()
	}

	return &Controller{
		local:     opts.Local,
		session:   opts.Session,
		doc:       opts.Document,
		nav:       opts.Navigator,
		notifier:  opts.Notifier,
		loginPage: opts.LoginPage,
		timeout:   opts.LogoutTimeout,
		log:       opts.Logger.With("page", uuid.NewString()),
	}, nil
}

// State returns where the page is in its lifecycle.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

type missingError string

func (e missingError) Error() string {
	return "auth: " + string(e) + " is required"
}

func errMissing(what string) error {
	return missingError(what)
}
