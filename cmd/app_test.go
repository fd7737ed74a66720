// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vitrine/cli/internal/auth"
	"vitrine/cli/internal/backend"
	"vitrine/cli/internal/config"
	"vitrine/cli/internal/dom"
	"vitrine/cli/internal/identity"
	"vitrine/cli/internal/logging"
	"vitrine/cli/internal/page"
	"vitrine/cli/internal/storage"
)

func testApp(t *testing.T, kind string, apiURL string) *app {
	t.Helper()
	cfg := config.Defaults()
	cfg.Storage.Backend = kind
	cfg.Storage.Path = filepath.Join(t.TempDir(), "storage.db")
	if apiURL != "" {
		cfg.APIURL = apiURL
	}
	require.NoError(t, cfg.Validate())

	a := &app{cfg: cfg, log: logging.Nop()}
	t.Cleanup(func() {
		for _, c := range a.closers {
			_ = c()
		}
	})
	return a
}

func TestStoresPerBackend(t *testing.T) {
	for _, kind := range []string{storage.BackendMemory, storage.BackendBolt} {
		t.Run(kind, func(t *testing.T) {
			a := testApp(t, kind, "")

			local, session, err := a.stores()
			require.NoError(t, err)
			require.NoError(t, local.Set(auth.KeyUsuario, `{"id":1}`))
			_, err = session.Get(auth.KeyUsuario)
			require.ErrorIs(t, err, storage.ErrNotFound)

			// opened once
			again, _, err := a.stores()
			require.NoError(t, err)
			assert.Same(t, local, again)
		})
	}
}

func TestBoltStorageSurvivesReopen(t *testing.T) {
	a := testApp(t, storage.BackendBolt, "")
	local, _, err := a.stores()
	require.NoError(t, err)
	require.NoError(t, local.Set(auth.KeyUsuario, `{"nome":"Ana Silva"}`))
	for _, c := range a.closers {
		require.NoError(t, c())
	}
	a.closers = nil

	b := &app{cfg: a.cfg, log: logging.Nop()}
	t.Cleanup(func() {
		for _, c := range b.closers {
			_ = c()
		}
	})
	local, _, err = b.stores()
	require.NoError(t, err)
	v, err := local.Get(auth.KeyUsuario)
	require.NoError(t, err)
	assert.Equal(t, `{"nome":"Ana Silva"}`, v)
}

func TestControllerLogsOutAgainstAPI(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/logout" && r.Method == http.MethodPost {
			hits.Add(1)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	a := testApp(t, storage.BackendMemory, srv.URL)
	doc, err := dom.ParseString(`<div id="menu-usuario" class="hidden"></div><a class="btn-logout" href="#">Sair</a>`)
	require.NoError(t, err)
	p, err := page.New("http://localhost:5500/index.html", doc)
	require.NoError(t, err)

	ctrl, err := a.controller(p)
	require.NoError(t, err)
	local, _, _ := a.stores()
	require.NoError(t, local.Set(auth.KeyUsuario, `{"email":"a@b.com"}`))

	doc.MarkReady()
	require.NoError(t, ctrl.InitAuth(context.Background()))
	require.NotNil(t, ctrl.LogoutControl())
	ctrl.LogoutControl().Click()

	assert.Equal(t, int32(1), hits.Load())
	assert.Equal(t, []string{"http://localhost:5500/login.html"}, p.Navigations())
	_, err = local.Get(auth.KeyUsuario)
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestLogoutInLaterRunEndsServerSession(t *testing.T) {
	var ended atomic.Bool
	mux := http.NewServeMux()
	mux.HandleFunc("POST /login", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "session_id", Value: "s-1", Path: "/"})
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"msg":"ok","usuario":{"id":7,"nome":"Ana Silva"}}`))
	})
	mux.HandleFunc("POST /logout", func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie("session_id")
		if err != nil || c.Value != "s-1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		ended.Store(true)
		http.SetCookie(w, &http.Cookie{Name: "session_id", Path: "/", MaxAge: -1})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	// first run: login
	first := testApp(t, storage.BackendBolt, srv.URL)
	local, session, err := first.stores()
	require.NoError(t, err)
	be, err := first.api()
	require.NoError(t, err)
	_, _, err = auth.NewService(be, local, session, first.log).Login(context.Background(), backend.Credentials{Email: "ana@loja.com", Password: "segredo"})
	require.NoError(t, err)
	for _, c := range first.closers {
		require.NoError(t, c())
	}
	first.closers = nil

	// second run: logout from a fresh process state over the same file
	second := &app{cfg: first.cfg, log: logging.Nop()}
	t.Cleanup(func() {
		for _, c := range second.closers {
			_ = c()
		}
	})
	p, err := page.Blank("http://localhost:5500/index.html")
	require.NoError(t, err)
	ctrl, err := second.controller(p)
	require.NoError(t, err)
	ctrl.Logout(context.Background())

	assert.True(t, ended.Load())
	local, _, err = second.stores()
	require.NoError(t, err)
	_, err = local.Get(auth.KeyUsuario)
	require.ErrorIs(t, err, storage.ErrNotFound)
	_, err = local.Get(backend.KeyCookies)
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestNavbarSummary(t *testing.T) {
	pterm.DisableStyling()
	defer pterm.EnableStyling()

	out := navbarSummary(identity.ViewState{Authenticated: true, DisplayName: "Ana"}, true)
	assert.Contains(t, out, "Olá, Ana")
	assert.Contains(t, out, "logout control bound")

	out = navbarSummary(identity.Guest, false)
	assert.Contains(t, out, "guest menu")
	assert.NotContains(t, out, "logout")
}

func TestDescribeUser(t *testing.T) {
	assert.Equal(t, "Ana <a@b.com>", describeUser(identity.New(map[string]any{"nome": "Ana Silva", "email": "a@b.com"})))
	assert.Equal(t, "a@b.com", describeUser(identity.New(map[string]any{"email": "a@b.com"})))
}
