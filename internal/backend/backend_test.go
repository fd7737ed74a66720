// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// storefront fakes the login/logout endpoints of the storefront API.
func storefront(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /login", func(w http.ResponseWriter, r *http.Request) {
		var creds Credentials
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			http.Error(w, "bad body", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if creds.Password != "segredo" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"detail":"Credenciais inválidas"}`))
			return
		}
		http.SetCookie(w, &http.Cookie{Name: "session_id", Value: "abc123", Path: "/"})
		_, _ = w.Write([]byte(`{"msg":"Login realizado","usuario":{"id":7,"nome":"Ana Silva","email":"` + creds.Email + `"}}`))
	})
	mux.HandleFunc("POST /admins/login", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"msg":"Login admin realizado","usuario":{"id":1,"nome":"Admin"}}`))
	})
	mux.HandleFunc("POST /logout", func(w http.ResponseWriter, r *http.Request) {
		if _, err := r.Cookie("session_id"); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"detail":"Não autenticado"}`))
			return
		}
		http.SetCookie(w, &http.Cookie{Name: "session_id", Value: "", Path: "/", MaxAge: -1})
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"msg":"deslogado"}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestLoginThenLogoutSendsSessionCookie(t *testing.T) {
	srv := storefront(t)
	client, err := New(srv.URL + "/")
	require.NoError(t, err)
	assert.Equal(t, srv.URL, client.BaseURL())

	raw, err := client.Login(context.Background(), Credentials{Email: "ana@loja.com", Password: "segredo"})
	require.NoError(t, err)

	var user map[string]any
	require.NoError(t, json.Unmarshal(raw, &user))
	assert.Equal(t, "Ana Silva", user["nome"])
	assert.Equal(t, "ana@loja.com", user["email"])

	require.NoError(t, client.Logout(context.Background()))
}

func TestLogoutWithoutSession(t *testing.T) {
	srv := storefront(t)
	client, err := New(srv.URL)
	require.NoError(t, err)

	err = client.Logout(context.Background())
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusUnauthorized, se.Status)
	assert.Equal(t, "Não autenticado", se.Detail)
}

func TestLoginErrors(t *testing.T) {
	tests := []struct {
		name       string
		handler    http.HandlerFunc
		creds      Credentials
		wantStatus int
		wantDetail string
		wantErr    error
	}{
		{
			name: "rejected credentials",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"detail":"Credenciais inválidas"}`))
			},
			wantStatus: http.StatusUnauthorized,
			wantDetail: "Credenciais inválidas",
		},
		{
			name: "plain text failure",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "upstream down", http.StatusBadGateway)
			},
			wantStatus: http.StatusBadGateway,
			wantDetail: "upstream down",
		},
		{
			name: "missing usuario",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{"msg":"logado"}`))
			},
			wantErr: ErrNoUser,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			client, err := New(srv.URL)
			require.NoError(t, err)

			_, err = client.Login(context.Background(), tt.creds)
			require.Error(t, err)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			var se *StatusError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tt.wantStatus, se.Status)
			assert.Equal(t, tt.wantDetail, se.Detail)
		})
	}
}

func TestAdminLogin(t *testing.T) {
	srv := storefront(t)
	client, err := New(srv.URL)
	require.NoError(t, err)

	raw, err := client.Login(context.Background(), Credentials{Email: "root@loja.com", Password: "x", Admin: true})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1,"nome":"Admin"}`, string(raw))
}

func TestTimeoutOption(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	client, err := New(srv.URL, WithTimeout(50*time.Millisecond), WithUserAgent("vitrine-test"))
	require.NoError(t, err)

	start := time.Now()
	err = client.Logout(context.Background())
	require.Error(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestNewRejectsEmptyURL(t *testing.T) {
	_, err := New("  ")
	require.Error(t, err)
}
