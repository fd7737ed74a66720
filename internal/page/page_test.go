// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package page

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vitrine/cli/internal/dom"
)

func TestAssignResolvesRelativeTargets(t *testing.T) {
	tests := []struct {
		name   string
		start  string
		target string
		want   string
	}{
		{
			name:   "sibling page",
			start:  "http://localhost:5500/produtos/carrinho.html?item=3",
			target: "login.html",
			want:   "http://localhost:5500/produtos/login.html",
		},
		{
			name:   "root relative",
			start:  "http://localhost:5500/produtos/carrinho.html",
			target: "/login.html",
			want:   "http://localhost:5500/login.html",
		},
		{
			name:   "absolute",
			start:  "http://localhost:5500/index.html",
			target: "https://loja.example/login.html",
			want:   "https://loja.example/login.html",
		},
		{
			name:   "file url",
			start:  "file:///srv/site/index.html",
			target: "login.html",
			want:   "file:///srv/site/login.html",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Blank(tt.start)
			require.NoError(t, err)

			p.Assign(tt.target)
			assert.Equal(t, tt.want, p.Location())
			assert.Equal(t, []string{tt.want}, p.Navigations())
		})
	}
}

func TestOnNavigate(t *testing.T) {
	p, err := Blank("http://localhost:5500/index.html")
	require.NoError(t, err)

	var seen [][2]string
	p.OnNavigate(func(from, to string) {
		// hooks run without the page lock held
		_ = p.Location()
		seen = append(seen, [2]string{from, to})
	})
	p.OnNavigate(nil)

	p.Assign("login.html")
	require.Len(t, seen, 1)
	assert.Equal(t, "http://localhost:5500/index.html", seen[0][0])
	assert.Equal(t, "http://localhost:5500/login.html", seen[0][1])
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "index.html")
	require.NoError(t, os.WriteFile(path, []byte(`<div id="menu-visitante"></div>`), 0o600))

	p, err := Load(path, "")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(p.Location(), "file://"))
	assert.True(t, strings.HasSuffix(p.Location(), "/index.html"))
	assert.Equal(t, dom.Loading, p.Document().ReadyState())
	assert.NotNil(t, p.Document().GetElementByID("menu-visitante"))

	p, err = Load(path, "http://localhost:5500/index.html")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5500/index.html", p.Location())

	_, err = Load(filepath.Join(dir, "missing.html"), "")
	require.Error(t, err)
}

func TestBlankIsReady(t *testing.T) {
	p, err := Blank("http://localhost:5500/")
	require.NoError(t, err)
	assert.Equal(t, dom.Complete, p.Document().ReadyState())
	assert.Empty(t, p.Navigations())
}

func TestNewRejectsNilDocument(t *testing.T) {
	_, err := New("http://localhost/", nil)
	require.Error(t, err)
}
