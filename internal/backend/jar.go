// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/net/publicsuffix"

	"vitrine/cli/internal/storage"
)

// KeyCookies is the local storage key holding the API's session cookies.
const KeyCookies = "apiCookies"

// storedCookie is what survives between runs. The jar only hands back name
// and value, so restored cookies are host-only with path "/" and live until
// the server replaces or expires them.
type storedCookie struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// StoreJar is an http.CookieJar whose cookies for the API root are written
// to a storage.Store after every change and loaded back on creation. A
// session cookie set by one login is therefore sent by a later logout.
type StoreJar struct {
	mu    sync.Mutex
	inner *cookiejar.Jar
	store storage.Store
	root  *url.URL
	log   *zap.SugaredLogger
}

var _ http.CookieJar = (*StoreJar)(nil)

// NewStoreJar opens the jar for baseURL and restores what store holds. A
// stored value that cannot be decoded is discarded. A nil logger discards
// output.
func NewStoreJar(store storage.Store, baseURL string, log *zap.SugaredLogger) (*StoreJar, error) {
	if store == nil {
		return nil, errors.New("backend: cookie store is missing")
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("backend: parse base url: %w", err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("backend: base url %q has no host", baseURL)
	}
	inner, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("backend: cookie jar: %w", err)
	}

	j := &StoreJar{
		inner: inner,
		store: store,
		root:  &url.URL{Scheme: u.Scheme, Host: u.Host, Path: "/"},
		log:   log,
	}
	if err := j.load(); err != nil {
		return nil, err
	}
	return j, nil
}

// Cookies implements http.CookieJar.
func (j *StoreJar) Cookies(u *url.URL) []*http.Cookie {
	return j.inner.Cookies(u)
}

// SetCookies implements http.CookieJar. The jar has no error return, so a
// failed write is logged and the cookies stay in memory for this run.
func (j *StoreJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.inner.SetCookies(u, cookies)
	if err := j.save(); err != nil {
		j.log.Warnw("persist api cookies", "error", err)
	}
}

func (j *StoreJar) load() error {
	raw, err := j.store.Get(KeyCookies)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("backend: read cookies: %w", err)
	}

	var saved []storedCookie
	if err := json.Unmarshal([]byte(raw), &saved); err != nil {
		j.log.Warnw("discarding unreadable api cookies", "error", err)
		return nil
	}
	cookies := make([]*http.Cookie, 0, len(saved))
	for _, c := range saved {
		if c.Name == "" {
			continue
		}
		cookies = append(cookies, &http.Cookie{Name: c.Name, Value: c.Value, Path: "/"})
	}
	j.inner.SetCookies(j.root, cookies)
	return nil
}

func (j *StoreJar) save() error {
	current := j.inner.Cookies(j.root)
	if len(current) == 0 {
		return j.store.Remove(KeyCookies)
	}
	saved := make([]storedCookie, 0, len(current))
	for _, c := range current {
		saved = append(saved, storedCookie{Name: c.Name, Value: c.Value})
	}
	b, err := json.Marshal(saved)
	if err != nil {
		return err
	}
	return j.store.Set(KeyCookies, string(b))
}
