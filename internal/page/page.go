// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package page ties a parsed document to its URL and records navigation.
//
// A Page is the navigator handed to the session controller: Location
// returns the current URL and Assign resolves a target against it, the
// way a browser resolves a relative link such as "login.html".
package page

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sync"

	"vitrine/cli/internal/dom"
)

// Page is a document loaded from a URL.
type Page struct {
	mu         sync.Mutex
	url        *url.URL
	doc        *dom.Document
	history    []string
	onNavigate []func(from, to string)
}

// New wraps doc as the page at rawURL.
func New(rawURL string, doc *dom.Document) (*Page, error) {
	if doc == nil {
		return nil, fmt.Errorf("page %q: nil document", rawURL)
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse page url: %w", err)
	}
	return &Page{url: u, doc: doc}, nil
}

// Load parses the HTML file at path. When rawURL is empty the page URL is
// the file:// URL of path, so relative navigation lands next to the file.
// The document is returned still loading.
func Load(path, rawURL string) (*Page, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open page: %w", err)
	}
	defer f.Close()

	doc, err := dom.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	if rawURL == "" {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("resolve page path: %w", err)
		}
		rawURL = (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String()
	}
	return New(rawURL, doc)
}

// Blank returns an empty, ready page at rawURL. Commands that only need a
// navigator (logout, require) use it.
func Blank(rawURL string) (*Page, error) {
	doc, err := dom.ParseString("<!DOCTYPE html><html><head></head><body></body></html>")
	if err != nil {
		return nil, err
	}
	doc.MarkComplete()
	return New(rawURL, doc)
}

// Document returns the page's document.
func (p *Page) Document() *dom.Document {
	return p.doc
}

// Location returns the current URL.
func (p *Page) Location() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.url.String()
}

// Assign navigates to target, resolved against the current URL. An
// unparsable target is kept verbatim in the history and does not move
// the page.
func (p *Page) Assign(target string) {
	p.mu.Lock()
	from := p.url.String()
	to := target
	if ref, err := url.Parse(target); err == nil {
		next := p.url.ResolveReference(ref)
		p.url = next
		to = next.String()
	}
	p.history = append(p.history, to)
	hooks := make([]func(string, string), len(p.onNavigate))
	copy(hooks, p.onNavigate)
	p.mu.Unlock()

	for _, fn := range hooks {
		fn(from, to)
	}
}

// Navigations returns every URL assigned so far, oldest first.
func (p *Page) Navigations() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.history))
	copy(out, p.history)
	return out
}

// OnNavigate registers fn to be called after each Assign.
func (p *Page) OnNavigate(fn func(from, to string)) {
	if fn == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onNavigate = append(p.onNavigate, fn)
}
