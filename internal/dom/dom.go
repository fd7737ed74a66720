// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package dom is a small in-memory document model over golang.org/x/net/html.
//
// It offers the subset the storefront pages need: lookup by id or simple
// selector, inline display style, class list, text content, event listeners
// and a one-time ready signal. The document is safe for concurrent use;
// listeners are always called without the document lock held.
package dom

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"sync"

	"golang.org/x/net/html"
)

// ReadyState mirrors document.readyState.
type ReadyState string

const (
	Loading     ReadyState = "loading"
	Interactive ReadyState = "interactive"
	Complete    ReadyState = "complete"
)

// Document is a parsed HTML page.
type Document struct {
	mu        sync.Mutex
	root      *html.Node
	state     ReadyState
	ready     chan struct{}
	readyOnce sync.Once
	listeners map[*html.Node]map[string][]*Listener
}

// Parse reads an HTML document. The returned document is still Loading;
// call MarkReady once the caller considers the page loaded.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return &Document{
		root:      root,
		state:     Loading,
		ready:     make(chan struct{}),
		listeners: make(map[*html.Node]map[string][]*Listener),
	}, nil
}

// ParseString is Parse over a string.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// ReadyState returns the current load state.
func (d *Document) ReadyState() ReadyState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Ready is closed once the document leaves the Loading state.
func (d *Document) Ready() <-chan struct{} {
	return d.ready
}

// MarkReady moves a Loading document to Interactive and fires the ready
// signal. Later calls are no-ops.
func (d *Document) MarkReady() {
	d.readyOnce.Do(func() {
		d.mu.Lock()
		if d.state == Loading {
			d.state = Interactive
		}
		d.mu.Unlock()
		close(d.ready)
	})
}

// MarkComplete moves the document to Complete, firing the ready signal if it
// has not fired yet.
func (d *Document) MarkComplete() {
	d.MarkReady()
	d.mu.Lock()
	d.state = Complete
	d.mu.Unlock()
}

// GetElementByID returns the first element with the given id, or nil.
func (d *Document) GetElementByID(id string) *Element {
	if id == "" {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	n := findFirst(d.root, func(n *html.Node) bool {
		v, ok := attr(n, "id")
		return ok && v == id
	})
	return d.wrap(n)
}

// QuerySelector supports "#id", ".class", "tag" and "tag.class".
// It returns the first match in document order, or nil.
func (d *Document) QuerySelector(selector string) *Element {
	match := compileSelector(strings.TrimSpace(selector))
	if match == nil {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.wrap(findFirst(d.root, match))
}

// Render writes the document as HTML.
func (d *Document) Render(w io.Writer) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return html.Render(w, d.root)
}

// String renders the document, returning "" on error.
func (d *Document) String() string {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return ""
	}
	return buf.String()
}

// Dispatch fires an event of the given type on el and reports whether a
// listener prevented the default action.
func (d *Document) Dispatch(el *Element, eventType string) bool {
	if el == nil {
		return false
	}
	d.mu.Lock()
	registered := d.listeners[el.node][eventType]
	snapshot := make([]*Listener, len(registered))
	copy(snapshot, registered)
	d.mu.Unlock()

	ev := &Event{Type: eventType, Target: el}
	for _, l := range snapshot {
		l.handle(ev)
	}
	return ev.DefaultPrevented()
}

// ListenerCount returns how many listeners of eventType are bound to el.
func (d *Document) ListenerCount(el *Element, eventType string) int {
	if el == nil {
		return 0
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.listeners[el.node][eventType])
}

func (d *Document) wrap(n *html.Node) *Element {
	if n == nil {
		return nil
	}
	return &Element{doc: d, node: n}
}

func findFirst(n *html.Node, match func(*html.Node) bool) *html.Node {
	if n == nil {
		return nil
	}
	if n.Type == html.ElementNode && match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, match); found != nil {
			return found
		}
	}
	return nil
}

func compileSelector(sel string) func(*html.Node) bool {
	if sel == "" || strings.ContainsAny(sel, " >+~[:,") {
		return nil
	}
	if strings.HasPrefix(sel, "#") {
		id := sel[1:]
		return func(n *html.Node) bool {
			v, ok := attr(n, "id")
			return ok && v == id
		}
	}

	tag, class, _ := strings.Cut(sel, ".")
	tag = strings.ToLower(tag)
	if tag == "" && class == "" {
		return nil
	}
	return func(n *html.Node) bool {
		if tag != "" && n.Data != tag {
			return false
		}
		return class == "" || hasClass(n, class)
	}
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func removeAttr(n *html.Node, key string) {
	out := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			continue
		}
		out = append(out, a)
	}
	n.Attr = out
}

func hasClass(n *html.Node, class string) bool {
	v, _ := attr(n, "class")
	for _, c := range strings.Fields(v) {
		if c == class {
			return true
		}
	}
	return false
}
