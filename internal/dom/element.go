// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// Element is a handle to an element node of a Document.
// Two handles to the same node are interchangeable.
type Element struct {
	doc  *Document
	node *html.Node
}

// Same reports whether both handles point at the same node.
func (e *Element) Same(other *Element) bool {
	if e == nil || other == nil {
		return e == other
	}
	return e.node == other.node
}

// TagName returns the lower-case tag name.
func (e *Element) TagName() string {
	return e.node.Data
}

// ID returns the id attribute.
func (e *Element) ID() string {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	v, _ := attr(e.node, "id")
	return v
}

// Attr returns the value of an attribute.
func (e *Element) Attr(key string) (string, bool) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	return attr(e.node, key)
}

// HasClass reports whether class is in the class list.
func (e *Element) HasClass(class string) bool {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	return hasClass(e.node, class)
}

// AddClass appends class to the class list if missing.
func (e *Element) AddClass(class string) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()

	if hasClass(e.node, class) {
		return
	}
	v, _ := attr(e.node, "class")
	setAttr(e.node, "class", strings.TrimSpace(v+" "+class))
}

// RemoveClass removes every occurrence of class from the class list.
func (e *Element) RemoveClass(class string) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()

	v, ok := attr(e.node, "class")
	if !ok {
		return
	}
	var kept []string
	for _, c := range strings.Fields(v) {
		if c != class {
			kept = append(kept, c)
		}
	}
	if len(kept) == 0 {
		removeAttr(e.node, "class")
		return
	}
	setAttr(e.node, "class", strings.Join(kept, " "))
}

// Style returns the inline value of a CSS property, or "".
func (e *Element) Style(property string) string {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()

	v, _ := attr(e.node, "style")
	for _, d := range parseStyle(v) {
		if d.property == property {
			return d.value
		}
	}
	return ""
}

// SetStyle sets an inline CSS property, keeping the other declarations.
func (e *Element) SetStyle(property, value string) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()

	v, _ := attr(e.node, "style")
	decls := parseStyle(v)
	found := false
	for i := range decls {
		if decls[i].property == property {
			decls[i].value = value
			found = true
		}
	}
	if !found {
		decls = append(decls, declaration{property: property, value: value})
	}
	setAttr(e.node, "style", formatStyle(decls))
}

// SetDisplay is SetStyle("display", value).
func (e *Element) SetDisplay(value string) {
	e.SetStyle("display", value)
}

// TextContent returns the concatenated text of all descendants.
func (e *Element) TextContent() string {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()

	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(e.node)
	return b.String()
}

// SetTextContent replaces all children with a single text node.
func (e *Element) SetTextContent(text string) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()

	for c := e.node.FirstChild; c != nil; {
		next := c.NextSibling
		e.node.RemoveChild(c)
		c = next
	}
	if text != "" {
		e.node.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	}
}

// AddEventListener binds l to events of eventType. Binding the same
// listener twice has no effect.
func (e *Element) AddEventListener(eventType string, l *Listener) {
	if l == nil {
		return
	}
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()

	byType := e.doc.listeners[e.node]
	if byType == nil {
		byType = make(map[string][]*Listener)
		e.doc.listeners[e.node] = byType
	}
	for _, existing := range byType[eventType] {
		if existing == l {
			return
		}
	}
	byType[eventType] = append(byType[eventType], l)
}

// RemoveEventListener unbinds l. Unknown listeners are ignored.
func (e *Element) RemoveEventListener(eventType string, l *Listener) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()

	byType := e.doc.listeners[e.node]
	list := byType[eventType]
	for i, existing := range list {
		if existing == l {
			byType[eventType] = append(list[:i:i], list[i+1:]...)
			break
		}
	}
	if len(byType[eventType]) == 0 {
		delete(byType, eventType)
	}
	if len(byType) == 0 {
		delete(e.doc.listeners, e.node)
	}
}

// Click dispatches a click event and reports whether the default action was prevented.
func (e *Element) Click() bool {
	return e.doc.Dispatch(e, "click")
}

type declaration struct {
	property string
	value    string
}

func parseStyle(s string) []declaration {
	var out []declaration
	for _, part := range strings.Split(s, ";") {
		prop, val, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		prop = strings.ToLower(strings.TrimSpace(prop))
		if prop == "" {
			continue
		}
		out = append(out, declaration{property: prop, value: strings.TrimSpace(val)})
	}
	return out
}

func formatStyle(decls []declaration) string {
	parts := make([]string, 0, len(decls))
	for _, d := range decls {
		parts = append(parts, d.property+": "+d.value)
	}
	return strings.Join(parts, "; ")
}
