// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package auth

import (
	"context"

	"vitrine/cli/internal/dom"
	"vitrine/cli/internal/identity"
)

// RenderNavbar shows the menu matching the current session. Each navbar
// element is optional; missing ones are skipped.
func (c *Controller) RenderNavbar(ctx context.Context) identity.ViewState {
	id, _ := c.ReadSession(ctx)
	view := identity.ViewOf(id)

	if c.doc == nil {
		c.log.Debugw("no document, navbar not rendered", "state", view.String())
		return view
	}

	guest := c.doc.GetElementByID(IDGuestMenu)
	user := c.doc.GetElementByID(IDUserMenu)
	// nav-login sits inside the guest menu and follows its visibility.
	info := c.doc.GetElementByID(IDUserInfo)
	name := c.doc.GetElementByID(IDUserName)

	if view.Authenticated {
		hide(guest)
		show(user)
		if info != nil {
			info.SetTextContent(view.Greeting())
		}
		if name != nil {
			name.SetTextContent(view.DisplayName)
		}
	} else {
		show(guest)
		hide(user)
	}

	c.log.Infow("navbar rendered", "state", view.String())
	return view
}

// InitAuth waits for the document to be ready, renders the navbar and
// binds the logout control. Calling it again rebinds instead of stacking
// listeners. It only fails when ctx ends before the document is ready.
func (c *Controller) InitAuth(ctx context.Context) error {
	if c.doc != nil && c.doc.ReadyState() == dom.Loading {
		select {
		case <-c.doc.Ready():
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	c.setState(StateReady)

	c.RenderNavbar(ctx)
	c.bindLogout(ctx)

	c.setState(StateRendered)
	return nil
}

// LogoutControl returns the element the logout listener is bound to, or nil.
func (c *Controller) LogoutControl() *dom.Element {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.bound
}

func (c *Controller) bindLogout(ctx context.Context) {
	if c.doc == nil {
		return
	}
	btn := c.doc.GetElementByID(IDLogoutButton)
	if btn == nil {
		btn = c.doc.QuerySelector(SelectorLogoutButton)
	}

	// The click may come after the caller's context is gone; logout keeps
	// its values but not its cancellation.
	clickCtx := context.WithoutCancel(ctx)
	next := dom.NewListener(func(e *dom.Event) {
		e.PreventDefault()
		c.Logout(clickCtx)
	})

	c.mu.Lock()
	prevEl, prev := c.bound, c.listener
	if btn != nil {
		c.bound, c.listener = btn, next
	} else {
		c.bound, c.listener = nil, nil
	}
	c.mu.Unlock()

	if prevEl != nil && prev != nil {
		prevEl.RemoveEventListener("click", prev)
	}
	if btn == nil {
		c.log.Debugw("no logout control on page")
		return
	}
	btn.AddEventListener("click", next)
}

func show(el *dom.Element) {
	if el == nil {
		return
	}
	el.RemoveClass(HiddenClass)
	el.SetDisplay("flex")
}

func hide(el *dom.Element) {
	if el == nil {
		return
	}
	el.SetDisplay("none")
	el.AddClass(HiddenClass)
}
