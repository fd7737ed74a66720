// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package auth

import (
	"context"
	"errors"

	"vitrine/cli/internal/identity"
	"vitrine/cli/internal/storage"
)

// ReadSession returns the cached identity when local storage holds a valid
// record. It never fails: a missing entry, a storage error, malformed JSON
// or a record without id, nome and email all read as no session.
func (c *Controller) ReadSession(ctx context.Context) (*identity.Identity, bool) {
	raw, err := c.local.Get(KeyUsuario)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.log.Debugw("no cached session")
		} else {
			c.log.Errorw("read cached session", "error", err)
		}
		return nil, false
	}

	id, err := identity.Parse([]byte(raw))
	if err != nil {
		c.log.Warnw("parse cached session", "error", err)
		return nil, false
	}
	if !id.Valid() {
		c.log.Debugw("cached session has no id, nome or email")
		return nil, false
	}
	return id, true
}

// RequireSession returns the session when there is one. Otherwise, when
// redirectOnMissing is set, it stores the current location under
// redirectAfterLogin and navigates to the login page.
func (c *Controller) RequireSession(ctx context.Context, redirectOnMissing bool) (*identity.Identity, bool) {
	if id, ok := c.ReadSession(ctx); ok {
		return id, true
	}
	if !redirectOnMissing {
		return nil, false
	}

	here := c.nav.Location()
	if err := c.session.Set(KeyRedirectAfterLogin, here); err != nil {
		c.log.Errorw("store redirect target", "target", here, "error", err)
	}
	c.log.Infow("session required, redirecting to login", "from", here)
	c.nav.Assign(c.loginPage)
	return nil, false
}
