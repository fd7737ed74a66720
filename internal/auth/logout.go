// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package auth

import (
	"context"
	"fmt"
)

// Logout notifies the server (best-effort) and then, whatever happened,
// removes the cached identity and navigates to the login page.
func (c *Controller) Logout(ctx context.Context) {
	defer c.clearAndLeave()

	if c.notifier == nil {
		return
	}
	if err := c.notify(ctx); err != nil {
		c.log.Warnw("server logout failed, clearing local session anyway", "error", err)
		return
	}
	c.log.Debugw("server logout acknowledged")
}

func (c *Controller) notify(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("logout notifier panicked: %v", r)
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return c.notifier.Logout(ctx)
}

func (c *Controller) clearAndLeave() {
	if err := c.local.Remove(KeyUsuario); err != nil {
		c.log.Errorw("remove cached session", "error", err)
	}
	c.log.Infow("logged out", "to", c.loginPage)
	c.nav.Assign(c.loginPage)
}
