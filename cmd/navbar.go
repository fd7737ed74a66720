// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	clierrors "vitrine/cli/internal/errors"
	"vitrine/cli/internal/identity"
	"vitrine/cli/internal/page"
)

var (
	navbarURL         string
	navbarOutput      string
	navbarClickLogout bool
)

// navbarCmd renders an HTML page the way it looks once its auth script ran.
var navbarCmd = &cobra.Command{
	Use:   "navbar PAGE.html",
	Short: "Render a page's navbar for the cached session",
	Long: `The navbar command loads an HTML page, waits for it to be ready, shows the
guest menu (#menu-visitante) or the logged-in menu (#menu-usuario) for the
cached user, fills #nav-user and #user-name, and binds the logout control
(#btn-logout or .btn-logout).

The resulting HTML goes to --output, or to stdout when no output is given.
With --click-logout the bound logout control is clicked after rendering.`,
	Args: cobra.ExactArgs(1),

	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		p, err := page.Load(args[0], navbarURL)
		if err != nil {
			return clierrors.Wrap(clierrors.PageLoadFailed, "load page", err)
		}
		ctrl, err := current.controller(p)
		if err != nil {
			return err
		}

		// the auth script is registered before the page finishes loading
		done := make(chan error, 1)
		go func() { done <- ctrl.InitAuth(ctx) }()
		p.Document().MarkComplete()
		if err := <-done; err != nil {
			return err
		}
		id, _ := ctrl.ReadSession(ctx)
		view := identity.ViewOf(id)
		toStdout := navbarOutput == "" || navbarOutput == "-"

		if navbarClickLogout {
			btn := ctrl.LogoutControl()
			if btn == nil {
				pterm.Warning.WithWriter(os.Stderr).Println("No logout control on this page (#btn-logout or .btn-logout)")
			} else {
				stop := func() {}
				if !toStdout {
					stop = startSpinner("Logging out")
				}
				btn.Click()
				stop()
				// the page navigated away; show what is left behind
				view = ctrl.RenderNavbar(ctx)
			}
		}

		var buf bytes.Buffer
		if err := p.Document().Render(&buf); err != nil {
			return clierrors.Wrap(clierrors.PageLoadFailed, "render page", err)
		}
		if toStdout {
			_, err := os.Stdout.Write(buf.Bytes())
			return err
		}
		if err := os.WriteFile(navbarOutput, buf.Bytes(), 0o644); err != nil {
			return clierrors.Wrap(clierrors.PageLoadFailed, "write "+navbarOutput, err)
		}

		printBox("Navbar", navbarSummary(view, ctrl.LogoutControl() != nil))
		for _, to := range p.Navigations() {
			fmt.Printf("→ navigated to %s\n", to)
		}
		pterm.Success.Printf("Wrote %s\n", navbarOutput)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(navbarCmd)
	navbarCmd.Flags().StringVar(&navbarURL, "url", "", "URL the page is served from (default: file:// URL of PAGE.html)")
	navbarCmd.Flags().StringVarP(&navbarOutput, "output", "o", "", "Write the rendered HTML here instead of stdout")
	navbarCmd.Flags().BoolVar(&navbarClickLogout, "click-logout", false, "Click the logout control after rendering")
}
