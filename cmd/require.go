// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	clierrors "vitrine/cli/internal/errors"
	"vitrine/cli/internal/page"
)

var (
	requireURL        string
	requireNoRedirect bool
)

// requireCmd is the login gate of a protected page.
var requireCmd = &cobra.Command{
	Use:   "require",
	Short: "Gate a page on the cached session",
	Long: `The require command behaves like a protected storefront page: with a cached
user it prints the user; without one it remembers --url as the page to return
to after login (redirectAfterLogin) and navigates to the login page.

With --no-redirect nothing is stored and no navigation happens. The command
exits with status 6 when there is no session.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := page.Blank(requireURL)
		if err != nil {
			return clierrors.Wrap(clierrors.PageLoadFailed, "open page", err)
		}
		ctrl, err := current.controller(p)
		if err != nil {
			return err
		}

		id, ok := ctrl.RequireSession(cmd.Context(), !requireNoRedirect)
		if ok {
			fmt.Println(getWhoAmIPhrase(describeUser(id)))
			return nil
		}

		printNotLoggedIn()
		for _, to := range p.Navigations() {
			fmt.Printf("→ navigated to %s\n", to)
		}
		return clierrors.New(clierrors.SessionRequired, "no session for "+requireURL)
	},
}

func init() {
	rootCmd.AddCommand(requireCmd)
	requireCmd.Flags().StringVar(&requireURL, "url", "index.html", "URL of the protected page")
	requireCmd.Flags().BoolVar(&requireNoRedirect, "no-redirect", false, "Only check, do not store the page or navigate")
}
