// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	clierrors "vitrine/cli/internal/errors"
	"vitrine/cli/internal/page"
)

var logoutURL string

// logoutCmd represents the logout command for clearing the cached session.
// The server is told first (best effort); the local record is removed in
// any case.
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the store session and remove the cached user",
	Long: `The logout command posts to {API_URL}/logout with the session cookie, then
removes the user cached under "usuario" and navigates to the login page.

The server call is best-effort: if the API is down, slow or has no logout
endpoint, the local session is still removed.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := page.Blank(logoutURL)
		if err != nil {
			return clierrors.Wrap(clierrors.PageLoadFailed, "open page", err)
		}
		ctrl, err := current.controller(p)
		if err != nil {
			return err
		}

		stop := startSpinner("Logging out")
		ctrl.Logout(cmd.Context())
		stop()

		fmt.Println("✅ Logged out, cached user removed")
		for _, to := range p.Navigations() {
			fmt.Printf("→ navigated to %s\n", to)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
	logoutCmd.Flags().StringVar(&logoutURL, "url", "index.html", "URL of the page the logout starts from")
}
