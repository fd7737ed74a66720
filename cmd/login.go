// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"vitrine/cli/internal/auth"
	"vitrine/cli/internal/backend"
	clierrors "vitrine/cli/internal/errors"
	"vitrine/cli/internal/httperrors"
	"vitrine/cli/internal/logging"
	"vitrine/cli/internal/terminal"
)

var (
	loginEmail    string
	loginPassword string
	loginAdmin    bool
)

// loginCmd represents the login command. It plays the part of login.html:
// authenticate, cache the returned user under "usuario" and send the user
// back to the page that asked for a session.
var loginCmd = &cobra.Command{
	Use:     "login",
	Aliases: []string{"auth"},
	Short:   "Log in to the store and cache the user",
	Long: `The login command posts {email, password} to {API_URL}/login (or /admins/login
with --admin) and caches the returned user record under "usuario", exactly as
the server sent it.

If a protected page sent you here (see 'vitrine require'), its address is
taken from redirectAfterLogin, removed, and printed as the next page.

Missing --email or --password are asked for interactively.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		creds, err := promptCredentials()
		if err != nil {
			return err
		}

		local, session, err := current.stores()
		if err != nil {
			return err
		}
		be, err := current.api()
		if err != nil {
			return err
		}
		svc := auth.NewService(be, local, session, current.log)

		stop := startSpinner("Logging in")
		id, redirect, err := svc.Login(ctx, creds)
		stop()
		if err != nil {
			var se *backend.StatusError
			if errors.As(err, &se) {
				logging.PresentAPIError("log in", err)
			} else if !errors.Is(err, auth.ErrInvalidRecord) && !errors.Is(err, backend.ErrNoUser) {
				err = httperrors.FormatNetworkError(err, "logging in", current.cfg.APIURL)
			}
			return clierrors.Wrap(clierrors.LoginFailed, "log in as "+creds.Email, err)
		}

		fmt.Println(getRandomLoginGreeting(id.DisplayName()))
		if redirect != "" {
			fmt.Printf("→ continue at %s\n", redirect)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Account e-mail")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Account password (prompted when omitted)")
	loginCmd.Flags().BoolVar(&loginAdmin, "admin", false, "Log in as a store administrator")
}

// promptCredentials fills in what the flags left out. Prompts are wiped
// from the terminal once answered.
func promptCredentials() (backend.Credentials, error) {
	creds := backend.Credentials{
		Email:    strings.TrimSpace(loginEmail),
		Password: loginPassword,
		Admin:    loginAdmin,
	}
	interactive := terminal.IsInteractive(os.Stdin)

	if creds.Email == "" {
		if !interactive {
			return creds, clierrors.New(clierrors.ConfigInvalid, "--email is required")
		}
		const prompt = "E-mail"
		v, err := pterm.DefaultInteractiveTextInput.Show(prompt)
		if err != nil {
			return creds, err
		}
		terminal.ClearPreviousLines(len(prompt) + len(v) + 2)
		creds.Email = strings.TrimSpace(v)
	}

	if creds.Password == "" {
		if !interactive {
			return creds, clierrors.New(clierrors.ConfigInvalid, "--password is required")
		}
		const prompt = "Password"
		v, err := pterm.DefaultInteractiveTextInput.WithMask("*").Show(prompt)
		if err != nil {
			return creds, err
		}
		terminal.ClearPreviousLines(len(prompt) + len(v) + 2)
		creds.Password = v
	}
	return creds, nil
}

// getRandomLoginGreeting returns a random greeting phrase with the user's name
func getRandomLoginGreeting(name string) string {
	greetings := []string{
		"🎉 Olá, %s! Welcome back.",
		"✨ Great to see you, %s!",
		"🛒 Your cart is waiting, %s!",
		"👋 Hello %s!",
		"✅ Logged in as %s",
	}

	idx := rand.IntN(len(greetings))
	return fmt.Sprintf(greetings[idx], name)
}
