// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package cmd provides the command-line interface for vitrine, the storefront
// session client. It implements subcommands that render a page's navbar for
// the cached session, gate a page, log in and log out, using the Cobra CLI
// framework and pterm for terminal output.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	clierrors "vitrine/cli/internal/errors"
	"vitrine/cli/internal/logging"
)

var (
	showVersion bool
	logLevel    string
	apiURL      string
	storageKind string
)

// rootCmd represents the base command when called without any subcommands.
// It serves as the entry point for the vitrine CLI application.
var rootCmd = &cobra.Command{
	Use:   "vitrine",
	Short: "Storefront session client: navbar, login gate and logout",
	Long: `vitrine reads the storefront user cached under "usuario", renders the
guest or logged-in navbar of an HTML page, sends visitors without a session
to login.html and logs out against the store API.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadApp(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			printVersion()
			return nil
		}
		// If no flag is set, show help
		return cmd.Help()
	},
}

// Execute runs the CLI application.
// It executes the root command and handles any errors that occur during execution.
func Execute() {
	err := rootCmd.Execute()
	closeApp()
	if err != nil {
		fmt.Fprintln(os.Stderr, logging.PresentError("vitrine", err))
		os.Exit(clierrors.ExitCode(err))
	}
}

func init() {
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "Show CLI version and API address")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Store API base URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&storageKind, "storage", "", "Storage backend: keyring, bolt or memory (overrides config)")
}
