// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"vitrine/cli/internal/config"
	clierrors "vitrine/cli/internal/errors"
	"vitrine/cli/internal/xdg"
)

var configSave bool

// configCmd prints the effective configuration and can persist it.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `The config command prints the configuration after defaults, config.json,
.env, environment variables and flags have been applied.

With --save the result is written to config.json in the XDG config directory
(0600), so flags like --api-url become the new defaults.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := json.MarshalIndent(current.cfg, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(b))

		if !configSave {
			return nil
		}
		if err := config.Save(current.cfg); err != nil {
			return clierrors.Wrap(clierrors.ConfigInvalid, "save configuration", err)
		}
		path, _ := xdg.ConfigFile()
		pterm.Success.Printf("Saved %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.Flags().BoolVar(&configSave, "save", false, "Write the effective configuration to config.json")
}
