package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"vitrine/cli/internal/page"
)

// whoamiCmd shows the cached storefront user. It never calls the API: the
// navbar trusts the cached record and so does this command.
var whoamiCmd = &cobra.Command{
	Use:     "whoami",
	Aliases: []string{"me"},
	Short:   "Show the cached storefront user",
	Long: `The whoami command reads the user record cached under "usuario" the same way
the navbar does. A record needs an id, a nome or an email to count as a session.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := page.Blank("index.html")
		if err != nil {
			return err
		}
		ctrl, err := current.controller(p)
		if err != nil {
			return err
		}

		id, ok := ctrl.ReadSession(cmd.Context())
		if !ok {
			printNotLoggedIn()
			return nil
		}
		fmt.Println(getWhoAmIPhrase(describeUser(id)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

// getWhoAmIPhrase returns a friendly phrase with the user's identifier
func getWhoAmIPhrase(identifier string) string {
	return fmt.Sprintf("👤 Current user: %s", identifier)
}
