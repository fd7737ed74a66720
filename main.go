// Package main is the entry point for the vitrine CLI application.
// It renders storefront pages for the cached session and handles login and logout.
package main

import (
	"vitrine/cli/cmd"
)

// main is the entry point for the vitrine CLI application.
// It initializes and executes the command-line interface.
func main() {
	cmd.Execute()
}
