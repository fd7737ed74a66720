// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"atomicgo.dev/cursor"
	"github.com/pterm/pterm"

	"vitrine/cli/internal/identity"
)

var spinnerFrames = []string{"|", "/", "-", "\\"}

// startSpinner shows a one-line spinner followed by text until the returned
// function is called. The line is removed when done and the cursor is hidden
// while it runs. When the area cannot be started (no terminal) it is a no-op.
func startSpinner(text string) func() {
	cursor.Hide()
	area, err := pterm.DefaultArea.WithRemoveWhenDone(true).Start()
	if err != nil {
		cursor.Show()
		return func() {}
	}

	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		t := time.NewTicker(120 * time.Millisecond)
		defer t.Stop()
		i := 0
		area.Update(fmt.Sprintf("%s %s", spinnerFrames[0], text))
		for {
			select {
			case <-t.C:
				i++
				area.Update(fmt.Sprintf("%s %s", spinnerFrames[i%len(spinnerFrames)], text))
			case <-stop:
				return
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			close(stop)
			wg.Wait()
			_ = area.Stop()
			cursor.Show()
		})
	}
}

// navbarSummary describes the rendered navbar for the terminal.
func navbarSummary(view identity.ViewState, logoutBound bool) string {
	var b strings.Builder
	if view.Authenticated {
		b.WriteString(pterm.NewStyle(pterm.FgGreen, pterm.Bold).Sprint("logged-in menu"))
		b.WriteString("\n")
		b.WriteString("#nav-user   " + view.Greeting() + "\n")
		b.WriteString("#user-name  " + view.DisplayName)
	} else {
		b.WriteString(pterm.NewStyle(pterm.FgYellow, pterm.Bold).Sprint("guest menu"))
		b.WriteString("\n")
		b.WriteString("#menu-visitante shown, #menu-usuario hidden")
	}
	if logoutBound {
		b.WriteString("\nlogout control bound")
	}
	return b.String()
}

// printBox prints body in a titled pterm box.
func printBox(title, body string) {
	pterm.DefaultBox.
		WithTitle(pterm.NewStyle(pterm.FgCyan, pterm.Bold).Sprint(title)).
		WithPadding(1).
		Println(body)
}

// printNotLoggedIn is shown by commands that found no cached user.
func printNotLoggedIn() {
	fmt.Println("🔒 You're not logged in yet!")
	fmt.Println("   Run 'vitrine login' to get started.")
}

// describeUser is the one-line form of a cached user.
func describeUser(id *identity.Identity) string {
	name := id.DisplayName()
	if email := id.Email(); email != "" && email != name {
		return fmt.Sprintf("%s <%s>", name, email)
	}
	return name
}
