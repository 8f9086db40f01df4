// Package cli is the command-line driving adapter behind paictl.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/ericfisherdev/professionalaize/internal/application"
)

// App carries the services the commands drive.
type App struct {
	Relay       *application.RelayService
	Credentials *application.CredentialService
	Prompter    Prompter
}

// NewRootCommand builds the paictl command tree.
func NewRootCommand(app *App) *cobra.Command {
	if app.Prompter == nil {
		app.Prompter = TerminalPrompter{}
	}

	root := &cobra.Command{
		Use:           "paictl",
		Short:         "paictl - rewrite messages in a professional tone with Gemini.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newRewriteCommand(app))
	root.AddCommand(newKeyCommand(app))
	return root
}
