package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ericfisherdev/professionalaize/internal/domain/model"
)

func newRewriteCommand(app *App) *cobra.Command {
	var example, tone, mode string

	cmd := &cobra.Command{
		Use:   "rewrite [text...]",
		Short: "Rewrite a message",
		Long: `Rewrite a message in the style of an example, or formalize it for recruiters.
With no arguments the message is read from standard input.`,
		Aliases: []string{"rw"},
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			if len(args) == 0 {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				text = string(data)
			}

			resp := app.Relay.Process(cmd.Context(), model.RelayRequest{
				Action:  model.ActionProcessText,
				Text:    text,
				Example: example,
				Tone:    tone,
				Mode:    mode,
			})
			if !resp.Success {
				printError(cmd.ErrOrStderr(), "%s", resp.Error)
				if resp.Code == model.CodeCredentialMissing {
					printInfo(cmd.ErrOrStderr(), "Run 'paictl key set' to store your Gemini API key.")
				}
				return reported(errors.New(resp.Error))
			}

			fmt.Fprintln(cmd.OutOrStdout(), resp.Data)
			return nil
		},
	}

	cmd.Flags().StringVarP(&example, "example", "e", "", "example whose style to copy (default: built-in corporate example)")
	cmd.Flags().StringVarP(&tone, "tone", "t", "", "tone of the rewrite (default \"Professional\")")
	cmd.Flags().StringVarP(&mode, "mode", "m", string(model.PromptModeStyleRewrite), "prompt mode: style or formalize")
	return cmd
}
