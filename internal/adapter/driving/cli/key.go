package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ericfisherdev/professionalaize/internal/domain/model"
)

const removeConfirmLabel = "Remove the API key? Rewriting stops working until a new key is set"

func newKeyCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Manage the stored Gemini API key",
	}

	cmd.AddCommand(newKeySetCommand(app))
	cmd.AddCommand(newKeyShowCommand(app))
	cmd.AddCommand(newKeyRemoveCommand(app))
	return cmd
}

func newKeySetCommand(app *App) *cobra.Command {
	var key string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Store a Gemini API key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("key") {
				var err error
				key, err = app.Prompter.Secret("Gemini API key", func(s string) error {
					_, err := model.ValidateAPIKey(s)
					return err
				})
				if err != nil {
					return err
				}
			}

			if err := app.Credentials.Set(cmd.Context(), key); err != nil {
				var validationErr *model.ValidationError
				if errors.As(err, &validationErr) {
					printError(cmd.ErrOrStderr(), "%s", validationErr.Message)
				} else {
					printError(cmd.ErrOrStderr(), "Error saving API key. Please try again.")
				}
				return reported(err)
			}

			status := app.Credentials.Status(cmd.Context())
			printSuccess(cmd.OutOrStdout(), "API key saved successfully! (%s)", status.Masked)
			return nil
		},
	}

	cmd.Flags().StringVar(&key, "key", "", "API key to store; prompts when omitted")
	return cmd
}

func newKeyShowCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the stored API key, masked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			status := app.Credentials.Status(cmd.Context())
			if !status.Configured {
				printInfo(cmd.OutOrStdout(), "No API key is stored.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "API key: %s\n", yellow(status.Masked))
			return nil
		},
	}
}

func newKeyRemoveCommand(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "remove",
		Short:   "Remove the stored API key",
		Aliases: []string{"rm"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				ok, err := app.Prompter.Confirm(removeConfirmLabel)
				if err != nil {
					return err
				}
				if !ok {
					printInfo(cmd.OutOrStdout(), "Kept the API key.")
					return nil
				}
			}

			if err := app.Credentials.Remove(cmd.Context()); err != nil {
				printError(cmd.ErrOrStderr(), "Error removing API key. Please try again.")
				return reported(err)
			}

			printSuccess(cmd.OutOrStdout(), "API key removed successfully!")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}
