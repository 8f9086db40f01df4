package cli

import (
	"errors"

	"github.com/manifoldco/promptui"
)

// ErrCancelled is returned when the user aborts an interactive prompt.
var ErrCancelled = errors.New("cancelled")

// Prompter asks the user for input on an interactive terminal.
type Prompter interface {
	// Secret reads a masked value, re-asking until validate accepts it.
	Secret(label string, validate func(string) error) (string, error)
	// Confirm asks a yes/no question; false means the user declined.
	Confirm(label string) (bool, error)
}

// TerminalPrompter implements Prompter with promptui.
type TerminalPrompter struct{}

// Secret implements Prompter.
func (TerminalPrompter) Secret(label string, validate func(string) error) (string, error) {
	prompt := promptui.Prompt{
		Label:    label,
		Mask:     '*',
		Validate: validate,
	}

	value, err := prompt.Run()
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
		return "", ErrCancelled
	}
	return value, err
}

// Confirm implements Prompter.
func (TerminalPrompter) Confirm(label string) (bool, error) {
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}

	_, err := prompt.Run()
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, promptui.ErrAbort):
		return false, nil
	case errors.Is(err, promptui.ErrInterrupt), errors.Is(err, promptui.ErrEOF):
		return false, ErrCancelled
	default:
		return false, err
	}
}
