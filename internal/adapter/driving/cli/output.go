package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
)

func printSuccess(w io.Writer, format string, a ...any) {
	fmt.Fprintln(w, green("✔ "+fmt.Sprintf(format, a...)))
}

func printError(w io.Writer, format string, a ...any) {
	fmt.Fprintln(w, red("✖ "+fmt.Sprintf(format, a...)))
}

func printInfo(w io.Writer, format string, a ...any) {
	fmt.Fprintln(w, cyan(fmt.Sprintf(format, a...)))
}

// reportedError marks an error whose message was already printed to the user.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

func reported(err error) error {
	return &reportedError{err: err}
}

// Reported reports whether err was already shown to the user by a command,
// so the caller only needs to set the exit status.
func Reported(err error) bool {
	var r *reportedError
	return errors.As(err, &r)
}
