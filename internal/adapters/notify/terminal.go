// Package notify presents messages and actionable prompts on the terminal.
package notify

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"

	"github.com/miskreant/GitWebLinks/internal/domain"
)

// Terminal implements domain.Notifier with pterm printers on stderr, so
// stdout stays reserved for the generated link.
type Terminal struct {
	interactive bool
	out         io.Writer
	info        pterm.PrefixPrinter
	errored     pterm.PrefixPrinter
	confirm     pterm.InteractiveConfirmPrinter
}

// NewTerminal creates a Terminal. Prompts are only enabled when stdin and
// stderr are both terminals; piped or scripted invocations see every
// notification as dismissed instead of blocking on input that never comes.
func NewTerminal() *Terminal {
	interactive := isTerminal(os.Stdin) && isTerminal(os.Stderr)
	return newTerminal(interactive, os.Stderr)
}

func newTerminal(interactive bool, w io.Writer) *Terminal {
	return &Terminal{
		interactive: interactive,
		out:         w,
		info:        *pterm.Info.WithWriter(w),
		errored:     *pterm.Error.WithWriter(w),
		confirm:     pterm.DefaultInteractiveConfirm,
	}
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Info implements domain.Notifier.
func (t *Terminal) Info(_ context.Context, message string) {
	t.info.Println(message)
}

// Error implements domain.Notifier.
func (t *Terminal) Error(_ context.Context, message string) {
	t.errored.Println(message)
}

// Ask implements domain.Notifier. Non-interactive invocations print the
// message and report a dismissal.
func (t *Terminal) Ask(_ context.Context, message string, action domain.NotificationAction) (string, error) {
	if !t.interactive {
		fmt.Fprintln(t.out, message)
		return "", nil
	}

	ok, err := t.confirm.Show(message + " " + action.Title + "?")
	if err != nil {
		return "", fmt.Errorf("prompt failed: %w", err)
	}
	if !ok {
		return "", nil
	}
	return action.Tag, nil
}
