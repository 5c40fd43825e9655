package terminal

import (
	"os"

	"golang.org/x/term"
)

// Terminal is a Transport over the controlling terminal in raw mode.
type Terminal struct {
	*Stream
	oldState *term.State
	width    int
	height   int
	restored bool
}

// NewTerminal switches the controlling terminal to raw mode on the
// alternate screen. Callers must Restore it.
func NewTerminal() (*Terminal, error) {
	t := &Terminal{Stream: NewStream(os.Stdin, os.Stdout)}

	// Switch to raw mode.
	oldState, err := term.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		return nil, err
	}
	t.oldState = oldState

	// Enter alternate screen buffer.
	os.Stdout.WriteString("\x1b[?1049h")

	// Query size.
	t.width, t.height, err = term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		t.Restore()
		return nil, err
	}

	return t, nil
}

// IsTerminal reports whether stdin and stdout are both terminals.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// Width returns the terminal width at startup.
func (t *Terminal) Width() int { return t.width }

// Height returns the terminal height at startup.
func (t *Terminal) Height() int { return t.height }

// Restore returns the terminal to its original state. Calls after the
// first do nothing.
func (t *Terminal) Restore() {
	if t.restored {
		return
	}
	t.restored = true
	// Show cursor.
	os.Stdout.WriteString("\x1b[?25h")
	// Leave alternate screen buffer.
	os.Stdout.WriteString("\x1b[?1049l")
	if t.oldState != nil {
		term.Restore(int(os.Stdin.Fd()), t.oldState)
	}
}
