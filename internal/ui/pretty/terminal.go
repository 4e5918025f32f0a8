package pretty

import (
	"io"

	"golang.org/x/term"
)

// TerminalWidth returns the column count of the terminal behind writer,
// or 0 when writer is not a terminal.
func TerminalWidth(writer io.Writer) int {
	if !IsTerminal(writer) {
		return 0
	}

	f, ok := writer.(interface{ Fd() uintptr })
	if !ok {
		return 0
	}

	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return 0
	}
	return width
}
