// Package terminal provides utilities for terminal operations such as
// clearing text and showing an inline spinner while a query is in flight.
package terminal

import (
	"fmt"
	"math"
	"os"

	"golang.org/x/term"
)

// IsInteractive reports whether stdin is attached to a terminal.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// ClearScreen clears the terminal and homes the cursor.
func ClearScreen() {
	fmt.Print("\x1b[2J\x1b[H")
}

// ClearPreviousLines clears text from the terminal that was previously
// printed. It calculates how many lines were used by the provided text
// based on the current terminal width, then moves up and clears each line.
// Useful for cleaning up secret input prompts after they've been entered.
func ClearPreviousLines(textLength int) {
	// Get terminal width to calculate line wrapping
	termWidth := 80 // default fallback
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		termWidth = width
	}

	totalLines := int(math.Ceil(float64(textLength) / float64(termWidth)))
	if totalLines < 1 {
		totalLines = 1
	}

	// After Enter the cursor sits on a new line below the input; clear it too.
	linesToClear := totalLines + 1

	for i := 0; i < linesToClear; i++ {
		fmt.Print("\r\x1b[2K") // Move to start and clear entire line
		if i < linesToClear-1 {
			fmt.Print("\x1b[1A") // Move up one line
		}
	}
}
