// Package util provides a collection of domain-agnostic utility functions and cross-platform helpers.
package util

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/fastvideo-cli/fastvideo/filesystem"
	"golang.org/x/exp/constraints"
	"golang.org/x/term"
)

// FormatTime renders a playback position as m:ss, the way the control bar shows it.
// Hours are folded into minutes, so 3725 seconds renders as 62:05.
func FormatTime(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) {
		seconds = 0
	}
	minutes := int(seconds / 60)
	secs := int(math.Mod(seconds, 60))
	return fmt.Sprintf("%d:%02d", minutes, secs)
}

// Capitalize transforms the first rune of a string to its uppercase equivalent.
func Capitalize(s string) string {
	if len(s) == 0 {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// TerminalSize retrieves the current character dimensions of the terminal window.
func TerminalSize() (width, height int, err error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// PrintErasable prints an ephemeral message to the terminal and returns a closure to clear it.
func PrintErasable(msg string) (eraser func()) {
	fmt.Fprintf(os.Stdout, "\r%s", msg)
	return func() {
		fmt.Fprintf(os.Stdout, "\r%s\r", strings.Repeat(" ", len(msg)))
	}
}

// Ignore runs f and drops its error.
func Ignore(f func() error) {
	_ = f()
}

// Max returns the maximum value among arguments.
func Max[T constraints.Ordered](items ...T) (max T) {
	if len(items) == 0 {
		return
	}
	max = items[0]
	for _, item := range items[1:] {
		if item > max {
			max = item
		}
	}
	return
}

// Delete recursively removes a file or directory using the virtualized filesystem API.
func Delete(path string) error {
	fs := filesystem.API()
	stat, err := fs.Stat(path)
	if err != nil {
		return err
	}

	if stat.IsDir() {
		return fs.RemoveAll(path)
	}
	return fs.Remove(path)
}
