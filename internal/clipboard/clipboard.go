// Package clipboard provides cross-platform clipboard support.
package clipboard

import (
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/x/ansi"
)

// Write copies text to the system clipboard with terminal styling removed.
func Write(text string) error {
	return clipboard.WriteAll(ansi.Strip(text))
}

// Available checks if clipboard functionality is available.
func Available() bool {
	return !clipboard.Unsupported
}
