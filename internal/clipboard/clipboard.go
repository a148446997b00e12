// Package clipboard writes generated passwords to the system clipboard.
package clipboard

import (
	"errors"

	"github.com/atotto/clipboard"
)

// ErrUnavailable is returned when no clipboard utility is installed
// (xclip, xsel or wl-copy on Linux).
var ErrUnavailable = errors.New("system clipboard unavailable")

// System is the host clipboard.
type System struct{}

// WriteAll replaces the clipboard contents with text.
func (System) WriteAll(text string) error {
	if clipboard.Unsupported {
		return ErrUnavailable
	}
	return clipboard.WriteAll(text)
}

// Available reports whether the host has a usable clipboard.
func Available() bool {
	return !clipboard.Unsupported
}
