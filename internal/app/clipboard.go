package app

import "github.com/atotto/clipboard"

// clipboardWriteAll is swapped out in tests.
var clipboardWriteAll = clipboard.WriteAll

// Clipboard receives copied diff text.
type Clipboard interface {
	Copy(text string) error
}

// SystemClipboard writes to the platform clipboard.
type SystemClipboard struct{}

// Copy copies text to the system clipboard.
func (SystemClipboard) Copy(text string) error {
	return clipboardWriteAll(text)
}
