package remote

import (
	"io"

	"github.com/pkg/browser"
)

// BrowserOpener opens URLs in the system web browser.
type BrowserOpener struct{}

// NewBrowserOpener silences the launcher's own output, which would
// otherwise land on the terminal the shell is drawing.
func NewBrowserOpener() *BrowserOpener {
	browser.Stdout = io.Discard
	browser.Stderr = io.Discard
	return &BrowserOpener{}
}

func (*BrowserOpener) Open(url string) error {
	return browser.OpenURL(url)
}
