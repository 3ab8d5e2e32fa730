package popup

import (
	"io"
	"sync"

	"github.com/pkg/browser"
)

var (
	openURL = browser.OpenURL
	// quietMu serializes swaps of the browser package's output writers.
	quietMu sync.Mutex
)

// Opener hands a url to whatever displays it.
type Opener interface {
	Open(url string) error
}

// OpenerFunc adapts a function to an Opener.
type OpenerFunc func(url string) error

func (f OpenerFunc) Open(url string) error { return f(url) }

// BrowserOpener opens urls in the system's default browser.
type BrowserOpener struct {
	// Quiet discards the launcher's own output, which would corrupt a full-screen UI.
	Quiet bool
}

func (o BrowserOpener) Open(url string) error {
	if !o.Quiet {
		return openURL(url)
	}
	quietMu.Lock()
	defer quietMu.Unlock()
	stdout, stderr := browser.Stdout, browser.Stderr
	browser.Stdout, browser.Stderr = io.Discard, io.Discard
	defer func() {
		browser.Stdout, browser.Stderr = stdout, stderr
	}()
	return openURL(url)
}
