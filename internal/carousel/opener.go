package carousel

import (
	"io"

	"github.com/pkg/browser"
)

// Opener shows a candidate link to the user.
type Opener interface {
	Open(url string) error
}

// OpenerFunc adapts a function to Opener.
type OpenerFunc func(url string) error

func (f OpenerFunc) Open(url string) error { return f(url) }

// BrowserOpener launches the system browser in a separate process, detached
// from the terminal session.
type BrowserOpener struct{}

func (BrowserOpener) Open(url string) error {
	// the launcher's own output would corrupt the alt screen
	browser.Stdout = io.Discard
	browser.Stderr = io.Discard
	return browser.OpenURL(url)
}

// Logger receives failures to open a link.
type Logger interface {
	Warn(format string, args ...any)
}

// Activate opens candidate through o. Failures are logged, never returned:
// a blocked or missing browser is not an application error.
func Activate(o Opener, candidate Candidate, logger Logger) {
	if o == nil || candidate.URL == "" {
		return
	}
	if err := o.Open(candidate.URL); err != nil && logger != nil {
		logger.Warn("could not open %s: %v", candidate.URL, err)
	}
}
