// Package browser opens URLs with the system's external browser.
package browser

import (
	"context"
	"net/url"

	"github.com/pkg/browser"
)

// Launcher hands a URL to the external browser.
type Launcher func(url string) error

// Opener implements domain.URLOpener. Some browser launchers mangle URLs
// containing characters they treat specially, so a failed launch is retried
// once with the URL re-encoded through net/url.
type Opener struct {
	launch Launcher
}

// NewOpener creates an Opener using the platform browser.
func NewOpener() *Opener {
	return &Opener{launch: browser.OpenURL}
}

// NewOpenerWithLauncher creates an Opener with a custom launcher.
func NewOpenerWithLauncher(launch Launcher) *Opener {
	return &Opener{launch: launch}
}

// Open implements domain.URLOpener. When both the raw URL and its
// re-encoded form fail, the first error is returned; it describes the URL
// the caller actually asked for.
func (o *Opener) Open(_ context.Context, raw string) error {
	firstErr := o.launch(raw)
	if firstErr == nil {
		return nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return firstErr
	}
	if err := o.launch(u.String()); err != nil {
		return firstErr
	}
	return nil
}
