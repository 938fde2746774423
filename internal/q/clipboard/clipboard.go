// Package clipboard reads and writes the system clipboard as text. It wraps github.com/atotto/clipboard, which shells out to pbcopy/pbpaste, xclip/xsel/wl-clipboard or the
// Windows clipboard API, and reports a missing integration as ErrUnavailable.
package clipboard

import (
	"errors"
	"fmt"
	"sync"

	"github.com/atotto/clipboard"
)

// ErrUnavailable indicates that the clipboard is not usable on this system (typically because the required OS integration or command-line utilities are missing).
var ErrUnavailable = errors.New("clipboard unavailable")

type backend interface {
	read() (string, error)
	write(string) error
}

type systemBackend struct{}

func (systemBackend) read() (string, error) { return clipboard.ReadAll() }
func (systemBackend) write(s string) error  { return clipboard.WriteAll(s) }

var (
	backendOnce sync.Once
	backendImpl backend
	backendErr  error

	// unsupported reports whether atotto found no clipboard utility. Replaced in tests.
	unsupported = func() bool { return clipboard.Unsupported }
	newBackend  = func() backend { return systemBackend{} }
)

// Read reads from the clipboard and returns the text in it.
func Read() (string, error) {
	b, err := getBackend()
	if err != nil {
		return "", err
	}
	s, err := b.read()
	if err != nil {
		return "", fmt.Errorf("clipboard read: %w", err)
	}
	return s, nil
}

// Write writes s to the clipboard.
func Write(s string) error {
	b, err := getBackend()
	if err != nil {
		return err
	}
	if err := b.write(s); err != nil {
		return fmt.Errorf("clipboard write: %w", err)
	}
	return nil
}

// Available reports whether the clipboard is available on this system.
//
// This is intended as a cheap capability check for gating UI/feature flags.
func Available() bool {
	_, err := getBackend()
	return err == nil
}

func getBackend() (backend, error) {
	backendOnce.Do(func() {
		if unsupported() {
			backendErr = fmt.Errorf("%w: no clipboard utility found (install xclip, xsel or wl-clipboard)", ErrUnavailable)
			return
		}
		backendImpl = newBackend()
	})
	return backendImpl, backendErr
}
