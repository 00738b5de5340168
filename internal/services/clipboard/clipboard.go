// Package clipboard copies rendered snapshots to the system clipboard.
package clipboard

import (
	"errors"

	"github.com/atotto/clipboard"
)

// ErrUnsupported is returned when the platform offers no clipboard utility.
var ErrUnsupported = errors.New("clipboard is not supported on this system")

// Copier receives the rendered snapshot when render runs with --copy.
type Copier interface {
	Copy(text string) error
}

// Service hands the snapshot to the platform clipboard utility
// (pbcopy, xclip, xsel, wl-copy or the Windows API).
type Service struct{}

// NewService returns the clipboard Copier used by the CLI.
func NewService() *Service {
	return &Service{}
}

// Copy replaces the clipboard contents with text. It fails with ErrUnsupported
// when no clipboard utility is installed.
func (service *Service) Copy(text string) error {
	if clipboard.Unsupported {
		return ErrUnsupported
	}
	return clipboard.WriteAll(text)
}

var _ Copier = (*Service)(nil)
