// Package clipboard provides access to the system clipboard.
package clipboard

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"

	"github.com/temirov/blueprint/internal/types"
)

const errorCopyFormat = "%w: %w"

// ErrClipboardUnavailable reports that no clipboard backend is installed.
var ErrClipboardUnavailable = errors.New("no clipboard backend available (install xclip, xsel or wl-clipboard)")

// Copier copies textual data to the system clipboard.
type Copier interface {
	Copy(text string) error
}

// Service implements Copier using github.com/atotto/clipboard.
type Service struct {
	write       func(text string) error
	unsupported func() bool
}

// NewService constructs a Clipboard service implementation.
func NewService() *Service {
	return &Service{
		write:       clipboard.WriteAll,
		unsupported: func() bool { return clipboard.Unsupported },
	}
}

// Copy writes text to the system clipboard. Failures wrap types.ErrClipboard.
func (service *Service) Copy(text string) error {
	if service.unsupported != nil && service.unsupported() {
		return fmt.Errorf(errorCopyFormat, types.ErrClipboard, ErrClipboardUnavailable)
	}
	if writeError := service.write(text); writeError != nil {
		return fmt.Errorf(errorCopyFormat, types.ErrClipboard, writeError)
	}
	return nil
}

var _ Copier = (*Service)(nil)
