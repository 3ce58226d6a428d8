// Package native runs the host desktop environment's modal dialog
// primitives. Each supported platform contributes one Backend; every
// call blocks until the user commits or dismisses and tears the dialog
// down before returning, on the accept path and the cancel path alike.
package native

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"commondlg.app/commondlg/internal/pattern"
)

// ErrCancelled reports that the user dismissed a dialog without making a
// selection.
var ErrCancelled = errors.New("dialog cancelled")

// Owner points a modal dialog at the native top-level window it is
// parented to. The zero value means no owner. Handle carries a Win32
// HWND; Exported carries an XDG foreign-toplevel identifier such as
// "x11:0x4a0000f". Backends read the field they understand and ignore
// the other.
type Owner struct {
	Handle   uintptr
	Exported string
}

// FileMode selects the file-dialog variant.
type FileMode int

const (
	ModeOpenFile FileMode = iota
	ModeOpenFolder
	ModeSaveFile
)

func (m FileMode) String() string {
	switch m {
	case ModeOpenFolder:
		return "open-folder"
	case ModeSaveFile:
		return "save-file"
	default:
		return "open-file"
	}
}

// title is the dialog name shown by hosts that insist on one. The
// in-process toolkits leave it to the environment.
func (m FileMode) title() string {
	switch m {
	case ModeOpenFolder:
		return "Select Folder"
	case ModeSaveFile:
		return "Save File"
	default:
		return "Open File"
	}
}

// FileOptions configures one file-dialog run.
type FileOptions struct {
	Mode    FileMode
	Filters []pattern.Filter
	Logger  *zerolog.Logger
}

// Severity selects message-box styling.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityError
)

// MessageOptions configures one message-box run.
type MessageOptions struct {
	Severity    Severity
	Title       string
	Description string
	Logger      *zerolog.Logger
}

// Backend is one host environment's modal dialog implementation.
type Backend interface {
	// PickFile runs a file dialog to completion and returns the selected
	// path. Dismissal returns ErrCancelled; any other error means the
	// host environment could not present the dialog at all.
	PickFile(owner Owner, opts FileOptions) (string, error)

	// Announce runs a message box until the user acknowledges it.
	Announce(owner Owner, opts MessageOptions) error
}

// Current returns the backend for the running platform.
func Current() Backend { return platformBackend }
