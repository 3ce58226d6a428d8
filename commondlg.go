// Package commondlg presents the host desktop environment's native
// modal dialogs: file open, folder open, file save and message boxes.
//
// Every call is synchronous. It runs exactly one modal dialog to
// completion, parented to the optional owner window, and returns once
// the user commits or dismisses. The host's own event dispatch keeps
// running for the duration, so the application stays responsive while a
// prompt is up. Calls are expected to come from the thread driving the
// host UI.
package commondlg

import (
	"errors"
	"io"
	"sync"

	"github.com/rs/zerolog"

	"commondlg.app/commondlg/internal/native"
	"commondlg.app/commondlg/internal/pattern"
)

// FileFilter is a named group of file extensions limiting what a file
// dialog displays, e.g. {Name: "Images", Extensions: []string{"png",
// "jpg"}}. Extensions are bare, without dot or glob; each one becomes a
// "*.ext" pattern on the native dialog. A filter with no extensions is
// legal and matches nothing.
type FileFilter struct {
	Name       string
	Extensions []string
}

// ErrCancelled is returned by the file dialogs when the user dismisses
// the prompt without selecting anything. Check with errors.Is; any
// other error means the host environment could not present the dialog.
var ErrCancelled = native.ErrCancelled

var (
	logMu  sync.Mutex
	logger = zerolog.Nop()
)

// SetLogOutput routes debug logging of dialog runs to w. A nil writer
// disables logging again.
func SetLogOutput(w io.Writer) {
	logMu.Lock()
	defer logMu.Unlock()
	if w == nil {
		logger = zerolog.Nop()
		return
	}
	logger = zerolog.New(w).With().Timestamp().Logger()
}

func log() *zerolog.Logger {
	logMu.Lock()
	defer logMu.Unlock()
	l := logger
	return &l
}

// backend is indirect so tests can substitute the platform dialogs.
var backend = native.Current

// OpenFile prompts for a single existing file and returns its path.
func OpenFile(owner *Window) (string, error) {
	return runFileDialog(owner, native.ModeOpenFile, nil)
}

// OpenFolder prompts for a single existing directory and returns its
// path.
func OpenFolder(owner *Window) (string, error) {
	return runFileDialog(owner, native.ModeOpenFolder, nil)
}

// SaveFile prompts for a destination file path, which need not exist
// yet. The host confirms overwriting an existing file and offers folder
// creation for directories that do not exist.
func SaveFile(owner *Window) (string, error) {
	return runFileDialog(owner, native.ModeSaveFile, nil)
}

// SaveFileWithFilters is SaveFile constrained by the given filter list.
func SaveFileWithFilters(owner *Window, filters []FileFilter) (string, error) {
	return runFileDialog(owner, native.ModeSaveFile, filters)
}

// ShowMessage blocks on an informational message box until the user
// acknowledges it.
func ShowMessage(owner *Window, title, description string) {
	runMessage(owner, native.SeverityInfo, title, description)
}

// ShowError blocks on an error-styled message box until the user
// acknowledges it.
func ShowError(owner *Window, title, description string) {
	runMessage(owner, native.SeverityError, title, description)
}

// runFileDialog is the shared routine behind all four file dialogs. The
// backend owns the native dialog for the duration of the call and has
// destroyed it by the time this returns, selection or not.
func runFileDialog(owner *Window, mode native.FileMode, filters []FileFilter) (string, error) {
	l := log()
	l.Debug().
		Stringer("mode", mode).
		Int("filters", len(filters)).
		Msg("running file dialog")

	path, err := backend().PickFile(resolveOwner(owner), native.FileOptions{
		Mode:    mode,
		Filters: convertFilters(filters),
		Logger:  l,
	})
	switch {
	case errors.Is(err, ErrCancelled):
		l.Debug().Stringer("mode", mode).Msg("file dialog dismissed")
		return "", ErrCancelled
	case err != nil:
		l.Debug().Stringer("mode", mode).Err(err).Msg("file dialog failed")
		return "", err
	}

	l.Debug().Stringer("mode", mode).Str("path", path).Msg("file dialog accepted")
	return path, nil
}

// runMessage is the shared routine behind both message boxes. Message
// boxes carry no result; a host failure is logged and swallowed, since
// the error box is itself how applications report their failures.
func runMessage(owner *Window, severity native.Severity, title, description string) {
	l := log()
	err := backend().Announce(resolveOwner(owner), native.MessageOptions{
		Severity:    severity,
		Title:       title,
		Description: description,
		Logger:      l,
	})
	if err != nil {
		l.Debug().Err(err).Str("title", title).Msg("message box failed")
	}
}

func convertFilters(filters []FileFilter) []pattern.Filter {
	if len(filters) == 0 {
		return nil
	}
	out := make([]pattern.Filter, len(filters))
	for i, f := range filters {
		out[i] = pattern.Filter{Name: f.Name, Extensions: f.Extensions}
	}
	return out
}
