package native

import (
	"strings"

	"github.com/pkg/errors"
	sqdialog "github.com/sqweek/dialog"

	"commondlg.app/commondlg/internal/pattern"
)

var platformBackend Backend = &cocoaBackend{}

// cocoaBackend drives NSOpenPanel, NSSavePanel and NSAlert through the
// sqweek/dialog cgo layer. The panels are application-modal and run the
// main loop themselves; there is no per-window owner concept, so the
// resolved owner is not consulted here.
type cocoaBackend struct{}

func (c *cocoaBackend) PickFile(_ Owner, opts FileOptions) (string, error) {
	var (
		path string
		err  error
	)

	switch opts.Mode {
	case ModeOpenFolder:
		path, err = sqdialog.Directory().Title(opts.Mode.title()).Browse()
	case ModeSaveFile:
		b := sqdialog.File().Title(opts.Mode.title())
		panelFilters(b, opts.Filters)
		path, err = b.Save()
	default:
		b := sqdialog.File().Title(opts.Mode.title())
		panelFilters(b, opts.Filters)
		path, err = b.Load()
	}
	if err != nil {
		if err == sqdialog.ErrCancelled {
			return "", ErrCancelled
		}
		return "", errors.Wrap(err, "cocoa panel")
	}

	opts.Logger.Debug().Str("path", path).Msg("cocoa panel accepted")
	return path, nil
}

func (c *cocoaBackend) Announce(_ Owner, opts MessageOptions) error {
	m := sqdialog.Message("%s", opts.Description).Title(opts.Title)
	if opts.Severity == SeverityError {
		m.Error()
	} else {
		m.Info()
	}
	return nil
}

// panelFilters registers one allowed-type group per filter. The panel
// API wants bare extensions, so the shared builder's globs lose their
// prefix again on the way in.
func panelFilters(b *sqdialog.FileBuilder, filters []pattern.Filter) {
	var list pattern.List
	pattern.Apply(filters, &list)

	for _, g := range list.Groups {
		exts := make([]string, 0, len(g.Patterns))
		for _, p := range g.Patterns {
			exts = append(exts, strings.TrimPrefix(p, "*."))
		}
		b.Filter(g.Name, exts...)
	}
}
