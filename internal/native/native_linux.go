package native

import (
	"net/url"
	"strings"

	"github.com/godbus/dbus/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rymdport/portal/filechooser"

	"commondlg.app/commondlg/internal/pattern"
)

var platformBackend Backend = &linuxBackend{}

const portalBusName = "org.freedesktop.portal.Desktop"

// linuxBackend prefers the XDG desktop portal, which presents the
// desktop's own file chooser and blocks on the D-Bus response, and falls
// back to the zenity/kdialog helper binaries when no portal is running.
type linuxBackend struct{}

func (l *linuxBackend) PickFile(owner Owner, opts FileOptions) (string, error) {
	if portalAvailable() {
		opts.Logger.Debug().Msg("using desktop portal file chooser")
		return portalPickFile(owner, opts)
	}
	opts.Logger.Debug().Msg("desktop portal unavailable, using helper dialog")
	return execPickFile(owner, opts)
}

func (l *linuxBackend) Announce(owner Owner, opts MessageOptions) error {
	// There is no message-box portal; helper binaries cover this.
	return execAnnounce(owner, opts)
}

func portalAvailable() bool {
	conn, err := dbus.SessionBus() // shared connection, not ours to close
	if err != nil {
		return false
	}
	var owner string
	err = conn.BusObject().Call("org.freedesktop.DBus.GetNameOwner", 0, portalBusName).Store(&owner)
	return err == nil && owner != ""
}

func portalPickFile(owner Owner, opts FileOptions) (string, error) {
	var (
		uris []string
		err  error
	)
	token := handleToken()

	switch opts.Mode {
	case ModeOpenFolder:
		uris, err = filechooser.OpenFile(owner.Exported, opts.Mode.title(), &filechooser.OpenFileOptions{
			HandleToken: token,
			Directory:   true,
		})
	case ModeSaveFile:
		uris, err = filechooser.SaveFile(owner.Exported, opts.Mode.title(), &filechooser.SaveFileOptions{
			HandleToken: token,
			Filters:     portalFilters(opts.Filters),
		})
	default:
		uris, err = filechooser.OpenFile(owner.Exported, opts.Mode.title(), &filechooser.OpenFileOptions{
			HandleToken: token,
			Filters:     portalFilters(opts.Filters),
		})
	}
	if err != nil {
		return "", errors.Wrap(err, "portal file chooser")
	}
	if len(uris) == 0 {
		return "", ErrCancelled
	}

	// Single selection is requested, but take the first entry should a
	// portal implementation hand back more.
	return uriToPath(uris[0])
}

// handleToken produces the request-handle element for one portal call.
// Dashes are not valid in D-Bus object path elements.
func handleToken() string {
	return "commondlg_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

type portalFilterAdder struct {
	filters []*filechooser.Filter
}

func (a *portalFilterAdder) AddFilter(name string) {
	a.filters = append(a.filters, &filechooser.Filter{Name: name})
}

func (a *portalFilterAdder) AddPattern(glob string) {
	if len(a.filters) == 0 {
		a.filters = append(a.filters, &filechooser.Filter{})
	}
	f := a.filters[len(a.filters)-1]
	f.Rules = append(f.Rules, filechooser.Rule{Type: filechooser.GlobPattern, Pattern: glob})
}

func portalFilters(filters []pattern.Filter) []*filechooser.Filter {
	if len(filters) == 0 {
		return nil
	}
	var adder portalFilterAdder
	pattern.Apply(filters, &adder)
	return adder.filters
}

func uriToPath(uri string) (string, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", errors.Wrapf(err, "parse portal uri %q", uri)
	}
	if u.Scheme != "file" {
		return "", errors.Errorf("unexpected portal uri scheme in %q", uri)
	}
	return u.Path, nil
}
