package native

import (
	"bytes"
	"os"
	"os/exec"
	"strings"

	"github.com/pkg/errors"

	"commondlg.app/commondlg/internal/pattern"
)

// execPickFile drives zenity, or kdialog when zenity is missing, as the
// portal-less fallback. The helper process is run to completion and
// reaped before this returns, whichever way the user leaves the dialog.
func execPickFile(owner Owner, opts FileOptions) (string, error) {
	if !hasDisplay() {
		return termPickFile(opts)
	}
	if _, err := exec.LookPath("zenity"); err == nil {
		return runHelper("zenity", zenityFileArgs(owner, opts))
	}
	if _, err := exec.LookPath("kdialog"); err == nil {
		return runHelper("kdialog", kdialogFileArgs(owner, opts))
	}
	return termPickFile(opts)
}

func execAnnounce(owner Owner, opts MessageOptions) error {
	if !hasDisplay() {
		return termAnnounce(opts)
	}
	if _, err := exec.LookPath("zenity"); err == nil {
		return ackHelper("zenity", zenityMessageArgs(owner, opts))
	}
	if _, err := exec.LookPath("kdialog"); err == nil {
		return ackHelper("kdialog", kdialogMessageArgs(owner, opts))
	}
	return termAnnounce(opts)
}

func hasDisplay() bool {
	return os.Getenv("DISPLAY") != "" || os.Getenv("WAYLAND_DISPLAY") != ""
}

// runHelper blocks on one helper dialog process and returns its trimmed
// stdout. The helpers exit 1 when the user cancels.
func runHelper(name string, args []string) (string, error) {
	cmd := exec.Command(name, args...)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	if err := cmd.Run(); err != nil {
		if ee, ok := err.(*exec.ExitError); ok && ee.ExitCode() == 1 {
			return "", ErrCancelled
		}
		return "", errors.Wrap(err, name)
	}
	return strings.TrimSuffix(stdout.String(), "\n"), nil
}

// ackHelper runs a message-box helper. Closing the box any which way
// counts as acknowledgement, so a cancel exit status is not an error.
func ackHelper(name string, args []string) error {
	_, err := runHelper(name, args)
	if err != nil && !errors.Is(err, ErrCancelled) {
		return err
	}
	return nil
}

func zenityFileArgs(owner Owner, opts FileOptions) []string {
	args := []string{"--file-selection", "--title=" + opts.Mode.title()}
	switch opts.Mode {
	case ModeOpenFolder:
		args = append(args, "--directory")
	case ModeSaveFile:
		args = append(args, "--save", "--confirm-overwrite")
	}
	args = append(args, zenityFilterArgs(opts.Filters)...)
	return append(args, attachArgs(owner, "zenity")...)
}

func zenityMessageArgs(owner Owner, opts MessageOptions) []string {
	kind := "--info"
	if opts.Severity == SeverityError {
		kind = "--error"
	}
	args := []string{kind, "--title=" + opts.Title, "--text=" + opts.Description}
	return append(args, attachArgs(owner, "zenity")...)
}

type zenityFilterAdder struct {
	args []string
	open bool
}

func (a *zenityFilterAdder) AddFilter(name string) {
	a.args = append(a.args, "--file-filter="+name+" |")
	a.open = true
}

func (a *zenityFilterAdder) AddPattern(glob string) {
	if !a.open {
		a.args = append(a.args, "--file-filter=|")
		a.open = true
	}
	a.args[len(a.args)-1] += " " + glob
}

// zenityFilterArgs renders one --file-filter="NAME | *.a *.b" argument
// per filter. zenity treats a filter without patterns as matching
// nothing, which is as close as it gets to the degenerate empty group.
func zenityFilterArgs(filters []pattern.Filter) []string {
	var adder zenityFilterAdder
	pattern.Apply(filters, &adder)
	return adder.args
}

func kdialogFileArgs(owner Owner, opts FileOptions) []string {
	var args []string
	switch opts.Mode {
	case ModeOpenFolder:
		args = []string{"--getexistingdirectory", "."}
	case ModeSaveFile:
		args = []string{"--getsavefilename", "."}
	default:
		args = []string{"--getopenfilename", "."}
	}
	if opts.Mode != ModeOpenFolder {
		if f := kdialogFilter(opts.Filters); f != "" {
			args = append(args, f)
		}
	}
	args = append(args, "--title", opts.Mode.title())
	return append(args, attachArgs(owner, "kdialog")...)
}

func kdialogMessageArgs(owner Owner, opts MessageOptions) []string {
	kind := "--msgbox"
	if opts.Severity == SeverityError {
		kind = "--error"
	}
	args := []string{kind, opts.Description, "--title", opts.Title}
	return append(args, attachArgs(owner, "kdialog")...)
}

// kdialogFilter renders the newline-separated "*.a *.b|Name" filter
// argument. Groups without patterns cannot be expressed there and are
// left out.
func kdialogFilter(filters []pattern.Filter) string {
	var list pattern.List
	pattern.Apply(filters, &list)

	lines := make([]string, 0, len(list.Groups))
	for _, g := range list.Groups {
		if len(g.Patterns) == 0 {
			continue
		}
		lines = append(lines, strings.Join(g.Patterns, " ")+"|"+g.Name)
	}
	return strings.Join(lines, "\n")
}

// attachArgs parents the helper dialog to an X11 owner when one is
// known. Wayland exported handles have no helper equivalent.
func attachArgs(owner Owner, helper string) []string {
	id, ok := strings.CutPrefix(owner.Exported, "x11:")
	if !ok || id == "" {
		return nil
	}
	if helper == "kdialog" {
		return []string{"--attach", id}
	}
	return []string{"--attach=" + id, "--modal"}
}
