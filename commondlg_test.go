package commondlg

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"commondlg.app/commondlg/internal/native"
	"commondlg.app/commondlg/internal/pattern"
)

type fakeBackend struct {
	path string
	err  error

	owners   []native.Owner
	fileOpts []native.FileOptions
	messages []native.MessageOptions
}

func (f *fakeBackend) PickFile(owner native.Owner, opts native.FileOptions) (string, error) {
	f.owners = append(f.owners, owner)
	f.fileOpts = append(f.fileOpts, opts)
	return f.path, f.err
}

func (f *fakeBackend) Announce(owner native.Owner, opts native.MessageOptions) error {
	f.owners = append(f.owners, owner)
	f.messages = append(f.messages, opts)
	return f.err
}

func withBackend(t *testing.T, b native.Backend) {
	t.Helper()
	old := backend
	backend = func() native.Backend { return b }
	t.Cleanup(func() { backend = old })
}

func TestOpenFileAccept(t *testing.T) {
	fb := &fakeBackend{path: "/tmp/a.txt"}
	withBackend(t, fb)

	got, err := OpenFile(nil)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	if got != "/tmp/a.txt" {
		t.Fatalf("got %q, want %q", got, "/tmp/a.txt")
	}

	if len(fb.fileOpts) != 1 {
		t.Fatalf("got %d dialog runs, want 1", len(fb.fileOpts))
	}
	if fb.fileOpts[0].Mode != native.ModeOpenFile {
		t.Fatalf("got mode %v, want %v", fb.fileOpts[0].Mode, native.ModeOpenFile)
	}
	if fb.owners[0] != (native.Owner{}) {
		t.Fatalf("nil owner should resolve to the zero owner, got %+v", fb.owners[0])
	}
}

func TestFileDialogModes(t *testing.T) {
	tt := []struct {
		name     string
		call     func(*Window) (string, error)
		wantMode native.FileMode
	}{
		{"OpenFile", OpenFile, native.ModeOpenFile},
		{"OpenFolder", OpenFolder, native.ModeOpenFolder},
		{"SaveFile", SaveFile, native.ModeSaveFile},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			fb := &fakeBackend{path: "/tmp/x"}
			withBackend(t, fb)

			if _, err := tc.call(nil); err != nil {
				t.Fatalf("%s: %v", tc.name, err)
			}
			if fb.fileOpts[0].Mode != tc.wantMode {
				t.Fatalf("got mode %v, want %v", fb.fileOpts[0].Mode, tc.wantMode)
			}
			if fb.fileOpts[0].Filters != nil {
				t.Fatalf("expected no filters, got %+v", fb.fileOpts[0].Filters)
			}
		})
	}
}

func TestSaveFileWithFiltersCancel(t *testing.T) {
	fb := &fakeBackend{err: native.ErrCancelled}
	withBackend(t, fb)

	filters := []FileFilter{{Name: "Text", Extensions: []string{"txt", "md"}}}
	got, err := SaveFileWithFilters(nil, filters)
	if !errors.Is(err, ErrCancelled) {
		t.Fatalf("got err %v, want ErrCancelled", err)
	}
	if got != "" {
		t.Fatalf("cancelled dialog returned path %q", got)
	}

	// The filter list still reached the dialog before dismissal.
	var list pattern.List
	pattern.Apply(fb.fileOpts[0].Filters, &list)
	if list.Patterns() != 2 {
		t.Fatalf("got %d patterns, want 2", list.Patterns())
	}
	want := []string{"*.txt", "*.md"}
	for i, p := range list.Groups[0].Patterns {
		if p != want[i] {
			t.Fatalf("pattern %d: got %q, want %q", i, p, want[i])
		}
	}
}

func TestBackendFailurePassesThrough(t *testing.T) {
	boom := errors.New("no display")
	fb := &fakeBackend{err: boom}
	withBackend(t, fb)

	_, err := OpenFolder(nil)
	if !errors.Is(err, boom) {
		t.Fatalf("got err %v, want %v", err, boom)
	}
	if errors.Is(err, ErrCancelled) {
		t.Fatal("host failure must not look like cancellation")
	}
}

func TestRepeatedCallsRunOneDialogEach(t *testing.T) {
	fb := &fakeBackend{path: "/tmp/a"}
	withBackend(t, fb)

	for i := 0; i < 3; i++ {
		if _, err := OpenFile(nil); err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
	}
	if len(fb.fileOpts) != 3 {
		t.Fatalf("got %d dialog runs, want 3", len(fb.fileOpts))
	}
}

func TestOwnerResolution(t *testing.T) {
	tt := []struct {
		name  string
		owner *Window
		want  native.Owner
	}{
		{"nil window", nil, native.Owner{}},
		{"native handle", WindowFromHandle(42), native.Owner{Handle: 42}},
		{"exported handle", WindowFromExported("x11:0x4a0000f"), native.Owner{Exported: "x11:0x4a0000f"}},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			if got := resolveOwner(tc.owner); got != tc.want {
				t.Fatalf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestShowMessageSeverity(t *testing.T) {
	fb := &fakeBackend{}
	withBackend(t, fb)

	ShowMessage(nil, "Saved", "all done")
	ShowError(nil, "Failed", "disk full")

	if len(fb.messages) != 2 {
		t.Fatalf("got %d message runs, want 2", len(fb.messages))
	}
	if fb.messages[0].Severity != native.SeverityInfo || fb.messages[0].Title != "Saved" {
		t.Fatalf("unexpected info message: %+v", fb.messages[0])
	}
	if fb.messages[1].Severity != native.SeverityError || fb.messages[1].Description != "disk full" {
		t.Fatalf("unexpected error message: %+v", fb.messages[1])
	}
}

func TestShowErrorSwallowsBackendFailure(t *testing.T) {
	fb := &fakeBackend{err: errors.New("helper missing")}
	withBackend(t, fb)

	// Must not panic or surface anything; the call is a pure notification.
	ShowError(nil, "Failed", "disk full")
}

func TestSetLogOutput(t *testing.T) {
	fb := &fakeBackend{path: "/tmp/a"}
	withBackend(t, fb)

	var buf bytes.Buffer
	SetLogOutput(&buf)
	t.Cleanup(func() { SetLogOutput(nil) })

	if _, err := OpenFile(nil); err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "file dialog accepted") {
		t.Fatalf("expected accepted log line, got %q", out)
	}

	buf.Reset()
	SetLogOutput(nil)
	if _, err := OpenFile(nil); err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("logging should be disabled, got %q", buf.String())
	}
}
