package native

import (
	"strings"
	"syscall"
	"unicode/utf16"
	"unsafe"

	"github.com/pkg/errors"
	"golang.org/x/sys/windows"

	"commondlg.app/commondlg/internal/pattern"
)

var platformBackend Backend = &win32Backend{}

var (
	comdlg32 = windows.NewLazySystemDLL("comdlg32.dll")
	shell32  = windows.NewLazySystemDLL("shell32.dll")
	ole32    = windows.NewLazySystemDLL("ole32.dll")
	user32   = windows.NewLazySystemDLL("user32.dll")

	procGetOpenFileName      = comdlg32.NewProc("GetOpenFileNameW")
	procGetSaveFileName      = comdlg32.NewProc("GetSaveFileNameW")
	procCommDlgExtendedError = comdlg32.NewProc("CommDlgExtendedError")
	procSHBrowseForFolder    = shell32.NewProc("SHBrowseForFolderW")
	procSHGetPathFromIDList  = shell32.NewProc("SHGetPathFromIDListW")
	procCoTaskMemFree        = ole32.NewProc("CoTaskMemFree")
	procMessageBox           = user32.NewProc("MessageBoxW")
)

const (
	ofnExplorer        = 0x00080000
	ofnFileMustExist   = 0x00001000
	ofnPathMustExist   = 0x00000800
	ofnHideReadonly    = 0x00000004
	ofnNoChangeDir     = 0x00000008
	ofnOverwritePrompt = 0x00000002
	ofnForceShowHidden = 0x10000000

	bifReturnOnlyFSDirs = 0x00000001
	bifNewDialogStyle   = 0x00000040

	mbOK              = 0x00000000
	mbIconError       = 0x00000010
	mbIconInformation = 0x00000040

	// Room for paths longer than MAX_PATH; the Explorer-style dialog
	// fills in as much as the buffer allows.
	filePathChars = 32768
)

type openFileNameW struct {
	StructSize    uint32
	Owner         uintptr
	Instance      uintptr
	Filter        *uint16
	CustomFilter  *uint16
	MaxCustFilter uint32
	FilterIndex   uint32
	File          *uint16
	MaxFile       uint32
	FileTitle     *uint16
	MaxFileTitle  uint32
	InitialDir    *uint16
	Title         *uint16
	Flags         uint32
	FileOffset    uint16
	FileExtension uint16
	DefExt        *uint16
	CustData      uintptr
	FnHook        uintptr
	TemplateName  *uint16
	PvReserved    uintptr
	DwReserved    uint32
	FlagsEx       uint32
}

type browseInfoW struct {
	Owner       uintptr
	Root        uintptr
	DisplayName *uint16
	Title       *uint16
	Flags       uint32
	Callback    uintptr
	LParam      uintptr
	Image       int32
}

// win32Backend drives the classic comdlg32 and shell32 modal dialogs.
// GetOpenFileNameW and friends pump the message loop themselves, so the
// application stays responsive while a prompt is up.
type win32Backend struct{}

func (w *win32Backend) PickFile(owner Owner, opts FileOptions) (string, error) {
	if opts.Mode == ModeOpenFolder {
		return w.browseFolder(owner, opts)
	}

	file := make([]uint16, filePathChars)
	ofn := openFileNameW{
		Owner:   owner.Handle,
		File:    &file[0],
		MaxFile: filePathChars,
		Flags:   ofnExplorer | ofnNoChangeDir | ofnHideReadonly | ofnForceShowHidden,
	}
	ofn.StructSize = uint32(unsafe.Sizeof(ofn))

	if block := filterBlock(opts.Filters); block != nil {
		ofn.Filter = &block[0]
	}

	var ret uintptr
	if opts.Mode == ModeSaveFile {
		ofn.Flags |= ofnOverwritePrompt | ofnPathMustExist
		ret, _, _ = procGetSaveFileName.Call(uintptr(unsafe.Pointer(&ofn)))
	} else {
		ofn.Flags |= ofnFileMustExist | ofnPathMustExist
		ret, _, _ = procGetOpenFileName.Call(uintptr(unsafe.Pointer(&ofn)))
	}
	if ret == 0 {
		// A zero return covers both cancellation and dialog failure;
		// the extended error tells them apart.
		if code, _, _ := procCommDlgExtendedError.Call(); code != 0 {
			return "", errors.Errorf("common dialog error 0x%04x", code)
		}
		return "", ErrCancelled
	}

	path := syscall.UTF16ToString(file)
	opts.Logger.Debug().Str("path", path).Msg("comdlg32 dialog accepted")
	return path, nil
}

func (w *win32Backend) browseFolder(owner Owner, opts FileOptions) (string, error) {
	title, err := syscall.UTF16PtrFromString(opts.Mode.title())
	if err != nil {
		return "", err
	}
	bi := browseInfoW{
		Owner: owner.Handle,
		Title: title,
		Flags: bifReturnOnlyFSDirs | bifNewDialogStyle,
	}

	pidl, _, _ := procSHBrowseForFolder.Call(uintptr(unsafe.Pointer(&bi)))
	if pidl == 0 {
		return "", ErrCancelled
	}
	defer procCoTaskMemFree.Call(pidl)

	buf := make([]uint16, windows.MAX_PATH)
	ret, _, _ := procSHGetPathFromIDList.Call(pidl, uintptr(unsafe.Pointer(&buf[0])))
	if ret == 0 {
		return "", errors.New("SHGetPathFromIDListW failed")
	}

	path := syscall.UTF16ToString(buf)
	opts.Logger.Debug().Str("path", path).Msg("folder browse accepted")
	return path, nil
}

func (w *win32Backend) Announce(owner Owner, opts MessageOptions) error {
	text, err := syscall.UTF16PtrFromString(opts.Description)
	if err != nil {
		return err
	}
	caption, err := syscall.UTF16PtrFromString(opts.Title)
	if err != nil {
		return err
	}

	flags := uintptr(mbOK | mbIconInformation)
	if opts.Severity == SeverityError {
		flags = mbOK | mbIconError
	}

	ret, _, callErr := procMessageBox.Call(owner.Handle,
		uintptr(unsafe.Pointer(text)),
		uintptr(unsafe.Pointer(caption)),
		flags)
	if ret == 0 {
		return errors.Wrap(callErr, "MessageBoxW")
	}
	return nil
}

// filterBlock renders the comdlg32 filter spec: display name and
// semicolon-joined patterns alternating, NUL separated, with a double
// NUL closing the block.
func filterBlock(filters []pattern.Filter) []uint16 {
	if len(filters) == 0 {
		return nil
	}

	var list pattern.List
	pattern.Apply(filters, &list)

	var b strings.Builder
	for _, g := range list.Groups {
		b.WriteString(g.Name)
		b.WriteByte(0)
		if len(g.Patterns) == 0 {
			// An empty pattern slot would close the block early, so a
			// patternless filter gets a glob that matches nothing.
			b.WriteString(" ")
		} else {
			b.WriteString(strings.Join(g.Patterns, ";"))
		}
		b.WriteByte(0)
	}
	b.WriteByte(0)

	return utf16.Encode([]rune(b.String()))
}
