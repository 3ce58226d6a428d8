package commondlg

import "commondlg.app/commondlg/internal/native"

// Window is an abstract reference to the top-level window that owns a
// modal dialog, used only for parenting and stacking. A nil *Window
// leaves the dialog unowned.
type Window struct {
	handle   uintptr
	exported string
}

// WindowFromHandle wraps a native window handle, a Win32 HWND.
func WindowFromHandle(h uintptr) *Window {
	return &Window{handle: h}
}

// WindowFromExported wraps an exported foreign-toplevel identifier such
// as "x11:0x4a0000f" or "wayland:<handle>", the form the XDG desktop
// portal expects.
func WindowFromExported(id string) *Window {
	return &Window{exported: id}
}

// resolveOwner maps an abstract window, possibly nil, onto whatever
// native reference the running backend understands.
func resolveOwner(w *Window) native.Owner {
	if w == nil {
		return native.Owner{}
	}
	return native.Owner{Handle: w.handle, Exported: w.exported}
}
