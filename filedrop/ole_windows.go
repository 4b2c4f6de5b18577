//go:build windows

package filedrop

import (
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	modOle32   = windows.NewLazySystemDLL("ole32.dll")
	modShell32 = windows.NewLazySystemDLL("shell32.dll")
	modUser32  = windows.NewLazySystemDLL("user32.dll")

	procOleInitialize    = modOle32.NewProc("OleInitialize")
	procRevokeDragDrop   = modOle32.NewProc("RevokeDragDrop")
	procRegisterDragDrop = modOle32.NewProc("RegisterDragDrop")
	procReleaseStgMedium = modOle32.NewProc("ReleaseStgMedium")
	procDragQueryFileW   = modShell32.NewProc("DragQueryFileW")
	procEnumChildWindows = modUser32.NewProc("EnumChildWindows")
	procGetAncestor      = modUser32.NewProc("GetAncestor")
	procScreenToClient   = modUser32.NewProc("ScreenToClient")
	procGetPropW         = modUser32.NewProc("GetPropW")
)

const (
	cfHDROP         = 15
	tymedHGlobal    = 1
	dvaspectContent = 1
	gaParent        = 1
	dragQueryCount  = 0xFFFFFFFF
)

// formatETC and stgMedium mirror FORMATETC and STGMEDIUM. Go's field
// alignment matches the C layout on 386, amd64 and arm64.
type formatETC struct {
	cfFormat uint16
	ptd      uintptr
	dwAspect uint32
	lindex   int32
	tymed    uint32
}

type stgMedium struct {
	tymed          uint32
	hGlobal        uintptr
	pUnkForRelease uintptr
}

type unknownVtbl struct {
	QueryInterface uintptr
	AddRef         uintptr
	Release        uintptr
}

// vtblOf returns the vtable of the COM object at p.
func vtblOf[T any](p uintptr) *T {
	return *(**T)(unsafe.Pointer(p))
}

func comAddRef(p uintptr) {
	syscallN(vtblOf[unknownVtbl](p).AddRef, p)
}

func comRelease(p uintptr) {
	syscallN(vtblOf[unknownVtbl](p).Release, p)
}

func syscallN(fn uintptr, args ...uintptr) uintptr {
	r, _, _ := syscall.SyscallN(fn, args...)
	return r
}

// OleInitialize prepares the calling thread for OLE drag and drop. It must
// run on the UI thread before Controller.Install. Repeated calls succeed.
func OleInitialize() error {
	hr, _, _ := procOleInitialize.Call(0)
	if hr = uintptr(uint32(hr)); hr == comSOK || hr == comSFalse {
		return nil
	}
	return hresultError(hr)
}
