//go:build windows

package filedrop

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

// enumChildCallback is shared by every walk; windows.NewCallback slots are
// a finite resource.
var enumChildCallback = windows.NewCallback(func(child, id uintptr) uintptr {
	parent, _, _ := procGetAncestor.Call(child, gaParent)
	return walks.visitChild(id, Handle(child), Handle(parent))
})

type nativePlatform struct{}

// NewNativePlatform returns the OLE-backed platform. Controllers built on it
// must be used from the thread that called OleInitialize.
func NewNativePlatform() (Platform, error) {
	return nativePlatform{}, nil
}

func (nativePlatform) ForEachChild(root Handle, visit func(child Handle) bool) {
	id := walks.add(childWalk{root: root, visit: visit})
	defer walks.remove(id)
	procEnumChildWindows.Call(uintptr(root), enumChildCallback, id)
}

func (nativePlatform) ToClient(h Handle, pt ScreenPoint) ClientPoint {
	p := struct{ X, Y int32 }{pt.X, pt.Y}
	ok, _, err := procScreenToClient.Call(uintptr(h), uintptr(unsafe.Pointer(&p)))
	if ok == 0 {
		// ScreenToClient leaves the point untouched when it fails.
		logger.Debug("ScreenToClient failed, using screen coordinates", "hwnd", h, "error", err)
		return ClientPoint{X: pt.X, Y: pt.Y}
	}
	return ClientPoint{X: p.X, Y: p.Y}
}

func (nativePlatform) Revoke(h Handle) error {
	hr, _, _ := procRevokeDragDrop.Call(uintptr(h))
	return hresultError(hr)
}

func (nativePlatform) Register(h Handle, it *Interceptor) (Target, error) {
	t := newComTarget(it)
	hr, _, _ := procRegisterDragDrop.Call(uintptr(h), t.obj.Ref())
	if err := hresultError(hr); err != nil {
		t.Release()
		return nil, err
	}
	return t, nil
}
