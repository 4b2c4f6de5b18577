//go:build windows

package filedrop

import (
	"unsafe"

	"github.com/wailsapp/go-webview2/pkg/combridge"
)

const iidIDropTarget = "{00000122-0000-0000-C000-000000000046}"

// iDropTarget is the Go side of the IDropTarget vtable. Points arrive
// already unpacked from the ABI-specific trampolines.
type iDropTarget interface {
	combridge.IUnknown
	DragEnter(dataObj uintptr, keyState uint32, pt ScreenPoint, effect uintptr) uintptr
	DragOver(keyState uint32, pt ScreenPoint, effect uintptr) uintptr
	DragLeave() uintptr
	Drop(dataObj uintptr, keyState uint32, pt ScreenPoint, effect uintptr) uintptr
}

// withTarget resolves the Go object behind a native this pointer.
func withTarget(this uintptr, call func(t iDropTarget) uintptr) uintptr {
	t := combridge.Resolve[iDropTarget](this)
	if t == nil {
		return comEUnexpected
	}
	return call(t)
}

// nativeTarget adapts an Interceptor to the native calling convention.
type nativeTarget struct {
	it *Interceptor
}

func (t *nativeTarget) DragEnter(dataObj uintptr, keyState uint32, pt ScreenPoint, effect uintptr) uintptr {
	return HResultOf(t.it.DragEnter(wrapDataObject(dataObj), KeyState(keyState), pt, effectPtr(effect)))
}

func (t *nativeTarget) DragOver(keyState uint32, pt ScreenPoint, effect uintptr) uintptr {
	return HResultOf(t.it.DragOver(KeyState(keyState), pt, effectPtr(effect)))
}

func (t *nativeTarget) DragLeave() uintptr {
	return HResultOf(t.it.DragLeave())
}

func (t *nativeTarget) Drop(dataObj uintptr, keyState uint32, pt ScreenPoint, effect uintptr) uintptr {
	return HResultOf(t.it.Drop(wrapDataObject(dataObj), KeyState(keyState), pt, effectPtr(effect)))
}

func effectPtr(p uintptr) *DropEffect {
	return (*DropEffect)(unsafe.Pointer(p))
}

func effectArg(e *DropEffect) uintptr {
	return uintptr(unsafe.Pointer(e))
}

// comTarget is a registered combridge object. Close drops the Go side's
// reference; the object is freed once OLE has released its own.
type comTarget struct {
	obj *combridge.ComObject[iDropTarget]
}

func (t comTarget) Release() {
	t.obj.Close()
}

func newComTarget(it *Interceptor) comTarget {
	return comTarget{obj: combridge.New[iDropTarget](&nativeTarget{it: it})}
}
