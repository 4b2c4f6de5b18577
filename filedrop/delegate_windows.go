//go:build windows

package filedrop

import (
	"unsafe"

	ole "github.com/go-ole/go-ole"
	"golang.org/x/sys/windows"
)

var iidCompositionController3 = ole.NewGUID("{9570570e-4d76-4361-9ee1-f04d0dbdfb1e}")

// CompositionDelegates forwards to the WebView2 engine through
// ICoreWebView2CompositionController3, queried from controller (an
// ICoreWebView2Controller pointer) on every notification. Windowed
// controllers do not support the interface; their notifications fail with
// E_NOINTERFACE. Use PreviousTargets for those.
func CompositionDelegates(controller uintptr) DelegateSource {
	return compositionSource{controller: controller}
}

type compositionSource struct {
	controller uintptr
}

func (s compositionSource) Delegate() (Delegate, error) {
	if s.controller == 0 {
		return nil, ErrNoDelegate
	}
	var c uintptr
	hr := syscallN(vtblOf[unknownVtbl](s.controller).QueryInterface,
		s.controller,
		uintptr(unsafe.Pointer(iidCompositionController3)),
		uintptr(unsafe.Pointer(&c)),
	)
	if err := hresultError(hr); err != nil {
		return nil, err
	}
	if c == 0 {
		return nil, ErrNoDelegate
	}
	return compositionDelegate(c), nil
}

// compositionController3Vtbl flattens the interface chain:
// ICoreWebView2CompositionController, then ...Controller2, then ...Controller3.
type compositionController3Vtbl struct {
	unknownVtbl
	GetRootVisualTarget   uintptr
	PutRootVisualTarget   uintptr
	SendMouseInput        uintptr
	SendPointerInput      uintptr
	GetCursor             uintptr
	GetSystemCursorID     uintptr
	AddCursorChanged      uintptr
	RemoveCursorChanged   uintptr
	GetAutomationProvider uintptr
	DragEnter             uintptr
	DragLeave             uintptr
	DragOver              uintptr
	Drop                  uintptr
}

// compositionDelegate takes client coordinates.
type compositionDelegate uintptr

func (d compositionDelegate) vtbl() *compositionController3Vtbl {
	return vtblOf[compositionController3Vtbl](uintptr(d))
}

func (d compositionDelegate) DragEnter(obj DataObject, keys KeyState, pt DragPoint, effect *DropEffect) error {
	args := []uintptr{uintptr(d), obj.Native(), uintptr(keys)}
	args = append(args, pointArgs(pt.Client.X, pt.Client.Y)...)
	args = append(args, effectArg(effect))
	return hresultError(syscallN(d.vtbl().DragEnter, args...))
}

func (d compositionDelegate) DragOver(keys KeyState, pt DragPoint, effect *DropEffect) error {
	args := []uintptr{uintptr(d), uintptr(keys)}
	args = append(args, pointArgs(pt.Client.X, pt.Client.Y)...)
	args = append(args, effectArg(effect))
	return hresultError(syscallN(d.vtbl().DragOver, args...))
}

func (d compositionDelegate) DragLeave() error {
	return hresultError(syscallN(d.vtbl().DragLeave, uintptr(d)))
}

func (d compositionDelegate) Drop(obj DataObject, keys KeyState, pt DragPoint, effect *DropEffect) error {
	args := []uintptr{uintptr(d), obj.Native(), uintptr(keys)}
	args = append(args, pointArgs(pt.Client.X, pt.Client.Y)...)
	args = append(args, effectArg(effect))
	return hresultError(syscallN(d.vtbl().Drop, args...))
}

func (d compositionDelegate) Release() {
	comRelease(uintptr(d))
}

// PreviousTargets forwards each child window's notifications to the
// IDropTarget that was registered on it before interception. This suits
// windowed WebView2 hosts, where the engine registers its own target on the
// child windows.
func PreviousTargets() DelegateSource {
	return previousTargets{}
}

// OLE keeps an in-process window's registered IDropTarget in this window
// property.
var propOleDropTarget, _ = windows.UTF16PtrFromString("OleDropTargetInterface")

type previousTargets struct{}

func (previousTargets) Delegate() (Delegate, error) {
	return nil, ErrNoDelegate
}

func (previousTargets) Bind(child Handle) DelegateSource {
	p, _, _ := procGetPropW.Call(uintptr(child), uintptr(unsafe.Pointer(propOleDropTarget)))
	if p == 0 {
		return nil
	}
	comAddRef(p)
	return &boundTarget{ptr: p}
}

// boundTarget holds a reference to a captured IDropTarget until released.
type boundTarget struct {
	ptr uintptr
}

func (b *boundTarget) Delegate() (Delegate, error) {
	if b.ptr == 0 {
		return nil, ErrNoDelegate
	}
	comAddRef(b.ptr)
	return dropTargetDelegate(b.ptr), nil
}

// Restore registers the captured target on child again. OLE takes its own
// reference.
func (b *boundTarget) Restore(child Handle) error {
	if b.ptr == 0 {
		return ErrNoDelegate
	}
	hr, _, _ := procRegisterDragDrop.Call(uintptr(child), b.ptr)
	return hresultError(hr)
}

func (b *boundTarget) Release() {
	if b.ptr != 0 {
		comRelease(b.ptr)
		b.ptr = 0
	}
}

type dropTargetVtbl struct {
	unknownVtbl
	DragEnter uintptr
	DragOver  uintptr
	DragLeave uintptr
	Drop      uintptr
}

// dropTargetDelegate is a plain IDropTarget; it takes screen coordinates.
type dropTargetDelegate uintptr

func (d dropTargetDelegate) vtbl() *dropTargetVtbl {
	return vtblOf[dropTargetVtbl](uintptr(d))
}

func (d dropTargetDelegate) DragEnter(obj DataObject, keys KeyState, pt DragPoint, effect *DropEffect) error {
	args := []uintptr{uintptr(d), obj.Native(), uintptr(keys)}
	args = append(args, pointArgs(pt.Screen.X, pt.Screen.Y)...)
	args = append(args, effectArg(effect))
	return hresultError(syscallN(d.vtbl().DragEnter, args...))
}

func (d dropTargetDelegate) DragOver(keys KeyState, pt DragPoint, effect *DropEffect) error {
	args := []uintptr{uintptr(d), uintptr(keys)}
	args = append(args, pointArgs(pt.Screen.X, pt.Screen.Y)...)
	args = append(args, effectArg(effect))
	return hresultError(syscallN(d.vtbl().DragOver, args...))
}

func (d dropTargetDelegate) DragLeave() error {
	return hresultError(syscallN(d.vtbl().DragLeave, uintptr(d)))
}

func (d dropTargetDelegate) Drop(obj DataObject, keys KeyState, pt DragPoint, effect *DropEffect) error {
	args := []uintptr{uintptr(d), obj.Native(), uintptr(keys)}
	args = append(args, pointArgs(pt.Screen.X, pt.Screen.Y)...)
	args = append(args, effectArg(effect))
	return hresultError(syscallN(d.vtbl().Drop, args...))
}

func (d dropTargetDelegate) Release() {
	comRelease(uintptr(d))
}
