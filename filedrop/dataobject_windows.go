//go:build windows

package filedrop

import "unsafe"

type dataObjectVtbl struct {
	unknownVtbl
	GetData      uintptr
	GetDataHere  uintptr
	QueryGetData uintptr
}

// nativeDataObject is an IDataObject pointer owned by the caller of the
// notification.
type nativeDataObject uintptr

// wrapDataObject keeps a null pointer a nil interface.
func wrapDataObject(p uintptr) DataObject {
	if p == 0 {
		return nil
	}
	return nativeDataObject(p)
}

func (o nativeDataObject) Native() uintptr {
	return uintptr(o)
}

func (o nativeDataObject) FileList() (FileList, error) {
	fe := formatETC{
		cfFormat: cfHDROP,
		dwAspect: dvaspectContent,
		lindex:   -1,
		tymed:    tymedHGlobal,
	}
	l := &hdropList{}
	hr := syscallN(vtblOf[dataObjectVtbl](uintptr(o)).GetData,
		uintptr(o),
		uintptr(unsafe.Pointer(&fe)),
		uintptr(unsafe.Pointer(&l.medium)),
	)
	if err := hresultError(hr); err != nil {
		return nil, err
	}
	return l, nil
}

// hdropList reads CF_HDROP through DragQueryFileW.
type hdropList struct {
	medium stgMedium
}

func (l *hdropList) Count() int {
	n, _, _ := procDragQueryFileW.Call(l.medium.hGlobal, dragQueryCount, 0, 0)
	return int(uint32(n))
}

func (l *hdropList) NameLen(i int) int {
	n, _, _ := procDragQueryFileW.Call(l.medium.hGlobal, uintptr(i), 0, 0)
	return int(uint32(n))
}

func (l *hdropList) Name(i int, buf []uint16) int {
	if len(buf) == 0 {
		return 0
	}
	n, _, _ := procDragQueryFileW.Call(l.medium.hGlobal, uintptr(i), uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	return int(uint32(n))
}

func (l *hdropList) Release() {
	procReleaseStgMedium.Call(uintptr(unsafe.Pointer(&l.medium)))
}
