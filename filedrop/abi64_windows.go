//go:build windows && (amd64 || arm64)

package filedrop

import "github.com/wailsapp/go-webview2/pkg/combridge"

// On x64 and arm64 a POINT/POINTL passed by value occupies one register:
// X in the low half, Y in the high half.

func init() {
	combridge.RegisterVTable[combridge.IUnknown, iDropTarget](
		iidIDropTarget,
		_iDropTargetDragEnter,
		_iDropTargetDragOver,
		_iDropTargetDragLeave,
		_iDropTargetDrop,
	)
}

func _iDropTargetDragEnter(this, dataObj, keyState, pt, effect uintptr) uintptr {
	return withTarget(this, func(t iDropTarget) uintptr {
		return t.DragEnter(dataObj, uint32(keyState), unpackPoint(pt), effect)
	})
}

func _iDropTargetDragOver(this, keyState, pt, effect uintptr) uintptr {
	return withTarget(this, func(t iDropTarget) uintptr {
		return t.DragOver(uint32(keyState), unpackPoint(pt), effect)
	})
}

func _iDropTargetDragLeave(this uintptr) uintptr {
	return withTarget(this, func(t iDropTarget) uintptr {
		return t.DragLeave()
	})
}

func _iDropTargetDrop(this, dataObj, keyState, pt, effect uintptr) uintptr {
	return withTarget(this, func(t iDropTarget) uintptr {
		return t.Drop(dataObj, uint32(keyState), unpackPoint(pt), effect)
	})
}

func unpackPoint(v uintptr) ScreenPoint {
	return ScreenPoint{X: int32(uint32(v)), Y: int32(uint32(uint64(v) >> 32))}
}

// pointArgs lays out a by-value point for an outgoing call.
func pointArgs(x, y int32) []uintptr {
	return []uintptr{uintptr(uint64(uint32(x)) | uint64(uint32(y))<<32)}
}
