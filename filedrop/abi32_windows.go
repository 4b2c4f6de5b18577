//go:build windows && (386 || arm)

package filedrop

import "github.com/wailsapp/go-webview2/pkg/combridge"

// On 32-bit targets a POINT/POINTL passed by value takes two argument
// slots, X then Y.

func init() {
	combridge.RegisterVTable[combridge.IUnknown, iDropTarget](
		iidIDropTarget,
		_iDropTargetDragEnter,
		_iDropTargetDragOver,
		_iDropTargetDragLeave,
		_iDropTargetDrop,
	)
}

func _iDropTargetDragEnter(this, dataObj, keyState, x, y, effect uintptr) uintptr {
	return withTarget(this, func(t iDropTarget) uintptr {
		return t.DragEnter(dataObj, uint32(keyState), unpackPoint(x, y), effect)
	})
}

func _iDropTargetDragOver(this, keyState, x, y, effect uintptr) uintptr {
	return withTarget(this, func(t iDropTarget) uintptr {
		return t.DragOver(uint32(keyState), unpackPoint(x, y), effect)
	})
}

func _iDropTargetDragLeave(this uintptr) uintptr {
	return withTarget(this, func(t iDropTarget) uintptr {
		return t.DragLeave()
	})
}

func _iDropTargetDrop(this, dataObj, keyState, x, y, effect uintptr) uintptr {
	return withTarget(this, func(t iDropTarget) uintptr {
		return t.Drop(dataObj, uint32(keyState), unpackPoint(x, y), effect)
	})
}

func unpackPoint(x, y uintptr) ScreenPoint {
	return ScreenPoint{X: int32(x), Y: int32(y)}
}

// pointArgs lays out a by-value point for an outgoing call.
func pointArgs(x, y int32) []uintptr {
	return []uintptr{uintptr(uint32(x)), uintptr(uint32(y))}
}
