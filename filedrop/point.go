package filedrop

// ScreenPoint is a position in virtual-screen coordinates, as OLE reports it.
type ScreenPoint struct {
	X, Y int32
}

// ClientPoint is a position relative to a window's client area.
type ClientPoint struct {
	X, Y int32
}

// DragPoint carries both spaces to a delegate. Engine delegates read
// Client; delegates that are themselves IDropTargets read Screen.
type DragPoint struct {
	Screen ScreenPoint
	Client ClientPoint
}

// Translator converts screen coordinates to the client space of a window.
type Translator interface {
	ToClient(h Handle, pt ScreenPoint) ClientPoint
}

// TranslatorFunc adapts a function to Translator.
type TranslatorFunc func(h Handle, pt ScreenPoint) ClientPoint

func (f TranslatorFunc) ToClient(h Handle, pt ScreenPoint) ClientPoint {
	return f(h, pt)
}
