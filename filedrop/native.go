package filedrop

// KeyState is the grfKeyState mask OLE passes with each notification.
type KeyState uint32

// DropEffect is the in/out pdwEffect value of a notification.
type DropEffect uint32

const (
	EffectNone   DropEffect = 0
	EffectCopy   DropEffect = 1
	EffectMove   DropEffect = 2
	EffectLink   DropEffect = 4
	EffectScroll DropEffect = 0x80000000
)

// DataObject is the payload of a drag (IDataObject).
type DataObject interface {
	// FileList returns the CF_HDROP payload. Payloads without one fail
	// with DV_E_FORMATETC (see IsNotFileList).
	FileList() (FileList, error)
	// Native is the IDataObject pointer, passed through to delegates
	// unchanged.
	Native() uintptr
}

// FileList is an HDROP: a counted list of UTF-16 paths. Release frees the
// storage medium it came from.
type FileList interface {
	Count() int
	// NameLen is the length of entry i in UTF-16 units, without the NUL.
	NameLen(i int) int
	// Name copies entry i into buf, NUL terminated, and returns the number
	// of units copied without the NUL.
	Name(i int, buf []uint16) int
	Release()
}

// Delegate is the drop target every notification is forwarded to.
type Delegate interface {
	DragEnter(obj DataObject, keys KeyState, pt DragPoint, effect *DropEffect) error
	DragOver(keys KeyState, pt DragPoint, effect *DropEffect) error
	DragLeave() error
	Drop(obj DataObject, keys KeyState, pt DragPoint, effect *DropEffect) error
	Release()
}

// DelegateSource resolves the delegate for one notification. A failure is
// returned to the OS unchanged.
type DelegateSource interface {
	Delegate() (Delegate, error)
}

// ChildBinder is implemented by delegate sources whose delegate differs per
// child window. Bind runs before the child's current registration is
// revoked; a nil result means the child has nothing to forward to and is
// skipped.
type ChildBinder interface {
	Bind(child Handle) DelegateSource
}

// Restorer is implemented by per-child sources that captured the window's
// original drop target. Restore registers that target on the window again.
type Restorer interface {
	Restore(child Handle) error
}

// Enumerator walks the immediate children of a window. Enumeration stops
// early when visit returns false.
type Enumerator interface {
	ForEachChild(root Handle, visit func(child Handle) bool)
}

// Target is a registered native drop target. Release drops the Go side's
// reference; the OS keeps its own until it is done with the object.
type Target interface {
	Release()
}

// Platform is the set of native operations a Controller needs.
type Platform interface {
	Enumerator
	Translator
	// Revoke removes the window's drop target registration.
	Revoke(h Handle) error
	// Register makes it the window's drop target.
	Register(h Handle, it *Interceptor) (Target, error)
}

type releaser interface {
	Release()
}
