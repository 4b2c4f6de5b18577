// Package filedrop taps native OLE drag-and-drop on the child windows an
// embedded WebView2 engine creates under a host window.
//
// The interceptor reports file drags to the application and then forwards
// every notification to the engine's own drop target, so native cursors and
// highlighting keep working. Only Windows has a native platform; on other
// systems NewNativePlatform returns ErrUnsupportedPlatform.
package filedrop

// Handle is a native window handle (HWND).
type Handle uintptr

// Window is the window context handed to the application callback and used
// as the reference window for coordinate translation.
type Window interface {
	Handle() Handle
}

// EventKind tells which part of a gesture a DropEvent reports.
type EventKind int

const (
	Hovered EventKind = iota
	Dropped
	Cancelled
)

func (k EventKind) String() string {
	switch k {
	case Hovered:
		return "hovered"
	case Dropped:
		return "dropped"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// DropEvent is delivered to the application callback. Paths is empty for
// Cancelled and for payloads that are not file lists.
type DropEvent struct {
	Kind  EventKind
	Paths []string
}

// HoveredEvent reports files entering the window.
func HoveredEvent(paths []string) DropEvent {
	return DropEvent{Kind: Hovered, Paths: clonePaths(paths)}
}

// DroppedEvent reports files released over the window.
func DroppedEvent(paths []string) DropEvent {
	return DropEvent{Kind: Dropped, Paths: clonePaths(paths)}
}

// CancelledEvent reports a gesture leaving the window without a drop.
func CancelledEvent() DropEvent {
	return DropEvent{Kind: Cancelled}
}

func clonePaths(paths []string) []string {
	if len(paths) == 0 {
		return nil
	}
	out := make([]string, len(paths))
	copy(out, paths)
	return out
}

// Callback receives every DropEvent for one webview. The returned bool is
// accepted for compatibility but not consulted.
type Callback func(w Window, ev DropEvent) bool
