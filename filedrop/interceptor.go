package filedrop

import "sync"

// Interceptor is the drop target registered on one child window. It reports
// each notification to the application and then forwards it to the
// delegate, so the engine still draws its own drag feedback.
//
// OLE serialises notifications on the UI thread. The interceptor keeps no
// gesture state of its own beyond what Controller.Close needs to release it
// safely.
type Interceptor struct {
	window     Window
	delegates  DelegateSource
	callback   Callback
	translator Translator

	mu       sync.Mutex
	inFlight bool
	detached bool
	release  func()
}

// NewInterceptor binds an interceptor to the window context, the delegate
// source and the application callback. A nil callback is allowed.
func NewInterceptor(w Window, delegates DelegateSource, cb Callback, tr Translator) *Interceptor {
	return &Interceptor{
		window:     w,
		delegates:  delegates,
		callback:   cb,
		translator: tr,
	}
}

// DragEnter reports Hovered with the dragged paths and forwards the call.
// Without a data object there is nothing to forward and it succeeds. OLE
// sends no Leave or Drop after a failed DragEnter, so a failure ends the
// gesture here.
func (it *Interceptor) DragEnter(obj DataObject, keys KeyState, pt ScreenPoint, effect *DropEffect) (err error) {
	it.begin()
	defer it.endOnError(&err)

	paths, err := ExtractPaths(obj)
	it.notify(HoveredEvent(paths))
	if err != nil {
		return err
	}
	if obj == nil {
		return nil
	}

	dp := it.point(pt)
	return it.forward("DragEnter", func(d Delegate) error {
		return d.DragEnter(obj, keys, dp, effect)
	})
}

// DragOver forwards the pointer position. The application already has the
// paths from DragEnter, so there is no callback.
func (it *Interceptor) DragOver(keys KeyState, pt ScreenPoint, effect *DropEffect) (err error) {
	it.begin()
	defer it.endOnError(&err)

	dp := it.point(pt)
	return it.forward("DragOver", func(d Delegate) error {
		return d.DragOver(keys, dp, effect)
	})
}

// DragLeave reports Cancelled and forwards the call.
func (it *Interceptor) DragLeave() error {
	defer it.finish()

	it.notify(CancelledEvent())
	return it.forward("DragLeave", func(d Delegate) error {
		return d.DragLeave()
	})
}

// Drop reports Dropped with the paths and forwards the call. Without a data
// object there is nothing to forward and it succeeds.
func (it *Interceptor) Drop(obj DataObject, keys KeyState, pt ScreenPoint, effect *DropEffect) error {
	defer it.finish()

	paths, err := ExtractPaths(obj)
	it.notify(DroppedEvent(paths))
	if err != nil {
		return err
	}
	if obj == nil {
		return nil
	}

	dp := it.point(pt)
	return it.forward("Drop", func(d Delegate) error {
		return d.Drop(obj, keys, dp, effect)
	})
}

func (it *Interceptor) point(pt ScreenPoint) DragPoint {
	dp := DragPoint{Screen: pt, Client: ClientPoint{X: pt.X, Y: pt.Y}}
	if it.translator != nil && it.window != nil {
		dp.Client = it.translator.ToClient(it.window.Handle(), pt)
	}
	return dp
}

func (it *Interceptor) forward(op string, call func(Delegate) error) error {
	if it.delegates == nil {
		logger.Error("no drop target delegate", "op", op)
		return ErrNoDelegate
	}
	d, err := it.delegates.Delegate()
	if err != nil {
		logger.Error("resolving drop target delegate failed", "op", op, "error", err)
		return err
	}
	if d == nil {
		logger.Error("drop target delegate missing", "op", op)
		return ErrNoDelegate
	}
	defer d.Release()

	return call(d)
}

func (it *Interceptor) notify(ev DropEvent) {
	it.mu.Lock()
	detached := it.detached
	it.mu.Unlock()
	if detached || it.callback == nil {
		return
	}
	// The result has no defined meaning yet.
	_ = it.callback(it.window, ev)
}

func (it *Interceptor) begin() {
	it.mu.Lock()
	it.inFlight = true
	it.mu.Unlock()
}

func (it *Interceptor) endOnError(err *error) {
	if *err != nil {
		it.finish()
	}
}

// finish ends the gesture and runs a release deferred by detach.
func (it *Interceptor) finish() {
	it.mu.Lock()
	it.inFlight = false
	release := it.release
	it.release = nil
	it.mu.Unlock()

	if release != nil {
		release()
	}
}

// detach stops application callbacks. release runs now when no gesture is in
// flight, otherwise after the gesture's Leave or Drop has been forwarded.
func (it *Interceptor) detach(release func()) {
	it.mu.Lock()
	it.detached = true
	if it.inFlight {
		it.release = release
		it.mu.Unlock()
		return
	}
	it.mu.Unlock()

	if release != nil {
		release()
	}
}

// InFlight reports whether a gesture has entered and not yet ended.
func (it *Interceptor) InFlight() bool {
	it.mu.Lock()
	defer it.mu.Unlock()
	return it.inFlight
}
