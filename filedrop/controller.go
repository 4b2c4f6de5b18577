package filedrop

import "sync"

type registration struct {
	handle      Handle
	interceptor *Interceptor
	target      Target
	source      DelegateSource
	ownsSource  bool
}

// Controller owns the interceptors installed for one webview.
type Controller struct {
	platform Platform

	mu    sync.Mutex
	regs  map[Handle]*registration
	order []Handle
}

// NewController returns a controller that installs through p.
func NewController(p Platform) *Controller {
	return &Controller{
		platform: p,
		regs:     make(map[Handle]*registration),
	}
}

// Install puts an interceptor on every immediate child of root. Each child
// is best effort: a child that cannot take a drop target is logged and
// skipped without affecting its siblings.
func (c *Controller) Install(root Handle, w Window, delegates DelegateSource, cb Callback) {
	visited, installed := 0, 0
	c.platform.ForEachChild(root, func(child Handle) bool {
		visited++
		if c.inject(child, w, delegates, cb) {
			installed++
		}
		return true
	})
	logger.Info("drop interception installed", "root", root, "children", visited, "installed", installed)
}

func (c *Controller) inject(child Handle, w Window, delegates DelegateSource, cb Callback) bool {
	c.mu.Lock()
	prev := c.regs[child]
	c.mu.Unlock()

	source, owns := delegates, false
	if binder, ok := delegates.(ChildBinder); ok {
		if prev != nil && prev.ownsSource {
			// The window's current target is our own interceptor; keep the
			// delegate captured when it was first installed.
			source, owns = prev.source, true
		} else {
			source = binder.Bind(child)
			if source == nil {
				logger.Debug("child window has no drop target to forward to", "hwnd", child)
				return false
			}
			owns = true
		}
	}

	if err := c.platform.Revoke(child); err != nil && !IsNotRegistered(err) {
		logger.Warn("RevokeDragDrop failed, skipping window", "hwnd", child, "error", err)
		if owns && (prev == nil || prev.source != source) {
			releaseSource(source)
		}
		return false
	}

	if prev != nil {
		// The revoke above already unregistered it.
		c.forget(prev, prev.source != source)
	}

	it := NewInterceptor(w, source, cb, c.platform)
	target, err := c.platform.Register(child, it)
	if err != nil {
		logger.Warn("RegisterDragDrop failed, skipping window", "hwnd", child, "error", err)
		if owns {
			releaseSource(source)
		}
		return false
	}

	c.mu.Lock()
	c.regs[child] = &registration{
		handle:      child,
		interceptor: it,
		target:      target,
		source:      source,
		ownsSource:  owns,
	}
	c.order = append(c.order, child)
	c.mu.Unlock()

	logger.Debug("drop interceptor registered", "hwnd", child)
	return true
}

// forget drops a registration the OS no longer references through the
// window. releaseOwned controls whether a captured delegate goes with it.
func (c *Controller) forget(reg *registration, releaseOwned bool) {
	c.mu.Lock()
	if c.regs[reg.handle] == reg {
		delete(c.regs, reg.handle)
		c.order = removeHandle(c.order, reg.handle)
	}
	c.mu.Unlock()

	reg.interceptor.detach(func() {
		reg.target.Release()
		if releaseOwned && reg.ownsSource {
			releaseSource(reg.source)
		}
	})
}

// Installed returns the windows that currently carry an interceptor, in
// installation order.
func (c *Controller) Installed() []Handle {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Handle, len(c.order))
	copy(out, c.order)
	return out
}

// Close unregisters every interceptor and puts back any drop target captured
// from the window when it was installed. An interceptor with a gesture in
// flight stops calling the application at once but keeps forwarding, and is
// released after the gesture's Leave or Drop. Close may be called more than
// once.
func (c *Controller) Close() {
	c.mu.Lock()
	regs := make([]*registration, 0, len(c.order))
	for _, h := range c.order {
		regs = append(regs, c.regs[h])
	}
	c.mu.Unlock()

	for _, reg := range regs {
		if err := c.platform.Revoke(reg.handle); err != nil && !IsNotRegistered(err) {
			logger.Warn("RevokeDragDrop failed during teardown", "hwnd", reg.handle, "error", err)
		} else {
			c.restore(reg)
		}
		if reg.interceptor.InFlight() {
			logger.Info("releasing drop interceptor after the current gesture", "hwnd", reg.handle)
		}
		c.forget(reg, true)
	}
}

func (c *Controller) restore(reg *registration) {
	if !reg.ownsSource {
		return
	}
	r, ok := reg.source.(Restorer)
	if !ok {
		return
	}
	if err := r.Restore(reg.handle); err != nil {
		logger.Warn("restoring the original drop target failed", "hwnd", reg.handle, "error", err)
		return
	}
	logger.Debug("original drop target restored", "hwnd", reg.handle)
}

func releaseSource(s DelegateSource) {
	if r, ok := s.(releaser); ok {
		r.Release()
	}
}

func removeHandle(hs []Handle, h Handle) []Handle {
	for i, v := range hs {
		if v == h {
			return append(hs[:i], hs[i+1:]...)
		}
	}
	return hs
}
