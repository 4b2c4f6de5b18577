package filedrop

import "sync"

// A child-window walk hands its visitor to the native enumeration callback
// as an integer id in lParam. The id is looked up here. No Go pointer ever
// crosses into native code.

type childWalk struct {
	root  Handle
	visit func(child Handle) bool
}

type walkTable struct {
	mu    sync.Mutex
	next  uintptr
	walks map[uintptr]childWalk
}

var walks = walkTable{walks: make(map[uintptr]childWalk)}

// add registers w and returns its id. Ids are never zero.
func (t *walkTable) add(w childWalk) uintptr {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.next++
	if t.next == 0 {
		t.next++
	}
	t.walks[t.next] = w
	return t.next
}

func (t *walkTable) get(id uintptr) (childWalk, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	w, ok := t.walks[id]
	return w, ok
}

func (t *walkTable) remove(id uintptr) {
	t.mu.Lock()
	delete(t.walks, id)
	t.mu.Unlock()
}

// visitChild is the body of the native enumeration callback. parent is the
// child's immediate parent. Deeper descendants are skipped so only direct
// children reach the visitor. It returns the native continue flag.
func (t *walkTable) visitChild(id uintptr, child, parent Handle) uintptr {
	w, ok := t.get(id)
	if !ok {
		return 0
	}
	if parent != w.root {
		return 1
	}
	if w.visit(child) {
		return 1
	}
	return 0
}
