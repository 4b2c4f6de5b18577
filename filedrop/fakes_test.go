package filedrop

import (
	"unicode/utf16"

	ole "github.com/go-ole/go-ole"
)

type fakeWindow Handle

func (w fakeWindow) Handle() Handle { return Handle(w) }

type fakeFileList struct {
	names    []string
	released int
}

func (l *fakeFileList) Count() int { return len(l.names) }

func (l *fakeFileList) NameLen(i int) int { return len(utf16.Encode([]rune(l.names[i]))) }

// Name behaves like DragQueryFileW: it copies at most len(buf)-1 units and
// NUL terminates.
func (l *fakeFileList) Name(i int, buf []uint16) int {
	u := utf16.Encode([]rune(l.names[i]))
	n := copy(buf[:len(buf)-1], u)
	buf[n] = 0
	return n
}

func (l *fakeFileList) Release() { l.released++ }

type fakeDataObject struct {
	files  []string
	err    error
	native uintptr
	list   *fakeFileList
}

func fileObject(files ...string) *fakeDataObject {
	return &fakeDataObject{files: files, native: 0xD0}
}

func textObject() *fakeDataObject {
	return &fakeDataObject{err: ole.NewError(dvEFormatEtc), native: 0xD1}
}

func (o *fakeDataObject) FileList() (FileList, error) {
	if o.err != nil {
		return nil, o.err
	}
	o.list = &fakeFileList{names: o.files}
	return o.list, nil
}

func (o *fakeDataObject) Native() uintptr { return o.native }

type delegateCall struct {
	op   string
	obj  DataObject
	keys KeyState
	pt   DragPoint
}

type fakeDelegate struct {
	calls    []delegateCall
	err      error
	effect   DropEffect
	releases int
}

func (d *fakeDelegate) record(op string, obj DataObject, keys KeyState, pt DragPoint, effect *DropEffect) error {
	d.calls = append(d.calls, delegateCall{op: op, obj: obj, keys: keys, pt: pt})
	if effect != nil {
		*effect = d.effect
	}
	return d.err
}

func (d *fakeDelegate) DragEnter(obj DataObject, keys KeyState, pt DragPoint, effect *DropEffect) error {
	return d.record("DragEnter", obj, keys, pt, effect)
}

func (d *fakeDelegate) DragOver(keys KeyState, pt DragPoint, effect *DropEffect) error {
	return d.record("DragOver", nil, keys, pt, effect)
}

func (d *fakeDelegate) DragLeave() error {
	return d.record("DragLeave", nil, 0, DragPoint{}, nil)
}

func (d *fakeDelegate) Drop(obj DataObject, keys KeyState, pt DragPoint, effect *DropEffect) error {
	return d.record("Drop", obj, keys, pt, effect)
}

func (d *fakeDelegate) Release() { d.releases++ }

func (d *fakeDelegate) ops() []string {
	var out []string
	for _, c := range d.calls {
		out = append(out, c.op)
	}
	return out
}

type fakeSource struct {
	delegate   *fakeDelegate
	err        error
	restoreErr error
	resolved   int
	released   int
	restored   []Handle
}

func (s *fakeSource) Delegate() (Delegate, error) {
	s.resolved++
	if s.err != nil {
		return nil, s.err
	}
	return s.delegate, nil
}

func (s *fakeSource) Release() { s.released++ }

func (s *fakeSource) Restore(child Handle) error {
	s.restored = append(s.restored, child)
	return s.restoreErr
}

// fakeBinder hands out a per-child source, as PreviousTargets does.
type fakeBinder struct {
	sources map[Handle]*fakeSource
	binds   []Handle
}

func (b *fakeBinder) Delegate() (Delegate, error) { return nil, ErrNoDelegate }

func (b *fakeBinder) Bind(child Handle) DelegateSource {
	b.binds = append(b.binds, child)
	s, ok := b.sources[child]
	if !ok {
		return nil
	}
	return s
}

type fakeTarget struct {
	handle   Handle
	released int
}

func (t *fakeTarget) Release() { t.released++ }

// fakePlatform models OLE's registration table and a set of windows whose
// client areas start at origins.
type fakePlatform struct {
	children    map[Handle][]Handle
	origins     map[Handle]ScreenPoint
	registered  map[Handle]*Interceptor
	revokeErr   map[Handle]error
	registerErr map[Handle]error
	revokes     []Handle
	targets     []*fakeTarget
}

func newFakePlatform() *fakePlatform {
	return &fakePlatform{
		children:    make(map[Handle][]Handle),
		origins:     make(map[Handle]ScreenPoint),
		registered:  make(map[Handle]*Interceptor),
		revokeErr:   make(map[Handle]error),
		registerErr: make(map[Handle]error),
	}
}

func (p *fakePlatform) ForEachChild(root Handle, visit func(Handle) bool) {
	for _, c := range p.children[root] {
		if !visit(c) {
			return
		}
	}
}

func (p *fakePlatform) ToClient(h Handle, pt ScreenPoint) ClientPoint {
	o := p.origins[h]
	return ClientPoint{X: pt.X - o.X, Y: pt.Y - o.Y}
}

func (p *fakePlatform) Revoke(h Handle) error {
	p.revokes = append(p.revokes, h)
	if err := p.revokeErr[h]; err != nil {
		return err
	}
	if _, ok := p.registered[h]; !ok {
		return ole.NewError(dragDropENotRegistered)
	}
	delete(p.registered, h)
	return nil
}

func (p *fakePlatform) Register(h Handle, it *Interceptor) (Target, error) {
	if err := p.registerErr[h]; err != nil {
		return nil, err
	}
	if _, ok := p.registered[h]; ok {
		return nil, ole.NewError(dragDropEAlreadyRegistered)
	}
	p.registered[h] = it
	t := &fakeTarget{handle: h}
	p.targets = append(p.targets, t)
	return t, nil
}

func (p *fakePlatform) targetsFor(h Handle) []*fakeTarget {
	var out []*fakeTarget
	for _, t := range p.targets {
		if t.handle == h {
			out = append(out, t)
		}
	}
	return out
}

type recorder struct {
	events  []DropEvent
	windows []Window
	result  bool
}

func (r *recorder) callback(w Window, ev DropEvent) bool {
	r.windows = append(r.windows, w)
	r.events = append(r.events, ev)
	return r.result
}
