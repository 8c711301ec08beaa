package rvcore

// A Module is a named container of signals and sub-modules, mirroring one
// level of the design hierarchy. Signal and child names are unique within
// a module; children are kept in creation order so that name searches over
// the hierarchy are reproducible for a given design shape.
//
type Module struct {
	name     string
	sigs     map[string]*Signal
	children []*Module
	index    map[string]*Module
}

// NewModule returns a new, empty module.
//
func NewModule(name string) *Module {
	return &Module{
		name:  name,
		sigs:  make(map[string]*Signal),
		index: make(map[string]*Module),
	}
}

// Name returns the module's name.
//
func (m *Module) Name() string { return m.name }

// AddSignal creates a signal of the given width on m.
// It panics if the name is already taken.
//
func (m *Module) AddSignal(name string, width uint) *Signal {
	if _, ok := m.sigs[name]; ok {
		panic("duplicate signal " + name + " in module " + m.name)
	}
	s := newSignal(name, width)
	m.sigs[name] = s
	return s
}

// SignalNamed returns the signal with the given name, if any.
//
func (m *Module) SignalNamed(name string) (*Signal, bool) {
	s, ok := m.sigs[name]
	return s, ok
}

// NewChild creates a sub-module and attaches it to m.
// It panics if the name is already taken.
//
func (m *Module) NewChild(name string) *Module {
	if _, ok := m.index[name]; ok {
		panic("duplicate child " + name + " in module " + m.name)
	}
	c := NewModule(name)
	m.children = append(m.children, c)
	m.index[name] = c
	return c
}

// Child returns the sub-module with the given name, if any.
//
func (m *Module) Child(name string) (*Module, bool) {
	c, ok := m.index[name]
	return c, ok
}

// Children returns the sub-modules of m in creation order. The returned
// slice must not be modified.
//
func (m *Module) Children() []*Module {
	return m.children
}

// signals collects all signals of m and its descendants.
//
func (m *Module) signals() []*Signal {
	var out []*Signal
	for _, s := range m.sigs {
		out = append(out, s)
	}
	for _, c := range m.children {
		out = append(out, c.signals()...)
	}
	return out
}
