package rvcore

// A Signal is a named wire of up to 64 bits. Values written to it are
// truncated to its width.
//
// A signal holds two frames of state: the current value, visible through
// Get, and a pending registered value written through Set. Pending values
// are committed by the Circuit once all processes have run for the
// current rising edge, so clocked models never observe each other's
// same-edge updates.
//
type Signal struct {
	name    string
	width   uint
	mask    uint64
	cur     uint64
	next    uint64
	pending bool
}

func newSignal(name string, width uint) *Signal {
	if width == 0 || width > 64 {
		panic("invalid width for signal " + name)
	}
	return &Signal{
		name:  name,
		width: width,
		mask:  ^uint64(0) >> (64 - width),
	}
}

// Name returns the signal's name within its module.
//
func (s *Signal) Name() string { return s.name }

// Width returns the signal's width in bits.
//
func (s *Signal) Width() uint { return s.width }

// Get returns the signal's current value.
//
func (s *Signal) Get() uint64 { return s.cur }

// Drive sets the signal's value immediately. It is meant for testbench
// code running between clock edges; clocked processes see the new value
// at the next rising edge. Drive discards any pending registered update.
//
func (s *Signal) Drive(v uint64) {
	s.cur = v & s.mask
	s.pending = false
}

// Set schedules a registered update: the value becomes visible once the
// current rising edge completes. It is meant for Process code.
//
func (s *Signal) Set(v uint64) {
	s.next = v & s.mask
	s.pending = true
}

func (s *Signal) commit() {
	if s.pending {
		s.cur = s.next
		s.pending = false
	}
}
