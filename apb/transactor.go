package apb

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/WhatACotton/rvcore"
)

// Clock is the transactor's suspension primitive: Rise advances the
// surrounding simulation to the next rising edge of the bus clock and
// returns once all clocked logic has settled. rvcore.Circuit implements
// it; tests may substitute a scripted clock.
//
type Clock interface {
	Rise()
}

// Phase is the transactor's bus-protocol state. Exactly one phase is
// active per transactor; every transaction moves Idle → Setup → Access
// and back to Idle, except a timed-out one, which never leaves Access
// until Reset is called.
//
type Phase int

// Bus phases.
const (
	Idle Phase = iota
	Setup
	Access
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "Idle"
	case Setup:
		return "Setup"
	case Access:
		return "Access"
	}
	return "Phase(" + fmt.Sprint(int(p)) + ")"
}

const (
	// DefaultTimeout is the bound, in clock edges, on the wait for
	// pready. A completer that takes longer has almost certainly hung.
	DefaultTimeout = 5000

	progressEvery = 500
)

// A Transactor is an APB bus master bound to one signal set on a DUT.
// It runs a single transaction at a time; see the package documentation
// for the concurrency contract.
//
type Transactor struct {
	bnd     bindings
	clk     Clock
	log     Logger
	phase   Phase
	timeout int
}

// Option configures a Transactor at construction.
//
type Option func(*Transactor)

// WithLogger installs a diagnostics sink. The default discards
// everything.
//
func WithLogger(l Logger) Option {
	return func(t *Transactor) { t.log = l }
}

// WithTimeout overrides the pready wait bound, in clock edges.
//
func WithTimeout(cycles int) Option {
	return func(t *Transactor) { t.timeout = cycles }
}

// New binds the bus signal roles on dut under the given role-name prefix
// (trailing underscores are trimmed) and returns a master ready to issue
// transactions. It returns a *BindingError if a mandatory role cannot be
// resolved; the transactor must not be used in that case.
//
func New(dut *rvcore.Module, prefix string, clk Clock, opts ...Option) (*Transactor, error) {
	t := &Transactor{
		clk:     clk,
		log:     nopLogger{},
		timeout: DefaultTimeout,
	}
	for _, o := range opts {
		o(t)
	}
	if t.timeout <= 0 {
		return nil, errors.Errorf("apb: invalid timeout %d", t.timeout)
	}
	bnd, err := bind(dut, strings.TrimRight(prefix, "_"), t.log)
	if err != nil {
		return nil, err
	}
	t.bnd = bnd
	return t, nil
}

// Bindings returns the resolved role → signal path table.
//
func (t *Transactor) Bindings() map[string]string { return t.bnd.table() }

// Phase returns the transactor's current bus phase.
//
func (t *Transactor) Phase() Phase { return t.phase }

// Write performs one write transaction. The returned error is non-nil
// only for hard failures (pready timeout, or reuse without Reset after
// one); a slave error is reported through the Outcome.
//
func (t *Transactor) Write(addr, data uint32) (Outcome, error) {
	return t.transfer(transaction{addr: addr, data: data, write: true})
}

// Read performs one read transaction and captures prdata. On a slave
// error the returned Outcome carries zero data and SlvErr set.
//
func (t *Transactor) Read(addr uint32) (Outcome, error) {
	return t.transfer(transaction{addr: addr})
}

// Reset deasserts every master-driven signal and returns the transactor
// to Idle. It must be called before reuse after a transaction timed out;
// it is a no-op on an idle bus.
//
func (t *Transactor) Reset() {
	t.bnd.sel.sig.Drive(0)
	t.bnd.enable.sig.Drive(0)
	t.bnd.write.sig.Drive(0)
	t.phase = Idle
}

// transaction is the transient per-call state of one transfer.
type transaction struct {
	addr  uint32
	data  uint32
	write bool
}

func (tr transaction) dir() string {
	if tr.write {
		return "write"
	}
	return "read"
}

func (t *Transactor) transfer(tr transaction) (Outcome, error) {
	if t.phase != Idle {
		return Outcome{}, errors.Errorf(
			"apb: bus left in phase %s by a timed-out transaction, Reset required", t.phase)
	}
	t.log.Infof("apb: %s addr=0x%08X data=0x%08X bindings=%v",
		tr.dir(), tr.addr, tr.data, t.bnd.table())

	// Setup: address, data and direction valid, psel asserted,
	// penable low for exactly one cycle.
	t.phase = Setup
	t.bnd.addr.sig.Drive(uint64(tr.addr))
	if tr.write {
		t.bnd.wdata.sig.Drive(uint64(tr.data))
		t.bnd.write.sig.Drive(1)
	} else {
		t.bnd.write.sig.Drive(0)
	}
	t.bnd.sel.sig.Drive(1)
	t.bnd.enable.sig.Drive(0)
	t.clk.Rise()

	// Access: penable joins psel; everything else holds.
	t.phase = Access
	t.bnd.enable.sig.Drive(1)

	if err := t.waitReady(); err != nil {
		// The bus stays driven mid-transaction; Reset releases it.
		return Outcome{}, err
	}

	var out Outcome
	if !tr.write {
		out.Data = uint32(t.bnd.rdata.sig.Get())
	}
	if t.bnd.slverr != nil && t.bnd.slverr.sig.Get() != 0 {
		out.SlvErr = true
		out.Data = 0
		t.log.Warnf("apb: %s addr=0x%08X completed with pslverr", tr.dir(), tr.addr)
	}

	t.bnd.sel.sig.Drive(0)
	t.bnd.enable.sig.Drive(0)
	t.bnd.write.sig.Drive(0)
	t.phase = Idle
	return out, nil
}

// waitReady samples pready after each rising edge, holding one extra
// edge once it fires so that registered read data settles before
// capture.
func (t *Transactor) waitReady() error {
	for cycle := 0; cycle < t.timeout; cycle++ {
		if cycle%progressEvery == 0 {
			t.log.Infof("apb: waiting for pready, cycle=%d %s", cycle, t.snapshot())
		}
		if t.bnd.ready.sig.Get() != 0 {
			t.clk.Rise()
			return nil
		}
		t.clk.Rise()
	}
	t.log.Errorf("apb: pready timeout after %d cycles: %s", t.timeout, t.snapshot())
	return &TimeoutError{Cycles: t.timeout}
}

// snapshot formats the full bus state for diagnostics.
func (t *Transactor) snapshot() string {
	var b strings.Builder
	fmt.Fprintf(&b, "psel=%d penable=%d pwrite=%d paddr=0x%08X pwdata=0x%08X pready=%d",
		t.bnd.sel.sig.Get(), t.bnd.enable.sig.Get(), t.bnd.write.sig.Get(),
		t.bnd.addr.sig.Get(), t.bnd.wdata.sig.Get(), t.bnd.ready.sig.Get())
	if t.bnd.slverr != nil {
		fmt.Fprintf(&b, " pslverr=%d", t.bnd.slverr.sig.Get())
	}
	return b.String()
}
