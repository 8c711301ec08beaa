// Package hwtest provides utility helpers for testing bus behavior: a
// per-cycle monitor that records the APB control signals and checks the
// protocol's timing properties against a recorded trace.
//
package hwtest

import (
	"testing"

	"github.com/WhatACotton/rvcore"
)

// A Sample is one per-cycle observation of the bus, taken at a rising
// edge before registered updates commit (i.e. the values the DUT's
// clocked logic saw at that edge).
//
type Sample struct {
	Cycle  uint64
	Sel    bool
	Enable bool
	Write  bool
	Ready  bool
	Addr   uint32
	WData  uint32
}

// A Monitor records one Sample per rising edge. Mount its Tick as a
// circuit process alongside the DUT's own processes; it never drives the
// bus.
//
type Monitor struct {
	addr, sel, enable, write, wdata, ready *rvcore.Signal

	cycle uint64
	Trace []Sample
}

// NewMonitor attaches a monitor to the signals prefix_paddr,
// prefix_psel, ... on m. It panics if any of them is missing: the
// monitor is testbench wiring, not an adaptive binder.
//
func NewMonitor(m *rvcore.Module, prefix string) *Monitor {
	get := func(base string) *rvcore.Signal {
		s, ok := m.SignalNamed(prefix + "_" + base)
		if !ok {
			panic("hwtest: no signal " + prefix + "_" + base + " on module " + m.Name())
		}
		return s
	}
	return &Monitor{
		addr:   get("paddr"),
		sel:    get("psel"),
		enable: get("penable"),
		write:  get("pwrite"),
		wdata:  get("pwdata"),
		ready:  get("pready"),
	}
}

// Tick records the bus state for the current edge.
//
func (m *Monitor) Tick() {
	m.Trace = append(m.Trace, Sample{
		Cycle:  m.cycle,
		Sel:    m.sel.Get() != 0,
		Enable: m.enable.Get() != 0,
		Write:  m.write.Get() != 0,
		Ready:  m.ready.Get() != 0,
		Addr:   uint32(m.addr.Get()),
		WData:  uint32(m.wdata.Get()),
	})
	m.cycle++
}

// CheckProtocol verifies the recorded trace against the bus timing
// contract:
//
//   - penable is never observed without psel;
//   - within each select window, penable is low for exactly the first
//     cycle (Setup) and high for every following cycle (Access) — a new
//     Setup cycle with psel still high starts the next window, which is
//     how back-to-back transactions appear to clocked logic;
//   - pwrite does not change while a window is in progress.
//
func (m *Monitor) CheckProtocol(t *testing.T) {
	t.Helper()
	inWindow := false
	var write bool
	for _, s := range m.Trace {
		if !s.Sel {
			if s.Enable {
				t.Errorf("cycle %d: penable asserted without psel", s.Cycle)
			}
			inWindow = false
			continue
		}
		if !s.Enable {
			// Setup cycle opens a window (or starts the next one).
			inWindow = true
			write = s.Write
			continue
		}
		if !inWindow {
			t.Errorf("cycle %d: access phase without a preceding setup cycle", s.Cycle)
			inWindow = true
			write = s.Write
			continue
		}
		if s.Write != write {
			t.Errorf("cycle %d: pwrite changed mid-transaction", s.Cycle)
		}
	}
}

// Windows splits the trace into transactions: each window starts at a
// Setup cycle (psel high, penable low) and spans the Access cycles that
// follow it. The returned slices index into Trace.
//
func (m *Monitor) Windows() [][]Sample {
	var out [][]Sample
	var cur []Sample
	for _, s := range m.Trace {
		switch {
		case s.Sel && !s.Enable:
			if cur != nil {
				out = append(out, cur)
			}
			cur = []Sample{s}
		case s.Sel && cur != nil:
			cur = append(cur, s)
		case !s.Sel && cur != nil:
			out = append(out, cur)
			cur = nil
		}
	}
	if cur != nil {
		out = append(out, cur)
	}
	return out
}
