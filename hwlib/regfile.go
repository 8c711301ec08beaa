// Package hwlib provides mountable DUT-side parts for the rvcore
// simulation substrate: bus completers and per-edge probes used by the
// harness's own tests and demos.
package hwlib

import (
	"github.com/WhatACotton/rvcore"
)

// A RegisterFile is an APB completer backed by a word-addressed register
// array. It completes each access after a configurable number of wait
// states, asserting pready for exactly one cycle, and flags accesses to
// a configured error window (or past the end of the array) through
// pslverr. prdata and pslverr hold their value until psel deasserts.
//
type RegisterFile struct {
	addr   *rvcore.Signal
	sel    *rvcore.Signal
	enable *rvcore.Signal
	write  *rvcore.Signal
	wdata  *rvcore.Signal
	ready  *rvcore.Signal
	rdata  *rvcore.Signal
	slverr *rvcore.Signal // nil when built with NoSlvErr

	mem          []uint32
	wait         int
	noErr        bool
	errLo, errHi uint64 // [errLo, errHi) faults; empty when errLo == errHi

	count int
	done  bool
}

// RegOption configures a RegisterFile.
//
type RegOption func(*RegisterFile)

// WaitStates makes the register file insert n idle cycles before
// asserting pready.
//
func WaitStates(n int) RegOption {
	return func(r *RegisterFile) { r.wait = n }
}

// ErrWindow marks byte addresses in [lo, hi) as faulting: accesses there
// complete with pslverr asserted and do not touch the array.
//
func ErrWindow(lo, hi uint32) RegOption {
	return func(r *RegisterFile) { r.errLo, r.errHi = uint64(lo), uint64(hi) }
}

// NoSlvErr omits the pslverr signal, modelling a design without an
// error line. Faulting accesses then complete silently.
//
func NoSlvErr() RegOption {
	return func(r *RegisterFile) { r.noErr = true }
}

// NewRegisterFile creates the bus signals prefix_paddr, prefix_psel, ...
// on m and returns a completer holding the given number of 32-bit words.
// Mount its Tick as a circuit process. It panics on a zero word count.
//
func NewRegisterFile(m *rvcore.Module, prefix string, words int, opts ...RegOption) *RegisterFile {
	if words <= 0 {
		panic("hwlib: register file needs at least one word")
	}
	r := &RegisterFile{mem: make([]uint32, words)}
	for _, o := range opts {
		o(r)
	}
	r.addr = m.AddSignal(prefix+"_paddr", 32)
	r.sel = m.AddSignal(prefix+"_psel", 1)
	r.enable = m.AddSignal(prefix+"_penable", 1)
	r.write = m.AddSignal(prefix+"_pwrite", 1)
	r.wdata = m.AddSignal(prefix+"_pwdata", 32)
	r.ready = m.AddSignal(prefix+"_pready", 1)
	r.rdata = m.AddSignal(prefix+"_prdata", 32)
	if !r.noErr {
		r.slverr = m.AddSignal(prefix+"_pslverr", 1)
	}
	return r
}

// Tick is the completer's clocked process.
//
func (r *RegisterFile) Tick() {
	if r.sel.Get() == 0 {
		r.ready.Set(0)
		if r.slverr != nil {
			r.slverr.Set(0)
		}
		r.count = 0
		r.done = false
		return
	}
	if r.enable.Get() == 0 {
		// Setup cycle: a new transaction starts here.
		r.ready.Set(0)
		r.count = 0
		r.done = false
		return
	}
	if r.done {
		// pready is a one-cycle pulse; data and error hold.
		r.ready.Set(0)
		return
	}
	if r.count < r.wait {
		r.count++
		r.ready.Set(0)
		return
	}

	word := r.addr.Get() >> 2
	fault := word >= uint64(len(r.mem)) || r.inErrWindow(r.addr.Get())
	switch {
	case fault:
		if r.write.Get() == 0 {
			r.rdata.Set(0)
		}
	case r.write.Get() != 0:
		r.mem[word] = uint32(r.wdata.Get())
	default:
		r.rdata.Set(uint64(r.mem[word]))
	}
	if r.slverr != nil {
		if fault {
			r.slverr.Set(1)
		} else {
			r.slverr.Set(0)
		}
	}
	r.ready.Set(1)
	r.done = true
}

func (r *RegisterFile) inErrWindow(addr uint64) bool {
	return r.errLo < r.errHi && addr >= r.errLo && addr < r.errHi
}

// Peek returns the word stored at the given byte address, bypassing the
// bus. Test support.
//
func (r *RegisterFile) Peek(addr uint32) uint32 {
	return r.mem[addr>>2]
}

// Poke stores a word at the given byte address, bypassing the bus.
// Test support.
//
func (r *RegisterFile) Poke(addr, v uint32) {
	r.mem[addr>>2] = v
}
