package apb

import (
	"strings"

	"github.com/WhatACotton/rvcore"
)

// Base names of the bus signal roles. The first seven are mandatory;
// pslverr is optional and binds to absent when the DUT has no error line.
var (
	mandatoryRoles = [...]string{
		"paddr", "psel", "penable", "pwrite", "pwdata", "pready", "prdata",
	}
	optionalRole = "pslverr"
)

// A binding ties one signal role to its handle on the DUT, together with
// the access path that won the name search. Bindings are created once at
// transactor construction and never change.
type binding struct {
	sig  *rvcore.Signal
	path string // resolved name, "child.name" when nested
}

// bindings is the full resolved signal set of one bus.
type bindings struct {
	addr   binding
	sel    binding
	enable binding
	write  binding
	wdata  binding
	ready  binding
	rdata  binding
	slverr *binding // nil when the DUT exposes no error signal
}

// candidates returns the names probed for a role, in resolution order:
// the prefixed name, the same with an output direction marker prepended,
// the prefix with input markers swapped for output markers (for DUTs
// that expose the bus as an output), and the bare base name.
func candidates(prefix, base string) []string {
	return []string{
		prefix + "_" + base,
		"o_" + prefix + "_" + base,
		strings.ReplaceAll(prefix, "i_", "o_") + "_" + base,
		base,
	}
}

// resolve probes the DUT for one role: all candidates on the DUT itself,
// then all candidates scoped to each immediate sub-module, in creation
// order. First match wins. It returns every name tried so that binding
// failures can report the full search.
func resolve(dut *rvcore.Module, prefix, base string) (binding, []string, bool) {
	cands := candidates(prefix, base)
	tried := make([]string, 0, len(cands)*(1+len(dut.Children())))
	for _, n := range cands {
		tried = append(tried, n)
		if s, ok := dut.SignalNamed(n); ok {
			return binding{sig: s, path: n}, tried, true
		}
	}
	for _, child := range dut.Children() {
		for _, n := range cands {
			tried = append(tried, child.Name()+"."+n)
			if s, ok := child.SignalNamed(n); ok {
				return binding{sig: s, path: child.Name() + "." + n}, tried, true
			}
		}
	}
	return binding{}, tried, false
}

// bind resolves every role on the DUT. Binding never mutates the DUT; it
// emits one diagnostic record per role naming the winning path.
func bind(dut *rvcore.Module, prefix string, log Logger) (bindings, error) {
	var bnd bindings
	slots := [...]*binding{
		&bnd.addr, &bnd.sel, &bnd.enable, &bnd.write,
		&bnd.wdata, &bnd.ready, &bnd.rdata,
	}
	for i, base := range mandatoryRoles {
		b, tried, ok := resolve(dut, prefix, base)
		if !ok {
			return bindings{}, &BindingError{Role: base, Tried: tried}
		}
		*slots[i] = b
		log.Infof("apb: bound %s to %s", base, b.path)
	}
	if b, _, ok := resolve(dut, prefix, optionalRole); ok {
		bnd.slverr = &b
		log.Infof("apb: bound %s to %s", optionalRole, b.path)
	} else {
		log.Infof("apb: %s not present on DUT", optionalRole)
	}
	return bnd, nil
}

// table returns the role → resolved path map for diagnostics.
func (b *bindings) table() map[string]string {
	t := map[string]string{
		"paddr":   b.addr.path,
		"psel":    b.sel.path,
		"penable": b.enable.path,
		"pwrite":  b.write.path,
		"pwdata":  b.wdata.path,
		"pready":  b.ready.path,
		"prdata":  b.rdata.path,
	}
	if b.slverr != nil {
		t["pslverr"] = b.slverr.path
	}
	return t
}
