package hwlib

import (
	"github.com/WhatACotton/rvcore"
)

// Input drives sig from f on every rising edge, as a registered update.
//
//	Function: sig = f()
//
func Input(sig *rvcore.Signal, f func() uint64) rvcore.Process {
	return func() { sig.Set(f()) }
}

// Output creates a probe: f is called with sig's pre-edge value on every
// rising edge.
//
//	Function: f(sig)
//
func Output(sig *rvcore.Signal, f func(uint64)) rvcore.Process {
	return func() { f(sig.Get()) }
}
