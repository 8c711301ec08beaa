package apb_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/WhatACotton/rvcore"
	"github.com/WhatACotton/rvcore/apb"
)

var roleBases = []string{
	"paddr", "psel", "penable", "pwrite", "pwdata", "pready", "prdata",
}

func addBus(m *rvcore.Module, prefix string, withErr bool) {
	widths := map[string]uint{
		"paddr": 32, "pwdata": 32, "prdata": 32,
		"psel": 1, "penable": 1, "pwrite": 1, "pready": 1, "pslverr": 1,
	}
	names := roleBases
	if withErr {
		names = append(names[:len(names):len(names)], "pslverr")
	}
	for _, base := range names {
		n := base
		if prefix != "" {
			n = prefix + "_" + base
		}
		m.AddSignal(n, widths[base])
	}
}

func TestBind_prefixed(t *testing.T) {
	dut := rvcore.NewModule("dut")
	addBus(dut, "busA", true)

	tx, err := apb.New(dut, "busA", &scriptClock{})
	require.NoError(t, err)

	b := tx.Bindings()
	for _, base := range append(roleBases, "pslverr") {
		require.Equal(t, "busA_"+base, b[base], "role %s", base)
	}
}

func TestBind_trimsTrailingSeparator(t *testing.T) {
	dut := rvcore.NewModule("dut")
	addBus(dut, "busA", true)

	tx, err := apb.New(dut, "busA_", &scriptClock{})
	require.NoError(t, err)
	require.Equal(t, "busA_paddr", tx.Bindings()["paddr"])
}

// A DUT that exposes the bus with output-direction naming must still
// bind under the input-direction prefix.
func TestBind_directionSwap(t *testing.T) {
	dut := rvcore.NewModule("dut")
	addBus(dut, "o_cpu_apb", true)

	tx, err := apb.New(dut, "i_cpu_apb", &scriptClock{})
	require.NoError(t, err)
	require.Equal(t, "o_cpu_apb_paddr", tx.Bindings()["paddr"])
	require.Equal(t, "o_cpu_apb_pready", tx.Bindings()["pready"])
}

func TestBind_bareNames(t *testing.T) {
	dut := rvcore.NewModule("dut")
	addBus(dut, "", false)

	tx, err := apb.New(dut, "busA", &scriptClock{})
	require.NoError(t, err)
	require.Equal(t, "paddr", tx.Bindings()["paddr"])
}

func TestBind_nestedChild(t *testing.T) {
	dut := rvcore.NewModule("dut")
	dut.NewChild("u_core") // no bus signals here
	addBus(dut.NewChild("u_dbg"), "busA", true)

	tx, err := apb.New(dut, "busA", &scriptClock{})
	require.NoError(t, err)
	require.Equal(t, "u_dbg.busA_paddr", tx.Bindings()["paddr"])
	require.Equal(t, "u_dbg.busA_pslverr", tx.Bindings()["pslverr"])
}

func TestBind_optionalAbsent(t *testing.T) {
	dut := rvcore.NewModule("dut")
	addBus(dut, "busA", false)

	tx, err := apb.New(dut, "busA", &scriptClock{})
	require.NoError(t, err)
	require.NotContains(t, tx.Bindings(), "pslverr")
}

func TestBind_missingRoleFails(t *testing.T) {
	dut := rvcore.NewModule("dut")
	dut.NewChild("u_dbg")
	for _, base := range roleBases {
		if base == "pready" {
			continue
		}
		dut.AddSignal("busA_"+base, 32)
	}

	_, err := apb.New(dut, "busA", &scriptClock{})
	require.Error(t, err)

	var be *apb.BindingError
	require.ErrorAs(t, err, &be)
	require.Equal(t, "pready", be.Role)
	require.Contains(t, be.Tried, "busA_pready")
	require.Contains(t, be.Tried, "o_busA_pready")
	require.Contains(t, be.Tried, "pready")
	require.Contains(t, be.Tried, "u_dbg.busA_pready")
	require.Contains(t, err.Error(), "pready")
}

// Resolution must be reproducible for a given DUT shape: with the same
// signal present on two children, the first created child always wins.
func TestBind_deterministic(t *testing.T) {
	build := func() *rvcore.Module {
		dut := rvcore.NewModule("dut")
		addBus(dut.NewChild("u_first"), "busA", true)
		addBus(dut.NewChild("u_second"), "busA", true)
		return dut
	}
	want := map[string]string{}
	for i := 0; i < 5; i++ {
		tx, err := apb.New(build(), "busA", &scriptClock{})
		require.NoError(t, err)
		b := tx.Bindings()
		require.Equal(t, "u_first.busA_paddr", b["paddr"])
		if i == 0 {
			want = b
			continue
		}
		require.Equal(t, want, b)
	}
}
