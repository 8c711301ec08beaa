// Command apbdrive runs a short demonstration session: it builds a
// register-file DUT, binds an APB transactor to it by name and issues a
// handful of transactions with diagnostics printed to stderr.
package main

import (
	"log"

	"github.com/WhatACotton/rvcore"
	"github.com/WhatACotton/rvcore/apb"
	"github.com/WhatACotton/rvcore/hwlib"
)

// logSink routes transactor diagnostics to the standard logger.
type logSink struct{}

func (logSink) Infof(format string, args ...interface{})  { log.Printf("info: "+format, args...) }
func (logSink) Warnf(format string, args ...interface{})  { log.Printf("warn: "+format, args...) }
func (logSink) Errorf(format string, args ...interface{}) { log.Printf("error: "+format, args...) }

func main() {
	dut := rvcore.NewModule("dut")
	rf := hwlib.NewRegisterFile(dut, "i_dbg_apb", 16,
		hwlib.WaitStates(2),
		hwlib.ErrWindow(0x30, 0x40),
	)
	// count the cycles the bus spends selected
	busy := 0
	psel, _ := dut.SignalNamed("i_dbg_apb_psel")
	probe := hwlib.Output(psel, func(v uint64) {
		if v != 0 {
			busy++
		}
	})
	c := rvcore.NewCircuit(dut, rf.Tick, probe)

	tx, err := apb.New(dut, "i_dbg_apb", c, apb.WithLogger(logSink{}))
	if err != nil {
		log.Fatal(err)
	}

	for addr := uint32(0); addr < 0x40; addr += 4 {
		out, err := tx.Write(addr, 0xCAFE0000|addr)
		if err != nil {
			log.Fatal(err)
		}
		if out.SlvErr {
			log.Printf("write 0x%02X: slave error", addr)
			continue
		}
		out, err = tx.Read(addr)
		if err != nil {
			log.Fatal(err)
		}
		log.Printf("read 0x%02X: 0x%08X (slverr=%v)", addr, out.Data, out.SlvErr)
	}
	log.Printf("done after %d cycles, %d of them on the bus", c.Cycle(), busy)
}
