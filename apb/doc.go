/*
Package apb implements an APB master transactor for driving register
reads and writes against a design under test.

The transactor binds the eight canonical bus signals (paddr, psel,
penable, pwrite, pwdata, pready, prdata and the optional pslverr) on an
arbitrary rvcore.Module, tolerating several naming conventions and one
level of hierarchy, then sequences them through the Setup and Access
phases of a transaction:

	tx, err := apb.New(dut, "i_dbg_apb", circuit)
	if err != nil {
		// harness/DUT mismatch, not recoverable
	}
	out, err := tx.Write(0x100, 0xCAFEBABE)
	if err != nil {
		// pready timeout: the DUT hung
	}
	if out.SlvErr {
		// the completer flagged the access as failed
	}

A slave error is a normal outcome, reported as data. A pready timeout is
a hard failure: the bus is left mid-transaction exactly as the master
drove it, and the transactor refuses further work until Reset is called.

A Transactor is not safe for concurrent use; it owns its bus signals and
runs a single transaction at a time.
*/
package apb
