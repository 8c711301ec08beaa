package rvcore

// A Process models clocked logic. It is run once per rising edge: reads
// through Signal.Get observe pre-edge values, writes through Signal.Set
// become visible after the edge. Processes must not assume any run order
// within an edge.
//
type Process func()

// Circuit advances a module tree cycle by cycle.
//
type Circuit struct {
	top   *Module
	procs []Process
	sigs  []*Signal
	cycle uint64
}

// NewCircuit builds a circuit from the given module tree and mounted
// processes. The tree must be fully built beforehand: signals added after
// this call are not committed on clock edges.
//
func NewCircuit(top *Module, procs ...Process) *Circuit {
	return &Circuit{
		top:   top,
		procs: procs,
		sigs:  top.signals(),
	}
}

// Top returns the circuit's top-level module.
//
func (c *Circuit) Top() *Module { return c.top }

// Rise advances the simulation by one rising clock edge: all processes
// run against the pre-edge signal state, then registered updates commit.
//
func (c *Circuit) Rise() {
	for _, p := range c.procs {
		p()
	}
	for _, s := range c.sigs {
		s.commit()
	}
	c.cycle++
}

// Run advances the simulation by n rising edges.
//
func (c *Circuit) Run(n int) {
	for i := 0; i < n; i++ {
		c.Rise()
	}
}

// Cycle returns the number of rising edges simulated so far.
//
func (c *Circuit) Cycle() uint64 { return c.cycle }
