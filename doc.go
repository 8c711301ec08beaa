/*
Package rvcore provides the simulation substrate for the rvcore
verification harness: named word-level signals, a module hierarchy
mirroring the design under test, and a cycle engine that advances the
whole tree one rising clock edge at a time.

Testbench code drives signals between edges with Signal.Drive; clocked
model code runs as a Process once per edge and publishes registered
updates with Signal.Set, which become visible after the edge completes.
The apb package builds its bus transactor on top of this primitive.

*/
package rvcore
