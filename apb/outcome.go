package apb

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Outcome is the protocol-level result of a completed transaction.
// A slave error is expected, recoverable data: callers branch on it
// rather than on an error value.
//
type Outcome struct {
	// Data is the value captured from prdata on a read. It is zero for
	// writes and when the completer flagged the access as failed.
	Data uint32
	// SlvErr reports that pslverr was observed asserted when the access
	// completed. Always false when the DUT has no error signal.
	SlvErr bool
}

// BindingError reports that a mandatory signal role could not be resolved
// on the DUT. It indicates a harness/DUT mismatch: the transactor that
// failed to bind must not be used.
//
type BindingError struct {
	Role  string   // base name of the unresolved role, e.g. "pready"
	Tried []string // every candidate name probed, in order
}

func (e *BindingError) Error() string {
	return fmt.Sprintf("apb: no signal found for %s; tried %s",
		e.Role, strings.Join(e.Tried, ", "))
}

// TimeoutError reports that pready was not observed within the cycle
// bound. The bus is left mid-transaction; the transactor requires Reset
// before it accepts further work.
//
type TimeoutError struct {
	Cycles int // the bound that was exhausted
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("apb: pready not asserted within %d cycles", e.Cycles)
}

// IsTimeout reports whether err is, or wraps, a pready timeout.
//
func IsTimeout(err error) bool {
	_, ok := errors.Cause(err).(*TimeoutError)
	return ok
}
