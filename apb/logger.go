package apb

// Logger is the diagnostics sink used by a Transactor. It receives the
// resolved binding table at construction, one entry per transaction at
// dispatch, a throttled progress line while waiting for pready, and a
// signal snapshot on timeout. Implementations must not affect
// transaction timing or outcome.
//
type Logger interface {
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// nopLogger is the default sink.
type nopLogger struct{}

func (nopLogger) Infof(string, ...interface{})  {}
func (nopLogger) Warnf(string, ...interface{})  {}
func (nopLogger) Errorf(string, ...interface{}) {}
