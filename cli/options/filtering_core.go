package options

import (
	"slices"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// FilteringCore is custom implementation of zapcore.Core that allows to filter
// log entries using custom filtering function.
type FilteringCore struct {
	zapcore.Core
	filter FilterFunc
}

// FilterFunc is the filter function that is called to check whether the given
// entry together with the associated fields is to be written to a core or not.
type FilterFunc func(zapcore.Entry) bool

// NewFilteringCore returns a core middleware that uses the given filter function
// to decide whether to log this message or not.
func NewFilteringCore(next zapcore.Core, filter FilterFunc) zapcore.Core {
	return &FilteringCore{next, filter}
}

// Check implements zapcore.Core interface and performs log entries filtering.
func (c *FilteringCore) Check(e zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.filter(e) {
		return c.Core.Check(e, ce)
	}
	return ce
}

// With implements zapcore.Core, the filter is kept for the child core.
func (c *FilteringCore) With(fields []zapcore.Field) zapcore.Core {
	return &FilteringCore{c.Core.With(fields), c.filter}
}

// MessageFilter passes warnings and errors along with the entries having one
// of the given messages.
func MessageFilter(msgs ...string) FilterFunc {
	return func(e zapcore.Entry) bool {
		return e.Level >= zapcore.WarnLevel || slices.Contains(msgs, e.Message)
	}
}

// ScriptOutputOnly wraps the logger so that only messages produced by scripts
// (runtime logs and notifications) and problems are written.
func ScriptOutputOnly(log *zap.Logger) *zap.Logger {
	return log.WithOptions(zap.WrapCore(func(c zapcore.Core) zapcore.Core {
		return NewFilteringCore(c, MessageFilter("runtime log", "runtime notification"))
	}))
}
