package vm

import (
	"math"

	"github.com/nspcc-dev/neo-hypervm/pkg/vm/stackitem"
	"go.uber.org/zap"
)

// Default engine limits.
const (
	// DefaultMaxInvocationStackSize is the maximum number of contexts.
	DefaultMaxInvocationStackSize = 1024
	// DefaultMaxGas is the default gas ceiling used by Run.
	DefaultMaxGas = math.MaxUint64
)

// Limits bounds resources available to scripts.
type Limits struct {
	// MaxItemCount is the maximum number of live stack items.
	MaxItemCount int
	// MaxInvocationStackSize is the maximum depth of the context stack.
	MaxInvocationStackSize int
	// MaxItemSize is the maximum size of ByteArray produced by opcodes.
	MaxItemSize int
	// MaxArraySize is the maximum number of elements in a container.
	MaxArraySize int
	// MaxGas is the gas ceiling used by Run.
	MaxGas uint64
}

// DefaultLimits returns the default set of limits.
func DefaultLimits() Limits {
	return Limits{
		MaxItemCount:           stackitem.DefaultMaxItems,
		MaxInvocationStackSize: DefaultMaxInvocationStackSize,
		MaxItemSize:            stackitem.MaxItemSize,
		MaxArraySize:           stackitem.MaxArraySize,
		MaxGas:                 DefaultMaxGas,
	}
}

// normalize replaces zero and out-of-range values with defaults.
func (l Limits) normalize() Limits {
	d := DefaultLimits()
	if l.MaxItemCount <= 0 {
		l.MaxItemCount = d.MaxItemCount
	}
	if l.MaxInvocationStackSize <= 0 {
		l.MaxInvocationStackSize = d.MaxInvocationStackSize
	}
	if l.MaxItemSize <= 0 || l.MaxItemSize > stackitem.MaxItemSize {
		l.MaxItemSize = d.MaxItemSize
	}
	if l.MaxArraySize <= 0 || l.MaxArraySize > stackitem.MaxArraySize {
		l.MaxArraySize = d.MaxArraySize
	}
	if l.MaxGas == 0 {
		l.MaxGas = d.MaxGas
	}
	return l
}

// Option configures the engine.
type Option func(*Engine)

// WithLimits sets engine limits, zero fields mean defaults.
func WithLimits(l Limits) Option {
	return func(e *Engine) {
		e.limits = l.normalize()
	}
}

// WithLogger sets the logger used to report faults.
func WithLogger(log *zap.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// WithMetrics enables Prometheus metrics collection.
func WithMetrics(enabled bool) Option {
	return func(e *Engine) {
		e.metrics = enabled
	}
}
