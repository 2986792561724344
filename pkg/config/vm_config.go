package config

import (
	"fmt"

	"github.com/nspcc-dev/neo-hypervm/pkg/vm/stackitem"
)

// DefaultMaxInvocationStackSize is the default depth of the context stack.
const DefaultMaxInvocationStackSize = 1024

// VM contains engine limits. Zero values mean engine defaults.
type VM struct {
	MaxItemCount           int    `yaml:"MaxItemCount"`
	MaxInvocationStackSize int    `yaml:"MaxInvocationStackSize"`
	MaxItemSize            int    `yaml:"MaxItemSize"`
	MaxArraySize           int    `yaml:"MaxArraySize"`
	MaxGas                 uint64 `yaml:"MaxGas"`
	EnableMetrics          bool   `yaml:"EnableMetrics"`
}

// DefaultVM returns the default engine limits.
func DefaultVM() VM {
	return VM{
		MaxItemCount:           stackitem.DefaultMaxItems,
		MaxInvocationStackSize: DefaultMaxInvocationStackSize,
		MaxItemSize:            stackitem.MaxItemSize,
		MaxArraySize:           stackitem.MaxArraySize,
	}
}

// Validate checks that the limits are in range.
func (v VM) Validate() error {
	switch {
	case v.MaxItemCount < 0:
		return fmt.Errorf("negative MaxItemCount: %d", v.MaxItemCount)
	case v.MaxInvocationStackSize < 0:
		return fmt.Errorf("negative MaxInvocationStackSize: %d", v.MaxInvocationStackSize)
	case v.MaxItemSize < 0 || v.MaxItemSize > stackitem.MaxItemSize:
		return fmt.Errorf("MaxItemSize %d is out of range [0, %d]", v.MaxItemSize, stackitem.MaxItemSize)
	case v.MaxArraySize < 0 || v.MaxArraySize > stackitem.MaxArraySize:
		return fmt.Errorf("MaxArraySize %d is out of range [0, %d]", v.MaxArraySize, stackitem.MaxArraySize)
	}
	return nil
}
