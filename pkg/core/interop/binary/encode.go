package binary

import (
	"github.com/nspcc-dev/neo-hypervm/pkg/core/interop"
	"github.com/nspcc-dev/neo-hypervm/pkg/vm/stackitem"
)

// Serialize serializes the top stack item into a ByteArray.
func Serialize(ic *interop.Context) error {
	item, err := ic.Pop()
	if err != nil {
		return err
	}
	data, err := stackitem.Serialize(item)
	if err != nil {
		return err
	}
	if len(data) > ic.VM.Limits().MaxItemSize {
		return stackitem.ErrTooBig
	}
	return ic.PushBytes(data)
}

// Deserialize deserializes a ByteArray from the top of the stack.
func Deserialize(ic *interop.Context) error {
	data, err := ic.PopBytes()
	if err != nil {
		return err
	}
	item, err := stackitem.Deserialize(ic.VM.Items(), data)
	if err != nil {
		return err
	}
	ic.Push(item)
	return nil
}
