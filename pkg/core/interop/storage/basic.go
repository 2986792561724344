package storage

import (
	"errors"
	"fmt"

	"github.com/nspcc-dev/neo-hypervm/pkg/core/interop"
	"github.com/nspcc-dev/neo-hypervm/pkg/core/storage"
	"github.com/nspcc-dev/neo-hypervm/pkg/smartcontract/trigger"
	"github.com/nspcc-dev/neo-hypervm/pkg/util"
	"github.com/nspcc-dev/neo-hypervm/pkg/util/slice"
	"github.com/nspcc-dev/neo-hypervm/pkg/vm"
	"github.com/nspcc-dev/neo-hypervm/pkg/vm/stackitem"
)

const (
	// GasPerKiB is the price of every started KiB of a stored key-value pair.
	GasPerKiB = 1000
	// MaxKeyLen is the maximum length of a storage key.
	MaxKeyLen = 64
	// MaxValueLen is the maximum length of a stored value.
	MaxValueLen = 65535
)

var (
	// ErrReadOnly is returned for writes via a read-only context.
	ErrReadOnly = errors.New("storage context is read only")
	// ErrWrongTrigger is returned for writes outside of the Application
	// trigger.
	ErrWrongTrigger = errors.New("storage is writable for Application trigger only")
)

// Context contains script hash and read/write flag, it's used as
// a context for storage manipulation functions.
type Context struct {
	ScriptHash util.Uint160
	ReadOnly   bool
}

// Bytes encodes the context into an Interop payload.
func (c Context) Bytes() []byte {
	b := make([]byte, util.Uint160Size+1)
	copy(b, c.ScriptHash.BytesBE())
	if c.ReadOnly {
		b[util.Uint160Size] = 1
	}
	return b
}

// ContextFromItem decodes storage context from an Interop item.
func ContextFromItem(it stackitem.Item) (Context, error) {
	iop, ok := it.(*stackitem.Interop)
	if !ok {
		return Context{}, fmt.Errorf("%s is not a storage context", it)
	}
	b := iop.Value().([]byte)
	if len(b) != util.Uint160Size+1 || b[util.Uint160Size] > 1 {
		return Context{}, errors.New("malformed storage context")
	}
	u, err := util.Uint160DecodeBytesBE(b[:util.Uint160Size])
	if err != nil {
		return Context{}, err
	}
	return Context{ScriptHash: u, ReadOnly: b[util.Uint160Size] == 1}, nil
}

// Key returns the DB key for the storage item of the script.
func Key(u util.Uint160, key []byte) []byte {
	return storage.AppendPrefix(storage.STStorage, append(u.BytesBE(), key...))
}

// GetContext returns storage context for the currently executing script.
func GetContext(ic *interop.Context) error {
	return getContextInternal(ic, false)
}

// GetReadOnlyContext returns read-only storage context for the currently
// executing script.
func GetReadOnlyContext(ic *interop.Context) error {
	return getContextInternal(ic, true)
}

// getContextInternal is internal version of GetContext and
// GetReadOnlyContext which allows to specify ReadOnly context flag.
func getContextInternal(ic *interop.Context, isReadOnly bool) error {
	sc := Context{
		ScriptHash: ic.VM.CurrentContext().ScriptHash(),
		ReadOnly:   isReadOnly,
	}
	return ic.PushInterop(sc.Bytes())
}

func popContext(ic *interop.Context) (Context, error) {
	it, err := ic.Pop()
	if err != nil {
		return Context{}, err
	}
	return ContextFromItem(it)
}

func popKey(ic *interop.Context) ([]byte, error) {
	key, err := ic.PopBytes()
	if err != nil {
		return nil, err
	}
	if len(key) > MaxKeyLen {
		return nil, fmt.Errorf("key length %d exceeds %d", len(key), MaxKeyLen)
	}
	return key, nil
}

func popWritableContext(ic *interop.Context) (Context, error) {
	if ic.Trigger != trigger.Application {
		return Context{}, ErrWrongTrigger
	}
	stc, err := popContext(ic)
	if err != nil {
		return Context{}, err
	}
	if stc.ReadOnly {
		return Context{}, ErrReadOnly
	}
	return stc, nil
}

// Get returns stored value, an empty ByteArray is pushed for missing keys.
func Get(ic *interop.Context) error {
	stc, err := popContext(ic)
	if err != nil {
		return err
	}
	key, err := popKey(ic)
	if err != nil {
		return err
	}
	v, err := ic.GetStorage(Key(stc.ScriptHash, key))
	if err != nil {
		return err
	}
	if v == nil {
		v = []byte{}
	}
	return ic.PushBytes(slice.Copy(v))
}

// Put stores the key-value pair charging GasPerKiB for every started KiB.
func Put(ic *interop.Context) error {
	stc, err := popWritableContext(ic)
	if err != nil {
		return err
	}
	key, err := popKey(ic)
	if err != nil {
		return err
	}
	value, err := ic.PopBytes()
	if err != nil {
		return err
	}
	if len(value) > MaxValueLen {
		return fmt.Errorf("value length %d exceeds %d", len(value), MaxValueLen)
	}
	size := len(key) + len(value)
	if size == 0 {
		size = 1
	}
	if !ic.VM.AddGasCost(uint64((size-1)/1024+1) * GasPerKiB) {
		return vm.ErrGasExhausted
	}
	ic.PutStorage(Key(stc.ScriptHash, key), slice.Copy(value))
	return nil
}

// Delete deletes stored key-value pair.
func Delete(ic *interop.Context) error {
	stc, err := popWritableContext(ic)
	if err != nil {
		return err
	}
	key, err := popKey(ic)
	if err != nil {
		return err
	}
	ic.PutStorage(Key(stc.ScriptHash, key), nil)
	return nil
}
