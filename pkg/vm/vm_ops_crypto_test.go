package vm

import (
	"testing"

	"github.com/nspcc-dev/neo-hypervm/pkg/crypto/keys"
	"github.com/nspcc-dev/neo-hypervm/pkg/io"
	"github.com/nspcc-dev/neo-hypervm/pkg/vm/emit"
	"github.com/nspcc-dev/neo-hypervm/pkg/vm/opcode"
	"github.com/stretchr/testify/require"
)

func newKeys(t *testing.T, n int) []*keys.PrivateKey {
	res := make([]*keys.PrivateKey, n)
	for i := range res {
		k, err := keys.NewPrivateKey()
		require.NoError(t, err)
		res[i] = k
	}
	return res
}

// runWithMessage runs the script with the given message for iteration 0.
func runWithMessage(t *testing.T, msg []byte, build func(w *io.BinWriter)) *Engine {
	h := newTestHost()
	if msg != nil {
		h.messages[0] = msg
	}
	e := New(h)
	load(t, e, makeScript(t, build))
	e.Execute(DefaultMaxGas)
	return e
}

func checkBoolResult(t *testing.T, e *Engine, expected bool) {
	require.Equal(t, HaltState, e.State(), e.FaultError())
	require.Equal(t, 1, e.ResultStack().Len())
	checkItem(t, expected, e.ResultStack().Top())
}

func TestCheckSig(t *testing.T) {
	ks := newKeys(t, 2)
	msg := []byte("verification data")
	sig := ks[0].Sign(msg)

	checkSig := func(sig, pub []byte) func(w *io.BinWriter) {
		return func(w *io.BinWriter) {
			emit.Bytes(w, sig)
			emit.Bytes(w, pub)
			emit.Opcodes(w, opcode.CHECKSIG)
		}
	}

	t.Run("good", func(t *testing.T) {
		e := runWithMessage(t, msg, checkSig(sig, ks[0].PublicKey().Bytes()))
		checkBoolResult(t, e, true)
		require.EqualValues(t, 1+1+100+1, e.ConsumedGas())
	})
	t.Run("wrong key", func(t *testing.T) {
		e := runWithMessage(t, msg, checkSig(sig, ks[1].PublicKey().Bytes()))
		checkBoolResult(t, e, false)
	})
	t.Run("wrong message", func(t *testing.T) {
		e := runWithMessage(t, []byte("other"), checkSig(sig, ks[0].PublicKey().Bytes()))
		checkBoolResult(t, e, false)
	})
	t.Run("bad key", func(t *testing.T) {
		e := runWithMessage(t, msg, checkSig(sig, []byte{1, 2, 3}))
		checkBoolResult(t, e, false)
	})
	t.Run("bad signature", func(t *testing.T) {
		e := runWithMessage(t, msg, checkSig([]byte{1, 2, 3}, ks[0].PublicKey().Bytes()))
		checkBoolResult(t, e, false)
	})
	t.Run("no message", func(t *testing.T) {
		e := runWithMessage(t, nil, checkSig(sig, ks[0].PublicKey().Bytes()))
		require.Equal(t, FaultState, e.State())
		require.ErrorIs(t, e.FaultError(), ErrHostFailure)
	})
	t.Run("iteration", func(t *testing.T) {
		h := newTestHost()
		h.messages[0] = []byte("other")
		h.messages[3] = msg
		e := New(h)
		e.SetIteration(3)
		load(t, e, makeScript(t, checkSig(sig, ks[0].PublicKey().Bytes())))
		e.Execute(DefaultMaxGas)
		checkBoolResult(t, e, true)
	})
}

func TestVerify(t *testing.T) {
	k := newKeys(t, 1)[0]
	msg := []byte("any data")
	sig := k.Sign(msg)
	verify := func(msg []byte) func(w *io.BinWriter) {
		return func(w *io.BinWriter) {
			emit.Bytes(w, msg)
			emit.Bytes(w, sig)
			emit.Bytes(w, k.PublicKey().Bytes())
			emit.Opcodes(w, opcode.VERIFY)
		}
	}
	checkBoolResult(t, runWithMessage(t, nil, verify(msg)), true)
	checkBoolResult(t, runWithMessage(t, nil, verify([]byte("other"))), false)
}

func TestCheckMultisig(t *testing.T) {
	ks := newKeys(t, 3)
	msg := []byte("multisig")
	pubs := make([][]byte, len(ks))
	sigs := make([][]byte, len(ks))
	for i := range ks {
		pubs[i] = ks[i].PublicKey().Bytes()
		sigs[i] = ks[i].Sign(msg)
	}

	// pushCounted pushes elements followed by their number, the last one
	// pushed is the first one popped.
	pushCounted := func(w *io.BinWriter, elems ...[]byte) {
		for _, el := range elems {
			emit.Bytes(w, el)
		}
		emit.Int(w, int64(len(elems)))
	}
	pushArray := func(w *io.BinWriter, elems ...[]byte) {
		es := make([]any, len(elems))
		for i := range elems {
			es[i] = elems[i]
		}
		emit.Array(w, es...)
	}

	t.Run("counted", func(t *testing.T) {
		e := runWithMessage(t, msg, func(w *io.BinWriter) {
			pushCounted(w, sigs[0], sigs[1])
			pushCounted(w, pubs...)
			emit.Opcodes(w, opcode.CHECKMULTISIG)
		})
		checkBoolResult(t, e, true)
	})

	t.Run("wrong order", func(t *testing.T) {
		e := runWithMessage(t, msg, func(w *io.BinWriter) {
			pushCounted(w, sigs[1], sigs[0])
			pushCounted(w, pubs...)
			emit.Opcodes(w, opcode.CHECKMULTISIG)
		})
		checkBoolResult(t, e, false)
	})

	t.Run("arrays", func(t *testing.T) {
		e := runWithMessage(t, msg, func(w *io.BinWriter) {
			pushArray(w, sigs[0], sigs[2])
			pushArray(w, pubs...)
			emit.Opcodes(w, opcode.CHECKMULTISIG)
		})
		checkBoolResult(t, e, true)
	})

	t.Run("bad signature", func(t *testing.T) {
		e := runWithMessage(t, msg, func(w *io.BinWriter) {
			pushArray(w, sigs[0], []byte{1, 2, 3})
			pushArray(w, pubs...)
			emit.Opcodes(w, opcode.CHECKMULTISIG)
		})
		checkBoolResult(t, e, false)
	})

	t.Run("gas", func(t *testing.T) {
		prog := makeScript(t, func(w *io.BinWriter) {
			pushCounted(w, sigs[0])
			pushCounted(w, pubs...)
		})
		h := newTestHost()
		h.messages[0] = msg
		e := New(h)
		load(t, e, append(prog, byte(opcode.CHECKMULTISIG)))
		require.Equal(t, HaltState, e.Execute(DefaultMaxGas), e.FaultError())
		// 2 counts, 4 elements, CHECKMULTISIG over 3 keys and RET.
		require.EqualValues(t, 6+300+1, e.ConsumedGas())
	})

	faults := map[string]func(w *io.BinWriter){
		"more signatures than keys": func(w *io.BinWriter) {
			pushCounted(w, sigs...)
			pushCounted(w, pubs[0], pubs[1])
			emit.Opcodes(w, opcode.CHECKMULTISIG)
		},
		"no keys": func(w *io.BinWriter) {
			pushCounted(w, sigs[0])
			emit.Opcodes(w, opcode.PUSH0, opcode.NEWARRAY, opcode.CHECKMULTISIG)
		},
		"no signatures": func(w *io.BinWriter) {
			emit.Opcodes(w, opcode.PUSH0, opcode.NEWARRAY)
			pushCounted(w, pubs...)
			emit.Opcodes(w, opcode.CHECKMULTISIG)
		},
		"bad count": func(w *io.BinWriter) {
			pushCounted(w, sigs[0])
			emit.Bytes(w, pubs[0])
			emit.Int(w, 5)
			emit.Opcodes(w, opcode.CHECKMULTISIG)
		},
		"map": func(w *io.BinWriter) {
			pushCounted(w, sigs[0])
			emit.Opcodes(w, opcode.NEWMAP, opcode.CHECKMULTISIG)
		},
	}
	for name, build := range faults {
		t.Run(name, func(t *testing.T) {
			e := runWithMessage(t, msg, build)
			require.Equal(t, FaultState, e.State())
		})
	}
}
