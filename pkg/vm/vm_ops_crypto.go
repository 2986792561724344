package vm

import (
	"fmt"

	"github.com/nspcc-dev/neo-hypervm/pkg/crypto/hash"
	"github.com/nspcc-dev/neo-hypervm/pkg/crypto/keys"
	"github.com/nspcc-dev/neo-hypervm/pkg/vm/opcode"
	"github.com/nspcc-dev/neo-hypervm/pkg/vm/stackitem"
)

// Crypto

func (e *Engine) opCrypto(op opcode.Opcode) {
	switch op {
	case opcode.SHA1:
		b := e.popBytes()
		e.push(e.newBytes(hash.Sha1(b)))

	case opcode.SHA256:
		b := e.popBytes()
		e.push(e.newBytes(hash.Sha256(b).BytesBE()))

	case opcode.HASH160:
		b := e.popBytes()
		e.push(e.newBytes(hash.Hash160(b).BytesBE()))

	case opcode.HASH256:
		b := e.popBytes()
		e.push(e.newBytes(hash.DoubleSha256(b).BytesBE()))

	case opcode.CHECKSIG:
		pkey := e.popBytes()
		sig := e.popBytes()
		msg := e.message()
		e.push(e.newBool(verifySignature(msg, sig, pkey)))

	case opcode.VERIFY:
		pkey := e.popBytes()
		sig := e.popBytes()
		msg := e.popBytes()
		e.push(e.newBool(verifySignature(msg, sig, pkey)))

	case opcode.CHECKMULTISIG:
		pkeys := e.popSigElements()
		if len(pkeys) == 0 {
			panic("no public keys given")
		}
		sigs := e.popSigElements()
		if len(sigs) == 0 || len(sigs) > len(pkeys) {
			panic(fmt.Sprintf("invalid number of signatures: %d for %d keys", len(sigs), len(pkeys)))
		}
		msg := e.message()
		e.push(e.newBool(checkMultisig(msg, sigs, pkeys)))

	default:
		panic(fmt.Sprintf("unknown crypto opcode %s", op))
	}
}

// message returns the message signed for the current iteration.
func (e *Engine) message() []byte {
	msg, err := e.host.GetMessage(e.iteration)
	if err != nil {
		panic(fmt.Errorf("%w: message: %w", ErrHostFailure, err))
	}
	return msg
}

// popSigElements pops keys or signatures for CHECKMULTISIG, they are given
// either as an array or as a count followed by the elements.
func (e *Engine) popSigElements() [][]byte {
	var (
		elems [][]byte
		item  = e.pop()
	)
	switch t := item.(type) {
	case *stackitem.Array, *stackitem.Struct:
		arr := t.Value().([]stackitem.Item)
		elems = make([][]byte, len(arr))
		for i := range arr {
			b, err := arr[i].TryBytes()
			check(err)
			elems[i] = b
		}
	default:
		n, err := stackitem.ToInt32(item)
		check(err)
		if n < 1 || int(n) > e.estack().Len() || int(n) > e.limits.MaxArraySize {
			panic(fmt.Sprintf("invalid number of elements: %d", n))
		}
		elems = make([][]byte, n)
		for i := range elems {
			elems[i] = e.popBytes()
		}
	}
	return elems
}

// verifySignature checks the signature of sha256(msg), undecodable keys
// and signatures make it fail.
func verifySignature(msg, sig, pkey []byte) bool {
	pk, err := keys.NewPublicKeyFromBytes(pkey)
	if err != nil {
		return false
	}
	h := hash.Sha256(msg)
	return pk.Verify(sig, h.BytesBE())
}

// checkMultisig checks that every signature corresponds to some key keeping
// their relative order.
func checkMultisig(msg []byte, sigs, pkeys [][]byte) bool {
	var (
		i, j = 0, 0
		m, n = len(sigs), len(pkeys)
	)
	for i < m && j < n {
		if verifySignature(msg, sigs[i], pkeys[j]) {
			i++
		}
		j++
		if m-i > n-j {
			return false
		}
	}
	return i == m
}
