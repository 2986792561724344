package cmdargs

import (
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/nspcc-dev/neo-hypervm/pkg/crypto/keys"
	"github.com/nspcc-dev/neo-hypervm/pkg/encoding/address"
	"github.com/nspcc-dev/neo-hypervm/pkg/io"
	"github.com/nspcc-dev/neo-hypervm/pkg/util"
	"github.com/nspcc-dev/neo-hypervm/pkg/util/slice"
	"github.com/nspcc-dev/neo-hypervm/pkg/vm/emit"
	"github.com/nspcc-dev/neo-hypervm/pkg/vm/stackitem"
	"github.com/urfave/cli"
)

// Parameter types.
const (
	SignatureType = "signature"
	BoolType      = "bool"
	IntegerType   = "int"
	Hash160Type   = "hash160"
	Hash256Type   = "hash256"
	BytesType     = "bytes"
	KeyType       = "key"
	StringType    = "string"
	FileBytesType = "filebytes"
)

// ParamsParsingDoc is a documentation for parameters parsing.
const ParamsParsingDoc = `   Arguments are pushed onto the stack before the script is executed, the
   first one ends up on top. To specify the type manually use "type:value"
   syntax where the type is one of the following: 'signature', 'bool', 'int',
   'hash160', 'hash256', 'bytes', 'key' or 'string'.

   There is ability to provide an argument of 'bytes' type via file. Use a
   special 'filebytes' argument type for this with a filepath specified after
   the colon, e.g. 'filebytes:my_file.txt'.

   Given values are type-checked against given types with the following
   restrictions applied:
    * 'signature' type values should be hex-encoded and have a (decoded)
      length of 64 bytes.
    * 'bool' type values are 'true' and 'false'.
    * 'int' values are decimal integers that can be successfully converted
      from the string.
    * 'hash160' values are addresses and hex-encoded 20-bytes long LE (after
      decoding) strings, they're pushed in BE.
    * 'hash256' type values should be hex-encoded LE and have a (decoded)
      length of 32 bytes, they're pushed in BE.
    * 'bytes' type values are any hex-encoded things.
    * 'filebytes' type values are filenames with the argument value inside.
    * 'key' type values are hex-encoded marshalled public keys.
    * 'string' type values are any valid UTF-8 strings. In the value's part of
      the string the colon looses it's special meaning as a separator between
      type and value and is taken literally.

   If no type is explicitly specified, it is inferred from the value using the
   following logic:
    - anything that can be interpreted as a decimal integer gets
      an 'int' type
    - 'true' and 'false' strings get 'bool' type
    - valid addresses and 20 bytes long hex-encoded strings get 'hash160'
      type
    - valid hex-encoded public keys get 'key' type
    - 32 bytes long hex-encoded values get 'hash256' type
    - 64 bytes long hex-encoded values get 'signature' type
    - any other valid hex-encoded values get 'bytes' type
    - anything else is a 'string'

   Backslash character is used as an escape character and allows to use colon in
   an implicitly typed string. For any other characters it has no special
   meaning, to get a literal backslash in the string use the '\\' sequence.

   Examples:
    * 'int:42' is an integer with a value of 42
    * '42' is an integer with a value of 42
    * 'bad' is a string with a value of 'bad'
    * 'dead' is a byte array with a value of 'dead'
    * 'string:dead' is a string with a value of 'dead'
    * 'filebytes:my_data.txt' is bytes decoded from a content of my_data.txt
    * '\4\2' is an integer with a value of 42
    * '\\4\2' is a string with a value of '\42'
    * 'string\:string' is a string with a value of 'string:string'`

// Parameter is a script argument.
type Parameter struct {
	Type string
	// Value is either bool, *big.Int, []byte or string.
	Value any
}

// EnsureNone returns an error if there are any positional arguments present.
// It can be used to check for them in commands that don't accept arguments.
func EnsureNone(ctx *cli.Context) *cli.ExitError {
	if ctx.Args().Present() {
		return cli.NewExitError("additional arguments given while this command expects none", 1)
	}
	return nil
}

// ParseParams parses all the given arguments.
func ParseParams(args []string) ([]Parameter, error) {
	res := make([]Parameter, 0, len(args))
	for k, s := range args {
		p, err := NewParameterFromString(s)
		if err != nil {
			return nil, fmt.Errorf("failed to parse argument #%d: %w", k+1, err)
		}
		res = append(res, *p)
	}
	return res, nil
}

// ParamsToScript builds a push-only script putting the arguments onto the
// stack, the first argument is pushed last.
func ParamsToScript(args []string) ([]byte, error) {
	params, err := ParseParams(args)
	if err != nil {
		return nil, err
	}
	w := io.NewBufBinWriter()
	for i := len(params) - 1; i >= 0; i-- {
		switch v := params[i].Value.(type) {
		case bool:
			emit.Bool(w.BinWriter, v)
		case *big.Int:
			emit.BigInt(w.BinWriter, v)
		case []byte:
			emit.Bytes(w.BinWriter, v)
		case string:
			emit.String(w.BinWriter, v)
		}
	}
	if w.Err != nil {
		return nil, w.Err
	}
	return w.Bytes(), nil
}

// NewParameterFromString returns a new Parameter initialized from the given
// string in "type:value" format or "value" format where the type is
// inferred.
func NewParameterFromString(in string) (*Parameter, error) {
	var (
		char    rune
		err     error
		r       *strings.Reader
		buf     strings.Builder
		escaped bool
		hadType bool
		res     = &Parameter{}
	)
	r = strings.NewReader(in)
	for char, _, err = r.ReadRune(); err == nil && char != utf8.RuneError; char, _, err = r.ReadRune() {
		if char == '\\' && !escaped {
			escaped = true
			continue
		}
		if char == ':' && !escaped && !hadType {
			res.Type = buf.String()
			if !isValidType(res.Type) {
				return nil, fmt.Errorf("unknown parameter type %q", res.Type)
			}
			buf.Reset()
			hadType = true
			continue
		}
		escaped = false
		// We don't care about length and it never fails.
		_, _ = buf.WriteRune(char)
	}
	if char == utf8.RuneError {
		return nil, errors.New("bad UTF-8 string")
	}

	val := buf.String()
	if !hadType {
		res.Type = inferParamType(val)
	}
	if res.Type == FileBytesType {
		res.Type = BytesType
		res.Value, err = os.ReadFile(val)
		if err != nil {
			return nil, fmt.Errorf("failed to read '%s' parameter from file '%s': %w", FileBytesType, val, err)
		}
		return res, nil
	}
	res.Value, err = adjustValToType(res.Type, val)
	if err != nil {
		return nil, err
	}
	return res, nil
}

func isValidType(typ string) bool {
	switch typ {
	case SignatureType, BoolType, IntegerType, Hash160Type, Hash256Type,
		BytesType, KeyType, StringType, FileBytesType:
		return true
	}
	return false
}

func adjustValToType(typ string, val string) (any, error) {
	switch typ {
	case SignatureType:
		b, err := hex.DecodeString(val)
		if err != nil {
			return nil, err
		}
		if len(b) != 64 {
			return nil, errors.New("not a signature")
		}
		return b, nil
	case BoolType:
		switch val {
		case "true":
			return true, nil
		case "false":
			return false, nil
		default:
			return nil, errors.New("invalid boolean value")
		}
	case IntegerType:
		bi, ok := new(big.Int).SetString(val, 10)
		if !ok || stackitem.CheckIntegerSize(bi) != nil {
			return nil, errors.New("invalid integer value")
		}
		return bi, nil
	case Hash160Type:
		u, err := address.StringToUint160(val)
		if err == nil {
			return u.BytesBE(), nil
		}
		u, err = util.Uint160DecodeStringLE(strings.TrimPrefix(val, "0x"))
		if err != nil {
			return nil, err
		}
		return u.BytesBE(), nil
	case Hash256Type:
		b, err := hex.DecodeString(strings.TrimPrefix(val, "0x"))
		if err != nil {
			return nil, err
		}
		if len(b) != 32 {
			return nil, errors.New("not a 256-bit hash")
		}
		return slice.CopyReverse(b), nil
	case BytesType:
		return hex.DecodeString(val)
	case KeyType:
		pub, err := keys.NewPublicKeyFromString(val)
		if err != nil {
			return nil, err
		}
		return pub.Bytes(), nil
	default:
		return val, nil
	}
}

// inferParamType tries to infer the value type from its contents. It returns
// IntegerType for anything that looks like a decimal integer, BoolType for
// true and false values, Hash160Type for addresses and hex strings encoding
// 20 bytes long values, KeyType for valid hex-encoded public keys,
// Hash256Type for hex-encoded 32 bytes values, SignatureType for hex-encoded
// 64 bytes values, BytesType for any other valid hex-encoded values and
// StringType for anything else.
func inferParamType(val string) string {
	bi, ok := new(big.Int).SetString(val, 10)
	if ok && stackitem.CheckIntegerSize(bi) == nil {
		return IntegerType
	}

	if val == "true" || val == "false" {
		return BoolType
	}

	if _, err := address.StringToUint160(val); err == nil {
		return Hash160Type
	}

	if _, err := keys.NewPublicKeyFromString(val); err == nil {
		return KeyType
	}

	unhexed, err := hex.DecodeString(val)
	if err == nil {
		switch len(unhexed) {
		case 20:
			return Hash160Type
		case 32:
			return Hash256Type
		case 64:
			return SignatureType
		default:
			return BytesType
		}
	}
	// Anything can be a string.
	return StringType
}
