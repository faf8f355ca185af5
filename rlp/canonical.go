package rlp

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"reflect"
	"strings"

	"github.com/holiman/uint256"
)

// ByteViewer is implemented by integer-like values that expose their
// big-endian byte representation. Normalize uses the view as-is.
type ByteViewer interface {
	Bytes() []byte
}

var byteViewerInterface = reflect.TypeOf(new(ByteViewer)).Elem()

// Normalize converts v into the canonical byte string that Encode writes for
// it. Accepted inputs are:
//
//	nil, nil pointers            -> empty string
//	[]byte                       -> unchanged
//	string with "0x" prefix      -> hex-decoded, odd digit counts padded with a leading zero
//	other strings                -> raw text bytes
//	unsigned and signed integers -> minimal big-endian bytes, zero is the empty string
//	bool                         -> 0 or 1
//	*big.Int, big.Int, *uint256.Int, ByteViewer
//	string Items
//
// Named types with one of the above kinds, byte arrays and pointers are
// resolved through the type cache. Negative integers, lists and all other
// types fail with ErrUnsupportedInputType.
//
// 将各种输入统一转换成规范的字节串
func Normalize(v interface{}) ([]byte, error) {
	switch v := v.(type) {
	case nil:
		return []byte{}, nil
	case []byte:
		return v, nil
	case string:
		return normalizeString(v)
	case uint:
		return uintBytes(uint64(v)), nil
	case uint8:
		return uintBytes(uint64(v)), nil
	case uint16:
		return uintBytes(uint64(v)), nil
	case uint32:
		return uintBytes(uint64(v)), nil
	case uint64:
		return uintBytes(v), nil
	case int:
		return intBytes(int64(v))
	case int8:
		return intBytes(int64(v))
	case int16:
		return intBytes(int64(v))
	case int32:
		return intBytes(int64(v))
	case int64:
		return intBytes(v)
	case bool:
		if v {
			return []byte{1}, nil
		}
		return []byte{}, nil
	case *big.Int:
		return bigBytes(v)
	case big.Int:
		return bigBytes(&v)
	case *uint256.Int:
		if v == nil {
			return []byte{}, nil
		}
		return v.Bytes(), nil
	case Item:
		if v.IsList() {
			return nil, fmt.Errorf("%w: list item", ErrUnsupportedInputType)
		}
		return v.Bytes(), nil
	}
	info := theTC.info(reflect.TypeOf(v))
	if info.normalizerErr != nil {
		return nil, info.normalizerErr
	}
	return info.normalizer(reflect.ValueOf(v))
}

func normalizeString(s string) ([]byte, error) {
	if !hasHexPrefix(s) {
		return []byte(s), nil
	}
	s = s[2:]
	if len(s)%2 == 1 {
		s = "0" + s
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHex, err)
	}
	return b, nil
}

func hasHexPrefix(s string) bool {
	return strings.HasPrefix(s, "0x")
}

// uintBytes returns the minimal big-endian representation of i.
// Zero yields an empty slice.
func uintBytes(i uint64) []byte {
	b := make([]byte, intsize(i))
	if i == 0 {
		return b[:0]
	}
	putint(b, i)
	return b
}

func intBytes(i int64) ([]byte, error) {
	if i < 0 {
		return nil, fmt.Errorf("%w: negative integer %d", ErrUnsupportedInputType, i)
	}
	return uintBytes(uint64(i)), nil
}

func bigBytes(i *big.Int) ([]byte, error) {
	if i == nil {
		return []byte{}, nil
	}
	if i.Sign() < 0 {
		return nil, fmt.Errorf("%w: negative big.Int %v", ErrUnsupportedInputType, i)
	}
	return i.Bytes(), nil
}
