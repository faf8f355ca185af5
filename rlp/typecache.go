package rlp

import (
	"fmt"
	"math/big"
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/holiman/uint256"
)

// typeinfo is an entry in the type cache.
// 缓冲类型的编码信息
type typeinfo struct {
	normalizer    normalizer // scalar conversion, nil for list types
	normalizerErr error
	writer        writer
	writerErr     error // error from makeWriter
}

// normalizer converts a scalar value to its canonical byte string.
type normalizer func(reflect.Value) ([]byte, error)

// writer appends the encoding of a value to the buffer. depth is the list
// nesting depth of the value.
type writer func(v reflect.Value, w *encBuffer, depth int) error

var theTC = newTypeCache()

var (
	bigInt   = reflect.TypeOf(big.Int{})
	u256Int  = reflect.TypeOf(uint256.Int{})
	itemType = reflect.TypeOf(Item{})
)

// typeCache maps a Go type to its normalizer and writer. Readers load the
// current map without locking, writers copy it under mu.
type typeCache struct {
	cur atomic.Value
	// This lock synchronizes writers.
	mu   sync.Mutex
	next map[reflect.Type]*typeinfo
}

func newTypeCache() *typeCache {
	c := new(typeCache)
	c.cur.Store(make(map[reflect.Type]*typeinfo))
	return c
}

func cachedWriter(typ reflect.Type) (writer, error) {
	info := theTC.info(typ)
	return info.writer, info.writerErr
}

func (c *typeCache) info(typ reflect.Type) *typeinfo {
	if info := c.cur.Load().(map[reflect.Type]*typeinfo)[typ]; info != nil {
		return info
	}
	// Not in the cache, need to generate info for this type.
	return c.generate(typ)
}

func (c *typeCache) generate(typ reflect.Type) *typeinfo {
	c.mu.Lock()
	defer c.mu.Unlock()

	cur := c.cur.Load().(map[reflect.Type]*typeinfo)
	if info := cur[typ]; info != nil {
		return info
	}

	// Copy cur to next.
	c.next = make(map[reflect.Type]*typeinfo, len(cur)+1)
	for k, v := range cur {
		c.next[k] = v
	}

	info := c.infoWhileGenerating(typ)

	// next -> cur
	c.cur.Store(c.next)
	c.next = nil
	return info
}

func (c *typeCache) infoWhileGenerating(typ reflect.Type) *typeinfo {
	if info := c.next[typ]; info != nil {
		return info
	}
	// Put a dummy value into the cache before generating.
	// If the generator tries to lookup itself, it will get
	// the dummy value and won't call itself recursively.
	info := new(typeinfo)
	c.next[typ] = info
	info.generate(typ)
	return info
}

func (i *typeinfo) generate(typ reflect.Type) {
	i.normalizer, i.normalizerErr = makeNormalizer(typ)
	i.writer, i.writerErr = makeWriter(typ)
}

func unsupported(typ reflect.Type) error {
	return fmt.Errorf("%w: %v", ErrUnsupportedInputType, typ)
}

// isListType reports whether values of typ encode as RLP lists.
func isListType(typ reflect.Type) bool {
	switch {
	case typ == itemType, typ == bigInt, typ == u256Int:
		return false
	case typ.Implements(byteViewerInterface):
		return false
	case typ.Kind() == reflect.Slice || typ.Kind() == reflect.Array:
		return !isByte(typ.Elem())
	case typ.Kind() == reflect.Ptr:
		return isListType(typ.Elem())
	}
	return false
}

func makeNormalizer(typ reflect.Type) (normalizer, error) {
	kind := typ.Kind()
	switch {
	case typ == itemType, typ == reflect.PtrTo(bigInt), typ == reflect.PtrTo(u256Int):
		return func(v reflect.Value) ([]byte, error) { return Normalize(v.Interface()) }, nil
	case typ == bigInt:
		return func(v reflect.Value) ([]byte, error) {
			i := v.Interface().(big.Int)
			return bigBytes(&i)
		}, nil
	case typ == u256Int:
		return func(v reflect.Value) ([]byte, error) {
			i := v.Interface().(uint256.Int)
			return i.Bytes(), nil
		}, nil
	case typ == reflect.PtrTo(itemType):
		// Item satisfies ByteViewer, but list items have no byte view.
		return makePtrNormalizer(typ)
	case typ.Implements(byteViewerInterface):
		return normalizeByteViewer, nil
	case isListType(typ):
		return nil, fmt.Errorf("%w: list type %v", ErrUnsupportedInputType, typ)
	case kind == reflect.Ptr:
		return makePtrNormalizer(typ)
	case kind == reflect.Interface:
		return normalizeInterface, nil
	case isUint(kind):
		return func(v reflect.Value) ([]byte, error) { return uintBytes(v.Uint()), nil }, nil
	case isInt(kind):
		return func(v reflect.Value) ([]byte, error) { return intBytes(v.Int()) }, nil
	case kind == reflect.Bool:
		return func(v reflect.Value) ([]byte, error) {
			if v.Bool() {
				return []byte{1}, nil
			}
			return []byte{}, nil
		}, nil
	case kind == reflect.String:
		return func(v reflect.Value) ([]byte, error) { return normalizeString(v.String()) }, nil
	case kind == reflect.Slice && isByte(typ.Elem()):
		return func(v reflect.Value) ([]byte, error) { return v.Bytes(), nil }, nil
	case kind == reflect.Array && isByte(typ.Elem()):
		return normalizeByteArray, nil
	default:
		return nil, unsupported(typ)
	}
}

func makePtrNormalizer(typ reflect.Type) (normalizer, error) {
	etypeinfo := theTC.infoWhileGenerating(typ.Elem())
	if etypeinfo.normalizerErr != nil {
		return nil, etypeinfo.normalizerErr
	}
	return func(v reflect.Value) ([]byte, error) {
		if v.IsNil() {
			return []byte{}, nil
		}
		return etypeinfo.normalizer(v.Elem())
	}, nil
}

func normalizeInterface(v reflect.Value) ([]byte, error) {
	if v.IsNil() {
		return []byte{}, nil
	}
	return Normalize(v.Elem().Interface())
}

func normalizeByteViewer(v reflect.Value) ([]byte, error) {
	if v.Kind() == reflect.Ptr && v.IsNil() {
		return []byte{}, nil
	}
	return v.Interface().(ByteViewer).Bytes(), nil
}

func normalizeByteArray(v reflect.Value) ([]byte, error) {
	out := make([]byte, v.Len())
	reflect.Copy(reflect.ValueOf(out), v)
	return out, nil
}

func isUint(k reflect.Kind) bool {
	return k >= reflect.Uint && k <= reflect.Uintptr
}

func isInt(k reflect.Kind) bool {
	return k >= reflect.Int && k <= reflect.Int64
}

func isByte(typ reflect.Type) bool {
	return typ.Kind() == reflect.Uint8
}
