package rlp

import (
	"fmt"
	"io"
	"reflect"
	"sync"
)

const (
	// StringOffset is the header base for strings, ListOffset for lists.
	StringOffset = 0x80
	ListOffset   = 0xC0
)

var (
	// Common encoded values.
	EmptyString = []byte{0x80}
	EmptyList   = []byte{0xC0}
)

// EncodeLength returns the header for a payload of n bytes. offset is
// StringOffset or ListOffset. Payloads shorter than 56 bytes get a single
// header byte, longer ones a length-of-length byte followed by the minimal
// big-endian length.
//
// 根据载荷长度生成头部字节
func EncodeLength(n uint64, offset byte) []byte {
	buf := make([]byte, headsize(n))
	puthead(buf, offset, offset+55, n)
	return buf
}

// EncodeToBytes returns the RLP encoding of val.
// Please see package-level documentation for the encoding rules.
func EncodeToBytes(val interface{}) ([]byte, error) {
	return DefaultEncoder.EncodeToBytes(val)
}

// Encode writes the RLP encoding of val to w.
func Encode(w io.Writer, val interface{}) error {
	return DefaultEncoder.Encode(w, val)
}

// AppendEncoded appends the RLP encoding of val to dst.
func AppendEncoded(dst []byte, val interface{}) ([]byte, error) {
	return DefaultEncoder.AppendEncoded(dst, val)
}

// Encoder encodes values with a configured nesting limit.
type Encoder struct {
	maxDepth int
}

// DefaultEncoder uses DefaultConfig.
var DefaultEncoder = &Encoder{maxDepth: DefaultConfig.MaxDepth}

// NewEncoder creates an encoder with the nesting limit of cfg. Invalid
// configurations are rejected by Config.Check.
func NewEncoder(cfg Config) (*Encoder, error) {
	if err := cfg.Check(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()
	return &Encoder{maxDepth: cfg.MaxDepth}, nil
}

func (e *Encoder) EncodeToBytes(val interface{}) ([]byte, error) {
	buf := getEncBuffer(e.maxDepth)
	defer encBufferPool.Put(buf)

	if err := buf.encode(val, 0); err != nil {
		return nil, err
	}
	return buf.makeBytes(), nil
}

func (e *Encoder) Encode(w io.Writer, val interface{}) error {
	buf := getEncBuffer(e.maxDepth)
	defer encBufferPool.Put(buf)

	if err := buf.encode(val, 0); err != nil {
		return err
	}
	_, err := w.Write(buf.makeBytes())
	return err
}

func (e *Encoder) AppendEncoded(dst []byte, val interface{}) ([]byte, error) {
	buf := getEncBuffer(e.maxDepth)
	defer encBufferPool.Put(buf)

	if err := buf.encode(val, 0); err != nil {
		return dst, err
	}
	return buf.appendTo(dst), nil
}

// encBuffer collects string content and list headers. List headers are
// only sized once the list is complete, so they are kept aside in lheads
// and spliced into the output by copyTo.
type encBuffer struct {
	str      []byte     // string data, contains everything except list headers
	lheads   []listhead // all list headers
	lhsize   int        // sum of sizes of all encoded list headers
	sizebuf  [9]byte    // auxiliary buffer for uint encoding
	maxDepth int
}

type listhead struct {
	offset int // index of this header in string data
	size   int // total size of encoded data (including list headers)
}

var encBufferPool = sync.Pool{
	New: func() interface{} { return new(encBuffer) },
}

func getEncBuffer(maxDepth int) *encBuffer {
	buf := encBufferPool.Get().(*encBuffer)
	buf.reset()
	buf.maxDepth = maxDepth
	return buf
}

func (w *encBuffer) reset() {
	w.lhsize = 0
	w.str = w.str[:0]
	w.lheads = w.lheads[:0]
}

// size returns the length of the encoded data.
func (w *encBuffer) size() int {
	return len(w.str) + w.lhsize
}

func (w *encBuffer) makeBytes() []byte {
	out := make([]byte, w.size())
	w.copyTo(out)
	return out
}

func (w *encBuffer) appendTo(dst []byte) []byte {
	size := w.size()
	if cap(dst)-len(dst) < size {
		grown := make([]byte, len(dst), len(dst)+size)
		copy(grown, dst)
		dst = grown
	}
	end := len(dst) + size
	w.copyTo(dst[len(dst):end])
	return dst[:end]
}

func (w *encBuffer) copyTo(dst []byte) {
	strpos := 0
	pos := 0
	for _, head := range w.lheads {
		// write string data before header
		n := copy(dst[pos:], w.str[strpos:head.offset])
		pos += n
		strpos += n
		// write the header
		enc := head.encode(dst[pos:])
		pos += len(enc)
	}
	// copy string data after the last list header
	copy(dst[pos:], w.str[strpos:])
}

// writeBytes appends a string. Single bytes below 0x80 are their own
// encoding.
func (w *encBuffer) writeBytes(b []byte) {
	if len(b) == 1 && b[0] < 0x80 {
		w.str = append(w.str, b[0])
		return
	}
	w.encodeStringHeader(len(b))
	w.str = append(w.str, b...)
}

func (w *encBuffer) encodeStringHeader(size int) {
	if size < 56 {
		w.str = append(w.str, StringOffset+byte(size))
	} else {
		sizesize := putint(w.sizebuf[1:], uint64(size))
		w.sizebuf[0] = StringOffset + 55 + byte(sizesize)
		w.str = append(w.str, w.sizebuf[:sizesize+1]...)
	}
}

// list opens a list at the given nesting depth and returns its header index.
func (w *encBuffer) list(depth int) (int, error) {
	if depth >= w.maxDepth {
		return 0, fmt.Errorf("%w: list nesting exceeds %d", ErrDepthExceeded, w.maxDepth)
	}
	w.lheads = append(w.lheads, listhead{offset: len(w.str), size: w.lhsize})
	return len(w.lheads) - 1, nil
}

func (w *encBuffer) listEnd(index int) {
	lh := &w.lheads[index]
	lh.size = w.size() - lh.offset - lh.size
	if lh.size < 56 {
		w.lhsize++ // length encoded into kind tag
	} else {
		w.lhsize += 1 + intsize(uint64(lh.size))
	}
}

func (w *encBuffer) encode(val interface{}, depth int) error {
	switch v := val.(type) {
	case Item:
		return w.writeItem(v, depth)
	case []interface{}:
		lh, err := w.list(depth)
		if err != nil {
			return err
		}
		for _, elem := range v {
			if err := w.encode(elem, depth+1); err != nil {
				return err
			}
		}
		w.listEnd(lh)
		return nil
	case nil, []byte, string, uint, uint8, uint16, uint32, uint64, int, int8, int16, int32, int64, bool:
		b, err := Normalize(v)
		if err != nil {
			return err
		}
		w.writeBytes(b)
		return nil
	}
	rval := reflect.ValueOf(val)
	writer, err := cachedWriter(rval.Type())
	if err != nil {
		return err
	}
	return writer(rval, w, depth)
}

func (w *encBuffer) writeItem(it Item, depth int) error {
	if !it.IsList() {
		w.writeBytes(it.str)
		return nil
	}
	lh, err := w.list(depth)
	if err != nil {
		return err
	}
	for _, elem := range it.elems {
		if err := w.writeItem(elem, depth+1); err != nil {
			return err
		}
	}
	w.listEnd(lh)
	return nil
}

func (head *listhead) encode(buf []byte) []byte {
	return buf[:puthead(buf, ListOffset, ListOffset+55, uint64(head.size))]
}

// headsize returns the size of a list or string header
// for a value of the given size.
func headsize(size uint64) int {
	if size < 56 {
		return 1
	}
	return 1 + intsize(size)
}

// puthead writes a list or string header to buf.
// buf must be at least 9 bytes long.
func puthead(buf []byte, smalltag, largetag byte, size uint64) int {
	if size < 56 {
		buf[0] = smalltag + byte(size)
		return 1
	}
	sizesize := putint(buf[1:], size)
	buf[0] = largetag + byte(sizesize)
	return sizesize + 1
}

// putint writes i to the beginning of b in big endian byte
// order, using the least number of bytes needed to represent i.
func putint(b []byte, i uint64) (size int) {
	size = intsize(i)
	for j := size - 1; j >= 0; j-- {
		b[j] = byte(i)
		i >>= 8
	}
	return size
}

// intsize computes the minimum number of bytes required to store i.
func intsize(i uint64) (size int) {
	for size = 1; ; size++ {
		if i >>= 8; i == 0 {
			return size
		}
	}
}

func makeWriter(typ reflect.Type) (writer, error) {
	kind := typ.Kind()
	switch {
	case typ == itemType:
		return writeItemValue, nil
	case kind == reflect.Interface:
		return writeInterface, nil
	case kind == reflect.Ptr && (typ.Elem() == itemType || !typ.Implements(byteViewerInterface)):
		return makePtrWriter(typ)
	case isListType(typ):
		return makeListWriter(typ)
	default:
		n, err := makeNormalizer(typ)
		if err != nil {
			return nil, err
		}
		return func(v reflect.Value, w *encBuffer, depth int) error {
			b, err := n(v)
			if err != nil {
				return err
			}
			w.writeBytes(b)
			return nil
		}, nil
	}
}

func writeItemValue(v reflect.Value, w *encBuffer, depth int) error {
	return w.writeItem(v.Interface().(Item), depth)
}

func writeInterface(v reflect.Value, w *encBuffer, depth int) error {
	if v.IsNil() {
		// Absent values encode as the empty string.
		w.str = append(w.str, StringOffset)
		return nil
	}
	return w.encode(v.Elem().Interface(), depth)
}

func makeListWriter(typ reflect.Type) (writer, error) {
	etypeinfo := theTC.infoWhileGenerating(typ.Elem())
	if etypeinfo.writerErr != nil {
		return nil, etypeinfo.writerErr
	}
	return func(v reflect.Value, w *encBuffer, depth int) error {
		lh, err := w.list(depth)
		if err != nil {
			return err
		}
		for i := 0; i < v.Len(); i++ {
			if err := etypeinfo.writer(v.Index(i), w, depth+1); err != nil {
				return err
			}
		}
		w.listEnd(lh)
		return nil
	}, nil
}

// makePtrWriter encodes the pointed-to value. Nil pointers to list types
// encode as the empty list, other nil pointers as the empty string.
func makePtrWriter(typ reflect.Type) (writer, error) {
	etypeinfo := theTC.infoWhileGenerating(typ.Elem())
	if etypeinfo.writerErr != nil {
		return nil, etypeinfo.writerErr
	}
	listElem := isListType(typ.Elem())
	return func(v reflect.Value, w *encBuffer, depth int) error {
		if v.IsNil() {
			if !listElem {
				w.str = append(w.str, StringOffset)
				return nil
			}
			if depth >= w.maxDepth {
				return fmt.Errorf("%w: list nesting exceeds %d", ErrDepthExceeded, w.maxDepth)
			}
			w.str = append(w.str, ListOffset)
			return nil
		}
		return etypeinfo.writer(v.Elem(), w, depth)
	}, nil
}
