package rlp

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedInputType = errors.New("rlp: unsupported input type")
	ErrInvalidHex           = errors.New("rlp: invalid hex string")
	ErrNonCanonicalEncoding = errors.New("rlp: non-canonical size information")
	ErrExtraLeadingZero     = errors.New("rlp: length has leading zero bytes")
	ErrTruncatedInput       = errors.New("rlp: value size exceeds available input length")
	ErrInvalidTotalLength   = errors.New("rlp: total length is larger than the data")
	ErrMalformedList        = errors.New("rlp: element is larger than containing list")
	ErrEmptyListSpan        = errors.New("rlp: long list has zero length")
	ErrTrailingData         = errors.New("rlp: input contains more than one value")
	ErrDepthExceeded        = errors.New("rlp: nesting depth limit exceeded")
	ErrInputTooLarge        = errors.New("rlp: input size limit exceeded")
)

// DecodeError reports where in the input a decoding failure happened.
type DecodeError struct {
	Err    error // one of the Err* values above
	Offset int   // offset of the failing item's header in the input
	Depth  int   // list nesting depth of the failing item
}

func (err *DecodeError) Error() string {
	return fmt.Sprintf("%v (offset %d, depth %d)", err.Err, err.Offset, err.Depth)
}

func (err *DecodeError) Unwrap() error { return err.Err }

// Decode parses a single RLP item from input, which is first passed through
// Normalize. The input must contain exactly one item and no trailing data.
// An empty input decodes to the empty string.
//
// String items reference the normalized input, they are not copied.
func Decode(input interface{}) (Item, error) {
	return DefaultDecoder.Decode(input)
}

// DecodeStream parses the first RLP item from input and also returns the
// bytes following it, so concatenated items can be read one by one.
//
// 流模式：返回解析出的值以及剩余未消费的字节
func DecodeStream(input interface{}) (Item, []byte, error) {
	return DefaultDecoder.DecodeStream(input)
}

// DecodeBytes decodes b, which must contain exactly one value.
func DecodeBytes(b []byte) (Item, error) {
	return DefaultDecoder.DecodeBytes(b)
}

// Split parses the first item of b and returns it along with the rest of b.
func Split(b []byte) (Item, []byte, error) {
	return DefaultDecoder.Split(b)
}

// Decoder parses RLP data within configured resource limits. It holds no
// state between calls and is safe for concurrent use.
type Decoder struct {
	cfg Config
}

// DefaultDecoder uses DefaultConfig.
var DefaultDecoder = &Decoder{cfg: DefaultConfig}

// NewDecoder creates a decoder with the given limits. Zero limits take the
// DefaultConfig value, negative ones are rejected by Config.Check.
func NewDecoder(cfg Config) (*Decoder, error) {
	if err := cfg.Check(); err != nil {
		return nil, err
	}
	return &Decoder{cfg: cfg.withDefaults()}, nil
}

func (d *Decoder) Decode(input interface{}) (Item, error) {
	b, err := Normalize(input)
	if err != nil {
		return Item{}, err
	}
	return d.DecodeBytes(b)
}

func (d *Decoder) DecodeStream(input interface{}) (Item, []byte, error) {
	b, err := Normalize(input)
	if err != nil {
		return Item{}, nil, err
	}
	return d.Split(b)
}

func (d *Decoder) DecodeBytes(b []byte) (Item, error) {
	it, rest, err := d.Split(b)
	if err != nil {
		return Item{}, err
	}
	if len(rest) > 0 {
		return Item{}, &DecodeError{Err: ErrTrailingData, Offset: len(b) - len(rest)}
	}
	return it, nil
}

func (d *Decoder) Split(b []byte) (Item, []byte, error) {
	if len(b) == 0 {
		return Bytes([]byte{}), []byte{}, nil
	}
	if len(b) > d.cfg.MaxInputSize {
		return Item{}, nil, fmt.Errorf("%w: %d bytes, limit %d", ErrInputTooLarge, len(b), d.cfg.MaxInputSize)
	}
	return d.item(b, 0, 0)
}

// item decodes the value at the front of buf. pos is the offset of buf in
// the top-level input.
func (d *Decoder) item(buf []byte, pos, depth int) (Item, []byte, error) {
	k, tagsize, size, err := readKind(buf)
	if err != nil {
		return Item{}, nil, &DecodeError{Err: err, Offset: pos, Depth: depth}
	}
	if size > uint64(len(buf))-tagsize {
		err = ErrTruncatedInput
		if k == List {
			err = ErrInvalidTotalLength
		}
		return Item{}, nil, &DecodeError{Err: err, Offset: pos, Depth: depth}
	}
	end := tagsize + size
	content, rest := buf[tagsize:end], buf[end:]

	switch k {
	case Byte:
		return Bytes(content), rest, nil
	case String:
		// Reject strings that should've been single bytes.
		if size == 1 && content[0] < 0x80 {
			return Item{}, nil, &DecodeError{Err: ErrNonCanonicalEncoding, Offset: pos, Depth: depth}
		}
		return Bytes(content), rest, nil
	default:
		list, err := d.list(content, pos+int(tagsize), depth)
		if err != nil {
			return Item{}, nil, err
		}
		return list, rest, nil
	}
}

// list decodes the payload of a list at the given depth. Each element is
// decoded with item, its remainder feeding the next iteration.
func (d *Decoder) list(content []byte, pos, depth int) (Item, error) {
	if depth >= d.cfg.MaxDepth {
		return Item{}, &DecodeError{Err: ErrDepthExceeded, Offset: pos, Depth: depth}
	}
	elems := []Item{}
	for len(content) > 0 {
		// Elements must fit into the list payload.
		_, tagsize, size, err := readKind(content)
		if errors.Is(err, ErrTruncatedInput) || (err == nil && size > uint64(len(content))-tagsize) {
			return Item{}, &DecodeError{Err: ErrMalformedList, Offset: pos, Depth: depth + 1}
		}
		elem, rest, err := d.item(content, pos, depth+1)
		if err != nil {
			return Item{}, err
		}
		elems = append(elems, elem)
		pos += len(content) - len(rest)
		content = rest
	}
	return NewList(elems...), nil
}
