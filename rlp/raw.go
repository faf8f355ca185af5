package rlp

import "fmt"

const maxInt = int(^uint(0) >> 1)

// GetLength returns the total encoded size of the item at the front of
// input, header included. Only the header is inspected, nested payloads are
// not parsed and the payload itself need not be present. Empty input
// yields zero.
//
// 只根据头部计算第一个编码值占用的总字节数
func GetLength(input interface{}) (int, error) {
	return DefaultDecoder.GetLength(input)
}

// GetLength is like the package-level GetLength, but also rejects input
// larger than the decoder's MaxInputSize.
func (d *Decoder) GetLength(input interface{}) (int, error) {
	b, err := Normalize(input)
	if err != nil {
		return 0, err
	}
	if len(b) == 0 {
		return 0, nil
	}
	if len(b) > d.cfg.MaxInputSize {
		return 0, fmt.Errorf("%w: %d bytes, limit %d", ErrInputTooLarge, len(b), d.cfg.MaxInputSize)
	}
	_, tagsize, size, err := readKind(b)
	if err != nil {
		return 0, err
	}
	if size > uint64(maxInt)-tagsize {
		return 0, fmt.Errorf("%w: declared size %d", ErrInputTooLarge, size)
	}
	return int(tagsize + size), nil
}

// ListSize returns the encoded size of an RLP list with the given
// content size.
func ListSize(contentSize uint64) uint64 {
	return uint64(headsize(contentSize)) + contentSize
}

// StringSize returns the encoded size of the string s.
func StringSize(s []byte) uint64 {
	if len(s) == 1 && s[0] < 0x80 {
		return 1
	}
	return uint64(headsize(uint64(len(s)))) + uint64(len(s))
}

// IntSize returns the encoded size of the integer x.
func IntSize(x uint64) int {
	if x < 0x80 {
		return 1
	}
	return 1 + intsize(x)
}

// CountValues counts the number of encoded values in b.
func CountValues(b []byte) (int, error) {
	i := 0
	for ; len(b) > 0; i++ {
		_, tagsize, size, err := readKind(b)
		if err != nil {
			return 0, err
		}
		if size > uint64(len(b))-tagsize {
			return 0, ErrTruncatedInput
		}
		b = b[tagsize+size:]
	}
	return i, nil
}

// readKind classifies the header at the front of buf. tagsize is the
// number of header bytes, contentsize the declared payload length. The
// payload is not checked against len(buf).
func readKind(buf []byte) (k Kind, tagsize, contentsize uint64, err error) {
	if len(buf) == 0 {
		return 0, 0, 0, ErrTruncatedInput
	}
	b := buf[0]
	switch {
	case b < 0x80:
		k = Byte
		tagsize = 0
		contentsize = 1
	case b < 0xB8:
		k = String
		tagsize = 1
		contentsize = uint64(b - 0x80)
	case b < 0xC0:
		k = String
		tagsize = uint64(b-0xB7) + 1
		contentsize, err = readSize(buf[1:], b-0xB7, k)
	case b < 0xF8:
		k = List
		tagsize = 1
		contentsize = uint64(b - 0xC0)
	default:
		k = List
		tagsize = uint64(b-0xF7) + 1
		contentsize, err = readSize(buf[1:], b-0xF7, k)
	}
	if err != nil {
		return 0, 0, 0, err
	}
	return k, tagsize, contentsize, nil
}

// readSize reads a big-endian length of slen bytes. Long forms are only
// valid for lengths that do not fit the short form, and the length itself
// must be minimal.
func readSize(b []byte, slen byte, k Kind) (uint64, error) {
	if int(slen) > len(b) {
		return 0, ErrTruncatedInput
	}
	var s uint64
	for _, c := range b[:slen] {
		s = s<<8 | uint64(c)
	}
	switch {
	case k == List && s == 0:
		return 0, ErrEmptyListSpan
	case b[0] == 0:
		return 0, ErrExtraLeadingZero
	case s < 56:
		return 0, ErrNonCanonicalEncoding
	}
	return s, nil
}
