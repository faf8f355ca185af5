// Copyright 2022 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

package rlp

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"
)

type decTest struct {
	input string
	value Item
	err   error
}

func str(hexstr string) Item { return Bytes(unhex(hexstr)) }

func list(elems ...Item) Item { return NewList(elems...) }

// repeatHex returns n copies of the hex byte b.
func repeatHex(b string, n int) string { return strings.Repeat(b, n) }

var decTests = []decTest{
	// single bytes
	{input: "00", value: str("00")},
	{input: "01", value: str("01")},
	{input: "7F", value: str("7F")},

	// short strings
	{input: "80", value: str("")},
	{input: "8180", value: str("80")},
	{input: "81FF", value: str("FF")},
	{input: "820400", value: str("0400")},
	{input: "83646F67", value: Str("dog")},
	{input: "B7" + repeatHex("AA", 55), value: str(repeatHex("AA", 55))},

	// long strings
	{input: "B838" + repeatHex("AA", 56), value: str(repeatHex("AA", 56))},
	{input: "B90400" + repeatHex("61", 1024), value: str(repeatHex("61", 1024))},

	// short lists
	{input: "C0", value: list()},
	{input: "C3010203", value: list(str("01"), str("02"), str("03"))},
	{input: "C88363617483646F67", value: list(Str("cat"), Str("dog"))},
	{input: "C7C0C1C0C3C0C1C0", value: list(list(), list(list()), list(list(), list(list())))},
	{input: "C180", value: list(str(""))},
	{input: "C281FF", value: list(str("FF"))},
	{input: "F7" + repeatHex("01", 55), value: list(repeatItem(str("01"), 55)...)},

	// long lists
	{input: "F838" + repeatHex("01", 56), value: list(repeatItem(str("01"), 56)...)},
	{
		input: "F83C836161618362626283636363836464648365656583666666836767678368686883696969836A6A6A836B6B6B836C6C6C836D6D6D836E6E6E836F6F6F",
		value: list(Str("aaa"), Str("bbb"), Str("ccc"), Str("ddd"), Str("eee"), Str("fff"), Str("ggg"), Str("hhh"), Str("iii"), Str("jjj"), Str("kkk"), Str("lll"), Str("mmm"), Str("nnn"), Str("ooo")),
	},

	// non-canonical strings
	{input: "8100", err: ErrNonCanonicalEncoding},
	{input: "817F", err: ErrNonCanonicalEncoding},
	{input: "B800", err: ErrExtraLeadingZero},
	{input: "B90038" + repeatHex("AA", 56), err: ErrExtraLeadingZero},
	{input: "B801AA", err: ErrNonCanonicalEncoding},
	{input: "B837" + repeatHex("AA", 55), err: ErrNonCanonicalEncoding},
	{input: "C28100", err: ErrNonCanonicalEncoding},

	// non-canonical lists
	{input: "F800", err: ErrEmptyListSpan},
	{input: "F90000", err: ErrEmptyListSpan},
	{input: "F90038" + repeatHex("01", 56), err: ErrExtraLeadingZero},
	{input: "F80100", err: ErrNonCanonicalEncoding},
	{input: "F837" + repeatHex("01", 55), err: ErrNonCanonicalEncoding},

	// truncated input
	{input: "81", err: ErrTruncatedInput},
	{input: "836364", err: ErrTruncatedInput},
	{input: "B8", err: ErrTruncatedInput},
	{input: "B9FF", err: ErrTruncatedInput},
	{input: "B838" + repeatHex("AA", 10), err: ErrTruncatedInput},
	{input: "BFFFFFFFFFFFFFFFFF00", err: ErrTruncatedInput},
	{input: "C301", err: ErrInvalidTotalLength},
	{input: "F8", err: ErrTruncatedInput},
	{input: "F83C" + repeatHex("01", 10), err: ErrInvalidTotalLength},
	{input: "FFFFFFFFFFFFFFFFFF00", err: ErrInvalidTotalLength},

	// list payloads that don't split into whole elements
	{input: "C28301" + "02", err: ErrMalformedList},
	{input: "C1B8", err: ErrMalformedList},
	{input: "C3C30102", err: ErrMalformedList},
	{input: "C4C20102C1", err: ErrMalformedList},

	// trailing data
	{input: "0102", err: ErrTrailingData},
	{input: "C0C0", err: ErrTrailingData},
	{input: "8180" + "00", err: ErrTrailingData},
}

func repeatItem(it Item, n int) []Item {
	items := make([]Item, n)
	for i := range items {
		items[i] = it
	}
	return items
}

func TestDecodeBytes(t *testing.T) {
	for i, test := range decTests {
		item, err := DecodeBytes(unhex(test.input))
		if test.err != nil {
			if !errors.Is(err, test.err) {
				t.Errorf("test %d: error mismatch\ninput %s\ngot   %v\nwant  %v", i, test.input, err, test.err)
			}
			continue
		}
		if err != nil {
			t.Errorf("test %d: unexpected error: %v\ninput %s", i, err, test.input)
			continue
		}
		if !item.Equal(test.value) {
			t.Errorf("test %d: value mismatch\ninput %s\ngot   %v\nwant  %v", i, test.input, item, test.value)
		}
	}
}

// Canonical input must survive a decode/encode cycle unchanged.
func TestDecodeReencode(t *testing.T) {
	for i, test := range decTests {
		if test.err != nil {
			continue
		}
		input := unhex(test.input)
		item, err := DecodeBytes(input)
		if err != nil {
			t.Fatalf("test %d: %v", i, err)
		}
		enc, err := EncodeToBytes(item)
		if err != nil {
			t.Fatalf("test %d: %v", i, err)
		}
		if !bytes.Equal(enc, input) {
			t.Errorf("test %d: re-encoding mismatch\ngot  %X\nwant %X", i, enc, input)
		}
	}
}

func TestDecodeBoundaries(t *testing.T) {
	tests := []struct {
		prefix byte
		input  string
		kind   Kind
		size   int
	}{
		{0x7F, "7F", String, 1},
		{0x80, "80", String, 0},
		{0xB7, "B7" + repeatHex("AA", 55), String, 55},
		{0xB8, "B838" + repeatHex("AA", 56), String, 56},
		{0xBF, "BF0000000000000000", String, 0},
		{0xC0, "C0", List, 0},
		{0xF7, "F7" + repeatHex("01", 55), List, 55},
		{0xF8, "F838" + repeatHex("01", 56), List, 56},
	}
	for _, test := range tests {
		item, err := DecodeBytes(unhex(test.input))
		if test.prefix == 0xBF {
			// Eight-byte lengths can only be valid for enormous strings.
			if !errors.Is(err, ErrExtraLeadingZero) {
				t.Errorf("prefix %#x: got error %v, want %v", test.prefix, err, ErrExtraLeadingZero)
			}
			continue
		}
		if err != nil {
			t.Errorf("prefix %#x: unexpected error %v", test.prefix, err)
			continue
		}
		if item.Kind() != test.kind || item.Len() != test.size {
			t.Errorf("prefix %#x: got %v of length %d, want %v of length %d", test.prefix, item.Kind(), item.Len(), test.kind, test.size)
		}
	}
}

func TestDecodeEmpty(t *testing.T) {
	for _, input := range []interface{}{nil, "", []byte{}, "0x"} {
		item, err := Decode(input)
		if err != nil {
			t.Fatalf("Decode(%#v): %v", input, err)
		}
		if item.IsList() || item.Len() != 0 {
			t.Fatalf("Decode(%#v) = %v, want empty string", input, item)
		}
		item, rest, err := DecodeStream(input)
		if err != nil || item.IsList() || item.Len() != 0 || len(rest) != 0 {
			t.Fatalf("DecodeStream(%#v) = %v, %x, %v", input, item, rest, err)
		}
	}
}

func TestDecodeNormalizesInput(t *testing.T) {
	item, err := Decode("0xc88363617483646f67")
	if err != nil {
		t.Fatal(err)
	}
	if want := list(Str("cat"), Str("dog")); !item.Equal(want) {
		t.Fatalf("got %v, want %v", item, want)
	}
	item, err = Decode("\x0f")
	if err != nil {
		t.Fatal(err)
	}
	if !item.Equal(str("0F")) {
		t.Fatalf("got %v, want 0x0f", item)
	}
	if _, err := Decode(1.5); !errors.Is(err, ErrUnsupportedInputType) {
		t.Fatalf("wrong error for float input: %v", err)
	}
}

func TestDecodeStream(t *testing.T) {
	input := unhex("820400" + "C0" + "83646F67" + "0F")
	want := []Item{str("0400"), list(), Str("dog"), str("0F")}
	rests := []int{6, 5, 1, 0}

	rest := input
	for i, w := range want {
		var (
			item Item
			err  error
		)
		item, rest, err = DecodeStream(rest)
		if err != nil {
			t.Fatalf("item %d: %v", i, err)
		}
		if !item.Equal(w) {
			t.Fatalf("item %d: got %v, want %v", i, item, w)
		}
		if len(rest) != rests[i] {
			t.Fatalf("item %d: remainder has %d bytes, want %d", i, len(rest), rests[i])
		}
	}
	if _, err := DecodeBytes(input); !errors.Is(err, ErrTrailingData) {
		t.Fatalf("DecodeBytes on stream: got %v, want %v", err, ErrTrailingData)
	}
}

func TestDecodeErrorPosition(t *testing.T) {
	_, err := DecodeBytes(unhex("C3018100"))
	var derr *DecodeError
	if !errors.As(err, &derr) {
		t.Fatalf("got %T, want *DecodeError", err)
	}
	if derr.Err != ErrNonCanonicalEncoding || derr.Offset != 2 || derr.Depth != 1 {
		t.Fatalf("wrong error details: %+v", derr)
	}
	if want := "rlp: non-canonical size information (offset 2, depth 1)"; derr.Error() != want {
		t.Fatalf("wrong message %q", derr.Error())
	}
}

func nestedLists(depth int) []byte {
	enc := []byte{0xC0}
	for i := 1; i < depth; i++ {
		enc = append(EncodeLength(uint64(len(enc)), ListOffset), enc...)
	}
	return enc
}

func TestDecodeDepthLimit(t *testing.T) {
	dec, err := NewDecoder(Config{MaxDepth: 2})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := dec.DecodeBytes(unhex("C1C0")); err != nil {
		t.Fatalf("depth 2 rejected: %v", err)
	}
	if _, err := dec.DecodeBytes(unhex("C2C1C0")); !errors.Is(err, ErrDepthExceeded) {
		t.Fatalf("depth 3: got %v, want %v", err, ErrDepthExceeded)
	}

	// Deeply nested input must fail cleanly with the default limit.
	deep := nestedLists(DefaultConfig.MaxDepth + 1)
	if _, err := DecodeBytes(deep); !errors.Is(err, ErrDepthExceeded) {
		t.Fatalf("deep input: got %v, want %v", err, ErrDepthExceeded)
	}
	if _, err := DecodeBytes(nestedLists(DefaultConfig.MaxDepth)); err != nil {
		t.Fatalf("max depth input rejected: %v", err)
	}
}

func TestDecodeSizeLimit(t *testing.T) {
	dec, err := NewDecoder(Config{MaxInputSize: 4})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := dec.DecodeBytes(unhex("83646F67")); err != nil {
		t.Fatalf("4 byte input rejected: %v", err)
	}
	if _, err := dec.DecodeBytes(unhex("84646F6767")); !errors.Is(err, ErrInputTooLarge) {
		t.Fatalf("5 byte input: got %v, want %v", err, ErrInputTooLarge)
	}
}

func TestInvalidConfigRejected(t *testing.T) {
	for _, cfg := range []Config{{MaxDepth: -1}, {MaxInputSize: -1}} {
		if dec, err := NewDecoder(cfg); err == nil {
			t.Errorf("NewDecoder(%+v) accepted, returned %v", cfg, dec)
		}
	}
	if enc, err := NewEncoder(Config{MaxDepth: -1}); err == nil {
		t.Errorf("NewEncoder accepted negative depth, returned %v", enc)
	}
	// zero limits fall back to the defaults
	dec, err := NewDecoder(Config{})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := dec.DecodeBytes(nestedLists(DefaultConfig.MaxDepth)); err != nil {
		t.Fatalf("default depth rejected with zero config: %v", err)
	}
}

func newTestFullNode(v []byte) []interface{} {
	fullNodeData := []interface{}{}
	for i := 0; i < 16; i++ {
		k := bytes.Repeat([]byte{byte(i + 1)}, 32)
		fullNodeData = append(fullNodeData, k)
	}
	fullNodeData = append(fullNodeData, v)
	return fullNodeData
}

func TestDecodeFullNode(t *testing.T) {
	fullNodeData := newTestFullNode([]byte("decodefullnode"))
	enc, err := EncodeToBytes(fullNodeData)
	if err != nil {
		t.Fatal(err)
	}
	item, err := DecodeBytes(enc)
	if err != nil {
		t.Fatal(err)
	}
	if !item.IsList() || item.Len() != 17 {
		t.Fatalf("wrong shape: %s", spew.Sdump(item))
	}
	for i, child := range item.Elems()[:16] {
		if !bytes.Equal(child.Bytes(), fullNodeData[i].([]byte)) {
			t.Fatalf("child %d: got %x", i, child.Bytes())
		}
	}
	if string(item.Elems()[16].Bytes()) != "decodefullnode" {
		t.Fatalf("wrong value %q", item.Elems()[16].Bytes())
	}
}

func TestDecodeNestedNode(t *testing.T) {
	fullNodeData := newTestFullNode([]byte("fullnode"))

	data := [][]byte{}
	for i := 0; i < 16; i++ {
		data = append(data, nil)
	}
	data = append(data, []byte("subnode"))
	fullNodeData[15] = data

	enc, err := EncodeToBytes(fullNodeData)
	if err != nil {
		t.Fatal(err)
	}
	item, err := DecodeBytes(enc)
	if err != nil {
		t.Fatal(err)
	}
	sub := item.Elems()[15]
	if !sub.IsList() || sub.Len() != 17 {
		t.Fatalf("wrong nested node: %s", spew.Sdump(sub))
	}
	for i, child := range sub.Elems()[:16] {
		if child.IsList() || child.Len() != 0 {
			t.Fatalf("nested child %d not empty: %v", i, child)
		}
	}
	if string(sub.Elems()[16].Bytes()) != "subnode" {
		t.Fatalf("wrong nested value %q", sub.Elems()[16].Bytes())
	}
}

func BenchmarkDecodeFullNode(b *testing.B) {
	enc, err := EncodeToBytes(newTestFullNode([]byte("fullnode")))
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := DecodeBytes(enc); err != nil {
			b.Fatal(err)
		}
	}
}
