package rlp

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/davecgh/go-spew/spew"
	fuzz "github.com/google/gofuzz"
)

// tree is a random nested structure, turned into an Item by build.
type tree struct {
	Leaves [][]byte
	Sub    []tree
}

func (tr tree) build(depth int) Item {
	elems := make([]Item, 0, len(tr.Leaves)+len(tr.Sub))
	for _, leaf := range tr.Leaves {
		elems = append(elems, Bytes(leaf))
	}
	if depth > 0 {
		for _, sub := range tr.Sub {
			elems = append(elems, sub.build(depth-1))
		}
	}
	return NewList(elems...)
}

func TestRoundTripRandomItems(t *testing.T) {
	f := fuzz.New().NilChance(0.1).NumElements(0, 8).MaxDepth(6)
	for i := 0; i < 500; i++ {
		var tr tree
		f.Fuzz(&tr)
		item := tr.build(4)

		enc, err := EncodeToBytes(item)
		if err != nil {
			t.Fatalf("iteration %d: encode error: %v", i, err)
		}
		dec, err := DecodeBytes(enc)
		if err != nil {
			t.Fatalf("iteration %d: decode error: %v\ninput %X", i, err, enc)
		}
		if !dec.Equal(item) {
			t.Fatalf("iteration %d: round trip mismatch\nencoded %X\ngot  %s\nwant %s", i, enc, spew.Sdump(dec), spew.Sdump(item))
		}
		again, _ := EncodeToBytes(item)
		if !bytes.Equal(enc, again) {
			t.Fatalf("iteration %d: non-deterministic encoding %X != %X", i, enc, again)
		}
		if n, err := GetLength(enc); err != nil || n != len(enc) {
			t.Fatalf("iteration %d: GetLength = %d, %v, want %d", i, n, err, len(enc))
		}
	}
}

func TestRoundTripRandomIntegers(t *testing.T) {
	f := fuzz.New()
	for i := 0; i < 1000; i++ {
		var x uint64
		f.Fuzz(&x)
		enc, err := EncodeToBytes(x)
		if err != nil {
			t.Fatal(err)
		}
		dec, err := DecodeBytes(enc)
		if err != nil {
			t.Fatalf("%d: %v", x, err)
		}
		if got := new(big.Int).SetBytes(dec.Bytes()); !got.IsUint64() || got.Uint64() != x {
			t.Fatalf("round trip of %d returned %v", x, got)
		}
		if len(dec.Bytes()) > 0 && dec.Bytes()[0] == 0 {
			t.Fatalf("%d encoded with leading zero: %X", x, enc)
		}
	}
}

// Any input the decoder accepts must be the unique encoding of its value.
func TestDecodeRandomInputIsCanonical(t *testing.T) {
	f := fuzz.New().NilChance(0).NumElements(0, 64)
	for i := 0; i < 5000; i++ {
		var input []byte
		f.Fuzz(&input)
		// empty input decodes to the empty string, see TestDecodeEmpty
		if len(input) == 0 {
			continue
		}
		item, err := DecodeBytes(input)
		if err != nil {
			continue
		}
		enc, err := EncodeToBytes(item)
		if err != nil {
			t.Fatalf("re-encoding failed: %v", err)
		}
		if !bytes.Equal(enc, input) {
			t.Fatalf("accepted non-canonical input\ninput %X\nvalue %v\ncanon %X", input, item, enc)
		}
	}
}
