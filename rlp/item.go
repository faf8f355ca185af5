package rlp

import (
	"bytes"
	"encoding/hex"
	"strings"
)

// Kind represents the kind of value contained in an RLP stream.
type Kind int8

const (
	Byte Kind = iota
	String
	List
)

func (k Kind) String() string {
	switch k {
	case Byte:
		return "Byte"
	case String:
		return "String"
	case List:
		return "List"
	default:
		return "Unknown"
	}
}

// Item is a decoded RLP value: either a string of bytes or a list of items.
// Items produced by the decoder never report the Byte kind, a single byte
// below 0x80 decodes to a one-byte String.
//
// Item是解码后的RLP值：字节串或者由Item组成的列表
type Item struct {
	kind  Kind
	str   []byte
	elems []Item
}

// Bytes creates a string item holding b. The slice is not copied.
func Bytes(b []byte) Item {
	if b == nil {
		b = []byte{}
	}
	return Item{kind: String, str: b}
}

// Str creates a string item holding the raw bytes of s.
func Str(s string) Item {
	return Item{kind: String, str: []byte(s)}
}

// NewList creates a list item with the given elements.
func NewList(elems ...Item) Item {
	if elems == nil {
		elems = []Item{}
	}
	return Item{kind: List, elems: elems}
}

// Kind returns String or List.
func (it Item) Kind() Kind {
	if it.kind == List {
		return List
	}
	return String
}

func (it Item) IsList() bool { return it.kind == List }

// Bytes returns the content of a string item. It returns nil for lists.
func (it Item) Bytes() []byte {
	if it.kind == List {
		return nil
	}
	if it.str == nil {
		return []byte{}
	}
	return it.str
}

// Elems returns the elements of a list item. It returns nil for strings.
func (it Item) Elems() []Item {
	if it.kind != List {
		return nil
	}
	return it.elems
}

// Len returns the number of bytes in a string or the number of elements in a list.
func (it Item) Len() int {
	if it.kind == List {
		return len(it.elems)
	}
	return len(it.str)
}

// Equal reports whether two items have the same shape and content.
func (it Item) Equal(other Item) bool {
	if it.IsList() != other.IsList() {
		return false
	}
	if !it.IsList() {
		return bytes.Equal(it.str, other.str)
	}
	if len(it.elems) != len(other.elems) {
		return false
	}
	for i := range it.elems {
		if !it.elems[i].Equal(other.elems[i]) {
			return false
		}
	}
	return true
}

// String renders the item for debugging: strings as 0x-prefixed hex, lists in
// brackets.
func (it Item) String() string {
	var sb strings.Builder
	it.format(&sb)
	return sb.String()
}

func (it Item) format(sb *strings.Builder) {
	if !it.IsList() {
		sb.WriteString("0x")
		sb.WriteString(hex.EncodeToString(it.str))
		return
	}
	sb.WriteByte('[')
	for i, e := range it.elems {
		if i > 0 {
			sb.WriteString(", ")
		}
		e.format(sb)
	}
	sb.WriteByte(']')
}
