/*
Package rlp implements the RLP serialization format.
    rlp包实现了RLP序列化格式

The purpose of RLP (Recursive Linear Prefix) is to encode arbitrarily nested arrays of
binary data. The only purpose of RLP is to encode structure; encoding specific atomic
data types (eg. strings, ints, floats) is left up to higher-order protocols. Integers
are represented in big endian binary form with no leading zeroes (thus making the
integer value zero equivalent to the empty string).
    RLP的唯一目的是对结构进行编码，整数以无前导零的大端形式表示，零等价于空字符串。

Every value has exactly one valid encoding. Independent implementations must agree on
it byte for byte, so the decoder rejects any input that is not the unique minimal form.

Encoding Rules
    编码规则

Values are first reduced to either a byte string or a list of values. Normalize
performs the reduction for strings:

	[]byte              used as-is
	"0x..." strings     hex digits, padded to an even count with a leading zero
	other strings       raw text bytes
	integers            minimal big endian bytes, 0 becomes the empty string
	nil                 the empty string
	*big.Int, *uint256.Int and values implementing ByteViewer
	                    their big endian byte view

Slices and arrays of anything other than bytes, []interface{} values and list Items
encode as RLP lists. Negative integers, maps, structs, floats and functions are not
supported.

A single byte below 0x80 is its own encoding. Other strings are prefixed with 0x80 plus
their length when shorter than 56 bytes; longer strings use 0xB7 plus the size of the
length, followed by the length in big endian. Lists use the same scheme with the bases
0xC0 and 0xF7 and carry the concatenated encodings of their elements.

Decoding Rules
    解码规则

Decode returns an Item, a tagged union of byte strings and lists. It assigns no meaning
to the bytes. The first byte selects one of five forms:

	0x00 - 0x7F   single byte
	0x80 - 0xB7   string of 0-55 bytes
	0xB8 - 0xBF   string of 56 bytes or more
	0xC0 - 0xF7   list with a payload of 0-55 bytes
	0xF8 - 0xFF   list with a payload of 56 bytes or more

Single bytes wrapped in a string header, long-form sizes below 56, size fields with
leading zero bytes, payloads exceeding the input and list payloads that do not split
into whole elements are all rejected. DecodeStream and Split return the bytes following
the first item so concatenated values can be consumed one at a time; Decode and
DecodeBytes require the input to hold exactly one value.

Nesting depth and input size are bounded by Config. The defaults allow 1024 levels of
list nesting and 32 MiB of input.
*/
package rlp
