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

// Package rlphash computes Keccak-256 digests of RLP encodings.
package rlphash

import (
	"encoding/hex"
	"hash"
	"sync"

	"github.com/PigCharid/rlpkit/rlp"
	"golang.org/x/crypto/sha3"
)

// HashLength is the size of a digest in bytes.
const HashLength = 32

// Hex returns the 0x-prefixed hex form of a digest.
func Hex(h [HashLength]byte) string { return "0x" + hex.EncodeToString(h[:]) }

// KeccakState wraps sha3.state. In addition to the usual hash methods, it also supports
// Read to get a variable amount of data from the hash state. Read is faster than Sum
// because it doesn't copy the internal state, but also modifies the internal state.
type KeccakState interface {
	hash.Hash
	Read([]byte) (int, error)
}

// hasher is a type used for the Hash operation. A hasher has some
// internal preallocated temp space.
type hasher struct {
	sha KeccakState
	tmp []byte
}

// hasherPool holds hashers
var hasherPool = sync.Pool{
	New: func() interface{} {
		return &hasher{
			tmp: make([]byte, 0, 550), // encoding buffer, reused across Hash calls
			sha: sha3.NewLegacyKeccak256().(KeccakState),
		}
	},
}

func newHasher() *hasher {
	return hasherPool.Get().(*hasher)
}

func returnHasherToPool(h *hasher) {
	hasherPool.Put(h)
}

// hashData hashes the provided data
func (h *hasher) hashData(data []byte) (n [HashLength]byte) {
	h.sha.Reset()
	h.sha.Write(data)
	h.sha.Read(n[:])
	return n
}

// Hash encodes v and returns the Keccak-256 digest of the encoding.
//
// 先RLP编码再计算Keccak256哈希
func Hash(v interface{}) ([HashLength]byte, error) {
	h := newHasher()
	defer returnHasherToPool(h)

	enc, err := rlp.AppendEncoded(h.tmp[:0], v)
	if err != nil {
		return [HashLength]byte{}, err
	}
	h.tmp = enc
	return h.hashData(enc), nil
}

// HashBytes returns the Keccak-256 digest of enc, which must be a single
// canonical RLP value.
func HashBytes(enc []byte) ([HashLength]byte, error) {
	if _, err := rlp.DecodeBytes(enc); err != nil {
		return [HashLength]byte{}, err
	}
	h := newHasher()
	defer returnHasherToPool(h)
	return h.hashData(enc), nil
}
