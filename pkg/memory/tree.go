// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package memory

import (
	"encoding/binary"

	"golang.org/x/crypto/sha3"
)

// Tree is the host-side counterpart of the Merkle tier: a concrete SHA3-256
// Merkle tree over memory words, used by proof harnesses (and tests) to
// produce the root and sibling paths the circuit expects as inputs.  The
// leaf preimage is the 32-bit word little-endian padded to 32 bytes, and an
// inner node is the hash of the concatenation of its children, matching the
// in-circuit construction bit for bit.
type Tree struct {
	depth uint
	// levels[0] holds the leaf hashes; levels[depth] holds the root alone
	levels [][][32]byte
}

// NewTree builds a tree of the given depth over an initial memory image
// (missing words are zero).
func NewTree(depth uint, image map[uint32]uint32) *Tree {
	p := &Tree{depth: depth}
	//
	leaves := make([][32]byte, 1<<depth)
	//
	for i := range leaves {
		leaves[i] = leafHash(image[uint32(i)])
	}
	//
	p.levels = append(p.levels, leaves)
	//
	for l := uint(0); l < depth; l++ {
		var (
			below = p.levels[l]
			level = make([][32]byte, len(below)/2)
		)
		//
		for i := range level {
			level[i] = nodeHash(below[2*i], below[2*i+1])
		}
		//
		p.levels = append(p.levels, level)
	}
	//
	return p
}

// Root returns the current root hash.
func (p *Tree) Root() [32]byte {
	return p.levels[p.depth][0]
}

// Proof returns the sibling hash per level for the given address, leaf
// upwards.
func (p *Tree) Proof(addr uint32) [][32]byte {
	proof := make([][32]byte, p.depth)
	//
	for l := range proof {
		proof[l] = p.levels[l][(addr>>l)^1]
	}
	//
	return proof
}

// Update writes a word at the given address and rehashes the affected path.
func (p *Tree) Update(addr uint32, value uint32) {
	p.levels[0][addr] = leafHash(value)
	//
	for l := uint(0); l < p.depth; l++ {
		i := addr >> (l + 1)
		p.levels[l+1][i] = nodeHash(p.levels[l][2*i], p.levels[l][2*i+1])
	}
}

func leafHash(word uint32) [32]byte {
	var preimage [32]byte
	//
	binary.LittleEndian.PutUint32(preimage[:4], word)
	//
	return sha3.Sum256(preimage[:])
}

func nodeHash(left, right [32]byte) [32]byte {
	var preimage [64]byte
	//
	copy(preimage[:32], left[:])
	copy(preimage[32:], right[:])
	//
	return sha3.Sum256(preimage[:])
}
