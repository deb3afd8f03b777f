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
	"github.com/RhettCreighton/riscv-compiler-sub000/pkg/circuit"
	"github.com/RhettCreighton/riscv-compiler-sub000/pkg/circuit/keccak"
)

// HashBits is the width of one Merkle node hash.
const HashBits = 256

// Merkle is the cryptographically authenticated tier.  Storage inside the
// circuit is nothing but a SHA3-256 Merkle root over 2^depth memory words;
// every access brings the claimed leaf word and one sibling hash per tree
// level in as fresh circuit inputs, recomputes the root bottom-up through
// the embedded hash circuit, and compares it against the stored root.  A
// read whose proof does not reconstruct the root yields zero rather than an
// error; a write additionally requires the proof to be valid, in which case
// the stored root binding is replaced by the root recomputed from the new
// leaf over the same siblings.  (Updating the root in the same access keeps
// the storage binding self-consistent; deferring it to a separate step would
// let a stale root mask every subsequent read.)
type Merkle struct {
	// input allocator for the per-access proof bits
	c *circuit.Circuit
	// number of tree levels, addressing 2^depth words
	depth uint
	// current symbolic root
	root []circuit.Wire
}

// NewMerkle constructs the authenticated tier over 2^depth words, allocating
// the initial root as 256 circuit inputs.
func NewMerkle(c *circuit.Circuit, depth uint) *Merkle {
	if depth == 0 || depth > 31 {
		panic("merkle depth out of range")
	}
	//
	root := make([]circuit.Wire, HashBits)
	//
	for i := range root {
		root[i] = c.AllocInput()
	}
	//
	return &Merkle{c, depth, root}
}

// Access implements the common memory contract.  One access costs
// 2*(depth+1) hash-circuit invocations when writing: one chain to verify the
// claimed leaf, one to fold the new leaf into the root.
func (p *Merkle) Access(b circuit.Builder, addr, dataIn []circuit.Wire, writeEnable circuit.Wire) []circuit.Wire {
	// Per-access proof material enters as fresh inputs: the claimed current
	// word, then one sibling per level, leaf upwards.
	leaf := p.allocInputs(WordBits)
	siblings := make([][]circuit.Wire, p.depth)
	//
	for l := range siblings {
		siblings[l] = p.allocInputs(HashBits)
	}
	// Verify the claimed leaf against the stored root.
	current := p.rootFrom(b, leaf, addr, siblings)
	valid := circuit.EqWord(b, current, p.root)
	// Invalid proofs read as zero.
	out := make([]circuit.Wire, WordBits)
	//
	for j := range out {
		out[j] = circuit.And(b, leaf[j], valid)
	}
	// A valid write rebinds the root to the recomputation over the new leaf.
	newRoot := p.rootFrom(b, dataIn, addr, siblings)
	doWrite := circuit.And(b, valid, writeEnable)
	p.root = circuit.MuxWord(b, doWrite, newRoot, p.root)
	//
	return out
}

// Outputs returns the final root binding.
func (p *Merkle) Outputs() []circuit.Wire {
	return p.root
}

// rootFrom recomputes the tree root implied by a leaf word, its address and
// a sibling hash per level.  Address bit l decides whether the running hash
// is the left (bit clear) or right (bit set) child at level l.
func (p *Merkle) rootFrom(b circuit.Builder, word, addr []circuit.Wire, siblings [][]circuit.Wire) []circuit.Wire {
	current := keccak.Sum256(b, leafPreimage(word))
	//
	for l, sibling := range siblings {
		var (
			bit   = addr[l]
			left  = circuit.MuxWord(b, bit, sibling, current)
			right = circuit.MuxWord(b, bit, current, sibling)
		)
		//
		current = keccak.Sum256(b, append(append([]circuit.Wire{}, left...), right...))
	}
	//
	return current
}

// leafPreimage pads a 32-bit word to the fixed 32-byte leaf preimage (word
// little-endian first, zeros after), mirroring the host-side Tree encoding.
func leafPreimage(word []circuit.Wire) []circuit.Wire {
	padded := circuit.ConstWord(0, HashBits)
	copy(padded, word)
	//
	return padded
}

func (p *Merkle) allocInputs(n uint) []circuit.Wire {
	out := make([]circuit.Wire, n)
	//
	for i := range out {
		out[i] = p.c.AllocInput()
	}
	//
	return out
}
