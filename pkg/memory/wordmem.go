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
)

// wordMemory is the shared construction behind the ultra-simple and simple
// tiers: every word is held inline as a 32-wire binding, reads are a
// multiplexer tree over the low address bits, and writes run a full address
// decoder whose outputs gate a per-word multiplexer update.  Gate cost is
// linear in the word count per access, which is why the tier boundary
// between eight and 256 words is roughly four orders of magnitude of gates
// rather than a smooth curve.
type wordMemory struct {
	// low address bits decoded by this tier
	addrBits uint
	// current symbolic value of each word
	words [][]circuit.Wire
}

// NewUltraSimple constructs the eight-word tier: a 8-to-1 multiplexer read
// and a 3-to-8 decoder write, no authentication.  The initial word values
// are allocated as circuit inputs.
func NewUltraSimple(c *circuit.Circuit) Memory {
	return newWordMemory(c, 3)
}

// NewSimple constructs the 256-word tier: the ultra-simple construction
// scaled to eight address bits.
func NewSimple(c *circuit.Circuit) Memory {
	return newWordMemory(c, 8)
}

func newWordMemory(c *circuit.Circuit, addrBits uint) Memory {
	words := make([][]circuit.Wire, 1<<addrBits)
	//
	for i := range words {
		word := make([]circuit.Wire, WordBits)
		//
		for j := range word {
			word[j] = c.AllocInput()
		}
		//
		words[i] = word
	}
	//
	return &wordMemory{addrBits, words}
}

// Access implements the common memory contract.  The tier's validity
// condition is that the high address bits are all zero; an out-of-range read
// is masked to zero and an out-of-range write is discarded.
func (p *wordMemory) Access(b circuit.Builder, addr, dataIn []circuit.Wire, writeEnable circuit.Wire) []circuit.Wire {
	var (
		low     = addr[:p.addrBits]
		inRange = circuit.IsZero(b, addr[p.addrBits:])
		// read: multiplexer tree over the low address bits
		word = muxTree(b, low, p.words)
		out  = make([]circuit.Wire, WordBits)
	)
	//
	for j := range out {
		out[j] = circuit.And(b, word[j], inRange)
	}
	// write: decode the address and update each selected word
	doWrite := circuit.And(b, writeEnable, inRange)
	//
	for i := range p.words {
		sel := circuit.And(b, decodeLine(b, low, uint(i)), doWrite)
		p.words[i] = circuit.MuxWord(b, sel, dataIn, p.words[i])
	}
	//
	return out
}

// Outputs returns every word's final binding, in address order.
func (p *wordMemory) Outputs() []circuit.Wire {
	var out []circuit.Wire
	//
	for _, word := range p.words {
		out = append(out, word...)
	}
	//
	return out
}

// muxTree selects words[addr] by recursively halving on the top remaining
// address bit.
func muxTree(b circuit.Builder, addr []circuit.Wire, words [][]circuit.Wire) []circuit.Wire {
	if len(words) == 1 {
		return words[0]
	}
	//
	var (
		top  = addr[len(addr)-1]
		half = len(words) / 2
		lo   = muxTree(b, addr[:len(addr)-1], words[:half])
		hi   = muxTree(b, addr[:len(addr)-1], words[half:])
	)
	//
	return circuit.MuxWord(b, top, hi, lo)
}

// decodeLine computes the decoder minterm asserting that the low address
// bits equal the given word index.
func decodeLine(b circuit.Builder, addr []circuit.Wire, index uint) circuit.Wire {
	line := circuit.ConstTrue
	//
	for j, bit := range addr {
		if index>>j&1 == 1 {
			line = circuit.And(b, line, bit)
		} else {
			line = circuit.And(b, line, circuit.Not(b, bit))
		}
	}
	//
	return line
}
