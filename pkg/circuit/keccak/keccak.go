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

// Package keccak provides a gate-level SHA3-256 circuit over the
// Keccak-f[1600] permutation.  It exists to let the authenticated memory
// tier verify and update Merkle proofs inside the compiled circuit; its
// output is bit-for-bit compatible with the FIPS-202 SHA3-256 function, so
// host-side roots can be computed with a conventional library.
//
// The permutation maps cheaply onto the two available gate kinds: theta and
// iota are pure XOR networks, chi is one AND and two XORs per state bit
// (NOT being XOR against the constant-true wire), and rho/pi are wire
// permutations costing no gates at all.
package keccak

import (
	"github.com/RhettCreighton/riscv-compiler-sub000/pkg/circuit"
)

const (
	// laneBits is the width of one Keccak lane.
	laneBits = 64
	// rateBytes is the SHA3-256 sponge rate.
	rateBytes = 136
	// dsByte is the FIPS-202 domain separation byte for SHA3.
	dsByte = 0x06
)

// roundConstants holds the 24 iota round constants of Keccak-f[1600].
var roundConstants = [24]uint64{
	0x0000000000000001, 0x0000000000008082, 0x800000000000808A, 0x8000000080008000,
	0x000000000000808B, 0x0000000080000001, 0x8000000080008081, 0x8000000000008009,
	0x000000000000008A, 0x0000000000000088, 0x0000000080008009, 0x000000008000000A,
	0x000000008000808B, 0x800000000000008B, 0x8000000000008089, 0x8000000000008003,
	0x8000000000008002, 0x8000000000000080, 0x000000000000800A, 0x800000008000000A,
	0x8000000080008081, 0x8000000000008080, 0x0000000080000001, 0x8000000080008008,
}

// rotations holds the rho step rotation offset of each lane, indexed x+5y.
var rotations = [25]int{
	0, 1, 62, 28, 27,
	36, 44, 6, 55, 20,
	3, 10, 43, 25, 39,
	41, 45, 15, 21, 8,
	18, 2, 61, 56, 14,
}

// Sum256 appends gates computing the SHA3-256 digest of the given message
// bits (LSB-first within each byte; the length must be a whole number of
// bytes), returning the 256 digest bits in the same convention.
func Sum256(b circuit.Builder, msg []circuit.Wire) []circuit.Wire {
	if len(msg)%8 != 0 {
		panic("message must be a whole number of bytes")
	}
	// state lanes, indexed x+5y, all-zero before absorption
	state := make([][]circuit.Wire, 25)
	//
	for i := range state {
		state[i] = circuit.ConstWord(0, laneBits)
	}
	// Multi-rate padding: at least the domain separation byte is always
	// appended, then zeros up to the rate boundary, with the top bit of the
	// final block byte set.
	padded := pad(msg)
	//
	for block := 0; block < len(padded); block += rateBytes * 8 {
		state = absorb(b, state, padded[block:block+rateBytes*8])
		state = keccakF(b, state)
	}
	// Squeeze: the first 256 state bits, lane by lane, are the digest.
	out := make([]circuit.Wire, 256)
	//
	for i := range out {
		out[i] = state[i/laneBits][i%laneBits]
	}
	//
	return out
}

// pad applies the FIPS-202 multi-rate padding with constant wires.
func pad(msg []circuit.Wire) []circuit.Wire {
	var (
		msgBytes = len(msg) / 8
		nbBlocks = msgBytes/rateBytes + 1
		padded   = make([]circuit.Wire, nbBlocks*rateBytes*8)
	)
	//
	copy(padded, msg)
	//
	for i := len(msg); i < len(padded); i++ {
		padded[i] = circuit.ConstFalse
	}
	//
	for j := range 8 {
		if dsByte>>j&1 == 1 {
			padded[len(msg)+j] = circuit.ConstTrue
		}
	}
	// Top bit of the final rate byte.
	padded[len(padded)-1] = circuit.ConstTrue
	//
	return padded
}

// absorb XORs one rate-sized block into the low lanes of the state.
func absorb(b circuit.Builder, state [][]circuit.Wire, block []circuit.Wire) [][]circuit.Wire {
	for l := range rateBytes / 8 {
		state[l] = circuit.XorWord(b, state[l], block[l*laneBits:(l+1)*laneBits])
	}
	//
	return state
}

// keccakF applies the 24-round Keccak-f[1600] permutation.
func keccakF(b circuit.Builder, a [][]circuit.Wire) [][]circuit.Wire {
	var (
		c [5][]circuit.Wire
		d [5][]circuit.Wire
	)
	//
	for round := range 24 {
		// Theta: column parities, then mix into every lane.
		for x := range 5 {
			c[x] = circuit.XorWord(b, a[x], a[x+5])
			c[x] = circuit.XorWord(b, c[x], a[x+10])
			c[x] = circuit.XorWord(b, c[x], a[x+15])
			c[x] = circuit.XorWord(b, c[x], a[x+20])
		}
		//
		for x := range 5 {
			d[x] = circuit.XorWord(b, c[(x+4)%5], rotate(c[(x+1)%5], 1))
		}
		//
		for x := range 5 {
			for y := range 5 {
				a[x+5*y] = circuit.XorWord(b, a[x+5*y], d[x])
			}
		}
		// Rho and pi: pure wire rotations and lane permutation.
		var bb [25][]circuit.Wire
		//
		for x := range 5 {
			for y := range 5 {
				bb[y+5*((2*x+3*y)%5)] = rotate(a[x+5*y], rotations[x+5*y])
			}
		}
		// Chi: a ^= ^b & c along each row.
		for x := range 5 {
			for y := range 5 {
				var (
					b1 = bb[(x+1)%5+5*y]
					b2 = bb[(x+2)%5+5*y]
				)
				//
				a[x+5*y] = circuit.XorWord(b, bb[x+5*y],
					circuit.AndWord(b, circuit.NotWord(b, b1), b2))
			}
		}
		// Iota: fold the round constant into lane (0,0).
		for j := range laneBits {
			if roundConstants[round]>>j&1 == 1 {
				a[0][j] = circuit.Not(b, a[0][j])
			}
		}
	}
	//
	return a
}

// rotate performs a zero-cost left rotation of a lane: bit i of the result
// is bit (i-k) mod 64 of the input.
func rotate(lane []circuit.Wire, k int) []circuit.Wire {
	out := make([]circuit.Wire, len(lane))
	//
	for i := range out {
		out[i] = lane[(i-k+len(lane))%len(lane)]
	}
	//
	return out
}
