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

// Package arith provides the optimized arithmetic circuit generators: ripple
// and parallel-prefix adders, a Booth/Wallace multiplier, a restoring
// divider, barrel shifters and comparators.  Every generator is a pure
// function over wire arrays which appends gates through a circuit.Builder;
// none holds shared state.  Generators are width-agnostic and never truncate
// implicitly, so callers slice results to the width they need.
package arith

import (
	"github.com/RhettCreighton/riscv-compiler-sub000/pkg/circuit"
)

// Adder is the common shape of all addition generators: sum two equal-width
// words with a carry-in, returning the sum and the carry-out.
type Adder func(b circuit.Builder, x, y []circuit.Wire, cin circuit.Wire) ([]circuit.Wire, circuit.Wire)

// RippleAdd chains one full adder per bit.  Depth is O(n) but the circuit is
// small, so it is used where depth is not the bottleneck.
func RippleAdd(b circuit.Builder, x, y []circuit.Wire, cin circuit.Wire) ([]circuit.Wire, circuit.Wire) {
	assertSameWidth(x, y)
	//
	var (
		sum   = make([]circuit.Wire, len(x))
		carry = cin
	)
	//
	for i := range x {
		sum[i], carry = fullAdder(b, x[i], y[i], carry)
	}
	//
	return sum, carry
}

// fullAdder sums three bits into a sum and carry bit.  The carry is the
// majority function, built as (x&y) ^ (c & (x^y)) which is valid because the
// two conjuncts are never simultaneously true.
func fullAdder(b circuit.Builder, x, y, c circuit.Wire) (circuit.Wire, circuit.Wire) {
	xy := circuit.Xor(b, x, y)
	sum := circuit.Xor(b, xy, c)
	carry := circuit.Xor(b, circuit.And(b, x, y), circuit.And(b, c, xy))
	//
	return sum, carry
}

// KoggeStoneAdd is the full parallel-prefix adder: per-bit propagate/generate
// pairs (p,g) = (x^y, x&y) are combined across doubling strides with the
// associative operator
//
//	(p,g) o (p',g') = (p & p', g | (p & g'))
//
// yielding every carry in O(log n) depth.  OR is synthesized from AND/XOR.
// Sum bit i is p[i] ^ G[i-1] where G is the fully reduced generate signal,
// and the carry-out is G[n-1].
func KoggeStoneAdd(b circuit.Builder, x, y []circuit.Wire, cin circuit.Wire) ([]circuit.Wire, circuit.Wire) {
	assertSameWidth(x, y)
	//
	var (
		n = len(x)
		p = make([]circuit.Wire, n)
		g = make([]circuit.Wire, n)
		// p0 preserves the unreduced propagate bits for the sum step
		p0 = make([]circuit.Wire, n)
	)
	//
	for i := range x {
		p0[i] = circuit.Xor(b, x[i], y[i])
		g[i] = circuit.And(b, x[i], y[i])
		p[i] = p0[i]
	}
	// Fold the carry-in into position zero, so the prefix tree accounts for
	// it without a dedicated increment stage.
	g[0] = circuit.Or(b, g[0], circuit.And(b, p[0], cin))
	// Prefix reduction.  Iterating downwards within a stride means every
	// read of index i-stride still observes the previous stride's value.
	for stride := 1; stride < n; stride *= 2 {
		for i := n - 1; i >= stride; i-- {
			g[i] = circuit.Or(b, g[i], circuit.And(b, p[i], g[i-stride]))
			p[i] = circuit.And(b, p[i], p[i-stride])
		}
	}
	//
	sum := make([]circuit.Wire, n)
	sum[0] = circuit.Xor(b, p0[0], cin)
	//
	for i := 1; i < n; i++ {
		sum[i] = circuit.Xor(b, p0[i], g[i-1])
	}
	//
	return sum, g[n-1]
}

// sparseBlockSize is the block width of the sparse prefix adder.  Four is the
// sweet spot: the in-block prefix is shallow while the inter-block ripple
// stays short.
const sparseBlockSize = 4

// SparseKoggeStoneAdd partitions the operands into four-bit blocks, computes
// the full propagate/generate prefix within each block, and ripples carries
// across block boundaries.  This trades a little depth against the full
// parallel-prefix tree for a material reduction in gate count.
func SparseKoggeStoneAdd(b circuit.Builder, x, y []circuit.Wire, cin circuit.Wire) ([]circuit.Wire, circuit.Wire) {
	assertSameWidth(x, y)
	//
	var (
		n     = len(x)
		sum   = make([]circuit.Wire, n)
		carry = cin
	)
	//
	for start := 0; start < n; start += sparseBlockSize {
		end := min(start+sparseBlockSize, n)
		blockSum, blockCarry := sparseBlock(b, x[start:end], y[start:end], carry)
		copy(sum[start:end], blockSum)
		carry = blockCarry
	}
	//
	return sum, carry
}

// sparseBlock finishes one block locally: a full (p,g) prefix within the
// block combined with the incoming block carry.
func sparseBlock(b circuit.Builder, x, y []circuit.Wire, cin circuit.Wire) ([]circuit.Wire, circuit.Wire) {
	var (
		n = len(x)
		p = make([]circuit.Wire, n)
		g = make([]circuit.Wire, n)
		// gpfx[i] generates a carry out of bits [0..i] ignoring cin
		gpfx = make([]circuit.Wire, n)
		// ppfx[i] propagates cin across bits [0..i]
		ppfx  = make([]circuit.Wire, n)
		sum   = make([]circuit.Wire, n)
		carry = cin
	)
	//
	for i := range x {
		p[i] = circuit.Xor(b, x[i], y[i])
		g[i] = circuit.And(b, x[i], y[i])
	}
	//
	gpfx[0] = g[0]
	ppfx[0] = p[0]
	//
	for i := 1; i < n; i++ {
		gpfx[i] = circuit.Or(b, g[i], circuit.And(b, p[i], gpfx[i-1]))
		ppfx[i] = circuit.And(b, p[i], ppfx[i-1])
	}
	//
	sum[0] = circuit.Xor(b, p[0], cin)
	//
	for i := 1; i < n; i++ {
		ci := circuit.Or(b, gpfx[i-1], circuit.And(b, ppfx[i-1], cin))
		sum[i] = circuit.Xor(b, p[i], ci)
	}
	//
	carry = circuit.Or(b, gpfx[n-1], circuit.And(b, ppfx[n-1], cin))
	//
	return sum, carry
}

// Sub computes x - y as x + ^y + 1, returning the difference and the adder's
// carry-out.  The carry-out is the negation of the borrow: it is asserted
// exactly when x >= y unsigned.
func Sub(b circuit.Builder, add Adder, x, y []circuit.Wire) ([]circuit.Wire, circuit.Wire) {
	return add(b, x, circuit.NotWord(b, y), circuit.ConstTrue)
}

func assertSameWidth(x, y []circuit.Wire) {
	if len(x) != len(y) {
		panic("adder operands differ in width")
	} else if len(x) == 0 {
		panic("adder operands are empty")
	}
}
