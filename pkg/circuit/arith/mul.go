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
package arith

import (
	"github.com/RhettCreighton/riscv-compiler-sub000/pkg/circuit"
)

// BoothMul multiplies two w-bit two's-complement words into a 2w-bit product
// using radix-4 Booth recoding and a Wallace tree.
//
// The multiplier y is examined through overlapping three-bit windows at
// positions (2i-1, 2i, 2i+1), each selecting one of {0, +-M, +-2M} as a
// partial product.  Negation is one's complement plus a deferred +1
// correction bit at the window position; doubling is a one-position wire
// shift at zero gate cost.  This halves the number of partial products
// relative to shift-and-add.  Each row is only w+2 bits wide: its sign
// extension to the product width is rewritten as the inverted sign bit in
// the next column plus a precomputed pattern of constant ones, which the
// column sum absorbs at a fraction of the cost of materializing the
// extension.  The rows are reduced column-wise with 3:2 compressors until
// at most two bits remain per column, which are summed with one sparse
// parallel-prefix adder.
//
// Both operands are interpreted as signed.  Callers express the unsigned and
// mixed-signedness RV32M variants by extending operands one bit (zero or
// sign) before calling, and slicing the half of the product they need.
func BoothMul(b circuit.Builder, x, y []circuit.Wire) []circuit.Wire {
	assertSameWidth(x, y)
	//
	var (
		w    = len(x)
		outW = 2 * w
		// sign-extended multiplier bit accessor, with y[-1] = 0
		ybit = func(i int) circuit.Wire {
			if i < 0 {
				return circuit.ConstFalse
			} else if i >= w {
				return y[w-1]
			}
			//
			return y[i]
		}
		// sign-extended multiplicand bit accessor
		xbit = func(i int) circuit.Wire {
			if i < 0 {
				return circuit.ConstFalse
			} else if i >= w {
				return x[w-1]
			}
			//
			return x[i]
		}
		// one bucket of addend bits per output column
		columns = make([][]circuit.Wire, outW)
		// per-column count of constant ones owed by the sign rewrites
		constOnes = make([]uint, outW)
		// windows needed to cover all multiplier bits
		nbWindows = (w + 1) / 2
		// dx[u] = xbit(u) ^ xbit(u-1), shared by every row's doubling select
		dx = make([]circuit.Wire, w+2)
	)
	//
	for u := range dx {
		dx[u] = circuit.Xor(b, xbit(u), xbit(u-1))
	}
	//
	for j := 0; j < nbWindows; j++ {
		var (
			b0 = ybit(2*j - 1)
			b1 = ybit(2 * j)
			b2 = ybit(2*j + 1)
			// digit is +-1
			one = circuit.Xor(b, b0, b1)
			// digit is +-2
			two = circuit.And(b, circuit.Not(b, one), circuit.Xor(b, b2, b1))
			// digit is nonzero
			nz = circuit.Xor(b, one, two)
			// digit is negative
			neg = b2
			// shared value of the two sign columns u = w, w+1
			top      circuit.Wire
			topKnown bool
		)
		// Row bits occupy columns [2j, 2j+w+2).  The magnitude select picks
		// x, 2x or zero through the shared doubling deltas and is
		// conditionally complemented by neg; the deferred +1 lands in column
		// 2j as a separate addend.
		for u := 0; u <= w+1; u++ {
			t := 2*j + u
			//
			if t >= outW {
				break
			}
			//
			var p circuit.Wire
			//
			switch {
			case u == 0:
				// a doubled row has no bit here
				p = circuit.Xor(b, circuit.And(b, x[0], one), neg)
			case u >= w:
				// both sign columns carry the same bit
				if !topKnown {
					top = circuit.Xor(b, circuit.And(b, x[w-1], nz), neg)
					topKnown = true
				}
				//
				p = top
			default:
				m := circuit.Xor(b, xbit(u), circuit.And(b, two, dx[u]))
				p = circuit.Xor(b, circuit.And(b, m, nz), neg)
			}
			//
			columns[t] = append(columns[t], p)
		}
		//
		columns[2*j] = append(columns[2*j], neg)
		// Sign extension rewrite: extending sign s from column e-1 upwards
		// equals placing !s at column e and adding ones from e upwards, since
		// -s = !s - 1 for a single bit.
		if e := 2*j + w + 2; e < outW {
			columns[e] = append(columns[e], circuit.Not(b, top))
			//
			for t := e; t < outW; t++ {
				constOnes[t]++
			}
		}
	}
	// Collapse the owed constant ones into at most one constant bit per
	// column.
	carry := uint(0)
	//
	for t := 0; t < outW; t++ {
		v := constOnes[t] + carry
		//
		if v%2 == 1 {
			columns[t] = append(columns[t], circuit.ConstTrue)
		}
		//
		carry = v / 2
	}
	//
	return sumColumns(b, columns)
}

// NaiveMul is the shift-and-add baseline multiplier over unsigned operands,
// kept as the yardstick the Booth generator is measured against.  It emits
// the textbook construction directly: one masked row plus one full-width
// ripple addition per multiplier bit.  Gates are appended through AddGate
// rather than the folding helpers, so the measurement reflects the
// shift-and-add construction itself and not the builder's strength
// reduction of its many constant operands.
func NaiveMul(b circuit.Builder, x, y []circuit.Wire) []circuit.Wire {
	assertSameWidth(x, y)
	//
	var (
		w   = len(x)
		acc = circuit.ConstWord(0, uint(2*w))
	)
	//
	for i := range w {
		carry := circuit.ConstFalse
		//
		for t := 0; t < 2*w; t++ {
			// addend bit = x[t-i] & y[i] inside the shifted row, else zero
			at := circuit.ConstFalse
			//
			if t >= i && t-i < w {
				at = b.AddGate(circuit.OpAnd, x[t-i], y[i])
			}
			// full adder: sum and majority carry
			xa := b.AddGate(circuit.OpXor, acc[t], at)
			sum := b.AddGate(circuit.OpXor, xa, carry)
			ga := b.AddGate(circuit.OpAnd, acc[t], at)
			gc := b.AddGate(circuit.OpAnd, carry, xa)
			carry = b.AddGate(circuit.OpXor, ga, gc)
			acc[t] = sum
		}
	}
	//
	return acc
}

// sumColumns reduces a set of per-column addend bits with a Wallace tree of
// 3:2 compressors (full adders) until no column holds more than two bits,
// then sums the surviving two rows with a sparse parallel-prefix adder.
// The result has exactly one bit per column; carries beyond the last column
// are discarded (callers work at full product width, so nothing of value is
// lost).
func sumColumns(b circuit.Builder, columns [][]circuit.Wire) []circuit.Wire {
	n := len(columns)
	//
	for maxColumnHeight(columns) > 2 {
		next := make([][]circuit.Wire, n)
		//
		for t, col := range columns {
			// Compress triples; up to two leftovers pass through.
			for len(col) >= 3 {
				sum, carry := fullAdder(b, col[0], col[1], col[2])
				col = col[3:]
				next[t] = append(next[t], sum)
				//
				if t+1 < n {
					next[t+1] = append(next[t+1], carry)
				}
			}
			//
			next[t] = append(next[t], col...)
		}
		//
		columns = next
	}
	// Assemble the final two rows.
	var (
		rowA = make([]circuit.Wire, n)
		rowB = make([]circuit.Wire, n)
	)
	//
	for t, col := range columns {
		rowA[t] = circuit.ConstFalse
		rowB[t] = circuit.ConstFalse
		//
		if len(col) > 0 {
			rowA[t] = col[0]
		}
		//
		if len(col) > 1 {
			rowB[t] = col[1]
		}
	}
	//
	sum, _ := SparseKoggeStoneAdd(b, rowA, rowB, circuit.ConstFalse)
	//
	return sum
}

func maxColumnHeight(columns [][]circuit.Wire) int {
	h := 0
	//
	for _, col := range columns {
		h = max(h, len(col))
	}
	//
	return h
}
