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

// Barrel shifters: one mux row per shift-amount bit, each stage shifting by
// a doubling power of two.  A w-bit shift therefore costs log2(w) mux rows
// regardless of the (symbolic) shift amount.

// ShiftLeft shifts x left by the amount encoded in shamt (LSB first),
// filling with zeros.  shamt must hold exactly log2(len(x)) bits.
func ShiftLeft(b circuit.Builder, x, shamt []circuit.Wire) []circuit.Wire {
	assertShiftWidth(x, shamt)
	//
	out := x
	//
	for s, sel := range shamt {
		var (
			dist    = 1 << s
			shifted = make([]circuit.Wire, len(x))
		)
		//
		for i := range shifted {
			if i < dist {
				shifted[i] = circuit.ConstFalse
			} else {
				shifted[i] = out[i-dist]
			}
		}
		//
		out = circuit.MuxWord(b, sel, shifted, out)
	}
	//
	return out
}

// ShiftRightLogical shifts x right, filling with zeros.
func ShiftRightLogical(b circuit.Builder, x, shamt []circuit.Wire) []circuit.Wire {
	return shiftRight(b, x, shamt, circuit.ConstFalse)
}

// ShiftRightArith shifts x right, filling with the sign bit.
func ShiftRightArith(b circuit.Builder, x, shamt []circuit.Wire) []circuit.Wire {
	return shiftRight(b, x, shamt, x[len(x)-1])
}

// shiftRight fills vacated high positions with the given bit.  Filling every
// stage with the original sign is correct for the arithmetic case because
// each intermediate result preserves that sign in its top position.
func shiftRight(b circuit.Builder, x, shamt []circuit.Wire, fill circuit.Wire) []circuit.Wire {
	assertShiftWidth(x, shamt)
	//
	out := x
	//
	for s, sel := range shamt {
		var (
			dist    = 1 << s
			shifted = make([]circuit.Wire, len(x))
		)
		//
		for i := range shifted {
			if i+dist < len(x) {
				shifted[i] = out[i+dist]
			} else {
				shifted[i] = fill
			}
		}
		//
		out = circuit.MuxWord(b, sel, shifted, out)
	}
	//
	return out
}

func assertShiftWidth(x, shamt []circuit.Wire) {
	if 1<<len(shamt) != len(x) {
		panic("shift amount width does not match operand width")
	}
}
