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

// LtUnsigned is asserted iff x < y unsigned, i.e. the subtraction x - y
// borrows.
func LtUnsigned(b circuit.Builder, add Adder, x, y []circuit.Wire) circuit.Wire {
	_, noBorrow := Sub(b, add, x, y)
	//
	return circuit.Not(b, noBorrow)
}

// LtSigned is asserted iff x < y as two's-complement values: the sign of the
// difference, corrected for overflow of the subtraction.
func LtSigned(b circuit.Builder, add Adder, x, y []circuit.Wire) circuit.Wire {
	assertSameWidth(x, y)
	//
	var (
		w       = len(x)
		diff, _ = Sub(b, add, x, y)
		// overflow of x - y: operand signs differ and the result sign
		// disagrees with x
		ovf = circuit.And(b,
			circuit.Xor(b, x[w-1], y[w-1]),
			circuit.Xor(b, diff[w-1], x[w-1]))
	)
	//
	return circuit.Xor(b, diff[w-1], ovf)
}

// ZeroExtend widens x to n bits with constant-zero wires, at zero gate cost.
func ZeroExtend(x []circuit.Wire, n uint) []circuit.Wire {
	out := make([]circuit.Wire, n)
	copy(out, x)
	//
	for i := uint(len(x)); i < n; i++ {
		out[i] = circuit.ConstFalse
	}
	//
	return out
}

// SignExtend widens x to n bits by replicating its top wire, at zero gate
// cost.
func SignExtend(x []circuit.Wire, n uint) []circuit.Wire {
	out := make([]circuit.Wire, n)
	copy(out, x)
	//
	for i := uint(len(x)); i < n; i++ {
		out[i] = x[len(x)-1]
	}
	//
	return out
}
