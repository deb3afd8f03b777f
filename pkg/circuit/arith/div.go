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

// DivRemUnsigned divides num by den (both unsigned), returning quotient and
// remainder with the RISC-V edge semantics built into the circuit rather than
// raised as errors: division by zero yields an all-ones quotient and the
// dividend as remainder.
func DivRemUnsigned(b circuit.Builder, num, den []circuit.Wire) ([]circuit.Wire, []circuit.Wire) {
	assertSameWidth(num, den)
	//
	var (
		w        = uint(len(num))
		quot, rem = restoringDivide(b, num, den)
		denZero  = circuit.IsZero(b, den)
		allOnes  = circuit.ConstWord(^uint64(0), w)
	)
	//
	quot = circuit.MuxWord(b, denZero, allOnes, quot)
	rem = circuit.MuxWord(b, denZero, num, rem)
	//
	return quot, rem
}

// DivRemSigned divides num by den (both two's complement), returning quotient
// and remainder.  The remainder takes the sign of the dividend.  RISC-V edge
// semantics are built in: division by zero yields quotient all-ones and
// remainder num, while the overflow case (most negative value divided by -1)
// wraps to the most negative value with zero remainder.  The absolute-value
// datapath produces the wrap naturally, since the operand signs agree and no
// final negation fires.
func DivRemSigned(b circuit.Builder, num, den []circuit.Wire) ([]circuit.Wire, []circuit.Wire) {
	assertSameWidth(num, den)
	//
	var (
		w       = uint(len(num))
		signNum = num[w-1]
		signDen = den[w-1]
		absNum  = negateIf(b, num, signNum)
		absDen  = negateIf(b, den, signDen)
	)
	//
	quotU, remU := restoringDivide(b, absNum, absDen)
	// Quotient is negative iff operand signs differ; remainder follows the
	// dividend.
	quot := negateIf(b, quotU, circuit.Xor(b, signNum, signDen))
	rem := negateIf(b, remU, signNum)
	//
	denZero := circuit.IsZero(b, den)
	quot = circuit.MuxWord(b, denZero, circuit.ConstWord(^uint64(0), w), quot)
	rem = circuit.MuxWord(b, denZero, num, rem)
	//
	return quot, rem
}

// restoringDivide is the shared unsigned core: a w-step restoring division.
// Each step shifts the next dividend bit into the partial remainder,
// tentatively subtracts the divisor at one extra bit of width, and keeps the
// difference when no borrow occurred.  The quotient bit is exactly the
// no-borrow signal.  A zero divisor yields an all-ones quotient here (every
// subtraction "succeeds"), which the public wrappers fold into the
// architected edge semantics.
func restoringDivide(b circuit.Builder, num, den []circuit.Wire) ([]circuit.Wire, []circuit.Wire) {
	var (
		w    = len(num)
		quot = make([]circuit.Wire, w)
		rem  = circuit.ConstWord(0, uint(w))
		// divisor zero-extended one bit, matching the shifted remainder
		denExt = append(append([]circuit.Wire{}, den...), circuit.ConstFalse)
	)
	//
	for i := w - 1; i >= 0; i-- {
		// shifted = (rem << 1) | num[i], at w+1 bits
		shifted := make([]circuit.Wire, w+1)
		shifted[0] = num[i]
		copy(shifted[1:], rem)
		//
		diff, noBorrow := Sub(b, SparseKoggeStoneAdd, shifted, denExt)
		quot[i] = noBorrow
		rem = circuit.MuxWord(b, noBorrow, diff[:w], shifted[:w])
	}
	//
	return quot, rem
}

// negateIf conditionally two's-complements a word: each bit is XORed with the
// condition and the condition is added back in as the carry.
func negateIf(b circuit.Builder, x []circuit.Wire, cond circuit.Wire) []circuit.Wire {
	var (
		flipped = make([]circuit.Wire, len(x))
		zero    = circuit.ConstWord(0, uint(len(x)))
	)
	//
	for i := range x {
		flipped[i] = circuit.Xor(b, x[i], cond)
	}
	//
	sum, _ := SparseKoggeStoneAdd(b, flipped, zero, cond)
	//
	return sum
}
