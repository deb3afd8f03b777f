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
package compiler

import (
	"fmt"

	"github.com/RhettCreighton/riscv-compiler-sub000/pkg/circuit"
	"github.com/RhettCreighton/riscv-compiler-sub000/pkg/circuit/arith"
	"github.com/RhettCreighton/riscv-compiler-sub000/pkg/riscv"
)

// buildData emits the gates computing the destination value of one pure
// dataflow instruction (arithmetic, logic, shifts, comparisons, multiply,
// divide and LUI) from the given register bindings.  It is a pure function
// of the bindings and the builder, reading neither PC nor memory, which is
// what allows parallel workers to run it against a shared binding snapshot.
func buildData(b circuit.Builder, add arith.Adder, regs *[32]Word, insn riscv.Instruction) (Word, error) {
	var (
		x   = regs[insn.Rs1].Bits()
		y   = regs[insn.Rs2].Bits()
		imm = circuit.ConstWord(uint64(uint32(insn.Imm)), 32)
	)
	//
	switch insn.Op {
	case riscv.ADD:
		sum, _ := add(b, x, y, circuit.ConstFalse)
		return wordOf(sum), nil
	case riscv.SUB:
		diff, _ := arith.Sub(b, add, x, y)
		return wordOf(diff), nil
	case riscv.SLL:
		return wordOf(arith.ShiftLeft(b, x, y[:5])), nil
	case riscv.SLT:
		return bitWord(arith.LtSigned(b, add, x, y)), nil
	case riscv.SLTU:
		return bitWord(arith.LtUnsigned(b, add, x, y)), nil
	case riscv.XOR:
		return wordOf(circuit.XorWord(b, x, y)), nil
	case riscv.SRL:
		return wordOf(arith.ShiftRightLogical(b, x, y[:5])), nil
	case riscv.SRA:
		return wordOf(arith.ShiftRightArith(b, x, y[:5])), nil
	case riscv.OR:
		return wordOf(circuit.OrWord(b, x, y)), nil
	case riscv.AND:
		return wordOf(circuit.AndWord(b, x, y)), nil
	case riscv.ADDI:
		sum, _ := add(b, x, imm, circuit.ConstFalse)
		return wordOf(sum), nil
	case riscv.SLTI:
		return bitWord(arith.LtSigned(b, add, x, imm)), nil
	case riscv.SLTIU:
		return bitWord(arith.LtUnsigned(b, add, x, imm)), nil
	case riscv.XORI:
		return wordOf(circuit.XorWord(b, x, imm)), nil
	case riscv.ORI:
		return wordOf(circuit.OrWord(b, x, imm)), nil
	case riscv.ANDI:
		return wordOf(circuit.AndWord(b, x, imm)), nil
	case riscv.SLLI:
		return wordOf(arith.ShiftLeft(b, x, imm[:5])), nil
	case riscv.SRLI:
		return wordOf(arith.ShiftRightLogical(b, x, imm[:5])), nil
	case riscv.SRAI:
		return wordOf(arith.ShiftRightArith(b, x, imm[:5])), nil
	case riscv.LUI:
		// the immediate is already shifted; no gates at all
		return wordOf(imm), nil
	case riscv.MUL, riscv.MULH, riscv.MULHSU, riscv.MULHU:
		return buildMul(b, x, y, insn.Op), nil
	case riscv.DIV, riscv.REM:
		quot, rem := arith.DivRemSigned(b, x, y)
		//
		if insn.Op == riscv.DIV {
			return wordOf(quot), nil
		}
		//
		return wordOf(rem), nil
	case riscv.DIVU, riscv.REMU:
		quot, rem := arith.DivRemUnsigned(b, x, y)
		//
		if insn.Op == riscv.DIVU {
			return wordOf(quot), nil
		}
		//
		return wordOf(rem), nil
	}
	//
	return Word{}, fmt.Errorf("%w: %s is not a dataflow instruction", riscv.ErrUnsupported, insn)
}

// buildMul expresses all four multiply variants through one signed 33-bit
// Booth multiplication: each operand is extended one bit (by sign or zero,
// per the variant's signedness) so that the signed product over 33 bits
// agrees with the variant's 64-bit product on the bits each variant keeps.
func buildMul(b circuit.Builder, x, y []circuit.Wire, op riscv.Opcode) Word {
	var xe, ye []circuit.Wire
	//
	switch op {
	case riscv.MULHU:
		xe, ye = arith.ZeroExtend(x, 33), arith.ZeroExtend(y, 33)
	case riscv.MULHSU:
		xe, ye = arith.SignExtend(x, 33), arith.ZeroExtend(y, 33)
	default:
		xe, ye = arith.SignExtend(x, 33), arith.SignExtend(y, 33)
	}
	//
	prod := arith.BoothMul(b, xe, ye)
	//
	if op == riscv.MUL {
		return wordOf(prod[:32])
	}
	//
	return wordOf(prod[32:64])
}
