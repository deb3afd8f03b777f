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
	"github.com/RhettCreighton/riscv-compiler-sub000/pkg/circuit"
	"github.com/RhettCreighton/riscv-compiler-sub000/pkg/circuit/arith"
	"github.com/RhettCreighton/riscv-compiler-sub000/pkg/riscv"
)

// Control transfer never survives into the circuit: a conditional branch
// rebinds the PC to a mux over the taken and fall-through targets, and a
// jump rebinds it unconditionally.  Register dataflow is untouched except
// for the link register of jumps.

func (p *State) compileAuipc(insn riscv.Instruction) {
	sum, _ := p.add(p.b, p.pc.Bits(), circuit.ConstWord(uint64(uint32(insn.Imm)), 32), circuit.ConstFalse)
	p.setReg(insn.Rd, wordOf(sum))
	p.advancePC(1)
}

func (p *State) compileJump(insn riscv.Instruction) {
	var target []circuit.Wire
	//
	if insn.Op == riscv.JAL {
		target, _ = p.add(p.b, p.pc.Bits(), circuit.ConstWord(uint64(uint32(insn.Imm)), 32), circuit.ConstFalse)
	} else {
		// JALR: rs1 + imm with the lowest bit forced clear
		target, _ = p.add(p.b, p.regs[insn.Rs1].Bits(), circuit.ConstWord(uint64(uint32(insn.Imm)), 32), circuit.ConstFalse)
		target = append([]circuit.Wire{}, target...)
		target[0] = circuit.ConstFalse
	}
	// The link value is the sequential successor; computing it through
	// advancePC first keeps exactly one PC+4 adder in the circuit.
	p.advancePC(1)
	p.setReg(insn.Rd, p.pc)
	p.pc = wordOf(target)
}

func (p *State) compileBranch(insn riscv.Instruction) {
	var (
		x    = p.regs[insn.Rs1].Bits()
		y    = p.regs[insn.Rs2].Bits()
		cond circuit.Wire
	)
	//
	switch insn.Op {
	case riscv.BEQ:
		cond = circuit.EqWord(p.b, x, y)
	case riscv.BNE:
		cond = circuit.Not(p.b, circuit.EqWord(p.b, x, y))
	case riscv.BLT:
		cond = arith.LtSigned(p.b, p.add, x, y)
	case riscv.BGE:
		cond = circuit.Not(p.b, arith.LtSigned(p.b, p.add, x, y))
	case riscv.BLTU:
		cond = arith.LtUnsigned(p.b, p.add, x, y)
	case riscv.BGEU:
		cond = circuit.Not(p.b, arith.LtUnsigned(p.b, p.add, x, y))
	}
	//
	taken, _ := p.add(p.b, p.pc.Bits(), circuit.ConstWord(uint64(uint32(insn.Imm)), 32), circuit.ConstFalse)
	fall, _ := p.add(p.b, p.pc.Bits(), circuit.ConstWord(4, 32), circuit.ConstFalse)
	//
	p.pc = wordOf(circuit.MuxWord(p.b, cond, taken, fall))
}
