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

// Memory tiers store whole words, so the compiler addresses them by word
// index (the byte address shifted right twice, a zero-cost wire
// rearrangement) and expresses subword accesses against whole words: loads
// select and extend the addressed byte or halfword, while subword stores
// read the word, merge the store data into the addressed lane and write the
// merged word back, costing two accesses.

func (p *State) compileMemory(insn riscv.Instruction) error {
	if p.mem == nil {
		return fmt.Errorf("%w: %s requires an attached memory tier", riscv.ErrUnsupported, insn)
	}
	//
	addr, _ := p.add(p.b, p.regs[insn.Rs1].Bits(), circuit.ConstWord(uint64(uint32(insn.Imm)), 32), circuit.ConstFalse)
	//
	var (
		wordAddr = wordIndex(addr)
		zero     = circuit.ConstWord(0, 32)
	)
	//
	switch insn.Op {
	case riscv.LW:
		word := p.mem.Access(p.b, wordAddr, zero, circuit.ConstFalse)
		p.setReg(insn.Rd, wordOf(word))
	case riscv.LB, riscv.LBU, riscv.LH, riscv.LHU:
		var (
			word = p.mem.Access(p.b, wordAddr, zero, circuit.ConstFalse)
			half = circuit.MuxWord(p.b, addr[1], word[16:32], word[0:16])
		)
		//
		switch insn.Op {
		case riscv.LH:
			p.setReg(insn.Rd, wordOf(arith.SignExtend(half, 32)))
		case riscv.LHU:
			p.setReg(insn.Rd, wordOf(arith.ZeroExtend(half, 32)))
		default:
			b8 := circuit.MuxWord(p.b, addr[0], half[8:16], half[0:8])
			//
			if insn.Op == riscv.LB {
				p.setReg(insn.Rd, wordOf(arith.SignExtend(b8, 32)))
			} else {
				p.setReg(insn.Rd, wordOf(arith.ZeroExtend(b8, 32)))
			}
		}
	case riscv.SW:
		p.mem.Access(p.b, wordAddr, p.regs[insn.Rs2].Bits(), circuit.ConstTrue)
	case riscv.SH:
		var (
			old  = p.mem.Access(p.b, wordAddr, zero, circuit.ConstFalse)
			data = p.regs[insn.Rs2].Bits()
			low  = circuit.MuxWord(p.b, addr[1], old[0:16], data[0:16])
			high = circuit.MuxWord(p.b, addr[1], data[0:16], old[16:32])
		)
		//
		p.mem.Access(p.b, wordAddr, append(low, high...), circuit.ConstTrue)
	case riscv.SB:
		var (
			old    = p.mem.Access(p.b, wordAddr, zero, circuit.ConstFalse)
			data   = p.regs[insn.Rs2].Bits()
			merged = make([]circuit.Wire, 0, 32)
		)
		//
		for lane := uint(0); lane < 4; lane++ {
			var (
				sel0 = laneBit(p.b, addr[0], lane&1 == 1)
				sel1 = laneBit(p.b, addr[1], lane>>1 == 1)
				sel  = circuit.And(p.b, sel1, sel0)
			)
			//
			merged = append(merged, circuit.MuxWord(p.b, sel, data[0:8], old[8*lane:8*lane+8])...)
		}
		//
		p.mem.Access(p.b, wordAddr, merged, circuit.ConstTrue)
	}
	//
	p.advancePC(1)
	//
	return nil
}

// wordIndex drops the two byte-offset bits of a byte address, zero filling
// the top.  No gates are emitted.
func wordIndex(addr []circuit.Wire) []circuit.Wire {
	out := make([]circuit.Wire, len(addr))
	copy(out, addr[2:])
	out[len(addr)-2] = circuit.ConstFalse
	out[len(addr)-1] = circuit.ConstFalse
	//
	return out
}

// laneBit matches one address bit against a lane index bit.
func laneBit(b circuit.Builder, bit circuit.Wire, want bool) circuit.Wire {
	if want {
		return bit
	}
	//
	return circuit.Not(b, bit)
}
