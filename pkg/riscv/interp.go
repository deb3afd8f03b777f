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
package riscv

// State is the concrete machine state of the reference interpreter: a direct
// bit-level implementation of the instruction semantics against which the
// compiled circuits are checked.  Memory is a sparse map of word addresses
// (byte address divided by four) to words, mirroring the word-granular
// storage of the circuit memory tiers.
type State struct {
	PC   uint32
	Regs [32]uint32
	Mem  map[uint32]uint32
}

// NewState creates an interpreter state with zeroed registers and the given
// (possibly nil) initial memory image.
func NewState(mem map[uint32]uint32) *State {
	if mem == nil {
		mem = make(map[uint32]uint32)
	}
	//
	return &State{Mem: mem}
}

// Step executes one decoded instruction, updating registers, memory and the
// program counter.  Division edge cases follow the architected semantics
// (all-ones quotient on division by zero, wrap on signed overflow); they are
// defined results, not errors.
func (p *State) Step(insn Instruction) {
	var (
		rs1     = p.Regs[insn.Rs1]
		rs2     = p.Regs[insn.Rs2]
		imm     = uint32(insn.Imm)
		rd      uint32
		writes  = true
		nextPC  = p.PC + 4
	)
	//
	switch insn.Op {
	case ADD:
		rd = rs1 + rs2
	case SUB:
		rd = rs1 - rs2
	case SLL:
		rd = rs1 << (rs2 & 31)
	case SLT:
		rd = boolToWord(int32(rs1) < int32(rs2))
	case SLTU:
		rd = boolToWord(rs1 < rs2)
	case XOR:
		rd = rs1 ^ rs2
	case SRL:
		rd = rs1 >> (rs2 & 31)
	case SRA:
		rd = uint32(int32(rs1) >> (rs2 & 31))
	case OR:
		rd = rs1 | rs2
	case AND:
		rd = rs1 & rs2
	case ADDI:
		rd = rs1 + imm
	case SLTI:
		rd = boolToWord(int32(rs1) < insn.Imm)
	case SLTIU:
		rd = boolToWord(rs1 < imm)
	case XORI:
		rd = rs1 ^ imm
	case ORI:
		rd = rs1 | imm
	case ANDI:
		rd = rs1 & imm
	case SLLI:
		rd = rs1 << (imm & 31)
	case SRLI:
		rd = rs1 >> (imm & 31)
	case SRAI:
		rd = uint32(int32(rs1) >> (imm & 31))
	case LUI:
		rd = imm
	case AUIPC:
		rd = p.PC + imm
	case JAL:
		rd = p.PC + 4
		nextPC = p.PC + imm
	case JALR:
		rd = p.PC + 4
		nextPC = (rs1 + imm) &^ 1
	case BEQ:
		writes = false
		nextPC = p.branch(rs1 == rs2, imm)
	case BNE:
		writes = false
		nextPC = p.branch(rs1 != rs2, imm)
	case BLT:
		writes = false
		nextPC = p.branch(int32(rs1) < int32(rs2), imm)
	case BGE:
		writes = false
		nextPC = p.branch(int32(rs1) >= int32(rs2), imm)
	case BLTU:
		writes = false
		nextPC = p.branch(rs1 < rs2, imm)
	case BGEU:
		writes = false
		nextPC = p.branch(rs1 >= rs2, imm)
	case LB:
		rd = signExtend(p.loadByte(rs1+imm), 8)
	case LBU:
		rd = p.loadByte(rs1 + imm)
	case LH:
		rd = signExtend(p.loadHalf(rs1+imm), 16)
	case LHU:
		rd = p.loadHalf(rs1 + imm)
	case LW:
		rd = p.Mem[(rs1+imm)>>2]
	case SB:
		writes = false
		p.storeBits(rs1+imm, rs2&0xff, 8)
	case SH:
		writes = false
		p.storeBits(rs1+imm, rs2&0xffff, 16)
	case SW:
		writes = false
		p.Mem[(rs1+imm)>>2] = rs2
	case MUL:
		rd = uint32(int64(int32(rs1)) * int64(int32(rs2)))
	case MULH:
		rd = uint32(int64(int32(rs1)) * int64(int32(rs2)) >> 32)
	case MULHSU:
		rd = uint32(int64(int32(rs1)) * int64(rs2) >> 32)
	case MULHU:
		rd = uint32(uint64(rs1) * uint64(rs2) >> 32)
	case DIV:
		rd = divSigned(rs1, rs2)
	case DIVU:
		if rs2 == 0 {
			rd = ^uint32(0)
		} else {
			rd = rs1 / rs2
		}
	case REM:
		rd = remSigned(rs1, rs2)
	case REMU:
		if rs2 == 0 {
			rd = rs1
		} else {
			rd = rs1 % rs2
		}
	case ECALL, EBREAK:
		writes = false
	}
	//
	if writes && insn.Rd != 0 {
		p.Regs[insn.Rd] = rd
	}
	//
	p.PC = nextPC
}

func (p *State) branch(taken bool, imm uint32) uint32 {
	if taken {
		return p.PC + imm
	}
	//
	return p.PC + 4
}

func (p *State) loadByte(addr uint32) uint32 {
	return p.Mem[addr>>2] >> (8 * (addr & 3)) & 0xff
}

func (p *State) loadHalf(addr uint32) uint32 {
	return p.Mem[addr>>2] >> (8 * (addr & 2)) & 0xffff
}

// storeBits merges the low n bits of value into the addressed word, at the
// byte offset implied by the low address bits.
func (p *State) storeBits(addr, value uint32, n uint) {
	var (
		shift = 8 * (addr & 3)
		mask  = (uint32(1)<<n - 1) << shift
		word  = p.Mem[addr>>2]
	)
	//
	if n == 16 {
		shift = 8 * (addr & 2)
		mask = 0xffff << shift
	}
	//
	p.Mem[addr>>2] = word&^mask | value<<shift&mask
}

func divSigned(num, den uint32) uint32 {
	switch {
	case den == 0:
		return ^uint32(0)
	case num == 0x80000000 && den == 0xffffffff:
		// overflow wraps
		return 0x80000000
	}
	//
	return uint32(int32(num) / int32(den))
}

func remSigned(num, den uint32) uint32 {
	switch {
	case den == 0:
		return num
	case num == 0x80000000 && den == 0xffffffff:
		return 0
	}
	//
	return uint32(int32(num) % int32(den))
}

func signExtend(value uint32, bits uint) uint32 {
	shift := 32 - bits
	//
	return uint32(int32(value<<shift) >> shift)
}

func boolToWord(b bool) uint32 {
	if b {
		return 1
	}
	//
	return 0
}
