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

// Instruction word encoders, the inverse of Decode.  These exist for tests
// and tooling which construct instruction streams programmatically; the
// production instruction stream arrives pre-encoded from the program loader.

// Encode produces the instruction word for a decoded instruction.  It panics
// on malformed register or immediate fields, since its callers construct
// instructions statically.
func Encode(insn Instruction) uint32 {
	var (
		rd  = uint32(insn.Rd) & 0x1f
		rs1 = uint32(insn.Rs1) & 0x1f
		rs2 = uint32(insn.Rs2) & 0x1f
		imm = uint32(insn.Imm)
	)
	//
	switch insn.Op {
	case LUI:
		return imm&0xfffff000 | rd<<7 | 0x37
	case AUIPC:
		return imm&0xfffff000 | rd<<7 | 0x17
	case JAL:
		return encJ(imm) | rd<<7 | 0x6f
	case JALR:
		return imm<<20 | rs1<<15 | rd<<7 | 0x67
	case BEQ, BNE, BLT, BGE, BLTU, BGEU:
		f3 := map[Opcode]uint32{BEQ: 0, BNE: 1, BLT: 4, BGE: 5, BLTU: 6, BGEU: 7}[insn.Op]
		return encB(imm) | rs2<<20 | rs1<<15 | f3<<12 | 0x63
	case LB, LH, LW, LBU, LHU:
		f3 := map[Opcode]uint32{LB: 0, LH: 1, LW: 2, LBU: 4, LHU: 5}[insn.Op]
		return imm<<20 | rs1<<15 | f3<<12 | rd<<7 | 0x03
	case SB, SH, SW:
		f3 := map[Opcode]uint32{SB: 0, SH: 1, SW: 2}[insn.Op]
		return imm>>5&0x7f<<25 | rs2<<20 | rs1<<15 | f3<<12 | imm&0x1f<<7 | 0x23
	case ADDI, SLTI, SLTIU, XORI, ORI, ANDI:
		f3 := map[Opcode]uint32{ADDI: 0, SLTI: 2, SLTIU: 3, XORI: 4, ORI: 6, ANDI: 7}[insn.Op]
		return imm<<20 | rs1<<15 | f3<<12 | rd<<7 | 0x13
	case SLLI:
		return imm&0x1f<<20 | rs1<<15 | 1<<12 | rd<<7 | 0x13
	case SRLI:
		return imm&0x1f<<20 | rs1<<15 | 5<<12 | rd<<7 | 0x13
	case SRAI:
		return 0x20<<25 | imm&0x1f<<20 | rs1<<15 | 5<<12 | rd<<7 | 0x13
	case ECALL:
		return 0x00000073
	case EBREAK:
		return 0x00100073
	}
	// remaining tags are all register-register
	type rr struct{ f3, f7 uint32 }
	//
	k, ok := map[Opcode]rr{
		ADD: {0, 0x00}, SUB: {0, 0x20}, SLL: {1, 0}, SLT: {2, 0}, SLTU: {3, 0},
		XOR: {4, 0}, SRL: {5, 0}, SRA: {5, 0x20}, OR: {6, 0}, AND: {7, 0},
		MUL: {0, 1}, MULH: {1, 1}, MULHSU: {2, 1}, MULHU: {3, 1},
		DIV: {4, 1}, DIVU: {5, 1}, REM: {6, 1}, REMU: {7, 1},
	}[insn.Op]
	//
	if !ok {
		panic("unencodable instruction")
	}
	//
	return k.f7<<25 | rs2<<20 | rs1<<15 | k.f3<<12 | rd<<7 | 0x33
}

func encB(imm uint32) uint32 {
	return imm>>12&1<<31 | imm>>5&0x3f<<25 | imm>>1&0xf<<8 | imm>>11&1<<7
}

func encJ(imm uint32) uint32 {
	return imm>>20&1<<31 | imm>>1&0x3ff<<21 | imm>>11&1<<20 | imm>>12&0xff<<12
}
