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

// Package riscv provides decoding of 32-bit RV32IM instruction words into an
// explicit tagged instruction form, the inverse encoders used by tests and
// tooling, and a direct reference interpreter of the instruction semantics.
// Decoding is a single exhaustive analysis of the opcode/funct space; an
// instruction either decodes to exactly one tag or fails with
// ErrUnsupported.
package riscv

import (
	"errors"
	"fmt"
)

// ErrUnsupported marks opcode/funct combinations outside the supported
// RV32IM subset.  It is recoverable: the caller may skip the instruction or
// abort the batch, and no circuit state is corrupted.
var ErrUnsupported = errors.New("unsupported instruction")

// Opcode enumerates every supported operation, one tag per distinct
// semantics.
type Opcode uint8

// Register-register, register-immediate, upper-immediate, jump, branch,
// memory, multiply/divide and system operations, in ISA manual order.
const (
	ADD Opcode = iota
	SUB
	SLL
	SLT
	SLTU
	XOR
	SRL
	SRA
	OR
	AND
	ADDI
	SLTI
	SLTIU
	XORI
	ORI
	ANDI
	SLLI
	SRLI
	SRAI
	LUI
	AUIPC
	JAL
	JALR
	BEQ
	BNE
	BLT
	BGE
	BLTU
	BGEU
	LB
	LH
	LW
	LBU
	LHU
	SB
	SH
	SW
	MUL
	MULH
	MULHSU
	MULHU
	DIV
	DIVU
	REM
	REMU
	ECALL
	EBREAK
)

var opcodeNames = [...]string{
	"add", "sub", "sll", "slt", "sltu", "xor", "srl", "sra", "or", "and",
	"addi", "slti", "sltiu", "xori", "ori", "andi", "slli", "srli", "srai",
	"lui", "auipc", "jal", "jalr",
	"beq", "bne", "blt", "bge", "bltu", "bgeu",
	"lb", "lh", "lw", "lbu", "lhu", "sb", "sh", "sw",
	"mul", "mulh", "mulhsu", "mulhu", "div", "divu", "rem", "remu",
	"ecall", "ebreak",
}

func (op Opcode) String() string {
	if int(op) < len(opcodeNames) {
		return opcodeNames[op]
	}
	//
	return fmt.Sprintf("Opcode(%d)", uint8(op))
}

// Instruction is the decoded, tagged form of one instruction word.  Fields
// not meaningful for a given opcode are zero.  Imm holds the sign-extended
// immediate under the opcode's layout; for LUI/AUIPC it holds the already
// shifted 20-bit immediate.
type Instruction struct {
	Op  Opcode
	Rd  uint8
	Rs1 uint8
	Rs2 uint8
	Imm int32
}

func (p Instruction) String() string {
	switch {
	case p.Op == ECALL || p.Op == EBREAK:
		return p.Op.String()
	case p.Op == LUI || p.Op == AUIPC:
		return fmt.Sprintf("%s x%d, 0x%x", p.Op, p.Rd, uint32(p.Imm)>>12)
	case p.Op == JAL:
		return fmt.Sprintf("%s x%d, %d", p.Op, p.Rd, p.Imm)
	case p.IsBranch():
		return fmt.Sprintf("%s x%d, x%d, %d", p.Op, p.Rs1, p.Rs2, p.Imm)
	case p.IsStore():
		return fmt.Sprintf("%s x%d, %d(x%d)", p.Op, p.Rs2, p.Imm, p.Rs1)
	case p.IsLoad():
		return fmt.Sprintf("%s x%d, %d(x%d)", p.Op, p.Rd, p.Imm, p.Rs1)
	case p.hasImm():
		return fmt.Sprintf("%s x%d, x%d, %d", p.Op, p.Rd, p.Rs1, p.Imm)
	}
	//
	return fmt.Sprintf("%s x%d, x%d, x%d", p.Op, p.Rd, p.Rs1, p.Rs2)
}

func (p Instruction) hasImm() bool {
	return p.Op >= ADDI && p.Op <= SRAI || p.Op == JALR
}

// IsBranch reports whether this is a conditional branch.
func (p Instruction) IsBranch() bool {
	return p.Op >= BEQ && p.Op <= BGEU
}

// IsJump reports whether this is an unconditional jump.
func (p Instruction) IsJump() bool {
	return p.Op == JAL || p.Op == JALR
}

// IsLoad reports whether this reads memory.
func (p Instruction) IsLoad() bool {
	return p.Op >= LB && p.Op <= LHU
}

// IsStore reports whether this writes memory.
func (p Instruction) IsStore() bool {
	return p.Op >= SB && p.Op <= SW
}

// IsMemory reports whether this accesses memory at all.
func (p Instruction) IsMemory() bool {
	return p.IsLoad() || p.IsStore()
}

// ReadRegs returns the registers whose values this instruction observes.
// Reads of the hard-wired zero register are not dependencies and hence
// omitted.
func (p Instruction) ReadRegs() []uint {
	var regs []uint
	//
	switch {
	case p.Op == LUI || p.Op == AUIPC || p.Op == JAL || p.Op == ECALL || p.Op == EBREAK:
		// no register operands
	case p.hasImm() || p.IsLoad():
		if p.Rs1 != 0 {
			regs = append(regs, uint(p.Rs1))
		}
	default:
		if p.Rs1 != 0 {
			regs = append(regs, uint(p.Rs1))
		}
		//
		if p.Rs2 != 0 {
			regs = append(regs, uint(p.Rs2))
		}
	}
	//
	return regs
}

// WriteReg returns the destination register, if any.  Writes to the zero
// register are architectural no-ops and reported as no write.
func (p Instruction) WriteReg() (uint, bool) {
	if p.IsBranch() || p.IsStore() || p.Op == ECALL || p.Op == EBREAK {
		return 0, false
	}
	//
	return uint(p.Rd), p.Rd != 0
}

// Decode decodes one 32-bit instruction word into its tagged form, or fails
// with an ErrUnsupported-wrapped error identifying the offending encoding.
func Decode(word uint32) (Instruction, error) {
	var (
		opcode = word & 0x7f
		rd     = uint8(word >> 7 & 0x1f)
		funct3 = word >> 12 & 0x7
		rs1    = uint8(word >> 15 & 0x1f)
		rs2    = uint8(word >> 20 & 0x1f)
		funct7 = word >> 25
	)
	//
	switch opcode {
	case 0x37:
		return Instruction{Op: LUI, Rd: rd, Imm: immU(word)}, nil
	case 0x17:
		return Instruction{Op: AUIPC, Rd: rd, Imm: immU(word)}, nil
	case 0x6f:
		return Instruction{Op: JAL, Rd: rd, Imm: immJ(word)}, nil
	case 0x67:
		if funct3 != 0 {
			break
		}
		//
		return Instruction{Op: JALR, Rd: rd, Rs1: rs1, Imm: immI(word)}, nil
	case 0x63:
		return decodeBranch(word, funct3, rs1, rs2)
	case 0x03:
		return decodeLoad(word, funct3, rd, rs1)
	case 0x23:
		return decodeStore(word, funct3, rs1, rs2)
	case 0x13:
		return decodeOpImm(word, funct3, funct7, rd, rs1, rs2)
	case 0x33:
		return decodeOp(word, funct3, funct7, rd, rs1, rs2)
	case 0x73:
		if word == 0x00000073 {
			return Instruction{Op: ECALL}, nil
		} else if word == 0x00100073 {
			return Instruction{Op: EBREAK}, nil
		}
	}
	//
	return Instruction{}, fmt.Errorf("%w: 0x%08x", ErrUnsupported, word)
}

func decodeBranch(word, funct3 uint32, rs1, rs2 uint8) (Instruction, error) {
	ops := map[uint32]Opcode{0: BEQ, 1: BNE, 4: BLT, 5: BGE, 6: BLTU, 7: BGEU}
	//
	if op, ok := ops[funct3]; ok {
		return Instruction{Op: op, Rs1: rs1, Rs2: rs2, Imm: immB(word)}, nil
	}
	//
	return Instruction{}, fmt.Errorf("%w: branch funct3 %d (0x%08x)", ErrUnsupported, funct3, word)
}

func decodeLoad(word, funct3 uint32, rd, rs1 uint8) (Instruction, error) {
	ops := map[uint32]Opcode{0: LB, 1: LH, 2: LW, 4: LBU, 5: LHU}
	//
	if op, ok := ops[funct3]; ok {
		return Instruction{Op: op, Rd: rd, Rs1: rs1, Imm: immI(word)}, nil
	}
	//
	return Instruction{}, fmt.Errorf("%w: load funct3 %d (0x%08x)", ErrUnsupported, funct3, word)
}

func decodeStore(word, funct3 uint32, rs1, rs2 uint8) (Instruction, error) {
	ops := map[uint32]Opcode{0: SB, 1: SH, 2: SW}
	//
	if op, ok := ops[funct3]; ok {
		return Instruction{Op: op, Rs1: rs1, Rs2: rs2, Imm: immS(word)}, nil
	}
	//
	return Instruction{}, fmt.Errorf("%w: store funct3 %d (0x%08x)", ErrUnsupported, funct3, word)
}

func decodeOpImm(word, funct3, funct7 uint32, rd, rs1, rs2 uint8) (Instruction, error) {
	switch funct3 {
	case 0:
		return Instruction{Op: ADDI, Rd: rd, Rs1: rs1, Imm: immI(word)}, nil
	case 2:
		return Instruction{Op: SLTI, Rd: rd, Rs1: rs1, Imm: immI(word)}, nil
	case 3:
		return Instruction{Op: SLTIU, Rd: rd, Rs1: rs1, Imm: immI(word)}, nil
	case 4:
		return Instruction{Op: XORI, Rd: rd, Rs1: rs1, Imm: immI(word)}, nil
	case 6:
		return Instruction{Op: ORI, Rd: rd, Rs1: rs1, Imm: immI(word)}, nil
	case 7:
		return Instruction{Op: ANDI, Rd: rd, Rs1: rs1, Imm: immI(word)}, nil
	case 1:
		if funct7 == 0 {
			return Instruction{Op: SLLI, Rd: rd, Rs1: rs1, Imm: int32(rs2)}, nil
		}
	case 5:
		if funct7 == 0 {
			return Instruction{Op: SRLI, Rd: rd, Rs1: rs1, Imm: int32(rs2)}, nil
		} else if funct7 == 0x20 {
			return Instruction{Op: SRAI, Rd: rd, Rs1: rs1, Imm: int32(rs2)}, nil
		}
	}
	//
	return Instruction{}, fmt.Errorf("%w: op-imm funct3 %d funct7 0x%x (0x%08x)", ErrUnsupported, funct3, funct7, word)
}

func decodeOp(word, funct3, funct7 uint32, rd, rs1, rs2 uint8) (Instruction, error) {
	type key struct{ f3, f7 uint32 }
	//
	ops := map[key]Opcode{
		{0, 0x00}: ADD, {0, 0x20}: SUB,
		{1, 0x00}: SLL, {2, 0x00}: SLT, {3, 0x00}: SLTU,
		{4, 0x00}: XOR, {5, 0x00}: SRL, {5, 0x20}: SRA,
		{6, 0x00}: OR, {7, 0x00}: AND,
		{0, 0x01}: MUL, {1, 0x01}: MULH, {2, 0x01}: MULHSU, {3, 0x01}: MULHU,
		{4, 0x01}: DIV, {5, 0x01}: DIVU, {6, 0x01}: REM, {7, 0x01}: REMU,
	}
	//
	if op, ok := ops[key{funct3, funct7}]; ok {
		return Instruction{Op: op, Rd: rd, Rs1: rs1, Rs2: rs2}, nil
	}
	//
	return Instruction{}, fmt.Errorf("%w: op funct3 %d funct7 0x%x (0x%08x)", ErrUnsupported, funct3, funct7, word)
}

// The five immediate layouts of the ISA, each sign-extended.

func immI(word uint32) int32 {
	return int32(word) >> 20
}

func immS(word uint32) int32 {
	return int32(word)>>25<<5 | int32(word>>7&0x1f)
}

func immB(word uint32) int32 {
	return int32(word)>>31<<12 |
		int32(word>>25&0x3f)<<5 |
		int32(word>>8&0xf)<<1 |
		int32(word>>7&1)<<11
}

func immU(word uint32) int32 {
	return int32(word & 0xfffff000)
}

func immJ(word uint32) int32 {
	return int32(word)>>31<<20 |
		int32(word>>21&0x3ff)<<1 |
		int32(word>>20&1)<<11 |
		int32(word>>12&0xff)<<12
}
