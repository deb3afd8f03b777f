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

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Decode_01(t *testing.T) {
	// addi x1, x2, -3
	insn, err := Decode(0xffd10093)
	require.NoError(t, err)
	assert.Equal(t, Instruction{Op: ADDI, Rd: 1, Rs1: 2, Imm: -3}, insn)
}

func Test_Decode_02(t *testing.T) {
	// add x3, x1, x2
	insn, err := Decode(0x002081b3)
	require.NoError(t, err)
	assert.Equal(t, Instruction{Op: ADD, Rd: 3, Rs1: 1, Rs2: 2}, insn)
}

func Test_Decode_03(t *testing.T) {
	// lui x5, 0xdeadc
	insn, err := Decode(0xdeadc2b7)
	require.NoError(t, err)
	assert.Equal(t, LUI, insn.Op)
	assert.Equal(t, uint8(5), insn.Rd)
	assert.Equal(t, uint32(0xdeadc000), uint32(insn.Imm))
}

func Test_Decode_04(t *testing.T) {
	// ecall / ebreak are exact words
	insn, err := Decode(0x00000073)
	require.NoError(t, err)
	assert.Equal(t, ECALL, insn.Op)
	//
	insn, err = Decode(0x00100073)
	require.NoError(t, err)
	assert.Equal(t, EBREAK, insn.Op)
}

func Test_Decode_Invalid_01(t *testing.T) {
	// Unknown opcodes, bad functs, and system words other than the two
	// architected ones all decode to ErrUnsupported.
	for _, word := range []uint32{
		0x00000000, 0xffffffff, 0x0000007f,
		0x00001063 | 2<<12, // branch funct3=3
		0x00003003,         // load funct3=3
		0x00003023,         // store funct3=3
		0x40001013,         // slli with funct7=0x20
		0x02001013,         // slli with funct7=0x01
		0x00200073,         // system, neither ecall nor ebreak
		0x40000033 | 1<<12, // sub with funct3=1
	} {
		_, err := Decode(word)
		assert.True(t, errors.Is(err, ErrUnsupported), "word 0x%08x", word)
	}
}

func Test_EncodeDecode_01(t *testing.T) {
	for _, insn := range sampleInstructions() {
		back, err := Decode(Encode(insn))
		require.NoError(t, err, "%s", insn)
		assert.Equal(t, insn, back, "%s", insn)
	}
}

func Test_Immediates_01(t *testing.T) {
	// Branch immediates are even, 13-bit, sign-extended.
	insn, err := Decode(Encode(Instruction{Op: BEQ, Rs1: 1, Rs2: 2, Imm: -4096}))
	require.NoError(t, err)
	assert.Equal(t, int32(-4096), insn.Imm)
	// Jump immediates are even, 21-bit, sign-extended.
	insn, err = Decode(Encode(Instruction{Op: JAL, Rd: 1, Imm: -1048576}))
	require.NoError(t, err)
	assert.Equal(t, int32(-1048576), insn.Imm)
	// Store immediates split across two fields.
	insn, err = Decode(Encode(Instruction{Op: SW, Rs1: 2, Rs2: 3, Imm: -2048}))
	require.NoError(t, err)
	assert.Equal(t, int32(-2048), insn.Imm)
}

func Test_Registers_01(t *testing.T) {
	// Reads of x0 are not dependencies.
	assert.Empty(t, Instruction{Op: ADD, Rd: 1}.ReadRegs())
	assert.Equal(t, []uint{2, 3}, Instruction{Op: ADD, Rd: 1, Rs1: 2, Rs2: 3}.ReadRegs())
	assert.Equal(t, []uint{2}, Instruction{Op: ADDI, Rd: 1, Rs1: 2}.ReadRegs())
	// Branches and stores write nothing; writes to x0 are no writes.
	_, ok := Instruction{Op: BEQ, Rs1: 1, Rs2: 2}.WriteReg()
	assert.False(t, ok)
	_, ok = Instruction{Op: ADD, Rd: 0, Rs1: 1, Rs2: 2}.WriteReg()
	assert.False(t, ok)
	//
	w, ok := Instruction{Op: ADD, Rd: 7, Rs1: 1, Rs2: 2}.WriteReg()
	assert.True(t, ok)
	assert.Equal(t, uint(7), w)
}

// ===================================================================
// Test Helpers
// ===================================================================

// sampleInstructions covers every opcode with representative operands.
func sampleInstructions() []Instruction {
	return []Instruction{
		{Op: ADD, Rd: 1, Rs1: 2, Rs2: 3},
		{Op: SUB, Rd: 31, Rs1: 30, Rs2: 29},
		{Op: SLL, Rd: 1, Rs1: 2, Rs2: 3},
		{Op: SLT, Rd: 1, Rs1: 2, Rs2: 3},
		{Op: SLTU, Rd: 1, Rs1: 2, Rs2: 3},
		{Op: XOR, Rd: 1, Rs1: 2, Rs2: 3},
		{Op: SRL, Rd: 1, Rs1: 2, Rs2: 3},
		{Op: SRA, Rd: 1, Rs1: 2, Rs2: 3},
		{Op: OR, Rd: 1, Rs1: 2, Rs2: 3},
		{Op: AND, Rd: 1, Rs1: 2, Rs2: 3},
		{Op: ADDI, Rd: 1, Rs1: 2, Imm: 2047},
		{Op: SLTI, Rd: 1, Rs1: 2, Imm: -2048},
		{Op: SLTIU, Rd: 1, Rs1: 2, Imm: -1},
		{Op: XORI, Rd: 1, Rs1: 2, Imm: 255},
		{Op: ORI, Rd: 1, Rs1: 2, Imm: -256},
		{Op: ANDI, Rd: 1, Rs1: 2, Imm: 15},
		{Op: SLLI, Rd: 1, Rs1: 2, Imm: 31},
		{Op: SRLI, Rd: 1, Rs1: 2, Imm: 1},
		{Op: SRAI, Rd: 1, Rs1: 2, Imm: 30},
		{Op: LUI, Rd: 1, Imm: int32(0x12345 << 12)},
		{Op: AUIPC, Rd: 1, Imm: int32(-4096)},
		{Op: JAL, Rd: 1, Imm: 2048},
		{Op: JALR, Rd: 1, Rs1: 2, Imm: -2},
		{Op: BEQ, Rs1: 1, Rs2: 2, Imm: 8},
		{Op: BNE, Rs1: 1, Rs2: 2, Imm: -8},
		{Op: BLT, Rs1: 1, Rs2: 2, Imm: 16},
		{Op: BGE, Rs1: 1, Rs2: 2, Imm: -16},
		{Op: BLTU, Rs1: 1, Rs2: 2, Imm: 4094},
		{Op: BGEU, Rs1: 1, Rs2: 2, Imm: -4096},
		{Op: LB, Rd: 1, Rs1: 2, Imm: 1},
		{Op: LH, Rd: 1, Rs1: 2, Imm: 2},
		{Op: LW, Rd: 1, Rs1: 2, Imm: 4},
		{Op: LBU, Rd: 1, Rs1: 2, Imm: -1},
		{Op: LHU, Rd: 1, Rs1: 2, Imm: -2},
		{Op: SB, Rs1: 1, Rs2: 2, Imm: 3},
		{Op: SH, Rs1: 1, Rs2: 2, Imm: -6},
		{Op: SW, Rs1: 1, Rs2: 2, Imm: 2047},
		{Op: MUL, Rd: 1, Rs1: 2, Rs2: 3},
		{Op: MULH, Rd: 1, Rs1: 2, Rs2: 3},
		{Op: MULHSU, Rd: 1, Rs1: 2, Rs2: 3},
		{Op: MULHU, Rd: 1, Rs1: 2, Rs2: 3},
		{Op: DIV, Rd: 1, Rs1: 2, Rs2: 3},
		{Op: DIVU, Rd: 1, Rs1: 2, Rs2: 3},
		{Op: REM, Rd: 1, Rs1: 2, Rs2: 3},
		{Op: REMU, Rd: 1, Rs1: 2, Rs2: 3},
		{Op: ECALL},
		{Op: EBREAK},
	}
}
