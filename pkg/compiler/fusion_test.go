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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RhettCreighton/riscv-compiler-sub000/pkg/riscv"
)

func Test_Fusion_01(t *testing.T) {
	// LUI+ADDI forming a 32-bit constant compiles to a constant binding: the
	// whole fused program costs exactly one PC update.
	program := []riscv.Instruction{
		{Op: riscv.LUI, Rd: 1, Imm: int32(0x12345 << 12)},
		{Op: riscv.ADDI, Rd: 1, Rs1: 1, Imm: -3},
	}
	//
	fused := compileUnit(t, Config{Fusion: true}, program)
	//
	baseline, err := New(Config{})
	require.NoError(t, err)
	baseline.advancePC(2)
	//
	assert.Equal(t, baseline.circ.NbGates(), fused.NbGates())
	//
	check_Program(t, Config{Fusion: true}, program, riscv.NewState(nil))
}

func Test_Fusion_02(t *testing.T) {
	// AUIPC+ADDI compiles to a single PC-relative adder.
	program := []riscv.Instruction{
		{Op: riscv.AUIPC, Rd: 1, Imm: int32(0x1000)},
		{Op: riscv.ADDI, Rd: 1, Rs1: 1, Imm: 2047},
	}
	//
	st := riscv.NewState(nil)
	st.PC = 0x4000
	//
	check_Program(t, Config{Fusion: true}, program, st)
}

func Test_Fusion_03(t *testing.T) {
	// Negative low parts borrow from the high part.
	for _, lo := range []int32{-2048, -1, 0, 1, 2047} {
		program := []riscv.Instruction{
			{Op: riscv.LUI, Rd: 1, Imm: -0x80000000}, // lui x1, 0x80000
			{Op: riscv.ADDI, Rd: 1, Rs1: 1, Imm: lo},
		}
		//
		check_Program(t, Config{Fusion: true}, program, riscv.NewState(nil))
	}
}

func Test_Fusion_04(t *testing.T) {
	// Guards: fusion only fires when the pair is the exact idiom.
	p, err := New(Config{Fusion: true})
	require.NoError(t, err)
	//
	var (
		lui  = riscv.Instruction{Op: riscv.LUI, Rd: 1, Imm: int32(1 << 12)}
		addi = riscv.Instruction{Op: riscv.ADDI, Rd: 1, Rs1: 1, Imm: 5}
	)
	// second instruction is not ADDI
	assert.False(t, p.fusePair(lui, riscv.Instruction{Op: riscv.ORI, Rd: 1, Rs1: 1, Imm: 5}))
	// destination mismatch
	assert.False(t, p.fusePair(lui, riscv.Instruction{Op: riscv.ADDI, Rd: 2, Rs1: 1, Imm: 5}))
	// source is not the intermediate
	assert.False(t, p.fusePair(lui, riscv.Instruction{Op: riscv.ADDI, Rd: 1, Rs1: 2, Imm: 5}))
	// zero destination is not a value
	assert.False(t, p.fusePair(riscv.Instruction{Op: riscv.LUI, Rd: 0}, riscv.Instruction{Op: riscv.ADDI, Rd: 0, Rs1: 0}))
	// first instruction is not a constant former
	assert.False(t, p.fusePair(riscv.Instruction{Op: riscv.ADD, Rd: 1, Rs1: 2, Rs2: 3}, addi))
	// the idiom itself fires
	assert.True(t, p.fusePair(lui, addi))
}

func Test_Fusion_05(t *testing.T) {
	// A non-fusable pair under the fusion flag still compiles correctly.
	program := []riscv.Instruction{
		{Op: riscv.LUI, Rd: 1, Imm: int32(0x12345 << 12)},
		{Op: riscv.ADDI, Rd: 2, Rs1: 1, Imm: 100},
	}
	//
	check_Program(t, Config{Fusion: true}, program, riscv.NewState(nil))
}

func Test_Fusion_06(t *testing.T) {
	// Fusion also fires on the parallel path: the AUIPC pair compiles to a
	// single adder there just as it does sequentially, one fewer than the
	// unfused compile plus its extra PC update.
	program := []riscv.Instruction{
		{Op: riscv.AUIPC, Rd: 1, Imm: int32(0x1000)},
		{Op: riscv.ADDI, Rd: 1, Rs1: 1, Imm: 0x678},
		{Op: riscv.ADD, Rd: 3, Rs1: 1, Rs2: 2},
	}
	//
	var (
		unfused = compileUnit(t, Config{Parallel: true, Workers: 2}, program)
		fused   = compileUnit(t, Config{Parallel: true, Workers: 2, Fusion: true}, program)
	)
	//
	assert.Less(t, fused.NbGates(), unfused.NbGates())
	//
	check_Program(t, Config{Parallel: true, Workers: 2, Fusion: true}, program, riscv.NewState(nil))
}
