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
	"github.com/RhettCreighton/riscv-compiler-sub000/pkg/riscv"
	"github.com/RhettCreighton/riscv-compiler-sub000/pkg/util"
)

// schedule groups a straight-line program into batches of mutually
// independent dataflow instructions, in program order.  Two instructions are
// independent when neither reads a register the other writes (RAW), they do
// not write the same register (WAW), and neither overwrites a register the
// other reads (WAR); reads of the zero register are never dependencies.
// Control transfers, memory accesses and environment traps serialize
// against everything and are emitted as singleton barrier batches.
func schedule(insns []riscv.Instruction) [][]riscv.Instruction {
	var (
		batches [][]riscv.Instruction
		current []riscv.Instruction
		// registers read or written by the current batch
		reads  = util.NewBitSet(32)
		writes = util.NewBitSet(32)
	)
	//
	flush := func() {
		if len(current) > 0 {
			batches = append(batches, current)
			current = nil
			reads = util.NewBitSet(32)
			writes = util.NewBitSet(32)
		}
	}
	//
	for _, insn := range insns {
		if isBarrier(insn) {
			flush()
			batches = append(batches, []riscv.Instruction{insn})
			//
			continue
		}
		//
		var (
			r = util.NewBitSet(32)
			w = util.NewBitSet(32)
		)
		//
		r.InsertAll(insn.ReadRegs()...)
		//
		if reg, ok := insn.WriteReg(); ok {
			w.Insert(reg)
		}
		// RAW, WAW and WAR against the accumulated batch sets.
		if r.Intersects(writes) || w.Intersects(writes) || w.Intersects(reads) {
			flush()
		}
		//
		current = append(current, insn)
		reads.Union(r)
		writes.Union(w)
	}
	//
	flush()
	//
	return batches
}

// isBarrier reports whether an instruction must observe and establish a
// total order: anything touching the PC beyond sequencing, anything touching
// memory, and the environment traps.
func isBarrier(insn riscv.Instruction) bool {
	return insn.IsBranch() || insn.IsJump() || insn.IsMemory() ||
		insn.Op == riscv.AUIPC || insn.Op == riscv.ECALL || insn.Op == riscv.EBREAK
}
