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
	log "github.com/sirupsen/logrus"

	"github.com/RhettCreighton/riscv-compiler-sub000/pkg/circuit"
	"github.com/RhettCreighton/riscv-compiler-sub000/pkg/riscv"
)

// fusePair recognizes the two standard 32-bit constant formation idioms and
// compiles them as a single operation:
//
//	LUI rd, hi   ; ADDI rd, rd, lo   =>  rd bound to a constant word (zero gates)
//	AUIPC rd, hi ; ADDI rd, rd, lo   =>  rd = PC + (hi + lo), one adder
//
// Fusion is only sound when the second instruction overwrites the first's
// destination from itself, leaving the intermediate value unobservable.  It
// reports whether the pair was consumed; a false return means the caller
// compiles the first instruction normally.
func (p *State) fusePair(a, b riscv.Instruction) bool {
	if !fusable(a, b) {
		return false
	}
	//
	total := uint32(a.Imm) + uint32(b.Imm)
	//
	if a.Op == riscv.LUI {
		p.setReg(a.Rd, wordOf(circuit.ConstWord(uint64(total), 32)))
	} else {
		sum, _ := p.add(p.b, p.pc.Bits(), circuit.ConstWord(uint64(total), 32), circuit.ConstFalse)
		p.setReg(a.Rd, wordOf(sum))
	}
	//
	log.Debugf("fused %s ; %s", a, b)
	p.advancePC(2)
	//
	return true
}

// fusable recognizes the constant formation idiom without compiling it.
func fusable(a, b riscv.Instruction) bool {
	return (a.Op == riscv.LUI || a.Op == riscv.AUIPC) &&
		b.Op == riscv.ADDI && a.Rd != 0 && b.Rd == a.Rd && b.Rs1 == a.Rd
}
