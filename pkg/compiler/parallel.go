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
	"github.com/RhettCreighton/riscv-compiler-sub000/pkg/riscv"
	"github.com/RhettCreighton/riscv-compiler-sub000/pkg/util"
)

// compileParallel compiles a program batch by batch: barrier instructions go
// through the sequential path, while each dataflow batch is compiled
// concurrently.  Every instruction of a batch becomes one job building gates
// into a private fragment against a shared snapshot of the register
// bindings; completed fragments are merged onto the circuit in program
// order, so the result is deterministic regardless of execution
// interleaving.  Workers bypass the online deduplication memo (it is not
// shared across goroutines), trading some duplicate gates for concurrency.
//
// Fusable pairs compile on the spot between runs: fusion rebinds a register
// and the PC in one step, so the pending run must be flushed around it.
func (p *State) compileParallel(insns []riscv.Instruction) error {
	var run []riscv.Instruction
	//
	flush := func() error {
		for _, batch := range schedule(run) {
			if len(batch) == 1 && isBarrier(batch[0]) {
				if err := p.Compile(batch[0]); err != nil {
					return err
				}
				//
				continue
			}
			//
			if err := p.compileBatch(batch); err != nil {
				return err
			}
		}
		//
		run = nil
		//
		return nil
	}
	//
	for i := 0; i < len(insns); {
		if p.cfg.Fusion && i+1 < len(insns) && fusable(insns[i], insns[i+1]) {
			if err := flush(); err != nil {
				return err
			}
			//
			p.fusePair(insns[i], insns[i+1])
			i += 2
			//
			continue
		}
		//
		run = append(run, insns[i])
		i++
	}
	//
	return flush()
}

type batchResult struct {
	frag *circuit.Fragment
	rd   Word
	// destination register, if any
	target    uint8
	hasTarget bool
	err       error
}

func (p *State) compileBatch(batch []riscv.Instruction) error {
	var (
		// fragment-local wires of every job are numbered from the same
		// snapshot of the shared wire counter
		base = circuit.Wire(p.circ.NbWires())
		// register bindings are immutable for the whole batch
		snapshot = p.regs
		jobs     = make([]util.BatchJob[batchResult], len(batch))
	)
	//
	for k, insn := range batch {
		jobs[k] = func() batchResult {
			var (
				frag    = circuit.NewFragment(base)
				rd, err = buildData(frag, p.add, &snapshot, insn)
				t, ok   = insn.WriteReg()
			)
			//
			return batchResult{frag, rd, uint8(t), ok, err}
		}
	}
	// Merge in job order.
	for _, r := range util.RunBatch(p.cfg.Workers, jobs) {
		if r.err != nil {
			return r.err
		}
		//
		translate := p.circ.AppendFragment(r.frag)
		//
		if r.hasTarget {
			var w Word
			//
			for i, bit := range r.rd {
				w[i] = translate(bit)
			}
			//
			p.regs[r.target] = w
		}
	}
	// One PC rebind covers the whole batch.
	p.advancePC(uint(len(batch)))
	//
	return nil
}
