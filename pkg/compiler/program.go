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

	log "github.com/sirupsen/logrus"

	"github.com/RhettCreighton/riscv-compiler-sub000/pkg/riscv"
	"github.com/RhettCreighton/riscv-compiler-sub000/pkg/util"
)

// DecodeProgram decodes a sequence of instruction words, reporting the
// offending program index on failure.
func DecodeProgram(words []uint32) ([]riscv.Instruction, error) {
	insns := make([]riscv.Instruction, len(words))
	//
	for i, word := range words {
		insn, err := riscv.Decode(word)
		//
		if err != nil {
			return nil, fmt.Errorf("instruction %d: %w", i, err)
		}
		//
		insns[i] = insn
	}
	//
	return insns, nil
}

// CompileProgram compiles a straight-line instruction sequence in program
// order, honouring the configured fusion and parallelism settings.
func (p *State) CompileProgram(insns []riscv.Instruction) error {
	stats := util.NewPerfStats()
	log.Debugf("compiling %d instructions (parallel=%t, fusion=%t)", len(insns), p.cfg.Parallel, p.cfg.Fusion)
	//
	if p.cfg.Parallel {
		if err := p.compileParallel(insns); err != nil {
			return err
		}
	} else if err := p.compileSequential(insns); err != nil {
		return err
	}
	//
	stats.LogGates(fmt.Sprintf("compiled %d instructions", len(insns)), p.circ.NbGates())
	//
	return nil
}

func (p *State) compileSequential(insns []riscv.Instruction) error {
	for i := 0; i < len(insns); {
		if p.cfg.Fusion && i+1 < len(insns) && p.fusePair(insns[i], insns[i+1]) {
			i += 2
			//
			continue
		}
		//
		if err := p.Compile(insns[i]); err != nil {
			return fmt.Errorf("instruction %d: %w", i, err)
		}
		//
		i++
	}
	//
	return nil
}
