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

// Package compiler translates fixed sequences of decoded instructions into
// one combinational circuit via symbolic execution.  The compiler state maps
// the program counter and each architectural register to a binding of 32
// wires; compiling an instruction emits the gates computing its result from
// the current bindings and rebinds the registers and PC it writes.  No
// control flow survives into the circuit: branches become multiplexers over
// the next-PC value, and a bounded program is a straight line of
// instructions.
package compiler

import (
	"fmt"

	"github.com/RhettCreighton/riscv-compiler-sub000/pkg/circuit"
	"github.com/RhettCreighton/riscv-compiler-sub000/pkg/circuit/arith"
	"github.com/RhettCreighton/riscv-compiler-sub000/pkg/dedup"
	"github.com/RhettCreighton/riscv-compiler-sub000/pkg/memory"
	"github.com/RhettCreighton/riscv-compiler-sub000/pkg/riscv"
)

// AdderKind selects which addition generator backs every word-level add the
// compiler emits (datapath adds, address formation and PC arithmetic alike).
type AdderKind uint8

const (
	// AdderSparse is the sparse parallel-prefix adder, the default.
	AdderSparse AdderKind = iota
	// AdderKoggeStone is the full parallel-prefix adder.
	AdderKoggeStone
	// AdderRipple is the ripple-carry adder.
	AdderRipple
)

// ParseAdder parses an adder name as accepted by the CLI.
func ParseAdder(name string) (AdderKind, error) {
	switch name {
	case "sparse":
		return AdderSparse, nil
	case "kogge":
		return AdderKoggeStone, nil
	case "ripple":
		return AdderRipple, nil
	}
	//
	return AdderSparse, fmt.Errorf("unknown adder %q", name)
}

func (k AdderKind) fn() arith.Adder {
	switch k {
	case AdderKoggeStone:
		return arith.KoggeStoneAdd
	case AdderRipple:
		return arith.RippleAdd
	}
	//
	return arith.SparseKoggeStoneAdd
}

// DefaultMerkleDepth is the Merkle tree depth used when none is configured,
// giving a 256-word authenticated address space.
const DefaultMerkleDepth = 8

// Config determines how a compilation unit is built.
type Config struct {
	// Memory selects the attached memory tier.
	Memory memory.Kind
	// MerkleDepth is the tree depth of the authenticated tier (zero selects
	// DefaultMerkleDepth); ignored by the other tiers.
	MerkleDepth uint
	// Adder selects the addition generator.
	Adder AdderKind
	// OnlineDedup routes all gate emission through a hash-consing builder.
	OnlineDedup bool
	// Fusion enables recognition of adjacent instruction idioms which compile
	// to fewer gates than their parts.
	Fusion bool
	// Parallel compiles independent instructions concurrently.
	Parallel bool
	// Workers bounds parallel compilation concurrency; zero means one worker
	// per CPU.
	Workers uint
}

// Word is the value-type binding of one 32-bit machine word to wires, least
// significant bit first.  Bindings are plain values: rebinding a register is
// an assignment, and snapshotting the whole register file is an array copy.
type Word [32]circuit.Wire

// Bits returns the binding as a wire slice, in LSB-first order.
func (w Word) Bits() []circuit.Wire {
	return w[:]
}

func wordOf(bits []circuit.Wire) Word {
	var w Word
	//
	if len(bits) != len(w) {
		panic(fmt.Sprintf("binding has %d bits, expected %d", len(bits), len(w)))
	}
	//
	copy(w[:], bits)
	//
	return w
}

// bitWord zero-extends a single wire into a word binding, as produced by the
// comparison instructions.
func bitWord(bit circuit.Wire) Word {
	w := wordOf(circuit.ConstWord(0, 32))
	w[0] = bit
	//
	return w
}

// State is the symbolic machine state of one compilation unit: the circuit
// under construction together with the current wire bindings of the program
// counter and all 32 registers.  Register zero is permanently bound to the
// constant-zero word; instructions targeting it still emit their gates, but
// the binding is never replaced.
type State struct {
	cfg Config
	// circuit under construction
	circ *circuit.Circuit
	// gate sink; either the circuit itself or a hash-consing wrapper
	b circuit.Builder
	// configured addition generator
	add arith.Adder
	// current program counter binding
	pc Word
	// current register bindings
	regs [32]Word
	// attached memory tier, or nil
	mem memory.Memory
}

// New creates a fresh compilation unit.  The flat input vector is laid out
// as the two constants, then 32 PC bits, then 32 bits for each of the 32
// registers, then whatever the attached memory tier declares.  The zero
// register's input bits are allocated for layout uniformity but its binding
// is the constant-zero word throughout.
func New(cfg Config) (*State, error) {
	c, err := circuit.New(2 + 32 + 32*32)
	//
	if err != nil {
		return nil, err
	}
	//
	var (
		inputs = c.Inputs()
		s      = &State{cfg: cfg, circ: c, b: c, add: cfg.Adder.fn()}
	)
	//
	if cfg.OnlineDedup {
		s.b = dedup.NewBuilder(c)
	}
	//
	s.pc = wordOf(inputs[2:34])
	s.regs[0] = wordOf(circuit.ConstWord(0, 32))
	//
	for i := 1; i < 32; i++ {
		s.regs[i] = wordOf(inputs[34+32*i : 66+32*i])
	}
	//
	switch cfg.Memory {
	case memory.KindNone:
		// memory instructions will be rejected
	case memory.KindUltraSimple:
		s.mem = memory.NewUltraSimple(c)
	case memory.KindSimple:
		s.mem = memory.NewSimple(c)
	case memory.KindMerkle:
		depth := cfg.MerkleDepth
		//
		if depth == 0 {
			depth = DefaultMerkleDepth
		}
		//
		s.mem = memory.NewMerkle(c, depth)
	default:
		return nil, fmt.Errorf("unknown memory tier %d", cfg.Memory)
	}
	//
	return s, nil
}

// Compile emits the gates for one instruction and rebinds whatever it
// writes.  The dispatch is an exhaustive switch over the decoded tag;
// anything unhandled is a decoder bug surfacing as ErrUnsupported.
func (p *State) Compile(insn riscv.Instruction) error {
	switch insn.Op {
	case riscv.ADD, riscv.SUB, riscv.SLL, riscv.SLT, riscv.SLTU, riscv.XOR,
		riscv.SRL, riscv.SRA, riscv.OR, riscv.AND,
		riscv.ADDI, riscv.SLTI, riscv.SLTIU, riscv.XORI, riscv.ORI, riscv.ANDI,
		riscv.SLLI, riscv.SRLI, riscv.SRAI, riscv.LUI,
		riscv.MUL, riscv.MULH, riscv.MULHSU, riscv.MULHU,
		riscv.DIV, riscv.DIVU, riscv.REM, riscv.REMU:
		rd, err := buildData(p.b, p.add, &p.regs, insn)
		//
		if err != nil {
			return err
		}
		//
		p.setReg(insn.Rd, rd)
		p.advancePC(1)
	case riscv.AUIPC:
		p.compileAuipc(insn)
	case riscv.JAL, riscv.JALR:
		p.compileJump(insn)
	case riscv.BEQ, riscv.BNE, riscv.BLT, riscv.BGE, riscv.BLTU, riscv.BGEU:
		p.compileBranch(insn)
	case riscv.LB, riscv.LH, riscv.LW, riscv.LBU, riscv.LHU,
		riscv.SB, riscv.SH, riscv.SW:
		return p.compileMemory(insn)
	case riscv.ECALL, riscv.EBREAK:
		// environment traps have no in-circuit effect beyond sequencing
		p.advancePC(1)
	default:
		return fmt.Errorf("%w: %s", riscv.ErrUnsupported, insn)
	}
	//
	return nil
}

// Finalize declares the flat output vector (PC, then all 32 register
// bindings, then the memory tier's storage binding) and returns the finished
// circuit.
func (p *State) Finalize() (*circuit.Circuit, error) {
	outputs := make([]circuit.Wire, 0, 32+32*32)
	outputs = append(outputs, p.pc.Bits()...)
	//
	for i := range p.regs {
		outputs = append(outputs, p.regs[i].Bits()...)
	}
	//
	if p.mem != nil {
		outputs = append(outputs, p.mem.Outputs()...)
	}
	//
	if err := p.circ.SetOutputs(outputs); err != nil {
		return nil, err
	}
	//
	return p.circ, nil
}

// Circuit exposes the circuit under construction.
func (p *State) Circuit() *circuit.Circuit {
	return p.circ
}

// setReg rebinds a destination register.  The zero register is architectural
// zero and its binding is never replaced.
func (p *State) setReg(rd uint8, w Word) {
	if rd != 0 {
		p.regs[rd] = w
	}
}

// advancePC rebinds the program counter to PC + 4n.
func (p *State) advancePC(n uint) {
	sum, _ := p.add(p.b, p.pc.Bits(), circuit.ConstWord(uint64(4*n), 32), circuit.ConstFalse)
	p.pc = wordOf(sum)
}
