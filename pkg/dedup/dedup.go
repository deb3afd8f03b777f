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

// Package dedup collapses structurally identical gates, reducing circuit
// size without changing the function computed.  It offers two modes: a
// batch pass over a finished circuit, and an online hash-consing builder
// usable during compilation.  Both key gates on their operand pair and kind
// after normalizing commutative operand order, and both are explicit
// context objects rather than hidden global caches, so concurrent
// compilations cannot observe one another.
package dedup

import (
	"github.com/RhettCreighton/riscv-compiler-sub000/pkg/circuit"
	"github.com/RhettCreighton/riscv-compiler-sub000/pkg/util"
)

// gateKey identifies a gate up to structural equality.  Both gate kinds are
// commutative, so operands are stored in normalized order.
type gateKey struct {
	op          circuit.GateOp
	left, right circuit.Wire
}

func keyOf(op circuit.GateOp, left, right circuit.Wire) gateKey {
	if left > right {
		left, right = right, left
	}
	//
	return gateKey{op, left, right}
}

// Run performs the batch deduplication pass: structurally identical gates
// are collapsed onto the first occurrence, every later use is rewritten to
// the surviving wire, and gates no longer reachable from the declared
// outputs are dropped.  Input and output wire identities are preserved,
// which means a duplicate gate driving a declared output survives (its
// operands still rewritten).  The pass is idempotent.
//
// When the circuit declares no outputs, liveness cannot be established and
// only the collapsing step runs.
func Run(c *circuit.Circuit) *circuit.Circuit {
	var (
		seen = make(map[gateKey]circuit.Wire, c.NbGates())
		// alias maps a collapsed gate's output to its surviving wire; chains
		// never form because a surviving wire is never itself collapsed
		alias = make(map[circuit.Wire]circuit.Wire)
		kept  = make([]circuit.Gate, 0, c.NbGates())
		// wires which must retain their identity
		external = util.NewBitSet(c.NbWires())
	)
	//
	for _, w := range c.Outputs() {
		external.Insert(uint(w))
	}
	//
	resolve := func(w circuit.Wire) circuit.Wire {
		if a, ok := alias[w]; ok {
			return a
		}
		//
		return w
	}
	//
	for _, g := range c.Gates() {
		var (
			left  = resolve(g.Left)
			right = resolve(g.Right)
			key   = keyOf(g.Op, left, right)
		)
		//
		if first, ok := seen[key]; ok && !external.Contains(uint(g.Out)) {
			alias[g.Out] = first
			continue
		} else if !ok {
			seen[key] = g.Out
		}
		//
		kept = append(kept, circuit.Gate{Left: left, Right: right, Out: g.Out, Op: g.Op})
	}
	//
	kept = sweepDead(c, kept)
	//
	return circuit.FromParts(c.NbWires(), c.Inputs(), c.Outputs(), kept)
}

// sweepDead drops gates whose outputs cannot reach any declared output,
// then compacts the gate list.
func sweepDead(c *circuit.Circuit, gates []circuit.Gate) []circuit.Gate {
	if len(c.Outputs()) == 0 {
		return gates
	}
	//
	var (
		live = util.NewBitSet(c.NbWires())
		// driver[w] is 1 + the index of the gate driving wire w
		driver   = make([]uint32, c.NbWires())
		worklist []circuit.Wire
	)
	//
	for i, g := range gates {
		driver[g.Out] = uint32(i) + 1
	}
	//
	for _, w := range c.Outputs() {
		worklist = append(worklist, w)
	}
	//
	for len(worklist) > 0 {
		w := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]
		//
		if live.Contains(uint(w)) || driver[w] == 0 {
			continue
		}
		//
		live.Insert(uint(w))
		g := gates[driver[w]-1]
		worklist = append(worklist, g.Left, g.Right)
	}
	//
	kept := gates[:0]
	//
	for _, g := range gates {
		if live.Contains(uint(g.Out)) {
			kept = append(kept, g)
		}
	}
	//
	return kept
}
