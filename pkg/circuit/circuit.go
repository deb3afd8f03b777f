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

// Package circuit provides the combinational boolean circuit underlying the
// whole compiler: an append-only list of two-input AND/XOR gates over a flat
// namespace of boolean signals ("wires").  Wires are identified by opaque
// non-negative integers, with wires 0 and 1 globally reserved for the
// constants false and true.  Constants are supplied as circuit inputs and are
// never produced by gates; referencing them costs nothing.
//
// A circuit is single-assignment: every gate output is a freshly allocated
// wire, and no wire is ever read before being defined.  The wire allocator is
// strictly monotonic, which is what makes that invariant hold by
// construction.
package circuit

import "fmt"

// Wire identifies a single boolean signal within a circuit.
type Wire uint32

const (
	// ConstFalse is the circuit-wide constant false wire.
	ConstFalse Wire = 0
	// ConstTrue is the circuit-wide constant true wire.
	ConstTrue Wire = 1
)

// GateOp identifies the boolean operation computed by a gate.
type GateOp uint8

const (
	// OpAnd computes the conjunction of its two input wires.
	OpAnd GateOp = iota
	// OpXor computes the exclusive disjunction of its two input wires.
	OpXor
)

func (op GateOp) String() string {
	switch op {
	case OpAnd:
		return "AND"
	case OpXor:
		return "XOR"
	}
	//
	return fmt.Sprintf("GateOp(%d)", uint8(op))
}

// Gate is a single two-input boolean operation.  Out is unique across the
// circuit, and both inputs were defined (as circuit inputs, or as outputs of
// earlier gates) before the gate was appended.
type Gate struct {
	Left  Wire
	Right Wire
	Out   Wire
	Op    GateOp
}

// Builder abstracts anything gates can be emitted into: the circuit itself,
// a hash-consing deduplication wrapper, or a worker-private fragment used
// during parallel compilation.  All circuit generators are written against
// this interface, and are otherwise pure functions over their input wires.
type Builder interface {
	// AllocWire returns a fresh, previously unused wire identifier.  This is
	// the only way to create a wire destined to be a gate output.
	AllocWire() Wire
	// AddGate appends one gate computing op(left, right), returning its
	// (freshly allocated) output wire.  Inputs are not validated; generators
	// guarantee definedness by construction.
	AddGate(op GateOp, left, right Wire) Wire
}

// MaxBits bounds the number of input bits and, separately, the number of
// output bits a single circuit may declare.
const MaxBits = 1 << 26

// Circuit owns the gate sequence, the next-free-wire counter, and the
// declared input/output bit vectors.  It is created once per compilation
// unit, mutated by every builder call, and then consumed read-only by
// serialization and verification tooling.
type Circuit struct {
	gates []Gate
	// next free wire identifier
	nextWire Wire
	// input wires, in flat input-vector order (inputs[0] and inputs[1] are
	// the constant wires)
	inputs []Wire
	// declared output wires, in flat output-vector order
	outputs []Wire
}

// New constructs an empty circuit with the given number of input bits, of
// which the first two are the constant wires.  The input budget is enforced
// here; the output budget is enforced by SetOutputs.
func New(nbInputs uint) (*Circuit, error) {
	if nbInputs < 2 {
		return nil, fmt.Errorf("circuit requires at least the two constant input bits")
	} else if nbInputs > MaxBits {
		return nil, budgetError("input", nbInputs)
	}
	//
	inputs := make([]Wire, nbInputs)
	//
	for i := range inputs {
		inputs[i] = Wire(i)
	}
	//
	return &Circuit{
		gates:    nil,
		nextWire: Wire(nbInputs),
		inputs:   inputs,
	}, nil
}

// budgetError reports a violated input/output bit budget, stating the overage
// in bytes along with remediation guidance.
func budgetError(kind string, requested uint) error {
	overage := (requested - MaxBits + 7) / 8
	//
	return fmt.Errorf(
		"requested %d %s bits exceeds the platform maximum of %d (over by %d bytes); "+
			"split the program into smaller compilation units or reduce the attached memory size",
		requested, kind, MaxBits, overage)
}

// FromParts reassembles a circuit from its constituents, preserving wire
// identities.  It is used by passes (such as gate deduplication) which
// rewrite the gate list of an existing circuit without renumbering its
// input or output wires.
func FromParts(nbWires uint, inputs, outputs []Wire, gates []Gate) *Circuit {
	return &Circuit{
		gates:    gates,
		nextWire: Wire(nbWires),
		inputs:   inputs,
		outputs:  outputs,
	}
}

// AllocWire returns a fresh, previously unused wire identifier.
func (p *Circuit) AllocWire() Wire {
	w := p.nextWire
	p.nextWire++
	//
	return w
}

// AllocInput allocates a fresh wire which is supplied externally rather than
// driven by a gate, appending it to the flat input vector.  This is how
// per-access Merkle proof bits enter the circuit after construction.  Budget
// exhaustion here is unrecoverable for the in-progress compilation and hence
// panics.
func (p *Circuit) AllocInput() Wire {
	if uint(len(p.inputs)) >= MaxBits {
		panic(budgetError("input", uint(len(p.inputs))+1))
	}
	//
	w := p.AllocWire()
	p.inputs = append(p.inputs, w)
	//
	return w
}

// AddGate appends one gate computing op(left, right) and returns its output
// wire.
func (p *Circuit) AddGate(op GateOp, left, right Wire) Wire {
	out := p.AllocWire()
	p.gates = append(p.gates, Gate{Left: left, Right: right, Out: out, Op: op})
	//
	return out
}

// SetOutputs declares the flat output bit vector of this circuit.
func (p *Circuit) SetOutputs(outputs []Wire) error {
	if uint(len(outputs)) > MaxBits {
		return budgetError("output", uint(len(outputs)))
	}
	//
	p.outputs = outputs
	//
	return nil
}

// Gates provides read-only access to the gate sequence, in emission order.
func (p *Circuit) Gates() []Gate {
	return p.gates
}

// Inputs returns the input wires in flat input-vector order.
func (p *Circuit) Inputs() []Wire {
	return p.inputs
}

// Outputs returns the declared output wires in flat output-vector order.
func (p *Circuit) Outputs() []Wire {
	return p.outputs
}

// NbGates returns the number of gates in this circuit.
func (p *Circuit) NbGates() uint {
	return uint(len(p.gates))
}

// NbInputs returns the number of declared input bits, including the two
// constant wires.
func (p *Circuit) NbInputs() uint {
	return uint(len(p.inputs))
}

// NbWires returns the total number of wires ever allocated.
func (p *Circuit) NbWires() uint {
	return uint(p.nextWire)
}
