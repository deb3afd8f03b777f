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
package circuit

import "fmt"

// Stats summarizes the size and shape of a circuit.  Gate count and depth
// are first-class performance metrics for the proof backend, not incidental
// ones, so they are cheap to obtain and reported by the CLI.
type Stats struct {
	// Total wires ever allocated
	Wires uint
	// Declared input bits (including the two constants)
	Inputs uint
	// Declared output bits
	Outputs uint
	// Total gates
	Gates uint
	// AND gates
	AndGates uint
	// XOR gates
	XorGates uint
	// Number of layers (longest gate chain)
	Depth uint
}

// Stats computes summary statistics for this circuit.
func (p *Circuit) Stats() Stats {
	s := Stats{
		Wires:   p.NbWires(),
		Inputs:  p.NbInputs(),
		Outputs: uint(len(p.outputs)),
		Gates:   p.NbGates(),
		Depth:   p.Layers().Depth(),
	}
	//
	for _, g := range p.gates {
		if g.Op == OpAnd {
			s.AndGates++
		} else {
			s.XorGates++
		}
	}
	//
	return s
}

func (p Stats) String() string {
	return fmt.Sprintf("%d gates (%d AND, %d XOR), depth %d, %d wires, %d inputs, %d outputs",
		p.Gates, p.AndGates, p.XorGates, p.Depth, p.Wires, p.Inputs, p.Outputs)
}
