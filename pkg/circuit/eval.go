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

// Evaluate computes the output bit vector of this circuit for a given flat
// input bit vector.  This is a host-side reference evaluation used by tests
// and downstream verification tooling; the production consumer of a circuit
// is the external proof backend.  The input vector must supply the two
// constant bits as false and true respectively, per the state encoding
// contract.
func (p *Circuit) Evaluate(inputs []bool) ([]bool, error) {
	if uint(len(inputs)) != p.NbInputs() {
		return nil, fmt.Errorf("expected %d input bits, got %d", p.NbInputs(), len(inputs))
	} else if inputs[0] || !inputs[1] {
		return nil, fmt.Errorf("input bits 0 and 1 must be the constants false and true")
	}
	// One value slot per wire ever allocated.
	values := make([]bool, p.nextWire)
	//
	for i, w := range p.inputs {
		values[w] = inputs[i]
	}
	// Gates are stored in emission order, which is a topological order by
	// construction.
	for _, g := range p.gates {
		switch g.Op {
		case OpAnd:
			values[g.Out] = values[g.Left] && values[g.Right]
		case OpXor:
			values[g.Out] = values[g.Left] != values[g.Right]
		default:
			return nil, fmt.Errorf("unknown gate op %d", g.Op)
		}
	}
	//
	outputs := make([]bool, len(p.outputs))
	//
	for i, w := range p.outputs {
		outputs[i] = values[w]
	}
	//
	return outputs, nil
}
