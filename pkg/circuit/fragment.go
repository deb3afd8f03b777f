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

// Fragment is a private gate buffer used during parallel compilation.  A
// worker allocates wires from its own counter, numbered upwards from a
// snapshot of the shared circuit's counter; wires below the snapshot refer
// to the shared circuit (inputs and bindings established by earlier
// batches) and pass through unchanged.  Fragments from all workers of a
// batch are later appended to the shared circuit, in fixed worker order,
// through AppendFragment.
type Fragment struct {
	// all wires at or above base are local to this fragment
	base Wire
	// next free local wire
	next Wire
	// locally emitted gates
	gates []Gate
}

// NewFragment creates an empty fragment whose local wires are numbered from
// the given snapshot of the shared circuit's wire counter.
func NewFragment(base Wire) *Fragment {
	return &Fragment{base: base, next: base}
}

// AllocWire returns a fresh fragment-local wire.
func (p *Fragment) AllocWire() Wire {
	w := p.next
	p.next++
	//
	return w
}

// AddGate appends one gate to the fragment.
func (p *Fragment) AddGate(op GateOp, left, right Wire) Wire {
	out := p.AllocWire()
	p.gates = append(p.gates, Gate{Left: left, Right: right, Out: out, Op: op})
	//
	return out
}

// NbWires returns the number of local wires allocated by this fragment.
func (p *Fragment) NbWires() uint {
	return uint(p.next - p.base)
}

// AppendFragment splices a fragment's gates onto this circuit, renumbering
// every fragment-local wire onto freshly allocated shared wires.  The
// returned translator maps any wire valid inside the fragment (local or
// shared) to its identity in the merged circuit; callers use it to rebind
// the register bindings a fragment computed.  Merging fragments in a fixed
// order is what keeps parallel compilation deterministic.
func (p *Circuit) AppendFragment(f *Fragment) func(Wire) Wire {
	offset := p.nextWire
	p.nextWire += Wire(f.NbWires())
	//
	translate := func(w Wire) Wire {
		if w >= f.base {
			return w - f.base + offset
		}
		//
		return w
	}
	//
	for _, g := range f.gates {
		p.gates = append(p.gates, Gate{
			Left:  translate(g.Left),
			Right: translate(g.Right),
			Out:   translate(g.Out),
			Op:    g.Op,
		})
	}
	//
	return translate
}
