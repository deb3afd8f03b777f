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

// Layering assigns every gate to a layer such that all gates in a layer
// depend only on circuit inputs and on gates in strictly earlier layers.
// This partitioning is required by downstream parallel proof evaluation,
// which schedules one layer at a time.  Layers are numbered from one;
// circuit inputs implicitly occupy layer zero.
type Layering struct {
	// layer of each gate, indexed by gate position
	ofGate []uint
	// number of gates in each layer, indexed by layer-1
	sizes []uint
}

// Layers levelizes the circuit: the layer of a gate is one more than the
// deepest of its two input wires.
func (p *Circuit) Layers() *Layering {
	var (
		// layer of each wire (inputs sit at layer 0)
		ofWire = make([]uint, p.nextWire)
		ofGate = make([]uint, len(p.gates))
		sizes  []uint
	)
	//
	for i, g := range p.gates {
		layer := max(ofWire[g.Left], ofWire[g.Right]) + 1
		ofWire[g.Out] = layer
		ofGate[i] = layer
		//
		for uint(len(sizes)) < layer {
			sizes = append(sizes, 0)
		}
		//
		sizes[layer-1]++
	}
	//
	return &Layering{ofGate, sizes}
}

// Depth returns the number of layers, i.e. the length of the longest
// input-to-output gate chain.
func (p *Layering) Depth() uint {
	return uint(len(p.sizes))
}

// OfGate returns the layer of the gate at the given position in the gate
// sequence.
func (p *Layering) OfGate(index uint) uint {
	return p.ofGate[index]
}

// Sizes returns the number of gates in each layer.
func (p *Layering) Sizes() []uint {
	return p.sizes
}
