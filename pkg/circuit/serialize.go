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

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/RhettCreighton/riscv-compiler-sub000/pkg/util"
)

// WriteTo serializes this circuit in the layered textual netlist format
// consumed by the proof backend.  The format is one gate per line
// ("left right output kind"), partitioned into layers such that every gate
// depends only on gates in strictly earlier layers:
//
//	circuit <wires> <inputs> <outputs> <gates> <layers>
//	input <id>        (one per input bit, in flat-vector order)
//	output <id>       (one per output bit, in flat-vector order)
//	layer <n> <size>
//	<left> <right> <output> <AND|XOR>
//	...
//
// Within one layer, gates appear in original emission order.
func (p *Circuit) WriteTo(w io.Writer) error {
	var (
		buf    = bufio.NewWriter(w)
		layers = p.Layers()
		depth  = layers.Depth()
	)
	//
	fmt.Fprintf(buf, "circuit %d %d %d %d %d\n",
		p.NbWires(), p.NbInputs(), len(p.outputs), p.NbGates(), depth)
	//
	for _, in := range p.inputs {
		fmt.Fprintf(buf, "input %d\n", in)
	}
	//
	for _, out := range p.outputs {
		fmt.Fprintf(buf, "output %d\n", out)
	}
	// Bucket gate positions by layer, preserving emission order within each.
	buckets := make([][]uint, depth)
	//
	for i := range p.gates {
		l := layers.OfGate(uint(i)) - 1
		buckets[l] = append(buckets[l], uint(i))
	}
	//
	for l, bucket := range buckets {
		fmt.Fprintf(buf, "layer %d %d\n", l+1, len(bucket))
		//
		for _, i := range bucket {
			g := p.gates[i]
			fmt.Fprintf(buf, "%d %d %d %s\n", g.Left, g.Right, g.Out, g.Op)
		}
	}
	//
	return buf.Flush()
}

// ReadFrom parses a circuit previously serialized by WriteTo, validating the
// single-assignment and no-forward-reference invariants as it goes.
func ReadFrom(r io.Reader) (*Circuit, error) {
	var (
		scanner = bufio.NewScanner(r)
		c       = &Circuit{}
		defined util.BitSet
		nbWires, nbInputs, nbOutputs, nbGates, nbLayers uint
	)
	// Larger buffer, since netlist lines are short but numerous.
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)
	//
	if !scanner.Scan() {
		return nil, fmt.Errorf("empty netlist")
	}
	//
	if n, err := fmt.Sscanf(scanner.Text(), "circuit %d %d %d %d %d",
		&nbWires, &nbInputs, &nbOutputs, &nbGates, &nbLayers); n != 5 || err != nil {
		return nil, fmt.Errorf("malformed netlist header %q", scanner.Text())
	}
	//
	c.nextWire = Wire(nbWires)
	defined = util.NewBitSet(nbWires)
	line := uint(1)
	//
	for scanner.Scan() {
		var (
			text = scanner.Text()
			err  error
		)
		//
		line++
		//
		switch {
		case text == "" || strings.HasPrefix(text, "#"):
			// skip blank lines and comments
		case strings.HasPrefix(text, "input "):
			err = c.readInput(text, &defined)
		case strings.HasPrefix(text, "output "):
			err = c.readOutput(text)
		case strings.HasPrefix(text, "layer "):
			// layer markers carry no information needed for reconstruction
		default:
			err = c.readGate(text, &defined)
		}
		//
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
	}
	//
	if err := scanner.Err(); err != nil {
		return nil, err
	} else if uint(len(c.inputs)) != nbInputs {
		return nil, fmt.Errorf("expected %d inputs, found %d", nbInputs, len(c.inputs))
	} else if uint(len(c.outputs)) != nbOutputs {
		return nil, fmt.Errorf("expected %d outputs, found %d", nbOutputs, len(c.outputs))
	} else if uint(len(c.gates)) != nbGates {
		return nil, fmt.Errorf("expected %d gates, found %d", nbGates, len(c.gates))
	}
	//
	return c, nil
}

func (p *Circuit) readInput(text string, defined *util.BitSet) error {
	var id uint
	//
	if n, err := fmt.Sscanf(text, "input %d", &id); n != 1 || err != nil {
		return fmt.Errorf("malformed input %q", text)
	} else if defined.Contains(id) {
		return fmt.Errorf("input wire %d multiply defined", id)
	}
	//
	defined.Insert(id)
	p.inputs = append(p.inputs, Wire(id))
	//
	return nil
}

func (p *Circuit) readOutput(text string) error {
	var id uint
	//
	if n, err := fmt.Sscanf(text, "output %d", &id); n != 1 || err != nil {
		return fmt.Errorf("malformed output %q", text)
	}
	//
	p.outputs = append(p.outputs, Wire(id))
	//
	return nil
}

func (p *Circuit) readGate(text string, defined *util.BitSet) error {
	var (
		left, right, out uint
		kind             string
		op               GateOp
	)
	//
	if n, err := fmt.Sscanf(text, "%d %d %d %s", &left, &right, &out, &kind); n != 4 || err != nil {
		return fmt.Errorf("malformed gate %q", text)
	}
	//
	switch kind {
	case "AND":
		op = OpAnd
	case "XOR":
		op = OpXor
	default:
		return fmt.Errorf("unknown gate kind %q", kind)
	}
	//
	if !defined.Contains(left) || !defined.Contains(right) {
		return fmt.Errorf("gate output %d reads an undefined wire", out)
	} else if defined.Contains(out) {
		return fmt.Errorf("gate output %d multiply defined", out)
	}
	//
	defined.Insert(out)
	p.gates = append(p.gates, Gate{Left: Wire(left), Right: Wire(right), Out: Wire(out), Op: op})
	//
	return nil
}
