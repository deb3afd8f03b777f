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
package arith

import (
	"testing"

	"github.com/RhettCreighton/riscv-compiler-sub000/pkg/circuit"
)

// binaryCircuit builds one test circuit whose flat inputs are the two
// constants followed by two w-bit operands, with whatever the generator
// returns declared as outputs.
func binaryCircuit(w uint, gen func(b circuit.Builder, x, y []circuit.Wire) []circuit.Wire) *circuit.Circuit {
	c, err := circuit.New(2 + 2*w)
	if err != nil {
		panic(err)
	}
	//
	in := c.Inputs()
	out := gen(c, in[2:2+w], in[2+w:2+2*w])
	//
	if err := c.SetOutputs(out); err != nil {
		panic(err)
	}
	//
	return c
}

// evalBinary evaluates a binaryCircuit on two concrete operand values,
// packing the output bits LSB first.
func evalBinary(t *testing.T, c *circuit.Circuit, w uint, x, y uint64) uint64 {
	t.Helper()
	//
	inputs := make([]bool, 2+2*w)
	inputs[1] = true
	//
	for i := uint(0); i < w; i++ {
		inputs[2+i] = x>>i&1 == 1
		inputs[2+w+i] = y>>i&1 == 1
	}
	//
	outputs, err := c.Evaluate(inputs)
	if err != nil {
		t.Fatal(err)
	}
	//
	return packBits(outputs)
}

func packBits(bits []bool) uint64 {
	value := uint64(0)
	//
	for i, bit := range bits {
		if bit {
			value |= uint64(1) << i
		}
	}
	//
	return value
}

// signExtendTo interprets the low w bits of a value as a signed quantity.
func signExtendTo(value uint64, w uint) int64 {
	shift := 64 - w
	//
	return int64(value<<shift) >> shift
}
