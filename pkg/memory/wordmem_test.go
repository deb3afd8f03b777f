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
package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RhettCreighton/riscv-compiler-sub000/pkg/circuit"
)

func Test_UltraSimple_Read_01(t *testing.T) {
	var (
		c, _ = circuit.New(2)
		addr = allocWord(c)
		mem  = NewUltraSimple(c)
		out  = mem.Access(c, addr, circuit.ConstWord(0, 32), circuit.ConstFalse)
	)
	//
	require.NoError(t, c.SetOutputs(out))
	// Eight words, initialized to distinct values.
	image := make([]uint32, 8)
	//
	for i := range image {
		image[i] = uint32(i)*7 + 3
	}
	// In-range reads return the addressed word.
	for a := uint32(0); a < 8; a++ {
		inputs := append(append(constInputs(), wordBits(a)...), wordsBits(image)...)
		outputs, err := c.Evaluate(inputs)
		require.NoError(t, err)
		assert.Equal(t, image[a], packWord(outputs))
	}
	// Out-of-range reads are masked to zero.
	for _, a := range []uint32{8, 9, 255, 0x80000000} {
		inputs := append(append(constInputs(), wordBits(a)...), wordsBits(image)...)
		outputs, err := c.Evaluate(inputs)
		require.NoError(t, err)
		assert.Equal(t, uint32(0), packWord(outputs))
	}
}

func Test_UltraSimple_Write_01(t *testing.T) {
	check_WordMemory_Write(t, NewUltraSimple, 8)
}

func Test_Simple_Write_01(t *testing.T) {
	check_WordMemory_Write(t, NewSimple, 256)
}

func Test_ParseKind_01(t *testing.T) {
	for name, kind := range map[string]Kind{
		"none": KindNone, "ultra": KindUltraSimple, "simple": KindSimple, "merkle": KindMerkle,
	} {
		got, err := ParseKind(name)
		require.NoError(t, err)
		assert.Equal(t, kind, got)
	}
	//
	_, err := ParseKind("huge")
	assert.Error(t, err)
}

// ===================================================================
// Test Helpers
// ===================================================================

// check_WordMemory_Write compiles a write followed by a read and checks the
// final storage binding across in-range and out-of-range addresses.
func check_WordMemory_Write(t *testing.T, construct func(*circuit.Circuit) Memory, nbWords uint32) {
	var (
		c, _  = circuit.New(2)
		wAddr = allocWord(c)
		data  = allocWord(c)
		rAddr = allocWord(c)
		mem   = construct(c)
	)
	//
	mem.Access(c, wAddr, data, circuit.ConstTrue)
	out := mem.Access(c, rAddr, circuit.ConstWord(0, 32), circuit.ConstFalse)
	require.NoError(t, c.SetOutputs(append(out, mem.Outputs()...)))
	//
	image := make([]uint32, nbWords)
	//
	for i := range image {
		image[i] = uint32(i) ^ 0xdeadbeef
	}
	//
	eval := func(wa, value, ra uint32) (uint32, []uint32) {
		inputs := append(append(constInputs(), wordBits(wa)...), wordBits(value)...)
		inputs = append(inputs, wordBits(ra)...)
		inputs = append(inputs, wordsBits(image)...)
		//
		outputs, err := c.Evaluate(inputs)
		require.NoError(t, err)
		//
		final := make([]uint32, nbWords)
		//
		for i := range final {
			final[i] = packWord(outputs[32+32*i : 64+32*i])
		}
		//
		return packWord(outputs[:32]), final
	}
	// Read back through the same address.
	read, final := eval(3, 0xcafe0000, 3)
	assert.Equal(t, uint32(0xcafe0000), read)
	assert.Equal(t, uint32(0xcafe0000), final[3])
	// Unrelated words are untouched.
	assert.Equal(t, image[2], final[2])
	// Read elsewhere observes the original image.
	read, _ = eval(3, 0xcafe0000, 2)
	assert.Equal(t, image[2], read)
	// An out-of-range write is discarded entirely.
	_, final = eval(nbWords+1, 0xcafe0000, 0)
	assert.Equal(t, image, final)
}

func allocWord(c *circuit.Circuit) []circuit.Wire {
	out := make([]circuit.Wire, WordBits)
	//
	for i := range out {
		out[i] = c.AllocInput()
	}
	//
	return out
}

func constInputs() []bool {
	return []bool{false, true}
}

func wordBits(value uint32) []bool {
	out := make([]bool, 32)
	//
	for i := range out {
		out[i] = value>>i&1 == 1
	}
	//
	return out
}

func wordsBits(values []uint32) []bool {
	var out []bool
	//
	for _, v := range values {
		out = append(out, wordBits(v)...)
	}
	//
	return out
}

func packWord(bits []bool) uint32 {
	value := uint32(0)
	//
	for i, bit := range bits[:32] {
		if bit {
			value |= uint32(1) << i
		}
	}
	//
	return value
}
